package order

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Prefijos de número de documento.
const (
	PrefixSale     = "SO"
	PrefixPurchase = "PO"
	PrefixReturn   = "SR"
)

// NewNumber genera un número de documento: prefijo + timestamp en base36 +
// 4 caracteres aleatorios, todo en mayúsculas (ej. "SO-MBXK2J4F-7A3Q").
// La unicidad final la garantiza el constraint UNIQUE de la tabla; la parte
// aleatoria evita colisiones entre órdenes creadas en el mismo milisegundo.
func NewNumber(prefix string) string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	return prefix + "-" + ts + "-" + randomSuffix(4)
}

// randomSuffix toma n caracteres base36 derivados de un UUID v4.
func randomSuffix(n int) string {
	raw := uuid.New()
	const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	b := make([]byte, n)
	for i := 0; i < n; i++ {
		b[i] = alphabet[int(raw[i])%len(alphabet)]
	}
	return string(b)
}
