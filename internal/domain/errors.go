package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrCompanyInactive    = errors.New("empresa inactiva")
	ErrInvalidState       = errors.New("estado actual no permite la operación")
)

// StockShortage describe una línea sin stock suficiente.
type StockShortage struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

// StockShortageError agrupa todas las líneas insatisfechas de una operación.
// Se valida el lote completo antes de mutar nada, así el caller recibe la
// lista entera de faltantes en un solo error.
type StockShortageError struct {
	Items []StockShortage
}

func (e *StockShortageError) Error() string {
	parts := make([]string, 0, len(e.Items))
	for _, it := range e.Items {
		name := it.ProductName
		if name == "" {
			name = it.ProductID
		}
		parts = append(parts, fmt.Sprintf("%s (solicitado %d, disponible %d)", name, it.Requested, it.Available))
	}
	return "stock insuficiente: " + strings.Join(parts, "; ")
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *StockShortageError) Unwrap() error { return ErrInsufficientStock }

// ReturnQuantityError indica que una devolución excede la cantidad restante
// de la línea de venta original.
type ReturnQuantityError struct {
	SaleItemID      string
	Requested       int
	Remaining       int
	Ordered         int
	AlreadyReturned int
}

func (e *ReturnQuantityError) Error() string {
	return fmt.Sprintf(
		"no se pueden devolver %d unidades: restan %d (ordenadas: %d, ya devueltas: %d)",
		e.Requested, e.Remaining, e.Ordered, e.AlreadyReturned,
	)
}

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *ReturnQuantityError) Unwrap() error { return ErrInvalidInput }
