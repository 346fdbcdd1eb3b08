package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase representa una orden de compra contra un proveedor. A diferencia
// de Sale, crear la orden no toca inventario: la mercancía entra al stock
// solo al recibirla (posiblemente en entregas parciales).
type Purchase struct {
	ID               string
	CompanyID        string
	SupplierID       string // Customer con tipo supplier/both
	UserID           string
	OrderNumber      string
	Status           string // ver internal/domain/order
	Subtotal         decimal.Decimal
	Tax              decimal.Decimal
	Total            decimal.Decimal
	Notes            string
	ExpectedDelivery *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Items    []*PurchaseItem
	Supplier *Customer
	User     *User
}

// PurchaseItem es una línea de compra. ReceivedQuantity acumula lo recibido
// y nunca excede Quantity (0 <= received <= ordered).
type PurchaseItem struct {
	ID               string
	PurchaseID       string
	ProductID        string
	Quantity         int
	ReceivedQuantity int
	UnitPrice        decimal.Decimal
	Total            decimal.Decimal
	CreatedAt        time.Time

	Product *Product
}

// Outstanding devuelve la cantidad pendiente por recibir de la línea.
func (i *PurchaseItem) Outstanding() int {
	return i.Quantity - i.ReceivedQuantity
}
