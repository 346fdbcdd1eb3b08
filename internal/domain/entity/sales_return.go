package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesReturn representa una devolución sobre una venta existente. El stock
// vuelve al inventario solo cuando la devolución pasa a completed.
type SalesReturn struct {
	ID           string
	CompanyID    string
	SaleID       string
	UserID       string
	ReturnNumber string
	Status       string // ver internal/domain/order
	Subtotal     decimal.Decimal
	Tax          decimal.Decimal // prorrateado de la venta original
	Total        decimal.Decimal
	Reason       string
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Items []*SalesReturnItem
	Sale  *Sale
	User  *User
}

// SalesReturnItem referencia una línea concreta de la venta original con una
// cantidad acotada: la suma de devoluciones no canceladas de una línea nunca
// excede su cantidad ordenada.
type SalesReturnItem struct {
	ID            string
	SalesReturnID string
	SaleItemID    string
	ProductID     string
	Quantity      int
	UnitPrice     decimal.Decimal // precio original de la línea de venta
	Total         decimal.Decimal
	CreatedAt     time.Time

	Product *Product
}
