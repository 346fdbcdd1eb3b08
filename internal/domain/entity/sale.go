package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una orden de venta. El stock se deduce al CREAR la orden
// (no al confirmarla): una orden pending ya tiene el stock comprometido y
// cancelarla lo restaura.
type Sale struct {
	ID          string
	CompanyID   string
	CustomerID  string
	UserID      string // creador
	OrderNumber string // generado, único, inmutable
	Status      string // ver internal/domain/order
	Subtotal    decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Asociaciones cargadas opcionalmente por los repos.
	Items    []*SaleItem
	Customer *Customer
	User     *User
}

// SaleItem es una línea de venta, inmutable una vez creada (solo una
// devolución puede "deshacerla" parcialmente).
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
	CreatedAt time.Time

	Product *Product
}
