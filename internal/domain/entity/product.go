package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. SKU es único por empresa
// (no globalmente); el stock vive aparte en Inventory.
type Product struct {
	ID           string
	CompanyID    string
	SKU          string
	Name         string
	Description  string
	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
