package entity

import "time"

// Tipos de ajuste de inventario.
const (
	AdjustmentAdd    = "add"
	AdjustmentRemove = "remove"
	AdjustmentSet    = "set"
)

// DefaultMinStockLevel nivel mínimo asignado cuando se crea la fila de
// inventario de forma implícita.
const DefaultMinStockLevel = 10

// Inventory es la fila de stock de un producto (relación 1:1 con Product).
// Quantity nunca puede quedar negativa; las deducciones que la llevarían
// bajo cero se rechazan completas.
type Inventory struct {
	ID            string
	CompanyID     string
	ProductID     string
	Quantity      int
	MinStockLevel int
	Location      string
	LastRestocked *time.Time // nil = nunca reabastecido
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Product *Product
}

// IsLowStock indica si la fila está en nivel bajo (quantity <= mínimo).
func (i *Inventory) IsLowStock() bool {
	return i.Quantity <= i.MinStockLevel
}
