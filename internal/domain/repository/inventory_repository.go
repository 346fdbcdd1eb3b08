package repository

import "github.com/jhoicas/erp-api/internal/domain/entity"

// InventoryRepository define el puerto para la fila de stock por producto.
// Usado dentro de transacciones para garantizar consistencia con las órdenes.
type InventoryRepository interface {
	GetByProduct(productID string) (*entity.Inventory, error)
	// GetByProductForUpdate bloquea la fila (SELECT FOR UPDATE) para
	// serializar mutaciones concurrentes del mismo producto.
	GetByProductForUpdate(productID string) (*entity.Inventory, error)
	Upsert(inv *entity.Inventory) error
	List(companyID string, limit, offset int) ([]*entity.Inventory, error)
	// ListLowStock devuelve las filas con quantity <= min_stock_level,
	// ascendente por quantity.
	ListLowStock(companyID string) ([]*entity.Inventory, error)
}
