package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación del puerto InventoryRepository sobre
// PostgreSQL (usable con pool o tx). Una fila por producto.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de persistencia de stock.
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventorySelect = `
	SELECT id, company_id, product_id, quantity, min_stock_level, COALESCE(location, ''), last_restocked, created_at, updated_at
	FROM inventory`

// GetByProduct obtiene la fila de stock de un producto.
func (r *InventoryRepo) GetByProduct(productID string) (*entity.Inventory, error) {
	return r.scanOne(inventorySelect+` WHERE product_id = $1`, productID)
}

// GetByProductForUpdate bloquea la fila (SELECT FOR UPDATE) para serializar
// mutaciones concurrentes del mismo producto. Solo tiene sentido dentro de
// una transacción.
func (r *InventoryRepo) GetByProductForUpdate(productID string) (*entity.Inventory, error) {
	return r.scanOne(inventorySelect+` WHERE product_id = $1 FOR UPDATE`, productID)
}

func (r *InventoryRepo) scanOne(query string, args ...any) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&inv.ID, &inv.CompanyID, &inv.ProductID, &inv.Quantity, &inv.MinStockLevel,
		&inv.Location, &inv.LastRestocked, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &inv, nil
}

// Upsert inserta o actualiza la fila de stock (una por producto).
func (r *InventoryRepo) Upsert(inv *entity.Inventory) error {
	query := `
		INSERT INTO inventory (id, company_id, product_id, quantity, min_stock_level, location, last_restocked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (product_id) DO UPDATE SET
			quantity = EXCLUDED.quantity,
			min_stock_level = EXCLUDED.min_stock_level,
			location = EXCLUDED.location,
			last_restocked = EXCLUDED.last_restocked,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.CompanyID, inv.ProductID, inv.Quantity, inv.MinStockLevel,
		nullIfEmpty(inv.Location), inv.LastRestocked, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert inventory: %w", err)
	}
	return nil
}

const inventoryJoinSelect = `
	SELECT i.id, i.company_id, i.product_id, i.quantity, i.min_stock_level, COALESCE(i.location, ''), i.last_restocked, i.created_at, i.updated_at,
	       p.id, p.company_id, p.sku, p.name, p.description, p.cost_price, p.selling_price, p.created_at, p.updated_at
	FROM inventory i
	JOIN products p ON p.id = i.product_id`

// List devuelve el inventario con su producto, paginado.
func (r *InventoryRepo) List(companyID string, limit, offset int) ([]*entity.Inventory, error) {
	query := inventoryJoinSelect
	args := []any{}
	if companyID != "" {
		args = append(args, companyID)
		query += " WHERE i.company_id = $1"
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY p.name LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	return scanInventoryRows(rows)
}

// ListLowStock devuelve las filas con cantidad en o bajo su mínimo,
// ascendente por cantidad (lo más crítico primero).
func (r *InventoryRepo) ListLowStock(companyID string) ([]*entity.Inventory, error) {
	query := inventoryJoinSelect + " WHERE i.quantity <= i.min_stock_level"
	args := []any{}
	if companyID != "" {
		args = append(args, companyID)
		query += " AND i.company_id = $1"
	}
	query += " ORDER BY i.quantity ASC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	return scanInventoryRows(rows)
}

func scanInventoryRows(rows rowScanner) ([]*entity.Inventory, error) {
	var list []*entity.Inventory
	for rows.Next() {
		var inv entity.Inventory
		var p entity.Product
		if err := rows.Scan(
			&inv.ID, &inv.CompanyID, &inv.ProductID, &inv.Quantity, &inv.MinStockLevel,
			&inv.Location, &inv.LastRestocked, &inv.CreatedAt, &inv.UpdatedAt,
			&p.ID, &p.CompanyID, &p.SKU, &p.Name, &p.Description, &p.CostPrice, &p.SellingPrice, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		inv.Product = &p
		list = append(list, &inv)
	}
	return list, rows.Err()
}
