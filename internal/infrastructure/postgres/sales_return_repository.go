package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

var _ repository.SalesReturnRepository = (*SalesReturnRepo)(nil)

// SalesReturnRepo implementación del puerto SalesReturnRepository sobre
// PostgreSQL (usable con pool o tx).
type SalesReturnRepo struct {
	q Querier
}

// NewSalesReturnRepository construye el adaptador de persistencia para
// devoluciones.
func NewSalesReturnRepository(q Querier) *SalesReturnRepo {
	return &SalesReturnRepo{q: q}
}

// Create persiste la cabecera de la devolución.
func (r *SalesReturnRepo) Create(ret *entity.SalesReturn) error {
	query := `
		INSERT INTO sales_returns (id, company_id, sale_id, user_id, return_number, status, subtotal, tax, total, reason, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		ret.ID, ret.CompanyID, ret.SaleID, ret.UserID,
		ret.ReturnNumber, ret.Status, ret.Subtotal, ret.Tax, ret.Total,
		nullIfEmpty(ret.Reason), nullIfEmpty(ret.Notes),
		ret.CreatedAt, ret.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("return number already exists: %w", err)
		}
		return fmt.Errorf("insert sales return: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de devolución.
func (r *SalesReturnRepo) CreateItem(item *entity.SalesReturnItem) error {
	query := `
		INSERT INTO sales_return_items (id, sales_return_id, sale_item_id, product_id, quantity, unit_price, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SalesReturnID, item.SaleItemID, item.ProductID,
		item.Quantity, item.UnitPrice, item.Total, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sales return item: %w", err)
	}
	return nil
}

const returnSelect = `
	SELECT id, company_id, sale_id, user_id, return_number, status,
	       subtotal, tax, total, COALESCE(reason, ''), COALESCE(notes, ''), created_at, updated_at
	FROM sales_returns`

// GetByID obtiene una devolución. companyID vacío omite el filtro de tenant.
func (r *SalesReturnRepo) GetByID(id, companyID string) (*entity.SalesReturn, error) {
	query := returnSelect + " WHERE id = $1"
	args := []any{id}
	if companyID != "" {
		args = append(args, companyID)
		query += " AND company_id = $2"
	}
	var ret entity.SalesReturn
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&ret.ID, &ret.CompanyID, &ret.SaleID, &ret.UserID, &ret.ReturnNumber, &ret.Status,
		&ret.Subtotal, &ret.Tax, &ret.Total, &ret.Reason, &ret.Notes,
		&ret.CreatedAt, &ret.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales return: %w", err)
	}
	return &ret, nil
}

// GetItems obtiene las líneas de una devolución con su producto.
func (r *SalesReturnRepo) GetItems(returnID string) ([]*entity.SalesReturnItem, error) {
	query := `
		SELECT ri.id, ri.sales_return_id, ri.sale_item_id, ri.product_id, ri.quantity, ri.unit_price, ri.total, ri.created_at,
		       p.id, p.company_id, p.sku, p.name, p.description, p.cost_price, p.selling_price, p.created_at, p.updated_at
		FROM sales_return_items ri
		JOIN products p ON p.id = ri.product_id
		WHERE ri.sales_return_id = $1 ORDER BY ri.created_at`
	rows, err := r.q.Query(context.Background(), query, returnID)
	if err != nil {
		return nil, fmt.Errorf("list sales return items: %w", err)
	}
	defer rows.Close()
	return scanReturnItems(rows)
}

// ListBySaleWithItems devuelve las devoluciones de una venta con sus líneas
// cargadas en un solo round-trip adicional. excludeCancelled omite las
// canceladas (para calcular cantidades restantes).
func (r *SalesReturnRepo) ListBySaleWithItems(saleID string, excludeCancelled bool) ([]*entity.SalesReturn, error) {
	query := returnSelect + " WHERE sale_id = $1"
	if excludeCancelled {
		query += " AND status <> 'cancelled'"
	}
	query += " ORDER BY created_at"
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list returns by sale: %w", err)
	}
	defer rows.Close()

	var list []*entity.SalesReturn
	byID := make(map[string]*entity.SalesReturn)
	for rows.Next() {
		var ret entity.SalesReturn
		if err := rows.Scan(
			&ret.ID, &ret.CompanyID, &ret.SaleID, &ret.UserID, &ret.ReturnNumber, &ret.Status,
			&ret.Subtotal, &ret.Tax, &ret.Total, &ret.Reason, &ret.Notes,
			&ret.CreatedAt, &ret.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sales return: %w", err)
		}
		list = append(list, &ret)
		byID[ret.ID] = &ret
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}

	itemsQuery := `
		SELECT ri.id, ri.sales_return_id, ri.sale_item_id, ri.product_id, ri.quantity, ri.unit_price, ri.total, ri.created_at,
		       p.id, p.company_id, p.sku, p.name, p.description, p.cost_price, p.selling_price, p.created_at, p.updated_at
		FROM sales_return_items ri
		JOIN products p ON p.id = ri.product_id
		JOIN sales_returns sr ON sr.id = ri.sales_return_id
		WHERE sr.sale_id = $1`
	if excludeCancelled {
		itemsQuery += " AND sr.status <> 'cancelled'"
	}
	itemRows, err := r.q.Query(context.Background(), itemsQuery, saleID)
	if err != nil {
		return nil, fmt.Errorf("list return items by sale: %w", err)
	}
	defer itemRows.Close()
	items, err := scanReturnItems(itemRows)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if ret := byID[it.SalesReturnID]; ret != nil {
			ret.Items = append(ret.Items, it)
		}
	}
	return list, nil
}

// UpdateStatus fija el estado de la devolución.
func (r *SalesReturnRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE sales_returns SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update return status: %w", err)
	}
	return nil
}

// List devuelve devoluciones con filtros, paginadas.
func (r *SalesReturnRepo) List(filter repository.ReturnFilter) ([]*entity.SalesReturn, error) {
	query := returnSelect + " WHERE 1=1"
	args := []any{}
	if filter.CompanyID != "" {
		args = append(args, filter.CompanyID)
		query += fmt.Sprintf(" AND company_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND return_number ILIKE $%d", len(args))
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales returns: %w", err)
	}
	defer rows.Close()

	var list []*entity.SalesReturn
	for rows.Next() {
		var ret entity.SalesReturn
		if err := rows.Scan(
			&ret.ID, &ret.CompanyID, &ret.SaleID, &ret.UserID, &ret.ReturnNumber, &ret.Status,
			&ret.Subtotal, &ret.Tax, &ret.Total, &ret.Reason, &ret.Notes,
			&ret.CreatedAt, &ret.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sales return: %w", err)
		}
		list = append(list, &ret)
	}
	return list, rows.Err()
}

// DeleteItems elimina las líneas de una devolución.
func (r *SalesReturnRepo) DeleteItems(returnID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sales_return_items WHERE sales_return_id = $1`, returnID)
	if err != nil {
		return fmt.Errorf("delete return items: %w", err)
	}
	return nil
}

// Delete elimina la cabecera de una devolución.
func (r *SalesReturnRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sales_returns WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sales return: %w", err)
	}
	return nil
}

func scanReturnItems(rows rowScanner) ([]*entity.SalesReturnItem, error) {
	var list []*entity.SalesReturnItem
	for rows.Next() {
		var it entity.SalesReturnItem
		var p entity.Product
		if err := rows.Scan(
			&it.ID, &it.SalesReturnID, &it.SaleItemID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Total, &it.CreatedAt,
			&p.ID, &p.CompanyID, &p.SKU, &p.Name, &p.Description, &p.CostPrice, &p.SellingPrice, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan return item: %w", err)
		}
		it.Product = &p
		list = append(list, &it)
	}
	return list, rows.Err()
}
