package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL
// (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de la venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, company_id, customer_id, user_id, order_number, status, subtotal, tax, total, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.CompanyID, sale.CustomerID, sale.UserID,
		sale.OrderNumber, sale.Status, sale.Subtotal, sale.Tax, sale.Total,
		nullIfEmpty(sale.Notes), sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("order number already exists: %w", err)
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de venta.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.Quantity,
		item.UnitPrice, item.Total, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

const saleSelect = `
	SELECT s.id, s.company_id, s.customer_id, s.user_id, s.order_number, s.status,
	       s.subtotal, s.tax, s.total, COALESCE(s.notes, ''), s.created_at, s.updated_at,
	       c.id, c.company_id, c.name, c.email, c.phone, c.address, c.type, c.created_at, c.updated_at,
	       u.name, u.email
	FROM sales s
	JOIN customers c ON c.id = s.customer_id
	LEFT JOIN users u ON u.id = s.user_id`

// GetByID obtiene una venta con cliente y usuario creador. companyID vacío
// omite el filtro de tenant.
func (r *SaleRepo) GetByID(id, companyID string) (*entity.Sale, error) {
	query := saleSelect + " WHERE s.id = $1"
	args := []any{id}
	if companyID != "" {
		args = append(args, companyID)
		query += " AND s.company_id = $2"
	}
	sale, err := scanSale(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return sale, nil
}

// GetItems obtiene las líneas de una venta con su producto.
func (r *SaleRepo) GetItems(saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT si.id, si.sale_id, si.product_id, si.quantity, si.unit_price, si.total, si.created_at,
		       p.id, p.company_id, p.sku, p.name, p.description, p.cost_price, p.selling_price, p.created_at, p.updated_at
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		WHERE si.sale_id = $1 ORDER BY si.created_at`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	var list []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		var p entity.Product
		if err := rows.Scan(
			&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Total, &it.CreatedAt,
			&p.ID, &p.CompanyID, &p.SKU, &p.Name, &p.Description, &p.CostPrice, &p.SellingPrice, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		it.Product = &p
		list = append(list, &it)
	}
	return list, rows.Err()
}

// UpdateStatus fija el estado de la venta.
func (r *SaleRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE sales SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	return nil
}

// UpdateMeta persiste los campos editables en pending: notes, tax y total.
func (r *SaleRepo) UpdateMeta(sale *entity.Sale) error {
	query := `
		UPDATE sales SET notes = $2, tax = $3, total = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, nullIfEmpty(sale.Notes), sale.Tax, sale.Total, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	return nil
}

// List devuelve ventas con filtros. Limit cero lista sin paginar (reportes).
func (r *SaleRepo) List(filter repository.SaleFilter) ([]*entity.Sale, error) {
	query := saleSelect + " WHERE 1=1"
	args := []any{}
	if filter.CompanyID != "" {
		args = append(args, filter.CompanyID)
		query += fmt.Sprintf(" AND s.company_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND s.status = $%d", len(args))
	}
	if filter.CustomerID != "" {
		args = append(args, filter.CustomerID)
		query += fmt.Sprintf(" AND s.customer_id = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND s.order_number ILIKE $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND s.created_at >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND s.created_at < $%d", len(args))
	}
	query += " ORDER BY s.created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, sale)
	}
	return list, rows.Err()
}

// DeleteItems elimina las líneas de una venta.
func (r *SaleRepo) DeleteItems(saleID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sale_items WHERE sale_id = $1`, saleID)
	if err != nil {
		return fmt.Errorf("delete sale items: %w", err)
	}
	return nil
}

// Delete elimina la cabecera de una venta.
func (r *SaleRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return nil
}

type rowLike interface {
	Scan(dest ...any) error
}

func scanSale(row rowLike) (*entity.Sale, error) {
	var s entity.Sale
	var c entity.Customer
	var userName, userEmail *string
	err := row.Scan(
		&s.ID, &s.CompanyID, &s.CustomerID, &s.UserID, &s.OrderNumber, &s.Status,
		&s.Subtotal, &s.Tax, &s.Total, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
		&c.ID, &c.CompanyID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.Type, &c.CreatedAt, &c.UpdatedAt,
		&userName, &userEmail,
	)
	if err != nil {
		return nil, err
	}
	s.Customer = &c
	if userName != nil {
		s.User = &entity.User{ID: s.UserID, Name: derefStr(userName), Email: derefStr(userEmail)}
	}
	return &s, nil
}
