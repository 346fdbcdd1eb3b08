package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación del puerto PurchaseRepository sobre PostgreSQL
// (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador de persistencia para compras.
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste la cabecera de la compra.
func (r *PurchaseRepo) Create(purchase *entity.Purchase) error {
	query := `
		INSERT INTO purchases (id, company_id, supplier_id, user_id, order_number, status, subtotal, tax, total, notes, expected_delivery, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		purchase.ID, purchase.CompanyID, purchase.SupplierID, purchase.UserID,
		purchase.OrderNumber, purchase.Status, purchase.Subtotal, purchase.Tax, purchase.Total,
		nullIfEmpty(purchase.Notes), purchase.ExpectedDelivery,
		purchase.CreatedAt, purchase.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("order number already exists: %w", err)
		}
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de compra (received_quantity inicia en 0).
func (r *PurchaseRepo) CreateItem(item *entity.PurchaseItem) error {
	query := `
		INSERT INTO purchase_items (id, purchase_id, product_id, quantity, received_quantity, unit_price, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.PurchaseID, item.ProductID, item.Quantity,
		item.ReceivedQuantity, item.UnitPrice, item.Total, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase item: %w", err)
	}
	return nil
}

const purchaseSelect = `
	SELECT pu.id, pu.company_id, pu.supplier_id, pu.user_id, pu.order_number, pu.status,
	       pu.subtotal, pu.tax, pu.total, COALESCE(pu.notes, ''), pu.expected_delivery, pu.created_at, pu.updated_at,
	       c.id, c.company_id, c.name, c.email, c.phone, c.address, c.type, c.created_at, c.updated_at,
	       u.name, u.email
	FROM purchases pu
	JOIN customers c ON c.id = pu.supplier_id
	LEFT JOIN users u ON u.id = pu.user_id`

// GetByID obtiene una compra con proveedor y usuario creador. companyID
// vacío omite el filtro de tenant.
func (r *PurchaseRepo) GetByID(id, companyID string) (*entity.Purchase, error) {
	query := purchaseSelect + " WHERE pu.id = $1"
	args := []any{id}
	if companyID != "" {
		args = append(args, companyID)
		query += " AND pu.company_id = $2"
	}
	purchase, err := scanPurchase(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return purchase, nil
}

// GetItems obtiene las líneas de una compra con su producto.
func (r *PurchaseRepo) GetItems(purchaseID string) ([]*entity.PurchaseItem, error) {
	query := `
		SELECT pi.id, pi.purchase_id, pi.product_id, pi.quantity, pi.received_quantity, pi.unit_price, pi.total, pi.created_at,
		       p.id, p.company_id, p.sku, p.name, p.description, p.cost_price, p.selling_price, p.created_at, p.updated_at
		FROM purchase_items pi
		JOIN products p ON p.id = pi.product_id
		WHERE pi.purchase_id = $1 ORDER BY pi.created_at`
	rows, err := r.q.Query(context.Background(), query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("list purchase items: %w", err)
	}
	defer rows.Close()

	var list []*entity.PurchaseItem
	for rows.Next() {
		var it entity.PurchaseItem
		var p entity.Product
		if err := rows.Scan(
			&it.ID, &it.PurchaseID, &it.ProductID, &it.Quantity, &it.ReceivedQuantity, &it.UnitPrice, &it.Total, &it.CreatedAt,
			&p.ID, &p.CompanyID, &p.SKU, &p.Name, &p.Description, &p.CostPrice, &p.SellingPrice, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan purchase item: %w", err)
		}
		it.Product = &p
		list = append(list, &it)
	}
	return list, rows.Err()
}

// UpdateStatus fija el estado de la compra.
func (r *PurchaseRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE purchases SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update purchase status: %w", err)
	}
	return nil
}

// UpdateMeta persiste los campos editables en pending: notes, tax, total y
// fecha esperada de entrega.
func (r *PurchaseRepo) UpdateMeta(purchase *entity.Purchase) error {
	query := `
		UPDATE purchases SET notes = $2, tax = $3, total = $4, expected_delivery = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		purchase.ID, nullIfEmpty(purchase.Notes), purchase.Tax, purchase.Total,
		purchase.ExpectedDelivery, purchase.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase: %w", err)
	}
	return nil
}

// UpdateItemReceived fija la cantidad recibida acumulada de una línea.
func (r *PurchaseRepo) UpdateItemReceived(itemID string, received int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE purchase_items SET received_quantity = $2 WHERE id = $1`, itemID, received)
	if err != nil {
		return fmt.Errorf("update purchase item received: %w", err)
	}
	return nil
}

// List devuelve compras con filtros. Limit cero lista sin paginar (reportes).
func (r *PurchaseRepo) List(filter repository.PurchaseFilter) ([]*entity.Purchase, error) {
	query := purchaseSelect + " WHERE 1=1"
	args := []any{}
	if filter.CompanyID != "" {
		args = append(args, filter.CompanyID)
		query += fmt.Sprintf(" AND pu.company_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND pu.status = $%d", len(args))
	}
	if filter.SupplierID != "" {
		args = append(args, filter.SupplierID)
		query += fmt.Sprintf(" AND pu.supplier_id = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND pu.order_number ILIKE $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND pu.created_at >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND pu.created_at < $%d", len(args))
	}
	query += " ORDER BY pu.created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	var list []*entity.Purchase
	for rows.Next() {
		purchase, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, purchase)
	}
	return list, rows.Err()
}

// DeleteItems elimina las líneas de una compra.
func (r *PurchaseRepo) DeleteItems(purchaseID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM purchase_items WHERE purchase_id = $1`, purchaseID)
	if err != nil {
		return fmt.Errorf("delete purchase items: %w", err)
	}
	return nil
}

// Delete elimina la cabecera de una compra.
func (r *PurchaseRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM purchases WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete purchase: %w", err)
	}
	return nil
}

func scanPurchase(row rowLike) (*entity.Purchase, error) {
	var p entity.Purchase
	var c entity.Customer
	var userName, userEmail *string
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.SupplierID, &p.UserID, &p.OrderNumber, &p.Status,
		&p.Subtotal, &p.Tax, &p.Total, &p.Notes, &p.ExpectedDelivery, &p.CreatedAt, &p.UpdatedAt,
		&c.ID, &c.CompanyID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.Type, &c.CreatedAt, &c.UpdatedAt,
		&userName, &userEmail,
	)
	if err != nil {
		return nil, err
	}
	p.Supplier = &c
	if userName != nil {
		p.User = &entity.User{ID: p.UserID, Name: derefStr(userName), Email: derefStr(userEmail)}
	}
	return &p, nil
}
