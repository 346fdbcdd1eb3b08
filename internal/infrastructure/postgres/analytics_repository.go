package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/erp-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo agregaciones de solo lectura para el dashboard. Agrega sobre
// las tablas existentes, sin modelo de datos propio.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de agregaciones.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

func (r *AnalyticsRepo) count(query string, companyID string) (int, error) {
	args := []any{}
	if companyID != "" {
		args = append(args, companyID)
	}
	var n int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// CountProducts cuenta los productos del tenant.
func (r *AnalyticsRepo) CountProducts(companyID string) (int, error) {
	query := `SELECT COUNT(*) FROM products`
	if companyID != "" {
		query += ` WHERE company_id = $1`
	}
	return r.count(query, companyID)
}

// CountCustomers cuenta los terceros del tenant.
func (r *AnalyticsRepo) CountCustomers(companyID string) (int, error) {
	query := `SELECT COUNT(*) FROM customers`
	if companyID != "" {
		query += ` WHERE company_id = $1`
	}
	return r.count(query, companyID)
}

// CountLowStock cuenta las filas de inventario en o bajo su mínimo.
func (r *AnalyticsRepo) CountLowStock(companyID string) (int, error) {
	query := `SELECT COUNT(*) FROM inventory WHERE quantity <= min_stock_level`
	if companyID != "" {
		query += ` AND company_id = $1`
	}
	return r.count(query, companyID)
}

func (r *AnalyticsRepo) byStatus(table, companyID string) (map[string]repository.StatusTotal, error) {
	query := fmt.Sprintf(`SELECT status, COUNT(*), COALESCE(SUM(total), 0) FROM %s`, table)
	args := []any{}
	if companyID != "" {
		args = append(args, companyID)
		query += ` WHERE company_id = $1`
	}
	query += ` GROUP BY status`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s by status: %w", table, err)
	}
	defer rows.Close()

	result := make(map[string]repository.StatusTotal)
	for rows.Next() {
		var status string
		var t repository.StatusTotal
		if err := rows.Scan(&status, &t.Count, &t.Total); err != nil {
			return nil, fmt.Errorf("scan status total: %w", err)
		}
		result[status] = t
	}
	return result, rows.Err()
}

// SalesByStatus agrega conteo y total de ventas por estado.
func (r *AnalyticsRepo) SalesByStatus(companyID string) (map[string]repository.StatusTotal, error) {
	return r.byStatus("sales", companyID)
}

// PurchasesByStatus agrega conteo y total de compras por estado.
func (r *AnalyticsRepo) PurchasesByStatus(companyID string) (map[string]repository.StatusTotal, error) {
	return r.byStatus("purchases", companyID)
}
