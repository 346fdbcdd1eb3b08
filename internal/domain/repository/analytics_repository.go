package repository

import "github.com/shopspring/decimal"

// StatusTotal acumulado de órdenes por estado.
type StatusTotal struct {
	Count int
	Total decimal.Decimal
}

// AnalyticsRepository define el puerto de agregaciones de solo lectura para
// el dashboard. No introduce modelo de datos nuevo: agrega sobre las tablas
// de ventas, compras e inventario.
type AnalyticsRepository interface {
	CountProducts(companyID string) (int, error)
	CountCustomers(companyID string) (int, error)
	CountLowStock(companyID string) (int, error)
	SalesByStatus(companyID string) (map[string]StatusTotal, error)
	PurchasesByStatus(companyID string) (map[string]StatusTotal, error)
}
