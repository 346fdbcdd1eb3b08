package dto

import (
	"github.com/shopspring/decimal"
)

// ReportFilter filtros comunes de los reportes de ventas/compras.
// PartyID filtra por cliente (ventas) o proveedor (compras).
type ReportFilter struct {
	StartDate string `query:"start_date"` // YYYY-MM-DD
	EndDate   string `query:"end_date"`   // YYYY-MM-DD
	PartyID   string `query:"party_id"`
	Status    string `query:"status"`
}

// StatusSummary acumulado por estado dentro de un reporte.
type StatusSummary struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// SalesReportResponse reporte de ventas con resumen.
type SalesReportResponse struct {
	Sales   []SaleResponse `json:"sales"`
	Summary ReportSummary  `json:"summary"`
}

// PurchasesReportResponse reporte de compras con resumen.
type PurchasesReportResponse struct {
	Purchases []PurchaseResponse `json:"purchases"`
	Summary   ReportSummary      `json:"summary"`
}

// ReportSummary totales de un reporte.
type ReportSummary struct {
	TotalOrders int                      `json:"total_orders"`
	TotalAmount decimal.Decimal          `json:"total_amount"`
	TotalTax    decimal.Decimal          `json:"total_tax"`
	ByStatus    map[string]StatusSummary `json:"by_status"`
}

// DashboardResponse métricas del dashboard.
type DashboardResponse struct {
	Products      int                      `json:"products"`
	Customers     int                      `json:"customers"`
	LowStockItems int                      `json:"low_stock_items"`
	SalesByStatus map[string]StatusSummary `json:"sales_by_status"`
	PurchByStatus map[string]StatusSummary `json:"purchases_by_status"`
	LowStock      []InventoryResponse      `json:"low_stock"`
}
