package reports

import (
	"bytes"
	"encoding/csv"
	"time"

	"github.com/jhoicas/erp-api/internal/application/dto"
	appinv "github.com/jhoicas/erp-api/internal/application/inventory"
	"github.com/jhoicas/erp-api/internal/application/purchases"
	"github.com/jhoicas/erp-api/internal/application/sales"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/order"
	"github.com/jhoicas/erp-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// ReportsUseCase reportes de ventas/compras (JSON y CSV) y dashboard.
// Los reportes listan sin paginar dentro del rango de fechas pedido.
type ReportsUseCase struct {
	saleRepo      repository.SaleRepository
	purchaseRepo  repository.PurchaseRepository
	invRepo       repository.InventoryRepository
	analyticsRepo repository.AnalyticsRepository
}

// NewReportsUseCase construye el caso de uso.
func NewReportsUseCase(
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	invRepo repository.InventoryRepository,
	analyticsRepo repository.AnalyticsRepository,
) *ReportsUseCase {
	return &ReportsUseCase{
		saleRepo:      saleRepo,
		purchaseRepo:  purchaseRepo,
		invRepo:       invRepo,
		analyticsRepo: analyticsRepo,
	}
}

// parseRange interpreta start/end como fechas YYYY-MM-DD; end es inclusivo
// (se traduce a un límite exclusivo al día siguiente).
func parseRange(start, end string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if start != "" {
		t, err := time.Parse(dateLayout, start)
		if err != nil {
			return nil, nil, domain.ErrInvalidInput
		}
		from = &t
	}
	if end != "" {
		t, err := time.Parse(dateLayout, end)
		if err != nil {
			return nil, nil, domain.ErrInvalidInput
		}
		excl := t.AddDate(0, 0, 1)
		to = &excl
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, domain.ErrInvalidInput
	}
	return from, to, nil
}

// SalesReport arma el reporte de ventas del rango con resumen por estado.
func (uc *ReportsUseCase) SalesReport(scope domain.Scope, filter dto.ReportFilter) (*dto.SalesReportResponse, error) {
	if filter.Status != "" && !order.ValidSaleStatus(filter.Status) {
		return nil, domain.ErrInvalidInput
	}
	from, to, err := parseRange(filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, err
	}
	list, err := uc.saleRepo.List(repository.SaleFilter{
		CompanyID:  scope.CompanyFilter(),
		Status:     filter.Status,
		CustomerID: filter.PartyID,
		From:       from,
		To:         to,
	})
	if err != nil {
		return nil, err
	}
	resp := &dto.SalesReportResponse{
		Sales: make([]dto.SaleResponse, 0, len(list)),
		Summary: dto.ReportSummary{
			TotalAmount: decimal.Zero,
			TotalTax:    decimal.Zero,
			ByStatus:    make(map[string]dto.StatusSummary),
		},
	}
	for _, s := range list {
		resp.Sales = append(resp.Sales, *sales.ToSaleResponse(s))
		resp.Summary.TotalOrders++
		resp.Summary.TotalAmount = resp.Summary.TotalAmount.Add(s.Total)
		resp.Summary.TotalTax = resp.Summary.TotalTax.Add(s.Tax)
		st := resp.Summary.ByStatus[s.Status]
		st.Count++
		st.Total = st.Total.Add(s.Total)
		resp.Summary.ByStatus[s.Status] = st
	}
	return resp, nil
}

// PurchasesReport arma el reporte de compras del rango con resumen por estado.
func (uc *ReportsUseCase) PurchasesReport(scope domain.Scope, filter dto.ReportFilter) (*dto.PurchasesReportResponse, error) {
	if filter.Status != "" && !order.ValidPurchaseStatus(filter.Status) {
		return nil, domain.ErrInvalidInput
	}
	from, to, err := parseRange(filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, err
	}
	list, err := uc.purchaseRepo.List(repository.PurchaseFilter{
		CompanyID:  scope.CompanyFilter(),
		Status:     filter.Status,
		SupplierID: filter.PartyID,
		From:       from,
		To:         to,
	})
	if err != nil {
		return nil, err
	}
	resp := &dto.PurchasesReportResponse{
		Purchases: make([]dto.PurchaseResponse, 0, len(list)),
		Summary: dto.ReportSummary{
			TotalAmount: decimal.Zero,
			TotalTax:    decimal.Zero,
			ByStatus:    make(map[string]dto.StatusSummary),
		},
	}
	for _, p := range list {
		resp.Purchases = append(resp.Purchases, *purchases.ToPurchaseResponse(p))
		resp.Summary.TotalOrders++
		resp.Summary.TotalAmount = resp.Summary.TotalAmount.Add(p.Total)
		resp.Summary.TotalTax = resp.Summary.TotalTax.Add(p.Tax)
		st := resp.Summary.ByStatus[p.Status]
		st.Count++
		st.Total = st.Total.Add(p.Total)
		resp.Summary.ByStatus[p.Status] = st
	}
	return resp, nil
}

// SalesCSV exporta el reporte de ventas como CSV.
func (uc *ReportsUseCase) SalesCSV(scope domain.Scope, filter dto.ReportFilter) ([]byte, error) {
	report, err := uc.SalesReport(scope, filter)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"order_number", "date", "customer", "status", "subtotal", "tax", "total"}); err != nil {
		return nil, err
	}
	for _, s := range report.Sales {
		customer := ""
		if s.Customer != nil {
			customer = s.Customer.Name
		}
		row := []string{
			s.OrderNumber,
			s.CreatedAt.Format(dateLayout),
			customer,
			s.Status,
			s.Subtotal.String(),
			s.Tax.String(),
			s.Total.String(),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PurchasesCSV exporta el reporte de compras como CSV.
func (uc *ReportsUseCase) PurchasesCSV(scope domain.Scope, filter dto.ReportFilter) ([]byte, error) {
	report, err := uc.PurchasesReport(scope, filter)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"order_number", "date", "supplier", "status", "subtotal", "tax", "total"}); err != nil {
		return nil, err
	}
	for _, p := range report.Purchases {
		supplier := ""
		if p.Supplier != nil {
			supplier = p.Supplier.Name
		}
		row := []string{
			p.OrderNumber,
			p.CreatedAt.Format(dateLayout),
			supplier,
			p.Status,
			p.Subtotal.String(),
			p.Tax.String(),
			p.Total.String(),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Dashboard arma las métricas agregadas del tenant: conteos de catálogo,
// órdenes por estado y filas con stock bajo.
func (uc *ReportsUseCase) Dashboard(scope domain.Scope) (*dto.DashboardResponse, error) {
	companyID := scope.CompanyFilter()
	products, err := uc.analyticsRepo.CountProducts(companyID)
	if err != nil {
		return nil, err
	}
	customers, err := uc.analyticsRepo.CountCustomers(companyID)
	if err != nil {
		return nil, err
	}
	lowStockCount, err := uc.analyticsRepo.CountLowStock(companyID)
	if err != nil {
		return nil, err
	}
	salesByStatus, err := uc.analyticsRepo.SalesByStatus(companyID)
	if err != nil {
		return nil, err
	}
	purchasesByStatus, err := uc.analyticsRepo.PurchasesByStatus(companyID)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.invRepo.ListLowStock(companyID)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		Products:      products,
		Customers:     customers,
		LowStockItems: lowStockCount,
		SalesByStatus: make(map[string]dto.StatusSummary, len(salesByStatus)),
		PurchByStatus: make(map[string]dto.StatusSummary, len(purchasesByStatus)),
		LowStock:      make([]dto.InventoryResponse, 0, len(lowStock)),
	}
	for status, t := range salesByStatus {
		resp.SalesByStatus[status] = dto.StatusSummary{Count: t.Count, Total: t.Total}
	}
	for status, t := range purchasesByStatus {
		resp.PurchByStatus[status] = dto.StatusSummary{Count: t.Count, Total: t.Total}
	}
	for _, inv := range lowStock {
		resp.LowStock = append(resp.LowStock, *appinv.ToInventoryResponse(inv))
	}
	return resp, nil
}
