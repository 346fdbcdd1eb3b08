package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/application/reports"
)

// ReportHandler maneja reportes, exportes CSV y dashboard.
type ReportHandler struct {
	uc *reports.ReportsUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportsUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func reportFilterFrom(c *fiber.Ctx) dto.ReportFilter {
	return dto.ReportFilter{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		PartyID:   c.Query("party_id"),
		Status:    c.Query("status"),
	}
}

// Sales godoc
// @Summary      Reporte de ventas
// @Description  Fechas YYYY-MM-DD, ambas inclusivas. Incluye resumen por estado.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        start_date  query  string  false  "desde (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "hasta (YYYY-MM-DD)"
// @Param        party_id    query  string  false  "filtrar por cliente"
// @Param        status      query  string  false  "filtrar por estado"
// @Success      200  {object}  dto.SalesReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	report, err := h.uc.SalesReport(ScopeFrom(c), reportFilterFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// Purchases godoc
// @Summary      Reporte de compras
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        start_date  query  string  false  "desde (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "hasta (YYYY-MM-DD)"
// @Param        party_id    query  string  false  "filtrar por proveedor"
// @Param        status      query  string  false  "filtrar por estado"
// @Success      200  {object}  dto.PurchasesReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/purchases [get]
func (h *ReportHandler) Purchases(c *fiber.Ctx) error {
	report, err := h.uc.PurchasesReport(ScopeFrom(c), reportFilterFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// SalesCSV godoc
// @Summary      Exportar ventas a CSV
// @Tags         reports
// @Produce      text/csv
// @Security     BearerAuth
// @Param        start_date  query  string  false  "desde (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "hasta (YYYY-MM-DD)"
// @Success      200  {file}  binary
// @Router       /api/reports/sales/csv [get]
func (h *ReportHandler) SalesCSV(c *fiber.Ctx) error {
	data, err := h.uc.SalesCSV(ScopeFrom(c), reportFilterFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="ventas.csv"`)
	return c.Send(data)
}

// PurchasesCSV godoc
// @Summary      Exportar compras a CSV
// @Tags         reports
// @Produce      text/csv
// @Security     BearerAuth
// @Param        start_date  query  string  false  "desde (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "hasta (YYYY-MM-DD)"
// @Success      200  {file}  binary
// @Router       /api/reports/purchases/csv [get]
func (h *ReportHandler) PurchasesCSV(c *fiber.Ctx) error {
	data, err := h.uc.PurchasesCSV(ScopeFrom(c), reportFilterFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="compras.csv"`)
	return c.Send(data)
}

// Dashboard godoc
// @Summary      Métricas del dashboard
// @Description  Conteos de productos, terceros y stock bajo, más acumulados por estado de ventas y compras.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(ScopeFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
