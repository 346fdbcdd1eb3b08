package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/application/sales"
)

// SaleHandler maneja las órdenes de venta. Crear una orden deduce el stock
// de inmediato; cancelarla o eliminarla lo restaura.
type SaleHandler struct {
	uc *sales.SalesUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SalesUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de venta (deduce stock)
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateSaleRequest  true  "customer_id + items"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse  "stock insuficiente (detalle por producto)"
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.CustomerID == "" || len(in.Items) == 0 {
		return badRequest(c, "VALIDATION", "customer_id e items son requeridos")
	}
	sale, err := h.uc.Create(c.Context(), ScopeFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// GetByID godoc
// @Summary      Detalle de una orden de venta
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "sale id"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.uc.GetByID(ScopeFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sale)
}

// List godoc
// @Summary      Listar órdenes de venta
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        status       query  string  false  "pending | confirmed | shipped | delivered | cancelled"
// @Param        search       query  string  false  "sobre order_number"
// @Param        customer_id  query  string  false  "filtrar por cliente"
// @Success      200  {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "VALIDATION", "paginación inválida")
	}
	page.DefaultPage()
	list, err := h.uc.List(ScopeFrom(c), c.Query("status"), c.Query("search"), c.Query("customer_id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Update godoc
// @Summary      Actualizar orden pending (notas, impuesto)
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "sale id"
// @Param        body  body  dto.UpdateSaleRequest  true  "notes, tax"
// @Success      200   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse  "la orden ya no está pending"
// @Router       /api/sales/{id} [put]
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	sale, err := h.uc.Update(ScopeFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sale)
}

// UpdateStatus godoc
// @Summary      Transicionar estado de la orden
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "sale id"
// @Param        body  body  dto.UpdateStatusRequest  true  "status destino"
// @Success      200   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse  "transición inválida"
// @Router       /api/sales/{id}/status [patch]
func (h *SaleHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Status == "" {
		return badRequest(c, "VALIDATION", "status es requerido")
	}
	sale, err := h.uc.UpdateStatus(c.Context(), ScopeFrom(c), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sale)
}

// Delete godoc
// @Summary      Eliminar orden de venta no entregada (restaura stock)
// @Tags         sales
// @Security     BearerAuth
// @Param        id  path  string  true  "sale id"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse  "una delivered no se borra"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), ScopeFrom(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PDF godoc
// @Summary      Orden de venta en PDF
// @Tags         sales
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id  path  string  true  "sale id"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/pdf [get]
func (h *SaleHandler) PDF(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.PDF(ScopeFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="orden-venta-%s.pdf"`, c.Params("id")))
	return c.Send(pdfBytes)
}
