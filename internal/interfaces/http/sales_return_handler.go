package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/application/returns"
)

// SalesReturnHandler maneja devoluciones de venta. El stock vuelve al
// inventario cuando la devolución pasa a completed, no antes.
type SalesReturnHandler struct {
	uc *returns.ReturnsUseCase
}

// NewSalesReturnHandler construye el handler.
func NewSalesReturnHandler(uc *returns.ReturnsUseCase) *SalesReturnHandler {
	return &SalesReturnHandler{uc: uc}
}

// ReturnableItems godoc
// @Summary      Líneas devolvibles de una venta
// @Description  Por línea: cantidad ordenada, ya devuelta (sin contar devoluciones canceladas) y restante.
// @Tags         returns
// @Produce      json
// @Security     BearerAuth
// @Param        saleId  path  string  true  "sale id"
// @Success      200  {object}  dto.ReturnableItemsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/returns/returnable/{saleId} [get]
func (h *SalesReturnHandler) ReturnableItems(c *fiber.Ctx) error {
	out, err := h.uc.ReturnableItems(ScopeFrom(c), c.Params("saleId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear devolución contra una venta
// @Description  Solo contra ventas confirmed/shipped/delivered. El impuesto se prorratea del original.
// @Tags         returns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateReturnRequest  true  "sale_id + items (sale_item_id, quantity)"
// @Success      201   {object}  dto.ReturnResponse
// @Failure      400   {object}  dto.ErrorResponse  "cantidad excede lo restante o la venta no admite devoluciones"
// @Router       /api/returns [post]
func (h *SalesReturnHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.SaleID == "" || len(in.Items) == 0 {
		return badRequest(c, "VALIDATION", "sale_id e items son requeridos")
	}
	ret, err := h.uc.Create(c.Context(), ScopeFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ret)
}

// GetByID godoc
// @Summary      Detalle de una devolución
// @Tags         returns
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "return id"
// @Success      200  {object}  dto.ReturnResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/returns/{id} [get]
func (h *SalesReturnHandler) GetByID(c *fiber.Ctx) error {
	ret, err := h.uc.GetByID(ScopeFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ret)
}

// List godoc
// @Summary      Listar devoluciones
// @Tags         returns
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "pending | approved | completed | cancelled"
// @Param        search  query  string  false  "sobre return_number"
// @Success      200  {object}  dto.ReturnListResponse
// @Router       /api/returns [get]
func (h *SalesReturnHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "VALIDATION", "paginación inválida")
	}
	page.DefaultPage()
	list, err := h.uc.List(ScopeFrom(c), c.Query("status"), c.Query("search"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// UpdateStatus godoc
// @Summary      Transicionar estado de la devolución
// @Description  completed devuelve las unidades al inventario en la misma transacción.
// @Tags         returns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "return id"
// @Param        body  body  dto.UpdateStatusRequest  true  "status destino"
// @Success      200   {object}  dto.ReturnResponse
// @Failure      400   {object}  dto.ErrorResponse  "transición inválida"
// @Router       /api/returns/{id}/status [patch]
func (h *SalesReturnHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Status == "" {
		return badRequest(c, "VALIDATION", "status es requerido")
	}
	ret, err := h.uc.UpdateStatus(c.Context(), ScopeFrom(c), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ret)
}

// Delete godoc
// @Summary      Eliminar devolución pending
// @Tags         returns
// @Security     BearerAuth
// @Param        id  path  string  true  "return id"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse  "la devolución ya fue procesada"
// @Router       /api/returns/{id} [delete]
func (h *SalesReturnHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), ScopeFrom(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
