package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/application/inventory"
)

// InventoryHandler maneja el stock por producto.
type InventoryHandler struct {
	uc *inventory.InventoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.InventoryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// List godoc
// @Summary      Listar inventario
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.InventoryListResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "VALIDATION", "paginación inválida")
	}
	page.DefaultPage()
	list, err := h.uc.List(ScopeFrom(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// LowStock godoc
// @Summary      Productos en o bajo su stock mínimo
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.InventoryResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.uc.LowStock(ScopeFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// GetByProduct godoc
// @Summary      Stock de un producto
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        productId  path  string  true  "product id"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId} [get]
func (h *InventoryHandler) GetByProduct(c *fiber.Ctx) error {
	inv, err := h.uc.GetByProduct(ScopeFrom(c), c.Params("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inv)
}

// Adjust godoc
// @Summary      Ajustar stock (add | remove | set)
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.AdjustInventoryRequest  true  "product_id, quantity, type"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse  "stock insuficiente o tipo de ajuste desconocido"
// @Router       /api/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.ProductID == "" || in.Type == "" {
		return badRequest(c, "VALIDATION", "product_id y type son requeridos")
	}
	inv, err := h.uc.Adjust(c.Context(), ScopeFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inv)
}

// Update godoc
// @Summary      Actualizar fila de inventario (cantidad, mínimo, ubicación)
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        productId  path  string  true  "product id"
// @Param        body       body  dto.UpdateInventoryRequest  true  "campos a actualizar"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	inv, err := h.uc.Update(c.Context(), ScopeFrom(c), c.Params("productId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inv)
}
