package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/application/purchases"
)

// PurchaseHandler maneja las órdenes de compra. El stock entra al recibir
// mercancía (total o parcial), nunca al crear la orden.
type PurchaseHandler struct {
	uc *purchases.PurchasesUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *purchases.PurchasesUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de compra
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreatePurchaseRequest  true  "supplier_id + items con unit_price"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.SupplierID == "" || len(in.Items) == 0 {
		return badRequest(c, "VALIDATION", "supplier_id e items son requeridos")
	}
	purchase, err := h.uc.Create(c.Context(), ScopeFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(purchase)
}

// GetByID godoc
// @Summary      Detalle de una orden de compra
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "purchase id"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	purchase, err := h.uc.GetByID(ScopeFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(purchase)
}

// List godoc
// @Summary      Listar órdenes de compra
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Param        status       query  string  false  "pending | ordered | partial | received | cancelled"
// @Param        search       query  string  false  "sobre order_number"
// @Param        supplier_id  query  string  false  "filtrar por proveedor"
// @Success      200  {object}  dto.PurchaseListResponse
// @Router       /api/purchases [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "VALIDATION", "paginación inválida")
	}
	page.DefaultPage()
	list, err := h.uc.List(ScopeFrom(c), c.Query("status"), c.Query("search"), c.Query("supplier_id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Update godoc
// @Summary      Actualizar orden pending (notas, impuesto, fecha esperada)
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "purchase id"
// @Param        body  body  dto.UpdatePurchaseRequest  true  "notes, tax, expected_delivery"
// @Success      200   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse  "la orden ya no está pending"
// @Router       /api/purchases/{id} [put]
func (h *PurchaseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	purchase, err := h.uc.Update(ScopeFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(purchase)
}

// UpdateStatus godoc
// @Summary      Transicionar estado de la orden
// @Description  partial y received no se fijan por aquí: solo el endpoint de recepción los produce.
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "purchase id"
// @Param        body  body  dto.UpdateStatusRequest  true  "status destino"
// @Success      200   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse  "transición inválida"
// @Router       /api/purchases/{id}/status [patch]
func (h *PurchaseHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Status == "" {
		return badRequest(c, "VALIDATION", "status es requerido")
	}
	purchase, err := h.uc.UpdateStatus(ScopeFrom(c), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(purchase)
}

// Receive godoc
// @Summary      Recibir mercancía (total o parcial, suma stock)
// @Description  Sin items recibe todo lo pendiente. Las cantidades se topan en lo que falta por recibir de cada línea.
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "purchase id"
// @Param        body  body  dto.ReceivePurchaseRequest  false  "items a recibir (opcional)"
// @Success      200   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse  "la orden no está ordered/partial"
// @Router       /api/purchases/{id}/receive [post]
func (h *PurchaseHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceivePurchaseRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "INVALID_BODY", "cuerpo inválido")
		}
	}
	purchase, err := h.uc.Receive(c.Context(), ScopeFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(purchase)
}

// Delete godoc
// @Summary      Eliminar orden de compra pending/cancelled sin recepciones
// @Tags         purchases
// @Security     BearerAuth
// @Param        id  path  string  true  "purchase id"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse  "solo pending o cancelled se borran"
// @Failure      409  {object}  dto.ErrorResponse  "ya tiene mercancía recibida"
// @Router       /api/purchases/{id} [delete]
func (h *PurchaseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), ScopeFrom(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
