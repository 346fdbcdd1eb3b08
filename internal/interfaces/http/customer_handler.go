package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/application/usecase"
)

// CustomerHandler maneja clientes y proveedores (una sola tabla de terceros,
// diferenciados por type: customer | supplier | both).
type CustomerHandler struct {
	uc *usecase.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cliente/proveedor
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateCustomerRequest  true  "name requerido; type: customer|supplier|both"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Name == "" {
		return badRequest(c, "VALIDATION", "name es requerido")
	}
	customer, err := h.uc.Create(ScopeFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// GetByID godoc
// @Summary      Detalle de un cliente/proveedor
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "customer id"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	customer, err := h.uc.GetByID(ScopeFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customer)
}

// Update godoc
// @Summary      Actualizar cliente/proveedor
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "customer id"
// @Param        body  body  dto.UpdateCustomerRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	customer, err := h.uc.Update(ScopeFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customer)
}

// List godoc
// @Summary      Listar clientes/proveedores
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        type    query  string  false  "customer | supplier | both"
// @Param        search  query  string  false  "sobre name/email"
// @Success      200  {object}  dto.CustomerListResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "VALIDATION", "paginación inválida")
	}
	page.DefaultPage()
	list, err := h.uc.List(ScopeFrom(c), c.Query("type"), c.Query("search"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Delete godoc
// @Summary      Eliminar cliente/proveedor sin órdenes
// @Tags         customers
// @Security     BearerAuth
// @Param        id  path  string  true  "customer id"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(ScopeFrom(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
