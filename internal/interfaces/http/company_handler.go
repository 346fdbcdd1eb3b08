package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/application/usecase"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// CompanyHandler maneja la administración de empresas/tenants.
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler construye el handler.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Create godoc
// @Summary      Crear empresa (superadmin)
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateCompanyRequest  true  "empresa + usuario admin opcional"
// @Success      201   {object}  dto.CompanyResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Name == "" {
		return badRequest(c, "VALIDATION", "name es requerido")
	}
	company, err := h.uc.Create(c.Context(), ScopeFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(company)
}

// GetByID godoc
// @Summary      Detalle de una empresa
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "company id"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [get]
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	company, err := h.uc.GetByID(ScopeFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(company)
}

// Update godoc
// @Summary      Actualizar empresa
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "company id"
// @Param        body  body  dto.UpdateCompanyRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [put]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	company, err := h.uc.Update(ScopeFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(company)
}

// List godoc
// @Summary      Listar empresas (superadmin)
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "active | inactive"
// @Param        search  query  string  false  "sobre name/email"
// @Success      200  {object}  dto.CompanyListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "VALIDATION", "paginación inválida")
	}
	page.DefaultPage()
	filter := repository.CompanyFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	list, err := h.uc.List(ScopeFrom(c), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Delete godoc
// @Summary      Eliminar empresa sin datos (superadmin)
// @Tags         companies
// @Security     BearerAuth
// @Param        id  path  string  true  "company id"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [delete]
func (h *CompanyHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(ScopeFrom(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
