package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// CustomerUseCase casos de uso CRUD para terceros (clientes/proveedores).
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

func validCustomerType(t string) bool {
	switch t {
	case entity.CustomerTypeCustomer, entity.CustomerTypeSupplier, entity.CustomerTypeBoth:
		return true
	}
	return false
}

// Create crea un tercero. Type por defecto es customer.
func (uc *CustomerUseCase) Create(scope domain.Scope, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	companyID, err := scope.CompanyForCreate(in.CompanyID)
	if err != nil {
		return nil, err
	}
	if in.Type == "" {
		in.Type = entity.CustomerTypeCustomer
	}
	if !validCustomerType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		Type:      in.Type,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un tercero de la empresa del caller. Un registro de otro
// tenant responde como no encontrado (no filtra existencia).
func (uc *CustomerUseCase) GetByID(scope domain.Scope, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil || !scope.CanAccess(customer.CompanyID) {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(customer), nil
}

// Update actualiza un tercero.
func (uc *CustomerUseCase) Update(scope domain.Scope, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil || !scope.CanAccess(customer.CompanyID) {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		customer.Name = *in.Name
	}
	if in.Email != nil {
		customer.Email = *in.Email
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.Address != nil {
		customer.Address = *in.Address
	}
	if in.Type != nil {
		if !validCustomerType(*in.Type) {
			return nil, domain.ErrInvalidInput
		}
		customer.Type = *in.Type
	}
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List lista terceros con filtros de tipo y búsqueda.
func (uc *CustomerUseCase) List(scope domain.Scope, typeFilter, search string, page dto.PageRequest) (*dto.CustomerListResponse, error) {
	if typeFilter != "" && !validCustomerType(typeFilter) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	list, err := uc.repo.List(repository.CustomerFilter{
		CompanyID: scope.CompanyFilter(),
		Type:      typeFilter,
		Search:    search,
		Limit:     page.Limit,
		Offset:    page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCustomerResponse(c))
	}
	return &dto.CustomerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un tercero. Con órdenes asociadas el repo devuelve
// ErrConflict por la FK.
func (uc *CustomerUseCase) Delete(scope domain.Scope, id string) error {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if customer == nil || !scope.CanAccess(customer.CompanyID) {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		Type:      c.Type,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
