package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ProductUseCase casos de uso CRUD para productos. El stock vive aparte en
// Inventory; aquí solo se crea su fila inicial en cero.
type ProductUseCase struct {
	repo    repository.ProductRepository
	invRepo repository.InventoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, invRepo repository.InventoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, invRepo: invRepo}
}

// Create crea un producto con su fila de inventario en cero. El SKU es único
// por empresa; uno repetido devuelve ErrDuplicate.
func (uc *ProductUseCase) Create(scope domain.Scope, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	companyID, err := scope.CompanyForCreate(in.CompanyID)
	if err != nil {
		return nil, err
	}
	if in.CostPrice.LessThan(decimal.Zero) || in.SellingPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCompanyAndSKU(companyID, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		SKU:          in.SKU,
		Name:         in.Name,
		Description:  in.Description,
		CostPrice:    in.CostPrice,
		SellingPrice: in.SellingPrice,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	inv := &entity.Inventory{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		ProductID:     product.ID,
		Quantity:      0,
		MinStockLevel: entity.DefaultMinStockLevel,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.invRepo.Upsert(inv); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto de la empresa del caller.
func (uc *ProductUseCase) GetByID(scope domain.Scope, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || !scope.CanAccess(product.CompanyID) {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. El SKU es inmutable.
func (uc *ProductUseCase) Update(scope domain.Scope, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || !scope.CanAccess(product.CompanyID) {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.CostPrice != nil {
		if in.CostPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.CostPrice = *in.CostPrice
	}
	if in.SellingPrice != nil {
		if in.SellingPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.SellingPrice = *in.SellingPrice
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con búsqueda por sku/nombre.
func (uc *ProductUseCase) List(scope domain.Scope, search string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(repository.ProductFilter{
		CompanyID: scope.CompanyFilter(),
		Search:    search,
		Limit:     page.Limit,
		Offset:    page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un producto. Con órdenes asociadas el repo devuelve
// ErrConflict por la FK.
func (uc *ProductUseCase) Delete(scope domain.Scope, id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil || !scope.CanAccess(product.CompanyID) {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		CompanyID:    p.CompanyID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		CostPrice:    p.CostPrice,
		SellingPrice: p.SellingPrice,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
