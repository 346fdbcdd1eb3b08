package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// InventoryUseCase casos de uso de inventario: ajustes manuales, metadatos de
// la fila, consultas y stock bajo. Los ajustes corren en transacción con
// bloqueo de fila (SELECT FOR UPDATE).
type InventoryUseCase struct {
	txRunner    TxRunner
	invRepo     repository.InventoryRepository
	productRepo repository.ProductRepository
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(txRunner TxRunner, invRepo repository.InventoryRepository, productRepo repository.ProductRepository) *InventoryUseCase {
	return &InventoryUseCase{txRunner: txRunner, invRepo: invRepo, productRepo: productRepo}
}

// Adjust aplica un ajuste manual de stock (add/remove/set). remove con stock
// insuficiente rechaza la operación completa; la fila se crea al vuelo si el
// producto aún no tiene inventario.
func (uc *InventoryUseCase) Adjust(ctx context.Context, scope domain.Scope, in dto.AdjustInventoryRequest) (*dto.InventoryResponse, error) {
	if in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	switch in.Type {
	case entity.AdjustmentAdd, entity.AdjustmentRemove, entity.AdjustmentSet:
	default:
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !scope.CanAccess(product.CompanyID) {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var result *entity.Inventory
	err = uc.txRunner.Run(ctx, func(invRepo repository.InventoryRepository) error {
		inv, err := invRepo.GetByProductForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if inv == nil {
			inv = &entity.Inventory{
				ID:            uuid.New().String(),
				CompanyID:     product.CompanyID,
				ProductID:     product.ID,
				Quantity:      0,
				MinStockLevel: entity.DefaultMinStockLevel,
				CreatedAt:     now,
			}
		}
		switch in.Type {
		case entity.AdjustmentAdd:
			inv.Quantity += in.Quantity
			restocked := now
			inv.LastRestocked = &restocked
		case entity.AdjustmentRemove:
			if inv.Quantity < in.Quantity {
				return &domain.StockShortageError{Items: []domain.StockShortage{{
					ProductID:   product.ID,
					ProductName: product.Name,
					Requested:   in.Quantity,
					Available:   inv.Quantity,
				}}}
			}
			inv.Quantity -= in.Quantity
		case entity.AdjustmentSet:
			inv.Quantity = in.Quantity
		}
		inv.UpdatedAt = now
		if err := invRepo.Upsert(inv); err != nil {
			return err
		}
		result = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Product = product
	return ToInventoryResponse(result), nil
}

// Update fija metadatos de la fila (cantidad absoluta, ubicación, mínimo).
func (uc *InventoryUseCase) Update(ctx context.Context, scope domain.Scope, productID string, in dto.UpdateInventoryRequest) (*dto.InventoryResponse, error) {
	if in.Quantity != nil && *in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.MinStockLevel != nil && *in.MinStockLevel < 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !scope.CanAccess(product.CompanyID) {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var result *entity.Inventory
	err = uc.txRunner.Run(ctx, func(invRepo repository.InventoryRepository) error {
		inv, err := invRepo.GetByProductForUpdate(productID)
		if err != nil {
			return err
		}
		if inv == nil {
			inv = &entity.Inventory{
				ID:            uuid.New().String(),
				CompanyID:     product.CompanyID,
				ProductID:     product.ID,
				Quantity:      0,
				MinStockLevel: entity.DefaultMinStockLevel,
				CreatedAt:     now,
			}
		}
		if in.Quantity != nil {
			inv.Quantity = *in.Quantity
		}
		if in.Location != nil {
			inv.Location = *in.Location
		}
		if in.MinStockLevel != nil {
			inv.MinStockLevel = *in.MinStockLevel
		}
		inv.UpdatedAt = now
		if err := invRepo.Upsert(inv); err != nil {
			return err
		}
		result = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Product = product
	return ToInventoryResponse(result), nil
}

// GetByProduct devuelve la fila de inventario de un producto. Si el producto
// existe pero aún no tiene fila, responde una vista en cero con el mínimo
// por defecto (sin persistirla).
func (uc *InventoryUseCase) GetByProduct(scope domain.Scope, productID string) (*dto.InventoryResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !scope.CanAccess(product.CompanyID) {
		return nil, domain.ErrNotFound
	}
	inv, err := uc.invRepo.GetByProduct(productID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		inv = &entity.Inventory{
			CompanyID:     product.CompanyID,
			ProductID:     product.ID,
			Quantity:      0,
			MinStockLevel: entity.DefaultMinStockLevel,
		}
	}
	inv.Product = product
	return ToInventoryResponse(inv), nil
}

// List lista el inventario de la empresa con paginación.
func (uc *InventoryUseCase) List(scope domain.Scope, page dto.PageRequest) (*dto.InventoryListResponse, error) {
	page.DefaultPage()
	list, err := uc.invRepo.List(scope.CompanyFilter(), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *ToInventoryResponse(inv))
	}
	return &dto.InventoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// LowStock devuelve las filas con cantidad en o bajo su nivel mínimo,
// ordenadas de menor a mayor cantidad.
func (uc *InventoryUseCase) LowStock(scope domain.Scope) ([]dto.InventoryResponse, error) {
	list, err := uc.invRepo.ListLowStock(scope.CompanyFilter())
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *ToInventoryResponse(inv))
	}
	return items, nil
}

// ToInventoryResponse mapea la entidad a su DTO de salida.
func ToInventoryResponse(inv *entity.Inventory) *dto.InventoryResponse {
	if inv == nil {
		return nil
	}
	resp := &dto.InventoryResponse{
		ID:            inv.ID,
		CompanyID:     inv.CompanyID,
		ProductID:     inv.ProductID,
		Quantity:      inv.Quantity,
		MinStockLevel: inv.MinStockLevel,
		Location:      inv.Location,
		LastRestocked: inv.LastRestocked,
		LowStock:      inv.IsLowStock(),
		UpdatedAt:     inv.UpdatedAt,
	}
	if inv.Product != nil {
		resp.Product = &dto.ProductResponse{
			ID:           inv.Product.ID,
			CompanyID:    inv.Product.CompanyID,
			SKU:          inv.Product.SKU,
			Name:         inv.Product.Name,
			Description:  inv.Product.Description,
			CostPrice:    inv.Product.CostPrice,
			SellingPrice: inv.Product.SellingPrice,
			CreatedAt:    inv.Product.CreatedAt,
			UpdatedAt:    inv.Product.UpdatedAt,
		}
	}
	return resp
}
