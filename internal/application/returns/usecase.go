package returns

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/erp-api/internal/application/dto"
	appinv "github.com/jhoicas/erp-api/internal/application/inventory"
	"github.com/jhoicas/erp-api/internal/application/sales"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/billing"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/order"
	"github.com/jhoicas/erp-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ReturnsUseCase casos de uso de devoluciones de venta. Una devolución se
// crea en pending contra una venta confirmed/shipped/delivered; el stock
// vuelve al inventario solo al completarla. La suma de devoluciones no
// canceladas de una línea nunca excede su cantidad ordenada.
type ReturnsUseCase struct {
	txRunner   TxRunner
	returnRepo repository.SalesReturnRepository
	saleRepo   repository.SaleRepository
}

// NewReturnsUseCase construye el caso de uso.
func NewReturnsUseCase(txRunner TxRunner, returnRepo repository.SalesReturnRepository, saleRepo repository.SaleRepository) *ReturnsUseCase {
	return &ReturnsUseCase{txRunner: txRunner, returnRepo: returnRepo, saleRepo: saleRepo}
}

// ReturnableItems devuelve la venta con sus líneas y cuánto admite devolver
// cada una (ordenado menos devoluciones no canceladas).
func (uc *ReturnsUseCase) ReturnableItems(scope domain.Scope, saleID string) (*dto.ReturnableItemsResponse, error) {
	sale, err := uc.loadSale(scope, saleID)
	if err != nil {
		return nil, err
	}
	returned, err := uc.returnedBySaleItem(sale.ID)
	if err != nil {
		return nil, err
	}
	returnable := order.ReturnableSaleStatus(sale.Status)
	items := make([]dto.ReturnableItemResponse, 0, len(sale.Items))
	for _, it := range sale.Items {
		remaining := it.Quantity - returned[it.ID]
		row := dto.ReturnableItemResponse{
			SaleItemID:        it.ID,
			ProductID:         it.ProductID,
			OrderedQuantity:   it.Quantity,
			ReturnedQuantity:  returned[it.ID],
			RemainingQuantity: remaining,
			UnitPrice:         it.UnitPrice,
			CanReturn:         returnable && remaining > 0,
		}
		if it.Product != nil {
			row.Product = &dto.ProductResponse{
				ID:           it.Product.ID,
				CompanyID:    it.Product.CompanyID,
				SKU:          it.Product.SKU,
				Name:         it.Product.Name,
				Description:  it.Product.Description,
				CostPrice:    it.Product.CostPrice,
				SellingPrice: it.Product.SellingPrice,
				CreatedAt:    it.Product.CreatedAt,
				UpdatedAt:    it.Product.UpdatedAt,
			}
		}
		items = append(items, row)
	}
	return &dto.ReturnableItemsResponse{
		Sale:            *sales.ToSaleResponse(sale),
		ReturnableItems: items,
	}, nil
}

// Create crea una devolución en pending. Cada línea referencia una línea de
// la venta original y queda acotada a su cantidad restante; el impuesto se
// prorratea del de la venta según el subtotal devuelto.
func (uc *ReturnsUseCase) Create(ctx context.Context, scope domain.Scope, in dto.CreateReturnRequest) (*dto.ReturnResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	sale, err := uc.loadSale(scope, in.SaleID)
	if err != nil {
		return nil, err
	}
	if !order.ReturnableSaleStatus(sale.Status) {
		return nil, domain.ErrInvalidState
	}

	saleItems := make(map[string]*entity.SaleItem, len(sale.Items))
	for _, it := range sale.Items {
		saleItems[it.ID] = it
	}
	returned, err := uc.returnedBySaleItem(sale.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	ret := &entity.SalesReturn{
		ID:           uuid.New().String(),
		CompanyID:    sale.CompanyID,
		SaleID:       sale.ID,
		UserID:       scope.UserID,
		ReturnNumber: order.NewNumber(order.PrefixReturn),
		Status:       order.ReturnPending,
		Reason:       in.Reason,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	subtotal := decimal.Zero
	seen := make(map[string]bool, len(in.Items))
	for _, r := range in.Items {
		if r.Quantity < 1 || seen[r.SaleItemID] {
			return nil, domain.ErrInvalidInput
		}
		seen[r.SaleItemID] = true
		saleItem := saleItems[r.SaleItemID]
		if saleItem == nil {
			return nil, domain.ErrNotFound
		}
		remaining := saleItem.Quantity - returned[saleItem.ID]
		if r.Quantity > remaining {
			return nil, &domain.ReturnQuantityError{
				SaleItemID:      saleItem.ID,
				Requested:       r.Quantity,
				Remaining:       remaining,
				Ordered:         saleItem.Quantity,
				AlreadyReturned: returned[saleItem.ID],
			}
		}
		lineTotal := billing.LineTotal(r.Quantity, saleItem.UnitPrice)
		subtotal = subtotal.Add(lineTotal)
		ret.Items = append(ret.Items, &entity.SalesReturnItem{
			ID:            uuid.New().String(),
			SalesReturnID: ret.ID,
			SaleItemID:    saleItem.ID,
			ProductID:     saleItem.ProductID,
			Quantity:      r.Quantity,
			UnitPrice:     saleItem.UnitPrice,
			Total:         lineTotal,
			CreatedAt:     now,
			Product:       saleItem.Product,
		})
	}
	ret.Subtotal = subtotal
	ret.Tax = billing.ApportionTax(subtotal, sale.Tax, sale.Subtotal)
	ret.Total = subtotal.Add(ret.Tax)

	err = uc.txRunner.RunReturn(ctx, func(returnRepo repository.SalesReturnRepository, _ repository.InventoryRepository) error {
		if err := returnRepo.Create(ret); err != nil {
			return err
		}
		for _, item := range ret.Items {
			if err := returnRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToReturnResponse(ret), nil
}

// GetByID obtiene una devolución con sus líneas.
func (uc *ReturnsUseCase) GetByID(scope domain.Scope, id string) (*dto.ReturnResponse, error) {
	ret, err := uc.loadWithItems(scope, id)
	if err != nil {
		return nil, err
	}
	return ToReturnResponse(ret), nil
}

// List lista devoluciones con filtros de estado y búsqueda.
func (uc *ReturnsUseCase) List(scope domain.Scope, status, search string, page dto.PageRequest) (*dto.ReturnListResponse, error) {
	if status != "" && !order.ValidReturnStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	list, err := uc.returnRepo.List(repository.ReturnFilter{
		CompanyID: scope.CompanyFilter(),
		Status:    status,
		Search:    search,
		Limit:     page.Limit,
		Offset:    page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReturnResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *ToReturnResponse(r))
	}
	return &dto.ReturnListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// UpdateStatus transiciona la devolución según la máquina de estados. Pasar
// a completed restaura el stock de todas las líneas en la misma transacción.
func (uc *ReturnsUseCase) UpdateStatus(ctx context.Context, scope domain.Scope, id, status string) (*dto.ReturnResponse, error) {
	if !order.ValidReturnStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	ret, err := uc.loadWithItems(scope, id)
	if err != nil {
		return nil, err
	}
	if !order.CanTransitionReturn(ret.Status, status) {
		return nil, &order.TransitionError{Entity: "sales_return", From: ret.Status, To: status}
	}

	now := time.Now()
	if status == order.ReturnCompleted {
		lines := make([]appinv.StockLine, 0, len(ret.Items))
		for _, it := range ret.Items {
			name := ""
			if it.Product != nil {
				name = it.Product.Name
			}
			lines = append(lines, appinv.StockLine{ProductID: it.ProductID, Name: name, Quantity: it.Quantity})
		}
		err = uc.txRunner.RunReturn(ctx, func(returnRepo repository.SalesReturnRepository, invRepo repository.InventoryRepository) error {
			if err := appinv.AddStockTx(invRepo, ret.CompanyID, lines, now, false); err != nil {
				return err
			}
			return returnRepo.UpdateStatus(ret.ID, status)
		})
	} else {
		err = uc.returnRepo.UpdateStatus(ret.ID, status)
	}
	if err != nil {
		return nil, err
	}
	ret.Status = status
	ret.UpdatedAt = now
	return ToReturnResponse(ret), nil
}

// Delete borra una devolución pending con sus líneas. Aprobada, completada
// o cancelada se conserva como historial.
func (uc *ReturnsUseCase) Delete(ctx context.Context, scope domain.Scope, id string) error {
	ret, err := uc.loadWithItems(scope, id)
	if err != nil {
		return err
	}
	if ret.Status != order.ReturnPending {
		return domain.ErrInvalidState
	}
	return uc.txRunner.RunReturn(ctx, func(returnRepo repository.SalesReturnRepository, _ repository.InventoryRepository) error {
		if err := returnRepo.DeleteItems(ret.ID); err != nil {
			return err
		}
		return returnRepo.Delete(ret.ID)
	})
}

// returnedBySaleItem acumula las cantidades ya devueltas por línea de venta,
// ignorando devoluciones canceladas.
func (uc *ReturnsUseCase) returnedBySaleItem(saleID string) (map[string]int, error) {
	rets, err := uc.returnRepo.ListBySaleWithItems(saleID, true)
	if err != nil {
		return nil, err
	}
	returned := make(map[string]int)
	for _, ret := range rets {
		for _, it := range ret.Items {
			returned[it.SaleItemID] += it.Quantity
		}
	}
	return returned, nil
}

func (uc *ReturnsUseCase) loadSale(scope domain.Scope, saleID string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(saleID, scope.CompanyFilter())
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItems(sale.ID)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return sale, nil
}

func (uc *ReturnsUseCase) loadWithItems(scope domain.Scope, id string) (*entity.SalesReturn, error) {
	ret, err := uc.returnRepo.GetByID(id, scope.CompanyFilter())
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.returnRepo.GetItems(ret.ID)
	if err != nil {
		return nil, err
	}
	ret.Items = items
	return ret, nil
}

// ToReturnResponse mapea la entidad a su DTO de salida.
func ToReturnResponse(r *entity.SalesReturn) *dto.ReturnResponse {
	if r == nil {
		return nil
	}
	resp := &dto.ReturnResponse{
		ID:           r.ID,
		CompanyID:    r.CompanyID,
		SaleID:       r.SaleID,
		UserID:       r.UserID,
		ReturnNumber: r.ReturnNumber,
		Status:       r.Status,
		Subtotal:     r.Subtotal,
		Tax:          r.Tax,
		Total:        r.Total,
		Reason:       r.Reason,
		Notes:        r.Notes,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	for _, it := range r.Items {
		item := dto.ReturnItemResponse{
			ID:         it.ID,
			SaleItemID: it.SaleItemID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			Total:      it.Total,
		}
		if it.Product != nil {
			item.Product = &dto.ProductResponse{
				ID:           it.Product.ID,
				CompanyID:    it.Product.CompanyID,
				SKU:          it.Product.SKU,
				Name:         it.Product.Name,
				Description:  it.Product.Description,
				CostPrice:    it.Product.CostPrice,
				SellingPrice: it.Product.SellingPrice,
				CreatedAt:    it.Product.CreatedAt,
				UpdatedAt:    it.Product.UpdatedAt,
			}
		}
		resp.Items = append(resp.Items, item)
	}
	return resp
}
