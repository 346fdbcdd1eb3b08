package purchases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/erp-api/internal/application/dto"
	appinv "github.com/jhoicas/erp-api/internal/application/inventory"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/billing"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/order"
	"github.com/jhoicas/erp-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// PurchasesUseCase casos de uso del ciclo de vida de órdenes de compra.
// Crear la orden no toca inventario: el stock entra al recibir mercancía,
// posiblemente en entregas parciales.
type PurchasesUseCase struct {
	txRunner     TxRunner
	purchaseRepo repository.PurchaseRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
}

// NewPurchasesUseCase construye el caso de uso.
func NewPurchasesUseCase(
	txRunner TxRunner,
	purchaseRepo repository.PurchaseRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
) *PurchasesUseCase {
	return &PurchasesUseCase{
		txRunner:     txRunner,
		purchaseRepo: purchaseRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
	}
}

// Create crea una orden de compra en pending. El proveedor debe ser un
// tercero con tipo supplier o both; el precio unitario lo fija el caller.
func (uc *PurchasesUseCase) Create(ctx context.Context, scope domain.Scope, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	companyID, err := scope.CompanyForCreate(in.CompanyID)
	if err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Tax.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	supplier, err := uc.customerRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil || supplier.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if !supplier.CanSupply() {
		return nil, domain.ErrInvalidInput
	}

	ids := make([]string, 0, len(in.Items))
	seen := make(map[string]bool, len(in.Items))
	for _, it := range in.Items {
		if !seen[it.ProductID] {
			seen[it.ProductID] = true
			ids = append(ids, it.ProductID)
		}
	}
	list, err := uc.productRepo.ListByIDs(companyID, ids)
	if err != nil {
		return nil, err
	}
	products := make(map[string]*entity.Product, len(list))
	for _, p := range list {
		products[p.ID] = p
	}
	for _, id := range ids {
		if products[id] == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	purchase := &entity.Purchase{
		ID:               uuid.New().String(),
		CompanyID:        companyID,
		SupplierID:       supplier.ID,
		UserID:           scope.UserID,
		OrderNumber:      order.NewNumber(order.PrefixPurchase),
		Status:           order.PurchasePending,
		Tax:              in.Tax,
		Notes:            in.Notes,
		ExpectedDelivery: in.ExpectedDelivery,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	subtotal := decimal.Zero
	for _, it := range in.Items {
		if it.Quantity < 1 || it.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product := products[it.ProductID]
		lineTotal := billing.LineTotal(it.Quantity, it.UnitPrice)
		subtotal = subtotal.Add(lineTotal)
		purchase.Items = append(purchase.Items, &entity.PurchaseItem{
			ID:         uuid.New().String(),
			PurchaseID: purchase.ID,
			ProductID:  product.ID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			Total:      lineTotal,
			CreatedAt:  now,
			Product:    product,
		})
	}
	purchase.Subtotal = subtotal
	purchase.Total = subtotal.Add(purchase.Tax)
	purchase.Supplier = supplier

	err = uc.txRunner.RunPurchase(ctx, func(purchaseRepo repository.PurchaseRepository, _ repository.InventoryRepository) error {
		if err := purchaseRepo.Create(purchase); err != nil {
			return err
		}
		for _, item := range purchase.Items {
			if err := purchaseRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToPurchaseResponse(purchase), nil
}

// GetByID obtiene una compra con proveedor y líneas.
func (uc *PurchasesUseCase) GetByID(scope domain.Scope, id string) (*dto.PurchaseResponse, error) {
	purchase, err := uc.loadWithItems(scope, id)
	if err != nil {
		return nil, err
	}
	return ToPurchaseResponse(purchase), nil
}

// List lista compras con filtros de estado, búsqueda y proveedor.
func (uc *PurchasesUseCase) List(scope domain.Scope, status, search, supplierID string, page dto.PageRequest) (*dto.PurchaseListResponse, error) {
	if status != "" && !order.ValidPurchaseStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	list, err := uc.purchaseRepo.List(repository.PurchaseFilter{
		CompanyID:  scope.CompanyFilter(),
		Status:     status,
		Search:     search,
		SupplierID: supplierID,
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToPurchaseResponse(p))
	}
	return &dto.PurchaseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update edita notes/tax/fecha esperada de una orden pending y recalcula el
// total.
func (uc *PurchasesUseCase) Update(scope domain.Scope, id string, in dto.UpdatePurchaseRequest) (*dto.PurchaseResponse, error) {
	purchase, err := uc.loadWithItems(scope, id)
	if err != nil {
		return nil, err
	}
	if purchase.Status != order.PurchasePending {
		return nil, domain.ErrInvalidState
	}
	if in.Notes != nil {
		purchase.Notes = *in.Notes
	}
	if in.Tax != nil {
		if in.Tax.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		purchase.Tax = *in.Tax
	}
	if in.ExpectedDelivery != nil {
		purchase.ExpectedDelivery = in.ExpectedDelivery
	}
	purchase.Total = purchase.Subtotal.Add(purchase.Tax)
	purchase.UpdatedAt = time.Now()
	if err := uc.purchaseRepo.UpdateMeta(purchase); err != nil {
		return nil, err
	}
	return ToPurchaseResponse(purchase), nil
}

// UpdateStatus transiciona la compra según la máquina de estados. partial y
// received no se fijan por aquí: solo los produce la recepción de mercancía.
func (uc *PurchasesUseCase) UpdateStatus(scope domain.Scope, id, status string) (*dto.PurchaseResponse, error) {
	if !order.ValidPurchaseStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	if status == order.PurchasePartial || status == order.PurchaseReceived {
		return nil, domain.ErrInvalidState
	}
	purchase, err := uc.loadWithItems(scope, id)
	if err != nil {
		return nil, err
	}
	if !order.CanTransitionPurchase(purchase.Status, status) {
		return nil, &order.TransitionError{Entity: "purchase", From: purchase.Status, To: status}
	}
	if err := uc.purchaseRepo.UpdateStatus(purchase.ID, status); err != nil {
		return nil, err
	}
	purchase.Status = status
	purchase.UpdatedAt = time.Now()
	return ToPurchaseResponse(purchase), nil
}

// Receive registra la llegada de mercancía de una orden ordered o partial.
// Cada línea se capa a su cantidad pendiente; con items vacío se recibe todo
// lo pendiente. Al final la orden queda received si todas las líneas están
// completas, partial si no.
func (uc *PurchasesUseCase) Receive(ctx context.Context, scope domain.Scope, id string, in dto.ReceivePurchaseRequest) (*dto.PurchaseResponse, error) {
	purchase, err := uc.loadWithItems(scope, id)
	if err != nil {
		return nil, err
	}
	if purchase.Status != order.PurchaseOrdered && purchase.Status != order.PurchasePartial {
		return nil, domain.ErrInvalidState
	}

	byProduct := make(map[string]*entity.PurchaseItem, len(purchase.Items))
	for _, item := range purchase.Items {
		byProduct[item.ProductID] = item
	}

	// received: cuánto entra por línea en esta recepción, ya capado.
	type receipt struct {
		item *entity.PurchaseItem
		qty  int
	}
	var receipts []receipt
	if len(in.Items) == 0 {
		for _, item := range purchase.Items {
			if out := item.Outstanding(); out > 0 {
				receipts = append(receipts, receipt{item: item, qty: out})
			}
		}
	} else {
		// Entradas repetidas del mismo producto se suman antes de capar: el
		// tope contra lo pendiente aplica al total por línea, no por entrada.
		requested := make(map[string]int, len(in.Items))
		productIDs := make([]string, 0, len(in.Items))
		for _, r := range in.Items {
			if byProduct[r.ProductID] == nil {
				return nil, domain.ErrNotFound
			}
			if r.Quantity < 1 {
				return nil, domain.ErrInvalidInput
			}
			if _, ok := requested[r.ProductID]; !ok {
				productIDs = append(productIDs, r.ProductID)
			}
			requested[r.ProductID] += r.Quantity
		}
		for _, productID := range productIDs {
			item := byProduct[productID]
			qty := requested[productID]
			if out := item.Outstanding(); qty > out {
				qty = out
			}
			if qty > 0 {
				receipts = append(receipts, receipt{item: item, qty: qty})
			}
		}
	}
	if len(receipts) == 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	err = uc.txRunner.RunPurchase(ctx, func(purchaseRepo repository.PurchaseRepository, invRepo repository.InventoryRepository) error {
		stockLines := make([]appinv.StockLine, 0, len(receipts))
		for _, r := range receipts {
			r.item.ReceivedQuantity += r.qty
			if err := purchaseRepo.UpdateItemReceived(r.item.ID, r.item.ReceivedQuantity); err != nil {
				return err
			}
			name := ""
			if r.item.Product != nil {
				name = r.item.Product.Name
			}
			stockLines = append(stockLines, appinv.StockLine{ProductID: r.item.ProductID, Name: name, Quantity: r.qty})
		}
		if err := appinv.AddStockTx(invRepo, purchase.CompanyID, stockLines, now, true); err != nil {
			return err
		}
		status := order.PurchaseReceived
		for _, item := range purchase.Items {
			if item.Outstanding() > 0 {
				status = order.PurchasePartial
				break
			}
		}
		purchase.Status = status
		return purchaseRepo.UpdateStatus(purchase.ID, status)
	})
	if err != nil {
		return nil, err
	}
	purchase.UpdatedAt = now
	return ToPurchaseResponse(purchase), nil
}

// Delete borra una compra con sus líneas. Solo pending o cancelled se
// borran, y nunca con mercancía ya recibida: el stock ingresado la hace
// parte del historial (una cancelada tras recepción parcial se conserva).
func (uc *PurchasesUseCase) Delete(ctx context.Context, scope domain.Scope, id string) error {
	purchase, err := uc.loadWithItems(scope, id)
	if err != nil {
		return err
	}
	if purchase.Status != order.PurchasePending && purchase.Status != order.PurchaseCancelled {
		return domain.ErrInvalidState
	}
	for _, item := range purchase.Items {
		if item.ReceivedQuantity > 0 {
			return domain.ErrConflict
		}
	}
	return uc.txRunner.RunPurchase(ctx, func(purchaseRepo repository.PurchaseRepository, _ repository.InventoryRepository) error {
		if err := purchaseRepo.DeleteItems(purchase.ID); err != nil {
			return err
		}
		return purchaseRepo.Delete(purchase.ID)
	})
}

func (uc *PurchasesUseCase) loadWithItems(scope domain.Scope, id string) (*entity.Purchase, error) {
	purchase, err := uc.purchaseRepo.GetByID(id, scope.CompanyFilter())
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.purchaseRepo.GetItems(purchase.ID)
	if err != nil {
		return nil, err
	}
	purchase.Items = items
	return purchase, nil
}

// ToPurchaseResponse mapea la entidad a su DTO de salida.
func ToPurchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	if p == nil {
		return nil
	}
	resp := &dto.PurchaseResponse{
		ID:               p.ID,
		CompanyID:        p.CompanyID,
		SupplierID:       p.SupplierID,
		UserID:           p.UserID,
		OrderNumber:      p.OrderNumber,
		Status:           p.Status,
		Subtotal:         p.Subtotal,
		Tax:              p.Tax,
		Total:            p.Total,
		Notes:            p.Notes,
		ExpectedDelivery: p.ExpectedDelivery,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.Supplier != nil {
		resp.Supplier = &dto.CustomerResponse{
			ID:        p.Supplier.ID,
			CompanyID: p.Supplier.CompanyID,
			Name:      p.Supplier.Name,
			Email:     p.Supplier.Email,
			Phone:     p.Supplier.Phone,
			Address:   p.Supplier.Address,
			Type:      p.Supplier.Type,
			CreatedAt: p.Supplier.CreatedAt,
			UpdatedAt: p.Supplier.UpdatedAt,
		}
	}
	for _, it := range p.Items {
		item := dto.PurchaseItemResponse{
			ID:               it.ID,
			ProductID:        it.ProductID,
			Quantity:         it.Quantity,
			ReceivedQuantity: it.ReceivedQuantity,
			UnitPrice:        it.UnitPrice,
			Total:            it.Total,
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
