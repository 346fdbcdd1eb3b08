package sales

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

// SalesUseCase casos de uso del ciclo de vida de órdenes de venta. El stock
// se deduce al crear la orden; cancelarla (o borrarla) lo restaura.
type SalesUseCase struct {
	txRunner     TxRunner
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	companyRepo  repository.CompanyRepository
	pdf          PDFGenerator
}

// NewSalesUseCase construye el caso de uso.
func NewSalesUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	companyRepo repository.CompanyRepository,
	pdf PDFGenerator,
) *SalesUseCase {
	return &SalesUseCase{
		txRunner:     txRunner,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		companyRepo:  companyRepo,
		pdf:          pdf,
	}
}

// Create crea una orden de venta en pending deduciendo el stock de todas las
// líneas en la misma transacción. Si alguna línea no alcanza, no se persiste
// nada y el error lista todos los faltantes.
func (uc *SalesUseCase) Create(ctx context.Context, scope domain.Scope, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
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

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if !customer.CanSell() {
		return nil, domain.ErrInvalidInput
	}

	products, err := uc.resolveProducts(companyID, productIDsOf(in.Items))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		CustomerID:  customer.ID,
		UserID:      scope.UserID,
		OrderNumber: order.NewNumber(order.PrefixSale),
		Status:      order.SalePending,
		Tax:         in.Tax,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	subtotal := decimal.Zero
	stockLines := make([]appinv.StockLine, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
		product := products[it.ProductID]
		unitPrice := product.SellingPrice
		if it.UnitPrice != nil {
			if it.UnitPrice.LessThan(decimal.Zero) {
				return nil, domain.ErrInvalidInput
			}
			unitPrice = *it.UnitPrice
		}
		lineTotal := billing.LineTotal(it.Quantity, unitPrice)
		subtotal = subtotal.Add(lineTotal)
		sale.Items = append(sale.Items, &entity.SaleItem{
			ID:        uuid.New().String(),
			SaleID:    sale.ID,
			ProductID: product.ID,
			Quantity:  it.Quantity,
			UnitPrice: unitPrice,
			Total:     lineTotal,
			CreatedAt: now,
			Product:   product,
		})
		stockLines = append(stockLines, appinv.StockLine{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  it.Quantity,
		})
	}
	sale.Subtotal = subtotal
	sale.Total = subtotal.Add(sale.Tax)
	sale.Customer = customer

	err = uc.txRunner.RunSale(ctx, func(saleRepo repository.SaleRepository, invRepo repository.InventoryRepository) error {
		if err := appinv.DeductStockTx(invRepo, stockLines, now); err != nil {
			return err
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, item := range sale.Items {
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToSaleResponse(sale), nil
}

// GetByID obtiene una venta con cliente y líneas.
func (uc *SalesUseCase) GetByID(scope domain.Scope, id string) (*dto.SaleResponse, error) {
	sale, err := uc.loadWithItems(scope, id)
	if err != nil {
		return nil, err
	}
	return ToSaleResponse(sale), nil
}

// List lista ventas con filtros de estado, búsqueda y cliente.
func (uc *SalesUseCase) List(scope domain.Scope, status, search, customerID string, page dto.PageRequest) (*dto.SaleListResponse, error) {
	if status != "" && !order.ValidSaleStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	list, err := uc.saleRepo.List(repository.SaleFilter{
		CompanyID:  scope.CompanyFilter(),
		Status:     status,
		Search:     search,
		CustomerID: customerID,
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *ToSaleResponse(s))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update edita notes/tax de una orden pending y recalcula el total. Las
// líneas son inmutables: para cambiarlas se cancela y se crea otra orden.
func (uc *SalesUseCase) Update(scope domain.Scope, id string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	sale, err := uc.loadWithItems(scope, id)
	if err != nil {
		return nil, err
	}
	if sale.Status != order.SalePending {
		return nil, domain.ErrInvalidState
	}
	if in.Notes != nil {
		sale.Notes = *in.Notes
	}
	if in.Tax != nil {
		if in.Tax.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		sale.Tax = *in.Tax
	}
	sale.Total = sale.Subtotal.Add(sale.Tax)
	sale.UpdatedAt = time.Now()
	if err := uc.saleRepo.UpdateMeta(sale); err != nil {
		return nil, err
	}
	return ToSaleResponse(sale), nil
}

// UpdateStatus transiciona la venta según la máquina de estados. Pasar a
// cancelled restaura el stock de todas las líneas en la misma transacción.
func (uc *SalesUseCase) UpdateStatus(ctx context.Context, scope domain.Scope, id, status string) (*dto.SaleResponse, error) {
	if !order.ValidSaleStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	sale, err := uc.loadWithItems(scope, id)
	if err != nil {
		return nil, err
	}
	if !order.CanTransitionSale(sale.Status, status) {
		return nil, &order.TransitionError{Entity: "sale", From: sale.Status, To: status}
	}

	now := time.Now()
	if status == order.SaleCancelled {
		err = uc.txRunner.RunSale(ctx, func(saleRepo repository.SaleRepository, invRepo repository.InventoryRepository) error {
			if err := appinv.AddStockTx(invRepo, sale.CompanyID, stockLinesOf(sale.Items), now, false); err != nil {
				return err
			}
			return saleRepo.UpdateStatus(sale.ID, status)
		})
	} else {
		err = uc.saleRepo.UpdateStatus(sale.ID, status)
	}
	if err != nil {
		return nil, err
	}
	sale.Status = status
	sale.UpdatedAt = now
	return ToSaleResponse(sale), nil
}

// Delete borra una venta con sus líneas. Una delivered no se borra: ya es
// historial entregado. Si no estaba cancelada, el stock deducido se restaura
// en la misma transacción.
func (uc *SalesUseCase) Delete(ctx context.Context, scope domain.Scope, id string) error {
	sale, err := uc.loadWithItems(scope, id)
	if err != nil {
		return err
	}
	if sale.Status == order.SaleDelivered {
		return domain.ErrInvalidState
	}
	now := time.Now()
	return uc.txRunner.RunSale(ctx, func(saleRepo repository.SaleRepository, invRepo repository.InventoryRepository) error {
		if sale.Status != order.SaleCancelled {
			if err := appinv.AddStockTx(invRepo, sale.CompanyID, stockLinesOf(sale.Items), now, false); err != nil {
				return err
			}
		}
		if err := saleRepo.DeleteItems(sale.ID); err != nil {
			return err
		}
		return saleRepo.Delete(sale.ID)
	})
}

// PDF genera la orden de venta en PDF.
func (uc *SalesUseCase) PDF(scope domain.Scope, id string) ([]byte, error) {
	sale, err := uc.loadWithItems(scope, id)
	if err != nil {
		return nil, err
	}
	company, err := uc.companyRepo.GetByID(sale.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return uc.pdf.SaleOrder(sale, company)
}

func (uc *SalesUseCase) loadWithItems(scope domain.Scope, id string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(id, scope.CompanyFilter())
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

// resolveProducts carga los productos de la empresa y verifica que todos los
// IDs pedidos existan en ese tenant.
func (uc *SalesUseCase) resolveProducts(companyID string, ids []string) (map[string]*entity.Product, error) {
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
	return products, nil
}

func productIDsOf(items []dto.SaleItemRequest) []string {
	ids := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if !seen[it.ProductID] {
			seen[it.ProductID] = true
			ids = append(ids, it.ProductID)
		}
	}
	return ids
}

func stockLinesOf(items []*entity.SaleItem) []appinv.StockLine {
	lines := make([]appinv.StockLine, 0, len(items))
	for _, it := range items {
		name := ""
		if it.Product != nil {
			name = it.Product.Name
		}
		lines = append(lines, appinv.StockLine{ProductID: it.ProductID, Name: name, Quantity: it.Quantity})
	}
	return lines
}

// ToSaleResponse mapea la entidad a su DTO de salida.
func ToSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	resp := &dto.SaleResponse{
		ID:          s.ID,
		CompanyID:   s.CompanyID,
		CustomerID:  s.CustomerID,
		UserID:      s.UserID,
		OrderNumber: s.OrderNumber,
		Status:      s.Status,
		Subtotal:    s.Subtotal,
		Tax:         s.Tax,
		Total:       s.Total,
		Notes:       s.Notes,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if s.Customer != nil {
		resp.Customer = &dto.CustomerResponse{
			ID:        s.Customer.ID,
			CompanyID: s.Customer.CompanyID,
			Name:      s.Customer.Name,
			Email:     s.Customer.Email,
			Phone:     s.Customer.Phone,
			Address:   s.Customer.Address,
			Type:      s.Customer.Type,
			CreatedAt: s.Customer.CreatedAt,
			UpdatedAt: s.Customer.UpdatedAt,
		}
	}
	for _, it := range s.Items {
		item := dto.SaleItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Total:     it.Total,
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
