package purchases_test

import (
	"context"
	"strings"

	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// Fakes en memoria de los puertos. El TxRunner falso ejecuta fn directo
// sobre los mismos repos.

type fakePurchaseRepo struct {
	purchases map[string]*entity.Purchase
	items     map[string][]*entity.PurchaseItem
}

var _ repository.PurchaseRepository = (*fakePurchaseRepo)(nil)

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{
		purchases: make(map[string]*entity.Purchase),
		items:     make(map[string][]*entity.PurchaseItem),
	}
}

func (f *fakePurchaseRepo) Create(purchase *entity.Purchase) error {
	cp := *purchase
	cp.Items = nil
	f.purchases[purchase.ID] = &cp
	return nil
}

func (f *fakePurchaseRepo) CreateItem(item *entity.PurchaseItem) error {
	cp := *item
	f.items[item.PurchaseID] = append(f.items[item.PurchaseID], &cp)
	return nil
}

func (f *fakePurchaseRepo) GetByID(id, companyID string) (*entity.Purchase, error) {
	p := f.purchases[id]
	if p == nil {
		return nil, nil
	}
	if companyID != "" && p.CompanyID != companyID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakePurchaseRepo) GetItems(purchaseID string) ([]*entity.PurchaseItem, error) {
	return f.items[purchaseID], nil
}

func (f *fakePurchaseRepo) UpdateStatus(id, status string) error {
	if p := f.purchases[id]; p != nil {
		p.Status = status
	}
	return nil
}

func (f *fakePurchaseRepo) UpdateMeta(purchase *entity.Purchase) error {
	if stored := f.purchases[purchase.ID]; stored != nil {
		stored.Notes = purchase.Notes
		stored.Tax = purchase.Tax
		stored.Total = purchase.Total
		stored.ExpectedDelivery = purchase.ExpectedDelivery
		stored.UpdatedAt = purchase.UpdatedAt
	}
	return nil
}

func (f *fakePurchaseRepo) UpdateItemReceived(itemID string, received int) error {
	for _, items := range f.items {
		for _, it := range items {
			if it.ID == itemID {
				it.ReceivedQuantity = received
				return nil
			}
		}
	}
	return nil
}

func (f *fakePurchaseRepo) List(filter repository.PurchaseFilter) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	for _, p := range f.purchases {
		if filter.CompanyID != "" && p.CompanyID != filter.CompanyID {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.SupplierID != "" && p.SupplierID != filter.SupplierID {
			continue
		}
		if filter.Search != "" && !strings.Contains(p.OrderNumber, strings.ToUpper(filter.Search)) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePurchaseRepo) DeleteItems(purchaseID string) error {
	delete(f.items, purchaseID)
	return nil
}

func (f *fakePurchaseRepo) Delete(id string) error {
	delete(f.purchases, id)
	return nil
}

type fakeInventoryRepo struct {
	rows map[string]*entity.Inventory // por ProductID
}

var _ repository.InventoryRepository = (*fakeInventoryRepo)(nil)

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{rows: make(map[string]*entity.Inventory)}
}

func (f *fakeInventoryRepo) GetByProduct(productID string) (*entity.Inventory, error) {
	inv := f.rows[productID]
	if inv == nil {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeInventoryRepo) GetByProductForUpdate(productID string) (*entity.Inventory, error) {
	return f.GetByProduct(productID)
}

func (f *fakeInventoryRepo) Upsert(inv *entity.Inventory) error {
	cp := *inv
	f.rows[inv.ProductID] = &cp
	return nil
}

func (f *fakeInventoryRepo) List(companyID string, limit, offset int) ([]*entity.Inventory, error) {
	var out []*entity.Inventory
	for _, inv := range f.rows {
		if companyID != "" && inv.CompanyID != companyID {
			continue
		}
		out = append(out, inv)
	}
	return out, nil
}

func (f *fakeInventoryRepo) ListLowStock(companyID string) ([]*entity.Inventory, error) {
	var out []*entity.Inventory
	for _, inv := range f.rows {
		if companyID != "" && inv.CompanyID != companyID {
			continue
		}
		if inv.IsLowStock() {
			out = append(out, inv)
		}
	}
	return out, nil
}

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

var _ repository.CustomerRepository = (*fakeCustomerRepo)(nil)

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[string]*entity.Customer)}
}

func (f *fakeCustomerRepo) Create(customer *entity.Customer) error {
	f.customers[customer.ID] = customer
	return nil
}

func (f *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return f.customers[id], nil
}

func (f *fakeCustomerRepo) Update(customer *entity.Customer) error {
	f.customers[customer.ID] = customer
	return nil
}

func (f *fakeCustomerRepo) List(filter repository.CustomerFilter) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range f.customers {
		if filter.CompanyID != "" && c.CompanyID != filter.CompanyID {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCustomerRepo) Delete(id string) error {
	delete(f.customers, id)
	return nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (f *fakeProductRepo) Create(product *entity.Product) error {
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return f.products[id], nil
}

func (f *fakeProductRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.CompanyID == companyID && p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) ListByIDs(companyID string, ids []string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, id := range ids {
		p := f.products[id]
		if p != nil && p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Update(product *entity.Product) error {
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.products {
		if filter.CompanyID != "" && p.CompanyID != filter.CompanyID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductRepo) Delete(id string) error {
	delete(f.products, id)
	return nil
}

type fakeTxRunner struct {
	purchaseRepo *fakePurchaseRepo
	invRepo      *fakeInventoryRepo
}

func (f *fakeTxRunner) RunPurchase(_ context.Context, fn func(repository.PurchaseRepository, repository.InventoryRepository) error) error {
	return fn(f.purchaseRepo, f.invRepo)
}
