package sales_test

import (
	"context"
	"strings"

	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// Fakes en memoria de los puertos de persistencia. El TxRunner falso invoca
// fn directamente sobre los mismos repos: la atomicidad se verifica porque
// los casos de uso validan el lote completo antes de mutar nada.

type fakeSaleRepo struct {
	sales map[string]*entity.Sale
	items map[string][]*entity.SaleItem
}

var _ repository.SaleRepository = (*fakeSaleRepo)(nil)

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{
		sales: make(map[string]*entity.Sale),
		items: make(map[string][]*entity.SaleItem),
	}
}

func (f *fakeSaleRepo) Create(sale *entity.Sale) error {
	cp := *sale
	cp.Items = nil
	f.sales[sale.ID] = &cp
	return nil
}

func (f *fakeSaleRepo) CreateItem(item *entity.SaleItem) error {
	cp := *item
	f.items[item.SaleID] = append(f.items[item.SaleID], &cp)
	return nil
}

func (f *fakeSaleRepo) GetByID(id, companyID string) (*entity.Sale, error) {
	sale := f.sales[id]
	if sale == nil {
		return nil, nil
	}
	if companyID != "" && sale.CompanyID != companyID {
		return nil, nil
	}
	cp := *sale
	return &cp, nil
}

func (f *fakeSaleRepo) GetItems(saleID string) ([]*entity.SaleItem, error) {
	return f.items[saleID], nil
}

func (f *fakeSaleRepo) UpdateStatus(id, status string) error {
	if sale := f.sales[id]; sale != nil {
		sale.Status = status
	}
	return nil
}

func (f *fakeSaleRepo) UpdateMeta(sale *entity.Sale) error {
	if stored := f.sales[sale.ID]; stored != nil {
		stored.Notes = sale.Notes
		stored.Tax = sale.Tax
		stored.Total = sale.Total
		stored.UpdatedAt = sale.UpdatedAt
	}
	return nil
}

func (f *fakeSaleRepo) List(filter repository.SaleFilter) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range f.sales {
		if filter.CompanyID != "" && s.CompanyID != filter.CompanyID {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		if filter.CustomerID != "" && s.CustomerID != filter.CustomerID {
			continue
		}
		if filter.Search != "" && !strings.Contains(s.OrderNumber, strings.ToUpper(filter.Search)) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSaleRepo) DeleteItems(saleID string) error {
	delete(f.items, saleID)
	return nil
}

func (f *fakeSaleRepo) Delete(id string) error {
	delete(f.sales, id)
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
	saleRepo *fakeSaleRepo
	invRepo  *fakeInventoryRepo
}

func (f *fakeTxRunner) RunSale(_ context.Context, fn func(repository.SaleRepository, repository.InventoryRepository) error) error {
	return fn(f.saleRepo, f.invRepo)
}
