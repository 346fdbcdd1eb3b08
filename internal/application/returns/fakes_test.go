package returns_test

import (
	"context"
	"strings"

	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/order"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// Fakes en memoria de los puertos. El TxRunner falso ejecuta fn directo
// sobre los mismos repos.

type fakeReturnRepo struct {
	returns map[string]*entity.SalesReturn
	items   map[string][]*entity.SalesReturnItem
}

var _ repository.SalesReturnRepository = (*fakeReturnRepo)(nil)

func newFakeReturnRepo() *fakeReturnRepo {
	return &fakeReturnRepo{
		returns: make(map[string]*entity.SalesReturn),
		items:   make(map[string][]*entity.SalesReturnItem),
	}
}

func (f *fakeReturnRepo) Create(ret *entity.SalesReturn) error {
	cp := *ret
	cp.Items = nil
	f.returns[ret.ID] = &cp
	return nil
}

func (f *fakeReturnRepo) CreateItem(item *entity.SalesReturnItem) error {
	cp := *item
	f.items[item.SalesReturnID] = append(f.items[item.SalesReturnID], &cp)
	return nil
}

func (f *fakeReturnRepo) GetByID(id, companyID string) (*entity.SalesReturn, error) {
	ret := f.returns[id]
	if ret == nil {
		return nil, nil
	}
	if companyID != "" && ret.CompanyID != companyID {
		return nil, nil
	}
	cp := *ret
	return &cp, nil
}

func (f *fakeReturnRepo) GetItems(returnID string) ([]*entity.SalesReturnItem, error) {
	return f.items[returnID], nil
}

func (f *fakeReturnRepo) ListBySaleWithItems(saleID string, excludeCancelled bool) ([]*entity.SalesReturn, error) {
	var out []*entity.SalesReturn
	for _, ret := range f.returns {
		if ret.SaleID != saleID {
			continue
		}
		if excludeCancelled && ret.Status == order.ReturnCancelled {
			continue
		}
		cp := *ret
		cp.Items = f.items[ret.ID]
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeReturnRepo) UpdateStatus(id, status string) error {
	if ret := f.returns[id]; ret != nil {
		ret.Status = status
	}
	return nil
}

func (f *fakeReturnRepo) List(filter repository.ReturnFilter) ([]*entity.SalesReturn, error) {
	var out []*entity.SalesReturn
	for _, ret := range f.returns {
		if filter.CompanyID != "" && ret.CompanyID != filter.CompanyID {
			continue
		}
		if filter.Status != "" && ret.Status != filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(ret.ReturnNumber, strings.ToUpper(filter.Search)) {
			continue
		}
		out = append(out, ret)
	}
	return out, nil
}

func (f *fakeReturnRepo) DeleteItems(returnID string) error {
	delete(f.items, returnID)
	return nil
}

func (f *fakeReturnRepo) Delete(id string) error {
	delete(f.returns, id)
	return nil
}

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

// seed registra una venta con sus líneas tal cual, para montar escenarios.
func (f *fakeSaleRepo) seed(sale *entity.Sale) {
	f.sales[sale.ID] = sale
	f.items[sale.ID] = sale.Items
}

func (f *fakeSaleRepo) Create(sale *entity.Sale) error {
	f.sales[sale.ID] = sale
	return nil
}

func (f *fakeSaleRepo) CreateItem(item *entity.SaleItem) error {
	f.items[item.SaleID] = append(f.items[item.SaleID], item)
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

func (f *fakeSaleRepo) UpdateMeta(sale *entity.Sale) error { return nil }

func (f *fakeSaleRepo) List(filter repository.SaleFilter) ([]*entity.Sale, error) {
	return nil, nil
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
	return nil, nil
}

func (f *fakeInventoryRepo) ListLowStock(companyID string) ([]*entity.Inventory, error) {
	return nil, nil
}

type fakeTxRunner struct {
	returnRepo *fakeReturnRepo
	invRepo    *fakeInventoryRepo
}

func (f *fakeTxRunner) RunReturn(_ context.Context, fn func(repository.SalesReturnRepository, repository.InventoryRepository) error) error {
	return fn(f.returnRepo, f.invRepo)
}
