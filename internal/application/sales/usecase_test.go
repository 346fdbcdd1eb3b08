package sales_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/application/sales"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/order"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	companyA  = "empresa-a"
	companyB  = "empresa-b"
	custBoth  = "tercero-cliente"
	suppOnly  = "tercero-proveedor"
	prodA     = "producto-a"
	prodB     = "producto-b"
	prodAjeno = "producto-ajeno"
)

type salesEnv struct {
	uc       *sales.SalesUseCase
	saleRepo *fakeSaleRepo
	invRepo  *fakeInventoryRepo
}

// newSalesEnv arma el caso de uso con repos en memoria y datos de partida:
// un cliente, un proveedor puro, dos productos con stock 8 y 3, y un
// producto de otra empresa.
func newSalesEnv() *salesEnv {
	saleRepo := newFakeSaleRepo()
	invRepo := newFakeInventoryRepo()
	custRepo := newFakeCustomerRepo()
	prodRepo := newFakeProductRepo()

	custRepo.Create(&entity.Customer{ID: custBoth, CompanyID: companyA, Name: "Cliente Uno", Type: entity.CustomerTypeCustomer})
	custRepo.Create(&entity.Customer{ID: suppOnly, CompanyID: companyA, Name: "Proveedor Uno", Type: entity.CustomerTypeSupplier})

	prodRepo.Create(&entity.Product{ID: prodA, CompanyID: companyA, SKU: "SKU-A", Name: "Producto A", SellingPrice: decimal.NewFromInt(10)})
	prodRepo.Create(&entity.Product{ID: prodB, CompanyID: companyA, SKU: "SKU-B", Name: "Producto B", SellingPrice: decimal.NewFromInt(5)})
	prodRepo.Create(&entity.Product{ID: prodAjeno, CompanyID: companyB, SKU: "SKU-X", Name: "Producto Ajeno", SellingPrice: decimal.NewFromInt(7)})

	invRepo.Upsert(&entity.Inventory{ID: "inv-a", CompanyID: companyA, ProductID: prodA, Quantity: 8, MinStockLevel: 2})
	invRepo.Upsert(&entity.Inventory{ID: "inv-b", CompanyID: companyA, ProductID: prodB, Quantity: 3, MinStockLevel: 2})

	tx := &fakeTxRunner{saleRepo: saleRepo, invRepo: invRepo}
	uc := sales.NewSalesUseCase(tx, saleRepo, custRepo, prodRepo, nil, nil)
	return &salesEnv{uc: uc, saleRepo: saleRepo, invRepo: invRepo}
}

func adminScope() domain.Scope {
	return domain.Scope{UserID: "user-1", CompanyID: companyA, Role: domain.RoleAdmin}
}

func (e *salesEnv) stockOf(t *testing.T, productID string) int {
	t.Helper()
	inv, err := e.invRepo.GetByProduct(productID)
	require.NoError(t, err)
	require.NotNil(t, inv, "debe existir fila de inventario para %s", productID)
	return inv.Quantity
}

func (e *salesEnv) createSale(t *testing.T, items ...dto.SaleItemRequest) *dto.SaleResponse {
	t.Helper()
	resp, err := e.uc.Create(context.Background(), adminScope(), dto.CreateSaleRequest{
		CustomerID: custBoth,
		Items:      items,
	})
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_DeduceStockAlCrear(t *testing.T) {
	env := newSalesEnv()

	resp := env.createSale(t, dto.SaleItemRequest{ProductID: prodA, Quantity: 2})

	assert.Equal(t, order.SalePending, resp.Status, "la orden nace en pending")
	assert.Equal(t, 6, env.stockOf(t, prodA), "el stock se deduce en la creación, no al confirmar")
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(20)), "2 x 10 = 20")
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(20)))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, prodA, resp.Items[0].ProductID)
}

func TestCreateSale_ImpuestoEnElTotal(t *testing.T) {
	env := newSalesEnv()

	resp, err := env.uc.Create(context.Background(), adminScope(), dto.CreateSaleRequest{
		CustomerID: custBoth,
		Items:      []dto.SaleItemRequest{{ProductID: prodA, Quantity: 1}},
		Tax:        decimal.NewFromInt(3),
	})
	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(13)), "total = subtotal + tax")
}

func TestCreateSale_FaltanteListaTodosLosProductos(t *testing.T) {
	env := newSalesEnv()

	_, err := env.uc.Create(context.Background(), adminScope(), dto.CreateSaleRequest{
		CustomerID: custBoth,
		Items: []dto.SaleItemRequest{
			{ProductID: prodA, Quantity: 10}, // disponibles 8
			{ProductID: prodB, Quantity: 5},  // disponibles 3
		},
	})

	var shortage *domain.StockShortageError
	require.ErrorAs(t, err, &shortage)
	require.Len(t, shortage.Items, 2, "el error reporta todos los faltantes, no solo el primero")
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	// Nada se persistió: ni la orden ni deducciones parciales.
	assert.Empty(t, env.saleRepo.sales, "no debe quedar ninguna orden persistida")
	assert.Equal(t, 8, env.stockOf(t, prodA), "el stock no se toca si el lote falla")
	assert.Equal(t, 3, env.stockOf(t, prodB))
}

func TestCreateSale_SinFilaDeInventarioCuentaComoCero(t *testing.T) {
	env := newSalesEnv()
	// prodAjeno no tiene fila, pero además es de otra empresa: primero cae
	// la resolución de producto.
	_, err := env.uc.Create(context.Background(), adminScope(), dto.CreateSaleRequest{
		CustomerID: custBoth,
		Items:      []dto.SaleItemRequest{{ProductID: prodAjeno, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "un producto de otro tenant no existe para este scope")
}

func TestCreateSale_ProveedorPuroNoPuedeComprar(t *testing.T) {
	env := newSalesEnv()

	_, err := env.uc.Create(context.Background(), adminScope(), dto.CreateSaleRequest{
		CustomerID: suppOnly,
		Items:      []dto.SaleItemRequest{{ProductID: prodA, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "un tercero solo-proveedor no puede figurar como cliente")
}

func TestCreateSale_PrecioOverridePorLinea(t *testing.T) {
	env := newSalesEnv()

	precio := decimal.NewFromInt(8)
	resp, err := env.uc.Create(context.Background(), adminScope(), dto.CreateSaleRequest{
		CustomerID: custBoth,
		Items:      []dto.SaleItemRequest{{ProductID: prodA, Quantity: 2, UnitPrice: &precio}},
	})
	require.NoError(t, err)
	assert.True(t, resp.Items[0].UnitPrice.Equal(precio), "el precio pactado manda sobre el de lista")
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(16)))
}

func TestCreateSale_SinItemsRechazada(t *testing.T) {
	env := newSalesEnv()
	_, err := env.uc.Create(context.Background(), adminScope(), dto.CreateSaleRequest{CustomerID: custBoth})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update / UpdateStatus
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateSale_SoloMientrasPending(t *testing.T) {
	env := newSalesEnv()
	sale := env.createSale(t, dto.SaleItemRequest{ProductID: prodA, Quantity: 1})

	_, err := env.uc.UpdateStatus(context.Background(), adminScope(), sale.ID, order.SaleConfirmed)
	require.NoError(t, err)

	notas := "ya no aplica"
	_, err = env.uc.Update(adminScope(), sale.ID, dto.UpdateSaleRequest{Notes: &notas})
	assert.ErrorIs(t, err, domain.ErrInvalidState, "confirmed ya no admite edición de metadatos")
}

func TestUpdateSale_RecalculaTotalConNuevoTax(t *testing.T) {
	env := newSalesEnv()
	sale := env.createSale(t, dto.SaleItemRequest{ProductID: prodA, Quantity: 2})

	tax := decimal.NewFromInt(4)
	resp, err := env.uc.Update(adminScope(), sale.ID, dto.UpdateSaleRequest{Tax: &tax})
	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(24)), "20 de subtotal + 4 de tax")
}

func TestUpdateStatusSale_TransicionInvalida(t *testing.T) {
	env := newSalesEnv()
	sale := env.createSale(t, dto.SaleItemRequest{ProductID: prodA, Quantity: 1})

	_, err := env.uc.UpdateStatus(context.Background(), adminScope(), sale.ID, order.SaleDelivered)

	var trans *order.TransitionError
	require.ErrorAs(t, err, &trans, "pending no puede saltar a delivered")
	assert.Equal(t, order.SalePending, trans.From)
	assert.Equal(t, order.SaleDelivered, trans.To)
}

func TestUpdateStatusSale_CancelarRestauraStock(t *testing.T) {
	env := newSalesEnv()
	sale := env.createSale(t, dto.SaleItemRequest{ProductID: prodA, Quantity: 3})
	require.Equal(t, 5, env.stockOf(t, prodA))

	resp, err := env.uc.UpdateStatus(context.Background(), adminScope(), sale.ID, order.SaleCancelled)
	require.NoError(t, err)

	assert.Equal(t, order.SaleCancelled, resp.Status)
	assert.Equal(t, 8, env.stockOf(t, prodA), "cancelar devuelve las unidades comprometidas")

	inv, err := env.invRepo.GetByProduct(prodA)
	require.NoError(t, err)
	assert.Nil(t, inv.LastRestocked, "una restauración no es un reabastecimiento")
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteSale_RestauraStockSiNoEstabaCancelada(t *testing.T) {
	env := newSalesEnv()
	sale := env.createSale(t, dto.SaleItemRequest{ProductID: prodA, Quantity: 4})
	require.Equal(t, 4, env.stockOf(t, prodA))

	require.NoError(t, env.uc.Delete(context.Background(), adminScope(), sale.ID))

	assert.Equal(t, 8, env.stockOf(t, prodA))
	assert.Empty(t, env.saleRepo.sales, "la orden y sus líneas desaparecen")
	assert.Empty(t, env.saleRepo.items)
}

func TestDeleteSale_CanceladaNoRestauraDosVeces(t *testing.T) {
	env := newSalesEnv()
	sale := env.createSale(t, dto.SaleItemRequest{ProductID: prodA, Quantity: 4})
	_, err := env.uc.UpdateStatus(context.Background(), adminScope(), sale.ID, order.SaleCancelled)
	require.NoError(t, err)
	require.Equal(t, 8, env.stockOf(t, prodA), "la cancelación ya restauró")

	require.NoError(t, env.uc.Delete(context.Background(), adminScope(), sale.ID))
	assert.Equal(t, 8, env.stockOf(t, prodA), "borrar una cancelada no duplica stock")
}

func TestDeleteSale_DeliveredSeConserva(t *testing.T) {
	env := newSalesEnv()
	sale := env.createSale(t, dto.SaleItemRequest{ProductID: prodA, Quantity: 1})
	for _, status := range []string{order.SaleConfirmed, order.SaleShipped, order.SaleDelivered} {
		_, err := env.uc.UpdateStatus(context.Background(), adminScope(), sale.ID, status)
		require.NoError(t, err)
	}

	err := env.uc.Delete(context.Background(), adminScope(), sale.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "una venta entregada es historial")
	assert.Equal(t, 7, env.stockOf(t, prodA), "el stock de lo entregado no vuelve")
}

// ──────────────────────────────────────────────────────────────────────────────
// Aislamiento de tenant
// ──────────────────────────────────────────────────────────────────────────────

func TestGetSale_OtroTenantNotFound(t *testing.T) {
	env := newSalesEnv()
	sale := env.createSale(t, dto.SaleItemRequest{ProductID: prodA, Quantity: 1})

	otro := domain.Scope{UserID: "user-2", CompanyID: companyB, Role: domain.RoleAdmin}
	_, err := env.uc.GetByID(otro, sale.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "existencia de otra empresa no se revela")
}

func TestGetSale_SuperadminCruzaTenants(t *testing.T) {
	env := newSalesEnv()
	sale := env.createSale(t, dto.SaleItemRequest{ProductID: prodA, Quantity: 1})

	sa := domain.Scope{UserID: "root", Role: domain.RoleSuperadmin}
	resp, err := env.uc.GetByID(sa, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, sale.ID, resp.ID)
}

func TestListSales_FiltraPorEstado(t *testing.T) {
	env := newSalesEnv()
	env.createSale(t, dto.SaleItemRequest{ProductID: prodA, Quantity: 1})
	confirmada := env.createSale(t, dto.SaleItemRequest{ProductID: prodB, Quantity: 1})
	_, err := env.uc.UpdateStatus(context.Background(), adminScope(), confirmada.ID, order.SaleConfirmed)
	require.NoError(t, err)

	resp, err := env.uc.List(adminScope(), order.SaleConfirmed, "", "", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, confirmada.ID, resp.Items[0].ID)

	_, err = env.uc.List(adminScope(), "draft", "", "", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "estado desconocido se rechaza antes de consultar")
}

func TestCreateSale_NumeroDeOrdenGenerado(t *testing.T) {
	env := newSalesEnv()
	resp := env.createSale(t, dto.SaleItemRequest{ProductID: prodA, Quantity: 1})
	assert.True(t, len(resp.OrderNumber) > 3 && resp.OrderNumber[:3] == "SO-",
		"el número de venta lleva prefijo SO-: %s", resp.OrderNumber)
	assert.False(t, resp.CreatedAt.IsZero())
	assert.WithinDuration(t, time.Now(), resp.CreatedAt, time.Minute)
}
