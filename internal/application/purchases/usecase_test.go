package purchases_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/application/purchases"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/order"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	companyA = "empresa-a"
	suppBoth = "tercero-proveedor"
	custOnly = "tercero-cliente"
	prodA    = "producto-a"
	prodB    = "producto-b"
)

type purchasesEnv struct {
	uc           *purchases.PurchasesUseCase
	purchaseRepo *fakePurchaseRepo
	invRepo      *fakeInventoryRepo
}

func newPurchasesEnv() *purchasesEnv {
	purchaseRepo := newFakePurchaseRepo()
	invRepo := newFakeInventoryRepo()
	custRepo := newFakeCustomerRepo()
	prodRepo := newFakeProductRepo()

	custRepo.Create(&entity.Customer{ID: suppBoth, CompanyID: companyA, Name: "Proveedor Uno", Type: entity.CustomerTypeBoth})
	custRepo.Create(&entity.Customer{ID: custOnly, CompanyID: companyA, Name: "Cliente Puro", Type: entity.CustomerTypeCustomer})

	prodRepo.Create(&entity.Product{ID: prodA, CompanyID: companyA, SKU: "SKU-A", Name: "Producto A", CostPrice: decimal.NewFromInt(4)})
	prodRepo.Create(&entity.Product{ID: prodB, CompanyID: companyA, SKU: "SKU-B", Name: "Producto B", CostPrice: decimal.NewFromInt(2)})

	tx := &fakeTxRunner{purchaseRepo: purchaseRepo, invRepo: invRepo}
	uc := purchases.NewPurchasesUseCase(tx, purchaseRepo, custRepo, prodRepo)
	return &purchasesEnv{uc: uc, purchaseRepo: purchaseRepo, invRepo: invRepo}
}

func adminScope() domain.Scope {
	return domain.Scope{UserID: "user-1", CompanyID: companyA, Role: domain.RoleAdmin}
}

func (e *purchasesEnv) createPurchase(t *testing.T, items ...dto.PurchaseItemRequest) *dto.PurchaseResponse {
	t.Helper()
	resp, err := e.uc.Create(context.Background(), adminScope(), dto.CreatePurchaseRequest{
		SupplierID: suppBoth,
		Items:      items,
	})
	require.NoError(t, err)
	return resp
}

// toOrdered lleva una orden recién creada hasta ordered, estado desde el cual
// se puede recibir mercancía.
func (e *purchasesEnv) toOrdered(t *testing.T, id string) {
	t.Helper()
	_, err := e.uc.UpdateStatus(adminScope(), id, order.PurchaseApproved)
	require.NoError(t, err)
	_, err = e.uc.UpdateStatus(adminScope(), id, order.PurchaseOrdered)
	require.NoError(t, err)
}

func (e *purchasesEnv) stockOf(t *testing.T, productID string) int {
	t.Helper()
	inv, err := e.invRepo.GetByProduct(productID)
	require.NoError(t, err)
	if inv == nil {
		return 0
	}
	return inv.Quantity
}

func lineaA(qty int) dto.PurchaseItemRequest {
	return dto.PurchaseItemRequest{ProductID: prodA, Quantity: qty, UnitPrice: decimal.NewFromInt(4)}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreatePurchase_NoTocaInventario(t *testing.T) {
	env := newPurchasesEnv()

	resp := env.createPurchase(t, lineaA(5))

	assert.Equal(t, order.PurchasePending, resp.Status)
	assert.Equal(t, 0, env.stockOf(t, prodA), "el stock entra al recibir, no al ordenar")
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(20)), "5 x 4 = 20")
	assert.True(t, len(resp.OrderNumber) > 3 && resp.OrderNumber[:3] == "PO-",
		"el número de compra lleva prefijo PO-: %s", resp.OrderNumber)
}

func TestCreatePurchase_ClientePuroNoPuedeProveer(t *testing.T) {
	env := newPurchasesEnv()

	_, err := env.uc.Create(context.Background(), adminScope(), dto.CreatePurchaseRequest{
		SupplierID: custOnly,
		Items:      []dto.PurchaseItemRequest{lineaA(1)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "un tercero solo-cliente no puede figurar como proveedor")
}

func TestCreatePurchase_SinItemsRechazada(t *testing.T) {
	env := newPurchasesEnv()
	_, err := env.uc.Create(context.Background(), adminScope(), dto.CreatePurchaseRequest{SupplierID: suppBoth})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Receive
// ──────────────────────────────────────────────────────────────────────────────

func TestReceive_ParcialDejaPartialYSumaStock(t *testing.T) {
	env := newPurchasesEnv()
	p := env.createPurchase(t, lineaA(5))
	env.toOrdered(t, p.ID)

	resp, err := env.uc.Receive(context.Background(), adminScope(), p.ID, dto.ReceivePurchaseRequest{
		Items: []dto.ReceiveItemRequest{{ProductID: prodA, Quantity: 3}},
	})
	require.NoError(t, err)

	assert.Equal(t, order.PurchasePartial, resp.Status, "quedan 2 pendientes")
	assert.Equal(t, 3, env.stockOf(t, prodA))
	assert.Equal(t, 3, resp.Items[0].ReceivedQuantity)

	inv, err := env.invRepo.GetByProduct(prodA)
	require.NoError(t, err)
	require.NotNil(t, inv.LastRestocked, "una recepción sí estampa el reabastecimiento")
	assert.Equal(t, entity.DefaultMinStockLevel, inv.MinStockLevel,
		"la fila creada al vuelo usa el mínimo por defecto")
}

func TestReceive_SegundaEntregaCompletaLaOrden(t *testing.T) {
	env := newPurchasesEnv()
	p := env.createPurchase(t, lineaA(5))
	env.toOrdered(t, p.ID)

	_, err := env.uc.Receive(context.Background(), adminScope(), p.ID, dto.ReceivePurchaseRequest{
		Items: []dto.ReceiveItemRequest{{ProductID: prodA, Quantity: 3}},
	})
	require.NoError(t, err)

	// Cuerpo vacío: recibir todo lo pendiente de cada línea.
	resp, err := env.uc.Receive(context.Background(), adminScope(), p.ID, dto.ReceivePurchaseRequest{})
	require.NoError(t, err)

	assert.Equal(t, order.PurchaseReceived, resp.Status)
	assert.Equal(t, 5, env.stockOf(t, prodA))
	assert.Equal(t, 5, resp.Items[0].ReceivedQuantity)
}

func TestReceive_SobreRecepcionSeCapaALoPendiente(t *testing.T) {
	env := newPurchasesEnv()
	p := env.createPurchase(t, lineaA(5))
	env.toOrdered(t, p.ID)

	resp, err := env.uc.Receive(context.Background(), adminScope(), p.ID, dto.ReceivePurchaseRequest{
		Items: []dto.ReceiveItemRequest{{ProductID: prodA, Quantity: 99}},
	})
	require.NoError(t, err)

	assert.Equal(t, order.PurchaseReceived, resp.Status)
	assert.Equal(t, 5, env.stockOf(t, prodA), "nunca entra más de lo ordenado")
	assert.Equal(t, 5, resp.Items[0].ReceivedQuantity)
}

func TestReceive_ProductoRepetidoSeSumaAntesDeCapar(t *testing.T) {
	env := newPurchasesEnv()
	p := env.createPurchase(t, lineaA(10))
	env.toOrdered(t, p.ID)

	resp, err := env.uc.Receive(context.Background(), adminScope(), p.ID, dto.ReceivePurchaseRequest{
		Items: []dto.ReceiveItemRequest{
			{ProductID: prodA, Quantity: 6},
			{ProductID: prodA, Quantity: 6},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 10, resp.Items[0].ReceivedQuantity,
		"dos entradas del mismo producto no pueden superar lo ordenado")
	assert.Equal(t, 10, env.stockOf(t, prodA))
	assert.Equal(t, order.PurchaseReceived, resp.Status)
}

func TestReceive_ProductoRepetidoBajoElTope(t *testing.T) {
	env := newPurchasesEnv()
	p := env.createPurchase(t, lineaA(10))
	env.toOrdered(t, p.ID)

	resp, err := env.uc.Receive(context.Background(), adminScope(), p.ID, dto.ReceivePurchaseRequest{
		Items: []dto.ReceiveItemRequest{
			{ProductID: prodA, Quantity: 2},
			{ProductID: prodA, Quantity: 3},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 5, resp.Items[0].ReceivedQuantity)
	assert.Equal(t, 5, env.stockOf(t, prodA))
	assert.Equal(t, order.PurchasePartial, resp.Status, "quedan 5 pendientes")
}

func TestReceive_ProductoFueraDeLaOrden(t *testing.T) {
	env := newPurchasesEnv()
	p := env.createPurchase(t, lineaA(5))
	env.toOrdered(t, p.ID)

	_, err := env.uc.Receive(context.Background(), adminScope(), p.ID, dto.ReceivePurchaseRequest{
		Items: []dto.ReceiveItemRequest{{ProductID: prodB, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "prodB no es línea de esta orden")
}

func TestReceive_DesdePendingRechazado(t *testing.T) {
	env := newPurchasesEnv()
	p := env.createPurchase(t, lineaA(5))

	_, err := env.uc.Receive(context.Background(), adminScope(), p.ID, dto.ReceivePurchaseRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidState, "solo ordered/partial admiten recepción")
}

func TestReceive_OrdenYaCompletaRechazada(t *testing.T) {
	env := newPurchasesEnv()
	p := env.createPurchase(t, lineaA(2))
	env.toOrdered(t, p.ID)

	_, err := env.uc.Receive(context.Background(), adminScope(), p.ID, dto.ReceivePurchaseRequest{})
	require.NoError(t, err)

	_, err = env.uc.Receive(context.Background(), adminScope(), p.ID, dto.ReceivePurchaseRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidState, "received es terminal")
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateStatus / Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateStatusPurchase_PartialManualRechazado(t *testing.T) {
	env := newPurchasesEnv()
	p := env.createPurchase(t, lineaA(5))
	env.toOrdered(t, p.ID)

	_, err := env.uc.UpdateStatus(adminScope(), p.ID, order.PurchasePartial)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "partial solo lo produce la recepción")

	_, err = env.uc.UpdateStatus(adminScope(), p.ID, order.PurchaseReceived)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "received solo lo produce la recepción")
}

func TestUpdateStatusPurchase_TransicionInvalida(t *testing.T) {
	env := newPurchasesEnv()
	p := env.createPurchase(t, lineaA(5))

	_, err := env.uc.UpdateStatus(adminScope(), p.ID, order.PurchaseOrdered)

	var trans *order.TransitionError
	require.ErrorAs(t, err, &trans, "pending debe pasar por approved antes de ordered")
	assert.Equal(t, order.PurchasePending, trans.From)
}

func TestDeletePurchase_SoloPendingOCancelled(t *testing.T) {
	env := newPurchasesEnv()
	p := env.createPurchase(t, lineaA(5))
	env.toOrdered(t, p.ID)

	err := env.uc.Delete(context.Background(), adminScope(), p.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "una ordered no se borra, se cancela primero")
}

func TestDeletePurchase_CanceladaConRecepcionRechazada(t *testing.T) {
	env := newPurchasesEnv()
	p := env.createPurchase(t, lineaA(5))
	env.toOrdered(t, p.ID)
	_, err := env.uc.Receive(context.Background(), adminScope(), p.ID, dto.ReceivePurchaseRequest{
		Items: []dto.ReceiveItemRequest{{ProductID: prodA, Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = env.uc.UpdateStatus(adminScope(), p.ID, order.PurchaseCancelled)
	require.NoError(t, err)

	err = env.uc.Delete(context.Background(), adminScope(), p.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "stock ya ingresado hace la orden parte del historial")
}

func TestDeletePurchase_SinRecepcionBorraOrdenYLineas(t *testing.T) {
	env := newPurchasesEnv()
	p := env.createPurchase(t, lineaA(5))

	require.NoError(t, env.uc.Delete(context.Background(), adminScope(), p.ID))
	assert.Empty(t, env.purchaseRepo.purchases)
	assert.Empty(t, env.purchaseRepo.items)
}

func TestUpdatePurchase_SoloMientrasPending(t *testing.T) {
	env := newPurchasesEnv()
	p := env.createPurchase(t, lineaA(5))
	env.toOrdered(t, p.ID)

	notas := "cambio tardío"
	_, err := env.uc.Update(adminScope(), p.ID, dto.UpdatePurchaseRequest{Notes: &notas})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}
