package purchases

import (
	"context"

	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// TxRunner abre una transacción SQL y entrega repos de compras e inventario
// atados a ella. Recibir mercancía suma stock y actualiza líneas y estado
// como una sola unidad.
type TxRunner interface {
	RunPurchase(ctx context.Context, fn func(purchaseRepo repository.PurchaseRepository, invRepo repository.InventoryRepository) error) error
}
