package returns

import (
	"context"

	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// TxRunner abre una transacción SQL y entrega repos de devoluciones e
// inventario atados a ella. Completar una devolución restaura stock y
// actualiza el estado como una sola unidad.
type TxRunner interface {
	RunReturn(ctx context.Context, fn func(returnRepo repository.SalesReturnRepository, invRepo repository.InventoryRepository) error) error
}
