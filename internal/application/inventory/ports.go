package inventory

import (
	"context"

	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// TxRunner abre una transacción SQL y entrega un repositorio de inventario
// atado a ella. Commit si fn retorna nil, Rollback en caso contrario.
type TxRunner interface {
	Run(ctx context.Context, fn func(invRepo repository.InventoryRepository) error) error
}
