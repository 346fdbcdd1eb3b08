package sales

import (
	"context"

	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// TxRunner abre una transacción SQL y entrega repos de ventas e inventario
// atados a ella. Crear una venta deduce stock y persiste la orden como una
// sola unidad: Commit si fn retorna nil, Rollback si no.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(saleRepo repository.SaleRepository, invRepo repository.InventoryRepository) error) error
}

// PDFGenerator renderiza una orden de venta como documento PDF.
type PDFGenerator interface {
	SaleOrder(sale *entity.Sale, company *entity.Company) ([]byte, error)
}
