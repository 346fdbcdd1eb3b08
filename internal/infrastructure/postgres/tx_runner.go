package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/erp-api/internal/application/inventory"
	"github.com/jhoicas/erp-api/internal/application/purchases"
	"github.com/jhoicas/erp-api/internal/application/returns"
	"github.com/jhoicas/erp-api/internal/application/sales"
	"github.com/jhoicas/erp-api/internal/application/usecase"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// Un solo runner implementa los puertos transaccionales de cada paquete de aplicación.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ sales.TxRunner = (*TxRunner)(nil)
var _ purchases.TxRunner = (*TxRunner)(nil)
var _ returns.TxRunner = (*TxRunner)(nil)
var _ usecase.CompanyTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Run inicia una transacción con un repo de inventario atado a ella
// (ajustes manuales de stock).
func (r *TxRunner) Run(ctx context.Context, fn func(invRepo repository.InventoryRepository) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewInventoryRepository(q))
	})
}

// RunSale inicia una transacción con repos de ventas e inventario.
func (r *TxRunner) RunSale(ctx context.Context, fn func(saleRepo repository.SaleRepository, invRepo repository.InventoryRepository) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewSaleRepository(q), NewInventoryRepository(q))
	})
}

// RunPurchase inicia una transacción con repos de compras e inventario.
func (r *TxRunner) RunPurchase(ctx context.Context, fn func(purchaseRepo repository.PurchaseRepository, invRepo repository.InventoryRepository) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewPurchaseRepository(q), NewInventoryRepository(q))
	})
}

// RunReturn inicia una transacción con repos de devoluciones e inventario.
func (r *TxRunner) RunReturn(ctx context.Context, fn func(returnRepo repository.SalesReturnRepository, invRepo repository.InventoryRepository) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewSalesReturnRepository(q), NewInventoryRepository(q))
	})
}

// RunCompany inicia una transacción con repos de empresa y usuario
// (creación de empresa con admin inicial).
func (r *TxRunner) RunCompany(ctx context.Context, fn func(companyRepo repository.CompanyRepository, userRepo repository.UserRepository) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewCompanyRepository(q), NewUserRepository(q))
	})
}
