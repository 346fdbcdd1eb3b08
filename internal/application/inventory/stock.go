package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// StockLine cantidad requerida de un producto dentro de una operación de
// stock por lotes. Name solo alimenta mensajes de error.
type StockLine struct {
	ProductID string
	Name      string
	Quantity  int
}

// DeductStockTx descuenta stock de todas las líneas dentro de la transacción
// del caller. Primero bloquea y valida el lote completo; si alguna línea no
// alcanza, no muta nada y devuelve un StockShortageError con TODOS los
// faltantes. Una fila inexistente cuenta como disponible cero.
func DeductStockTx(invRepo repository.InventoryRepository, lines []StockLine, now time.Time) error {
	type locked struct {
		inv *entity.Inventory
		qty int
	}
	rows := make([]locked, 0, len(lines))
	var shortages []domain.StockShortage

	for _, line := range lines {
		inv, err := invRepo.GetByProductForUpdate(line.ProductID)
		if err != nil {
			return err
		}
		available := 0
		if inv != nil {
			available = inv.Quantity
		}
		if available < line.Quantity {
			shortages = append(shortages, domain.StockShortage{
				ProductID:   line.ProductID,
				ProductName: line.Name,
				Requested:   line.Quantity,
				Available:   available,
			})
			continue
		}
		rows = append(rows, locked{inv: inv, qty: line.Quantity})
	}
	if len(shortages) > 0 {
		return &domain.StockShortageError{Items: shortages}
	}

	for _, r := range rows {
		r.inv.Quantity -= r.qty
		r.inv.UpdatedAt = now
		if err := invRepo.Upsert(r.inv); err != nil {
			return err
		}
	}
	return nil
}

// AddStockTx suma stock a todas las líneas dentro de la transacción del
// caller. Crea la fila con el mínimo por defecto si no existe. markRestocked
// estampa LastRestocked (recepciones de compra); las restauraciones por
// cancelación o devolución no lo estampan.
func AddStockTx(invRepo repository.InventoryRepository, companyID string, lines []StockLine, now time.Time, markRestocked bool) error {
	for _, line := range lines {
		inv, err := invRepo.GetByProductForUpdate(line.ProductID)
		if err != nil {
			return err
		}
		if inv == nil {
			inv = &entity.Inventory{
				ID:            uuid.New().String(),
				CompanyID:     companyID,
				ProductID:     line.ProductID,
				Quantity:      0,
				MinStockLevel: entity.DefaultMinStockLevel,
				CreatedAt:     now,
			}
		}
		inv.Quantity += line.Quantity
		if markRestocked {
			restocked := now
			inv.LastRestocked = &restocked
		}
		inv.UpdatedAt = now
		if err := invRepo.Upsert(inv); err != nil {
			return err
		}
	}
	return nil
}
