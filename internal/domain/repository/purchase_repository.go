package repository

import (
	"time"

	"github.com/jhoicas/erp-api/internal/domain/entity"
)

// PurchaseFilter criterios de listado/reporte de compras.
type PurchaseFilter struct {
	CompanyID  string // "" = sin filtro (superadmin)
	Status     string
	Search     string // sobre order_number
	SupplierID string
	From       *time.Time
	To         *time.Time
	Limit      int // 0 = sin límite (reportes)
	Offset     int
}

// PurchaseRepository define el puerto de persistencia para Purchase y sus líneas.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	CreateItem(item *entity.PurchaseItem) error
	GetByID(id, companyID string) (*entity.Purchase, error)
	GetItems(purchaseID string) ([]*entity.PurchaseItem, error)
	UpdateStatus(id, status string) error
	UpdateMeta(purchase *entity.Purchase) error
	// UpdateItemReceived fija la cantidad recibida acumulada de una línea.
	UpdateItemReceived(itemID string, received int) error
	List(filter PurchaseFilter) ([]*entity.Purchase, error)
	DeleteItems(purchaseID string) error
	Delete(id string) error
}
