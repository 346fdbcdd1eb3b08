package repository

import (
	"time"

	"github.com/jhoicas/erp-api/internal/domain/entity"
)

// SaleFilter criterios de listado/reporte de ventas.
type SaleFilter struct {
	CompanyID  string // "" = sin filtro (superadmin)
	Status     string
	Search     string // sobre order_number
	CustomerID string
	From       *time.Time
	To         *time.Time
	Limit      int // 0 = sin límite (reportes)
	Offset     int
}

// SaleRepository define el puerto de persistencia para Sale y sus líneas.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	// GetByID carga la venta con cliente y usuario creador; companyID vacío
	// omite el filtro de tenant.
	GetByID(id, companyID string) (*entity.Sale, error)
	GetItems(saleID string) ([]*entity.SaleItem, error)
	UpdateStatus(id, status string) error
	// UpdateMeta persiste notes/tax/total (solo campos editables en pending).
	UpdateMeta(sale *entity.Sale) error
	List(filter SaleFilter) ([]*entity.Sale, error)
	DeleteItems(saleID string) error
	Delete(id string) error
}
