package repository

import "github.com/jhoicas/erp-api/internal/domain/entity"

// ReturnFilter criterios de listado de devoluciones.
type ReturnFilter struct {
	CompanyID string // "" = sin filtro (superadmin)
	Status    string
	Search    string // sobre return_number
	Limit     int
	Offset    int
}

// SalesReturnRepository define el puerto de persistencia para SalesReturn y
// sus líneas.
type SalesReturnRepository interface {
	Create(ret *entity.SalesReturn) error
	CreateItem(item *entity.SalesReturnItem) error
	GetByID(id, companyID string) (*entity.SalesReturn, error)
	GetItems(returnID string) ([]*entity.SalesReturnItem, error)
	// ListBySaleWithItems devuelve las devoluciones de una venta con sus
	// líneas cargadas; excludeCancelled omite las canceladas (para calcular
	// cantidades restantes).
	ListBySaleWithItems(saleID string, excludeCancelled bool) ([]*entity.SalesReturn, error)
	UpdateStatus(id, status string) error
	List(filter ReturnFilter) ([]*entity.SalesReturn, error)
	DeleteItems(returnID string) error
	Delete(id string) error
}
