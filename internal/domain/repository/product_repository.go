package repository

import "github.com/jhoicas/erp-api/internal/domain/entity"

// ProductFilter criterios de listado de productos.
type ProductFilter struct {
	CompanyID string // "" = sin filtro (superadmin)
	Search    string // sobre sku/name
	Limit     int
	Offset    int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error)
	// ListByIDs devuelve los productos de la empresa cuyos IDs estén en ids
	// (los ausentes o de otro tenant simplemente no aparecen).
	ListByIDs(companyID string, ids []string) ([]*entity.Product, error)
	Update(product *entity.Product) error
	List(filter ProductFilter) ([]*entity.Product, error)
	Delete(id string) error
}
