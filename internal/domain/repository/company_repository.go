package repository

import "github.com/jhoicas/erp-api/internal/domain/entity"

// CompanyFilter criterios de listado de empresas (solo superadmin).
type CompanyFilter struct {
	Status string // "" = todas
	Search string // sobre name/email
	Limit  int
	Offset int
}

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	Update(company *entity.Company) error
	List(filter CompanyFilter) ([]*entity.Company, error)
	Delete(id string) error
	// HasData indica si la empresa posee usuarios, clientes, productos,
	// ventas o compras (bloquea el borrado físico).
	HasData(companyID string) (bool, error)
}
