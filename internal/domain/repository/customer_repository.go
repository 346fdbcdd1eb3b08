package repository

import "github.com/jhoicas/erp-api/internal/domain/entity"

// CustomerFilter criterios de listado de terceros.
type CustomerFilter struct {
	CompanyID string // "" = sin filtro (superadmin)
	Type      string // customer, supplier, both; "" = todos
	Search    string // sobre name/email
	Limit     int
	Offset    int
}

// CustomerRepository define el puerto de persistencia para Customer
// (terceros: clientes, proveedores o ambos).
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	Update(customer *entity.Customer) error
	List(filter CustomerFilter) ([]*entity.Customer, error)
	Delete(id string) error
}
