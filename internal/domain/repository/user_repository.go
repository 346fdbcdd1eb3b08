package repository

import "github.com/jhoicas/erp-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
// companyID vacío = sin filtro de tenant (solo superadmin).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	List(companyID string, limit, offset int) ([]*entity.User, error)
	Delete(id string) error
}
