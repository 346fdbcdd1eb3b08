package entity

import "time"

// User representa un usuario del sistema. CompanyID queda vacío solo para el
// superadmin (única identidad cross-tenant). Email es único globalmente.
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // superadmin, admin, manager, staff
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
