package entity

import "time"

// Estados válidos para Company.
const (
	CompanyStatusActive   = "active"
	CompanyStatusInactive = "inactive"
)

// Company representa una organización/tenant del sistema. Toda la data del
// tenant (usuarios, clientes, productos, órdenes) cuelga de ella por FK.
// Una empresa inactiva bloquea el login de sus usuarios.
type Company struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	Email     string
	Status    string // active, inactive
	LogoURL   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
