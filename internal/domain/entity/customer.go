package entity

import "time"

// Tipos válidos para Customer (una misma ficha puede actuar como cliente de
// ventas y proveedor de compras).
const (
	CustomerTypeCustomer = "customer"
	CustomerTypeSupplier = "supplier"
	CustomerTypeBoth     = "both"
)

// Customer representa un tercero de la empresa: cliente, proveedor o ambos.
type Customer struct {
	ID        string
	CompanyID string
	Name      string
	Email     string
	Phone     string
	Address   string
	Type      string // customer, supplier, both
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanSell indica si la ficha puede usarse como cliente en una venta.
func (c *Customer) CanSell() bool {
	return c.Type == CustomerTypeCustomer || c.Type == CustomerTypeBoth
}

// CanSupply indica si la ficha puede usarse como proveedor en una compra.
func (c *Customer) CanSupply() bool {
	return c.Type == CustomerTypeSupplier || c.Type == CustomerTypeBoth
}
