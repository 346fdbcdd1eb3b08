package dto

import "time"

// CreateCustomerRequest entrada para crear un tercero.
type CreateCustomerRequest struct {
	CompanyID string `json:"company_id"` // solo superadmin
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Type      string `json:"type"` // customer, supplier, both (default customer)
}

// UpdateCustomerRequest entrada para actualizar un tercero.
type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Type    *string `json:"type"`
}

// CustomerResponse salida de un tercero.
type CustomerResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerListResponse lista paginada de terceros.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
