package dto

import "time"

// AdminUserRequest usuario admin inicial opcional al crear una empresa.
type AdminUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// CreateCompanyRequest entrada para crear una empresa (superadmin).
type CreateCompanyRequest struct {
	Name      string            `json:"name" validate:"required"`
	Address   string            `json:"address"`
	Phone     string            `json:"phone"`
	Email     string            `json:"email"`
	LogoURL   string            `json:"logo_url"`
	AdminUser *AdminUserRequest `json:"admin_user"`
}

// UpdateCompanyRequest entrada para actualizar una empresa.
type UpdateCompanyRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Status  *string `json:"status"` // active, inactive
	LogoURL *string `json:"logo_url"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	LogoURL   string    `json:"logo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
