package dto

import "time"

// AdjustInventoryRequest entrada para ajustar stock (add/remove/set).
type AdjustInventoryRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=0"`
	Type      string `json:"type" validate:"required"` // add, remove, set
	Reason    string `json:"reason"`
}

// UpdateInventoryRequest entrada para fijar metadatos/cantidad de la fila.
type UpdateInventoryRequest struct {
	Quantity      *int    `json:"quantity" validate:"omitempty,min=0"`
	Location      *string `json:"location"`
	MinStockLevel *int    `json:"min_stock_level" validate:"omitempty,min=0"`
}

// InventoryResponse salida de una fila de inventario.
type InventoryResponse struct {
	ID            string           `json:"id"`
	CompanyID     string           `json:"company_id"`
	ProductID     string           `json:"product_id"`
	Quantity      int              `json:"quantity"`
	MinStockLevel int              `json:"min_stock_level"`
	Location      string           `json:"location,omitempty"`
	LastRestocked *time.Time       `json:"last_restocked,omitempty"`
	LowStock      bool             `json:"low_stock"`
	UpdatedAt     time.Time        `json:"updated_at"`
	Product       *ProductResponse `json:"product,omitempty"`
}

// InventoryListResponse lista paginada de inventario.
type InventoryListResponse struct {
	Items []InventoryResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
