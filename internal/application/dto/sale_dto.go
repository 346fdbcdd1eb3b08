package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de una venta nueva. UnitPrice nil = precio de venta
// vigente del producto.
type SaleItemRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Quantity  int              `json:"quantity" validate:"required,min=1"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// CreateSaleRequest entrada para crear una orden de venta.
type CreateSaleRequest struct {
	CompanyID  string            `json:"company_id"` // solo superadmin
	CustomerID string            `json:"customer_id" validate:"required"`
	Items      []SaleItemRequest `json:"items" validate:"required,min=1"`
	Tax        decimal.Decimal   `json:"tax"`
	Notes      string            `json:"notes"`
}

// UpdateSaleRequest metadatos editables mientras la orden está pending.
type UpdateSaleRequest struct {
	Notes *string          `json:"notes"`
	Tax   *decimal.Decimal `json:"tax"`
}

// UpdateStatusRequest cambio de estado solicitado.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// SaleItemResponse línea de venta persistida.
type SaleItemResponse struct {
	ID        string           `json:"id"`
	ProductID string           `json:"product_id"`
	Quantity  int              `json:"quantity"`
	UnitPrice decimal.Decimal  `json:"unit_price"`
	Total     decimal.Decimal  `json:"total"`
	Product   *ProductResponse `json:"product,omitempty"`
}

// SaleResponse salida de una orden de venta.
type SaleResponse struct {
	ID          string             `json:"id"`
	CompanyID   string             `json:"company_id"`
	CustomerID  string             `json:"customer_id"`
	UserID      string             `json:"user_id"`
	OrderNumber string             `json:"order_number"`
	Status      string             `json:"status"`
	Subtotal    decimal.Decimal    `json:"subtotal"`
	Tax         decimal.Decimal    `json:"tax"`
	Total       decimal.Decimal    `json:"total"`
	Notes       string             `json:"notes,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Customer    *CustomerResponse  `json:"customer,omitempty"`
	Items       []SaleItemResponse `json:"items,omitempty"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
