package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseItemRequest línea de una compra nueva. UnitPrice es obligatorio:
// el costo lo pacta el proveedor, no el catálogo.
type PurchaseItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"required"`
}

// CreatePurchaseRequest entrada para crear una orden de compra.
type CreatePurchaseRequest struct {
	CompanyID        string                `json:"company_id"` // solo superadmin
	SupplierID       string                `json:"supplier_id" validate:"required"`
	Items            []PurchaseItemRequest `json:"items" validate:"required,min=1"`
	Tax              decimal.Decimal       `json:"tax"`
	Notes            string                `json:"notes"`
	ExpectedDelivery *time.Time            `json:"expected_delivery"`
}

// UpdatePurchaseRequest metadatos editables mientras la orden está pending.
type UpdatePurchaseRequest struct {
	Notes            *string          `json:"notes"`
	Tax              *decimal.Decimal `json:"tax"`
	ExpectedDelivery *time.Time       `json:"expected_delivery"`
}

// ReceiveItemRequest cantidad a recibir de un producto concreto.
type ReceiveItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// ReceivePurchaseRequest entrada para recibir mercancía. Items vacío =
// recibir todo lo pendiente de cada línea.
type ReceivePurchaseRequest struct {
	Items []ReceiveItemRequest `json:"items"`
}

// PurchaseItemResponse línea de compra persistida.
type PurchaseItemResponse struct {
	ID               string           `json:"id"`
	ProductID        string           `json:"product_id"`
	Quantity         int              `json:"quantity"`
	ReceivedQuantity int              `json:"received_quantity"`
	UnitPrice        decimal.Decimal  `json:"unit_price"`
	Total            decimal.Decimal  `json:"total"`
	Product          *ProductResponse `json:"product,omitempty"`
}

// PurchaseResponse salida de una orden de compra.
type PurchaseResponse struct {
	ID               string                 `json:"id"`
	CompanyID        string                 `json:"company_id"`
	SupplierID       string                 `json:"supplier_id"`
	UserID           string                 `json:"user_id"`
	OrderNumber      string                 `json:"order_number"`
	Status           string                 `json:"status"`
	Subtotal         decimal.Decimal        `json:"subtotal"`
	Tax              decimal.Decimal        `json:"tax"`
	Total            decimal.Decimal        `json:"total"`
	Notes            string                 `json:"notes,omitempty"`
	ExpectedDelivery *time.Time             `json:"expected_delivery,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
	Supplier         *CustomerResponse      `json:"supplier,omitempty"`
	Items            []PurchaseItemResponse `json:"items,omitempty"`
}

// PurchaseListResponse lista paginada de compras.
type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
