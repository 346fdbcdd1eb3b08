package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnItemRequest línea de devolución: referencia una línea concreta de la
// venta original.
type ReturnItemRequest struct {
	SaleItemID string `json:"sale_item_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,min=1"`
}

// CreateReturnRequest entrada para crear una devolución. La empresa se
// deriva de la venta original, no se pide aparte.
type CreateReturnRequest struct {
	SaleID string              `json:"sale_id" validate:"required"`
	Items  []ReturnItemRequest `json:"items" validate:"required,min=1"`
	Reason string              `json:"reason"`
	Notes  string              `json:"notes"`
}

// ReturnItemResponse línea de devolución persistida.
type ReturnItemResponse struct {
	ID         string           `json:"id"`
	SaleItemID string           `json:"sale_item_id"`
	ProductID  string           `json:"product_id"`
	Quantity   int              `json:"quantity"`
	UnitPrice  decimal.Decimal  `json:"unit_price"`
	Total      decimal.Decimal  `json:"total"`
	Product    *ProductResponse `json:"product,omitempty"`
}

// ReturnResponse salida de una devolución.
type ReturnResponse struct {
	ID           string               `json:"id"`
	CompanyID    string               `json:"company_id"`
	SaleID       string               `json:"sale_id"`
	UserID       string               `json:"user_id"`
	ReturnNumber string               `json:"return_number"`
	Status       string               `json:"status"`
	Subtotal     decimal.Decimal      `json:"subtotal"`
	Tax          decimal.Decimal      `json:"tax"`
	Total        decimal.Decimal      `json:"total"`
	Reason       string               `json:"reason,omitempty"`
	Notes        string               `json:"notes,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
	Items        []ReturnItemResponse `json:"items,omitempty"`
}

// ReturnListResponse lista paginada de devoluciones.
type ReturnListResponse struct {
	Items []ReturnResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// ReturnableItemResponse línea de la venta con su cantidad aún devolvible.
type ReturnableItemResponse struct {
	SaleItemID        string           `json:"sale_item_id"`
	ProductID         string           `json:"product_id"`
	Product           *ProductResponse `json:"product,omitempty"`
	OrderedQuantity   int              `json:"ordered_quantity"`
	ReturnedQuantity  int              `json:"returned_quantity"`
	RemainingQuantity int              `json:"remaining_quantity"`
	UnitPrice         decimal.Decimal  `json:"unit_price"`
	CanReturn         bool             `json:"can_return"`
}

// ReturnableItemsResponse venta + líneas devolvibles.
type ReturnableItemsResponse struct {
	Sale            SaleResponse             `json:"sale"`
	ReturnableItems []ReturnableItemResponse `json:"returnable_items"`
}
