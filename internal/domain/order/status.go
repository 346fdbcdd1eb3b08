// Package order contiene los servicios de dominio puros del ciclo de vida de
// órdenes: las máquinas de estados de ventas, compras y devoluciones, y la
// generación de números de documento. Sin dependencias de persistencia.
package order

import "fmt"

// Estados de una orden de venta.
const (
	SalePending   = "pending"
	SaleConfirmed = "confirmed"
	SaleShipped   = "shipped"
	SaleDelivered = "delivered"
	SaleCancelled = "cancelled"
)

// Estados de una orden de compra.
const (
	PurchasePending   = "pending"
	PurchaseApproved  = "approved"
	PurchaseOrdered   = "ordered"
	PurchasePartial   = "partial"
	PurchaseReceived  = "received"
	PurchaseCancelled = "cancelled"
)

// Estados de una devolución de venta.
const (
	ReturnPending   = "pending"
	ReturnApproved  = "approved"
	ReturnCompleted = "completed"
	ReturnCancelled = "cancelled"
)

// Tablas de transiciones válidas. Todo par (from, to) ausente se rechaza;
// los estados terminales tienen lista vacía.
var saleTransitions = map[string][]string{
	SalePending:   {SaleConfirmed, SaleCancelled},
	SaleConfirmed: {SaleShipped, SaleCancelled},
	SaleShipped:   {SaleDelivered, SaleCancelled},
	SaleDelivered: {},
	SaleCancelled: {},
}

var purchaseTransitions = map[string][]string{
	PurchasePending:   {PurchaseApproved, PurchaseCancelled},
	PurchaseApproved:  {PurchaseOrdered, PurchaseCancelled},
	PurchaseOrdered:   {PurchasePartial, PurchaseReceived, PurchaseCancelled},
	PurchasePartial:   {PurchaseReceived, PurchaseCancelled},
	PurchaseReceived:  {},
	PurchaseCancelled: {},
}

var returnTransitions = map[string][]string{
	ReturnPending:   {ReturnApproved, ReturnCancelled},
	ReturnApproved:  {ReturnCompleted, ReturnCancelled},
	ReturnCompleted: {},
	ReturnCancelled: {},
}

// TransitionError indica una transición de estado no permitida.
type TransitionError struct {
	Entity string // "sale" | "purchase" | "sales_return"
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transición inválida de %s a %s", e.From, e.To)
}

func canTransition(table map[string][]string, from, to string) bool {
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanTransitionSale indica si una venta puede pasar de from a to.
func CanTransitionSale(from, to string) bool {
	return canTransition(saleTransitions, from, to)
}

// CanTransitionPurchase indica si una compra puede pasar de from a to.
func CanTransitionPurchase(from, to string) bool {
	return canTransition(purchaseTransitions, from, to)
}

// CanTransitionReturn indica si una devolución puede pasar de from a to.
func CanTransitionReturn(from, to string) bool {
	return canTransition(returnTransitions, from, to)
}

// ValidSaleStatus indica si s es un estado conocido de venta.
func ValidSaleStatus(s string) bool {
	_, ok := saleTransitions[s]
	return ok
}

// ValidPurchaseStatus indica si s es un estado conocido de compra.
func ValidPurchaseStatus(s string) bool {
	_, ok := purchaseTransitions[s]
	return ok
}

// ValidReturnStatus indica si s es un estado conocido de devolución.
func ValidReturnStatus(s string) bool {
	_, ok := returnTransitions[s]
	return ok
}

// ReturnableSaleStatus indica si el estado de la venta admite devoluciones
// (confirmed, shipped o delivered).
func ReturnableSaleStatus(s string) bool {
	switch s {
	case SaleConfirmed, SaleShipped, SaleDelivered:
		return true
	}
	return false
}
