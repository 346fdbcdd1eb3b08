// Package billing contiene servicios de dominio puros de cálculo monetario.
package billing

import "github.com/shopspring/decimal"

// ApportionTax prorratea el impuesto de una devolución a partir de la venta
// original: subtotal * (impuestoOriginal / subtotalOriginal).
// Devuelve cero si el subtotal original es cero (venta sin base gravable).
func ApportionTax(subtotal, originalTax, originalSubtotal decimal.Decimal) decimal.Decimal {
	if originalSubtotal.IsZero() {
		return decimal.Zero
	}
	return subtotal.Mul(originalTax).Div(originalSubtotal)
}

// LineTotal calcula el total de una línea: cantidad * precio unitario.
func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}
