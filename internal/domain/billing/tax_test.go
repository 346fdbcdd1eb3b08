package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/erp-api/internal/domain/billing"
)

// Venta original: subtotal 100, impuesto 10. Devolver 20 de subtotal debe
// arrastrar 2 de impuesto (misma proporción).
func TestApportionTax_Proporcional(t *testing.T) {
	tax := billing.ApportionTax(
		decimal.NewFromInt(20),
		decimal.NewFromInt(10),
		decimal.NewFromInt(100),
	)
	assert.True(t, tax.Equal(decimal.NewFromInt(2)), "esperaba 2, obtuve %s", tax)
}

func TestApportionTax_DevolucionTotal(t *testing.T) {
	tax := billing.ApportionTax(
		decimal.NewFromInt(100),
		decimal.NewFromInt(19),
		decimal.NewFromInt(100),
	)
	assert.True(t, tax.Equal(decimal.NewFromInt(19)),
		"devolver todo el subtotal arrastra todo el impuesto")
}

func TestApportionTax_SubtotalOriginalCero(t *testing.T) {
	tax := billing.ApportionTax(
		decimal.NewFromInt(20),
		decimal.NewFromInt(10),
		decimal.Zero,
	)
	assert.True(t, tax.IsZero(), "sin base gravable no hay impuesto que prorratear")
}

func TestApportionTax_VentaSinImpuesto(t *testing.T) {
	tax := billing.ApportionTax(
		decimal.NewFromInt(50),
		decimal.Zero,
		decimal.NewFromInt(100),
	)
	assert.True(t, tax.IsZero())
}

func TestLineTotal(t *testing.T) {
	total := billing.LineTotal(3, decimal.NewFromFloat(12.50))
	assert.True(t, total.Equal(decimal.NewFromFloat(37.50)), "3 x 12.50 = 37.50")
}

func TestLineTotal_CantidadCero(t *testing.T) {
	assert.True(t, billing.LineTotal(0, decimal.NewFromInt(99)).IsZero())
}
