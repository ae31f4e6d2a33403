package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscountTiers(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		want     string
	}{
		{name: "single unit", quantity: 1, want: "0"},
		{name: "just below small tier", quantity: 99, want: "0"},
		{name: "small tier lower bound", quantity: 100, want: "0.05"},
		{name: "small tier upper bound", quantity: 500, want: "0.05"},
		{name: "medium tier lower bound", quantity: 501, want: "0.1"},
		{name: "medium tier upper bound", quantity: 1000, want: "0.1"},
		{name: "large tier lower bound", quantity: 1001, want: "0.15"},
		{name: "very large order", quantity: 50000, want: "0.15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Discount(tt.quantity)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"Discount(%d) = %s, want %s", tt.quantity, got, tt.want)
		})
	}
}

func TestPriceAppliesDiscount(t *testing.T) {
	unitPrice := decimal.RequireFromString("0.05")

	// 150 A4 sheets at 0.05: subtotal 7.50, 5% off leaves 7.125.
	breakdown := Price(150, unitPrice)

	require.True(t, breakdown.Subtotal.Equal(decimal.RequireFromString("7.5")),
		"subtotal = %s", breakdown.Subtotal)
	require.True(t, breakdown.Discount.Equal(decimal.RequireFromString("0.05")))
	require.True(t, breakdown.Total.Equal(decimal.RequireFromString("7.125")),
		"total = %s", breakdown.Total)
}

func TestPriceWithoutDiscount(t *testing.T) {
	breakdown := Price(10, decimal.RequireFromString("1.5"))

	assert.True(t, breakdown.Discount.IsZero())
	assert.True(t, breakdown.Total.Equal(decimal.RequireFromString("15")))
	assert.True(t, breakdown.Total.Equal(breakdown.Subtotal))
}

func TestPriceKeepsPrecision(t *testing.T) {
	// 1001 units at 0.03 with 15% off: 30.03 * 0.85 = 25.5255. The
	// unrounded total must survive so callers can round once at display.
	breakdown := Price(1001, decimal.RequireFromString("0.03"))

	assert.True(t, breakdown.Total.Equal(decimal.RequireFromString("25.5255")),
		"total = %s", breakdown.Total)
}
