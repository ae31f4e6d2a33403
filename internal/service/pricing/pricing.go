package pricing

import "github.com/shopspring/decimal"

// Bulk discount tiers: inclusive lower bounds, highest applicable tier wins.
var (
	discountSmall  = decimal.RequireFromString("0.05") // 100-500 units
	discountMedium = decimal.RequireFromString("0.10") // 501-1000 units
	discountLarge  = decimal.RequireFromString("0.15") // 1001+ units

	one = decimal.NewFromInt(1)
)

// Breakdown is the result of pricing a single line. Total is unrounded;
// rounding to two places happens only at the point of external display so
// rounding error never compounds across line items.
type Breakdown struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal // fraction, e.g. 0.05
	Total    decimal.Decimal
}

// Discount returns the bulk discount fraction for a quantity.
func Discount(quantity int) decimal.Decimal {
	switch {
	case quantity >= 1001:
		return discountLarge
	case quantity >= 501:
		return discountMedium
	case quantity >= 100:
		return discountSmall
	default:
		return decimal.Zero
	}
}

// Price computes the discounted total for a quantity at a unit price.
func Price(quantity int, unitPrice decimal.Decimal) Breakdown {
	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	discount := Discount(quantity)

	return Breakdown{
		Subtotal: subtotal,
		Discount: discount,
		Total:    subtotal.Mul(one.Sub(discount)),
	}
}
