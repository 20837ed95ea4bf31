package view

import (
	"github.com/shopspring/decimal"
)

// Money renders an amount the way the storefront does: dollar sign, two
// decimals, no thousands separator.
func Money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// LineSubtotal is the presentational quantity × unit price amount shown per
// invoice row. The order's own total is never derived from these; the server
// total is displayed verbatim.
func LineSubtotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}
