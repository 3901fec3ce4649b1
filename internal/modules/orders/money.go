package orders

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Subunits converts a base-currency total into the gateway's smallest unit,
// rounding half away from zero. Checkout and verification must agree on this
// number exactly, so it lives in one place.
func Subunits(total decimal.Decimal) int64 {
	return total.Mul(hundred).Round(0).IntPart()
}
