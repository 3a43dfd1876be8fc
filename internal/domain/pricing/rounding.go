package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	friendlyLow  = decimal.NewFromFloat(0.49)
	friendlyHigh = decimal.NewFromFloat(0.99)
	oneCent      = decimal.NewFromFloat(0.01)
	thousand     = decimal.NewFromInt(1000)
	idrOffset    = decimal.NewFromInt(900)
)

// RoundToFriendlyPrice rounds a raw price to a customer-friendly ending
// (.49 or .99, or the whole-thousand + 900 equivalent for IDR).
//
// IDR: the price is truncated to whole thousands and a fixed 900 offset is
// added. When the input is already a round thousand this raises the price by
// 900 (149,000 → 149,900). That is accepted pricing policy, not a bug.
//
// All other currencies, by fractional part f:
//
//	f < 0.49         → previous whole number's .99 ending (0.49 when the
//	                   integer part is 0)
//	0.49 ≤ f < 0.99  → integer + 0.49
//	f ≥ 0.99         → integer + 0.99
//
// Pure and total over non-negative finite inputs.
func RoundToFriendlyPrice(price decimal.Decimal, currency string) decimal.Decimal {
	if strings.EqualFold(currency, "IDR") {
		thousands := price.Div(thousand).Floor()
		return thousands.Mul(thousand).Add(idrOffset)
	}

	integer := price.Floor()
	fractional := price.Sub(integer)

	switch {
	case fractional.Cmp(friendlyLow) < 0:
		if integer.IsZero() {
			return friendlyLow
		}
		return integer.Sub(oneCent)
	case fractional.Cmp(friendlyHigh) < 0:
		return integer.Add(friendlyLow)
	default:
		return integer.Add(friendlyHigh)
	}
}
