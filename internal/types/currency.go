package types

import (
	"strings"

	ierr "github.com/roamsim/roamsim/internal/errors"
	"github.com/shopspring/decimal"
)

// zeroDecimalCurrencies are currencies whose amounts carry no minor units on
// the payment provider side.
var zeroDecimalCurrencies = map[string]struct{}{
	"idr": {},
	"jpy": {},
	"krw": {},
	"vnd": {},
}

// IsZeroDecimalCurrency reports whether the currency has no minor units.
func IsZeroDecimalCurrency(currency string) bool {
	_, ok := zeroDecimalCurrencies[strings.ToLower(currency)]
	return ok
}

// ValidateCurrencyCode checks that the currency is a 3-letter ISO code.
func ValidateCurrencyCode(currency string) error {
	if len(currency) != 3 {
		return ierr.NewErrorf("invalid currency code: %s", currency).
			WithHint("Currency must be a 3-letter ISO code").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ToMinorUnits converts a decimal amount to the payment provider's minor
// currency units (cents for 2-decimal currencies, whole units otherwise).
func ToMinorUnits(amount decimal.Decimal, currency string) int64 {
	if IsZeroDecimalCurrency(currency) {
		return amount.Round(0).IntPart()
	}
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// FromMinorUnits converts minor currency units back to a decimal amount.
func FromMinorUnits(amount int64, currency string) decimal.Decimal {
	d := decimal.NewFromInt(amount)
	if IsZeroDecimalCurrency(currency) {
		return d
	}
	return d.Div(decimal.NewFromInt(100))
}
