package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMinorUnitConversion(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		minor    int64
	}{
		{"aud two decimals", "15.99", "aud", 1599},
		{"aud whole", "20", "AUD", 2000},
		{"idr zero decimal", "149900", "idr", 149900},
		{"jpy zero decimal", "1200", "JPY", 1200},
		{"zero amount", "0", "usd", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			minor := ToMinorUnits(amount, tt.currency)
			assert.Equal(t, tt.minor, minor)
			assert.True(t, amount.Equal(FromMinorUnits(minor, tt.currency)),
				"round trip mismatch: %s", FromMinorUnits(minor, tt.currency))
		})
	}
}

func TestIsZeroDecimalCurrency(t *testing.T) {
	assert.True(t, IsZeroDecimalCurrency("IDR"))
	assert.True(t, IsZeroDecimalCurrency("jpy"))
	assert.False(t, IsZeroDecimalCurrency("aud"))
	assert.False(t, IsZeroDecimalCurrency("usd"))
}

func TestValidateCurrencyCode(t *testing.T) {
	assert.NoError(t, ValidateCurrencyCode("AUD"))
	assert.Error(t, ValidateCurrencyCode(""))
	assert.Error(t, ValidateCurrencyCode("AUDX"))
}
