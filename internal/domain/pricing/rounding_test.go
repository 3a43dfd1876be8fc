package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundToFriendlyPrice(t *testing.T) {
	tests := []struct {
		name        string
		price       string
		currency    string
		expected    string
		description string
	}{
		{
			name:        "LowFraction_RoundsDownToPrevious99",
			price:       "10.30",
			currency:    "AUD",
			expected:    "9.99",
			description: "fractional < 0.49 drops to the previous whole number's .99",
		},
		{
			name:        "WholeNumber_RoundsDownToPrevious99",
			price:       "16",
			currency:    "AUD",
			expected:    "15.99",
			description: "a whole number has fractional 0 and drops one cent",
		},
		{
			name:        "IntegerZero_LowFraction_Returns049",
			price:       "0.25",
			currency:    "USD",
			expected:    "0.49",
			description: "there is no previous .99 below 1, so 0.49 is returned",
		},
		{
			name:        "Exactly049_Kept",
			price:       "10.49",
			currency:    "USD",
			expected:    "10.49",
			description: "0.49 is the lower bound of the .49 band",
		},
		{
			name:        "MidFraction_RoundsTo49",
			price:       "10.75",
			currency:    "EUR",
			expected:    "10.49",
			description: "0.49 <= fractional < 0.99 snaps to .49",
		},
		{
			name:        "Exactly099_Kept",
			price:       "10.99",
			currency:    "USD",
			expected:    "10.99",
			description: "0.99 is the lower bound of the .99 band",
		},
		{
			name:        "HighFraction_RoundsTo99",
			price:       "10.995",
			currency:    "USD",
			expected:    "10.99",
			description: "fractional >= 0.99 snaps to .99",
		},
		{
			name:        "IDR_TruncatesToThousandsPlus900",
			price:       "149312",
			currency:    "IDR",
			expected:    "149900",
			description: "IDR truncates to whole thousands then adds 900",
		},
		{
			name:        "IDR_HighRemainder_StillTruncatesDown",
			price:       "149950",
			currency:    "IDR",
			expected:    "149900",
			description: "remainder close to 1000 still truncates before the offset",
		},
		{
			name:        "IDR_RoundThousandInput_RaisedBy900",
			price:       "149000",
			currency:    "IDR",
			expected:    "149900",
			description: "an already-round thousand gains the 900 offset; accepted policy",
		},
		{
			name:        "IDR_LowercaseCurrencyCode",
			price:       "5400",
			currency:    "idr",
			expected:    "5900",
			description: "currency comparison is case-insensitive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RoundToFriendlyPrice(decimal.RequireFromString(tt.price), tt.currency)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)),
				"%s: got %s, want %s", tt.description, got, tt.expected)
		})
	}
}

// Rounded values are fixed points: applying the rounder to its own output
// yields the same value. For IDR every output ends in 900, which truncates
// back to the same thousands, so the fixed-point property holds there too.
func TestRoundToFriendlyPrice_Idempotent(t *testing.T) {
	inputs := []struct {
		price    string
		currency string
	}{
		{"0.10", "USD"},
		{"7.00", "USD"},
		{"10.30", "AUD"},
		{"10.49", "AUD"},
		{"10.75", "EUR"},
		{"10.99", "EUR"},
		{"123.456", "GBP"},
		{"149312", "IDR"},
		{"149000", "IDR"},
		{"999", "IDR"},
	}

	for _, tt := range inputs {
		once := RoundToFriendlyPrice(decimal.RequireFromString(tt.price), tt.currency)
		twice := RoundToFriendlyPrice(once, tt.currency)
		assert.True(t, once.Equal(twice),
			"rounding %s %s twice gave %s then %s", tt.price, tt.currency, once, twice)
	}
}
