package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateRetailPrice(t *testing.T) {
	tests := []struct {
		name                string
		wholesaleCost       string
		competitorDailyRate string
		durationDays        int
		currency            string
		expected            string
		description         string
	}{
		{
			name:                "MarkupBelowCompetitor_UsesMarkup",
			wholesaleCost:       "10",
			competitorDailyRate: "10",
			durationDays:        7,
			currency:            "AUD",
			expected:            "15.99",
			description:         "base 16 <= trip cost 70, so the plain markup wins and rounds to 15.99",
		},
		{
			name:                "CheapCompetitor_FloorWins",
			wholesaleCost:       "10",
			competitorDailyRate: "1",
			durationDays:        5,
			currency:            "AUD",
			expected:            "14.99",
			description:         "target 4.5 would breach the 50% floor of 15, so the floor wins and rounds to 14.99",
		},
		{
			name:                "ExpensiveCompetitor_DiscountBranch",
			wholesaleCost:       "10",
			competitorDailyRate: "3",
			durationDays:        5,
			currency:            "USD",
			expected:            "14.99",
			description:         "base 16 > trip 15; max(target 13.5, floor 15) = 15 rounds to 14.99",
		},
		{
			name:                "IDR_Plan",
			wholesaleCost:       "90000",
			competitorDailyRate: "25000",
			durationDays:        7,
			currency:            "IDR",
			expected:            "144900",
			description:         "base 144000 <= trip 175000, friendly-rounded for IDR",
		},
		{
			name:                "ZeroWholesale_StillTotal",
			wholesaleCost:       "0",
			competitorDailyRate: "2",
			durationDays:        5,
			currency:            "USD",
			expected:            "0.49",
			description:         "base 0 <= trip 10 → pre-round 0 → rounds to 0.49",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateRetailPrice(
				decimal.RequireFromString(tt.wholesaleCost),
				decimal.RequireFromString(tt.competitorDailyRate),
				tt.durationDays,
				tt.currency,
			)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)),
				"%s: got %s, want %s", tt.description, got, tt.expected)
		})
	}
}

// Whenever the discount branch runs, trip cost < 1.6x wholesale, so the
// 10%-off target is below 1.44x wholesale and the 1.5x floor always wins.
// The max() is kept for when the policy knobs change.
func TestCalculateRetailPrice_FloorDominatesDiscountBranch(t *testing.T) {
	got := CalculateRetailPrice(
		decimal.RequireFromString("10"),
		decimal.RequireFromString("1.9"),
		8,
		"USD",
	)
	// base 16 > trip 15.2; target 13.68, floor 15 → floor wins → 14.99
	assert.True(t, got.Equal(decimal.RequireFromString("14.99")), "got %s", got)
}

func TestCalculatePricingWithBreakdown(t *testing.T) {
	b := CalculatePricingWithBreakdown(
		decimal.RequireFromString("10"),
		decimal.RequireFromString("1"),
		5,
		"AUD",
	)

	assert.True(t, b.BasePrice.Equal(decimal.RequireFromString("16")))
	assert.True(t, b.CompetitorTripCost.Equal(decimal.RequireFromString("5")))
	assert.True(t, b.TargetPrice.Equal(decimal.RequireFromString("4.5")))
	assert.True(t, b.FloorPrice.Equal(decimal.RequireFromString("15")))
	assert.True(t, b.PreRoundPrice.Equal(decimal.RequireFromString("15")))
	assert.True(t, b.FinalPrice.Equal(decimal.RequireFromString("14.99")))
	assert.True(t, b.MarginAmount.Equal(decimal.RequireFromString("4.99")))
	assert.True(t, b.MarginPercent.Equal(decimal.RequireFromString("49.9")))
	// We are 9.99 more expensive than the competitor's 5 trip cost.
	assert.True(t, b.SavingsVsCompetitor.Equal(decimal.RequireFromString("-9.99")))
}

func TestCalculatePricingWithBreakdown_ZeroWholesale(t *testing.T) {
	b := CalculatePricingWithBreakdown(
		decimal.Zero,
		decimal.RequireFromString("2"),
		5,
		"USD",
	)

	// Zero wholesale is 0% margin, not a division error.
	assert.True(t, b.MarginPercent.IsZero())
	assert.True(t, b.FinalPrice.Equal(decimal.RequireFromString("0.49")))
}

// The 50% margin floor is always respected before rounding; rounding may
// push the final price below the floor, but only by less than one whole
// currency unit.
func TestRetailPrice_FloorRespectedPreRound(t *testing.T) {
	cases := []struct {
		wholesale string
		rate      string
		days      int
	}{
		{"10", "1", 5},
		{"10", "1.9", 8},
		{"25", "2", 7},
		{"3.33", "0.5", 15},
		{"100", "5", 5},
	}

	one := decimal.NewFromInt(1)
	for _, tt := range cases {
		wholesale := decimal.RequireFromString(tt.wholesale)
		rate := decimal.RequireFromString(tt.rate)
		b := CalculatePricingWithBreakdown(wholesale, rate, tt.days, "USD")

		if b.BasePrice.Cmp(b.CompetitorTripCost) > 0 {
			assert.True(t, b.PreRoundPrice.Cmp(b.FloorPrice) >= 0,
				"pre-round %s breached floor %s", b.PreRoundPrice, b.FloorPrice)
		}
		assert.True(t, b.FloorPrice.Sub(b.FinalPrice).Cmp(one) < 0,
			"final %s deviates from floor %s by a full unit or more", b.FinalPrice, b.FloorPrice)
	}
}
