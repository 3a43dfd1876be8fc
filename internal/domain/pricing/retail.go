package pricing

import (
	"github.com/shopspring/decimal"
)

// Pricing policy knobs. The policy prefers the plain markup unless it would
// make the plan look overpriced next to the named competitor, in which case
// it discounts toward 10% under the competitor's trip cost, but never below
// the minimum margin floor.
var (
	// defaultMarkup is the 60% markup applied to the wholesale cost.
	defaultMarkup = decimal.NewFromFloat(1.60)
	// competitorDiscount targets 10% under the competitor's trip cost.
	competitorDiscount = decimal.NewFromFloat(0.90)
	// marginFloor is the minimum 50% margin over wholesale, never breached
	// before rounding.
	marginFloor = decimal.NewFromFloat(1.50)

	hundred = decimal.NewFromInt(100)
)

// CalculateRetailPrice computes the retail price for a plan from its
// wholesale cost, the competitor's daily rate and the trip duration, then
// rounds it to a friendly ending for the currency.
func CalculateRetailPrice(wholesaleCost, competitorDailyRate decimal.Decimal, durationDays int, currency string) decimal.Decimal {
	return RoundToFriendlyPrice(preRoundPrice(wholesaleCost, competitorDailyRate, durationDays), currency)
}

func preRoundPrice(wholesaleCost, competitorDailyRate decimal.Decimal, durationDays int) decimal.Decimal {
	basePrice := wholesaleCost.Mul(defaultMarkup)
	competitorTripCost := competitorDailyRate.Mul(decimal.NewFromInt(int64(durationDays)))

	if basePrice.Cmp(competitorTripCost) <= 0 {
		return basePrice
	}

	targetPrice := competitorTripCost.Mul(competitorDiscount)
	floorPrice := wholesaleCost.Mul(marginFloor)
	return decimal.Max(targetPrice, floorPrice)
}

// Breakdown exposes every intermediate value of the retail price calculation
// for auditing and tests. Read-only; computing it has no side effects.
type Breakdown struct {
	WholesaleCost       decimal.Decimal `json:"wholesale_cost"`
	CompetitorDailyRate decimal.Decimal `json:"competitor_daily_rate"`
	DurationDays        int             `json:"duration_days"`
	Currency            string          `json:"currency"`

	BasePrice          decimal.Decimal `json:"base_price"`
	CompetitorTripCost decimal.Decimal `json:"competitor_trip_cost"`
	TargetPrice        decimal.Decimal `json:"target_price"`
	FloorPrice         decimal.Decimal `json:"floor_price"`
	PreRoundPrice      decimal.Decimal `json:"pre_round_price"`
	FinalPrice         decimal.Decimal `json:"final_price"`

	MarginAmount  decimal.Decimal `json:"margin_amount"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
	// SavingsVsCompetitor is how much cheaper the final price is than the
	// competitor's trip cost; negative when we are more expensive.
	SavingsVsCompetitor decimal.Decimal `json:"savings_vs_competitor"`
	SavingsPercent      decimal.Decimal `json:"savings_percent"`
}

// CalculatePricingWithBreakdown runs the retail price calculation and
// returns all intermediates alongside the final rounded price.
func CalculatePricingWithBreakdown(wholesaleCost, competitorDailyRate decimal.Decimal, durationDays int, currency string) Breakdown {
	basePrice := wholesaleCost.Mul(defaultMarkup)
	competitorTripCost := competitorDailyRate.Mul(decimal.NewFromInt(int64(durationDays)))
	targetPrice := competitorTripCost.Mul(competitorDiscount)
	floorPrice := wholesaleCost.Mul(marginFloor)

	preRound := basePrice
	if basePrice.Cmp(competitorTripCost) > 0 {
		preRound = decimal.Max(targetPrice, floorPrice)
	}
	final := RoundToFriendlyPrice(preRound, currency)

	margin := final.Sub(wholesaleCost)
	// A zero wholesale cost is treated as 0% margin rather than a division
	// error.
	marginPercent := decimal.Zero
	if !wholesaleCost.IsZero() {
		marginPercent = margin.Div(wholesaleCost).Mul(hundred)
	}

	savings := competitorTripCost.Sub(final)
	savingsPercent := decimal.Zero
	if !competitorTripCost.IsZero() {
		savingsPercent = savings.Div(competitorTripCost).Mul(hundred)
	}

	return Breakdown{
		WholesaleCost:       wholesaleCost,
		CompetitorDailyRate: competitorDailyRate,
		DurationDays:        durationDays,
		Currency:            currency,
		BasePrice:           basePrice,
		CompetitorTripCost:  competitorTripCost,
		TargetPrice:         targetPrice,
		FloorPrice:          floorPrice,
		PreRoundPrice:       preRound,
		FinalPrice:          final,
		MarginAmount:        margin,
		MarginPercent:       marginPercent,
		SavingsVsCompetitor: savings,
		SavingsPercent:      savingsPercent,
	}
}
