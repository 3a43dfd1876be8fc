package plan

import (
	ierr "github.com/roamsim/roamsim/internal/errors"
	"github.com/roamsim/roamsim/internal/types"
	"github.com/shopspring/decimal"
)

// Plan is the purchasable offer for one (destination, locale) pair. The
// catalog sync process owns writes; the checkout flow only reads.
type Plan struct {
	ID              string `json:"id"`
	DestinationSlug string `json:"destination_slug"`
	DestinationName string `json:"destination_name"`
	Locale          string `json:"locale"`
	Currency        string `json:"currency"`

	CompetitorName      string          `json:"competitor_name"`
	CompetitorDailyRate decimal.Decimal `json:"competitor_daily_rate"`

	// Durations maps each sellable duration to its provisioning and payment
	// references. One map entry per duration replaces per-duration columns.
	Durations map[types.PlanDuration]DurationOption `json:"durations"`

	types.BaseModel
}

// DurationOption holds the per-duration cost and external references.
type DurationOption struct {
	WholesaleCost decimal.Decimal `json:"wholesale_cost"`
	// BundleRef is the provisioning provider's product id for this
	// destination and duration.
	BundleRef string `json:"bundle_ref"`
	// PriceRefLive / PriceRefTest are the payment provider price ids for
	// each operating mode.
	PriceRefLive string `json:"price_ref_live"`
	PriceRefTest string `json:"price_ref_test"`
}

// PriceRef returns the payment provider price reference for the mode, or a
// configuration error when the operator has not filled it in.
func (p *Plan) PriceRef(duration types.PlanDuration, mode types.PaymentMode) (string, error) {
	opt, ok := p.Durations[duration]
	if !ok {
		return "", ierr.NewErrorf("plan %s has no %d-day option", p.DestinationSlug, duration).
			WithHint("The requested duration is not configured for this destination").
			Mark(ierr.ErrNotFound)
	}

	ref := opt.PriceRefLive
	if mode.IsTest() {
		ref = opt.PriceRefTest
	}
	if ref == "" {
		return "", ierr.NewErrorf("plan %s is missing a %s price reference for %d days", p.DestinationSlug, mode, duration).
			WithHint("Price reference not configured for the active payment mode").
			WithReportableDetails(map[string]interface{}{
				"destination": p.DestinationSlug,
				"duration":    duration.Days(),
				"mode":        string(mode),
			}).
			Mark(ierr.ErrConfiguration)
	}
	return ref, nil
}

// BundleRef returns the provisioning bundle reference for the duration, or
// an empty string when none is configured.
func (p *Plan) BundleRef(duration types.PlanDuration) string {
	return p.Durations[duration].BundleRef
}

// BestDailyRate returns the lowest retail price per day across the plan's
// durations, used by the catalog for "from X/day" display.
func (p *Plan) BestDailyRate(retailFor func(DurationOption, types.PlanDuration) decimal.Decimal) decimal.Decimal {
	best := decimal.Zero
	for duration, opt := range p.Durations {
		daily := retailFor(opt, duration).Div(decimal.NewFromInt(int64(duration.Days())))
		if best.IsZero() || daily.Cmp(best) < 0 {
			best = daily
		}
	}
	return best
}

// Validate checks plan integrity after a catalog read.
func (p *Plan) Validate() error {
	if p.DestinationSlug == "" {
		return ierr.NewError("destination_slug is required").Mark(ierr.ErrValidation)
	}
	if p.Locale == "" {
		return ierr.NewError("locale is required").Mark(ierr.ErrValidation)
	}
	if err := types.ValidateCurrencyCode(p.Currency); err != nil {
		return err
	}
	return nil
}
