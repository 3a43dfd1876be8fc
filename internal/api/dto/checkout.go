package dto

import (
	ierr "github.com/roamsim/roamsim/internal/errors"
	"github.com/roamsim/roamsim/internal/types"
)

// CreateCheckoutRequest is the client payload for starting a checkout.
type CreateCheckoutRequest struct {
	Destination string `json:"destination" binding:"required"`
	Duration    int    `json:"duration" binding:"required"`
	Locale      string `json:"locale" binding:"required"`
	PromoCode   string `json:"promo_code,omitempty"`
	// AdClickID is the opaque ad click token (gclid) captured client side.
	AdClickID string `json:"ad_click_id,omitempty"`
}

// Validate validates the create checkout request.
func (r *CreateCheckoutRequest) Validate() error {
	if r.Destination == "" {
		return ierr.NewError("destination is required").
			WithHint("Destination is required").
			Mark(ierr.ErrValidation)
	}
	if r.Locale == "" {
		return ierr.NewError("locale is required").
			WithHint("Locale is required").
			Mark(ierr.ErrValidation)
	}
	if err := r.PlanDuration().Validate(); err != nil {
		return err
	}
	return nil
}

// PlanDuration returns the requested duration as a typed value.
func (r *CreateCheckoutRequest) PlanDuration() types.PlanDuration {
	return types.PlanDuration(r.Duration)
}

// CheckoutResponse carries the hosted payment page URL.
type CheckoutResponse struct {
	RedirectURL string `json:"redirect_url"`
}
