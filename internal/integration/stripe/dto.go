package stripe

import (
	"github.com/roamsim/roamsim/internal/types"
)

// CreateSessionRequest carries everything needed to open a hosted checkout
// session with the payment provider.
type CreateSessionRequest struct {
	// PriceRef is the provider price id for the selected plan duration and
	// operating mode.
	PriceRef string
	// PromotionCodeID is an already-resolved provider promotion code id;
	// empty means let the customer enter one manually at checkout.
	PromotionCodeID string
	// Metadata is attached to the session and read back by the reconciler:
	// destination, duration, locale and bundle reference.
	Metadata types.Metadata
	// SuccessURL / CancelURL are the locale-parameterized redirect targets.
	// SuccessURL carries the provider's session id placeholder.
	SuccessURL string
	CancelURL  string
	// ClientReferenceID carries the ad click id, when one was captured.
	ClientReferenceID string
}

// CheckoutSession is the provider-neutral view of a hosted checkout session
// used by the checkout and reconciliation services.
type CheckoutSession struct {
	ID              string
	URL             string
	PaymentIntentID string
	CustomerEmail   string
	// AmountTotal is in the provider's minor currency units.
	AmountTotal       int64
	Currency          string
	Paid              bool
	Metadata          types.Metadata
	ClientReferenceID string
}

// WebhookEvent is a verified payment provider event.
type WebhookEvent struct {
	Type    string
	Session *CheckoutSession
}

// Session metadata keys written at checkout and read back during
// reconciliation.
const (
	MetadataDestination = "destination"
	MetadataDuration    = "duration"
	MetadataLocale      = "locale"
	MetadataBundle      = "bundle"
	MetadataPlanName    = "plan_name"
)
