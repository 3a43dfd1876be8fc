package order

import (
	"fmt"
	"time"

	ierr "github.com/roamsim/roamsim/internal/errors"
	"github.com/roamsim/roamsim/internal/types"
)

// Order is the durable record of a completed purchase. Exactly one order
// exists per payment session id; that uniqueness is the reconciler's
// idempotency key.
type Order struct {
	ID string `json:"id"`
	// OrderNumber is the human-readable number, TRV-YYYYMMDD-NNN.
	OrderNumber string `json:"order_number"`

	PaymentSessionID string `json:"payment_session_id"`
	PaymentIntentID  string `json:"payment_intent_id"`
	CustomerID       string `json:"customer_id"`

	DestinationName string             `json:"destination_name"`
	PlanName        string             `json:"plan_name"`
	DurationDays    types.PlanDuration `json:"duration_days"`
	// Amount is in minor currency units, as reported by the payment session.
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Locale   string `json:"locale"`

	OrderStatus types.OrderStatus `json:"order_status"`

	// eSIM fields stay empty until provisioning succeeds.
	ESIMStatus     types.ESIMStatus `json:"esim_status"`
	ESIMOrderRef   string           `json:"esim_order_ref,omitempty"`
	ICCID          string           `json:"iccid,omitempty"`
	ProfileAddress string           `json:"profile_address,omitempty"`
	MatchingID     string           `json:"matching_id,omitempty"`
	QRPayload      string           `json:"qr_payload,omitempty"`

	PaidAt        *time.Time `json:"paid_at,omitempty"`
	ProvisionedAt *time.Time `json:"provisioned_at,omitempty"`

	types.BaseModel
}

// OrderNumberPrefix is the storefront's order number prefix.
const OrderNumberPrefix = "TRV"

// FormatOrderNumber builds a TRV-YYYYMMDD-NNN order number.
func FormatOrderNumber(day time.Time, sequence int) string {
	return fmt.Sprintf("%s-%s-%03d", OrderNumberPrefix, day.UTC().Format("20060102"), sequence)
}

// DayPrefix returns the order number prefix for a calendar day, used to
// find the day's highest existing sequence.
func DayPrefix(day time.Time) string {
	return fmt.Sprintf("%s-%s-", OrderNumberPrefix, day.UTC().Format("20060102"))
}

// SetProvisioned records a successful provisioning result and derives the
// installable QR payload when activation credentials are present.
func (o *Order) SetProvisioned(orderRef, iccid, profileAddress, matchingID string, now time.Time) {
	o.ESIMOrderRef = orderRef
	o.ICCID = iccid
	o.ProfileAddress = profileAddress
	o.MatchingID = matchingID
	if profileAddress != "" && matchingID != "" {
		o.QRPayload = fmt.Sprintf("LPA:1$%s$%s", profileAddress, matchingID)
	}
	o.ESIMStatus = types.ESIMStatusProvisioned
	o.ProvisionedAt = &now
}

// IsFree reports whether the order was paid with a 100% discount.
func (o *Order) IsFree() bool {
	return o.Amount == 0
}

// Validate checks the order before persistence.
func (o *Order) Validate() error {
	if o.PaymentSessionID == "" {
		return ierr.NewError("payment_session_id is required").Mark(ierr.ErrValidation)
	}
	if o.OrderNumber == "" {
		return ierr.NewError("order_number is required").Mark(ierr.ErrValidation)
	}
	if o.CustomerID == "" {
		return ierr.NewError("customer_id is required").Mark(ierr.ErrValidation)
	}
	return nil
}
