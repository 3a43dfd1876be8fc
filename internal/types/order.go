package types

// OrderStatus is the lifecycle status of an order.
type OrderStatus string

const (
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCompleted OrderStatus = "completed"
)

// ESIMStatus tracks the provisioning state of an order's eSIM.
type ESIMStatus string

const (
	// ESIMStatusPending means payment succeeded but provisioning has not
	// completed yet; the order can be retried by the reconciler.
	ESIMStatusPending ESIMStatus = "pending"
	// ESIMStatusProvisioned means the eSIM was assigned and the QR payload
	// derived.
	ESIMStatusProvisioned ESIMStatus = "provisioned"
)

// PaymentMode selects between the provider's test and live field sets. It is
// threaded in explicitly through configuration rather than read from any
// global state.
type PaymentMode string

const (
	PaymentModeTest PaymentMode = "test"
	PaymentModeLive PaymentMode = "live"
)

// IsTest reports whether the mode is the non-charging test mode.
func (m PaymentMode) IsTest() bool {
	return m == PaymentModeTest
}
