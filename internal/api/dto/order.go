package dto

import (
	"time"

	"github.com/roamsim/roamsim/internal/domain/order"
	"github.com/roamsim/roamsim/internal/types"
)

// Order status values for the success-page poll.
const (
	// OrderLookupPending means the session has not been reconciled yet;
	// the success page keeps showing its processing state.
	OrderLookupPending = "pending"
	// OrderLookupProcessing means the order exists but provisioning has
	// not produced a QR payload yet.
	OrderLookupProcessing = "processing"
	// OrderLookupReady means the QR payload is available.
	OrderLookupReady = "ready"
)

// OrderStatusResponse answers an order status lookup by payment session id.
type OrderStatusResponse struct {
	Order  *OrderResponse `json:"order"`
	Status string         `json:"status"`
}

// OrderResponse is the client-visible view of an order.
type OrderResponse struct {
	ID              string     `json:"id"`
	OrderNumber     string     `json:"order_number"`
	DestinationName string     `json:"destination_name"`
	PlanName        string     `json:"plan_name"`
	DurationDays    int        `json:"duration_days"`
	Amount          int64      `json:"amount"`
	Currency        string     `json:"currency"`
	Locale          string     `json:"locale"`
	OrderStatus     string     `json:"order_status"`
	ESIMStatus      string     `json:"esim_status"`
	ICCID           string     `json:"iccid,omitempty"`
	QRPayload       string     `json:"qr_payload,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`
	ProvisionedAt   *time.Time `json:"provisioned_at,omitempty"`
}

// NewOrderResponse converts a domain order to its response shape.
func NewOrderResponse(o *order.Order) *OrderResponse {
	if o == nil {
		return nil
	}
	return &OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		DestinationName: o.DestinationName,
		PlanName:        o.PlanName,
		DurationDays:    o.DurationDays.Days(),
		Amount:          o.Amount,
		Currency:        o.Currency,
		Locale:          o.Locale,
		OrderStatus:     string(o.OrderStatus),
		ESIMStatus:      string(o.ESIMStatus),
		ICCID:           o.ICCID,
		QRPayload:       o.QRPayload,
		CreatedAt:       o.CreatedAt,
		PaidAt:          o.PaidAt,
		ProvisionedAt:   o.ProvisionedAt,
	}
}

// NewOrderStatusResponse derives the lookup status from the order's QR
// presence.
func NewOrderStatusResponse(o *order.Order) *OrderStatusResponse {
	if o == nil {
		return &OrderStatusResponse{Order: nil, Status: OrderLookupPending}
	}
	status := OrderLookupProcessing
	if o.ESIMStatus == types.ESIMStatusProvisioned && o.QRPayload != "" {
		status = OrderLookupReady
	}
	return &OrderStatusResponse{
		Order:  NewOrderResponse(o),
		Status: status,
	}
}

// ListOrdersResponse is the admin order listing.
type ListOrdersResponse struct {
	Orders []*OrderResponse `json:"orders"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}
