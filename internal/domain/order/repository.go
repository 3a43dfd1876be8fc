package order

import (
	"context"
	"time"
)

// Repository defines the interface for order persistence operations.
type Repository interface {
	// CreateIfAbsent inserts the order unless one already exists for the
	// same payment session id. It returns the stored order and whether this
	// call created it. A concurrent insert for the same session must come
	// back as (existing order, false), never as a duplicate.
	CreateIfAbsent(ctx context.Context, o *Order) (*Order, bool, error)

	// GetByPaymentSessionID returns the order for a payment session, or a
	// not-found error.
	GetByPaymentSessionID(ctx context.Context, sessionID string) (*Order, error)

	// NextSequenceForDay returns the next unused order number sequence for
	// the calendar day, derived from the highest existing number with that
	// day's prefix.
	NextSequenceForDay(ctx context.Context, day time.Time) (int, error)

	// List returns recent orders, newest first.
	List(ctx context.Context, limit, offset int) ([]*Order, error)
}
