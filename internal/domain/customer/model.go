package customer

import (
	"context"

	ierr "github.com/roamsim/roamsim/internal/errors"
	"github.com/roamsim/roamsim/internal/types"
)

// Customer is deduplicated by email; it is created or reused when an order
// is persisted.
type Customer struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Locale string `json:"locale"`
	types.BaseModel
}

// Repository defines the interface for customer persistence operations.
type Repository interface {
	// GetOrCreateByEmail returns the existing customer for the email or
	// creates one with the given locale.
	GetOrCreateByEmail(ctx context.Context, email, locale string) (*Customer, error)
}

// Validate checks the customer before persistence.
func (c *Customer) Validate() error {
	if c.Email == "" {
		return ierr.NewError("email is required").Mark(ierr.ErrValidation)
	}
	return nil
}
