package testutil

import (
	"context"

	"github.com/roamsim/roamsim/internal/domain/customer"
	ierr "github.com/roamsim/roamsim/internal/errors"
	"github.com/roamsim/roamsim/internal/types"
)

// InMemoryCustomerStore implements customer.Repository
type InMemoryCustomerStore struct {
	*InMemoryStore[*customer.Customer]
}

// NewInMemoryCustomerStore creates a new in-memory customer store
func NewInMemoryCustomerStore() *InMemoryCustomerStore {
	return &InMemoryCustomerStore{
		InMemoryStore: NewInMemoryStore[*customer.Customer](),
	}
}

func (s *InMemoryCustomerStore) GetOrCreateByEmail(ctx context.Context, email, locale string) (*customer.Customer, error) {
	if email == "" {
		return nil, ierr.NewError("email is required").
			Mark(ierr.ErrValidation)
	}

	if existing, err := s.InMemoryStore.Get(ctx, email); err == nil {
		return existing, nil
	}

	c := &customer.Customer{
		ID:     types.GenerateID(types.CustomerIDPrefix),
		Email:  email,
		Locale: locale,
		BaseModel: types.BaseModel{
			Status: types.StatusPublished,
		},
	}
	if err := s.InMemoryStore.Create(ctx, email, c); err != nil {
		if ierr.IsAlreadyExists(err) {
			return s.InMemoryStore.Get(ctx, email)
		}
		return nil, err
	}
	return c, nil
}
