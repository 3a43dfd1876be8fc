package gorm

import (
	"context"
	"errors"

	"github.com/roamsim/roamsim/internal/domain/customer"
	ierr "github.com/roamsim/roamsim/internal/errors"
	"github.com/roamsim/roamsim/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type customerRepository struct {
	store *Store
}

// NewCustomerRepository creates a customer repository backed by the store.
func NewCustomerRepository(store *Store) customer.Repository {
	return &customerRepository{store: store}
}

// GetOrCreateByEmail reuses the customer row for the email or inserts one.
// The insert is conditional on the email's unique index, so a concurrent
// create for the same email resolves to a single row.
func (r *customerRepository) GetOrCreateByEmail(ctx context.Context, email, locale string) (*customer.Customer, error) {
	existing, err := r.getByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !ierr.IsNotFound(err) {
		return nil, err
	}

	m := &CustomerModel{
		ID:     types.GenerateID(types.CustomerIDPrefix),
		Email:  email,
		Locale: locale,
		Status: string(types.StatusPublished),
	}

	err = r.store.withRetry(ctx, func() error {
		res := r.store.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(m)
		if res.Error != nil && !errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return res.Error
		}
		return nil
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to create customer").
			Mark(ierr.ErrDatabase)
	}

	// Re-read so a lost race still returns the winning row.
	return r.getByEmail(ctx, email)
}

func (r *customerRepository) getByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	var m CustomerModel
	err := r.store.withRetry(ctx, func() error {
		return r.store.db.WithContext(ctx).
			Where("email = ?", email).
			First(&m).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewErrorf("no customer with email %s", email).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to read customer").
			Mark(ierr.ErrDatabase)
	}
	return FromCustomerModel(&m), nil
}
