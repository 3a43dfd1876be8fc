package testutil

import (
	"context"

	"github.com/roamsim/roamsim/internal/domain/plan"
	ierr "github.com/roamsim/roamsim/internal/errors"
)

// InMemoryPlanStore implements plan.Repository
type InMemoryPlanStore struct {
	*InMemoryStore[*plan.Plan]
}

// NewInMemoryPlanStore creates a new in-memory plan store
func NewInMemoryPlanStore() *InMemoryPlanStore {
	return &InMemoryPlanStore{
		InMemoryStore: NewInMemoryStore[*plan.Plan](),
	}
}

func planKey(destinationSlug, locale string) string {
	return destinationSlug + "|" + locale
}

// Add seeds a plan; at most one per (destination, locale).
func (s *InMemoryPlanStore) Add(ctx context.Context, p *plan.Plan) error {
	return s.InMemoryStore.Create(ctx, planKey(p.DestinationSlug, p.Locale), p)
}

func (s *InMemoryPlanStore) GetByDestination(ctx context.Context, destinationSlug, locale string) (*plan.Plan, error) {
	p, err := s.InMemoryStore.Get(ctx, planKey(destinationSlug, locale))
	if err != nil {
		return nil, ierr.NewErrorf("no plan for destination %s in locale %s", destinationSlug, locale).
			WithHint("Destination not found").
			Mark(ierr.ErrNotFound)
	}
	return p, nil
}

func (s *InMemoryPlanStore) ListByLocale(ctx context.Context, locale string) ([]*plan.Plan, error) {
	return s.InMemoryStore.List(ctx, func(p *plan.Plan) bool {
		return p.Locale == locale
	}), nil
}
