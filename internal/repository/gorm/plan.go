package gorm

import (
	"context"
	"errors"

	"github.com/roamsim/roamsim/internal/domain/plan"
	ierr "github.com/roamsim/roamsim/internal/errors"
	"github.com/roamsim/roamsim/internal/types"
	"gorm.io/gorm"
)

type planRepository struct {
	store *Store
}

// NewPlanRepository creates a plan repository backed by the store.
func NewPlanRepository(store *Store) plan.Repository {
	return &planRepository{store: store}
}

func (r *planRepository) GetByDestination(ctx context.Context, destinationSlug, locale string) (*plan.Plan, error) {
	var m PlanModel
	err := r.store.withRetry(ctx, func() error {
		return r.store.db.WithContext(ctx).
			Preload("Durations").
			Where("destination_slug = ? AND locale = ? AND status = ?", destinationSlug, locale, string(types.StatusPublished)).
			First(&m).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewErrorf("no plan for destination %s in locale %s", destinationSlug, locale).
				WithHint("Destination not found").
				WithReportableDetails(map[string]interface{}{
					"destination": destinationSlug,
					"locale":      locale,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to read plan").
			Mark(ierr.ErrDatabase)
	}

	return FromPlanModel(&m), nil
}

func (r *planRepository) ListByLocale(ctx context.Context, locale string) ([]*plan.Plan, error) {
	var models []PlanModel
	err := r.store.withRetry(ctx, func() error {
		return r.store.db.WithContext(ctx).
			Preload("Durations").
			Where("locale = ? AND status = ?", locale, string(types.StatusPublished)).
			Order("destination_slug asc").
			Find(&models).Error
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list plans").
			Mark(ierr.ErrDatabase)
	}

	plans := make([]*plan.Plan, len(models))
	for i := range models {
		plans[i] = FromPlanModel(&models[i])
	}
	return plans, nil
}
