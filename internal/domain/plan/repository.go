package plan

import (
	"context"
)

// Repository defines the interface for plan catalog reads. At most one plan
// exists per (destination, locale) pair; the lookup key enforces it.
type Repository interface {
	// GetByDestination resolves a (destination slug, locale) pair to its
	// plan. Returns a not-found error when no plan exists.
	GetByDestination(ctx context.Context, destinationSlug, locale string) (*Plan, error)

	// ListByLocale returns every published plan for a locale.
	ListByLocale(ctx context.Context, locale string) ([]*Plan, error)
}
