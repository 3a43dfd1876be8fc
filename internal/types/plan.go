package types

import (
	ierr "github.com/roamsim/roamsim/internal/errors"
)

// PlanDuration is the length of an eSIM plan in days.
type PlanDuration int

// Supported plan durations. Adding a duration means adding it here and
// configuring the matching bundle and price references on each plan.
const (
	PlanDuration5  PlanDuration = 5
	PlanDuration7  PlanDuration = 7
	PlanDuration15 PlanDuration = 15
)

// SupportedPlanDurations lists the durations the storefront sells.
var SupportedPlanDurations = []PlanDuration{
	PlanDuration5,
	PlanDuration7,
	PlanDuration15,
}

// Validate checks the duration against the supported set.
func (d PlanDuration) Validate() error {
	for _, supported := range SupportedPlanDurations {
		if d == supported {
			return nil
		}
	}
	return ierr.NewErrorf("unsupported plan duration: %d", d).
		WithHint("Duration must be one of 5, 7 or 15 days").
		WithReportableDetails(map[string]interface{}{
			"duration":  int(d),
			"supported": SupportedPlanDurations,
		}).
		Mark(ierr.ErrValidation)
}

// Days returns the duration as a plain int.
func (d PlanDuration) Days() int {
	return int(d)
}
