package dto

import (
	"github.com/shopspring/decimal"
)

// CatalogResponse maps destination slugs to their sellable plans for one
// locale.
type CatalogResponse struct {
	Locale       string                        `json:"locale"`
	Destinations map[string]DestinationCatalog `json:"destinations"`
}

// DestinationCatalog is one destination's catalog entry.
type DestinationCatalog struct {
	DestinationName string `json:"destination_name"`
	Currency        string `json:"currency"`

	// Durations maps duration days to the retail price.
	Durations map[int]decimal.Decimal `json:"durations"`
	// DefaultDurations lists the configured durations in ascending order,
	// for rendering duration pickers.
	DefaultDurations []int `json:"default_durations"`

	// BestDailyRate is the lowest retail price per day across durations,
	// for "from X/day" display.
	BestDailyRate decimal.Decimal `json:"best_daily_rate"`

	CompetitorName      string          `json:"competitor_name"`
	CompetitorDailyRate decimal.Decimal `json:"competitor_daily_rate"`
}
