package service

import (
	"context"
	"testing"

	"github.com/roamsim/roamsim/internal/cache"
	"github.com/roamsim/roamsim/internal/config"
	"github.com/roamsim/roamsim/internal/domain/plan"
	"github.com/roamsim/roamsim/internal/logger"
	"github.com/roamsim/roamsim/internal/testutil"
	"github.com/roamsim/roamsim/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CatalogServiceSuite struct {
	suite.Suite
	ctx            context.Context
	catalogService CatalogService
	planRepo       *testutil.InMemoryPlanStore
}

func TestCatalogService(t *testing.T) {
	suite.Run(t, new(CatalogServiceSuite))
}

func (s *CatalogServiceSuite) SetupTest() {
	s.ctx = testutil.SetupContext()
	s.planRepo = testutil.NewInMemoryPlanStore()

	s.catalogService = NewCatalogService(ServiceParams{
		Config:   config.GetDefaultConfig(),
		Logger:   logger.GetLogger(),
		PlanRepo: s.planRepo,
		Cache:    cache.NewInMemoryCache(),
	})
}

func (s *CatalogServiceSuite) TestGetCatalog() {
	err := s.planRepo.Add(s.ctx, &plan.Plan{
		ID:                  "plan_bali_en",
		DestinationSlug:     "bali",
		DestinationName:     "Bali",
		Locale:              "en",
		Currency:            "AUD",
		CompetitorName:      "Telco Travel",
		CompetitorDailyRate: decimal.RequireFromString("10"),
		Durations: map[types.PlanDuration]plan.DurationOption{
			types.PlanDuration5: {
				WholesaleCost: decimal.RequireFromString("1"),
				BundleRef:     "esim_IDN_5D_3GB",
			},
			types.PlanDuration7: {
				WholesaleCost: decimal.RequireFromString("10"),
				BundleRef:     "esim_IDN_7D_5GB",
			},
		},
		BaseModel: types.BaseModel{Status: types.StatusPublished},
	})
	s.Require().NoError(err)

	resp, err := s.catalogService.GetCatalog(s.ctx, "en")
	s.Require().NoError(err)
	s.Equal("en", resp.Locale)
	s.Require().Contains(resp.Destinations, "bali")

	dest := resp.Destinations["bali"]
	s.Equal("Bali", dest.DestinationName)
	s.Equal([]int{5, 7}, dest.DefaultDurations)
	// Both options stay under the competitor trip cost, so the plain markup
	// applies: 1*1.6 → 1.49 and 10*1.6 → 15.99 after friendly rounding.
	s.True(decimal.RequireFromString("1.49").Equal(dest.Durations[5]),
		"got %s", dest.Durations[5])
	s.True(decimal.RequireFromString("15.99").Equal(dest.Durations[7]),
		"got %s", dest.Durations[7])
	s.True(decimal.RequireFromString("0.30").Equal(dest.BestDailyRate),
		"got %s", dest.BestDailyRate)
}

func (s *CatalogServiceSuite) TestGetCatalog_CachedAcrossPlanChanges() {
	err := s.planRepo.Add(s.ctx, &plan.Plan{
		ID:                  "plan_bali_en",
		DestinationSlug:     "bali",
		DestinationName:     "Bali",
		Locale:              "en",
		Currency:            "AUD",
		CompetitorDailyRate: decimal.RequireFromString("10"),
		Durations: map[types.PlanDuration]plan.DurationOption{
			types.PlanDuration7: {WholesaleCost: decimal.RequireFromString("10"), BundleRef: "b"},
		},
		BaseModel: types.BaseModel{Status: types.StatusPublished},
	})
	s.Require().NoError(err)

	first, err := s.catalogService.GetCatalog(s.ctx, "en")
	s.Require().NoError(err)
	s.Len(first.Destinations, 1)

	err = s.planRepo.Add(s.ctx, &plan.Plan{
		ID:                  "plan_japan_en",
		DestinationSlug:     "japan",
		DestinationName:     "Japan",
		Locale:              "en",
		Currency:            "AUD",
		CompetitorDailyRate: decimal.RequireFromString("12"),
		Durations: map[types.PlanDuration]plan.DurationOption{
			types.PlanDuration7: {WholesaleCost: decimal.RequireFromString("12"), BundleRef: "b"},
		},
		BaseModel: types.BaseModel{Status: types.StatusPublished},
	})
	s.Require().NoError(err)

	// The cached catalog is served until it expires.
	second, err := s.catalogService.GetCatalog(s.ctx, "en")
	s.Require().NoError(err)
	s.Len(second.Destinations, 1)

	// A different locale misses the cache.
	other, err := s.catalogService.GetCatalog(s.ctx, "de")
	s.Require().NoError(err)
	s.Empty(other.Destinations)
}
