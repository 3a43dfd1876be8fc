package service

import (
	"context"
	"sort"

	"github.com/roamsim/roamsim/internal/api/dto"
	"github.com/roamsim/roamsim/internal/cache"
	"github.com/roamsim/roamsim/internal/domain/pricing"
	"github.com/shopspring/decimal"
)

// CatalogService serves the per-locale destination catalog with computed
// retail prices.
type CatalogService interface {
	GetCatalog(ctx context.Context, locale string) (*dto.CatalogResponse, error)
}

type catalogService struct {
	ServiceParams
}

// NewCatalogService creates a new catalog service
func NewCatalogService(params ServiceParams) CatalogService {
	return &catalogService{ServiceParams: params}
}

func (s *catalogService) GetCatalog(ctx context.Context, locale string) (*dto.CatalogResponse, error) {
	cacheKey := "catalog:" + locale
	if s.Cache != nil {
		if cached, ok := s.Cache.Get(ctx, cacheKey); ok {
			if resp, ok := cache.GetTyped[dto.CatalogResponse](cached); ok {
				return resp, nil
			}
		}
	}

	plans, err := s.PlanRepo.ListByLocale(ctx, locale)
	if err != nil {
		return nil, err
	}

	resp := &dto.CatalogResponse{
		Locale:       locale,
		Destinations: make(map[string]dto.DestinationCatalog, len(plans)),
	}

	for _, p := range plans {
		durations := make(map[int]decimal.Decimal, len(p.Durations))
		defaultDurations := make([]int, 0, len(p.Durations))
		bestDaily := decimal.Zero

		for duration, opt := range p.Durations {
			retail := pricing.CalculateRetailPrice(opt.WholesaleCost, p.CompetitorDailyRate, duration.Days(), p.Currency)
			durations[duration.Days()] = retail
			defaultDurations = append(defaultDurations, duration.Days())

			daily := retail.Div(decimal.NewFromInt(int64(duration.Days())))
			if bestDaily.IsZero() || daily.Cmp(bestDaily) < 0 {
				bestDaily = daily
			}
		}
		sort.Ints(defaultDurations)

		resp.Destinations[p.DestinationSlug] = dto.DestinationCatalog{
			DestinationName:     p.DestinationName,
			Currency:            p.Currency,
			Durations:           durations,
			DefaultDurations:    defaultDurations,
			BestDailyRate:       bestDaily.Round(2),
			CompetitorName:      p.CompetitorName,
			CompetitorDailyRate: p.CompetitorDailyRate,
		}
	}

	if s.Cache != nil {
		s.Cache.Set(ctx, cacheKey, resp, cache.ExpiryCatalog)
	}

	return resp, nil
}
