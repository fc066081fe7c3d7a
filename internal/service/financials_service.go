package service

import (
	"context"
	"strings"
	"time"

	"quantlab/config"
	"quantlab/internal/dto"
	"quantlab/internal/repository"
	"quantlab/pkg/cache"
	"quantlab/pkg/logger"
	"quantlab/pkg/utils"
)

// FinancialsService serves company fundamentals with a per-ticker TTL cache.
type FinancialsService interface {
	GetFinancials(ctx context.Context, ticker string) (*dto.FinancialsResponse, error)
}

type financialsService struct {
	cfg           *config.Config
	log           *logger.Logger
	fundamentals  repository.FundamentalsRepository
	inmemoryCache cache.Cache
	ttl           time.Duration
	now           func() time.Time
}

func NewFinancialsService(
	cfg *config.Config,
	log *logger.Logger,
	fundamentals repository.FundamentalsRepository,
	inmemoryCache cache.Cache,
) FinancialsService {
	return &financialsService{
		cfg:           cfg,
		log:           log,
		fundamentals:  fundamentals,
		inmemoryCache: inmemoryCache,
		ttl:           cfg.Financials.CacheTTL,
		now:           time.Now,
	}
}

// GetFinancials returns the cached payload when the entry is younger than
// the TTL, otherwise refetches. Entries are immutable once stored; a
// double fetch on simultaneous expiry is harmless because the upstream
// fetch is idempotent.
func (s *financialsService) GetFinancials(ctx context.Context, ticker string) (*dto.FinancialsResponse, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	cacheKey := "financials:" + ticker

	// TTL is checked explicitly on read so staleness never depends on the
	// cache janitor having run.
	if entry, found := cache.GetTyped[*dto.FinancialsCacheEntry](s.inmemoryCache, cacheKey); found {
		if s.now().Sub(entry.FetchedAt) < s.ttl {
			s.log.DebugContext(ctx, "Financials cache hit", logger.StringField("ticker", ticker))
			return buildFinancialsResponse(ticker, entry.Fundamentals, true, entry.FetchedAt), nil
		}
	}

	fundamentals, err := s.fundamentals.GetFundamentals(ctx, ticker)
	if err != nil {
		return nil, err
	}

	fetchedAt := s.now()
	s.inmemoryCache.Set(cacheKey, &dto.FinancialsCacheEntry{
		FetchedAt:    fetchedAt,
		Fundamentals: fundamentals,
	}, s.ttl)

	s.log.InfoContext(ctx, "Financials fetched",
		logger.StringField("ticker", ticker),
		logger.IntField("quarters", len(fundamentals.QuarterlyData)))

	return buildFinancialsResponse(ticker, fundamentals, false, fetchedAt), nil
}

func buildFinancialsResponse(ticker string, fundamentals *dto.CompanyFundamentals, cached bool, fetchedAt time.Time) *dto.FinancialsResponse {
	resp := &dto.FinancialsResponse{
		Ticker:         ticker,
		CompanyName:    fundamentals.CompanyName,
		CurrentMetrics: fundamentals.CurrentMetrics,
		AnalystData:    fundamentals.AnalystData,
		QuarterlyData:  fundamentals.QuarterlyData,
		Cached:         cached,
	}
	if cached {
		resp.CacheTimestamp = utils.FormatTimestamp(fetchedAt)
	} else {
		resp.FetchTimestamp = utils.FormatTimestamp(fetchedAt)
	}
	return resp
}
