package repository

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"quantlab/config"
	"quantlab/internal/dto"
	"quantlab/pkg/cache"
	"quantlab/pkg/httpclient"
	"quantlab/pkg/logger"
	"quantlab/pkg/utils"
)

// MarketDataRepository retrieves daily adjusted close series for a symbol.
type MarketDataRepository interface {
	GetDailyCloses(ctx context.Context, symbol string, start, end time.Time) (*dto.PriceSeries, error)
}

type yahooFinanceRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	logger         *logger.Logger
	cache          cache.Cache
	requestLimiter *rate.Limiter
}

// NewYahooFinanceRepository creates a rate-limited Yahoo chart API client.
// Fetched series are cached briefly so the liquidity proxies (HYG, LQD) are
// not refetched on every request.
func NewYahooFinanceRepository(cfg *config.Config, inmemoryCache cache.Cache, log *logger.Logger) MarketDataRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.YahooFinance.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &yahooFinanceRepository{
		httpClient:     httpclient.New(cfg.YahooFinance.ChartBaseURL, cfg.YahooFinance.Timeout),
		cfg:            cfg,
		logger:         log,
		cache:          inmemoryCache,
		requestLimiter: requestLimiter,
	}
}

func (r *yahooFinanceRepository) GetDailyCloses(ctx context.Context, symbol string, start, end time.Time) (*dto.PriceSeries, error) {
	cacheKey := fmt.Sprintf("prices:%s:%s:%s", symbol, utils.FormatDate(start), utils.FormatDate(end))
	if series, found := cache.GetTyped[*dto.PriceSeries](r.cache, cacheKey); found {
		return series, nil
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := "/" + symbol
	queryParams := map[string]string{
		"period1":        fmt.Sprintf("%d", start.Unix()),
		"period2":        fmt.Sprintf("%d", end.AddDate(0, 0, 1).Unix()),
		"interval":       "1d",
		"includePrePost": "false",
		"events":         "div,split",
	}

	headers := map[string]string{
		"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0.0.0 Safari/537.36",
		"Accept":          "application/json, text/plain, */*",
		"Accept-Language": "en-US,en;q=0.9",
		"Referer":         "https://finance.yahoo.com/",
	}

	var yahooResp dto.YahooChartResponse
	resp, err := r.httpClient.Get(ctx, endpoint, queryParams, headers, &yahooResp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch price data for %s: %w", symbol, err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.ErrorContext(ctx, "Yahoo Finance API returned non-OK status",
			logger.StringField("symbol", symbol),
			logger.IntField("status_code", resp.StatusCode))
		return nil, fmt.Errorf("no data returned for %s: yahoo finance api status %d", symbol, resp.StatusCode)
	}

	series, err := parseChartResponse(symbol, &yahooResp)
	if err != nil {
		return nil, err
	}

	r.cache.Set(cacheKey, series, r.cfg.YahooFinance.PriceCacheTTL)
	return series, nil
}

// parseChartResponse converts the chart payload to a PriceSeries, preferring
// adjusted closes and skipping missing bars.
func parseChartResponse(symbol string, yahooResp *dto.YahooChartResponse) (*dto.PriceSeries, error) {
	if yahooResp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo finance api error for %s: %v", symbol, yahooResp.Chart.Error)
	}
	if len(yahooResp.Chart.Result) == 0 {
		return nil, fmt.Errorf("no data returned for symbol %s, check ticker and date range", symbol)
	}

	result := yahooResp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no quote data available for symbol %s", symbol)
	}

	closes := result.Indicators.Quote[0].Close
	if len(result.Indicators.Adjclose) > 0 && len(result.Indicators.Adjclose[0].Adjclose) == len(result.Timestamp) {
		closes = result.Indicators.Adjclose[0].Adjclose
	}

	series := &dto.PriceSeries{Symbol: symbol}
	for i, timestamp := range result.Timestamp {
		if i >= len(closes) {
			break
		}
		close := closes[i]
		if close <= 0 || math.IsNaN(close) {
			continue
		}
		t := time.Unix(timestamp, 0).UTC()
		series.Points = append(series.Points, dto.PricePoint{
			Date:  time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC),
			Close: close,
		})
	}

	if len(series.Points) == 0 {
		return nil, fmt.Errorf("no valid price data found for symbol %s", symbol)
	}
	return series, nil
}
