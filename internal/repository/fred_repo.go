package repository

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"quantlab/config"
	"quantlab/internal/dto"
	"quantlab/pkg/httpclient"
	"quantlab/pkg/logger"
	"quantlab/pkg/utils"
)

// MacroDataRepository retrieves macro rate series from FRED.
type MacroDataRepository interface {
	GetYieldSeries(ctx context.Context, seriesID string, start, end time.Time) (*dto.YieldSeries, error)
}

type fredRepository struct {
	httpClient httpclient.HTTPClient
	cfg        *config.Config
	logger     *logger.Logger
}

func NewFredRepository(cfg *config.Config, log *logger.Logger) MacroDataRepository {
	return &fredRepository{
		httpClient: httpclient.New(cfg.Fred.BaseURL, cfg.Fred.Timeout),
		cfg:        cfg,
		logger:     log,
	}
}

// GetYieldSeries fetches observations for a FRED series (e.g. DGS10) and
// converts percentage values to decimal fractions.
func (r *fredRepository) GetYieldSeries(ctx context.Context, seriesID string, start, end time.Time) (*dto.YieldSeries, error) {
	if r.cfg.Fred.APIKey == "" {
		return nil, fmt.Errorf("fred api key is not configured")
	}

	queryParams := map[string]string{
		"series_id":         seriesID,
		"api_key":           r.cfg.Fred.APIKey,
		"file_type":         "json",
		"observation_start": utils.FormatDate(start),
		"observation_end":   utils.FormatDate(end),
	}

	var fredResp dto.FredObservationsResponse
	resp, err := r.httpClient.Get(ctx, "/series/observations", queryParams, nil, &fredResp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fred series %s: %w", seriesID, err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.ErrorContext(ctx, "FRED API returned non-OK status",
			logger.StringField("series_id", seriesID),
			logger.IntField("status_code", resp.StatusCode))
		return nil, fmt.Errorf("fred api returned status %d for series %s", resp.StatusCode, seriesID)
	}

	series, err := parseFredObservations(seriesID, &fredResp)
	if err != nil {
		return nil, err
	}
	return series, nil
}

// parseFredObservations skips missing observations (value "."), parses dates
// and converts percent values to decimals.
func parseFredObservations(seriesID string, fredResp *dto.FredObservationsResponse) (*dto.YieldSeries, error) {
	series := &dto.YieldSeries{SeriesID: seriesID}
	for _, obs := range fredResp.Observations {
		if obs.Value == "." || obs.Value == "" {
			continue
		}
		value, err := strconv.ParseFloat(obs.Value, 64)
		if err != nil {
			continue
		}
		date, err := utils.ParseDate(obs.Date)
		if err != nil {
			continue
		}
		series.Points = append(series.Points, dto.YieldPoint{
			Date: date,
			Rate: value / 100.0,
		})
	}

	if len(series.Points) == 0 {
		return nil, fmt.Errorf("no observations for fred series %s", seriesID)
	}
	return series, nil
}
