package repository

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quantlab/internal/dto"
)

func TestParseChartResponsePrefersAdjustedClose(t *testing.T) {
	payload := `{
		"chart": {
			"result": [{
				"meta": {"symbol": "AAPL", "regularMarketPrice": 190.5},
				"timestamp": [1704153600, 1704240000, 1704326400],
				"indicators": {
					"quote": [{"close": [186.0, 184.5, 182.0]}],
					"adjclose": [{"adjclose": [185.5, 184.0, 181.5]}]
				}
			}],
			"error": null
		}
	}`

	var resp dto.YahooChartResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &resp))

	series, err := parseChartResponse("AAPL", &resp)
	require.NoError(t, err)
	require.Equal(t, 3, series.Len())

	assert.InDelta(t, 185.5, series.Points[0].Close, 1e-9)
	assert.InDelta(t, 181.5, series.Points[2].Close, 1e-9)

	// Timestamps are normalized to UTC midnight dates.
	want := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, want, series.Points[0].Date)
}

func TestParseChartResponseSkipsMissingBars(t *testing.T) {
	payload := `{
		"chart": {
			"result": [{
				"meta": {"symbol": "SPY"},
				"timestamp": [1704153600, 1704240000, 1704326400],
				"indicators": {
					"quote": [{"close": [470.0, 0, 472.5]}]
				}
			}],
			"error": null
		}
	}`

	var resp dto.YahooChartResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &resp))

	series, err := parseChartResponse("SPY", &resp)
	require.NoError(t, err)
	assert.Equal(t, 2, series.Len())
}

func TestParseChartResponseErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{
			name:    "upstream error object",
			payload: `{"chart": {"result": [], "error": {"code": "Not Found"}}}`,
		},
		{
			name:    "empty result",
			payload: `{"chart": {"result": [], "error": null}}`,
		},
		{
			name: "no valid bars",
			payload: `{"chart": {"result": [{
				"meta": {"symbol": "X"},
				"timestamp": [1704153600],
				"indicators": {"quote": [{"close": [0]}]}
			}], "error": null}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp dto.YahooChartResponse
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &resp))

			_, err := parseChartResponse("X", &resp)
			assert.Error(t, err)
		})
	}
}

func TestAlignSeriesIntersection(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }

	a := &dto.PriceSeries{Symbol: "A", Points: []dto.PricePoint{
		{Date: day(1), Close: 10},
		{Date: day(2), Close: 11},
		{Date: day(4), Close: 12},
	}}
	b := &dto.PriceSeries{Symbol: "B", Points: []dto.PricePoint{
		{Date: day(2), Close: 100},
		{Date: day(3), Close: 101},
		{Date: day(4), Close: 102},
	}}

	alignedA, alignedB := dto.AlignSeries(a, b)
	require.Equal(t, 2, alignedA.Len())
	require.Equal(t, 2, alignedB.Len())
	assert.Equal(t, day(2), alignedA.Points[0].Date)
	assert.Equal(t, day(4), alignedA.Points[1].Date)
	assert.InDelta(t, 100.0, alignedB.Points[0].Close, 1e-9)
	assert.InDelta(t, 12.0, alignedA.Points[1].Close, 1e-9)
}
