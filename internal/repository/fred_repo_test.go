package repository

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quantlab/internal/dto"
)

func TestParseFredObservations(t *testing.T) {
	payload := `{
		"observations": [
			{"date": "2024-01-02", "value": "3.95"},
			{"date": "2024-01-03", "value": "."},
			{"date": "2024-01-04", "value": "4.00"}
		]
	}`

	var resp dto.FredObservationsResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &resp))

	series, err := parseFredObservations("DGS10", &resp)
	require.NoError(t, err)
	require.Len(t, series.Points, 2)

	// Percent values are converted to decimal fractions; "." is skipped.
	assert.InDelta(t, 0.0395, series.Points[0].Rate, 1e-12)
	assert.InDelta(t, 0.04, series.Points[1].Rate, 1e-12)
	assert.Equal(t, "2024-01-04", series.Points[1].Date.Format("2006-01-02"))
}

func TestParseFredObservationsAllMissing(t *testing.T) {
	payload := `{"observations": [{"date": "2024-01-02", "value": "."}]}`

	var resp dto.FredObservationsResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &resp))

	_, err := parseFredObservations("DGS10", &resp)
	assert.Error(t, err)
}
