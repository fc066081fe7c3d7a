package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricMarshalJSON(t *testing.T) {
	valid, err := json.Marshal(NewMetric(28.4))
	require.NoError(t, err)
	assert.Equal(t, "28.4", string(valid))

	missing, err := json.Marshal(Metric{})
	require.NoError(t, err)
	assert.Equal(t, `"N/A"`, string(missing))
}

func TestMetricFromRaw(t *testing.T) {
	v := 1.5
	m := MetricFromRaw(RawFmt{Raw: &v, Fmt: "1.50"})
	assert.True(t, m.Valid)
	assert.InDelta(t, 1.5, m.Value, 1e-12)

	assert.False(t, MetricFromRaw(RawFmt{Fmt: "N/A"}).Valid)
}

func TestMetricUnmarshalJSON(t *testing.T) {
	var m Metric
	require.NoError(t, json.Unmarshal([]byte(`3.25`), &m))
	assert.True(t, m.Valid)
	assert.InDelta(t, 3.25, m.Value, 1e-12)

	// Non-numeric values (the "N/A" sentinel) round-trip as missing.
	require.NoError(t, json.Unmarshal([]byte(`"N/A"`), &m))
	assert.False(t, m.Valid)
}
