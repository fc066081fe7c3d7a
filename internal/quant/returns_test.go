package quant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogReturns(t *testing.T) {
	tests := []struct {
		name    string
		closes  []float64
		want    []float64
		wantErr error
	}{
		{
			name:    "constant prices give zero returns",
			closes:  []float64{100, 100, 100, 100},
			want:    []float64{0, 0, 0},
			wantErr: nil,
		},
		{
			name:    "too short",
			closes:  []float64{100},
			wantErr: ErrInsufficientData,
		},
		{
			name:    "non-positive price rejected",
			closes:  []float64{100, 0, 100},
			wantErr: ErrInvalidParameter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LogReturns(tt.closes)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, len(tt.closes)-1)
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got[i], 1e-12)
			}
		})
	}
}

func TestAnnualizedVolZeroForConstantSeries(t *testing.T) {
	closes := make([]float64, 50)
	for i := range closes {
		closes[i] = 42.5
	}
	returns, err := LogReturns(closes)
	require.NoError(t, err)

	assert.Zero(t, AnnualizedVol(returns))

	rolling := RollingRealizedVol(returns, RealizedVolWindow)
	require.NotEmpty(t, rolling)
	for _, rv := range rolling {
		assert.Zero(t, rv)
	}
}

func TestRollingRealizedVolLength(t *testing.T) {
	returns := make([]float64, 30)
	for i := range returns {
		returns[i] = float64(i%3) * 0.01
	}

	rolling := RollingRealizedVol(returns, 20)
	assert.Len(t, rolling, 11)

	assert.Nil(t, RollingRealizedVol(returns[:10], 20))
}

func TestMovingAverage(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5}

	ma := MovingAverage(closes, 2)
	require.Len(t, ma, 4)
	assert.InDelta(t, 1.5, ma[0], 1e-12)
	assert.InDelta(t, 4.5, ma[3], 1e-12)

	ma3 := MovingAverage(closes, 3)
	require.Len(t, ma3, 3)
	assert.InDelta(t, 2.0, ma3[0], 1e-12)
	assert.InDelta(t, 4.0, ma3[2], 1e-12)

	assert.Nil(t, MovingAverage(closes, 6))
}
