package quant

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tradingDates(n int) []time.Time {
	dates := make([]time.Time, n)
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := range dates {
		dates[i] = day
		day = day.AddDate(0, 0, 1)
	}
	return dates
}

func TestDaysInPosition(t *testing.T) {
	tests := []struct {
		name      string
		positions []int
		want      []int
	}{
		{
			// Raw signal [1,1,1,0,0,1] after the one-day lag executes as
			// [1,1,1,0,0]: counter resets exactly at the flip, never on an
			// unchanged position.
			name:      "lagged long-flat sequence",
			positions: []int{1, 1, 1, 0, 0},
			want:      []int{1, 2, 3, 1, 2},
		},
		{
			name:      "flip back to long resets again",
			positions: []int{1, 1, 0, 0, 1},
			want:      []int{1, 2, 1, 2, 1},
		},
		{
			name:      "first day is always 1 even when flat",
			positions: []int{0, 0, 1},
			want:      []int{1, 2, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, daysInPosition(tt.positions))
		})
	}
}

func TestCompoundIsProductNotSum(t *testing.T) {
	got := Compound([]float64{0.01, -0.02, 0.03})
	want := 1.01*0.98*1.03 - 1
	assert.InDelta(t, want, got, 1e-12)
	assert.Greater(t, math.Abs(got-(0.01-0.02+0.03)), 1e-6)
}

func TestRunBacktestSmallSeries(t *testing.T) {
	closes := []float64{10, 11, 12, 11, 10, 11}
	dates := tradingDates(len(closes))

	stockReturns, err := LogReturns(closes)
	require.NoError(t, err)
	marketReturns := make([]float64, len(stockReturns))
	copy(marketReturns, stockReturns)

	result, err := RunBacktest(dates, closes, stockReturns, marketReturns, 2)
	require.NoError(t, err)
	require.Len(t, result.Rows, 4)

	// Signals from close-vs-MA(2): days 1..4 signal [1,1,0,0]; the lagged
	// executed positions over the evaluated window are exactly that.
	wantPositions := []int{1, 1, 0, 0}
	wantDaysHeld := []int{1, 2, 1, 2}
	for i, row := range result.Rows {
		assert.Equal(t, wantPositions[i], row.Position, "row %d position", i)
		assert.Equal(t, wantDaysHeld[i], row.DaysInPosition, "row %d days held", i)
	}

	// Flat days earn exactly zero.
	assert.Zero(t, result.Rows[2].StrategyReturn)
	assert.Zero(t, result.Rows[3].StrategyReturn)
	assert.InDelta(t, stockReturns[1], result.Rows[0].StrategyReturn, 1e-12)

	r1, r2 := stockReturns[1], stockReturns[2]
	wantStrategy := (1+r1)*(1+r2) - 1
	assert.InDelta(t, wantStrategy, result.Summary.StrategyReturn, 1e-12)

	wantBuyHold := Compound(stockReturns[1:])
	assert.InDelta(t, wantBuyHold, result.Summary.BuyHoldReturn, 1e-12)

	assert.Equal(t, 4, result.Summary.TotalDays)
	assert.InDelta(t, 0.25, result.Summary.HitRate, 1e-12)
}

func TestRunBacktestAlwaysLongCompounds(t *testing.T) {
	// Monotonically rising prices keep the executed position long for the
	// whole evaluated window, so the strategy return equals buy-and-hold.
	n := 40
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100 * math.Pow(1.005, float64(i))
	}
	dates := tradingDates(n)

	stockReturns, err := LogReturns(closes)
	require.NoError(t, err)
	marketReturns := make([]float64, len(stockReturns))
	copy(marketReturns, stockReturns)

	result, err := RunBacktest(dates, closes, stockReturns, marketReturns, 10)
	require.NoError(t, err)

	for i, row := range result.Rows {
		assert.Equal(t, 1, row.Position, "row %d", i)
		assert.Equal(t, i+1, row.DaysInPosition, "row %d", i)
	}
	assert.InDelta(t, result.Summary.BuyHoldReturn, result.Summary.StrategyReturn, 1e-12)
	assert.InDelta(t, 1.0, result.Summary.HitRate, 1e-12)

	// A strictly rising equity curve never draws down.
	assert.Zero(t, result.Summary.MaxDrawdown)
}

func TestRunBacktestInputValidation(t *testing.T) {
	closes := []float64{10, 11, 12}
	dates := tradingDates(3)
	returns := []float64{0.1, 0.09}

	_, err := RunBacktest(dates, closes, returns, returns, 1)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = RunBacktest(dates, closes, returns[:1], returns, 2)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = RunBacktest(dates, closes, returns, returns, 3)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestDrawdownSeries(t *testing.T) {
	equity := []float64{1.0, 1.1, 1.0, 0.99, 1.2}
	dd := drawdownSeries(equity)

	require.Len(t, dd, len(equity))
	assert.Zero(t, dd[0])
	assert.Zero(t, dd[1])
	assert.InDelta(t, 1.0/1.1-1, dd[2], 1e-12)
	assert.InDelta(t, 0.99/1.1-1, dd[3], 1e-12)
	assert.Zero(t, dd[4])

	assert.InDelta(t, 0.99/1.1-1, minOf(dd), 1e-12)
}
