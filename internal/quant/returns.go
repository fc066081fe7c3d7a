package quant

import (
	"fmt"
	"math"
)

// LogReturns derives daily log returns ln(P_t / P_{t-1}) from a close series.
// The result is one element shorter than the input.
func LogReturns(closes []float64) ([]float64, error) {
	if len(closes) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 prices, got %d", ErrInsufficientData, len(closes))
	}
	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] <= 0 || closes[i] <= 0 {
			return nil, fmt.Errorf("%w: non-positive price at index %d", ErrInvalidParameter, i)
		}
		returns = append(returns, math.Log(closes[i]/closes[i-1]))
	}
	return returns, nil
}

// AnnualizedVol is the population standard deviation of daily returns scaled
// by the square root of the trading-day count.
func AnnualizedVol(returns []float64) float64 {
	return StdDev(returns) * math.Sqrt(TradingDays)
}

// RollingRealizedVol computes annualized realized volatility over a trailing
// window. Element i covers returns[i-window+1 .. i]; the result is
// len(returns)-window+1 long, empty when the series is shorter than window.
func RollingRealizedVol(returns []float64, window int) []float64 {
	if window < 2 || len(returns) < window {
		return nil
	}
	out := make([]float64, 0, len(returns)-window+1)
	for i := window; i <= len(returns); i++ {
		out = append(out, AnnualizedVol(returns[i-window:i]))
	}
	return out
}

// MovingAverage computes the trailing simple moving average of closes.
// Element i covers closes[i-window+1 .. i]; result is len(closes)-window+1
// long.
func MovingAverage(closes []float64, window int) []float64 {
	if window < 1 || len(closes) < window {
		return nil
	}
	out := make([]float64, 0, len(closes)-window+1)
	var sum float64
	for i, c := range closes {
		sum += c
		if i >= window {
			sum -= closes[i-window]
		}
		if i >= window-1 {
			out = append(out, sum/float64(window))
		}
	}
	return out
}
