// Package quant holds the pure computation pipeline: return series, CAPM
// estimation, Black-Scholes pricing, the moving-average backtest and the
// market regime classifiers. Nothing here does I/O.
package quant

import "errors"

// TradingDays is the annualization day count for return statistics.
const TradingDays = 252

// CalendarDays is the day count for option time-to-expiry.
const CalendarDays = 365

var (
	// ErrInvalidParameter marks inputs rejected before computation.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInsufficientData marks series too short for the requested window.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrDegenerate marks numerically undefined results, e.g. a zero-variance
	// benchmark.
	ErrDegenerate = errors.New("degenerate input")
)
