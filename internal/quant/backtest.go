package quant

import (
	"fmt"
	"math"
	"time"
)

// BacktestRow is one evaluated trading day. Position is the executed
// (lagged) position actually driving that day's strategy return.
type BacktestRow struct {
	Date           time.Time
	StockReturn    float64
	MarketReturn   float64
	StrategyReturn float64
	Position       int
	DaysInPosition int
}

// BacktestSummary holds full-window statistics; returns and ratios are
// decimal fractions and MaxDrawdown is the deepest (most negative)
// peak-to-trough decline of the strategy equity curve.
type BacktestSummary struct {
	StrategyReturn   float64
	BuyHoldReturn    float64
	HitRate          float64
	TotalDays        int
	MaxDrawdown      float64
	SharpeRatio      float64
	SortinoRatio     float64
	InformationRatio float64
}

type BacktestResult struct {
	Rows           []BacktestRow
	Summary        BacktestSummary
	EquityStrategy []float64
	EquityBuyHold  []float64
	Drawdown       []float64
}

// RunBacktest evaluates the moving-average long/flat strategy.
//
// The raw signal on day t is long when close(t) is above its own window-day
// trailing moving average. The executed position on day t is the signal of
// day t-1, so realized returns never use information from the same day.
// stockReturns and marketReturns are aligned to dates[1:].
func RunBacktest(dates []time.Time, closes, stockReturns, marketReturns []float64, window int) (*BacktestResult, error) {
	n := len(closes)
	if window < 2 {
		return nil, fmt.Errorf("%w: window must be at least 2", ErrInvalidParameter)
	}
	if len(dates) != n || len(stockReturns) != n-1 || len(marketReturns) != n-1 {
		return nil, fmt.Errorf("%w: misaligned input series", ErrInvalidParameter)
	}
	if n < window+1 {
		return nil, fmt.Errorf("%w: need at least %d overlapping trading days for a %d-day window, got %d",
			ErrInsufficientData, window+1, window, n)
	}

	ma := MovingAverage(closes, window)

	// signals[p] for price index p >= window-1
	signalAt := func(p int) int {
		if closes[p] > ma[p-window+1] {
			return 1
		}
		return 0
	}

	// Evaluated days are price indices window..n-1: the first day with both
	// a lagged signal and a return.
	positions := make([]int, 0, n-window)
	for p := window; p < n; p++ {
		positions = append(positions, signalAt(p-1))
	}
	daysHeld := daysInPosition(positions)

	rows := make([]BacktestRow, 0, n-window)
	stratReturns := make([]float64, 0, n-window)
	for i, p := 0, window; p < n; i, p = i+1, p+1 {
		stockRet := stockReturns[p-1]
		stratRet := float64(positions[i]) * stockRet
		stratReturns = append(stratReturns, stratRet)
		rows = append(rows, BacktestRow{
			Date:           dates[p],
			StockReturn:    stockRet,
			MarketReturn:   marketReturns[p-1],
			StrategyReturn: stratRet,
			Position:       positions[i],
			DaysInPosition: daysHeld[i],
		})
	}

	equityStrategy := equityCurve(stratReturns)
	equityBuyHold := equityCurve(stockReturns[window-1:])
	dd := drawdownSeries(equityStrategy)

	marketWindow := marketReturns[window-1:]
	summary := BacktestSummary{
		StrategyReturn:   equityStrategy[len(equityStrategy)-1] - 1,
		BuyHoldReturn:    equityBuyHold[len(equityBuyHold)-1] - 1,
		HitRate:          hitRate(stratReturns),
		TotalDays:        len(rows),
		MaxDrawdown:      minOf(dd),
		SharpeRatio:      sharpeRatio(stratReturns),
		SortinoRatio:     sortinoRatio(stratReturns),
		InformationRatio: informationRatio(stratReturns, marketWindow),
	}

	return &BacktestResult{
		Rows:           rows,
		Summary:        summary,
		EquityStrategy: equityStrategy,
		EquityBuyHold:  equityBuyHold,
		Drawdown:       dd,
	}, nil
}

// daysInPosition counts consecutive days the executed position has been
// held: 1 on the first day and on every position flip, previous+1 otherwise.
func daysInPosition(positions []int) []int {
	out := make([]int, len(positions))
	for i := range positions {
		if i == 0 || positions[i] != positions[i-1] {
			out[i] = 1
		} else {
			out[i] = out[i-1] + 1
		}
	}
	return out
}

// Compound returns the compounded total return of a daily return series.
func Compound(returns []float64) float64 {
	growth := 1.0
	for _, r := range returns {
		growth *= 1 + r
	}
	return growth - 1
}

// equityCurve is the cumulative growth-of-1 path of a daily return series.
func equityCurve(returns []float64) []float64 {
	out := make([]float64, len(returns))
	growth := 1.0
	for i, r := range returns {
		growth *= 1 + r
		out[i] = growth
	}
	return out
}

// drawdownSeries is the running peak-to-trough decline of an equity curve,
// zero or negative at every point.
func drawdownSeries(equity []float64) []float64 {
	out := make([]float64, len(equity))
	peak := math.Inf(-1)
	for i, e := range equity {
		if e > peak {
			peak = e
		}
		out[i] = e/peak - 1
	}
	return out
}

func hitRate(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	wins := 0
	for _, r := range returns {
		if r > 0 {
			wins++
		}
	}
	return float64(wins) / float64(len(returns))
}

func sharpeRatio(returns []float64) float64 {
	sd := StdDev(returns)
	if sd == 0 {
		return 0
	}
	return Mean(returns) / sd * math.Sqrt(TradingDays)
}

func sortinoRatio(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	var sumSq float64
	for _, r := range returns {
		if r < 0 {
			sumSq += r * r
		}
	}
	downside := math.Sqrt(sumSq / float64(len(returns)))
	if downside == 0 {
		return 0
	}
	return Mean(returns) / downside * math.Sqrt(TradingDays)
}

func informationRatio(returns, benchmark []float64) float64 {
	if len(returns) != len(benchmark) || len(returns) == 0 {
		return 0
	}
	active := make([]float64, len(returns))
	for i := range returns {
		active[i] = returns[i] - benchmark[i]
	}
	sd := StdDev(active)
	if sd == 0 {
		return 0
	}
	return Mean(active) / sd * math.Sqrt(TradingDays)
}

func minOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	min := xs[0]
	for _, x := range xs[1:] {
		if x < min {
			min = x
		}
	}
	return min
}
