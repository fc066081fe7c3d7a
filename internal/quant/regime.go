package quant

// Regime labels. "N/A" is a valid label whenever the underlying data source
// failed or the series is too short to classify.
const (
	RegimeNA = "N/A"

	VolLow    = "low"
	VolNormal = "normal"
	VolHigh   = "high"

	RateRising  = "rising"
	RateFalling = "falling"
	RateFlat    = "flat"

	LiquidityTight  = "tight"
	LiquidityNormal = "normal"
	LiquidityLoose  = "loose"
)

const (
	// RealizedVolWindow is the lookback for rolling realized volatility.
	RealizedVolWindow = 20

	// rateTrendWindow caps the adaptive trailing-mean window for the rate
	// trend; rateFlatTolerance is the day-over-day slope (in decimal rate
	// terms) below which the trend counts as flat.
	rateTrendWindow   = 126
	rateFlatTolerance = 1e-5

	// liquidityWindow is the z-score lookback for the credit-spread ratio;
	// the z band (-0.5, +0.5) is the "normal" reference band.
	liquidityWindow = 63
	liquidityZBand  = 0.5
)

// VolatilityAssessment is the volatility regime with its realized-vol
// reading (annualized decimal fraction).
type VolatilityAssessment struct {
	Regime      string
	RealizedVol float64
}

// RateAssessment is the rate-trend regime with the latest rate (decimal).
type RateAssessment struct {
	Regime      string
	CurrentRate float64
}

// LiquidityAssessment is the liquidity regime with the latest proxy ratio.
type LiquidityAssessment struct {
	Regime string
	Ratio  float64
}

// ClassifyVolatility compares the latest rolling realized volatility to its
// own distribution over the analysis window: above the 75th percentile is
// high, below the 25th is low. A flat (zero-vol) series classifies as low.
func ClassifyVolatility(closes []float64) VolatilityAssessment {
	returns, err := LogReturns(closes)
	if err != nil {
		return VolatilityAssessment{Regime: RegimeNA}
	}
	rv := RollingRealizedVol(returns, RealizedVolWindow)
	if len(rv) == 0 {
		return VolatilityAssessment{Regime: RegimeNA}
	}

	current := rv[len(rv)-1]
	if current <= 0 {
		return VolatilityAssessment{Regime: VolLow, RealizedVol: 0}
	}

	q25 := Quantile(rv, 0.25)
	q75 := Quantile(rv, 0.75)
	switch {
	case current > q75:
		return VolatilityAssessment{Regime: VolHigh, RealizedVol: current}
	case current < q25:
		return VolatilityAssessment{Regime: VolLow, RealizedVol: current}
	default:
		return VolatilityAssessment{Regime: VolNormal, RealizedVol: current}
	}
}

// ClassifyRateTrend reads the slope of a trailing mean of the yield series.
// The window adapts to short histories: at most rateTrendWindow, at least 20
// days, at most 30% of the available observations.
func ClassifyRateTrend(rates []float64) RateAssessment {
	if len(rates) < 2 {
		return RateAssessment{Regime: RegimeNA}
	}
	current := rates[len(rates)-1]

	window := len(rates) * 3 / 10
	if window > rateTrendWindow {
		window = rateTrendWindow
	}
	if window < 20 {
		window = 20
	}
	if window > len(rates)-1 {
		window = len(rates) - 1
	}

	latest := Mean(rates[len(rates)-window:])
	previous := Mean(rates[len(rates)-window-1 : len(rates)-1])
	slope := latest - previous

	switch {
	case slope > rateFlatTolerance:
		return RateAssessment{Regime: RateRising, CurrentRate: current}
	case slope < -rateFlatTolerance:
		return RateAssessment{Regime: RateFalling, CurrentRate: current}
	default:
		return RateAssessment{Regime: RateFlat, CurrentRate: current}
	}
}

// ClassifyLiquidity reads risk appetite from the ratio of a high-yield to an
// investment-grade credit proxy (HYG/LQD). The latest ratio is z-scored
// against its trailing window; outside the reference band the regime is
// loose (high z) or tight (low z). Inputs must already be date-aligned.
func ClassifyLiquidity(highYield, investmentGrade []float64) LiquidityAssessment {
	n := len(highYield)
	if n < 2 || n != len(investmentGrade) {
		return LiquidityAssessment{Regime: RegimeNA}
	}

	ratio := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if investmentGrade[i] == 0 {
			continue
		}
		ratio = append(ratio, highYield[i]/investmentGrade[i])
	}
	if len(ratio) < 2 {
		return LiquidityAssessment{Regime: RegimeNA}
	}

	window := liquidityWindow
	if window > len(ratio) {
		window = len(ratio)
	}
	trailing := ratio[len(ratio)-window:]
	current := ratio[len(ratio)-1]

	sd := StdDev(trailing)
	if sd == 0 {
		return LiquidityAssessment{Regime: LiquidityNormal, Ratio: current}
	}

	z := (current - Mean(trailing)) / sd
	switch {
	case z >= liquidityZBand:
		return LiquidityAssessment{Regime: LiquidityLoose, Ratio: current}
	case z <= -liquidityZBand:
		return LiquidityAssessment{Regime: LiquidityTight, Ratio: current}
	default:
		return LiquidityAssessment{Regime: LiquidityNormal, Ratio: current}
	}
}
