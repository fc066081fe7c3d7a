package quant

import "fmt"

// CAPMResult holds the single-asset CAPM estimate over the full aligned
// return window. Returns are decimal fractions.
type CAPMResult struct {
	Beta                   float64
	ExpectedAnnualReturn   float64
	AnnualizedMarketReturn float64
}

// EstimateCAPM computes beta as Cov(stock, market)/Var(market) and the CAPM
// expected annual return rf + beta * (annualized market mean - rf).
// riskFree is an annual decimal fraction.
func EstimateCAPM(stockReturns, marketReturns []float64, riskFree float64) (*CAPMResult, error) {
	if len(stockReturns) == 0 || len(stockReturns) != len(marketReturns) {
		return nil, fmt.Errorf("%w: stock and market return series must be aligned and non-empty", ErrInvalidParameter)
	}

	marketVar := Variance(marketReturns)
	if marketVar == 0 {
		return nil, fmt.Errorf("%w: benchmark returns have zero variance, beta is undefined", ErrDegenerate)
	}

	beta := Covariance(stockReturns, marketReturns) / marketVar
	marketAnnual := Mean(marketReturns) * TradingDays

	return &CAPMResult{
		Beta:                   beta,
		ExpectedAnnualReturn:   riskFree + beta*(marketAnnual-riskFree),
		AnnualizedMarketReturn: marketAnnual,
	}, nil
}
