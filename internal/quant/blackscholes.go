package quant

import (
	"fmt"
	"math"
)

// BlackScholesCall prices a European call with the closed-form Black-Scholes
// formula. vol and rate are annual decimal fractions, timeYears is the
// time to expiry in years. All of spot, strike, timeYears and vol must be
// strictly positive.
func BlackScholesCall(spot, strike, timeYears, rate, vol float64) (float64, error) {
	if spot <= 0 || strike <= 0 {
		return 0, fmt.Errorf("%w: spot and strike must be positive", ErrInvalidParameter)
	}
	if timeYears <= 0 {
		return 0, fmt.Errorf("%w: time to expiry must be positive", ErrInvalidParameter)
	}
	if vol <= 0 {
		return 0, fmt.Errorf("%w: volatility must be positive", ErrInvalidParameter)
	}

	sqrtT := math.Sqrt(timeYears)
	d1 := (math.Log(spot/strike) + (rate+0.5*vol*vol)*timeYears) / (vol * sqrtT)
	d2 := d1 - vol*sqrtT

	return spot*normCDF(d1) - strike*math.Exp(-rate*timeYears)*normCDF(d2), nil
}

// normCDF is the standard normal CDF.
func normCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}
