// Package pricers implements the analytical closed-form pricers: the
// standard normal CDF, Black-Scholes, Bachelier, and the
// continuous-monitoring single-barrier formula. These double as fast
// pricers and as calibration targets for the calibration package.
package pricers

import "math"

// NormalCDF evaluates the standard normal CDF as 0.5*erfc(-x/sqrt(2)) with
// math.Erfc. Saturates to {0,1} for |x|>8.
func NormalCDF(x float64) float64 {
	if x > 8 {
		return 1
	}
	if x < -8 {
		return 0
	}
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}

// NormalPDF is the standard normal density function.
func NormalPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2*math.Pi)
}
