package pricers

import "math"

// Bachelier prices a European vanilla option under normal (arithmetic
// Brownian motion) dynamics on a forward F, which may be negative. At
// expiry == 0 it returns intrinsic.
//
//	call = (F-K)*N(d) + sigma*sqrt(T)*phi(d), d = (F-K)/(sigma*sqrt(T))
func Bachelier(forward, strike, sigma, expiry, discount float64, payoff PayoffType) float64 {
	if expiry <= 0 || sigma <= 0 {
		intrinsic := math.Max(forward-strike, 0)
		if payoff == Put {
			intrinsic = math.Max(strike-forward, 0)
		}
		return discount * intrinsic
	}

	sqrtT := math.Sqrt(expiry)
	d := (forward - strike) / (sigma * sqrtT)

	call := (forward-strike)*NormalCDF(d) + sigma*sqrtT*NormalPDF(d)
	if payoff == Call {
		return discount * call
	}
	// Put-call parity: C - P = F - K.
	put := call - (forward - strike)
	return discount * put
}
