package pricers

import (
	"math"

	"github.com/aristath/pricer-engine/internal/perrors"
)

// PayoffType distinguishes call/put style within the analytical pricers.
type PayoffType int

const (
	Call PayoffType = iota
	Put
)

// BlackScholes prices a European vanilla option with continuous dividend
// yield q under lognormal dynamics. Degenerate inputs (T<=0 or sigma<=0)
// return the discounted intrinsic value rather than erroring, matching the
// spec's boundary-behaviour requirement.
func BlackScholes(spot, strike, r, q, sigma, expiry float64, payoff PayoffType) (float64, error) {
	if strike <= 0 {
		return 0, &perrors.InvalidStrike{K: strike}
	}
	if spot < 0 {
		return 0, &perrors.InvalidInput{Msg: "spot must be non-negative"}
	}

	if expiry <= 0 || sigma <= 0 {
		disc := math.Exp(-r * math.Max(expiry, 0))
		intrinsic := math.Max(spot-strike, 0)
		if payoff == Put {
			intrinsic = math.Max(strike-spot, 0)
		}
		return disc * intrinsic, nil
	}

	d1, d2 := d1d2(spot, strike, r, q, sigma, expiry)
	discQ := math.Exp(-q * expiry)
	discR := math.Exp(-r * expiry)

	if payoff == Call {
		return spot*discQ*NormalCDF(d1) - strike*discR*NormalCDF(d2), nil
	}
	return strike*discR*NormalCDF(-d2) - spot*discQ*NormalCDF(-d1), nil
}

func d1d2(spot, strike, r, q, sigma, expiry float64) (float64, float64) {
	sqrtT := math.Sqrt(expiry)
	d1 := (math.Log(spot/strike) + (r-q+0.5*sigma*sigma)*expiry) / (sigma * sqrtT)
	d2 := d1 - sigma*sqrtT
	return d1, d2
}

// BlackScholesDelta returns the spot delta e^{-qT} N(d1) (for Call) or its
// put analogue, used both directly and as the closed-form benchmark in S6.
func BlackScholesDelta(spot, strike, r, q, sigma, expiry float64, payoff PayoffType) (float64, error) {
	if expiry <= 0 || sigma <= 0 {
		return 0, &perrors.InvalidInput{Msg: "delta undefined at T<=0 or sigma<=0"}
	}
	d1, _ := d1d2(spot, strike, r, q, sigma, expiry)
	discQ := math.Exp(-q * expiry)
	if payoff == Call {
		return discQ * NormalCDF(d1), nil
	}
	return -discQ * NormalCDF(-d1), nil
}

// Black76 prices a European option on a forward F under lognormal dynamics,
// discounted by an externally supplied discount factor D. Used by
// swaptions and caps/floors, where the annuity/accrual already carries the
// discounting.
func Black76(forward, strike, sigma, expiry, discount float64, payoff PayoffType) (float64, error) {
	if strike <= 0 {
		return 0, &perrors.InvalidStrike{K: strike}
	}
	if expiry <= 0 || sigma <= 0 {
		intrinsic := math.Max(forward-strike, 0)
		if payoff == Put {
			intrinsic = math.Max(strike-forward, 0)
		}
		return discount * intrinsic, nil
	}
	sqrtT := math.Sqrt(expiry)
	d1 := (math.Log(forward/strike) + 0.5*sigma*sigma*expiry) / (sigma * sqrtT)
	d2 := d1 - sigma*sqrtT
	if payoff == Call {
		return discount * (forward*NormalCDF(d1) - strike*NormalCDF(d2)), nil
	}
	return discount * (strike*NormalCDF(-d2) - forward*NormalCDF(-d1)), nil
}
