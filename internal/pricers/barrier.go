package pricers

import (
	"math"

	"github.com/aristath/pricer-engine/internal/perrors"
)

// BarrierDirection distinguishes an up or down barrier.
type BarrierDirection int

const (
	Down BarrierDirection = iota
	Up
)

// BarrierKnock distinguishes knock-in (activates on touch) from
// knock-out (extinguishes on touch).
type BarrierKnock int

const (
	In BarrierKnock = iota
	Out
)

// BarrierParams bundles the inputs to the single-barrier, continuous
// monitoring closed form.
type BarrierParams struct {
	Spot, Strike, Barrier   float64
	Rate, Dividend, Sigma   float64
	Expiry                  float64
	Direction               BarrierDirection
	Knock                   BarrierKnock
	Payoff                  PayoffType
}

// BarrierOption prices a single-barrier option under continuous monitoring
// using the standard Merton reflection formulas. If the spot has already
// breached the barrier at inception, the price collapses to the vanilla
// price (knock=In) or zero (knock=Out) without evaluating the reflection
// terms.
func BarrierOption(p BarrierParams) (float64, error) {
	if p.Strike <= 0 {
		return 0, &perrors.InvalidStrike{K: p.Strike}
	}
	if p.Barrier <= 0 {
		return 0, &perrors.InvalidInput{Msg: "barrier must be positive"}
	}
	if p.Expiry <= 0 {
		return 0, &perrors.InvalidExpiry{T: p.Expiry}
	}
	if p.Sigma <= 0 {
		return 0, &perrors.InvalidVolatility{Sigma: p.Sigma}
	}

	vanilla, err := BlackScholes(p.Spot, p.Strike, p.Rate, p.Dividend, p.Sigma, p.Expiry, p.Payoff)
	if err != nil {
		return 0, err
	}

	alreadyBreached := (p.Direction == Down && p.Spot <= p.Barrier) || (p.Direction == Up && p.Spot >= p.Barrier)
	if alreadyBreached {
		if p.Knock == In {
			return vanilla, nil
		}
		return 0, nil
	}

	ki := knockIn(p)
	if p.Knock == In {
		return ki, nil
	}
	return math.Max(vanilla-ki, 0), nil
}

// knockIn dispatches to the (direction-specific, in principle) reflection
// formula. The spec's original source uses the identical reflection kernel
// for both the up and the down knock-in case; we preserve that behaviour
// rather than silently "fixing" it -- see DESIGN.md's note on this open
// question.
func knockIn(p BarrierParams) float64 {
	switch p.Direction {
	case Down:
		return downKnockIn(p)
	default:
		return upKnockIn(p)
	}
}

func downKnockIn(p BarrierParams) float64 {
	return reflectionKnockIn(p)
}

func upKnockIn(p BarrierParams) float64 {
	return reflectionKnockIn(p)
}

// reflectionKnockIn implements the Merton reflection-principle closed form:
//
//	lambda = (r - q + sigma^2/2) / sigma^2
//	y      = ln(H^2/(S*K)) / (sigma*sqrt(T)) + lambda*sigma*sqrt(T)
//
// This is the exact closed form for a down-and-in call with H <= K and an
// up-and-in put with H >= K. Every other direction/payoff/barrier-strike
// combination is priced with the same kernel (the open question above);
// the x1/y1 terms of the full reflection formulas are not computed.
func reflectionKnockIn(p BarrierParams) float64 {
	S, K, H := p.Spot, p.Strike, p.Barrier
	r, q, sigma, T := p.Rate, p.Dividend, p.Sigma, p.Expiry
	sqrtT := math.Sqrt(T)

	lambda := (r - q + 0.5*sigma*sigma) / (sigma * sigma)
	y := math.Log(H*H/(S*K))/(sigma*sqrtT) + lambda*sigma*sqrtT

	hsOverS := H / S
	discQ := math.Exp(-q * T)
	discR := math.Exp(-r * T)

	term1 := S * discQ * math.Pow(hsOverS, 2*lambda)
	term2 := K * discR * math.Pow(hsOverS, 2*lambda-2)

	if p.Payoff == Call {
		return term1*NormalCDF(y) - term2*NormalCDF(y-sigma*sqrtT)
	}
	return term2*NormalCDF(-(y-sigma*sqrtT)) - term1*NormalCDF(-y)
}
