package calibration

import (
	"math"

	"github.com/aristath/pricer-engine/internal/perrors"
)

// HullWhiteInputs is one swaption-vol market point: the underlying swap's
// expiry T and tenor, used to compute the closed-form B(t,T) term.
type HullWhiteInputs struct {
	Expiry, Tenor float64
}

// HullWhiteModel wraps the closed-form Hull-White swaption-vol
// approximation as a calibration.Model over theta=(a, sigma).
type HullWhiteModel struct {
	Points []HullWhiteInputs
}

func (h HullWhiteModel) NumParams() int { return 2 }

func (h HullWhiteModel) Constraints() []Constraint {
	return []Constraint{
		{Kind: Bounded, Lo: -1, Hi: 1}, // mean reversion a: allow slight negative
		{Kind: Positive},               // sigma
	}
}

// Evaluate computes the Black-equivalent swaption vol
// sigma*sqrt(Bbar)*sqrt(V/T) for every point, with B(t,T)=(1-exp(-a(T-t)))/a
// and V(t)=sigma^2*(1-exp(-2at))/(2a); the zero-mean-reversion limit
// (a -> 0) is handled explicitly to avoid a 0/0.
func (h HullWhiteModel) Evaluate(theta []float64) ([]float64, error) {
	if len(theta) != 2 {
		return nil, &perrors.InvalidInput{Msg: "hull-white theta must have 2 components"}
	}
	a, sigma := theta[0], theta[1]

	out := make([]float64, len(h.Points))
	for i, p := range h.Points {
		bBar := hwB(a, p.Expiry, p.Expiry+p.Tenor)
		v := hwVariance(a, sigma, p.Expiry)
		if p.Expiry <= 0 {
			out[i] = 0
			continue
		}
		out[i] = sigma * math.Sqrt(math.Abs(bBar)) * math.Sqrt(math.Max(v, 0)/p.Expiry)
	}
	return out, nil
}

func hwB(a, t, capT float64) float64 {
	if math.Abs(a) < 1e-8 {
		return capT - t
	}
	return (1 - math.Exp(-a*(capT-t))) / a
}

func hwVariance(a, sigma, t float64) float64 {
	if math.Abs(a) < 1e-8 {
		return sigma * sigma * t
	}
	return sigma * sigma * (1 - math.Exp(-2*a*t)) / (2 * a)
}
