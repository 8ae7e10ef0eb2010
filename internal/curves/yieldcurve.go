// Package curves implements the yield-curve and volatility-surface
// abstractions built on top of the numeric interpolation kernel.
package curves

import (
	"math"

	"github.com/aristath/pricer-engine/internal/numeric"
	"github.com/aristath/pricer-engine/internal/perrors"
)

// CurveKind tags the closed set of yield-curve variants. Kept as a tagged
// variant (not an interface with many implementations) so the hot path
// (discount_factor/zero_rate, called from every pricer and the MC engine)
// dispatches via a single switch rather than indirect calls.
type CurveKind int

const (
	// KindFlat is a single flat continuously-compounded zero rate.
	KindFlat CurveKind = iota
	// KindLinear interpolates zero rates linearly between pillars.
	KindLinear
	// KindLogLinear interpolates ln(D) linearly, i.e. piecewise-constant
	// forward rates between pillars.
	KindLogLinear
	// KindBootstrapped is produced by the adjoint bootstrapper; it stores
	// pillar discount factors directly and behaves like KindLogLinear for
	// interpolation/extrapolation purposes.
	KindBootstrapped
)

// YieldCurve exposes discount_factor(t), zero_rate(t) and forward_rate(t1,t2)
// over a pillar set built from zero rates (Flat/Linear/LogLinear) or
// directly from discount factors (Bootstrapped).
type YieldCurve struct {
	kind CurveKind

	flatRate float64

	pillarT         []float64
	pillarZero      []float64 // zero rates at pillars (Linear)
	pillarLogDF     []float64 // ln(D) at pillars (LogLinear / Bootstrapped)
	zeroInterp      *numeric.Linear1D
	logDFInterp     *numeric.Linear1D
	extrapolate     bool
	boundaryZeroLow float64
	boundaryZeroHi  float64
}

// NewFlatCurve builds a curve with a single continuously-compounded zero rate.
func NewFlatCurve(rate float64) *YieldCurve {
	return &YieldCurve{kind: KindFlat, flatRate: rate, extrapolate: true}
}

// NewLinearCurve builds a curve that interpolates zero rates linearly
// between pillars (tenor, rate) pairs. Out-of-range queries extrapolate
// flat from the boundary pillar's zero rate when extrapolate is true,
// else return OutOfBounds.
func NewLinearCurve(tenors, rates []float64, extrapolate bool) (*YieldCurve, error) {
	interp, err := numeric.NewLinear1D(tenors, rates)
	if err != nil {
		return nil, err
	}
	sortedT, sortedR := interp.Knots()
	return &YieldCurve{
		kind:            KindLinear,
		pillarT:         sortedT,
		pillarZero:      sortedR,
		zeroInterp:      interp,
		extrapolate:     extrapolate,
		boundaryZeroLow: sortedR[0],
		boundaryZeroHi:  sortedR[len(sortedR)-1],
	}, nil
}

// NewLogLinearCurve builds a curve that interpolates ln(D) linearly between
// pillars (tenor, rate) pairs, equivalent to piecewise-constant forward
// rates. D at each pillar is exp(-rate*tenor).
func NewLogLinearCurve(tenors, rates []float64, extrapolate bool) (*YieldCurve, error) {
	if len(tenors) != len(rates) {
		return nil, &perrors.InvalidInput{Msg: "tenors and rates must have equal length"}
	}
	logDF := make([]float64, len(tenors))
	for i, t := range tenors {
		logDF[i] = -rates[i] * t
	}
	interp, err := numeric.NewLinear1D(tenors, logDF)
	if err != nil {
		return nil, err
	}
	sortedT, sortedLogDF := interp.Knots()
	return &YieldCurve{
		kind:            KindLogLinear,
		pillarT:         sortedT,
		pillarLogDF:     sortedLogDF,
		logDFInterp:     interp,
		extrapolate:     extrapolate,
		boundaryZeroLow: -sortedLogDF[0] / sortedT[0],
		boundaryZeroHi:  -sortedLogDF[len(sortedLogDF)-1] / sortedT[len(sortedT)-1],
	}, nil
}

// NewBootstrappedCurve builds a curve directly from pillar discount factors,
// as produced by the adjoint bootstrapper. Interpolates like LogLinear.
func NewBootstrappedCurve(tenors, discountFactors []float64, extrapolate bool) (*YieldCurve, error) {
	if len(tenors) != len(discountFactors) {
		return nil, &perrors.InvalidInput{Msg: "tenors and discount factors must have equal length"}
	}
	rates := make([]float64, len(tenors))
	for i, t := range tenors {
		if t <= 0 || discountFactors[i] <= 0 {
			return nil, &perrors.InvalidInput{Msg: "bootstrapped pillars require t>0 and D>0"}
		}
		rates[i] = -math.Log(discountFactors[i]) / t
	}
	c, err := NewLogLinearCurve(tenors, rates, extrapolate)
	if err != nil {
		return nil, err
	}
	c.kind = KindBootstrapped
	return c, nil
}

// DiscountFactor returns D(t). D(0) == 1 exactly. Negative t is an error.
func (c *YieldCurve) DiscountFactor(t float64) (float64, error) {
	if t < 0 {
		return 0, &perrors.InvalidMaturity{T: t}
	}
	if t == 0 {
		return 1, nil
	}

	switch c.kind {
	case KindFlat:
		return math.Exp(-c.flatRate * t), nil

	case KindLinear:
		r, err := c.zeroRateLinear(t)
		if err != nil {
			return 0, err
		}
		return math.Exp(-r * t), nil

	case KindLogLinear, KindBootstrapped:
		logDF, err := c.logDiscountFactor(t)
		if err != nil {
			return 0, err
		}
		return math.Exp(logDF), nil
	}
	return 0, &perrors.InvalidInput{Msg: "unknown curve kind"}
}

// zeroRateLinear interpolates the stored zero rate linearly, extending flat
// beyond the pillar range when extrapolation is enabled.
func (c *YieldCurve) zeroRateLinear(t float64) (float64, error) {
	lo, hi := c.pillarT[0], c.pillarT[len(c.pillarT)-1]
	if t < lo || t > hi {
		if !c.extrapolate {
			return 0, &perrors.OutOfBounds{X: t, Min: lo, Max: hi}
		}
		if t < lo {
			return c.boundaryZeroLow, nil
		}
		return c.boundaryZeroHi, nil
	}
	return c.zeroInterp.Interpolate(t)
}

// logDiscountFactor interpolates ln(D) linearly for LogLinear/Bootstrapped
// curves, extending flat-zero-rate beyond the pillar range.
func (c *YieldCurve) logDiscountFactor(t float64) (float64, error) {
	lo, hi := c.pillarT[0], c.pillarT[len(c.pillarT)-1]
	if t < lo || t > hi {
		if !c.extrapolate {
			return 0, &perrors.OutOfBounds{X: t, Min: lo, Max: hi}
		}
		if t < lo {
			return -c.boundaryZeroLow * t, nil
		}
		return -c.boundaryZeroHi * t, nil
	}
	return c.logDFInterp.Interpolate(t)
}

// ZeroRate returns the continuously-compounded zero rate R(t) such that
// D(t) = exp(-R(t)*t). For Linear curves, the stored rate is returned
// directly at pillars (bit-exact); for LogLinear/Bootstrapped it is derived
// from D via R(t) = -ln(D(t))/t.
func (c *YieldCurve) ZeroRate(t float64) (float64, error) {
	if t <= 0 {
		return 0, &perrors.InvalidMaturity{T: t}
	}
	switch c.kind {
	case KindFlat:
		return c.flatRate, nil
	case KindLinear:
		return c.zeroRateLinear(t)
	case KindLogLinear, KindBootstrapped:
		logDF, err := c.logDiscountFactor(t)
		if err != nil {
			return 0, err
		}
		return -logDF / t, nil
	}
	return 0, &perrors.InvalidInput{Msg: "unknown curve kind"}
}

// ForwardRate returns the simply-implied continuously-compounded forward
// rate over [t1, t2], derived from the two discount factors:
// f(t1,t2) = (ln D(t1) - ln D(t2)) / (t2 - t1).
func (c *YieldCurve) ForwardRate(t1, t2 float64) (float64, error) {
	if t1 < 0 || t2 <= t1 {
		return 0, &perrors.InvalidMaturity{T: t2}
	}
	d1, err := c.DiscountFactor(t1)
	if err != nil {
		return 0, err
	}
	d2, err := c.DiscountFactor(t2)
	if err != nil {
		return 0, err
	}
	return (math.Log(d1) - math.Log(d2)) / (t2 - t1), nil
}

// Kind exposes the curve variant, mostly for diagnostics and tests.
func (c *YieldCurve) Kind() CurveKind { return c.kind }

// PillarTenors exposes the sorted pillar tenors backing this curve, used by
// the bootstrapper's prefix-freezing logic.
func (c *YieldCurve) PillarTenors() []float64 {
	return append([]float64(nil), c.pillarT...)
}

// BumpAtTenor returns a new curve with the zero rate at the pillar nearest
// tenor shifted by bump, every other pillar held fixed. For a flat curve,
// which has a single implicit pillar, bump applies to the whole curve.
// Used by per-tenor bump-and-revalue Greeks (IRS tenor Deltas / DV01).
func (c *YieldCurve) BumpAtTenor(tenor, bump float64) *YieldCurve {
	switch c.kind {
	case KindFlat:
		return NewFlatCurve(c.flatRate + bump)

	case KindLinear:
		rates := append([]float64(nil), c.pillarZero...)
		rates[nearestPillar(c.pillarT, tenor)] += bump
		bumped, _ := NewLinearCurve(c.pillarT, rates, c.extrapolate)
		return bumped

	case KindLogLinear, KindBootstrapped:
		rates := make([]float64, len(c.pillarT))
		for i, t := range c.pillarT {
			rates[i] = -c.pillarLogDF[i] / t
		}
		rates[nearestPillar(c.pillarT, tenor)] += bump
		bumped, _ := NewLogLinearCurve(c.pillarT, rates, c.extrapolate)
		bumped.kind = c.kind
		return bumped
	}
	return c
}

func nearestPillar(tenors []float64, tenor float64) int {
	best, bestDist := 0, math.Abs(tenors[0]-tenor)
	for i, t := range tenors[1:] {
		d := math.Abs(t - tenor)
		if d < bestDist {
			best, bestDist = i+1, d
		}
	}
	return best
}
