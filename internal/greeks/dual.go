// Package greeks implements reverse-mode Greeks: an adjoint accumulator,
// checkpoint-segment replay, and the Enzyme/fallback resolver from spec
// 4.H. Since Go has no Enzyme-equivalent whole-program AD compiler, the
// resolver always resolves to the bump-and-revalue / per-segment
// forward-mode fallback -- a spec-sanctioned outcome (EnzymeOnly without a
// backend either errors or falls back, per spec 4.H), not a deviation.
package greeks

import "math"

// Dual is a forward-mode dual number: Value carries the primal, Deriv the
// derivative with respect to a single tracked input. Arithmetic follows
// the standard dual-number rules so the same formula evaluated with Duals
// yields both f(x) and f'(x) in one pass -- this is the concrete
// "generic scalar" substitute spec 3's parametric-T requirement calls for,
// realised as a dedicated type rather than a generic container, since the
// corpus this engine is grounded in never uses Go generics.
type Dual struct {
	Value float64
	Deriv float64
}

// Const lifts a plain float64 into a Dual with zero derivative.
func Const(x float64) Dual { return Dual{Value: x, Deriv: 0} }

// Var lifts x into a Dual tracked as the independent variable (derivative 1).
func Var(x float64) Dual { return Dual{Value: x, Deriv: 1} }

func (a Dual) Add(b Dual) Dual { return Dual{a.Value + b.Value, a.Deriv + b.Deriv} }
func (a Dual) Sub(b Dual) Dual { return Dual{a.Value - b.Value, a.Deriv - b.Deriv} }
func (a Dual) Mul(b Dual) Dual {
	return Dual{a.Value * b.Value, a.Deriv*b.Value + a.Value*b.Deriv}
}
func (a Dual) Div(b Dual) Dual {
	return Dual{a.Value / b.Value, (a.Deriv*b.Value - a.Value*b.Deriv) / (b.Value * b.Value)}
}

func (a Dual) Exp() Dual {
	e := math.Exp(a.Value)
	return Dual{e, a.Deriv * e}
}

func (a Dual) Log() Dual {
	return Dual{math.Log(a.Value), a.Deriv / a.Value}
}

func (a Dual) Sqrt() Dual {
	s := math.Sqrt(a.Value)
	return Dual{s, a.Deriv / (2 * s)}
}

// NormalCDF evaluates the standard normal CDF on a Dual, propagating the
// derivative through the normal PDF: d/dx N(x) = phi(x).
func (a Dual) NormalCDF() Dual {
	cdf := 0.5 * math.Erfc(-a.Value/math.Sqrt2)
	pdf := math.Exp(-0.5*a.Value*a.Value) / math.Sqrt(2*math.Pi)
	return Dual{cdf, a.Deriv * pdf}
}
