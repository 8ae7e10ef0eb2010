package stochastic

import (
	"math"

	"github.com/aristath/pricer-engine/internal/perrors"
)

// ModelKind is the closed tagged set of stochastic-process variants the
// Monte Carlo engine dispatches on. Kept closed (rather than an open
// interface registry) so the hot evolve_step path is a single switch,
// matching the "tagged variants, not dynamic dispatch" design note.
type ModelKind int

const (
	KindGBM ModelKind = iota
	KindCIR
	KindHeston
	KindHullWhite
)

// GBMParams parameterises geometric Brownian motion dS = (r-q)S dt + sigma S dW.
type GBMParams struct {
	Rate, Dividend, Sigma float64
}

// CIRParams parameterises the CIR short-rate process
// dr = a(b-r)dt + sigma*sqrt(r) dW, floored at Floor after each step
// (full-truncation scheme).
type CIRParams struct {
	Kappa, Theta, Sigma, Floor float64
}

// HestonParams parameterises Heston stochastic volatility:
// dS = r S dt + sqrt(v) S dW1; dv = kappa(theta-v)dt + xi*sqrt(v) dW2,
// with corr(dW1,dW2) = Rho.
type HestonParams struct {
	Rate, Kappa, Theta, Xi, Rho, VarFloor float64
}

// HullWhiteParams parameterises the one-factor Hull-White short rate:
// dr = a(b(t)-r)dt + sigma dW, with a constant long-run mean Theta used
// in place of a time-dependent b(t) (a documented simplification; the
// general time-dependent drift is a calibration-side concern, not a
// simulation-side one, for this engine's scope).
type HullWhiteParams struct {
	A, Theta, Sigma float64
}

// Model is a closed tagged stochastic-process variant bundling a kind with
// its parameters.
type Model struct {
	Kind       ModelKind
	GBM        GBMParams
	CIR        CIRParams
	Heston     HestonParams
	HullWhite  HullWhiteParams
}

// BrownianDim returns the number of independent standard-normal draws
// evolve_step needs per call.
func (m Model) BrownianDim() int {
	if m.Kind == KindHeston {
		return 2
	}
	return 1
}

// NumFactors returns the state dimension the model evolves.
func (m Model) NumFactors() int {
	if m.Kind == KindHeston {
		return 2
	}
	return 1
}

// InitialState builds the model's starting state from x0 (and, for Heston,
// v0 supplied as the second argument).
func (m Model) InitialState(x0, v0 float64) State {
	if m.Kind == KindHeston {
		return TwoFactor(x0, v0)
	}
	return Single(x0)
}

// EvolveStep advances state by dt using an Euler-Maruyama discretisation
// with the Brownian increments dW (length BrownianDim()). CIR and Heston's
// variance factor are floored after the step (full-truncation scheme).
func (m Model) EvolveStep(s State, dt float64, dW []float64) (State, error) {
	if len(dW) < m.BrownianDim() {
		return State{}, &perrors.InvalidInput{Msg: "insufficient brownian increments for model"}
	}
	sqrtDt := math.Sqrt(dt)

	switch m.Kind {
	case KindGBM:
		p := m.GBM
		drift := (p.Rate - p.Dividend - 0.5*p.Sigma*p.Sigma) * dt
		diffusion := p.Sigma * sqrtDt * dW[0]
		return Single(s.First * math.Exp(drift+diffusion)), nil

	case KindCIR:
		p := m.CIR
		r := s.First
		next := r + p.Kappa*(p.Theta-r)*dt + p.Sigma*math.Sqrt(math.Max(r, 0))*sqrtDt*dW[0]
		floor := p.Floor
		if floor <= 0 {
			floor = 1e-8
		}
		return Single(math.Max(next, floor)), nil

	case KindHeston:
		p := m.Heston
		spot, v := s.First, s.Second
		vPos := math.Max(v, 0)
		z1 := dW[0]
		z2 := p.Rho*dW[0] + math.Sqrt(1-p.Rho*p.Rho)*dW[1]
		nextSpot := spot * math.Exp((p.Rate-0.5*vPos)*dt+math.Sqrt(vPos)*sqrtDt*z1)
		nextV := v + p.Kappa*(p.Theta-v)*dt + p.Xi*math.Sqrt(vPos)*sqrtDt*z2
		floor := p.VarFloor
		if floor <= 0 {
			floor = 1e-8
		}
		return TwoFactor(nextSpot, math.Max(nextV, floor)), nil

	case KindHullWhite:
		p := m.HullWhite
		r := s.First
		next := r + p.A*(p.Theta-r)*dt + p.Sigma*sqrtDt*dW[0]
		return Single(next), nil
	}

	return State{}, &perrors.InvalidInput{Msg: "unknown stochastic model kind"}
}

// SatisfiesFeller reports the Feller condition 2*kappa*theta >= sigma^2 for
// CIR/Heston-family processes. Never hard-enforced; calibration penalises
// violations in its residual instead.
func (m Model) SatisfiesFeller() bool {
	switch m.Kind {
	case KindCIR:
		return 2*m.CIR.Kappa*m.CIR.Theta >= m.CIR.Sigma*m.CIR.Sigma
	case KindHeston:
		return 2*m.Heston.Kappa*m.Heston.Theta >= m.Heston.Xi*m.Heston.Xi
	}
	return true
}
