package greeks

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/aristath/pricer-engine/internal/paths"
	"github.com/aristath/pricer-engine/internal/stochastic"
)

// SegmentReplay re-simulates the stepsInSegment steps of one checkpoint
// segment starting at ckpt.Step using Dual numbers seeded with Deriv=1 on
// the segment's starting value startX0, pulling the segment-end
// adjoint back to a segment-start sensitivity. This realises spec 4.H's
// "restore -> replay -> pull back adjoints -> free the tape" reverse pass
// using per-segment forward-mode Dual Jacobians in place of a literal
// AD tape (Go has no tape-recording primitive to hook into); because each
// segment is short (checkpoint-bounded), the forward-mode replay cost is
// the same order as a true reverse sweep over that segment.
//
// Only the first state component is tracked: the returned Dual's Deriv is
// d(segment-end x)/d(startX0), while startV0 enters as a constant.
func SegmentReplay(model stochastic.Model, ckpt paths.State, dt float64, stepsInSegment int, startX0, startV0 float64) (Dual, error) {
	src := rand.NewSource(ckpt.RNGSeed)
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	bdim := model.BrownianDim()
	dW := make([]float64, bdim)

	x := Var(startX0) // track d(terminal)/d(segment-start x)
	v := Const(startV0)

	for s := 0; s < stepsInSegment; s++ {
		for i := 0; i < bdim; i++ {
			dW[i] = normal.Rand()
		}
		next, err := evolveStepDual(model, x, v, dt, dW)
		if err != nil {
			return Dual{}, err
		}
		x, v = next[0], next[1]
	}
	return x, nil
}

// evolveStepDual mirrors stochastic.Model.EvolveStep's Euler-Maruyama
// update, but over Dual numbers so the segment-local Jacobian is produced
// alongside the primal state. Only the models whose update is a
// closed-form expression in (x, v) are supported here (GBM, CIR,
// Hull-White, Heston); this mirrors EvolveStep's own switch.
func evolveStepDual(model stochastic.Model, x, v Dual, dt float64, dW []float64) ([2]Dual, error) {
	sqrtDt := Const(dtSqrt(dt))

	switch model.Kind {
	case stochastic.KindGBM:
		p := model.GBM
		drift := Const((p.Rate - p.Dividend - 0.5*p.Sigma*p.Sigma) * dt)
		diffusion := Const(p.Sigma).Mul(sqrtDt).Mul(Const(dW[0]))
		next := x.Mul(drift.Add(diffusion).Exp())
		return [2]Dual{next, v}, nil

	case stochastic.KindCIR:
		p := model.CIR
		rPos := x
		if rPos.Value < 0 {
			rPos = Const(0)
		}
		next := x.Add(Const(p.Kappa).Mul(Const(p.Theta).Sub(x)).Mul(Const(dt))).
			Add(Const(p.Sigma).Mul(rPos.Sqrt()).Mul(sqrtDt).Mul(Const(dW[0])))
		floor := p.Floor
		if floor <= 0 {
			floor = 1e-8
		}
		if next.Value < floor {
			next = Const(floor)
		}
		return [2]Dual{next, v}, nil

	case stochastic.KindHullWhite:
		p := model.HullWhite
		next := x.Add(Const(p.A).Mul(Const(p.Theta).Sub(x)).Mul(Const(dt))).
			Add(Const(p.Sigma).Mul(sqrtDt).Mul(Const(dW[0])))
		return [2]Dual{next, v}, nil

	case stochastic.KindHeston:
		p := model.Heston
		vPos := v
		if vPos.Value < 0 {
			vPos = Const(0)
		}
		z1 := dW[0]
		z2 := p.Rho*dW[0] + sqrt1MinusRho2(p.Rho)*dW[1]
		nextSpot := x.Mul(
			Const((p.Rate-0.5*vPos.Value)*dt).Add(vPos.Sqrt().Mul(sqrtDt).Mul(Const(z1))).Exp(),
		)
		nextV := v.Add(Const(p.Kappa).Mul(Const(p.Theta).Sub(v)).Mul(Const(dt))).
			Add(Const(p.Xi).Mul(vPos.Sqrt()).Mul(sqrtDt).Mul(Const(z2)))
		floor := p.VarFloor
		if floor <= 0 {
			floor = 1e-8
		}
		if nextV.Value < floor {
			nextV = Const(floor)
		}
		return [2]Dual{nextSpot, nextV}, nil
	}
	return [2]Dual{}, errUnknownModel
}

func dtSqrt(dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	return sqrtFloat(dt)
}
