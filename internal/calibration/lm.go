// Package calibration implements the shared weighted-least-squares residual
// driver and the per-model wrappers (Heston, Hull-White, SABR) built on
// top of it, grounded on the teacher's mv_optimizer.go BFGS/Nelder-Mead
// fallback chain via gonum.org/v1/gonum/optimize, with gonum/mat holding
// the weighted residual vector whose squared norm is the objective. The
// driver takes no Levenberg-Marquardt step and assembles no Jacobian.
package calibration

import (
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"

	"github.com/aristath/pricer-engine/internal/perrors"
)

// ConstraintKind is a closed per-parameter bound kind fed to the driver's
// projection step.
type ConstraintKind int

const (
	Positive ConstraintKind = iota
	Bounded
	UnitInterval // (-1, 1)
)

// Constraint pairs a kind with bounds (meaningful for Bounded).
type Constraint struct {
	Kind     ConstraintKind
	Lo, Hi   float64
}

// Project clamps x to satisfy the constraint.
func (c Constraint) Project(x float64) float64 {
	switch c.Kind {
	case Positive:
		return math.Max(x, 1e-10)
	case UnitInterval:
		return math.Max(-1+1e-9, math.Min(1-1e-9, x))
	case Bounded:
		return math.Max(c.Lo, math.Min(c.Hi, x))
	}
	return x
}

// MarketPoint is one calibration target: a market observable (price or
// implied vol) with an associated weight.
type MarketPoint struct {
	Value  float64
	Weight float64
}

// Model is implemented by each per-model wrapper (Heston, Hull-White,
// SABR): given a parameter vector theta, it returns model values aligned
// with the MarketPoints the caller is fitting against, plus the closed set
// of per-parameter constraints.
type Model interface {
	Evaluate(theta []float64) ([]float64, error)
	Constraints() []Constraint
	NumParams() int
}

// Result is the calibration driver's output: the (possibly non-converged)
// best-so-far parameters, convergence status, iteration count and final
// residual norm.
type Result struct {
	Params       []float64
	Converged    bool
	Iterations   int
	ResidualNorm float64
	Reason       string
}

// Calibrate minimises the sum of squares of r = w*(model(theta)-market)
// with gonum/optimize's NelderMead, falling back to BFGS when NelderMead
// does not converge (the teacher's mv_optimizer.go fallback-chain
// pattern), projecting onto m.Constraints() at every evaluation. No
// Levenberg-Marquardt step is taken.
func Calibrate(m Model, market []MarketPoint, initial []float64) (Result, error) {
	return CalibrateWithLogger(m, market, initial, nil)
}

// CalibrateWithLogger is Calibrate with an optional *zerolog.Logger scoped
// to the "calibration" component, logging the NelderMead attempt, the BFGS
// fallback (when triggered) and the final convergence status. A nil logger
// logs nowhere.
func CalibrateWithLogger(m Model, market []MarketPoint, initial []float64, logger *zerolog.Logger) (Result, error) {
	log := zerolog.Nop()
	if logger != nil {
		log = logger.With().Str("component", "calibration").Logger()
	}

	n := m.NumParams()
	if len(initial) != n {
		return Result{}, &perrors.InvalidInput{Msg: "initial parameter vector length mismatch"}
	}
	constraints := m.Constraints()
	if len(constraints) != n {
		return Result{}, &perrors.InvalidInput{Msg: "constraints length mismatch"}
	}

	project := func(x []float64) []float64 {
		proj := make([]float64, n)
		for i := range x {
			proj[i] = constraints[i].Project(x[i])
		}
		return proj
	}

	objective := func(x []float64) float64 {
		theta := project(x)
		modelVals, err := m.Evaluate(theta)
		if err != nil {
			return math.Inf(1)
		}
		resid := mat.NewVecDense(len(market), nil)
		for i, mp := range market {
			r := mp.Weight * (modelVals[i] - mp.Value)
			resid.SetVec(i, r)
		}
		return mat.Dot(resid, resid)
	}

	problem := optimize.Problem{Func: objective}

	log.Debug().Int("num_params", n).Int("num_market_points", len(market)).Msg("starting NelderMead calibration")
	result, err := optimize.Minimize(problem, initial, &optimize.Settings{}, &optimize.NelderMead{})
	converged := err == nil && successStatus(result.Status)
	if !converged {
		log.Warn().Err(err).Msg("NelderMead did not converge, falling back to BFGS")
		result2, err2 := optimize.Minimize(problem, initial, &optimize.Settings{}, &optimize.BFGS{})
		if err2 == nil && successStatus(result2.Status) {
			result = result2
			converged = true
		}
	}

	finalParams := project(result.X)
	finalResidual := objective(finalParams)

	res := Result{
		Params:       finalParams,
		Converged:    converged,
		Iterations:   result.Stats.MajorIterations,
		ResidualNorm: math.Sqrt(finalResidual),
	}
	if !converged {
		res.Reason = "did not converge within iteration budget; returning best-so-far parameters"
		log.Warn().Int("iterations", res.Iterations).Float64("residual_norm", res.ResidualNorm).Msg(res.Reason)
	} else {
		log.Info().Int("iterations", res.Iterations).Float64("residual_norm", res.ResidualNorm).Msg("calibration converged")
	}
	return res, nil
}

func successStatus(s optimize.Status) bool {
	return s == optimize.Success || s == optimize.GradientThreshold || s == optimize.FunctionConvergence
}
