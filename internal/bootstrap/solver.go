// Package bootstrap implements the adjoint curve bootstrapper: sequential
// pillar-by-pillar Newton-Raphson (falling back to Brent on divergence)
// root-finding, with implicit-function-theorem sensitivities so curve
// calibration is differentiable without taping solver iterations.
package bootstrap

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/aristath/pricer-engine/internal/perrors"
)

// Config holds the bootstrapper's tunables; defaults per spec 4.I.
type Config struct {
	Tolerance      float64
	MaxIterations  int
	BracketLow     float64
	BracketHigh    float64
	AllowNegative  bool
	MaxMaturity    float64
	// Logger is optional; a caller-supplied *zerolog.Logger is scoped to
	// the "bootstrap" component, a nil Logger logs nowhere.
	Logger *zerolog.Logger
}

// DefaultConfig returns tol=1e-12, max-iter=100, bracket [0.001,2.0], no
// negative rates, 50-year cap.
func DefaultConfig() Config {
	return Config{
		Tolerance:     1e-12,
		MaxIterations: 100,
		BracketLow:    0.001,
		BracketHigh:   2.0,
		AllowNegative: false,
		MaxMaturity:   50,
	}
}

// componentLogger returns cfg's logger scoped to the bootstrap component,
// falling back to a no-op logger when none was supplied.
func componentLogger(cfg Config) zerolog.Logger {
	if cfg.Logger == nil {
		return zerolog.Nop()
	}
	return cfg.Logger.With().Str("component", "bootstrap").Logger()
}

// Residual is the per-pillar objective f(df) = model_price(df) - market,
// along with its derivative with respect to df (supplied analytically so
// Newton's step needs no finite-difference gradient).
type Residual struct {
	F      func(df float64) float64
	DF     func(df float64) float64 // df/d(discount factor)
	DTheta func(df float64) float64 // df/d(market input theta), at the root
}

// SolveResult carries the converged discount factor plus the data needed
// for the implicit-function-theorem adjoint: dDF/dTheta = -(df/dtheta)/(df/dDF).
type SolveResult struct {
	DiscountFactor float64
	Iterations     int
	Method         string // "newton" or "brent"
	DResultDTheta  float64
}

// SolvePillar finds df such that r.F(df) == 0, starting from initial,
// using Newton-Raphson; falls back to Brent within cfg's bracket if Newton
// diverges or the Jacobian is ~0.
func SolvePillar(r Residual, initial float64, cfg Config) (SolveResult, error) {
	log := componentLogger(cfg)

	df, iters, err := newton(r, initial, cfg)
	method := "newton"
	if err != nil {
		log.Warn().
			Err(err).
			Float64("initial", initial).
			Msg("newton diverged, falling back to brent")
		df, iters, err = brent(r.F, cfg.BracketLow, cfg.BracketHigh, cfg)
		method = "brent"
		if err != nil {
			log.Error().Err(err).Msg("brent fallback also failed to converge")
			return SolveResult{}, err
		}
	}

	if !cfg.AllowNegative && df <= 0 {
		return SolveResult{}, &perrors.InvalidInput{Msg: "bootstrapped discount factor is non-positive"}
	}

	log.Debug().
		Str("method", method).
		Int("iterations", iters).
		Float64("discount_factor", df).
		Msg("pillar solved")

	var dDTheta float64
	denom := r.DF(df)
	if r.DTheta != nil && math.Abs(denom) > 1e-14 {
		dDTheta = -r.DTheta(df) / denom
	}

	return SolveResult{DiscountFactor: df, Iterations: iters, Method: method, DResultDTheta: dDTheta}, nil
}

// newton runs plain Newton-Raphson with an analytically supplied
// derivative, returning NotConverged if the iteration budget is exhausted
// or the derivative becomes degenerate.
func newton(r Residual, x0 float64, cfg Config) (float64, int, error) {
	x := x0
	for i := 0; i < cfg.MaxIterations; i++ {
		fx := r.F(x)
		if math.Abs(fx) < cfg.Tolerance {
			return x, i, nil
		}
		dfx := r.DF(x)
		if math.Abs(dfx) < 1e-14 {
			return 0, i, &perrors.NotConverged{Iterations: i, LastResidual: fx}
		}
		x -= fx / dfx
	}
	fx := r.F(x)
	if math.Abs(fx) < cfg.Tolerance {
		return x, cfg.MaxIterations, nil
	}
	return 0, cfg.MaxIterations, &perrors.NotConverged{Iterations: cfg.MaxIterations, LastResidual: fx}
}

// brent is the classic bracketed root-finder (Brent's method combining
// bisection, secant and inverse quadratic interpolation), used as the
// robust fallback when Newton diverges.
func brent(f func(float64) float64, lo, hi float64, cfg Config) (float64, int, error) {
	a, b := lo, hi
	fa, fb := f(a), f(b)
	if fa*fb > 0 {
		return 0, 0, &perrors.NotConverged{Iterations: 0, LastResidual: fb}
	}
	if math.Abs(fa) < math.Abs(fb) {
		a, b = b, a
		fa, fb = fb, fa
	}
	c, fc := a, fa
	mflag := true
	var d float64

	for i := 0; i < cfg.MaxIterations; i++ {
		if math.Abs(fb) < cfg.Tolerance || math.Abs(b-a) < cfg.Tolerance {
			return b, i, nil
		}
		var s float64
		if fa != fc && fb != fc {
			s = a*fb*fc/((fa-fb)*(fa-fc)) + b*fa*fc/((fb-fa)*(fb-fc)) + c*fa*fb/((fc-fa)*(fc-fb))
		} else {
			s = b - fb*(b-a)/(fb-fa)
		}

		cond := (s < (3*a+b)/4 || s > b) ||
			(mflag && math.Abs(s-b) >= math.Abs(b-c)/2) ||
			(!mflag && math.Abs(s-b) >= math.Abs(c-d)/2) ||
			(mflag && math.Abs(b-c) < cfg.Tolerance) ||
			(!mflag && math.Abs(c-d) < cfg.Tolerance)

		if cond {
			s = (a + b) / 2
			mflag = true
		} else {
			mflag = false
		}

		fs := f(s)
		d = c
		c, fc = b, fb

		if fa*fs < 0 {
			b, fb = s, fs
		} else {
			a, fa = s, fs
		}
		if math.Abs(fa) < math.Abs(fb) {
			a, b = b, a
			fa, fb = fb, fa
		}
	}
	return b, cfg.MaxIterations, &perrors.NotConverged{Iterations: cfg.MaxIterations, LastResidual: fb}
}
