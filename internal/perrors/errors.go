// Package perrors defines the domain error taxonomy shared by every layer of
// the pricing engine: interpolators, curves, pricers, solvers and
// calibrators all return these typed errors instead of panicking or
// silently producing NaN.
package perrors

import "fmt"

// InvalidMaturity is returned when a requested time t is negative or
// otherwise outside the domain a maturity is allowed to take.
type InvalidMaturity struct {
	T float64
}

func (e *InvalidMaturity) Error() string {
	return fmt.Sprintf("invalid maturity: t=%g", e.T)
}

// InvalidStrike is returned for non-positive or otherwise malformed strikes.
type InvalidStrike struct {
	K float64
}

func (e *InvalidStrike) Error() string {
	return fmt.Sprintf("invalid strike: K=%g", e.K)
}

// InvalidExpiry is returned for non-positive expiries.
type InvalidExpiry struct {
	T float64
}

func (e *InvalidExpiry) Error() string {
	return fmt.Sprintf("invalid expiry: T=%g", e.T)
}

// InvalidVolatility is returned for non-positive volatilities.
type InvalidVolatility struct {
	Sigma float64
}

func (e *InvalidVolatility) Error() string {
	return fmt.Sprintf("invalid volatility: sigma=%g", e.Sigma)
}

// InvalidNotional is returned for non-positive notionals.
type InvalidNotional struct {
	Notional float64
}

func (e *InvalidNotional) Error() string {
	return fmt.Sprintf("invalid notional: notional=%g", e.Notional)
}

// OutOfBounds is returned when a query falls outside a domain that does not
// permit extrapolation.
type OutOfBounds struct {
	X, Min, Max float64
}

func (e *OutOfBounds) Error() string {
	return fmt.Sprintf("out of bounds: x=%g not in [%g, %g]", e.X, e.Min, e.Max)
}

// InsufficientData is returned by constructors that require a minimum
// number of points.
type InsufficientData struct {
	Got, Need int
}

func (e *InsufficientData) Error() string {
	return fmt.Sprintf("insufficient data: got %d, need %d", e.Got, e.Need)
}

// InvalidInput wraps a free-form construction error with a message.
type InvalidInput struct {
	Msg string
}

func (e *InvalidInput) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Msg)
}

// NotConverged is returned by iterative solvers (Newton/Brent, LM) that
// exhaust their iteration budget without reaching tolerance. Callers may
// still use LastResidual / the best-so-far parameters carried alongside it.
type NotConverged struct {
	Iterations   int
	LastResidual float64
}

func (e *NotConverged) Error() string {
	return fmt.Sprintf("did not converge after %d iterations: last residual=%g", e.Iterations, e.LastResidual)
}

// UnsupportedExerciseStyle is returned when an instrument requests an
// exercise style the pricer invoked does not implement.
type UnsupportedExerciseStyle struct {
	Style string
}

func (e *UnsupportedExerciseStyle) Error() string {
	return fmt.Sprintf("unsupported exercise style: %s", e.Style)
}
