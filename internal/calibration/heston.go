package calibration

import (
	"math"
	"math/cmplx"

	"github.com/aristath/pricer-engine/internal/perrors"
)

// HestonInputs bundles the per-market-point data the Heston calibrator
// needs beyond theta itself: forward, strike, expiry and discount factor.
type HestonInputs struct {
	Forward, Strike, Expiry, Discount float64
}

// HestonModel wraps the Heston characteristic-function pricer as a
// calibration.Model over theta=(v0, theta, kappa, xi, rho).
type HestonModel struct {
	Points         []HestonInputs
	IntegrationCap float64 // u_max, default 100
	NumNodes       int     // trapezoidal nodes, default 128
	EnforceFeller  bool
	FellerPenalty  float64
	QuotesAreVols  bool
}

func (h HestonModel) NumParams() int { return 5 }

func (h HestonModel) Constraints() []Constraint {
	return []Constraint{
		{Kind: Positive},                    // v0
		{Kind: Positive},                    // theta
		{Kind: Positive},                    // kappa
		{Kind: Positive},                    // xi
		{Kind: Bounded, Lo: -0.999, Hi: 0.999}, // rho
	}
}

// Evaluate prices every HestonInputs point under theta, optionally
// inverting the price to an implied vol via a Newton-Raphson inverter
// seeded with the Brenner-Subrahmanyam approximation, and appends a Feller
// penalty term when EnforceFeller is set.
func (h HestonModel) Evaluate(theta []float64) ([]float64, error) {
	if len(theta) != 5 {
		return nil, &perrors.InvalidInput{Msg: "heston theta must have 5 components"}
	}
	v0, kappa, xi, rho := theta[0], theta[2], theta[3], theta[4]
	thetaLR := theta[1]

	nodes := h.NumNodes
	if nodes <= 0 {
		nodes = 128
	}
	uMax := h.IntegrationCap
	if uMax <= 0 {
		uMax = 100
	}

	out := make([]float64, len(h.Points))
	for i, p := range h.Points {
		price := hestonCallPrice(p.Forward, p.Strike, p.Expiry, p.Discount, v0, kappa, thetaLR, xi, rho, uMax, nodes)
		if h.QuotesAreVols {
			vol, err := impliedVolFromPrice(price, p.Forward, p.Strike, p.Expiry, p.Discount)
			if err == nil {
				price = vol
			}
		}
		if h.EnforceFeller {
			penalty := h.FellerPenalty
			if penalty <= 0 {
				penalty = 1.0
			}
			violation := math.Max(1-2*kappa*thetaLR/(xi*xi), 0)
			price += penalty * violation
		}
		out[i] = price
	}
	return out, nil
}

// hestonCallPrice prices a European call via the Heston characteristic
// function using Fourier integration (trapezoidal rule), the standard
// "Little Heston Trap"-style formulation via P1/P2 probabilities.
func hestonCallPrice(forward, strike, expiry, discount, v0, kappa, theta, xi, rho, uMax float64, nodes int) float64 {
	if expiry <= 0 {
		return discount * math.Max(forward-strike, 0)
	}
	lnK := math.Log(strike)
	p1 := hestonProb(1, forward, lnK, expiry, v0, kappa, theta, xi, rho, uMax, nodes)
	p2 := hestonProb(2, forward, lnK, expiry, v0, kappa, theta, xi, rho, uMax, nodes)
	return discount * (forward*p1 - strike*p2)
}

func hestonProb(j int, forward, lnK, tau, v0, kappa, theta, xi, rho, uMax float64, nodes int) float64 {
	integrand := func(u float64) float64 {
		phi := hestonCharFunc(complex(u, 0), j, forward, tau, v0, kappa, theta, xi, rho)
		num := cmplx.Exp(complex(0, -u*lnK)) * phi
		return real(num / complex(0, u))
	}
	// trapezoidal integration over (0, uMax], avoiding the u=0 singularity.
	h := uMax / float64(nodes)
	sum := 0.0
	for k := 1; k <= nodes; k++ {
		u := float64(k) * h
		sum += integrand(u) * h
	}
	return 0.5 + sum/math.Pi
}

func hestonCharFunc(u complex128, j int, forward, tau, v0, kappa, theta, xi, rho float64) complex128 {
	var b float64
	if j == 1 {
		b = kappa - rho*xi
	} else {
		b = kappa
	}
	a := kappa * theta

	var ui float64
	if j == 1 {
		ui = 0.5
	} else {
		ui = -0.5
	}

	x := complex(math.Log(forward), 0)
	d := cmplx.Sqrt(cmplx.Pow(complex(0, rho*xi)*u-complex(b, 0), 2) -
		complex(xi*xi, 0)*(complex(2*ui, 0)*u*complex(0, 1)-u*u))
	g := (complex(b, 0) - complex(0, rho*xi)*u - d) / (complex(b, 0) - complex(0, rho*xi)*u + d)

	expDTau := cmplx.Exp(-d * complex(tau, 0))
	C := complex(a, 0) / complex(xi*xi, 0) *
		((complex(b, 0)-complex(0, rho*xi)*u-d)*complex(tau, 0) -
			complex(2, 0)*cmplx.Log((complex(1, 0)-g*expDTau)/(complex(1, 0)-g)))
	D := (complex(b, 0) - complex(0, rho*xi)*u - d) / complex(xi*xi, 0) *
		(complex(1, 0)-expDTau)/(complex(1, 0)-g*expDTau)

	return cmplx.Exp(C + D*complex(v0, 0) + complex(0, 1)*u*x)
}

// impliedVolFromPrice inverts a Black-76 price to an implied vol via
// Newton-Raphson, seeded with the Brenner-Subrahmanyam approximation and
// bounded to [0.001, 5.0].
func impliedVolFromPrice(price, forward, strike, expiry, discount float64) (float64, error) {
	if expiry <= 0 || price <= 0 {
		return 0, &perrors.InvalidInput{Msg: "cannot invert vol at non-positive price or expiry"}
	}
	sigma := math.Sqrt(2*math.Pi/expiry) * price / (discount * forward)
	sigma = math.Max(0.001, math.Min(5.0, sigma))

	for i := 0; i < 50; i++ {
		modelPrice, vega := black76WithVega(forward, strike, sigma, expiry, discount)
		diff := modelPrice - price
		if math.Abs(diff) < 1e-10 {
			return sigma, nil
		}
		if vega < 1e-12 {
			break
		}
		sigma -= diff / vega
		sigma = math.Max(0.001, math.Min(5.0, sigma))
	}
	return sigma, nil
}

func black76WithVega(forward, strike, sigma, expiry, discount float64) (float64, float64) {
	sqrtT := math.Sqrt(expiry)
	d1 := (math.Log(forward/strike) + 0.5*sigma*sigma*expiry) / (sigma * sqrtT)
	d2 := d1 - sigma*sqrtT
	nD1 := 0.5 * math.Erfc(-d1/math.Sqrt2)
	nD2 := 0.5 * math.Erfc(-d2/math.Sqrt2)
	price := discount * (forward*nD1 - strike*nD2)
	pdf := math.Exp(-0.5*d1*d1) / math.Sqrt(2*math.Pi)
	vega := discount * forward * pdf * sqrtT
	return price, vega
}
