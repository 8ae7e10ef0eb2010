package calibration

import (
	"math"

	"github.com/aristath/pricer-engine/internal/perrors"
)

// SABRInputs is one market point: forward and strike to evaluate the
// Hagan approximation at, plus the option expiry.
type SABRInputs struct {
	Forward, Strike, Expiry float64
}

// SABRModel wraps the Hagan SABR implied-vol approximation as a
// calibration.Model over theta=(alpha, beta, rho, nu).
type SABRModel struct {
	Points []SABRInputs
}

func (s SABRModel) NumParams() int { return 4 }

func (s SABRModel) Constraints() []Constraint {
	return []Constraint{
		{Kind: Positive},                        // alpha
		{Kind: Bounded, Lo: 0, Hi: 1},            // beta
		{Kind: UnitInterval},                     // rho
		{Kind: Positive},                         // nu
	}
}

// Evaluate computes the Hagan lognormal-vol approximation for every point.
func (s SABRModel) Evaluate(theta []float64) ([]float64, error) {
	if len(theta) != 4 {
		return nil, &perrors.InvalidInput{Msg: "sabr theta must have 4 components"}
	}
	alpha, beta, rho, nu := theta[0], theta[1], theta[2], theta[3]

	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = HaganVol(p.Forward, p.Strike, p.Expiry, alpha, beta, rho, nu)
	}
	return out, nil
}

// HaganVol evaluates the Hagan et al. SABR lognormal-vol approximation,
// with the documented ATM-singularity simplification: the ln(z/x(z))
// correction term is replaced by 1.0 whenever |x(z)| < epsilon (including
// the literal ATM case F==K), rather than its limiting Taylor expansion.
// This is a deliberate smoothing, preserved per spec's open question
// rather than "fixed" with the exact ATM limit.
func HaganVol(forward, strike, expiry, alpha, beta, rho, nu float64) float64 {
	const eps = 1e-7
	if forward <= 0 || strike <= 0 {
		return 0
	}

	fMidBeta := math.Pow(forward*strike, (1-beta)/2)
	logFK := math.Log(forward / strike)

	var zOverXz float64
	if math.Abs(forward-strike) < eps {
		zOverXz = 1.0
	} else {
		z := (nu / alpha) * fMidBeta * logFK
		xz := math.Log((math.Sqrt(1-2*rho*z+z*z) + z - rho) / (1 - rho))
		if math.Abs(xz) < eps {
			zOverXz = 1.0
		} else {
			zOverXz = z / xz
		}
	}

	term1 := alpha / (fMidBeta * (1 + (1-beta)*(1-beta)/24*logFK*logFK + math.Pow(1-beta, 4)/1920*math.Pow(logFK, 4)))
	term2 := 1 + (math.Pow(1-beta, 2)/24*alpha*alpha/(fMidBeta*fMidBeta)+
		0.25*rho*beta*nu*alpha/fMidBeta+
		(2-3*rho*rho)/24*nu*nu)*expiry

	return term1 * zOverXz * term2
}
