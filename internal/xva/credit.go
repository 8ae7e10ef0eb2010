package xva

import "math"

// CreditParams holds a counterparty's hazard rate and recovery, from
// which survival/default probabilities and loss-given-default derive.
type CreditParams struct {
	Hazard   float64 // lambda > 0
	Recovery float64 // R in [0,1)
}

// Survival returns S(t) = exp(-lambda*t).
func (c CreditParams) Survival(t float64) float64 { return math.Exp(-c.Hazard * t) }

// DefaultProbability returns 1 - S(t).
func (c CreditParams) DefaultProbability(t float64) float64 { return 1 - c.Survival(t) }

// LGD returns 1 - Recovery.
func (c CreditParams) LGD() float64 { return 1 - c.Recovery }

// CollateralAgreement governs how raw exposure is reduced to
// collateralised exposure.
type CollateralAgreement struct {
	Threshold        float64
	MinimumTransfer  float64
	IndependentAmount float64 // signed
	Currency         string
	MPoR             float64 // margin period of risk, years, > 0
}

// CollateralisedExposure returns max(E - threshold - IA, 0), which is
// non-negative for all E and exactly zero whenever E <= threshold + IA
// (testable invariant 11).
func (c CollateralAgreement) CollateralisedExposure(e float64) float64 {
	return math.Max(e-c.Threshold-c.IndependentAmount, 0)
}
