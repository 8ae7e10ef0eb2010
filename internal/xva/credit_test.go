package xva

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreditParams_SurvivalDecaysFromOne(t *testing.T) {
	c := CreditParams{Hazard: 0.02, Recovery: 0.4}
	assert.InDelta(t, 1.0, c.Survival(0), 1e-12)
	assert.Less(t, c.Survival(5), c.Survival(1))
	assert.InDelta(t, 1-c.Survival(3), c.DefaultProbability(3), 1e-12)
}

func TestCreditParams_LGD(t *testing.T) {
	c := CreditParams{Recovery: 0.4}
	assert.InDelta(t, 0.6, c.LGD(), 1e-12)
}

// TestCollateralisedExposure_NonNegativity is the literal invariant 11
// check: CE(E) >= 0 for all E, and CE(E) = 0 whenever E <= threshold + IA.
func TestCollateralisedExposure_NonNegativity(t *testing.T) {
	agreement := CollateralAgreement{Threshold: 10, IndependentAmount: 2, MPoR: 10.0 / 365}

	for _, e := range []float64{-100, -1, 0, 5, 11.9999, 12, 12.0001, 50, 1000} {
		ce := agreement.CollateralisedExposure(e)
		assert.GreaterOrEqual(t, ce, 0.0)
		if e <= agreement.Threshold+agreement.IndependentAmount {
			assert.Equal(t, 0.0, ce)
		}
	}
}
