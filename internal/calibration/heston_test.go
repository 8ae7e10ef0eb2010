package calibration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHestonCallPrice_ReducesToIntrinsicAtZeroExpiry(t *testing.T) {
	price := hestonCallPrice(100, 90, 0, 1.0, 0.04, 2, 0.04, 0.3, -0.5, 100, 128)
	assert.InDelta(t, 10.0, price, 1e-9)
}

func TestHestonModel_EvaluateMatchesLengths(t *testing.T) {
	m := HestonModel{
		Points: []HestonInputs{
			{Forward: 100, Strike: 100, Expiry: 1, Discount: 0.97},
			{Forward: 100, Strike: 110, Expiry: 1, Discount: 0.97},
		},
	}
	out, err := m.Evaluate([]float64{0.04, 0.04, 2.0, 0.3, -0.5})
	require.NoError(t, err)
	assert.Len(t, out, 2)
	for _, v := range out {
		assert.Greater(t, v, 0.0)
	}
}

func TestHestonModel_FellerPenaltyPushesResidualUp(t *testing.T) {
	points := []HestonInputs{{Forward: 100, Strike: 100, Expiry: 1, Discount: 1}}
	without := HestonModel{Points: points}
	with := HestonModel{Points: points, EnforceFeller: true, FellerPenalty: 1}

	theta := []float64{0.04, 0.01, 0.1, 1.0, -0.5} // violates Feller badly
	a, err := without.Evaluate(theta)
	require.NoError(t, err)
	b, err := with.Evaluate(theta)
	require.NoError(t, err)
	assert.Greater(t, b[0], a[0])
}
