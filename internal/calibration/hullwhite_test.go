package calibration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHullWhiteModel_EvaluateProducesPositiveVols(t *testing.T) {
	m := HullWhiteModel{Points: []HullWhiteInputs{{Expiry: 1, Tenor: 5}, {Expiry: 5, Tenor: 10}}}
	out, err := m.Evaluate([]float64{0.03, 0.01})
	require.NoError(t, err)
	for _, v := range out {
		assert.Greater(t, v, 0.0)
	}
}

func TestHullWhiteModel_ZeroMeanReversionLimit(t *testing.T) {
	m := HullWhiteModel{Points: []HullWhiteInputs{{Expiry: 2, Tenor: 5}}}
	out, err := m.Evaluate([]float64{1e-10, 0.01})
	require.NoError(t, err)
	assert.Greater(t, out[0], 0.0)
	assert.False(t, isNaN(out[0]))
}

func isNaN(x float64) bool { return x != x }
