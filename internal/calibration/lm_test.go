package calibration

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quadraticModel is a trivial one-parameter model used to exercise the LM
// driver's convergence machinery without the cost of a full pricer.
type quadraticModel struct{ targets []float64 }

func (q quadraticModel) NumParams() int { return 1 }
func (q quadraticModel) Constraints() []Constraint {
	return []Constraint{{Kind: Bounded, Lo: -10, Hi: 10}}
}
func (q quadraticModel) Evaluate(theta []float64) ([]float64, error) {
	out := make([]float64, len(q.targets))
	for i := range out {
		out[i] = theta[0]
	}
	return out, nil
}

func TestCalibrate_ConvergesToConstantTarget(t *testing.T) {
	m := quadraticModel{targets: []float64{3, 3, 3}}
	market := []MarketPoint{{Value: 3, Weight: 1}, {Value: 3, Weight: 1}, {Value: 3, Weight: 1}}

	res, err := Calibrate(m, market, []float64{0})
	require.NoError(t, err)
	assert.InDelta(t, 3.0, res.Params[0], 0.05)
	assert.Less(t, res.ResidualNorm, 0.1)
}

func TestCalibrateWithLogger_LogsWithoutAffectingResult(t *testing.T) {
	m := quadraticModel{targets: []float64{3, 3, 3}}
	market := []MarketPoint{{Value: 3, Weight: 1}, {Value: 3, Weight: 1}, {Value: 3, Weight: 1}}

	log := zerolog.Nop()
	res, err := CalibrateWithLogger(m, market, []float64{0}, &log)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, res.Params[0], 0.05)
}

func TestConstraint_Positive(t *testing.T) {
	c := Constraint{Kind: Positive}
	assert.Greater(t, c.Project(-5), 0.0)
	assert.Equal(t, 5.0, c.Project(5))
}
