package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultMonteCarlo_RespectsMinPathsPerThreadRule(t *testing.T) {
	d := DefaultMonteCarlo()
	assert.GreaterOrEqual(t, d.NumPaths, d.MinPathsPerThread*d.Threads)
}

func TestDefaultCalibration_PositiveBudget(t *testing.T) {
	d := DefaultCalibration()
	assert.Greater(t, d.MaxIterations, 0)
	assert.Greater(t, d.Timeout.Seconds(), 0.0)
}

func TestSolverDefaults_AndBumpDefaults_AreUsable(t *testing.T) {
	sc := SolverDefaults()
	assert.Greater(t, sc.MaxIterations, 0)
	bc := BumpDefaults()
	assert.Greater(t, bc.SpotRelative, 0.0)
}
