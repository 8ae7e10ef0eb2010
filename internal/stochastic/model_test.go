package stochastic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGBM_ZeroVolIsDeterministicDrift(t *testing.T) {
	m := Model{Kind: KindGBM, GBM: GBMParams{Rate: 0.05, Sigma: 0}}
	s := Single(100)
	next, err := m.EvolveStep(s, 1.0, []float64{0})
	require.NoError(t, err)
	assert.InDelta(t, 100*math.Exp(0.05), next.First, 1e-9)
}

func TestCIR_FloorsAtZero(t *testing.T) {
	m := Model{Kind: KindCIR, CIR: CIRParams{Kappa: 1, Theta: 0.02, Sigma: 0.1, Floor: 1e-6}}
	s := Single(0.0001)
	next, err := m.EvolveStep(s, 0.01, []float64{-100})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, next.First, 1e-6)
}

func TestHeston_BrownianDimIsTwo(t *testing.T) {
	m := Model{Kind: KindHeston}
	assert.Equal(t, 2, m.BrownianDim())
	assert.Equal(t, 2, m.NumFactors())
}

func TestHeston_FellerCondition(t *testing.T) {
	satisfied := Model{Kind: KindHeston, Heston: HestonParams{Kappa: 2, Theta: 0.04, Xi: 0.2}}
	violated := Model{Kind: KindHeston, Heston: HestonParams{Kappa: 0.5, Theta: 0.04, Xi: 1.0}}
	assert.True(t, satisfied.SatisfiesFeller())
	assert.False(t, violated.SatisfiesFeller())
}

func TestHullWhite_MeanReverts(t *testing.T) {
	m := Model{Kind: KindHullWhite, HullWhite: HullWhiteParams{A: 1, Theta: 0.03, Sigma: 0}}
	s := Single(0.10)
	next, err := m.EvolveStep(s, 0.01, []float64{0})
	require.NoError(t, err)
	assert.Less(t, next.First, s.First)
	assert.Greater(t, next.First, 0.03)
}

func TestEvolveStep_InsufficientBrownianIncrements(t *testing.T) {
	m := Model{Kind: KindHeston}
	_, err := m.EvolveStep(TwoFactor(100, 0.04), 0.01, []float64{0.1})
	require.Error(t, err)
}
