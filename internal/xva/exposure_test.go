package xva

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatDiscount(rate float64) func(float64) float64 {
	return func(t float64) float64 { return 1.0 / (1.0 + rate*t) }
}

func TestExpectedExposure_AllPositivePathsEqualsMean(t *testing.T) {
	ps := PathSet{
		TimeGrid: []float64{1, 2, 3},
		Values: [][]float64{
			{10, 20, 30},
			{20, 30, 40},
		},
	}
	profile, err := ExpectedExposure(ps, 0.95)
	require.NoError(t, err)
	assert.InDelta(t, 15.0, profile.EE[0], 1e-9)
	assert.InDelta(t, 25.0, profile.EE[1], 1e-9)
	assert.InDelta(t, 35.0, profile.EE[2], 1e-9)
	// EPE at t=2 is the running average of EE(1), EE(2).
	assert.InDelta(t, (15.0+25.0)/2, profile.EPE[1], 1e-9)
}

func TestExpectedExposure_NegativeValuesFlooredToZero(t *testing.T) {
	ps := PathSet{
		TimeGrid: []float64{1},
		Values:   [][]float64{{-50}, {50}},
	}
	profile, err := ExpectedExposure(ps, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, profile.EE[0], 1e-9) // (0 + 50) / 2
}

func TestExpectedExposure_RejectsRaggedRows(t *testing.T) {
	ps := PathSet{TimeGrid: []float64{1, 2}, Values: [][]float64{{1}}}
	_, err := ExpectedExposure(ps, 0.95)
	assert.Error(t, err)
}

func TestCollateralise_ZeroThresholdAndIANeverExceedsRaw(t *testing.T) {
	ps := PathSet{
		TimeGrid: []float64{0.1, 0.2, 0.3},
		Values:   [][]float64{{5, 10, 15}},
	}
	agreement := &CollateralAgreement{MPoR: 0.05}
	out := Collateralise(ps, agreement)
	for i, v := range out.Values[0] {
		assert.LessOrEqual(t, v, ps.Values[0][i])
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestCollateralise_NilAgreementIsIdentity(t *testing.T) {
	ps := PathSet{TimeGrid: []float64{1}, Values: [][]float64{{42}}}
	out := Collateralise(ps, nil)
	assert.Equal(t, ps.Values[0][0], out.Values[0][0])
}

func TestCVA_ZeroHazardMeansZeroCVA(t *testing.T) {
	profile := ExposureProfile{TimeGrid: []float64{1, 2}, EE: []float64{10, 20}}
	credit := CreditParams{Hazard: 0, Recovery: 0.4}
	cva := CVA(profile, credit, flatDiscount(0.02))
	assert.InDelta(t, 0.0, cva, 1e-9)
}

func TestCVA_PositiveForPositiveHazardAndExposure(t *testing.T) {
	profile := ExposureProfile{TimeGrid: []float64{1, 2, 3}, EE: []float64{10, 20, 15}}
	credit := CreditParams{Hazard: 0.03, Recovery: 0.4}
	cva := CVA(profile, credit, flatDiscount(0.01))
	assert.Greater(t, cva, 0.0)
}

func TestFVA_ScalesLinearlyWithSpread(t *testing.T) {
	profile := ExposureProfile{TimeGrid: []float64{1, 2}, EE: []float64{100, 100}}
	fva1 := FVA(profile, 0.01)
	fva2 := FVA(profile, 0.02)
	assert.InDelta(t, fva1*2, fva2, 1e-9)
}
