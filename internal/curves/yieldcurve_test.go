package curves

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYieldCurve_DiscountAtZeroIsOne(t *testing.T) {
	curves := map[string]*YieldCurve{}
	curves["flat"] = NewFlatCurve(0.05)
	lin, err := NewLinearCurve([]float64{1, 2}, []float64{0.03, 0.04}, true)
	require.NoError(t, err)
	curves["linear"] = lin
	ll, err := NewLogLinearCurve([]float64{1, 2}, []float64{0.03, 0.04}, true)
	require.NoError(t, err)
	curves["loglinear"] = ll

	for name, c := range curves {
		d, err := c.DiscountFactor(0)
		require.NoError(t, err, name)
		assert.InDelta(t, 1.0, d, 1e-12, name)
	}
}

func TestYieldCurve_NegativeMaturityErrors(t *testing.T) {
	c := NewFlatCurve(0.05)
	_, err := c.DiscountFactor(-1)
	require.Error(t, err)
}

func TestYieldCurve_ZeroRateIdentity(t *testing.T) {
	// zero_rate(t)*t + ln D(t) = 0 for t > 0, to <= 1e-10.
	ll, err := NewLogLinearCurve([]float64{1, 2, 5}, []float64{0.03, 0.04, 0.045}, true)
	require.NoError(t, err)

	for _, t64 := range []float64{0.5, 1, 1.5, 2, 3.5, 5, 7} {
		d, err := ll.DiscountFactor(t64)
		require.NoError(t, err)
		r, err := ll.ZeroRate(t64)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, r*t64+math.Log(d), 1e-10)
	}
}

func TestYieldCurve_S2_LogLinearConstantForward(t *testing.T) {
	// S2: pillars {(1.0, r=0.03), (2.0, r=0.04)} with LogLinear.
	// D(1)=exp(-0.03), D(2)=exp(-0.08).
	ll, err := NewLogLinearCurve([]float64{1.0, 2.0}, []float64{0.03, 0.04}, true)
	require.NoError(t, err)

	d1, err := ll.DiscountFactor(1.0)
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-0.03), d1, 1e-12)

	d2, err := ll.DiscountFactor(2.0)
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-0.08), d2, 1e-12)

	fwdLow, err := ll.ForwardRate(1.0, 1.5)
	require.NoError(t, err)
	fwdHigh, err := ll.ForwardRate(1.5, 2.0)
	require.NoError(t, err)
	assert.InDelta(t, fwdLow, fwdHigh, 1e-8)
}

func TestYieldCurve_LinearExactAtPillars(t *testing.T) {
	lin, err := NewLinearCurve([]float64{1, 2, 5}, []float64{0.03, 0.04, 0.045}, true)
	require.NoError(t, err)

	r, err := lin.ZeroRate(2)
	require.NoError(t, err)
	assert.InDelta(t, 0.04, r, 1e-12)
}

func TestYieldCurve_ExtrapolationFlat(t *testing.T) {
	lin, err := NewLinearCurve([]float64{1, 2}, []float64{0.03, 0.04}, true)
	require.NoError(t, err)

	r, err := lin.ZeroRate(10)
	require.NoError(t, err)
	assert.InDelta(t, 0.04, r, 1e-12)
}

func TestYieldCurve_OutOfBoundsWithoutExtrapolation(t *testing.T) {
	lin, err := NewLinearCurve([]float64{1, 2}, []float64{0.03, 0.04}, false)
	require.NoError(t, err)

	_, err = lin.DiscountFactor(10)
	require.Error(t, err)
}

func TestYieldCurve_Bootstrapped(t *testing.T) {
	c, err := NewBootstrappedCurve([]float64{1, 2}, []float64{math.Exp(-0.03), math.Exp(-0.08)}, true)
	require.NoError(t, err)

	d1, err := c.DiscountFactor(1)
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-0.03), d1, 1e-10)
}

func TestYieldCurve_BumpAtTenor_OnlyNearestPillarMoves(t *testing.T) {
	ll, err := NewLogLinearCurve([]float64{1, 2, 5}, []float64{0.03, 0.04, 0.045}, true)
	require.NoError(t, err)

	bumped := ll.BumpAtTenor(2.0, 0.0001)

	r1, err := ll.ZeroRate(1)
	require.NoError(t, err)
	r1Bumped, err := bumped.ZeroRate(1)
	require.NoError(t, err)
	assert.InDelta(t, r1, r1Bumped, 1e-12)

	r2, err := ll.ZeroRate(2)
	require.NoError(t, err)
	r2Bumped, err := bumped.ZeroRate(2)
	require.NoError(t, err)
	assert.InDelta(t, r2+0.0001, r2Bumped, 1e-10)
}

func TestYieldCurve_BumpAtTenor_FlatBumpsTheWholeCurve(t *testing.T) {
	c := NewFlatCurve(0.03)
	bumped := c.BumpAtTenor(5.0, 0.0001)
	r, err := bumped.ZeroRate(1)
	require.NoError(t, err)
	assert.InDelta(t, 0.0301, r, 1e-12)
}
