package instruments

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/pricer-engine/internal/curves"
)

func TestIRS_S5_ParRateReprices(t *testing.T) {
	// S5: 5y semi-annual USD PayFixed at the par-swap rate computed on a
	// LogLinear curve must reprice to (near) zero NPV.
	tenors := []float64{0.5, 1, 2, 3, 5, 7, 10}
	rates := []float64{0.03, 0.032, 0.034, 0.036, 0.038, 0.039, 0.04}
	curve, err := curves.NewLogLinearCurve(tenors, rates, true)
	require.NoError(t, err)

	fixedSched, err := NewSchedule(5, SemiAnnual, Thirty360)
	require.NoError(t, err)
	floatSched, err := NewSchedule(5, SemiAnnual, Act360)
	require.NoError(t, err)

	fixed := FixedLeg{Schedule: fixedSched, DayCount: Thirty360}
	floating := FloatingLeg{Schedule: floatSched, Index: SOFR, DayCount: Act360}

	par, err := ParSwapRate(fixed, floating, curve)
	require.NoError(t, err)

	fixed.Rate = par
	notional := 10_000_000.0
	swap := IRS{Fixed: fixed, Floating: floating, Notional: notional, Direction: PayFixed}

	npv, err := swap.NPV(curve)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, npv, 1e-6*notional)
}

func TestIRS_PayReceiveAreNegations(t *testing.T) {
	tenors := []float64{1, 2, 5}
	rates := []float64{0.02, 0.025, 0.03}
	curve, err := curves.NewLogLinearCurve(tenors, rates, true)
	require.NoError(t, err)

	fixedSched, err := NewSchedule(5, Annual, Thirty360)
	require.NoError(t, err)
	floatSched, err := NewSchedule(5, Annual, Act360)
	require.NoError(t, err)

	fixed := FixedLeg{Schedule: fixedSched, Rate: 0.025, DayCount: Thirty360}
	floating := FloatingLeg{Schedule: floatSched, Index: SOFR, DayCount: Act360}

	pay := IRS{Fixed: fixed, Floating: floating, Notional: 1_000_000, Direction: PayFixed}
	rec := IRS{Fixed: fixed, Floating: floating, Notional: 1_000_000, Direction: ReceiveFixed}

	npvPay, err := pay.NPV(curve)
	require.NoError(t, err)
	npvRec, err := rec.NPV(curve)
	require.NoError(t, err)

	assert.InDelta(t, -npvPay, npvRec, 1e-9)
}

func TestTenorDeltasBump_SumMatchesParallelShiftNPVChange(t *testing.T) {
	tenors := []float64{1, 2, 5, 10}
	rates := []float64{0.02, 0.025, 0.03, 0.032}
	curve, err := curves.NewLogLinearCurve(tenors, rates, true)
	require.NoError(t, err)

	fixedSched, err := NewSchedule(5, Annual, Thirty360)
	require.NoError(t, err)
	floatSched, err := NewSchedule(5, Annual, Act360)
	require.NoError(t, err)

	fixed := FixedLeg{Schedule: fixedSched, Rate: 0.028, DayCount: Thirty360}
	floating := FloatingLeg{Schedule: floatSched, Index: SOFR, DayCount: Act360}
	swap := IRS{Fixed: fixed, Floating: floating, Notional: 1_000_000, Direction: PayFixed}

	bump := 0.0001
	deltas, dv01, err := TenorDeltasBump(swap, curve, bump)
	require.NoError(t, err)
	require.Len(t, deltas, len(tenors))
	assert.GreaterOrEqual(t, dv01, 0.0)

	var total float64
	for _, d := range deltas {
		total += d.Delta
	}
	assert.InDelta(t, math.Abs(total)*(0.0001/bump), dv01, 1e-9)
}

func TestTenorDeltasBump_RejectsNonPositiveBump(t *testing.T) {
	curve, err := curves.NewLogLinearCurve([]float64{1, 2}, []float64{0.02, 0.02}, true)
	require.NoError(t, err)
	fixedSched, _ := NewSchedule(2, Annual, Thirty360)
	floatSched, _ := NewSchedule(2, Annual, Act360)
	swap := IRS{
		Fixed:    FixedLeg{Schedule: fixedSched, Rate: 0.02, DayCount: Thirty360},
		Floating: FloatingLeg{Schedule: floatSched, Index: SOFR, DayCount: Act360},
		Notional: 1_000_000,
	}
	_, _, err = TenorDeltasBump(swap, curve, 0)
	assert.Error(t, err)
}
