package instruments

import (
	"math"

	"github.com/aristath/pricer-engine/internal/curves"
	"github.com/aristath/pricer-engine/internal/perrors"
)

// RateIndex is the closed set of floating-rate indices a FloatingLeg can
// reference.
type RateIndex int

const (
	SOFR RateIndex = iota
	ESTR
	TONAR
	Euribor3M
)

// Direction is PayFixed or ReceiveFixed from the instrument holder's
// perspective.
type Direction int

const (
	PayFixed Direction = iota
	ReceiveFixed
)

// FixedLeg is a fixed-rate leg: a schedule, a fixed rate and a day count.
type FixedLeg struct {
	Schedule Schedule
	Rate     float64
	DayCount DayCount
}

// FloatingLeg is a floating-rate leg: a schedule, a spread over the
// referenced index, and a day count.
type FloatingLeg struct {
	Schedule Schedule
	Spread   float64
	Index    RateIndex
	DayCount DayCount
}

// IRS is a vanilla fixed-for-floating interest rate swap.
type IRS struct {
	Fixed     FixedLeg
	Floating  FloatingLeg
	Notional  float64
	Direction Direction
	Currency  Currency
}

// PVFixedLeg returns the present value of a fixed leg given a notional and
// discount curve: PV = notional * rate * sum_i tau_i * D(t_i).
func PVFixedLeg(leg FixedLeg, notional float64, curve *curves.YieldCurve) (float64, error) {
	if notional <= 0 {
		return 0, &perrors.InvalidNotional{Notional: notional}
	}
	var pv float64
	for _, p := range leg.Schedule.Periods {
		d, err := curve.DiscountFactor(p.End)
		if err != nil {
			return 0, err
		}
		pv += notional * leg.Rate * p.YearFrac * d
	}
	return pv, nil
}

// PVFloatingLeg returns the present value of a floating leg, using the
// simple forward rate implied by consecutive discount factors plus the
// leg's spread: forward_i = (D(t_{i-1})/D(t_i) - 1)/tau_i.
func PVFloatingLeg(leg FloatingLeg, notional float64, curve *curves.YieldCurve) (float64, error) {
	if notional <= 0 {
		return 0, &perrors.InvalidNotional{Notional: notional}
	}
	var pv float64
	prevEnd := 0.0
	for _, p := range leg.Schedule.Periods {
		dPrev, err := curve.DiscountFactor(prevEnd)
		if err != nil {
			return 0, err
		}
		dEnd, err := curve.DiscountFactor(p.End)
		if err != nil {
			return 0, err
		}
		forward := (dPrev/dEnd - 1) / p.YearFrac
		pv += notional * (forward + leg.Spread) * p.YearFrac * dEnd
		prevEnd = p.End
	}
	return pv, nil
}

// Annuity returns sum_i tau_i*D(t_i) across the given schedule, the
// denominator of the par-swap-rate formula and of swaption/cap pricing.
func Annuity(sched Schedule, curve *curves.YieldCurve) (float64, error) {
	var a float64
	for _, p := range sched.Periods {
		d, err := curve.DiscountFactor(p.End)
		if err != nil {
			return 0, err
		}
		a += p.YearFrac * d
	}
	return a, nil
}

// NPV returns the swap's net present value from the direction-holder's
// perspective: PayFixed => PV(floating) - PV(fixed); ReceiveFixed is the
// negation.
func (s IRS) NPV(curve *curves.YieldCurve) (float64, error) {
	pvFixed, err := PVFixedLeg(s.Fixed, s.Notional, curve)
	if err != nil {
		return 0, err
	}
	pvFloat, err := PVFloatingLeg(s.Floating, s.Notional, curve)
	if err != nil {
		return 0, err
	}
	switch s.Direction {
	case PayFixed:
		return pvFloat - pvFixed, nil
	case ReceiveFixed:
		return pvFixed - pvFloat, nil
	}
	return 0, &perrors.InvalidInput{Msg: "unknown swap direction"}
}

// ParSwapRate returns the fixed rate that makes the swap NPV zero at
// inception: the unit-notional PV of the floating leg (including the
// leg's own Spread) divided by the annuity of the fixed schedule.
func ParSwapRate(fixed FixedLeg, floating FloatingLeg, curve *curves.YieldCurve) (float64, error) {
	pvFloat, err := PVFloatingLeg(floating, 1.0, curve)
	if err != nil {
		return 0, err
	}
	annuity, err := Annuity(fixed.Schedule, curve)
	if err != nil {
		return 0, err
	}
	if annuity <= 0 {
		return 0, &perrors.InvalidInput{Msg: "degenerate annuity in par swap rate"}
	}
	return pvFloat / annuity, nil
}

// TenorDelta is the central-difference NPV sensitivity to a 1bp shift of a
// single curve pillar.
type TenorDelta struct {
	Tenor float64
	Delta float64
}

// TenorDeltasBump computes the per-tenor Delta vector and the collapsed-sign
// DV01 by bumping each curve pillar independently (central difference,
// others held fixed) and repricing. DV01 = |sum_i tenor_Delta_i| * (1bp /
// bump), per spec.md's bump-and-revalue DV01 definition — the sign is
// discarded, whether DV01 should be signed is left an open product
// decision.
func TenorDeltasBump(swap IRS, curve *curves.YieldCurve, bump float64) ([]TenorDelta, float64, error) {
	if bump <= 0 {
		return nil, 0, &perrors.InvalidInput{Msg: "tenor bump size must be positive"}
	}
	tenors := curve.PillarTenors()
	if len(tenors) == 0 {
		return nil, 0, &perrors.InvalidInput{Msg: "curve has no pillars to bump for tenor deltas"}
	}

	deltas := make([]TenorDelta, len(tenors))
	var total float64
	for i, tenor := range tenors {
		upNPV, err := swap.NPV(curve.BumpAtTenor(tenor, bump))
		if err != nil {
			return nil, 0, err
		}
		downNPV, err := swap.NPV(curve.BumpAtTenor(tenor, -bump))
		if err != nil {
			return nil, 0, err
		}
		d := (upNPV - downNPV) / (2 * bump)
		deltas[i] = TenorDelta{Tenor: tenor, Delta: d}
		total += d
	}

	dv01 := math.Abs(total) * (0.0001 / bump)
	return deltas, dv01, nil
}
