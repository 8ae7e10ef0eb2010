package instruments

import (
	"github.com/aristath/pricer-engine/internal/curves"
	"github.com/aristath/pricer-engine/internal/perrors"
	"github.com/aristath/pricer-engine/internal/pricers"
)

// SwaptionType is Payer (right to pay fixed) or Receiver (right to receive
// fixed).
type SwaptionType int

const (
	Payer SwaptionType = iota
	Receiver
)

// ExerciseStyle is the closed set of exercise styles a Swaption can carry;
// only European is priced by this package, matching the spec's closed-form
// scope (Bermudan requires a lattice/MC treatment out of scope for 4.D).
type ExerciseStyle int

const (
	European ExerciseStyle = iota
	Bermudan
	American
	AsianExercise
)

// VolModel selects the forward-rate dynamics used to price the
// European swaption: lognormal (Black-76) or normal (Bachelier).
type VolModel int

const (
	Lognormal VolModel = iota
	Normal
)

// Swaption is a European option on an underlying IRS, priced by applying
// Black-76 or Bachelier to the forward swap rate and discounting by the
// fixed-leg annuity.
type Swaption struct {
	Fixed     FixedLeg
	Floating  FloatingLeg
	Expiry    float64
	Strike    float64
	Type      SwaptionType
	Style     ExerciseStyle
	Model     VolModel
	Sigma     float64
	Notional  float64
}

// Price values the swaption given a discount curve for discounting and
// forward-rate projection. Only European style is supported; any other
// style returns UnsupportedExerciseStyle.
func (s Swaption) Price(curve *curves.YieldCurve) (float64, error) {
	if s.Style != European {
		return 0, &perrors.UnsupportedExerciseStyle{Style: styleName(s.Style)}
	}
	forward, err := ParSwapRate(s.Fixed, s.Floating, curve)
	if err != nil {
		return 0, err
	}
	annuity, err := Annuity(s.Fixed.Schedule, curve)
	if err != nil {
		return 0, err
	}

	payoff := pricers.Call
	if s.Type == Receiver {
		payoff = pricers.Put
	}

	var undiscounted float64
	switch s.Model {
	case Lognormal:
		undiscounted, err = pricers.Black76(forward, s.Strike, s.Sigma, s.Expiry, 1.0, payoff)
		if err != nil {
			return 0, err
		}
	case Normal:
		undiscounted = pricers.Bachelier(forward, s.Strike, s.Sigma, s.Expiry, 1.0, payoff)
	default:
		return 0, &perrors.InvalidInput{Msg: "unknown swaption vol model"}
	}

	return s.Notional * annuity * undiscounted, nil
}

func styleName(s ExerciseStyle) string {
	switch s {
	case European:
		return "European"
	case Bermudan:
		return "Bermudan"
	case American:
		return "American"
	case AsianExercise:
		return "Asian"
	}
	return "unknown"
}

// CapFloor prices a strip of caplets/floorlets, each a Black-76/Bachelier
// option on the corresponding period's simple forward rate.
type CapFloor struct {
	Schedule Schedule
	Strike   float64
	Index    RateIndex
	Model    VolModel
	Sigma    float64
	Notional float64
	IsCap    bool // true: cap (strip of caplets); false: floor
}

// Price values the cap/floor by summing per-period caplets/floorlets, each
// priced on its own simple forward rate and discounted to the period end.
func (c CapFloor) Price(curve *curves.YieldCurve) (float64, error) {
	payoff := pricers.Call
	if !c.IsCap {
		payoff = pricers.Put
	}

	var pv float64
	prevEnd := 0.0
	for _, p := range c.Schedule.Periods {
		dPrev, err := curve.DiscountFactor(prevEnd)
		if err != nil {
			return 0, err
		}
		dEnd, err := curve.DiscountFactor(p.End)
		if err != nil {
			return 0, err
		}
		forward := (dPrev/dEnd - 1) / p.YearFrac

		var undiscounted float64
		switch c.Model {
		case Lognormal:
			undiscounted, err = pricers.Black76(forward, c.Strike, c.Sigma, p.Start, 1.0, payoff)
			if err != nil {
				return 0, err
			}
		case Normal:
			undiscounted = pricers.Bachelier(forward, c.Strike, c.Sigma, p.Start, 1.0, payoff)
		}

		pv += c.Notional * p.YearFrac * dEnd * undiscounted
		prevEnd = p.End
	}
	return pv, nil
}
