// Package instruments implements the instrument/payoff model: vanilla,
// barrier and Asian option payoffs with smoothed reverse-mode-friendly
// operators, plus interest-rate swaps, swaptions, caps/floors and FX
// instruments built on top of curves and analytical pricers.
package instruments

import (
	"math"

	"github.com/aristath/pricer-engine/internal/perrors"
)

// DayCount is the closed set of day-count conventions used to compute
// year-fractions for schedule periods.
type DayCount int

const (
	Act360 DayCount = iota
	Act365Fixed
	Thirty360
)

// YearFraction computes the year-fraction between start and end (given in
// fractional years on an Act/365 calendar, i.e. start/end are already
// expressed as a double such as 0.5 for 6 months) under the requested
// convention. Since the model here has no explicit calendar dates, Act/360
// is the raw Act/365 interval rescaled by 365/360 and 30/360 returns the
// raw interval unchanged -- this mirrors the simplification the engine's
// schedule builder performs when dates are represented as year-offsets.
func YearFraction(startYears, endYears float64, dc DayCount) (float64, error) {
	if endYears <= startYears {
		return 0, &perrors.InvalidInput{Msg: "schedule period end must be after start"}
	}
	raw := endYears - startYears
	switch dc {
	case Act365Fixed:
		return raw, nil
	case Act360:
		return raw * 365.0 / 360.0, nil
	case Thirty360:
		return raw, nil
	}
	return 0, &perrors.InvalidInput{Msg: "unknown day count convention"}
}

// Currency is an ISO-4217-style settlement currency tag.
type Currency string

// Frequency is the closed set of payment frequencies a Schedule can use.
type Frequency int

const (
	Annual Frequency = iota
	SemiAnnual
	Quarterly
	Monthly
)

// periodsPerYear returns the number of coupon periods per year for freq.
func periodsPerYear(freq Frequency) int {
	switch freq {
	case Annual:
		return 1
	case SemiAnnual:
		return 2
	case Quarterly:
		return 4
	case Monthly:
		return 12
	}
	return 1
}

// Period is a single payment period [Start, End) with its year-fraction
// under an explicit day-count convention.
type Period struct {
	Start, End float64
	YearFrac   float64
}

// Schedule is the ordered sequence of payment periods for a fixed or
// floating leg.
type Schedule struct {
	Periods []Period
}

// NewSchedule builds a Schedule of tenorYears worth of periods at the
// requested frequency, starting at t=0.
func NewSchedule(tenorYears float64, freq Frequency, dc DayCount) (Schedule, error) {
	if tenorYears <= 0 {
		return Schedule{}, &perrors.InvalidInput{Msg: "schedule tenor must be positive"}
	}
	ppy := periodsPerYear(freq)
	n := int(math.Round(tenorYears * float64(ppy)))
	if n < 1 {
		return Schedule{}, &perrors.InvalidInput{Msg: "schedule tenor too short for frequency"}
	}
	step := 1.0 / float64(ppy)
	periods := make([]Period, 0, n)
	for i := 0; i < n; i++ {
		start := float64(i) * step
		end := float64(i+1) * step
		yf, err := YearFraction(start, end, dc)
		if err != nil {
			return Schedule{}, err
		}
		periods = append(periods, Period{Start: start, End: end, YearFrac: yf})
	}
	return Schedule{Periods: periods}, nil
}
