package instruments

import (
	"math"

	"github.com/aristath/pricer-engine/internal/perrors"
	"github.com/aristath/pricer-engine/internal/pricers"
)

// FxForward is an outright forward on an FX rate, settled in the domestic
// currency.
type FxForward struct {
	Spot               float64
	Expiry             float64
	DomesticRate       float64 // continuously-compounded domestic zero rate
	ForeignRate        float64 // continuously-compounded foreign zero rate
	ForwardRate        float64 // the contracted delivery rate
	Notional           float64
	Domestic, Foreign  Currency
}

// ForwardRateFromSpot returns the covered-interest-parity forward rate
// spot*exp((r_dom-r_for)*T).
func ForwardRateFromSpot(spot, rDom, rFor, expiry float64) float64 {
	return spot * math.Exp((rDom-rFor)*expiry)
}

// NPV values the forward as notional*(F0 - K)*D_dom(T), where F0 is the
// fair forward implied by today's spot and rates, and K is the contracted
// rate.
func (f FxForward) NPV() (float64, error) {
	if f.Expiry <= 0 {
		return 0, &perrors.InvalidExpiry{T: f.Expiry}
	}
	fair := ForwardRateFromSpot(f.Spot, f.DomesticRate, f.ForeignRate, f.Expiry)
	disc := math.Exp(-f.DomesticRate * f.Expiry)
	return f.Notional * (fair - f.ForwardRate) * disc, nil
}

// FxOption is a European option on an FX rate, priced with Garman-Kohlhagen
// (Black-Scholes with the foreign rate standing in for the dividend yield).
type FxOption struct {
	Spot, Strike       float64
	DomesticRate       float64
	ForeignRate        float64
	Sigma              float64
	Expiry             float64
	Notional           float64
	Payoff             pricers.PayoffType
	Domestic, Foreign  Currency
}

// Price values the FX option via Garman-Kohlhagen: Black-Scholes with
// q = ForeignRate.
func (o FxOption) Price() (float64, error) {
	v, err := pricers.BlackScholes(o.Spot, o.Strike, o.DomesticRate, o.ForeignRate, o.Sigma, o.Expiry, o.Payoff)
	if err != nil {
		return 0, err
	}
	return o.Notional * v, nil
}

// VanillaOption is a plain European/American-tagged vanilla option on a
// single underlying, exposed alongside the IRS/swaption/cap family so the
// Instrument tagged variant in variant.go can carry it.
type VanillaOption struct {
	Strike, Expiry, Notional float64
	Payoff                   PayoffType
	Style                    ExerciseStyle
	Currency                 Currency
}

// BarrierDirection mirrors pricers.BarrierDirection for use in the
// Instrument tagged variant, independent of which analytical pricer ends
// up evaluating it.
type BarrierDirection int

const (
	Down BarrierDirection = iota
	Up
)

// BarrierKnock mirrors pricers.BarrierKnock.
type BarrierKnock int

const (
	KnockIn BarrierKnock = iota
	KnockOut
)

// BarrierInstrument is the Instrument-level description of a barrier
// option (as opposed to pricers.BarrierParams, which is the pure pricing
// input to the closed-form formula).
type BarrierInstrument struct {
	Strike, Barrier, Expiry, Notional float64
	Direction                        BarrierDirection
	Knock                            BarrierKnock
	Payoff                           PayoffType
	Epsilon                          float64 // smoothing parameter for MC payoffs; 0 for closed-form
	Currency                         Currency
}

// AsianInstrument is the Instrument-level description of an Asian option.
type AsianInstrument struct {
	Strike, Expiry, Notional float64
	ObservationDates         []float64
	Averaging                Averaging
	Payoff                   PayoffType
	Epsilon                  float64
	Currency                 Currency
}
