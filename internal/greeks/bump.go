package greeks

// BumpConfig holds the shared bump sizes for bump-and-revalue finite
// differences: 1% spot, 1% vol, 1bp rate, 1-day theta, per spec 4.H.
type BumpConfig struct {
	SpotRelative float64
	VolRelative  float64
	RateAbsolute float64
	ThetaDays    float64
}

// DefaultBumpConfig returns the standard bump sizes used throughout the
// engine unless a caller overrides them.
func DefaultBumpConfig() BumpConfig {
	return BumpConfig{
		SpotRelative: 0.01,
		VolRelative:  0.01,
		RateAbsolute: 0.0001,
		ThetaDays:    1.0 / 365.0,
	}
}

// PriceFunc re-prices an instrument given (spot, vol, rate, expiry).
type PriceFunc func(spot, vol, rate, expiry float64) (float64, error)

// BumpAndRevalue computes the full Greeks bundle via bump-and-revalue
// around (spot, vol, rate, expiry), using cfg's bump sizes: delta, gamma,
// vega and rho by central differences, theta by a one-sided step of
// ThetaDays down in expiry. This is the fallback every non-Enzyme resolved Method ultimately
// runs.
func BumpAndRevalue(price PriceFunc, spot, vol, rate, expiry float64, cfg BumpConfig) (Bundle, error) {
	hS := spot * cfg.SpotRelative
	hV := vol * cfg.VolRelative
	hR := cfg.RateAbsolute
	hT := cfg.ThetaDays

	base, err := price(spot, vol, rate, expiry)
	if err != nil {
		return Bundle{}, err
	}

	upS, err := price(spot+hS, vol, rate, expiry)
	if err != nil {
		return Bundle{}, err
	}
	downS, err := price(spot-hS, vol, rate, expiry)
	if err != nil {
		return Bundle{}, err
	}
	delta := (upS - downS) / (2 * hS)
	gamma := (upS - 2*base + downS) / (hS * hS)

	upV, err := price(spot, vol+hV, rate, expiry)
	if err != nil {
		return Bundle{}, err
	}
	downV, err := price(spot, vol-hV, rate, expiry)
	if err != nil {
		return Bundle{}, err
	}
	vega := (upV - downV) / (2 * hV)

	upR, err := price(spot, vol, rate+hR, expiry)
	if err != nil {
		return Bundle{}, err
	}
	downR, err := price(spot, vol, rate-hR, expiry)
	if err != nil {
		return Bundle{}, err
	}
	rho := (upR - downR) / (2 * hR)

	var theta float64
	if expiry > hT {
		downT, err := price(spot, vol, rate, expiry-hT)
		if err != nil {
			return Bundle{}, err
		}
		theta = (downT - base) / hT
	}

	return Bundle{Delta: delta, Gamma: gamma, Vega: vega, Theta: theta, Rho: rho}, nil
}
