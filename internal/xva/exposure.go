package xva

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/aristath/pricer-engine/internal/perrors"
)

// PathSet holds simulated netting-set mark-to-market paths: one row per
// simulated path, one column per time grid point. Values are pre-netting,
// pre-collateral exposures in the netting set's base currency.
type PathSet struct {
	TimeGrid []float64
	Values   [][]float64 // Values[path][timeIndex]
}

func (ps PathSet) validate() error {
	if len(ps.TimeGrid) == 0 {
		return &perrors.InvalidInput{Msg: "exposure path set has empty time grid"}
	}
	for i, row := range ps.Values {
		if len(row) != len(ps.TimeGrid) {
			return &perrors.InvalidInput{Msg: "exposure path set row length mismatches time grid"}
		}
		_ = i
	}
	return nil
}

// ExposureProfile holds per-time-bucket EE, EPE (running average of EE up
// to each bucket) and PFE at a chosen quantile.
type ExposureProfile struct {
	TimeGrid []float64
	EE       []float64
	EPE      []float64
	PFE      []float64
}

// Collateralise applies a netting set's collateral agreement to every
// raw exposure value, with a one-margin-period-of-risk look-back: the
// collateral held at time t is computed from exposure at t-MPoR, per the
// standard semi-analytic VM approximation.
func Collateralise(ps PathSet, agreement *CollateralAgreement) PathSet {
	if agreement == nil {
		return ps
	}
	out := PathSet{TimeGrid: ps.TimeGrid, Values: make([][]float64, len(ps.Values))}
	for p, row := range ps.Values {
		newRow := make([]float64, len(row))
		for i, t := range ps.TimeGrid {
			lookback := t - agreement.MPoR
			collateralAt := lookbackValue(ps.TimeGrid, row, lookback)
			ia := agreement.IndependentAmount
			held := collateralAt - agreement.Threshold - ia
			if held < 0 {
				held = 0
			}
			newRow[i] = row[i] - held
			if newRow[i] < 0 {
				newRow[i] = 0
			}
		}
		out.Values[p] = newRow
	}
	return out
}

func lookbackValue(grid []float64, row []float64, t float64) float64 {
	if t <= grid[0] {
		return row[0]
	}
	idx := sort.SearchFloat64s(grid, t)
	if idx >= len(grid) {
		return row[len(row)-1]
	}
	return row[idx]
}

// ExpectedExposure computes EE(t) = E[max(V(t), 0)] across paths, EPE(t)
// as the running average of EE up to t, and PFE(t) at the given quantile
// (e.g. 0.95), using gonum/stat for the mean and quantile estimators.
func ExpectedExposure(ps PathSet, pfeQuantile float64) (ExposureProfile, error) {
	if err := ps.validate(); err != nil {
		return ExposureProfile{}, err
	}
	nT := len(ps.TimeGrid)
	profile := ExposureProfile{
		TimeGrid: ps.TimeGrid,
		EE:       make([]float64, nT),
		EPE:      make([]float64, nT),
		PFE:      make([]float64, nT),
	}
	column := make([]float64, len(ps.Values))
	runningSum := 0.0
	for ti := 0; ti < nT; ti++ {
		for p, row := range ps.Values {
			v := row[ti]
			if v < 0 {
				v = 0
			}
			column[p] = v
		}
		mean := stat.Mean(column, nil)
		profile.EE[ti] = mean
		runningSum += mean
		profile.EPE[ti] = runningSum / float64(ti+1)

		sorted := append([]float64(nil), column...)
		sort.Float64s(sorted)
		profile.PFE[ti] = stat.Quantile(pfeQuantile, stat.Empirical, sorted, nil)
	}
	return profile, nil
}

// CVA computes unilateral credit valuation adjustment:
//
//	CVA = (1-R) * sum_i D(t_i) * EE(t_i) * [S(t_{i-1}) - S(t_i)]
//
// a discretised form of (1-R) * integral D(t) EE(t) dPD(t), using the
// counterparty's own survival curve.
func CVA(profile ExposureProfile, credit CreditParams, discount func(t float64) float64) float64 {
	total := 0.0
	prevSurvival := 1.0
	for i, t := range profile.TimeGrid {
		s := credit.Survival(t)
		dPD := prevSurvival - s
		total += discount(t) * profile.EE[i] * dPD
		prevSurvival = s
		_ = i
	}
	return credit.LGD() * total
}

// DVA mirrors CVA using the institution's own credit parameters and the
// negative-exposure profile (i.e. exposure from the counterparty's
// perspective, computed by the caller as max(-V(t),0)).
func DVA(negExposureProfile ExposureProfile, ownCredit CreditParams, discount func(t float64) float64) float64 {
	return CVA(negExposureProfile, ownCredit, discount)
}

// FVA computes the funding valuation adjustment from an uncollateralised
// (or partially collateralised) expected exposure profile and a funding
// spread, as sum_i EE(t_i) * spread * dt_i with dt_0 = t_0. No discount
// factor is applied.
func FVA(profile ExposureProfile, fundingSpread float64) float64 {
	total := 0.0
	for i := range profile.TimeGrid {
		var dt float64
		if i == 0 {
			dt = profile.TimeGrid[0]
		} else {
			dt = profile.TimeGrid[i] - profile.TimeGrid[i-1]
		}
		total += profile.EE[i] * fundingSpread * dt
	}
	return total
}
