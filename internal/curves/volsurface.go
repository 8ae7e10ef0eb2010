package curves

import (
	"github.com/aristath/pricer-engine/internal/numeric"
	"github.com/aristath/pricer-engine/internal/perrors"
)

// SurfaceKind tags the closed set of volatility-surface variants.
type SurfaceKind int

const (
	// SurfaceFlat is a single volatility for every (K,T).
	SurfaceFlat SurfaceKind = iota
	// SurfaceInterpolated is bilinear interpolation on a (K,T) grid.
	SurfaceInterpolated
	// SurfaceCalibrated is backed by a parametric model (Heston/SABR); the
	// calibration package supplies a Volatility func closing over the fitted
	// parameters, so the surface itself stays a thin dispatcher.
	SurfaceCalibrated
)

// ParametricVol evaluates a calibrated model's implied vol at (strike, expiry).
type ParametricVol func(strike, expiry float64) (float64, error)

// VolatilitySurface exposes Volatility(K,T) over a vols[expiry][strike] grid
// or a parametric model. Strike and expiry domains are strictly positive.
type VolatilitySurface struct {
	kind SurfaceKind

	flatVol float64

	grid        *numeric.Bilinear2D // interpolated on (strike, expiry) axes
	extrapolate bool

	parametric ParametricVol
}

// NewFlatSurface builds a surface with a single volatility everywhere.
func NewFlatSurface(vol float64) (*VolatilitySurface, error) {
	if vol <= 0 {
		return nil, &perrors.InvalidVolatility{Sigma: vol}
	}
	return &VolatilitySurface{kind: SurfaceFlat, flatVol: vol}, nil
}

// NewInterpolatedSurface builds a bilinear surface over strikes and expiries.
// vols is laid out vols[expiryIndex][strikeIndex] per the spec; internally it
// is transposed into the (strike, expiry) grid the bilinear kernel expects.
func NewInterpolatedSurface(strikes, expiries []float64, vols [][]float64, extrapolate bool) (*VolatilitySurface, error) {
	if len(strikes) == 0 || anyNonPositive(strikes) {
		return nil, &perrors.InvalidStrike{K: firstNonPositive(strikes)}
	}
	if len(expiries) == 0 || anyNonPositive(expiries) {
		return nil, &perrors.InvalidExpiry{T: firstNonPositive(expiries)}
	}
	if len(vols) != len(expiries) {
		return nil, &perrors.InvalidInput{Msg: "vols row count must equal len(expiries)"}
	}
	zs := make([][]float64, len(strikes))
	for i := range strikes {
		zs[i] = make([]float64, len(expiries))
		for j := range expiries {
			if len(vols[j]) != len(strikes) {
				return nil, &perrors.InvalidInput{Msg: "every vols row must have len(strikes) entries"}
			}
			v := vols[j][i]
			if v <= 0 {
				return nil, &perrors.InvalidVolatility{Sigma: v}
			}
			zs[i][j] = v
		}
	}
	grid, err := numeric.NewBilinear2D(strikes, expiries, zs)
	if err != nil {
		return nil, err
	}
	return &VolatilitySurface{kind: SurfaceInterpolated, grid: grid, extrapolate: extrapolate}, nil
}

// NewCalibratedSurface wraps a parametric model's vol function.
func NewCalibratedSurface(fn ParametricVol) *VolatilitySurface {
	return &VolatilitySurface{kind: SurfaceCalibrated, parametric: fn}
}

// Volatility returns sigma(K,T). Requires K>0, T>0.
func (s *VolatilitySurface) Volatility(strike, expiry float64) (float64, error) {
	if strike <= 0 {
		return 0, &perrors.InvalidStrike{K: strike}
	}
	if expiry <= 0 {
		return 0, &perrors.InvalidExpiry{T: expiry}
	}

	switch s.kind {
	case SurfaceFlat:
		return s.flatVol, nil
	case SurfaceInterpolated:
		if s.extrapolate {
			return s.grid.InterpolateClamped(strike, expiry)
		}
		return s.grid.Interpolate(strike, expiry)
	case SurfaceCalibrated:
		return s.parametric(strike, expiry)
	}
	return 0, &perrors.InvalidInput{Msg: "unknown surface kind"}
}

func anyNonPositive(xs []float64) bool {
	for _, x := range xs {
		if x <= 0 {
			return true
		}
	}
	return false
}

func firstNonPositive(xs []float64) float64 {
	for _, x := range xs {
		if x <= 0 {
			return x
		}
	}
	if len(xs) == 0 {
		return 0
	}
	return xs[0]
}
