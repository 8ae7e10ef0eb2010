// Package numeric implements the interpolation kernel shared by every curve
// and surface in the pricing engine: 1-D linear, natural cubic spline, and
// 2-D bilinear interpolation.
package numeric

import (
	"sort"

	"github.com/aristath/pricer-engine/internal/perrors"
)

// Linear1D is a 1-D piecewise-linear interpolator built from sorted knots.
// Exact at every pillar; O(log n) query via binary search.
type Linear1D struct {
	xs []float64
	ys []float64
}

// NewLinear1D builds a Linear1D from (xs, ys), auto-sorting by x.
func NewLinear1D(xs, ys []float64) (*Linear1D, error) {
	if len(xs) < 2 {
		return nil, &perrors.InsufficientData{Got: len(xs), Need: 2}
	}
	if len(xs) != len(ys) {
		return nil, &perrors.InvalidInput{Msg: "xs and ys must have equal length"}
	}
	sx, sy, err := sortPairs(xs, ys)
	if err != nil {
		return nil, err
	}
	return &Linear1D{xs: sx, ys: sy}, nil
}

// Interpolate returns y(x). Returns OutOfBounds if x falls outside [xs[0], xs[n-1]].
func (l *Linear1D) Interpolate(x float64) (float64, error) {
	if x < l.xs[0] || x > l.xs[len(l.xs)-1] {
		return 0, &perrors.OutOfBounds{X: x, Min: l.xs[0], Max: l.xs[len(l.xs)-1]}
	}
	i := bracket(l.xs, x)
	x0, x1 := l.xs[i], l.xs[i+1]
	y0, y1 := l.ys[i], l.ys[i+1]
	if x1 == x0 {
		return y0, nil
	}
	return y0 + (y1-y0)*(x-x0)/(x1-x0), nil
}

// Domain returns the [min, max] pillar range.
func (l *Linear1D) Domain() (float64, float64) {
	return l.xs[0], l.xs[len(l.xs)-1]
}

// Knots exposes the sorted pillar coordinates (read-only view).
func (l *Linear1D) Knots() ([]float64, []float64) {
	return l.xs, l.ys
}

// bracket returns the index i such that xs[i] <= x <= xs[i+1], via binary
// search. x is assumed to lie within [xs[0], xs[n-1]].
func bracket(xs []float64, x float64) int {
	// sort.Search finds the smallest index j such that xs[j] > x.
	j := sort.Search(len(xs), func(j int) bool { return xs[j] > x })
	i := j - 1
	if i < 0 {
		i = 0
	}
	if i > len(xs)-2 {
		i = len(xs) - 2
	}
	return i
}

// sortPairs sorts xs (with ys carried along) and validates strict ordering
// after sorting (no duplicate x values).
func sortPairs(xs, ys []float64) ([]float64, []float64, error) {
	n := len(xs)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return xs[idx[a]] < xs[idx[b]] })

	sx := make([]float64, n)
	sy := make([]float64, n)
	for i, j := range idx {
		sx[i] = xs[j]
		sy[i] = ys[j]
	}
	for i := 1; i < n; i++ {
		if sx[i] == sx[i-1] {
			return nil, nil, &perrors.InvalidInput{Msg: "duplicate x values are not allowed"}
		}
	}
	return sx, sy, nil
}
