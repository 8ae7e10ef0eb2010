package numeric

import "github.com/aristath/pricer-engine/internal/perrors"

// Bilinear2D interpolates on a rectangular grid zs[i][j] = z(xs[i], ys[j]).
// Exact at grid corners, linear along grid edges.
type Bilinear2D struct {
	xs, ys []float64
	zs     [][]float64
}

// NewBilinear2D builds a Bilinear2D from strictly ordered xs, ys and a
// zs matrix with len(zs) == len(xs) and each row of length len(ys).
func NewBilinear2D(xs, ys []float64, zs [][]float64) (*Bilinear2D, error) {
	if len(xs) < 2 || len(ys) < 2 {
		need := 2
		got := len(xs)
		if len(ys) < got {
			got = len(ys)
		}
		return nil, &perrors.InsufficientData{Got: got, Need: need}
	}
	if len(zs) != len(xs) {
		return nil, &perrors.InvalidInput{Msg: "zs row count must equal len(xs)"}
	}
	for i, row := range zs {
		if len(row) != len(ys) {
			return nil, &perrors.InvalidInput{Msg: "every zs row must have len(ys) entries"}
		}
		_ = i
	}
	if !strictlyIncreasing(xs) || !strictlyIncreasing(ys) {
		return nil, &perrors.InvalidInput{Msg: "xs and ys must be strictly increasing"}
	}

	cxs := append([]float64(nil), xs...)
	cys := append([]float64(nil), ys...)
	czs := make([][]float64, len(zs))
	for i, row := range zs {
		czs[i] = append([]float64(nil), row...)
	}

	return &Bilinear2D{xs: cxs, ys: cys, zs: czs}, nil
}

func strictlyIncreasing(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return false
		}
	}
	return true
}

// Interpolate returns z(x, y) via the standard 4-corner weighted sum.
func (b *Bilinear2D) Interpolate(x, y float64) (float64, error) {
	if x < b.xs[0] || x > b.xs[len(b.xs)-1] {
		return 0, &perrors.OutOfBounds{X: x, Min: b.xs[0], Max: b.xs[len(b.xs)-1]}
	}
	if y < b.ys[0] || y > b.ys[len(b.ys)-1] {
		return 0, &perrors.OutOfBounds{X: y, Min: b.ys[0], Max: b.ys[len(b.ys)-1]}
	}

	i := bracket(b.xs, x)
	j := bracket(b.ys, y)

	x0, x1 := b.xs[i], b.xs[i+1]
	y0, y1 := b.ys[j], b.ys[j+1]

	u := 0.0
	if x1 != x0 {
		u = (x - x0) / (x1 - x0)
	}
	v := 0.0
	if y1 != y0 {
		v = (y - y0) / (y1 - y0)
	}

	z00 := b.zs[i][j]
	z10 := b.zs[i+1][j]
	z01 := b.zs[i][j+1]
	z11 := b.zs[i+1][j+1]

	return z00*(1-u)*(1-v) + z10*u*(1-v) + z01*(1-u)*v + z11*u*v, nil
}

// InterpolateClamped clamps (x, y) to the grid's closed rectangle before
// interpolating, used by surfaces that want flat extrapolation rather than
// an OutOfBounds error.
func (b *Bilinear2D) InterpolateClamped(x, y float64) (float64, error) {
	cx := clamp(x, b.xs[0], b.xs[len(b.xs)-1])
	cy := clamp(y, b.ys[0], b.ys[len(b.ys)-1])
	return b.Interpolate(cx, cy)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Domain returns the grid's (x range, y range).
func (b *Bilinear2D) Domain() (xMin, xMax, yMin, yMax float64) {
	return b.xs[0], b.xs[len(b.xs)-1], b.ys[0], b.ys[len(b.ys)-1]
}
