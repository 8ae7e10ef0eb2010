package numeric

import "github.com/aristath/pricer-engine/internal/perrors"

// CubicSpline1D is a natural cubic spline (M0 = M_{n-1} = 0 at the
// boundaries) built via the Thomas algorithm tridiagonal solve over second
// derivatives. Guarantees C2 continuity at interior knots.
type CubicSpline1D struct {
	xs   []float64
	ys   []float64
	a, b float64 // unused placeholders kept out; coefficients live in segs
	segs []segment
}

type segment struct {
	a, b, c, d float64 // a + b*dx + c*dx^2 + d*dx^3, dx = x - x_i
	h          float64 // segment width x_{i+1} - x_i
}

// NewCubicSpline1D builds a natural cubic spline from (xs, ys), auto-sorting
// by x. Requires at least 3 points.
func NewCubicSpline1D(xs, ys []float64) (*CubicSpline1D, error) {
	if len(xs) < 3 {
		return nil, &perrors.InsufficientData{Got: len(xs), Need: 3}
	}
	if len(xs) != len(ys) {
		return nil, &perrors.InvalidInput{Msg: "xs and ys must have equal length"}
	}
	sx, sy, err := sortPairs(xs, ys)
	if err != nil {
		return nil, err
	}

	n := len(sx)
	h := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		h[i] = sx[i+1] - sx[i]
	}

	m := solveNaturalM(sx, sy, h)

	segs := make([]segment, n-1)
	for i := 0; i < n-1; i++ {
		segs[i] = segment{
			a: sy[i],
			c: m[i] / 2,
			d: (m[i+1] - m[i]) / (6 * h[i]),
			b: (sy[i+1]-sy[i])/h[i] - h[i]*(2*m[i]+m[i+1])/6,
			h: h[i],
		}
	}

	return &CubicSpline1D{xs: sx, ys: sy, segs: segs}, nil
}

// solveNaturalM solves the tridiagonal system for second derivatives M with
// natural boundary conditions M[0] = M[n-1] = 0. n-2 rows in general;
// special-cased when n == 3 (a single interior row).
func solveNaturalM(xs, ys, h []float64) []float64 {
	n := len(xs)
	m := make([]float64, n)
	if n == 3 {
		// Single interior equation at i=1:
		// h0*M0 + 2(h0+h1)*M1 + h1*M2 = 6*((y2-y1)/h1 - (y1-y0)/h0)
		// with M0 = M2 = 0.
		rhs := 6 * ((ys[2]-ys[1])/h[1] - (ys[1]-ys[0])/h[0])
		m[1] = rhs / (2 * (h[0] + h[1]))
		return m
	}

	// Interior rows are indices 1..n-2 (n-2 unknowns).
	rows := n - 2
	sub := make([]float64, rows)   // sub-diagonal, sub[0] unused
	diag := make([]float64, rows)  // main diagonal
	super := make([]float64, rows) // super-diagonal, super[rows-1] unused
	rhs := make([]float64, rows)

	for k := 0; k < rows; k++ {
		i := k + 1
		diag[k] = 2 * (h[i-1] + h[i])
		rhs[k] = 6 * ((ys[i+1]-ys[i])/h[i] - (ys[i]-ys[i-1])/h[i-1])
		if k > 0 {
			sub[k] = h[i-1]
		}
		if k < rows-1 {
			super[k] = h[i]
		}
	}

	mi := thomas(sub, diag, super, rhs)
	for k := 0; k < rows; k++ {
		m[k+1] = mi[k]
	}
	return m
}

// thomas solves a tridiagonal system Ax=d in O(n) via forward elimination
// and back substitution.
func thomas(sub, diag, super, d []float64) []float64 {
	n := len(diag)
	cp := make([]float64, n)
	dp := make([]float64, n)
	x := make([]float64, n)

	cp[0] = super[0] / diag[0]
	dp[0] = d[0] / diag[0]
	for i := 1; i < n; i++ {
		denom := diag[i] - sub[i]*cp[i-1]
		if i < n-1 {
			cp[i] = super[i] / denom
		}
		dp[i] = (d[i] - sub[i]*dp[i-1]) / denom
	}

	x[n-1] = dp[n-1]
	for i := n - 2; i >= 0; i-- {
		x[i] = dp[i] - cp[i]*x[i+1]
	}
	return x
}

// Interpolate returns y(x) via the segment's cubic polynomial.
func (s *CubicSpline1D) Interpolate(x float64) (float64, error) {
	if x < s.xs[0] || x > s.xs[len(s.xs)-1] {
		return 0, &perrors.OutOfBounds{X: x, Min: s.xs[0], Max: s.xs[len(s.xs)-1]}
	}
	i := bracket(s.xs, x)
	dx := x - s.xs[i]
	seg := s.segs[i]
	return seg.a + dx*(seg.b+dx*(seg.c+dx*seg.d)), nil
}

// Domain returns the [min, max] pillar range.
func (s *CubicSpline1D) Domain() (float64, float64) {
	return s.xs[0], s.xs[len(s.xs)-1]
}
