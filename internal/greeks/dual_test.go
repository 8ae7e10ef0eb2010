package greeks

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDual_ProductRule(t *testing.T) {
	x := Var(3.0)
	y := Const(2.0)
	z := x.Mul(x).Mul(y) // f(x) = 2x^2, f'(x) = 4x
	assert.InDelta(t, 18.0, z.Value, 1e-9)
	assert.InDelta(t, 12.0, z.Deriv, 1e-9)
}

func TestDual_ExpLog(t *testing.T) {
	x := Var(1.5)
	e := x.Exp()
	assert.InDelta(t, math.Exp(1.5), e.Value, 1e-9)
	assert.InDelta(t, math.Exp(1.5), e.Deriv, 1e-9)

	l := Var(2.0).Log()
	assert.InDelta(t, math.Log(2.0), l.Value, 1e-9)
	assert.InDelta(t, 0.5, l.Deriv, 1e-9)
}

func TestDual_NormalCDFMatchesPDFDerivative(t *testing.T) {
	x := Var(0.5)
	n := x.NormalCDF()
	expectedPDF := math.Exp(-0.5*0.25) / math.Sqrt(2*math.Pi)
	assert.InDelta(t, expectedPDF, n.Deriv, 1e-9)
}

func TestResolver_AlwaysFallsBackWhenNoEnzyme(t *testing.T) {
	m := Resolve(Auto, true)
	assert.Equal(t, MethodFallback, m.Kind)

	m2 := Resolve(EnzymeOnly, true)
	assert.Equal(t, MethodError, m2.Kind)

	m3 := Resolve(EnzymeOnly, false)
	assert.Equal(t, MethodFallback, m3.Kind)
}

func TestAccumulator_AverageDividesByCount(t *testing.T) {
	var acc Accumulator
	acc.Add(Bundle{Delta: 1, Gamma: 2})
	acc.Add(Bundle{Delta: 3, Gamma: 4})
	avg := acc.Average()
	assert.InDelta(t, 2.0, avg.Delta, 1e-9)
	assert.InDelta(t, 3.0, avg.Gamma, 1e-9)
}

func TestAccumulator_MergeIsAssociative(t *testing.T) {
	a := Accumulator{Delta: 1, Count: 1}
	b := Accumulator{Delta: 2, Count: 1}
	c := Accumulator{Delta: 3, Count: 1}
	left := Merge(Merge(a, b), c)
	right := Merge(a, Merge(b, c))
	assert.Equal(t, left, right)
}
