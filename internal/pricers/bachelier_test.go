package pricers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBachelier_ParityGrid(t *testing.T) {
	forwards := []float64{-10, 0, 50, 100, 150}
	strikes := []float64{40, 100, 160}
	sigmas := []float64{5, 20, 50}
	expiries := []float64{0.1, 1, 5}

	for _, f := range forwards {
		for _, k := range strikes {
			for _, sigma := range sigmas {
				for _, texp := range expiries {
					c := Bachelier(f, k, sigma, texp, 1.0, Call)
					p := Bachelier(f, k, sigma, texp, 1.0, Put)
					assert.InDelta(t, f-k, c-p, 1e-10)
				}
			}
		}
	}
}

func TestBachelier_ATMCallEqualsPut(t *testing.T) {
	c := Bachelier(100, 100, 20, 1, 1.0, Call)
	p := Bachelier(100, 100, 20, 1, 1.0, Put)
	assert.InDelta(t, c, p, 1e-10)
}

func TestBachelier_NegativeForwardAllowed(t *testing.T) {
	c := Bachelier(-5, 0, 10, 1, 1.0, Call)
	assert.Greater(t, c, 0.0)
}

func TestBachelier_IntrinsicAtZeroExpiry(t *testing.T) {
	c := Bachelier(110, 100, 20, 0, 1.0, Call)
	assert.InDelta(t, 10.0, c, 1e-12)
}
