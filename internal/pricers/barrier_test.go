package pricers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBarrierOption_S4_InOutParity(t *testing.T) {
	// S4: S=100, K=100, H=90, r=0.05, q=0, sigma=0.20, T=1 (down barrier).
	base := BarrierParams{
		Spot: 100, Strike: 100, Barrier: 90,
		Rate: 0.05, Dividend: 0, Sigma: 0.20, Expiry: 1,
		Direction: Down, Payoff: Call,
	}

	di := base
	di.Knock = In
	ki, err := BarrierOption(di)
	require.NoError(t, err)

	do := base
	do.Knock = Out
	ko, err := BarrierOption(do)
	require.NoError(t, err)

	vanilla, err := BlackScholes(100, 100, 0.05, 0, 0.20, 1, Call)
	require.NoError(t, err)

	assert.InDelta(t, vanilla, ki+ko, 1e-6)
	assert.InDelta(t, 10.4506, vanilla, 1e-3)
}

func TestBarrierOption_AlreadyBreached(t *testing.T) {
	p := BarrierParams{
		Spot: 85, Strike: 100, Barrier: 90,
		Rate: 0.05, Dividend: 0, Sigma: 0.2, Expiry: 1,
		Direction: Down, Knock: In, Payoff: Call,
	}
	ki, err := BarrierOption(p)
	require.NoError(t, err)
	vanilla, err := BlackScholes(85, 100, 0.05, 0, 0.2, 1, Call)
	require.NoError(t, err)
	assert.InDelta(t, vanilla, ki, 1e-12)

	p.Knock = Out
	ko, err := BarrierOption(p)
	require.NoError(t, err)
	assert.InDelta(t, 0, ko, 1e-12)
}

func TestBarrierOption_InvalidStrike(t *testing.T) {
	p := BarrierParams{Spot: 100, Strike: -1, Barrier: 90, Sigma: 0.2, Expiry: 1}
	_, err := BarrierOption(p)
	require.Error(t, err)
}
