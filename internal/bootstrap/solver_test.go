package bootstrap

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolvePillar_NewtonFindsRoot(t *testing.T) {
	// f(df) = df - exp(-0.03*2), df/d(df) = 1.
	target := math.Exp(-0.03 * 2)
	r := Residual{
		F:  func(df float64) float64 { return df - target },
		DF: func(df float64) float64 { return 1 },
	}
	res, err := SolvePillar(r, 0.9, DefaultConfig())
	require.NoError(t, err)
	assert.InDelta(t, target, res.DiscountFactor, 1e-10)
	assert.Equal(t, "newton", res.Method)
}

func TestSolvePillar_FallsBackToBrentWhenJacobianDegenerate(t *testing.T) {
	target := 0.8
	r := Residual{
		F:  func(df float64) float64 { return df - target },
		DF: func(df float64) float64 { return 0 }, // force Newton to fail immediately
	}
	cfg := DefaultConfig()
	res, err := SolvePillar(r, 0.5, cfg)
	require.NoError(t, err)
	assert.Equal(t, "brent", res.Method)
	assert.InDelta(t, target, res.DiscountFactor, 1e-8)
}

func TestSolvePillar_ImplicitFunctionTheoremSensitivity(t *testing.T) {
	// f(df, theta) = df*theta - 1 => df = 1/theta, d(df)/d(theta) = -1/theta^2.
	theta := 2.0
	r := Residual{
		F:      func(df float64) float64 { return df*theta - 1 },
		DF:     func(df float64) float64 { return theta },
		DTheta: func(df float64) float64 { return df },
	}
	res, err := SolvePillar(r, 0.4, DefaultConfig())
	require.NoError(t, err)
	assert.InDelta(t, 1.0/theta, res.DiscountFactor, 1e-9)
	assert.InDelta(t, -1.0/(theta*theta), res.DResultDTheta, 1e-6)
}

func TestSolvePillar_FallbackLogsWithoutAffectingResult(t *testing.T) {
	target := 0.8
	r := Residual{
		F:  func(df float64) float64 { return df - target },
		DF: func(df float64) float64 { return 0 },
	}
	log := zerolog.Nop()
	cfg := DefaultConfig()
	cfg.Logger = &log

	res, err := SolvePillar(r, 0.5, cfg)
	require.NoError(t, err)
	assert.Equal(t, "brent", res.Method)
}
