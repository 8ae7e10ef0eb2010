// Package config holds the numerical defaults the core engine needs to
// function standalone, not a file/env configuration loader — that
// remains an external collaborator concern.
package config

import (
	"time"

	"github.com/aristath/pricer-engine/internal/bootstrap"
	"github.com/aristath/pricer-engine/internal/greeks"
)

// SolverDefaults returns the bootstrapper's default Newton/Brent tolerances.
func SolverDefaults() bootstrap.Config { return bootstrap.DefaultConfig() }

// BumpDefaults returns the standard bump-and-revalue sizes: 1% spot,
// 1% vol, 1bp rate, 1-day theta.
func BumpDefaults() greeks.BumpConfig { return greeks.DefaultBumpConfig() }

// MonteCarloDefaults bounds the engine's default path count, per-thread
// floor, thread count and seed absent caller overrides.
type MonteCarloDefaults struct {
	NumPaths          int
	MinPathsPerThread int
	Threads           int
	Seed              uint64
}

// DefaultMonteCarlo returns conservative defaults suitable for an
// interactive pricing call rather than a full risk batch.
func DefaultMonteCarlo() MonteCarloDefaults {
	return MonteCarloDefaults{
		NumPaths:          100_000,
		MinPathsPerThread: 1_000,
		Threads:           4,
		Seed:              42,
	}
}

// CalibrationDefaults bounds the calibration iteration count and wall-clock
// time absent model-specific overrides.
type CalibrationDefaults struct {
	MaxIterations int
	Timeout       time.Duration
}

// DefaultCalibration returns the default iteration/timeout budget for the
// NelderMead-to-BFGS fallback chain.
func DefaultCalibration() CalibrationDefaults {
	return CalibrationDefaults{MaxIterations: 500, Timeout: 30 * time.Second}
}
