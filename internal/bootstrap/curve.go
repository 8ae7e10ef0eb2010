package bootstrap

import (
	"math"
	"sync"

	"github.com/aristath/pricer-engine/internal/curves"
	"github.com/aristath/pricer-engine/internal/perrors"
)

// PillarQuote is a single bootstrapping input: a tenor and the market
// price/rate the resulting curve must reprice exactly at that tenor, plus
// a pricing function closing over the instrument at that pillar.
type PillarQuote struct {
	Tenor       float64
	MarketPrice float64
	// ModelPrice prices the pillar instrument given the discount factor
	// the bootstrapper is solving for at Tenor and the already-solved
	// prefix curve (built from the pillars solved so far).
	ModelPrice func(df float64, prefix *curves.YieldCurve) float64
	// ModelPriceDerivative is d(ModelPrice)/d(df), supplied analytically.
	ModelPriceDerivative func(df float64, prefix *curves.YieldCurve) float64
}

// logDFCache avoids repeated ln() calls across pillars sharing a prefix.
type logDFCache struct {
	mu   sync.Mutex
	vals map[float64]float64
}

func newLogDFCache() *logDFCache { return &logDFCache{vals: make(map[float64]float64)} }

func (c *logDFCache) logDF(tenor, df float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.vals[tenor]; ok {
		return v
	}
	v := math.Log(df)
	c.vals[tenor] = v
	return v
}

// bufferPool recycles residual-vector buffers across pillar solves,
// avoiding a fresh allocation per pillar in the common case of sequential
// single-threaded bootstrapping.
var bufferPool = sync.Pool{New: func() any { return make([]float64, 0, 64) }}

// Result is the bootstrapper's output: the built curve plus per-pillar
// solve diagnostics and implicit-function-theorem sensitivities.
type Result struct {
	Curve   *curves.YieldCurve
	Pillars []SolveResult
}

// Bootstrap builds a yield curve from pillar quotes ordered by maturity:
// for each pillar in order, the previously solved pillars are frozen as
// the curve prefix, and the pillar's discount factor is solved so its
// instrument reprices to MarketPrice.
func Bootstrap(quotes []PillarQuote, cfg Config) (Result, error) {
	if len(quotes) == 0 {
		return Result{}, &perrors.InsufficientData{Got: 0, Need: 1}
	}

	log := componentLogger(cfg)
	log.Info().Int("num_pillars", len(quotes)).Msg("bootstrapping curve")

	cache := newLogDFCache()

	tenors := make([]float64, 0, len(quotes))
	dfs := make([]float64, 0, len(quotes))
	solves := make([]SolveResult, 0, len(quotes))

	buf := bufferPool.Get().([]float64)
	defer func() { bufferPool.Put(buf[:0]) }()

	for _, q := range quotes {
		if q.Tenor <= 0 || q.Tenor > cfg.MaxMaturity {
			return Result{}, &perrors.InvalidMaturity{T: q.Tenor}
		}

		var prefix *curves.YieldCurve
		if len(tenors) > 0 {
			var err error
			prefix, err = curves.NewBootstrappedCurve(tenors, dfs, true)
			if err != nil {
				return Result{}, err
			}
		} else {
			prefix = curves.NewFlatCurve(0)
		}

		residual := Residual{
			F: func(df float64) float64 {
				return q.ModelPrice(df, prefix) - q.MarketPrice
			},
			DF: func(df float64) float64 {
				return q.ModelPriceDerivative(df, prefix)
			},
		}

		initial := 1.0 / (1 + 0.03*q.Tenor)
		res, err := SolvePillar(residual, initial, cfg)
		if err != nil {
			return Result{}, err
		}

		buf = append(buf, res.DiscountFactor-q.MarketPrice)
		cache.logDF(q.Tenor, res.DiscountFactor)
		tenors = append(tenors, q.Tenor)
		dfs = append(dfs, res.DiscountFactor)
		solves = append(solves, res)
	}

	curve, err := curves.NewBootstrappedCurve(tenors, dfs, true)
	if err != nil {
		return Result{}, err
	}
	log.Info().Int("num_pillars", len(solves)).Msg("curve bootstrap complete")
	return Result{Curve: curve, Pillars: solves}, nil
}
