package montecarlo

import "golang.org/x/exp/rand"

// newSource builds a deterministic, per-path PRNG source for gonum's
// distuv.Normal. Each path derives its own seed (see simulateOnePath) so
// that re-deriving a path's Brownian increments from "seed" alone is
// reproducible without needing a literal skip-ahead primitive on a shared
// stream -- the spec's "seed + skip(rng_calls)" restart contract is
// realised at the per-path granularity the checkpoint/replay machinery
// actually needs.
func newSource(seed uint64) rand.Source {
	return rand.NewSource(seed)
}
