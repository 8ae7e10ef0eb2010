// Package paths implements the path observer (running per-path aggregates)
// and the checkpoint manager used by the Monte Carlo engine's reverse-mode
// Greeks to resume a forward simulation mid-path without re-running it
// from step zero.
package paths

import "math"

// ObservationType declares which running aggregates a payoff needs, so the
// engine can skip unused bookkeeping.
type ObservationType struct {
	Terminal bool
	Max      bool
	Min      bool
	Sum      bool
}

// Observer holds the running aggregates for a single simulated path:
// count, sum, min, max and the last-observed value. Updated once per step;
// merged element-wise for parallel folds.
type Observer struct {
	Count int
	Sum   float64
	Min   float64
	Max   float64
	Last  float64
}

// NewObserver returns an empty observer ready for the first Update.
func NewObserver() *Observer {
	return &Observer{Min: math.Inf(1), Max: math.Inf(-1)}
}

// Update folds a newly observed path value into the running aggregates.
func (o *Observer) Update(x float64) {
	o.Count++
	o.Sum += x
	o.Last = x
	if x < o.Min {
		o.Min = x
	}
	if x > o.Max {
		o.Max = x
	}
}

// Average returns the arithmetic mean of all observed values.
func (o *Observer) Average() float64 {
	if o.Count == 0 {
		return 0
	}
	return o.Sum / float64(o.Count)
}

// Snapshot captures the observer's current aggregates for checkpointing.
type Snapshot struct {
	Count int
	Sum   float64
	Min   float64
	Max   float64
	Last  float64
}

// Snapshot returns an immutable copy of the observer's current state.
func (o *Observer) Snapshot() Snapshot {
	return Snapshot{Count: o.Count, Sum: o.Sum, Min: o.Min, Max: o.Max, Last: o.Last}
}

// Restore resets the observer to a previously captured snapshot.
func (o *Observer) Restore(s Snapshot) {
	o.Count, o.Sum, o.Min, o.Max, o.Last = s.Count, s.Sum, s.Min, s.Max, s.Last
}

// Merge combines two observers element-wise, as required for the parallel
// fold across thread-local workspaces to be associative.
func Merge(a, b Observer) Observer {
	return Observer{
		Count: a.Count + b.Count,
		Sum:   a.Sum + b.Sum,
		Min:   math.Min(a.Min, b.Min),
		Max:   math.Max(a.Max, b.Max),
		Last:  b.Last,
	}
}
