package paths

import (
	"math"
	"sort"

	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aristath/pricer-engine/internal/perrors"
)

// State is a captured simulation state, sufficient to resume forward
// simulation from step Step without replaying from zero. Minimal carries
// only the observer snapshot (~tens of bytes); Full additionally carries
// the live per-path price vector, at the cost of O(n_paths) storage per
// checkpoint, needed only by strategies that must restart a mid-path
// reverse-mode segment without access to a cheaper re-derivation.
type State struct {
	Step           int
	RNGSeed        uint64
	RNGCalls       uint64
	ObserverSnap   Snapshot
	CurrentPrices  []float64 // nil for Minimal checkpoints
}

// IsFull reports whether this checkpoint captured the full price vector.
func (s State) IsFull() bool { return s.CurrentPrices != nil }

// Store is bounded checkpoint storage keyed by step. On overflow past
// MaxCheckpoints it evicts the smallest stored step, matching the spec's
// eviction policy for the Minimal/Full checkpoint contract.
type Store struct {
	MaxCheckpoints int
	byStep         map[int]State
	steps          []int // kept sorted ascending
}

// NewStore builds an empty checkpoint store bounded to max entries.
func NewStore(max int) *Store {
	if max < 1 {
		max = 1
	}
	return &Store{MaxCheckpoints: max, byStep: make(map[int]State)}
}

// Save inserts a checkpoint, evicting the smallest stored step if the
// store is at capacity and this step is not already present.
func (st *Store) Save(s State) {
	if _, exists := st.byStep[s.Step]; exists {
		st.byStep[s.Step] = s
		return
	}
	if len(st.steps) >= st.MaxCheckpoints {
		smallest := st.steps[0]
		delete(st.byStep, smallest)
		st.steps = st.steps[1:]
	}
	st.byStep[s.Step] = s
	idx := sort.SearchInts(st.steps, s.Step)
	st.steps = append(st.steps, 0)
	copy(st.steps[idx+1:], st.steps[idx:])
	st.steps[idx] = s.Step
}

// NearestBefore returns the greatest stored step <= step, used to restart
// the forward pass during reverse-mode replay.
func (st *Store) NearestBefore(step int) (State, error) {
	best := -1
	for _, s := range st.steps {
		if s <= step && s > best {
			best = s
		}
	}
	if best == -1 {
		return State{}, &perrors.InvalidInput{Msg: "no checkpoint at or before requested step"}
	}
	return st.byStep[best], nil
}

// Len reports the number of checkpoints currently stored.
func (st *Store) Len() int { return len(st.steps) }

// StrategyKind is the closed set of checkpoint placement strategies.
type StrategyKind int

const (
	Uniform StrategyKind = iota
	Logarithmic
	Adaptive
	None
	Binomial
)

// Strategy decides, for a simulation of TotalSteps, at which steps to
// snapshot. Exactly one field group applies per Kind.
type Strategy struct {
	Kind StrategyKind

	Interval   int     // Uniform
	Base       int     // Logarithmic
	MemoryMB   float64 // Adaptive: target memory budget in megabytes
	MemorySlots int    // Binomial
}

// ShouldCheckpoint reports whether step s (0-indexed, out of total steps)
// should be snapshotted under this strategy.
func (st Strategy) ShouldCheckpoint(s, total int) bool {
	switch st.Kind {
	case Uniform:
		interval := st.Interval
		if interval < 1 {
			interval = 1
		}
		return s%interval == 0
	case Logarithmic:
		base := st.Base
		if base < 1 {
			base = 1
		}
		if s == 0 {
			return true
		}
		for k := 0; ; k++ {
			candidate := base * (1 << uint(k))
			if candidate > s {
				return false
			}
			if candidate == s {
				return true
			}
			if candidate >= total {
				return false
			}
		}
	case Adaptive:
		interval := st.adaptiveInterval(total)
		return s%interval == 0
	case None:
		return false
	case Binomial:
		interval := BinomialOptimalInterval(total)
		slots := st.MemorySlots
		if slots < 1 {
			slots = int(math.Sqrt(float64(total)))
			if slots < 1 {
				slots = 1
			}
		}
		if s%interval != 0 {
			return false
		}
		return s/interval < slots
	}
	return false
}

// EstimatedCheckpoints returns how many checkpoints this strategy is
// expected to take across a simulation of the given total steps.
func (st Strategy) EstimatedCheckpoints(total int) int {
	switch st.Kind {
	case Uniform:
		interval := st.Interval
		if interval < 1 {
			interval = 1
		}
		return total/interval + 1
	case Logarithmic:
		base := st.Base
		if base < 1 {
			base = 1
		}
		count := 1
		for k := 0; ; k++ {
			candidate := base * (1 << uint(k))
			if candidate >= total {
				break
			}
			count++
		}
		return count
	case Adaptive:
		interval := st.adaptiveInterval(total)
		return total/interval + 1
	case None:
		return 0
	case Binomial:
		slots := st.MemorySlots
		if slots < 1 {
			slots = int(math.Sqrt(float64(total)))
			if slots < 1 {
				slots = 1
			}
		}
		return slots
	}
	return 0
}

// adaptiveInterval sizes the checkpoint interval so that the expected
// checkpoint count stays within the configured memory budget, sensing
// real available system memory via gopsutil.
func (st Strategy) adaptiveInterval(total int) int {
	const bytesPerCheckpoint = 64.0 // Minimal checkpoint: step+seed+calls+snapshot

	budgetMB := st.MemoryMB
	if budgetMB <= 0 {
		if vm, err := mem.VirtualMemory(); err == nil && vm.Available > 0 {
			budgetMB = float64(vm.Available) / (1024 * 1024) * 0.01 // cap at 1% of available RAM
		} else {
			budgetMB = 16 // conservative fallback when the OS memory query fails
		}
	}
	maxCheckpoints := int(budgetMB * 1024 * 1024 / bytesPerCheckpoint)
	if maxCheckpoints < 1 {
		maxCheckpoints = 1
	}
	interval := total / maxCheckpoints
	if interval < 1 {
		interval = 1
	}
	return interval
}

// BinomialOptimalInterval returns ceil(sqrt(total)), the interval that
// makes Binomial::optimal(n) reverse-mode checkpointing O(sqrt(N)) in
// both memory and replay cost.
func BinomialOptimalInterval(total int) int {
	if total < 1 {
		return 1
	}
	n := int(math.Ceil(math.Sqrt(float64(total))))
	if n < 1 {
		return 1
	}
	return n
}
