package strategy

import (
	"math/rand"

	"github.com/BaSui01/taskmesh/types"
)

// Phase labels used for logging and metrics.
const (
	PhaseI  = "phase_i"
	PhaseII = "phase_ii"
)

// Strategy computes a single agent's preferences from a community
// snapshot. Implementations are pure with respect to the snapshot: no
// input is mutated and no state survives between calls. The supplied
// random source is used strictly for tie-breaking shuffles and must be
// injected by the caller so repeated runs with the same seed reproduce
// the same output.
type Strategy interface {
	// PhaseIPreferences returns the agent's partnership bids: for each,
	// the task index and the proposed partner. The partner is always a
	// currently non-incapacitated agent other than the caller.
	PhaseIPreferences(agent types.Agent, community types.Community, rng *rand.Rand) []types.PartnerBid

	// PhaseIIPreferences returns the indices of tasks the agent
	// volunteers to attempt alone, best first (modulo injected noise).
	PhaseIIPreferences(agent types.Agent, community types.Community, rng *rand.Rand) []int
}

// Name reports a short identifier for logging and metrics labels.
type Named interface {
	Name() string
}

// snapshotReady reports whether a snapshot can produce any preference at
// all. Empty inputs are valid, they just yield empty output.
func snapshotReady(c types.Community) bool {
	return len(c.Members) > 0 && len(c.Tasks) > 0
}

// clamp bounds v into [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
