package scoring

import (
	"math"

	"github.com/BaSui01/taskmesh/types"
)

// SoloCost returns the energy a single agent must spend to complete the
// task alone: unmet difficulty summed across dimensions. Excess ability
// on a dimension contributes nothing, so the result is never negative
// and is zero exactly when the abilities dominate the task.
func SoloCost(task types.Task, abilities types.Vector) float64 {
	var cost float64
	for i := range task {
		if d := task[i] - abilities[i]; d > 0 {
			cost += d
		}
	}
	return cost
}

// PartnershipCost returns the per-agent energy cost of two agents
// completing the task together. A partnership applies the better of the
// two abilities on each dimension and splits the remaining unmet cost
// evenly, so the result is symmetric in its ability arguments and never
// exceeds either agent's solo cost.
func PartnershipCost(task types.Task, a1, a2 types.Vector) float64 {
	var cost float64
	for i := range task {
		if d := task[i] - math.Max(a1[i], a2[i]); d > 0 {
			cost += d
		}
	}
	return cost / 2
}

// PairLoss is the partnership objective the optimal solver minimizes. It
// extends PartnershipCost with three additive penalties:
//
//   - overdraft: half of whatever the pair's combined unmet cost exceeds
//     their combined energy, modeling the risk of finishing in the red;
//   - waste: how much the pair's best-of abilities overshoot the task
//     per dimension, discouraging overqualified pairings;
//   - mismatch: the absolute per-dimension gap between the two agents'
//     abilities, so pairing a strong specialist with a weak one is not
//     laundered by the max() operator.
func PairLoss(task types.Task, p1, p2 types.Agent) float64 {
	var unmet, waste, mismatch float64
	for i := range task {
		best := math.Max(p1.Abilities[i], p2.Abilities[i])
		if d := task[i] - best; d > 0 {
			unmet += d
		} else {
			waste += -d
		}
		mismatch += math.Abs(p1.Abilities[i] - p2.Abilities[i])
	}
	loss := unmet / 2
	if over := unmet - p1.Energy - p2.Energy; over > 0 {
		loss += over / 2
	}
	return loss + waste + mismatch
}

// SoloLoss is the individual objective the optimal solver minimizes:
// the solo cost plus a penalty for whatever portion of it would overdraw
// the agent's current energy.
func SoloLoss(task types.Task, abilities types.Vector, energy float64) float64 {
	cost := SoloCost(task, abilities)
	if over := cost - energy; over > 0 {
		cost += over
	}
	return cost
}
