package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BaSui01/taskmesh/types"
)

func TestSoloCost(t *testing.T) {
	t.Run("unmet difficulty is summed", func(t *testing.T) {
		cost := SoloCost(types.Task{5, 5}, types.Vector{3, 3})
		assert.Equal(t, 4.0, cost)
	})

	t.Run("excess ability contributes nothing", func(t *testing.T) {
		cost := SoloCost(types.Task{2, 5}, types.Vector{9, 3})
		assert.Equal(t, 2.0, cost)
	})

	t.Run("zero when abilities dominate", func(t *testing.T) {
		cost := SoloCost(types.Task{2, 3}, types.Vector{2, 3})
		assert.Zero(t, cost)
	})

	t.Run("zero-dimensional task costs nothing", func(t *testing.T) {
		assert.Zero(t, SoloCost(types.Task{}, types.Vector{}))
	})
}

func TestPartnershipCost(t *testing.T) {
	t.Run("best-of abilities, split evenly", func(t *testing.T) {
		// max([3,3],[2,2]) = [3,3]; unmet = 2+2; split = 2.
		cost := PartnershipCost(types.Task{5, 5}, types.Vector{3, 3}, types.Vector{2, 2})
		assert.Equal(t, 2.0, cost)
	})

	t.Run("complementary specialists cover each other", func(t *testing.T) {
		cost := PartnershipCost(types.Task{4, 4}, types.Vector{4, 0}, types.Vector{0, 4})
		assert.Zero(t, cost)
	})

	t.Run("symmetric in its ability arguments", func(t *testing.T) {
		a := types.Vector{1, 7, 2}
		b := types.Vector{6, 0, 3}
		task := types.Task{5, 5, 5}
		assert.Equal(t, PartnershipCost(task, a, b), PartnershipCost(task, b, a))
	})
}

func TestPairLoss(t *testing.T) {
	t.Run("identical capable pair has no penalties", func(t *testing.T) {
		p := types.Agent{Abilities: types.Vector{5, 5}, Energy: 10}
		// unmet = 0, overdraft = 0, waste = 0, mismatch = 0.
		assert.Zero(t, PairLoss(types.Task{5, 5}, p, p))
	})

	t.Run("overdraft penalty is half the excess over combined energy", func(t *testing.T) {
		p1 := types.Agent{Abilities: types.Vector{5, 5}, Energy: 2}
		p2 := types.Agent{Abilities: types.Vector{5, 5}, Energy: 2}
		// unmet = 10, split = 5, overdraft = (10-4)/2 = 3.
		assert.Equal(t, 8.0, PairLoss(types.Task{10, 10}, p1, p2))
	})

	t.Run("wasted capability is penalized", func(t *testing.T) {
		p1 := types.Agent{Abilities: types.Vector{8, 8}, Energy: 10}
		p2 := types.Agent{Abilities: types.Vector{8, 8}, Energy: 10}
		// unmet = 0, waste = 6+6 = 12, mismatch = 0.
		assert.Equal(t, 12.0, PairLoss(types.Task{2, 2}, p1, p2))
	})

	t.Run("dissimilar specialists cost more than twins", func(t *testing.T) {
		task := types.Task{6, 6}
		twinA := types.Agent{Abilities: types.Vector{3, 3}, Energy: 10}
		twinB := types.Agent{Abilities: types.Vector{3, 3}, Energy: 10}
		specA := types.Agent{Abilities: types.Vector{6, 0}, Energy: 10}
		specB := types.Agent{Abilities: types.Vector{0, 6}, Energy: 10}

		// The specialists fully cover the task yet pay the mismatch
		// penalty; the max() operator alone would have preferred them.
		assert.Greater(t, PairLoss(task, specA, specB), PairLoss(task, twinA, twinB))
	})
}

func TestSoloLoss(t *testing.T) {
	t.Run("no overdraft below current energy", func(t *testing.T) {
		assert.Equal(t, 4.0, SoloLoss(types.Task{5, 5}, types.Vector{3, 3}, 10))
	})

	t.Run("overdraft doubles the uncovered portion", func(t *testing.T) {
		// cost = 10, energy = 3: loss = 10 + 7.
		assert.Equal(t, 17.0, SoloLoss(types.Task{5, 5}, types.Vector{0, 0}, 3))
	})
}
