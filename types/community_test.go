package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommunityValidate(t *testing.T) {
	t.Run("consistent snapshot passes", func(t *testing.T) {
		c := Community{
			Members: []Agent{
				{ID: "a", Abilities: Vector{1, 2}},
				{ID: "b", Abilities: Vector{3, 4}},
			},
			Tasks: []Task{{5, 5}},
		}
		assert.NoError(t, c.Validate())
	})

	t.Run("no members", func(t *testing.T) {
		c := Community{Tasks: []Task{{1}}}
		assert.ErrorIs(t, c.Validate(), ErrNoMembers)
	})

	t.Run("member dimension mismatch", func(t *testing.T) {
		c := Community{
			Members: []Agent{
				{ID: "a", Abilities: Vector{1, 2}},
				{ID: "b", Abilities: Vector{3}},
			},
		}
		assert.ErrorIs(t, c.Validate(), ErrDimensionMismatch)
	})

	t.Run("task dimension mismatch", func(t *testing.T) {
		c := Community{
			Members: []Agent{{ID: "a", Abilities: Vector{1, 2}}},
			Tasks:   []Task{{1, 2, 3}},
		}
		assert.ErrorIs(t, c.Validate(), ErrDimensionMismatch)
	})
}

func TestCommunityClone(t *testing.T) {
	c := Community{
		Members: []Agent{{ID: "a", Abilities: Vector{1, 2}, Energy: 5}},
		Tasks:   []Task{{3, 4}},
	}

	clone := c.Clone()
	clone.Members[0].Abilities[0] = 99
	clone.Members[0].Energy = -1
	clone.Tasks[0][1] = 99

	assert.Equal(t, Vector{1, 2}, c.Members[0].Abilities)
	assert.Equal(t, 5.0, c.Members[0].Energy)
	assert.Equal(t, Task{3, 4}, c.Tasks[0])
}

func TestAssignment(t *testing.T) {
	pair := Assignment{TaskIndex: 0, Members: []AgentID{"a", "b"}, Cost: 2}
	solo := Assignment{TaskIndex: 1, Members: []AgentID{"c"}, Cost: 3}

	assert.True(t, pair.Pair())
	assert.False(t, solo.Pair())
	assert.True(t, pair.Contains("a"))
	assert.False(t, pair.Contains("c"))

	partner, ok := pair.Partner("a")
	require.True(t, ok)
	assert.Equal(t, AgentID("b"), partner)

	partner, ok = pair.Partner("b")
	require.True(t, ok)
	assert.Equal(t, AgentID("a"), partner)

	_, ok = solo.Partner("c")
	assert.False(t, ok)

	_, ok = pair.Partner("z")
	assert.False(t, ok)
}

func TestVectorDominates(t *testing.T) {
	assert.True(t, Vector{3, 3}.Dominates(Vector{3, 2}))
	assert.False(t, Vector{3, 1}.Dominates(Vector{3, 2}))
	assert.True(t, Vector{}.Dominates(Vector{}))
}
