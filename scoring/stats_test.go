package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/taskmesh/types"
)

func TestCommunityStats(t *testing.T) {
	t.Run("elementwise mean abilities and mean energy", func(t *testing.T) {
		c := types.Community{
			Members: []types.Agent{
				{ID: "a", Abilities: types.Vector{2, 4}, Energy: 10},
				{ID: "b", Abilities: types.Vector{4, 8}, Energy: 0},
			},
		}

		avg, energy, err := CommunityStats(c)
		require.NoError(t, err)
		assert.Equal(t, types.Vector{3, 6}, avg)
		assert.Equal(t, 5.0, energy)
	})

	t.Run("single member community is its own average", func(t *testing.T) {
		c := types.Community{
			Members: []types.Agent{{ID: "a", Abilities: types.Vector{1, 2, 3}, Energy: -4}},
		}

		avg, energy, err := CommunityStats(c)
		require.NoError(t, err)
		assert.Equal(t, types.Vector{1, 2, 3}, avg)
		assert.Equal(t, -4.0, energy)
	})

	t.Run("empty community is a precondition violation", func(t *testing.T) {
		_, _, err := CommunityStats(types.Community{})
		assert.ErrorIs(t, err, types.ErrNoMembers)
	})
}
