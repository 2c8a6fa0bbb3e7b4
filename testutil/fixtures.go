// Package testutil provides shared test fixtures: community builders
// and deterministic random sources.
package testutil

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/BaSui01/taskmesh/types"
)

// NewRand returns a deterministic random source for tests.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NewAgent builds an agent with a generated id.
func NewAgent(abilities types.Vector, energy float64) types.Agent {
	return types.Agent{
		ID:        types.AgentID(uuid.NewString()),
		Abilities: abilities,
		Energy:    energy,
	}
}

// NewCommunity builds a snapshot from members and raw task difficulty
// vectors.
func NewCommunity(members []types.Agent, tasks ...types.Vector) types.Community {
	c := types.Community{Members: members, Tasks: make([]types.Task, len(tasks))}
	for i, t := range tasks {
		c.Tasks[i] = types.Task(t)
	}
	return c
}

// RandomCommunity builds a snapshot of the given shape with abilities
// and difficulties drawn uniformly from [0, 10) and energies from
// [5, 15).
func RandomCommunity(rng *rand.Rand, members, tasks, dims int) types.Community {
	c := types.Community{
		Members: make([]types.Agent, members),
		Tasks:   make([]types.Task, tasks),
	}
	for i := range c.Members {
		abilities := make(types.Vector, dims)
		for d := range abilities {
			abilities[d] = rng.Float64() * 10
		}
		c.Members[i] = NewAgent(abilities, 5+rng.Float64()*10)
	}
	for i := range c.Tasks {
		task := make(types.Task, dims)
		for d := range task {
			task[d] = rng.Float64() * 10
		}
		c.Tasks[i] = task
	}
	return c
}
