package taskmesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/BaSui01/taskmesh/strategy"
	"github.com/BaSui01/taskmesh/testutil"
	"github.com/BaSui01/taskmesh/types"
)

func TestNewDefaultsToHeuristic(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	assert.IsType(t, &strategy.Heuristic{}, s)
}

func TestNewSelectsOptimal(t *testing.T) {
	s, err := New(WithOptimal())
	require.NoError(t, err)
	assert.IsType(t, &strategy.Optimal{}, s)
}

func TestNewByName(t *testing.T) {
	s, err := New(WithStrategy(StrategyOptimal))
	require.NoError(t, err)
	assert.IsType(t, &strategy.Optimal{}, s)

	_, err = New(WithStrategy("bogus"))
	assert.Error(t, err)
}

func TestNewWithTuning(t *testing.T) {
	cfg := *strategy.DefaultHeuristicConfig()
	cfg.TopPartnersPerTask = 1

	s, err := New(
		WithHeuristicConfig(cfg),
		WithLogger(zaptest.NewLogger(t)),
	)
	require.NoError(t, err)

	agent := types.Agent{ID: "a", Abilities: types.Vector{0, 0}, Energy: 10}
	community := types.Community{
		Members: []types.Agent{
			agent,
			{ID: "p1", Abilities: types.Vector{5, 5}, Energy: 10},
			{ID: "p2", Abilities: types.Vector{4, 4}, Energy: 10},
		},
		Tasks: []types.Task{{6, 6}},
	}

	bids := s.PhaseIPreferences(agent, community, testutil.NewRand(1))
	assert.Equal(t, []types.PartnerBid{{TaskIndex: 0, PartnerID: "p1"}}, bids)
}
