package strategy

import (
	"math/rand"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/taskmesh/internal/metrics"
	"github.com/BaSui01/taskmesh/scoring"
	"github.com/BaSui01/taskmesh/types"
)

// OptimalConfig holds the tuning knobs of the optimal assignment
// strategy.
type OptimalConfig struct {
	// WaitEnergyThreshold is the post-task energy a phase II solo bid
	// must preserve; below it the agent prefers to sit the phase out and
	// recover.
	WaitEnergyThreshold float64 `yaml:"wait_energy_threshold"`
}

// DefaultOptimalConfig returns an OptimalConfig with the reference
// constants.
func DefaultOptimalConfig() *OptimalConfig {
	return &OptimalConfig{WaitEnergyThreshold: 0}
}

// Optimal computes globally optimal task assignments via minimum-cost
// bipartite matching and projects the global solution down to one
// agent's local preference output.
//
// The phase I matrix has one row per task and one column per candidate
// assignee, where candidates are every unordered pair of distinct
// eligible agents followed by every individual eligible agent. Matrix
// construction is O(tasks x agents^2) because of the partnership column
// expansion; communities with many agents pay a quadratic blow-up in
// column count, which the metrics collector tracks for capacity
// planning.
type Optimal struct {
	config  *OptimalConfig
	logger  *zap.Logger
	metrics *metrics.Collector
}

// NewOptimal creates an optimal strategy. A nil config falls back to
// DefaultOptimalConfig, a nil logger to a no-op logger; metrics may be
// nil when no collection is wired.
func NewOptimal(config *OptimalConfig, logger *zap.Logger, collector *metrics.Collector) *Optimal {
	if config == nil {
		config = DefaultOptimalConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Optimal{
		config:  config,
		logger:  logger.With(zap.String("component", "optimal_strategy")),
		metrics: collector,
	}
}

// Name implements Named.
func (o *Optimal) Name() string { return "optimal" }

// PhaseIPreferences solves the partnership-expanded assignment problem
// for the whole community and returns the bids involving the calling
// agent. An agent absent from the global solution gets an empty list;
// that is the common steady state, not a fault.
func (o *Optimal) PhaseIPreferences(agent types.Agent, community types.Community, rng *rand.Rand) []types.PartnerBid {
	start := time.Now()

	if !snapshotReady(community) {
		o.metrics.RecordComputation(o.Name(), PhaseI, 0, time.Since(start))
		return nil
	}

	assignments, err := o.SolvePaired(community)
	if err != nil {
		o.logger.Warn("paired assignment solve failed", zap.Error(err))
		o.metrics.RecordSolverFailure(o.Name(), PhaseI, "solve")
		return nil
	}

	var bids []types.PartnerBid
	for _, a := range assignments {
		if partner, ok := a.Partner(agent.ID); ok {
			bids = append(bids, types.PartnerBid{TaskIndex: a.TaskIndex, PartnerID: partner})
		}
	}

	o.metrics.RecordComputation(o.Name(), PhaseI, len(bids), time.Since(start))
	return bids
}

// PhaseIIPreferences solves the solo tasks x agents assignment and
// returns the single task matched to the calling agent, when affording
// it keeps the agent's energy at or above the wait threshold.
func (o *Optimal) PhaseIIPreferences(agent types.Agent, community types.Community, rng *rand.Rand) []int {
	start := time.Now()

	if !snapshotReady(community) || agent.Energy < 0 {
		o.metrics.RecordComputation(o.Name(), PhaseII, 0, time.Since(start))
		return nil
	}

	assignments, err := o.SolveSolo(community)
	if err != nil {
		o.logger.Warn("solo assignment solve failed", zap.Error(err))
		o.metrics.RecordSolverFailure(o.Name(), PhaseII, "solve")
		return nil
	}

	var picks []int
	for _, a := range assignments {
		if !a.Contains(agent.ID) {
			continue
		}
		cost := scoring.SoloCost(community.Tasks[a.TaskIndex], agent.Abilities)
		if agent.Energy-cost >= o.config.WaitEnergyThreshold {
			picks = append(picks, a.TaskIndex)
		}
		break
	}

	o.metrics.RecordComputation(o.Name(), PhaseII, len(picks), time.Since(start))
	return picks
}

// SolvePaired builds the tasks x (pairs + individuals) cost matrix over
// all eligible (non-incapacitated) agents, solves it optimally, and
// decodes the matching into concrete assignments. Partnership cells use
// scoring.PairLoss, individual cells scoring.SoloLoss.
func (o *Optimal) SolvePaired(community types.Community) ([]types.Assignment, error) {
	if err := community.Validate(); err != nil {
		return nil, err
	}

	members := eligibleMembers(community)

	// Column layout: all unordered pairs (i < j) first, then every
	// individual. The pair list doubles as the column-to-agents index
	// map during decode.
	type pair struct{ first, second int }
	var pairs []pair
	for i := 0; i < len(members); i++ {
		for j := i + 1; j < len(members); j++ {
			pairs = append(pairs, pair{first: i, second: j})
		}
	}

	columns := len(pairs) + len(members)
	cost := make([][]float64, len(community.Tasks))
	for t, task := range community.Tasks {
		row := make([]float64, columns)
		for c, p := range pairs {
			row[c] = scoring.PairLoss(task, members[p.first], members[p.second])
		}
		for m, member := range members {
			row[len(pairs)+m] = scoring.SoloLoss(task, member.Abilities, member.Energy)
		}
		cost[t] = row
	}
	o.metrics.RecordMatrixBuild(columns)

	match, total, err := solveAssignment(cost)
	if err != nil {
		return nil, err
	}

	var assignments []types.Assignment
	for taskIndex, col := range match {
		if col < 0 {
			continue
		}
		if col < len(pairs) {
			p := pairs[col]
			assignments = append(assignments, types.Assignment{
				TaskIndex: taskIndex,
				Members:   orderedPair(members[p.first].ID, members[p.second].ID),
				Cost:      cost[taskIndex][col],
			})
		} else {
			member := members[col-len(pairs)]
			assignments = append(assignments, types.Assignment{
				TaskIndex: taskIndex,
				Members:   []types.AgentID{member.ID},
				Cost:      cost[taskIndex][col],
			})
		}
	}

	o.logger.Debug("paired solve complete",
		zap.Int("tasks", len(community.Tasks)),
		zap.Int("columns", columns),
		zap.Float64("total_cost", total),
	)
	return assignments, nil
}

// SolveSolo builds the single-phase tasks x agents matrix with
// scoring.SoloLoss cells and matches every task to one eligible agent
// (or, when tasks outnumber agents, every agent to one task).
func (o *Optimal) SolveSolo(community types.Community) ([]types.Assignment, error) {
	if err := community.Validate(); err != nil {
		return nil, err
	}

	members := eligibleMembers(community)
	if len(members) == 0 {
		return nil, types.ErrNoMembers
	}

	cost := make([][]float64, len(community.Tasks))
	for t, task := range community.Tasks {
		row := make([]float64, len(members))
		for m, member := range members {
			row[m] = scoring.SoloLoss(task, member.Abilities, member.Energy)
		}
		cost[t] = row
	}
	o.metrics.RecordMatrixBuild(len(members))

	match, _, err := solveAssignment(cost)
	if err != nil {
		return nil, err
	}

	var assignments []types.Assignment
	for taskIndex, col := range match {
		if col < 0 {
			continue
		}
		assignments = append(assignments, types.Assignment{
			TaskIndex: taskIndex,
			Members:   []types.AgentID{members[col].ID},
			Cost:      cost[taskIndex][col],
		})
	}
	return assignments, nil
}

// eligibleMembers filters out incapacitated agents; they are never
// offered as assignees in either matrix.
func eligibleMembers(c types.Community) []types.Agent {
	members := make([]types.Agent, 0, len(c.Members))
	for _, m := range c.Members {
		if !m.Incapacitated {
			members = append(members, m)
		}
	}
	return members
}

// orderedPair returns the two ids sorted, so decoded partnerships are
// deterministic regardless of member order.
func orderedPair(a, b types.AgentID) []types.AgentID {
	ids := []types.AgentID{a, b}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

var _ Strategy = (*Optimal)(nil)
