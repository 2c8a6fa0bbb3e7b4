// Package runner provides the round harness around the preference
// strategies: it collects every agent's phase I and phase II preferences,
// commits mutually agreed partnerships and the cheapest solo bids,
// deducts energy, removes completed tasks, and flags incapacitated
// agents. The preference core never mutates a snapshot; all bookkeeping
// lives here.
package runner

import (
	"context"
	"fmt"
	"math/rand"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BaSui01/taskmesh/scoring"
	"github.com/BaSui01/taskmesh/strategy"
	"github.com/BaSui01/taskmesh/types"
)

// Config holds the simulation settings.
type Config struct {
	// Rounds caps how many rounds are played before giving up on the
	// remaining tasks.
	Rounds int `yaml:"rounds"`

	// IncapacitationFloor is the energy below which an agent is flagged
	// incapacitated and stops receiving work or partner offers.
	IncapacitationFloor float64 `yaml:"incapacitation_floor"`

	// Seed feeds the per-agent tie-breaking generators, keeping whole
	// tournaments reproducible.
	Seed int64 `yaml:"seed"`
}

// DefaultConfig returns the reference simulation settings.
func DefaultConfig() *Config {
	return &Config{
		Rounds:              100,
		IncapacitationFloor: -10,
		Seed:                1,
	}
}

// RoundResult summarizes one committed round.
type RoundResult struct {
	Round     int                `json:"round"`
	Completed []types.Assignment `json:"completed"`
	Remaining int                `json:"remaining"`
}

// Runner plays rounds of the task allocation game with a single
// strategy shared by every agent.
type Runner struct {
	strategy strategy.Strategy
	config   *Config
	logger   *zap.Logger
	recorder *Recorder
}

// NewRunner creates a runner. A nil config falls back to DefaultConfig,
// a nil logger to a no-op logger.
func NewRunner(s strategy.Strategy, config *Config, logger *zap.Logger) *Runner {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		strategy: s,
		config:   config,
		logger:   logger.With(zap.String("component", "runner")),
	}
}

// WithRecorder attaches an optional round-history recorder.
func (r *Runner) WithRecorder(rec *Recorder) *Runner {
	r.recorder = rec
	return r
}

// Run plays rounds until every task is done, no progress is made, or the
// round budget is exhausted. The input snapshot is cloned; the caller's
// community is never written to.
func (r *Runner) Run(ctx context.Context, community types.Community) ([]RoundResult, error) {
	if err := community.Validate(); err != nil {
		return nil, fmt.Errorf("invalid community: %w", err)
	}

	state := community.Clone()
	var results []RoundResult

	for round := 1; round <= r.config.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		if len(state.Tasks) == 0 {
			break
		}

		completed, err := r.playRound(ctx, round, &state)
		if err != nil {
			return results, err
		}

		result := RoundResult{Round: round, Completed: completed, Remaining: len(state.Tasks)}
		results = append(results, result)

		if r.recorder != nil {
			if err := r.recorder.RecordRound(round, completed); err != nil {
				r.logger.Warn("round history write failed", zap.Int("round", round), zap.Error(err))
			}
		}

		r.logger.Info("round complete",
			zap.Int("round", round),
			zap.Int("completed", len(completed)),
			zap.Int("remaining", len(state.Tasks)),
		)

		// A round with no committed work will never make progress again
		// with an unchanged snapshot.
		if len(completed) == 0 {
			break
		}
	}

	return results, nil
}

// playRound runs both phases against the current snapshot and applies
// the committed assignments to it.
func (r *Runner) playRound(ctx context.Context, round int, state *types.Community) ([]types.Assignment, error) {
	snapshot := *state

	pairBids, err := r.collectPhaseI(ctx, round, snapshot)
	if err != nil {
		return nil, err
	}

	assigned := make(map[types.AgentID]bool)
	taskTaken := make(map[int]bool)
	var committed []types.Assignment

	// Phase I commitment: a partnership forms when both sides bid the
	// same task at each other. First mutual bid wins the task.
	for i, member := range snapshot.Members {
		for _, bid := range pairBids[i] {
			if taskTaken[bid.TaskIndex] || assigned[member.ID] || assigned[bid.PartnerID] {
				continue
			}
			if !reciprocates(pairBids, snapshot, bid.PartnerID, member.ID, bid.TaskIndex) {
				continue
			}
			partner, ok := snapshot.Member(bid.PartnerID)
			if !ok || partner.Incapacitated {
				continue
			}
			cost := scoring.PartnershipCost(snapshot.Tasks[bid.TaskIndex], member.Abilities, partner.Abilities)
			committed = append(committed, types.Assignment{
				TaskIndex: bid.TaskIndex,
				Members:   []types.AgentID{member.ID, partner.ID},
				Cost:      cost,
			})
			taskTaken[bid.TaskIndex] = true
			assigned[member.ID] = true
			assigned[partner.ID] = true
		}
	}

	soloBids, err := r.collectPhaseII(ctx, round, snapshot, assigned)
	if err != nil {
		return nil, err
	}

	// Phase II commitment: each open task goes to its cheapest unassigned
	// volunteer.
	for taskIndex := range snapshot.Tasks {
		if taskTaken[taskIndex] {
			continue
		}
		bestCost := 0.0
		var best *types.Agent
		for i := range snapshot.Members {
			member := &snapshot.Members[i]
			if assigned[member.ID] || !soloBids[i][taskIndex] {
				continue
			}
			cost := scoring.SoloCost(snapshot.Tasks[taskIndex], member.Abilities)
			if best == nil || cost < bestCost {
				best = member
				bestCost = cost
			}
		}
		if best == nil {
			continue
		}
		committed = append(committed, types.Assignment{
			TaskIndex: taskIndex,
			Members:   []types.AgentID{best.ID},
			Cost:      bestCost,
		})
		taskTaken[taskIndex] = true
		assigned[best.ID] = true
	}

	r.apply(state, committed)
	return committed, nil
}

// collectPhaseI gathers partnership bids from every active member in
// parallel. Each agent gets its own deterministic generator: the
// strategies are pure, so fan-out across agents is safe, but a shared
// rand.Rand would race.
func (r *Runner) collectPhaseI(ctx context.Context, round int, snapshot types.Community) ([][]types.PartnerBid, error) {
	bids := make([][]types.PartnerBid, len(snapshot.Members))
	g, ctx := errgroup.WithContext(ctx)
	for i, member := range snapshot.Members {
		if member.Incapacitated {
			continue
		}
		i, member := i, member
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := r.agentRand(round, i, 0)
			bids[i] = r.strategy.PhaseIPreferences(member, snapshot, rng)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return bids, nil
}

// collectPhaseII gathers solo bids from members still unassigned after
// phase I, as per-member task-index sets.
func (r *Runner) collectPhaseII(ctx context.Context, round int, snapshot types.Community, assigned map[types.AgentID]bool) ([]map[int]bool, error) {
	bids := make([]map[int]bool, len(snapshot.Members))
	g, ctx := errgroup.WithContext(ctx)
	for i, member := range snapshot.Members {
		if member.Incapacitated || assigned[member.ID] {
			continue
		}
		i, member := i, member
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := r.agentRand(round, i, 1)
			set := make(map[int]bool)
			for _, taskIndex := range r.strategy.PhaseIIPreferences(member, snapshot, rng) {
				set[taskIndex] = true
			}
			bids[i] = set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return bids, nil
}

// apply deducts energy, removes completed tasks, and flags agents that
// fell below the incapacitation floor.
func (r *Runner) apply(state *types.Community, committed []types.Assignment) {
	removed := make(map[int]bool, len(committed))
	for _, a := range committed {
		removed[a.TaskIndex] = true
		for _, id := range a.Members {
			for i := range state.Members {
				if state.Members[i].ID != id {
					continue
				}
				state.Members[i].Energy -= a.Cost
				if state.Members[i].Energy < r.config.IncapacitationFloor {
					state.Members[i].Incapacitated = true
					r.logger.Info("agent incapacitated",
						zap.String("agent", string(id)),
						zap.Float64("energy", state.Members[i].Energy),
					)
				}
			}
		}
	}

	remaining := state.Tasks[:0]
	for i, task := range state.Tasks {
		if !removed[i] {
			remaining = append(remaining, task)
		}
	}
	state.Tasks = remaining
}

// agentRand derives a per-agent, per-phase generator from the base seed.
func (r *Runner) agentRand(round, memberIndex, phase int) *rand.Rand {
	seed := r.config.Seed
	seed = seed*1000003 + int64(round)
	seed = seed*1000003 + int64(memberIndex)
	seed = seed*1000003 + int64(phase)
	return rand.New(rand.NewSource(seed))
}

// reciprocates reports whether partner also bid taskIndex naming agent.
func reciprocates(bids [][]types.PartnerBid, snapshot types.Community, partner, agent types.AgentID, taskIndex int) bool {
	for i, member := range snapshot.Members {
		if member.ID != partner {
			continue
		}
		for _, b := range bids[i] {
			if b.TaskIndex == taskIndex && b.PartnerID == agent {
				return true
			}
		}
	}
	return false
}
