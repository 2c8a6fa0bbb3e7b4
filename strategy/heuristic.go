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

// HeuristicConfig holds the tuning knobs of the heuristic ranker. The
// defaults reproduce the reference behavior; the partnership advantage
// and energy-reserve bounds are the knobs worth touching first when a
// community hoards energy or over-partners.
type HeuristicConfig struct {
	// EnergyFloor is the absolute energy below which an agent stops
	// considering partnerships entirely.
	EnergyFloor float64 `yaml:"energy_floor"`

	// EnergyFloorAvgFraction scales the community's average energy into
	// an alternative floor; the larger of the two floors applies.
	EnergyFloorAvgFraction float64 `yaml:"energy_floor_avg_fraction"`

	// ReserveMin and ReserveMax bound the per-call minimum energy
	// reserve derived from the remaining tasks-per-agent ratio.
	ReserveMin float64 `yaml:"reserve_min"`
	ReserveMax float64 `yaml:"reserve_max"`

	// PartnershipAdvantage is the fraction of the caller's solo cost a
	// partnership must stay below to be worth bidding. Partnering must
	// be a clear win, not a marginal one.
	PartnershipAdvantage float64 `yaml:"partnership_advantage"`

	// TopPartnersPerTask caps how many candidate partners are kept per
	// task, providing alternatives without flooding the allocator.
	TopPartnersPerTask int `yaml:"top_partners_per_task"`

	// EfficiencyBase and EfficiencyWeight shape the cheap-is-good term:
	// (EfficiencyBase - cost) * EfficiencyWeight.
	EfficiencyBase   float64 `yaml:"efficiency_base"`
	EfficiencyWeight float64 `yaml:"efficiency_weight"`

	// PartnerEnergyWeight weighs the weaker partner's energy into the
	// phase I priority, favoring healthier partnerships.
	PartnerEnergyWeight float64 `yaml:"partner_energy_weight"`

	// AbilityMatchWeight and StrengthWeight are the phase II suitability
	// weights for ability coverage and community-relative strength.
	AbilityMatchWeight float64 `yaml:"ability_match_weight"`
	StrengthWeight     float64 `yaml:"strength_weight"`

	// MaxEnergyFraction caps any single solo bid at this fraction of the
	// agent's current energy.
	MaxEnergyFraction float64 `yaml:"max_energy_fraction"`

	// ShuffleGroups controls phase II output noise: accepted bids are
	// re-shuffled within contiguous groups of ceil(n/ShuffleGroups), so
	// the coarse ranking survives while exact order does not.
	ShuffleGroups int `yaml:"shuffle_groups"`
}

// DefaultHeuristicConfig returns a HeuristicConfig with the reference
// constants.
func DefaultHeuristicConfig() *HeuristicConfig {
	return &HeuristicConfig{
		EnergyFloor:            2,
		EnergyFloorAvgFraction: 0.25,
		ReserveMin:             1,
		ReserveMax:             3,
		PartnershipAdvantage:   0.6,
		TopPartnersPerTask:     2,
		EfficiencyBase:         10,
		EfficiencyWeight:       2,
		PartnerEnergyWeight:    0.5,
		AbilityMatchWeight:     5,
		StrengthWeight:         3,
		MaxEnergyFraction:      0.7,
		ShuffleGroups:          3,
	}
}

// Heuristic ranks candidate partnerships and solo tasks independently
// per agent using the scoring cost model, subject to energy-reserve
// constraints. It is the cheap, local counterpart to Optimal.
type Heuristic struct {
	config  *HeuristicConfig
	logger  *zap.Logger
	metrics *metrics.Collector
}

// NewHeuristic creates a heuristic strategy. A nil config falls back to
// DefaultHeuristicConfig, a nil logger to a no-op logger; metrics may be
// nil when no collection is wired.
func NewHeuristic(config *HeuristicConfig, logger *zap.Logger, collector *metrics.Collector) *Heuristic {
	if config == nil {
		config = DefaultHeuristicConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Heuristic{
		config:  config,
		logger:  logger.With(zap.String("component", "heuristic_strategy")),
		metrics: collector,
	}
}

// Name implements Named.
func (h *Heuristic) Name() string { return "heuristic" }

// PhaseIPreferences returns the agent's partnership bids: up to
// TopPartnersPerTask candidates per task, flattened and randomly
// permuted. The shuffle intentionally discards the relative ordering of
// equally viable bids; only membership in the list matters downstream.
func (h *Heuristic) PhaseIPreferences(agent types.Agent, community types.Community, rng *rand.Rand) []types.PartnerBid {
	start := time.Now()
	bids := h.phaseI(agent, community, rng)
	h.metrics.RecordComputation(h.Name(), PhaseI, len(bids), time.Since(start))
	return bids
}

func (h *Heuristic) phaseI(agent types.Agent, community types.Community, rng *rand.Rand) []types.PartnerBid {
	if !snapshotReady(community) {
		return nil
	}
	if err := community.Validate(); err != nil {
		h.logger.Warn("invalid community snapshot", zap.String("phase", PhaseI), zap.Error(err))
		h.metrics.RecordSolverFailure(h.Name(), PhaseI, "invalid_snapshot")
		return nil
	}

	avgAbilities, avgEnergy, err := scoring.CommunityStats(community)
	if err != nil {
		h.metrics.RecordSolverFailure(h.Name(), PhaseI, "stats")
		return nil
	}

	// Too depleted to consider partnering at all.
	floor := avgEnergy * h.config.EnergyFloorAvgFraction
	if floor < h.config.EnergyFloor {
		floor = h.config.EnergyFloor
	}
	if agent.Energy < floor {
		h.logger.Debug("agent below partnering floor",
			zap.String("agent", string(agent.ID)),
			zap.Float64("energy", agent.Energy),
			zap.Float64("floor", floor),
		)
		return nil
	}

	tasksPerMember := float64(len(community.Tasks)) / float64(len(community.Members))
	reserve := clamp(tasksPerMember*0.5, h.config.ReserveMin, h.config.ReserveMax)

	type candidate struct {
		partner  types.AgentID
		priority float64
	}

	var bids []types.PartnerBid
	for taskIndex, task := range community.Tasks {
		difficulty := scoring.TaskDifficulty(task, avgAbilities)
		soloCost := scoring.SoloCost(task, agent.Abilities)

		var candidates []candidate
		for _, partner := range community.Members {
			if partner.ID == agent.ID || partner.Incapacitated || partner.Energy < reserve {
				continue
			}

			cost := scoring.PartnershipCost(task, agent.Abilities, partner.Abilities)

			// The bid must leave both sides above the reserve and beat
			// the caller's solo cost by a clear margin. A task the
			// caller can already finish alone (solo cost 0) can never
			// pass the margin check.
			headroom := agent.Energy - reserve
			if partner.Energy-reserve < headroom {
				headroom = partner.Energy - reserve
			}
			if cost >= headroom || cost >= soloCost*h.config.PartnershipAdvantage {
				continue
			}

			minEnergy := agent.Energy
			if partner.Energy < minEnergy {
				minEnergy = partner.Energy
			}
			priority := difficulty +
				(h.config.EfficiencyBase-cost)*h.config.EfficiencyWeight +
				minEnergy*h.config.PartnerEnergyWeight

			candidates = append(candidates, candidate{partner: partner.ID, priority: priority})
		}

		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].priority > candidates[j].priority
		})
		if len(candidates) > h.config.TopPartnersPerTask {
			candidates = candidates[:h.config.TopPartnersPerTask]
		}
		for _, c := range candidates {
			bids = append(bids, types.PartnerBid{TaskIndex: taskIndex, PartnerID: c.partner})
		}
	}

	rng.Shuffle(len(bids), func(i, j int) {
		bids[i], bids[j] = bids[j], bids[i]
	})
	return bids
}

// PhaseIIPreferences returns the tasks the agent volunteers to attempt
// alone, ranked by suitability and greedily budgeted against the agent's
// energy, then noised within contiguous rank groups.
func (h *Heuristic) PhaseIIPreferences(agent types.Agent, community types.Community, rng *rand.Rand) []int {
	start := time.Now()
	picks := h.phaseII(agent, community, rng)
	h.metrics.RecordComputation(h.Name(), PhaseII, len(picks), time.Since(start))
	return picks
}

func (h *Heuristic) phaseII(agent types.Agent, community types.Community, rng *rand.Rand) []int {
	if !snapshotReady(community) {
		return nil
	}
	if err := community.Validate(); err != nil {
		h.logger.Warn("invalid community snapshot", zap.String("phase", PhaseII), zap.Error(err))
		h.metrics.RecordSolverFailure(h.Name(), PhaseII, "invalid_snapshot")
		return nil
	}

	avgAbilities, _, err := scoring.CommunityStats(community)
	if err != nil {
		h.metrics.RecordSolverFailure(h.Name(), PhaseII, "stats")
		return nil
	}

	// Estimated completion rate: tasks per agent, halved. The reserve it
	// implies must be covered twice over before bidding at all.
	completionRate := float64(len(community.Tasks)) / (2 * float64(len(community.Members)))
	reserve := clamp(completionRate, h.config.ReserveMin, h.config.ReserveMax)
	if agent.Energy < reserve*2 {
		return nil
	}
	available := agent.Energy - reserve

	type evaluation struct {
		taskIndex   int
		suitability float64
		cost        float64
	}

	var evals []evaluation
	for i, task := range community.Tasks {
		cost := scoring.SoloCost(task, agent.Abilities)
		suitability := h.suitability(agent, task, avgAbilities, cost)

		if cost < available && suitability > 0 && cost <= agent.Energy*h.config.MaxEnergyFraction {
			evals = append(evals, evaluation{taskIndex: i, suitability: suitability, cost: cost})
		}
	}

	sort.SliceStable(evals, func(i, j int) bool {
		return evals[i].suitability > evals[j].suitability
	})

	var picks []int
	remaining := available
	for _, e := range evals {
		if e.cost > remaining {
			continue
		}
		picks = append(picks, e.taskIndex)
		remaining -= e.cost
		if remaining < reserve {
			break
		}
	}

	h.groupShuffle(picks, rng)
	return picks
}

// suitability scores one solo task for the agent: cheaper tasks, tasks
// whose dimensions the agent already covers, and tasks on which the
// agent beats the community average all score higher.
func (h *Heuristic) suitability(agent types.Agent, task types.Task, avgAbilities types.Vector, cost float64) float64 {
	matched, required := 0, 0
	var surplus float64
	for i := range task {
		if agent.Abilities[i] >= task[i] {
			matched++
		}
		if task[i] > 0 {
			required++
			surplus += agent.Abilities[i] - avgAbilities[i]
		}
	}

	abilityMatch := float64(matched) / float64(len(task))

	// An all-zero task requires nothing, so relative strength is defined
	// as zero rather than dividing by zero.
	var relativeStrength float64
	if required > 0 {
		relativeStrength = surplus / float64(required)
	}

	return (h.config.EfficiencyBase-cost)*h.config.EfficiencyWeight +
		abilityMatch*h.config.AbilityMatchWeight +
		relativeStrength*h.config.StrengthWeight
}

// groupShuffle permutes picks within contiguous groups of
// ceil(n/ShuffleGroups) elements, adding noise without destroying the
// coarse suitability ranking.
func (h *Heuristic) groupShuffle(picks []int, rng *rand.Rand) {
	if len(picks) == 0 || h.config.ShuffleGroups <= 0 {
		return
	}
	groupSize := (len(picks) + h.config.ShuffleGroups - 1) / h.config.ShuffleGroups
	for start := 0; start < len(picks); start += groupSize {
		end := start + groupSize
		if end > len(picks) {
			end = len(picks)
		}
		group := picks[start:end]
		rng.Shuffle(len(group), func(i, j int) {
			group[i], group[j] = group[j], group[i]
		})
	}
}

var _ Strategy = (*Heuristic)(nil)
