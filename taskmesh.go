// Package taskmesh provides a top-level convenience entry point for
// building preference strategies with minimal boilerplate.
//
// Usage:
//
//	import "github.com/BaSui01/taskmesh"
//
//	s, err := taskmesh.New()                      // heuristic with defaults
//	s, err := taskmesh.New(taskmesh.WithOptimal())
//	s, err := taskmesh.New(taskmesh.WithLogger(logger))
//
// The returned strategy exposes the two per-round entry points:
// PhaseIPreferences (task + partner bids) and PhaseIIPreferences (solo
// task bids). Both always return a usable, possibly empty list.
package taskmesh

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/BaSui01/taskmesh/strategy"
)

const (
	// StrategyHeuristic selects the greedy per-agent preference ranker.
	StrategyHeuristic = "heuristic"
	// StrategyOptimal selects minimum-cost bipartite matching over the
	// partnership-expanded assignment matrix.
	StrategyOptimal = "optimal"
)

type options struct {
	kind      string
	logger    *zap.Logger
	heuristic *strategy.HeuristicConfig
	optimal   *strategy.OptimalConfig
}

// Option configures the strategy created by [New].
type Option func(*options)

// WithHeuristic selects the heuristic strategy (the default).
func WithHeuristic() Option {
	return func(o *options) { o.kind = StrategyHeuristic }
}

// WithOptimal selects the optimal matching strategy.
func WithOptimal() Option {
	return func(o *options) { o.kind = StrategyOptimal }
}

// WithStrategy selects a strategy by name, as found in config files.
func WithStrategy(name string) Option {
	return func(o *options) { o.kind = name }
}

// WithLogger sets a custom zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithHeuristicConfig overrides the heuristic tuning knobs.
func WithHeuristicConfig(cfg strategy.HeuristicConfig) Option {
	return func(o *options) { o.heuristic = &cfg }
}

// WithOptimalConfig overrides the optimal strategy tuning knobs.
func WithOptimalConfig(cfg strategy.OptimalConfig) Option {
	return func(o *options) { o.optimal = &cfg }
}

// New creates a preference strategy. With no options it returns the
// heuristic strategy with default tuning and no logging.
func New(opts ...Option) (strategy.Strategy, error) {
	o := &options{kind: StrategyHeuristic}
	for _, opt := range opts {
		opt(o)
	}

	switch o.kind {
	case StrategyHeuristic:
		return strategy.NewHeuristic(o.heuristic, o.logger, nil), nil
	case StrategyOptimal:
		return strategy.NewOptimal(o.optimal, o.logger, nil), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", o.kind)
	}
}
