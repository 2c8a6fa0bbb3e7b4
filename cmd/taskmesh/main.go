// taskmesh simulation entry point.
//
// Runs a simulated tournament: a randomly generated community of agents
// plays rounds of task allocation with the configured strategy until
// every task is done or no progress is possible.
//
// Usage:
//
//	taskmesh                          # heuristic strategy, defaults
//	taskmesh -config taskmesh.yaml    # load config file
//	taskmesh -strategy optimal        # matching-based allocation
//	taskmesh -history rounds.db       # record round history to sqlite
//	taskmesh -version                 # show version information
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/BaSui01/taskmesh/config"
	"github.com/BaSui01/taskmesh/internal/metrics"
	"github.com/BaSui01/taskmesh/runner"
	"github.com/BaSui01/taskmesh/strategy"
	"github.com/BaSui01/taskmesh/types"
)

// Version information, injected at build time.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "path to YAML config file")
		strategyArg = flag.String("strategy", "", "allocation strategy: heuristic or optimal")
		members     = flag.Int("members", 10, "number of agents in the community")
		tasks       = flag.Int("tasks", 20, "number of tasks to allocate")
		dims        = flag.Int("dims", 4, "difficulty dimensions per task")
		seed        = flag.Int64("seed", 0, "random seed (0 keeps the configured seed)")
		historyPath = flag.String("history", "", "sqlite file for round history (empty disables)")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("taskmesh %s (built %s, commit %s)\n", Version, BuildTime, GitCommit)
		return
	}

	cfg, err := config.NewLoader().WithConfigPath(*configPath).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *strategyArg != "" {
		cfg.Strategy = *strategyArg
	}
	if *seed != 0 {
		cfg.Simulation.Seed = *seed
	}

	logger, err := buildLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector(cfg.Metrics.Namespace, logger)
		go serveMetrics(cfg.Metrics.Addr, logger)
	}

	strat, err := buildStrategy(cfg, logger, collector)
	if err != nil {
		logger.Fatal("strategy", zap.Error(err))
	}

	run := runner.NewRunner(strat, &cfg.Simulation, logger)
	if *historyPath != "" {
		recorder, err := runner.NewRecorder(*historyPath, logger)
		if err != nil {
			logger.Fatal("history recorder", zap.Error(err))
		}
		defer recorder.Close() //nolint:errcheck
		run = run.WithRecorder(recorder)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	community := randomCommunity(cfg.Simulation.Seed, *members, *tasks, *dims)
	logger.Info("simulation starting",
		zap.String("strategy", cfg.Strategy),
		zap.Int("members", *members),
		zap.Int("tasks", *tasks),
		zap.Int("dims", *dims),
		zap.Int64("seed", cfg.Simulation.Seed),
	)

	start := time.Now()
	results, err := run.Run(ctx, community)
	if err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}

	var completed int
	for _, r := range results {
		completed += len(r.Completed)
	}
	remaining := *tasks - completed
	logger.Info("simulation finished",
		zap.Int("rounds", len(results)),
		zap.Int("completed", completed),
		zap.Int("unallocated", remaining),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// buildLogger constructs a zap logger from the log config.
func buildLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.Encoding = cfg.Encoding
	if cfg.Encoding == "console" {
		zcfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	return zcfg.Build()
}

// buildStrategy wires the configured strategy with logging and metrics.
func buildStrategy(cfg *config.Config, logger *zap.Logger, collector *metrics.Collector) (strategy.Strategy, error) {
	switch cfg.Strategy {
	case "heuristic":
		return strategy.NewHeuristic(&cfg.Heuristic, logger, collector), nil
	case "optimal":
		return strategy.NewOptimal(&cfg.Optimal, logger, collector), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", cfg.Strategy)
	}
}

// serveMetrics exposes the Prometheus endpoint for the lifetime of the
// simulation.
func serveMetrics(addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	logger.Info("metrics endpoint listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Warn("metrics endpoint stopped", zap.Error(err))
	}
}

// randomCommunity generates the simulated community: abilities and
// difficulties uniform in [0, 10), energies in [5, 15).
func randomCommunity(seed int64, members, tasks, dims int) types.Community {
	rng := rand.New(rand.NewSource(seed))
	c := types.Community{
		Members: make([]types.Agent, members),
		Tasks:   make([]types.Task, tasks),
	}
	for i := range c.Members {
		abilities := make(types.Vector, dims)
		for d := range abilities {
			abilities[d] = rng.Float64() * 10
		}
		c.Members[i] = types.Agent{
			ID:        types.AgentID(uuid.NewString()),
			Abilities: abilities,
			Energy:    5 + rng.Float64()*10,
		}
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
