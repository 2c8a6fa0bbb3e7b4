// Package config provides the taskmesh application configuration:
// defaults, YAML file loading, and environment variable overrides.
//
// Usage:
//
//	cfg, err := config.NewLoader().
//	    WithConfigPath("taskmesh.yaml").
//	    WithEnvPrefix("TASKMESH").
//	    Load()
//
// Precedence: defaults -> YAML file -> environment variables.
package config

import (
	"fmt"

	"github.com/BaSui01/taskmesh/runner"
	"github.com/BaSui01/taskmesh/strategy"
)

// Config is the complete taskmesh configuration.
type Config struct {
	// Log configures the zap logger built by the binary.
	Log LogConfig `yaml:"log"`

	// Strategy selects the allocation strategy: "heuristic" or "optimal".
	Strategy string `yaml:"strategy"`

	// Heuristic tunes the greedy preference ranker.
	Heuristic strategy.HeuristicConfig `yaml:"heuristic"`

	// Optimal tunes the matching-based strategy.
	Optimal strategy.OptimalConfig `yaml:"optimal"`

	// Simulation configures the round harness.
	Simulation runner.Config `yaml:"simulation"`

	// Metrics configures the Prometheus endpoint.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LogConfig configures logging output.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Encoding is "console" or "json".
	Encoding string `yaml:"encoding"`
}

// MetricsConfig configures the optional Prometheus metrics endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	// Namespace prefixes every metric name.
	Namespace string `yaml:"namespace"`
}

// Validate checks cross-field constraints the YAML schema cannot.
func (c *Config) Validate() error {
	switch c.Strategy {
	case "heuristic", "optimal":
	default:
		return fmt.Errorf("unknown strategy %q (want heuristic or optimal)", c.Strategy)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}

	if c.Heuristic.ReserveMin > c.Heuristic.ReserveMax {
		return fmt.Errorf("heuristic reserve_min %.2f exceeds reserve_max %.2f",
			c.Heuristic.ReserveMin, c.Heuristic.ReserveMax)
	}
	if c.Simulation.Rounds <= 0 {
		return fmt.Errorf("simulation rounds must be positive, got %d", c.Simulation.Rounds)
	}
	return nil
}
