package config

import (
	"github.com/BaSui01/taskmesh/runner"
	"github.com/BaSui01/taskmesh/strategy"
)

// DefaultConfig returns the complete default configuration.
func DefaultConfig() *Config {
	return &Config{
		Log:        DefaultLogConfig(),
		Strategy:   "heuristic",
		Heuristic:  *strategy.DefaultHeuristicConfig(),
		Optimal:    *strategy.DefaultOptimalConfig(),
		Simulation: *runner.DefaultConfig(),
		Metrics:    DefaultMetricsConfig(),
	}
}

// DefaultLogConfig returns the default logging configuration.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:    "info",
		Encoding: "console",
	}
}

// DefaultMetricsConfig returns the default metrics configuration.
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled:   false,
		Addr:      ":9091",
		Namespace: "taskmesh",
	}
}
