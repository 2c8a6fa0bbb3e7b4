package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Loader loads configuration with layered precedence: defaults, then an
// optional YAML file, then environment variables.
type Loader struct {
	configPath string
	envPrefix  string
}

// NewLoader creates a loader with no config file and the TASKMESH env
// prefix.
func NewLoader() *Loader {
	return &Loader{envPrefix: "TASKMESH"}
}

// WithConfigPath sets the YAML config file path. An empty path skips the
// file layer.
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithEnvPrefix overrides the environment variable prefix.
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// Load builds the final configuration and validates it.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	if l.configPath != "" {
		data, err := os.ReadFile(l.configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", l.configPath, err)
		}
	}

	if err := l.applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyEnv overrides the settings most commonly flipped per deployment.
func (l *Loader) applyEnv(cfg *Config) error {
	if v := os.Getenv(l.envPrefix + "_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(l.envPrefix + "_STRATEGY"); v != "" {
		cfg.Strategy = v
	}
	if v := os.Getenv(l.envPrefix + "_METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
		cfg.Metrics.Enabled = true
	}
	if v := os.Getenv(l.envPrefix + "_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("parse %s_SEED: %w", l.envPrefix, err)
		}
		cfg.Simulation.Seed = seed
	}
	if v := os.Getenv(l.envPrefix + "_ROUNDS"); v != "" {
		rounds, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse %s_ROUNDS: %w", l.envPrefix, err)
		}
		cfg.Simulation.Rounds = rounds
	}
	return nil
}
