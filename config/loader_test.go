package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderDefaults(t *testing.T) {
	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, "heuristic", cfg.Strategy)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Encoding)
	assert.Equal(t, 100, cfg.Simulation.Rounds)
	assert.Equal(t, -10.0, cfg.Simulation.IncapacitationFloor)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, 0.6, cfg.Heuristic.PartnershipAdvantage)
}

func TestLoaderYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskmesh.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
strategy: optimal
heuristic:
  reserve_max: 5
simulation:
  rounds: 7
  seed: 99
`), 0o600))

	cfg, err := NewLoader().WithConfigPath(path).Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "optimal", cfg.Strategy)
	assert.Equal(t, 7, cfg.Simulation.Rounds)
	assert.Equal(t, int64(99), cfg.Simulation.Seed)
	// File layers over defaults instead of replacing them.
	assert.Equal(t, 5.0, cfg.Heuristic.ReserveMax)
	assert.Equal(t, 1.0, cfg.Heuristic.ReserveMin)
	assert.Equal(t, "console", cfg.Log.Encoding)
}

func TestLoaderMissingFile(t *testing.T) {
	_, err := NewLoader().WithConfigPath("/does/not/exist.yaml").Load()
	assert.Error(t, err)
}

func TestLoaderEnvOverrides(t *testing.T) {
	t.Setenv("TM_TEST_LOG_LEVEL", "warn")
	t.Setenv("TM_TEST_STRATEGY", "optimal")
	t.Setenv("TM_TEST_METRICS_ADDR", ":9200")
	t.Setenv("TM_TEST_SEED", "42")
	t.Setenv("TM_TEST_ROUNDS", "5")

	cfg, err := NewLoader().WithEnvPrefix("TM_TEST").Load()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "optimal", cfg.Strategy)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9200", cfg.Metrics.Addr)
	assert.Equal(t, int64(42), cfg.Simulation.Seed)
	assert.Equal(t, 5, cfg.Simulation.Rounds)
}

func TestLoaderBadEnvValue(t *testing.T) {
	t.Setenv("TM_BAD_SEED", "not-a-number")

	_, err := NewLoader().WithEnvPrefix("TM_BAD").Load()
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown strategy", func(c *Config) { c.Strategy = "psychic" }},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }},
		{"inverted reserve bounds", func(c *Config) { c.Heuristic.ReserveMin = 4; c.Heuristic.ReserveMax = 2 }},
		{"non-positive rounds", func(c *Config) { c.Simulation.Rounds = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, DefaultConfig().Validate())
}
