package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/fueleu-go/internal/domain/compliance"
	"github.com/andrescamacho/fueleu-go/internal/domain/fuel"
	"github.com/andrescamacho/fueleu-go/internal/domain/pooling"
	"github.com/andrescamacho/fueleu-go/internal/infrastructure/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_DefaultsMatchReferenceConstants(t *testing.T) {
	cfg, err := config.LoadConfig(writeConfig(t, "logging:\n  level: debug\n"))

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, compliance.DefaultTargetIntensity, cfg.Regulation.TargetIntensity)
	assert.Equal(t, "aggregate", cfg.Pooling.Strategy)
	assert.Len(t, cfg.Regulation.Fuels, 4)

	table, err := cfg.Regulation.ToFactorTable()
	require.NoError(t, err)
	hfo, ok := table.Lookup(fuel.TypeHFO)
	require.True(t, ok)
	assert.Equal(t, 40000.0, hfo.EnergyDensityMJPerTon)
}

func TestLoadConfig_FileOverridesRegulation(t *testing.T) {
	path := writeConfig(t, `
regulation:
  target_intensity: 85.0
  min_year: 2025
  fuels:
    hfo:
      energy_density: 41000
      emission_factor: 3114000
pooling:
  strategy: greedy
  min_members: 3
`)

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	regulation, err := cfg.Regulation.ToRegulation()
	require.NoError(t, err)
	assert.Equal(t, 85.0, regulation.TargetIntensity())
	assert.Equal(t, 2025, regulation.MinYear())
	assert.Equal(t, compliance.DefaultMJPerTon, regulation.MJPerTon())

	strategy, err := cfg.Pooling.ToStrategy()
	require.NoError(t, err)
	assert.Equal(t, pooling.StrategyGreedy, strategy)
	assert.Equal(t, 3, cfg.Pooling.MinMembers)
}

func TestLoadConfig_EnvironmentWins(t *testing.T) {
	t.Setenv("FUELEU_POOLING_STRATEGY", "greedy")
	t.Setenv("DATABASE_URL", "postgresql://fueleu@db:5432/fueleu")
	t.Setenv("FUELEU_DATABASE_TYPE", "postgres")

	cfg, err := config.LoadConfig(writeConfig(t, "pooling:\n  strategy: aggregate\n"))

	require.NoError(t, err)
	assert.Equal(t, "greedy", cfg.Pooling.Strategy)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "postgresql://fueleu@db:5432/fueleu", cfg.Database.URL)
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown strategy", "pooling:\n  strategy: random\n"},
		{"single member pools", "pooling:\n  min_members: 1\n"},
		{"negative target", "regulation:\n  target_intensity: -1\n"},
		{"file output without path", "logging:\n  output: file\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadConfig(writeConfig(t, tt.body))

			assert.Error(t, err)
		})
	}
}

func TestValidateConfig_ReportsConfigKeys(t *testing.T) {
	cfg := &config.Config{}
	config.SetDefaults(cfg)
	cfg.Pooling.MinMembers = 1
	cfg.Pooling.Strategy = "random"

	err := config.ValidateConfig(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "pooling.min_members: must satisfy min=2 (value: 1)")
	assert.Contains(t, err.Error(), "pooling.strategy: must satisfy pool_strategy (value: random)")
}

func TestValidateConfig_StrategyIsCaseInsensitive(t *testing.T) {
	cfg := &config.Config{}
	config.SetDefaults(cfg)
	cfg.Pooling.Strategy = "Greedy"

	require.NoError(t, config.ValidateConfig(cfg))
}
