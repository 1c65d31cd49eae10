package config

import (
	"time"

	"github.com/andrescamacho/fueleu-go/internal/domain/compliance"
	"github.com/andrescamacho/fueleu-go/internal/domain/fuel"
	"github.com/andrescamacho/fueleu-go/internal/domain/pooling"
)

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "fueleu.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "fueleu"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "fueleu"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Server defaults
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Server.RateLimit.Requests == 0 {
		cfg.Server.RateLimit.Requests = 20
	}
	if cfg.Server.RateLimit.Burst == 0 {
		cfg.Server.RateLimit.Burst = 40
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics defaults
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	// Regulation defaults
	if cfg.Regulation.TargetIntensity == 0 {
		cfg.Regulation.TargetIntensity = compliance.DefaultTargetIntensity
	}
	if cfg.Regulation.MJPerTon == 0 {
		cfg.Regulation.MJPerTon = compliance.DefaultMJPerTon
	}
	if cfg.Regulation.MinYear == 0 {
		cfg.Regulation.MinYear = compliance.DefaultMinYear
	}
	if len(cfg.Regulation.Fuels) == 0 {
		cfg.Regulation.Fuels = defaultFuels()
	}

	// Pooling defaults
	if cfg.Pooling.Strategy == "" {
		cfg.Pooling.Strategy = pooling.StrategyAggregate.String()
	}
	if cfg.Pooling.MinMembers == 0 {
		cfg.Pooling.MinMembers = pooling.DefaultMinMembers
	}
}

func defaultFuels() map[string]FuelFactorConfig {
	table := fuel.DefaultFactorTable()
	fuels := make(map[string]FuelFactorConfig)
	for _, t := range table.Types() {
		f, _ := table.Lookup(t)
		fuels[t.String()] = FuelFactorConfig{
			EnergyDensity:  f.EnergyDensityMJPerTon,
			EmissionFactor: f.EmissionFactorGPerTon,
		}
	}
	return fuels
}
