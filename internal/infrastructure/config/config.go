package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. FUELEU_SERVER_PORT
const EnvPrefix = "FUELEU"

// Config is the full service configuration
type Config struct {
	Database   DatabaseConfig   `mapstructure:"database"`
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Regulation RegulationConfig `mapstructure:"regulation"`
	Pooling    PoolingConfig    `mapstructure:"pooling"`
}

// envKeys are resolved from the environment even when the config file omits them
var envKeys = []string{
	"database.type", "database.host", "database.port", "database.user", "database.password",
	"database.name", "database.sslmode", "database.path", "database.auto_migrate",
	"server.host", "server.port", "server.pid_file", "server.rate_limit.requests", "server.rate_limit.burst",
	"logging.level", "logging.format", "logging.output", "logging.file_path",
	"metrics.enabled", "metrics.path",
	"regulation.target_intensity", "regulation.mj_per_ton", "regulation.min_year",
	"pooling.strategy", "pooling.min_members",
}

// LoadConfig reads the config file at configPath (or config.yaml on the search
// path), applies FUELEU_* environment overrides, fills defaults and validates.
// A missing config file is not an error.
func LoadConfig(configPath string) (*Config, error) {
	_ = godotenv.Load()

	v := newViper(configPath)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	SetDefaults(cfg)

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadConfigOrDefault falls back to the defaults when loading fails
func LoadConfigOrDefault(configPath string) *Config {
	if cfg, err := LoadConfig(configPath); err == nil {
		return cfg
	}
	cfg := &Config{}
	SetDefaults(cfg)
	return cfg
}

func newViper(configPath string) *viper.Viper {
	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, dir := range []string{".", "./configs", "/etc/fueleu"} {
			v.AddConfigPath(dir)
		}
	}

	// viper cannot tell an unset bool from false, so these defaults live here
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("metrics.enabled", true)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}
	// the bare DATABASE_URL takes precedence over the prefixed variable
	_ = v.BindEnv("database.url", "DATABASE_URL", EnvPrefix+"_DATABASE_URL")

	return v
}
