package config

// LoggingConfig configures the zerolog logger shared by the CLI, the mediator
// middleware and the HTTP server
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
	Output string `mapstructure:"output" validate:"required,oneof=stdout stderr file"`

	// Appended to when Output is "file"
	FilePath string `mapstructure:"file_path" validate:"required_if=Output file"`

	// Adds file:line to every event
	IncludeCaller bool `mapstructure:"include_caller"`
}

// MetricsConfig configures the Prometheus registry and its scrape endpoint
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"omitempty,startswith=/"`
}
