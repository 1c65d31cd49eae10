package cli

import (
	"fmt"
	"net/url"
	"sort"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/fueleu-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration settings",
		Long: `Inspect fueleu configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (FUELEU_* prefix, DATABASE_URL)
2. Config file (config.yaml)
3. Default values

Examples:
  fueleu config show
  fueleu config show --config ./configs/config.yaml`,
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.LoadConfigOrDefault("")
			}

			fmt.Fprintln(out, "FuelEU Configuration")
			fmt.Fprintln(out, "====================")

			fmt.Fprintln(out, "\nDatabase:")
			fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.URL != "":
				fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "sqlite":
				fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
			default:
				fmt.Fprintf(out, "  Host:             %s\n", cfg.Database.Host)
				fmt.Fprintf(out, "  Port:             %d\n", cfg.Database.Port)
				fmt.Fprintf(out, "  Database:         %s\n", cfg.Database.Name)
				fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
			}
			fmt.Fprintf(out, "  Auto-migrate:     %s\n", yesNo(cfg.Database.AutoMigrate))
			fmt.Fprintf(out, "  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)

			fmt.Fprintln(out, "\nHTTP Server:")
			fmt.Fprintf(out, "  Address:          %s:%d\n", cfg.Server.Host, cfg.Server.Port)
			fmt.Fprintf(out, "  Rate Limit:       %d req/s (burst: %d)\n",
				cfg.Server.RateLimit.Requests, cfg.Server.RateLimit.Burst)
			if cfg.Server.PIDFile != "" {
				fmt.Fprintf(out, "  PID File:         %s\n", cfg.Server.PIDFile)
			}

			fmt.Fprintln(out, "\nRegulation:")
			fmt.Fprintf(out, "  Target Intensity: %v gCO2e/MJ\n", cfg.Regulation.TargetIntensity)
			fmt.Fprintf(out, "  MJ per Tonne:     %v\n", cfg.Regulation.MJPerTon)
			fmt.Fprintf(out, "  Minimum Year:     %d\n", cfg.Regulation.MinYear)
			fuels := make([]string, 0, len(cfg.Regulation.Fuels))
			for name := range cfg.Regulation.Fuels {
				fuels = append(fuels, name)
			}
			sort.Strings(fuels)
			for _, name := range fuels {
				f := cfg.Regulation.Fuels[name]
				fmt.Fprintf(out, "  %-17s %v MJ/t, %v gCO2e/t\n", name+":", f.EnergyDensity, f.EmissionFactor)
			}

			fmt.Fprintln(out, "\nPooling:")
			fmt.Fprintf(out, "  Strategy:         %s\n", cfg.Pooling.Strategy)
			fmt.Fprintf(out, "  Minimum Members:  %d\n", cfg.Pooling.MinMembers)

			fmt.Fprintln(out, "\nMetrics:")
			fmt.Fprintf(out, "  Enabled:          %s\n", yesNo(cfg.Metrics.Enabled))
			fmt.Fprintf(out, "  Path:             %s\n", cfg.Metrics.Path)

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)

			return nil
		},
	}

	return cmd
}

// maskPassword hides the password of a connection URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); !ok {
		return raw
	}
	u.User = url.UserPassword(u.User.Username(), "****")
	return u.String()
}
