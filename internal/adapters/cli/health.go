package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewHealthCommand creates the health command
func NewHealthCommand(factory RuntimeFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check database connectivity",
		Long:  `Verify that the configured database is reachable and the handlers are wired.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, factory, func(ctx context.Context, rt *Runtime) error {
				out := cmd.OutOrStdout()
				if rt.DB != nil {
					sqlDB, err := rt.DB.DB()
					if err != nil {
						return fmt.Errorf("failed to get database handle: %w", err)
					}
					pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
					defer cancel()
					if err := sqlDB.PingContext(pingCtx); err != nil {
						return fmt.Errorf("database unreachable: %w", err)
					}
				}

				fmt.Fprintln(out, "✓ Engine is healthy")
				fmt.Fprintf(out, "  Database:          %s\n", rt.Config.Database.Type)
				fmt.Fprintf(out, "  Pool strategy:     %s\n", rt.Policy.PoolStrategy)
				fmt.Fprintf(out, "  Target intensity:  %s gCO2e/MJ\n", formatAmount(rt.Policy.Regulation.TargetIntensity()))
				return nil
			})
		},
	}

	return cmd
}
