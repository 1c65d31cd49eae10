package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/fueleu-go/internal/adapters/persistence"
	"github.com/andrescamacho/fueleu-go/internal/domain/fuel"
)

// NewSeedCommand creates the seed command
func NewSeedCommand(factory RuntimeFactory) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace all data with the demo fleet",
		Long: `Delete every route, snapshot, bank entry and pool, then load a small demo
fleet of five routes with compliance snapshots and banked deposits.

Requires --force unless the database is a SQLite file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, factory, func(ctx context.Context, rt *Runtime) error {
				if rt.DB == nil {
					return fmt.Errorf("seed requires a database connection")
				}
				if rt.Config.Database.Type != "sqlite" && !force {
					return fmt.Errorf("refusing to replace %s data without --force", rt.Config.Database.Type)
				}

				summary, err := persistence.Seed(ctx, rt.DB, fuel.NewMetricsCalculator(rt.Policy.Fuels), rt.Clock.Now())
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d routes, %d compliance snapshots, %d bank entries\n",
					summary.Routes, summary.Snapshots, summary.Entries)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Allow replacing data in a non-SQLite database")

	return cmd
}
