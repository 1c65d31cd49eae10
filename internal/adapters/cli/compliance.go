package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	complianceCommands "github.com/andrescamacho/fueleu-go/internal/application/compliance/commands"
	complianceQueries "github.com/andrescamacho/fueleu-go/internal/application/compliance/queries"
)

// NewComplianceCommand creates the compliance command with subcommands
func NewComplianceCommand(factory RuntimeFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compliance",
		Short: "Compute and inspect compliance balances",
		Long: `Compute a ship-year's compliance balance (CB) from its GHG intensity and fuel
consumption, and resolve the adjusted CB after banking and pooling.

Examples:
  fueleu compliance compute --ship R001 --year 2024 --intensity 80 --fuel 100
  fueleu compliance adjusted --ship R001 --year 2024
  fueleu compliance list --year 2024`,
	}

	cmd.AddCommand(newComplianceComputeCommand(factory))
	cmd.AddCommand(newComplianceAdjustedCommand(factory))
	cmd.AddCommand(newComplianceListCommand(factory))

	return cmd
}

func newComplianceComputeCommand(factory RuntimeFactory) *cobra.Command {
	var (
		shipID    string
		year      int
		intensity float64
		fuelTons  float64
	)

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute and store a ship-year's compliance balance",
		Long: `Compute CB = (target - actual intensity) x fuel tons x MJ per ton and store it
as the ship-year's snapshot, replacing any earlier snapshot.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, factory, func(ctx context.Context, rt *Runtime) error {
				resp, err := rt.Mediator.Send(ctx, &complianceCommands.ComputeCBCommand{
					ShipID:          shipID,
					ActualIntensity: intensity,
					FuelTons:        fuelTons,
					Year:            year,
				})
				if err != nil {
					return err
				}
				result, ok := resp.(*complianceCommands.ComputeCBResponse)
				if !ok {
					return unexpectedResponse(resp)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Compliance balance for %s (%d)\n", result.ShipID, result.Year)
				fmt.Fprintf(out, "  Target intensity:  %s gCO2e/MJ\n", formatAmount(result.TargetIntensity))
				fmt.Fprintf(out, "  Actual intensity:  %s gCO2e/MJ\n", formatAmount(result.ActualIntensity))
				fmt.Fprintf(out, "  Energy in scope:   %s MJ\n", formatAmount(result.EnergyScopeMJ))
				fmt.Fprintf(out, "  CB:                %s gCO2eq\n", formatAmount(result.CB))
				fmt.Fprintf(out, "  Compliant:         %s\n", yesNo(result.Compliant))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&shipID, "ship", "", "Ship ID (required)")
	cmd.Flags().IntVar(&year, "year", 0, "Reporting year (required)")
	cmd.Flags().Float64Var(&intensity, "intensity", 0, "Actual GHG intensity in gCO2e/MJ (required)")
	cmd.Flags().Float64Var(&fuelTons, "fuel", 0, "Fuel consumption in tonnes (required)")
	cmd.MarkFlagRequired("ship")
	cmd.MarkFlagRequired("year")
	cmd.MarkFlagRequired("intensity")
	cmd.MarkFlagRequired("fuel")

	return cmd
}

func newComplianceAdjustedCommand(factory RuntimeFactory) *cobra.Command {
	var (
		shipID string
		year   int
	)

	cmd := &cobra.Command{
		Use:   "adjusted",
		Short: "Show a ship-year's adjusted compliance balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, factory, func(ctx context.Context, rt *Runtime) error {
				resp, err := rt.Mediator.Send(ctx, &complianceQueries.GetAdjustedCBQuery{ShipID: shipID, Year: year})
				if err != nil {
					return err
				}
				result, ok := resp.(*complianceQueries.GetAdjustedCBResponse)
				if !ok {
					return unexpectedResponse(resp)
				}

				out := cmd.OutOrStdout()
				if !result.Found {
					fmt.Fprintln(out, result.Message)
					return nil
				}

				fmt.Fprintf(out, "Adjusted compliance balance for %s (%d)\n", result.ShipID, result.Year)
				fmt.Fprintf(out, "  Original CB:       %s\n", formatAmount(result.OriginalCB))
				fmt.Fprintf(out, "  Banked applied:    %s\n", formatAmount(result.BankedApplied))
				fmt.Fprintf(out, "  Adjusted CB:       %s\n", formatAmount(result.AdjustedCB.AdjustedCB))
				if result.InPool {
					fmt.Fprintf(out, "  Pool:              %s\n", result.PoolID)
					fmt.Fprintf(out, "  Member CB after:   %s\n", formatOptional(result.PoolCBAfter))
				}
				fmt.Fprintf(out, "  Deficit:           %s\n", formatAmount(result.Deficit))
				fmt.Fprintf(out, "  Compliant:         %s\n", yesNo(result.Compliant))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&shipID, "ship", "", "Ship ID (required)")
	cmd.Flags().IntVar(&year, "year", 0, "Reporting year (required)")
	cmd.MarkFlagRequired("ship")
	cmd.MarkFlagRequired("year")

	return cmd
}

func newComplianceListCommand(factory RuntimeFactory) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored compliance snapshots for a year",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, factory, func(ctx context.Context, rt *Runtime) error {
				resp, err := rt.Mediator.Send(ctx, &complianceQueries.ListSnapshotsQuery{Year: year})
				if err != nil {
					return err
				}
				result, ok := resp.(*complianceQueries.ListSnapshotsResponse)
				if !ok {
					return unexpectedResponse(resp)
				}

				if len(result.Snapshots) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No compliance snapshots for %d\n", year)
					return nil
				}

				w := newTable(cmd.OutOrStdout())
				fmt.Fprintln(w, "SHIP\tYEAR\tCB\tCOMPUTED AT")
				for _, s := range result.Snapshots {
					fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", s.ShipYear().ShipID(), s.ShipYear().Year(),
						formatAmount(s.CB()), s.ComputedAt().Format("2006-01-02 15:04:05"))
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Reporting year (required)")
	cmd.MarkFlagRequired("year")

	return cmd
}
