package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	routeCommands "github.com/andrescamacho/fueleu-go/internal/application/routes/commands"
	routeQueries "github.com/andrescamacho/fueleu-go/internal/application/routes/queries"
	"github.com/andrescamacho/fueleu-go/internal/domain/route"
)

// NewRoutesCommand creates the routes command with subcommands
func NewRoutesCommand(factory RuntimeFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Route emissions metrics and baseline comparisons",
		Long: `Compute route energy, emissions and GHG intensity from fuel consumption and
compare routes against their baselines.

Examples:
  fueleu routes list --year 2024 --fuel-type LNG
  fueleu routes compute R002
  fueleu routes baseline R001
  fueleu routes compare --ship SHIP001 --year 2024
  fueleu routes comparison --year 2025`,
	}

	cmd.AddCommand(newRoutesListCommand(factory))
	cmd.AddCommand(newRoutesComputeCommand(factory))
	cmd.AddCommand(newRoutesBaselineCommand(factory))
	cmd.AddCommand(newRoutesCompareCommand(factory))
	cmd.AddCommand(newRoutesComparisonCommand(factory))

	return cmd
}

// filterFlags are the optional route filter flags shared by list and compare
type filterFlags struct {
	shipID       string
	year         int
	vesselType   string
	fuelType     string
	minEmissions float64
	minIntensity float64
	minFuel      float64
	withShipYear bool
}

func (f *filterFlags) bind(cmd *cobra.Command, withShipYear bool) {
	f.withShipYear = withShipYear
	if withShipYear {
		cmd.Flags().StringVar(&f.shipID, "ship", "", "Filter by ship ID")
		cmd.Flags().IntVar(&f.year, "year", 0, "Filter by year")
	}
	cmd.Flags().StringVar(&f.vesselType, "vessel-type", "", "Filter by vessel type")
	cmd.Flags().StringVar(&f.fuelType, "fuel-type", "", "Filter by fuel type (case-insensitive)")
	cmd.Flags().Float64Var(&f.minEmissions, "min-emissions", 0, "Minimum emissions in gCO2eq")
	cmd.Flags().Float64Var(&f.minIntensity, "min-intensity", 0, "Minimum GHG intensity in gCO2e/MJ")
	cmd.Flags().Float64Var(&f.minFuel, "min-fuel", 0, "Minimum fuel consumption in tonnes")
}

func (f *filterFlags) filter(cmd *cobra.Command) route.Filter {
	filter := route.Filter{
		VesselType:   optionalString(f.vesselType),
		FuelType:     optionalString(f.fuelType),
		MinEmissions: optionalFloat(cmd, "min-emissions", f.minEmissions),
		MinIntensity: optionalFloat(cmd, "min-intensity", f.minIntensity),
		MinFuel:      optionalFloat(cmd, "min-fuel", f.minFuel),
	}
	if f.withShipYear {
		filter.ShipID = optionalString(f.shipID)
		filter.Year = optionalInt(cmd, "year", f.year)
	}
	return filter
}

func newRoutesListCommand(factory RuntimeFactory) *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List routes with their metrics",
		Long: `List routes matching the filter. Metrics missing for a route are computed
and stored before the list is returned.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, factory, func(ctx context.Context, rt *Runtime) error {
				resp, err := rt.Mediator.Send(ctx, &routeQueries.ListRoutesQuery{Filter: flags.filter(cmd)})
				if err != nil {
					return err
				}
				result, ok := resp.(*routeQueries.ListRoutesResponse)
				if !ok {
					return unexpectedResponse(resp)
				}

				if len(result.Routes) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No routes found")
					return nil
				}

				w := newTable(cmd.OutOrStdout())
				fmt.Fprintln(w, "ROUTE\tSHIP\tYEAR\tVESSEL\tFUEL\tTONS\tENERGY MJ\tEMISSIONS\tINTENSITY\tBASELINE")
				for _, r := range result.Routes {
					energy, emissions, intensity := "-", "-", "-"
					if m := r.Metrics(); m != nil {
						energy = formatAmount(m.EnergyMJ)
						emissions = formatAmount(m.EmissionsGCO2eq)
						intensity = formatAmount(m.IntensityGPerMJ)
					}
					fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
						r.ID(), r.ShipID(), r.Year(), r.VesselType(), r.FuelType(), formatAmount(r.FuelTons()),
						energy, emissions, intensity, formatOptional(r.BaselineIntensity()))
				}
				return w.Flush()
			})
		},
	}

	flags.bind(cmd, true)

	return cmd
}

func newRoutesComputeCommand(factory RuntimeFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compute <route-id>",
		Short: "Compute and store a route's metrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, factory, func(ctx context.Context, rt *Runtime) error {
				resp, err := rt.Mediator.Send(ctx, &routeCommands.ComputeRouteMetricsCommand{RouteID: args[0]})
				if err != nil {
					return err
				}
				result, ok := resp.(*routeCommands.ComputeRouteMetricsResponse)
				if !ok {
					return unexpectedResponse(resp)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Metrics for route %s\n", result.RouteID)
				fmt.Fprintf(out, "  Energy:            %s MJ\n", formatAmount(result.Metrics.EnergyMJ))
				fmt.Fprintf(out, "  Emissions:         %s gCO2eq\n", formatAmount(result.Metrics.EmissionsGCO2eq))
				fmt.Fprintf(out, "  GHG intensity:     %s gCO2e/MJ\n", formatAmount(result.Metrics.IntensityGPerMJ))
				return nil
			})
		},
	}

	return cmd
}

func newRoutesBaselineCommand(factory RuntimeFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "baseline <route-id>",
		Short: "Set a route's baseline intensity from its fuel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, factory, func(ctx context.Context, rt *Runtime) error {
				resp, err := rt.Mediator.Send(ctx, &routeCommands.SetBaselineCommand{RouteID: args[0]})
				if err != nil {
					return err
				}
				result, ok := resp.(*routeCommands.SetBaselineResponse)
				if !ok {
					return unexpectedResponse(resp)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Baseline for route %s set to %s gCO2e/MJ\n",
					result.RouteID, formatAmount(result.Baseline))
				return nil
			})
		},
	}

	return cmd
}

func newRoutesCompareCommand(factory RuntimeFactory) *cobra.Command {
	var (
		flags  filterFlags
		shipID string
		year   int
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare a ship-year's routes against their baselines",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, factory, func(ctx context.Context, rt *Runtime) error {
				resp, err := rt.Mediator.Send(ctx, &routeQueries.CompareRoutesQuery{
					ShipID: shipID,
					Year:   year,
					Filter: flags.filter(cmd),
				})
				if err != nil {
					return err
				}
				result, ok := resp.(*routeQueries.CompareRoutesResponse)
				if !ok {
					return unexpectedResponse(resp)
				}

				if len(result.Routes) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No routes with metrics for %s (%d)\n", shipID, year)
					return nil
				}

				w := newTable(cmd.OutOrStdout())
				fmt.Fprintln(w, "ROUTE\tFUEL\tACTUAL\tBASELINE\tCHANGE %\tSTATUS")
				for _, c := range result.Routes {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", c.RouteID, c.FuelType,
						formatAmount(c.ActualIntensity), formatAmount(c.BaselineIntensity),
						formatOptional(c.PercentChange), c.Status)
				}
				return w.Flush()
			})
		},
	}

	flags.bind(cmd, false)
	cmd.Flags().StringVar(&shipID, "ship", "", "Ship ID (required)")
	cmd.Flags().IntVar(&year, "year", 0, "Reporting year (required)")
	cmd.MarkFlagRequired("ship")
	cmd.MarkFlagRequired("year")

	return cmd
}

func newRoutesComparisonCommand(factory RuntimeFactory) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "comparison",
		Short: "Compare each year's routes against the year's baseline route",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, factory, func(ctx context.Context, rt *Runtime) error {
				resp, err := rt.Mediator.Send(ctx, &routeQueries.GetComparisonQuery{Year: optionalInt(cmd, "year", year)})
				if err != nil {
					return err
				}
				result, ok := resp.(*routeQueries.GetComparisonResponse)
				if !ok {
					return unexpectedResponse(resp)
				}

				out := cmd.OutOrStdout()
				w := newTable(out)
				fmt.Fprintln(w, "YEAR\tROUTE\tFUEL\tBASELINE\tCOMPARISON\tDIFF %\tCOMPLIANT")
				for _, c := range result.Comparisons {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", c.Year, c.RouteID, c.FuelType,
						formatAmount(c.BaselineGHG), formatAmount(c.ComparisonGHG),
						formatAmount(c.PercentDiff), yesNo(c.Compliant))
				}
				if err := w.Flush(); err != nil {
					return err
				}
				for _, y := range result.SkippedYears {
					fmt.Fprintf(out, "Year %d skipped: no baseline route\n", y)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Only compare this year")

	return cmd
}
