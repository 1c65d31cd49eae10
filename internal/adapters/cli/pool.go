package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	poolingCommands "github.com/andrescamacho/fueleu-go/internal/application/pooling/commands"
	poolingQueries "github.com/andrescamacho/fueleu-go/internal/application/pooling/queries"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// NewPoolCommand creates the pool command with subcommands
func NewPoolCommand(factory RuntimeFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Form and inspect compliance pools",
		Long: `Form a compliance pool for a year and inspect pool membership.

Strategies:
  aggregate  - every member must have a positive adjusted CB; members keep their CB
  greedy     - surplus is moved to deficit members, largest balances first

Examples:
  fueleu pool create --year 2024 --ships SHIP001,SHIP002
  fueleu pool create --year 2024 --ships A,B,C --strategy greedy
  fueleu pool create --year 2024 --member A=-300 --member B=500 --strategy greedy
  fueleu pool members <pool-id>
  fueleu pool ship --ship SHIP001 --year 2024`,
	}

	cmd.AddCommand(newPoolCreateCommand(factory))
	cmd.AddCommand(newPoolMembersCommand(factory))
	cmd.AddCommand(newPoolShipCommand(factory))

	return cmd
}

// parseMember reads a SHIP=CB member override
func parseMember(s string) (poolingCommands.MemberInput, error) {
	ship, cb, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(ship) == "" {
		return poolingCommands.MemberInput{}, shared.NewValidationError("member", fmt.Sprintf("expected SHIP=CB, got %q", s))
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(cb), 64)
	if err != nil {
		return poolingCommands.MemberInput{}, shared.NewValidationError("member", fmt.Sprintf("invalid CB in %q", s))
	}
	return poolingCommands.MemberInput{ShipID: strings.TrimSpace(ship), CBBefore: value}, nil
}

func newPoolCreateCommand(factory RuntimeFactory) *cobra.Command {
	var (
		ships    string
		year     int
		strategy string
		members  []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Form a pool from ship-years",
		Long: `Form a pool for the year. Member balances are resolved from each ship's
adjusted CB unless given explicitly with --member SHIP=CB.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			command := &poolingCommands.CreatePoolCommand{
				ShipIDs:  splitList(ships),
				Year:     year,
				Strategy: strategy,
			}
			for _, m := range members {
				input, err := parseMember(m)
				if err != nil {
					return err
				}
				command.Members = append(command.Members, input)
			}

			return withRuntime(cmd, factory, func(ctx context.Context, rt *Runtime) error {
				resp, err := rt.Mediator.Send(ctx, command)
				if err != nil {
					return err
				}
				result, ok := resp.(*poolingCommands.CreatePoolResponse)
				if !ok {
					return unexpectedResponse(resp)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Pool %s created for %d (%s)\n", result.PoolID, result.Year, result.Strategy)
				fmt.Fprintf(out, "  Pooled CB: %s\n\n", formatAmount(result.PooledCB))

				w := newTable(out)
				fmt.Fprintln(w, "SHIP\tCB BEFORE\tCB AFTER")
				for _, s := range result.Ships {
					fmt.Fprintf(w, "%s\t%s\t%s\n", s.ShipID, formatAmount(s.AdjustedCB), formatAmount(s.CBAfter))
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().StringVar(&ships, "ships", "", "Comma separated ship IDs")
	cmd.Flags().IntVar(&year, "year", 0, "Reporting year (required)")
	cmd.Flags().StringVar(&strategy, "strategy", "", "Allocation strategy: aggregate or greedy (default from config)")
	cmd.Flags().StringArrayVar(&members, "member", nil, "Member with explicit CB as SHIP=CB (repeatable)")
	cmd.MarkFlagRequired("year")

	return cmd
}

func newPoolMembersCommand(factory RuntimeFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members <pool-id>",
		Short: "List the members of a pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, factory, func(ctx context.Context, rt *Runtime) error {
				resp, err := rt.Mediator.Send(ctx, &poolingQueries.GetPoolMembersQuery{PoolID: args[0]})
				if err != nil {
					return err
				}
				result, ok := resp.(*poolingQueries.GetPoolMembersResponse)
				if !ok {
					return unexpectedResponse(resp)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Pool %s (%d, %s), pooled CB %s\n\n", result.Pool.ID(), result.Pool.Year(),
					result.Pool.Strategy(), formatAmount(result.Pool.PooledCB()))

				w := newTable(out)
				fmt.Fprintln(w, "SHIP\tCB BEFORE\tCB AFTER")
				for _, m := range result.Members {
					fmt.Fprintf(w, "%s\t%s\t%s\n", m.ShipID(), formatAmount(m.AdjustedCB()), formatAmount(m.CBAfter()))
				}
				return w.Flush()
			})
		},
	}

	return cmd
}

func newPoolShipCommand(factory RuntimeFactory) *cobra.Command {
	var (
		shipID string
		year   int
	)

	cmd := &cobra.Command{
		Use:   "ship",
		Short: "Show the pool a ship-year belongs to",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, factory, func(ctx context.Context, rt *Runtime) error {
				resp, err := rt.Mediator.Send(ctx, &poolingQueries.GetPoolForShipQuery{ShipID: shipID, Year: year})
				if err != nil {
					return err
				}
				result, ok := resp.(*poolingQueries.GetPoolForShipResponse)
				if !ok {
					return unexpectedResponse(resp)
				}

				out := cmd.OutOrStdout()
				if result.Membership == nil {
					fmt.Fprintf(out, "Ship %s is not in a pool for %d\n", shipID, year)
					return nil
				}
				m := result.Membership
				fmt.Fprintf(out, "Ship %s (%d) is in pool %s\n", m.ShipID, m.Year, m.PoolID)
				fmt.Fprintf(out, "  Strategy:          %s\n", m.Strategy)
				fmt.Fprintf(out, "  Pooled CB:         %s\n", formatAmount(m.PooledCB))
				fmt.Fprintf(out, "  CB before:         %s\n", formatAmount(m.AdjustedCB))
				fmt.Fprintf(out, "  CB after:          %s\n", formatAmount(m.CBAfter))
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
