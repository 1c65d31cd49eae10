package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	bankingCommands "github.com/andrescamacho/fueleu-go/internal/application/banking/commands"
	bankingQueries "github.com/andrescamacho/fueleu-go/internal/application/banking/queries"
)

// NewBankingCommand creates the banking command with subcommands
func NewBankingCommand(factory RuntimeFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "banking",
		Short: "Bank surplus and apply banked balance",
		Long: `Bank a ship-year's compliance surplus and apply previously banked surplus.

Banked deposits are consumed oldest first. An application either succeeds for
the full amount or leaves the bank untouched.

Examples:
  fueleu banking bank --ship R001 --year 2024
  fueleu banking bank --ship R001 --year 2024 --amount 500
  fueleu banking apply --ship R001 --year 2024 --amount 250
  fueleu banking records --ship R001 --year 2024`,
	}

	cmd.AddCommand(newBankingBankCommand(factory))
	cmd.AddCommand(newBankingApplyCommand(factory))
	cmd.AddCommand(newBankingRecordsCommand(factory))

	return cmd
}

func newBankingBankCommand(factory RuntimeFactory) *cobra.Command {
	var (
		shipID string
		year   int
		amount float64
	)

	cmd := &cobra.Command{
		Use:   "bank",
		Short: "Bank surplus compliance balance",
		Long: `Deposit surplus into the ship-year's bank. Without --amount the whole
surplus not yet banked is deposited.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, factory, func(ctx context.Context, rt *Runtime) error {
				resp, err := rt.Mediator.Send(ctx, &bankingCommands.BankSurplusCommand{
					ShipID: shipID,
					Year:   year,
					Amount: optionalFloat(cmd, "amount", amount),
				})
				if err != nil {
					return err
				}
				result, ok := resp.(*bankingCommands.BankSurplusResponse)
				if !ok {
					return unexpectedResponse(resp)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Banked %s gCO2eq for %s (%d)\n", formatAmount(result.Banked), result.ShipID, result.Year)
				fmt.Fprintf(out, "  Entry:             %s\n", result.EntryID)
				fmt.Fprintf(out, "  CB:                %s\n", formatAmount(result.CBBefore))
				fmt.Fprintf(out, "  Bankable before:   %s\n", formatAmount(result.Bankable))
				fmt.Fprintf(out, "  Available:         %s\n", formatAmount(result.Available))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&shipID, "ship", "", "Ship ID (required)")
	cmd.Flags().IntVar(&year, "year", 0, "Reporting year (required)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Amount to bank in gCO2eq (default: all remaining surplus)")
	cmd.MarkFlagRequired("ship")
	cmd.MarkFlagRequired("year")

	return cmd
}

func newBankingApplyCommand(factory RuntimeFactory) *cobra.Command {
	var (
		shipID string
		year   int
		amount float64
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply banked surplus to the compliance balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, factory, func(ctx context.Context, rt *Runtime) error {
				resp, err := rt.Mediator.Send(ctx, &bankingCommands.ApplyBankCommand{
					ShipID: shipID,
					Year:   year,
					Amount: amount,
				})
				if err != nil {
					return err
				}
				result, ok := resp.(*bankingCommands.ApplyBankResponse)
				if !ok {
					return unexpectedResponse(resp)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Applied %s gCO2eq for %s (%d)\n", formatAmount(result.Applied), result.ShipID, result.Year)
				fmt.Fprintf(out, "  CB before:         %s\n", formatAmount(result.CBBefore))
				fmt.Fprintf(out, "  CB after:          %s\n", formatAmount(result.CBAfter))
				fmt.Fprintf(out, "  Still available:   %s\n", formatAmount(result.Available))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&shipID, "ship", "", "Ship ID (required)")
	cmd.Flags().IntVar(&year, "year", 0, "Reporting year (required)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Amount to apply in gCO2eq (required)")
	cmd.MarkFlagRequired("ship")
	cmd.MarkFlagRequired("year")
	cmd.MarkFlagRequired("amount")

	return cmd
}

func newBankingRecordsCommand(factory RuntimeFactory) *cobra.Command {
	var (
		shipID string
		year   int
	)

	cmd := &cobra.Command{
		Use:   "records",
		Short: "List bank entries for a ship-year",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, factory, func(ctx context.Context, rt *Runtime) error {
				resp, err := rt.Mediator.Send(ctx, &bankingQueries.GetBankRecordsQuery{ShipID: shipID, Year: year})
				if err != nil {
					return err
				}
				result, ok := resp.(*bankingQueries.GetBankRecordsResponse)
				if !ok {
					return unexpectedResponse(resp)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Bank for %s (%d): CB %s, available %s, applied %s\n\n",
					result.ShipID, result.Year, formatAmount(result.CBBefore),
					formatAmount(result.Available), formatAmount(result.Applied))

				w := newTable(out)
				fmt.Fprintln(w, "ENTRY\tAMOUNT\tSTATUS\tCREATED\tAPPLIED\tSOURCE")
				for _, e := range result.Entries {
					status, appliedAt, source := "open", "-", "-"
					if e.Applied() {
						status = "applied"
					}
					if e.AppliedAt() != nil {
						appliedAt = e.AppliedAt().Format("2006-01-02 15:04:05")
					}
					if e.SourceID() != nil {
						source = e.SourceID().String()[:8]
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
						e.ID().String()[:8], formatAmount(e.Amount()), status,
						e.CreatedAt().Format("2006-01-02 15:04:05"), appliedAt, source)
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().StringVar(&shipID, "ship", "", "Ship ID (required)")
	cmd.Flags().IntVar(&year, "year", 0, "Reporting year (required)")
	cmd.MarkFlagRequired("ship")
	cmd.MarkFlagRequired("year")

	return cmd
}
