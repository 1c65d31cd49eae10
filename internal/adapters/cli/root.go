package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI.
// factory builds the wired application; nil uses Bootstrap.
func NewRootCommand(factory RuntimeFactory) *cobra.Command {
	if factory == nil {
		factory = Bootstrap
	}

	rootCmd := &cobra.Command{
		Use:   "fueleu",
		Short: "FuelEU Maritime compliance engine",
		Long: `fueleu computes compliance balances for ship-years, banks and applies surplus,
forms pools and compares route emissions against their baselines.

Examples:
  fueleu seed
  fueleu compliance compute --ship R001 --year 2024 --intensity 88.1 --fuel 5000
  fueleu banking bank --ship R001 --year 2024
  fueleu banking apply --ship R001 --year 2024 --amount 1000
  fueleu pool create --year 2024 --ships R001,R002 --strategy greedy
  fueleu routes compare --ship SHIP001 --year 2024
  fueleu serve`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search ./config.yaml, ./configs, /etc/fueleu)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewHealthCommand(factory))
	rootCmd.AddCommand(NewComplianceCommand(factory))
	rootCmd.AddCommand(NewBankingCommand(factory))
	rootCmd.AddCommand(NewPoolCommand(factory))
	rootCmd.AddCommand(NewRoutesCommand(factory))
	rootCmd.AddCommand(NewSeedCommand(factory))
	rootCmd.AddCommand(NewServeCommand(factory))

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand(nil)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
