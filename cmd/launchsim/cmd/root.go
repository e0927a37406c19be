package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the launchsim command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "launchsim",
		Short: "Rehearse token launches against an in-memory bonding-curve engine",
		Long: `launchsim loads launch parameters (defaults, a TOML file, or
LAUNCHPAD_* environment variables) and runs the exchange engine against an
in-memory ledger. Use it to inspect the fee decay schedule, quote trades at
arbitrary block heights, or replay a full buy session up to graduation.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String(flagConfig, "", "path to a TOML config file")

	rootCmd.AddCommand(
		newFeesCmd(),
		newQuoteCmd(),
		newSimulateCmd(),
		newServeCmd(),
	)
	return rootCmd
}

const flagConfig = "config"
