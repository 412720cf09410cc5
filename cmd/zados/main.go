package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "zados",
		Short: "Neurochemical dynamics simulator",
		Long: `zados simulates neuromodulator concentrations as stochastic
mass-balance processes and projects them onto a bounded behavioral
readout.

Scenarios are YAML documents declaring neurotransmitter populations,
receptor subtypes, oscillation band amplitudes, and time-varying
modulation signals. Runs can be recorded to SQLite for later
inspection.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newReadoutCmd(),
		newGraphCmd(),
		newTagsCmd(),
		newProfilesCmd(),
		newEvaluateCmd(),
		newRunsCmd(),
		newBackupCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"version": version})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "zados version %s\n", version)
			return nil
		},
	}
	return cmd
}
