package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/angelina-gm1999/zados/internal/reward"
)

func newProfilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Inspect the static reward profiles",
		Long: `List and show the built-in reward evaluation profiles. Profiles
are pure configuration: per-domain weights, tolerance thresholds and
global bias terms.`,
	}

	cmd.AddCommand(
		newProfilesListCmd(),
		newProfilesShowCmd(),
	)

	return cmd
}

func newProfilesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List profile names",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			names := reward.ProfileNames()

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string][]string{"profiles": names})
			}

			w := cmd.OutOrStdout()
			for _, name := range names {
				fmt.Fprintln(w, name)
			}
			return nil
		},
	}
}

func newProfilesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show one profile in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			p, err := reward.ProfileByName(args[0])
			if err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(p)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Profile: %s\n", p.Name)
			fmt.Fprintln(w, "Domain weights:")
			for _, domain := range sortedKeys(p.DomainWeights) {
				fmt.Fprintf(w, "  %-18s %.2f\n", domain, p.DomainWeights[domain])
			}
			if len(p.ThresholdTolerances) > 0 {
				fmt.Fprintln(w, "Threshold tolerances:")
				for _, domain := range sortedKeys(p.ThresholdTolerances) {
					fmt.Fprintf(w, "  %-18s %.2f\n", domain, p.ThresholdTolerances[domain])
				}
			}
			fmt.Fprintf(w, "Suppression bias: %.2f\n", p.SuppressionBias)
			fmt.Fprintf(w, "Abstention bias:  %.2f\n", p.AbstentionBias)
			return nil
		},
	}
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
