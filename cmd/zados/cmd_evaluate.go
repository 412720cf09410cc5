package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/angelina-gm1999/zados/internal/reward"
	"github.com/angelina-gm1999/zados/internal/safety"
)

func newEvaluateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate <state.json>",
		Short: "Score a state snapshot and gate it through the constraint bridge",
		Long: `Run the ethics and logic domains over a JSON state snapshot, weight
their scores by a reward profile, and pass the snapshot through the
constraint bridge. Constraints dominate reward: a disallowed snapshot
fails the command regardless of its score.

The snapshot is a flat JSON object. Evaluators read the keys they
recognize; every numeric field must stay within [0, 1].

Examples:
  zados evaluate state.json
  zados evaluate state.json --profile analysis_investigation
  zados evaluate state.json --json`,
		Args: cobra.ExactArgs(1),
		RunE: runEvaluate,
	}

	cmd.Flags().String("profile", "reflective", "Reward profile weighting the domains")

	return cmd
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	jsonOut, _ := cmd.Flags().GetBool("json")
	profileName, _ := cmd.Flags().GetString("profile")

	profile, err := reward.ProfileByName(profileName)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading state snapshot: %w", err)
	}
	var state map[string]any
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("parsing state snapshot: %w", err)
	}

	ctx := reward.DefaultContext()
	domains := []reward.Domain{
		reward.NewEthicsDomain(),
		reward.NewLogicDomain(nil, nil),
	}

	results := make([]reward.DomainResult, 0, len(domains))
	total := 0.0
	weightSum := 0.0
	for _, d := range domains {
		result, err := d.Evaluate(state, ctx)
		if err != nil {
			return fmt.Errorf("evaluating %s domain: %w", d.Name(), err)
		}
		w := profile.DomainWeights.Get(result.Domain, 0)
		total += w * result.GeneralScore
		weightSum += w
		results = append(results, result)
	}
	if weightSum > 0 {
		total /= weightSum
	}

	bridge := safety.NewBridge(safety.BoundsHook{Min: 0, Max: 1})
	verdict, err := bridge.Evaluate(state, map[string]any{
		"profile":      profile.Name,
		"total_reward": total,
	})
	if err != nil {
		return err
	}

	if jsonOut {
		out := map[string]any{
			"profile": profile.Name,
			"domains": results,
			"total":   total,
			"verdict": verdict,
		}
		if err := json.NewEncoder(cmd.OutOrStdout()).Encode(out); err != nil {
			return err
		}
	} else {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Profile: %s\n", profile.Name)
		fmt.Fprintln(w, "Domains:")
		for _, r := range results {
			fmt.Fprintf(w, "  %-8s %.3f", r.Domain, r.GeneralScore)
			if len(r.Flags) > 0 {
				names := make([]string, 0, len(r.Flags))
				for name := range r.Flags {
					names = append(names, name)
				}
				sort.Strings(names)
				fmt.Fprintf(w, "  %v", names)
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "Total:   %.3f\n", total)
		fmt.Fprintf(w, "Verdict: %s\n", verdict.Action)
		if verdict.Reason != "" {
			fmt.Fprintf(w, "Reason:  %s\n", verdict.Reason)
		}
	}

	if !verdict.Allowed {
		return fmt.Errorf("snapshot disallowed by constraint bridge (%s)", verdict.Action)
	}
	return nil
}
