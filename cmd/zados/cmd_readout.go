package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/angelina-gm1999/zados/internal/constants"
	"github.com/angelina-gm1999/zados/internal/readout"
)

func newReadoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "readout [scenario.yaml]",
		Short: "Step a scenario and print the metric readout",
		Long: `Step a scenario forward and print the bounded behavioral metrics
derived from the final state, together with the dominant and suppressed
traits.

Examples:
  zados readout
  zados readout scenario.yaml --steps 500
  zados readout --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runReadout,
	}

	cmd.Flags().Int("steps", 100, "Number of integration steps to take")

	return cmd
}

func runReadout(cmd *cobra.Command, args []string) error {
	jsonOut, _ := cmd.Flags().GetBool("json")
	steps, _ := cmd.Flags().GetInt("steps")

	if steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}

	scenario, err := loadScenario(args)
	if err != nil {
		return err
	}

	eng, err := scenario.BuildEngine()
	if err != nil {
		return fmt.Errorf("building engine: %w", err)
	}
	sched := scenario.BuildScheduler(eng)

	for i := 0; i < steps; i++ {
		t := eng.Now()
		sched.Trigger(t)
		if err := eng.Step(scenario.SignalsAt(t)); err != nil {
			return fmt.Errorf("stepping at t=%g: %w", t, err)
		}
	}

	m := eng.Readout()

	if jsonOut {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
			"scenario":   scenario.Name,
			"t":          eng.Now(),
			"steps":      steps,
			"metrics":    m.Map(),
			"dominant":   readout.Dominant(m, constants.DominantThreshold),
			"suppressed": readout.Suppressed(m, constants.SuppressedThreshold),
		})
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Scenario: %s (t=%.4f after %d steps)\n\n", scenario.Name, eng.Now(), steps)
	fmt.Fprintln(w, readout.Summary(m))
	printTraits(w, m)
	return nil
}

// printTraits lists the dominant and suppressed traits under the metric
// block.
func printTraits(w io.Writer, m readout.Metrics) {
	dominant := readout.Dominant(m, constants.DominantThreshold)
	suppressed := readout.Suppressed(m, constants.SuppressedThreshold)
	if len(dominant) > 0 {
		fmt.Fprintf(w, "Dominant:   %s\n", strings.Join(dominant, ", "))
	}
	if len(suppressed) > 0 {
		fmt.Fprintf(w, "Suppressed: %s\n", strings.Join(suppressed, ", "))
	}
}
