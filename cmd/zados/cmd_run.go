package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"github.com/angelina-gm1999/zados/internal/config"
	"github.com/angelina-gm1999/zados/internal/constants"
	"github.com/angelina-gm1999/zados/internal/engine"
	"github.com/angelina-gm1999/zados/internal/logging"
	"github.com/angelina-gm1999/zados/internal/readout"
	"github.com/angelina-gm1999/zados/internal/state"
	"github.com/angelina-gm1999/zados/internal/store"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [scenario.yaml]",
		Short: "Run a simulation scenario",
		Long: `Run a scenario end to end and print a summary of the final state.

Without an argument the built-in default scenario is used: a dopamine
population against the nine metric receptor subtypes. Scalar knobs can
be overridden through ZADOS_* environment variables.

Examples:
  zados run
  zados run scenario.yaml --record runs.db
  zados run scenario.yaml --trace steps.jsonl --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRun,
	}

	cmd.Flags().String("record", "", "Record the run to a SQLite database at this path")
	cmd.Flags().String("trace", "", "Write per-step JSONL trace entries to this path")

	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	jsonOut, _ := cmd.Flags().GetBool("json")
	logLevel, _ := cmd.Flags().GetString("log-level")
	recordPath, _ := cmd.Flags().GetString("record")
	tracePath, _ := cmd.Flags().GetString("trace")

	scenario, err := loadScenario(args)
	if err != nil {
		return err
	}

	// The flag wins over the scenario's log_level.
	if logLevel == "" {
		logLevel = scenario.LogLevel
	}
	if err := logging.Setup(logLevel, jsonOut); err != nil {
		return fmt.Errorf("configuring logging: %w", err)
	}

	eng, err := scenario.BuildEngine()
	if err != nil {
		return fmt.Errorf("building engine: %w", err)
	}
	sched := scenario.BuildScheduler(eng)

	slog.Info("starting run",
		"scenario", scenario.Name,
		"dt", scenario.Dt,
		"duration", scenario.Duration,
		"seed", scenario.Seed,
		"gain_modulation", scenario.GainModulation)

	history, err := engine.Simulate(eng, engine.SimulateConfig{
		T:         scenario.Duration,
		Signals:   scenario.SignalsAt,
		Scheduler: sched,
	})
	if err != nil {
		return fmt.Errorf("simulating %s: %w", scenario.Name, err)
	}

	if tracePath != "" {
		if err := writeTrace(tracePath, history); err != nil {
			return err
		}
	}

	var runID string
	if recordPath != "" {
		ctx := context.Background()
		runID, err = recordRun(ctx, recordPath, scenario, history)
		if err != nil {
			return err
		}
		slog.Info("run recorded", "id", runID, "db", recordPath, "steps", len(history))
	}

	return printRunSummary(cmd, scenario, history, runID, jsonOut)
}

// loadScenario reads the scenario file when one is given, otherwise the
// built-in default. Environment overrides apply either way.
func loadScenario(args []string) (*config.Scenario, error) {
	if len(args) == 0 {
		return config.LoadDefault()
	}
	s, err := config.Load(args[0])
	if err != nil {
		return nil, fmt.Errorf("loading scenario %s: %w", args[0], err)
	}
	return s, nil
}

// writeTrace replays the history through a JSONL step logger.
func writeTrace(path string, history engine.History) error {
	sl, err := logging.OpenStepLogger(path)
	if err != nil {
		return fmt.Errorf("opening trace log: %w", err)
	}
	defer sl.Close()

	for i, snap := range history {
		sl.Log(map[string]any{
			"step":           i,
			"t":              snap.Time,
			"concentrations": snap.Concentrations,
			"fatigue":        snap.Fatigue,
			"metrics":        snap.Metrics.Map(),
		})
	}
	return nil
}

// recordRun persists the full history through a SQLite run store and
// returns the new run's id.
func recordRun(ctx context.Context, dbPath string, scenario *config.Scenario, history engine.History) (string, error) {
	rs, err := store.NewSQLiteRunStore(dbPath)
	if err != nil {
		return "", fmt.Errorf("opening run store: %w", err)
	}
	defer rs.Close()

	runID, err := rs.CreateRun(ctx, store.RunMeta{
		Scenario:       scenario.Name,
		Dt:             scenario.Dt,
		Duration:       scenario.Duration,
		Seed:           scenario.Seed,
		GainModulation: scenario.GainModulation,
	})
	if err != nil {
		return "", fmt.Errorf("creating run: %w", err)
	}

	for i, snap := range history {
		rec := store.StepRecord{
			Index:          i,
			Time:           snap.Time,
			Concentrations: idKeyedToStrings(snap.Concentrations),
			Fatigue:        idKeyedToStrings(snap.Fatigue),
			Metrics:        snap.Metrics.Map(),
		}
		if err := rs.AppendStep(ctx, runID, rec); err != nil {
			return "", fmt.Errorf("recording step %d: %w", i, err)
		}
	}

	if err := rs.FinishRun(ctx, runID); err != nil {
		return "", fmt.Errorf("finishing run: %w", err)
	}
	return runID, nil
}

func idKeyedToStrings(m map[state.NeurotransmitterID]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for id, v := range m {
		out[string(id)] = v
	}
	return out
}

func sortedIDs(m map[state.NeurotransmitterID]float64) []state.NeurotransmitterID {
	ids := make([]state.NeurotransmitterID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func printRunSummary(cmd *cobra.Command, scenario *config.Scenario, history engine.History, runID string, jsonOut bool) error {
	last := history.Last()

	if jsonOut {
		out := map[string]any{
			"scenario":       scenario.Name,
			"steps":          len(history),
			"t":              last.Time,
			"concentrations": last.Concentrations,
			"fatigue":        last.Fatigue,
			"metrics":        last.Metrics.Map(),
			"dominant":       readout.Dominant(last.Metrics, constants.DominantThreshold),
			"suppressed":     readout.Suppressed(last.Metrics, constants.SuppressedThreshold),
		}
		if runID != "" {
			out["run_id"] = runID
		}
		return json.NewEncoder(cmd.OutOrStdout()).Encode(out)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Scenario: %s\n", scenario.Name)
	fmt.Fprintf(w, "Steps:    %d (dt=%g, t=%.4f)\n", len(history), scenario.Dt, last.Time)
	if runID != "" {
		fmt.Fprintf(w, "Run ID:   %s\n", runID)
	}
	fmt.Fprintln(w)
	for _, id := range sortedIDs(last.Concentrations) {
		fmt.Fprintf(w, "  %-10s C=%.4f  fatigue=%.4f\n", id, last.Concentrations[id], last.Fatigue[id])
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, readout.Summary(last.Metrics))
	printTraits(w, last.Metrics)
	return nil
}
