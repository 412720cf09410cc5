package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/angelina-gm1999/zados/internal/store"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect recorded runs",
		Long: `List, show, export and delete simulation runs recorded with
'zados run --record'.

The database defaults to runs.db under the zados data directory
($ZADOS_DATA_DIR or ~/.zados).`,
	}

	cmd.PersistentFlags().String("db", "", "Path to the run database")

	cmd.AddCommand(
		newRunsListCmd(),
		newRunsShowCmd(),
		newRunsExportCmd(),
		newRunsImportCmd(),
		newRunsRmCmd(),
	)

	return cmd
}

func newRunsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			rs, err := openRunStore(cmd)
			if err != nil {
				return err
			}
			defer rs.Close()

			runs, err := rs.ListRuns(context.Background())
			if err != nil {
				return fmt.Errorf("listing runs: %w", err)
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(runs)
			}

			w := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(w, "No recorded runs.")
				return nil
			}
			for _, r := range runs {
				status := "running"
				if r.FinishedAt != nil {
					status = "finished"
				}
				fmt.Fprintf(w, "%s  %-20s %4d steps  %s  %s\n",
					r.ID, r.Meta.Scenario, r.Steps, r.StartedAt.Format("2006-01-02 15:04:05"), status)
			}
			return nil
		},
	}
}

func newRunsShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			withSteps, _ := cmd.Flags().GetBool("steps")

			rs, err := openRunStore(cmd)
			if err != nil {
				return err
			}
			defer rs.Close()

			ctx := context.Background()
			run, err := rs.GetRun(ctx, args[0])
			if err != nil {
				return err
			}

			var steps []store.StepRecord
			if withSteps {
				steps, err = rs.Steps(ctx, run.ID)
				if err != nil {
					return fmt.Errorf("loading steps: %w", err)
				}
			}

			if jsonOut {
				out := map[string]any{"run": run}
				if withSteps {
					out["steps"] = steps
				}
				return json.NewEncoder(cmd.OutOrStdout()).Encode(out)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Run:      %s\n", run.ID)
			fmt.Fprintf(w, "Scenario: %s (dt=%g, duration=%g, seed=%d)\n",
				run.Meta.Scenario, run.Meta.Dt, run.Meta.Duration, run.Meta.Seed)
			fmt.Fprintf(w, "Started:  %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
			if run.FinishedAt != nil {
				fmt.Fprintf(w, "Finished: %s\n", run.FinishedAt.Format("2006-01-02 15:04:05"))
			}
			fmt.Fprintf(w, "Steps:    %d\n", run.Steps)
			for _, rec := range steps {
				fmt.Fprintf(w, "  [%4d] t=%.4f", rec.Index, rec.Time)
				for _, id := range sortedKeys(rec.Concentrations) {
					fmt.Fprintf(w, "  %s=%.4f", id, rec.Concentrations[id])
				}
				fmt.Fprintln(w)
			}
			return nil
		},
	}

	cmd.Flags().Bool("steps", false, "Include per-step records")

	return cmd
}

func newRunsExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <run-id>",
		Short: "Export one run as JSONL",
		Long: `Write a run as JSON lines: the run header first, then one step
record per line. The output imports cleanly with 'zados runs import'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputPath, _ := cmd.Flags().GetString("output")

			rs, err := openRunStore(cmd)
			if err != nil {
				return err
			}
			defer rs.Close()

			w := cmd.OutOrStdout()
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("creating export file: %w", err)
				}
				defer f.Close()
				w = f
			}

			if err := store.ExportJSONL(context.Background(), rs, args[0], w); err != nil {
				return fmt.Errorf("exporting run %s: %w", args[0], err)
			}
			return nil
		},
	}

	cmd.Flags().String("output", "", "Export file path (default: stdout)")

	return cmd
}

func newRunsImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a JSONL run export",
		Long: `Read a run exported with 'zados runs export' and record it under a
fresh id.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening export file: %w", err)
			}
			defer f.Close()

			rs, err := openRunStore(cmd)
			if err != nil {
				return err
			}
			defer rs.Close()

			id, err := store.ImportJSONL(context.Background(), rs, f)
			if err != nil {
				return fmt.Errorf("importing %s: %w", args[0], err)
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"run_id": id})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported run %s\n", id)
			return nil
		},
	}
}

func newRunsRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <run-id>",
		Short: "Delete a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := openRunStore(cmd)
			if err != nil {
				return err
			}
			defer rs.Close()

			if err := rs.DeleteRun(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s\n", args[0])
			return nil
		},
	}
}

// openRunStore opens the run database named by --db, falling back to
// the default path under the data directory.
func openRunStore(cmd *cobra.Command) (*store.SQLiteRunStore, error) {
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		var err error
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolving run database: %w", err)
		}
	}
	rs, err := store.NewSQLiteRunStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening run store: %w", err)
	}
	return rs, nil
}
