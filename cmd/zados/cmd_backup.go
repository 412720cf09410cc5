package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/angelina-gm1999/zados/internal/backup"
)

func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Archive recorded runs to a JSON file",
		Long: `Archive every recorded run, step records included, to a portable JSON file.

Default location: ~/.zados/backups/zados-runs-YYYYMMDD-HHMMSS.json.
Older archives are rotated out, keeping the most recent ones.

Examples:
  zados backup                               # Archive to the default directory
  zados backup --output runs.json            # Archive to a specific file
  zados backup list                          # List existing archives
  zados backup verify runs.json              # Check archive integrity
  zados backup restore runs.json             # Restore missing runs`,
		RunE: runBackup,
	}

	cmd.PersistentFlags().String("db", "", "Run database path (default: ~/.zados/runs.db)")
	cmd.Flags().String("output", "", "Archive file path (default: auto-generated)")
	cmd.Flags().Int("keep", 10, "Archives to keep after rotation (0 disables rotation)")

	cmd.AddCommand(
		newBackupListCmd(),
		newBackupVerifyCmd(),
		newBackupRestoreCmd(),
	)

	return cmd
}

func runBackup(cmd *cobra.Command, args []string) error {
	jsonOut, _ := cmd.Flags().GetBool("json")
	outputPath, _ := cmd.Flags().GetString("output")
	keep, _ := cmd.Flags().GetInt("keep")

	rotate := false
	if outputPath == "" {
		dir, err := backup.DefaultDir()
		if err != nil {
			return fmt.Errorf("resolving archive directory: %w", err)
		}
		outputPath = backup.GeneratePath(dir)
		rotate = keep > 0
	}

	rs, err := openRunStore(cmd)
	if err != nil {
		return err
	}
	defer rs.Close()

	ctx := context.Background()
	archive, err := backup.Backup(ctx, rs, outputPath)
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	if rotate {
		if err := backup.Rotate(filepath.Dir(outputPath), keep); err != nil {
			fmt.Fprintf(os.Stderr, "warning: archive rotation failed: %v\n", err)
		}
	}

	if jsonOut {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
			"path": outputPath,
			"runs": len(archive.Runs),
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Archived %d runs\n", len(archive.Runs))
	fmt.Fprintf(cmd.OutOrStdout(), "  Path: %s\n", outputPath)
	return nil
}

func newBackupListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List run archives",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			dir, _ := cmd.Flags().GetString("dir")

			if dir == "" {
				var err error
				dir, err = backup.DefaultDir()
				if err != nil {
					return fmt.Errorf("resolving archive directory: %w", err)
				}
			}

			archives, err := backup.List(dir)
			if err != nil {
				return fmt.Errorf("listing archives: %w", err)
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"archives": archives,
				})
			}

			if len(archives) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No archives found.")
				return nil
			}
			for _, a := range archives {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %3d runs  %6d bytes  %s\n",
					a.CreatedAt.Format("2006-01-02 15:04:05"), a.Runs, a.Size, a.Path)
			}
			return nil
		},
	}

	cmd.Flags().String("dir", "", "Archive directory (default: ~/.zados/backups)")
	return cmd
}

func newBackupVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <file>",
		Short: "Check a run archive for corruption",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			result, err := backup.Verify(args[0])
			if err != nil {
				return fmt.Errorf("verify failed: %w", err)
			}

			if jsonOut {
				if err := json.NewEncoder(cmd.OutOrStdout()).Encode(result); err != nil {
					return err
				}
			} else if result.OK() {
				fmt.Fprintf(cmd.OutOrStdout(), "OK: %d runs, %d records\n", result.Runs, result.Records)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "FAILED: %d problems\n", len(result.Problems))
				for _, p := range result.Problems {
					fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", p)
				}
			}

			if !result.OK() {
				return fmt.Errorf("archive %s failed verification", args[0])
			}
			return nil
		},
	}
}

func newBackupRestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Restore runs from an archive",
		Long: `Restore archived runs into the run database.

Merge mode (default) keeps existing runs and only imports missing ones.
Replace mode deletes existing runs and re-imports their archived state.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			modeFlag, _ := cmd.Flags().GetString("mode")

			mode, err := backup.ParseRestoreMode(modeFlag)
			if err != nil {
				return err
			}

			rs, err := openRunStore(cmd)
			if err != nil {
				return err
			}
			defer rs.Close()

			ctx := context.Background()
			result, err := backup.Restore(ctx, rs, args[0], mode)
			if err != nil {
				return fmt.Errorf("restore failed: %w", err)
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(result)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %d runs (%d skipped, %d replaced)\n",
				result.RunsRestored, result.RunsSkipped, result.RunsReplaced)
			return nil
		},
	}

	cmd.Flags().String("mode", "merge", "Restore mode: merge or replace")
	return cmd
}
