// Package backup archives recorded simulation runs to portable JSON
// files and restores them into a RunStore. Archives preserve run ids
// and timestamps, so a restored store is indistinguishable from the
// original for the read paths.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/angelina-gm1999/zados/internal/store"
)

// FormatVersion is the archive format written by this package.
const FormatVersion = 1

// Archive is the JSON structure of a full run archive.
type Archive struct {
	Version   int           `json:"version"`
	CreatedAt time.Time     `json:"created_at"`
	Runs      []ArchivedRun `json:"runs"`
}

// ArchivedRun pairs a run's metadata with its complete step history.
type ArchivedRun struct {
	Run     store.Run          `json:"run"`
	Records []store.StepRecord `json:"records"`
}

// DefaultDir returns the default archive directory inside the data dir.
func DefaultDir() (string, error) {
	dir, err := store.DataDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate data directory: %w", err)
	}
	return filepath.Join(dir, "backups"), nil
}

// GeneratePath creates a timestamped archive filename in dir.
func GeneratePath(dir string) string {
	ts := time.Now().Format("20060102-150405")
	return filepath.Join(dir, fmt.Sprintf("zados-runs-%s.json", ts))
}

// Backup exports every recorded run, steps included, to a JSON file at
// outputPath. The parent directory is created when missing.
func Backup(ctx context.Context, rs store.RunStore, outputPath string) (*Archive, error) {
	runs, err := rs.ListRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	archive := &Archive{
		Version:   FormatVersion,
		CreatedAt: time.Now().UTC(),
		Runs:      make([]ArchivedRun, 0, len(runs)),
	}
	for _, run := range runs {
		records, err := rs.Steps(ctx, run.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to read steps for run %s: %w", run.ID, err)
		}
		archive.Runs = append(archive.Runs, ArchivedRun{Run: run, Records: records})
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create archive directory: %w", err)
		}
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(archive); err != nil {
		return nil, fmt.Errorf("failed to encode archive: %w", err)
	}

	return archive, nil
}

// RestoreMode controls how restore handles runs that already exist.
type RestoreMode string

const (
	// RestoreMerge skips runs whose id already exists (default).
	RestoreMerge RestoreMode = "merge"
	// RestoreReplace deletes existing runs before re-importing them.
	RestoreReplace RestoreMode = "replace"
)

// ParseRestoreMode validates a mode string from the command line.
func ParseRestoreMode(s string) (RestoreMode, error) {
	switch RestoreMode(s) {
	case RestoreMerge, RestoreReplace:
		return RestoreMode(s), nil
	default:
		return "", fmt.Errorf("unknown restore mode %q (want merge or replace)", s)
	}
}

// RestoreResult counts what a restore did.
type RestoreResult struct {
	RunsRestored int `json:"runs_restored"`
	RunsSkipped  int `json:"runs_skipped"`
	RunsReplaced int `json:"runs_replaced"`
}

// Restore imports the archive at inputPath into the store. Merge mode
// keeps existing runs and skips their archived copies; replace mode
// deletes and re-imports them.
func Restore(ctx context.Context, rs store.RunStore, inputPath string, mode RestoreMode) (*RestoreResult, error) {
	archive, err := readArchive(inputPath)
	if err != nil {
		return nil, err
	}

	result := &RestoreResult{}
	for _, ar := range archive.Runs {
		existing, err := rs.GetRun(ctx, ar.Run.ID)
		if err != nil && !errors.Is(err, store.ErrRunNotFound) {
			return nil, fmt.Errorf("failed to check run %s: %w", ar.Run.ID, err)
		}

		if existing != nil {
			if mode == RestoreMerge {
				result.RunsSkipped++
				continue
			}
			if err := rs.DeleteRun(ctx, ar.Run.ID); err != nil {
				return nil, fmt.Errorf("failed to replace run %s: %w", ar.Run.ID, err)
			}
			result.RunsReplaced++
		}

		if err := rs.ImportRun(ctx, ar.Run, ar.Records); err != nil {
			return nil, fmt.Errorf("failed to import run %s: %w", ar.Run.ID, err)
		}
		if existing == nil {
			result.RunsRestored++
		}
	}

	return result, nil
}

func readArchive(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	var archive Archive
	if err := json.NewDecoder(f).Decode(&archive); err != nil {
		return nil, fmt.Errorf("failed to decode archive: %w", err)
	}
	if archive.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported archive version: %d", archive.Version)
	}
	return &archive, nil
}

// Rotate keeps only the most recent keepN archives in dir, deleting
// older ones. Timestamped filenames sort chronologically, so name order
// is age order.
func Rotate(dir string, keepN int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read archive directory: %w", err)
	}

	var archives []os.DirEntry
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".json" {
			archives = append(archives, e)
		}
	}

	sort.Slice(archives, func(i, j int) bool {
		return archives[i].Name() > archives[j].Name()
	})

	if len(archives) > keepN {
		for _, a := range archives[keepN:] {
			path := filepath.Join(dir, a.Name())
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to remove old archive %s: %w", a.Name(), err)
			}
		}
	}

	return nil
}
