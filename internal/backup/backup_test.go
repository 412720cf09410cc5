package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/angelina-gm1999/zados/internal/store"
)

// seedStore fills an in-memory store with three finished runs of four
// steps each.
func seedStore(t *testing.T) (*store.MemoryRunStore, []string) {
	t.Helper()
	ctx := context.Background()
	s := store.NewMemoryRunStore()

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := s.CreateRun(ctx, store.RunMeta{
			Scenario: fmt.Sprintf("scenario-%d", i),
			Dt:       0.01,
			Duration: 1,
			Seed:     int64(i),
		})
		if err != nil {
			t.Fatalf("CreateRun: %v", err)
		}
		for j := 0; j < 4; j++ {
			err := s.AppendStep(ctx, id, store.StepRecord{
				Index:          j,
				Time:           float64(j) * 0.01,
				Concentrations: map[string]float64{"DA": 0.5, "NE": 0.3},
				Fatigue:        map[string]float64{"DA": float64(j) * 1e-5},
				Metrics:        map[string]float64{"motivation": 0.4},
			})
			if err != nil {
				t.Fatalf("AppendStep: %v", err)
			}
		}
		if err := s.FinishRun(ctx, id); err != nil {
			t.Fatalf("FinishRun: %v", err)
		}
		ids = append(ids, id)
	}
	return s, ids
}

func TestBackupRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	src, ids := seedStore(t)
	path := filepath.Join(t.TempDir(), "archive.json")

	archive, err := Backup(ctx, src, path)
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	if len(archive.Runs) != 3 {
		t.Fatalf("archive has %d runs, want 3", len(archive.Runs))
	}

	dst := store.NewMemoryRunStore()
	result, err := Restore(ctx, dst, path, RestoreMerge)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if result.RunsRestored != 3 || result.RunsSkipped != 0 {
		t.Errorf("restore counts = %+v, want 3 restored, 0 skipped", result)
	}

	for _, id := range ids {
		run, err := dst.GetRun(ctx, id)
		if err != nil {
			t.Fatalf("restored run %s missing: %v", id, err)
		}
		if run.FinishedAt == nil {
			t.Errorf("run %s lost its finished timestamp", id)
		}
		if run.Steps != 4 {
			t.Errorf("run %s has %d steps, want 4", id, run.Steps)
		}

		steps, err := dst.Steps(ctx, id)
		if err != nil {
			t.Fatalf("Steps(%s): %v", id, err)
		}
		if len(steps) != 4 {
			t.Fatalf("run %s restored %d records, want 4", id, len(steps))
		}
		if c := steps[2].Concentrations["DA"]; c != 0.5 {
			t.Errorf("run %s step 2 DA = %v, want 0.5", id, c)
		}
	}
}

func TestRestoreMergeSkipsExisting(t *testing.T) {
	ctx := context.Background()
	src, _ := seedStore(t)
	path := filepath.Join(t.TempDir(), "archive.json")

	if _, err := Backup(ctx, src, path); err != nil {
		t.Fatalf("Backup: %v", err)
	}

	result, err := Restore(ctx, src, path, RestoreMerge)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if result.RunsSkipped != 3 || result.RunsRestored != 0 || result.RunsReplaced != 0 {
		t.Errorf("restore counts = %+v, want 3 skipped", result)
	}
}

func TestRestoreReplaceResetsRuns(t *testing.T) {
	ctx := context.Background()
	src, ids := seedStore(t)
	path := filepath.Join(t.TempDir(), "archive.json")

	if _, err := Backup(ctx, src, path); err != nil {
		t.Fatalf("Backup: %v", err)
	}

	// Drift the live store past the archived state.
	err := src.AppendStep(ctx, ids[0], store.StepRecord{Index: 4, Time: 0.04})
	if err != nil {
		t.Fatalf("AppendStep: %v", err)
	}

	result, err := Restore(ctx, src, path, RestoreReplace)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if result.RunsReplaced != 3 {
		t.Errorf("restore counts = %+v, want 3 replaced", result)
	}

	steps, err := src.Steps(ctx, ids[0])
	if err != nil {
		t.Fatalf("Steps: %v", err)
	}
	if len(steps) != 4 {
		t.Errorf("replace left %d records, want the archived 4", len(steps))
	}
}

func TestParseRestoreMode(t *testing.T) {
	if _, err := ParseRestoreMode("merge"); err != nil {
		t.Errorf("merge rejected: %v", err)
	}
	if _, err := ParseRestoreMode("replace"); err != nil {
		t.Errorf("replace rejected: %v", err)
	}
	if _, err := ParseRestoreMode("overwrite"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestVerifyCleanArchive(t *testing.T) {
	ctx := context.Background()
	src, _ := seedStore(t)
	path := filepath.Join(t.TempDir(), "archive.json")

	if _, err := Backup(ctx, src, path); err != nil {
		t.Fatalf("Backup: %v", err)
	}

	result, err := Verify(path)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !result.OK() {
		t.Errorf("clean archive flagged: %v", result.Problems)
	}
	if result.Runs != 3 || result.Records != 12 {
		t.Errorf("verify counts = %d runs, %d records, want 3 and 12", result.Runs, result.Records)
	}
}

func TestVerifyFlagsInconsistencies(t *testing.T) {
	started := time.Now().UTC()
	finished := started.Add(-time.Hour)

	archive := Archive{
		Version:   FormatVersion,
		CreatedAt: started,
		Runs: []ArchivedRun{
			{
				Run: store.Run{ID: "run-a", StartedAt: started, FinishedAt: &finished, Steps: 7},
				Records: []store.StepRecord{
					{Index: 0},
					{Index: 3},
				},
			},
			{Run: store.Run{ID: "run-a", StartedAt: started}},
		},
	}

	path := filepath.Join(t.TempDir(), "tampered.json")
	data, err := json.Marshal(archive)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	result, err := Verify(path)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if result.OK() {
		t.Fatal("tampered archive passed verification")
	}

	all := strings.Join(result.Problems, "\n")
	for _, want := range []string{"7 steps", "has index 3", "duplicate id", "finished before"} {
		if !strings.Contains(all, want) {
			t.Errorf("problems missing %q:\n%s", want, all)
		}
	}
}

func TestVerifyRejectsUnsupportedVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.json")
	if err := os.WriteFile(path, []byte(`{"version": 9, "runs": []}`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Verify(path); err == nil {
		t.Error("expected error for unsupported version")
	}
}

func TestRotateKeepsNewest(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"zados-runs-20260101-000001.json",
		"zados-runs-20260101-000002.json",
		"zados-runs-20260101-000003.json",
		"zados-runs-20260101-000004.json",
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	if err := Rotate(dir, 2); err != nil {
		t.Fatalf("Rotate: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("rotation left %d archives, want 2", len(entries))
	}
	for _, e := range entries {
		if e.Name() != names[2] && e.Name() != names[3] {
			t.Errorf("rotation kept %s, want only the two newest", e.Name())
		}
	}
}

func TestRotateMissingDirIsNoop(t *testing.T) {
	if err := Rotate(filepath.Join(t.TempDir(), "absent"), 3); err != nil {
		t.Errorf("Rotate on missing dir: %v", err)
	}
}

func TestListSkipsNonArchives(t *testing.T) {
	ctx := context.Background()
	src, _ := seedStore(t)
	dir := t.TempDir()

	if _, err := Backup(ctx, src, filepath.Join(dir, "good.json")); err != nil {
		t.Fatalf("Backup: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "garbage.json"), []byte("not json"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	infos, err := List(dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("List returned %d archives, want 1", len(infos))
	}
	if infos[0].Runs != 3 {
		t.Errorf("archive reports %d runs, want 3", infos[0].Runs)
	}
	if infos[0].Size == 0 {
		t.Error("archive size not recorded")
	}
}
