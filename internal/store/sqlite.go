package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteRunStore implements RunStore on a single SQLite database file.
type SQLiteRunStore struct {
	mu     sync.RWMutex
	db     *sql.DB
	dbPath string
}

// NewSQLiteRunStore opens (or creates) the database at path and
// initializes the schema. The parent directory is created when missing.
func NewSQLiteRunStore(path string) (*SQLiteRunStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single writer.
	db.SetMaxOpenConns(1)

	if err := InitSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteRunStore{db: db, dbPath: path}, nil
}

// CreateRun opens a new run and returns its id.
func (s *SQLiteRunStore) CreateRun(ctx context.Context, meta RunMeta) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	started := time.Now().UTC().Format(time.RFC3339Nano)

	gain := 0
	if meta.GainModulation {
		gain = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, scenario, dt, duration, seed, gain_modulation, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, meta.Scenario, meta.Dt, meta.Duration, meta.Seed, gain, started)
	if err != nil {
		return "", fmt.Errorf("failed to create run: %w", err)
	}

	return id, nil
}

// AppendStep records one step under an existing run. The referential
// check rides on the run_id foreign key.
func (s *SQLiteRunStore) AppendStep(ctx context.Context, runID string, step StepRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	concentrations, err := json.Marshal(step.Concentrations)
	if err != nil {
		return fmt.Errorf("failed to marshal concentrations: %w", err)
	}
	fatigue, err := json.Marshal(step.Fatigue)
	if err != nil {
		return fmt.Errorf("failed to marshal fatigue: %w", err)
	}
	metrics, err := json.Marshal(step.Metrics)
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO run_steps (run_id, step_index, time, concentrations, fatigue, metrics)
		VALUES (?, ?, ?, ?, ?, ?)`,
		runID, step.Index, step.Time, string(concentrations), string(fatigue), string(metrics))
	if err != nil {
		return fmt.Errorf("failed to append step %d to run %s: %w", step.Index, runID, err)
	}

	return nil
}

// FinishRun marks a run as completed.
func (s *SQLiteRunStore) FinishRun(ctx context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	finished := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ? WHERE id = ?`, finished, runID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return nil
}

// GetRun returns a run's metadata.
func (s *SQLiteRunStore) GetRun(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT r.id, r.scenario, r.dt, r.duration, r.seed, r.gain_modulation,
		       r.started_at, r.finished_at,
		       (SELECT COUNT(*) FROM run_steps WHERE run_id = r.id)
		FROM runs r WHERE r.id = ?`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListRuns returns all runs ordered by start time.
func (s *SQLiteRunStore) ListRuns(ctx context.Context) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.scenario, r.dt, r.duration, r.seed, r.gain_modulation,
		       r.started_at, r.finished_at,
		       (SELECT COUNT(*) FROM run_steps WHERE run_id = r.id)
		FROM runs r ORDER BY r.started_at, r.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}

// Steps returns a run's records ordered by step index.
func (s *SQLiteRunStore) Steps(ctx context.Context, runID string) ([]StepRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM runs WHERE id = ?`, runID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check run: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT step_index, time, concentrations, fatigue, metrics
		FROM run_steps WHERE run_id = ? ORDER BY step_index`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query steps: %w", err)
	}
	defer rows.Close()

	var steps []StepRecord
	for rows.Next() {
		var step StepRecord
		var concentrations, fatigue, metrics string
		if err := rows.Scan(&step.Index, &step.Time, &concentrations, &fatigue, &metrics); err != nil {
			return nil, fmt.Errorf("failed to scan step: %w", err)
		}
		if err := json.Unmarshal([]byte(concentrations), &step.Concentrations); err != nil {
			return nil, fmt.Errorf("failed to unmarshal concentrations: %w", err)
		}
		if err := json.Unmarshal([]byte(fatigue), &step.Fatigue); err != nil {
			return nil, fmt.Errorf("failed to unmarshal fatigue: %w", err)
		}
		if err := json.Unmarshal([]byte(metrics), &step.Metrics); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metrics: %w", err)
		}
		steps = append(steps, step)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate steps: %w", err)
	}
	return steps, nil
}

// DeleteRun removes a run; its step records go with it via the
// ON DELETE CASCADE on run_steps.
func (s *SQLiteRunStore) DeleteRun(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

// ImportRun inserts a run under its existing id, preserving timestamps.
func (s *SQLiteRunStore) ImportRun(ctx context.Context, run Run, records []StepRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin import: %w", err)
	}
	defer tx.Rollback()

	gain := 0
	if run.Meta.GainModulation {
		gain = 1
	}
	var finished sql.NullString
	if run.FinishedAt != nil {
		finished = sql.NullString{String: run.FinishedAt.UTC().Format(time.RFC3339Nano), Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, scenario, dt, duration, seed, gain_modulation, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Meta.Scenario, run.Meta.Dt, run.Meta.Duration, run.Meta.Seed, gain,
		run.StartedAt.UTC().Format(time.RFC3339Nano), finished)
	if err != nil {
		return fmt.Errorf("failed to import run %s: %w", run.ID, err)
	}

	for _, step := range records {
		concentrations, err := json.Marshal(step.Concentrations)
		if err != nil {
			return fmt.Errorf("failed to marshal concentrations: %w", err)
		}
		fatigue, err := json.Marshal(step.Fatigue)
		if err != nil {
			return fmt.Errorf("failed to marshal fatigue: %w", err)
		}
		metrics, err := json.Marshal(step.Metrics)
		if err != nil {
			return fmt.Errorf("failed to marshal metrics: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO run_steps (run_id, step_index, time, concentrations, fatigue, metrics)
			VALUES (?, ?, ?, ?, ?, ?)`,
			run.ID, step.Index, step.Time, string(concentrations), string(fatigue), string(metrics))
		if err != nil {
			return fmt.Errorf("failed to import step %d of run %s: %w", step.Index, run.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteRunStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var gain int
	var started string
	var finished sql.NullString

	if err := row.Scan(&run.ID, &run.Meta.Scenario, &run.Meta.Dt, &run.Meta.Duration,
		&run.Meta.Seed, &gain, &started, &finished, &run.Steps); err != nil {
		return nil, err
	}

	run.Meta.GainModulation = gain != 0

	startedAt, err := time.Parse(time.RFC3339Nano, started)
	if err != nil {
		return nil, fmt.Errorf("invalid started_at %q: %w", started, err)
	}
	run.StartedAt = startedAt

	if finished.Valid {
		finishedAt, err := time.Parse(time.RFC3339Nano, finished.String)
		if err != nil {
			return nil, fmt.Errorf("invalid finished_at %q: %w", finished.String, err)
		}
		run.FinishedAt = &finishedAt
	}

	return &run, nil
}
