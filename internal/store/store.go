// Package store records simulation runs for later inspection. The
// engine itself stays persistence-free; only the command layer writes
// through a RunStore.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrRunNotFound reports a lookup for a run id the store has never seen.
var ErrRunNotFound = errors.New("run not found")

// RunMeta captures the scenario parameters a run was started with.
type RunMeta struct {
	Scenario       string  `json:"scenario"`
	Dt             float64 `json:"dt"`
	Duration       float64 `json:"duration"`
	Seed           int64   `json:"seed"`
	GainModulation bool    `json:"gain_modulation"`
}

// Run describes one recorded simulation run.
type Run struct {
	ID         string     `json:"id"`
	Meta       RunMeta    `json:"meta"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`

	// Steps is the number of recorded step records.
	Steps int `json:"steps"`
}

// StepRecord is one persisted simulation step. The maps are keyed by
// neurotransmitter id (concentrations, fatigue) and metric name.
type StepRecord struct {
	Index          int                `json:"index"`
	Time           float64            `json:"time"`
	Concentrations map[string]float64 `json:"concentrations"`
	Fatigue        map[string]float64 `json:"fatigue"`
	Metrics        map[string]float64 `json:"metrics"`
}

// RunStore persists simulation runs and their per-step records.
type RunStore interface {
	// CreateRun opens a new run and returns its id.
	CreateRun(ctx context.Context, meta RunMeta) (string, error)

	// AppendStep records one step under an existing run.
	AppendStep(ctx context.Context, runID string, step StepRecord) error

	// FinishRun marks a run as completed.
	FinishRun(ctx context.Context, runID string) error

	// GetRun returns a run's metadata.
	GetRun(ctx context.Context, id string) (*Run, error)

	// ListRuns returns all runs ordered by start time.
	ListRuns(ctx context.Context) ([]Run, error)

	// Steps returns a run's records ordered by step index.
	Steps(ctx context.Context, runID string) ([]StepRecord, error)

	// DeleteRun removes a run and all its step records.
	DeleteRun(ctx context.Context, id string) error

	// ImportRun inserts a run under its existing id, preserving
	// timestamps. Archive restores use this; live recording goes
	// through CreateRun.
	ImportRun(ctx context.Context, run Run, records []StepRecord) error

	Close() error
}
