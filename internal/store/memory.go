package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRunStore implements RunStore in process memory. It backs tests
// and dry runs where nothing should touch disk.
type MemoryRunStore struct {
	mu    sync.RWMutex
	runs  map[string]Run
	steps map[string][]StepRecord
}

// NewMemoryRunStore creates an empty in-memory store.
func NewMemoryRunStore() *MemoryRunStore {
	return &MemoryRunStore{
		runs:  make(map[string]Run),
		steps: make(map[string][]StepRecord),
	}
}

// CreateRun opens a new run and returns its id.
func (s *MemoryRunStore) CreateRun(ctx context.Context, meta RunMeta) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.runs[id] = Run{
		ID:        id,
		Meta:      meta,
		StartedAt: time.Now().UTC(),
	}
	return id, nil
}

// AppendStep records one step under an existing run. The record's maps
// are copied so later caller mutations cannot reach stored history.
func (s *MemoryRunStore) AppendStep(ctx context.Context, runID string, step StepRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[runID]; !ok {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}

	step.Concentrations = copyFloats(step.Concentrations)
	step.Fatigue = copyFloats(step.Fatigue)
	step.Metrics = copyFloats(step.Metrics)
	s.steps[runID] = append(s.steps[runID], step)
	return nil
}

// FinishRun marks a run as completed.
func (s *MemoryRunStore) FinishRun(ctx context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.runs[runID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}

	finished := time.Now().UTC()
	run.FinishedAt = &finished
	s.runs[runID] = run
	return nil
}

// GetRun returns a run's metadata.
func (s *MemoryRunStore) GetRun(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	run.Steps = len(s.steps[id])
	return &run, nil
}

// ListRuns returns all runs ordered by start time.
func (s *MemoryRunStore) ListRuns(ctx context.Context) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]Run, 0, len(s.runs))
	for id, run := range s.runs {
		run.Steps = len(s.steps[id])
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].StartedAt.Equal(runs[j].StartedAt) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].StartedAt.Before(runs[j].StartedAt)
	})
	return runs, nil
}

// Steps returns a run's records ordered by step index.
func (s *MemoryRunStore) Steps(ctx context.Context, runID string) ([]StepRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.runs[runID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}

	stored := s.steps[runID]
	steps := make([]StepRecord, len(stored))
	for i, step := range stored {
		step.Concentrations = copyFloats(step.Concentrations)
		step.Fatigue = copyFloats(step.Fatigue)
		step.Metrics = copyFloats(step.Metrics)
		steps[i] = step
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i].Index < steps[j].Index })
	return steps, nil
}

// DeleteRun removes a run and all its step records.
func (s *MemoryRunStore) DeleteRun(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[id]; !ok {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	delete(s.runs, id)
	delete(s.steps, id)
	return nil
}

// ImportRun inserts a run under its existing id, preserving timestamps.
func (s *MemoryRunStore) ImportRun(ctx context.Context, run Run, records []StepRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[run.ID]; ok {
		return fmt.Errorf("run %s already exists", run.ID)
	}

	run.Steps = 0
	s.runs[run.ID] = run

	steps := make([]StepRecord, len(records))
	for i, step := range records {
		step.Concentrations = copyFloats(step.Concentrations)
		step.Fatigue = copyFloats(step.Fatigue)
		step.Metrics = copyFloats(step.Metrics)
		steps[i] = step
	}
	s.steps[run.ID] = steps
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryRunStore) Close() error {
	return nil
}

func copyFloats(m map[string]float64) map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
