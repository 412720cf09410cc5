package engine

import (
	"fmt"

	"github.com/angelina-gm1999/zados/internal/constants"
	"github.com/angelina-gm1999/zados/internal/readout"
	"github.com/angelina-gm1999/zados/internal/state"
)

// SimulateConfig drives a batch run over a precomputed time grid. All
// driver functions are optional.
type SimulateConfig struct {
	// T is the total simulated duration; the run covers [0, T) in steps
	// of the engine's dt. Default: 10.
	T float64

	// Signals supplies the modulation signals for the step starting at
	// time t.
	Signals func(t float64) map[state.NeurotransmitterID]Signals

	// Oscillation supplies the oscillation state to install before the
	// step starting at time t. Returning nil leaves the current state.
	Oscillation func(t float64) *state.OscillationState

	// Scheduler, when set, fires its due events before each step.
	Scheduler *EventScheduler
}

// StepSnapshot records the engine state after one step.
type StepSnapshot struct {
	Time           float64                              `json:"time"`
	Concentrations map[state.NeurotransmitterID]float64 `json:"concentrations"`
	Fatigue        map[state.NeurotransmitterID]float64 `json:"fatigue"`
	Metrics        readout.Metrics                      `json:"metrics"`
}

// History is the per-step record of a batch run.
type History []StepSnapshot

// Last returns the final snapshot; the zero snapshot when the history
// is empty.
func (h History) Last() StepSnapshot {
	if len(h) == 0 {
		return StepSnapshot{}
	}
	return h[len(h)-1]
}

// Simulate drives the engine across [0, cfg.T) in steps of the engine's
// dt. Before each step it fires due scheduler events, applies the
// oscillation driver, and gathers the step's signals; after each step
// it records a snapshot. The loop is purely sequential.
func Simulate(e *Engine, cfg SimulateConfig) (History, error) {
	if cfg.T <= 0 {
		cfg.T = constants.DefaultSimulationDuration
	}

	steps := int(cfg.T / e.dt)
	history := make(History, 0, steps)

	for i := 0; i < steps; i++ {
		t := e.Now()

		if cfg.Scheduler != nil {
			cfg.Scheduler.Trigger(t)
		}
		if cfg.Oscillation != nil {
			if o := cfg.Oscillation(t); o != nil {
				e.SetOscillationState(o)
			}
		}

		var signals map[state.NeurotransmitterID]Signals
		if cfg.Signals != nil {
			signals = cfg.Signals(t)
		}

		if err := e.Step(signals); err != nil {
			return history, fmt.Errorf("simulate at t=%g: %w", t, err)
		}

		history = append(history, e.snapshot())
	}

	return history, nil
}

// snapshot captures the per-neurotransmitter totals, fatigue levels and
// the metric readout at the current time.
func (e *Engine) snapshot() StepSnapshot {
	snap := StepSnapshot{
		Time:           e.now,
		Concentrations: make(map[state.NeurotransmitterID]float64),
		Fatigue:        make(map[state.NeurotransmitterID]float64),
		Metrics:        e.Readout(),
	}
	for _, entry := range e.reg.Neurotransmitters() {
		snap.Concentrations[entry.ID] = entry.State.C()
		snap.Fatigue[entry.ID] = entry.State.F
	}
	return snap
}
