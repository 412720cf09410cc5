package simulation

import (
	"testing"

	"github.com/angelina-gm1999/zados/internal/engine"
	"github.com/angelina-gm1999/zados/internal/kinetics"
	"github.com/angelina-gm1999/zados/internal/state"
)

// Runner orchestrates multi-step simulation experiments against a real
// engine.
type Runner struct {
	t *testing.T
}

// NewRunner creates a simulation runner.
func NewRunner(t *testing.T) *Runner {
	t.Helper()
	return &Runner{t: t}
}

// Run executes the scenario and returns the collected results.
func (r *Runner) Run(scenario Scenario) Result {
	r.t.Helper()

	steps := scenario.Steps
	if steps == 0 {
		steps = 100
	}

	e := engine.New(engine.Config{
		Dt:             scenario.Dt,
		Seed:           scenario.Seed,
		Noise:          scenario.Noise,
		GainModulation: scenario.GainModulation,
	})
	r.seedEngine(e, scenario)

	result := Result{
		Snapshots: make([]Snapshot, 0, steps),
		Engine:    e,
	}

	for i := 0; i < steps; i++ {
		if scenario.BeforeStep != nil {
			scenario.BeforeStep(i, e)
		}

		var signals map[state.NeurotransmitterID]engine.Signals
		if scenario.SignalsFor != nil {
			signals = scenario.SignalsFor(i)
		}

		if err := e.Step(signals); err != nil {
			r.t.Fatalf("scenario %s: step %d: %v", scenario.Name, i, err)
		}

		result.Snapshots = append(result.Snapshots, snapshot(e))
	}

	return result
}

// seedEngine registers all populations and the oscillation envelope
// from the scenario.
func (r *Runner) seedEngine(e *engine.Engine, scenario Scenario) {
	r.t.Helper()

	for _, spec := range scenario.Neurotransmitters {
		st := spec.ToState()
		if err := e.AddNeurotransmitter(state.NeurotransmitterID(spec.ID), &st, spec.Params); err != nil {
			r.t.Fatalf("scenario: AddNeurotransmitter(%s): %v", spec.ID, err)
		}
	}

	for _, spec := range scenario.Receptors {
		st, err := spec.ToState()
		if err != nil {
			r.t.Fatalf("scenario: receptor %s: %v", spec.ID, err)
		}
		var params *kinetics.ReceptorParams
		if spec.Kd != 0 {
			params = &kinetics.ReceptorParams{Kd: spec.Kd}
		}
		if err := e.AddReceptor(state.ReceptorID(spec.ID), &st, params); err != nil {
			r.t.Fatalf("scenario: AddReceptor(%s): %v", spec.ID, err)
		}
	}

	if len(scenario.Oscillation) > 0 {
		osc := state.NewOscillationState(0, 0, 0, 0, 0)
		for band, amp := range scenario.Oscillation {
			if err := osc.SetBand(band, amp); err != nil {
				r.t.Fatalf("scenario: oscillation %s: %v", band, err)
			}
		}
		e.SetOscillationState(osc)
	}
}

// snapshot captures the per-neurotransmitter components, fatigue and
// the metric readout after a step.
func snapshot(e *engine.Engine) Snapshot {
	snap := Snapshot{
		Time:    e.Now(),
		Tonic:   make(map[state.NeurotransmitterID]float64),
		Phasic:  make(map[state.NeurotransmitterID]float64),
		Total:   make(map[state.NeurotransmitterID]float64),
		Fatigue: make(map[state.NeurotransmitterID]float64),
		Metrics: e.Readout(),
	}
	for _, entry := range e.Registry().Neurotransmitters() {
		snap.Tonic[entry.ID] = entry.State.CTonic
		snap.Phasic[entry.ID] = entry.State.CPhasic
		snap.Total[entry.ID] = entry.State.C()
		snap.Fatigue[entry.ID] = entry.State.F
	}
	return snap
}
