package simulation

import (
	"github.com/angelina-gm1999/zados/internal/engine"
	"github.com/angelina-gm1999/zados/internal/kinetics"
	"github.com/angelina-gm1999/zados/internal/readout"
	"github.com/angelina-gm1999/zados/internal/sde"
	"github.com/angelina-gm1999/zados/internal/state"
)

// Scenario defines a complete simulation experiment.
type Scenario struct {
	Name              string
	Neurotransmitters []NTSpec
	Receptors         []ReceptorSpec
	Oscillation       map[state.Band]float64
	Dt                float64 // 0 = engine default
	Seed              int64
	Steps             int // 0 = 100
	GainModulation    bool

	// Noise, when non-nil, replaces the seeded Brownian source. Use
	// sde.NewFixed() for a noise-free run.
	Noise sde.NoiseSource

	// SignalsFor, when non-nil, supplies the modulation signals for the
	// given step index. Returning nil drives a signal-free step.
	SignalsFor func(step int) map[state.NeurotransmitterID]engine.Signals

	// BeforeStep, when non-nil, is called before each step executes.
	// Use this to manipulate the engine between steps (e.g., switching
	// oscillation amplitudes mid-run).
	BeforeStep func(step int, e *engine.Engine)
}

// NTSpec is a flat builder for registering a neurotransmitter
// population in tests.
type NTSpec struct {
	ID      string
	CTonic  float64
	CPhasic float64
	Fatigue float64
	EtaU    float64 // 0 = full transporter efficiency

	// Params overrides the default kinetic coefficients wholesale.
	Params *kinetics.Params
}

// ToState builds the initial population state, applying defaults.
func (s NTSpec) ToState() state.NeurotransmitterState {
	etaU := s.EtaU
	if etaU == 0 {
		etaU = 1
	}
	return state.NewNeurotransmitterState(s.CTonic, s.CPhasic, s.Fatigue, etaU)
}

// ReceptorSpec is a flat builder for registering a receptor subtype in
// tests. Zero values fall back to the resting defaults.
type ReceptorSpec struct {
	ID  string
	Kd  float64
	Chi state.FunctionalState
}

// ToState builds the initial receptor state.
func (s ReceptorSpec) ToState() (state.ReceptorState, error) {
	chi := s.Chi
	if chi == "" {
		chi = state.FunctionalActive
	}
	return state.NewReceptorState(1, 1, 0.5, 1, chi)
}

// Snapshot records the observable state after one step.
type Snapshot struct {
	Time    float64
	Tonic   map[state.NeurotransmitterID]float64
	Phasic  map[state.NeurotransmitterID]float64
	Total   map[state.NeurotransmitterID]float64
	Fatigue map[state.NeurotransmitterID]float64
	Metrics readout.Metrics
}

// Result captures all steps and the final engine state.
type Result struct {
	Snapshots []Snapshot
	Engine    *engine.Engine
}

// Final returns the last snapshot; the zero snapshot when the run is
// empty.
func (r Result) Final() Snapshot {
	if len(r.Snapshots) == 0 {
		return Snapshot{}
	}
	return r.Snapshots[len(r.Snapshots)-1]
}
