package simulation_test

import (
	"testing"

	"github.com/angelina-gm1999/zados/internal/engine"
	"github.com/angelina-gm1999/zados/internal/sde"
	"github.com/angelina-gm1999/zados/internal/simulation"
	"github.com/angelina-gm1999/zados/internal/state"
)

// richScenario wires every concentration, saturation and oscillation input
// the metric projection reads: eight neurotransmitter populations, the
// nine receptor subtypes the metrics sample, and a non-trivial oscillation
// envelope, driven by noisy dynamics and periodic signal bursts.
func richScenario(name string, seed int64) simulation.Scenario {
	return simulation.Scenario{
		Name: name,
		Neurotransmitters: []simulation.NTSpec{
			{ID: "DA", CTonic: 0.6},
			{ID: "5HT", CTonic: 0.4},
			{ID: "GABA", CTonic: 0.3},
			{ID: "NE", CTonic: 0.5},
			{ID: "OXTR", CTonic: 0.45},
			{ID: "CB1", CTonic: 0.2},
			{ID: "CRH", CTonic: 0.35},
			{ID: "cortisol", CTonic: 0.25},
		},
		Receptors: []simulation.ReceptorSpec{
			{ID: "DA_D2"},
			{ID: "DA_D3"},
			{ID: "OXTR"},
			{ID: "GABA_A"},
			{ID: "GABA_B"},
			{ID: "NE_beta1"},
			{ID: "CB1"},
			{ID: "5HT_1A", Kd: 0.3},
			{ID: "5HT_2A", Kd: 0.7},
		},
		Oscillation: map[state.Band]float64{
			state.BandDelta: 0.3,
			state.BandTheta: 0.6,
			state.BandBeta:  0.8,
		},
		Dt:             0.01,
		Seed:           seed,
		Steps:          400,
		GainModulation: true,
		SignalsFor: func(step int) map[state.NeurotransmitterID]engine.Signals {
			if step%10 != 0 {
				return nil
			}
			return map[state.NeurotransmitterID]engine.Signals{
				"DA": {Novelty: 0.9, RPE: 0.4},
				"NE": {Effort: 0.8},
			}
		},
	}
}

// TestMetricsBoundedUnderLoad validates the readout invariant: all eight
// metrics stay in [0, 1] at every step of a noisy, fully-populated run.
// The clamped projections cannot leave the interval by construction, so
// any violation points at a NaN or a broken saturation upstream.
func TestMetricsBoundedUnderLoad(t *testing.T) {
	r := simulation.NewRunner(t)

	result := r.Run(richScenario("metrics-bounded", 42))
	simulation.AssertMetricsBounded(t, result)
}

// TestMetricsBoundedAcrossSeeds runs the same rich scenario under several
// noise seeds. The bound must hold for every realization, not just a
// lucky one.
func TestMetricsBoundedAcrossSeeds(t *testing.T) {
	r := simulation.NewRunner(t)

	for _, seed := range []int64{1, 99, 12345} {
		result := r.Run(richScenario("metrics-bounded-seeds", seed))
		simulation.AssertMetricsBounded(t, result)
	}
}

// TestMotivationTracksDopamine validates that the metric projection
// actually moves with the underlying state: a high-dopamine run saturates
// DA_D3 harder than a depleted one (S = C/(C+0.5)), so its motivation
// readout must come out strictly higher.
func TestMotivationTracksDopamine(t *testing.T) {
	r := simulation.NewRunner(t)

	run := func(name string, cTonic float64) simulation.Result {
		return r.Run(simulation.Scenario{
			Name: name,
			Neurotransmitters: []simulation.NTSpec{
				{ID: "DA", CTonic: cTonic},
			},
			Receptors: []simulation.ReceptorSpec{
				{ID: "DA_D3"},
			},
			Dt:    0.01,
			Steps: 10,
			Noise: sde.NewFixed(),
		})
	}

	high := run("motivation-high-da", 0.9)
	low := run("motivation-low-da", 0.05)

	hm := high.Final().Metrics.Motivation
	lm := low.Final().Metrics.Motivation
	if hm <= lm {
		t.Errorf("motivation did not track dopamine: high-DA %.6f <= low-DA %.6f", hm, lm)
	}
}

// TestEmpathyRequiresTheta validates the multiplicative theta gate in the
// empathy projection: with oxytocin and serotonin saturations present but
// no oscillation envelope installed, empathy reads exactly zero; with a
// theta amplitude it turns positive.
func TestEmpathyRequiresTheta(t *testing.T) {
	r := simulation.NewRunner(t)

	base := simulation.Scenario{
		Neurotransmitters: []simulation.NTSpec{
			{ID: "OXTR", CTonic: 0.6},
			{ID: "5HT", CTonic: 0.5},
		},
		Receptors: []simulation.ReceptorSpec{
			{ID: "OXTR"},
			{ID: "5HT_1A"},
		},
		Dt:    0.01,
		Steps: 10,
		Noise: sde.NewFixed(),
	}

	flat := base
	flat.Name = "empathy-no-theta"
	resultFlat := r.Run(flat)

	waved := base
	waved.Name = "empathy-theta"
	waved.Oscillation = map[state.Band]float64{state.BandTheta: 0.7}
	resultWaved := r.Run(waved)

	if e := resultFlat.Final().Metrics.Empathy; e != 0 {
		t.Errorf("empathy without theta = %.6f, want exactly 0", e)
	}
	if e := resultWaved.Final().Metrics.Empathy; e <= 0 {
		t.Errorf("empathy with theta 0.7 = %.6f, want > 0", e)
	}
}
