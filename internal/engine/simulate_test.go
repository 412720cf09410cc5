package engine

import (
	"math"
	"testing"

	"github.com/angelina-gm1999/zados/internal/sde"
	"github.com/angelina-gm1999/zados/internal/state"
)

func TestSimulate_GridAndHistory(t *testing.T) {
	e := newQuietEngine(t)
	if err := e.AddNeurotransmitter("DA", nil, nil); err != nil {
		t.Fatalf("AddNeurotransmitter: %v", err)
	}

	hist, err := Simulate(e, SimulateConfig{T: 0.05})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	if len(hist) != 5 {
		t.Fatalf("history length = %d, want 5", len(hist))
	}
	if math.Abs(hist[0].Time-0.01) > 1e-12 {
		t.Errorf("first snapshot time = %v, want 0.01", hist[0].Time)
	}
	if math.Abs(hist.Last().Time-0.05) > 1e-9 {
		t.Errorf("last snapshot time = %v, want 0.05", hist.Last().Time)
	}
	if math.Abs(e.Now()-0.05) > 1e-9 {
		t.Errorf("engine time = %v, want 0.05", e.Now())
	}

	for i, snap := range hist {
		c, ok := snap.Concentrations["DA"]
		if !ok {
			t.Fatalf("snapshot %d missing DA concentration", i)
		}
		if c < 0 || c > 2 {
			t.Errorf("snapshot %d: concentration %v out of range", i, c)
		}
		if f := snap.Fatigue["DA"]; f < 0 || f > 1 {
			t.Errorf("snapshot %d: fatigue %v out of range", i, f)
		}
	}
}

func TestSimulate_SignalsDriver(t *testing.T) {
	e := newQuietEngine(t)
	if err := e.AddNeurotransmitter("DA", nil, nil); err != nil {
		t.Fatalf("AddNeurotransmitter: %v", err)
	}

	// Novelty on for the first half of the run only.
	signals := func(tm float64) map[state.NeurotransmitterID]Signals {
		if tm < 0.025 {
			return map[state.NeurotransmitterID]Signals{"DA": {Novelty: 0.9}}
		}
		return nil
	}

	hist, err := Simulate(e, SimulateConfig{T: 0.05, Signals: signals})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	// Phasic bursts push the total concentration up while the driver is
	// on; afterwards the phasic component decays.
	mid := hist[2].Concentrations["DA"]
	end := hist.Last().Concentrations["DA"]
	if mid <= 1.0 {
		t.Fatalf("mid concentration = %v, want above 1 after repeated bursts", mid)
	}
	if end >= mid {
		t.Errorf("concentration did not decay after signals stopped: mid %v, end %v", mid, end)
	}
}

func TestSimulate_OscillationDriverAndScheduler(t *testing.T) {
	e := newQuietEngine(t)
	if err := e.AddNeurotransmitter("DA", nil, nil); err != nil {
		t.Fatalf("AddNeurotransmitter: %v", err)
	}

	var sched EventScheduler
	fired := false
	sched.Add(0.02, func() { fired = true })

	osc := func(tm float64) *state.OscillationState {
		return state.NewOscillationState(0.2, 0.5, 0, 0, 0)
	}

	_, err := Simulate(e, SimulateConfig{T: 0.05, Oscillation: osc, Scheduler: &sched})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	if !fired {
		t.Error("scheduled event did not fire during the run")
	}
	if sched.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", sched.Pending())
	}
	got := e.Registry().Oscillation()
	if got == nil {
		t.Fatal("oscillation state not installed by driver")
	}
	if got.Theta != 0.5 {
		t.Errorf("theta = %v, want 0.5", got.Theta)
	}
}

func TestSimulate_DefaultDuration(t *testing.T) {
	e := New(Config{Dt: 1, Noise: sde.NewFixed(0)})
	if err := e.AddNeurotransmitter("DA", nil, nil); err != nil {
		t.Fatalf("AddNeurotransmitter: %v", err)
	}

	hist, err := Simulate(e, SimulateConfig{})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if len(hist) != 10 {
		t.Errorf("history length = %d, want 10 for the default duration", len(hist))
	}
}

func TestHistory_LastOnEmpty(t *testing.T) {
	var h History
	if got := h.Last(); got.Time != 0 || got.Concentrations != nil {
		t.Errorf("Last() on empty history = %+v, want zero snapshot", got)
	}
}
