package simulation

import (
	"math"
	"testing"

	"github.com/angelina-gm1999/zados/internal/state"
)

// AssertConcentrationWithin asserts that a neurotransmitter's total
// concentration stays inside [min, max] from a given step onward.
func AssertConcentrationWithin(t *testing.T, result Result, id state.NeurotransmitterID, min, max float64, afterStep int) {
	t.Helper()
	for i := afterStep; i < len(result.Snapshots); i++ {
		c, ok := result.Snapshots[i].Total[id]
		if !ok {
			t.Errorf("AssertConcentrationWithin: step %d: neurotransmitter %s not found", i, id)
			continue
		}
		if c < min || c > max {
			t.Errorf("AssertConcentrationWithin: step %d: %s concentration %.6f not in [%.4f, %.4f]", i, id, c, min, max)
		}
	}
}

// AssertConcentrationConverges asserts that a neurotransmitter's total
// concentration ends within tol of target by the final step.
func AssertConcentrationConverges(t *testing.T, result Result, id state.NeurotransmitterID, target, tol float64) {
	t.Helper()
	if len(result.Snapshots) == 0 {
		t.Errorf("AssertConcentrationConverges: no snapshots recorded")
		return
	}
	final := result.Final()
	c, ok := final.Total[id]
	if !ok {
		t.Errorf("AssertConcentrationConverges: neurotransmitter %s not found in final snapshot", id)
		return
	}
	if math.Abs(c-target) > tol {
		t.Errorf("AssertConcentrationConverges: %s final concentration %.6f not within %.4f of %.4f", id, c, tol, target)
	}
}

// AssertMonotoneFatigue asserts that a neurotransmitter's fatigue never
// decreases across the run.
func AssertMonotoneFatigue(t *testing.T, result Result, id state.NeurotransmitterID) {
	t.Helper()
	prev := math.Inf(-1)
	for i, snap := range result.Snapshots {
		f, ok := snap.Fatigue[id]
		if !ok {
			t.Errorf("AssertMonotoneFatigue: step %d: neurotransmitter %s not found", i, id)
			continue
		}
		if f < prev {
			t.Errorf("AssertMonotoneFatigue: step %d: %s fatigue %.6f dropped below previous %.6f", i, id, f, prev)
		}
		prev = f
	}
}

// AssertMetricsBounded asserts that every readout metric stays in [0, 1]
// at every recorded step.
func AssertMetricsBounded(t *testing.T, result Result) {
	t.Helper()
	for i, snap := range result.Snapshots {
		for name, v := range snap.Metrics.Map() {
			if v < 0 || v > 1 {
				t.Errorf("AssertMetricsBounded: step %d: metric %s = %.6f outside [0, 1]", i, name, v)
			}
			if math.IsNaN(v) {
				t.Errorf("AssertMetricsBounded: step %d: metric %s is NaN", i, name)
			}
		}
	}
}

// AssertPhasicResponds asserts that a neurotransmitter's phasic component
// rises above threshold in at least one step at or after afterStep.
func AssertPhasicResponds(t *testing.T, result Result, id state.NeurotransmitterID, threshold float64, afterStep int) {
	t.Helper()
	peak := math.Inf(-1)
	for i := afterStep; i < len(result.Snapshots); i++ {
		p, ok := result.Snapshots[i].Phasic[id]
		if !ok {
			t.Errorf("AssertPhasicResponds: step %d: neurotransmitter %s not found", i, id)
			return
		}
		if p >= threshold {
			return
		}
		if p > peak {
			peak = p
		}
	}
	t.Errorf("AssertPhasicResponds: %s phasic never reached %.4f after step %d (peak %.6f)", id, threshold, afterStep, peak)
}
