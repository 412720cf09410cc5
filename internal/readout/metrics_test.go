package readout

import (
	"math"
	"strings"
	"testing"

	"github.com/angelina-gm1999/zados/internal/state"
)

func TestMetricFormulas(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{name: "motivation", got: Motivation(0.6, 0.5, 0.2), want: (0.6 + 0.5 - 0.2 + 1) / 3},
		{name: "empathy", got: Empathy(0.8, 0.5, 0.6), want: 0.8 * 0.5 * 0.6},
		{name: "cognitive rigidity", got: CognitiveRigidity(0.7, 0.6, 0.1), want: (0.7 + 0.6 - 0.1 + 1) / 3},
		{name: "fatigue", got: Fatigue(0.4, 0.6), want: (0.4 + 0.6) / 2},
		{name: "precision", got: Precision(0.7, 0.5, 0.8), want: (0.7 + 0.5) * 0.8 / 2},
		{name: "openness", got: Openness(0.5, 0.6, 0.3), want: (0.5 + 0.6 - 0.3 + 1) / 3},
		{name: "anxiety", got: Anxiety(0.6, 0.9, 0.9, 0.2), want: ((0.6+0.9+0.9)/3 - 0.2 + 1) / 2},
		{name: "social engagement", got: SocialEngagement(0.8, 0.6, 0.3), want: (0.8 + 0.6 - 0.3 + 1) / 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.want) > 1e-12 {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestMetrics_ClampEvenForOutOfRangeInputs(t *testing.T) {
	// Inputs far outside [0,1] must still produce clamped metrics.
	values := []float64{
		Motivation(10, 10, -10),
		Motivation(-10, -10, 10),
		Empathy(5, 5, 5),
		Anxiety(100, 100, 100, -5),
		SocialEngagement(-3, -3, 9),
		Fatigue(7, 7),
		Precision(9, 9, 9),
		CognitiveRigidity(-8, -8, 8),
		Openness(6, 6, -6),
	}
	for i, v := range values {
		if v < 0 || v > 1 {
			t.Errorf("metric %d = %v, want within [0,1]", i, v)
		}
	}
}

func TestCompute_FullState(t *testing.T) {
	conc := map[state.NeurotransmitterID]float64{
		"NE": 0.6, "CRH": 0.3, "cortisol": 0.3,
	}
	sats := map[state.ReceptorID]float64{
		"DA_D3": 0.6, "OXTR": 0.5, "GABA_B": 0.2, "5HT_1A": 0.4,
		"NE_beta1": 0.7, "DA_D2": 0.5, "CB1": 0.1, "GABA_A": 0.3, "5HT_2A": 0.5,
	}
	osc := map[state.Band]float64{
		state.BandTheta: 0.5, state.BandDelta: 0.2, state.BandBeta: 0.6,
	}

	m := Compute(conc, sats, osc)

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{name: "motivation", got: m.Motivation, want: (0.6 + 0.5 - 0.2 + 1) / 3},
		{name: "empathy", got: m.Empathy, want: 0.5 * 0.5 * 0.4},
		{name: "cognitive_rigidity", got: m.CognitiveRigidity, want: (0.7 + 0.5 - 0.1 + 1) / 3},
		{name: "fatigue", got: m.Fatigue, want: (0.2 + 0.2) / 2},
		{name: "precision", got: m.Precision, want: (0.7 + 0.5) * 0.6 / 2},
		{name: "openness", got: m.Openness, want: (0.5 + 0.6 - 0.4 + 1) / 3},
		{name: "anxiety", got: m.Anxiety, want: ((0.6+0.3+0.3)/3 - 0.3 + 1) / 2},
		{name: "social_engagement", got: m.SocialEngagement, want: (0.5 + 0.6 - 0.3 + 1) / 3},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-12 {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestCompute_MissingKeysReadAsZero(t *testing.T) {
	m := Compute(nil, nil, nil)

	// With everything absent the raw formulas collapse to their
	// zero-input normalizations.
	if math.Abs(m.Motivation-1.0/3) > 1e-12 {
		t.Errorf("motivation with empty state = %v, want 1/3", m.Motivation)
	}
	if m.Empathy != 0 {
		t.Errorf("empathy with empty state = %v, want 0", m.Empathy)
	}
	if math.Abs(m.Anxiety-0.5) > 1e-12 {
		t.Errorf("anxiety with empty state = %v, want 0.5", m.Anxiety)
	}
	if m.Fatigue != 0 {
		t.Errorf("fatigue with empty state = %v, want 0", m.Fatigue)
	}
}

func TestMetrics_Map(t *testing.T) {
	m := Metrics{Motivation: 0.1, Empathy: 0.2, CognitiveRigidity: 0.3, Fatigue: 0.4,
		Precision: 0.5, Openness: 0.6, Anxiety: 0.7, SocialEngagement: 0.8}

	got := m.Map()
	if len(got) != len(MetricNames) {
		t.Fatalf("Map() has %d entries, want %d", len(got), len(MetricNames))
	}
	for _, name := range MetricNames {
		if _, ok := got[name]; !ok {
			t.Errorf("Map() missing %q", name)
		}
	}
	if got["precision"] != 0.5 || got["social_engagement"] != 0.8 {
		t.Errorf("Map() values wrong: %+v", got)
	}
}

func TestSummary(t *testing.T) {
	m := Metrics{Motivation: 0.123456, Fatigue: 1}
	s := Summary(m)

	if !strings.HasPrefix(s, "Neurochemical Metrics:") {
		t.Errorf("Summary missing header: %q", s)
	}
	if !strings.Contains(s, "Motivation:         0.123") {
		t.Errorf("Summary missing formatted motivation line:\n%s", s)
	}
	if !strings.Contains(s, "Fatigue:            1.000") {
		t.Errorf("Summary missing formatted fatigue line:\n%s", s)
	}
	if got := len(strings.Split(s, "\n")); got != 9 {
		t.Errorf("Summary has %d lines, want 9", got)
	}
}

func TestDominantAndSuppressed(t *testing.T) {
	m := Metrics{
		Motivation: 0.9, Empathy: 0.7, CognitiveRigidity: 0.5,
		Fatigue: 0.3, Precision: 0.1, Openness: 0.5,
		Anxiety: 0.5, SocialEngagement: 0.75,
	}

	dom := Dominant(m, 0.7)
	wantDom := []string{"motivation", "empathy", "social_engagement"}
	if len(dom) != len(wantDom) {
		t.Fatalf("Dominant = %v, want %v", dom, wantDom)
	}
	for i := range wantDom {
		if dom[i] != wantDom[i] {
			t.Errorf("Dominant[%d] = %q, want %q (canonical order)", i, dom[i], wantDom[i])
		}
	}

	sup := Suppressed(m, 0.3)
	wantSup := []string{"fatigue", "precision"}
	if len(sup) != len(wantSup) {
		t.Fatalf("Suppressed = %v, want %v", sup, wantSup)
	}
	for i := range wantSup {
		if sup[i] != wantSup[i] {
			t.Errorf("Suppressed[%d] = %q, want %q", i, sup[i], wantSup[i])
		}
	}
}
