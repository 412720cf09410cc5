// Package readout projects low-level neurochemical state into a fixed
// vocabulary of bounded cognitive and affective metrics.
//
// Each metric formula combines receptor saturations, raw concentrations and
// oscillation band amplitudes, then normalizes its raw range into [0,1].
// Missing inputs read as zero, so partial state still produces a full
// metrics object.
package readout

import (
	"math"

	"github.com/angelina-gm1999/zados/internal/state"
)

// Metrics is the ephemeral readout of one simulation instant: eight named
// values, each in [0,1]. It is recomputed on every call and never persisted
// by the engine.
type Metrics struct {
	// Motivation is approach and reward-seeking drive (DA-D3, OXTR,
	// opposed by GABA-B).
	Motivation float64 `json:"motivation" yaml:"motivation"`

	// Empathy is attunement to others (OXTR, 5-HT1A, theta coupling).
	Empathy float64 `json:"empathy" yaml:"empathy"`

	// CognitiveRigidity is resistance to set-shifting (NE-beta1, DA-D2,
	// opposed by CB1).
	CognitiveRigidity float64 `json:"cognitive_rigidity" yaml:"cognitive_rigidity"`

	// Fatigue is mental and physical exhaustion (GABA-B, delta).
	Fatigue float64 `json:"fatigue" yaml:"fatigue"`

	// Precision is error-detection sensitivity (NE-beta1, DA-D2, beta).
	Precision float64 `json:"precision" yaml:"precision"`

	// Openness is receptivity to novel structure (5-HT2A, DA-D3, opposed
	// by 5-HT1A).
	Openness float64 `json:"openness" yaml:"openness"`

	// Anxiety is threat anticipation (NE, CRH, cortisol, opposed by
	// GABA-A).
	Anxiety float64 `json:"anxiety" yaml:"anxiety"`

	// SocialEngagement is affiliative approach (OXTR, DA-D3, opposed by
	// cortisol).
	SocialEngagement float64 `json:"social_engagement" yaml:"social_engagement"`
}

// MetricNames lists the metric keys in canonical order, matching the field
// order of Metrics.
var MetricNames = []string{
	"motivation",
	"empathy",
	"cognitive_rigidity",
	"fatigue",
	"precision",
	"openness",
	"anxiety",
	"social_engagement",
}

// Map returns the metrics keyed by their canonical names.
func (m Metrics) Map() map[string]float64 {
	return map[string]float64{
		"motivation":         m.Motivation,
		"empathy":            m.Empathy,
		"cognitive_rigidity": m.CognitiveRigidity,
		"fatigue":            m.Fatigue,
		"precision":          m.Precision,
		"openness":           m.Openness,
		"anxiety":            m.Anxiety,
		"social_engagement":  m.SocialEngagement,
	}
}

// Motivation computes approach drive from D3 and oxytocin saturation minus
// GABA-B inhibition:
//
//	raw = S_DA_D3 + S_OXTR - S_GABA_B, normalized as (raw+1)/3
func Motivation(sDAD3, sOXTR, sGABAB float64) float64 {
	return clamp01((sDAD3 + sOXTR - sGABAB + 1) / 3)
}

// Empathy computes attunement as oxytocin saturation gated by theta
// amplitude and 5-HT1A saturation:
//
//	raw = S_OXTR * phi_theta * S_5HT1A
func Empathy(sOXTR, phiTheta, s5HT1A float64) float64 {
	return clamp01(sOXTR * phiTheta * s5HT1A)
}

// CognitiveRigidity computes set-shifting resistance:
//
//	raw = S_NE_beta1 + S_DA_D2 - S_CB1, normalized as (raw+1)/3
func CognitiveRigidity(sNEBeta1, sDAD2, sCB1 float64) float64 {
	return clamp01((sNEBeta1 + sDAD2 - sCB1 + 1) / 3)
}

// Fatigue computes exhaustion from GABA-B saturation and delta amplitude:
//
//	raw = S_GABA_B + phi_delta, normalized as raw/2
func Fatigue(sGABAB, phiDelta float64) float64 {
	return clamp01((sGABAB + phiDelta) / 2)
}

// Precision computes error-detection sensitivity, beta-gated:
//
//	raw = (S_NE_beta1 + S_DA_D2) * phi_beta, normalized as raw/2
func Precision(sNEBeta1, sDAD2, phiBeta float64) float64 {
	return clamp01((sNEBeta1 + sDAD2) * phiBeta / 2)
}

// Openness computes receptivity to novelty:
//
//	raw = S_5HT2A + S_DA_D3 - S_5HT1A, normalized as (raw+1)/3
func Openness(s5HT2A, sDAD3, s5HT1A float64) float64 {
	return clamp01((s5HT2A + sDAD3 - s5HT1A + 1) / 3)
}

// Anxiety computes threat anticipation from stress-axis concentrations
// opposed by GABA-A saturation:
//
//	raw = (C_NE + C_CRH + C_cortisol)/3 - S_GABA_A, normalized as (raw+1)/2
func Anxiety(cNE, cCRH, cCortisol, sGABAA float64) float64 {
	return clamp01(((cNE+cCRH+cCortisol)/3 - sGABAA + 1) / 2)
}

// SocialEngagement computes affiliative approach damped by cortisol:
//
//	raw = S_OXTR + S_DA_D3 - C_cortisol, normalized as (raw+1)/3
func SocialEngagement(sOXTR, sDAD3, cCortisol float64) float64 {
	return clamp01((sOXTR + sDAD3 - cCortisol + 1) / 3)
}

// Compute assembles all eight metrics from concentration, saturation and
// oscillation snapshots. Missing keys read as zero, which allows partial
// state to produce a readout.
func Compute(
	concentrations map[state.NeurotransmitterID]float64,
	saturations map[state.ReceptorID]float64,
	oscillations map[state.Band]float64,
) Metrics {
	conc := func(id state.NeurotransmitterID) float64 { return concentrations[id] }
	sat := func(id state.ReceptorID) float64 { return saturations[id] }
	osc := func(b state.Band) float64 { return oscillations[b] }

	return Metrics{
		Motivation:        Motivation(sat("DA_D3"), sat("OXTR"), sat("GABA_B")),
		Empathy:           Empathy(sat("OXTR"), osc(state.BandTheta), sat("5HT_1A")),
		CognitiveRigidity: CognitiveRigidity(sat("NE_beta1"), sat("DA_D2"), sat("CB1")),
		Fatigue:           Fatigue(sat("GABA_B"), osc(state.BandDelta)),
		Precision:         Precision(sat("NE_beta1"), sat("DA_D2"), osc(state.BandBeta)),
		Openness:          Openness(sat("5HT_2A"), sat("DA_D3"), sat("5HT_1A")),
		Anxiety:           Anxiety(conc("NE"), conc("CRH"), conc("cortisol"), sat("GABA_A")),
		SocialEngagement:  SocialEngagement(sat("OXTR"), sat("DA_D3"), conc("cortisol")),
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
