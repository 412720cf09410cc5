// Package state defines the value containers of the neurochemical model:
// neurotransmitter concentration decompositions, receptor occupancy and
// functional state, and global oscillation band envelopes.
//
// Every numeric field is clamped to its domain on construction and after
// every mutating method, so downstream kinetics never defends against
// out-of-range values.
package state

import "math"

// NeurotransmitterState holds one neuromodulator's dynamical variables.
//
// The observable concentration decomposes as C = C_tonic + C_phasic: a slow
// baseline component reverting toward a homeostatic set-point plus a fast
// burst component reverting toward zero. Fatigue weakens reversion and
// transporter efficiency scales reuptake.
//
// States are plain values. The engine reads a state, computes the next one,
// and writes the replacement back to the registry wholesale; nothing mutates
// a registered state in place mid-step.
type NeurotransmitterState struct {
	// CTonic is the slow baseline concentration component. Non-negative.
	CTonic float64 `json:"c_tonic" yaml:"c_tonic"`

	// CPhasic is the fast burst concentration component. Non-negative.
	CPhasic float64 `json:"c_phasic" yaml:"c_phasic"`

	// F is accumulated fatigue in [0,1]. Higher fatigue weakens
	// homeostatic reversion and gates release drive.
	F float64 `json:"f" yaml:"f"`

	// EtaU is transporter efficiency in [0,1]. Scales reuptake loss.
	EtaU float64 `json:"eta_u" yaml:"eta_u"`
}

// NewNeurotransmitterState builds a state with every field clamped to its
// domain: concentrations floored at 0, fatigue and transporter efficiency
// clamped to [0,1].
func NewNeurotransmitterState(cTonic, cPhasic, f, etaU float64) NeurotransmitterState {
	return NeurotransmitterState{
		CTonic:  math.Max(0, cTonic),
		CPhasic: math.Max(0, cPhasic),
		F:       clamp01(f),
		EtaU:    clamp01(etaU),
	}
}

// DefaultNeurotransmitterState returns the resting state: tonic at the
// canonical 0.5 baseline, no phasic activity, no fatigue, full transporter
// efficiency.
func DefaultNeurotransmitterState() NeurotransmitterState {
	return NeurotransmitterState{CTonic: 0.5, CPhasic: 0, F: 0, EtaU: 1}
}

// C returns the total observable concentration, C_tonic + C_phasic.
func (s NeurotransmitterState) C() float64 {
	return s.CTonic + s.CPhasic
}

// clamp01 clamps v to [0,1].
func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
