package state

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownFunctionalState is returned when a functional state name is not
// one of the defined receptor states.
var ErrUnknownFunctionalState = errors.New("unknown functional state")

// FunctionalState is the discrete receptor condition. Transitions between
// states are explicit; the engine's per-step receptor hook does not drive
// them in the baseline model.
type FunctionalState string

const (
	// FunctionalActive is the default signalling-competent state.
	FunctionalActive FunctionalState = "active"

	// FunctionalDesensitized marks a receptor with reduced responsiveness
	// after sustained ligand exposure.
	FunctionalDesensitized FunctionalState = "desensitized"

	// FunctionalInternalized marks a receptor withdrawn from the membrane.
	FunctionalInternalized FunctionalState = "internalized"

	// FunctionalUpregulated marks compensatory overexpression.
	FunctionalUpregulated FunctionalState = "upregulated"
)

// FunctionalStates returns all defined receptor states in canonical order.
func FunctionalStates() []FunctionalState {
	return []FunctionalState{
		FunctionalActive,
		FunctionalDesensitized,
		FunctionalInternalized,
		FunctionalUpregulated,
	}
}

// ParseFunctionalState maps a state name to its FunctionalState.
func ParseFunctionalState(s string) (FunctionalState, error) {
	switch FunctionalState(s) {
	case FunctionalActive, FunctionalDesensitized, FunctionalInternalized, FunctionalUpregulated:
		return FunctionalState(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFunctionalState, s)
	}
}

// ReceptorState holds one receptor subtype's slow adaptation variables.
//
// Density, sensitivity, localization bias and coupling efficacy live in
// [0,1]; the exposure trace and the functional-state timer are non-negative
// accumulators.
type ReceptorState struct {
	// Rho is receptor density in [0,1]. Default: 1.
	Rho float64 `json:"rho" yaml:"rho"`

	// Sigma is receptor sensitivity in [0,1]. Default: 1.
	Sigma float64 `json:"sigma" yaml:"sigma"`

	// LambdaLoc biases pre- vs post-synaptic localization in [0,1].
	// Default: 0.5 (balanced).
	LambdaLoc float64 `json:"lambda_loc" yaml:"lambda_loc"`

	// GammaGProtein is G-protein coupling efficacy in [0,1]. Default: 1.
	GammaGProtein float64 `json:"gamma_gprotein" yaml:"gamma_gprotein"`

	// Chi is the current functional state. Default: active.
	Chi FunctionalState `json:"chi" yaml:"chi"`

	// ExposureTrace is the decaying integral of ligand exposure. It feeds
	// future desensitization dynamics and only grows through
	// UpdateExposure.
	ExposureTrace float64 `json:"exposure_trace" yaml:"exposure_trace"`

	// TimeInState is simulated time spent in the current functional state.
	TimeInState float64 `json:"time_in_state" yaml:"time_in_state"`
}

// ExposureTraceTau is the exponential decay time constant of the ligand
// exposure trace, in simulated seconds.
const ExposureTraceTau = 10.0

// NewReceptorState builds a receptor state with clamped adaptation variables
// and zeroed accumulators. An empty functional state defaults to active.
func NewReceptorState(rho, sigma, lambdaLoc, gammaGProtein float64, chi FunctionalState) (ReceptorState, error) {
	if chi == "" {
		chi = FunctionalActive
	}
	if _, err := ParseFunctionalState(string(chi)); err != nil {
		return ReceptorState{}, err
	}
	return ReceptorState{
		Rho:           clamp01(rho),
		Sigma:         clamp01(sigma),
		LambdaLoc:     clamp01(lambdaLoc),
		GammaGProtein: clamp01(gammaGProtein),
		Chi:           chi,
	}, nil
}

// DefaultReceptorState returns a fully expressed, fully sensitive receptor
// in the active state with balanced localization.
func DefaultReceptorState() ReceptorState {
	return ReceptorState{
		Rho:           1,
		Sigma:         1,
		LambdaLoc:     0.5,
		GammaGProtein: 1,
		Chi:           FunctionalActive,
	}
}

// Saturation returns the fractional occupancy for ligand concentration c and
// dissociation constant kd using the binding curve S = c/(c + kd).
//
// A non-positive denominator (c and kd both zero, or pathological negative
// inputs) yields 0.
func (r ReceptorState) Saturation(c, kd float64) float64 {
	if c+kd <= 0 {
		return 0
	}
	return c / (c + kd)
}

// UpdateExposure advances the exposure trace by one step of length dt under
// saturation s:
//
//	E' = E*exp(-dt/tau) + s*dt
func (r *ReceptorState) UpdateExposure(s, dt float64) {
	r.ExposureTrace = math.Max(0, r.ExposureTrace*math.Exp(-dt/ExposureTraceTau)+s*dt)
}

// UpdateDensity shifts receptor density by delta, clamped to [0,1].
func (r *ReceptorState) UpdateDensity(delta float64) {
	r.Rho = clamp01(r.Rho + delta)
}

// UpdateSensitivity shifts receptor sensitivity by delta, clamped to [0,1].
func (r *ReceptorState) UpdateSensitivity(delta float64) {
	r.Sigma = clamp01(r.Sigma + delta)
}

// SetFunctionalState transitions the receptor to the given state.
//
// TimeInState resets only when the target differs from the current state; a
// no-op transition keeps the timer running. Transition rates between states
// are not part of the baseline model, so all transitions are caller-driven.
func (r *ReceptorState) SetFunctionalState(to FunctionalState) error {
	if _, err := ParseFunctionalState(string(to)); err != nil {
		return err
	}
	if to != r.Chi {
		r.Chi = to
		r.TimeInState = 0
	}
	return nil
}

// Tick advances the functional-state timer by dt. Negative dt is ignored.
func (r *ReceptorState) Tick(dt float64) {
	if dt > 0 {
		r.TimeInState += dt
	}
}
