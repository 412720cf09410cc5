package state

import (
	"errors"
	"fmt"
)

// ErrUnknownBand is returned when a band name is not one of the five defined
// EEG bands.
var ErrUnknownBand = errors.New("unknown oscillation band")

// Band names one of the five EEG frequency bands.
type Band string

const (
	BandDelta Band = "delta"
	BandTheta Band = "theta"
	BandAlpha Band = "alpha"
	BandBeta  Band = "beta"
	BandGamma Band = "gamma"
)

// Bands returns the five bands in ascending frequency order.
func Bands() []Band {
	return []Band{BandDelta, BandTheta, BandAlpha, BandBeta, BandGamma}
}

// ParseBand maps a band name to its Band.
func ParseBand(s string) (Band, error) {
	switch Band(s) {
	case BandDelta, BandTheta, BandAlpha, BandBeta, BandGamma:
		return Band(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBand, s)
	}
}

// OscillationState holds the global EEG-band amplitude envelopes and a phase
// per band.
//
// Amplitudes live in [0,1]; phases are radians and are not wrapped. The
// registry owns at most one oscillation state and the engine never evolves
// it autonomously: external drivers set band values between steps.
type OscillationState struct {
	Delta float64 `json:"delta" yaml:"delta"`
	Theta float64 `json:"theta" yaml:"theta"`
	Alpha float64 `json:"alpha" yaml:"alpha"`
	Beta  float64 `json:"beta" yaml:"beta"`
	Gamma float64 `json:"gamma" yaml:"gamma"`

	// Phase holds the instantaneous phase per band, in radians.
	Phase map[Band]float64 `json:"phase,omitempty" yaml:"phase,omitempty"`
}

// NewOscillationState builds an oscillation state with all amplitudes
// clamped to [0,1] and zero phases.
func NewOscillationState(delta, theta, alpha, beta, gamma float64) *OscillationState {
	return &OscillationState{
		Delta: clamp01(delta),
		Theta: clamp01(theta),
		Alpha: clamp01(alpha),
		Beta:  clamp01(beta),
		Gamma: clamp01(gamma),
		Phase: make(map[Band]float64, len(Bands())),
	}
}

// SetBand sets one band's amplitude, clamped to [0,1].
func (o *OscillationState) SetBand(b Band, amplitude float64) error {
	switch b {
	case BandDelta:
		o.Delta = clamp01(amplitude)
	case BandTheta:
		o.Theta = clamp01(amplitude)
	case BandAlpha:
		o.Alpha = clamp01(amplitude)
	case BandBeta:
		o.Beta = clamp01(amplitude)
	case BandGamma:
		o.Gamma = clamp01(amplitude)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBand, b)
	}
	return nil
}

// GetBand returns one band's amplitude.
func (o *OscillationState) GetBand(b Band) (float64, error) {
	switch b {
	case BandDelta:
		return o.Delta, nil
	case BandTheta:
		return o.Theta, nil
	case BandAlpha:
		return o.Alpha, nil
	case BandBeta:
		return o.Beta, nil
	case BandGamma:
		return o.Gamma, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownBand, b)
	}
}

// SetPhase sets one band's phase in radians.
func (o *OscillationState) SetPhase(b Band, phase float64) error {
	if _, err := ParseBand(string(b)); err != nil {
		return err
	}
	if o.Phase == nil {
		o.Phase = make(map[Band]float64, len(Bands()))
	}
	o.Phase[b] = phase
	return nil
}

// GetPhase returns one band's phase in radians. Unset phases are 0.
func (o *OscillationState) GetPhase(b Band) (float64, error) {
	if _, err := ParseBand(string(b)); err != nil {
		return 0, err
	}
	return o.Phase[b], nil
}

// Amplitudes returns a band-to-amplitude snapshot of all five bands.
func (o *OscillationState) Amplitudes() map[Band]float64 {
	return map[Band]float64{
		BandDelta: o.Delta,
		BandTheta: o.Theta,
		BandAlpha: o.Alpha,
		BandBeta:  o.Beta,
		BandGamma: o.Gamma,
	}
}

// ThetaGammaCoupling returns the theta-gamma cross-frequency coupling
// strength as the product of the two amplitudes.
func (o *OscillationState) ThetaGammaCoupling() float64 {
	return o.Theta * o.Gamma
}

// AlphaBetaCoupling returns the alpha-beta cross-frequency coupling strength
// as the product of the two amplitudes.
func (o *OscillationState) AlphaBetaCoupling() float64 {
	return o.Alpha * o.Beta
}

// Normalize rescales the five amplitudes to sum to 1. A state with no
// active bands is left unchanged.
func (o *OscillationState) Normalize() {
	sum := o.Delta + o.Theta + o.Alpha + o.Beta + o.Gamma
	if sum <= 0 {
		return
	}
	o.Delta /= sum
	o.Theta /= sum
	o.Alpha /= sum
	o.Beta /= sum
	o.Gamma /= sum
}
