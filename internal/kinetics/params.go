// Package kinetics implements the deterministic part of the neurochemical
// model: mass-balance losses and drift, fatigue-adjusted reversion, release
// drives with their gating transforms, and oscillatory gain modulation.
//
// Every function is pure. Parameters arrive explicitly; defaults live in
// Params / ReceptorParams and the constants package, never in hidden
// globals.
package kinetics

import (
	"fmt"

	"github.com/angelina-gm1999/zados/internal/constants"
)

// Params bundles the per-neurotransmitter kinetic coefficients the engine
// reads on every step. Registered configs override the defaults wholesale.
type Params struct {
	// CBaseline is the homeostatic set-point of the tonic component.
	// Default: 0.5.
	CBaseline float64 `json:"c_baseline" yaml:"c_baseline"`

	// ThetaTonic is the mean-reversion rate of the tonic component.
	// Default: 0.1.
	ThetaTonic float64 `json:"theta_tonic" yaml:"theta_tonic"`

	// ThetaPhasic is the mean-reversion rate of the phasic component.
	// Default: 1.0.
	ThetaPhasic float64 `json:"theta_phasic" yaml:"theta_phasic"`

	// SigmaTonic is the tonic noise amplitude. Default: 0.05.
	SigmaTonic float64 `json:"sigma_tonic" yaml:"sigma_tonic"`

	// SigmaPhasic is the phasic noise amplitude. Default: 0.1.
	SigmaPhasic float64 `json:"sigma_phasic" yaml:"sigma_phasic"`

	// UBase is the baseline reuptake rate, scaled by transporter
	// efficiency at evaluation time. Default: 0.1.
	UBase float64 `json:"u_base" yaml:"u_base"`

	// DBase is the enzymatic degradation rate. Default: 0.05.
	DBase float64 `json:"d_base" yaml:"d_base"`

	// CBase is the diffusion clearance rate. Default: 0.02.
	CBase float64 `json:"c_base" yaml:"c_base"`
}

// DefaultParams returns the canonical kinetic coefficients.
func DefaultParams() Params {
	return Params{
		CBaseline:   constants.DefaultCBaseline,
		ThetaTonic:  constants.DefaultThetaTonic,
		ThetaPhasic: constants.DefaultThetaPhasic,
		SigmaTonic:  constants.DefaultSigmaTonic,
		SigmaPhasic: constants.DefaultSigmaPhasic,
		UBase:       constants.DefaultUBase,
		DBase:       constants.DefaultDBase,
		CBase:       constants.DefaultCBase,
	}
}

// Validate rejects parameter sets that would destabilize the integrator.
func (p Params) Validate() error {
	if p.ThetaTonic < 0 || p.ThetaPhasic < 0 {
		return fmt.Errorf("reversion rates must be non-negative, got tonic=%v phasic=%v", p.ThetaTonic, p.ThetaPhasic)
	}
	if p.UBase < 0 || p.DBase < 0 || p.CBase < 0 {
		return fmt.Errorf("loss rates must be non-negative, got u=%v d=%v c=%v", p.UBase, p.DBase, p.CBase)
	}
	if p.CBaseline < 0 {
		return fmt.Errorf("baseline concentration must be non-negative, got %v", p.CBaseline)
	}
	return nil
}

// ReceptorParams bundles the per-receptor binding coefficients.
type ReceptorParams struct {
	// Kd is the dissociation constant of the binding curve. Default: 0.5.
	Kd float64 `json:"kd" yaml:"kd"`
}

// DefaultReceptorParams returns the canonical binding coefficients.
func DefaultReceptorParams() ReceptorParams {
	return ReceptorParams{Kd: constants.DefaultKd}
}

// Validate rejects binding coefficients outside their domain.
func (p ReceptorParams) Validate() error {
	if p.Kd <= 0 {
		return fmt.Errorf("dissociation constant must be positive, got %v", p.Kd)
	}
	return nil
}
