// Package constants provides named constants used throughout the zados codebase.
// This centralizes magic numbers for better maintainability and documentation.
package constants

// Mass-balance kinetics defaults. Rates are per simulated second and apply
// per neurotransmitter unless a registered config overrides them.
const (
	// DefaultUBase is the baseline reuptake rate. Effective reuptake is
	// u_base scaled by the transporter efficiency eta_u.
	DefaultUBase = 0.1

	// DefaultDBase is the enzymatic degradation rate.
	DefaultDBase = 0.05

	// DefaultCBase is the diffusion clearance rate.
	DefaultCBase = 0.02

	// DefaultCBaseline is the homeostatic set-point the tonic component
	// reverts toward. The phasic component always reverts toward zero.
	DefaultCBaseline = 0.5

	// DefaultThetaTonic is the mean-reversion rate of the tonic component.
	DefaultThetaTonic = 0.1

	// DefaultThetaPhasic is the mean-reversion rate of the phasic
	// component. Phasic bursts decay an order of magnitude faster than
	// tonic deviations.
	DefaultThetaPhasic = 1.0

	// DefaultSigmaTonic is the noise amplitude of the tonic component.
	DefaultSigmaTonic = 0.05

	// DefaultSigmaPhasic is the noise amplitude of the phasic component.
	DefaultSigmaPhasic = 0.1
)

// Fatigue coupling into reversion rates. Fatigue weakens homeostatic pull;
// the effective rate is theta * (1 - scaling * F), floored at zero.
const (
	// FatigueScalingTonic scales how strongly fatigue weakens tonic
	// reversion.
	FatigueScalingTonic = 0.5

	// FatigueScalingPhasic scales how strongly fatigue weakens phasic
	// reversion.
	FatigueScalingPhasic = 0.3
)

// Release-drive defaults shared by the drive transforms.
const (
	// DefaultNoveltySensitivity is the gain applied to supra-threshold
	// novelty signals.
	DefaultNoveltySensitivity = 1.0

	// NoveltyThreshold is the novelty level below which no drive is
	// produced.
	NoveltyThreshold = 0.3

	// DefaultRPEGain is the gain applied to reward prediction errors.
	// RPE drive is signed: negative errors suppress release.
	DefaultRPEGain = 1.0

	// DefaultEffortWillingness is the gain applied to supra-threshold
	// effort demand.
	DefaultEffortWillingness = 1.0

	// EffortThreshold is the effort demand below which no drive is
	// produced.
	EffortThreshold = 0.2

	// DefaultBaselineDrive is the tonic release drive present with no
	// signals at all.
	DefaultBaselineDrive = 0.0
)

// Release gating and burst shaping.
const (
	// FatigueGateThreshold is the fatigue level above which release drive
	// starts to be suppressed.
	FatigueGateThreshold = 0.7

	// FatigueGateSuppression is the maximum fractional suppression applied
	// at full fatigue.
	FatigueGateSuppression = 0.5

	// DefaultBandPreference is the per-unit-amplitude gain of oscillatory
	// gating when no specific preference is configured.
	DefaultBandPreference = 1.0

	// ThetaBandPreference is the engine's fixed preference for theta-band
	// gating of release drive.
	ThetaBandPreference = 0.3

	// DefaultMaxBurst is the saturating ceiling of a single release burst.
	DefaultMaxBurst = 1.0

	// DefaultBurstSensitivity shapes how quickly the burst curve
	// saturates toward its ceiling.
	DefaultBurstSensitivity = 1.0

	// EngineBurstSensitivity is the burst sensitivity the engine applies
	// when converting gated drive into a phasic burst.
	EngineBurstSensitivity = 2.0
)

// Adaptive threshold dynamics for habituating drive transforms.
const (
	// ThresholdAdaptationRate converts accumulated activity trace into a
	// threshold increase.
	ThresholdAdaptationRate = 0.1

	// ActivityTraceTau is the exponential decay time constant of the
	// drive activity trace, in simulated seconds.
	ActivityTraceTau = 10.0
)

// Oscillatory gain modulation couples band amplitudes into release-drive
// parameters when enabled on the engine.
const (
	// GammaRPEBoost scales how strongly gamma amplitude boosts RPE gain.
	GammaRPEBoost = 0.5

	// BetaNoveltyBoost scales how strongly beta amplitude boosts novelty
	// sensitivity.
	BetaNoveltyBoost = 0.3

	// AlphaBaselineDamping scales how strongly alpha amplitude damps the
	// baseline release drive.
	AlphaBaselineDamping = 0.2
)

// Engine stepping defaults.
const (
	// DefaultDt is the engine step size in simulated seconds.
	DefaultDt = 0.01

	// FatigueAccumulationRate is the linear per-second fatigue increase
	// applied on every step.
	FatigueAccumulationRate = 0.001

	// DefaultSimulationDuration is the simulated span of a batch run when
	// the caller does not set one.
	DefaultSimulationDuration = 10.0
)

// Adaptive Euler-Maruyama step-size control.
const (
	// DefaultAdaptiveTolerance is the local error tolerance used to
	// accept or reject an adaptive step.
	DefaultAdaptiveTolerance = 1e-3

	// MinAdaptiveDt is the hard floor of the adaptive step size. Steps at
	// the floor are accepted regardless of the error estimate.
	MinAdaptiveDt = 1e-6

	// MaxAdaptiveDt is the hard ceiling of the adaptive step size.
	MaxAdaptiveDt = 1.0

	// AdaptiveGrowth is the factor applied to the step size after an
	// accepted step.
	AdaptiveGrowth = 1.5

	// AdaptiveShrink is the factor applied to the step size after a
	// rejected step.
	AdaptiveShrink = 0.5
)

// Readout and metric thresholds.
const (
	// DefaultKd is the dissociation constant of the receptor binding
	// curve when a registered receptor config does not override it.
	DefaultKd = 0.5

	// DominantThreshold is the metric level at or above which a metric
	// counts as dominant in readout summaries.
	DominantThreshold = 0.7

	// SuppressedThreshold is the metric level at or below which a metric
	// counts as suppressed in readout summaries.
	SuppressedThreshold = 0.3
)
