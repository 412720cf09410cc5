// Package engine advances the registered neurochemical state through
// discrete simulation steps and projects it into the bounded metric
// readout.
//
// The engine is the online simulator: each Step consumes the
// instantaneous modulation signals for that step and commits the updated
// state back to the registry before returning. For batch runs over a
// precomputed time grid see Simulate.
package engine

import (
	"fmt"

	"github.com/angelina-gm1999/zados/internal/constants"
	"github.com/angelina-gm1999/zados/internal/kinetics"
	"github.com/angelina-gm1999/zados/internal/readout"
	"github.com/angelina-gm1999/zados/internal/registry"
	"github.com/angelina-gm1999/zados/internal/sde"
	"github.com/angelina-gm1999/zados/internal/state"
)

// Signals carries the instantaneous modulation inputs for one
// neurotransmitter during one step.
type Signals struct {
	// Novelty is the stimulus novelty in [0,1]. Values below the novelty
	// threshold contribute no drive.
	Novelty float64 `json:"novelty" yaml:"novelty"`

	// RPE is the reward prediction error (actual minus predicted). It is
	// signed; a strongly negative RPE can suppress release.
	RPE float64 `json:"rpe" yaml:"rpe"`

	// Effort is the task demand in [0,1]. Values below the effort
	// threshold contribute no drive.
	Effort float64 `json:"effort" yaml:"effort"`
}

// Config holds the engine's integration parameters.
type Config struct {
	// Dt is the fixed integration step length. Default: 0.01.
	Dt float64

	// Seed seeds the Brownian noise source when Noise is nil.
	Seed int64

	// Noise supplies the Wiener increments consumed by the bounded
	// steps. When nil, a seeded Brownian source is built from Seed.
	// Supplying sde.NewFixed(0) makes every step noise-free.
	Noise sde.NoiseSource

	// GainModulation couples release gains to the oscillation state:
	// beta boosts novelty sensitivity, gamma boosts RPE gain, alpha
	// damps baseline release.
	GainModulation bool
}

// Engine advances the neurochemical state one fixed-dt step at a time.
// It exclusively owns its registry; nothing else mutates registered
// state while the engine is live. Steps are synchronous and never
// block, so a single goroutine drives the whole simulation.
type Engine struct {
	reg   *registry.Registry
	noise sde.NoiseSource
	now   float64
	dt    float64

	gainModulation bool
}

// New builds an engine around a fresh registry.
func New(cfg Config) *Engine {
	if cfg.Dt <= 0 {
		cfg.Dt = constants.DefaultDt
	}
	noise := cfg.Noise
	if noise == nil {
		noise = sde.NewSeededBrownian(cfg.Seed)
	}
	return &Engine{
		reg:            registry.New(),
		noise:          noise,
		dt:             cfg.Dt,
		gainModulation: cfg.GainModulation,
	}
}

// Registry exposes the engine's registry for inspection. Mutating it
// mid-step is not supported.
func (e *Engine) Registry() *registry.Registry {
	return e.reg
}

// Now returns the current simulation time.
func (e *Engine) Now() float64 {
	return e.now
}

// Dt returns the fixed step length.
func (e *Engine) Dt() float64 {
	return e.dt
}

// AddNeurotransmitter registers a neurotransmitter. A nil initial state
// registers the baseline state; nil params register the defaults.
func (e *Engine) AddNeurotransmitter(id state.NeurotransmitterID, initial *state.NeurotransmitterState, params *kinetics.Params) error {
	st := state.DefaultNeurotransmitterState()
	if initial != nil {
		st = *initial
	}
	p := kinetics.DefaultParams()
	if params != nil {
		p = *params
	}
	return e.reg.RegisterNeurotransmitter(id, st, p)
}

// AddReceptor registers a receptor subtype. A nil initial state
// registers the default state; nil params register the default Kd.
func (e *Engine) AddReceptor(id state.ReceptorID, initial *state.ReceptorState, params *kinetics.ReceptorParams) error {
	st := state.DefaultReceptorState()
	if initial != nil {
		st = *initial
	}
	p := kinetics.DefaultReceptorParams()
	if params != nil {
		p = *params
	}
	return e.reg.RegisterReceptor(id, st, p)
}

// SetOscillationState installs the global oscillation envelope. The
// engine never evolves it; external drivers update it between steps.
func (e *Engine) SetOscillationState(o *state.OscillationState) {
	e.reg.SetOscillation(o)
}

// Step advances the simulation one dt.
//
// For every registered neurotransmitter, in registration order: fetch
// state and params, compute fatigue-adjusted reversion rates for the
// tonic and phasic components, compute the tonic drift (reverting to
// CBaseline) and the phasic drift (reverting to zero), inject a
// saturating burst into the phasic drift when modulation signals for
// this neurotransmitter are present, integrate both components one
// absorbing-bounded Euler-Maruyama step into [0,1], accumulate fatigue,
// and write the new state back. Receptors then run their update hook,
// and the clock advances.
//
// Write-back is per-entity: a lookup failure part way leaves earlier
// neurotransmitters updated and later ones untouched, and the clock
// does not advance.
func (e *Engine) Step(signals map[state.NeurotransmitterID]Signals) error {
	for _, id := range e.reg.NeurotransmitterIDs() {
		sig, ok := signals[id]
		if err := e.stepNeurotransmitter(id, sig, ok); err != nil {
			return err
		}
	}

	for _, id := range e.reg.ReceptorIDs() {
		if err := e.stepReceptor(id); err != nil {
			return err
		}
	}

	e.now += e.dt
	return nil
}

func (e *Engine) stepNeurotransmitter(id state.NeurotransmitterID, sig Signals, present bool) error {
	st, err := e.reg.GetNeurotransmitter(id)
	if err != nil {
		return fmt.Errorf("step: %w", err)
	}
	p, err := e.reg.GetParams(id)
	if err != nil {
		return fmt.Errorf("step: %w", err)
	}

	thetaTonic := kinetics.EffectiveReversionRate(p.ThetaTonic, st.F, constants.FatigueScalingTonic)
	thetaPhasic := kinetics.EffectiveReversionRate(p.ThetaPhasic, st.F, constants.FatigueScalingPhasic)

	driftTonic := kinetics.Drift(st.CTonic, p.CBaseline, thetaTonic, st.EtaU, p.UBase, p.DBase, p.CBase)
	driftPhasic := kinetics.Drift(st.CPhasic, 0, thetaPhasic, st.EtaU, p.UBase, p.DBase, p.CBase)

	if present {
		// Injecting burst/dt makes the integrated contribution over
		// this step equal the burst amplitude.
		driftPhasic += e.burst(sig, st.F) / e.dt
	}

	diffTonic := kinetics.Diffusion(st.CTonic, p.SigmaTonic, true)
	diffPhasic := kinetics.Diffusion(st.CPhasic, p.SigmaPhasic, true)

	cTonic := sde.StepBounded(st.CTonic, driftTonic, diffTonic, e.dt, e.noise.Increment(e.dt), 0, 1, sde.BoundaryAbsorbing)
	cPhasic := sde.StepBounded(st.CPhasic, driftPhasic, diffPhasic, e.dt, e.noise.Increment(e.dt), 0, 1, sde.BoundaryAbsorbing)

	f := st.F + constants.FatigueAccumulationRate*e.dt

	// Transporter efficiency stays constant in the baseline model.
	next := state.NewNeurotransmitterState(cTonic, cPhasic, f, st.EtaU)
	if err := e.reg.UpdateNeurotransmitter(id, next); err != nil {
		return fmt.Errorf("step: %w", err)
	}
	return nil
}

// burst converts one step's modulation signals into a bounded phasic
// burst amplitude: per-signal drives, fatigue gating, theta-band
// oscillatory gating when an oscillation state is installed, then the
// saturating burst transform.
func (e *Engine) burst(sig Signals, fatigue float64) float64 {
	osc := e.reg.Oscillation()

	gains := kinetics.DefaultReleaseGains()
	if e.gainModulation && osc != nil {
		gains = kinetics.ModulatedReleaseGains(gains, osc)
	}

	drive := kinetics.CombinedReleaseDrive(
		kinetics.NoveltyDrive(sig.Novelty, gains.NoveltySensitivity, constants.NoveltyThreshold),
		kinetics.RPEDrive(sig.RPE, gains.RPEGain),
		kinetics.EffortDrive(sig.Effort, constants.DefaultEffortWillingness, constants.EffortThreshold),
		gains.Baseline,
	)
	drive = kinetics.FatigueGating(drive, fatigue, constants.FatigueGateThreshold, constants.FatigueGateSuppression)
	if osc != nil {
		drive = kinetics.OscillatoryGating(drive, osc.Theta, constants.ThetaBandPreference)
	}

	return kinetics.BurstAmplitude(drive, constants.EngineBurstSensitivity, constants.DefaultMaxBurst)
}

// stepReceptor is the per-receptor update hook. Receptor dynamics are a
// documented stub: the functional-state machine exists in the state
// layer but its transition rates are unspecified, so the hook validates
// the lookup and leaves the state untouched.
func (e *Engine) stepReceptor(id state.ReceptorID) error {
	if _, err := e.reg.GetReceptor(id); err != nil {
		return fmt.Errorf("step: %w", err)
	}
	return nil
}

// Readout projects the current state into the eight bounded metrics.
// Receptor saturations follow S = C/(C+Kd) with the governing
// neurotransmitter inferred from the receptor id prefix; a receptor
// whose neurotransmitter is not registered reads as zero saturation.
func (e *Engine) Readout() readout.Metrics {
	conc := make(map[state.NeurotransmitterID]float64)
	for _, entry := range e.reg.Neurotransmitters() {
		conc[entry.ID] = entry.State.C()
	}

	sats := make(map[state.ReceptorID]float64)
	for _, entry := range e.reg.Receptors() {
		c := conc[entry.ID.Neurotransmitter()]
		sats[entry.ID] = entry.State.Saturation(c, entry.Params.Kd)
	}

	var osc map[state.Band]float64
	if o := e.reg.Oscillation(); o != nil {
		osc = o.Amplitudes()
	}

	return readout.Compute(conc, sats, osc)
}
