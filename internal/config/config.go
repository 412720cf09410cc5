// Package config loads and validates simulation scenarios.
// A scenario is a YAML document layered over the built-in defaults,
// with ZADOS_* environment variables overriding the scalar knobs.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/angelina-gm1999/zados/internal/constants"
	"github.com/angelina-gm1999/zados/internal/engine"
	"github.com/angelina-gm1999/zados/internal/kinetics"
	"github.com/angelina-gm1999/zados/internal/logging"
	"github.com/angelina-gm1999/zados/internal/state"
)

// Scenario describes one complete simulation run: the populations to
// register, the modulation signals driving them over time, and the
// integration parameters.
type Scenario struct {
	// Name identifies the scenario in logs and recorded runs.
	Name string `json:"name" yaml:"name"`

	// Dt is the integration step in simulated seconds. Default: 0.01.
	Dt float64 `json:"dt" yaml:"dt"`

	// Duration is the simulated time span. Default: 10.
	Duration float64 `json:"duration" yaml:"duration"`

	// Seed seeds the Brownian noise source.
	Seed int64 `json:"seed" yaml:"seed"`

	// LogLevel is one of trace, debug, info, warn, error. Default: info.
	LogLevel string `json:"log_level" yaml:"log_level"`

	// GainModulation couples release gains to oscillatory band power.
	GainModulation bool `json:"gain_modulation" yaml:"gain_modulation"`

	// Neurotransmitters lists the populations to register.
	Neurotransmitters []NeurotransmitterSpec `json:"neurotransmitters" yaml:"neurotransmitters"`

	// Receptors lists the receptor subtypes to register.
	Receptors []ReceptorSpec `json:"receptors" yaml:"receptors"`

	// Oscillation maps band names to initial amplitudes in [0,1].
	Oscillation map[string]float64 `json:"oscillation" yaml:"oscillation"`

	// Signals drives the modulation inputs over time.
	Signals []SignalSegment `json:"signals" yaml:"signals"`

	// Events schedules band amplitude changes at points in simulated time.
	Events []BandEvent `json:"events" yaml:"events"`
}

// NeurotransmitterSpec declares one population and its starting state.
type NeurotransmitterSpec struct {
	// ID is the registry key, e.g. "DA".
	ID string `json:"id" yaml:"id"`

	// CTonic is the initial tonic concentration.
	CTonic float64 `json:"c_tonic" yaml:"c_tonic"`

	// CPhasic is the initial phasic concentration.
	CPhasic float64 `json:"c_phasic" yaml:"c_phasic"`

	// Fatigue is the initial release fatigue in [0,1].
	Fatigue float64 `json:"fatigue" yaml:"fatigue"`

	// EtaU is the transporter efficiency. Zero is normalized to full
	// efficiency; disable reuptake through the kinetic u_base instead.
	EtaU float64 `json:"eta_u" yaml:"eta_u"`

	// Kinetics overrides the default rate coefficients wholesale;
	// omitted fields within the block stay zero.
	Kinetics *kinetics.Params `json:"kinetics,omitempty" yaml:"kinetics,omitempty"`
}

// ReceptorSpec declares one receptor subtype and its starting state.
// Zero-valued adaptation fields are normalized to the resting defaults.
type ReceptorSpec struct {
	// ID is the registry key; the prefix before the first underscore
	// names the governing neurotransmitter, e.g. "DA_D2".
	ID string `json:"id" yaml:"id"`

	// Rho is the surface receptor density.
	Rho float64 `json:"rho" yaml:"rho"`

	// Sigma is the receptor sensitivity.
	Sigma float64 `json:"sigma" yaml:"sigma"`

	// LambdaLoc is the synaptic/extrasynaptic localization in [0,1].
	LambdaLoc float64 `json:"lambda_loc" yaml:"lambda_loc"`

	// GammaGProtein is the G-protein coupling efficiency.
	GammaGProtein float64 `json:"gamma_gprotein" yaml:"gamma_gprotein"`

	// Chi is the functional state: active, desensitized, internalized,
	// or upregulated.
	Chi string `json:"chi" yaml:"chi"`

	// Kd is the dissociation constant for the occupancy curve.
	Kd float64 `json:"kd" yaml:"kd"`
}

// SignalSegment drives one neurotransmitter's modulation inputs over
// the half-open interval [From, To).
type SignalSegment struct {
	// Neurotransmitter names the population the segment drives.
	Neurotransmitter string `json:"neurotransmitter" yaml:"neurotransmitter"`

	From float64 `json:"from" yaml:"from"`
	To   float64 `json:"to" yaml:"to"`

	Novelty float64 `json:"novelty" yaml:"novelty"`
	RPE     float64 `json:"rpe" yaml:"rpe"`
	Effort  float64 `json:"effort" yaml:"effort"`
}

// BandEvent sets oscillation band amplitudes once the clock reaches At.
type BandEvent struct {
	At    float64            `json:"at" yaml:"at"`
	Bands map[string]float64 `json:"bands" yaml:"bands"`
}

// metricReceptors are the subtypes read by every metric projection.
var metricReceptors = []string{
	"DA_D2", "DA_D3", "GABA_A", "GABA_B",
	"5HT_1A", "5HT_2A", "NE_beta1", "OXTR", "CB1",
}

// Default returns the built-in scenario: a dopamine population, the
// nine receptor subtypes the metric readout consumes, and moderate
// oscillation amplitudes.
func Default() *Scenario {
	receptors := make([]ReceptorSpec, 0, len(metricReceptors))
	for _, id := range metricReceptors {
		receptors = append(receptors, ReceptorSpec{
			ID:            id,
			Rho:           1,
			Sigma:         1,
			LambdaLoc:     0.5,
			GammaGProtein: 1,
			Chi:           string(state.FunctionalActive),
			Kd:            constants.DefaultKd,
		})
	}

	return &Scenario{
		Name:     "default",
		Dt:       constants.DefaultDt,
		Duration: constants.DefaultSimulationDuration,
		Seed:     1,
		LogLevel: "info",
		Neurotransmitters: []NeurotransmitterSpec{
			{ID: "DA", CTonic: constants.DefaultCBaseline, EtaU: 1},
		},
		Receptors: receptors,
		Oscillation: map[string]float64{
			"delta": 0.2,
			"theta": 0.4,
			"alpha": 0.3,
			"beta":  0.3,
			"gamma": 0.2,
		},
	}
}

// Load reads a scenario file and layers it over the defaults.
// Order: defaults -> file -> environment variables.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}

	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing scenario file: %w", err)
	}

	applyEnvOverrides(s)
	s.ApplyDefaults()

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadDefault returns the built-in scenario with environment overrides
// applied, validated the same way a loaded file is.
func LoadDefault() (*Scenario, error) {
	s := Default()
	applyEnvOverrides(s)
	s.ApplyDefaults()

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Parse decodes a scenario document layered over the defaults.
// Environment overrides are not applied; use Load for that.
func Parse(data []byte) (*Scenario, error) {
	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}

	s.ApplyDefaults()

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// ApplyDefaults normalizes zero-valued fields to their resting
// defaults: step and duration, log level, transporter efficiency, and
// the receptor adaptation fields.
func (s *Scenario) ApplyDefaults() {
	if s.Name == "" {
		s.Name = "default"
	}
	if s.Dt == 0 {
		s.Dt = constants.DefaultDt
	}
	if s.Duration == 0 {
		s.Duration = constants.DefaultSimulationDuration
	}
	if s.LogLevel == "" {
		s.LogLevel = "info"
	}

	for i := range s.Neurotransmitters {
		if s.Neurotransmitters[i].EtaU == 0 {
			s.Neurotransmitters[i].EtaU = 1
		}
	}

	for i := range s.Receptors {
		r := &s.Receptors[i]
		if r.Rho == 0 {
			r.Rho = 1
		}
		if r.Sigma == 0 {
			r.Sigma = 1
		}
		if r.LambdaLoc == 0 {
			r.LambdaLoc = 0.5
		}
		if r.GammaGProtein == 0 {
			r.GammaGProtein = 1
		}
		if r.Chi == "" {
			r.Chi = string(state.FunctionalActive)
		}
		if r.Kd == 0 {
			r.Kd = constants.DefaultKd
		}
	}
}

// Validate checks that the scenario can be registered and simulated.
func (s *Scenario) Validate() error {
	if s.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %v", s.Dt)
	}
	if s.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %v", s.Duration)
	}
	if _, err := logging.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	seenNT := make(map[string]bool, len(s.Neurotransmitters))
	for _, nt := range s.Neurotransmitters {
		if err := state.NeurotransmitterID(nt.ID).Validate(); err != nil {
			return err
		}
		if seenNT[nt.ID] {
			return fmt.Errorf("duplicate neurotransmitter %s", nt.ID)
		}
		seenNT[nt.ID] = true

		if nt.Kinetics != nil {
			if err := nt.Kinetics.Validate(); err != nil {
				return fmt.Errorf("neurotransmitter %s kinetics: %w", nt.ID, err)
			}
		}
	}

	seenR := make(map[string]bool, len(s.Receptors))
	for _, r := range s.Receptors {
		if err := state.ReceptorID(r.ID).Validate(); err != nil {
			return err
		}
		if seenR[r.ID] {
			return fmt.Errorf("duplicate receptor %s", r.ID)
		}
		seenR[r.ID] = true

		if _, err := state.ParseFunctionalState(r.Chi); err != nil {
			return fmt.Errorf("receptor %s: %w", r.ID, err)
		}
		rp := kinetics.ReceptorParams{Kd: r.Kd}
		if err := rp.Validate(); err != nil {
			return fmt.Errorf("receptor %s: %w", r.ID, err)
		}
	}

	for name := range s.Oscillation {
		if _, err := state.ParseBand(name); err != nil {
			return fmt.Errorf("oscillation: %w", err)
		}
	}

	for i, seg := range s.Signals {
		if !seenNT[seg.Neurotransmitter] {
			return fmt.Errorf("signal segment %d references undeclared neurotransmitter %s", i, seg.Neurotransmitter)
		}
		if seg.To <= seg.From {
			return fmt.Errorf("signal segment %d must end after it starts, got [%v, %v)", i, seg.From, seg.To)
		}
	}

	for i, ev := range s.Events {
		if ev.At < 0 {
			return fmt.Errorf("event %d scheduled before the run starts, got at=%v", i, ev.At)
		}
		for name := range ev.Bands {
			if _, err := state.ParseBand(name); err != nil {
				return fmt.Errorf("event %d: %w", i, err)
			}
		}
	}

	return nil
}

// SignalsAt returns the modulation signals active at simulated time t.
// Segments are half-open [From, To); later segments override earlier
// ones targeting the same neurotransmitter.
func (s *Scenario) SignalsAt(t float64) map[state.NeurotransmitterID]engine.Signals {
	var out map[state.NeurotransmitterID]engine.Signals
	for _, seg := range s.Signals {
		if t < seg.From || t >= seg.To {
			continue
		}
		if out == nil {
			out = make(map[state.NeurotransmitterID]engine.Signals)
		}
		out[state.NeurotransmitterID(seg.Neurotransmitter)] = engine.Signals{
			Novelty: seg.Novelty,
			RPE:     seg.RPE,
			Effort:  seg.Effort,
		}
	}
	return out
}

// BuildEngine constructs an engine with every neurotransmitter,
// receptor, and oscillation band of the scenario registered.
func (s *Scenario) BuildEngine() (*engine.Engine, error) {
	e := engine.New(engine.Config{
		Dt:             s.Dt,
		Seed:           s.Seed,
		GainModulation: s.GainModulation,
	})

	for _, nt := range s.Neurotransmitters {
		st := state.NewNeurotransmitterState(nt.CTonic, nt.CPhasic, nt.Fatigue, nt.EtaU)
		if err := e.AddNeurotransmitter(state.NeurotransmitterID(nt.ID), &st, nt.Kinetics); err != nil {
			return nil, fmt.Errorf("neurotransmitter %s: %w", nt.ID, err)
		}
	}

	for _, r := range s.Receptors {
		chi, err := state.ParseFunctionalState(r.Chi)
		if err != nil {
			return nil, fmt.Errorf("receptor %s: %w", r.ID, err)
		}
		rst, err := state.NewReceptorState(r.Rho, r.Sigma, r.LambdaLoc, r.GammaGProtein, chi)
		if err != nil {
			return nil, fmt.Errorf("receptor %s: %w", r.ID, err)
		}
		rp := kinetics.ReceptorParams{Kd: r.Kd}
		if err := e.AddReceptor(state.ReceptorID(r.ID), &rst, &rp); err != nil {
			return nil, fmt.Errorf("receptor %s: %w", r.ID, err)
		}
	}

	if len(s.Oscillation) > 0 {
		osc := state.NewOscillationState(
			s.Oscillation["delta"],
			s.Oscillation["theta"],
			s.Oscillation["alpha"],
			s.Oscillation["beta"],
			s.Oscillation["gamma"],
		)
		e.SetOscillationState(osc)
	}

	return e, nil
}

// BuildScheduler converts the scenario's band events into a scheduler
// acting on the engine's oscillation state.
func (s *Scenario) BuildScheduler(e *engine.Engine) *engine.EventScheduler {
	sched := &engine.EventScheduler{}
	for _, ev := range s.Events {
		bands := ev.Bands
		sched.Add(ev.At, func() {
			osc := e.Registry().Oscillation()
			if osc == nil {
				osc = state.NewOscillationState(0, 0, 0, 0, 0)
				e.SetOscillationState(osc)
			}
			for name, amp := range bands {
				b, err := state.ParseBand(name)
				if err != nil {
					continue
				}
				_ = osc.SetBand(b, amp)
			}
		})
	}
	return sched
}

// applyEnvOverrides applies ZADOS_* environment variable overrides.
func applyEnvOverrides(s *Scenario) {
	if v := os.Getenv("ZADOS_DT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			s.Dt = f
		}
	}

	if v := os.Getenv("ZADOS_DURATION"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			s.Duration = f
		}
	}

	if v := os.Getenv("ZADOS_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			s.Seed = n
		}
	}

	if v := os.Getenv("ZADOS_LOG_LEVEL"); v != "" {
		s.LogLevel = v
	}

	if v := os.Getenv("ZADOS_GAIN_MODULATION"); v != "" {
		s.GainModulation = v == "true" || v == "1"
	}
}
