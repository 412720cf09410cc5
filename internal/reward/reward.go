// Package reward defines the interface layer between the neurochemical
// readout and an external reward-evaluation pipeline.
//
// The types here are deliberately thin. Evaluators consume arbitrary
// structured state and emit normalized scores with diagnostic flags;
// weighting, arbitration, and enforcement live downstream. Nothing in
// this package learns or adapts.
package reward

import (
	"time"

	"github.com/google/uuid"
)

// Severity classifies the weight of a diagnostic flag.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityRisk     Severity = "risk"
	SeverityCritical Severity = "critical"
)

// Context carries evaluation-scoped metadata into reward evaluators
// without embedding assumptions about model internals or downstream
// control flow.
type Context struct {
	Mode      string         `json:"mode"`
	Timestamp float64        `json:"timestamp,omitempty"`
	Meta      map[string]any `json:"meta,omitempty"`
}

// DefaultContext returns a Context in the default evaluation mode.
func DefaultContext() Context {
	return Context{Mode: "default"}
}

// Flag is an immutable diagnostic signal attached to a score. Flags
// communicate qualitative state to downstream systems; they carry no
// control logic themselves.
type Flag struct {
	Name     string         `json:"name"`
	Severity Severity       `json:"severity"`
	Message  string         `json:"message,omitempty"`
	Meta     map[string]any `json:"meta,omitempty"`
}

// FlagSet groups flags for inspection and audit. Order is preserved.
type FlagSet []Flag

// HasSeverity reports whether at least one flag carries the given
// severity.
func (fs FlagSet) HasSeverity(severity Severity) bool {
	for _, f := range fs {
		if f.Severity == severity {
			return true
		}
	}
	return false
}

// Names returns all flag identifiers in stable order.
func (fs FlagSet) Names() []string {
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.Name
	}
	return names
}

// Subscore is the result produced by an individual reward submodule.
// Score is normalized to [0, 1]. Flags are keyed by a short diagnostic
// handle, which may differ from the flag's full name.
type Subscore struct {
	Name  string          `json:"name"`
	Score float64         `json:"score"`
	Flags map[string]Flag `json:"flags,omitempty"`
	Meta  map[string]any  `json:"meta,omitempty"`
}

// DomainResult is the aggregated output of one reward domain: a
// domain-level score alongside its constituent subscores and merged
// flags.
type DomainResult struct {
	Domain       string              `json:"domain"`
	GeneralScore float64             `json:"general_score"`
	Subscores    map[string]Subscore `json:"subscores,omitempty"`
	Flags        map[string]Flag     `json:"flags,omitempty"`
	Meta         map[string]any      `json:"meta,omitempty"`
}

// Weights maps domain names to static weighting parameters. Dynamic
// adaptation of weights is out of scope for this interface.
type Weights map[string]float64

// Get returns the weight for domain, or def when the domain is absent.
func (w Weights) Get(domain string, def float64) float64 {
	if v, ok := w[domain]; ok {
		return v
	}
	return def
}

// MetaDirective is the high-level gating directive emitted by synthesis
// or arbitration layers. It conveys output and routing intent without
// prescribing how downstream components implement it.
type MetaDirective struct {
	AllowOutput bool `json:"allow_output"`
	Abstain     bool `json:"abstain"`
	Suppress    bool `json:"suppress"`

	// Directives carries response shaping hints.
	Directives map[string]any `json:"directives,omitempty"`

	// Routing carries selection hints for downstream components.
	Routing map[string]any `json:"routing,omitempty"`

	Flags map[string]Flag `json:"flags,omitempty"`
	Meta  map[string]any  `json:"meta,omitempty"`
}

// NewMetaDirective returns a directive that permits output.
func NewMetaDirective() MetaDirective {
	return MetaDirective{AllowOutput: true}
}

// ThresholdSpec declares numeric bounds for regime classification. It
// defines boundary values and optional hysteresis; transition behavior
// such as persistence or temporal smoothing is left to the caller.
type ThresholdSpec struct {
	Lower      float64 `json:"lower"`
	Upper      float64 `json:"upper"`
	Hysteresis float64 `json:"hysteresis,omitempty"`
	Label      string  `json:"label,omitempty"`
}

// InRange reports whether value lies within the declared bounds,
// inclusive on both ends.
func (ts ThresholdSpec) InRange(value float64) bool {
	return ts.Lower <= value && value <= ts.Upper
}

// ProvenanceRecord tracks the origin and timing of an evaluation
// artifact for audit purposes.
type ProvenanceRecord struct {
	ID        string         `json:"provenance_id"`
	Timestamp time.Time      `json:"timestamp"`
	Source    string         `json:"source,omitempty"`
	Notes     map[string]any `json:"notes,omitempty"`
}

// NewProvenanceRecord returns a record for source stamped with a fresh
// identifier and the current time.
func NewProvenanceRecord(source string) ProvenanceRecord {
	return ProvenanceRecord{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Source:    source,
	}
}

// Submodule scores one facet of system behavior against structured
// state. Implementations must tolerate missing state keys.
type Submodule interface {
	Name() string
	Evaluate(state map[string]any, ctx Context) Subscore
}

// Domain aggregates submodule results into a domain-level outcome.
type Domain interface {
	Name() string
	Evaluate(state map[string]any, ctx Context) (DomainResult, error)
}
