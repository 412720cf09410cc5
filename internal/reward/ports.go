package reward

// Capability ports. Evaluators that need one of these hold it as an
// optional dependency and degrade to a flagged zero score when it is
// absent, so the domain stays usable without external wiring.

// ContrastResult is the outcome of contrasting a representation against
// stored reference state. Divergence is normalized: 0 means identical,
// values near 1 mean strongly conflicting.
type ContrastResult struct {
	Divergence float64 `json:"divergence"`
}

// MemoryContrast compares a current representation against reference
// memory. The current value may be nil when the evaluated state carries
// no representation.
type MemoryContrast interface {
	Contrast(current any, queryType, contextID string) ContrastResult
}

// CognitiveTrace records evaluator decisions for later audit.
type CognitiveTrace interface {
	Record(event string, meta map[string]any)
}
