package reward

import "math"

// EpistemicCalibration evaluates alignment between expressed confidence
// and inferred uncertainty. It assesses epistemic hygiene rather than
// factual correctness.
//
// Recognized state keys, all optional:
//
//	confidence  normalized confidence signal (default 0.5)
//	uncertainty normalized uncertainty signal (default 0.5)
type EpistemicCalibration struct{}

func (EpistemicCalibration) Name() string { return "epistemic_calibration" }

func (ec EpistemicCalibration) Evaluate(state map[string]any, ctx Context) Subscore {
	confidence := floatField(state, "confidence", 0.5)
	uncertainty := floatField(state, "uncertainty", 0.5)

	// Perfectly calibrated confidence mirrors certainty: conf == 1-unc.
	score := clamp01(1 - math.Abs(confidence-(1-uncertainty)))

	flags := map[string]Flag{}
	if confidence > 0.8 && uncertainty > 0.6 {
		flags["overconfidence"] = Flag{
			Name:     "overconfidence_under_uncertainty",
			Severity: SeverityRisk,
			Message:  "Confidence exceeds epistemically justified bounds.",
		}
	}
	if confidence < 0.2 && uncertainty < 0.3 {
		flags["underconfidence"] = Flag{
			Name:     "underconfidence_under_clarity",
			Severity: SeverityWarning,
			Message:  "Confidence suppressed despite low inferred uncertainty.",
		}
	}

	return Subscore{
		Name:  ec.Name(),
		Score: score,
		Flags: flags,
		Meta: map[string]any{
			"confidence":  confidence,
			"uncertainty": uncertainty,
		},
	}
}

// UncertaintyAcknowledgment evaluates proportional acknowledgment of
// uncertainty. It operates on structured state signals rather than
// surface-level language features.
//
// Recognized state keys, all optional:
//
//	uncertainty     inferred uncertainty level (default 0.5)
//	uncertainty_ack degree of explicit acknowledgment (default 0)
type UncertaintyAcknowledgment struct{}

func (UncertaintyAcknowledgment) Name() string { return "uncertainty_acknowledgment" }

func (ua UncertaintyAcknowledgment) Evaluate(state map[string]any, ctx Context) Subscore {
	uncertainty := floatField(state, "uncertainty", 0.5)
	acknowledgment := floatField(state, "uncertainty_ack", 0)

	score := clamp01(1 - math.Abs(acknowledgment-uncertainty))

	flags := map[string]Flag{}
	if uncertainty > 0.7 && acknowledgment < 0.3 {
		flags["unacknowledged_uncertainty"] = Flag{
			Name:     "unacknowledged_uncertainty",
			Severity: SeverityRisk,
			Message:  "High uncertainty without proportional acknowledgment.",
		}
	}
	if uncertainty < 0.3 && acknowledgment > 0.8 {
		flags["performative_uncertainty"] = Flag{
			Name:     "performative_uncertainty",
			Severity: SeverityWarning,
			Message:  "Excessive uncertainty signaling under low uncertainty.",
		}
	}

	return Subscore{
		Name:  ua.Name(),
		Score: score,
		Flags: flags,
		Meta: map[string]any{
			"uncertainty":     uncertainty,
			"uncertainty_ack": acknowledgment,
		},
	}
}

// InternalConsistency detects self-contradictions within the current
// output by contrasting its representation against reference memory.
// Without an attached MemoryContrast the evaluation is skipped and
// scored zero.
type InternalConsistency struct {
	Contrast MemoryContrast
}

func (InternalConsistency) Name() string { return "internal_consistency" }

func (ic InternalConsistency) Evaluate(state map[string]any, ctx Context) Subscore {
	if ic.Contrast == nil {
		return Subscore{
			Name:  ic.Name(),
			Score: 0,
			Flags: map[string]Flag{
				"missing_memory_contrast": {
					Name:     "missing_memory_contrast",
					Severity: SeverityWarning,
					Message:  "Internal consistency evaluation skipped: no memory contrast capability attached.",
				},
			},
			Meta: map[string]any{"skipped": true},
		}
	}

	contextID, _ := ctx.Meta["context_id"].(string)
	result := ic.Contrast.Contrast(state["representation"], "internal", contextID)

	score := math.Max(0, 1-result.Divergence)

	flags := map[string]Flag{}
	if result.Divergence > 0.6 {
		flags["internal_contradiction"] = Flag{
			Name:     "internal_contradiction",
			Severity: SeverityRisk,
			Message:  "Detected internal inconsistency within current output.",
		}
	}

	return Subscore{
		Name:  ic.Name(),
		Score: score,
		Flags: flags,
		Meta:  map[string]any{"contrast_applied": true},
	}
}

// LogicDomain evaluates epistemic soundness, internal consistency, and
// semantic stability of system outputs.
type LogicDomain struct {
	memoryContrast MemoryContrast
	cognitiveTrace CognitiveTrace
	evaluators     []Submodule
}

// NewLogicDomain returns the logic domain. Both capability ports are
// optional; evaluators that need an absent capability degrade to a
// flagged zero score.
func NewLogicDomain(memoryContrast MemoryContrast, cognitiveTrace CognitiveTrace) *LogicDomain {
	return &LogicDomain{
		memoryContrast: memoryContrast,
		cognitiveTrace: cognitiveTrace,
		evaluators: []Submodule{
			EpistemicCalibration{},
			UncertaintyAcknowledgment{},
			InternalConsistency{Contrast: memoryContrast},
		},
	}
}

func (d *LogicDomain) Name() string { return "logic" }

// Evaluate runs every logic evaluator and aggregates their subscores
// with an unweighted mean.
func (d *LogicDomain) Evaluate(state map[string]any, ctx Context) (DomainResult, error) {
	subscores, flags, order := runEvaluators(d.evaluators, state, ctx)
	general := meanScore(subscores)

	if d.cognitiveTrace != nil {
		d.cognitiveTrace.Record("logic_evaluation", map[string]any{
			"general_score": general,
			"flag_count":    len(flags),
		})
	}

	return DomainResult{
		Domain:       d.Name(),
		GeneralScore: general,
		Subscores:    subscores,
		Flags:        flags,
		Meta: map[string]any{
			"public_submodules": order,
			"capabilities": map[string]bool{
				"memory_contrast": d.memoryContrast != nil,
				"cognitive_trace": d.cognitiveTrace != nil,
			},
		},
	}, nil
}
