package reward

import "math"

// IntentClarity evaluates whether the system's intent is explicit,
// stable, and internally coherent. It assesses clarity and consistency
// only, not the moral quality of the intent.
//
// Recognized state keys, all optional:
//
//	declared_intent            explicit intent signal
//	inferred_intent_confidence confidence of the inferred intent
//	intent_conflicts           indicator of conflicting intent signals
type IntentClarity struct{}

func (IntentClarity) Name() string { return "intent_clarity" }

func (ic IntentClarity) Evaluate(state map[string]any, ctx Context) Subscore {
	declared := state["declared_intent"]
	confidence := floatField(state, "inferred_intent_confidence", 0)
	conflicts := boolField(state, "intent_conflicts", false)

	// Explicit declaration contributes a fixed weight, inference at
	// most 0.6, and conflicting signals halve the total.
	score := 0.0
	if truthy(declared) {
		score += 0.4
	}
	score += math.Min(confidence, 0.6)
	if conflicts {
		score *= 0.5
	}
	score = clamp01(score)

	flags := map[string]Flag{}
	if conflicts {
		flags["intent_conflict"] = Flag{
			Name:     "intent_conflict",
			Severity: SeverityRisk,
			Message:  "Detected conflicting or unstable intent signals.",
		}
	}
	if score < 0.4 {
		flags["unclear_intent"] = Flag{
			Name:     "unclear_intent",
			Severity: SeverityWarning,
			Message:  "Intent is insufficiently specified or weakly inferred.",
		}
	}

	return Subscore{
		Name:  ic.Name(),
		Score: score,
		Flags: flags,
		Meta: map[string]any{
			"declared_intent_present":    declared != nil,
			"inferred_intent_confidence": confidence,
			"conflicts":                  conflicts,
		},
	}
}

// AutonomyRespect evaluates preservation of user autonomy: whether
// behavior respects user intent, avoids coercive framing, and preserves
// meaningful choice. Outcome quality is not evaluated here.
//
// Recognized state keys, all optional:
//
//	user_override    behavior overrides explicit user intent
//	coercive_framing pressure, manipulation, or false necessity
//	choice_preserved alternatives were maintained (default true)
type AutonomyRespect struct{}

func (AutonomyRespect) Name() string { return "autonomy_respect" }

func (ar AutonomyRespect) Evaluate(state map[string]any, ctx Context) Subscore {
	override := boolField(state, "user_override", false)
	coercive := boolField(state, "coercive_framing", false)
	choicePreserved := boolField(state, "choice_preserved", true)

	score := 1.0
	if override {
		score *= 0.6
	}
	if coercive {
		score *= 0.6
	}
	if !choicePreserved {
		score *= 0.8
	}
	score = clamp01(score)

	flags := map[string]Flag{}
	if override {
		flags["autonomy_override"] = Flag{
			Name:     "autonomy_override",
			Severity: SeverityRisk,
			Message:  "System behavior overrides or negates explicit user intent.",
		}
	}
	if coercive {
		flags["coercive_framing"] = Flag{
			Name:     "coercive_framing",
			Severity: SeverityRisk,
			Message:  "Detected coercive or manipulative framing.",
		}
	}
	if !choicePreserved {
		flags["choice_elimination"] = Flag{
			Name:     "choice_elimination",
			Severity: SeverityWarning,
			Message:  "User choice or alternatives were not preserved.",
		}
	}

	return Subscore{
		Name:  ar.Name(),
		Score: score,
		Flags: flags,
		Meta: map[string]any{
			"user_override":    override,
			"coercive_framing": coercive,
			"choice_preserved": choicePreserved,
		},
	}
}

// EthicsDomain applies the ethics evaluators. It functions as a
// governance and safety layer rather than an optimization target.
type EthicsDomain struct {
	evaluators []Submodule
}

// NewEthicsDomain returns the ethics domain with its standard
// evaluators.
func NewEthicsDomain() *EthicsDomain {
	return &EthicsDomain{
		evaluators: []Submodule{
			IntentClarity{},
			AutonomyRespect{},
		},
	}
}

func (d *EthicsDomain) Name() string { return "ethics" }

// Evaluate runs every ethics evaluator and aggregates their subscores
// with an unweighted mean.
func (d *EthicsDomain) Evaluate(state map[string]any, ctx Context) (DomainResult, error) {
	subscores, flags, order := runEvaluators(d.evaluators, state, ctx)
	return DomainResult{
		Domain:       d.Name(),
		GeneralScore: meanScore(subscores),
		Subscores:    subscores,
		Flags:        flags,
		Meta: map[string]any{
			"public_submodules": order,
		},
	}, nil
}
