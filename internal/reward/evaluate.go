package reward

import "math"

// runEvaluators applies each submodule in order, collecting subscores
// by name, merging flags (later evaluators win key collisions), and
// recording the evaluation order.
func runEvaluators(evaluators []Submodule, state map[string]any, ctx Context) (map[string]Subscore, map[string]Flag, []string) {
	subscores := make(map[string]Subscore, len(evaluators))
	flags := map[string]Flag{}
	order := make([]string, 0, len(evaluators))
	for _, ev := range evaluators {
		result := ev.Evaluate(state, ctx)
		subscores[result.Name] = result
		for key, flag := range result.Flags {
			flags[key] = flag
		}
		order = append(order, result.Name)
	}
	return subscores, flags, order
}

// meanScore averages subscores without weighting. Empty input yields 0.
func meanScore(subscores map[string]Subscore) float64 {
	if len(subscores) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range subscores {
		sum += s.Score
	}
	return sum / float64(len(subscores))
}

// Evaluator state arrives as loosely typed maps, often decoded from
// JSON, so numeric values may carry several concrete types.

func floatField(state map[string]any, key string, def float64) float64 {
	switch v := state[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	default:
		return def
	}
}

func boolField(state map[string]any, key string, def bool) bool {
	if v, ok := state[key].(bool); ok {
		return v
	}
	return def
}

// truthy reports loose presence: nil, false, zero, and the empty string
// all read as absent.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	default:
		return true
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
