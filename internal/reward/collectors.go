package reward

import (
	"errors"
	"fmt"
	"math"
)

// ErrLengthMismatch reports paired sample lists of unequal length.
var ErrLengthMismatch = errors.New("paired lists must have equal length")

// ConstraintViolationRate returns the fraction of events in which a
// constraint hook vetoed, rolled back, or reverted a step. Events
// without an "action" entry still count toward the denominator. Empty
// input yields 0.
func ConstraintViolationRate(events []map[string]any) float64 {
	if len(events) == 0 {
		return 0
	}
	violations := 0
	for _, e := range events {
		if action, ok := e["action"].(string); ok {
			switch action {
			case "veto", "rollback", "revert":
				violations++
			}
		}
	}
	return float64(violations) / float64(len(events))
}

// ScenarioConsistencyScore returns the ratio of steps marked consistent
// with scenario constraints. Empty input yields 1.
func ScenarioConsistencyScore(flags []bool) float64 {
	if len(flags) == 0 {
		return 1
	}
	consistent := 0
	for _, ok := range flags {
		if ok {
			consistent++
		}
	}
	return float64(consistent) / float64(len(flags))
}

// HallucinationRate returns the fraction of outputs classified as
// hallucinated. Empty input yields 0.
func HallucinationRate(flags []bool) float64 {
	if len(flags) == 0 {
		return 0
	}
	hallucinations := 0
	for _, h := range flags {
		if h {
			hallucinations++
		}
	}
	return float64(hallucinations) / float64(len(flags))
}

// AbstentionRate returns the fraction of steps in which the system
// abstained. Empty input yields 0.
func AbstentionRate(actions []string) float64 {
	if len(actions) == 0 {
		return 0
	}
	abstentions := 0
	for _, a := range actions {
		if a == "abstain" {
			abstentions++
		}
	}
	return float64(abstentions) / float64(len(actions))
}

// SelfCorrectionDelta returns the mean score improvement after a
// reflection or correction pass. The boolean is false when either list
// is empty and no delta could be computed. Lists of unequal length are
// an error.
func SelfCorrectionDelta(pre, post []float64) (float64, bool, error) {
	if len(pre) == 0 || len(post) == 0 {
		return 0, false, nil
	}
	if len(pre) != len(post) {
		return 0, false, fmt.Errorf("%w: %d pre scores, %d post scores", ErrLengthMismatch, len(pre), len(post))
	}
	sum := 0.0
	for i := range pre {
		sum += post[i] - pre[i]
	}
	return sum / float64(len(pre)), true, nil
}

// LatencyImpact returns the mean latency added by reward and safety
// gating, rounded to six decimals for audit stability. The boolean is
// false when either list is empty. Lists of unequal length are an
// error.
func LatencyImpact(baseline, gated []float64) (float64, bool, error) {
	if len(baseline) == 0 || len(gated) == 0 {
		return 0, false, nil
	}
	if len(baseline) != len(gated) {
		return 0, false, fmt.Errorf("%w: %d baseline latencies, %d gated latencies", ErrLengthMismatch, len(baseline), len(gated))
	}
	sum := 0.0
	for i := range baseline {
		sum += gated[i] - baseline[i]
	}
	mean := sum / float64(len(baseline))
	return math.Round(mean*1e6) / 1e6, true, nil
}

// ProvenanceCompleteness returns the fraction of records containing all
// required fields. Empty input yields 1.
func ProvenanceCompleteness(records []map[string]any, required []string) float64 {
	if len(records) == 0 {
		return 1
	}
	complete := 0
	for _, record := range records {
		missing := false
		for _, field := range required {
			if _, ok := record[field]; !ok {
				missing = true
				break
			}
		}
		if !missing {
			complete++
		}
	}
	return float64(complete) / float64(len(records))
}
