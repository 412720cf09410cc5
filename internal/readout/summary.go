package readout

import (
	"fmt"
	"strings"
)

// Summary renders the metrics as an aligned human-readable block.
func Summary(m Metrics) string {
	var b strings.Builder
	b.WriteString("Neurochemical Metrics:\n")
	fmt.Fprintf(&b, "  Motivation:         %.3f\n", m.Motivation)
	fmt.Fprintf(&b, "  Empathy:            %.3f\n", m.Empathy)
	fmt.Fprintf(&b, "  Cognitive Rigidity: %.3f\n", m.CognitiveRigidity)
	fmt.Fprintf(&b, "  Fatigue:            %.3f\n", m.Fatigue)
	fmt.Fprintf(&b, "  Precision:          %.3f\n", m.Precision)
	fmt.Fprintf(&b, "  Openness:           %.3f\n", m.Openness)
	fmt.Fprintf(&b, "  Anxiety:            %.3f\n", m.Anxiety)
	fmt.Fprintf(&b, "  Social Engagement:  %.3f", m.SocialEngagement)
	return b.String()
}

// Dominant returns the names of metrics at or above the threshold, in
// canonical order. The conventional threshold is
// constants.DominantThreshold.
func Dominant(m Metrics, threshold float64) []string {
	values := m.Map()
	var out []string
	for _, name := range MetricNames {
		if values[name] >= threshold {
			out = append(out, name)
		}
	}
	return out
}

// Suppressed returns the names of metrics at or below the threshold, in
// canonical order. The conventional threshold is
// constants.SuppressedThreshold.
func Suppressed(m Metrics, threshold float64) []string {
	values := m.Map()
	var out []string
	for _, name := range MetricNames {
		if values[name] <= threshold {
			out = append(out, name)
		}
	}
	return out
}
