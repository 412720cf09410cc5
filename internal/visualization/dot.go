// Package visualization renders the engine's neurochemical topology:
// neurotransmitter pools, the receptor subtypes they govern, the
// oscillation bands in play, and the metric projections they feed.
package visualization

import (
	"fmt"
	"strings"

	"github.com/angelina-gm1999/zados/internal/engine"
	"github.com/angelina-gm1999/zados/internal/readout"
	"github.com/angelina-gm1999/zados/internal/state"
)

// Format specifies the output format for topology rendering.
type Format string

const (
	FormatDOT  Format = "dot"
	FormatJSON Format = "json"
)

// ParseFormat validates a format string from the command line.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatDOT, FormatJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown format %q (want dot or json)", s)
	}
}

// inputKind says what a metric input reads.
type inputKind string

const (
	inputReceptor      inputKind = "receptor"
	inputBand          inputKind = "band"
	inputConcentration inputKind = "concentration"
)

// metricInput is one signed contribution to a readout metric.
type metricInput struct {
	kind inputKind
	name string
	sign int // +1 drives, -1 opposes
}

// metricInputs mirrors the readout projection: which saturations, band
// amplitudes and raw concentrations feed each metric, and with what
// sign.
var metricInputs = map[string][]metricInput{
	"motivation": {
		{inputReceptor, "DA_D3", +1},
		{inputReceptor, "OXTR", +1},
		{inputReceptor, "GABA_B", -1},
	},
	"empathy": {
		{inputReceptor, "OXTR", +1},
		{inputBand, "theta", +1},
		{inputReceptor, "5HT_1A", +1},
	},
	"cognitive_rigidity": {
		{inputReceptor, "NE_beta1", +1},
		{inputReceptor, "DA_D2", +1},
		{inputReceptor, "CB1", -1},
	},
	"fatigue": {
		{inputReceptor, "GABA_B", +1},
		{inputBand, "delta", +1},
	},
	"precision": {
		{inputReceptor, "NE_beta1", +1},
		{inputReceptor, "DA_D2", +1},
		{inputBand, "beta", +1},
	},
	"openness": {
		{inputReceptor, "5HT_2A", +1},
		{inputReceptor, "DA_D3", +1},
		{inputReceptor, "5HT_1A", -1},
	},
	"anxiety": {
		{inputConcentration, "NE", +1},
		{inputConcentration, "CRH", +1},
		{inputConcentration, "cortisol", +1},
		{inputReceptor, "GABA_A", -1},
	},
	"social_engagement": {
		{inputReceptor, "OXTR", +1},
		{inputReceptor, "DA_D3", +1},
		{inputConcentration, "cortisol", -1},
	},
}

// snapshot gathers everything the renderers draw from a live engine.
type snapshot struct {
	concentrations map[string]float64
	fatigue        map[string]float64
	ntOrder        []string

	saturations map[string]float64
	recGoverns  map[string]string
	recOrder    []string

	bands map[string]float64

	metrics readout.Metrics
}

func capture(e *engine.Engine) snapshot {
	snap := snapshot{
		concentrations: make(map[string]float64),
		fatigue:        make(map[string]float64),
		saturations:    make(map[string]float64),
		recGoverns:     make(map[string]string),
		metrics:        e.Readout(),
	}

	for _, entry := range e.Registry().Neurotransmitters() {
		id := string(entry.ID)
		snap.ntOrder = append(snap.ntOrder, id)
		snap.concentrations[id] = entry.State.C()
		snap.fatigue[id] = entry.State.F
	}

	for _, entry := range e.Registry().Receptors() {
		id := string(entry.ID)
		governs := string(entry.ID.Neurotransmitter())
		c := snap.concentrations[governs]

		snap.recOrder = append(snap.recOrder, id)
		snap.recGoverns[id] = governs
		snap.saturations[id] = entry.State.Saturation(c, entry.Params.Kd)
	}

	if osc := e.Registry().Oscillation(); osc != nil {
		snap.bands = make(map[string]float64)
		for band, amp := range osc.Amplitudes() {
			snap.bands[string(band)] = amp
		}
	}

	return snap
}

// RenderDOT produces a Graphviz DOT drawing of the registered topology.
// Node labels carry the live values: concentration and fatigue for
// pools, saturation for receptors, amplitude for bands, and the metric
// values themselves. Opposing metric inputs draw dashed.
func RenderDOT(e *engine.Engine) string {
	snap := capture(e)

	var b strings.Builder
	b.WriteString("digraph zados {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [fontname=\"Helvetica\"];\n")
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")

	for _, id := range snap.ntOrder {
		b.WriteString(fmt.Sprintf("  %q [label=\"%s\\nC=%.3f F=%.3f\", shape=box, style=filled, fillcolor=steelblue];\n",
			id, id, snap.concentrations[id], snap.fatigue[id]))
	}
	for _, id := range snap.recOrder {
		b.WriteString(fmt.Sprintf("  %q [label=\"%s\\nS=%.3f\", shape=ellipse, style=filled, fillcolor=lightgray];\n",
			id, id, snap.saturations[id]))
	}
	for _, band := range state.Bands() {
		if amp, ok := snap.bands[string(band)]; ok {
			b.WriteString(fmt.Sprintf("  %q [label=\"%s\\nphi=%.3f\", shape=circle, style=filled, fillcolor=thistle];\n",
				string(band), string(band), amp))
		}
	}
	for _, name := range readout.MetricNames {
		b.WriteString(fmt.Sprintf("  %q [label=\"%s\\n%.3f\", shape=diamond, style=filled, fillcolor=goldenrod];\n",
			name, name, snap.metrics.Map()[name]))
	}
	b.WriteString("\n")

	for _, id := range snap.recOrder {
		governs := snap.recGoverns[id]
		if _, ok := snap.concentrations[governs]; !ok {
			// Orphaned receptor: its pool is not registered.
			continue
		}
		b.WriteString(fmt.Sprintf("  %q -> %q [label=\"binds\", weight=\"%.2f\"];\n",
			governs, id, snap.saturations[id]))
	}
	for _, name := range readout.MetricNames {
		for _, in := range metricInputs[name] {
			if !snap.has(in) {
				continue
			}
			style := "solid"
			label := "drives"
			if in.sign < 0 {
				style = "dashed"
				label = "opposes"
			}
			if in.kind == inputBand {
				style = "dotted"
				label = "gates"
			}
			b.WriteString(fmt.Sprintf("  %q -> %q [label=%q, style=%s];\n", in.name, name, label, style))
		}
	}

	b.WriteString("}\n")
	return b.String()
}

// has reports whether the input's source node is part of the snapshot.
func (s snapshot) has(in metricInput) bool {
	switch in.kind {
	case inputReceptor:
		_, ok := s.saturations[in.name]
		return ok
	case inputBand:
		_, ok := s.bands[in.name]
		return ok
	case inputConcentration:
		_, ok := s.concentrations[in.name]
		return ok
	}
	return false
}

// RenderJSON produces the same topology as nodes and edges arrays.
func RenderJSON(e *engine.Engine) map[string]any {
	snap := capture(e)

	var nodes []map[string]any
	for _, id := range snap.ntOrder {
		nodes = append(nodes, map[string]any{
			"id":            id,
			"kind":          "neurotransmitter",
			"concentration": snap.concentrations[id],
			"fatigue":       snap.fatigue[id],
		})
	}
	for _, id := range snap.recOrder {
		nodes = append(nodes, map[string]any{
			"id":         id,
			"kind":       "receptor",
			"saturation": snap.saturations[id],
		})
	}
	for _, band := range state.Bands() {
		if amp, ok := snap.bands[string(band)]; ok {
			nodes = append(nodes, map[string]any{
				"id":        string(band),
				"kind":      "band",
				"amplitude": amp,
			})
		}
	}
	for _, name := range readout.MetricNames {
		nodes = append(nodes, map[string]any{
			"id":    name,
			"kind":  "metric",
			"value": snap.metrics.Map()[name],
		})
	}

	var edges []map[string]any
	for _, id := range snap.recOrder {
		governs := snap.recGoverns[id]
		if _, ok := snap.concentrations[governs]; !ok {
			continue
		}
		edges = append(edges, map[string]any{
			"source": governs,
			"target": id,
			"kind":   "binds",
			"weight": snap.saturations[id],
		})
	}
	for _, name := range readout.MetricNames {
		for _, in := range metricInputs[name] {
			if !snap.has(in) {
				continue
			}
			kind := "drives"
			if in.sign < 0 {
				kind = "opposes"
			}
			if in.kind == inputBand {
				kind = "gates"
			}
			edges = append(edges, map[string]any{
				"source": in.name,
				"target": name,
				"kind":   kind,
			})
		}
	}

	return map[string]any{"nodes": nodes, "edges": edges}
}
