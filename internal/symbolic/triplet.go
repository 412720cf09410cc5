package symbolic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/angelina-gm1999/zados/internal/state"
)

// ErrInvalidTriplet is returned when an encoded string does not follow
// the NT→Receptor:Modifier grammar.
var ErrInvalidTriplet = errors.New("invalid triplet")

// Triplet is one modulation event in the audit grammar. Gate is the
// oscillation band the event is conditioned on; an empty Gate means
// ungated.
type Triplet struct {
	NT       NeurotransmitterTag `json:"neurotransmitter" yaml:"neurotransmitter"`
	Receptor ReceptorTag         `json:"receptor" yaml:"receptor"`
	Modifier ModifierTag         `json:"modifier" yaml:"modifier"`
	Gate     state.Band          `json:"oscillation_gate,omitempty" yaml:"oscillation_gate,omitempty"`
}

// Encode renders the triplet as NT→Receptor:Modifier using the
// receptor's short form, wrapped as band{...} when gated.
func (tr Triplet) Encode() string {
	base := fmt.Sprintf("%s→%s:%s", tr.NT, tr.Receptor.Short(), tr.Modifier)
	if tr.Gate == "" {
		return base
	}
	return fmt.Sprintf("%s{%s}", tr.Gate, base)
}

// Parse decodes an encoded triplet back into typed tags. It is the
// exact inverse of Encode for every combination of vocabulary tags and
// fails with an invalid-format error on anything else. Whitespace
// around the individual parts is tolerated.
func Parse(encoded string) (Triplet, error) {
	var tr Triplet

	s := strings.TrimSpace(encoded)
	if i := strings.Index(s, "{"); i >= 0 {
		if !strings.HasSuffix(s, "}") {
			return Triplet{}, fmt.Errorf("%w: unbalanced gate braces in %q", ErrInvalidTriplet, encoded)
		}
		band, err := state.ParseBand(strings.TrimSpace(s[:i]))
		if err != nil {
			return Triplet{}, fmt.Errorf("gate in %q: %w", encoded, err)
		}
		tr.Gate = band
		s = s[i+1 : len(s)-1]
	}

	ntPart, rest, ok := strings.Cut(s, "→")
	if !ok {
		return Triplet{}, fmt.Errorf("%w: missing → in %q", ErrInvalidTriplet, encoded)
	}
	recPart, modPart, ok := strings.Cut(rest, ":")
	if !ok {
		return Triplet{}, fmt.Errorf("%w: missing modifier separator in %q", ErrInvalidTriplet, encoded)
	}

	nt, err := ParseNeurotransmitterTag(strings.TrimSpace(ntPart))
	if err != nil {
		return Triplet{}, fmt.Errorf("neurotransmitter in %q: %w", encoded, err)
	}
	rec, err := ParseReceptorShort(strings.TrimSpace(recPart))
	if err != nil {
		return Triplet{}, fmt.Errorf("receptor in %q: %w", encoded, err)
	}
	mod, err := ParseModifierTag(strings.TrimSpace(modPart))
	if err != nil {
		return Triplet{}, fmt.Errorf("modifier in %q: %w", encoded, err)
	}

	tr.NT = nt
	tr.Receptor = rec
	tr.Modifier = mod
	return tr, nil
}
