// Package symbolic defines the tag vocabularies and the compact audit
// grammar used to describe receptor-level modulation events.
//
// A triplet reads NT→Receptor:Modifier, optionally wrapped as band{...}
// when the event is gated by an oscillation band:
//
//	DA→D1:↑density
//	gamma{GLU→NMDA:↑affinity}
//
// Encode and Parse are exact inverses over the vocabularies defined here.
package symbolic

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTag is returned when a string names no tag in the vocabulary
// it is parsed against.
var ErrUnknownTag = errors.New("unknown tag")

// NeurotransmitterTag identifies a neurotransmitter in the grammar. The
// tag itself is the short form that appears in encoded triplets.
type NeurotransmitterTag string

const (
	NTDopamine       NeurotransmitterTag = "DA"
	NTGABA           NeurotransmitterTag = "GABA"
	NTGlutamate      NeurotransmitterTag = "GLU"
	NTSerotonin      NeurotransmitterTag = "SEROTONIN"
	NTNorepinephrine NeurotransmitterTag = "NE"
	NTAcetylcholine  NeurotransmitterTag = "ACH"
	NTOxytocin       NeurotransmitterTag = "OXT"
	NTMuOpioid       NeurotransmitterTag = "MOR"
	NTCannabinoid    NeurotransmitterTag = "CB1"
	NTCorticotropin  NeurotransmitterTag = "CRH"
	NTCortisol       NeurotransmitterTag = "CORTISOL"
	NTHistamine      NeurotransmitterTag = "HISTAMINE"
)

var neurotransmitterTags = []NeurotransmitterTag{
	NTDopamine, NTGABA, NTGlutamate, NTSerotonin, NTNorepinephrine,
	NTAcetylcholine, NTOxytocin, NTMuOpioid, NTCannabinoid,
	NTCorticotropin, NTCortisol, NTHistamine,
}

var ntFullNames = map[NeurotransmitterTag]string{
	NTDopamine:       "dopamine",
	NTGABA:           "gaba",
	NTGlutamate:      "glutamate",
	NTSerotonin:      "5-HT",
	NTNorepinephrine: "norepinephrine",
	NTAcetylcholine:  "acetylcholine",
	NTOxytocin:       "oxytocin",
	NTMuOpioid:       "mu-opioid",
	NTCannabinoid:    "cannabinoid",
	NTCorticotropin:  "corticotropin",
	NTCortisol:       "cortisol",
	NTHistamine:      "histamine",
}

// NeurotransmitterTags returns the vocabulary in declaration order.
func NeurotransmitterTags() []NeurotransmitterTag {
	out := make([]NeurotransmitterTag, len(neurotransmitterTags))
	copy(out, neurotransmitterTags)
	return out
}

// FullName returns the descriptive name for the tag ("DA" → "dopamine"),
// or "" for a tag outside the vocabulary.
func (t NeurotransmitterTag) FullName() string {
	return ntFullNames[t]
}

// ParseNeurotransmitterTag maps a short form back to its tag.
func ParseNeurotransmitterTag(s string) (NeurotransmitterTag, error) {
	t := NeurotransmitterTag(s)
	if _, ok := ntFullNames[t]; !ok {
		return "", fmt.Errorf("%w: neurotransmitter %q", ErrUnknownTag, s)
	}
	return t, nil
}

// ReceptorTag identifies a receptor subtype. Values follow the
// NT_SUBTYPE convention; OXTR and CB1 are single-segment.
type ReceptorTag string

const (
	// Dopamine receptors.
	ReceptorD1 ReceptorTag = "DA_D1"
	ReceptorD2 ReceptorTag = "DA_D2"
	ReceptorD3 ReceptorTag = "DA_D3"
	ReceptorD4 ReceptorTag = "DA_D4"
	ReceptorD5 ReceptorTag = "DA_D5"

	// GABA receptors.
	ReceptorGABAA ReceptorTag = "GABA_A"
	ReceptorGABAB ReceptorTag = "GABA_B"

	// Glutamate receptors.
	ReceptorNMDA    ReceptorTag = "GLU_NMDA"
	ReceptorAMPA    ReceptorTag = "GLU_AMPA"
	ReceptorKainate ReceptorTag = "GLU_KAINATE"
	ReceptorMGluR   ReceptorTag = "GLU_mGluR"

	// Serotonin receptors.
	Receptor5HT1A ReceptorTag = "5HT_1A"
	Receptor5HT1B ReceptorTag = "5HT_1B"
	Receptor5HT2A ReceptorTag = "5HT_2A"
	Receptor5HT2C ReceptorTag = "5HT_2C"
	Receptor5HT3  ReceptorTag = "5HT_3"

	// Norepinephrine receptors.
	ReceptorAlpha1 ReceptorTag = "NE_alpha1"
	ReceptorAlpha2 ReceptorTag = "NE_alpha2"
	ReceptorBeta1  ReceptorTag = "NE_beta1"
	ReceptorBeta2  ReceptorTag = "NE_beta2"

	// Acetylcholine receptors.
	ReceptorNicotinic  ReceptorTag = "ACh_nicotinic"
	ReceptorMuscarinic ReceptorTag = "ACh_muscarinic"

	// Oxytocin, opioid, cannabinoid and CRH receptors.
	ReceptorOXTR  ReceptorTag = "OXTR"
	ReceptorMu    ReceptorTag = "MOR_mu"
	ReceptorCB1   ReceptorTag = "CB1"
	ReceptorCRHR1 ReceptorTag = "CRH_R1"
)

var receptorTags = []ReceptorTag{
	ReceptorD1, ReceptorD2, ReceptorD3, ReceptorD4, ReceptorD5,
	ReceptorGABAA, ReceptorGABAB,
	ReceptorNMDA, ReceptorAMPA, ReceptorKainate, ReceptorMGluR,
	Receptor5HT1A, Receptor5HT1B, Receptor5HT2A, Receptor5HT2C, Receptor5HT3,
	ReceptorAlpha1, ReceptorAlpha2, ReceptorBeta1, ReceptorBeta2,
	ReceptorNicotinic, ReceptorMuscarinic,
	ReceptorOXTR, ReceptorMu, ReceptorCB1, ReceptorCRHR1,
}

// receptorByShort resolves a short form to its tag. Short forms are
// unique across the vocabulary, so the short alone identifies the
// receptor.
var receptorByShort = func() map[string]ReceptorTag {
	m := make(map[string]ReceptorTag, len(receptorTags))
	for _, t := range receptorTags {
		m[t.Short()] = t
	}
	return m
}()

// ReceptorTags returns the vocabulary in declaration order.
func ReceptorTags() []ReceptorTag {
	out := make([]ReceptorTag, len(receptorTags))
	copy(out, receptorTags)
	return out
}

// Short returns the subtype portion used in encoded triplets, the
// substring after the last underscore ("DA_D1" → "D1"). Single-segment
// tags are their own short form.
func (t ReceptorTag) Short() string {
	s := string(t)
	if i := strings.LastIndex(s, "_"); i >= 0 {
		return s[i+1:]
	}
	return s
}

// ParseReceptorTag maps a full NT_SUBTYPE value back to its tag.
func ParseReceptorTag(s string) (ReceptorTag, error) {
	for _, t := range receptorTags {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: receptor %q", ErrUnknownTag, s)
}

// ParseReceptorShort maps a short form back to its tag.
func ParseReceptorShort(s string) (ReceptorTag, error) {
	t, ok := receptorByShort[s]
	if !ok {
		return "", fmt.Errorf("%w: receptor short form %q", ErrUnknownTag, s)
	}
	return t, nil
}

// ModifierTag names the modification a triplet describes.
type ModifierTag string

const (
	// Density modifiers.
	ModUpDensity   ModifierTag = "↑density"
	ModDownDensity ModifierTag = "↓density"

	// Sensitivity modifiers.
	ModUpSensitivity   ModifierTag = "↑sensitivity"
	ModDownSensitivity ModifierTag = "↓sensitivity"

	// Functional-state modifiers.
	ModDesensitized ModifierTag = "desensitized"
	ModInternalized ModifierTag = "internalized"
	ModUpregulated  ModifierTag = "upregulated"
	ModActive       ModifierTag = "active"

	// Affinity modifiers.
	ModUpAffinity   ModifierTag = "↑affinity"
	ModDownAffinity ModifierTag = "↓affinity"

	// Release modifiers.
	ModUpRelease   ModifierTag = "↑release"
	ModDownRelease ModifierTag = "↓release"

	// Reuptake modifiers.
	ModUpReuptake   ModifierTag = "↑reuptake"
	ModDownReuptake ModifierTag = "↓reuptake"
)

var modifierTags = []ModifierTag{
	ModUpDensity, ModDownDensity,
	ModUpSensitivity, ModDownSensitivity,
	ModDesensitized, ModInternalized, ModUpregulated, ModActive,
	ModUpAffinity, ModDownAffinity,
	ModUpRelease, ModDownRelease,
	ModUpReuptake, ModDownReuptake,
}

// ModifierTags returns the vocabulary in declaration order.
func ModifierTags() []ModifierTag {
	out := make([]ModifierTag, len(modifierTags))
	copy(out, modifierTags)
	return out
}

// ParseModifierTag maps a modifier literal back to its tag.
func ParseModifierTag(s string) (ModifierTag, error) {
	for _, t := range modifierTags {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: modifier %q", ErrUnknownTag, s)
}

// ComponentTag names a concentration component.
type ComponentTag string

const (
	ComponentTonic  ComponentTag = "tonic"
	ComponentPhasic ComponentTag = "phasic"
	ComponentTotal  ComponentTag = "total"
)

// ComponentTags returns the three concentration components.
func ComponentTags() []ComponentTag {
	return []ComponentTag{ComponentTonic, ComponentPhasic, ComponentTotal}
}

// ParseComponentTag maps a component name back to its tag.
func ParseComponentTag(s string) (ComponentTag, error) {
	switch ComponentTag(s) {
	case ComponentTonic, ComponentPhasic, ComponentTotal:
		return ComponentTag(s), nil
	default:
		return "", fmt.Errorf("%w: concentration component %q", ErrUnknownTag, s)
	}
}
