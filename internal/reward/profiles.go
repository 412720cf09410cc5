package reward

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownProfile reports a profile name with no static definition.
var ErrUnknownProfile = errors.New("unknown reward profile")

// Profile is a static reward profile: pure configuration, no logic.
type Profile struct {
	Name string `json:"name" yaml:"name"`

	// DomainWeights scales each domain's contribution, 0 to 1.
	DomainWeights Weights `json:"domain_weights" yaml:"domain_weights"`

	// ThresholdTolerances sets per-domain tolerance thresholds, 0 to 1.
	ThresholdTolerances map[string]float64 `json:"threshold_tolerances" yaml:"threshold_tolerances"`

	// Global bias terms.
	SuppressionBias float64 `json:"suppression_bias" yaml:"suppression_bias"`
	AbstentionBias  float64 `json:"abstention_bias" yaml:"abstention_bias"`
}

// StaticProfiles returns the built-in evaluation profiles keyed by
// name. The map and its profiles are freshly allocated on each call, so
// callers may mutate the result.
func StaticProfiles() map[string]Profile {
	profiles := []Profile{
		reflectiveProfile(),
		exploratorySandboxProfile(),
		ethicsTrainingProfile(),
		creativeSandboxProfile(),
		analysisProfile(),
	}
	m := make(map[string]Profile, len(profiles))
	for _, p := range profiles {
		m[p.Name] = p
	}
	return m
}

// ProfileByName returns the static profile with the given name.
func ProfileByName(name string) (Profile, error) {
	p, ok := StaticProfiles()[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	return p, nil
}

// ProfileNames returns the names of all static profiles, sorted.
func ProfileNames() []string {
	m := StaticProfiles()
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// reflectiveProfile weights ethics and logic heavily and prefers
// abstaining over answering when evaluation is borderline.
func reflectiveProfile() Profile {
	return Profile{
		Name: "reflective",
		DomainWeights: Weights{
			"ethics":           0.9,
			"logic":            0.8,
			"human_attunement": 0.7,
			"innovation":       0.3,
		},
		ThresholdTolerances: map[string]float64{
			"logic":      0.7,
			"ethics":     0.8,
			"innovation": 0.4,
		},
		SuppressionBias: 0.2,
		AbstentionBias:  0.6,
	}
}

// exploratorySandboxProfile favors innovation with relaxed tolerances.
func exploratorySandboxProfile() Profile {
	return Profile{
		Name: "exploratory_sandbox",
		DomainWeights: Weights{
			"innovation":       0.9,
			"logic":            0.6,
			"ethics":           0.4,
			"human_attunement": 0.4,
		},
		ThresholdTolerances: map[string]float64{
			"logic":  0.5,
			"ethics": 0.4,
		},
		SuppressionBias: 0.1,
		AbstentionBias:  0.2,
	}
}

// ethicsTrainingProfile maximizes the ethics weighting and gates output
// aggressively.
func ethicsTrainingProfile() Profile {
	return Profile{
		Name: "ethics_training",
		DomainWeights: Weights{
			"ethics":           1.0,
			"logic":            0.8,
			"human_attunement": 0.7,
			"innovation":       0.2,
		},
		ThresholdTolerances: map[string]float64{
			"ethics": 0.9,
			"logic":  0.7,
		},
		SuppressionBias: 0.4,
		AbstentionBias:  0.5,
	}
}

// creativeSandboxProfile maximizes innovation with minimal gating.
func creativeSandboxProfile() Profile {
	return Profile{
		Name: "creative_sandbox",
		DomainWeights: Weights{
			"innovation":       1.0,
			"logic":            0.4,
			"ethics":           0.3,
			"human_attunement": 0.5,
		},
		ThresholdTolerances: map[string]float64{
			"logic":  0.3,
			"ethics": 0.3,
		},
		SuppressionBias: 0.05,
		AbstentionBias:  0.1,
	}
}

// analysisProfile is logic-dominant scoring with firm tolerances, for
// investigation workloads.
func analysisProfile() Profile {
	return Profile{
		Name: "analysis_investigation",
		DomainWeights: Weights{
			"logic":            1.0,
			"ethics":           0.7,
			"innovation":       0.3,
			"human_attunement": 0.2,
		},
		ThresholdTolerances: map[string]float64{
			"logic":  0.85,
			"ethics": 0.6,
		},
		SuppressionBias: 0.3,
		AbstentionBias:  0.4,
	}
}
