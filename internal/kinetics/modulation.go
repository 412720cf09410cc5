package kinetics

import (
	"github.com/angelina-gm1999/zados/internal/constants"
	"github.com/angelina-gm1999/zados/internal/state"
)

// ReleaseGains bundles the release-drive parameters that oscillatory state
// can modulate.
type ReleaseGains struct {
	// NoveltySensitivity is the gain on supra-threshold novelty.
	NoveltySensitivity float64

	// RPEGain is the gain on reward prediction errors.
	RPEGain float64

	// Baseline is the tonic release drive.
	Baseline float64
}

// DefaultReleaseGains returns the unmodulated gains.
func DefaultReleaseGains() ReleaseGains {
	return ReleaseGains{
		NoveltySensitivity: constants.DefaultNoveltySensitivity,
		RPEGain:            constants.DefaultRPEGain,
		Baseline:           constants.DefaultBaselineDrive,
	}
}

// ModulatedReleaseGains couples oscillation band amplitudes into the release
// gains:
//
//	gamma boosts RPE gain        g' = g * (1 + 0.5*gamma)
//	beta  boosts novelty gain    s' = s * (1 + 0.3*beta)
//	alpha damps baseline drive   b' = b * (1 - 0.2*alpha)
//
// With all amplitudes at zero, or a nil oscillation state, the gains pass
// through unchanged.
func ModulatedReleaseGains(g ReleaseGains, osc *state.OscillationState) ReleaseGains {
	if osc == nil {
		return g
	}
	return ReleaseGains{
		NoveltySensitivity: g.NoveltySensitivity * (1 + constants.BetaNoveltyBoost*osc.Beta),
		RPEGain:            g.RPEGain * (1 + constants.GammaRPEBoost*osc.Gamma),
		Baseline:           g.Baseline * (1 - constants.AlphaBaselineDamping*osc.Alpha),
	}
}
