package kinetics

import "math"

// NoveltyDrive converts a novelty signal into release drive:
//
//	D_nov = sensitivity * max(0, novelty - threshold)
//
// Sub-threshold novelty produces no drive.
func NoveltyDrive(novelty, sensitivity, threshold float64) float64 {
	return sensitivity * math.Max(0, novelty-threshold)
}

// RPEDrive converts a reward prediction error into release drive:
//
//	D_rpe = gain * rpe
//
// The mapping is linear and signed: negative prediction errors suppress
// release rather than being clipped.
func RPEDrive(rpe, gain float64) float64 {
	return gain * rpe
}

// EffortDrive converts an effort demand into release drive:
//
//	D_eff = willingness * max(0, demand - threshold)
//
// Sub-threshold demand produces no drive.
func EffortDrive(demand, willingness, threshold float64) float64 {
	return willingness * math.Max(0, demand-threshold)
}

// CombinedReleaseDrive sums the individual drives on top of the tonic
// baseline drive. The sum is not clamped; gating and burst shaping bound it
// downstream.
func CombinedReleaseDrive(noveltyDrive, rpeDrive, effortDrive, baseline float64) float64 {
	return baseline + noveltyDrive + rpeDrive + effortDrive
}

// FatigueGating suppresses release drive once fatigue exceeds a threshold:
//
//	D' = D * max(0, 1 - suppression * (F - threshold) / (1 - threshold))
//
// Below the threshold the drive passes through unchanged. At full fatigue
// the drive is reduced by at most the suppression fraction.
func FatigueGating(drive, fatigue, threshold, suppression float64) float64 {
	if fatigue <= threshold {
		return drive
	}
	factor := 1 - suppression*(fatigue-threshold)/(1-threshold)
	return drive * math.Max(0, factor)
}

// OscillatoryGating modulates release drive by a band amplitude:
//
//	D' = D * (1 + preference * amplitude)
//
// A zero amplitude leaves the drive unchanged.
func OscillatoryGating(drive, amplitude, preference float64) float64 {
	return drive * (1 + preference*amplitude)
}

// BurstAmplitude converts gated drive into a saturating burst:
//
//	B = maxBurst * (1 - exp(-sensitivity * D))
//
// Non-positive drive produces no burst. For finite positive drive the burst
// is strictly below maxBurst, approaching it asymptotically.
func BurstAmplitude(drive, sensitivity, maxBurst float64) float64 {
	if drive <= 0 {
		return 0
	}
	return maxBurst * (1 - math.Exp(-sensitivity*drive))
}

// AdaptiveThreshold raises a drive threshold with accumulated activity:
//
//	T = base + rate * trace
//
// Habituation: sustained drive lifts the threshold, demanding stronger
// signals to produce the same response.
func AdaptiveThreshold(base, trace, rate float64) float64 {
	return base + rate*trace
}

// ActivityTrace advances the leaky drive integral by one step of length dt:
//
//	A' = A * exp(-dt/tau) + drive * dt
func ActivityTrace(trace, drive, dt, tau float64) float64 {
	return trace*math.Exp(-dt/tau) + drive*dt
}
