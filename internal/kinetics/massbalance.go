package kinetics

import "math"

// ReuptakeLoss returns the transporter-mediated removal rate:
//
//	L_u = u_base * eta_u * C
//
// Transporter efficiency eta_u scales the baseline rate; a fully impaired
// transporter (eta_u = 0) removes nothing.
func ReuptakeLoss(c, etaU, uBase float64) float64 {
	return uBase * etaU * c
}

// DegradationLoss returns the enzymatic breakdown rate:
//
//	L_d = d_base * C
func DegradationLoss(c, dBase float64) float64 {
	return dBase * c
}

// ClearanceLoss returns the diffusion clearance rate:
//
//	L_c = c_base * C
func ClearanceLoss(c, cBase float64) float64 {
	return cBase * c
}

// TotalLoss sums reuptake, degradation and clearance. For non-negative
// concentration and rates the result is non-negative.
func TotalLoss(c, etaU, uBase, dBase, cBase float64) float64 {
	return ReuptakeLoss(c, etaU, uBase) + DegradationLoss(c, dBase) + ClearanceLoss(c, cBase)
}

// Drift returns the deterministic concentration velocity:
//
//	dC/dt = -theta * (C - C_baseline) - L_total(C)
//
// Mean reversion pulls the concentration toward its baseline while the loss
// terms remove transmitter proportionally to what is present.
func Drift(c, cBaseline, theta, etaU, uBase, dBase, cBase float64) float64 {
	return -theta*(c-cBaseline) - TotalLoss(c, etaU, uBase, dBase, cBase)
}

// Diffusion returns the noise amplitude for the stochastic term. In
// multiplicative mode the amplitude scales with sqrt(C), so noise vanishes
// as the concentration approaches zero:
//
//	g(C) = sigma * sqrt(max(0, C))
//
// In additive mode the amplitude is the constant sigma.
func Diffusion(c, sigma float64, multiplicative bool) float64 {
	if multiplicative {
		return sigma * math.Sqrt(math.Max(0, c))
	}
	return sigma
}

// EffectiveReversionRate weakens a reversion rate under fatigue:
//
//	theta_eff = theta * (1 - scaling * F)
//
// floored at zero so accumulated fatigue can stall reversion but never flip
// its direction.
func EffectiveReversionRate(theta, fatigue, scaling float64) float64 {
	return math.Max(0, theta*(1-scaling*fatigue))
}
