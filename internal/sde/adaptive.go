package sde

import (
	"math"

	"github.com/angelina-gm1999/zados/internal/constants"
)

// AdaptiveConfig bounds the adaptive step-size controller.
type AdaptiveConfig struct {
	// Tolerance is the accepted local error between the full step and two
	// half steps. Default: 1e-3.
	Tolerance float64 `json:"tolerance" yaml:"tolerance"`

	// MinDt floors the step size. A step at the floor is accepted even
	// when its error estimate exceeds the tolerance, so the controller
	// always terminates. Default: 1e-6.
	MinDt float64 `json:"min_dt" yaml:"min_dt"`

	// MaxDt caps step-size growth after accepted steps. Default: 1.0.
	MaxDt float64 `json:"max_dt" yaml:"max_dt"`
}

// DefaultAdaptiveConfig returns the canonical controller bounds.
func DefaultAdaptiveConfig() AdaptiveConfig {
	return AdaptiveConfig{
		Tolerance: constants.DefaultAdaptiveTolerance,
		MinDt:     constants.MinAdaptiveDt,
		MaxDt:     constants.MaxAdaptiveDt,
	}
}

// sanitize replaces non-positive controller bounds with defaults so a
// zero-value config cannot spin the retry loop forever.
func (c AdaptiveConfig) sanitize() AdaptiveConfig {
	d := DefaultAdaptiveConfig()
	if c.Tolerance <= 0 {
		c.Tolerance = d.Tolerance
	}
	if c.MinDt <= 0 {
		c.MinDt = d.MinDt
	}
	if c.MaxDt < c.MinDt {
		c.MaxDt = d.MaxDt
	}
	return c
}

// AdaptiveStep advances one Euler-Maruyama step with step-size control.
//
// The local error is estimated by comparing a full step of size dt against
// two half steps driven by independent increments of standard deviation
// sqrt(dt)/sqrt(2). Drift and diffusion are scalars evaluated by the caller
// and reused across the comparison, so the error estimate isolates the
// stochastic term.
//
// A step whose error is below tolerance is accepted and the step size grows
// by 1.5x, capped at MaxDt. A rejected step shrinks the step size by half,
// floored at MinDt, and retries with fresh noise; once the floor is reached
// the step is accepted regardless of the estimate and the floor is returned
// as the next step size. The retry is a plain loop, so pathological
// tolerances cannot exhaust the stack.
//
// Returns the accepted state and the step size to propose next.
func AdaptiveStep(x, drift, diffusion, dt float64, cfg AdaptiveConfig, noise NoiseSource) (float64, float64) {
	cfg = cfg.sanitize()
	dt = math.Max(cfg.MinDt, math.Min(cfg.MaxDt, dt))

	for {
		dW := noise.Increment(dt)
		dW1 := noise.Increment(dt / 2)
		dW2 := noise.Increment(dt / 2)

		full := Step(x, drift, diffusion, dt, dW)
		half := Step(x, drift, diffusion, dt/2, dW1)
		half = Step(half, drift, diffusion, dt/2, dW2)

		if math.Abs(full-half) < cfg.Tolerance {
			return full, math.Min(cfg.MaxDt, dt*constants.AdaptiveGrowth)
		}
		if dt <= cfg.MinDt {
			return full, cfg.MinDt
		}
		dt = math.Max(cfg.MinDt, dt*constants.AdaptiveShrink)
	}
}

// LocalTruncationError returns the leading-order strong error of one
// Euler-Maruyama step, |diffusion| * sqrt(dt).
func LocalTruncationError(diffusion, dt float64) float64 {
	return math.Abs(diffusion) * math.Sqrt(dt)
}

// Stable reports whether a step of length dt is numerically safe at state x
// by checking that the drift displacement and the squared diffusion scale
// stay below half the state magnitude. The zero state is always stable.
func Stable(x, drift, diffusion, dt float64) bool {
	if x == 0 {
		return true
	}
	driftOK := math.Abs(drift*dt/x) < 0.5
	diffOK := math.Abs(diffusion*diffusion*dt/(x*x)) < 0.5
	return driftOK && diffOK
}
