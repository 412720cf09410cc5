package sde

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidGrid is returned when an integration grid is degenerate.
var ErrInvalidGrid = errors.New("invalid integration grid")

// Boundary selects how a bounded step handles values leaving the interval.
type Boundary string

const (
	// BoundaryAbsorbing clamps escaping values onto the nearer bound.
	BoundaryAbsorbing Boundary = "absorbing"

	// BoundaryReflecting folds escaping values back into the interval.
	BoundaryReflecting Boundary = "reflecting"
)

// ParseBoundary maps a boundary name to its Boundary. The empty string is
// the absorbing default.
func ParseBoundary(s string) (Boundary, error) {
	switch Boundary(s) {
	case "", BoundaryAbsorbing:
		return BoundaryAbsorbing, nil
	case BoundaryReflecting:
		return BoundaryReflecting, nil
	default:
		return "", fmt.Errorf("unknown boundary mode %q", s)
	}
}

// Step advances one Euler-Maruyama step:
//
//	X' = X + drift*dt + diffusion*dW
func Step(x, drift, diffusion, dt, dW float64) float64 {
	return x + drift*dt + diffusion*dW
}

// StepBounded advances one Euler-Maruyama step confined to [lower, upper].
//
// Absorbing boundaries clamp; reflecting boundaries fold the value back
// until it lands inside, which may take several folds for steps far larger
// than the interval. Requires lower < upper.
func StepBounded(x, drift, diffusion, dt, dW, lower, upper float64, boundary Boundary) float64 {
	next := Step(x, drift, diffusion, dt, dW)

	if boundary == BoundaryReflecting {
		for next < lower || next > upper {
			if next < lower {
				next = 2*lower - next
			} else {
				next = 2*upper - next
			}
		}
		return next
	}

	return math.Max(lower, math.Min(upper, next))
}

// Func evaluates a state- and time-dependent coefficient of the SDE.
type Func func(x, t float64) float64

// Trajectory is a sampled solution path. Times and Values are index-aligned.
type Trajectory struct {
	Times  []float64 `json:"times"`
	Values []float64 `json:"values"`
}

// Last returns the final sampled value, or 0 for an empty trajectory.
func (tr Trajectory) Last() float64 {
	if len(tr.Values) == 0 {
		return 0
	}
	return tr.Values[len(tr.Values)-1]
}

// IntegrateConfig fixes the grid and bounds of a trajectory integration.
type IntegrateConfig struct {
	// T0 is the initial time.
	T0 float64 `json:"t0" yaml:"t0"`

	// TFinal is the end of the integration window.
	TFinal float64 `json:"t_final" yaml:"t_final"`

	// Dt is the fixed step size. Must be positive.
	Dt float64 `json:"dt" yaml:"dt"`

	// Lower and Upper bound the state. Defaults: [0,1].
	Lower float64 `json:"lower" yaml:"lower"`
	Upper float64 `json:"upper" yaml:"upper"`

	// Boundary selects clamping or reflection at the bounds.
	Boundary Boundary `json:"boundary" yaml:"boundary"`
}

// DefaultIntegrateConfig returns a unit-interval absorbing grid over [0,1]
// simulated seconds at the canonical step size.
func DefaultIntegrateConfig() IntegrateConfig {
	return IntegrateConfig{
		T0:       0,
		TFinal:   1,
		Dt:       0.01,
		Lower:    0,
		Upper:    1,
		Boundary: BoundaryAbsorbing,
	}
}

// Integrate runs a bounded Euler-Maruyama trajectory from x0 over the
// configured grid, sampling after every step. The first sample is (T0, x0);
// when Dt divides the window exactly the last sample lands on TFinal.
//
// Drift and diffusion are evaluated at the current state and time before
// each step.
func Integrate(x0 float64, drift, diffusion Func, cfg IntegrateConfig, noise NoiseSource) (Trajectory, error) {
	if cfg.Dt <= 0 {
		return Trajectory{}, fmt.Errorf("%w: dt must be positive, got %v", ErrInvalidGrid, cfg.Dt)
	}
	if cfg.TFinal < cfg.T0 {
		return Trajectory{}, fmt.Errorf("%w: t_final %v before t0 %v", ErrInvalidGrid, cfg.TFinal, cfg.T0)
	}
	if cfg.Lower >= cfg.Upper {
		return Trajectory{}, fmt.Errorf("%w: bounds [%v, %v] are empty", ErrInvalidGrid, cfg.Lower, cfg.Upper)
	}

	steps := int(math.Ceil((cfg.TFinal-cfg.T0)/cfg.Dt)) + 1
	traj := Trajectory{
		Times:  make([]float64, 0, steps),
		Values: make([]float64, 0, steps),
	}

	t, x := cfg.T0, x0
	for t <= cfg.TFinal {
		traj.Times = append(traj.Times, t)
		traj.Values = append(traj.Values, x)
		if t >= cfg.TFinal {
			break
		}
		dW := noise.Increment(cfg.Dt)
		x = StepBounded(x, drift(x, t), diffusion(x, t), cfg.Dt, dW, cfg.Lower, cfg.Upper, cfg.Boundary)
		t += cfg.Dt
	}

	return traj, nil
}
