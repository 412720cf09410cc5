// Package sde implements the stochastic integrators driving concentration
// dynamics: plain and bounded Euler-Maruyama steps, grid integration of full
// trajectories, and adaptive step-size stepping with a local error estimate.
//
// Randomness is always explicit. Integrators consume a NoiseSource supplied
// by the caller; nothing in this package reads a global generator, so a
// fixed seed or fixed increments reproduce a trajectory bit for bit.
package sde

import (
	"math"
	"math/rand"
)

// NoiseSource yields Wiener-process increments, one per integration step.
type NoiseSource interface {
	// Increment returns dW for a step of length dt, distributed as
	// N(0, sqrt(dt)) for a true Brownian source.
	Increment(dt float64) float64
}

// Brownian is a NoiseSource backed by a seeded pseudo-random generator.
type Brownian struct {
	rng *rand.Rand
}

// NewBrownian wraps rng as a Brownian noise source.
func NewBrownian(rng *rand.Rand) *Brownian {
	return &Brownian{rng: rng}
}

// NewSeededBrownian builds a Brownian source from a fixed seed.
func NewSeededBrownian(seed int64) *Brownian {
	return &Brownian{rng: rand.New(rand.NewSource(seed))}
}

// Increment draws dW ~ N(0, sqrt(dt)).
func (b *Brownian) Increment(dt float64) float64 {
	return b.rng.NormFloat64() * math.Sqrt(dt)
}

// Fixed is a NoiseSource replaying precomputed increments, cycling when
// exhausted. It backs deterministic tests: Fixed with a single zero yields a
// noise-free integrator.
type Fixed struct {
	increments []float64
	next       int
}

// NewFixed builds a replaying noise source. With no increments every draw
// is zero.
func NewFixed(increments ...float64) *Fixed {
	return &Fixed{increments: increments}
}

// Increment returns the next precomputed value, ignoring dt.
func (f *Fixed) Increment(dt float64) float64 {
	if len(f.increments) == 0 {
		return 0
	}
	v := f.increments[f.next]
	f.next = (f.next + 1) % len(f.increments)
	return v
}

// Increments draws n Wiener increments for step length dt from the source.
func Increments(noise NoiseSource, n int, dt float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = noise.Increment(dt)
	}
	return out
}
