// Package registry implements the keyed store of live neurochemical state:
// neurotransmitter states with their kinetic configs, receptor states with
// their binding configs, and the single optional oscillation state.
//
// The registry is the aggregate root of a simulation. The engine borrows
// state through accessors, computes replacements, and writes them back; it
// never retains references across steps.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/angelina-gm1999/zados/internal/kinetics"
	"github.com/angelina-gm1999/zados/internal/state"
)

var (
	// ErrNotRegistered is returned when looking up an entity that was
	// never registered.
	ErrNotRegistered = errors.New("not registered")

	// ErrAlreadyRegistered is returned when registering a duplicate id.
	ErrAlreadyRegistered = errors.New("already registered")

	// ErrConfigNotFound is returned when an entity exists but carries no
	// config, which indicates registry corruption.
	ErrConfigNotFound = errors.New("config not found")
)

// NeurotransmitterEntry pairs a neurotransmitter's id with its current state
// and kinetic parameters for ordered iteration.
type NeurotransmitterEntry struct {
	ID     state.NeurotransmitterID
	State  state.NeurotransmitterState
	Params kinetics.Params
}

// ReceptorEntry pairs a receptor's id with its current state and binding
// parameters for ordered iteration.
type ReceptorEntry struct {
	ID     state.ReceptorID
	State  state.ReceptorState
	Params kinetics.ReceptorParams
}

// Registry stores all live simulation state keyed by typed ids. It is safe
// for concurrent use. Iteration follows registration order, which fixes the
// engine's per-step update order.
type Registry struct {
	mu sync.RWMutex

	ntOrder   []state.NeurotransmitterID
	ntStates  map[state.NeurotransmitterID]state.NeurotransmitterState
	ntParams  map[state.NeurotransmitterID]kinetics.Params
	recOrder  []state.ReceptorID
	recStates map[state.ReceptorID]state.ReceptorState
	recParams map[state.ReceptorID]kinetics.ReceptorParams

	oscillation *state.OscillationState
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		ntStates:  make(map[state.NeurotransmitterID]state.NeurotransmitterState),
		ntParams:  make(map[state.NeurotransmitterID]kinetics.Params),
		recStates: make(map[state.ReceptorID]state.ReceptorState),
		recParams: make(map[state.ReceptorID]kinetics.ReceptorParams),
	}
}

// RegisterNeurotransmitter adds a neurotransmitter with its initial state
// and kinetic parameters. Ids are validated here so every later lookup can
// trust the key. Re-registering an id fails; use UpdateNeurotransmitter for
// write-back.
func (r *Registry) RegisterNeurotransmitter(id state.NeurotransmitterID, st state.NeurotransmitterState, p kinetics.Params) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("neurotransmitter %q: %w", id, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ntStates[id]; ok {
		return fmt.Errorf("neurotransmitter %q %w", id, ErrAlreadyRegistered)
	}
	r.ntOrder = append(r.ntOrder, id)
	r.ntStates[id] = st
	r.ntParams[id] = p
	return nil
}

// GetNeurotransmitter returns the current state for id.
func (r *Registry) GetNeurotransmitter(id state.NeurotransmitterID) (state.NeurotransmitterState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st, ok := r.ntStates[id]
	if !ok {
		return state.NeurotransmitterState{}, fmt.Errorf("neurotransmitter %q %w", id, ErrNotRegistered)
	}
	return st, nil
}

// GetParams returns the kinetic parameters for id.
func (r *Registry) GetParams(id state.NeurotransmitterID) (kinetics.Params, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.ntStates[id]; !ok {
		return kinetics.Params{}, fmt.Errorf("neurotransmitter %q %w", id, ErrNotRegistered)
	}
	p, ok := r.ntParams[id]
	if !ok {
		return kinetics.Params{}, fmt.Errorf("%w for neurotransmitter %q", ErrConfigNotFound, id)
	}
	return p, nil
}

// UpdateNeurotransmitter replaces the state of a registered id wholesale.
// The engine calls this once per neurotransmitter per step.
func (r *Registry) UpdateNeurotransmitter(id state.NeurotransmitterID, st state.NeurotransmitterState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ntStates[id]; !ok {
		return fmt.Errorf("neurotransmitter %q %w", id, ErrNotRegistered)
	}
	r.ntStates[id] = st
	return nil
}

// NeurotransmitterIDs returns all registered ids in registration order.
func (r *Registry) NeurotransmitterIDs() []state.NeurotransmitterID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]state.NeurotransmitterID, len(r.ntOrder))
	copy(out, r.ntOrder)
	return out
}

// Neurotransmitters returns all entries in registration order.
func (r *Registry) Neurotransmitters() []NeurotransmitterEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]NeurotransmitterEntry, 0, len(r.ntOrder))
	for _, id := range r.ntOrder {
		out = append(out, NeurotransmitterEntry{
			ID:     id,
			State:  r.ntStates[id],
			Params: r.ntParams[id],
		})
	}
	return out
}

// RegisterReceptor adds a receptor with its initial state and binding
// parameters. Re-registering an id fails; use UpdateReceptor for write-back.
func (r *Registry) RegisterReceptor(id state.ReceptorID, st state.ReceptorState, p kinetics.ReceptorParams) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("receptor %q: %w", id, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.recStates[id]; ok {
		return fmt.Errorf("receptor %q %w", id, ErrAlreadyRegistered)
	}
	r.recOrder = append(r.recOrder, id)
	r.recStates[id] = st
	r.recParams[id] = p
	return nil
}

// GetReceptor returns the current state for id.
func (r *Registry) GetReceptor(id state.ReceptorID) (state.ReceptorState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st, ok := r.recStates[id]
	if !ok {
		return state.ReceptorState{}, fmt.Errorf("receptor %q %w", id, ErrNotRegistered)
	}
	return st, nil
}

// GetReceptorParams returns the binding parameters for id.
func (r *Registry) GetReceptorParams(id state.ReceptorID) (kinetics.ReceptorParams, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.recStates[id]; !ok {
		return kinetics.ReceptorParams{}, fmt.Errorf("receptor %q %w", id, ErrNotRegistered)
	}
	p, ok := r.recParams[id]
	if !ok {
		return kinetics.ReceptorParams{}, fmt.Errorf("%w for receptor %q", ErrConfigNotFound, id)
	}
	return p, nil
}

// UpdateReceptor replaces the state of a registered id wholesale.
func (r *Registry) UpdateReceptor(id state.ReceptorID, st state.ReceptorState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.recStates[id]; !ok {
		return fmt.Errorf("receptor %q %w", id, ErrNotRegistered)
	}
	r.recStates[id] = st
	return nil
}

// ReceptorIDs returns all registered ids in registration order.
func (r *Registry) ReceptorIDs() []state.ReceptorID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]state.ReceptorID, len(r.recOrder))
	copy(out, r.recOrder)
	return out
}

// Receptors returns all entries in registration order.
func (r *Registry) Receptors() []ReceptorEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ReceptorEntry, 0, len(r.recOrder))
	for _, id := range r.recOrder {
		out = append(out, ReceptorEntry{
			ID:     id,
			State:  r.recStates[id],
			Params: r.recParams[id],
		})
	}
	return out
}

// SetOscillation installs the global oscillation state, replacing any
// previous one. A nil value clears it.
func (r *Registry) SetOscillation(o *state.OscillationState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.oscillation = o
}

// Oscillation returns the global oscillation state, or nil when none is
// installed.
func (r *Registry) Oscillation() *state.OscillationState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.oscillation
}
