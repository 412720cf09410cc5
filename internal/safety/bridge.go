// Package safety enforces hard constraints between reward synthesis and
// state acceptance. Constraint hooks have absolute priority: reward
// signals can never override a constraint outcome, and states that fail
// a constraint are never committed.
package safety

import (
	"errors"
	"fmt"
)

// ErrUnknownAction reports a disallowing constraint hook that named an
// action outside the recognized set.
var ErrUnknownAction = errors.New("unknown constraint action")

// Action is the outcome a constraint hook requests for a proposed
// state.
type Action string

const (
	// ActionAllow accepts the proposed state.
	ActionAllow Action = "allow"

	// ActionVeto blocks the proposed state outright.
	ActionVeto Action = "veto"

	// ActionRollback restores the last verified state.
	ActionRollback Action = "rollback"

	// ActionRevert undoes the proposing step's effects.
	ActionRevert Action = "revert"
)

// Result is a single hook's judgment of a proposed state. A disallowing
// result with an empty Action is treated as a veto.
type Result struct {
	Allowed bool   `json:"allowed"`
	Action  Action `json:"action"`
	Reason  string `json:"reason,omitempty"`
}

// Hook evaluates hard constraints against a proposed state.
type Hook interface {
	Check(state any, ctx map[string]any) Result
}

// Verdict is the bridge's final ruling on a proposed state.
type Verdict struct {
	Allowed    bool   `json:"allowed"`
	FinalState any    `json:"final_state"`
	Action     Action `json:"action"`
	Reason     string `json:"reason,omitempty"`
}

// Bridge gates reward-modulated state changes behind ordered constraint
// hooks and keeps the last verified state as the restore target.
type Bridge struct {
	hooks        []Hook
	lastVerified any
}

// NewBridge returns a bridge running the given hooks in order.
func NewBridge(hooks ...Hook) *Bridge {
	return &Bridge{hooks: append([]Hook(nil), hooks...)}
}

// RegisterVerifiedState stores a known-good state snapshot. The bridge
// returns it as the final state whenever a hook disallows a proposal.
func (b *Bridge) RegisterVerifiedState(state any) {
	b.lastVerified = state
}

// Evaluate runs every constraint hook against the proposed state in
// registration order. The first hook that disallows wins: its action
// and reason come back with the last verified state, and later hooks
// never run. When every hook passes, the proposal becomes the new
// verified state.
//
// A disallowing hook naming an action other than veto, rollback, or
// revert is a programming error reported as ErrUnknownAction.
func (b *Bridge) Evaluate(proposed any, ctx map[string]any) (Verdict, error) {
	for _, hook := range b.hooks {
		result := hook.Check(proposed, ctx)
		if result.Allowed {
			continue
		}

		action := result.Action
		if action == "" {
			action = ActionVeto
		}
		switch action {
		case ActionVeto, ActionRollback, ActionRevert:
		default:
			return Verdict{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
		}

		return Verdict{
			Allowed:    false,
			FinalState: b.lastVerified,
			Action:     action,
			Reason:     result.Reason,
		}, nil
	}

	b.RegisterVerifiedState(proposed)
	return Verdict{
		Allowed:    true,
		FinalState: proposed,
		Action:     ActionAllow,
	}, nil
}
