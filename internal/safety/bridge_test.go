package safety

import (
	"errors"
	"testing"
)

type stubHook struct {
	result Result
	calls  int
}

func (h *stubHook) Check(state any, ctx map[string]any) Result {
	h.calls++
	return h.result
}

func TestBridgeEvaluate_AllPass(t *testing.T) {
	b := NewBridge(
		&stubHook{result: Result{Allowed: true}},
		&stubHook{result: Result{Allowed: true}},
	)

	proposed := map[string]float64{"DA": 0.7}
	verdict, err := b.Evaluate(proposed, nil)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if !verdict.Allowed {
		t.Error("Allowed = false, want true")
	}
	if verdict.Action != ActionAllow {
		t.Errorf("Action = %q, want allow", verdict.Action)
	}
	if verdict.FinalState == nil {
		t.Fatal("FinalState is nil")
	}
	if got := verdict.FinalState.(map[string]float64)["DA"]; got != 0.7 {
		t.Errorf("FinalState DA = %v, want 0.7", got)
	}
}

func TestBridgeEvaluate_FirstDisallowWins(t *testing.T) {
	first := &stubHook{result: Result{Allowed: true}}
	second := &stubHook{result: Result{Allowed: false, Action: ActionVeto, Reason: "concentration out of bounds"}}
	third := &stubHook{result: Result{Allowed: true}}
	b := NewBridge(first, second, third)
	b.RegisterVerifiedState("known-good")

	verdict, err := b.Evaluate("proposed", nil)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if verdict.Allowed {
		t.Error("Allowed = true, want false")
	}
	if verdict.Action != ActionVeto {
		t.Errorf("Action = %q, want veto", verdict.Action)
	}
	if verdict.Reason != "concentration out of bounds" {
		t.Errorf("Reason = %q", verdict.Reason)
	}
	if verdict.FinalState != "known-good" {
		t.Errorf("FinalState = %v, want the verified state", verdict.FinalState)
	}
	if third.calls != 0 {
		t.Errorf("later hook ran %d times after a disallow", third.calls)
	}
}

func TestBridgeEvaluate_EmptyActionDefaultsToVeto(t *testing.T) {
	b := NewBridge(&stubHook{result: Result{Allowed: false}})

	verdict, err := b.Evaluate("proposed", nil)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if verdict.Action != ActionVeto {
		t.Errorf("Action = %q, want veto", verdict.Action)
	}
}

func TestBridgeEvaluate_UnknownAction(t *testing.T) {
	b := NewBridge(&stubHook{result: Result{Allowed: false, Action: "escalate"}})

	_, err := b.Evaluate("proposed", nil)
	if !errors.Is(err, ErrUnknownAction) {
		t.Errorf("err = %v, want ErrUnknownAction", err)
	}
}

func TestBridgeEvaluate_AcceptedStateBecomesVerified(t *testing.T) {
	gate := &stubHook{result: Result{Allowed: true}}
	b := NewBridge(gate)

	if _, err := b.Evaluate("first", nil); err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	// Flip the hook to rollback and confirm the restore target is the
	// previously accepted proposal.
	gate.result = Result{Allowed: false, Action: ActionRollback, Reason: "fatigue ceiling"}
	verdict, err := b.Evaluate("second", nil)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if verdict.Allowed {
		t.Error("Allowed = true, want false")
	}
	if verdict.Action != ActionRollback {
		t.Errorf("Action = %q, want rollback", verdict.Action)
	}
	if verdict.FinalState != "first" {
		t.Errorf("FinalState = %v, want the previously verified state", verdict.FinalState)
	}
}

func TestBridgeEvaluate_NoVerifiedState(t *testing.T) {
	b := NewBridge(&stubHook{result: Result{Allowed: false, Action: ActionRevert}})

	verdict, err := b.Evaluate("proposed", nil)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if verdict.FinalState != nil {
		t.Errorf("FinalState = %v, want nil before any verified state", verdict.FinalState)
	}
}

func TestBridgeEvaluate_NoHooks(t *testing.T) {
	b := NewBridge()

	verdict, err := b.Evaluate("proposed", map[string]any{"step": 1})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !verdict.Allowed || verdict.FinalState != "proposed" {
		t.Errorf("verdict = %+v, want allowed with the proposal committed", verdict)
	}
}

func TestBridgeEvaluate_ContextReachesHooks(t *testing.T) {
	var seen map[string]any
	hook := hookFunc(func(state any, ctx map[string]any) Result {
		seen = ctx
		return Result{Allowed: true}
	})

	b := NewBridge(hook)
	ctx := map[string]any{"step": 42, "mode": "reflective"}
	if _, err := b.Evaluate("proposed", ctx); err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if seen["step"] != 42 || seen["mode"] != "reflective" {
		t.Errorf("hook saw ctx %v", seen)
	}
}

type hookFunc func(state any, ctx map[string]any) Result

func (f hookFunc) Check(state any, ctx map[string]any) Result { return f(state, ctx) }
