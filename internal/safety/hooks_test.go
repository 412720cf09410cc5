package safety

import (
	"math"
	"strings"
	"testing"
)

func TestBoundsHook_InRange(t *testing.T) {
	h := BoundsHook{Min: 0, Max: 1}

	res := h.Check(map[string]float64{"DA": 0.4, "motivation": 1.0, "empathy": 0.0}, nil)
	if !res.Allowed {
		t.Fatalf("Allowed = false: %s", res.Reason)
	}
	if res.Action != ActionAllow {
		t.Errorf("Action = %q, want allow", res.Action)
	}
}

func TestBoundsHook_OutOfRange(t *testing.T) {
	h := BoundsHook{Min: 0, Max: 1}

	res := h.Check(map[string]any{"motivation": 1.7, "anxiety": 0.2}, nil)
	if res.Allowed {
		t.Fatal("Allowed = true for out-of-range field")
	}
	if res.Action != "" {
		t.Errorf("Action = %q, want empty so the bridge defaults to veto", res.Action)
	}
	if !strings.Contains(res.Reason, "motivation") {
		t.Errorf("Reason = %q, want the offending field named", res.Reason)
	}
}

func TestBoundsHook_BlamesFirstFieldInKeyOrder(t *testing.T) {
	h := BoundsHook{Min: 0, Max: 1}

	res := h.Check(map[string]float64{"zeta": 5, "alpha": -1}, nil)
	if res.Allowed {
		t.Fatal("Allowed = true for out-of-range fields")
	}
	if !strings.Contains(res.Reason, "alpha") {
		t.Errorf("Reason = %q, want alpha blamed first", res.Reason)
	}
}

func TestBoundsHook_NonFinite(t *testing.T) {
	h := BoundsHook{Min: 0, Max: 1}

	for name, v := range map[string]float64{
		"nan":     math.NaN(),
		"pos_inf": math.Inf(1),
		"neg_inf": math.Inf(-1),
	} {
		if res := h.Check(map[string]float64{"DA": v}, nil); res.Allowed {
			t.Errorf("%s: Allowed = true for non-finite field", name)
		}
	}
}

func TestBoundsHook_RequestedAction(t *testing.T) {
	h := BoundsHook{Min: 0, Max: 1, OnViolation: ActionRollback}

	res := h.Check(map[string]float64{"DA": 2}, nil)
	if res.Action != ActionRollback {
		t.Errorf("Action = %q, want rollback", res.Action)
	}
}

func TestBoundsHook_IgnoresNonNumericFields(t *testing.T) {
	h := BoundsHook{Min: 0, Max: 1}

	state := map[string]any{
		"declared_intent": "hold dopamine tone",
		"flagged":         true,
		"confidence":      0.5,
		"steps":           1,
	}
	if res := h.Check(state, nil); !res.Allowed {
		t.Fatalf("Allowed = false: %s", res.Reason)
	}
}

func TestBoundsHook_OpaqueStatePasses(t *testing.T) {
	h := BoundsHook{Min: 0, Max: 1}

	if res := h.Check("opaque", nil); !res.Allowed {
		t.Errorf("Allowed = false for non-map state: %s", res.Reason)
	}
}

func TestBridgeWithBoundsHook(t *testing.T) {
	b := NewBridge(BoundsHook{Min: 0, Max: 1})

	good := map[string]float64{"DA": 0.5}
	if verdict, err := b.Evaluate(good, nil); err != nil || !verdict.Allowed {
		t.Fatalf("verdict = %+v, err = %v, want the proposal accepted", verdict, err)
	}

	verdict, err := b.Evaluate(map[string]float64{"DA": 1.5}, nil)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if verdict.Allowed {
		t.Error("Allowed = true for out-of-bounds proposal")
	}
	if got := verdict.FinalState.(map[string]float64)["DA"]; got != 0.5 {
		t.Errorf("FinalState DA = %v, want the verified 0.5", got)
	}
}
