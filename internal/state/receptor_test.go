package state

import (
	"errors"
	"math"
	"testing"
)

func TestReceptorState_Saturation(t *testing.T) {
	r := DefaultReceptorState()

	tests := []struct {
		name  string
		c, kd float64
		want  float64
	}{
		{name: "half occupancy at c equal to kd", c: 0.5, kd: 0.5, want: 0.5},
		{name: "zero concentration binds nothing", c: 0, kd: 0.5, want: 0},
		{name: "high concentration approaches one", c: 100, kd: 0.5, want: 100.0 / 100.5},
		{name: "degenerate zero denominator", c: 0, kd: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Saturation(tt.c, tt.kd); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Saturation(%v, %v) = %v, want %v", tt.c, tt.kd, got, tt.want)
			}
		})
	}
}

func TestParseFunctionalState(t *testing.T) {
	for _, fs := range FunctionalStates() {
		got, err := ParseFunctionalState(string(fs))
		if err != nil {
			t.Errorf("ParseFunctionalState(%q) returned error: %v", fs, err)
		}
		if got != fs {
			t.Errorf("ParseFunctionalState(%q) = %q", fs, got)
		}
	}

	if _, err := ParseFunctionalState("hibernating"); !errors.Is(err, ErrUnknownFunctionalState) {
		t.Errorf("ParseFunctionalState(unknown) error = %v, want ErrUnknownFunctionalState", err)
	}
}

func TestReceptorState_SetFunctionalState(t *testing.T) {
	r := DefaultReceptorState()
	r.Tick(5)

	// A no-op transition must not reset the timer.
	if err := r.SetFunctionalState(FunctionalActive); err != nil {
		t.Fatalf("SetFunctionalState(active) returned error: %v", err)
	}
	if r.TimeInState != 5 {
		t.Errorf("no-op transition reset TimeInState to %v, want 5", r.TimeInState)
	}

	// A real transition resets it.
	if err := r.SetFunctionalState(FunctionalDesensitized); err != nil {
		t.Fatalf("SetFunctionalState(desensitized) returned error: %v", err)
	}
	if r.Chi != FunctionalDesensitized {
		t.Errorf("Chi = %q, want desensitized", r.Chi)
	}
	if r.TimeInState != 0 {
		t.Errorf("transition left TimeInState at %v, want 0", r.TimeInState)
	}

	if err := r.SetFunctionalState("melted"); !errors.Is(err, ErrUnknownFunctionalState) {
		t.Errorf("SetFunctionalState(unknown) error = %v, want ErrUnknownFunctionalState", err)
	}
}

func TestReceptorState_UpdateExposure(t *testing.T) {
	r := DefaultReceptorState()

	// First step from zero: pure accumulation.
	r.UpdateExposure(0.8, 0.1)
	want := 0.8 * 0.1
	if math.Abs(r.ExposureTrace-want) > 1e-12 {
		t.Fatalf("ExposureTrace after first step = %v, want %v", r.ExposureTrace, want)
	}

	// Second step: previous trace decays by exp(-dt/tau) before the bump.
	prev := r.ExposureTrace
	r.UpdateExposure(0, 1)
	want = prev * math.Exp(-1.0/ExposureTraceTau)
	if math.Abs(r.ExposureTrace-want) > 1e-12 {
		t.Errorf("ExposureTrace after decay step = %v, want %v", r.ExposureTrace, want)
	}
}

func TestReceptorState_DeltaUpdatesClamp(t *testing.T) {
	r := DefaultReceptorState()

	r.UpdateDensity(0.5)
	if r.Rho != 1 {
		t.Errorf("UpdateDensity above ceiling: Rho = %v, want 1", r.Rho)
	}
	r.UpdateDensity(-1.5)
	if r.Rho != 0 {
		t.Errorf("UpdateDensity below floor: Rho = %v, want 0", r.Rho)
	}

	r.UpdateSensitivity(-0.25)
	if r.Sigma != 0.75 {
		t.Errorf("UpdateSensitivity(-0.25): Sigma = %v, want 0.75", r.Sigma)
	}
	r.UpdateSensitivity(9)
	if r.Sigma != 1 {
		t.Errorf("UpdateSensitivity above ceiling: Sigma = %v, want 1", r.Sigma)
	}
}

func TestReceptorState_TickIgnoresNegative(t *testing.T) {
	r := DefaultReceptorState()
	r.Tick(2)
	r.Tick(-1)
	if r.TimeInState != 2 {
		t.Errorf("TimeInState = %v, want 2", r.TimeInState)
	}
}

func TestNewReceptorState(t *testing.T) {
	r, err := NewReceptorState(1.5, -0.5, 0.5, 2, "")
	if err != nil {
		t.Fatalf("NewReceptorState returned error: %v", err)
	}
	if r.Rho != 1 || r.Sigma != 0 || r.LambdaLoc != 0.5 || r.GammaGProtein != 1 {
		t.Errorf("NewReceptorState clamped fields = %+v", r)
	}
	if r.Chi != FunctionalActive {
		t.Errorf("empty functional state defaulted to %q, want active", r.Chi)
	}

	if _, err := NewReceptorState(1, 1, 0.5, 1, "bogus"); !errors.Is(err, ErrUnknownFunctionalState) {
		t.Errorf("NewReceptorState(bogus state) error = %v, want ErrUnknownFunctionalState", err)
	}
}
