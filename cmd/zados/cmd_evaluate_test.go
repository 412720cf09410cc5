package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeStateFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing state file: %v", err)
	}
	return path
}

// calibratedState scores 1.0 on ethics and 2/3 on logic: internal
// consistency degrades to zero without a memory contrast capability.
const calibratedState = `{
  "declared_intent": "stabilize dopamine tone",
  "inferred_intent_confidence": 0.8,
  "confidence": 0.7,
  "uncertainty": 0.3,
  "uncertainty_ack": 0.3
}`

func TestNewEvaluateCmd(t *testing.T) {
	cmd := newEvaluateCmd()
	if !strings.HasPrefix(cmd.Use, "evaluate") {
		t.Errorf("Use = %q, want evaluate prefix", cmd.Use)
	}
	if cmd.Flags().Lookup("profile") == nil {
		t.Error("missing --profile flag")
	}
}

func TestEvaluateAllowedState(t *testing.T) {
	path := writeStateFile(t, calibratedState)

	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newEvaluateCmd())
	rootCmd.SetArgs([]string{"evaluate", path})
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}

	output := out.String()
	for _, want := range []string{
		"Profile: reflective",
		"ethics   1.000",
		"logic    0.667",
		"missing_memory_contrast",
		"Total:   0.843",
		"Verdict: allow",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q: %q", want, output)
		}
	}
}

func TestEvaluateJSON(t *testing.T) {
	path := writeStateFile(t, calibratedState)

	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newEvaluateCmd())
	rootCmd.SetArgs([]string{"evaluate", path, "--json"})
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("evaluate --json failed: %v", err)
	}

	var parsed struct {
		Profile string  `json:"profile"`
		Total   float64 `json:"total"`
		Verdict struct {
			Allowed bool   `json:"allowed"`
			Action  string `json:"action"`
		} `json:"verdict"`
	}
	if err := json.Unmarshal(out.Bytes(), &parsed); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}
	if parsed.Profile != "reflective" {
		t.Errorf("profile = %q, want reflective", parsed.Profile)
	}
	// (0.9*1 + 0.8*(2/3)) / 1.7
	if parsed.Total < 0.84 || parsed.Total > 0.85 {
		t.Errorf("total = %v, want about 0.843", parsed.Total)
	}
	if !parsed.Verdict.Allowed || parsed.Verdict.Action != "allow" {
		t.Errorf("verdict = %+v, want allowed", parsed.Verdict)
	}
}

func TestEvaluateVetoesOutOfBoundsState(t *testing.T) {
	path := writeStateFile(t, `{"motivation": 1.7}`)

	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newEvaluateCmd())
	rootCmd.SetArgs([]string{"evaluate", path})
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("expected error for out-of-bounds state")
	}
	if !strings.Contains(err.Error(), "disallowed") {
		t.Errorf("expected disallowed error, got: %v", err)
	}

	output := out.String()
	if !strings.Contains(output, "Verdict: veto") {
		t.Errorf("output missing veto verdict: %q", output)
	}
	if !strings.Contains(output, "motivation") {
		t.Errorf("output missing offending field: %q", output)
	}
}

func TestEvaluateUnknownProfile(t *testing.T) {
	path := writeStateFile(t, calibratedState)

	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newEvaluateCmd())
	rootCmd.SetArgs([]string{"evaluate", path, "--profile", "dreamy"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("expected error for unknown profile")
	}
	if !strings.Contains(err.Error(), "unknown reward profile") {
		t.Errorf("expected unknown profile error, got: %v", err)
	}
}

func TestEvaluateMalformedState(t *testing.T) {
	path := writeStateFile(t, `{"confidence": `)

	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newEvaluateCmd())
	rootCmd.SetArgs([]string{"evaluate", path})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error for malformed snapshot")
	}
}
