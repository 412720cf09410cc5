package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewGraphCmd(t *testing.T) {
	cmd := newGraphCmd()
	if !strings.HasPrefix(cmd.Use, "graph") {
		t.Errorf("Use = %q, want graph prefix", cmd.Use)
	}
	if cmd.Flags().Lookup("steps") == nil {
		t.Error("missing --steps flag")
	}
	if cmd.Flags().Lookup("format") == nil {
		t.Error("missing --format flag")
	}
}

func TestGraphDOT(t *testing.T) {
	path := writeScenarioFile(t, smokeScenario)

	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newGraphCmd())
	rootCmd.SetArgs([]string{"graph", path})
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("graph failed: %v", err)
	}

	output := out.String()
	for _, want := range []string{
		"digraph zados {",
		`"DA" [label="DA\nC=0.500 F=0.000"`,
		`"DA_D2" [label="DA_D2\nS=0.500"`,
		// The scenario declares no envelope, so the default band
		// amplitudes apply.
		`"theta" [label="theta\nphi=0.400"`,
		`"DA" -> "DA_D2" [label="binds"`,
		`"DA_D2" -> "precision" [label="drives", style=solid]`,
		`"theta" -> "empathy" [label="gates", style=dotted]`,
		`"motivation"`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("DOT output missing %q", want)
		}
	}
	// None of the smoke scenario's metric inputs oppose.
	if strings.Contains(output, "opposes") {
		t.Errorf("unexpected opposing edge: %q", output)
	}
}

func TestGraphJSON(t *testing.T) {
	path := writeScenarioFile(t, smokeScenario)

	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newGraphCmd())
	rootCmd.SetArgs([]string{"graph", path, "--format", "json"})
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("graph --format json failed: %v", err)
	}

	var parsed struct {
		Nodes []map[string]any `json:"nodes"`
		Edges []map[string]any `json:"edges"`
	}
	if err := json.Unmarshal(out.Bytes(), &parsed); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}
	// One pool, one receptor, the five default bands and the eight
	// metric projections.
	if len(parsed.Nodes) != 15 {
		t.Errorf("nodes = %d, want 15", len(parsed.Nodes))
	}
	// The binds edge, DA_D2 driving precision and cognitive rigidity,
	// and theta, delta and beta gating their metrics; every other
	// metric input is unregistered.
	if len(parsed.Edges) != 6 {
		t.Errorf("edges = %d, want 6", len(parsed.Edges))
	}

	kinds := map[string]int{}
	for _, e := range parsed.Edges {
		kinds[e["kind"].(string)]++
	}
	if kinds["binds"] != 1 || kinds["drives"] != 2 || kinds["gates"] != 3 {
		t.Errorf("edge kinds = %v, want 1 binds, 2 drives, 3 gates", kinds)
	}
}

func TestGraphAfterSteps(t *testing.T) {
	path := writeScenarioFile(t, smokeScenario)

	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newGraphCmd())
	rootCmd.SetArgs([]string{"graph", path, "--steps", "4"})
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("graph --steps failed: %v", err)
	}
	// Four signalled steps raise phasic dopamine and accrue fatigue,
	// so the initial label values must be gone.
	if strings.Contains(out.String(), "C=0.500 F=0.000") {
		t.Error("node labels still carry the initial state after stepping")
	}
}

func TestGraphBadFormat(t *testing.T) {
	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newGraphCmd())
	rootCmd.SetArgs([]string{"graph", "--format", "svg"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	if !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("expected unknown format error, got: %v", err)
	}
}

func TestGraphNegativeSteps(t *testing.T) {
	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newGraphCmd())
	rootCmd.SetArgs([]string{"graph", "--steps", "-1"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error for negative steps")
	}
}
