package store

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ExportJSONL writes one run as JSONL: the run header on the first
// line, then one step record per line in index order.
func ExportJSONL(ctx context.Context, rs RunStore, runID string, w io.Writer) error {
	run, err := rs.GetRun(ctx, runID)
	if err != nil {
		return err
	}
	steps, err := rs.Steps(ctx, runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	if err := enc.Encode(run); err != nil {
		return fmt.Errorf("failed to encode run header: %w", err)
	}
	for _, step := range steps {
		if err := enc.Encode(step); err != nil {
			return fmt.Errorf("failed to encode step %d: %w", step.Index, err)
		}
	}
	return nil
}

// ImportJSONL reads a run exported by ExportJSONL and stores it under a
// fresh id. Blank lines are skipped; malformed step lines are reported
// on stderr and skipped.
func ImportJSONL(ctx context.Context, rs RunStore, r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	// Step lines carry full per-population maps, so allow long lines.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	var runID string
	var header Run
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" {
			continue
		}

		if runID == "" {
			if err := json.Unmarshal([]byte(line), &header); err != nil {
				return "", fmt.Errorf("failed to parse run header: %w", err)
			}
			id, err := rs.CreateRun(ctx, header.Meta)
			if err != nil {
				return "", fmt.Errorf("failed to create imported run: %w", err)
			}
			runID = id
			continue
		}

		var step StepRecord
		if err := json.Unmarshal([]byte(line), &step); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to parse step at line %d: %v\n", lineNum, err)
			continue
		}
		if err := rs.AppendStep(ctx, runID, step); err != nil {
			return "", fmt.Errorf("failed to import step %d: %w", step.Index, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("scanner error: %w", err)
	}

	if runID == "" {
		return "", fmt.Errorf("no run header found")
	}

	if header.FinishedAt != nil {
		if err := rs.FinishRun(ctx, runID); err != nil {
			return "", fmt.Errorf("failed to finish imported run: %w", err)
		}
	}
	return runID, nil
}
