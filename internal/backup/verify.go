package backup

import (
	"fmt"
)

// VerifyResult summarizes an archive integrity check.
type VerifyResult struct {
	Path     string   `json:"path"`
	Version  int      `json:"version"`
	Runs     int      `json:"runs"`
	Records  int      `json:"records"`
	Problems []string `json:"problems,omitempty"`
}

// OK reports whether the archive passed every check.
func (r *VerifyResult) OK() bool {
	return len(r.Problems) == 0
}

// Verify decodes the archive at path and checks its internal
// consistency: unique run ids, per-run record counts matching the run's
// recorded step count, contiguous step indexes, and timestamp ordering.
// Decode failures and unsupported versions return an error; content
// problems land in the result.
func Verify(path string) (*VerifyResult, error) {
	archive, err := readArchive(path)
	if err != nil {
		return nil, err
	}

	result := &VerifyResult{
		Path:    path,
		Version: archive.Version,
		Runs:    len(archive.Runs),
	}

	seen := make(map[string]bool, len(archive.Runs))
	for _, ar := range archive.Runs {
		result.Records += len(ar.Records)

		if ar.Run.ID == "" {
			result.Problems = append(result.Problems, "run with empty id")
			continue
		}
		if seen[ar.Run.ID] {
			result.Problems = append(result.Problems,
				fmt.Sprintf("run %s: duplicate id", ar.Run.ID))
		}
		seen[ar.Run.ID] = true

		if ar.Run.Steps != len(ar.Records) {
			result.Problems = append(result.Problems,
				fmt.Sprintf("run %s: header says %d steps, archive carries %d records",
					ar.Run.ID, ar.Run.Steps, len(ar.Records)))
		}

		for i, rec := range ar.Records {
			if rec.Index != i {
				result.Problems = append(result.Problems,
					fmt.Sprintf("run %s: record %d has index %d", ar.Run.ID, i, rec.Index))
				break
			}
		}

		if ar.Run.FinishedAt != nil && ar.Run.FinishedAt.Before(ar.Run.StartedAt) {
			result.Problems = append(result.Problems,
				fmt.Sprintf("run %s: finished before it started", ar.Run.ID))
		}
	}

	return result, nil
}
