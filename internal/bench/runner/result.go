package runner

import (
	"time"

	"github.com/DjordjeVuckovic/box-bench/internal/eval"
	"github.com/google/uuid"
)

// RunResult is the outcome of one evaluation run over a suite: the scores
// themselves plus enough metadata to store, index and compare runs later.
type RunResult struct {
	RunID        uuid.UUID    `json:"run_id"`
	SuiteName    string       `json:"suite_name"`
	SuiteVersion string       `json:"suite_version,omitempty"`
	Classes      []string     `json:"classes"`
	SampleCount  int          `json:"sample_count"`
	StartedAt    time.Time    `json:"started_at"`
	Config       Config       `json:"config"`
	Scores       *eval.Result `json:"scores"`
	Timing       TimingStats  `json:"timing"`
}
