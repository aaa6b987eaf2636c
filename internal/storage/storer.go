package storage

import (
	"context"
	"time"

	"github.com/DjordjeVuckovic/box-bench/internal/bench/runner"
	"github.com/DjordjeVuckovic/box-bench/internal/eval"
	"github.com/google/uuid"
)

// Run is the persisted form of one evaluation run.
type Run struct {
	ID           uuid.UUID          `json:"id"`
	SuiteName    string             `json:"suite_name"`
	SuiteVersion string             `json:"suite_version,omitempty"`
	APMode       string             `json:"ap_mode"`
	Thresholds   []float64          `json:"thresholds"`
	SampleCount  int                `json:"sample_count"`
	Metrics      map[string]float64 `json:"metrics"`
	PerClass     []eval.ClassResult `json:"per_class"`
	MeanDuration time.Duration      `json:"mean_duration"`
	StartedAt    time.Time          `json:"started_at"`
	StoredAt     time.Time          `json:"stored_at"`
}

// FromRunResult flattens a runner result into its storable form.
func FromRunResult(rr *runner.RunResult) Run {
	return Run{
		ID:           rr.RunID,
		SuiteName:    rr.SuiteName,
		SuiteVersion: rr.SuiteVersion,
		APMode:       rr.Config.APMode,
		Thresholds:   rr.Scores.Thresholds,
		SampleCount:  rr.SampleCount,
		Metrics:      rr.Scores.Metrics,
		PerClass:     rr.Scores.PerClass,
		MeanDuration: rr.Timing.Mean,
		StartedAt:    rr.StartedAt,
	}
}

type RunStorer interface {
	Save(ctx context.Context, run Run) (uuid.UUID, error)
	SaveBulk(ctx context.Context, runs []Run) error
}

type Type string

const (
	ES    Type = "es"
	PG    Type = "pg"
	InMem Type = "in_mem"
)

type StorerError string

const (
	ErrUnsupportedStorer StorerError = "unsupported storer type: %s"
)

func (e StorerError) Error() string {
	return string(e)
}
