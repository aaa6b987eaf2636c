package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/box-bench/internal/bench/suite"
	"github.com/DjordjeVuckovic/box-bench/internal/eval"
	"github.com/google/uuid"
)

type Runner struct {
	config Config
}

func New(cfg Config) *Runner {
	return &Runner{config: cfg}
}

// Run scores one suite. Warmup passes are discarded; the remaining passes
// all produce identical scores, so only their wall time is aggregated.
func (r *Runner) Run(ctx context.Context, s *suite.Suite) (*RunResult, error) {
	ev, err := eval.New(eval.Config{
		IoUThresholds: r.config.IoUThresholds,
		APMode:        r.config.APMode,
		ClassNames:    s.Classes,
	})
	if err != nil {
		return nil, fmt.Errorf("configure evaluator: %w", err)
	}

	pairs := s.Pairs()
	rr := &RunResult{
		RunID:        uuid.New(),
		SuiteName:    s.Name,
		SuiteVersion: s.Version,
		Classes:      s.Classes,
		SampleCount:  len(pairs),
		StartedAt:    time.Now().UTC(),
		Config:       r.config,
	}

	slog.Info("starting evaluation run",
		"run_id", rr.RunID,
		"suite", s.Name,
		"samples", len(pairs),
		"warmup", r.config.WarmupRuns,
		"runs", r.config.Runs,
	)

	for i := 0; i < r.config.WarmupRuns; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, err := ev.ComputePairs(pairs); err != nil {
			return nil, fmt.Errorf("warmup pass %d: %w", i, err)
		}
	}

	runs := r.config.Runs
	if runs < 1 {
		runs = DefaultRuns
	}

	durations := make([]time.Duration, 0, runs)
	for i := 0; i < runs; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		scores, err := ev.ComputePairs(pairs)
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", i, err)
		}
		durations = append(durations, time.Since(start))
		rr.Scores = scores
	}

	rr.Timing = ComputeTimingStats(durations)

	slog.Info("evaluation run finished",
		"run_id", rr.RunID,
		"suite", s.Name,
		"mean", rr.Timing.Mean,
	)
	return rr, nil
}
