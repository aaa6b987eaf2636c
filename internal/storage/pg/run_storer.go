package pg

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/box-bench/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RunStorer struct {
	db *pgxpool.Pool
}

func NewRunStorer(pool *ConnectionPool) *RunStorer {
	return &RunStorer{db: pool.conn}
}

func (s *RunStorer) Save(ctx context.Context, run storage.Run) (uuid.UUID, error) {
	row, err := runToRow(run)
	if err != nil {
		return uuid.Nil, err
	}

	cmd := `
        INSERT INTO eval_runs
            (id, suite_name, suite_version, ap_mode, thresholds, sample_count,
             metrics, per_class, mean_duration_ms, started_at, stored_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING id;
    `
	var id uuid.UUID
	if err := s.db.QueryRow(ctx, cmd, row...).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert run: %w", err)
	}
	return id, nil
}

func (s *RunStorer) SaveBulk(ctx context.Context, runs []storage.Run) error {
	rows := make([][]interface{}, len(runs))
	for i, run := range runs {
		row, err := runToRow(run)
		if err != nil {
			return fmt.Errorf("run %d: %w", i, err)
		}
		rows[i] = row
	}

	_, err := s.db.CopyFrom(
		ctx,
		pgx.Identifier{"eval_runs"},
		[]string{"id", "suite_name", "suite_version", "ap_mode", "thresholds", "sample_count",
			"metrics", "per_class", "mean_duration_ms", "started_at", "stored_at"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to bulk insert runs: %w", err)
	}
	return nil
}

func runToRow(run storage.Run) ([]interface{}, error) {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.StoredAt.IsZero() {
		run.StoredAt = time.Now().UTC()
	}

	metricsJSON, err := json.Marshal(run.Metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metrics: %w", err)
	}
	perClassJSON, err := json.Marshal(run.PerClass)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal per-class scores: %w", err)
	}

	return []interface{}{
		run.ID,
		run.SuiteName,
		run.SuiteVersion,
		run.APMode,
		run.Thresholds,
		run.SampleCount,
		metricsJSON,
		perClassJSON,
		run.MeanDuration.Milliseconds(),
		run.StartedAt,
		run.StoredAt,
	}, nil
}
