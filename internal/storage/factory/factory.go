package factory

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/box-bench/internal/storage"
	"github.com/DjordjeVuckovic/box-bench/internal/storage/es"
	"github.com/DjordjeVuckovic/box-bench/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/box-bench/internal/storage/pg"
)

type Config struct {
	Type storage.Type
	Pg   *pg.PoolConfig
	Es   *es.ClientConfig
}

// NewRunStorer creates a storage.RunStorer for the configured backend.
func NewRunStorer(ctx context.Context, cfg Config) (storage.RunStorer, error) {
	switch cfg.Type {
	case storage.PG:
		if cfg.Pg == nil {
			return nil, fmt.Errorf("postgres storage selected but no pool config given")
		}

		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}

		return pg.NewRunStorer(pool), nil

	case storage.ES:
		if cfg.Es == nil {
			return nil, fmt.Errorf("elasticsearch storage selected but no client config given")
		}

		return es.NewRunIndexer(ctx, *cfg.Es)

	case storage.InMem:
		return in_mem.NewInMemStorer(), nil

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedStorer), cfg.Type)
	}
}
