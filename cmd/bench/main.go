package main

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/DjordjeVuckovic/box-bench/internal/bench/report"
	"github.com/DjordjeVuckovic/box-bench/internal/bench/runner"
	"github.com/DjordjeVuckovic/box-bench/internal/bench/suite"
	"github.com/DjordjeVuckovic/box-bench/internal/storage"
	"github.com/DjordjeVuckovic/box-bench/internal/storage/es"
	"github.com/DjordjeVuckovic/box-bench/internal/storage/factory"
	"github.com/DjordjeVuckovic/box-bench/internal/storage/pg"
)

const benchVersion = "1.0"

func main() {
	cfg := parseFlags()
	ctx := context.Background()

	thresholds, err := cfg.parseThresholds()
	if err != nil {
		slog.Error("Invalid thresholds", "error", err)
		os.Exit(1)
	}

	s, err := suite.LoadFromFile(cfg.SuitePath)
	if err != nil {
		slog.Error("Failed to load suite", "path", cfg.SuitePath, "error", err)
		os.Exit(1)
	}

	runCfg := runner.Config{
		IoUThresholds: thresholds,
		APMode:        cfg.APMode,
		WarmupRuns:    cfg.Warmup,
		Runs:          max(cfg.Runs, 1),
	}

	rr, err := runner.New(runCfg).Run(ctx, s)
	if err != nil {
		slog.Error("Run failed", "suite", s.Name, "error", err)
		os.Exit(1)
	}

	r := report.New(benchVersion, rr)
	report.WriteTable(r, os.Stdout)

	if cfg.Output != "" {
		if err := report.WriteJSON(r, cfg.Output); err != nil {
			slog.Error("Failed to write report", "path", cfg.Output, "error", err)
			os.Exit(1)
		}
		slog.Info("Report written", "path", cfg.Output)
	}

	if cfg.Store != "" {
		storeRun(ctx, cfg, rr)
	}
}

func storeRun(ctx context.Context, cfg cliConfig, rr *runner.RunResult) {
	fCfg := factory.Config{Type: storage.Type(cfg.Store)}
	switch fCfg.Type {
	case storage.PG:
		fCfg.Pg = &pg.PoolConfig{ConnStr: cfg.PgConnStr}
	case storage.ES:
		fCfg.Es = &es.ClientConfig{
			Addresses: strings.Split(cfg.EsAddresses, ","),
			IndexName: cfg.EsIndex,
			Username:  os.Getenv("ES_USERNAME"),
			Password:  os.Getenv("ES_PASSWORD"),
		}
	}

	storer, err := factory.NewRunStorer(ctx, fCfg)
	if err != nil {
		slog.Error("Failed to create run storer", "type", cfg.Store, "error", err)
		os.Exit(1)
	}

	id, err := storer.Save(ctx, storage.FromRunResult(rr))
	if err != nil {
		slog.Error("Failed to store run", "error", err)
		os.Exit(1)
	}
	slog.Info("Run stored", "id", id, "type", cfg.Store)
}
