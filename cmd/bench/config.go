package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

type cliConfig struct {
	SuitePath   string
	Thresholds  string
	APMode      string
	Warmup      int
	Runs        int
	Output      string
	Store       string
	PgConnStr   string
	EsAddresses string
	EsIndex     string
}

func parseFlags() cliConfig {
	cfg := cliConfig{}

	flag.StringVar(&cfg.SuitePath, "suite", "configs/bench/example_suite.yaml", "Path to suite YAML")
	flag.StringVar(&cfg.Thresholds, "thresholds", "0.25,0.5", "IoU thresholds, comma-separated")
	flag.StringVar(&cfg.APMode, "mode", "area", "AP integration mode: area or 11points")
	flag.IntVar(&cfg.Warmup, "warmup", 0, "Number of warmup passes before measurement")
	flag.IntVar(&cfg.Runs, "runs", 1, "Number of measured passes")
	flag.StringVar(&cfg.Output, "output", "", "Output path for the JSON report")
	flag.StringVar(&cfg.Store, "store", "", "Store the run: pg, es or in_mem")
	flag.StringVar(&cfg.PgConnStr, "pg", "", "PostgreSQL connection string")
	flag.StringVar(&cfg.EsAddresses, "es-addresses", "", "Elasticsearch addresses, comma-separated")
	flag.StringVar(&cfg.EsIndex, "es-index", "eval-runs", "Elasticsearch index name")

	flag.Parse()
	return cfg
}

func (c cliConfig) parseThresholds() ([]float64, error) {
	parts := strings.Split(c.Thresholds, ",")
	vals := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid threshold %q: %w", p, err)
		}
		vals = append(vals, v)
	}
	return vals, nil
}
