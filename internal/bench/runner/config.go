package runner

import "github.com/DjordjeVuckovic/box-bench/internal/eval"

const (
	DefaultWarmupRuns = 0
	DefaultRuns       = 1
)

type Config struct {
	IoUThresholds []float64
	APMode        string
	WarmupRuns    int
	Runs          int
}

func DefaultConfig() Config {
	return Config{
		IoUThresholds: eval.DefaultIoUThresholds,
		APMode:        eval.APModeArea,
		WarmupRuns:    DefaultWarmupRuns,
		Runs:          DefaultRuns,
	}
}
