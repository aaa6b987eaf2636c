package report

import (
	"runtime"
	"time"

	"github.com/DjordjeVuckovic/box-bench/internal/bench/runner"
)

type Report struct {
	Meta BenchMeta           `json:"meta"`
	Runs []*runner.RunResult `json:"runs"`
}

type BenchMeta struct {
	Version     string          `json:"version"`
	Timestamp   time.Time       `json:"timestamp"`
	Environment EnvironmentInfo `json:"environment"`
}

type EnvironmentInfo struct {
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	NumCPU    int    `json:"num_cpu"`
}

func NewEnvironmentInfo() EnvironmentInfo {
	return EnvironmentInfo{
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
	}
}

func New(version string, runs ...*runner.RunResult) *Report {
	return &Report{
		Meta: BenchMeta{
			Version:     version,
			Timestamp:   time.Now().UTC(),
			Environment: NewEnvironmentInfo(),
		},
		Runs: runs,
	}
}
