package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/DjordjeVuckovic/box-bench/internal/bench/runner"
	"github.com/DjordjeVuckovic/box-bench/internal/eval"
)

func WriteTable(r *Report, w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== 3D Detection Benchmark ===\n")

	for _, rr := range r.Runs {
		fmt.Fprintf(tw, "\n--- Suite: %s (run %s) ---\n\n", rr.SuiteName, rr.RunID)
		writeScoreTable(tw, rr)
		writeTimingLine(tw, rr)
	}

	tw.Flush()
}

func writeScoreTable(tw *tabwriter.Writer, rr *runner.RunResult) {
	fmt.Fprintf(tw, "Scores (%d samples, %s mode)\n\n", rr.SampleCount, rr.Config.APMode)

	thresholds := rr.Scores.Thresholds

	header := []string{"Class"}
	for _, thr := range thresholds {
		header = append(header, eval.MetricKeyAP(thr))
	}
	for _, thr := range thresholds {
		header = append(header, eval.MetricKeyAR(thr))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))

	for _, cr := range rr.Scores.PerClass {
		row := []string{cr.Name}
		for t := range thresholds {
			row = append(row, fmt.Sprintf("%.4f", cr.AP[t]))
		}
		for t := range thresholds {
			row = append(row, fmt.Sprintf("%.4f", cr.AR[t]))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	overall := []string{"Overall"}
	for _, thr := range thresholds {
		overall = append(overall, fmt.Sprintf("%.4f", rr.Scores.Metrics[eval.MetricKeyAP(thr)]))
	}
	for _, thr := range thresholds {
		overall = append(overall, fmt.Sprintf("%.4f", rr.Scores.Metrics[eval.MetricKeyAR(thr)]))
	}
	fmt.Fprintln(tw, strings.Join(overall, "\t"))

	fmt.Fprintln(tw)
}

func writeTimingLine(tw *tabwriter.Writer, rr *runner.RunResult) {
	if rr.Timing.IsZero() {
		return
	}
	fmt.Fprintf(tw, "Timing: mean %s, median %s, p95 %s, min %s, max %s (%d passes)\n",
		fmtDuration(rr.Timing.Mean),
		fmtDuration(rr.Timing.Median),
		fmtDuration(rr.Timing.P95),
		fmtDuration(rr.Timing.Min),
		fmtDuration(rr.Timing.Max),
		rr.Timing.SampleCount,
	)
}

func fmtDuration(d time.Duration) string {
	if d == 0 {
		return "-"
	}
	if d < time.Millisecond {
		return fmt.Sprintf("%.1fµs", float64(d.Microseconds()))
	}
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
