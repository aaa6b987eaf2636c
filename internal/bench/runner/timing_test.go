package runner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeTimingStats_Empty(t *testing.T) {
	stats := ComputeTimingStats(nil)
	assert.Zero(t, stats.Min)
	assert.Zero(t, stats.Max)
	assert.Zero(t, stats.Mean)
	assert.True(t, stats.IsZero())
}

func TestComputeTimingStats_SingleValue(t *testing.T) {
	stats := ComputeTimingStats([]time.Duration{10 * time.Millisecond})

	assert.Equal(t, 10*time.Millisecond, stats.Min)
	assert.Equal(t, 10*time.Millisecond, stats.Max)
	assert.Equal(t, 10*time.Millisecond, stats.Mean)
	assert.Equal(t, 10*time.Millisecond, stats.Median)
	assert.Zero(t, stats.Stddev)
	assert.Equal(t, 1, stats.SampleCount)
}

func TestComputeTimingStats_Unsorted(t *testing.T) {
	durations := []time.Duration{
		50 * time.Millisecond,
		10 * time.Millisecond,
		30 * time.Millisecond,
		20 * time.Millisecond,
		40 * time.Millisecond,
	}
	stats := ComputeTimingStats(durations)

	assert.Equal(t, 10*time.Millisecond, stats.Min)
	assert.Equal(t, 50*time.Millisecond, stats.Max)
	assert.Equal(t, 30*time.Millisecond, stats.Mean)
	assert.Equal(t, 30*time.Millisecond, stats.Median)
	assert.Greater(t, stats.Stddev, time.Duration(0))
}

func TestComputeTimingStats_P95(t *testing.T) {
	durations := make([]time.Duration, 100)
	for i := range durations {
		durations[i] = time.Duration(i+1) * time.Millisecond
	}
	stats := ComputeTimingStats(durations)

	assert.InDelta(t, float64(95*time.Millisecond), float64(stats.P95), float64(1*time.Millisecond))
}
