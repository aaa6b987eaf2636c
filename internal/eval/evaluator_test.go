package eval

import (
	"errors"
	"testing"

	"github.com/DjordjeVuckovic/box-bench/internal/apperr"
	"github.com/DjordjeVuckovic/box-bench/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEvaluator(t *testing.T, cfg Config) *Evaluator {
	t.Helper()
	if cfg.ClassNames == nil {
		cfg.ClassNames = []string{"cabinet", "bed", "chair"}
	}
	e, err := New(cfg)
	require.NoError(t, err)
	return e
}

func TestEvaluator_PerfectSingleMatch(t *testing.T) {
	e := newTestEvaluator(t, Config{IoUThresholds: []float64{0.5}})

	b := geom.Box{1, 2, 3, 1, 1, 1, 0}
	err := e.Add(
		[]Prediction{{Boxes: []geom.Box{b}, Scores: []float64{0.9}, Labels: []int{0}}},
		[]GroundTruth{{Boxes: []geom.Box{b}, Labels: []int{0}}},
	)
	require.NoError(t, err)

	res, err := e.Compute()
	require.NoError(t, err)

	assert.InDelta(t, 1.0, res.Metrics["AP_0.50"], 1e-9)
	assert.InDelta(t, 1.0, res.Metrics["AR_0.50"], 1e-9)

	require.Len(t, res.PerClass, 1)
	assert.Equal(t, "cabinet", res.PerClass[0].Name)
	assert.InDelta(t, 1.0, res.PerClass[0].AP[0], 1e-9)
	assert.InDelta(t, 1.0, res.PerClass[0].AR[0], 1e-9)
}

func TestEvaluator_DuplicateDetection(t *testing.T) {
	e := newTestEvaluator(t, Config{IoUThresholds: []float64{0.5}})

	b := geom.Box{0, 0, 0, 2, 2, 2, 0}
	err := e.Add(
		[]Prediction{{
			Boxes:  []geom.Box{b, b},
			Scores: []float64{0.9, 0.1},
			Labels: []int{0, 0},
		}},
		[]GroundTruth{{Boxes: []geom.Box{b}, Labels: []int{0}}},
	)
	require.NoError(t, err)

	res, err := e.Compute()
	require.NoError(t, err)

	// The duplicate is a false positive but adds no recall, so AP stays 1.
	assert.InDelta(t, 1.0, res.Metrics["AP_0.50"], 1e-9)
	assert.InDelta(t, 1.0, res.Metrics["AR_0.50"], 1e-9)
}

func TestEvaluator_PredictedClassWithoutGroundTruth(t *testing.T) {
	e := newTestEvaluator(t, Config{IoUThresholds: []float64{0.25, 0.5}})

	b := geom.Box{0, 0, 0, 1, 1, 1, 0}
	err := e.Add(
		[]Prediction{{Boxes: []geom.Box{b}, Scores: []float64{0.8}, Labels: []int{1}}},
		[]GroundTruth{{}},
	)
	require.NoError(t, err)

	res, err := e.Compute()
	require.NoError(t, err)

	for _, key := range []string{"AP_0.25", "AR_0.25", "AP_0.50", "AR_0.50"} {
		assert.InDelta(t, 0.0, res.Metrics[key], 1e-9, key)
	}
}

func TestEvaluator_ClassWithGroundTruthButNoPredictions(t *testing.T) {
	e := newTestEvaluator(t, Config{IoUThresholds: []float64{0.5}})

	b := geom.Box{0, 0, 0, 1, 1, 1, 0}
	err := e.Add(
		[]Prediction{
			{Boxes: []geom.Box{b}, Scores: []float64{0.9}, Labels: []int{0}},
		},
		[]GroundTruth{
			{Boxes: []geom.Box{b, {5, 5, 5, 1, 1, 1, 0}}, Labels: []int{0, 2}},
		},
	)
	require.NoError(t, err)

	res, err := e.Compute()
	require.NoError(t, err)
	require.Len(t, res.PerClass, 2)

	// Class 0 is perfect, class 2 has no detections; the unmatched class
	// drags both means to 0.5.
	assert.InDelta(t, 0.5, res.Metrics["AP_0.50"], 1e-9)
	assert.InDelta(t, 0.5, res.Metrics["AR_0.50"], 1e-9)
	assert.InDelta(t, 0.0, res.PerClass[1].AP[0], 1e-9)
	assert.InDelta(t, 0.0, res.PerClass[1].AR[0], 1e-9)
}

func TestEvaluator_Idempotent(t *testing.T) {
	e := newTestEvaluator(t, Config{IoUThresholds: []float64{0.25, 0.5}})

	err := e.Add(
		[]Prediction{{
			Boxes:  []geom.Box{{0, 0, 0, 2, 2, 2, 0}, {1, 0, 0, 2, 2, 2, 0}},
			Scores: []float64{0.7, 0.6},
			Labels: []int{0, 1},
		}},
		[]GroundTruth{{
			Boxes:  []geom.Box{{0, 0, 0, 2, 2, 2, 0}},
			Labels: []int{0},
		}},
	)
	require.NoError(t, err)

	first, err := e.Compute()
	require.NoError(t, err)
	second, err := e.Compute()
	require.NoError(t, err)

	assert.Equal(t, first.Metrics, second.Metrics)
	assert.Equal(t, first.PerClass, second.PerClass)
}

func TestEvaluator_OrderInvariant(t *testing.T) {
	e := newTestEvaluator(t, Config{IoUThresholds: []float64{0.5}})

	pairA := SamplePair{
		SampleID: 0,
		Prediction: Prediction{
			Boxes:  []geom.Box{{0, 0, 0, 2, 2, 2, 0}},
			Scores: []float64{0.9},
			Labels: []int{0},
		},
		GroundTruth: GroundTruth{
			Boxes:  []geom.Box{{0, 0, 0, 2, 2, 2, 0}},
			Labels: []int{0},
		},
	}
	pairB := SamplePair{
		SampleID: 1,
		Prediction: Prediction{
			Boxes:  []geom.Box{{4, 4, 4, 2, 2, 2, 0}},
			Scores: []float64{0.9},
			Labels: []int{0},
		},
		GroundTruth: GroundTruth{
			Boxes:  []geom.Box{{9, 9, 9, 2, 2, 2, 0}},
			Labels: []int{0},
		},
	}

	forward, err := e.ComputePairs([]SamplePair{pairA, pairB})
	require.NoError(t, err)
	reversed, err := e.ComputePairs([]SamplePair{pairB, pairA})
	require.NoError(t, err)

	assert.Equal(t, forward.Metrics, reversed.Metrics)
	assert.Equal(t, forward.PerClass, reversed.PerClass)
}

func TestEvaluator_MismatchedBatch(t *testing.T) {
	e := newTestEvaluator(t, Config{})

	err := e.Add(
		[]Prediction{{}, {}},
		[]GroundTruth{{}},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 predictions for 1 ground truths")
}

func TestEvaluator_MalformedRecords(t *testing.T) {
	e := newTestEvaluator(t, Config{})

	err := e.Add(
		[]Prediction{{
			Boxes:  []geom.Box{{0, 0, 0, 1, 1, 1, 0}},
			Scores: []float64{0.9, 0.8},
			Labels: []int{0},
		}},
		[]GroundTruth{{}},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disagree")

	err = e.Add(
		[]Prediction{{}},
		[]GroundTruth{{
			Boxes:  []geom.Box{{0, 0, 0, 1, 1, 1, 0}},
			Labels: []int{-1},
		}},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative label")
}

func TestEvaluator_MissingClassNames(t *testing.T) {
	e, err := New(Config{})
	require.NoError(t, err)

	_, err = e.Compute()
	require.Error(t, err)
	var ve *apperr.ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestEvaluator_ClassNameTableTooShort(t *testing.T) {
	e, err := New(Config{ClassNames: []string{"cabinet"}})
	require.NoError(t, err)

	b := geom.Box{0, 0, 0, 1, 1, 1, 0}
	require.NoError(t, e.Add(
		[]Prediction{{}},
		[]GroundTruth{{Boxes: []geom.Box{b}, Labels: []int{4}}},
	))

	_, err = e.Compute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "class id 4")
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{APMode: "nearest"})
	require.Error(t, err)

	_, err = New(Config{IoUThresholds: []float64{1.5}})
	require.Error(t, err)

	e, err := New(Config{})
	require.NoError(t, err)
	assert.Equal(t, APModeArea, e.cfg.APMode)
	assert.Equal(t, DefaultIoUThresholds, e.cfg.IoUThresholds)
	assert.NotNil(t, e.cfg.Oracle)
}

func TestEvaluator_MetricsBounded(t *testing.T) {
	e := newTestEvaluator(t, Config{IoUThresholds: []float64{0.25, 0.5}, APMode: APMode11Points})

	err := e.Add(
		[]Prediction{
			{
				Boxes:  []geom.Box{{0, 0, 0, 2, 2, 2, 0}, {0.5, 0, 0, 2, 2, 2, 0}, {8, 8, 8, 1, 1, 1, 0}},
				Scores: []float64{0.9, 0.9, 0.3},
				Labels: []int{0, 0, 1},
			},
			{
				Boxes:  []geom.Box{{1, 1, 1, 2, 2, 2, 0}},
				Scores: []float64{0.4},
				Labels: []int{2},
			},
		},
		[]GroundTruth{
			{Boxes: []geom.Box{{0, 0, 0, 2, 2, 2, 0}}, Labels: []int{0}},
			{Boxes: []geom.Box{{1, 1, 1, 2, 2, 2, 0}, {3, 3, 3, 1, 1, 1, 0}}, Labels: []int{2, 1}},
		},
	)
	require.NoError(t, err)

	res, err := e.Compute()
	require.NoError(t, err)
	require.Len(t, res.Metrics, 4)
	for key, v := range res.Metrics {
		assert.GreaterOrEqual(t, v, 0.0, key)
		assert.LessOrEqual(t, v, 1.0, key)
	}
}

func TestEvaluator_Reset(t *testing.T) {
	e := newTestEvaluator(t, Config{})

	b := geom.Box{0, 0, 0, 1, 1, 1, 0}
	require.NoError(t, e.Add(
		[]Prediction{{Boxes: []geom.Box{b}, Scores: []float64{0.9}, Labels: []int{0}}},
		[]GroundTruth{{Boxes: []geom.Box{b}, Labels: []int{0}}},
	))
	e.Reset()

	res, err := e.Compute()
	require.NoError(t, err)
	assert.Empty(t, res.PerClass)
}
