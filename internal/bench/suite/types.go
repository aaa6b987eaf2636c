package suite

import (
	"github.com/DjordjeVuckovic/box-bench/internal/eval"
	"github.com/DjordjeVuckovic/box-bench/internal/geom"
)

// Suite is one self-contained evaluation dataset: a class table plus a
// list of samples carrying detector output and annotations.
type Suite struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Version     string   `yaml:"version"`
	Classes     []string `yaml:"classes"`
	Samples     []Sample `yaml:"samples"`
}

type Sample struct {
	ID          string       `yaml:"id"`
	Predictions []Detection  `yaml:"predictions"`
	GroundTruth []Annotation `yaml:"ground_truth"`
}

// Detection is one scored box. Box is (cx, cy, cz, dx, dy, dz, yaw).
type Detection struct {
	Box   []float64 `yaml:"box"`
	Score float64   `yaml:"score"`
	Label int       `yaml:"label"`
}

// Annotation is one ground-truth box.
type Annotation struct {
	Box   []float64 `yaml:"box"`
	Label int       `yaml:"label"`
}

// Pairs converts the suite's samples to evaluator input, in file order.
func (s *Suite) Pairs() []eval.SamplePair {
	pairs := make([]eval.SamplePair, 0, len(s.Samples))
	for i, sample := range s.Samples {
		pred := eval.Prediction{
			Boxes:  make([]geom.Box, 0, len(sample.Predictions)),
			Scores: make([]float64, 0, len(sample.Predictions)),
			Labels: make([]int, 0, len(sample.Predictions)),
		}
		for _, d := range sample.Predictions {
			pred.Boxes = append(pred.Boxes, toBox(d.Box))
			pred.Scores = append(pred.Scores, d.Score)
			pred.Labels = append(pred.Labels, d.Label)
		}

		gt := eval.GroundTruth{
			Boxes:  make([]geom.Box, 0, len(sample.GroundTruth)),
			Labels: make([]int, 0, len(sample.GroundTruth)),
		}
		for _, a := range sample.GroundTruth {
			gt.Boxes = append(gt.Boxes, toBox(a.Box))
			gt.Labels = append(gt.Labels, a.Label)
		}

		pairs = append(pairs, eval.SamplePair{
			SampleID:    i,
			Prediction:  pred,
			GroundTruth: gt,
		})
	}
	return pairs
}

func toBox(vals []float64) geom.Box {
	var b geom.Box
	copy(b[:], vals)
	return b
}
