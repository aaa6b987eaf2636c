package eval

import (
	"fmt"

	"github.com/DjordjeVuckovic/box-bench/internal/geom"
)

// Prediction holds the detector output for one sample. Boxes, Scores and
// Labels are parallel arrays and must share length.
type Prediction struct {
	Boxes  []geom.Box
	Scores []float64
	Labels []int
}

// GroundTruth holds the annotated boxes for one sample. Boxes and Labels
// are parallel arrays and must share length.
type GroundTruth struct {
	Boxes  []geom.Box
	Labels []int
}

// SamplePair is one sample's prediction and ground truth, tagged with the
// sample id it belongs to. Sample ids must be unique across a batch.
type SamplePair struct {
	SampleID    int
	Prediction  Prediction
	GroundTruth GroundTruth
}

func (p Prediction) validate() error {
	if len(p.Scores) != len(p.Boxes) || len(p.Labels) != len(p.Boxes) {
		return fmt.Errorf("prediction arrays disagree: %d boxes, %d scores, %d labels",
			len(p.Boxes), len(p.Scores), len(p.Labels))
	}
	for i, label := range p.Labels {
		if label < 0 {
			return fmt.Errorf("prediction %d has negative label %d", i, label)
		}
	}
	return nil
}

func (g GroundTruth) validate() error {
	if len(g.Labels) != len(g.Boxes) {
		return fmt.Errorf("ground truth arrays disagree: %d boxes, %d labels",
			len(g.Boxes), len(g.Labels))
	}
	for i, label := range g.Labels {
		if label < 0 {
			return fmt.Errorf("ground truth %d has negative label %d", i, label)
		}
	}
	return nil
}
