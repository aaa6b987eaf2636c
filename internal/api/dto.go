package api

import (
	"fmt"

	"github.com/DjordjeVuckovic/box-bench/internal/eval"
	"github.com/DjordjeVuckovic/box-bench/internal/geom"
)

type EvaluationRequest struct {
	Classes       []string    `json:"classes"`
	IoUThresholds []float64   `json:"iou_thresholds,omitempty"`
	APMode        string      `json:"ap_mode,omitempty"`
	Samples       []SampleDTO `json:"samples"`
}

type SampleDTO struct {
	Predictions []DetectionDTO  `json:"predictions"`
	GroundTruth []AnnotationDTO `json:"ground_truth"`
}

// DetectionDTO carries one scored box as (cx, cy, cz, dx, dy, dz, yaw).
type DetectionDTO struct {
	Box   []float64 `json:"box"`
	Score float64   `json:"score"`
	Label int       `json:"label"`
}

type AnnotationDTO struct {
	Box   []float64 `json:"box"`
	Label int       `json:"label"`
}

type EvaluationResponse struct {
	RunID  string       `json:"run_id,omitempty"`
	Scores *eval.Result `json:"scores"`
}

func (r *EvaluationRequest) toPairs() ([]eval.Prediction, []eval.GroundTruth, error) {
	preds := make([]eval.Prediction, 0, len(r.Samples))
	gts := make([]eval.GroundTruth, 0, len(r.Samples))

	for i, sample := range r.Samples {
		pred := eval.Prediction{}
		for j, d := range sample.Predictions {
			box, err := toBox(d.Box)
			if err != nil {
				return nil, nil, fmt.Errorf("sample %d prediction %d: %w", i, j, err)
			}
			pred.Boxes = append(pred.Boxes, box)
			pred.Scores = append(pred.Scores, d.Score)
			pred.Labels = append(pred.Labels, d.Label)
		}

		gt := eval.GroundTruth{}
		for j, a := range sample.GroundTruth {
			box, err := toBox(a.Box)
			if err != nil {
				return nil, nil, fmt.Errorf("sample %d ground truth %d: %w", i, j, err)
			}
			gt.Boxes = append(gt.Boxes, box)
			gt.Labels = append(gt.Labels, a.Label)
		}

		preds = append(preds, pred)
		gts = append(gts, gt)
	}

	return preds, gts, nil
}

func toBox(vals []float64) (geom.Box, error) {
	var b geom.Box
	if len(vals) != 7 {
		return b, fmt.Errorf("box has %d values, want 7", len(vals))
	}
	copy(b[:], vals)
	return b, nil
}
