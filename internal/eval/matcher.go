package eval

import (
	"math"
	"sort"

	"github.com/DjordjeVuckovic/box-bench/internal/geom"
)

// rankedDetection is one flattened detection annotated with its best
// ground-truth match. bestIoU is -Inf when the sample has no ground-truth
// boxes of this class, so it never clears any finite threshold.
type rankedDetection struct {
	sampleID int
	score    float64
	bestIoU  float64
	bestGT   int
}

// matchResult holds per-threshold TP/FP flags aligned to one global
// confidence ranking of the class's detections.
type matchResult struct {
	npos int
	tp   [][]bool // [threshold][rank]
	fp   [][]bool
}

// matchClass ranks a class's detections by confidence once and greedily
// assigns them to ground-truth boxes for every threshold in the same
// pass. Only the accept/reject decision depends on the threshold; the
// ranking and each detection's best match do not.
func matchClass(oracle geom.Oracle, idx *classIndex, thresholds []float64) matchResult {
	ranked := flattenDetections(oracle, idx)

	// Stable: equal scores keep their flattening order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	res := matchResult{
		npos: idx.npos(),
		tp:   make([][]bool, len(thresholds)),
		fp:   make([][]bool, len(thresholds)),
	}

	for t, thr := range thresholds {
		res.tp[t] = make([]bool, len(ranked))
		res.fp[t] = make([]bool, len(ranked))

		// Claim table for this pass only: one flag per ground-truth box.
		claimed := make(map[int][]bool, len(idx.gts))
		for sampleID, boxes := range idx.gts {
			claimed[sampleID] = make([]bool, len(boxes))
		}

		for rank, det := range ranked {
			// Equality at the boundary is not a match.
			if det.bestIoU > thr && !claimed[det.sampleID][det.bestGT] {
				res.tp[t][rank] = true
				claimed[det.sampleID][det.bestGT] = true
			} else {
				res.fp[t][rank] = true
			}
		}
	}

	return res
}

// flattenDetections collects the class's detections across samples in
// ascending sample-id order, requesting one IoU matrix per sample from
// the oracle. Fixed iteration order keeps tie-breaking independent of the
// order sample pairs were supplied in.
func flattenDetections(oracle geom.Oracle, idx *classIndex) []rankedDetection {
	sampleIDs := make([]int, 0, len(idx.preds))
	for id := range idx.preds {
		sampleIDs = append(sampleIDs, id)
	}
	sort.Ints(sampleIDs)

	var ranked []rankedDetection
	for _, sampleID := range sampleIDs {
		preds := idx.preds[sampleID]
		if len(preds) == 0 {
			continue
		}
		gts := idx.gts[sampleID]

		var ious [][]float64
		if len(gts) > 0 {
			boxes := make([]geom.Box, len(preds))
			for i, p := range preds {
				boxes[i] = p.box
			}
			ious = oracle.Overlaps(boxes, gts)
		}

		for i, p := range preds {
			det := rankedDetection{
				sampleID: sampleID,
				score:    p.score,
				bestIoU:  math.Inf(-1),
				bestGT:   -1,
			}
			if ious != nil {
				for j, iou := range ious[i] {
					if iou > det.bestIoU {
						det.bestIoU = iou
						det.bestGT = j
					}
				}
			}
			ranked = append(ranked, det)
		}
	}

	return ranked
}
