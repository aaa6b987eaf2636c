package eval

import "github.com/DjordjeVuckovic/box-bench/internal/geom"

// scoredBox is one predicted box with its confidence.
type scoredBox struct {
	box   geom.Box
	score float64
}

// classIndex holds one class's boxes keyed by sample id. Either map may
// be missing a sample id that the other has; absence means no boxes of
// this class in that sample.
type classIndex struct {
	preds map[int][]scoredBox
	gts   map[int][]geom.Box
}

// groupByClass reshapes sample pairs into per-class indexes. Every class
// id observed in either predictions or ground truth gets an entry, so a
// class with predictions but no ground truth (or the reverse) is still
// represented. The result depends only on sample ids, never on the order
// pairs are supplied in.
func groupByClass(pairs []SamplePair) map[int]*classIndex {
	classes := make(map[int]*classIndex)

	index := func(class int) *classIndex {
		idx, ok := classes[class]
		if !ok {
			idx = &classIndex{
				preds: make(map[int][]scoredBox),
				gts:   make(map[int][]geom.Box),
			}
			classes[class] = idx
		}
		return idx
	}

	for _, pair := range pairs {
		for i, label := range pair.Prediction.Labels {
			idx := index(label)
			idx.preds[pair.SampleID] = append(idx.preds[pair.SampleID], scoredBox{
				box:   pair.Prediction.Boxes[i],
				score: pair.Prediction.Scores[i],
			})
			if _, ok := idx.gts[pair.SampleID]; !ok {
				idx.gts[pair.SampleID] = nil
			}
		}
		for i, label := range pair.GroundTruth.Labels {
			idx := index(label)
			idx.gts[pair.SampleID] = append(idx.gts[pair.SampleID], pair.GroundTruth.Boxes[i])
		}
	}

	return classes
}

// npos is the total ground-truth box count for the class across all
// samples. It is fixed before matching starts.
func (c *classIndex) npos() int {
	var n int
	for _, boxes := range c.gts {
		n += len(boxes)
	}
	return n
}

func (c *classIndex) detectionCount() int {
	var n int
	for _, boxes := range c.preds {
		n += len(boxes)
	}
	return n
}
