package eval

import "math"

// epsilon guards the precision denominator on early ranks; matches the
// float64 machine epsilon.
var epsilon = math.Nextafter(1, 2) - 1

// prCurve turns ranked TP/FP flags into cumulative recall and precision
// sequences of the same length. npos is the class's total ground-truth
// count and must not be zero; callers handle that degenerate case before
// building a curve.
func prCurve(npos int, tp, fp []bool) (recall, precision []float64) {
	recall = make([]float64, len(tp))
	precision = make([]float64, len(tp))

	var cumTP, cumFP float64
	for k := range tp {
		if tp[k] {
			cumTP++
		}
		if fp[k] {
			cumFP++
		}
		recall[k] = cumTP / float64(npos)
		precision[k] = cumTP / math.Max(cumTP+cumFP, epsilon)
	}

	return recall, precision
}

// degenerateCurve is the single-element zero curve used for classes with
// no ground truth or no detections.
func degenerateCurve() (recall, precision []float64) {
	return []float64{0}, []float64{0}
}
