package eval

import (
	"fmt"
	"math"

	"github.com/DjordjeVuckovic/box-bench/internal/apperr"
)

// AP integration modes. Anything else is rejected; there is no implicit
// default.
const (
	APModeArea     = "area"
	APMode11Points = "11points"
)

// ValidAPMode reports whether mode is a supported integration policy.
func ValidAPMode(mode string) bool {
	return mode == APModeArea || mode == APMode11Points
}

// averagePrecision reduces each (recall, precision) curve to a scalar AP.
// Curves are batched as parallel rows and must agree in length row by
// row. Mode "area" integrates the monotone precision envelope over
// recall; mode "11points" averages the best precision at the 11 recall
// levels 0.0, 0.1, ..., 1.0.
func averagePrecision(recalls, precisions [][]float64, mode string) ([]float64, error) {
	if len(recalls) != len(precisions) {
		return nil, fmt.Errorf("batch size disagrees: %d recall curves, %d precision curves",
			len(recalls), len(precisions))
	}
	for i := range recalls {
		if len(recalls[i]) != len(precisions[i]) {
			return nil, fmt.Errorf("curve %d: %d recall points, %d precision points",
				i, len(recalls[i]), len(precisions[i]))
		}
	}

	switch mode {
	case APModeArea:
		return areaAP(recalls, precisions), nil
	case APMode11Points:
		return elevenPointAP(recalls, precisions), nil
	default:
		return nil, apperr.NewValidation(fmt.Sprintf("unsupported AP mode %q, only %q and %q are supported",
			mode, APModeArea, APMode11Points))
	}
}

func areaAP(recalls, precisions [][]float64) []float64 {
	aps := make([]float64, len(recalls))

	for i := range recalls {
		mrec := pad(recalls[i], 0, 1)
		mpre := pad(precisions[i], 0, 0)

		// Precision envelope: scan from the highest rank down so the
		// curve is non-increasing as recall grows.
		for j := len(mpre) - 2; j >= 0; j-- {
			mpre[j] = math.Max(mpre[j], mpre[j+1])
		}

		var ap float64
		for j := 1; j < len(mrec); j++ {
			if mrec[j] != mrec[j-1] {
				ap += (mrec[j] - mrec[j-1]) * mpre[j]
			}
		}
		aps[i] = ap
	}

	return aps
}

func elevenPointAP(recalls, precisions [][]float64) []float64 {
	aps := make([]float64, len(recalls))

	for i := range recalls {
		var sum float64
		for level := 0; level <= 10; level++ {
			t := float64(level) / 10
			var best float64
			for j, rec := range recalls[i] {
				if rec >= t && precisions[i][j] > best {
					best = precisions[i][j]
				}
			}
			sum += best
		}
		aps[i] = sum / 11
	}

	return aps
}

func pad(vals []float64, head, tail float64) []float64 {
	out := make([]float64, 0, len(vals)+2)
	out = append(out, head)
	out = append(out, vals...)
	return append(out, tail)
}
