package geom

import "math"

// Oracle computes pairwise IoU between two sets of boxes from the same
// sample. Overlaps returns a matrix of shape (len(a), len(b)) with values
// in [0, 1]. The oracle is injected into the matching core so that exact
// rotated-box implementations can be swapped in without touching it.
type Oracle interface {
	Overlaps(a, b []Box) [][]float64
}

// AxisAlignedOracle computes volume IoU over the axis-aligned boxes,
// ignoring yaw. It is exact for axis-aligned data and an approximation
// for rotated boxes; callers that need rotated IoU inject their own
// Oracle.
type AxisAlignedOracle struct{}

func NewAxisAlignedOracle() *AxisAlignedOracle {
	return &AxisAlignedOracle{}
}

func (o *AxisAlignedOracle) Overlaps(a, b []Box) [][]float64 {
	ious := make([][]float64, len(a))
	for i := range a {
		ious[i] = make([]float64, len(b))
		for j := range b {
			ious[i][j] = axisAlignedIoU(a[i], b[j])
		}
	}
	return ious
}

func axisAlignedIoU(a, b Box) float64 {
	inter := 1.0
	for d := 0; d < 3; d++ {
		lo := math.Max(a[d]-a[d+3]/2, b[d]-b[d+3]/2)
		hi := math.Min(a[d]+a[d+3]/2, b[d]+b[d+3]/2)
		if hi <= lo {
			return 0
		}
		inter *= hi - lo
	}

	union := a.Volume() + b.Volume() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}
