package geom

// Box is an oriented 3D bounding box encoded as
// [center x, center y, center z, size x, size y, size z, yaw].
// Boxes are plain values and never mutated after construction.
type Box [7]float64

func (b Box) Center() (x, y, z float64) {
	return b[0], b[1], b[2]
}

func (b Box) Size() (dx, dy, dz float64) {
	return b[3], b[4], b[5]
}

func (b Box) Yaw() float64 {
	return b[6]
}

func (b Box) Volume() float64 {
	return b[3] * b[4] * b[5]
}
