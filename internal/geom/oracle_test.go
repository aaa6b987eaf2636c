package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAxisAlignedOracle_Overlaps(t *testing.T) {
	oracle := NewAxisAlignedOracle()

	tests := []struct {
		name string
		a    Box
		b    Box
		want float64
	}{
		{
			name: "identical boxes",
			a:    Box{0, 0, 0, 2, 2, 2, 0},
			b:    Box{0, 0, 0, 2, 2, 2, 0},
			want: 1.0,
		},
		{
			name: "disjoint boxes",
			a:    Box{0, 0, 0, 1, 1, 1, 0},
			b:    Box{5, 5, 5, 1, 1, 1, 0},
			want: 0,
		},
		{
			name: "touching faces",
			a:    Box{0, 0, 0, 2, 2, 2, 0},
			b:    Box{2, 0, 0, 2, 2, 2, 0},
			want: 0,
		},
		{
			name: "half overlap along x",
			a:    Box{0, 0, 0, 2, 2, 2, 0},
			b:    Box{1, 0, 0, 2, 2, 2, 0},
			// intersection 1*2*2 = 4, union 8+8-4 = 12
			want: 1.0 / 3.0,
		},
		{
			name: "contained box",
			a:    Box{0, 0, 0, 4, 4, 4, 0},
			b:    Box{0, 0, 0, 2, 2, 2, 0},
			// intersection 8, union 64
			want: 8.0 / 64.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := oracle.Overlaps([]Box{tt.a}, []Box{tt.b})
			assert.InDelta(t, tt.want, got[0][0], 1e-9)
		})
	}
}

func TestAxisAlignedOracle_MatrixShape(t *testing.T) {
	oracle := NewAxisAlignedOracle()

	a := []Box{
		{0, 0, 0, 1, 1, 1, 0},
		{1, 1, 1, 1, 1, 1, 0},
		{2, 2, 2, 1, 1, 1, 0},
	}
	b := []Box{
		{0, 0, 0, 1, 1, 1, 0},
		{9, 9, 9, 1, 1, 1, 0},
	}

	ious := oracle.Overlaps(a, b)
	assert.Len(t, ious, 3)
	for _, row := range ious {
		assert.Len(t, row, 2)
		for _, v := range row {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
	assert.InDelta(t, 1.0, ious[0][0], 1e-9)
	assert.InDelta(t, 0.0, ious[2][1], 1e-9)
}

func TestBox_Accessors(t *testing.T) {
	b := Box{1, 2, 3, 4, 5, 6, 0.5}

	x, y, z := b.Center()
	assert.Equal(t, 1.0, x)
	assert.Equal(t, 2.0, y)
	assert.Equal(t, 3.0, z)

	dx, dy, dz := b.Size()
	assert.Equal(t, 4.0, dx)
	assert.Equal(t, 5.0, dy)
	assert.Equal(t, 6.0, dz)

	assert.Equal(t, 0.5, b.Yaw())
	assert.Equal(t, 120.0, b.Volume())
}
