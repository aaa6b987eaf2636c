package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPRCurve(t *testing.T) {
	tests := []struct {
		name          string
		npos          int
		tp            []bool
		fp            []bool
		wantRecall    []float64
		wantPrecision []float64
	}{
		{
			name:          "perfect single match",
			npos:          1,
			tp:            []bool{true},
			fp:            []bool{false},
			wantRecall:    []float64{1.0},
			wantPrecision: []float64{1.0},
		},
		{
			name:          "duplicate detection",
			npos:          1,
			tp:            []bool{true, false},
			fp:            []bool{false, true},
			wantRecall:    []float64{1.0, 1.0},
			wantPrecision: []float64{1.0, 0.5},
		},
		{
			name:          "interleaved hits and misses",
			npos:          3,
			tp:            []bool{true, false, true},
			fp:            []bool{false, true, false},
			wantRecall:    []float64{1.0 / 3, 1.0 / 3, 2.0 / 3},
			wantPrecision: []float64{1.0, 0.5, 2.0 / 3},
		},
		{
			name:          "leading false positive",
			npos:          2,
			tp:            []bool{false, true},
			fp:            []bool{true, false},
			wantRecall:    []float64{0, 0.5},
			wantPrecision: []float64{0, 0.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recall, precision := prCurve(tt.npos, tt.tp, tt.fp)
			require.Len(t, recall, len(tt.tp))
			require.Len(t, precision, len(tt.tp))
			for k := range tt.wantRecall {
				assert.InDelta(t, tt.wantRecall[k], recall[k], 1e-9, "recall[%d]", k)
				assert.InDelta(t, tt.wantPrecision[k], precision[k], 1e-9, "precision[%d]", k)
			}
		})
	}
}

func TestDegenerateCurve(t *testing.T) {
	recall, precision := degenerateCurve()
	assert.Equal(t, []float64{0}, recall)
	assert.Equal(t, []float64{0}, precision)
}
