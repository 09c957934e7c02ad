package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{name: "identical", a: []float32{1, 2, 3}, b: []float32{1, 2, 3}, want: 1},
		{name: "scaled", a: []float32{1, 0}, b: []float32{5, 0}, want: 1},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, want: 0},
		{name: "opposite", a: []float32{1, 0}, b: []float32{-1, 0}, want: -1},
		{name: "zero norm", a: []float32{0, 0}, b: []float32{1, 1}, want: 0},
		{name: "dimension mismatch", a: []float32{1}, b: []float32{1, 1}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Cosine(tt.a, tt.b), 1e-9)
		})
	}
}

func TestRank_OrdersByScoreThenIndex(t *testing.T) {
	vectors := [][]float32{
		{0, 1},
		{1, 0},
		{1, 1},
		{1, 0},
	}

	ranked := Rank([]float32{1, 0}, vectors)
	require.Len(t, ranked, 4)

	idx := make([]int, len(ranked))
	for i, s := range ranked {
		idx[i] = s.Index
	}
	assert.Equal(t, []int{1, 3, 2, 0}, idx)

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, Rank([]float32{1}, nil))
}
