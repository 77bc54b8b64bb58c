package sparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilderRoundTrip(t *testing.T) {
	b := NewBuilder(3, 2)
	b.AddColumn([]int{0, 2}, []float64{1.0, 2.0})
	b.AddColumn([]int{1}, []float64{5.0})
	m := b.Build()

	assert.Equal(t, 3, m.Rows)
	assert.Equal(t, 2, m.Cols)
	assert.Equal(t, 2, m.ColNNZ(0))
	assert.Equal(t, 1, m.ColNNZ(1))

	col0 := m.Column(0)
	assert.Equal(t, 1.0, col0.At(0))
	assert.Equal(t, 0.0, col0.At(1))
	assert.Equal(t, 2.0, col0.At(2))

	col1 := m.Column(1)
	assert.Equal(t, 5.0, col1.At(1))
}

func TestBuilderOutOfOrderPanics(t *testing.T) {
	b := NewBuilder(2, 2)
	b.AddColumn(nil, nil)
	assert.Panics(t, func() {
		b.AddColumn(nil, nil)
		b.AddColumn(nil, nil) // second call would be column index 2, out of range logically
	})
}

func TestPatternOfSymmetrized(t *testing.T) {
	b := NewBuilder(3, 3)
	b.AddColumn([]int{0}, []float64{1})
	b.AddColumn([]int{0, 1}, []float64{1, 1}) // B[0][1] != 0
	b.AddColumn([]int{2}, []float64{1})
	m := b.Build()

	pat := PatternOfSymmetrized(m)
	assert.Equal(t, 3, pat.N)
	assert.Contains(t, pat.Adj[0], 1)
	assert.Contains(t, pat.Adj[1], 0)
	assert.Empty(t, pat.Adj[2])
}
