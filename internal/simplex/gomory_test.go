package simplex

import (
	"testing"

	"github.com/ajasmin/microlp/internal/sparse"
	"github.com/stretchr/testify/assert"
)

// fractionalEngine solves:
//
//	minimize -x0
//	subject to 2x0 + s0 = 3
//	           x0, s0 >= 0
//
// giving x0 = 1.5 at optimality, a fractional basic variable Gomory can cut
// against.
func fractionalEngine(t *testing.T) *Engine {
	t.Helper()
	bld := sparse.NewBuilder(1, 2)
	bld.AddColumn([]int{0}, []float64{2}) // x0
	bld.AddColumn([]int{0}, []float64{1}) // slack
	a := bld.Build()

	e, err := New(a, []float64{3}, []float64{-1, 0}, []float64{0, 0},
		[]float64{infinity, infinity}, []int{1}, make([]Status, 2), nil, DefaultConfig())
	assert.NoError(t, err)
	assert.NoError(t, e.Optimize())
	assert.InDelta(t, 1.5, e.Value(0), 1e-9)
	return e
}

func TestGomoryCutOnFractionalVariable(t *testing.T) {
	e := fractionalEngine(t)
	terms, rhs, err := e.GomoryCut(0)
	assert.NoError(t, err)
	assert.Equal(t, 1.0, rhs)
	assert.NotEmpty(t, terms)
}

func TestGomoryCutRejectsNonBasic(t *testing.T) {
	e := fractionalEngine(t)
	// Column 1 (slack) is non-basic at this optimum (x0 is basic, consuming
	// the only row).
	_, _, err := e.GomoryCut(1)
	assert.ErrorIs(t, err, ErrNotFractional)
}

func TestGomoryCutRejectsIntegralVariable(t *testing.T) {
	// minimize -x0 s.t. x0 + s0 = 4 -> x0 = 4 exactly, not fractional.
	bld := sparse.NewBuilder(1, 2)
	bld.AddColumn([]int{0}, []float64{1})
	bld.AddColumn([]int{0}, []float64{1})
	a := bld.Build()

	e, err := New(a, []float64{4}, []float64{-1, 0}, []float64{0, 0},
		[]float64{infinity, infinity}, []int{1}, make([]Status, 2), nil, DefaultConfig())
	assert.NoError(t, err)
	assert.NoError(t, e.Optimize())

	_, _, err = e.GomoryCut(0)
	assert.ErrorIs(t, err, ErrNotFractional)
}

func TestGomoryCutTightensTheRelaxation(t *testing.T) {
	e := fractionalEngine(t)
	terms, rhs, err := e.GomoryCut(0)
	assert.NoError(t, err)

	rowTerms := make(map[int]float64, len(terms))
	for j, c := range terms {
		rowTerms[j] = -c
	}
	_, _, err = e.GrowByRow(rowTerms, -rhs)
	assert.NoError(t, err)
	assert.NoError(t, e.DualOptimize())

	// The cut Sum terms[j] x_j >= 1 excludes x0=1.5 (which made every
	// non-basic term zero, violating ">= 1"); re-optimizing must move away
	// from it.
	assert.NotInDelta(t, 1.5, e.Value(0), 1e-9)
}
