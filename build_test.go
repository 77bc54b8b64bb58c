package microlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToStandardRowNegatesGE(t *testing.T) {
	x := Variable(0)
	r := problemRow{terms: map[Variable]float64{x: 2}, op: GE, rhs: 3}
	std := toStandardRow(r)
	assert.Equal(t, -2.0, std.terms[x])
	assert.Equal(t, -3.0, std.rhs)
	assert.False(t, std.isEq)
}

func TestToStandardRowPassesEqualityThrough(t *testing.T) {
	x := Variable(0)
	r := problemRow{terms: map[Variable]float64{x: 2}, op: EQ, rhs: 3}
	std := toStandardRow(r)
	assert.Equal(t, 2.0, std.terms[x])
	assert.Equal(t, 3.0, std.rhs)
	assert.True(t, std.isEq)
}

// A plain <= row with nonnegative rhs needs only a slack: no artificial
// column is created and the initial basis is feasible at x=0.
func TestBuildGivesPlainLERowOnlyASlack(t *testing.T) {
	p := NewProblem()
	x := p.AddVariable(1)
	assert.NoError(t, p.AddConstraint([]Term{{x, 1}}, LE, 5))

	a, b, _, _, _, basis, _, artificials, nOrig := p.build()
	assert.Equal(t, 1, nOrig)
	assert.Empty(t, artificials)
	assert.Equal(t, 2, a.Cols) // x plus one slack
	assert.Equal(t, []int{1}, basis)
	assert.Equal(t, []float64{5}, b)
}

// A <= row whose right-hand side goes negative (e.g. after negating a GE
// row) cannot use a plain +1 slack as an initial basic variable at a
// nonnegative value, so build must add an artificial with coefficient -1.
func TestBuildAddsArtificialForNegativeRHSRow(t *testing.T) {
	p := NewProblem()
	x := p.AddVariable(1)
	assert.NoError(t, p.AddConstraint([]Term{{x, 1}}, GE, 5)) // negates to -x <= -5

	a, _, _, _, _, basis, _, artificials, _ := p.build()
	assert.Len(t, artificials, 1)
	assert.Equal(t, artificials[0], basis[0])

	col := a.Column(artificials[0])
	assert.Equal(t, []int{0}, col.Indices)
	assert.Equal(t, []float64{-1}, col.Values)
}

// An equality row never gets a slack column at all; its basic variable must
// be an artificial.
func TestBuildAddsArtificialForEqualityRow(t *testing.T) {
	p := NewProblem()
	x := p.AddVariable(1)
	assert.NoError(t, p.AddConstraint([]Term{{x, 1}}, EQ, 4))

	a, _, _, _, _, basis, _, artificials, _ := p.build()
	assert.Len(t, artificials, 1)
	assert.Equal(t, 2, a.Cols) // x plus one artificial, no slack
	assert.Equal(t, artificials[0], basis[0])
}

// TestSolveEqualityRowReportsTheConstrainedValue is the end-to-end
// counterpart TestBuildAddsArtificialForEqualityRow was missing: build()
// alone only checks column/basis structure, not that phase 1 actually
// leaves the solved value honoring the equality. Regression test for the
// dropped-artificial bug (spec.md 4.4's "drop artificials that left the
// basis"): an artificial driven out of the basis by phase 1 must never be
// allowed to price back in under the true objective.
func TestSolveEqualityRowReportsTheConstrainedValue(t *testing.T) {
	p := NewProblem()
	x := p.AddVariable(1)
	assert.NoError(t, p.AddConstraint([]Term{{x, 1}}, EQ, 4))

	sol, err := p.Solve()
	assert.NoError(t, err)
	assert.InDelta(t, 4.0, sol.MustValue(x), 1e-8)
	assert.InDelta(t, 4.0, sol.Objective(), 1e-8)
}

// TestSolveMultiVariableEqualityRowReportsTheConstrainedValues exercises the
// same path with an equality row spanning more than one variable, so the
// dropped artificial's column has nonzero reduced-cost interplay with more
// than one structural column.
func TestSolveMultiVariableEqualityRowReportsTheConstrainedValues(t *testing.T) {
	p := NewProblem()
	x := p.AddVariable(1)
	y := p.AddVariable(1)
	assert.NoError(t, p.AddConstraint([]Term{{x, 1}, {y, 1}}, EQ, 4))
	assert.NoError(t, p.AddConstraint([]Term{{x, 1}}, LE, 1))

	sol, err := p.Solve()
	assert.NoError(t, err)
	// x+y is pinned to 4 by the equality row regardless of split, so every
	// feasible vertex (x in [0,1]) reports the same objective; what the
	// dropped-artificial bug broke was the total itself collapsing to 0.
	assert.InDelta(t, 4.0, sol.MustValue(x)+sol.MustValue(y), 1e-8)
	assert.InDelta(t, 4.0, sol.Objective(), 1e-8)
	assert.True(t, sol.MustValue(x) <= 1.0+1e-8)
}

func TestBuildNegatesObjectiveWhenMaximizing(t *testing.T) {
	p := NewProblem()
	x := p.AddVariable(3)
	p.Maximize()
	assert.NoError(t, p.AddConstraint([]Term{{x, 1}}, LE, 5))

	_, _, c, _, _, _, _, _, _ := p.build()
	assert.Equal(t, -3.0, c[0])
}

func TestBuildGivesEveryColumnTheImplicitZeroToInfinityBounds(t *testing.T) {
	p := NewProblem()
	x := p.AddVariable(1)
	assert.NoError(t, p.AddConstraint([]Term{{x, 1}}, LE, 5))

	_, _, _, lower, upper, _, _, _, _ := p.build()
	for _, l := range lower {
		assert.Equal(t, 0.0, l)
	}
	for _, u := range upper {
		assert.Equal(t, posInf, u)
	}
}
