package microlp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddVariableAssignsDenseDeclarationOrder(t *testing.T) {
	p := NewProblem()
	x := p.AddVariable(1)
	y := p.AddVariable(2)
	assert.Equal(t, Variable(0), x)
	assert.Equal(t, Variable(1), y)
	assert.Equal(t, 2, p.NumVariables())
}

func TestAddConstraintSumsDuplicatesAndDropsZero(t *testing.T) {
	p := NewProblem()
	x := p.AddVariable(1)
	y := p.AddVariable(1)
	err := p.AddConstraint([]Term{{x, 1}, {x, 1}, {y, 5}, {y, -5}}, LE, 10)
	assert.NoError(t, err)
	assert.Len(t, p.rows[0].terms, 1)
	assert.Equal(t, 2.0, p.rows[0].terms[x])
}

func TestAddConstraintSupportsEqualityAtConstructionTime(t *testing.T) {
	p := NewProblem()
	x := p.AddVariable(1)
	err := p.AddConstraint([]Term{{x, 1}}, EQ, 4)
	assert.NoError(t, err)
	assert.Equal(t, EQ, p.rows[0].op)
}

func TestAddConstraintRejectsCoefficientBeyondHorizon(t *testing.T) {
	p := NewProblem()
	x := p.AddVariable(1)
	err := p.AddConstraint([]Term{{x, 2 * CoefficientHorizon}}, LE, 1)
	assert.True(t, errors.Is(err, ErrUnsupported))
}

func TestAddConstraintRejectsRHSBeyondHorizon(t *testing.T) {
	p := NewProblem()
	x := p.AddVariable(1)
	err := p.AddConstraint([]Term{{x, 1}}, LE, 2*CoefficientHorizon)
	assert.True(t, errors.Is(err, ErrUnsupported))
}

func TestCheckVariablePanicsOnUndeclaredHandle(t *testing.T) {
	p := NewProblem()
	p.AddVariable(1)
	assert.Panics(t, func() { p.checkVariable(Variable(1)) })
}

func TestRelOpString(t *testing.T) {
	assert.Equal(t, "<=", LE.String())
	assert.Equal(t, ">=", GE.String())
	assert.Equal(t, "=", EQ.String())
}
