package microlp

import (
	"errors"
	"fmt"
	"math"

	"github.com/ajasmin/microlp/internal/simplex"
)

// SetVar pins v to exactly value by appending two rows, x_v <= value and
// x_v >= value (the latter negated to a <= row with its own slack), then
// dual-reoptimizing, per spec.md 4.5's pin. If the current assignment
// already has x_v == value, both new slacks enter the basis already at
// zero and DualOptimize is a no-op: the solution is otherwise unchanged.
func (s *Solution) SetVar(v Variable, value float64) (*Solution, error) {
	s.checkVariable(v)
	next := s.clone()

	lowRow, lowCol, err := next.engine.GrowByRow(map[int]float64{int(v): 1}, value)
	if err != nil {
		return nil, translateErr(err, s.log)
	}
	highRow, highCol, err := next.engine.GrowByRow(map[int]float64{int(v): -1}, -value)
	if err != nil {
		return nil, translateErr(err, s.log)
	}
	if err := next.engine.DualOptimize(); err != nil {
		return nil, translateErr(err, s.log)
	}

	next.pins[v] = pinRecord{lowRow: lowRow, lowCol: lowCol, highRow: highRow, highCol: highCol}
	return next, nil
}

// UnsetVar removes a pin installed by SetVar, reversing both of its rows via
// simplex.Engine.RemoveRow and dual-reoptimizing, per spec.md 4.5's unpin.
// found reports whether v was pinned at all; if not, s itself is returned
// unchanged.
func (s *Solution) UnsetVar(v Variable) (result *Solution, found bool, err error) {
	s.checkVariable(v)
	pr, ok := s.pins[v]
	if !ok {
		return s, false, nil
	}

	next := s.clone()
	delete(next.pins, v)

	type rowCol struct{ row, col int }
	pair := [2]rowCol{{pr.lowRow, pr.lowCol}, {pr.highRow, pr.highCol}}
	if pair[0].row < pair[1].row {
		pair[0], pair[1] = pair[1], pair[0]
	}

	for _, rc := range pair {
		if err := next.engine.RemoveRow(rc.row, rc.col); err != nil {
			return nil, false, translateErr(err, s.log)
		}
		next.pins = adjustPinsAfterRemoval(next.pins, rc.row, rc.col)
	}

	if err := next.engine.DualOptimize(); err != nil {
		return nil, false, translateErr(err, s.log)
	}
	return next, true, nil
}

// adjustPinsAfterRemoval decrements every stored row/column index above the
// just-removed ones, since simplex.Engine.RemoveRow shifts everything above
// the removed row/column down by one.
func adjustPinsAfterRemoval(pins map[Variable]pinRecord, removedRow, removedCol int) map[Variable]pinRecord {
	out := make(map[Variable]pinRecord, len(pins))
	for v, pr := range pins {
		if pr.lowRow > removedRow {
			pr.lowRow--
		}
		if pr.highRow > removedRow {
			pr.highRow--
		}
		if pr.lowCol > removedCol {
			pr.lowCol--
		}
		if pr.highCol > removedCol {
			pr.highCol--
		}
		out[v] = pr
	}
	return out
}

// sumIncrementalTerms collapses duplicate variables and drops zero
// coefficients, mirroring Problem.sumTerms but validated against the
// solution's own variable count rather than a Problem's.
func (s *Solution) sumIncrementalTerms(terms []Term) map[Variable]float64 {
	out := make(map[Variable]float64, len(terms))
	for _, t := range terms {
		s.checkVariable(t.Var)
		out[t.Var] += t.Coef
	}
	for v, c := range out {
		if c == 0 {
			delete(out, v)
		}
	}
	return out
}

// AddConstraint appends one new row to the solution's standard form and
// dual-reoptimizes, per spec.md 4.5's add_row. Unlike Problem.AddConstraint,
// EQ is rejected: an incrementally added equality row has no slack to carry
// an initial feasible value, and spec.md 9 confirms equality is supported
// only at construction time.
func (s *Solution) AddConstraint(terms []Term, op RelOp, rhs float64) (*Solution, error) {
	if op == EQ {
		return nil, fmt.Errorf("microlp: equality rows are not supported by the incremental façade: %w", ErrUnsupported)
	}

	summed := s.sumIncrementalTerms(terms)
	if math.Abs(rhs) > s.tol.CoefficientHorizon {
		return nil, fmt.Errorf("microlp: constraint rhs %g exceeds coefficient horizon: %w", rhs, ErrUnsupported)
	}
	for v, c := range summed {
		if math.Abs(c) > s.tol.CoefficientHorizon {
			return nil, fmt.Errorf("microlp: coefficient %g for variable %d exceeds coefficient horizon: %w", c, v, ErrUnsupported)
		}
	}

	sign := 1.0
	if op == GE {
		sign = -1
	}
	rowTerms := make(map[int]float64, len(summed))
	for v, c := range summed {
		rowTerms[int(v)] = sign * c
	}

	next := s.clone()
	if _, _, err := next.engine.GrowByRow(rowTerms, sign*rhs); err != nil {
		return nil, translateErr(err, s.log)
	}
	if err := next.engine.DualOptimize(); err != nil {
		return nil, translateErr(err, s.log)
	}
	return next, nil
}

// AddGomoryCut derives a Gomory fractional cut from v's current basic row
// and appends it as a new row, per spec.md 4.5's add_gomory_cut. Returns
// ErrNotFractional if v is non-basic, or basic but within 1e-9 of an
// integer.
func (s *Solution) AddGomoryCut(v Variable) (*Solution, error) {
	s.checkVariable(v)

	terms, rhs, err := s.engine.GomoryCut(int(v))
	if err != nil {
		if errors.Is(err, simplex.ErrNotFractional) {
			return nil, ErrNotFractional
		}
		return nil, translateErr(err, s.log)
	}

	// terms/rhs are in "Sum terms[j] x_j >= rhs" form; negate into <=.
	rowTerms := make(map[int]float64, len(terms))
	for j, c := range terms {
		rowTerms[j] = -c
	}

	next := s.clone()
	if _, _, err := next.engine.GrowByRow(rowTerms, -rhs); err != nil {
		return nil, translateErr(err, s.log)
	}
	if err := next.engine.DualOptimize(); err != nil {
		return nil, translateErr(err, s.log)
	}
	return next, nil
}
