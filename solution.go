package microlp

import (
	"fmt"

	"github.com/ajasmin/microlp/internal/simplex"
)

// pinRecord remembers the two rows (and their dedicated slack columns) a
// pin installed, so UnsetVar can reverse exactly those two rows via
// simplex.Engine.RemoveRow.
type pinRecord struct {
	lowRow, lowCol   int
	highRow, highCol int
}

// Solution is an optimal (or pinned/augmented) basic feasible solution: the
// live engine state plus enough bookkeeping to support the incremental
// façade (incremental.go). Every façade method returns a new *Solution via
// copy-on-write; the receiver is left untouched, per spec.md 9's snapshot
// guidance for branch-and-bound exploration.
type Solution struct {
	nOrig    int
	maximize bool

	tol Tolerances
	log Logger

	engine *simplex.Engine
	pins   map[Variable]pinRecord
}

// NumVariables reports the number of originally declared variables (the
// ones VarValue/Value/Values address); columns created by the incremental
// façade are internal bookkeeping, never addressable as a Variable.
func (s *Solution) NumVariables() int { return s.nOrig }

func (s *Solution) checkVariable(v Variable) {
	if int(v) < 0 || int(v) >= s.nOrig {
		panic(fmt.Sprintf("microlp: variable %d not declared in this problem", v))
	}
}

// Objective returns the optimal objective value, translated back to the
// problem's declared sense (the engine always minimizes internally).
func (s *Solution) Objective() float64 {
	obj := s.engine.Objective()
	if s.maximize {
		return -obj
	}
	return obj
}

// Value returns the current value of v, or ok=false if v is not a declared
// variable handle of this problem.
func (s *Solution) Value(v Variable) (value float64, ok bool) {
	if int(v) < 0 || int(v) >= s.nOrig {
		return 0, false
	}
	return s.engine.Value(int(v)), true
}

// MustValue is Value without the ok flag; it panics on an undeclared
// variable handle, for callers that already know v is valid (e.g. one they
// just got from Problem.AddVariable on this same problem).
func (s *Solution) MustValue(v Variable) float64 {
	s.checkVariable(v)
	return s.engine.Value(int(v))
}

// VarValue pairs a declared variable with its current value, returned by
// Values in declaration order.
type VarValue struct {
	Var   Variable
	Value float64
}

// Values returns every declared variable's current value, in declaration
// order.
func (s *Solution) Values() []VarValue {
	out := make([]VarValue, s.nOrig)
	for v := 0; v < s.nOrig; v++ {
		out[v] = VarValue{Var: Variable(v), Value: s.engine.Value(v)}
	}
	return out
}

// IsPinned reports whether v currently has an active pin installed by
// SetVar.
func (s *Solution) IsPinned(v Variable) bool {
	_, ok := s.pins[v]
	return ok
}

// clone returns an independent copy of s: the engine is deep-copied (per
// simplex.Engine.Clone's copy-on-write contract) and the pin bookkeeping map
// is copied so the receiver's pins are unaffected by mutation on the copy.
func (s *Solution) clone() *Solution {
	pins := make(map[Variable]pinRecord, len(s.pins))
	for v, pr := range s.pins {
		pins[v] = pr
	}
	return &Solution{
		nOrig:    s.nOrig,
		maximize: s.maximize,
		tol:      s.tol,
		log:      s.log,
		engine:   s.engine.Clone(),
		pins:     pins,
	}
}
