package microlp

import "errors"

// Sentinel errors surfaced to callers, matched via errors.Is, per spec.md 7's
// error taxonomy and AMBIENT STACK's errors convention (grounded on
// jjhbw-GoMILP/ilp.go's package-level sentinel errors).
var (
	// ErrInfeasible is returned when phase 1 terminates with a positive
	// artificial-variable sum, or a dual reoptimization detects no feasible
	// completion.
	ErrInfeasible = errors.New("microlp: problem is infeasible")

	// ErrUnbounded is returned when primal pricing finds an improving
	// direction with an empty ratio test.
	ErrUnbounded = errors.New("microlp: problem is unbounded")

	// ErrNotFractional is returned by AddGomoryCut when the target variable
	// is non-basic, or basic but within 1e-9 of an integer.
	ErrNotFractional = errors.New("microlp: variable is not fractional")

	// ErrUnsupported is returned by the incremental façade's AddConstraint
	// for an equality row, and by the construction-time AddConstraint for a
	// coefficient or right-hand side beyond CoefficientHorizon.
	ErrUnsupported = errors.New("microlp: operation not supported")

	// ErrNumericalFailure marks an engine failure other than infeasibility,
	// unboundedness or a non-fractional Gomory target: a singular basis
	// reported by the LU layer, or a pivot limit still exceeded after
	// Optimize's one refactor-and-retry (DualOptimize does not retry). No
	// basis perturbation is attempted. The caller-visible taxonomy folds it
	// into Infeasible, with the underlying cause available via
	// errors.Is(err, ErrNumericalFailure).
	ErrNumericalFailure = errors.New("microlp: numerical failure could not be resolved")
)
