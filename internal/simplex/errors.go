package simplex

import "errors"

// Sentinel errors surfaced to the façade, matched via errors.Is per
// spec.md 7's error taxonomy.
var (
	ErrInfeasible       = errors.New("simplex: problem is infeasible")
	ErrUnbounded        = errors.New("simplex: problem is unbounded")
	ErrNumericalFailure = errors.New("simplex: numerical stall, pivot limit exceeded")
)
