package lu

import "errors"

// ErrSingular is returned by Factor when no candidate pivot in some column
// meets the threshold stability requirement, per spec.md 4.3's Failure
// clause, and by Update when the replacement would make the basis singular.
// The simplex engine does not perturb the basis in response: it answers a
// failed Update with a full refactorization, and New, GrowByRow and
// RemoveRow return a failed Factor as an error.
var ErrSingular = errors.New("lu: basis matrix is numerically singular")
