package simplex

// entering describes a chosen entering variable: its column, and the
// direction it moves away from its current bound (+1 increasing from
// AtLower or from zero if Free, -1 decreasing from AtUpper or from zero if
// Free).
type entering struct {
	col       int
	direction float64
}

// eligible reports whether non-basic column j currently has an improving
// reduced cost, and the direction it would move in if chosen.
func (e *Engine) eligible(j int) (ok bool, direction float64) {
	if e.excluded[j] {
		return false, 0
	}
	switch e.status[j] {
	case AtLower:
		return e.D[j] < -eps, 1
	case AtUpper:
		return e.D[j] > eps, -1
	case Free:
		if e.D[j] > eps {
			return true, -1
		}
		if e.D[j] < -eps {
			return true, 1
		}
		return false, 0
	}
	return false, 0
}

// priceEntering selects the entering variable for a primal pivot, per
// spec.md 4.4.1: Dantzig's most-negative-reduced-cost rule (here, the
// eligible column with largest |D[j]|), ties broken by smallest index,
// grounded on jjhbw-GoMILP/branching.go's maxFunBranchPoint scan-for-max
// shape. Once degenerateCount crosses BlandThreshold, falls back to
// Bland's rule (smallest eligible index) to guarantee termination.
func (e *Engine) priceEntering() (entering, bool) {
	if e.degenerateCount >= e.cfg.BlandThreshold {
		for j := 0; j < e.n; j++ {
			if e.inBasis[j] != -1 {
				continue
			}
			if ok, dir := e.eligible(j); ok {
				return entering{col: j, direction: dir}, true
			}
		}
		return entering{}, false
	}

	best := -1
	bestDir := 0.0
	bestMag := eps
	for j := 0; j < e.n; j++ {
		if e.inBasis[j] != -1 {
			continue
		}
		ok, dir := e.eligible(j)
		if !ok {
			continue
		}
		mag := abs(e.D[j])
		if mag > bestMag {
			bestMag = mag
			best = j
			bestDir = dir
		}
	}
	if best == -1 {
		return entering{}, false
	}
	return entering{col: best, direction: bestDir}, true
}
