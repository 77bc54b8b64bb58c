package simplex

import "math"

// feasTolerance is the bound-violation slack the Harris ratio test allows
// in its first pass, per the "accepts pivots slightly out of strict order"
// description in spec.md 4.4.
const feasTolerance = 1e-9

// leaving describes the chosen leaving variable: its basis slot, which of
// its bounds it hits (toUpper true when it rises to its upper bound, false
// when it falls to its lower bound), and the step length t at which the
// entering variable reaches that bound.
type leaving struct {
	slot      int
	toUpper   bool
	step      float64
	selfBound bool // true if the entering variable's own opposite bound binds first
}

// ratioTest runs a Harris two-pass ratio test for the primal pivot bringing
// column ent.col into the basis in direction ent.direction, against the
// direction vector delta = B^-1 A_{.,ent.col}. Pass 1 computes a relaxed
// maximum step tolerating feasTolerance of bound overshoot; pass 2 selects,
// among candidates within that relaxed step, the one with the largest
// |delta[i]| for numerical stability, tie-broken by smallest basis slot.
func (e *Engine) ratioTest(ent entering, delta []float64) (leaving, bool) {
	type candidate struct {
		slot    int
		toUpper bool
		ratio   float64
		rate    float64
	}
	var candidates []candidate

	for i := 0; i < e.m; i++ {
		rate := delta[i] * ent.direction
		if math.Abs(rate) <= eps {
			continue
		}
		col := e.basis[i]
		if rate > 0 {
			lo := e.Lower[col]
			if math.IsInf(lo, -1) {
				continue
			}
			ratio := (e.xB[i] - lo) / rate
			candidates = append(candidates, candidate{slot: i, toUpper: false, ratio: ratio, rate: rate})
		} else {
			up := e.Upper[col]
			if math.IsInf(up, 1) {
				continue
			}
			ratio := (e.xB[i] - up) / rate
			candidates = append(candidates, candidate{slot: i, toUpper: true, ratio: ratio, rate: rate})
		}
	}

	selfRange := math.Inf(1)
	if ent.direction > 0 && !math.IsInf(e.Upper[ent.col], 1) {
		selfRange = e.Upper[ent.col] - e.Lower[ent.col]
	} else if ent.direction < 0 && !math.IsInf(e.Lower[ent.col], -1) {
		selfRange = e.Upper[ent.col] - e.Lower[ent.col]
	}

	if len(candidates) == 0 {
		if math.IsInf(selfRange, 1) {
			return leaving{}, false
		}
		return leaving{step: selfRange, selfBound: true}, true
	}

	tmax := math.Inf(1)
	for _, c := range candidates {
		if c.ratio < tmax {
			tmax = c.ratio
		}
	}
	if tmax < 0 {
		tmax = 0
	}
	relaxed := tmax + feasTolerance

	best := -1
	bestRate := 0.0
	for idx, c := range candidates {
		if c.ratio > relaxed {
			continue
		}
		if math.Abs(c.rate) > bestRate {
			bestRate = math.Abs(c.rate)
			best = idx
		}
	}
	chosen := candidates[best]
	step := chosen.ratio
	if step < 0 {
		step = 0
	}

	if step >= selfRange {
		return leaving{step: selfRange, selfBound: true}, true
	}
	return leaving{slot: chosen.slot, toUpper: chosen.toUpper, step: step}, true
}
