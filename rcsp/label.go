package rcsp

// resEqual reports componentwise equality of two resource vectors.
func resEqual(a, b []float64) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// checkFeasibilityHard reports whether every component of l's resource
// vector lies within the static [minRes, maxRes] bounds (spec.md §4.3
// "Feasibility (hard)").
func checkFeasibilityHard(l *label, maxRes, minRes []float64) bool {
	for i := range l.res {
		if l.res[i] < minRes[i] || l.res[i] > maxRes[i] {
			return false
		}
	}
	return true
}

// checkFeasibilitySoft is the cheap prune applied inside Extend (spec.md
// §4.3 step 3), before a label reaches its terminal vertex. maxResCurr and
// minResCurr are the calling direction's current dynamic bounds (spec.md
// §4.6.4): every resource must stay at or under maxResCurr, and the critical
// resource must additionally stay at or above minResCurr, the two halves of
// the interval the forward and backward searches shrink as they converge.
// minRes is the problem's static minimum, consulted only for the
// non-critical concession: a non-critical minimum is enforced here only when
// it is non-positive. A positive non-critical minimum is left to the
// terminal-vertex checkFeasibilityHard call, since a REF that is
// non-decreasing in that resource (see RefSet) may still raise it enough by
// then.
func checkFeasibilitySoft(l *label, maxResCurr, minResCurr, minRes []float64, critical int) bool {
	for i := range l.res {
		if l.res[i] > maxResCurr[i] {
			return false
		}
		if i == critical {
			if l.res[i] < minResCurr[i] {
				return false
			}
			continue
		}
		if minRes[i] <= 0 && l.res[i] < minRes[i] {
			return false
		}
	}
	return true
}

// checkThreshold reports whether l's weight is at or below threshold
// (spec.md §4.3 "checkThreshold").
func checkThreshold(l *label, threshold float64) bool {
	return l.weight <= threshold
}

// checkStPath reports whether l's endpoint is the opposite terminal from
// this direction's origin, i.e. l completes a source-sink path (spec.md
// §4.3 "S-T path check"). Because every label in a direction's arena is
// rooted at that direction's fixed origin (source for forward, sink for
// backward), checking the endpoint alone is equivalent to checking both
// ends of the reconstructed path.
func checkStPath(l *label, direction Direction, sourceIdx, sinkIdx int) bool {
	if direction == DirectionForward {
		return l.vertexIdx == sinkIdx
	}
	return l.vertexIdx == sourceIdx
}

// dominates reports whether a dominates b, both assumed to be at the same
// vertex in the given direction (spec.md §4.3 "Dominance (direction-aware)").
func dominates(a, b *label, direction Direction, critical int, elementary bool) bool {
	if a.weight == b.weight && resEqual(a.res, b.res) {
		return false // equal-weight-equal-resource labels never dominate
	}
	if a.weight > b.weight {
		return false
	}
	if direction == DirectionBackward {
		if a.res[critical] < b.res[critical] {
			return false
		}
		for i := range a.res {
			if i == critical {
				continue
			}
			if a.res[i] > b.res[i] {
				return false
			}
		}
	} else {
		for i := range a.res {
			if a.res[i] > b.res[i] {
				return false
			}
		}
	}
	if elementary && !a.unreachable.isSubsetOf(b.unreachable) {
		return false
	}
	return true
}

// fullDominates reports whether a full-dominates b: a dominates b in
// direction, or neither dominates the other in direction but a dominates b
// in the flipped direction, or a's weight is strictly smaller (spec.md
// §4.3 "Full dominance"). Join does not call it: it compares merged
// candidates by weight alone.
func fullDominates(a, b *label, direction Direction, critical int, elementary bool) bool {
	if dominates(a, b, direction, critical, elementary) {
		return true
	}
	if dominates(b, a, direction, critical, elementary) {
		return false
	}
	flipped := direction.opposite()
	if dominates(a, b, flipped, critical, elementary) || a.weight < b.weight {
		return true
	}
	return false
}
