package rcsp

import "math"

// upperBound derives a starting bound on the optimal source-sink weight
// from whichever direction(s) already reached the opposite terminal
// feasibly (spec.md §4.7 "getUB"). It is only ever tightened afterward, so
// starting from +Inf when neither side has reached across is safe.
func upperBound(fwd, bwd *searchState, maxRes, minRes []float64) float64 {
	ub := math.Inf(1)
	if idx := fwd.best[bwd.origin]; idx != -1 {
		l := fwd.arena.get(idx)
		if checkFeasibilityHard(l, maxRes, minRes) && l.weight < ub {
			ub = l.weight
		}
	}
	if idx := bwd.best[fwd.origin]; idx != -1 {
		l := bwd.arena.get(idx)
		if checkFeasibilityHard(l, maxRes, minRes) && l.weight < ub {
			ub = l.weight
		}
	}
	return ub
}

// minimumWeight returns the lightest best-label weight among a direction's
// visited vertices, excluding its own origin (which trivially has weight
// zero and reveals no information about how far the path still has to go)
// (spec.md §4.7 "getMinimumWeights").
func minimumWeight(s *searchState, exclude int) float64 {
	minW := math.Inf(1)
	for v, idx := range s.best {
		if idx == -1 || v == exclude {
			continue
		}
		if w := s.arena.get(idx).weight; w < minW {
			minW = w
		}
	}
	return minW
}

// halfwayPhi is the discrepancy between a forward label's critical-resource
// consumption and the equivalent quantity implied by a backward label's
// remaining critical budget; small phi means the two labels meet close to
// the shared halfway point (spec.md §4.7 "halfwayCheck").
func halfwayPhi(fwdLabel, bwdLabel *label, maxRes []float64, critical int) float64 {
	return math.Abs(fwdLabel.res[critical] - (maxRes[critical] - bwdLabel.res[critical]))
}

// mergePreCheck decides whether a forward/backward label pair is worth the
// cost of a full merge (spec.md §4.7 "mergePreCheck"): in elementary mode
// they must not share a visited vertex; in non-elementary mode every pair
// passes.
func mergePreCheck(fwdLabel, bwdLabel *label, maxRes []float64, critical int, elementary bool) bool {
	if elementary {
		return !fwdLabel.unreachable.intersects(bwdLabel.unreachable)
	}
	return true
}

// processBwdLabel reframes a backward label's resource vector into the same
// consumed-since-source frame as a forward label, by inverting its critical
// coordinate against maxRes and combining with cumulative: additively for
// every resource when invertNonCritical is false (merge's default-REF
// path, where cumulative is the forward side's resource vector after
// crossing the connecting arc), or by subtracting cumulative from every
// non-critical resource when invertNonCritical is true (lifting a
// backward-only result, where cumulative is the problem's min_res
// baseline) (spec.md §4.7 "processBwdLabel").
func processBwdLabel(bwdRes []float64, critical int, maxRes, cumulative []float64, invertNonCritical bool) []float64 {
	out := make([]float64, len(bwdRes))
	for i := range bwdRes {
		if i == critical {
			out[i] = cumulative[i] + (maxRes[critical] - bwdRes[i])
			continue
		}
		if invertNonCritical {
			out[i] = bwdRes[i] - cumulative[i]
		} else {
			out[i] = cumulative[i] + bwdRes[i]
		}
	}
	return out
}

// mergedCandidate is a synthesized source-sink label produced by Join. It
// does not live in either direction's arena because its path spans both.
type mergedCandidate struct {
	weight float64
	res    []float64
	path   []int // external vertex ids, source to sink
}

// resWithinBounds checks hard feasibility without needing a full label
// value, since a mergedCandidate never joins an arena.
func resWithinBounds(res, maxRes, minRes []float64) bool {
	for i := range res {
		if res[i] < minRes[i] || res[i] > maxRes[i] {
			return false
		}
	}
	return true
}

// join runs the merge procedure of spec.md §4.7: it pairs every forward
// label with every reachable backward label across a connecting arc,
// keeping the pair only when both a cheap bound check and mergePreCheck
// pass, and tracks the feasible merged candidate with the smallest weight.
func join(fwd, bwd *searchState, p *Problem, refs RefSet, halfway float64, runID string) Result {
	critical := fwd.critical
	ub := upperBound(fwd, bwd, p.maxRes, p.minRes)
	bwdMin := minimumWeight(bwd, bwd.origin)

	var best *mergedCandidate

	for n, fwdVisited := range fwd.visited {
		if !fwdVisited || n == bwd.origin {
			continue
		}
		if idx := fwd.best[n]; idx == -1 || fwd.arena.get(idx).weight+bwdMin > ub {
			continue
		}

		for _, fwdIdx := range fwd.efficient[n] {
			fwdLabel := fwd.arena.get(fwdIdx)
			if fwdLabel.res[critical] > halfway || fwdLabel.weight+bwdMin > ub {
				continue
			}

			for _, arc := range p.g.outArcsIdx(n) {
				m := arc.HeadIdx
				if !bwd.visited[m] || m == fwd.origin {
					continue
				}
				if bwd.best[m] == -1 || fwdLabel.weight+arc.Weight+bwd.arena.get(bwd.best[m]).weight > ub {
					continue
				}

				for _, bwdIdx := range bwd.efficient[m] {
					bwdLabel := bwd.arena.get(bwdIdx)
					if bwdLabel.res[critical] < halfway {
						continue
					}
					if fwdLabel.weight+arc.Weight+bwdLabel.weight > ub {
						continue
					}
					if !mergePreCheck(fwdLabel, bwdLabel, p.maxRes, critical, fwd.elementary) {
						continue
					}

					cand := mergeAt(fwd, bwd, fwdIdx, bwdIdx, arc, refs, p, critical)
					if !resWithinBounds(cand.res, p.maxRes, p.minRes) {
						continue
					}

					if best == nil || cand.weight < best.weight {
						best = cand
						if best.weight < ub {
							ub = best.weight
						}
					}
				}
			}
		}
	}

	if best == nil {
		return infeasibleResult(runID, false)
	}
	return Result{
		Path:              best.path,
		ConsumedResources: append([]float64(nil), best.res...),
		TotalCost:         best.weight,
		RunID:             runID,
	}
}

// mergeAt combines the forward label at fwdIdx and the backward label at
// bwdIdx across arc into one source-sink mergedCandidate (spec.md §4.7
// "mergeLabels").
func mergeAt(fwd, bwd *searchState, fwdIdx, bwdIdx int, arc Arc, refs RefSet, p *Problem, critical int) *mergedCandidate {
	fwdLabel := fwd.arena.get(fwdIdx)
	bwdLabel := bwd.arena.get(bwdIdx)

	fwdPath := fwd.arena.path(fwdIdx, p.g.idOf)
	bwdPath := bwd.arena.path(bwdIdx, p.g.idOf)
	reversedBwdPath := reversePath(bwdPath)

	var finalRes []float64
	if refs.IsDefault() {
		crossed := additiveForward(fwdLabel.res, 0, 0, arc.Res, nil, fwdLabel.weight)
		finalRes = processBwdLabel(bwdLabel.res, critical, p.maxRes, crossed, false)
	} else {
		tailID, headID := p.g.idOf(arc.TailIdx), p.g.idOf(arc.HeadIdx)
		finalRes = refs.Join(fwdLabel.res, bwdLabel.res, tailID, headID, arc.Res)
	}

	weight := fwdLabel.weight + arc.Weight + bwdLabel.weight
	path := append(append([]int(nil), fwdPath...), reversedBwdPath...)

	return &mergedCandidate{weight: weight, res: finalRes, path: path}
}
