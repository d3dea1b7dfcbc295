package rcsp

import "math"

// bellmanFordFrom computes shortest-weight distances from srcIdx over g,
// returning per-vertex distance (math.Inf(1) if unreached), a predecessor
// array, and whether a negative-weight cycle reachable from srcIdx was
// detected. When reversed is true, arcs are walked against their stored
// direction (using in-arcs as if they were out-arcs), which is how
// backward one-to-all distances from the sink are computed without
// building a second, physically reversed graph (spec.md §4.5 step 2).
func bellmanFordFrom(g *Graph, srcIdx int, reversed bool) (dist []float64, prev []int, negCycle bool) {
	n := len(g.userIDs)
	dist = make([]float64, n)
	prev = make([]int, n)
	for i := range dist {
		dist[i] = math.Inf(1)
		prev[i] = -1
	}
	dist[srcIdx] = 0

	adj := g.out
	if reversed {
		adj = g.in
	}

	// other is the vertex being relaxed: when walking the reversed graph, an
	// "in-arc" u->v incident to v is relaxed as v->u.
	relax := func() bool {
		changed := false
		for idx, arcs := range adj {
			if dist[idx] == math.Inf(1) {
				continue
			}
			for _, a := range arcs {
				other := a.HeadIdx
				if reversed {
					other = a.TailIdx
				}
				nd := dist[idx] + a.Weight
				if nd < dist[other] {
					dist[other] = nd
					prev[other] = idx
					changed = true
				}
			}
		}
		return changed
	}

	for i := 0; i < n-1; i++ {
		if !relax() {
			break
		}
	}
	// one more pass: any further relaxation implies a negative cycle
	// reachable from srcIdx.
	negCycle = relax()

	return dist, prev, negCycle
}

// lowerBounds computes the direction's admissible one-to-all lower bound
// array used for bounds pruning (spec.md §4.5 step 2): forward bounds are
// shortest weight source->v; backward bounds are shortest weight v->sink
// (computed as shortest weight from the sink over the reversed graph).
func lowerBounds(g *Graph, originIdx int, reversed bool) []float64 {
	dist, _, _ := bellmanFordFrom(g, originIdx, reversed)
	for i, d := range dist {
		if math.IsInf(d, 1) {
			// Unreached vertices contribute no admissible information; treat
			// as 0 so they never wrongly prune a label that later turns out
			// to reach sink/source via a path not seen from this origin.
			dist[i] = 0
		}
	}
	return dist
}

// selectCriticalResource solves, for each resource r, the longest
// source->sink path using res_r as arc distance, then picks the r whose
// longest-path consumption comes closest to, or furthest beyond, max_res[r]:
// each resource scores |longest| - max_res[r] and the highest score wins
// (spec.md §4.5 step 3). Longest path is computed as the negation of
// Bellman-Ford shortest path on negated resource weights; a resource whose
// graph contains a reachable positive-consumption cycle (a negative cycle
// once negated, i.e. a cycle that only grows req_r without bound) is
// skipped, since "longest path" is unbounded for it and provides no useful
// selection signal.
func selectCriticalResource(g *Graph, maxRes []float64, sourceIdx, sinkIdx int) int {
	best := 0
	bestScore := math.Inf(-1)
	for r := 0; r < g.r; r++ {
		negated := &Graph{r: g.r, index: g.index, userIDs: g.userIDs, out: negateResource(g.out, r), in: nil}
		dist, _, cyc := bellmanFordFrom(negated, sourceIdx, false)
		if cyc || math.IsInf(dist[sinkIdx], 1) {
			continue
		}
		longest := -dist[sinkIdx]
		score := math.Abs(longest) - maxRes[r]
		if score > bestScore {
			bestScore = score
			best = r
		}
	}
	return best
}

// negateResource returns a copy of adj with every arc's Weight replaced by
// the negative of its r-th resource component, leaving the arc's own
// resource vector untouched. Used only to drive Bellman-Ford as a
// longest-path solver for selectCriticalResource.
func negateResource(adj [][]Arc, r int) [][]Arc {
	out := make([][]Arc, len(adj))
	for i, arcs := range adj {
		cp := make([]Arc, len(arcs))
		for j, a := range arcs {
			cp[j] = a
			cp[j].Weight = -a.Res[r]
		}
		out[i] = cp
	}
	return out
}
