package rcsp

import "container/heap"

// searchState holds all per-direction state for one side of the
// bidirectional search: the unprocessed-label heap, per-vertex efficient
// Pareto buckets, per-vertex best-label pointers, the visited set, and the
// generated/processed counters (spec.md §4.4).
type searchState struct {
	direction Direction
	origin    int // dense vertex idx this direction grows from
	critical  int
	elementary bool

	arena     *arena
	heap      *labelHeap
	efficient [][]int // per vertex idx: arena indices of Pareto-efficient labels
	best      []int   // per vertex idx: arena index of best label, or -1
	visited   []bool

	generated, processed int
	stop                  bool

	lowerBound []float64 // admissible one-to-all bound per vertex, for bounds pruning

	currentIdx      int // arena idx of the label currently being expanded
	intermediateIdx int // arena idx of the best complete/candidate label so far, -1 if unset
}

func newSearchState(direction Direction, numVertices, critical int, elementary bool) *searchState {
	a := newArena()
	s := &searchState{
		direction:       direction,
		critical:        critical,
		elementary:      elementary,
		arena:           a,
		heap:            newLabelHeap(a, critical, direction == DirectionBackward),
		efficient:       make([][]int, numVertices),
		best:            make([]int, numVertices),
		visited:         make([]bool, numVertices),
		lowerBound:      make([]float64, numVertices),
		intermediateIdx: -1,
	}
	for i := range s.best {
		s.best[i] = -1
	}
	return s
}

// seed creates the direction's root label at vertex originIdx with resource
// vector res (spec.md §4.6 "initLabels"), pushes it into the heap and
// efficient/best buckets, and marks originIdx visited.
func (s *searchState) seed(originIdx int, res []float64) {
	s.origin = originIdx
	l := label{weight: 0, vertexIdx: originIdx, res: append([]float64(nil), res...), parent: -1}
	if s.elementary {
		l.unreachable = newBitset(len(s.visited))
		l.unreachable.set(originIdx)
	}
	idx := s.arena.add(l)
	s.efficient[originIdx] = append(s.efficient[originIdx], idx)
	s.best[originIdx] = idx
	s.visited[originIdx] = true
	heap.Push(s.heap, idx)
	s.currentIdx = idx
}

// popNext pops the most-promising label (by critical coordinate) off the
// heap into currentIdx, or sets stop when the heap is empty (spec.md §4.6.2
// step 1 / driver's updateCurrentLabel).
func (s *searchState) popNext() {
	if s.heap.Len() == 0 {
		s.stop = true
		return
	}
	s.currentIdx = heap.Pop(s.heap).(int)
}

// current returns the label currently being expanded.
func (s *searchState) current() *label { return s.arena.get(s.currentIdx) }

// addCandidate runs the five-step insertion procedure of spec.md §4.4 for a
// newly extended label at vertex cand.vertexIdx. maxRes/minRes are the
// static hard bounds (used for the best[] gating in step 5); boundsPruning
// and primalBound gate step 3.
func (s *searchState) addCandidate(cand label, boundsPruning bool, primalBound float64, maxRes, minRes []float64, opposingTerminal int) {
	v := cand.vertexIdx
	bucket := s.efficient[v]

	// Step 1: bitwise-equal discard.
	for _, existingIdx := range bucket {
		e := s.arena.get(existingIdx)
		if e.weight == cand.weight && resEqual(e.res, cand.res) {
			return
		}
	}

	// Step 2: dominance sweep.
	survivors := bucket[:0:0]
	dominated := false
	for _, existingIdx := range bucket {
		e := s.arena.get(existingIdx)
		if dominates(&cand, e, s.direction, s.critical, s.elementary) {
			continue // e is removed from the bucket
		}
		survivors = append(survivors, existingIdx)
		if !dominated && dominates(e, &cand, s.direction, s.critical, s.elementary) {
			dominated = true
		}
	}
	s.efficient[v] = survivors
	if dominated {
		return
	}

	// Step 3: bounds pruning.
	if boundsPruning && cand.weight+s.lowerBound[v] > primalBound {
		return
	}

	// Step 4: insert.
	s.generated++
	idx := s.arena.add(cand)
	s.efficient[v] = append(s.efficient[v], idx)
	heap.Push(s.heap, idx)
	s.visited[v] = true

	// Step 5: best[] update, gated on hard feasibility when v is the
	// opposing terminal.
	newLabel := s.arena.get(idx)
	if v == opposingTerminal && !checkFeasibilityHard(newLabel, maxRes, minRes) {
		return
	}
	if s.best[v] == -1 || newLabel.weight < s.arena.get(s.best[v]).weight {
		s.best[v] = idx
	}
}

func (s *searchState) unprocessedCount() int { return s.heap.Len() }

// arcsFromCurrent returns the arcs this direction extends the current label
// across: outgoing arcs for the forward search, incoming arcs (walked
// tail-ward) for the backward search (spec.md §4.6.2).
func (s *searchState) arcsFromCurrent(g *Graph) []Arc {
	v := s.current().vertexIdx
	if s.direction == DirectionForward {
		return g.outArcsIdx(v)
	}
	return g.inArcsIdx(v)
}

// extend implements the Extend procedure of spec.md §4.3: given the label
// currently being processed and one incident arc, it computes the successor
// label's resource vector via the configured REF, applies the elementary
// revisit guard and the soft-feasibility prune, and reports whether a new
// candidate label was produced. maxResCurr/minResCurr are this direction's
// current dynamic bounds (spec.md §4.6.4); minRes is the problem's static
// minimum, used only for the soft check's non-critical concession. On
// elementary rejection, it also grows the current label's unreachable
// bitset in place per step 5, so that later extensions across the same arc
// are rejected without recomputation.
func (s *searchState) extend(g *Graph, refs RefSet, arc Arc, maxResCurr, minResCurr, minRes []float64) (label, bool) {
	cur := s.arena.get(s.currentIdx)

	var nextIdx int
	if s.direction == DirectionForward {
		nextIdx = arc.HeadIdx
	} else {
		nextIdx = arc.TailIdx
	}

	if s.elementary && cur.unreachable.has(nextIdx) {
		return label{}, false
	}

	var newRes []float64
	if refs.IsDefault() {
		if s.direction == DirectionForward {
			newRes = additiveForward(cur.res, 0, 0, arc.Res, nil, cur.weight)
		} else {
			newRes = additiveBackward(cur.res, arc.Res, s.critical)
		}
	} else {
		partialPath := s.arena.path(s.currentIdx, g.idOf)
		tailID, headID := g.idOf(arc.TailIdx), g.idOf(arc.HeadIdx)
		if s.direction == DirectionForward {
			newRes = refs.Fwd(cur.res, tailID, headID, arc.Res, partialPath, cur.weight)
		} else {
			newRes = refs.Bwd(cur.res, tailID, headID, arc.Res, partialPath, cur.weight)
		}
	}

	cand := label{
		weight:    cur.weight + arc.Weight,
		vertexIdx: nextIdx,
		res:       newRes,
		parent:    s.currentIdx,
	}
	if s.elementary {
		cand.unreachable = cur.unreachable.withSet(nextIdx)
	}

	if !checkFeasibilitySoft(&cand, maxResCurr, minResCurr, minRes, s.critical) {
		if s.elementary {
			cur.unreachable = cur.unreachable.withSet(nextIdx)
		}
		return label{}, false
	}

	return cand, true
}
