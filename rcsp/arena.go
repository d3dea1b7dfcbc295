package rcsp

// label is one Pareto-candidate partial path, stored inside a direction's
// arena. Rather than carrying a heap-allocated copy of its partial path and
// re-copying it on every extension (as the reference implementation does),
// a label only stores its parent's arena index; the path is reconstructed
// on demand by walking parent links (spec.md §9 "Design notes: Cyclic
// structure"). Labels are immutable once created except for unreachable,
// which step 5 of Extend (spec.md §4.3) may grow in place.
type label struct {
	weight      float64
	vertexIdx   int
	res         []float64
	parent      int // arena index, -1 for the direction's root label
	unreachable bitset
}

// arena owns every label ever created in one direction's search. Labels are
// retained for the entire run because Join reads from every bucket
// (spec.md §3 "Lifecycle").
type arena struct {
	labels []label
}

func newArena() *arena {
	return &arena{}
}

func (a *arena) add(l label) int {
	a.labels = append(a.labels, l)
	return len(a.labels) - 1
}

func (a *arena) get(idx int) *label {
	return &a.labels[idx]
}

// path reconstructs the ordered vertex-id sequence from this direction's
// origin to the label at idx, converting dense indices to external ids via
// toExternal.
func (a *arena) path(idx int, toExternal func(int) int) []int {
	var rev []int
	for idx != -1 {
		l := a.labels[idx]
		rev = append(rev, toExternal(l.vertexIdx))
		idx = l.parent
	}
	out := make([]int, len(rev))
	for i, id := range rev {
		out[len(rev)-1-i] = id
	}
	return out
}

// labelHeap is a binary heap of arena indices ordered on the critical
// resource coordinate: ascending (min-heap) for the forward direction,
// descending (max-heap) for the backward direction — "the label popped is
// always the one currently deepest into the critical dimension" (spec.md
// §4.4). It is a plain container/heap priority queue with push and pop
// only; there is no decrease-key operation.
type labelHeap struct {
	idx       []int
	arena     *arena
	critical  int
	backward  bool
}

func newLabelHeap(a *arena, critical int, backward bool) *labelHeap {
	return &labelHeap{arena: a, critical: critical, backward: backward}
}

func (h *labelHeap) Len() int { return len(h.idx) }

func (h *labelHeap) Less(i, j int) bool {
	ri := h.arena.labels[h.idx[i]].res[h.critical]
	rj := h.arena.labels[h.idx[j]].res[h.critical]
	if h.backward {
		return ri > rj
	}
	return ri < rj
}

func (h *labelHeap) Swap(i, j int) { h.idx[i], h.idx[j] = h.idx[j], h.idx[i] }

func (h *labelHeap) Push(x interface{}) { h.idx = append(h.idx, x.(int)) }

func (h *labelHeap) Pop() interface{} {
	old := h.idx
	n := len(old)
	item := old[n-1]
	h.idx = old[:n-1]
	return item
}
