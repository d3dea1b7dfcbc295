package rcsp

import (
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Problem is a configured resource-constrained shortest path instance, built
// by New and solved by Run. It mirrors dijkstra's split between a public
// constructor that validates configuration and a private runner that holds
// mutable search state (spec.md §5, §7).
type Problem struct {
	g         *Graph
	sourceID  int
	sinkID    int
	sourceIdx int
	sinkIdx   int
	maxRes    []float64
	minRes    []float64
	opts      Options
	critical  int
}

// New validates g, sourceID, sinkID, maxRes, minRes and the supplied
// options, and returns a ready-to-run Problem. All configuration errors are
// returned immediately rather than surfacing later from Run (spec.md §7
// "Configuration errors").
func New(g *Graph, sourceID, sinkID int, maxRes, minRes []float64, opts ...Option) (*Problem, error) {
	if g == nil {
		return nil, wrapConfig(ErrNilGraph, "rcsp.New")
	}

	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if !cfg.Direction.valid() {
		return nil, wrapConfig(ErrUnknownDirection, "rcsp.New")
	}
	if !cfg.Method.valid() {
		return nil, wrapConfig(ErrUnknownMethod, "rcsp.New")
	}
	if sourceID == sinkID {
		return nil, wrapConfig(ErrSourceEqualsSink, "rcsp.New")
	}
	sourceIdx, ok := g.idxOf(sourceID)
	if !ok {
		return nil, wrapConfig(ErrSourceNotRegistered, "rcsp.New")
	}
	sinkIdx, ok := g.idxOf(sinkID)
	if !ok {
		return nil, wrapConfig(ErrSinkNotRegistered, "rcsp.New")
	}
	if len(maxRes) != g.r || len(minRes) != g.r {
		return nil, wrapConfig(ErrResourceArityMismatch, "rcsp.New")
	}
	if !cfg.FindCriticalRes && (cfg.CriticalRes < 0 || cfg.CriticalRes >= g.r) {
		return nil, wrapConfig(ErrCriticalResourceRange, "rcsp.New")
	}
	if cfg.Refs == nil {
		refs := DefaultRefSet(cfg.CriticalRes)
		cfg.Refs = &refs
	}

	return &Problem{
		g:         g,
		sourceID:  sourceID,
		sinkID:    sinkID,
		sourceIdx: sourceIdx,
		sinkIdx:   sinkIdx,
		maxRes:    append([]float64(nil), maxRes...),
		minRes:    append([]float64(nil), minRes...),
		opts:      cfg,
		critical:  cfg.CriticalRes,
	}, nil
}

// runner holds the mutable state of one Run invocation: the direction(s)'
// search states, the two converging dynamic bounds, and the running primal
// bound used for bounds pruning and early exit (spec.md §4.6).
type runner struct {
	p          *Problem
	log        *zap.SugaredLogger
	runID      string
	fwd        *searchState
	bwd        *searchState
	elementary bool

	// minResCurr and maxResCurr are the two dynamic bounds of spec.md §4.6.4:
	// every component starts pinned to the problem's static minRes/maxRes,
	// but a forward step can only raise minResCurr[critical] and a backward
	// step can only lower maxResCurr[critical], so the critical interval
	// shrinks monotonically as the two searches sweep toward each other
	// (invariant #5). In single-direction mode neither ever moves, since no
	// halfway semantics apply there.
	minResCurr []float64
	maxResCurr []float64

	primalBound float64
	deadline    time.Time
	hasDeadline bool
}

// Run executes the configured search to completion (or to an early-exit
// condition) and returns the best source-sink path found (spec.md §4.6,
// §4.7).
func (p *Problem) Run() (Result, error) {
	runID := uuid.NewString()
	log := p.opts.Logger

	elementary := p.opts.Elementary
	hasCycle, err := p.g.NegativeCostCyclePresent(p.sourceID)
	if err != nil {
		return Result{}, wrapConfig(err, "rcsp.Run: preprocessing")
	}
	if hasCycle && !elementary {
		// A negative-cost cycle makes the non-elementary problem unbounded;
		// forcing elementary mode is the only way dominance can still
		// guarantee termination (spec.md §4.5 step 1).
		elementary = true
		log.Debugw("forcing elementary mode: negative-cost cycle detected", "runID", runID)
	}

	critical := p.critical
	if p.opts.FindCriticalRes {
		critical = selectCriticalResource(p.g, p.maxRes, p.sourceIdx, p.sinkIdx)
		log.Debugw("selected critical resource", "runID", runID, "critical", critical)
	}
	refs := *p.opts.Refs
	if refs.IsDefault() && critical != p.critical {
		refs = DefaultRefSet(critical)
	}

	r := &runner{
		p:           p,
		log:         log,
		runID:       runID,
		elementary:  elementary,
		primalBound: math.Inf(1),
		minResCurr:  append([]float64(nil), p.minRes...),
		maxResCurr:  append([]float64(nil), p.maxRes...),
	}
	if p.opts.TimeLimit > 0 {
		r.deadline = time.Now().Add(p.opts.TimeLimit)
		r.hasDeadline = true
	}

	numV := p.g.NumVertices()
	direction := p.opts.Direction

	if direction == DirectionForward || direction == DirectionBoth {
		r.fwd = newSearchState(DirectionForward, numV, critical, elementary)
		r.fwd.seed(p.sourceIdx, append([]float64(nil), p.minRes...))
		if p.opts.BoundsPruning {
			r.fwd.lowerBound = lowerBounds(p.g, p.sourceIdx, false)
		}
	}
	if direction == DirectionBackward || direction == DirectionBoth {
		r.bwd = newSearchState(DirectionBackward, numV, critical, elementary)
		bwdRoot := append([]float64(nil), p.minRes...)
		bwdRoot[critical] = p.maxRes[critical]
		r.bwd.seed(p.sinkIdx, bwdRoot)
		if p.opts.BoundsPruning {
			r.bwd.lowerBound = lowerBounds(p.g, p.sinkIdx, true)
		}
	}

	timedOut, thresholdDir := r.loop(refs)

	var best Result
	if thresholdDir != nil {
		// A threshold hit is reported directly from the triggering
		// direction's intermediate label, bypassing Join entirely (spec.md
		// §7 "soft-stop outcomes").
		best = liftSingleDirection(thresholdDir, p, runID)
		best.TerminatedEarly = true
	} else {
		best = r.bestResult(refs)
		best.TerminatedEarly = timedOut
	}
	best.RunID = runID
	return best, nil
}

// loop is the bidirectional driver's main iteration (spec.md §4.6): pick a
// direction, step it once, refresh the intermediate label and halfway
// point, and check termination. It returns timedOut when the wall-clock
// limit was hit, or the specific direction whose intermediate label first
// satisfied the threshold; both are nil/false on natural exhaustion, in
// which case the caller proceeds to the normal lift-or-join step.
func (r *runner) loop(refs RefSet) (timedOut bool, thresholdDir *searchState) {
	single := r.fwd == nil || r.bwd == nil

	for {
		if r.hasDeadline && !time.Now().Before(r.deadline) {
			return true, nil
		}
		if r.p.opts.Threshold != nil {
			if s := r.thresholdTriggeredDirection(); s != nil {
				return false, s
			}
		}

		active := r.pickLiveDirection()
		if active == nil {
			return false, nil
		}

		r.step(active, refs)

		if !single {
			r.updateHalfway()
			if r.fwd.stop && r.bwd.stop {
				return false, nil
			}
		}
	}
}

// pickLiveDirection chooses the direction to step next, falling back to
// whichever side still has unprocessed work when the preferred one has run
// dry. It returns nil once every live direction is exhausted.
func (r *runner) pickLiveDirection() *searchState {
	switch {
	case r.fwd == nil:
		if r.bwd.stop {
			return nil
		}
		return r.bwd
	case r.bwd == nil:
		if r.fwd.stop {
			return nil
		}
		return r.fwd
	}

	if r.fwd.stop && r.bwd.stop {
		return nil
	}
	active := r.selectDirection()
	if active.stop {
		if active == r.fwd {
			active = r.bwd
		} else {
			active = r.fwd
		}
	}
	if active.stop {
		return nil
	}
	return active
}

// selectDirection applies the configured tie-breaker (spec.md §4.6.1) to
// choose which direction advances next.
func (r *runner) selectDirection() *searchState {
	switch r.p.opts.Method {
	case MethodProcessed:
		if r.fwd.processed <= r.bwd.processed {
			return r.fwd
		}
		return r.bwd
	case MethodGenerated:
		if r.fwd.generated <= r.bwd.generated {
			return r.fwd
		}
		return r.bwd
	default: // MethodUnprocessed
		if r.fwd.unprocessedCount() <= r.bwd.unprocessedCount() {
			return r.fwd
		}
		return r.bwd
	}
}

// step pops the next label off active's heap, checks it against the
// opposite direction's current half-plane, extends it across every incident
// arc, and files each surviving candidate (spec.md §4.6.2).
func (r *runner) step(active *searchState, refs RefSet) {
	active.popNext()
	if active.stop {
		return
	}
	active.processed++

	// Meeting-point stop (spec.md §4.6.2 step 2): once a direction's current
	// label has crossed the opposite direction's current half-plane on the
	// critical coordinate, the two searches have swept past each other and
	// this direction has nothing left to contribute. Only meaningful when
	// both directions run; in single-direction mode no halfway semantics
	// apply, so the direction always runs to heap exhaustion.
	if r.fwd != nil && r.bwd != nil && r.crossedMeetingPoint(active) {
		active.stop = true
		r.updateIntermediate(active)
		return
	}

	opposing := r.p.sinkIdx
	if active.direction == DirectionBackward {
		opposing = r.p.sourceIdx
	}

	for _, arc := range active.arcsFromCurrent(r.p.g) {
		cand, ok := active.extend(r.p.g, refs, arc, r.maxResCurr, r.minResCurr, r.p.minRes)
		if !ok {
			continue
		}
		active.addCandidate(cand, r.p.opts.BoundsPruning, r.primalBound, r.p.maxRes, r.p.minRes, opposing)
	}

	r.updateIntermediate(active)
}

// crossedMeetingPoint reports whether active's current label has crossed
// the opposite direction's current half-plane on the critical coordinate
// (spec.md §4.6.2 step 2): forward keeps going only while its critical
// coordinate stays at or under maxResCurr; backward only while its critical
// coordinate stays at or over minResCurr.
func (r *runner) crossedMeetingPoint(active *searchState) bool {
	critical := active.critical
	if active.direction == DirectionForward {
		return active.current().res[critical] > r.maxResCurr[critical]
	}
	return active.current().res[critical] < r.minResCurr[critical]
}

// updateIntermediate refreshes active's best complete-path candidate and,
// when it improves on the running primal bound, updates that bound
// (spec.md §4.6.3). A label counts as complete when it has reached the
// opposite terminal and is hard-feasible there.
func (r *runner) updateIntermediate(active *searchState) {
	other := r.p.sinkIdx
	if active.direction == DirectionBackward {
		other = r.p.sourceIdx
	}
	idx := active.best[other]
	if idx == -1 {
		return
	}
	l := active.arena.get(idx)
	if !checkStPath(l, active.direction, r.p.sourceIdx, r.p.sinkIdx) {
		return
	}
	if !checkFeasibilityHard(l, r.p.maxRes, r.p.minRes) {
		return
	}
	if active.intermediateIdx == -1 || l.weight < active.arena.get(active.intermediateIdx).weight {
		active.intermediateIdx = idx
	}
	if l.weight < r.primalBound {
		r.primalBound = l.weight
	}
}

// thresholdTriggeredDirection returns whichever direction's intermediate
// label first satisfies the configured threshold, or nil if neither does
// yet.
func (r *runner) thresholdTriggeredDirection() *searchState {
	threshold := *r.p.opts.Threshold
	for _, s := range []*searchState{r.fwd, r.bwd} {
		if s == nil || s.intermediateIdx == -1 {
			continue
		}
		if checkThreshold(s.arena.get(s.intermediateIdx), threshold) {
			return s
		}
	}
	return nil
}

// updateHalfway advances the two dynamic bounds of spec.md §4.6.4 after a
// step: a forward step can only raise minResCurr[critical] (clamped so it
// never overtakes maxResCurr[critical]), and a backward step can only lower
// maxResCurr[critical] (clamped so it never falls under minResCurr[critical]).
// The critical interval this pair brackets therefore shrinks monotonically
// and the two searches converge on a shared meeting point.
func (r *runner) updateHalfway() {
	critical := r.fwd.critical
	if !r.fwd.stop {
		v := r.fwd.current().res[critical]
		if v > r.maxResCurr[critical] {
			v = r.maxResCurr[critical]
		}
		if v > r.minResCurr[critical] {
			r.minResCurr[critical] = v
		}
	}
	if !r.bwd.stop {
		v := r.bwd.current().res[critical]
		if v < r.minResCurr[critical] {
			v = r.minResCurr[critical]
		}
		if v < r.maxResCurr[critical] {
			r.maxResCurr[critical] = v
		}
	}
}

// bestResult produces the final Result: a direct lift of the single
// direction's best complete label, or the outcome of Join when both
// directions ran (spec.md §4.6.5, §4.7).
func (r *runner) bestResult(refs RefSet) Result {
	switch {
	case r.bwd == nil:
		return liftSingleDirection(r.fwd, r.p, r.runID)
	case r.fwd == nil:
		return liftSingleDirection(r.bwd, r.p, r.runID)
	default:
		critical := r.fwd.critical
		hf := math.Min(r.maxResCurr[critical], r.minResCurr[critical])
		return join(r.fwd, r.bwd, r.p, refs, hf, r.runID)
	}
}

// liftSingleDirection converts a single search's best complete label
// directly into a Result, with no join step (spec.md §4.6.5 "single
// direction"). A backward-only result is reframed into the same
// consumed-since-source terms a forward result would report, using the
// problem's min_res as the cumulative baseline (spec.md §4.7
// "processBwdLabel", invert_min_res case).
func liftSingleDirection(s *searchState, p *Problem, runID string) Result {
	if s.intermediateIdx == -1 {
		return infeasibleResult(runID, false)
	}
	l := s.arena.get(s.intermediateIdx)
	if s.direction == DirectionForward {
		return Result{
			Path:              s.arena.path(s.intermediateIdx, p.g.idOf),
			ConsumedResources: append([]float64(nil), l.res...),
			TotalCost:         l.weight,
			RunID:             runID,
		}
	}
	return Result{
		Path:              reversePath(s.arena.path(s.intermediateIdx, p.g.idOf)),
		ConsumedResources: processBwdLabel(l.res, s.critical, p.maxRes, p.minRes, true),
		TotalCost:         l.weight,
		RunID:             runID,
	}
}

func reversePath(path []int) []int {
	out := make([]int, len(path))
	for i, v := range path {
		out[len(path)-1-i] = v
	}
	return out
}
