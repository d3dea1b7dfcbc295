package rcsp

import (
	"math"
	"time"

	"go.uber.org/zap"
)

// Direction selects which end(s) of the graph a search grows from.
type Direction string

const (
	// DirectionForward grows a single search from the source.
	DirectionForward Direction = "forward"
	// DirectionBackward grows a single search from the sink.
	DirectionBackward Direction = "backward"
	// DirectionBoth runs both searches and joins them at a dynamic halfway
	// point. This is the default.
	DirectionBoth Direction = "both"
)

func (d Direction) valid() bool {
	return d == DirectionForward || d == DirectionBackward || d == DirectionBoth
}

func (d Direction) opposite() Direction {
	if d == DirectionForward {
		return DirectionBackward
	}
	return DirectionForward
}

// Method is the tie-breaker used to choose which direction advances next
// when both are live in DirectionBoth mode.
type Method string

const (
	// MethodUnprocessed favors the direction with the smaller unprocessed
	// heap. This is the default.
	MethodUnprocessed Method = "unprocessed"
	// MethodProcessed favors the direction that has processed fewer labels.
	MethodProcessed Method = "processed"
	// MethodGenerated favors the direction that has generated fewer labels.
	MethodGenerated Method = "generated"
)

func (m Method) valid() bool {
	return m == MethodUnprocessed || m == MethodProcessed || m == MethodGenerated
}

// Options configures a Problem. Construct via DefaultOptions and override
// with the With* functional options, in the style of dijkstra.Options.
type Options struct {
	Direction       Direction
	Method          Method
	TimeLimit       time.Duration // 0 means no limit
	Threshold       *float64      // nil means no early-exit threshold
	Elementary      bool
	BoundsPruning   bool
	FindCriticalRes bool
	CriticalRes     int
	Refs            *RefSet
	Logger          *zap.SugaredLogger
}

// Option is a functional option mutating Options.
type Option func(*Options)

// DefaultOptions returns Options with the documented defaults: direction
// "both", method "unprocessed", critical resource 0, no time limit or
// threshold, non-elementary, no bounds pruning, and a no-op logger.
func DefaultOptions() Options {
	return Options{
		Direction:   DirectionBoth,
		Method:      MethodUnprocessed,
		CriticalRes: 0,
		Logger:      zap.NewNop().Sugar(),
	}
}

// WithDirection sets the search topology.
func WithDirection(d Direction) Option {
	return func(o *Options) { o.Direction = d }
}

// WithMethod sets the direction-selection tie-breaker used when both
// directions are live.
func WithMethod(m Method) Option {
	return func(o *Options) { o.Method = m }
}

// WithTimeLimit sets a wall-clock cutoff for Run. Zero (the default) means
// no limit.
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) { o.TimeLimit = d }
}

// WithThreshold enables early exit as soon as a complete source-sink path
// of weight <= threshold is found.
func WithThreshold(threshold float64) Option {
	return func(o *Options) { o.Threshold = &threshold }
}

// WithElementary forbids repeated vertices on any path.
func WithElementary() Option {
	return func(o *Options) { o.Elementary = true }
}

// WithBoundsPruning enables admissible one-to-all lower-bound pruning
// (spec.md §4.5).
func WithBoundsPruning() Option {
	return func(o *Options) { o.BoundsPruning = true }
}

// WithFindCriticalRes runs the critical-resource-selection heuristic during
// preprocessing, overriding CriticalRes.
func WithFindCriticalRes() Option {
	return func(o *Options) { o.FindCriticalRes = true }
}

// WithCriticalRes fixes the critical resource index. Overridden if
// WithFindCriticalRes is also set. Panics if idx is negative; range against
// the graph's resource arity is validated by New.
func WithCriticalRes(idx int) Option {
	if idx < 0 {
		panic(ErrCriticalResourceRange.Error())
	}
	return func(o *Options) { o.CriticalRes = idx }
}

// WithRefCallback installs a custom Resource Extension Function triple.
// All three functions are used together; see RefSet. Panics if any of the
// three is nil.
func WithRefCallback(refs RefSet) Option {
	if refs.Fwd == nil || refs.Bwd == nil || refs.Join == nil {
		panic(ErrIncompleteRefCallback.Error())
	}
	refs.isDefault = false
	return func(o *Options) { o.Refs = &refs }
}

// WithLogger attaches a structured logger used for debug-level tracing of
// preprocessing decisions (elementary mode forced on, critical resource
// selected); direction switches, halfway-point updates and join outcomes
// are not traced. The engine owns no logging subsystem; tracing is purely an
// optional diagnostic aid (spec.md §1 lists logging as an external
// collaborator). Default is a no-op logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(o *Options) { o.Logger = logger }
}

// Result is the outcome of Run.
type Result struct {
	// Path is the ordered list of vertex ids from source to sink. Empty if
	// infeasible.
	Path []int
	// ConsumedResources is the resource vector at the end of Path. Empty if
	// infeasible.
	ConsumedResources []float64
	// TotalCost is the path's accumulated weight. +Inf if infeasible.
	TotalCost float64
	// TerminatedEarly is true when Run stopped because of the time limit or
	// the threshold rather than by exhausting both searches naturally; a
	// caller may use it to distinguish a soft-stop outcome from a
	// provably-optimal one (spec.md §7).
	TerminatedEarly bool
	// RunID identifies this invocation of Run, for correlating trace log
	// lines; it carries no algorithmic meaning.
	RunID string
}

func infeasibleResult(runID string, terminatedEarly bool) Result {
	return Result{
		TotalCost:       math.Inf(1),
		TerminatedEarly: terminatedEarly,
		RunID:           runID,
	}
}
