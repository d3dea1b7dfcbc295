package rcsp

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

// Sentinel errors for configuration mistakes, surfaced immediately and
// abort construction (spec.md §7 "Configuration errors").
var (
	// ErrUnknownDirection is returned when Options.Direction is not one of
	// DirectionForward, DirectionBackward, DirectionBoth.
	ErrUnknownDirection = errors.New("rcsp: unknown direction")

	// ErrUnknownMethod is returned when Options.Method is not one of the
	// recognised direction-selection tie-breakers.
	ErrUnknownMethod = errors.New("rcsp: unknown method")

	// ErrCriticalResourceRange is returned when Options.CriticalRes is
	// outside [0, R).
	ErrCriticalResourceRange = errors.New("rcsp: critical resource index out of range")

	// ErrSourceNotRegistered is returned when the configured source vertex
	// was never declared via Graph.AddNodes.
	ErrSourceNotRegistered = errors.New("rcsp: source vertex not registered")

	// ErrSinkNotRegistered is returned when the configured sink vertex was
	// never declared via Graph.AddNodes.
	ErrSinkNotRegistered = errors.New("rcsp: sink vertex not registered")

	// ErrSourceEqualsSink is returned when source and sink are the same
	// vertex; the graph requires exactly one of each and they must be
	// distinct (spec.md §4.1 invariants).
	ErrSourceEqualsSink = errors.New("rcsp: source and sink must be distinct")

	// ErrResourceArityMismatch is returned when max_res or min_res does not
	// have the graph's declared arity R, or an edge's resource vector does
	// not match it.
	ErrResourceArityMismatch = errors.New("rcsp: resource vector arity mismatch")

	// ErrUnknownVertex is returned by Graph builder methods referencing a
	// vertex id that was not declared via AddNodes.
	ErrUnknownVertex = errors.New("rcsp: unknown vertex id")

	// ErrDuplicateVertex is returned when AddNodes is called twice with the
	// same external id.
	ErrDuplicateVertex = errors.New("rcsp: duplicate vertex id")

	// ErrNilGraph is returned when a nil *Graph is passed to New.
	ErrNilGraph = errors.New("rcsp: graph is nil")

	// ErrIncompleteRefCallback is returned when WithRefCallback is given a
	// triple missing one or more of the forward, backward, or join REFs.
	ErrIncompleteRefCallback = errors.New("rcsp: ref callback triple is incomplete")
)

// wrapConfig attaches a stack trace (via github.com/pkg/errors) to a
// configuration-time sentinel, preserving errors.Is/errors.Unwrap identity.
func wrapConfig(err error, context string) error {
	if err == nil {
		return nil
	}
	return pkgerrors.Wrap(err, context)
}
