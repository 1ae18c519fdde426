package flow

import "errors"

var (
	// ErrStaleSegment indicates an append to a segment that is not active
	// or no longer exists.
	ErrStaleSegment = errors.New("flow: stale segment reference")

	// ErrMissingMarker indicates the marker has been removed by the host.
	ErrMissingMarker = errors.New("flow: marker not present")
)

// TickError wraps a failure inside a tick with the marker position at the
// time it happened.
type TickError struct {
	Tick    int
	Pos     Position
	Wrapped error
}

func (e *TickError) Error() string {
	return e.Wrapped.Error()
}

func (e *TickError) Unwrap() error {
	return e.Wrapped
}
