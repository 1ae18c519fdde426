package field

import "errors"

var (
	// ErrUndefined indicates a slope that is NaN or infinite.
	ErrUndefined = errors.New("field: slope is not finite")

	// ErrUnknownField indicates a name missing from the registry.
	ErrUnknownField = errors.New("field: unknown field")
)
