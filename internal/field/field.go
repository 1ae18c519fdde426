package field

import (
	"fmt"
	"math"
)

// Field evaluates the slope dy/dx at (x, y). Implementations must be
// deterministic and free of side effects.
type Field interface {
	Slope(x, y float64) (float64, error)
}

// Func adapts an ordinary function to Field. Non-finite results are
// reported as *EvaluationError.
type Func func(x, y float64) float64

func (f Func) Slope(x, y float64) (float64, error) {
	s := f(x, y)
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return 0, &EvaluationError{X: x, Y: y, Err: ErrUndefined}
	}
	return s, nil
}

// EvaluationError reports a point where the field is undefined.
type EvaluationError struct {
	X, Y float64
	Err  error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("field: undefined at (%.4f, %.4f): %v", e.X, e.Y, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
