package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig indicates a configuration the simulator cannot run.
	ErrInvalidConfig = errors.New("sim: invalid configuration")

	// ErrNilStar indicates a simulator built without a central star.
	ErrNilStar = errors.New("sim: star is required")

	// ErrNonFinite indicates a body whose state diverged to NaN or Inf.
	ErrNonFinite = errors.New("sim: simulation unstable (NaN or Inf detected)")
)

// TickError wraps an error with the tick and body it was detected on.
type TickError struct {
	Tick    int
	Body    string
	Wrapped error
}

func (e *TickError) Error() string {
	return fmt.Sprintf("tick %d (%s): %v", e.Tick, e.Body, e.Wrapped)
}

func (e *TickError) Unwrap() error {
	return e.Wrapped
}
