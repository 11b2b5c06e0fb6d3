package body

import "errors"

// Construction errors. A body that fails any of these checks is a
// configuration defect and is never created.
var (
	// ErrInvalidMass indicates a mass that is zero or negative.
	ErrInvalidMass = errors.New("body: mass must be positive")

	// ErrInvalidRadius indicates a radius that is zero or negative.
	ErrInvalidRadius = errors.New("body: radius must be positive")

	// ErrNonFinite indicates a NaN or Inf in the initial state.
	ErrNonFinite = errors.New("body: non-finite value (NaN or Inf detected)")

	// ErrInvalidTrailCapacity indicates a trail that cannot hold any point.
	ErrInvalidTrailCapacity = errors.New("body: trail capacity must be positive")
)
