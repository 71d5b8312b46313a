package rotation

import "github.com/rotisserie/eris"

var (
	// ErrInvalidInput is returned when the caller hands the engine data it
	// cannot schedule from.
	ErrInvalidInput = eris.New("invalid rotation input")

	ErrInvalidTransition = eris.New("invalid status transition")

	// ErrInvariantViolation means the generator produced a result that fails
	// its own validation. It is a bug, never a data problem.
	ErrInvariantViolation = eris.New("rotation invariant violated")
)
