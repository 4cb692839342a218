package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a state vector holding NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrInvalidStep indicates a time increment that is zero, negative or not finite.
	ErrInvalidStep = errors.New("dynamo: time step must be positive and finite")

	// ErrInvalidDuration indicates a batch run with a non-positive duration.
	ErrInvalidDuration = errors.New("dynamo: duration must be positive")

	// ErrTooManySteps indicates a duration/step ratio above MaxSteps.
	ErrTooManySteps = errors.New("dynamo: too many steps")

	// ErrDimensionMismatch indicates mismatched state dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
