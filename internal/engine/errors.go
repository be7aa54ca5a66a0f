package engine

import (
	"errors"
	"fmt"
)

// Domain errors for session setup and stepping.
var (
	// ErrInvalidBodyCount indicates a negative body count.
	ErrInvalidBodyCount = errors.New("engine: body count must be non-negative")

	// ErrInvalidSoftening indicates a softening constant that is not strictly positive.
	ErrInvalidSoftening = errors.New("engine: softening must be positive")

	// ErrInvalidMass indicates a negative body or central mass.
	ErrInvalidMass = errors.New("engine: masses must be non-negative")

	// ErrInvalidTimestep indicates a non-positive or non-finite dt.
	ErrInvalidTimestep = errors.New("engine: dt must be positive and finite")

	// ErrDiverged indicates NaN/Inf state detected between steps.
	ErrDiverged = errors.New("engine: population diverged (NaN or Inf detected)")
)

// StepError wraps an error with the step and simulated time it occurred at.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
