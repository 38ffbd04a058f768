package dynamo

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidState      = errors.New("dynamo: state is not finite")
	ErrDimensionMismatch = errors.New("dynamo: state length does not match system")
)

// StepError records where an integration stopped.
type StepError struct {
	Step int
	Time float64
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.3fs): %v", e.Step, e.Time, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Check reports whether x is a usable state for sys.
func Check(sys System, x State) error {
	if len(x) != sys.StateDim() {
		return fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(x), sys.StateDim())
	}
	if !x.IsValid() {
		return ErrInvalidState
	}
	return nil
}
