package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParams indicates a launch field that is missing or not a finite number.
	ErrInvalidParams = errors.New("sim: invalid launch parameters")

	// ErrSurface indicates the drawing surface is missing or has no area.
	ErrSurface = errors.New("sim: drawing surface unavailable")
)

// FieldError reports which input field failed to parse.
type FieldError struct {
	Field string
	Value string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %q is not a finite number", e.Field, e.Value)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidParams
}
