package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for integration.
var (
	// ErrInvalidGrid indicates a time grid that cannot drive a fixed-step method.
	ErrInvalidGrid = errors.New("dynamo: invalid time grid")

	// ErrNilFunc indicates a missing right-hand side.
	ErrNilFunc = errors.New("dynamo: nil right-hand side")

	// ErrNilStepper indicates a missing step formula.
	ErrNilStepper = errors.New("dynamo: nil stepper")
)

// InvalidGridError describes why a grid was rejected. Index is the first
// offending position, or -1 when the grid as a whole is at fault.
type InvalidGridError struct {
	Len    int
	Index  int
	Reason string
}

func (e *InvalidGridError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s (len=%d)", ErrInvalidGrid, e.Reason, e.Len)
	}
	return fmt.Sprintf("%s: %s at index %d (len=%d)", ErrInvalidGrid, e.Reason, e.Index, e.Len)
}

func (e *InvalidGridError) Is(target error) bool {
	return target == ErrInvalidGrid
}
