package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrDependencyReemitted is returned when a creator hands back the very
	// field it was asked to expand. Queueing it again would loop forever.
	ErrDependencyReemitted = errors.New("dependency re-emitted after dispatch")

	// ErrInvalidDependency is returned when a response lists a dependency
	// without a field behind it.
	ErrInvalidDependency = errors.New("invalid dependency")

	// ErrCreatorPanicked is returned in place of a panic raised by a creator.
	ErrCreatorPanicked = errors.New("creator panicked")

	// ErrMaxRoundsExceeded is returned when the expansion needs more rounds
	// than the service allows.
	ErrMaxRoundsExceeded = errors.New("maximum number of rounds exceeded")
)

// CreationError attributes a failure to the field being expanded.
type CreationError struct {
	Round     int
	FieldID   string
	FieldPath string
	Creator   string
	Err       error
}

func (e *CreationError) Error() string {
	if e.Creator != "" {
		return fmt.Sprintf("round %d: creating plan for field %s (%s) with %s: %v", e.Round, e.FieldPath, e.FieldID, e.Creator, e.Err)
	}
	return fmt.Sprintf("round %d: creating plan for field %s (%s): %v", e.Round, e.FieldPath, e.FieldID, e.Err)
}

func (e *CreationError) Unwrap() error {
	return e.Err
}

// RoundError is a failure of a whole round that cannot be pinned on a single
// field, such as a timeout.
type RoundError struct {
	Round int
	Err   error
}

func (e *RoundError) Error() string {
	return fmt.Sprintf("round %d: %v", e.Round, e.Err)
}

func (e *RoundError) Unwrap() error {
	return e.Err
}
