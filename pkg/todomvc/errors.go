package todomvc

import (
	"errors"
	"fmt"
)

var (
	// ErrTaskNotFound is returned when no row in the current view carries
	// the requested label.
	ErrTaskNotFound = errors.New("task not found")

	// ErrAmbiguousLabel is returned when several rows carry the requested
	// label and the operation needs exactly one.
	ErrAmbiguousLabel = errors.New("ambiguous task label")

	// ErrUnexpectedCounter is returned when the remaining-items counter does
	// not start with a count.
	ErrUnexpectedCounter = errors.New("unexpected counter text")

	// ErrNotRendered is returned when a footer element the operation reads
	// is absent, as it is while the list is empty.
	ErrNotRendered = errors.New("element not rendered")
)

// TaskError records a failed label lookup.
type TaskError struct {
	Op      string
	Label   string
	Matches int
	Err     error
}

func (e *TaskError) Error() string {
	if e.Matches > 1 {
		return fmt.Sprintf("%s %q: %v (%d rows)", e.Op, e.Label, e.Err, e.Matches)
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.Label, e.Err)
}

func (e *TaskError) Unwrap() error { return e.Err }
