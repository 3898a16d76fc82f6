package session

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is returned when an operation is not allowed in
	// the current state. The state is left unchanged.
	ErrInvalidTransition = errors.New("invalid session transition")

	// ErrInvalidOption is returned when a selected answer is not one of the
	// current question's options.
	ErrInvalidOption = errors.New("option is not one of the question's options")

	// ErrEmptySequence is returned when a session is created without items.
	ErrEmptySequence = errors.New("session needs at least one item")
)

// CommitError reports that a finished quiz could not be folded into the
// stats. The quiz stays finished and can be committed again with
// RetryCommit.
type CommitError struct {
	Correct int
	Wrong   int
	Err     error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("commit quiz result (%d correct, %d wrong): %v", e.Correct, e.Wrong, e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}
