package review

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest is returned for requests missing a student or course id.
var ErrInvalidRequest = errors.New("invalid review request")

// Error reports a failed required fetch. No partial result accompanies it.
type Error struct {
	Op  string // the fetch that failed, e.g. "list overdue outcomes"
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("review: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func wrap(op string, err error) error {
	return &Error{Op: op, Err: err}
}
