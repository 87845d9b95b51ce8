package engine

import (
	"errors"
	"fmt"
)

// RuntimeError represents a fatal error detected during execution.
//
// Runtime errors include:
//   - Tape bounds: the cursor was outside the tape when a cell was accessed
//   - I/O: reading input (other than end of input) or writing output failed
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Message is a human-readable description.
	Message string

	// Cursor is the cursor value at the time of the error.
	Cursor uint

	// Step is the 1-based number of the step that failed.
	Step int64

	// Err is the underlying I/O error, if any.
	Err error
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeTapeBounds indicates a tape access with the cursor out of range.
	ErrCodeTapeBounds RuntimeErrorCode = "TAPE_BOUNDS"

	// ErrCodeIO indicates an input or output failure.
	ErrCodeIO RuntimeErrorCode = "IO_ERROR"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (step=%d): %v", e.Code, e.Message, e.Step, e.Err)
	}
	return fmt.Sprintf("%s: %s (step=%d)", e.Code, e.Message, e.Step)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// IsBoundsError returns true if the error is a tape bounds violation.
// Uses errors.As to handle wrapped errors.
func IsBoundsError(err error) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == ErrCodeTapeBounds
	}
	return false
}

// IsIOError returns true if the error is an input or output failure.
func IsIOError(err error) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == ErrCodeIO
	}
	return false
}

// NewBoundsError creates a RuntimeError for an out-of-range tape access.
func NewBoundsError(cursor uint, step int64) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeTapeBounds,
		Message: fmt.Sprintf("cursor %d outside tape [0, %d)", cursor, TapeSize),
		Cursor:  cursor,
		Step:    step,
	}
}

// NewIOError creates a RuntimeError wrapping an I/O failure.
func NewIOError(op string, cursor uint, step int64, err error) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeIO,
		Message: op + " failed",
		Cursor:  cursor,
		Step:    step,
		Err:     err,
	}
}

// Code returns the code of a RuntimeError or StepsExceededError, or "" for
// anything else. Used to compare outcomes in scenarios and run history.
func Code(err error) string {
	var re *RuntimeError
	if errors.As(err, &re) {
		return string(re.Code)
	}
	if IsStepsExceededError(err) {
		return ErrCodeStepsExceeded
	}
	return ""
}
