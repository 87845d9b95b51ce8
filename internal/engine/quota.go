package engine

import (
	"errors"
	"fmt"
)

// ErrCodeStepsExceeded is the code reported by Code for a StepsExceededError.
const ErrCodeStepsExceeded = "STEPS_EXCEEDED"

// QuotaEnforcer counts executed steps and enforces a maximum.
//
// A step is one instruction dispatch or one loop re-check. A limit of zero or
// less means unlimited: programs that never halt run forever, as the language
// intends. Tests and the conformance harness set a limit so that a broken loop
// fails instead of hanging.
type QuotaEnforcer struct {
	maxSteps int64
	current  int64
}

// NewQuotaEnforcer creates a new quota enforcer with the given limit.
func NewQuotaEnforcer(maxSteps int64) *QuotaEnforcer {
	return &QuotaEnforcer{maxSteps: maxSteps}
}

// Check increments the step counter and validates against the limit.
// Returns StepsExceededError if the quota is exceeded.
func (q *QuotaEnforcer) Check() error {
	q.current++
	if q.maxSteps > 0 && q.current > q.maxSteps {
		return &StepsExceededError{
			Steps: q.current,
			Limit: q.maxSteps,
		}
	}
	return nil
}

// Reset resets the step counter to 0.
func (q *QuotaEnforcer) Reset() {
	q.current = 0
}

// Current returns the current step count.
func (q *QuotaEnforcer) Current() int64 {
	return q.current
}

// MaxSteps returns the limit; zero or less means unlimited.
func (q *QuotaEnforcer) MaxSteps() int64 {
	return q.maxSteps
}

// StepsExceededError is returned when a run exceeds the max steps quota.
type StepsExceededError struct {
	Steps int64 // Number of steps attempted
	Limit int64 // Maximum allowed steps
}

// Error implements the error interface.
func (e *StepsExceededError) Error() string {
	return fmt.Sprintf("%s: run exceeded max steps quota: %d steps > %d limit",
		ErrCodeStepsExceeded, e.Steps, e.Limit)
}

// IsStepsExceededError returns true if the error is a StepsExceededError.
// Uses errors.As to handle wrapped errors.
func IsStepsExceededError(err error) bool {
	var se *StepsExceededError
	return errors.As(err, &se)
}
