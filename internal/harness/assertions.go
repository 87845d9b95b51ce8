package harness

import (
	"fmt"
	"sort"
	"strings"
)

// AssertionError is returned when an expectation fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Field    string // "output", "cells[3]", "cursor" or "error"
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "expectation failed: %s\n", e.Field)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// evaluateExpect checks every expectation and records each failure on the
// result. The error expectation is checked first; when the program did not
// run, tape expectations are reported as unavailable.
func evaluateExpect(result *Result, expect Expect) {
	for _, err := range checkExpect(result, expect) {
		result.AddError(err.Error())
	}
}

func checkExpect(result *Result, expect Expect) []error {
	var errs []error

	if err := assertError(result, expect.Error); err != nil {
		errs = append(errs, err)
	}

	if expect.Output != nil && *expect.Output != result.Output {
		errs = append(errs, &AssertionError{
			Field:    "output",
			Expected: fmt.Sprintf("%q", *expect.Output),
			Actual:   fmt.Sprintf("%q", result.Output),
		})
	}

	indices := make([]int, 0, len(expect.Cells))
	for idx := range expect.Cells {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	for _, idx := range indices {
		want := expect.Cells[idx]
		got, ok := result.Cell(idx)
		switch {
		case !ok:
			errs = append(errs, &AssertionError{
				Field:    fmt.Sprintf("cells[%d]", idx),
				Expected: fmt.Sprintf("%d", want),
				Actual:   "tape not available (program did not run)",
			})
		case int(got) != want:
			errs = append(errs, &AssertionError{
				Field:    fmt.Sprintf("cells[%d]", idx),
				Expected: fmt.Sprintf("%d", want),
				Actual:   fmt.Sprintf("%d", got),
			})
		}
	}

	if expect.Cursor != nil && *expect.Cursor != result.Cursor {
		errs = append(errs, &AssertionError{
			Field:    "cursor",
			Expected: fmt.Sprintf("%d", *expect.Cursor),
			Actual:   fmt.Sprintf("%d", result.Cursor),
		})
	}

	return errs
}

func assertError(result *Result, want string) error {
	if want == result.ErrorCode {
		return nil
	}

	expected := want
	if expected == "" {
		expected = "success"
	}
	actual := "success"
	if result.ErrorCode != "" {
		actual = fmt.Sprintf("%s (%s)", result.ErrorCode, result.ErrorMessage)
	}
	return &AssertionError{Field: "error", Expected: expected, Actual: actual}
}
