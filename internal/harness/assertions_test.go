package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckExpect_AllMatch(t *testing.T) {
	r := &Result{Output: "hi", Cursor: 2, tape: []byte{1, 0, 9}}

	errs := checkExpect(r, Expect{
		Output: strPtr("hi"),
		Cells:  map[int]int{0: 1, 2: 9},
		Cursor: uintPtr(2),
	})
	assert.Empty(t, errs)
}

func TestCheckExpect_ReportsEveryMismatchInOrder(t *testing.T) {
	r := &Result{Output: "hi", Cursor: 0, tape: []byte{1, 0, 9}}

	errs := checkExpect(r, Expect{
		Output: strPtr("ho"),
		Cells:  map[int]int{2: 8, 0: 2},
		Cursor: uintPtr(1),
	})
	require.Len(t, errs, 4)

	fields := make([]string, len(errs))
	for i, err := range errs {
		var ae *AssertionError
		require.ErrorAs(t, err, &ae)
		fields[i] = ae.Field
	}
	assert.Equal(t, []string{"output", "cells[0]", "cells[2]", "cursor"}, fields)
}

func TestCheckExpect_ErrorCodeMismatch(t *testing.T) {
	r := &Result{ErrorCode: "IO_ERROR", ErrorMessage: "IO_ERROR: boom"}

	errs := checkExpect(r, Expect{Error: "TAPE_BOUNDS"})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Expected: TAPE_BOUNDS")
	assert.Contains(t, errs[0].Error(), "Actual: IO_ERROR (IO_ERROR: boom)")
}

func TestAssertionError_Format(t *testing.T) {
	err := &AssertionError{Field: "cursor", Expected: "1", Actual: "0"}
	assert.Equal(t, "expectation failed: cursor\n  Expected: 1\n  Actual: 0", err.Error())
}

func TestEvaluateExpect_MarksFailure(t *testing.T) {
	r := NewResult("x")
	r.Output = "a"

	evaluateExpect(r, Expect{Output: strPtr("b")})
	assert.False(t, r.Pass)
	assert.Len(t, r.Errors, 1)
}
