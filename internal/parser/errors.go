package parser

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes parse errors and warnings.
type ErrorCode string

const (
	// ErrCodeUnmatchedOpen indicates input ended inside a loop.
	ErrCodeUnmatchedOpen ErrorCode = "UNMATCHED_OPEN"

	// ErrCodeUnmatchedClose indicates a "]" with no opener.
	ErrCodeUnmatchedClose ErrorCode = "UNMATCHED_CLOSE"
)

// Pos is a location in the source. Line and Column are 1-based and Column
// counts characters, not bytes. Offset is the 0-based byte offset.
type Pos struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

// IsValid reports whether the position was set.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ParseError is a fatal structural problem in the source.
type ParseError struct {
	Code     ErrorCode
	Message  string
	Pos      Pos
	Filename string
}

func (e *ParseError) Error() string {
	switch {
	case e.Filename != "" && e.Pos.IsValid():
		return fmt.Sprintf("%s:%s: %s: %s", e.Filename, e.Pos, e.Code, e.Message)
	case e.Pos.IsValid():
		return fmt.Sprintf("%s: %s: %s", e.Pos, e.Code, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// Warning is a non-fatal problem the parser recovered from.
type Warning struct {
	Code    ErrorCode
	Message string
	Pos     Pos
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s: %s", w.Pos, w.Code, w.Message)
}

// IsParseError returns true if err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// CodeOf returns the ErrorCode of a wrapped *ParseError, or "" if err is not one.
func CodeOf(err error) ErrorCode {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}
