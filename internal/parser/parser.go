package parser

import (
	"fmt"

	"github.com/roach88/bfi/internal/ir"
)

// Option configures a parse.
type Option func(*config)

type config struct {
	strict   bool
	filename string
}

// Strict turns an unmatched "]" into a *ParseError instead of a Warning.
func Strict() Option {
	return func(c *config) {
		c.strict = true
	}
}

// WithFilename sets the name reported in *ParseError messages.
func WithFilename(name string) Option {
	return func(c *config) {
		c.filename = name
	}
}

// Parse converts source into a Program. Warnings are discarded; use
// ParseWithWarnings to observe them.
func Parse(source string, opts ...Option) (ir.Program, error) {
	prog, _, err := ParseWithWarnings(source, opts...)
	return prog, err
}

// frame is one open loop during the scan.
type frame struct {
	body []ir.Instruction
	open Pos
}

// ParseWithWarnings converts source into a Program and reports recovered
// problems.
//
// The scan keeps an explicit stack of open loops instead of recursing, so
// nesting depth is bounded by memory rather than goroutine stack. The result
// is identical to a recursive descent: "[" opens a block, the matching "]"
// closes it and is consumed, and a "]" with no open block ends the top-level
// block.
func ParseWithWarnings(source string, opts ...Option) (ir.Program, []Warning, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	var warnings []Warning
	root := []ir.Instruction{}
	var stack []frame

	// current returns the body receiving instructions.
	current := func() *[]ir.Instruction {
		if len(stack) == 0 {
			return &root
		}
		return &stack[len(stack)-1].body
	}

	line, col := 1, 0
	for off, ch := range source {
		if ch == '\n' {
			line++
			col = 0
			continue
		}
		col++

		if op, ok := ir.LeafOp(ch); ok {
			body := current()
			*body = append(*body, ir.Leaf(op))
			continue
		}

		switch ch {
		case ir.CharLoopOpen:
			stack = append(stack, frame{
				body: []ir.Instruction{},
				open: Pos{Offset: off, Line: line, Column: col},
			})
		case ir.CharLoopClose:
			pos := Pos{Offset: off, Line: line, Column: col}
			if len(stack) == 0 {
				if cfg.strict {
					return nil, warnings, &ParseError{
						Code:     ErrCodeUnmatchedClose,
						Message:  "closing bracket has no matching opening bracket",
						Pos:      pos,
						Filename: cfg.filename,
					}
				}
				warnings = append(warnings, Warning{
					Code:    ErrCodeUnmatchedClose,
					Message: "closing bracket has no matching opening bracket; ignoring the rest of the source",
					Pos:     pos,
				})
				return ir.Program(root), warnings, nil
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			parent := current()
			*parent = append(*parent, ir.NewLoop(top.body...))
		}
	}

	if len(stack) > 0 {
		open := stack[len(stack)-1].open
		msg := "opening bracket has no matching closing bracket"
		if len(stack) > 1 {
			msg = fmt.Sprintf("%s (%d blocks left open)", msg, len(stack))
		}
		return nil, warnings, &ParseError{
			Code:     ErrCodeUnmatchedOpen,
			Message:  msg,
			Pos:      open,
			Filename: cfg.filename,
		}
	}

	return ir.Program(root), warnings, nil
}
