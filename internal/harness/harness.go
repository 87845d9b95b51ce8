package harness

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/bfi/internal/engine"
	"github.com/roach88/bfi/internal/ir"
	"github.com/roach88/bfi/internal/parser"
	"github.com/roach88/bfi/internal/source"
)

// DefaultMaxSteps bounds scenarios that do not set max_steps, so a
// non-terminating program fails the scenario instead of hanging the suite.
const DefaultMaxSteps int64 = 10_000_000

// Result is the outcome of a test scenario execution.
type Result struct {
	// Name is the scenario name.
	Name string `json:"name"`

	// Pass indicates overall test success.
	// True if all expectations match.
	Pass bool `json:"pass"`

	// Output is everything the program wrote.
	Output string `json:"output"`

	// ErrorCode is the parse or runtime error code, empty on success.
	ErrorCode string `json:"error_code,omitempty"`

	// ErrorMessage is the full error text, empty on success.
	ErrorMessage string `json:"error_message,omitempty"`

	// Warnings holds parser warnings, e.g. an unmatched "]".
	Warnings []string `json:"warnings,omitempty"`

	// ProgramHash identifies the parsed program. Empty if parsing failed.
	ProgramHash string `json:"program_hash,omitempty"`

	// Stats describes the run. Zero if parsing failed.
	Stats engine.Stats `json:"stats"`

	// Cursor is the final cursor.
	Cursor uint `json:"cursor"`

	// Errors contains expectation failures.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// tape is a snapshot of the final tape; nil if the program never ran.
	tape []byte
}

// NewResult creates a new passing result.
func NewResult(name string) *Result {
	return &Result{
		Name:   name,
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Cell returns the final value of tape cell i and whether the tape is
// available.
func (r *Result) Cell(i int) (byte, bool) {
	if r.tape == nil || i < 0 || i >= len(r.tape) {
		return 0, false
	}
	return r.tape[i], true
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs on a fresh machine with in-memory I/O and a step quota.
// Logs are discarded.
//
// The returned error is reserved for problems with the scenario itself (an
// unreadable source_file). Parse and runtime errors are outcomes and are
// recorded in the Result.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// RunWithLogger is Run with scenario and engine logs sent to logger.
func RunWithLogger(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	text := scenario.Source
	if scenario.SourceFile != "" {
		loaded, err := source.Load(scenario.SourceFile, source.DefaultEncoding)
		if err != nil {
			return nil, fmt.Errorf("load source: %w", err)
		}
		text = loaded
	}

	result := NewResult(scenario.Name)

	var opts []parser.Option
	if scenario.Strict {
		opts = append(opts, parser.Strict())
	}
	if scenario.SourceFile != "" {
		opts = append(opts, parser.WithFilename(scenario.SourceFile))
	}

	prog, warnings, err := parser.ParseWithWarnings(text, opts...)
	for _, w := range warnings {
		result.Warnings = append(result.Warnings, w.String())
	}
	if err != nil {
		result.ErrorCode = string(parser.CodeOf(err))
		result.ErrorMessage = err.Error()
		logger.Debug("scenario parse failed", "scenario", scenario.Name, "error", err)
		evaluateExpect(result, scenario.Expect)
		return result, nil
	}
	result.ProgramHash = ir.ProgramHash(prog)

	maxSteps := scenario.MaxSteps
	if maxSteps == 0 {
		maxSteps = DefaultMaxSteps
	}

	var out bytes.Buffer
	m := engine.New(
		engine.WithInput(strings.NewReader(scenario.Input)),
		engine.WithOutput(&out),
		engine.WithMaxSteps(maxSteps),
		engine.WithLogger(logger),
	)
	stats, runErr := m.Run(prog)

	result.Output = out.String()
	result.Stats = stats
	result.Cursor = m.Cursor()
	result.tape = m.Tape()

	if runErr != nil {
		result.ErrorCode = engine.Code(runErr)
		result.ErrorMessage = runErr.Error()
		var re *engine.RuntimeError
		if !errors.As(runErr, &re) && !engine.IsStepsExceededError(runErr) {
			return nil, fmt.Errorf("run scenario %s: %w", scenario.Name, runErr)
		}
	}

	logger.Debug("scenario finished",
		"scenario", scenario.Name,
		"steps", stats.Steps,
		"error_code", result.ErrorCode,
	)

	evaluateExpect(result, scenario.Expect)
	return result, nil
}
