package engine

import (
	"bufio"
	"context"
	"io"
	"log/slog"

	"github.com/roach88/bfi/internal/ir"
)

// TapeSize is the fixed number of cells on the tape.
const TapeSize = 30000

// Stats describes one completed or aborted run.
type Stats struct {
	Steps       int64 `json:"steps"`
	InputBytes  int64 `json:"input_bytes"`
	OutputBytes int64 `json:"output_bytes"`
	MaxDepth    int   `json:"max_depth"` // deepest loop nesting actually entered
	InputEOF    bool  `json:"input_eof"` // an Input instruction hit end of input
}

// Machine is the evaluator state: the tape, the cursor and the I/O endpoints.
//
// INVARIANTS:
//   - tape and cursor are reset at the start of every Run
//   - the tape is only indexed after checking cursor < TapeSize
type Machine struct {
	tape   [TapeSize]byte
	cursor uint

	in     io.ByteReader
	out    *bufio.Writer
	logger *slog.Logger
	quota  *QuotaEnforcer
	stats  Stats
}

// Option allows configuration of machine parameters.
type Option func(*Machine)

// WithInput sets the byte source for Input instructions.
// Readers that are not already io.ByteReaders are wrapped in a bufio.Reader.
func WithInput(r io.Reader) Option {
	return func(m *Machine) {
		if br, ok := r.(io.ByteReader); ok {
			m.in = br
			return
		}
		m.in = bufio.NewReader(r)
	}
}

// WithOutput sets the sink for Output instructions.
func WithOutput(w io.Writer) Option {
	return func(m *Machine) {
		m.out = bufio.NewWriter(w)
	}
}

// WithMaxSteps sets the step quota per run.
//
// Default: 0 (unlimited).
// Use WithMaxSteps(1_000_000) in tests to turn a runaway loop into an error.
func WithMaxSteps(maxSteps int64) Option {
	return func(m *Machine) {
		m.quota = NewQuotaEnforcer(maxSteps)
	}
}

// WithLogger sets the logger used for run diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// emptyInput is an always-exhausted input.
type emptyInput struct{}

func (emptyInput) ReadByte() (byte, error) { return 0, io.EOF }

// New creates a Machine. Without options input is empty, output is
// discarded, there is no step limit and logs go to slog.Default().
func New(opts ...Option) *Machine {
	m := &Machine{
		in:     emptyInput{},
		out:    bufio.NewWriter(io.Discard),
		logger: slog.Default(),
		quota:  NewQuotaEnforcer(0),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Execute runs prog once on a fresh machine reading in and writing out.
func Execute(prog ir.Program, in io.Reader, out io.Writer, opts ...Option) error {
	opts = append([]Option{WithInput(in), WithOutput(out)}, opts...)
	_, err := New(opts...).Run(prog)
	return err
}

// frame is one active instruction sequence: the root program or a loop body.
type frame struct {
	body []ir.Instruction
	pc   int
}

// Run executes prog on a zeroed tape with the cursor at 0.
//
// Returns the run statistics together with the first fatal error, if any.
// Output produced before an error is still flushed.
func (m *Machine) Run(prog ir.Program) (Stats, error) {
	m.tape = [TapeSize]byte{}
	m.cursor = 0
	m.stats = Stats{}
	m.quota.Reset()

	if m.logger.Enabled(context.Background(), slog.LevelDebug) {
		st := prog.Stats()
		m.logger.Debug("run starting",
			"instructions", st.Instructions,
			"max_depth", st.MaxDepth,
			"max_steps", m.quota.MaxSteps())
	}

	err := m.exec(prog)
	if flushErr := m.out.Flush(); flushErr != nil && err == nil {
		err = NewIOError("output", m.cursor, m.stats.Steps, flushErr)
	}

	if err != nil {
		m.logger.Debug("run aborted", "steps", m.stats.Steps, "cursor", m.cursor, "error", err)
	} else {
		m.logger.Debug("run finished", "steps", m.stats.Steps, "output_bytes", m.stats.OutputBytes)
	}
	return m.stats, err
}

func (m *Machine) exec(prog ir.Program) error {
	stack := []frame{{body: prog}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if top.pc == len(top.body) {
			if len(stack) == 1 {
				return nil
			}
			// End of one full pass over a loop body: re-check the condition.
			if err := m.step(); err != nil {
				return err
			}
			idx, err := m.index()
			if err != nil {
				return err
			}
			if m.tape[idx] != 0 {
				top.pc = 0
				continue
			}
			stack = stack[:len(stack)-1]
			continue
		}

		in := top.body[top.pc]
		top.pc++
		if err := m.step(); err != nil {
			return err
		}

		switch in.Op {
		case ir.MoveNext:
			m.cursor++
		case ir.MovePrev:
			m.cursor--
		case ir.Increment:
			idx, err := m.index()
			if err != nil {
				return err
			}
			m.tape[idx]++
		case ir.Decrement:
			idx, err := m.index()
			if err != nil {
				return err
			}
			m.tape[idx]--
		case ir.Output:
			if err := m.output(); err != nil {
				return err
			}
		case ir.Input:
			if err := m.input(); err != nil {
				return err
			}
		case ir.Loop:
			idx, err := m.index()
			if err != nil {
				return err
			}
			if m.tape[idx] == 0 {
				continue
			}
			stack = append(stack, frame{body: in.Body})
			if depth := len(stack) - 1; depth > m.stats.MaxDepth {
				m.stats.MaxDepth = depth
			}
		}
	}
	return nil
}

// step counts one step against the quota.
func (m *Machine) step() error {
	if err := m.quota.Check(); err != nil {
		return err
	}
	m.stats.Steps = m.quota.Current()
	return nil
}

// index returns the cursor as a tape index, or a bounds error.
func (m *Machine) index() (int, error) {
	if m.cursor >= TapeSize {
		return 0, NewBoundsError(m.cursor, m.stats.Steps)
	}
	return int(m.cursor), nil
}

func (m *Machine) output() error {
	idx, err := m.index()
	if err != nil {
		return err
	}
	if err := m.out.WriteByte(m.tape[idx]); err != nil {
		return NewIOError("output", m.cursor, m.stats.Steps, err)
	}
	m.stats.OutputBytes++
	return nil
}

func (m *Machine) input() error {
	idx, err := m.index()
	if err != nil {
		return err
	}
	if err := m.out.Flush(); err != nil {
		return NewIOError("output", m.cursor, m.stats.Steps, err)
	}
	b, err := m.in.ReadByte()
	switch {
	case err == io.EOF:
		m.tape[idx] = 0
		m.stats.InputEOF = true
		return nil
	case err != nil:
		return NewIOError("input", m.cursor, m.stats.Steps, err)
	}
	m.tape[idx] = b
	m.stats.InputBytes++
	return nil
}

// Cursor returns the cursor after the last run.
func (m *Machine) Cursor() uint {
	return m.cursor
}

// Cell returns the value of cell i after the last run.
// Panics if i is outside [0, TapeSize), like any slice index.
func (m *Machine) Cell(i int) byte {
	return m.tape[i]
}

// Tape returns a copy of the tape after the last run.
func (m *Machine) Tape() []byte {
	tape := make([]byte, TapeSize)
	copy(tape, m.tape[:])
	return tape
}

// Stats returns the statistics of the last run.
func (m *Machine) Stats() Stats {
	return m.stats
}
