package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/roach88/bfi/internal/engine"
	"github.com/roach88/bfi/internal/ir"
	"github.com/roach88/bfi/internal/parser"
	"github.com/roach88/bfi/internal/source"
	"github.com/roach88/bfi/internal/store"
)

// Output charsets for --output-charset.
const (
	CharsetRaw    = "raw"    // cell bytes are written unchanged
	CharsetLatin1 = "latin1" // each cell is written as the UTF-8 encoding of U+0000..U+00FF
)

// Clock supplies the start time recorded in run history.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// RunOptions holds flags for running a program.
type RunOptions struct {
	*RootOptions
	Database      string
	Strict        bool
	MaxSteps      int64
	Encoding      string
	OutputCharset string

	// RunIDGenerator allows overriding run IDs (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDGenerator store.RunIDGenerator

	// Clock allows overriding the recorded start time (for testing).
	// If nil, defaults to the system clock.
	Clock Clock
}

// addRunFlags registers the flags that control a program run.
func addRunFlags(cmd *cobra.Command, opts *RunOptions) {
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in this SQLite database")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "treat an unmatched ] as an error")
	cmd.Flags().Int64Var(&opts.MaxSteps, "max-steps", 0, "abort after this many steps (0 = unlimited)")
	cmd.Flags().StringVar(&opts.Encoding, "encoding", source.DefaultEncoding, "source file encoding")
	cmd.Flags().StringVar(&opts.OutputCharset, "output-charset", CharsetRaw, "output charset (raw|latin1)")
}

// runFile loads, parses and executes the program at path using the
// command's stdin and stdout.
func runFile(opts *RunOptions, path string, cmd *cobra.Command) error {
	logger := opts.Logger()

	if opts.OutputCharset != CharsetRaw && opts.OutputCharset != CharsetLatin1 {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("invalid output charset %q: must be %s or %s", opts.OutputCharset, CharsetRaw, CharsetLatin1))
	}

	if !source.ValidEncoding(opts.Encoding) {
		return WrapExitError(ExitCommandError, "invalid --encoding flag", source.NewUnknownEncodingError(opts.Encoding))
	}

	text, err := source.Load(path, opts.Encoding)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load source", err)
	}

	prog, err := parseSource(text, path, opts.Strict, opts.RootOptions)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to parse source", err)
	}

	var st *store.Store
	if opts.Database != "" {
		st, err = store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				logger.Error("error closing database", "error", closeErr)
			}
		}()
	}

	var out io.Writer = cmd.OutOrStdout()
	var latin1 *transform.Writer
	if opts.OutputCharset == CharsetLatin1 {
		latin1 = transform.NewWriter(out, charmap.ISO8859_1.NewDecoder())
		out = latin1
	}

	clock := opts.Clock
	if clock == nil {
		clock = systemClock{}
	}
	startedAt := clock.Now()

	m := engine.New(
		engine.WithInput(cmd.InOrStdin()),
		engine.WithOutput(out),
		engine.WithMaxSteps(opts.MaxSteps),
		engine.WithLogger(logger),
	)
	stats, runErr := m.Run(prog)

	if latin1 != nil {
		if err := latin1.Close(); err != nil && runErr == nil {
			runErr = engine.NewIOError("output", m.Cursor(), stats.Steps, err)
		}
	}

	logger.Info("run finished",
		"file", path,
		"steps", stats.Steps,
		"input_bytes", stats.InputBytes,
		"output_bytes", stats.OutputBytes,
		"max_depth", stats.MaxDepth,
	)

	if st != nil {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if err := recordRun(ctx, st, opts, path, prog, startedAt, stats, runErr); err != nil {
			if runErr == nil {
				return WrapExitError(ExitFailure, "failed to record run", err)
			}
			logger.Error("failed to record run", "error", err)
		}
	}

	if runErr != nil {
		return WrapExitError(ExitFailure, "runtime error", runErr)
	}
	return nil
}

// parseSource parses text and logs any parser warnings.
func parseSource(text, path string, strict bool, opts *RootOptions) (ir.Program, error) {
	parseOpts := []parser.Option{parser.WithFilename(path)}
	if strict {
		parseOpts = append(parseOpts, parser.Strict())
	}

	prog, warnings, err := parser.ParseWithWarnings(text, parseOpts...)
	for _, w := range warnings {
		opts.Logger().Warn("parse warning",
			"file", path,
			"pos", w.Pos.String(),
			"code", string(w.Code),
			"message", w.Message,
		)
	}
	return prog, err
}

// recordRun writes one run history row.
func recordRun(ctx context.Context, st *store.Store, opts *RunOptions, path string, prog ir.Program,
	startedAt time.Time, stats engine.Stats, runErr error) error {
	gen := opts.RunIDGenerator
	if gen == nil {
		gen = store.UUIDv7Generator{}
	}

	run := store.Run{
		ID:            gen.Generate(),
		ProgramHash:   ir.ProgramHash(prog),
		SourcePath:    path,
		StartedAt:     startedAt.UTC().Format(time.RFC3339),
		Steps:         stats.Steps,
		InputBytes:    stats.InputBytes,
		OutputBytes:   stats.OutputBytes,
		Outcome:       store.OutcomeOK,
		EngineVersion: ir.EngineVersion,
	}
	if runErr != nil {
		run.Outcome = store.OutcomeError
		run.ErrorCode = engine.Code(runErr)
		run.ErrorMessage = runErr.Error()
	}

	seq, err := st.WriteRun(ctx, run)
	if err != nil {
		return err
	}
	opts.Logger().Debug("run recorded", "id", run.ID, "seq", seq, "db", opts.Database)
	return nil
}
