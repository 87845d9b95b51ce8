package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// Logger returns the command logger configured from --verbose, or
// slog.Default() when a command runs without the root command.
func (o *RootOptions) Logger() *slog.Logger {
	if o.logger == nil {
		return slog.Default()
	}
	return o.logger
}

// NewRootCommand creates the root command for the bfi CLI.
//
// The root command itself runs a program: "bfi <file>". Any other number of
// positional arguments prints usage and succeeds.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	runOpts := &RunOptions{RootOptions: opts}

	cmd := &cobra.Command{
		Use:   "bfi <file>",
		Short: "bfi - a tape-language interpreter",
		Long: `bfi runs programs for a tiny tape language.

A program is made of eight commands; every other character is a comment.

  >  move the cursor to the next cell     <  move to the previous cell
  +  increment the current cell           -  decrement the current cell
  .  write the current cell to stdout     ,  read one byte from stdin
  [  skip past the matching ] if zero     ]  loop back while non-zero

The tape has 30000 cells of one byte each, all zero at start.

Exit codes:
  0 - Program finished (or usage was printed)
  1 - Runtime error (tape bounds, step quota, I/O)
  2 - Source could not be read or parsed

Examples:
  bfi hello.bf
  bfi --max-steps 1000000 loop.bf
  bfi --db runs.db hello.bf
  echo hi | bfi --output-charset latin1 echo.bf`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			opts.logger = newLogger(cmd.ErrOrStderr(), opts.Verbose)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return cmd.Usage()
			}
			return runFile(runOpts, args[0], cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	addRunFlags(cmd, runOpts)

	// Add subcommands
	cmd.AddCommand(NewFmtCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
