package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/bfi/internal/ir"
	"github.com/roach88/bfi/internal/parser"
	"github.com/roach88/bfi/internal/source"
)

// FmtOptions holds flags for the fmt command.
type FmtOptions struct {
	*RootOptions
	Strict   bool
	Encoding string
}

// FmtResult is the JSON payload of the fmt command.
type FmtResult struct {
	File      string     `json:"file"`
	IRVersion string     `json:"ir_version"`
	Canonical string     `json:"canonical"`
	Hash      string     `json:"hash"`
	Stats     ir.Stats   `json:"stats"`
	Program   ir.Program `json:"program"`
}

// NewFmtCommand creates the fmt command.
func NewFmtCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FmtOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Print a program with comments removed",
		Long: `Parse a program and print its canonical form: the command characters
only, with all comments dropped.

With --format json the instruction tree is printed together with its
statistics and content hash.

Examples:
  bfi fmt hello.bf
  bfi fmt hello.bf --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "treat an unmatched ] as an error")
	cmd.Flags().StringVar(&opts.Encoding, "encoding", source.DefaultEncoding, "source file encoding")

	return cmd
}

func runFmt(opts *FmtOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}

	if !source.ValidEncoding(opts.Encoding) {
		err := source.NewUnknownEncodingError(opts.Encoding)
		if opts.Format == "json" {
			_ = formatter.Error(ErrorCode(err), err.Error(), map[string]string{"encoding": opts.Encoding})
		}
		return WrapExitError(ExitCommandError, "invalid --encoding flag", err)
	}

	text, err := source.Load(path, opts.Encoding)
	if err != nil {
		if opts.Format == "json" {
			_ = formatter.Error(ErrorCode(err), err.Error(), map[string]string{"file": path})
		}
		return WrapExitError(ExitCommandError, "failed to load source", err)
	}

	prog, err := parseSource(text, path, opts.Strict, opts.RootOptions)
	if err != nil {
		if opts.Format == "json" {
			var details interface{}
			var pe *parser.ParseError
			if errors.As(err, &pe) {
				details = pe.Pos
			}
			_ = formatter.Error(ErrorCode(err), err.Error(), details)
		}
		return WrapExitError(ExitCommandError, "failed to parse source", err)
	}

	if opts.Format == "json" {
		return formatter.Success(FmtResult{
			File:      path,
			IRVersion: ir.IRVersion,
			Canonical: prog.String(),
			Hash:      ir.ProgramHash(prog),
			Stats:     prog.Stats(),
			Program:   prog,
		})
	}

	fmt.Fprintln(cmd.OutOrStdout(), prog.String())
	return nil
}
