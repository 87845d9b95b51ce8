package cli

import (
	"io"
	"log/slog"
)

// newLogger returns a text logger writing to w. Verbose enables Debug;
// otherwise only warnings and errors are shown so diagnostics never mix
// with program output on stdout.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}
