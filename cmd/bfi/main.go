// Command bfi runs programs for a tiny tape language.
package main

import (
	"fmt"
	"os"

	"github.com/tebeka/atexit"

	"github.com/roach88/bfi/internal/cli"
)

func main() {
	// Program output may be redirected to a file; make it durable before exit.
	atexit.Register(func() { _ = os.Stdout.Sync() })

	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		atexit.Exit(cli.GetExitCode(err))
	}
	atexit.Exit(cli.ExitSuccess)
}
