// Package appshell is the process boundary: signals, argv and exit codes.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Runner is the signature of a command entry point.
type Runner func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

// Main runs r with the process arguments and exits with its code.
func Main(r Runner) {
	os.Exit(run(r, os.Args[1:], os.Stdout, os.Stderr))
}

func run(r Runner, argv []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(argv) == 0 {
		argv = []string{"--help"}
	}
	code := r(ctx, argv, stdout, stderr)
	// Normalize cancellation exit code.
	if ctx.Err() != nil && code == 0 {
		code = 130
	}
	return code
}
