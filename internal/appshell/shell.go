// internal/appshell/shell.go
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"seqannot/internal/cmdutil"
)

// Run is the signature shared by the tool entry points.
type Run func(ctx context.Context, argv []string, stdin io.Reader, stdout, stderr io.Writer) int

func Main(run Run) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	argv := os.Args[1:]
	if len(argv) == 0 {
		argv = []string{"--help"}
	}

	code := run(ctx, argv, os.Stdin, os.Stdout, os.Stderr)
	if ctx.Err() != nil && code == 0 {
		code = cmdutil.ExitInterrupted
	}

	stop()
	os.Exit(code)
}
