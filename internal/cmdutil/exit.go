// internal/cmdutil/exit.go
package cmdutil

import (
	"context"
	"errors"
	"io"

	"seqannot/internal/writers"
)

// Process exit codes shared by the tools.
const (
	ExitOK          = 0
	ExitHelp        = 1
	ExitError       = 2
	ExitInterrupted = 130
)

// Fail reports err on stderr and returns the exit code for it.
func Fail(ctx context.Context, stderr io.Writer, err error) int {
	switch {
	case err == nil:
		return ExitOK
	case ctx.Err() != nil || errors.Is(err, context.Canceled):
		Errorf(stderr, "interrupted")
		return ExitInterrupted
	case writers.IsBrokenPipe(err):
		return ExitOK
	}
	Errorf(stderr, "%v", err)
	return ExitError
}
