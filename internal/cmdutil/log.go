// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	warnLabel  = color.New(color.FgYellow, color.Bold)
	errorLabel = color.New(color.FgRed, color.Bold)
	infoLabel  = color.New(color.FgCyan)
)

// label colours s only when dst is a terminal.
func label(dst io.Writer, c *color.Color, s string) string {
	if f, ok := dst.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return c.Sprint(s)
	}
	return s
}

func logf(dst io.Writer, c *color.Color, prefix, format string, a ...any) {
	_, _ = fmt.Fprintf(dst, label(dst, c, prefix)+" "+format+"\n", a...)
}

func Warnf(dst io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	logf(dst, warnLabel, "WARN:", format, a...)
}

func Infof(dst io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	logf(dst, infoLabel, "INFO:", format, a...)
}

// Errorf is never silenced.
func Errorf(dst io.Writer, format string, a ...any) {
	logf(dst, errorLabel, "ERROR:", format, a...)
}
