// internal/cliutil/cliutil.go
package cliutil

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"seqannot/internal/store"
)

// ErrAborted is returned when the user declines to overwrite outputs.
var ErrAborted = errors.New("aborted")

// OverwritePrompt is shown before existing outputs are replaced.
const OverwritePrompt = "Overwrite existing output file(s)? [No/yes]: "

func hasGlobMeta(s string) bool { return strings.ContainsAny(s, "*?[") }

// ExpandInputs resolves each argument to files. An argument naming an
// existing file is used as is; anything else is expanded as a glob.
func ExpandInputs(ctx context.Context, st *store.Store, args []string) ([]string, error) {
	var out []string
	for _, a := range args {
		ok, err := st.Exists(ctx, a)
		if err == nil && ok {
			if err := notDir(ctx, st, a); err != nil {
				return nil, err
			}
			out = append(out, a)
			continue
		}
		if !hasGlobMeta(a) {
			return nil, fmt.Errorf("%w: no input matched %q", store.ErrIO, a)
		}
		m, err := filepath.Glob(a)
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %v", a, err)
		}
		if len(m) == 0 {
			return nil, fmt.Errorf("%w: no input matched %q", store.ErrIO, a)
		}
		for _, p := range m {
			if err := notDir(ctx, st, p); err != nil {
				return nil, err
			}
		}
		out = append(out, m...)
	}
	return out, nil
}

func notDir(ctx context.Context, st *store.Store, p string) error {
	dir, err := st.IsDir(ctx, p)
	if err != nil {
		return err
	}
	if dir {
		return fmt.Errorf("%w: %s is a directory", store.ErrIO, p)
	}
	return nil
}

// base is the last path element of a local path or URL.
func base(p string) string {
	if strings.Contains(p, "://") {
		return path.Base(p)
	}
	return filepath.Base(p)
}

// OutputPaths maps every input to <dir>/<basename>. Two inputs sharing a
// basename would overwrite each other and are rejected.
func OutputPaths(dir string, inputs []string) ([]string, error) {
	seen := map[string]string{}
	out := make([]string, len(inputs))
	for i, in := range inputs {
		b := base(in)
		if prev, ok := seen[b]; ok {
			return nil, fmt.Errorf("%s and %s would both be written to %s", prev, in, b)
		}
		seen[b] = in
		if strings.Contains(dir, "://") {
			out[i] = strings.TrimSuffix(dir, "/") + "/" + b
		} else {
			out[i] = filepath.Join(dir, b)
		}
	}
	return out, nil
}

// Existing returns the paths that are already present.
func Existing(ctx context.Context, st *store.Store, paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		ok, err := st.Exists(ctx, p)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// ConfirmOverwrite asks once on out and reads the answer from in. Only
// yes/y proceeds; an empty answer, no or n returns ErrAborted.
func ConfirmOverwrite(in io.Reader, out io.Writer) error {
	_, _ = io.WriteString(out, OverwritePrompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	answer := strings.TrimSpace(line)
	switch strings.ToLower(answer) {
	case "yes", "y":
		return nil
	case "", "no", "n":
		return ErrAborted
	}
	return fmt.Errorf("%w: %s is not an appropriate answer.", ErrAborted, answer)
}
