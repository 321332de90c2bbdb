// internal/writers/output.go
package writers

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"seqannot/internal/seqfile"
	"seqannot/internal/store"
)

// Stdout is the output target that means standard output.
const Stdout = "-"

type flushCloser struct {
	*bufio.Writer
}

func (f flushCloser) Close() error { return f.Flush() }

// Open returns the destination for target. Stdout is buffered and flushed on
// Close; every other target is stored through st.
func Open(ctx context.Context, st *store.Store, target string, stdout io.Writer) (io.WriteCloser, error) {
	if target == Stdout {
		return flushCloser{bufio.NewWriter(stdout)}, nil
	}
	return st.Create(ctx, target)
}

// Finish closes w when err is nil. On error a store file is discarded so no
// partial output reaches disk; stdout is flushed as far as it got.
func Finish(w io.WriteCloser, err error) error {
	if err == nil {
		return w.Close()
	}
	if d, ok := w.(interface{ Discard() }); ok {
		d.Discard()
		return err
	}
	_ = w.Close()
	return err
}

// WriteRecords stores recs at path in format f.
func WriteRecords(ctx context.Context, st *store.Store, path string, recs []*seqfile.Record, f seqfile.Format) (err error) {
	w, err := st.Create(ctx, path)
	if err != nil {
		return err
	}
	defer func() { err = Finish(w, err) }()
	if err := seqfile.Write(w, recs, f); err != nil {
		return fmt.Errorf("%w: %s: %v", store.ErrIO, path, err)
	}
	return nil
}

// ReadRecords parses every record of path in format f. A file without
// any record is malformed.
func ReadRecords(ctx context.Context, st *store.Store, path string, f seqfile.Format) ([]*seqfile.Record, error) {
	r, err := st.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	recs, err := seqfile.Read(r, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%s: %w: no %v records found", path, seqfile.ErrMalformedInput, f)
	}
	return recs, nil
}
