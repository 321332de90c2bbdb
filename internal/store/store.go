// internal/store/store.go
package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/pgzip"
	"github.com/viant/afs"
)

// ErrIO marks failures to open, read or write a file.
var ErrIO = errors.New("i/o error")

// Store reads and writes whole files through afs. Paths without a scheme are
// local files; a ".gz" suffix switches on gzip (de)compression.
type Store struct {
	fs afs.Service
}

func New() *Store { return &Store{fs: afs.New()} }

// URL turns a local path into a file:// URL and leaves other URLs untouched.
func URL(path string) string {
	if strings.Contains(path, "://") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return "file://" + filepath.ToSlash(abs)
}

func IsGzip(path string) bool { return strings.HasSuffix(path, ".gz") }

// Open returns the content of path, decompressed when it ends in ".gz".
func (s *Store) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	data, err := s.fs.DownloadWithURL(ctx, URL(path))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open/read %s: %v", ErrIO, path, err)
	}
	br := bytes.NewReader(data)
	if !IsGzip(path) {
		return io.NopCloser(br), nil
	}
	gr, err := pgzip.NewReader(br)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrIO, path, err)
	}
	return gr, nil
}

// Exists reports whether path already exists.
func (s *Store) Exists(ctx context.Context, path string) (bool, error) {
	ok, err := s.fs.Exists(ctx, URL(path))
	if err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrIO, path, err)
	}
	return ok, nil
}

// IsDir reports whether path names a directory.
func (s *Store) IsDir(ctx context.Context, path string) (bool, error) {
	obj, err := s.fs.Object(ctx, URL(path))
	if err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrIO, path, err)
	}
	return obj.IsDir(), nil
}

// Create returns a writer whose content is stored at path on Close.
func (s *Store) Create(ctx context.Context, path string) (*Writer, error) {
	u := URL(path)
	if strings.HasPrefix(u, "file://") {
		dir := filepath.Dir(strings.TrimPrefix(u, "file://"))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrIO, path, err)
		}
	}
	w := &Writer{ctx: ctx, fs: s.fs, path: path, url: u}
	w.dst = &w.buf
	if IsGzip(path) {
		w.gz = pgzip.NewWriter(&w.buf)
		w.dst = w.gz
	}
	return w, nil
}

// Writer buffers a file in memory until Close uploads it.
type Writer struct {
	ctx    context.Context
	fs     afs.Service
	path   string
	url    string
	buf    bytes.Buffer
	gz     *pgzip.Writer
	dst    io.Writer
	closed bool
}

func (w *Writer) Write(p []byte) (int, error) { return w.dst.Write(p) }

// Discard drops the buffered content; nothing is stored and a later Close
// is a no-op.
func (w *Writer) Discard() {
	if w.closed {
		return
	}
	w.closed = true
	if w.gz != nil {
		_ = w.gz.Close()
	}
	w.buf.Reset()
}

func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if w.gz != nil {
		if err := w.gz.Close(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrIO, w.path, err)
		}
	}
	if err := w.fs.Upload(w.ctx, w.url, 0o644, bytes.NewReader(w.buf.Bytes())); err != nil {
		return fmt.Errorf("%w: failed to write %s: %v", ErrIO, w.path, err)
	}
	return nil
}
