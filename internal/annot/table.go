// internal/annot/table.go
package annot

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"seqannot/internal/store"
)

var (
	ErrMalformedInput = errors.New("malformed annotation input")
	ErrDuplicateKey   = errors.New("duplicated gene id")
)

// Column layout of the annotation table.
const (
	ColID       = 0
	ColProduct  = 1
	ColNote     = 2
	ColFunction = 3
	ColGene     = 7
	ColStatus   = 10
	MinColumns  = ColStatus + 1
)

// DuplicatePolicy decides what happens when an id appears twice.
type DuplicatePolicy int

const (
	DuplicateFatal DuplicatePolicy = iota
	DuplicateWarn
)

func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fatal":
		return DuplicateFatal, nil
	case "warn":
		return DuplicateWarn, nil
	}
	return DuplicateFatal, fmt.Errorf("invalid duplicate policy %q (want fatal | warn)", s)
}

// Options controls how a table is loaded.
type Options struct {
	// MinCopyStatus is the lowest status allowed to carry a gene name.
	MinCopyStatus int
	Duplicates    DuplicatePolicy
	// Warn receives non-fatal diagnostics; nil drops them.
	Warn func(format string, a ...any)
}

// Record is one row of the annotation table.
type Record struct {
	ID       string
	Product  string
	Note     string
	Function string
	Gene     string
	Status   int
	Copied   bool
}

// Field returns the value this record holds for a sequence-file qualifier.
func (r *Record) Field(qualifier string) string {
	switch qualifier {
	case "product":
		return r.Product
	case "note":
		return r.Note
	case "function":
		return r.Function
	case "gene":
		return r.Gene
	}
	return ""
}

// Table maps gene ids to records and remembers load order.
type Table struct {
	byID  map[string]*Record
	order []string
}

func NewTable() *Table { return &Table{byID: map[string]*Record{}} }

func (t *Table) Len() int { return len(t.order) }

func (t *Table) Get(id string) (*Record, bool) {
	r, ok := t.byID[id]
	return r, ok
}

// IDs returns ids in load order.
func (t *Table) IDs() []string { return append([]string(nil), t.order...) }

// Records returns records in load order.
func (t *Table) Records() []*Record {
	out := make([]*Record, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.byID[id])
	}
	return out
}

func (t *Table) put(r *Record) {
	if _, ok := t.byID[r.ID]; !ok {
		t.order = append(t.order, r.ID)
	}
	t.byID[r.ID] = r
}

// Load reads the annotation table at path (local file or afs URL, ".gz" aware).
func Load(ctx context.Context, st *store.Store, path string, opts Options) (*Table, error) {
	rc, err := st.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return Read(rc, path, opts)
}

// Read parses an annotation table. name is only used in error messages.
func Read(r io.Reader, name string, opts Options) (*Table, error) {
	t := NewTable()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	ln := 0
	for sc.Scan() {
		ln++
		if ln == 1 {
			continue // header
		}
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := parseRow(line, opts.MinCopyStatus)
		if err != nil {
			return nil, fmt.Errorf("%s:%d %w", name, ln, err)
		}
		if _, dup := t.byID[rec.ID]; dup {
			if opts.Duplicates == DuplicateFatal {
				return nil, fmt.Errorf("%s:%d %w: %s", name, ln, ErrDuplicateKey, rec.ID)
			}
			if opts.Warn != nil {
				opts.Warn("%s:%d the gene id %s seems to be duplicated; keeping the last row", name, ln, rec.ID)
			}
		}
		t.put(rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", store.ErrIO, name, err)
	}
	return t, nil
}

func parseRow(line string, minCopyStatus int) (*Record, error) {
	f := strings.Split(line, "\t")
	if len(f) < MinColumns {
		return nil, fmt.Errorf("%w: %d columns, want at least %d", ErrMalformedInput, len(f), MinColumns)
	}
	if f[ColID] == "" {
		return nil, fmt.Errorf("%w: empty gene id", ErrMalformedInput)
	}
	status, err := strconv.Atoi(strings.TrimSpace(f[ColStatus]))
	if err != nil {
		return nil, fmt.Errorf("%w: bad status %q", ErrMalformedInput, f[ColStatus])
	}
	rec := &Record{
		ID:       f[ColID],
		Product:  f[ColProduct],
		Note:     f[ColNote],
		Function: f[ColFunction],
		Gene:     f[ColGene],
		Status:   status,
	}
	if status < minCopyStatus {
		rec.Gene = ""
	}
	return rec, nil
}
