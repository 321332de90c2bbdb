// internal/report/report.go
package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"seqannot/internal/annot"
	"seqannot/internal/cmdutil"
	"seqannot/internal/store"
)

// Unused returns the ids of records that no feature matched, in load order.
func Unused(t *annot.Table) []string {
	var ids []string
	for _, r := range t.Records() {
		if !r.Copied {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// Warn prints one warning per unused id.
func Warn(w io.Writer, ids []string, quiet bool) {
	for _, id := range ids {
		cmdutil.Warnf(w, quiet, "annotation %s was not copied to any feature", id)
	}
}

// Entry is one unused annotation in the YAML report.
type Entry struct {
	ID      string `yaml:"id"`
	Product string `yaml:"product,omitempty"`
	Gene    string `yaml:"gene,omitempty"`
	Status  int    `yaml:"status"`
}

// Document is the YAML report layout.
type Document struct {
	Generated   time.Time `yaml:"generated"`
	Annotations int       `yaml:"annotations"`
	Copied      int       `yaml:"copied"`
	Unused      []Entry   `yaml:"unused"`
}

// Build assembles the report for ids.
func Build(t *annot.Table, ids []string, now time.Time) Document {
	doc := Document{Generated: now.UTC(), Annotations: t.Len(), Copied: t.Len() - len(ids)}
	for _, id := range ids {
		r, ok := t.Get(id)
		if !ok {
			continue
		}
		doc.Unused = append(doc.Unused, Entry{ID: r.ID, Product: r.Product, Gene: r.Gene, Status: r.Status})
	}
	return doc
}

// WriteYAML stores the report at path.
func WriteYAML(ctx context.Context, st *store.Store, path string, doc Document) error {
	w, err := st.Create(ctx, path)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("%w: %s: %v", store.ErrIO, path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w: %s: %v", store.ErrIO, path, err)
	}
	return w.Close()
}
