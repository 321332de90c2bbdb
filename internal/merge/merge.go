// internal/merge/merge.go
package merge

import (
	"errors"
	"fmt"
	"strings"

	"seqannot/internal/annot"
	"seqannot/internal/seqfile"
)

// ErrUnknownQualifier is returned for qualifier names the table cannot supply.
var ErrUnknownQualifier = errors.New("unknown qualifier")

// AllowedQualifiers are the feature qualifiers backed by a table column.
var AllowedQualifiers = []string{"note", "product", "gene", "function"}

// DefaultQualifiers is the default --qualifiers value.
const DefaultQualifiers = "note,product,gene"

// ParseQualifiers splits a comma-separated list and checks every name
// against AllowedQualifiers. Repeated names are kept once.
func ParseQualifiers(csv string) ([]string, error) {
	var out []string
	seen := map[string]bool{}
	for _, raw := range strings.Split(csv, ",") {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if !allowed(name) {
			return nil, fmt.Errorf("%w %q (allowed: %s)", ErrUnknownQualifier, name, strings.Join(AllowedQualifiers, ", "))
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty qualifier list", ErrUnknownQualifier)
	}
	return out, nil
}

func allowed(name string) bool {
	for _, a := range AllowedQualifiers {
		if a == name {
			return true
		}
	}
	return false
}

// Options selects which features are updated and how.
type Options struct {
	FeatureType  string
	IDQualifier  string
	Wanted       []string
	KeepPrevious bool
}

// Stats summarises one Merge call.
type Stats struct {
	Features int // features of the requested type
	Matched  int // of those, features whose id is in the table
	Written  int // qualifier values set or appended
}

func (s *Stats) Add(o Stats) {
	s.Features += o.Features
	s.Matched += o.Matched
	s.Written += o.Written
}

// Merge copies table annotations onto matching features in place and marks
// the used table records as copied. Only the first value of the id
// qualifier is looked up.
func Merge(records []*seqfile.Record, table *annot.Table, opt Options) Stats {
	var st Stats
	for _, rec := range records {
		for _, f := range rec.Features {
			if f.Type != opt.FeatureType {
				continue
			}
			st.Features++
			id, ok := f.Qualifiers.First(opt.IDQualifier)
			if !ok {
				continue
			}
			ann, ok := table.Get(id)
			if !ok {
				continue
			}
			ann.Copied = true
			st.Matched++
			st.Written += apply(f, ann, opt)
		}
	}
	return st
}

func apply(f *seqfile.Feature, ann *annot.Record, opt Options) int {
	n := 0
	for _, q := range opt.Wanted {
		v := ann.Field(q)
		if v == "" {
			continue
		}
		if opt.KeepPrevious {
			f.Qualifiers.Append(q, v)
		} else {
			f.Qualifiers.Set(q, v)
		}
		n++
	}
	return n
}
