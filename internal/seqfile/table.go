// internal/seqfile/table.go
package seqfile

import (
	"bufio"
	"strings"
)

// Both formats lay the feature table out on the same grid: the key starts in
// column 6, locations and qualifiers in column 22.
const (
	keyCol   = 5
	valueCol = 21
	textWide = 58
)

// unquoted lists qualifiers whose values are written without quotes.
var unquoted = map[string]bool{
	"anticodon":        true,
	"citation":         true,
	"codon_start":      true,
	"compare":          true,
	"direction":        true,
	"estimated_length": true,
	"mod_base":         true,
	"number":           true,
	"rpt_type":         true,
	"rpt_unit_range":   true,
	"tag_peptide":      true,
	"transl_except":    true,
	"transl_table":     true,
}

// tableParser accumulates feature-table lines into features.
type tableParser struct {
	feats []*Feature
	cur   *Feature
	inLoc bool
	loc   strings.Builder
	qual  string
	val   strings.Builder
	open  bool // inside a qualifier
}

// key starts a new feature.
func (p *tableParser) key(key, text string) {
	p.flush()
	p.cur = NewFeature(key, "")
	p.inLoc = true
	p.loc.Reset()
	p.line(text)
}

// line consumes the value column of a feature-table line.
func (p *tableParser) line(text string) {
	if p.cur == nil {
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if p.inLoc {
		if !strings.HasPrefix(text, "/") {
			p.loc.WriteString(text)
			return
		}
		p.inLoc = false
		p.cur.Location = p.loc.String()
	}
	if p.open && !p.quoteClosed() {
		if p.qual != "translation" {
			p.val.WriteByte(' ')
		}
		p.val.WriteString(text)
		return
	}
	if strings.HasPrefix(text, "/") {
		p.flushQualifier()
		name, value, hasValue := strings.Cut(text[1:], "=")
		p.qual = name
		p.open = true
		p.val.Reset()
		if hasValue {
			p.val.WriteString(value)
		}
		return
	}
	if p.open {
		// Continuation of an unquoted value.
		p.val.WriteByte(' ')
		p.val.WriteString(text)
	}
}

func (p *tableParser) quoteClosed() bool {
	v := p.val.String()
	if !strings.HasPrefix(v, `"`) {
		return true
	}
	return len(v) >= 2 && strings.Count(v, `"`)%2 == 0
}

func (p *tableParser) flushQualifier() {
	if !p.open {
		return
	}
	v := p.val.String()
	if strings.HasPrefix(v, `"`) {
		v = strings.TrimPrefix(v, `"`)
		v = strings.TrimSuffix(v, `"`)
		v = strings.ReplaceAll(v, `""`, `"`)
	}
	p.cur.Qualifiers.Append(p.qual, v)
	p.open = false
	p.qual = ""
	p.val.Reset()
}

func (p *tableParser) flush() {
	if p.cur == nil {
		return
	}
	if p.inLoc {
		p.cur.Location = p.loc.String()
		p.inLoc = false
	}
	p.flushQualifier()
	p.feats = append(p.feats, p.cur)
	p.cur = nil
}

// features returns the parsed features and resets the parser.
func (p *tableParser) features() []*Feature {
	p.flush()
	out := p.feats
	p.feats = nil
	return out
}

// writeFeature writes one feature using prefix for columns 1-5.
func writeFeature(w *bufio.Writer, prefix string, f *Feature) {
	indent := prefix + strings.Repeat(" ", valueCol-keyCol)
	locs := wrapLocation(f.Location, textWide)
	if len(locs) == 0 {
		locs = []string{""}
	}
	w.WriteString(prefix)
	w.WriteString(padRight(f.Type, valueCol-keyCol))
	w.WriteString(locs[0])
	w.WriteByte('\n')
	for _, l := range locs[1:] {
		w.WriteString(indent + l + "\n")
	}
	for _, name := range f.Qualifiers.Names() {
		for _, v := range f.Qualifiers.Get(name) {
			for _, l := range wrapQualifier(name, v) {
				w.WriteString(indent + l + "\n")
			}
		}
	}
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s + " "
	}
	return s + strings.Repeat(" ", n-len(s))
}

func qualifierText(name, value string) string {
	switch {
	case value == "":
		return "/" + name
	case unquoted[name]:
		return "/" + name + "=" + value
	}
	return "/" + name + `="` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

func wrapQualifier(name, value string) []string {
	text := qualifierText(name, value)
	if name == "translation" {
		return hardWrap(text, textWide)
	}
	return wordWrap(text, textWide)
}

// wordWrap breaks text on spaces; words longer than width are cut.
func wordWrap(text string, width int) []string {
	var out []string
	for len(text) > width {
		cut := strings.LastIndexByte(text[:width+1], ' ')
		if cut <= 0 {
			out = append(out, text[:width])
			text = text[width:]
			continue
		}
		out = append(out, text[:cut])
		text = text[cut+1:]
	}
	return append(out, text)
}

func hardWrap(text string, width int) []string {
	var out []string
	for len(text) > width {
		out = append(out, text[:width])
		text = text[width:]
	}
	return append(out, text)
}

// wrapLocation breaks a location after commas.
func wrapLocation(loc string, width int) []string {
	if loc == "" {
		return nil
	}
	var out []string
	for len(loc) > width {
		cut := strings.LastIndexByte(loc[:width], ',')
		if cut < 0 {
			cut = width - 1
		}
		out = append(out, loc[:cut+1])
		loc = loc[cut+1:]
	}
	return append(out, loc)
}
