// internal/seqfile/record.go
package seqfile

// Record is one entry of an EMBL or GenBank file.
type Record struct {
	Name        string
	Description string
	// Header holds the raw lines that precede the feature table. They are
	// written back verbatim when the output format matches Format.
	Header   []string
	Features []*Feature
	Seq      []byte
	Format   Format
}

// Feature is an annotated span of a record.
type Feature struct {
	Type       string
	Location   string
	Qualifiers *Qualifiers
}

func NewFeature(typ, location string) *Feature {
	return &Feature{Type: typ, Location: location, Qualifiers: NewQualifiers()}
}

// Qualifiers is a name -> values map that keeps first-insertion order.
type Qualifiers struct {
	names  []string
	values map[string][]string
}

func NewQualifiers() *Qualifiers {
	return &Qualifiers{values: map[string][]string{}}
}

func (q *Qualifiers) Len() int { return len(q.names) }

func (q *Qualifiers) Names() []string { return append([]string(nil), q.names...) }

func (q *Qualifiers) Has(name string) bool {
	_, ok := q.values[name]
	return ok
}

// Get returns a copy of the values stored under name.
func (q *Qualifiers) Get(name string) []string {
	return append([]string(nil), q.values[name]...)
}

// First returns the first value of name.
func (q *Qualifiers) First(name string) (string, bool) {
	v := q.values[name]
	if len(v) == 0 {
		return "", false
	}
	return v[0], true
}

// Set replaces the values of name.
func (q *Qualifiers) Set(name string, vals ...string) {
	if !q.Has(name) {
		q.names = append(q.names, name)
	}
	q.values[name] = append([]string(nil), vals...)
}

// Append adds values to the end of name's list, creating it if absent.
func (q *Qualifiers) Append(name string, vals ...string) {
	if !q.Has(name) {
		q.names = append(q.names, name)
	}
	q.values[name] = append(q.values[name], vals...)
}
