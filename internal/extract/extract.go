// internal/extract/extract.go
package extract

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"seqannot/internal/seqfile"
	"seqannot/internal/translate"
)

// CDSType is the feature type that gets translated.
const CDSType = "CDS"

// Delimiter separates the annotation slots of a protein description.
const Delimiter = "::"

// Protein is one translated CDS.
type Protein struct {
	ID          string
	Description string
	Seq         []byte
}

// Extractor translates CDS features. The fallback id counter runs across
// every Extract call made on the same Extractor.
type Extractor struct {
	IDQualifier string
	n           int
}

func New(idQualifier string) *Extractor { return &Extractor{IDQualifier: idQualifier} }

// Count is the number of proteins extracted so far.
func (e *Extractor) Count() int { return e.n }

// Extract returns one protein per CDS, in record then feature order.
func (e *Extractor) Extract(records []*seqfile.Record) ([]Protein, error) {
	var out []Protein
	for _, rec := range records {
		for _, f := range rec.Features {
			if f.Type != CDSType {
				continue
			}
			aa, err := Translate(rec, f)
			if err != nil {
				return nil, err
			}
			id, ok := f.Qualifiers.First(e.IDQualifier)
			if !ok {
				id = fmt.Sprintf("CDS_%05d", e.n)
			}
			out = append(out, Protein{ID: id, Description: Description(f), Seq: aa})
			e.n++
		}
	}
	return out, nil
}

// Description encodes product, gene, function and note as
// "product::gene::function::::note".
func Description(f *seqfile.Feature) string {
	first := func(name string) string {
		v, _ := f.Qualifiers.First(name)
		return v
	}
	return strings.Join([]string{first("product"), first("gene"), first("function"), "", first("note")}, Delimiter)
}

// Translate translates the nucleotides under f, honouring /codon_start and
// /transl_table.
func Translate(rec *seqfile.Record, f *seqfile.Feature) ([]byte, error) {
	loc, err := seqfile.ParseLocation(f.Location)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rec.Name, err)
	}
	nt, err := loc.Extract(rec.Seq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", rec.Name, f.Location, err)
	}
	frame, err := intQualifier(f, "codon_start", 1)
	if err != nil || frame < 1 || frame > 3 {
		return nil, fmt.Errorf("%s %s: %w: bad codon_start", rec.Name, f.Location, seqfile.ErrMalformedInput)
	}
	if frame-1 > len(nt) {
		frame = len(nt) + 1
	}
	table, err := intQualifier(f, "transl_table", translate.Standard)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: bad transl_table", rec.Name, f.Location, seqfile.ErrMalformedInput)
	}
	code, err := translate.Lookup(table)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %v", rec.Name, f.Location, seqfile.ErrMalformedInput, err)
	}
	return code.Translate(nt[frame-1:]), nil
}

func intQualifier(f *seqfile.Feature, name string, def int) (int, error) {
	v, ok := f.Qualifiers.First(name)
	if !ok {
		return def, nil
	}
	return strconv.Atoi(strings.TrimSpace(v))
}

// WriteFASTA writes proteins as 60-column FASTA records.
func WriteFASTA(w io.Writer, proteins []Protein) error {
	fw := fasta.NewWriter(w, 60)
	for _, p := range proteins {
		s := linear.NewSeq(p.ID, alphabet.BytesToLetters(p.Seq), alphabet.Protein)
		s.Desc = p.Description
		if _, err := fw.Write(s); err != nil {
			return err
		}
	}
	return nil
}
