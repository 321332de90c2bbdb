// internal/extract/extract_test.go
package extract

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seqannot/internal/seqfile"
)

// ATG GCC AAA TAA | TT | revcomp(ATG AAA TAG)
const nt = "atggccaaataatt" + "ctatttcat"

func cds(loc string, kv ...string) *seqfile.Feature {
	f := seqfile.NewFeature("CDS", loc)
	for i := 0; i+1 < len(kv); i += 2 {
		f.Qualifiers.Append(kv[i], kv[i+1])
	}
	return f
}

func rec(name string, feats ...*seqfile.Feature) *seqfile.Record {
	return &seqfile.Record{Name: name, Seq: []byte(nt), Features: feats}
}

func TestExtractOrderAndIDs(t *testing.T) {
	e := New("locus_tag")
	r1 := rec("c1",
		cds("1..12", "locus_tag", "g1", "product", "Kinase", "gene", "KIN1", "function", "catalysis", "note", "putative"),
		seqfile.NewFeature("gene", "1..12"),
		cds("complement(15..23)"),
	)
	r2 := rec("c2", cds("1..9"))

	ps, err := e.Extract([]*seqfile.Record{r1, r2})
	require.NoError(t, err)
	require.Len(t, ps, 3)

	assert.Equal(t, Protein{ID: "g1", Description: "Kinase::KIN1::catalysis::::putative", Seq: []byte("MAK*")}, ps[0])
	assert.Equal(t, "CDS_00001", ps[1].ID)
	assert.Equal(t, "MK*", string(ps[1].Seq))
	assert.Equal(t, "::::::::", ps[1].Description)
	assert.Equal(t, "CDS_00002", ps[2].ID)
	assert.Equal(t, 3, e.Count())
}

func TestFallbackIDsSequentialAcrossCalls(t *testing.T) {
	e := New("locus_tag")
	var ids []string
	for i := 0; i < 3; i++ {
		ps, err := e.Extract([]*seqfile.Record{rec("c", cds("1..12"))})
		require.NoError(t, err)
		for _, p := range ps {
			ids = append(ids, p.ID)
		}
	}
	assert.Equal(t, []string{"CDS_00000", "CDS_00001", "CDS_00002"}, ids)
}

func TestCodonStartAndTable(t *testing.T) {
	f := cds("2..12", "codon_start", "3")
	aa, err := Translate(rec("c", f), f)
	require.NoError(t, err)
	// frame 3 of TGGCCAAATAA -> GCC AAA TAA
	assert.Equal(t, "AK*", string(aa))

	// In table 2 AGA is a stop codon.
	g := seqfile.NewFeature("CDS", "1..3")
	g.Qualifiers.Set("transl_table", "2")
	r := &seqfile.Record{Name: "m", Seq: []byte("aga"), Features: []*seqfile.Feature{g}}
	aa, err = Translate(r, g)
	require.NoError(t, err)
	assert.Equal(t, "*", string(aa))
}

func TestTranslateErrors(t *testing.T) {
	for _, f := range []*seqfile.Feature{
		cds("1..99"),
		cds("X:1..9"),
		cds("1..9", "codon_start", "4"),
		cds("1..9", "transl_table", "7"),
		cds("1..9", "transl_table", "eleven"),
	} {
		_, err := Translate(rec("c", f), f)
		assert.True(t, errors.Is(err, seqfile.ErrMalformedInput), f.Location)
	}
}

func TestDescriptionUsesFirstValues(t *testing.T) {
	f := cds("1..3", "product", "p1", "product", "p2", "note", "n1")
	assert.Equal(t, "p1::::::::n1", Description(f))
}

func TestWriteFASTA(t *testing.T) {
	var buf bytes.Buffer
	long := bytes.Repeat([]byte("M"), 70)
	err := WriteFASTA(&buf, []Protein{
		{ID: "g1", Description: "Kinase::::::::", Seq: []byte("MAK*")},
		{ID: "g2", Description: "::::::::", Seq: long},
	})
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, ">g1 Kinase::::::::", lines[0])
	assert.Equal(t, "MAK*", lines[1])
	assert.Equal(t, ">g2 ::::::::", lines[2])
	assert.Equal(t, strings.Repeat("M", 60), lines[3])
	assert.Equal(t, strings.Repeat("M", 10), lines[4])
}
