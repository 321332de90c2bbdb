package seqfile

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const emblEntry = `ID   CONTIG1; SV 1; linear; genomic DNA; STD; FUN; 24 BP.
XX
AC   CONTIG1;
XX
DE   Test contig
DE   second line
XX
FH   Key             Location/Qualifiers
FH
FT   source          1..24
FT                   /organism="Yeast"
FT   CDS             1..9
FT                   /locus_tag="g1"
FT                   /note="a long note that spans two lines in the feature
FT                   table"
FT   CDS             complement(13..21)
FT                   /locus_tag="g2"
FT                   /codon_start=1
FT                   /pseudo
FT                   /product="say ""hi"""
XX
SQ   Sequence 24 BP; 7 A; 4 C; 3 G; 10 T; 0 other;
     atggcctaag ttctatttca tata                                               24
//
`

const gbEntry = `LOCUS       CONTIG2                   24 bp    DNA     linear   PLN 01-JAN-2020
DEFINITION  Second test
            contig.
ACCESSION   CONTIG2
FEATURES             Location/Qualifiers
     source          1..24
                     /organism="Yeast"
     CDS             join(1..3,7..12)
                     /locus_tag="g3"
                     /translation="MAK"
BASE COUNT        7 a      4 c      3 g     10 t
ORIGIN
        1 atggcctaag ttctatttca tata
//
`

func TestParseFormat(t *testing.T) {
	for tok, want := range map[string]Format{"embl": EMBL, "EMBL": EMBL, "gb": GenBank, "genbank": GenBank, "gbk": GenBank} {
		f, err := ParseFormat(tok)
		require.NoError(t, err, tok)
		assert.Equal(t, want, f, tok)
	}
	_, err := ParseFormat("fasta")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestReadEMBL(t *testing.T) {
	recs, err := Read(strings.NewReader(emblEntry), EMBL)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	r := recs[0]
	assert.Equal(t, "CONTIG1", r.Name)
	assert.Equal(t, "Test contig second line", r.Description)
	assert.Equal(t, "atggcctaagttctatttcatata", string(r.Seq))
	require.Len(t, r.Features, 3)

	cds := r.Features[1]
	assert.Equal(t, "CDS", cds.Type)
	assert.Equal(t, "1..9", cds.Location)
	assert.Equal(t, []string{"g1"}, cds.Qualifiers.Get("locus_tag"))
	assert.Equal(t, []string{"a long note that spans two lines in the feature table"}, cds.Qualifiers.Get("note"))

	rev := r.Features[2]
	assert.Equal(t, "complement(13..21)", rev.Location)
	assert.Equal(t, []string{"1"}, rev.Qualifiers.Get("codon_start"))
	assert.Equal(t, []string{""}, rev.Qualifiers.Get("pseudo"))
	assert.Equal(t, []string{`say "hi"`}, rev.Qualifiers.Get("product"))
	assert.Equal(t, []string{"locus_tag", "codon_start", "pseudo", "product"}, rev.Qualifiers.Names())
}

func TestEMBLRoundTrip(t *testing.T) {
	recs, err := Read(strings.NewReader(emblEntry), EMBL)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, recs, EMBL))
	assert.Equal(t, emblEntry, buf.String())
}

func TestReadGenBank(t *testing.T) {
	recs, err := Read(strings.NewReader(gbEntry), GenBank)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	r := recs[0]
	assert.Equal(t, "CONTIG2", r.Name)
	assert.Equal(t, "Second test contig.", r.Description)
	assert.Equal(t, 24, len(r.Seq))
	require.Len(t, r.Features, 2)
	assert.Equal(t, "join(1..3,7..12)", r.Features[1].Location)
	assert.Equal(t, []string{"MAK"}, r.Features[1].Qualifiers.Get("translation"))
}

func TestGenBankRoundTripDropsBaseCount(t *testing.T) {
	recs, err := Read(strings.NewReader(gbEntry), GenBank)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, recs, GenBank))
	want := strings.Replace(gbEntry, "BASE COUNT        7 a      4 c      3 g     10 t\n", "", 1)
	assert.Equal(t, want, buf.String())
}

func TestConvertEMBLToGenBank(t *testing.T) {
	recs, err := Read(strings.NewReader(emblEntry), EMBL)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, recs, GenBank))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "LOCUS       CONTIG1"))
	assert.Contains(t, out, "DEFINITION  Test contig second line\n")
	assert.Contains(t, out, "     CDS             complement(13..21)\n")

	back, err := Read(strings.NewReader(out), GenBank)
	require.NoError(t, err)
	require.Len(t, back, 1)
	assert.Equal(t, recs[0].Seq, back[0].Seq)
	require.Len(t, back[0].Features, 3)
	assert.Equal(t, []string{`say "hi"`}, back[0].Features[2].Qualifiers.Get("product"))
}

func TestMultipleRecords(t *testing.T) {
	recs, err := Read(strings.NewReader(emblEntry+emblEntry), EMBL)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestUnterminatedRecord(t *testing.T) {
	_, err := Read(strings.NewReader(strings.TrimSuffix(emblEntry, "//\n")), EMBL)
	assert.True(t, errors.Is(err, ErrMalformedInput))

	_, err = Read(strings.NewReader(strings.TrimSuffix(gbEntry, "//\n")), GenBank)
	assert.True(t, errors.Is(err, ErrMalformedInput))
}

func TestEMBLGarbage(t *testing.T) {
	_, err := Read(strings.NewReader("hello\n"), EMBL)
	assert.True(t, errors.Is(err, ErrMalformedInput))
}

func TestLongQualifierWraps(t *testing.T) {
	f := NewFeature("CDS", "1..9")
	long := strings.Repeat("word ", 30)
	long = strings.TrimSpace(long)
	f.Qualifiers.Set("note", long)
	f.Qualifiers.Set("translation", strings.Repeat("M", 130))
	rec := &Record{Name: "x", Seq: []byte("atgaaataa"), Features: []*Feature{f}}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []*Record{rec}, EMBL))
	for _, l := range strings.Split(buf.String(), "\n") {
		assert.LessOrEqual(t, len(l), 80, l)
	}
	back, err := Read(&buf, EMBL)
	require.NoError(t, err)
	got := back[0].Features[0].Qualifiers
	assert.Equal(t, []string{long}, got.Get("note"))
	assert.Equal(t, []string{strings.Repeat("M", 130)}, got.Get("translation"))
}

func TestQualifiers(t *testing.T) {
	q := NewQualifiers()
	_, ok := q.First("product")
	assert.False(t, ok)

	q.Append("product", "a")
	q.Append("product", "b")
	q.Set("locus_tag", "g1")
	v, ok := q.First("product")
	assert.True(t, ok)
	assert.Equal(t, "a", v)
	assert.Equal(t, []string{"product", "locus_tag"}, q.Names())

	q.Set("product", "c")
	assert.Equal(t, []string{"c"}, q.Get("product"))
	assert.Equal(t, []string{"product", "locus_tag"}, q.Names())
	assert.Equal(t, 2, q.Len())

	got := q.Get("product")
	got[0] = "mutated"
	assert.Equal(t, []string{"c"}, q.Get("product"))
}

func TestParseLocation(t *testing.T) {
	cases := []struct {
		in   string
		want Location
	}{
		{"1..9", Location{{1, 9, false}}},
		{"<1..>9", Location{{1, 9, false}}},
		{"5", Location{{5, 5, false}}},
		{"102.110", Location{{102, 102, false}}},
		{"complement(13..21)", Location{{13, 21, true}}},
		{"join(1..3,7..9)", Location{{1, 3, false}, {7, 9, false}}},
		{"complement(join(1..3,7..9))", Location{{7, 9, true}, {1, 3, true}}},
		{"join(complement(7..9),complement(1..3))", Location{{7, 9, true}, {1, 3, true}}},
		{"order(1..3, 7..9)", Location{{1, 3, false}, {7, 9, false}}},
	}
	for _, c := range cases {
		got, err := ParseLocation(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
	for _, bad := range []string{"", "AB000001.1:1..9", "12^13", "x..9", "9..1", "bond(1,9)"} {
		_, err := ParseLocation(bad)
		assert.True(t, errors.Is(err, ErrMalformedInput), bad)
	}
}

func TestExtract(t *testing.T) {
	seq := []byte("atggcctaagttctatttcatata")

	loc, _ := ParseLocation("1..9")
	nt, err := loc.Extract(seq)
	require.NoError(t, err)
	assert.Equal(t, "ATGGCCTAA", string(nt))

	loc, _ = ParseLocation("complement(13..21)")
	nt, err = loc.Extract(seq)
	require.NoError(t, err)
	assert.Equal(t, "ATGAAATAG", string(nt))

	loc, _ = ParseLocation("join(1..3,7..12)")
	nt, err = loc.Extract(seq)
	require.NoError(t, err)
	assert.Equal(t, "ATGTAAGTT", string(nt))

	loc, _ = ParseLocation("20..30")
	_, err = loc.Extract(seq)
	assert.True(t, errors.Is(err, ErrMalformedInput))
}
