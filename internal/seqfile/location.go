// internal/seqfile/location.go
package seqfile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/seq/linear"
)

// Span is a 1-based, inclusive interval on one strand.
type Span struct {
	Start, End int
	Reverse    bool
}

// Location lists spans in transcription order.
type Location []Span

// ParseLocation parses an INSDC feature location such as
// "complement(join(<1..120,300..>410))". Remote references and
// between-base sites are rejected.
func ParseLocation(s string) (Location, error) {
	loc, err := parseLoc(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		return nil, fmt.Errorf("%w: location %q: %v", ErrMalformedInput, s, err)
	}
	return loc, nil
}

func parseLoc(s string) (Location, error) {
	if s == "" {
		return nil, fmt.Errorf("empty")
	}
	if inner, ok := call(s, "complement"); ok {
		loc, err := parseLoc(inner)
		if err != nil {
			return nil, err
		}
		out := make(Location, len(loc))
		for i, sp := range loc {
			sp.Reverse = !sp.Reverse
			out[len(loc)-1-i] = sp
		}
		return out, nil
	}
	for _, op := range []string{"join", "order"} {
		if inner, ok := call(s, op); ok {
			var out Location
			for _, part := range splitTopLevel(inner) {
				loc, err := parseLoc(part)
				if err != nil {
					return nil, err
				}
				out = append(out, loc...)
			}
			return out, nil
		}
	}
	if strings.ContainsAny(s, "():") {
		return nil, fmt.Errorf("unsupported operator or remote reference in %q", s)
	}
	if strings.Contains(s, "^") {
		return nil, fmt.Errorf("between-base site %q", s)
	}
	s = strings.NewReplacer("<", "", ">", "").Replace(s)
	a, b, isRange := strings.Cut(s, "..")
	if !isRange {
		// n or the single-base-in-range form n.m; both read as one base.
		a, _, _ = strings.Cut(s, ".")
		b = a
	}
	start, err := strconv.Atoi(a)
	if err != nil {
		return nil, fmt.Errorf("bad position %q", a)
	}
	end, err := strconv.Atoi(b)
	if err != nil {
		return nil, fmt.Errorf("bad position %q", b)
	}
	if start < 1 || end < start {
		return nil, fmt.Errorf("bad interval %d..%d", start, end)
	}
	return Location{{Start: start, End: end}}, nil
}

// call unwraps "name(inner)".
func call(s, name string) (string, bool) {
	if strings.HasPrefix(s, name+"(") && strings.HasSuffix(s, ")") {
		return s[len(name)+1 : len(s)-1], true
	}
	return "", false
}

func splitTopLevel(s string) []string {
	var (
		out   []string
		depth int
		from  int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, s[from:i])
				from = i + 1
			}
		}
	}
	return append(out, s[from:])
}

// Len is the number of bases covered.
func (l Location) Len() int {
	n := 0
	for _, sp := range l {
		n += sp.End - sp.Start + 1
	}
	return n
}

// Extract returns the upper-case nucleotides of l, reverse-complementing
// spans on the reverse strand.
func (l Location) Extract(seq []byte) ([]byte, error) {
	out := make([]byte, 0, l.Len())
	for _, sp := range l {
		if sp.End > len(seq) {
			return nil, fmt.Errorf("%w: span %d..%d exceeds sequence length %d", ErrMalformedInput, sp.Start, sp.End, len(seq))
		}
		part := nucleotides(seq[sp.Start-1 : sp.End])
		if sp.Reverse {
			part = reverseComplement(part)
		}
		out = append(out, part...)
	}
	return out, nil
}

// nucleotides upper-cases b and replaces anything that is not an IUPAC code with N.
func nucleotides(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c == 'U' {
			c = 'T'
		}
		if !strings.ContainsRune("ACGTRYSWKMBDHVN", rune(c)) {
			c = 'N'
		}
		out[i] = c
	}
	return out
}

func reverseComplement(b []byte) []byte {
	s := linear.NewSeq("", alphabet.BytesToLetters(b), alphabet.DNAredundant)
	s.RevComp()
	return alphabet.LettersToBytes(s.Seq)
}
