// internal/seqfile/format.go
package seqfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported sequence format")
	ErrMalformedInput    = errors.New("malformed sequence file")
)

// Format is a flat-file flavour.
type Format int

const (
	EMBL Format = iota + 1
	GenBank
)

func (f Format) String() string {
	switch f {
	case EMBL:
		return "embl"
	case GenBank:
		return "genbank"
	}
	return "unknown"
}

// ParseFormat maps a command-line token to a Format.
func ParseFormat(token string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "embl":
		return EMBL, nil
	case "gb", "gbk", "genbank":
		return GenBank, nil
	}
	return 0, fmt.Errorf("%w: %q (want embl | gb | genbank)", ErrUnsupportedFormat, token)
}

// Read parses every record in r.
func Read(r io.Reader, f Format) ([]*Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	switch f {
	case EMBL:
		return readEMBL(sc)
	case GenBank:
		return readGenBank(sc)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
}

// Write serialises records in format f.
func Write(w io.Writer, recs []*Record, f Format) error {
	bw := bufio.NewWriter(w)
	for _, rec := range recs {
		var err error
		switch f {
		case EMBL:
			err = writeEMBL(bw, rec)
		case GenBank:
			err = writeGenBank(bw, rec)
		default:
			return fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
		}
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// appendLetters appends the sequence letters of a sequence-block line.
func appendLetters(dst []byte, line string) []byte {
	for i := 0; i < len(line); i++ {
		c := line[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '*' || c == '-' {
			dst = append(dst, c)
		}
	}
	return dst
}

func lowerBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return out
}
