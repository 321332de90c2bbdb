// internal/seqfile/embl.go
package seqfile

import (
	"bufio"
	"fmt"
	"strings"
)

const emblFT = "FT   "

func readEMBL(sc *bufio.Scanner) ([]*Record, error) {
	var (
		recs   []*Record
		cur    *Record
		tp     tableParser
		inSeq  bool
		inFeat bool
		ln     int
	)
	for sc.Scan() {
		ln++
		line := strings.TrimRight(sc.Text(), "\r")
		if cur == nil {
			if strings.TrimSpace(line) == "" {
				continue
			}
			if !strings.HasPrefix(line, "ID") {
				return nil, fmt.Errorf("%w: line %d: expected ID line", ErrMalformedInput, ln)
			}
			cur = &Record{Format: EMBL, Header: []string{line}, Name: emblName(line)}
			inSeq, inFeat = false, false
			continue
		}
		if strings.HasPrefix(line, "//") {
			cur.Features = tp.features()
			recs = append(recs, cur)
			cur = nil
			continue
		}
		if inSeq {
			cur.Seq = appendLetters(cur.Seq, line)
			continue
		}
		code := line
		if len(code) > 2 {
			code = code[:2]
		}
		switch code {
		case "FH":
			inFeat = true
		case "FT":
			inFeat = true
			key, text := splitTableLine(line)
			if key != "" {
				tp.key(key, text)
			} else {
				tp.line(text)
			}
		case "SQ":
			inSeq = true
		default:
			if inFeat {
				continue // XX and friends between FT and SQ
			}
			cur.Header = append(cur.Header, line)
			if code == "DE" && len(line) > 5 {
				cur.Description = joinText(cur.Description, line[5:])
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if cur != nil {
		return nil, fmt.Errorf("%w: record %s is not terminated by //", ErrMalformedInput, cur.Name)
	}
	return recs, nil
}

// emblName extracts the primary identifier from an ID line.
func emblName(line string) string {
	if len(line) <= 5 {
		return ""
	}
	f := strings.Fields(line[5:])
	if len(f) == 0 {
		return ""
	}
	return strings.TrimSuffix(f[0], ";")
}

func splitTableLine(line string) (key, text string) {
	if len(line) > keyCol {
		end := valueCol
		if end > len(line) {
			end = len(line)
		}
		key = strings.TrimSpace(line[keyCol:end])
	}
	if len(line) > valueCol {
		text = line[valueCol:]
	}
	return key, text
}

func joinText(a, b string) string {
	b = strings.TrimSpace(b)
	if a == "" {
		return b
	}
	return a + " " + b
}

func writeEMBL(w *bufio.Writer, rec *Record) error {
	header := rec.Header
	if rec.Format != EMBL || len(header) == 0 {
		header = emblHeader(rec)
	}
	for _, l := range header {
		w.WriteString(l + "\n")
	}
	if len(rec.Features) > 0 {
		w.WriteString("FH   Key             Location/Qualifiers\nFH\n")
		for _, f := range rec.Features {
			writeFeature(w, emblFT, f)
		}
		w.WriteString("XX\n")
	}
	writeEMBLSeq(w, rec.Seq)
	_, err := w.WriteString("//\n")
	return err
}

func emblHeader(rec *Record) []string {
	desc := rec.Description
	if desc == "" {
		desc = "."
	}
	lines := []string{
		fmt.Sprintf("ID   %s; SV 1; linear; DNA; STD; UNC; %d BP.", rec.Name, len(rec.Seq)),
		"XX",
		fmt.Sprintf("AC   %s;", rec.Name),
		"XX",
	}
	for _, l := range wordWrap(desc, 75) {
		lines = append(lines, "DE   "+l)
	}
	return append(lines, "XX")
}

func writeEMBLSeq(w *bufio.Writer, seq []byte) {
	var a, c, g, t, other int
	for _, b := range seq {
		switch b | 0x20 {
		case 'a':
			a++
		case 'c':
			c++
		case 'g':
			g++
		case 't':
			t++
		default:
			other++
		}
	}
	fmt.Fprintf(w, "SQ   Sequence %d BP; %d A; %d C; %d G; %d T; %d other;\n", len(seq), a, c, g, t, other)
	low := lowerBytes(seq)
	for i := 0; i < len(low); i += 60 {
		end := i + 60
		if end > len(low) {
			end = len(low)
		}
		var blocks []string
		for j := i; j < end; j += 10 {
			k := j + 10
			if k > end {
				k = end
			}
			blocks = append(blocks, string(low[j:k]))
		}
		fmt.Fprintf(w, "     %-65s%10d\n", strings.Join(blocks, " "), end)
	}
}
