// internal/seqfile/genbank.go
package seqfile

import (
	"bufio"
	"fmt"
	"strings"
)

const (
	gbIndent   = "     "
	gbContinue = "            "
)

func readGenBank(sc *bufio.Scanner) ([]*Record, error) {
	const (
		stHeader = iota
		stFeatures
		stTail
		stSeq
	)
	var (
		recs  []*Record
		cur   *Record
		tp    tableParser
		state int
		inDef bool
		ln    int
	)
	for sc.Scan() {
		ln++
		line := strings.TrimRight(sc.Text(), "\r")
		if cur == nil {
			if !strings.HasPrefix(line, "LOCUS") {
				// release headers and blank lines before the first record
				continue
			}
			cur = &Record{Format: GenBank, Header: []string{line}, Name: locusName(line)}
			state, inDef = stHeader, false
			continue
		}
		if strings.HasPrefix(line, "//") {
			cur.Features = tp.features()
			recs = append(recs, cur)
			cur = nil
			continue
		}
		switch state {
		case stHeader:
			if strings.HasPrefix(line, "FEATURES") {
				state = stFeatures
				continue
			}
			if strings.HasPrefix(line, "ORIGIN") {
				state = stSeq
				continue
			}
			cur.Header = append(cur.Header, line)
			switch {
			case strings.HasPrefix(line, "DEFINITION"):
				inDef = true
				cur.Description = joinText("", line[10:])
			case inDef && strings.HasPrefix(line, gbContinue):
				cur.Description = joinText(cur.Description, line)
			default:
				inDef = false
			}
		case stFeatures:
			if strings.HasPrefix(line, gbIndent) {
				key, text := splitTableLine(line)
				if key != "" {
					tp.key(key, text)
				} else {
					tp.line(text)
				}
				continue
			}
			state = stTail
			fallthrough
		case stTail:
			// BASE COUNT, CONTIG and similar lines are regenerated or dropped.
			if strings.HasPrefix(line, "ORIGIN") {
				state = stSeq
			}
		case stSeq:
			cur.Seq = appendLetters(cur.Seq, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if cur != nil {
		return nil, fmt.Errorf("%w: record %s is not terminated by // (line %d)", ErrMalformedInput, cur.Name, ln)
	}
	return recs, nil
}

func locusName(line string) string {
	f := strings.Fields(line)
	if len(f) < 2 {
		return ""
	}
	return f[1]
}

func writeGenBank(w *bufio.Writer, rec *Record) error {
	header := rec.Header
	if rec.Format != GenBank || len(header) == 0 {
		header = genBankHeader(rec)
	}
	for _, l := range header {
		w.WriteString(l + "\n")
	}
	w.WriteString("FEATURES             Location/Qualifiers\n")
	for _, f := range rec.Features {
		writeFeature(w, gbIndent, f)
	}
	w.WriteString("ORIGIN\n")
	low := lowerBytes(rec.Seq)
	for i := 0; i < len(low); i += 60 {
		fmt.Fprintf(w, "%9d", i+1)
		end := i + 60
		if end > len(low) {
			end = len(low)
		}
		for j := i; j < end; j += 10 {
			k := j + 10
			if k > end {
				k = end
			}
			w.WriteByte(' ')
			w.Write(low[j:k])
		}
		w.WriteByte('\n')
	}
	_, err := w.WriteString("//\n")
	return err
}

func genBankHeader(rec *Record) []string {
	desc := rec.Description
	if desc == "" {
		desc = "."
	}
	lines := []string{fmt.Sprintf("LOCUS       %-16s %11d bp    DNA     linear   UNK 01-JAN-1980", rec.Name, len(rec.Seq))}
	for i, l := range wordWrap(desc, 67) {
		if i == 0 {
			lines = append(lines, "DEFINITION  "+l)
		} else {
			lines = append(lines, gbContinue+l)
		}
	}
	return append(lines,
		"ACCESSION   "+rec.Name,
		"VERSION     "+rec.Name,
		"KEYWORDS    .",
		"SOURCE      .",
		"  ORGANISM  .",
		gbContinue+".",
	)
}
