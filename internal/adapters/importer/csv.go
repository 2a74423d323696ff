// Package importer turns raw CSV and Excel exports into the canonical
// messages table. Social-media exports are messy: preamble notes before the
// header, inconsistent delimiters, ragged rows. Layout detection handles the
// common cases automatically; the caller can override everything.
package importer

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// detectMaxLines caps how much of the file layout detection examines.
const detectMaxLines = 50

var delimiterCandidates = []rune{',', ';', '\t', '|'}

// headerHintWords are substrings typical of export column names. A preamble
// line ("Downloaded from ...") rarely contains several of them.
var headerHintWords = []string{
	"id", "name", "date", "time", "user", "tweet", "text",
	"count", "number", "sent", "screen", "retweeted", "favorited",
}

// Layout is the detected or user-supplied CSV shape.
type Layout struct {
	SkipRows  int
	Delimiter rune
	HasHeader bool
}

// DetectLayout inspects the head of a CSV file and guesses where the data
// begins and how it is delimited. Errors fall back to a safe default rather
// than failing the import.
func DetectLayout(path string) Layout {
	layout := Layout{Delimiter: ',', HasHeader: true}

	f, err := os.Open(path)
	if err != nil {
		return layout
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for sc.Scan() && len(lines) < detectMaxLines {
		lines = append(lines, strings.TrimSpace(sc.Text()))
	}
	if len(lines) < 2 {
		return layout
	}

	layout.Delimiter = sniffDelimiter(lines)
	layout.SkipRows = detectSkipRows(lines, layout.Delimiter)
	return layout
}

// sniffDelimiter picks the candidate that splits the sampled lines into the
// most consistent multi-field rows.
func sniffDelimiter(lines []string) rune {
	best, bestScore := ',', 0
	for _, cand := range delimiterCandidates {
		counts := make(map[int]int)
		for _, line := range lines {
			if line == "" {
				continue
			}
			if n := fieldCount(line, cand); n > 1 {
				counts[n]++
			}
		}
		// Score is the size of the largest group of lines agreeing on a
		// field count.
		for _, c := range counts {
			if c > bestScore {
				bestScore = c
				best = cand
			}
		}
	}
	return best
}

func fieldCount(line string, delim rune) int {
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = delim
	r.LazyQuotes = true
	rec, err := r.Read()
	if err != nil {
		return 1
	}
	return len(rec)
}

// detectSkipRows finds the first line that looks like the real header:
// hint-word scan first, then modal field count as fallback.
func detectSkipRows(lines []string, delim rune) int {
	type parsed struct {
		lineNo int
		fields []string
	}
	var rows []parsed
	for i, line := range lines {
		if line == "" {
			continue
		}
		r := csv.NewReader(strings.NewReader(line))
		r.Comma = delim
		r.LazyQuotes = true
		rec, err := r.Read()
		if err != nil {
			rec = []string{line}
		}
		rows = append(rows, parsed{lineNo: i, fields: rec})
	}
	if len(rows) < 2 {
		return 0
	}

	for _, row := range rows {
		if looksLikeHeader(row.fields) {
			return row.lineNo
		}
	}

	// Fallback: the first line matching the modal field count starts the
	// data block.
	counts := make(map[int]int)
	for _, row := range rows {
		counts[len(row.fields)]++
	}
	modal, modalFreq := 0, 0
	for n, freq := range counts {
		if freq > modalFreq {
			modal, modalFreq = n, freq
		}
	}
	for _, row := range rows {
		if len(row.fields) == modal {
			return row.lineNo
		}
	}
	return 0
}

// looksLikeHeader scores a parsed row on header-ish traits: mostly non-empty,
// short descriptive names, common export column words.
func looksLikeHeader(fields []string) bool {
	if len(fields) < 2 {
		return false
	}
	var nonEmpty []string
	for _, f := range fields {
		if s := strings.TrimSpace(f); s != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	if len(nonEmpty) < len(fields)/2 {
		return false
	}

	indicators := 0
	for _, f := range nonEmpty {
		f = strings.ToLower(strings.TrimSpace(f))
		for _, w := range headerHintWords {
			if strings.Contains(f, w) {
				indicators++
				break
			}
		}
		if len(f) >= 3 && len(f) <= 30 &&
			!strings.HasPrefix(f, "http") && !strings.HasPrefix(f, "www") &&
			!strings.HasPrefix(f, "from ") && !strings.HasPrefix(f, "if you") {
			indicators++
		}
	}
	return float64(indicators) >= float64(len(nonEmpty))*0.5
}

// CSVSource streams records from a CSV file with a detected or supplied
// layout. Ragged rows are padded or truncated to the header width.
type CSVSource struct {
	f       *os.File
	r       *csv.Reader
	headers []string
	pending []string // first data row of a headerless file
}

// OpenCSV opens path with the given layout, consuming skip rows and the
// header line.
func OpenCSV(path string, layout Layout) (*CSVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}

	br := bufio.NewReader(f)
	for i := 0; i < layout.SkipRows; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			f.Close()
			return nil, fmt.Errorf("skip %d rows: %w", layout.SkipRows, err)
		}
	}

	r := csv.NewReader(br)
	r.Comma = layout.Delimiter
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	src := &CSVSource{f: f, r: r}
	if layout.HasHeader {
		headers, err := r.Read()
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("read header: %w", err)
		}
		src.headers = headers
	} else {
		first, err := r.Read()
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("read first row: %w", err)
		}
		src.headers = syntheticHeaders(len(first))
		src.pending = first
	}
	return src, nil
}

// Headers returns the column names in file order.
func (s *CSVSource) Headers() []string { return s.headers }

// Read returns the next record padded to header width, or io.EOF.
func (s *CSVSource) Read() ([]string, error) {
	if s.pending != nil {
		rec := s.pending
		s.pending = nil
		return pad(rec, len(s.headers)), nil
	}
	rec, err := s.r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read record: %w", err)
	}
	return pad(rec, len(s.headers)), nil
}

// Close releases the underlying file.
func (s *CSVSource) Close() error { return s.f.Close() }

func pad(rec []string, width int) []string {
	if len(rec) == width {
		return rec
	}
	if len(rec) > width {
		return rec[:width]
	}
	out := make([]string, width)
	copy(out, rec)
	return out
}

func syntheticHeaders(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("column_%d", i+1)
	}
	return out
}
