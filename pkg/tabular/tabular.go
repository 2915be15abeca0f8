// Package tabular inspects delimited text datasets without loading them
// whole. It sniffs the field delimiter from the header row, decompresses
// gzip payloads on the fly and reads just enough rows for a preview.
package tabular

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/csv"
	"io"
	"strings"

	"github.com/oneconcern/datacat/pkg/errors"
)

// ErrNoHeader is returned when a dataset has no header row
var ErrNoHeader = errors.New("no header row")

const sniffWindow = 4096

var delimiterCandidates = []byte{',', '\t', ';', '|'}

// Preview holds the header and the first rows of a delimited dataset
type Preview struct {
	Columns   []string
	Rows      [][]string
	Delimiter rune
	Truncated bool
	_         struct{}
}

// Stats summarizes the shape of a delimited dataset
type Stats struct {
	Columns   int
	Rows      int64
	Delimiter rune
	_         struct{}
}

// Option configures a scanner
type Option func(*Scanner)

// Rows sets how many data rows a preview returns
func Rows(n int) Option {
	return func(s *Scanner) {
		if n >= 0 {
			s.rows = n
		}
	}
}

// Delimiter forces the field delimiter instead of sniffing it
func Delimiter(d rune) Option {
	return func(s *Scanner) {
		s.delimiter = d
	}
}

// Scanner reads delimited datasets
type Scanner struct {
	rows      int
	delimiter rune
}

// New creates a scanner for delimited datasets
func New(opts ...Option) *Scanner {
	s := &Scanner{
		rows: 10,
	}
	for _, apply := range opts {
		apply(s)
	}
	return s
}

// Preview reads the header and the first rows of the dataset.
//
// The file name decides whether the payload is gunzipped first.
func (s *Scanner) Preview(reader io.Reader, fileName string) (Preview, error) {
	cr, delim, err := s.open(reader, fileName)
	if err != nil {
		return Preview{}, err
	}

	header, err := cr.Read()
	if err == io.EOF {
		return Preview{}, ErrNoHeader
	}
	if err != nil {
		return Preview{}, err
	}

	result := Preview{
		Columns:   header,
		Rows:      make([][]string, 0, s.rows),
		Delimiter: delim,
	}
	for len(result.Rows) < s.rows {
		record, err := cr.Read()
		if err == io.EOF {
			return result, nil
		}
		if err != nil {
			return Preview{}, err
		}
		result.Rows = append(result.Rows, record)
	}

	if _, err = cr.Read(); err == nil {
		result.Truncated = true
	} else if err != io.EOF {
		return Preview{}, err
	}
	return result, nil
}

// Stats scans the whole dataset and counts its rows
func (s *Scanner) Stats(reader io.Reader, fileName string) (Stats, error) {
	cr, delim, err := s.open(reader, fileName)
	if err != nil {
		return Stats{}, err
	}

	header, err := cr.Read()
	if err == io.EOF {
		return Stats{}, ErrNoHeader
	}
	if err != nil {
		return Stats{}, err
	}

	result := Stats{
		Columns:   len(header),
		Delimiter: delim,
	}
	for {
		_, err := cr.Read()
		if err == io.EOF {
			return result, nil
		}
		if err != nil {
			return Stats{}, err
		}
		result.Rows++
	}
}

func (s *Scanner) open(reader io.Reader, fileName string) (*csv.Reader, rune, error) {
	if isGzip(fileName) {
		gz, err := gzip.NewReader(reader)
		if err != nil {
			return nil, 0, err
		}
		reader = gz
	}

	br := bufio.NewReader(reader)
	delim := s.delimiter
	if delim == 0 {
		delim = sniffDelimiter(br)
	}

	cr := csv.NewReader(br)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	return cr, delim, nil
}

func isGzip(fileName string) bool {
	return strings.HasSuffix(fileName, ".gz") || strings.HasSuffix(fileName, ".tgz")
}

// sniffDelimiter picks the most frequent candidate in the header row.
// It defaults to comma when the row contains none of them.
func sniffDelimiter(br *bufio.Reader) rune {
	peek, _ := br.Peek(sniffWindow)
	if i := bytes.IndexByte(peek, '\n'); i >= 0 {
		peek = peek[:i]
	}

	best := ','
	bestCount := 0
	for _, candidate := range delimiterCandidates {
		if n := bytes.Count(peek, []byte{candidate}); n > bestCount {
			best, bestCount = rune(candidate), n
		}
	}
	return best
}
