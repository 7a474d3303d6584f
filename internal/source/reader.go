package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// RawRow is one data row as read from a source.
type RawRow struct {
	Source string
	Line   int
	Fields []string

	// ParseErr is set when the record could not be tokenized as CSV.
	// Fields then holds whatever the tokenizer recovered.
	ParseErr error
}

// Reader yields the data rows of one CSV source.
//
// encoding/csv drops empty lines. Reader reports each empty line after the
// header as a row with no fields so it is skipped with a warning like any
// other malformed row.
type Reader struct {
	source string
	lines  *lineCounter
	csv    *csv.Reader
	header []string
	done   bool

	// next is the line the following record should start on.
	next    int
	pending []RawRow
}

// NewReader wraps r. The first record is treated as a header and discarded.
// An empty input yields no rows.
func NewReader(source string, r io.Reader) *Reader {
	lines := &lineCounter{r: r}
	cr := csv.NewReader(lines)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = false

	return &Reader{source: source, lines: lines, csv: cr}
}

// Header returns the discarded header, or nil before the first Next or for an empty source.
func (r *Reader) Header() []string {
	return r.header
}

// Next returns the next data row. It returns io.EOF after the last row.
// Syntax errors are attached to the returned row rather than returned,
// so one bad record never hides the rest of the source.
func (r *Reader) Next() (RawRow, error) {
	if row, ok := r.pop(); ok {
		return row, nil
	}
	if r.done {
		return RawRow{}, io.EOF
	}

	if r.header == nil {
		header, err := r.csv.Read()
		if errors.Is(err, io.EOF) {
			r.done = true
			return RawRow{}, io.EOF
		}
		var perr *csv.ParseError
		switch {
		case errors.As(err, &perr):
			r.next = perr.Line + 1
		case err != nil:
			return RawRow{}, fmt.Errorf("failed to read header of %s: %w", r.source, err)
		default:
			r.next = r.endLine(header) + 1
		}
		if header == nil {
			header = []string{}
		}
		r.header = header
	}

	record, err := r.csv.Read()
	if errors.Is(err, io.EOF) {
		r.done = true
		r.blankLinesBefore(r.lines.total() + 1)
		if row, ok := r.pop(); ok {
			return row, nil
		}
		return RawRow{}, io.EOF
	}

	var row RawRow
	if err != nil {
		var perr *csv.ParseError
		if !errors.As(err, &perr) {
			return RawRow{}, fmt.Errorf("failed to read %s: %w", r.source, err)
		}
		r.blankLinesBefore(perr.StartLine)
		r.next = perr.Line + 1
		row = RawRow{Source: r.source, Line: perr.StartLine, Fields: record, ParseErr: err}
	} else {
		line, _ := r.csv.FieldPos(0)
		r.blankLinesBefore(line)
		r.next = r.endLine(record) + 1
		row = RawRow{Source: r.source, Line: line, Fields: record}
	}

	if len(r.pending) == 0 {
		return row, nil
	}
	r.pending = append(r.pending, row)
	row, _ = r.pop()
	return row, nil
}

// Each calls fn for every data row until the source is exhausted or fn returns an error.
func (r *Reader) Each(fn func(RawRow) error) error {
	for {
		row, err := r.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(row); err != nil {
			return err
		}
	}
}

// endLine is the last physical line of the record just read. Only the last
// field can carry the record past the line its own value starts on.
func (r *Reader) endLine(record []string) int {
	last := len(record) - 1
	line, _ := r.csv.FieldPos(last)
	return line + strings.Count(record[last], "\n")
}

// blankLinesBefore queues a fieldless row for every line from next up to line.
func (r *Reader) blankLinesBefore(line int) {
	for l := r.next; l < line; l++ {
		r.pending = append(r.pending, RawRow{Source: r.source, Line: l, Fields: []string{}})
	}
}

func (r *Reader) pop() (RawRow, bool) {
	if len(r.pending) == 0 {
		return RawRow{}, false
	}
	row := r.pending[0]
	r.pending = r.pending[1:]
	return row, true
}

// lineCounter counts the physical lines passed to the CSV tokenizer.
type lineCounter struct {
	r        io.Reader
	newlines int
	n        int64
	last     byte
}

func (c *lineCounter) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.newlines += strings.Count(string(p[:n]), "\n")
		c.n += int64(n)
		c.last = p[n-1]
	}
	return n, err
}

// total is the number of lines read so far; an unterminated last line counts.
func (c *lineCounter) total() int {
	if c.n > 0 && c.last != '\n' {
		return c.newlines + 1
	}
	return c.newlines
}
