package source

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, input string) []RawRow {
	t.Helper()
	var rows []RawRow
	err := NewReader("test.csv", strings.NewReader(input)).Each(func(row RawRow) error {
		rows = append(rows, row)
		return nil
	})
	require.NoError(t, err)
	return rows
}

func TestReader_SkipsHeader(t *testing.T) {
	r := NewReader("a.csv", strings.NewReader("origin,destination,product,quantity\nA,B,Widget,10\n"))

	row, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, []string{"origin", "destination", "product", "quantity"}, r.Header())
	assert.Equal(t, []string{"A", "B", "Widget", "10"}, row.Fields)
	assert.Equal(t, 2, row.Line)
	assert.Equal(t, "a.csv", row.Source)
	assert.NoError(t, row.ParseErr)

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReader_EmptyInput(t *testing.T) {
	r := NewReader("empty.csv", strings.NewReader(""))

	_, err := r.Next()
	assert.ErrorIs(t, err, io.EOF)
	assert.Nil(t, r.Header())

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF, "reader stays exhausted")
}

func TestReader_HeaderOnly(t *testing.T) {
	rows := readAll(t, "a,b,c\n")
	assert.Empty(t, rows)
}

func TestReader_VariableWidthRowsAreReturned(t *testing.T) {
	rows := readAll(t, "a,b,c\nX1,C,D\nX2,only\nX3,E,F,extra\n")

	require.Len(t, rows, 3)
	assert.Len(t, rows[0].Fields, 3)
	assert.Len(t, rows[1].Fields, 2)
	assert.Len(t, rows[2].Fields, 4)
}

func TestReader_LineNumbers(t *testing.T) {
	input := "h1,h2\n" +
		"A,B\n" +
		"\"multi\nline\",z\n" +
		"\n" +
		"C,D\n"

	rows := readAll(t, input)

	require.Len(t, rows, 4)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, 3, rows[1].Line)
	assert.Equal(t, "multi\nline", rows[1].Fields[0])
	assert.Equal(t, 5, rows[2].Line)
	assert.Empty(t, rows[2].Fields)
	assert.Equal(t, 6, rows[3].Line)
}

func TestReader_BlankLinesAreRows(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantLines []int
		blank     []int
	}{
		{"between rows", "h\nA\n\nB\n", []int{2, 3, 4}, []int{3}},
		{"several in a row", "h\nA\n\n\nB\n", []int{2, 3, 4, 5}, []int{3, 4}},
		{"right after header", "h\n\nA\n", []int{2, 3}, []int{2}},
		{"trailing", "h\nA\n\n", []int{2, 3}, []int{3}},
		{"trailing crlf", "h\r\nA\r\n\r\n", []int{2, 3}, []int{3}},
		{"before header is ignored", "\nh\nA\n", []int{3}, nil},
		{"none", "h\nA\nB\n", []int{2, 3}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := readAll(t, tt.input)

			var lines, blank []int
			for _, row := range rows {
				lines = append(lines, row.Line)
				if len(row.Fields) == 0 {
					blank = append(blank, row.Line)
				}
			}
			assert.Equal(t, tt.wantLines, lines)
			assert.Equal(t, tt.blank, blank)
		})
	}
}

func TestReader_QuotedFieldsKeepCommas(t *testing.T) {
	rows := readAll(t, "a,b,c,d\n\"Town, North\",B,Widget,10\n")

	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Town, North", "B", "Widget", "10"}, rows[0].Fields)
}

func TestReader_NoTrailingNewline(t *testing.T) {
	rows := readAll(t, "a,b\nX,Y")

	require.Len(t, rows, 1)
	assert.Equal(t, []string{"X", "Y"}, rows[0].Fields)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestReader_IOErrorIsReturned(t *testing.T) {
	r := NewReader("broken.csv", failingReader{})

	_, err := r.Next()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.csv")
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestReader_EachStopsOnCallbackError(t *testing.T) {
	stop := errors.New("stop")
	calls := 0

	err := NewReader("a.csv", strings.NewReader("h\n1\n2\n3\n")).Each(func(RawRow) error {
		calls++
		if calls == 2 {
			return stop
		}
		return nil
	})

	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, calls)
}
