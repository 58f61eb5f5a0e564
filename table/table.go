// Package table holds the in-memory tables that flow through the analysis,
// and the readers that produce them from spreadsheets and delimited text.
package table

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingColumn is returned when a required column is not present.
	ErrMissingColumn = errors.New("missing required column")

	// ErrDelimiterMismatch is returned when the declared delimiter of a file
	// does not match its content.
	ErrDelimiterMismatch = errors.New("declared delimiter does not match file content")
)

// Table is a header plus rows of string cells. Every row has exactly
// len(Header) cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// Index returns the position of the named column, or -1.
func (t *Table) Index(name string) int {
	for i, v := range t.Header {
		if v == name {
			return i
		}
	}

	return -1
}

// Column returns a copy of the named column's cells.
func (t *Table) Column(name string) ([]string, error) {
	idx := t.Index(name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
	}

	out := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		out = append(out, row[idx])
	}

	return out, nil
}

// RequireColumns fails if any of the named columns is absent from t.
func RequireColumns(t *Table, names ...string) error {
	missing := make([]string, 0)
	for _, name := range names {
		if t.Index(name) < 0 {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s (have %s)", ErrMissingColumn, strings.Join(missing, ", "), strings.Join(t.Header, ", "))
	}

	return nil
}

// TrimHeader strips surrounding whitespace from every header name.
func TrimHeader(header []string) []string {
	out := make([]string, len(header))
	for i, v := range header {
		out[i] = strings.TrimSpace(v)
	}

	return out
}

// FromRecords builds a Table from parsed records, the first of which is the
// header. Short rows are padded with empty cells.
func FromRecords(records [][]string) (*Table, error) {
	if len(records) < 1 {
		return nil, fmt.Errorf("no header row")
	}

	out := &Table{
		Header: TrimHeader(records[0]),
		Rows:   make([][]string, 0, len(records)-1),
	}

	for i, rec := range records[1:] {
		if len(rec) > len(out.Header) {
			return nil, fmt.Errorf("row %d has %d fields but the header has %d", i+2, len(rec), len(out.Header))
		}
		row := make([]string, len(out.Header))
		copy(row, rec)
		out.Rows = append(out.Rows, row)
	}

	return out, nil
}
