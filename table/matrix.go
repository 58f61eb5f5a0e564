package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Matrix is a numeric table keyed by probe. Header[0] names the probe column;
// Header[1:] name the value columns. Absent cells are NaN.
type Matrix struct {
	Header []string
	Probes []string
	Values [][]float64
}

// Columns returns the names of the value columns.
func (m *Matrix) Columns() []string {
	if len(m.Header) < 1 {
		return nil
	}

	return m.Header[1:]
}

// Column returns a copy of value column j.
func (m *Matrix) Column(j int) []float64 {
	out := make([]float64, len(m.Values))
	for i, row := range m.Values {
		out[i] = row[j]
	}

	return out
}

// Rename returns a shallow copy of m with the given header. The probe and
// value slices are shared.
func (m *Matrix) Rename(header []string) (*Matrix, error) {
	if len(header) != len(m.Header) {
		return nil, fmt.Errorf("renaming %d columns with %d names", len(m.Header), len(header))
	}

	out := *m
	out.Header = append([]string(nil), header...)

	return &out, nil
}

// WithColumn returns a copy of m with one more value column appended.
func (m *Matrix) WithColumn(name string, vals []float64) (*Matrix, error) {
	if len(vals) != len(m.Values) {
		return nil, fmt.Errorf("column %s has %d values but the matrix has %d rows", name, len(vals), len(m.Values))
	}

	out := &Matrix{
		Header: append(append([]string(nil), m.Header...), name),
		Probes: append([]string(nil), m.Probes...),
		Values: make([][]float64, len(m.Values)),
	}
	for i, row := range m.Values {
		out.Values[i] = append(append(make([]float64, 0, len(row)+1), row...), vals[i])
	}

	return out, nil
}

// MatrixFromRecords builds a Matrix from parsed records, the first of which is
// the header. The first column holds probe identifiers and every other cell is
// parsed as a float; empty or unparseable cells become NaN.
func MatrixFromRecords(records [][]string) (*Matrix, error) {
	if len(records) < 1 {
		return nil, fmt.Errorf("no header row")
	}

	header := TrimHeader(records[0])
	if len(header) < 1 {
		return nil, fmt.Errorf("empty header row")
	}

	out := &Matrix{
		Header: header,
		Probes: make([]string, 0, len(records)-1),
		Values: make([][]float64, 0, len(records)-1),
	}

	for i, rec := range records[1:] {
		if len(rec) > len(header) {
			return nil, fmt.Errorf("row %d has %d fields but the header has %d", i+2, len(rec), len(header))
		}

		// Spreadsheets can carry trailing empty rows
		if isBlank(rec) {
			continue
		}

		vals := make([]float64, len(header)-1)
		for j := range vals {
			vals[j] = math.NaN()
			if j+1 < len(rec) {
				vals[j] = ParseCell(rec[j+1])
			}
		}

		out.Probes = append(out.Probes, strings.TrimSpace(rec[0]))
		out.Values = append(out.Values, vals)
	}

	return out, nil
}

// ParseCell parses a numeric cell. Empty and non-numeric cells are NaN.
func ParseCell(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}

	return v
}

// FormatCell is the inverse of ParseCell. NaN prints as an empty cell.
func FormatCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}

	return strconv.FormatFloat(v, 'g', -1, 64)
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}

	return true
}
