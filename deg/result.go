package deg

import (
	"fmt"
	"math"

	"github.com/carbocation/degexplore/table"
)

// Labels name the direction of change of a DEG.
type Labels struct {
	Higher string
	Lower  string
}

// DefaultLabels are the Expression_Change values for tumor vs normal.
var DefaultLabels = Labels{
	Higher: "Higher in Tumor",
	Lower:  "Lower in Tumor",
}

// Label returns l.Higher for a strictly positive fold change and l.Lower
// otherwise, including for zero and NaN.
func (l Labels) Label(foldChange float64) string {
	if foldChange > 0 {
		return l.Higher
	}

	return l.Lower
}

// Row is one differentially expressed probe.
type Row struct {
	Probe      string
	Values     []float64
	FoldChange float64
	Change     string

	// Gene metadata, aligned with Result.GeneColumns. Empty when the probe
	// had no annotation.
	Gene    []string
	Matched bool
}

// Result is the filtered DEG table.
type Result struct {
	Samples     []string
	GeneColumns []string
	Rows        []Row
}

// Passes reports whether |foldChange| is strictly greater than threshold. NaN
// never passes; infinities always do.
func Passes(foldChange, threshold float64) bool {
	return math.Abs(foldChange) > threshold
}

// Filter keeps the rows of m whose fold change passes the threshold, in their
// original order, and labels each one.
func Filter(m *table.Matrix, foldChanges []float64, threshold float64, labels Labels) (*Result, error) {
	if len(foldChanges) != len(m.Values) {
		return nil, fmt.Errorf("have %d fold changes for %d probes", len(foldChanges), len(m.Values))
	}

	out := &Result{
		Samples: append([]string(nil), m.Columns()...),
		Rows:    make([]Row, 0),
	}

	for i, fc := range foldChanges {
		if !Passes(fc, threshold) {
			continue
		}

		out.Rows = append(out.Rows, Row{
			Probe:      m.Probes[i],
			Values:     append([]float64(nil), m.Values[i]...),
			FoldChange: fc,
			Change:     labels.Label(fc),
		})
	}

	return out, nil
}

// LeftJoin merges gene metadata onto r by probe ID. Every row of r is kept:
// unmatched rows get empty metadata, and a probe annotated more than once is
// repeated once per annotation.
func LeftJoin(r *Result, genes *table.Table) (*Result, error) {
	if err := table.RequireColumns(genes, ProbeID); err != nil {
		return nil, err
	}
	probeIdx := genes.Index(ProbeID)

	geneCols := make([]int, 0, len(genes.Header)-1)
	out := &Result{
		Samples:     r.Samples,
		GeneColumns: make([]string, 0, len(genes.Header)-1),
		Rows:        make([]Row, 0, len(r.Rows)),
	}
	for j, name := range genes.Header {
		if j == probeIdx {
			continue
		}
		geneCols = append(geneCols, j)
		out.GeneColumns = append(out.GeneColumns, name)
	}

	annotations := make(map[string][][]string)
	for _, row := range genes.Rows {
		meta := make([]string, 0, len(geneCols))
		for _, j := range geneCols {
			meta = append(meta, row[j])
		}
		annotations[row[probeIdx]] = append(annotations[row[probeIdx]], meta)
	}

	for _, row := range r.Rows {
		matches, exists := annotations[row.Probe]
		if !exists {
			row.Gene = make([]string, len(geneCols))
			row.Matched = false
			out.Rows = append(out.Rows, row)
			continue
		}

		for _, meta := range matches {
			joined := row
			joined.Gene = meta
			joined.Matched = true
			out.Rows = append(out.Rows, joined)
		}
	}

	return out, nil
}

// Gene returns the named gene metadata cell of row i, or "".
func (r *Result) Gene(i int, column string) string {
	for j, name := range r.GeneColumns {
		if name == column && j < len(r.Rows[i].Gene) {
			return r.Rows[i].Gene[j]
		}
	}

	return ""
}

// Count returns the number of rows carrying the given Expression_Change.
func (r *Result) Count(change string) int {
	n := 0
	for _, row := range r.Rows {
		if row.Change == change {
			n++
		}
	}

	return n
}

// Table flattens r into Probe_ID, the sample columns, Fold_Change,
// Expression_Change and then the gene metadata columns.
func (r *Result) Table() *table.Table {
	header := make([]string, 0, len(r.Samples)+len(r.GeneColumns)+3)
	header = append(header, ProbeID)
	header = append(header, r.Samples...)
	header = append(header, FoldChangeColumn, ChangeColumn)
	header = append(header, r.GeneColumns...)

	out := &table.Table{
		Header: header,
		Rows:   make([][]string, 0, len(r.Rows)),
	}

	for _, row := range r.Rows {
		cells := make([]string, 0, len(header))
		cells = append(cells, row.Probe)
		for _, v := range row.Values {
			cells = append(cells, table.FormatCell(v))
		}
		cells = append(cells, table.FormatCell(row.FoldChange), row.Change)
		gene := row.Gene
		if len(gene) < len(r.GeneColumns) {
			gene = append(append([]string(nil), gene...), make([]string, len(r.GeneColumns)-len(gene))...)
		}
		cells = append(cells, gene...)
		out.Rows = append(out.Rows, cells)
	}

	return out
}
