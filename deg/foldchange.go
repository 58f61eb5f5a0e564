package deg

import (
	"errors"
	"math"

	"github.com/carbocation/degexplore/table"
	"gonum.org/v1/gonum/stat"
)

// ErrEmptyGroup is returned when no column belongs to a sample group.
var ErrEmptyGroup = errors.New("sample group has no columns")

// GroupMeans returns, for every row of m, the mean of the given value columns.
// NaN cells are skipped; a row without any value is NaN.
func GroupMeans(m *table.Matrix, cols []int) []float64 {
	out := make([]float64, len(m.Values))

	present := make([]float64, 0, len(cols))
	for i, row := range m.Values {
		present = present[:0]
		for _, j := range cols {
			if v := row[j]; !math.IsNaN(v) {
				present = append(present, v)
			}
		}

		if len(present) == 0 {
			out[i] = math.NaN()
			continue
		}

		out[i] = stat.Mean(present, nil)
	}

	return out
}

// FoldChange is the relative difference (tumor-normal)/normal. A zero normal
// mean is not guarded: the result is +/-Inf, or NaN when tumor is also zero.
func FoldChange(tumor, normal float64) float64 {
	return (tumor - normal) / normal
}

// FoldChanges applies FoldChange row by row.
func FoldChanges(tumor, normal []float64) []float64 {
	out := make([]float64, len(tumor))
	for i := range tumor {
		out[i] = FoldChange(tumor[i], normal[i])
	}

	return out
}
