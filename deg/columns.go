// Package deg finds differentially expressed genes: it renames expression
// columns to phenotypes, averages the tumor and normal groups per probe,
// computes fold change and keeps the probes that pass the threshold.
package deg

import (
	"fmt"
	"strings"

	"github.com/carbocation/degexplore/table"
)

// Column names used throughout the pipeline.
const (
	ProbeID          = "Probe_ID"
	Chromosome       = "Chromosome"
	FoldChangeColumn = "Fold_Change"
	ChangeColumn     = "Expression_Change"
)

// NormalizeColumns produces the new header for an expression matrix. Header
// names are whitespace-trimmed, and every name after the first is replaced by
// its phenotype when it is a known sample ID. A label that occurs more than
// once in the resulting list gets "_<position>" appended at every one of its
// occurrences (not just the repeats), where position is the column's index in
// the full header. The first column is always renamed to Probe_ID.
func NormalizeColumns(header []string, phenotypes map[string]string) []string {
	if len(header) < 1 {
		return nil
	}

	header = table.TrimHeader(header)

	labels := make([]string, 0, len(header)-1)
	for _, col := range header[1:] {
		if pheno, exists := phenotypes[col]; exists {
			labels = append(labels, pheno)
			continue
		}
		labels = append(labels, col)
	}

	// Counts come from the unsuffixed list, so the first occurrence of a
	// duplicate is suffixed too.
	counts := make(map[string]int, len(labels))
	for _, label := range labels {
		counts[label]++
	}

	out := make([]string, 0, len(header))
	out = append(out, ProbeID)
	for i, label := range labels {
		if counts[label] > 1 {
			label = fmt.Sprintf("%s_%d", label, i+1)
		}
		out = append(out, label)
	}

	return out
}

// SplitGroups returns the value-column indices (0-based, excluding the probe
// column) whose header label contains marker as a substring.
func SplitGroups(header []string, marker string) ([]int, error) {
	out := make([]int, 0)
	if len(header) < 2 {
		return nil, fmt.Errorf("%w: %q (no sample columns)", ErrEmptyGroup, marker)
	}

	for j, col := range header[1:] {
		if strings.Contains(col, marker) {
			out = append(out, j)
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no column contains %q (have %s)", ErrEmptyGroup, marker, strings.Join(header[1:], ", "))
	}

	return out, nil
}
