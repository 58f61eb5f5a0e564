package deg

import (
	"sort"
	"strconv"
	"strings"

	"github.com/carbocation/degexplore/table"
)

// Tally counts the DEGs on one chromosome, split by Expression_Change.
type Tally struct {
	Chromosome string
	Total      int
	ByChange   map[string]int
}

// TallyByChromosome counts the rows of a flattened DEG table per chromosome.
// Rows without a chromosome, such as probes absent from the gene metadata, are
// not counted. The result is in chromosome order (see SortChromosomes).
func TallyByChromosome(degs *table.Table) ([]Tally, error) {
	if err := table.RequireColumns(degs, Chromosome, ChangeColumn); err != nil {
		return nil, err
	}
	chrIdx, changeIdx := degs.Index(Chromosome), degs.Index(ChangeColumn)

	byChr := make(map[string]*Tally)
	for _, row := range degs.Rows {
		chr := strings.TrimSpace(row[chrIdx])
		if chr == "" {
			continue
		}

		t, exists := byChr[chr]
		if !exists {
			t = &Tally{Chromosome: chr, ByChange: make(map[string]int)}
			byChr[chr] = t
		}
		t.Total++
		t.ByChange[row[changeIdx]]++
	}

	names := make([]string, 0, len(byChr))
	for chr := range byChr {
		names = append(names, chr)
	}
	SortChromosomes(names)

	out := make([]Tally, 0, len(names))
	for _, chr := range names {
		out = append(out, *byChr[chr])
	}

	return out, nil
}

// CountUnannotated counts the rows of a flattened DEG table that carry no
// chromosome.
func CountUnannotated(degs *table.Table) (int, error) {
	chromosomes, err := degs.Column(Chromosome)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, chr := range chromosomes {
		if strings.TrimSpace(chr) == "" {
			n++
		}
	}

	return n, nil
}

// CountChanges counts the rows of a flattened DEG table whose
// Expression_Change equals each label.
func CountChanges(degs *table.Table, labels Labels) (higher, lower int, err error) {
	changes, err := degs.Column(ChangeColumn)
	if err != nil {
		return 0, 0, err
	}

	for _, v := range changes {
		switch v {
		case labels.Higher:
			higher++
		case labels.Lower:
			lower++
		}
	}

	return higher, lower, nil
}

// chromosomeRank follows the Plink numbering system (See
// https://zzz.bwh.harvard.edu/plink/data.shtml ) so that X, Y, XY and MT sort
// after the autosomes. Anything else sorts after MT.
func chromosomeRank(chr string) int {
	name := strings.TrimPrefix(strings.ToLower(chr), "chr")
	if n, err := strconv.Atoi(name); err == nil {
		return n
	}

	switch name {
	case "x":
		return 23
	case "y":
		return 24
	case "xy":
		return 25
	case "mt", "m":
		return 26
	}

	return 1 << 20
}

// SortChromosomes sorts chromosome names in genome order.
func SortChromosomes(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		ri, rj := chromosomeRank(names[i]), chromosomeRank(names[j])
		if ri != rj {
			return ri < rj
		}
		return names[i] < names[j]
	})
}
