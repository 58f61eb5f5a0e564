package deg

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/carbocation/degexplore/table"
)

func TestNormalizeColumns(t *testing.T) {
	phenotypes := map[string]string{"A": "Tumor", "B": "Tumor", "C": "Normal"}

	got := NormalizeColumns([]string{"Probe_ID", "A", "B", "C"}, phenotypes)
	want := []string{"Probe_ID", "Tumor_1", "Tumor_2", "Normal"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Got %v, expected %v", got, want)
	}
}

func TestNormalizeColumnsQuirks(t *testing.T) {
	for _, v := range []struct {
		header []string
		want   []string
	}{
		// Whitespace is stripped before lookup, unknown IDs are kept, and the
		// probe column is always renamed.
		{[]string{" ID ", " A", "X "}, []string{"Probe_ID", "Tumor", "X"}},

		// Non-adjacent duplicates keep their own positions
		{[]string{"ID", "A", "C", "B", "D"}, []string{"Probe_ID", "Tumor_1", "Normal", "Tumor_3", "D"}},

		// A suffixed name may collide with an existing label; it is kept as is
		{[]string{"ID", "A", "B", "Tumor_2"}, []string{"Probe_ID", "Tumor_1", "Tumor_2", "Tumor_2"}},

		{[]string{"ID"}, []string{"Probe_ID"}},
	} {
		got := NormalizeColumns(v.header, map[string]string{"A": "Tumor", "B": "Tumor", "C": "Normal"})
		if !reflect.DeepEqual(got, v.want) {
			t.Errorf("%v: got %v, expected %v", v.header, got, v.want)
		}
	}
}

func TestSplitGroups(t *testing.T) {
	header := []string{"Probe_ID", "Tumor_1", "Tumor_2", "Normal", "Other"}

	tumor, err := SplitGroups(header, "Tumor")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(tumor, []int{0, 1}) {
		t.Errorf("Tumor columns: %v", tumor)
	}

	normal, err := SplitGroups(header, "Normal")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(normal, []int{2}) {
		t.Errorf("Normal columns: %v", normal)
	}

	if _, err := SplitGroups(header, "Metastasis"); !errors.Is(err, ErrEmptyGroup) {
		t.Errorf("Expected ErrEmptyGroup, got %v", err)
	}
}

func TestGroupMeansSkipsNaN(t *testing.T) {
	m := &table.Matrix{
		Header: []string{"Probe_ID", "T1", "T2", "N"},
		Probes: []string{"P1", "P2", "P3"},
		Values: [][]float64{
			{10, 20, 2},
			{10, math.NaN(), 2},
			{math.NaN(), math.NaN(), 2},
		},
	}

	got := GroupMeans(m, []int{0, 1})
	if got[0] != 15 || got[1] != 10 || !math.IsNaN(got[2]) {
		t.Fatalf("Unexpected means %v", got)
	}
}

func TestFoldChange(t *testing.T) {
	for _, v := range []struct {
		tumor, normal, want float64
	}{
		{10, 2, 4},
		{20, 2, 9},
		{1, 4, -0.75},
		{3, 0, math.Inf(1)},
		{-3, 0, math.Inf(-1)},
	} {
		if got := FoldChange(v.tumor, v.normal); got != v.want {
			t.Errorf("FoldChange(%v, %v) = %v, expected %v", v.tumor, v.normal, got, v.want)
		}
	}

	if got := FoldChange(0, 0); !math.IsNaN(got) {
		t.Errorf("FoldChange(0, 0) = %v, expected NaN", got)
	}
}

func TestFilterAndLabel(t *testing.T) {
	m := &table.Matrix{
		Header: []string{"Probe_ID", "Tumor_1", "Tumor_2", "Normal"},
		Probes: []string{"P1", "P2", "P3", "P4", "P5", "P6"},
		Values: [][]float64{
			{10, 10, 2},
			{20, 20, 2},
			{1, 1, 100},
			{3, 3, 0},
			{0, 0, 0},
			{12, 12, 2},
		},
	}

	fc := FoldChanges(GroupMeans(m, []int{0, 1}), GroupMeans(m, []int{2}))

	res, err := Filter(m, fc, 5, DefaultLabels)
	if err != nil {
		t.Fatal(err)
	}

	probes := make([]string, 0)
	for _, row := range res.Rows {
		probes = append(probes, row.Probe)
		if (row.Change == DefaultLabels.Higher) != (row.FoldChange > 0) {
			t.Errorf("%s: label %q does not agree with fold change %v", row.Probe, row.Change, row.FoldChange)
		}
		if !Passes(row.FoldChange, 5) {
			t.Errorf("%s: fold change %v should not have passed", row.Probe, row.FoldChange)
		}
	}

	// P1 has a fold change of exactly 4 and P6 of exactly 5; neither passes.
	// P3 is -0.99. P5 is NaN.
	if want := []string{"P2", "P4"}; !reflect.DeepEqual(probes, want) {
		t.Fatalf("Got %v, expected %v", probes, want)
	}

	if res.Rows[0].FoldChange != 9 || res.Rows[0].Change != "Higher in Tumor" {
		t.Errorf("Unexpected P2 row %+v", res.Rows[0])
	}
	if !math.IsInf(res.Rows[1].FoldChange, 1) {
		t.Errorf("Expected P4 fold change to be +Inf, got %v", res.Rows[1].FoldChange)
	}

	if _, err := Filter(m, fc[:2], 5, DefaultLabels); err == nil {
		t.Error("Expected an error for misaligned fold changes")
	}
}

func TestLabelBoundary(t *testing.T) {
	if got := DefaultLabels.Label(0); got != "Lower in Tumor" {
		t.Errorf("Zero fold change labeled %q", got)
	}
	if got := DefaultLabels.Label(-7); got != "Lower in Tumor" {
		t.Errorf("Negative fold change labeled %q", got)
	}
	if got := DefaultLabels.Label(math.NaN()); got != "Lower in Tumor" {
		t.Errorf("NaN fold change labeled %q", got)
	}
}

func TestLeftJoin(t *testing.T) {
	res := &Result{
		Samples: []string{"Tumor", "Normal"},
		Rows: []Row{
			{Probe: "P1", Values: []float64{20, 2}, FoldChange: 9, Change: "Higher in Tumor"},
			{Probe: "P2", Values: []float64{1, 100}, FoldChange: -6, Change: "Lower in Tumor"},
			{Probe: "P3", Values: []float64{30, 2}, FoldChange: 14, Change: "Higher in Tumor"},
		},
	}

	genes := &table.Table{
		Header: []string{"Chromosome", "Probe_ID", "Symbol"},
		Rows: [][]string{
			{"7", "P1", "EGFR"},
			{"17", "P3", "TP53"},
			{"X", "P3", "TP53-AS"},
		},
	}

	joined, err := LeftJoin(res, genes)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(joined.GeneColumns, []string{"Chromosome", "Symbol"}) {
		t.Fatalf("Unexpected gene columns %v", joined.GeneColumns)
	}

	if len(joined.Rows) != 4 {
		t.Fatalf("Expected 4 joined rows, got %d", len(joined.Rows))
	}

	if joined.Rows[1].Probe != "P2" || joined.Rows[1].Matched || joined.Gene(1, "Chromosome") != "" {
		t.Errorf("Unmatched probe should be kept with empty metadata: %+v", joined.Rows[1])
	}

	if joined.Gene(0, "Symbol") != "EGFR" || joined.Gene(3, "Chromosome") != "X" {
		t.Errorf("Unexpected joined metadata %+v", joined.Rows)
	}

	tab := joined.Table()
	wantHeader := []string{"Probe_ID", "Tumor", "Normal", "Fold_Change", "Expression_Change", "Chromosome", "Symbol"}
	if !reflect.DeepEqual(tab.Header, wantHeader) {
		t.Fatalf("Got header %v, expected %v", tab.Header, wantHeader)
	}
	if want := []string{"P2", "1", "100", "-6", "Lower in Tumor", "", ""}; !reflect.DeepEqual(tab.Rows[1], want) {
		t.Errorf("Got row %v, expected %v", tab.Rows[1], want)
	}

	if _, err := LeftJoin(res, &table.Table{Header: []string{"Chromosome"}}); !errors.Is(err, table.ErrMissingColumn) {
		t.Errorf("Expected ErrMissingColumn, got %v", err)
	}
}
