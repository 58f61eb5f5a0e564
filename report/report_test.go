package report

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/carbocation/degexplore/deg"
	"github.com/carbocation/degexplore/table"
)

func testResult() *deg.Result {
	return &deg.Result{
		Samples:     []string{"Tumor", "Normal"},
		GeneColumns: []string{"Chromosome"},
		Rows: []deg.Row{
			{Probe: "P1", Values: []float64{20, 2}, FoldChange: 9, Change: "Higher in Tumor", Gene: []string{"2"}, Matched: true},
			{Probe: "P2", Values: []float64{1, 100}, FoldChange: -6, Change: "Lower in Tumor", Gene: []string{"1"}, Matched: true},
			{Probe: "P3", Values: []float64{3, 0}, FoldChange: math.Inf(1), Change: "Higher in Tumor", Gene: []string{""}},
			{Probe: "P4", Values: []float64{30, 2}, FoldChange: 14, Change: "Higher in Tumor", Gene: []string{"2"}, Matched: true},
		},
	}
}

func TestReportFindingsOnly(t *testing.T) {
	var buf bytes.Buffer
	r := Reporter{W: &buf, Labels: deg.DefaultLabels}
	if err := r.Report(testResult()); err != nil {
		t.Fatal(err)
	}

	if got := buf.String(); got != Findings+"\n" {
		t.Errorf("Expected only the findings, got %q", got)
	}
}

func TestReportWithSummary(t *testing.T) {
	var buf bytes.Buffer
	r := Reporter{W: &buf, Summary: true, Labels: deg.DefaultLabels}
	if err := r.Report(testResult()); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{
		"4 differentially expressed probes: 3 Higher in Tumor, 1 Lower in Tumor",
		"CHROMOSOME",
		"1 probes have a zero normal mean",
		"1 probes have no chromosome annotation",
		"median 9",
		"The heatmap illustrates",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Summary is missing %q:\n%s", want, out)
		}
	}

	if strings.Index(out, "CHROMOSOME") > strings.Index(out, "1. The histograms") {
		t.Error("The summary should come before the findings")
	}
}

func TestFiniteFoldChanges(t *testing.T) {
	finite, infinite := FiniteFoldChanges(testResult())
	if infinite != 1 || len(finite) != 3 || finite[0] != -6 || finite[2] != 14 {
		t.Errorf("Got %v and %d infinite", finite, infinite)
	}
}

func TestDescribe(t *testing.T) {
	d, err := Describe([]float64{-6, 9, 14})
	if err != nil {
		t.Fatal(err)
	}
	if d.Min != -6 || d.Max != 14 || d.Median != 9 || d.MAD != 5 {
		t.Errorf("Unexpected description %+v", d)
	}
	if math.Abs(d.Mean-17.0/3) > 1e-9 || d.SD <= 0 {
		t.Errorf("Unexpected mean %v or SD %v", d.Mean, d.SD)
	}

	if _, err := Describe(nil); err == nil {
		t.Error("Expected an error for empty input")
	}
}

func TestSummarizeRequiresChromosome(t *testing.T) {
	res := testResult()
	res.GeneColumns = []string{"Symbol"}

	var buf bytes.Buffer
	if err := Summarize(&buf, res, deg.DefaultLabels); !errors.Is(err, table.ErrMissingColumn) {
		t.Errorf("Expected ErrMissingColumn, got %v", err)
	}
}
