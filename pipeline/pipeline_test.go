package pipeline

import (
	"bytes"
	"context"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/carbocation/degexplore/config"
	"github.com/carbocation/degexplore/deg"
	"github.com/carbocation/degexplore/report"
	"github.com/carbocation/degexplore/table"
)

type memoryLoader struct {
	expression *table.Matrix
	genes      *table.Table
	samples    []*table.Sample
	err        error
}

func (l memoryLoader) Expression(context.Context) (*table.Matrix, error) { return l.expression, l.err }
func (l memoryLoader) Genes(context.Context) (*table.Table, error)       { return l.genes, nil }
func (l memoryLoader) Samples(context.Context) ([]*table.Sample, error)  { return l.samples, nil }

type recordingVisualizer struct {
	calls []string
	degs  *table.Table
	m     *table.Matrix
}

func (v *recordingVisualizer) ChromosomeCounts(_ context.Context, degs *table.Table) error {
	v.calls = append(v.calls, "a")
	v.degs = degs
	return nil
}

func (v *recordingVisualizer) ChromosomeCountsByChange(context.Context, *table.Table) error {
	v.calls = append(v.calls, "b")
	return nil
}

func (v *recordingVisualizer) ChangeCounts(context.Context, *table.Table) error {
	v.calls = append(v.calls, "c")
	return nil
}

func (v *recordingVisualizer) Heatmap(_ context.Context, m *table.Matrix) error {
	v.calls = append(v.calls, "d")
	v.m = m
	return nil
}

func (v *recordingVisualizer) Clustermap(context.Context, *table.Matrix) error {
	v.calls = append(v.calls, "e")
	return nil
}

func testInputs() memoryLoader {
	return memoryLoader{
		expression: &table.Matrix{
			Header: []string{" ID_REF", "A ", "B", "C"},
			Probes: []string{"P1", "P2", "P3", "P4"},
			Values: [][]float64{
				{10, 10, 2},
				{20, 20, 2},
				{1, 1, 100},
				{3, 3, 0},
			},
		},
		genes: &table.Table{
			Header: []string{"Probe_ID", "Chromosome", "Symbol"},
			Rows: [][]string{
				{"P1", "1", "AAA"},
				{"P2", "7", "EGFR"},
			},
		},
		samples: []*table.Sample{
			{SampleID: "A", Phenotype: "Tumor"},
			{SampleID: "B", Phenotype: "Tumor"},
			{SampleID: "C", Phenotype: "Normal"},
		},
	}
}

func TestAnalyze(t *testing.T) {
	in := testInputs()

	out, err := Analyze(config.Default().Analysis, in.expression, in.genes, in.samples)
	if err != nil {
		t.Fatal(err)
	}

	wantHeader := []string{"Probe_ID", "Tumor_1", "Tumor_2", "Normal", "Fold_Change"}
	if !reflect.DeepEqual(out.Matrix.Header, wantHeader) {
		t.Fatalf("Got header %v, expected %v", out.Matrix.Header, wantHeader)
	}

	// Every row carries (tumor-normal)/normal, including the zero normal mean
	for i, row := range out.Matrix.Values {
		fc := row[len(row)-1]
		want := (out.TumorMeans[i] - out.NormalMeans[i]) / out.NormalMeans[i]
		if fc != want && !(math.IsNaN(fc) && math.IsNaN(want)) {
			t.Errorf("Row %d: fold change %v, expected %v", i, fc, want)
		}
	}
	if out.FoldChanges[0] != 4 || out.FoldChanges[1] != 9 || !math.IsInf(out.FoldChanges[3], 1) {
		t.Errorf("Unexpected fold changes %v", out.FoldChanges)
	}

	// P1 (4) is not selected; P2 (9) and P4 (+Inf) are. P4 has no annotation
	// but is kept.
	got := make([]string, 0)
	for _, row := range out.Result.Rows {
		got = append(got, row.Probe+":"+row.Change)
	}
	want := []string{"P2:Higher in Tumor", "P4:Higher in Tumor"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Got %v, expected %v", got, want)
	}

	if out.Result.Gene(0, "Symbol") != "EGFR" || out.Result.Rows[1].Matched || out.Result.Gene(1, "Chromosome") != "" {
		t.Errorf("Unexpected join %+v", out.Result.Rows)
	}

	// The input matrix is not modified
	if in.expression.Header[1] != "A " || len(in.expression.Values[0]) != 3 {
		t.Error("Analyze modified its input")
	}
}

func TestAnalyzeErrors(t *testing.T) {
	in := testInputs()
	opts := config.Default().Analysis

	noNormal := append([]*table.Sample(nil), in.samples[:2]...)
	if _, err := Analyze(opts, in.expression, in.genes, noNormal); !errors.Is(err, deg.ErrEmptyGroup) {
		t.Errorf("Expected ErrEmptyGroup, got %v", err)
	}

	noChromosome := &table.Table{Header: []string{"Probe_ID", "Symbol"}}
	if _, err := Analyze(opts, in.expression, noChromosome, in.samples); !errors.Is(err, table.ErrMissingColumn) {
		t.Errorf("Expected ErrMissingColumn, got %v", err)
	}
}

func TestRun(t *testing.T) {
	in := testInputs()
	vis := &recordingVisualizer{}
	var buf bytes.Buffer

	out, err := Run(context.Background(), config.Default(), in, vis, report.Reporter{W: &buf, Labels: deg.DefaultLabels})
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(vis.calls, []string{"a", "b", "c", "d", "e"}) {
		t.Errorf("Charts rendered out of order: %v", vis.calls)
	}

	if vis.degs.Index(deg.ChangeColumn) < 0 || vis.degs.Index(deg.Chromosome) < 0 || len(vis.degs.Rows) != len(out.Result.Rows) {
		t.Errorf("Unexpected DEG table %+v", vis.degs)
	}

	if vis.m != out.Matrix || vis.m.Header[len(vis.m.Header)-1] != deg.FoldChangeColumn {
		t.Error("The heatmap should receive the full matrix with Fold_Change")
	}

	if !strings.Contains(buf.String(), "1. The histograms indicate") {
		t.Errorf("Missing findings in %q", buf.String())
	}
}

func TestRunLoaderError(t *testing.T) {
	in := testInputs()
	in.err = errors.New("boom")
	vis := &recordingVisualizer{}

	if _, err := Run(context.Background(), config.Default(), in, vis, report.Reporter{W: &bytes.Buffer{}}); err == nil {
		t.Fatal("Expected the loader error")
	}
	if len(vis.calls) != 0 {
		t.Error("Nothing should be rendered after a load failure")
	}
}
