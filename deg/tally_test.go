package deg

import (
	"reflect"
	"testing"

	"github.com/carbocation/degexplore/table"
)

func TestSortChromosomes(t *testing.T) {
	names := []string{"X", "10", "2", "chr1", "MT", "Un_gl000220", "Y", "1"}
	SortChromosomes(names)

	want := []string{"1", "chr1", "2", "10", "X", "Y", "MT", "Un_gl000220"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("Got %v, expected %v", names, want)
	}
}

func TestTallyByChromosome(t *testing.T) {
	degs := &table.Table{
		Header: []string{"Probe_ID", "Fold_Change", "Expression_Change", "Chromosome"},
		Rows: [][]string{
			{"P1", "9", "Higher in Tumor", "2"},
			{"P2", "-6", "Lower in Tumor", "1"},
			{"P3", "7", "Higher in Tumor", "2"},
			{"P4", "8", "Higher in Tumor", ""},
		},
	}

	tallies, err := TallyByChromosome(degs)
	if err != nil {
		t.Fatal(err)
	}

	// P4 has no chromosome and gets no bin of its own
	if len(tallies) != 2 {
		t.Fatalf("Expected 2 chromosomes, got %+v", tallies)
	}

	if tallies[0].Chromosome != "1" || tallies[0].ByChange["Lower in Tumor"] != 1 {
		t.Errorf("Unexpected first tally %+v", tallies[0])
	}
	if tallies[1].Chromosome != "2" || tallies[1].Total != 2 || tallies[1].ByChange["Higher in Tumor"] != 2 {
		t.Errorf("Unexpected second tally %+v", tallies[1])
	}

	unannotated, err := CountUnannotated(degs)
	if err != nil {
		t.Fatal(err)
	}
	if unannotated != 1 {
		t.Errorf("Expected 1 unannotated row, got %d", unannotated)
	}

	higher, lower, err := CountChanges(degs, DefaultLabels)
	if err != nil {
		t.Fatal(err)
	}
	if higher != 3 || lower != 1 {
		t.Errorf("Got %d higher and %d lower", higher, lower)
	}
}

func TestTallyByChromosomeSkipsUnannotated(t *testing.T) {
	degs := &table.Table{
		Header: []string{"Probe_ID", "Expression_Change", "Chromosome"},
		Rows: [][]string{
			{"P1", "Higher in Tumor", "7"},
			{"P2", "Higher in Tumor", ""},
		},
	}

	tallies, err := TallyByChromosome(degs)
	if err != nil {
		t.Fatal(err)
	}
	if len(tallies) != 1 || tallies[0].Chromosome != "7" || tallies[0].Total != 1 {
		t.Fatalf("Expected a single bin for chromosome 7, got %+v", tallies)
	}

	// Only unannotated rows: nothing to tally
	degs.Rows = degs.Rows[1:]
	if tallies, err := TallyByChromosome(degs); err != nil || len(tallies) != 0 {
		t.Errorf("Expected no bins, got %+v (%v)", tallies, err)
	}
}
