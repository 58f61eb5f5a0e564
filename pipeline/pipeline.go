// Package pipeline runs a DEG analysis: load, normalize, aggregate, filter,
// join, then render and report. Loading, rendering and reporting are done by
// injected collaborators; the analysis itself is pure.
package pipeline

import (
	"context"
	"fmt"
	"log"

	"github.com/carbocation/degexplore/config"
	"github.com/carbocation/degexplore/deg"
	"github.com/carbocation/degexplore/table"
)

type Loader interface {
	Expression(ctx context.Context) (*table.Matrix, error)
	Genes(ctx context.Context) (*table.Table, error)
	Samples(ctx context.Context) ([]*table.Sample, error)
}

// Visualizer renders the five charts. Each call returns only once its chart
// has been dismissed.
type Visualizer interface {
	ChromosomeCounts(ctx context.Context, degs *table.Table) error
	ChromosomeCountsByChange(ctx context.Context, degs *table.Table) error
	ChangeCounts(ctx context.Context, degs *table.Table) error
	Heatmap(ctx context.Context, m *table.Matrix) error
	Clustermap(ctx context.Context, m *table.Matrix) error
}

type Reporter interface {
	Report(res *deg.Result) error
}

// Outcome holds every derived table of an analysis.
type Outcome struct {
	// Renamed expression matrix with the Fold_Change column appended
	Matrix *table.Matrix

	TumorMeans  []float64
	NormalMeans []float64
	FoldChanges []float64

	// Filtered and annotated DEGs
	Result *deg.Result
}

// Analyze computes the DEGs. It does no I/O.
func Analyze(opts config.Analysis, expression *table.Matrix, genes *table.Table, samples []*table.Sample) (*Outcome, error) {
	if err := table.RequireColumns(genes, deg.ProbeID, deg.Chromosome); err != nil {
		return nil, fmt.Errorf("gene information: %w", err)
	}

	renamed, err := expression.Rename(deg.NormalizeColumns(expression.Header, table.Phenotypes(samples)))
	if err != nil {
		return nil, err
	}

	tumorCols, err := deg.SplitGroups(renamed.Header, opts.TumorMarker)
	if err != nil {
		return nil, err
	}
	normalCols, err := deg.SplitGroups(renamed.Header, opts.NormalMarker)
	if err != nil {
		return nil, err
	}

	out := &Outcome{
		TumorMeans:  deg.GroupMeans(renamed, tumorCols),
		NormalMeans: deg.GroupMeans(renamed, normalCols),
	}
	out.FoldChanges = deg.FoldChanges(out.TumorMeans, out.NormalMeans)

	out.Matrix, err = renamed.WithColumn(deg.FoldChangeColumn, out.FoldChanges)
	if err != nil {
		return nil, err
	}

	labels := deg.Labels{Higher: opts.HigherLabel, Lower: opts.LowerLabel}
	filtered, err := deg.Filter(renamed, out.FoldChanges, opts.Threshold, labels)
	if err != nil {
		return nil, err
	}

	out.Result, err = deg.LeftJoin(filtered, genes)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Run loads the inputs, analyzes them, renders the charts in order and then
// reports.
func Run(ctx context.Context, cfg config.Config, loader Loader, vis Visualizer, rep Reporter) (*Outcome, error) {
	expression, err := loader.Expression(ctx)
	if err != nil {
		return nil, err
	}
	genes, err := loader.Genes(ctx)
	if err != nil {
		return nil, err
	}
	samples, err := loader.Samples(ctx)
	if err != nil {
		return nil, err
	}

	out, err := Analyze(cfg.Analysis, expression, genes, samples)
	if err != nil {
		return nil, err
	}
	log.Printf("%d of %d probes have an absolute fold change above %v\n", len(out.Result.Rows), len(out.Matrix.Probes), cfg.Analysis.Threshold)

	degs := out.Result.Table()
	for _, render := range []func() error{
		func() error { return vis.ChromosomeCounts(ctx, degs) },
		func() error { return vis.ChromosomeCountsByChange(ctx, degs) },
		func() error { return vis.ChangeCounts(ctx, degs) },
		func() error { return vis.Heatmap(ctx, out.Matrix) },
		func() error { return vis.Clustermap(ctx, out.Matrix) },
	} {
		if err := render(); err != nil {
			return out, err
		}
	}

	return out, rep.Report(out.Result)
}
