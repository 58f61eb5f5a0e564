// Package plot renders the exploratory charts of a DEG analysis as PNG files
// and hands each one to a Viewer before moving on to the next.
package plot

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/carbocation/degexplore/config"
	"github.com/carbocation/degexplore/deg"
	"github.com/carbocation/degexplore/table"
	"github.com/carbocation/pfx"
)

type Renderer struct {
	OutputDir string
	Charts    config.Charts
	Labels    deg.Labels
	Palette   Diverging
	Viewer    Viewer
}

func NewRenderer(cfg config.Config, viewer Viewer) (*Renderer, error) {
	palette, err := NewDiverging(cfg.Charts.Palette)
	if err != nil {
		return nil, err
	}

	if viewer == nil {
		viewer = FileViewer{}
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, pfx.Err(err)
	}

	return &Renderer{
		OutputDir: cfg.OutputDir,
		Charts:    cfg.Charts,
		Labels:    deg.Labels{Higher: cfg.Analysis.HigherLabel, Lower: cfg.Analysis.LowerLabel},
		Palette:   palette,
		Viewer:    viewer,
	}, nil
}

func (r *Renderer) ChromosomeCounts(ctx context.Context, degs *table.Table) error {
	return r.render(ctx, r.Charts.ByChromosome, func(w io.Writer) error {
		return ChromosomeCounts(w, r.Charts.ByChromosome, degs)
	})
}

func (r *Renderer) ChromosomeCountsByChange(ctx context.Context, degs *table.Table) error {
	return r.render(ctx, r.Charts.ByChromosomeAndChange, func(w io.Writer) error {
		return ChromosomeCountsByChange(w, r.Charts.ByChromosomeAndChange, r.Labels, degs)
	})
}

func (r *Renderer) ChangeCounts(ctx context.Context, degs *table.Table) error {
	return r.render(ctx, r.Charts.ChangeCounts, func(w io.Writer) error {
		return ChangeCounts(w, r.Charts.ChangeCounts, r.Charts, r.Labels, degs)
	})
}

func (r *Renderer) Heatmap(ctx context.Context, m *table.Matrix) error {
	return r.render(ctx, r.Charts.Heatmap, func(w io.Writer) error {
		return Heatmap(w, r.Charts.Heatmap, r.Palette, m)
	})
}

func (r *Renderer) Clustermap(ctx context.Context, m *table.Matrix) error {
	return r.render(ctx, r.Charts.Clustermap, func(w io.Writer) error {
		return Clustermap(w, r.Charts.Clustermap, r.Palette, m)
	})
}

// render writes one chart to its file and then blocks in the viewer.
func (r *Renderer) render(ctx context.Context, c config.Chart, draw func(io.Writer) error) error {
	path := filepath.Join(r.OutputDir, c.Filename)

	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}

	if err := draw(f); err != nil {
		// Don't leave a truncated PNG behind
		f.Close()
		os.Remove(path)
		return pfx.Err(err)
	}

	if err := f.Close(); err != nil {
		return pfx.Err(err)
	}

	return r.Viewer.View(ctx, path)
}
