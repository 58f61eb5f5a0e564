package plot

import (
	"image"
	"io"
	"math"

	"github.com/carbocation/degexplore/cluster"
	"github.com/carbocation/degexplore/config"
	"github.com/carbocation/degexplore/table"
	"github.com/carbocation/pfx"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// Row labels are only drawn when they fit.
const maxRowLabels = 60

// Heatmap draws every cell of m, probes down and columns across, colored on a
// diverging scale centered at zero.
func Heatmap(w io.Writer, c config.Chart, palette Diverging, m *table.Matrix) error {
	if len(m.Probes) == 0 || len(m.Columns()) == 0 {
		return emptyChart(w, c, "The expression matrix is empty")
	}

	dc := newContext(c)
	drawTitle(dc, c.Title)

	left := rowLabelWidth(dc, m.Probes) + 40
	area := rect{X: left, Y: 50, W: float64(c.Width) - left - 110, H: float64(c.Height) - 50 - 110}

	rowOrder, colOrder := identity(len(m.Probes)), identity(len(m.Columns()))
	limit := Limit(m.Values)

	drawCells(dc, area, m, rowOrder, colOrder, palette, limit)
	drawColumnLabels(dc, area, m, colOrder)
	drawRowLabels(dc, area, m, rowOrder, area.X-4, 1)
	drawColorbar(dc, rect{X: area.X + area.W + 30, Y: area.Y, W: 16, H: area.H}, palette, limit)

	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(c.XLabel, area.X+area.W/2, float64(c.Height)-12, 0.5, 0.5)
	drawRotated(dc, c.YLabel, 14, area.Y+area.H/2, -90, 0.5, 0.5)

	return pfx.Err(dc.EncodePNG(w))
}

// Clustermap draws the same matrix as Heatmap with probes and columns
// reordered by average-linkage clustering, and the dendrograms alongside.
func Clustermap(w io.Writer, c config.Chart, palette Diverging, m *table.Matrix) error {
	if len(m.Probes) == 0 || len(m.Columns()) == 0 {
		return emptyChart(w, c, "The expression matrix is empty")
	}

	rows := cluster.Linkage(m.Values)
	cols := cluster.Linkage(cluster.Transpose(m.Values))

	dc := newContext(c)
	drawTitle(dc, c.Title)

	const dendroSize = 120.0
	right := rowLabelWidth(dc, m.Probes) + 10
	area := rect{X: 10 + dendroSize, Y: 50 + dendroSize, W: float64(c.Width) - 10 - dendroSize - right - 90, H: float64(c.Height) - 50 - dendroSize - 110}
	limit := Limit(m.Values)

	drawCells(dc, area, m, rows.Order, cols.Order, palette, limit)
	drawColumnLabels(dc, area, m, cols.Order)
	drawRowLabels(dc, area, m, rows.Order, area.X+area.W+4, 0)
	drawColorbar(dc, rect{X: float64(c.Width) - 70, Y: area.Y, W: 16, H: area.H}, palette, limit)

	cellH := area.H / float64(len(m.Probes))
	cellW := area.W / float64(len(m.Columns()))

	// Row dendrogram: leaves at the heatmap's left edge, root toward the
	// image edge.
	drawDendrogram(dc, rows, func(pos, depth float64) (float64, float64) {
		return area.X - 4 - depth*(dendroSize-10), area.Y + (pos+0.5)*cellH
	})

	// Column dendrogram: leaves at the heatmap's top edge.
	drawDendrogram(dc, cols, func(pos, depth float64) (float64, float64) {
		return area.X + (pos+0.5)*cellW, area.Y - 4 - depth*(dendroSize-10)
	})

	return pfx.Err(dc.EncodePNG(w))
}

func drawCells(dc *gg.Context, area rect, m *table.Matrix, rowOrder, colOrder []int, palette Diverging, limit float64) {
	// One pixel per cell, scaled up (or down, for large matrices) to the area
	raster := image.NewNRGBA(image.Rect(0, 0, len(colOrder), len(rowOrder)))
	for y, i := range rowOrder {
		for x, j := range colOrder {
			raster.Set(x, y, palette.At(m.Values[i][j], limit))
		}
	}

	width, height := int(math.Round(area.W)), int(math.Round(area.H))
	if width < 1 || height < 1 {
		return
	}

	dc.DrawImage(imaging.Resize(raster, width, height, imaging.NearestNeighbor), int(math.Round(area.X)), int(math.Round(area.Y)))
}

func drawColumnLabels(dc *gg.Context, area rect, m *table.Matrix, colOrder []int) {
	cellW := area.W / float64(len(colOrder))
	cols := m.Columns()

	dc.SetRGB(0, 0, 0)
	for x, j := range colOrder {
		drawRotated(dc, cols[j], area.X+(float64(x)+0.5)*cellW, area.Y+area.H+6, -90, 1, 0.5)
	}
}

func drawRowLabels(dc *gg.Context, area rect, m *table.Matrix, rowOrder []int, x, anchor float64) {
	if len(rowOrder) > maxRowLabels {
		return
	}

	cellH := area.H / float64(len(rowOrder))

	dc.SetRGB(0, 0, 0)
	for y, i := range rowOrder {
		dc.DrawStringAnchored(m.Probes[i], x, area.Y+(float64(y)+0.5)*cellH, anchor, 0.5)
	}
}

func drawColorbar(dc *gg.Context, bar rect, palette Diverging, limit float64) {
	steps := int(bar.H)
	for k := 0; k < steps; k++ {
		v := limit - 2*limit*float64(k)/float64(steps)
		dc.SetColor(palette.At(v, limit))
		dc.DrawRectangle(bar.X, bar.Y+float64(k), bar.W, 1)
		dc.Fill()
	}

	dc.SetRGB(0, 0, 0)
	for _, tick := range []struct {
		v float64
		y float64
	}{
		{limit, bar.Y},
		{0, bar.Y + bar.H/2},
		{-limit, bar.Y + bar.H},
	} {
		dc.DrawStringAnchored(formatTick(tick.v), bar.X+bar.W+4, tick.y, 0, 0.5)
	}
}

// drawDendrogram draws the merges of d. at maps a leaf position (in cells,
// along the leaf axis) and a depth (0 at the leaves, 1 at the root) to pixel
// coordinates.
func drawDendrogram(dc *gg.Context, d cluster.Dendrogram, at func(pos, depth float64) (float64, float64)) {
	if len(d.Merges) == 0 {
		return
	}

	maxHeight := d.Merges[len(d.Merges)-1].Height
	if maxHeight <= 0 {
		maxHeight = 1
	}

	pos := make([]float64, d.Leaves+len(d.Merges))
	depth := make([]float64, d.Leaves+len(d.Merges))
	for i, leaf := range d.Order {
		pos[leaf] = float64(i)
	}

	dc.SetRGB(0.2, 0.2, 0.2)
	dc.SetLineWidth(1)
	for k, merge := range d.Merges {
		id := d.Leaves + k
		pos[id] = (pos[merge.A] + pos[merge.B]) / 2
		depth[id] = merge.Height / maxHeight

		for _, child := range []int{merge.A, merge.B} {
			x1, y1 := at(pos[child], depth[child])
			x2, y2 := at(pos[child], depth[id])
			dc.DrawLine(x1, y1, x2, y2)
		}
		x1, y1 := at(pos[merge.A], depth[id])
		x2, y2 := at(pos[merge.B], depth[id])
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
	}
}

func rowLabelWidth(dc *gg.Context, probes []string) float64 {
	if len(probes) > maxRowLabels {
		return 0
	}

	widest := 0.0
	for _, p := range probes {
		if w, _ := dc.MeasureString(p); w > widest {
			widest = w
		}
	}

	return widest
}

func identity(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}

	return out
}
