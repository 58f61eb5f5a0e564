package plot

import (
	"image/color"
	"io"
	"math"

	"github.com/carbocation/degexplore/config"
	"github.com/carbocation/degexplore/deg"
	"github.com/carbocation/degexplore/table"
	"github.com/carbocation/pfx"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const noDEGs = "No differentially expressed genes passed the threshold"

var (
	barColor   = drawing.ColorFromHex("4c72b0")
	upColor    = drawing.ColorFromHex("a1c9f4")
	downColor  = drawing.ColorFromHex("ffb482")
	stackOrder = []color.RGBA{{R: 0x4c, G: 0x72, B: 0xb0, A: 255}, {R: 0xdd, G: 0x84, B: 0x52, A: 255}, {R: 0x55, G: 0xa8, B: 0x68, A: 255}}
)

// ChromosomeCounts draws one bar per chromosome holding the number of DEGs
// on it.
func ChromosomeCounts(w io.Writer, c config.Chart, degs *table.Table) error {
	tallies, err := deg.TallyByChromosome(degs)
	if err != nil {
		return err
	}

	if len(tallies) == 0 {
		return emptyChart(w, c, noDEGs)
	}

	bars := make([]chart.Value, 0, len(tallies))
	max := 0
	for _, t := range tallies {
		bars = append(bars, chart.Value{
			Label: t.Chromosome,
			Value: float64(t.Total),
			Style: chart.Style{FillColor: barColor, StrokeColor: barColor},
		})
		if t.Total > max {
			max = t.Total
		}
	}

	return renderBars(w, c, bars, max)
}

// ChangeCounts draws two bars: the number of up- and down-regulated DEGs.
func ChangeCounts(w io.Writer, c config.Chart, charts config.Charts, labels deg.Labels, degs *table.Table) error {
	higher, lower, err := deg.CountChanges(degs, labels)
	if err != nil {
		return err
	}

	bars := []chart.Value{
		{Label: charts.UpLabel, Value: float64(higher), Style: chart.Style{FillColor: upColor, StrokeColor: upColor}},
		{Label: charts.DownLabel, Value: float64(lower), Style: chart.Style{FillColor: downColor, StrokeColor: downColor}},
	}

	max := higher
	if lower > max {
		max = lower
	}

	return renderBars(w, c, bars, max)
}

func renderBars(w io.Writer, c config.Chart, bars []chart.Value, max int) error {
	barWidth := int(0.6 * float64(c.Width-120) / float64(len(bars)))
	if barWidth < 4 {
		barWidth = 4
	}

	graph := chart.BarChart{
		Title:  c.Title,
		Width:  c.Width,
		Height: c.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 40},
		},
		BarWidth: barWidth,
		XAxis:    chart.Style{TextRotationDegrees: 45.0},
		YAxis: chart.YAxis{
			Name: c.YLabel,
			// An explicit range keeps all-zero counts drawable
			Range:          &chart.ContinuousRange{Min: 0, Max: math.Max(1, float64(max))},
			ValueFormatter: chart.IntValueFormatter,
		},
		Bars: bars,
	}
	if c.XLabel != "" {
		graph.Elements = []chart.Renderable{xAxisName(c.XLabel, c.Height)}
	}

	return pfx.Err(graph.Render(chart.PNG, w))
}

// xAxisName centers name along the bottom edge. BarChart has no x-axis name
// of its own.
func xAxisName(name string, height int) chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		style := chart.Style{
			Font:      defaults.Font,
			FontSize:  11,
			FontColor: drawing.ColorBlack,
		}
		box := chart.Draw.MeasureText(r, name, style)
		chart.Draw.Text(r, name, canvasBox.Left+(canvasBox.Width()-box.Width())/2, height-12, style)
	}
}

// ChromosomeCountsByChange draws the per-chromosome counts as bars stacked by
// Expression_Change.
func ChromosomeCountsByChange(w io.Writer, c config.Chart, labels deg.Labels, degs *table.Table) error {
	tallies, err := deg.TallyByChromosome(degs)
	if err != nil {
		return err
	}

	if len(tallies) == 0 {
		return emptyChart(w, c, noDEGs)
	}

	// Stack in label order, then any unexpected labels
	changes := []string{labels.Higher, labels.Lower}
	seen := map[string]bool{labels.Higher: true, labels.Lower: true}
	max := 0
	for _, t := range tallies {
		for change := range t.ByChange {
			if !seen[change] {
				seen[change] = true
				changes = append(changes, change)
			}
		}
		if t.Total > max {
			max = t.Total
		}
	}

	dc := newContext(c)
	drawTitle(dc, c.Title)

	area := rect{X: 70, Y: 50, W: float64(c.Width) - 70 - 180, H: float64(c.Height) - 50 - 80}
	step := niceStep(float64(max))
	top := math.Ceil(float64(max)/step) * step
	drawYAxis(dc, area, top, step, c.YLabel)

	slot := area.W / float64(len(tallies))
	barW := 0.8 * slot
	for i, t := range tallies {
		x := area.X + float64(i)*slot + (slot-barW)/2
		base := area.Y + area.H
		for k, change := range changes {
			n := t.ByChange[change]
			if n == 0 {
				continue
			}
			h := float64(n) / top * area.H
			dc.SetColor(stackOrder[k%len(stackOrder)])
			dc.DrawRectangle(x, base-h, barW, h)
			dc.Fill()
			base -= h
		}

		dc.SetRGB(0, 0, 0)
		drawRotated(dc, t.Chromosome, x+barW/2, area.Y+area.H+8, -45, 1, 0.5)
	}

	dc.DrawStringAnchored(c.XLabel, area.X+area.W/2, float64(c.Height)-12, 0.5, 0.5)

	// Legend
	lx, ly := area.X+area.W+20, area.Y+10
	for k, change := range changes {
		dc.SetColor(stackOrder[k%len(stackOrder)])
		dc.DrawRectangle(lx, ly+float64(k)*20, 12, 12)
		dc.Fill()
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(change, lx+18, ly+float64(k)*20+6, 0, 0.5)
	}

	return pfx.Err(dc.EncodePNG(w))
}
