package plot

import (
	"image/color"
	"io"
	"math"
	"strconv"

	"github.com/carbocation/degexplore/config"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// rect is a drawing area in pixels.
type rect struct {
	X, Y, W, H float64
}

func newContext(c config.Chart) *gg.Context {
	dc := gg.NewContext(c.Width, c.Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetRGB(0, 0, 0)

	return dc
}

func drawTitle(dc *gg.Context, title string) {
	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(title, float64(dc.Width())/2, 24, 0.5, 0.5)
}

// drawRotated draws s rotated by degrees about its anchor point.
func drawRotated(dc *gg.Context, s string, x, y, degrees, ax, ay float64) {
	dc.Push()
	dc.RotateAbout(gg.Radians(degrees), x, y)
	dc.DrawStringAnchored(s, x, y, ax, ay)
	dc.Pop()
}

// drawYAxis draws a left axis for [0, max] with ticks every step.
func drawYAxis(dc *gg.Context, area rect, max, step float64, label string) {
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.DrawLine(area.X, area.Y, area.X, area.Y+area.H)
	dc.DrawLine(area.X, area.Y+area.H, area.X+area.W, area.Y+area.H)
	dc.Stroke()

	for v := 0.0; v <= max+step/2; v += step {
		y := area.Y + area.H - v/max*area.H
		dc.DrawLine(area.X-4, y, area.X, y)
		dc.Stroke()
		dc.DrawStringAnchored(strconv.FormatFloat(v, 'f', -1, 64), area.X-6, y, 1, 0.5)
	}

	drawRotated(dc, label, area.X-45, area.Y+area.H/2, -90, 0.5, 0.5)
}

// niceStep picks a 1, 2 or 5 times power-of-ten tick step giving roughly
// five ticks up to max.
func niceStep(max float64) float64 {
	if max <= 0 {
		return 1
	}

	raw := max / 5
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	step := mag
	for _, m := range []float64{1, 2, 5, 10} {
		step = m * mag
		if step >= raw {
			break
		}
	}

	// Counts are integers
	return math.Max(1, math.Round(step))
}

// emptyChart writes a chart that only carries its title and a message.
func emptyChart(w io.Writer, c config.Chart, message string) error {
	dc := newContext(c)
	drawTitle(dc, c.Title)
	dc.SetColor(color.Gray{Y: 96})
	dc.DrawStringAnchored(message, float64(c.Width)/2, float64(c.Height)/2, 0.5, 0.5)

	return dc.EncodePNG(w)
}

func formatTick(v float64) string {
	if math.Abs(v) >= 100 || v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}

	return strconv.FormatFloat(v, 'g', 3, 64)
}
