package plot

import (
	"image/color"
	"math"

	"github.com/carbocation/degexplore/config"
	"github.com/carbocation/pfx"
	"github.com/icza/gox/imagex/colorx"
)

// Diverging is a three-point color scale centered at zero.
type Diverging struct {
	Low, Mid, High, NaN color.RGBA
}

func NewDiverging(p config.Palette) (Diverging, error) {
	var out Diverging

	for _, v := range []struct {
		hex string
		dst *color.RGBA
	}{
		{p.Low, &out.Low},
		{p.Mid, &out.Mid},
		{p.High, &out.High},
		{p.NaN, &out.NaN},
	} {
		c, err := colorx.ParseHexColor(v.hex)
		if err != nil {
			return out, pfx.Err(err)
		}
		*v.dst = c
	}

	return out, nil
}

// At maps v onto the scale spanning [-limit, limit]. Values beyond the limit,
// including infinities, saturate; NaN gets the NaN color.
func (d Diverging) At(v, limit float64) color.RGBA {
	if math.IsNaN(v) {
		return d.NaN
	}
	if limit <= 0 {
		limit = 1
	}

	t := math.Max(-1, math.Min(1, v/limit))
	if t < 0 {
		return lerp(d.Mid, d.Low, -t)
	}

	return lerp(d.Mid, d.High, t)
}

// Limit is the largest finite absolute value in rows, or 1 if there is none.
func Limit(rows [][]float64) float64 {
	limit := 0.0
	for _, row := range rows {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			limit = math.Max(limit, math.Abs(v))
		}
	}

	if limit == 0 {
		return 1
	}

	return limit
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + t*(float64(y)-float64(x))))
	}

	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}
