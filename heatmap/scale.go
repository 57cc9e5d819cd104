package heatmap

import (
	"image/color"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
)

// rdBu holds the ColorBrewer RdBu control points from blue (strongly
// negative) through near-white (zero) to red (strongly positive).
var rdBu = []color.NRGBA{
	{R: 0x05, G: 0x30, B: 0x61, A: 0xff},
	{R: 0x21, G: 0x66, B: 0xac, A: 0xff},
	{R: 0x43, G: 0x93, B: 0xc3, A: 0xff},
	{R: 0x92, G: 0xc5, B: 0xde, A: 0xff},
	{R: 0xd1, G: 0xe5, B: 0xf0, A: 0xff},
	{R: 0xf7, G: 0xf7, B: 0xf7, A: 0xff},
	{R: 0xfd, G: 0xdb, B: 0xc7, A: 0xff},
	{R: 0xf4, G: 0xa5, B: 0x82, A: 0xff},
	{R: 0xd6, G: 0x60, B: 0x4d, A: 0xff},
	{R: 0xb2, G: 0x18, B: 0x2b, A: 0xff},
	{R: 0x67, G: 0x00, B: 0x1f, A: 0xff},
}

// Scale maps fold-change values onto the diverging palette. The scale is
// symmetric about zero so that zero always lands on the neutral midpoint
// color and equal magnitudes in either direction saturate equally.
type Scale struct {
	Limit float64
}

// NewScale derives the color limit from the values that will be rendered.
// With robust set, the limit comes from the 2nd and 98th percentiles instead
// of the full range, so a handful of extreme genes cannot wash out the rest
// of the map.
func NewScale(values [][]float64, robust bool) Scale {
	flat := make([]float64, 0, len(values)*4)
	for _, row := range values {
		flat = append(flat, row...)
	}

	if len(flat) == 0 {
		return Scale{Limit: 1}
	}

	lo, hi := floats.Min(flat), floats.Max(flat)
	if robust {
		if p2, err := stats.Percentile(flat, 2); err == nil {
			lo = p2
		}
		if p98, err := stats.Percentile(flat, 98); err == nil {
			hi = p98
		}
	}

	limit := math.Max(math.Abs(lo), math.Abs(hi))
	if limit == 0 {
		limit = 1
	}

	return Scale{Limit: limit}
}

// Color maps one value onto the palette. Values beyond the limit clamp to the
// palette ends.
func (s Scale) Color(v float64) color.Color {
	t := (v + s.Limit) / (2 * s.Limit)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	pos := t * float64(len(rdBu)-1)
	i := int(math.Floor(pos))
	if i >= len(rdBu)-1 {
		return rdBu[len(rdBu)-1]
	}

	frac := pos - float64(i)
	a, b := rdBu[i], rdBu[i+1]

	return color.NRGBA{
		R: lerpByte(a.R, b.R, frac),
		G: lerpByte(a.G, b.G, frac),
		B: lerpByte(a.B, b.B, frac),
		A: 0xff,
	}
}

func lerpByte(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}
