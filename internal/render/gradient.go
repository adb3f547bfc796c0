package render

import (
	"image"
	"image/color"
	"math"
	"sort"
)

// Stop is one colour stop of a gradient. Offset is in [0, 1].
type Stop struct {
	Offset float64
	Color  color.Color
}

// LinearGradient paints along the line from (X0, Y0) to (X1, Y1). Pixels are
// projected onto that line at their centre; positions before the first stop
// or after the last take the end colours. Colours are interpolated
// premultiplied, so fading to "transparent" keeps the hue.
type LinearGradient struct {
	X0, Y0, X1, Y1 float64
	stops          []Stop
}

var _ image.Image = (*LinearGradient)(nil)

// NewLinearGradient returns a gradient with no stops.
func NewLinearGradient(x0, y0, x1, y1 float64) *LinearGradient {
	return &LinearGradient{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// AddColorStop inserts a stop, keeping stops ordered by offset. Stops with
// equal offsets stay in insertion order.
func (g *LinearGradient) AddColorStop(offset float64, c color.Color) *LinearGradient {
	offset = math.Max(0, math.Min(1, offset))
	i := sort.Search(len(g.stops), func(i int) bool { return g.stops[i].Offset > offset })
	g.stops = append(g.stops, Stop{})
	copy(g.stops[i+1:], g.stops[i:])
	g.stops[i] = Stop{Offset: offset, Color: c}
	return g
}

// Stops returns a copy of the configured stops.
func (g *LinearGradient) Stops() []Stop {
	out := make([]Stop, len(g.stops))
	copy(out, g.stops)
	return out
}

func (g *LinearGradient) ColorModel() color.Model { return color.RGBA64Model }

// Bounds is effectively infinite, like image.Uniform.
func (g *LinearGradient) Bounds() image.Rectangle {
	return image.Rectangle{Min: image.Point{-1e9, -1e9}, Max: image.Point{1e9, 1e9}}
}

func (g *LinearGradient) At(x, y int) color.Color {
	return g.RGBA64At(x, y)
}

// RGBA64At returns the premultiplied gradient colour at pixel (x, y).
func (g *LinearGradient) RGBA64At(x, y int) color.RGBA64 {
	if len(g.stops) == 0 {
		return color.RGBA64{}
	}
	dx := g.X1 - g.X0
	dy := g.Y1 - g.Y0
	den := dx*dx + dy*dy
	if den == 0 {
		// A zero-length gradient paints nothing.
		return color.RGBA64{}
	}
	px := float64(x) + 0.5
	py := float64(y) + 0.5
	t := ((px-g.X0)*dx + (py-g.Y0)*dy) / den
	return g.colorAt(t)
}

func (g *LinearGradient) colorAt(t float64) color.RGBA64 {
	first := g.stops[0]
	if t <= first.Offset {
		return color.RGBA64Model.Convert(first.Color).(color.RGBA64)
	}
	last := g.stops[len(g.stops)-1]
	if t >= last.Offset {
		return color.RGBA64Model.Convert(last.Color).(color.RGBA64)
	}
	for i := 1; i < len(g.stops); i++ {
		b := g.stops[i]
		if t > b.Offset {
			continue
		}
		a := g.stops[i-1]
		span := b.Offset - a.Offset
		if span <= 0 {
			return color.RGBA64Model.Convert(b.Color).(color.RGBA64)
		}
		return lerp(a.Color, b.Color, (t-a.Offset)/span)
	}
	return color.RGBA64Model.Convert(last.Color).(color.RGBA64)
}

func lerp(a, b color.Color, f float64) color.RGBA64 {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	mix := func(x, y uint32) uint16 {
		return uint16(math.Round(float64(x) + (float64(y)-float64(x))*f))
	}
	return color.RGBA64{R: mix(ar, br), G: mix(ag, bg), B: mix(ab, bb), A: mix(aa, ba)}
}
