package picker

import (
	"math"

	"github.com/example/huepad/internal/geom"
	"github.com/example/huepad/internal/render"
)

// Hue maps a position on a bar of the given height to a fully saturated
// colour. The bar is split into six equal bands (red, yellow, green, cyan,
// blue, magenta) with cosine ramps between them, and both ends are red.
// y is clamped to [0, height].
func Hue(y, height float64) render.Color {
	if !(height > 0) {
		return render.Color{R: 255}
	}
	x := geom.Clamp(y, 0, height) / height * 6
	phase := 0.75 * (0.66666 * math.Pi * x)
	cB := 2*math.Cos(phase+2*math.Pi) + 2
	cG := 2*math.Cos(phase+math.Pi) + 2

	var r, g, b float64
	if x >= 2 {
		b = cB
	}
	if x <= 4 {
		g = cG
	}
	switch {
	case x < 2:
		r = cB
	case x > 4:
		r = cG
	}
	return render.Color{R: channel(r), G: channel(g), B: channel(b)}
}

func channel(v float64) uint8 {
	return uint8(math.Round(geom.Clamp(v, 0, 1) * 255))
}
