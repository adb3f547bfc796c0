package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow painted under floating widgets.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// DefaultShadowOptions is a soft shadow that reads well over light drawings.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  6,
		Offset:  image.Pt(3, 3),
		Opacity: 0.35,
	}
}

// ShadowBounds reports the area DrawShadow touches for r.
func ShadowBounds(r image.Rectangle, opts ShadowOptions) image.Rectangle {
	if r.Empty() || opts.Opacity <= 0 {
		return image.Rectangle{}
	}
	radius := max(opts.Radius, 0)
	return r.Inset(-radius).Add(opts.Offset)
}

// DrawShadow paints a blurred shadow of the rectangle r onto dst. The
// rectangle itself is not drawn; callers paint their widget on top.
func DrawShadow(dst draw.Image, r image.Rectangle, opts ShadowOptions) {
	area := ShadowBounds(r, opts)
	if area.Empty() {
		return
	}
	opacity := min(opts.Opacity, 1)
	radius := max(opts.Radius, 0)

	// DrawMask reads coverage from the mask's alpha channel.
	mask := image.NewAlpha(image.Rect(0, 0, area.Dx(), area.Dy()))
	inner := image.Rect(radius, radius, radius+r.Dx(), radius+r.Dy())
	draw.Draw(mask, inner, image.Opaque, image.Point{}, draw.Src)
	blurred := blurAlpha(mask, radius)

	alpha := uint8(opacity*255 + 0.5)
	if alpha == 0 {
		return
	}
	draw.DrawMask(dst, area, image.NewUniform(color.RGBA{0, 0, 0, alpha}), image.Point{}, blurred, image.Point{}, draw.Over)
}

// blurAlpha is a separable box blur built on running prefix sums.
func blurAlpha(src *image.Alpha, radius int) *image.Alpha {
	if radius <= 0 {
		out := image.NewAlpha(src.Bounds())
		copy(out.Pix, src.Pix)
		return out
	}
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	tmp := image.NewAlpha(bounds)
	dst := image.NewAlpha(bounds)

	prefix := make([]int, max(w, h)+1)
	for y := 0; y < h; y++ {
		row := y * src.Stride
		for x := 0; x < w; x++ {
			prefix[x+1] = prefix[x] + int(src.Pix[row+x])
		}
		for x := 0; x < w; x++ {
			x0 := max(x-radius, 0)
			x1 := min(x+radius, w-1)
			tmp.Pix[y*tmp.Stride+x] = uint8((prefix[x1+1] - prefix[x0]) / (x1 - x0 + 1))
		}
	}
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			prefix[y+1] = prefix[y] + int(tmp.Pix[y*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			y0 := max(y-radius, 0)
			y1 := min(y+radius, h-1)
			dst.Pix[y*dst.Stride+x] = uint8((prefix[y1+1] - prefix[y0]) / (y1 - y0 + 1))
		}
	}
	return dst
}
