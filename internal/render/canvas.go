// Package render is an immediate-mode 2-D drawing surface on top of
// *image.RGBA. Paths are rasterised with golang.org/x/image/vector and
// composited with standard alpha-over.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/example/huepad/internal/geom"
)

// DefaultLineWidth matches the width used when a caller does not pick one.
const DefaultLineWidth = 3

type subpath struct {
	pts    []geom.Point
	closed bool
}

// Canvas draws onto an RGBA image. Like a browser 2-D context it keeps a
// current path, line width, stroke style and fill style.
type Canvas struct {
	img       *image.RGBA
	rast      *vector.Rasterizer
	lineWidth float64
	stroke    Style
	fill      Style
	path      []subpath
}

// NewCanvas returns a transparent canvas of w×h pixels.
func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &Canvas{
		img:       image.NewRGBA(image.Rect(0, 0, w, h)),
		rast:      vector.NewRasterizer(w, h),
		lineWidth: DefaultLineWidth,
		stroke:    Solid(color.Black),
		fill:      Solid(color.Black),
	}
}

// Image exposes the backing image.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Bounds returns the canvas rectangle.
func (c *Canvas) Bounds() image.Rectangle { return c.img.Bounds() }

// Width is the canvas width in pixels.
func (c *Canvas) Width() int { return c.img.Bounds().Dx() }

// Height is the canvas height in pixels.
func (c *Canvas) Height() int { return c.img.Bounds().Dy() }

// Clear resets every pixel to transparent black.
func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

// SetLineWidth sets the stroke width. Non-positive widths are ignored.
func (c *Canvas) SetLineWidth(w float64) {
	if w > 0 && !math.IsInf(w, 0) && !math.IsNaN(w) {
		c.lineWidth = w
	}
}

// LineWidth returns the stroke width.
func (c *Canvas) LineWidth() float64 { return c.lineWidth }

// SetStrokeStyle sets the paint used by Stroke.
func (c *Canvas) SetStrokeStyle(s Style) {
	if s != nil {
		c.stroke = s
	}
}

// SetFillStyle sets the paint used by Fill and FillRect.
func (c *Canvas) SetFillStyle(s Style) {
	if s != nil {
		c.fill = s
	}
}

// BeginPath discards the current path.
func (c *Canvas) BeginPath() { c.path = c.path[:0] }

// MoveTo starts a new subpath at (x, y).
func (c *Canvas) MoveTo(x, y float64) {
	c.path = append(c.path, subpath{pts: []geom.Point{geom.Pt(x, y)}})
}

// LineTo extends the current subpath. Without one it behaves like MoveTo.
func (c *Canvas) LineTo(x, y float64) {
	if len(c.path) == 0 {
		c.MoveTo(x, y)
		return
	}
	sp := &c.path[len(c.path)-1]
	sp.pts = append(sp.pts, geom.Pt(x, y))
}

// ClosePath marks the current subpath as closed.
func (c *Canvas) ClosePath() {
	if len(c.path) == 0 {
		return
	}
	c.path[len(c.path)-1].closed = true
}

// Stroke paints every segment of the current path with butt caps.
func (c *Canvas) Stroke() {
	c.resetRasterizer()
	hw := c.lineWidth / 2
	drew := false
	for _, sp := range c.path {
		pts := sp.pts
		if sp.closed && len(pts) > 2 {
			pts = append(pts[:len(pts):len(pts)], pts[0])
		}
		for i := 1; i < len(pts); i++ {
			if c.addSegmentQuad(pts[i-1], pts[i], hw) {
				drew = true
			}
		}
	}
	if drew {
		c.rast.Draw(c.img, c.img.Bounds(), c.stroke, image.Point{})
	}
}

// addSegmentQuad adds the rectangle covering a thick segment. All quads
// share one winding direction so overlapping coverage accumulates.
func (c *Canvas) addSegmentQuad(a, b geom.Point, hw float64) bool {
	dx := b.X - a.X
	dy := b.Y - a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return false
	}
	nx := -dy / length * hw
	ny := dx / length * hw
	c.rast.MoveTo(float32(a.X+nx), float32(a.Y+ny))
	c.rast.LineTo(float32(b.X+nx), float32(b.Y+ny))
	c.rast.LineTo(float32(b.X-nx), float32(b.Y-ny))
	c.rast.LineTo(float32(a.X-nx), float32(a.Y-ny))
	c.rast.ClosePath()
	return true
}

// Fill paints the interior of the current path; open subpaths are closed
// implicitly.
func (c *Canvas) Fill() {
	c.resetRasterizer()
	drew := false
	for _, sp := range c.path {
		if len(sp.pts) < 3 {
			continue
		}
		c.rast.MoveTo(float32(sp.pts[0].X), float32(sp.pts[0].Y))
		for _, p := range sp.pts[1:] {
			c.rast.LineTo(float32(p.X), float32(p.Y))
		}
		c.rast.ClosePath()
		drew = true
	}
	if drew {
		c.rast.Draw(c.img, c.img.Bounds(), c.fill, image.Point{})
	}
}

// FillRect fills an axis-aligned rectangle without touching the current path.
func (c *Canvas) FillRect(x, y, w, h float64) {
	saved := c.path
	c.path = nil
	c.MoveTo(x, y)
	c.LineTo(x+w, y)
	c.LineTo(x+w, y+h)
	c.LineTo(x, y+h)
	c.ClosePath()
	c.Fill()
	c.path = saved
}

// PixelAt reads back one pixel, un-premultiplied. Coordinates are clamped to
// the canvas.
func (c *Canvas) PixelAt(x, y int) color.NRGBA {
	b := c.img.Bounds()
	x = geom.ClampInt(x, b.Min.X, b.Max.X-1)
	y = geom.ClampInt(y, b.Min.Y, b.Max.Y-1)
	return color.NRGBAModel.Convert(c.img.RGBAAt(x, y)).(color.NRGBA)
}

func (c *Canvas) resetRasterizer() {
	b := c.img.Bounds()
	c.rast.Reset(b.Dx(), b.Dy())
	c.rast.DrawOp = draw.Over
}
