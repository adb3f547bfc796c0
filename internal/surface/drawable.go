package surface

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/example/huepad/internal/geom"
	"github.com/example/huepad/internal/render"
)

// ErrInvalidSize is returned for non-positive surface or shape sizes.
var ErrInvalidSize = errors.New("surface: size must be positive")

// Drawable is anything the surface can render.
type Drawable interface {
	Draw(c *render.Canvas)
}

// Segment is a straight line with its own width and style. The style is the
// one active when the segment was created.
type Segment struct {
	Start, End geom.Point
	Width      float64
	Style      render.Style
}

// Draw strokes the segment.
func (s Segment) Draw(c *render.Canvas) {
	c.SetLineWidth(s.Width)
	c.SetStrokeStyle(s.Style)
	c.BeginPath()
	c.MoveTo(s.Start.X, s.Start.Y)
	c.LineTo(s.End.X, s.End.Y)
	c.Stroke()
}

// Stroke is an ordered run of segments, drawn oldest first.
type Stroke struct {
	segs []Segment
}

// Add appends seg.
func (s *Stroke) Add(seg Segment) { s.segs = append(s.segs, seg) }

// Len is the number of segments.
func (s *Stroke) Len() int { return len(s.segs) }

// Segments returns a copy of the segments.
func (s *Stroke) Segments() []Segment { return slices.Clone(s.segs) }

// Draw strokes every segment in order.
func (s *Stroke) Draw(c *render.Canvas) {
	for _, seg := range s.segs {
		seg.Draw(c)
	}
}

// Shape is a closed polygon filled with one style.
type Shape struct {
	points []geom.Point
	style  render.Style
}

// NewShape returns a shape over a copy of points.
func NewShape(points []geom.Point, style render.Style) (*Shape, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("shape needs at least 3 points, got %d", len(points))
	}
	if style == nil {
		return nil, errors.New("shape needs a fill style")
	}
	return &Shape{points: slices.Clone(points), style: style}, nil
}

// NewSquare returns the square with top-left corner (x, y).
func NewSquare(x, y, size float64, style render.Style) (*Shape, error) {
	if !(size > 0) || math.IsInf(size, 0) {
		return nil, fmt.Errorf("square size %v: %w", size, ErrInvalidSize)
	}
	return NewShape([]geom.Point{
		geom.Pt(x, y),
		geom.Pt(x+size, y),
		geom.Pt(x+size, y+size),
		geom.Pt(x, y+size),
	}, style)
}

// Points returns a copy of the vertex loop.
func (s *Shape) Points() []geom.Point { return slices.Clone(s.points) }

// Style is the fill style.
func (s *Shape) Style() render.Style { return s.style }

// Draw fills the polygon.
func (s *Shape) Draw(c *render.Canvas) {
	c.SetFillStyle(s.style)
	c.BeginPath()
	c.MoveTo(s.points[0].X, s.points[0].Y)
	for _, p := range s.points[1:] {
		c.LineTo(p.X, p.Y)
	}
	c.ClosePath()
	c.Fill()
}
