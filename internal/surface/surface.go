// Package surface is a retained-mode drawing surface. It keeps committed
// strokes and shapes plus one provisional stroke, and repaints all of them
// every frame.
package surface

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/example/huepad/internal/frame"
	"github.com/example/huepad/internal/geom"
	"github.com/example/huepad/internal/host"
	"github.com/example/huepad/internal/logging"
	"github.com/example/huepad/internal/pointer"
	"github.com/example/huepad/internal/render"
)

// Surface owns a canvas and the drawables painted on it.
type Surface struct {
	name      string
	canvas    *render.Canvas
	origin    image.Point
	visible   bool
	fill      render.Style
	committed []Drawable
	current   *Stroke
	events    *pointer.Dispatcher
	sched     frame.Scheduler
	loop      *frame.Loop
}

var _ host.Element = (*Surface)(nil)

// Option configures a Surface.
type Option func(*Surface)

// WithName labels the surface in logs and in its dispatcher.
func WithName(name string) Option { return func(s *Surface) { s.name = name } }

// WithOrigin places the surface's top-left corner in host coordinates.
func WithOrigin(x, y int) Option { return func(s *Surface) { s.origin = image.Pt(x, y) } }

// WithScheduler sets the frame scheduler used by Loop.
func WithScheduler(sched frame.Scheduler) Option { return func(s *Surface) { s.sched = sched } }

// WithFillStyle sets the initial fill style.
func WithFillStyle(style render.Style) Option {
	return func(s *Surface) {
		if style != nil {
			s.fill = style
		}
	}
}

// New returns an empty, visible width×height surface.
func New(width, height int, opts ...Option) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("surface %dx%d: %w", width, height, ErrInvalidSize)
	}
	s := &Surface{
		name:    "surface",
		canvas:  render.NewCanvas(width, height),
		visible: true,
		fill:    render.Solid(color.Black),
		current: &Stroke{},
	}
	for _, o := range opts {
		o(s)
	}
	s.events = pointer.NewDispatcher(s.name)
	if s.sched == nil {
		s.sched = frame.NewQueue()
	}
	s.loop = frame.NewLoop(s.name, s.sched, s.Draw)
	return s, nil
}

// Attach mounts the surface in c.
func (s *Surface) Attach(c host.Container) { c.Mount(s) }

// Name labels the surface.
func (s *Surface) Name() string { return s.name }

// Width is the surface width in pixels.
func (s *Surface) Width() int { return s.canvas.Width() }

// Height is the surface height in pixels.
func (s *Surface) Height() int { return s.canvas.Height() }

// Origin is the top-left corner in host coordinates.
func (s *Surface) Origin() image.Point { return s.origin }

// SetOrigin moves the surface.
func (s *Surface) SetOrigin(p image.Point) { s.origin = p }

// Bounds is the surface rectangle in host coordinates.
func (s *Surface) Bounds() image.Rectangle {
	return s.canvas.Bounds().Add(s.origin)
}

// Visible reports whether the surface is shown.
func (s *Surface) Visible() bool { return s.visible }

// SetVisible shows or hides the surface.
func (s *Surface) SetVisible(v bool) { s.visible = v }

// Events is the surface's pointer dispatcher. Events arrive in surface
// coordinates.
func (s *Surface) Events() *pointer.Dispatcher { return s.events }

// Subscribe registers fn for one pointer channel.
func (s *Surface) Subscribe(kind pointer.Kind, fn func(pointer.Event)) error {
	return s.events.Subscribe(kind, fn)
}

// SetFillStyle sets the style for drawables created from now on. Existing
// drawables keep theirs.
func (s *Surface) SetFillStyle(style render.Style) {
	if style != nil {
		s.fill = style
	}
}

// FillStyle is the style the next drawable will use.
func (s *Surface) FillStyle() render.Style { return s.fill }

// DrawLine appends a segment to the provisional stroke. The optional width
// defaults to render.DefaultLineWidth.
func (s *Surface) DrawLine(x1, y1, x2, y2 float64, width ...float64) {
	w := float64(render.DefaultLineWidth)
	if len(width) > 0 && width[0] > 0 {
		w = width[0]
	}
	s.current.Add(Segment{
		Start: geom.Pt(x1, y1),
		End:   geom.Pt(x2, y2),
		Width: w,
		Style: s.fill,
	})
}

// DrawShape commits a size×size square at (x, y) straight away.
func (s *Surface) DrawShape(x, y, size float64) error {
	sq, err := NewSquare(x, y, size, s.fill)
	if err != nil {
		return err
	}
	s.committed = append(s.committed, sq)
	return nil
}

// Commit moves a non-empty provisional stroke to the committed list and
// starts a fresh one. It reports whether anything was committed.
func (s *Surface) Commit() bool {
	if s.current.Len() == 0 {
		return false
	}
	logging.Logger().Debug("stroke committed", "surface", s.name, "segments", s.current.Len())
	s.committed = append(s.committed, s.current)
	s.current = &Stroke{}
	return true
}

// ClearObjects drops every committed drawable and the provisional stroke.
func (s *Surface) ClearObjects() {
	s.committed = nil
	s.current = &Stroke{}
}

// Committed is the number of committed drawables.
func (s *Surface) Committed() int { return len(s.committed) }

// Provisional is the number of segments in the provisional stroke.
func (s *Surface) Provisional() int { return s.current.Len() }

// Draw repaints from scratch: committed drawables in insertion order, then
// the provisional stroke.
func (s *Surface) Draw() {
	s.canvas.Clear()
	for _, d := range s.committed {
		d.Draw(s.canvas)
	}
	s.current.Draw(s.canvas)
}

// Loop starts redrawing once per frame until Stop.
func (s *Surface) Loop() { s.loop.Start() }

// Stop ends the redraw loop after the frame already scheduled.
func (s *Surface) Stop() { s.loop.Stop() }

// Looping reports whether the redraw loop is enabled.
func (s *Surface) Looping() bool { return s.loop.Running() }

// PixelAt samples the last drawn frame, clamping to the surface.
func (s *Surface) PixelAt(x, y int) color.NRGBA { return s.canvas.PixelAt(x, y) }

// Image is the last drawn frame.
func (s *Surface) Image() *image.RGBA { return s.canvas.Image() }

// Paint composites the last drawn frame onto dst at Bounds.
func (s *Surface) Paint(dst draw.Image) {
	draw.Draw(dst, s.Bounds(), s.canvas.Image(), image.Point{}, draw.Over)
}
