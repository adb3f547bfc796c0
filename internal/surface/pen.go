package surface

import (
	"image/color"
	"math/rand/v2"

	"github.com/example/huepad/internal/geom"
	"github.com/example/huepad/internal/pointer"
	"github.com/example/huepad/internal/render"
)

// Pen turns primary-button drags into strokes on a Surface. Moves with only
// the primary button held add a segment from the previous point; an up
// forgets the point and commits the stroke.
type Pen struct {
	surface *Surface
	width   float64
	styleFn func() render.Style
	gate    func() bool
	prev    geom.Point
	hasPrev bool
}

// PenOption configures a Pen.
type PenOption func(*Pen)

// WithWidth sets the segment width. Non-positive values keep the default.
func WithWidth(w float64) PenOption {
	return func(p *Pen) {
		if w > 0 {
			p.width = w
		}
	}
}

// WithStyleFunc picks the fill style before each segment.
func WithStyleFunc(fn func() render.Style) PenOption {
	return func(p *Pen) { p.styleFn = fn }
}

// WithGate makes the pen ignore moves while gate returns false, for example
// while another widget owns the drag.
func WithGate(gate func() bool) PenOption {
	return func(p *Pen) { p.gate = gate }
}

// RandomStyles returns a style function yielding a random opaque colour on
// every call.
func RandomStyles(r *rand.Rand) func() render.Style {
	return func() render.Style {
		v := r.Uint32()
		return render.Solid(color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255})
	}
}

// NewPen returns a pen drawing on s.
func NewPen(s *Surface, opts ...PenOption) *Pen {
	p := &Pen{surface: s, width: render.DefaultLineWidth}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Bind subscribes the pen to moves in surface coordinates and to ups from
// any number of sources. Binding ups to the document as well keeps a drag
// released outside the surface from leaving a stroke provisional.
func (p *Pen) Bind(moves pointer.Source, ups ...pointer.Source) error {
	if err := moves.Subscribe(pointer.Move, p.Move); err != nil {
		return err
	}
	if len(ups) == 0 {
		ups = []pointer.Source{moves}
	}
	for _, src := range ups {
		if err := src.Subscribe(pointer.Up, p.Up); err != nil {
			return err
		}
	}
	return nil
}

// Move handles one move event.
func (p *Pen) Move(ev pointer.Event) {
	if !ev.PrimaryOnly() || (p.gate != nil && !p.gate()) {
		return
	}
	pos := ev.Pos()
	if p.hasPrev {
		if p.styleFn != nil {
			p.surface.SetFillStyle(p.styleFn())
		}
		p.surface.DrawLine(p.prev.X, p.prev.Y, pos.X, pos.Y, p.width)
	}
	p.prev = pos
	p.hasPrev = true
}

// Up ends the current stroke.
func (p *Pen) Up(pointer.Event) {
	p.hasPrev = false
	p.surface.Commit()
}

// Drawing reports whether a previous point is remembered.
func (p *Pen) Drawing() bool { return p.hasPrev }

// SetWidth changes the width of future segments.
func (p *Pen) SetWidth(w float64) {
	if w > 0 {
		p.width = w
	}
}
