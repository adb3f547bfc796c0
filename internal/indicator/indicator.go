// Package indicator implements a draggable marker whose position is kept
// inside its container.
package indicator

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/example/huepad/internal/geom"
	"github.com/example/huepad/internal/pointer"
)

// ErrInvalidSize is returned for non-positive indicator or container sizes.
var ErrInvalidSize = errors.New("indicator: size must be positive")

// Indicator is a marker with a clamped top-left position. Each axis may
// range over [-half, containerExtent-half] so the marker centre can reach
// every edge of the container.
type Indicator struct {
	size      geom.Size
	container geom.Size
	pos       geom.Point
	lockX     bool
	events    *pointer.Dispatcher
}

// Option configures an Indicator.
type Option func(*Indicator)

// WithPosition sets the initial top-left position (still clamped).
func WithPosition(x, y float64) Option {
	return func(i *Indicator) { i.pos = geom.Pt(x, y) }
}

// Centered starts the marker with its centre in the middle of the container.
func Centered() Option {
	return func(i *Indicator) {
		i.pos = geom.Pt(i.container.W/2-i.size.W/2, i.container.H/2-i.size.H/2)
	}
}

// VerticalOnly pins the x position at 0; SetPosition only moves y.
func VerticalOnly() Option {
	return func(i *Indicator) { i.lockX = true }
}

// WithName labels the indicator's dispatcher in logs.
func WithName(name string) Option {
	return func(i *Indicator) { i.events = pointer.NewDispatcher(name) }
}

// New creates an indicator of the given size inside a container.
func New(size, container geom.Size, opts ...Option) (*Indicator, error) {
	if size.Empty() {
		return nil, fmt.Errorf("indicator %vx%v: %w", size.W, size.H, ErrInvalidSize)
	}
	if container.Empty() {
		return nil, fmt.Errorf("container %vx%v: %w", container.W, container.H, ErrInvalidSize)
	}
	i := &Indicator{size: size, container: container}
	for _, o := range opts {
		o(i)
	}
	if i.events == nil {
		i.events = pointer.NewDispatcher("indicator")
	}
	i.SetPosition(i.pos.X, i.pos.Y)
	return i, nil
}

// SetPosition clamps each axis independently and stores the result.
func (i *Indicator) SetPosition(x, y float64) {
	if i.lockX {
		x = 0
	} else {
		x = geom.Clamp(x, -i.HalfWidth(), i.container.W-i.HalfWidth())
	}
	y = geom.Clamp(y, -i.HalfHeight(), i.container.H-i.HalfHeight())
	i.pos = geom.Pt(x, y)
}

// Position returns the stored top-left position.
func (i *Indicator) Position() geom.Point { return i.pos }

// Left is Position().X.
func (i *Indicator) Left() float64 { return i.pos.X }

// Top is Position().Y.
func (i *Indicator) Top() float64 { return i.pos.Y }

// Size returns the marker size.
func (i *Indicator) Size() geom.Size { return i.size }

// Container returns the extent the marker is clamped to.
func (i *Indicator) Container() geom.Size { return i.container }

// HalfWidth is half the marker width.
func (i *Indicator) HalfWidth() float64 { return i.size.W / 2 }

// HalfHeight is half the marker height.
func (i *Indicator) HalfHeight() float64 { return i.size.H / 2 }

// Center is the marker centre in container coordinates.
func (i *Indicator) Center() geom.Point {
	return geom.Pt(i.pos.X+i.HalfWidth(), i.pos.Y+i.HalfHeight())
}

// CenterOn moves the marker so its centre lands on p, subject to clamping.
func (i *Indicator) CenterOn(p geom.Point) {
	i.SetPosition(p.X-i.HalfWidth(), p.Y-i.HalfHeight())
}

// Resize changes the container and re-clamps the current position.
func (i *Indicator) Resize(container geom.Size) error {
	if container.Empty() {
		return fmt.Errorf("container %vx%v: %w", container.W, container.H, ErrInvalidSize)
	}
	i.container = container
	i.SetPosition(i.pos.X, i.pos.Y)
	return nil
}

// Events is the indicator's own pointer dispatcher.
func (i *Indicator) Events() *pointer.Dispatcher { return i.events }

// Bounds returns the marker rectangle in host space for a container whose
// top-left corner sits at origin.
func (i *Indicator) Bounds(origin image.Point) image.Rectangle {
	x := origin.X + int(math.Floor(i.pos.X))
	y := origin.Y + int(math.Floor(i.pos.Y))
	return image.Rect(x, y, x+int(math.Ceil(i.size.W)), y+int(math.Ceil(i.size.H)))
}
