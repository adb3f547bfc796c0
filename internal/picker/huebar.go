package picker

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/example/huepad/internal/event"
	"github.com/example/huepad/internal/geom"
	"github.com/example/huepad/internal/host"
	"github.com/example/huepad/internal/indicator"
	"github.com/example/huepad/internal/pointer"
	"github.com/example/huepad/internal/render"
)

// HueBarMarkerHeight is the height of the hue bar's indicator.
const HueBarMarkerHeight = 6

// HueBar is a vertical strip of hues with a marker that only moves up and
// down. The hue is read at the marker's centre.
type HueBar struct {
	name    string
	width   int
	height  int
	origin  image.Point
	visible bool
	marker  *indicator.Indicator
	events  *pointer.Dispatcher
	changed *event.Bus[render.Color]
	strip   *image.RGBA
}

var _ host.Element = (*HueBar)(nil)

// HueBarOption configures a HueBar.
type HueBarOption func(*HueBar)

// WithBarName labels the bar and its marker in logs.
func WithBarName(name string) HueBarOption {
	return func(b *HueBar) {
		if name != "" {
			b.name = name
		}
	}
}

// NewHueBar returns a bar whose marker starts in the middle.
func NewHueBar(width, height int, opts ...HueBarOption) (*HueBar, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("hue bar %dx%d: %w", width, height, indicator.ErrInvalidSize)
	}
	b := &HueBar{name: "huebar", width: width, height: height, visible: true}
	for _, o := range opts {
		o(b)
	}
	name := b.name
	marker, err := indicator.New(
		geom.Sz(float64(width), HueBarMarkerHeight),
		geom.Sz(float64(width), float64(height)),
		indicator.VerticalOnly(),
		indicator.Centered(),
		indicator.WithName(name+".marker"),
	)
	if err != nil {
		return nil, err
	}
	b.marker = marker
	b.events = pointer.NewDispatcher(name)
	b.changed = event.NewBus[render.Color](name + ".color")
	b.strip = b.renderStrip()
	return b, nil
}

func (b *HueBar) renderStrip() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	for y := 0; y < b.height; y++ {
		c := Hue(float64(y)+0.5, float64(b.height))
		draw.Draw(img, image.Rect(0, y, b.width, y+1), image.NewUniform(c), image.Point{}, draw.Src)
	}
	return img
}

// Y is the hue parameter: the marker centre, in [0, height].
func (b *HueBar) Y() float64 { return b.marker.Center().Y }

// Color is the hue at the marker.
func (b *HueBar) Color() render.Color { return Hue(b.Y(), float64(b.height)) }

// DragTo centres the marker on y (clamped), then notifies subscribers.
func (b *HueBar) DragTo(y float64) render.Color {
	b.marker.CenterOn(geom.Pt(0, y))
	c := b.Color()
	_ = b.changed.Dispatch(c)
	return c
}

// OnColorChanged subscribes fn to hue changes.
func (b *HueBar) OnColorChanged(fn func(render.Color)) { b.changed.Subscribe(fn) }

// Marker is the bar's indicator.
func (b *HueBar) Marker() *indicator.Indicator { return b.marker }

// Width is the bar width.
func (b *HueBar) Width() int { return b.width }

// Height is the bar height.
func (b *HueBar) Height() int { return b.height }

func (b *HueBar) Name() string { return b.name }

// Origin is the bar's top-left corner in host coordinates.
func (b *HueBar) Origin() image.Point { return b.origin }

// SetOrigin moves the bar.
func (b *HueBar) SetOrigin(p image.Point) { b.origin = p }

func (b *HueBar) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height).Add(b.origin)
}

func (b *HueBar) Visible() bool { return b.visible }

// SetVisible shows or hides the bar.
func (b *HueBar) SetVisible(v bool) { b.visible = v }

func (b *HueBar) Events() *pointer.Dispatcher { return b.events }

// Paint draws the hue strip.
func (b *HueBar) Paint(dst draw.Image) {
	draw.Draw(dst, b.Bounds(), b.strip, image.Point{}, draw.Src)
}

// markerElement exposes an indicator to the host as its own element so it
// can overhang its parent.
type markerElement struct {
	name    string
	ind     *indicator.Indicator
	parent  func() image.Point
	visible func() bool
	fill    color.Color
	border  color.Color
}

var _ host.Element = (*markerElement)(nil)

func (m *markerElement) Name() string                { return m.name }
func (m *markerElement) Bounds() image.Rectangle     { return m.ind.Bounds(m.parent()) }
func (m *markerElement) Visible() bool               { return m.visible() }
func (m *markerElement) Events() *pointer.Dispatcher { return m.ind.Events() }

// Paint draws the box interior, then a one pixel border around it.
func (m *markerElement) Paint(dst draw.Image) {
	r := m.Bounds()
	if in := r.Inset(1); !in.Empty() {
		draw.Draw(dst, in, image.NewUniform(m.fill), image.Point{}, draw.Over)
	}
	src := image.NewUniform(m.border)
	for _, edge := range []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1),
		image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y+1, r.Min.X+1, r.Max.Y-1),
		image.Rect(r.Max.X-1, r.Min.Y+1, r.Max.X, r.Max.Y-1),
	} {
		draw.Draw(dst, edge, src, image.Point{}, draw.Over)
	}
}
