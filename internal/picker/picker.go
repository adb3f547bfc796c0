// Package picker implements a colour picker built from a saturation and
// lightness plane, a bubble marking the chosen point on it, and a hue bar.
package picker

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/example/huepad/internal/event"
	"github.com/example/huepad/internal/geom"
	"github.com/example/huepad/internal/host"
	"github.com/example/huepad/internal/ids"
	"github.com/example/huepad/internal/indicator"
	"github.com/example/huepad/internal/logging"
	"github.com/example/huepad/internal/pointer"
	"github.com/example/huepad/internal/render"
	"github.com/example/huepad/internal/surface"
)

// State is the picker's drag state.
type State int

const (
	Idle State = iota
	DraggingBubble
	DraggingHueBar
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case DraggingBubble:
		return "dragging-bubble"
	case DraggingHueBar:
		return "dragging-huebar"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

const (
	// DefaultBubbleSize is the bubble's width and height.
	DefaultBubbleSize = 12
	// DefaultGap separates the plane from the hue bar.
	DefaultGap = 8
	// DefaultPadding surrounds the plane and bar on the panel.
	DefaultPadding = 8
)

// Colors styles the picker chrome.
type Colors struct {
	Panel        color.Color
	Marker       color.Color
	MarkerBorder color.Color
}

// DefaultColors is a light panel with hollow white markers.
func DefaultColors() Colors {
	return Colors{
		Panel:        color.RGBA{240, 240, 240, 255},
		Marker:       color.Transparent,
		MarkerBorder: color.White,
	}
}

// ColorPicker couples a plane surface, a bubble and a hue bar. The selected
// colour is always the rendered plane pixel under the bubble centre.
type ColorPicker struct {
	id         string
	origin     image.Point
	bubbleSize float64
	gap        int
	padding    int
	colors     Colors
	shadow     render.ShadowOptions
	visible    bool
	state      State

	plane  *surface.Surface
	bubble *indicator.Indicator
	bar    *HueBar

	panel     *panelElement
	bubbleEl  *markerElement
	barMarker *markerElement

	changed *event.Bus[render.Color]
	color   render.Color
	docs    map[*pointer.Dispatcher]bool
}

// Option configures a ColorPicker.
type Option func(*ColorPicker)

// WithIDs names the picker and its parts from g.
func WithIDs(g ids.Generator) Option { return func(p *ColorPicker) { p.id = g.Next() } }

// WithOrigin places the plane's top-left corner in host coordinates.
func WithOrigin(x, y int) Option { return func(p *ColorPicker) { p.origin = image.Pt(x, y) } }

// WithBubbleSize sets the bubble's width and height.
func WithBubbleSize(n float64) Option {
	return func(p *ColorPicker) {
		if n > 0 {
			p.bubbleSize = n
		}
	}
}

// WithColors styles the panel and markers.
func WithColors(c Colors) Option { return func(p *ColorPicker) { p.colors = c } }

// WithShadow sets the panel's drop shadow. A zero opacity disables it.
func WithShadow(opts render.ShadowOptions) Option { return func(p *ColorPicker) { p.shadow = opts } }

// Hidden starts the picker hidden.
func Hidden() Option { return func(p *ColorPicker) { p.visible = false } }

// New builds a picker whose plane is width×height. The hue bar is as tall
// as the plane and a sixth of its width.
func New(height, width int, opts ...Option) (*ColorPicker, error) {
	p := &ColorPicker{
		id:         "picker",
		bubbleSize: DefaultBubbleSize,
		gap:        DefaultGap,
		padding:    DefaultPadding,
		colors:     DefaultColors(),
		shadow:     render.DefaultShadowOptions(),
		visible:    true,
		docs:       map[*pointer.Dispatcher]bool{},
	}
	for _, o := range opts {
		o(p)
	}
	var err error
	p.plane, err = surface.New(width, height, surface.WithName(p.id+".plane"))
	if err != nil {
		return nil, fmt.Errorf("picker %s: %w", p.id, err)
	}
	p.bar, err = NewHueBar(max(1, width/6), height, WithBarName(p.id+".huebar"))
	if err != nil {
		return nil, fmt.Errorf("picker %s: %w", p.id, err)
	}
	p.bubble, err = indicator.New(
		geom.Sz(p.bubbleSize, p.bubbleSize),
		geom.Sz(float64(width), float64(height)),
		indicator.Centered(),
		indicator.WithName(p.id+".bubble"),
	)
	if err != nil {
		return nil, fmt.Errorf("picker %s: %w", p.id, err)
	}
	p.changed = event.NewBus[render.Color](p.id + ".color")

	p.panel = &panelElement{picker: p, events: pointer.NewDispatcher(p.id + ".panel")}
	p.bubbleEl = &markerElement{
		name:    p.id + ".bubble",
		ind:     p.bubble,
		parent:  p.plane.Origin,
		visible: p.Visible,
		fill:    p.colors.Marker,
		border:  p.colors.MarkerBorder,
	}
	p.barMarker = &markerElement{
		name:    p.id + ".huebar.marker",
		ind:     p.bar.Marker(),
		parent:  p.bar.Origin,
		visible: p.Visible,
		fill:    p.colors.Marker,
		border:  p.colors.MarkerBorder,
	}
	p.layout()
	p.setVisible(p.visible)
	p.bindLocal()
	p.repaint(p.bar.Color())
	p.sample()
	return p, nil
}

func (p *ColorPicker) layout() {
	p.plane.SetOrigin(p.origin)
	p.bar.SetOrigin(p.origin.Add(image.Pt(p.plane.Width()+p.gap, 0)))
}

func (p *ColorPicker) bindLocal() {
	p.plane.Events().On(pointer.Down, func(ev pointer.Event) {
		if !ev.PrimaryOnly() {
			return
		}
		p.setState(DraggingBubble)
		p.moveBubble(ev.Pos())
	})
	p.bubble.Events().On(pointer.Down, func(ev pointer.Event) {
		if ev.PrimaryOnly() {
			p.setState(DraggingBubble)
		}
	})
	p.bar.Events().On(pointer.Down, func(ev pointer.Event) {
		if !ev.PrimaryOnly() {
			return
		}
		p.setState(DraggingHueBar)
		p.bar.DragTo(ev.Y)
	})
	p.bar.Marker().Events().On(pointer.Down, func(ev pointer.Event) {
		if ev.PrimaryOnly() {
			p.setState(DraggingHueBar)
		}
	})
	p.bar.OnColorChanged(func(hue render.Color) {
		p.repaint(hue)
		p.sample()
		p.notify()
	})
}

// Attach mounts the picker's elements in c and follows drags on c's
// document dispatcher, so a drag keeps working outside the picker.
func (p *ColorPicker) Attach(c host.Container) {
	c.Mount(p.panel)
	c.Mount(p.plane)
	c.Mount(p.bubbleEl)
	c.Mount(p.bar)
	c.Mount(p.barMarker)

	doc := c.Document()
	if p.docs[doc] {
		return
	}
	p.docs[doc] = true
	doc.On(pointer.Move, p.documentMove)
	doc.On(pointer.Up, func(pointer.Event) { p.setState(Idle) })
}

func (p *ColorPicker) documentMove(ev pointer.Event) {
	if p.state == Idle {
		return
	}
	if ev.Buttons&pointer.ButtonPrimary == 0 {
		// The release happened somewhere we never saw.
		p.setState(Idle)
		return
	}
	switch p.state {
	case DraggingBubble:
		p.moveBubble(ev.Pos().Sub(geom.FromImage(p.plane.Origin())))
	case DraggingHueBar:
		p.bar.DragTo(ev.Y - float64(p.bar.Origin().Y))
	}
}

func (p *ColorPicker) setState(s State) {
	if p.state == s {
		return
	}
	logging.Logger().Debug("picker state", "picker", p.id, "from", p.state, "to", s)
	p.state = s
}

// moveBubble centres the bubble on pos, given in plane coordinates.
func (p *ColorPicker) moveBubble(pos geom.Point) {
	p.bubble.CenterOn(pos)
	p.sample()
	p.notify()
}

// repaint redraws the plane as three full-size fills composited in order:
// the hue, white fading out to the right, then black fading out upwards.
func (p *ColorPicker) repaint(hue render.Color) {
	w := float64(p.plane.Width())
	h := float64(p.plane.Height())
	size := math.Max(w, h)

	p.plane.ClearObjects()
	fills := []render.Style{
		render.Solid(hue),
		render.NewLinearGradient(0, 0, w, 0).
			AddColorStop(0, color.White).
			AddColorStop(1, color.Transparent),
		render.NewLinearGradient(0, h, 0, 0).
			AddColorStop(0, color.Black).
			AddColorStop(1, color.Transparent),
	}
	for _, f := range fills {
		p.plane.SetFillStyle(f)
		if err := p.plane.DrawShape(0, 0, size); err != nil {
			logging.Logger().Error("picker repaint", "picker", p.id, "err", err)
		}
	}
	p.plane.Draw()
}

// sample reads the plane pixel under the bubble centre.
func (p *ColorPicker) sample() {
	c := p.bubble.Center()
	x := int(math.Floor(c.X))
	y := int(math.Floor(c.Y))
	p.color = render.ColorOf(p.plane.PixelAt(x, y))
}

func (p *ColorPicker) notify() {
	_ = p.changed.Dispatch(p.color)
}

// Color is the selected colour.
func (p *ColorPicker) Color() render.Color { return p.color }

// ColorString is the selected colour as "rgb(r, g, b)".
func (p *ColorPicker) ColorString() string { return p.color.String() }

// OnColorChanged subscribes fn to selection changes.
func (p *ColorPicker) OnColorChanged(fn func(render.Color)) { p.changed.Subscribe(fn) }

// ID is the picker's identifier.
func (p *ColorPicker) ID() string { return p.id }

// State is the current drag state.
func (p *ColorPicker) State() State { return p.state }

// Show makes the picker visible.
func (p *ColorPicker) Show() { p.setVisible(true) }

// Hide hides the picker and abandons any drag.
func (p *ColorPicker) Hide() { p.setVisible(false) }

// ToggleVisible flips visibility.
func (p *ColorPicker) ToggleVisible() { p.setVisible(!p.visible) }

// Visible reports whether the picker is shown.
func (p *ColorPicker) Visible() bool { return p.visible }

func (p *ColorPicker) setVisible(v bool) {
	p.visible = v
	p.plane.SetVisible(v)
	p.bar.SetVisible(v)
	if !v {
		p.setState(Idle)
	}
}

// SetColors restyles the panel and markers.
func (p *ColorPicker) SetColors(c Colors) {
	p.colors = c
	for _, m := range []*markerElement{p.bubbleEl, p.barMarker} {
		m.fill, m.border = c.Marker, c.MarkerBorder
	}
}

// HueBar is the picker's hue bar.
func (p *ColorPicker) HueBar() *HueBar { return p.bar }

// Bubble is the marker on the plane.
func (p *ColorPicker) Bubble() *indicator.Indicator { return p.bubble }

// Surface is the plane.
func (p *ColorPicker) Surface() *surface.Surface { return p.plane }

// Bounds covers the plane, the bar and the padding around them.
func (p *ColorPicker) Bounds() image.Rectangle {
	return p.plane.Bounds().Union(p.bar.Bounds()).Inset(-p.padding)
}

// MoveTo places the plane's top-left corner at (x, y).
func (p *ColorPicker) MoveTo(x, y int) {
	p.origin = image.Pt(x, y)
	p.layout()
}

// panelElement is the background behind the plane and bar. It swallows
// pointer events that land on the padding.
type panelElement struct {
	picker *ColorPicker
	events *pointer.Dispatcher
}

var (
	_ host.Element  = (*panelElement)(nil)
	_ host.Shadowed = (*panelElement)(nil)
)

func (e *panelElement) Name() string                 { return e.picker.id + ".panel" }
func (e *panelElement) Bounds() image.Rectangle      { return e.picker.Bounds() }
func (e *panelElement) Visible() bool                { return e.picker.visible }
func (e *panelElement) Events() *pointer.Dispatcher  { return e.events }
func (e *panelElement) Shadow() render.ShadowOptions { return e.picker.shadow }

func (e *panelElement) Paint(dst draw.Image) {
	draw.Draw(dst, e.Bounds(), image.NewUniform(e.picker.colors.Panel), image.Point{}, draw.Src)
}
