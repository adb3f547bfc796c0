// Package host is the platform layer between raw window input and widgets.
// Widgets implement Element and attach themselves to a Container; a Router
// is the Container that shiny windows use.
package host

import (
	"image"
	"image/draw"

	"github.com/example/huepad/internal/pointer"
	"github.com/example/huepad/internal/render"
)

// Element is a rectangular widget that receives pointer events in its own
// coordinate space and paints itself onto the host image.
type Element interface {
	Name() string
	// Bounds is the element rectangle in host coordinates.
	Bounds() image.Rectangle
	Visible() bool
	Events() *pointer.Dispatcher
	// Paint draws the element at Bounds() on dst.
	Paint(dst draw.Image)
}

// Container accepts elements and exposes the document-wide dispatcher,
// which sees every pointer event in host coordinates.
type Container interface {
	Mount(e Element)
	Document() *pointer.Dispatcher
}

// Shadowed elements get a drop shadow painted underneath them.
type Shadowed interface {
	Shadow() render.ShadowOptions
}
