package host

import (
	"errors"
	"image"
	"image/draw"
	"slices"

	"github.com/example/huepad/internal/pointer"
	"github.com/example/huepad/internal/render"
)

// Router is a Container that hit-tests pointer events against its mounted
// elements. Later mounts sit on top of earlier ones.
type Router struct {
	elems   []Element
	doc     *pointer.Dispatcher
	held    pointer.Buttons
	pressed Element
}

var _ Container = (*Router)(nil)

// NewRouter returns a router with no elements.
func NewRouter() *Router {
	return &Router{doc: pointer.NewDispatcher("document")}
}

// Mount adds e on top of the existing elements. Mounting an element twice
// raises it to the top.
func (r *Router) Mount(e Element) {
	if e == nil {
		return
	}
	r.Unmount(e)
	r.elems = append(r.elems, e)
}

// Unmount removes e if present.
func (r *Router) Unmount(e Element) {
	r.elems = slices.DeleteFunc(r.elems, func(x Element) bool { return x == e })
	if r.pressed == e {
		r.pressed = nil
	}
}

// Elements returns the mounted elements, bottom first.
func (r *Router) Elements() []Element { return slices.Clone(r.elems) }

// Document is the dispatcher that receives every event in host coordinates.
func (r *Router) Document() *pointer.Dispatcher { return r.doc }

// Held is the button mask as of the last routed event.
func (r *Router) Held() pointer.Buttons { return r.held }

// HitTest returns the topmost visible element containing p, or nil.
func (r *Router) HitTest(p image.Point) Element {
	for i := len(r.elems) - 1; i >= 0; i-- {
		e := r.elems[i]
		if e.Visible() && p.In(e.Bounds()) {
			return e
		}
	}
	return nil
}

// Route delivers ev to the element under it, in element coordinates, and
// then to the document. An up over the element that received the matching
// down is followed by a click.
func (r *Router) Route(ev pointer.Event) error {
	r.held = ev.Buttons
	target := r.HitTest(ev.Pos().Image())

	var errs []error
	deliver := func(e Element, ev pointer.Event) {
		o := e.Bounds().Min
		if err := e.Events().Dispatch(ev.Translate(-float64(o.X), -float64(o.Y))); err != nil {
			errs = append(errs, err)
		}
	}
	if target != nil {
		deliver(target, ev)
	}
	if err := r.doc.Dispatch(ev); err != nil {
		errs = append(errs, err)
	}

	switch ev.Kind {
	case pointer.Down:
		r.pressed = target
	case pointer.Up:
		pressed := r.pressed
		r.pressed = nil
		if pressed != nil && pressed == target {
			click := ev
			click.Kind = pointer.Click
			deliver(target, click)
			if err := r.doc.Dispatch(click); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Composite paints the visible elements onto dst, bottom first.
func (r *Router) Composite(dst draw.Image) {
	for _, e := range r.elems {
		if !e.Visible() {
			continue
		}
		if s, ok := e.(Shadowed); ok {
			render.DrawShadow(dst, e.Bounds(), s.Shadow())
		}
		e.Paint(dst)
	}
}
