package host

import (
	"golang.org/x/mobile/event/mouse"

	"github.com/example/huepad/internal/pointer"
)

// buttonBit maps a mouse button onto the pointer mask.
func buttonBit(b mouse.Button) pointer.Buttons {
	switch b {
	case mouse.ButtonLeft:
		return pointer.ButtonPrimary
	case mouse.ButtonRight:
		return pointer.ButtonSecondary
	case mouse.ButtonMiddle:
		return pointer.ButtonTertiary
	}
	return 0
}

// Translate converts a shiny mouse event into a pointer event. held is the
// mask before e; the returned event carries the mask after it, which is also
// returned for the next call. Wheel events are not pointer events and report
// ok=false.
func Translate(e mouse.Event, held pointer.Buttons) (ev pointer.Event, next pointer.Buttons, ok bool) {
	if e.Button.IsWheel() {
		return pointer.Event{}, held, false
	}
	next = held
	ev = pointer.Event{X: float64(e.X), Y: float64(e.Y)}
	switch e.Direction {
	case mouse.DirPress:
		next |= buttonBit(e.Button)
		ev.Kind = pointer.Down
	case mouse.DirRelease:
		next &^= buttonBit(e.Button)
		ev.Kind = pointer.Up
	case mouse.DirNone:
		ev.Kind = pointer.Move
	default:
		// DirStep only happens for wheels.
		return pointer.Event{}, held, false
	}
	ev.Buttons = next
	return ev, next, true
}

// RouteMouse translates e with the router's held mask and routes it.
func (r *Router) RouteMouse(e mouse.Event) error {
	ev, _, ok := Translate(e, r.held)
	if !ok {
		return nil
	}
	return r.Route(ev)
}
