// Package pointer classifies raw pointer input into click, move, up and down
// channels. Widgets compose a Dispatcher instead of inspecting raw events.
package pointer

import (
	"errors"
	"fmt"

	"github.com/example/huepad/internal/event"
	"github.com/example/huepad/internal/geom"
)

// Kind identifies a pointer channel.
type Kind int

const (
	Click Kind = iota
	Move
	Up
	Down

	numKinds
)

// Kinds lists every channel in declaration order.
var Kinds = [...]Kind{Click, Move, Up, Down}

func (k Kind) String() string {
	switch k {
	case Click:
		return "click"
	case Move:
		return "move"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Valid reports whether k is one of the four channels.
func (k Kind) Valid() bool { return k >= 0 && k < numKinds }

// Buttons is a mask of held buttons, matching the browser `buttons` field.
type Buttons uint8

const (
	ButtonPrimary Buttons = 1 << iota
	ButtonSecondary
	ButtonTertiary
)

// Event is one pointer sample. X and Y are in the coordinate space of
// whoever delivered it: element-local for element dispatchers, host space
// for the document dispatcher.
type Event struct {
	Kind    Kind
	X, Y    float64
	Buttons Buttons
}

// Pos returns the event position.
func (e Event) Pos() geom.Point { return geom.Pt(e.X, e.Y) }

// PrimaryOnly is true when the primary button, and nothing else, is held.
func (e Event) PrimaryOnly() bool { return e.Buttons == ButtonPrimary }

// Translate returns a copy of e moved by (dx, dy).
func (e Event) Translate(dx, dy float64) Event {
	e.X += dx
	e.Y += dy
	return e
}

// ErrUnknownKind is returned when an event or subscription names no channel.
var ErrUnknownKind = errors.New("pointer: unknown event kind")

// Source is anything that delivers pointer events per channel.
type Source interface {
	Subscribe(kind Kind, fn func(Event)) error
}

// Dispatcher holds one bus per channel, indexed by Kind.
type Dispatcher struct {
	buses [numKinds]*event.Bus[Event]
}

var _ Source = (*Dispatcher)(nil)

// NewDispatcher returns a dispatcher with empty channels. name labels the
// buses in log output.
func NewDispatcher(name string) *Dispatcher {
	d := &Dispatcher{}
	for _, k := range Kinds {
		d.buses[k] = event.NewBus[Event](name + "." + k.String())
	}
	return d
}

// Subscribe registers fn on the given channel.
func (d *Dispatcher) Subscribe(kind Kind, fn func(Event)) error {
	if !kind.Valid() {
		return fmt.Errorf("subscribe %v: %w", kind, ErrUnknownKind)
	}
	d.buses[kind].Subscribe(fn)
	return nil
}

// On is Subscribe for callers that only use the four declared kinds.
func (d *Dispatcher) On(kind Kind, fn func(Event)) {
	if err := d.Subscribe(kind, fn); err != nil {
		panic(err)
	}
}

// Dispatch re-emits ev, unchanged, on the channel matching ev.Kind.
func (d *Dispatcher) Dispatch(ev Event) error {
	if !ev.Kind.Valid() {
		return fmt.Errorf("dispatch %v: %w", ev.Kind, ErrUnknownKind)
	}
	return d.buses[ev.Kind].Dispatch(ev)
}

// Subscribers reports the number of callbacks bound to kind.
func (d *Dispatcher) Subscribers(kind Kind) int {
	if !kind.Valid() {
		return 0
	}
	return d.buses[kind].Len()
}
