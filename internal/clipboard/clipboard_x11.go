//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/example/huepad/internal/logging"
)

// Without cgo the clipboard is served by owning the X11 CLIPBOARD
// selection from a hidden window.
var owner *selectionOwner

func initBackend() error {
	o, err := newSelectionOwner()
	if err != nil {
		return err
	}
	owner = o
	return nil
}

func writeText(data []byte) error { return owner.publish(data, nil) }

func writePNG(data []byte) error { return owner.publish(nil, data) }

type selectionOwner struct {
	conn   *xgb.Conn
	window xproto.Window
	atoms  map[string]xproto.Atom
	chunk  int

	// incr holds transfers too large for one request, keyed by the
	// requestor window and property they are written to.
	incr map[incrKey]*incrTransfer

	mu   sync.RWMutex
	text []byte
	png  []byte
}

func newSelectionOwner() (*selectionOwner, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := xproto.CreateWindowChecked(conn, screen.RootDepth, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOutput, screen.RootVisual, xproto.CwEventMask,
		[]uint32{xproto.EventMaskPropertyChange}).Check(); err != nil {
		conn.Close()
		return nil, err
	}
	o := &selectionOwner{
		conn:   conn,
		window: window,
		atoms:  map[string]xproto.Atom{},
		chunk:  maxChunk(xproto.Setup(conn).MaximumRequestLength),
		incr:   map[incrKey]*incrTransfer{},
	}
	for _, name := range []string{"CLIPBOARD", "TARGETS", "UTF8_STRING", "text/plain;charset=utf-8", "image/png", "INCR"} {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			xproto.DestroyWindow(conn, window)
			conn.Close()
			return nil, err
		}
		o.atoms[name] = reply.Atom
	}
	go o.serve()
	return o, nil
}

func (o *selectionOwner) publish(text, png []byte) error {
	o.mu.Lock()
	o.text = append([]byte(nil), text...)
	o.png = append([]byte(nil), png...)
	o.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(o.conn, o.window, o.atoms["CLIPBOARD"], xproto.TimeCurrentTime).Check()
}

func (o *selectionOwner) serve() {
	for {
		ev, err := o.conn.WaitForEvent()
		if err != nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			o.answer(e)
		case xproto.PropertyNotifyEvent:
			if e.State == xproto.PropertyDelete {
				o.continueIncr(incrKey{e.Window, e.Atom})
			}
		case xproto.SelectionClearEvent:
			o.mu.Lock()
			o.text, o.png = nil, nil
			o.mu.Unlock()
		}
	}
}

// answer stores the requested target on the requestor's property and tells
// it so. Unknown or empty targets are refused with property None. Payloads
// above the request limit are announced as INCR and sent in chunks as the
// requestor deletes the property.
func (o *selectionOwner) answer(e xproto.SelectionRequestEvent) {
	prop := e.Property
	if prop == xproto.AtomNone {
		prop = e.Target
	}
	o.mu.RLock()
	text, png := o.text, o.png
	o.mu.RUnlock()

	var (
		typ     xproto.Atom
		format  byte = 8
		payload []byte
	)
	switch e.Target {
	case o.atoms["TARGETS"]:
		targets := []xproto.Atom{o.atoms["TARGETS"]}
		if len(text) > 0 {
			targets = append(targets, o.atoms["UTF8_STRING"], xproto.AtomString, o.atoms["text/plain;charset=utf-8"])
		}
		if len(png) > 0 {
			targets = append(targets, o.atoms["image/png"])
		}
		payload = make([]byte, 4*len(targets))
		for i, a := range targets {
			xgb.Put32(payload[4*i:], uint32(a))
		}
		typ, format = xproto.AtomAtom, 32
	case o.atoms["UTF8_STRING"], xproto.AtomString, o.atoms["text/plain;charset=utf-8"]:
		payload, typ = text, o.atoms["UTF8_STRING"]
	case o.atoms["image/png"]:
		payload, typ = png, o.atoms["image/png"]
	}

	switch {
	case len(payload) == 0:
		prop = xproto.AtomNone
	case len(payload) > o.chunk:
		if err := o.startIncr(e.Requestor, prop, typ, payload); err != nil {
			logging.Logger().Warn("clipboard incr transfer", "err", err, "size", len(payload))
			prop = xproto.AtomNone
		}
	default:
		if err := o.setProperty(e.Requestor, prop, typ, format, payload); err != nil {
			logging.Logger().Warn("clipboard property", "err", err, "size", len(payload))
			prop = xproto.AtomNone
		}
	}

	notify := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  prop,
	}
	if err := xproto.SendEventChecked(o.conn, false, e.Requestor, 0, string(notify.Bytes())).Check(); err != nil {
		logging.Logger().Warn("clipboard selection notify", "err", err)
		o.dropIncr(incrKey{e.Requestor, prop})
	}
}

func (o *selectionOwner) setProperty(w xproto.Window, prop, typ xproto.Atom, format byte, data []byte) error {
	return xproto.ChangePropertyChecked(o.conn, xproto.PropModeReplace, w, prop, typ, format,
		uint32(len(data))/uint32(format/8), data).Check()
}

// startIncr announces the total size under type INCR and watches the
// requestor for property deletions.
func (o *selectionOwner) startIncr(w xproto.Window, prop, typ xproto.Atom, data []byte) error {
	if err := xproto.ChangeWindowAttributesChecked(o.conn, w, xproto.CwEventMask,
		[]uint32{xproto.EventMaskPropertyChange}).Check(); err != nil {
		return err
	}
	size := make([]byte, 4)
	xgb.Put32(size, uint32(len(data)))
	if err := o.setProperty(w, prop, o.atoms["INCR"], 32, size); err != nil {
		return err
	}
	o.incr[incrKey{w, prop}] = &incrTransfer{typ: typ, data: data}
	return nil
}

// continueIncr writes the next chunk of a pending transfer. The empty chunk
// written after the last one ends it.
func (o *selectionOwner) continueIncr(k incrKey) {
	t, ok := o.incr[k]
	if !ok {
		return
	}
	chunk, done := t.next(o.chunk)
	if err := o.setProperty(k.window, k.property, t.typ, 8, chunk); err != nil {
		logging.Logger().Warn("clipboard incr chunk", "err", err, "offset", t.off)
		o.dropIncr(k)
		return
	}
	if done {
		o.dropIncr(k)
	}
}

func (o *selectionOwner) dropIncr(k incrKey) {
	if _, ok := o.incr[k]; !ok {
		return
	}
	delete(o.incr, k)
	xproto.ChangeWindowAttributes(o.conn, k.window, xproto.CwEventMask, []uint32{xproto.EventMaskNoEvent})
}

type incrKey struct {
	window   xproto.Window
	property xproto.Atom
}

type incrTransfer struct {
	typ  xproto.Atom
	data []byte
	off  int
}

// next returns up to size bytes of the remaining data. Once the data is
// exhausted it returns an empty chunk with done set.
func (t *incrTransfer) next(size int) (chunk []byte, done bool) {
	if t.off >= len(t.data) {
		return nil, true
	}
	end := min(t.off+size, len(t.data))
	chunk = t.data[t.off:end]
	t.off = end
	return chunk, false
}

// maxChunk is the largest 8-bit ChangeProperty payload for a server whose
// maximum request length is maxReq four-byte units.
func maxChunk(maxReq uint16) int {
	const header = 24
	n := int(maxReq)*4 - header
	if n < 1024 {
		return 1024
	}
	return n &^ 3
}
