package appstate

import (
	"math"
	"sort"
	"unicode"

	"golang.org/x/mobile/event/key"

	"github.com/example/huepad/internal/logging"
)

const (
	stampSize = 24
	maxWidth  = 64
)

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

// shortcutList is a helper to easily satisfy the KeyboardShortcuts interface.
type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

func keys(runes ...rune) shortcutList {
	out := make(shortcutList, len(runes))
	for i, r := range runes {
		out[i] = KeyShortcut{Rune: r}
	}
	return out
}

const actionQuit = "quit"

func (a *AppState) registerActions() {
	a.actions = map[string]func(){}
	a.keyboardAction = map[KeyShortcut]string{}

	register := func(name string, ks KeyboardShortcuts, fn func()) {
		a.actions[name] = fn
		if ks != nil {
			for _, sc := range ks.KeyboardShortcuts() {
				a.keyboardAction[sc] = name
			}
		}
	}

	register("toggle-picker", keys('p'), func() {
		a.picker.ToggleVisible()
	})
	register("copy-color", keys('c'), a.copyColor)
	register("copy-image", keys('i'), a.copyImage)
	register("clear", keys('x'), func() {
		a.drawing.ClearObjects()
		a.flash("cleared")
	})
	register("stamp", keys('s'), a.stamp)
	register("rainbow", keys('r'), func() {
		a.rainbow = !a.rainbow
		if a.rainbow {
			a.flash("rainbow pen")
		} else {
			a.flash("solid pen")
		}
	})
	register("wider", keys('+', '='), func() { a.setLineWidth(a.lineWidth + 1) })
	register("thinner", keys('-'), func() { a.setLineWidth(a.lineWidth - 1) })
	register(actionQuit, append(keys('q'), KeyShortcut{Rune: -1, Code: key.CodeEscape}), nil)
}

// Shortcuts lists action names with their keys, sorted by action.
func (a *AppState) Shortcuts() map[string][]KeyShortcut {
	out := map[string][]KeyShortcut{}
	for sc, name := range a.keyboardAction {
		out[name] = append(out[name], sc)
	}
	for _, list := range out {
		sort.Slice(list, func(i, j int) bool { return list[i].Rune < list[j].Rune })
	}
	return out
}

// Trigger runs the named action. It reports false for unknown names and
// for quit, which the window loop handles.
func (a *AppState) Trigger(name string) bool {
	fn, ok := a.actions[name]
	if !ok || fn == nil {
		return false
	}
	fn()
	return true
}

// HandleKey runs the action bound to a key press and reports whether the
// window should close.
func (a *AppState) HandleKey(e key.Event) (quit bool) {
	if e.Direction != key.DirPress {
		return false
	}
	ks := KeyShortcut{Rune: unicode.ToLower(e.Rune), Code: e.Code, Modifiers: e.Modifiers}
	if e.Rune <= 0 {
		ks = KeyShortcut{Rune: -1, Code: e.Code, Modifiers: e.Modifiers}
	}
	action, ok := a.keyboardAction[ks]
	if !ok {
		// Printable keys are registered without a code; shift is already
		// folded into the rune.
		action, ok = a.keyboardAction[KeyShortcut{Rune: ks.Rune, Modifiers: e.Modifiers &^ key.ModShift}]
	}
	if !ok {
		return false
	}
	if action == actionQuit {
		return true
	}
	logging.Logger().Debug("shortcut", "action", action)
	a.Trigger(action)
	return false
}

func (a *AppState) copyColor() {
	c := a.picker.Color()
	if err := a.clip.WriteText(c.Hex()); err != nil {
		a.flash("copy failed: %v", err)
		return
	}
	a.flash("copied %s", c.Hex())
	a.notifier.Color(c.Hex(), c)
}

func (a *AppState) copyImage() {
	img := a.drawing.Image()
	if err := a.clip.WriteImage(img); err != nil {
		a.flash("copy failed: %v", err)
		return
	}
	a.flash("drawing copied to clipboard")
	a.notifier.Image(img)
}

// stamp drops a filled square centred on the pointer when it is over the
// drawing.
func (a *AppState) stamp() {
	o := a.drawing.Origin()
	if !a.cursor.In(a.drawing.Bounds()) {
		return
	}
	x := float64(a.cursor.X-o.X) - stampSize/2
	y := float64(a.cursor.Y-o.Y) - stampSize/2
	a.drawing.SetFillStyle(a.penStyle())
	if err := a.drawing.DrawShape(x, y, stampSize); err != nil {
		logging.Logger().Error("stamp", "err", err)
	}
}

func (a *AppState) setLineWidth(w float64) {
	w = math.Max(1, math.Min(maxWidth, w))
	a.lineWidth = w
	a.pen.SetWidth(w)
	a.flash("line width %g", w)
}
