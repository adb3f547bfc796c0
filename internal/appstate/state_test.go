package appstate

import (
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/huepad/internal/config"
	"github.com/example/huepad/internal/ids"
	"github.com/example/huepad/internal/notify"
	"github.com/example/huepad/internal/picker"
	"github.com/example/huepad/internal/platform"
	"github.com/example/huepad/internal/pointer"
	"github.com/example/huepad/internal/render"
	"github.com/example/huepad/internal/theme"
)

type fakeClipboard struct {
	text string
	img  image.Image
	err  error
}

func (f *fakeClipboard) WriteText(s string) error {
	if f.err != nil {
		return f.err
	}
	f.text = s
	return nil
}

func (f *fakeClipboard) WriteImage(img image.Image) error {
	if f.err != nil {
		return f.err
	}
	f.img = img
	return nil
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newApp(t *testing.T, opts ...Option) (*AppState, *fakeClipboard, *clock) {
	t.Helper()
	clip := &fakeClipboard{}
	clk := &clock{t: time.Unix(1000, 0)}
	base := []Option{
		WithSurfaceSize(200, 150),
		WithPickerSize(120),
		WithClipboard(clip),
		WithClock(clk.now),
		WithIDs(ids.NewSequence("t")),
	}
	a, err := New(append(base, opts...)...)
	require.NoError(t, err)
	return a, clip, clk
}

func primary(kind pointer.Kind, x, y float64) pointer.Event {
	ev := pointer.Event{Kind: kind, X: x, Y: y, Buttons: pointer.ButtonPrimary}
	if kind == pointer.Up {
		ev.Buttons = 0
	}
	return ev
}

func press(r rune) key.Event {
	return key.Event{Rune: r, Direction: key.DirPress}
}

func render1(a *AppState) *image.RGBA {
	w, h := a.WindowSize()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	a.Frame(dst)
	return dst
}

func near(t *testing.T, want render.Color, got color.Color, tol int) {
	t.Helper()
	g := render.ColorOf(got)
	d := func(a, b uint8) int {
		if a > b {
			return int(a - b)
		}
		return int(b - a)
	}
	assert.True(t, d(want.R, g.R) <= tol && d(want.G, g.G) <= tol && d(want.B, g.B) <= tol,
		"got %v want %v", g, want)
}

func TestLayout(t *testing.T) {
	a, _, _ := newApp(t)
	assert.Equal(t, image.Rect(12, 12, 212, 162), a.Drawing().Bounds())
	assert.Equal(t, image.Rect(232, 20, 352, 140), a.Picker().Surface().Bounds())
	assert.Equal(t, image.Rect(224, 12, 388, 148), a.Picker().Bounds())
	w, h := a.WindowSize()
	assert.Equal(t, 400, w)
	assert.Equal(t, 196, h)
	assert.Equal(t, "t-1.drawing", a.Drawing().Name())
	assert.Equal(t, "t-2", a.Picker().ID())
	assert.True(t, a.Drawing().Looping())
}

func TestFreehandStrokeUsesFill(t *testing.T) {
	a, _, _ := newApp(t, WithFill("red"))
	r := a.Router()
	require.NoError(t, r.Route(primary(pointer.Down, 22, 22)))
	require.NoError(t, r.Route(primary(pointer.Move, 22, 22)))
	require.NoError(t, r.Route(primary(pointer.Move, 72, 22)))
	assert.Equal(t, 1, a.Drawing().Provisional())
	require.NoError(t, r.Route(primary(pointer.Up, 72, 22)))
	assert.Equal(t, 1, a.Drawing().Committed())

	render1(a)
	near(t, render.Color{R: 255}, a.Drawing().PixelAt(30, 10), 1)
	assert.Equal(t, uint8(0), a.Drawing().PixelAt(30, 40).A)
}

func TestMouseEventsReachTheDrawing(t *testing.T) {
	a, _, _ := newApp(t)
	a.HandleMouse(mouse.Event{X: 20, Y: 30, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	a.HandleMouse(mouse.Event{X: 20, Y: 30})
	a.HandleMouse(mouse.Event{X: 60, Y: 30})
	a.HandleMouse(mouse.Event{X: 60, Y: 30, Button: mouse.ButtonLeft, Direction: mouse.DirRelease})
	assert.Equal(t, 1, a.Drawing().Committed())
}

func TestPickedColourBecomesPenColour(t *testing.T) {
	a, _, _ := newApp(t)
	r := a.Router()
	plane := a.Picker().Surface().Bounds()
	require.NoError(t, r.Route(primary(pointer.Down, float64(plane.Max.X-1), float64(plane.Min.Y))))
	require.NoError(t, r.Route(primary(pointer.Up, float64(plane.Max.X-1), float64(plane.Min.Y))))
	picked := a.Picker().Color()
	near(t, render.Color{G: 255, B: 255}, picked, 4)

	require.NoError(t, r.Route(primary(pointer.Move, 22, 40)))
	require.NoError(t, r.Route(primary(pointer.Move, 90, 40)))
	require.NoError(t, r.Route(primary(pointer.Up, 90, 40)))
	render1(a)
	near(t, picked, a.Drawing().PixelAt(40, 28), 1)
}

func TestPenIgnoresMovesWhilePickerDrags(t *testing.T) {
	a, _, _ := newApp(t)
	r := a.Router()
	require.NoError(t, r.Route(primary(pointer.Down, 240, 30)))
	require.Equal(t, picker.DraggingBubble, a.Picker().State())
	require.NoError(t, r.Route(primary(pointer.Move, 50, 50)))
	require.NoError(t, r.Route(primary(pointer.Move, 80, 60)))
	assert.Equal(t, 0, a.Drawing().Provisional())
	assert.Equal(t, picker.DraggingBubble, a.Picker().State())
	require.NoError(t, r.Route(primary(pointer.Up, 80, 60)))
	assert.Equal(t, picker.Idle, a.Picker().State())
	assert.Equal(t, 0, a.Drawing().Committed())
}

func TestKeyboardShortcuts(t *testing.T) {
	a, _, _ := newApp(t)
	require.True(t, a.Picker().Visible())
	assert.False(t, a.HandleKey(press('p')))
	assert.False(t, a.Picker().Visible())
	assert.False(t, a.HandleKey(key.Event{Rune: 'p', Direction: key.DirRelease}))
	assert.False(t, a.Picker().Visible())
	a.HandleKey(key.Event{Rune: 'P', Modifiers: key.ModShift, Direction: key.DirPress})
	assert.True(t, a.Picker().Visible())

	assert.False(t, a.HandleKey(press('z')))
	assert.True(t, a.HandleKey(press('q')))
	assert.True(t, a.HandleKey(key.Event{Rune: -1, Code: key.CodeEscape, Direction: key.DirPress}))

	shortcuts := a.Shortcuts()
	assert.Contains(t, shortcuts, "copy-color")
	assert.Len(t, shortcuts["wider"], 2)
	assert.False(t, a.Trigger("quit"))
	assert.False(t, a.Trigger("nope"))
}

func TestClearAndStamp(t *testing.T) {
	a, _, _ := newApp(t)
	r := a.Router()
	require.NoError(t, r.Route(pointer.Event{Kind: pointer.Move, X: 100, Y: 100}))
	a.HandleKey(press('s'))
	assert.Equal(t, 1, a.Drawing().Committed())
	render1(a)
	assert.Equal(t, uint8(255), a.Drawing().PixelAt(88, 88).A)

	// Off the drawing nothing is stamped.
	require.NoError(t, r.Route(pointer.Event{Kind: pointer.Move, X: 300, Y: 100}))
	a.HandleKey(press('s'))
	assert.Equal(t, 1, a.Drawing().Committed())

	a.HandleKey(press('x'))
	assert.Equal(t, 0, a.Drawing().Committed())
	assert.Equal(t, "cleared", a.Message())
}

func TestCopyColourAndImage(t *testing.T) {
	var sent []string
	n := notify.New(notify.DefaultPreferences(), func(title, body string, _ platform.Options) error {
		sent = append(sent, body)
		return nil
	})
	n.Enable(notify.EventColor, true)
	a, clip, _ := newApp(t, WithNotifier(n))

	a.HandleKey(press('c'))
	hex := a.Picker().Color().Hex()
	assert.Equal(t, hex, clip.text)
	assert.Equal(t, "copied "+hex, a.Message())
	assert.Equal(t, []string{"Copied " + hex + " to clipboard"}, sent)

	a.HandleKey(press('i'))
	assert.Same(t, a.Drawing().Image(), clip.img)
	assert.Len(t, sent, 1)

	clip.err = errors.New("no display")
	a.HandleKey(press('c'))
	assert.Equal(t, "copy failed: no display", a.Message())
}

func TestMessageExpires(t *testing.T) {
	a, _, clk := newApp(t)
	a.HandleKey(press('r'))
	assert.Equal(t, "rainbow pen", a.Message())
	assert.Contains(t, a.StatusText(), "rainbow")
	clk.t = clk.t.Add(messageTime)
	assert.Empty(t, a.Message())
}

func TestLineWidthKeysClamp(t *testing.T) {
	a, _, _ := newApp(t, WithLineWidth(2))
	a.HandleKey(press('+'))
	assert.Contains(t, a.StatusText(), "width 3")
	for i := 0; i < 10; i++ {
		a.HandleKey(press('-'))
	}
	assert.Contains(t, a.StatusText(), "width 1")
	assert.Equal(t, "line width 1", a.Message())
}

func TestRainbowPenVariesColour(t *testing.T) {
	a, _, _ := newApp(t, WithRainbow(42))
	r := a.Router()
	require.NoError(t, r.Route(primary(pointer.Move, 22, 30)))
	for x := 42.0; x <= 182; x += 20 {
		require.NoError(t, r.Route(primary(pointer.Move, x, 30)))
	}
	require.NoError(t, r.Route(primary(pointer.Up, 182, 30)))
	render1(a)
	seen := map[render.Color]bool{}
	for x := 15; x < 170; x += 20 {
		seen[render.ColorOf(a.Drawing().PixelAt(x, 18))] = true
	}
	assert.Greater(t, len(seen), 3)
}

func TestFrameComposesWindow(t *testing.T) {
	a, _, _ := newApp(t)
	dst := render1(a)
	th := theme.Default()
	// Empty drawing shows the checkerboard.
	assert.Equal(t, th.CheckerLight, dst.RGBAAt(12, 12))
	assert.Equal(t, th.CheckerDark, dst.RGBAAt(12+checkerSize, 12))
	// Status swatch shows the picked colour.
	c := a.Picker().Color()
	assert.Equal(t, color.RGBA{c.R, c.G, c.B, 255}, dst.RGBAAt(10, 185))
	// Picker panel padding.
	assert.Equal(t, th.PanelBackground, dst.RGBAAt(226, 14))
}

func TestApplyConfig(t *testing.T) {
	a, _, _ := newApp(t)
	cfg := config.New()
	cfg.LineWidth = 9
	dark := theme.Default()
	dark.PanelBackground = color.RGBA{10, 20, 30, 255}
	dark.CheckerLight = color.RGBA{1, 2, 3, 255}
	a.ApplyConfig(cfg, dark)

	dst := render1(a)
	assert.Equal(t, dark.PanelBackground, dst.RGBAAt(226, 14))
	assert.Equal(t, dark.CheckerLight, dst.RGBAAt(12, 12))
	assert.Contains(t, a.StatusText(), "width 9")
	assert.Equal(t, "config reloaded", a.Message())
}

func TestFromConfig(t *testing.T) {
	cfg := config.New()
	cfg.Surface = config.Surface{Width: 50, Height: 40}
	cfg.Picker = config.Picker{Size: 60, Visible: false}
	a, err := New(append(FromConfig(cfg), WithClipboard(&fakeClipboard{}))...)
	require.NoError(t, err)
	assert.Equal(t, 50, a.Drawing().Width())
	assert.False(t, a.Picker().Visible())

	cfg.Fill = "nonsense"
	_, err = New(FromConfig(cfg)...)
	assert.Error(t, err)
}

func TestCloseRunsOnce(t *testing.T) {
	calls := 0
	a, _, _ := newApp(t, WithOnClose(func() { calls++ }))
	a.notifyClose()
	a.notifyClose()
	assert.Equal(t, 1, calls)
	assert.False(t, a.Drawing().Looping())
}
