package host

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/huepad/internal/event"
	"github.com/example/huepad/internal/pointer"
	"github.com/example/huepad/internal/render"
)

type box struct {
	name    string
	r       image.Rectangle
	visible bool
	fill    color.Color
	events  *pointer.Dispatcher
	got     []pointer.Event
}

func newBox(name string, r image.Rectangle) *box {
	b := &box{name: name, r: r, visible: true, fill: color.Black, events: pointer.NewDispatcher(name)}
	for _, k := range pointer.Kinds {
		b.events.On(k, func(ev pointer.Event) { b.got = append(b.got, ev) })
	}
	return b
}

func (b *box) Name() string                { return b.name }
func (b *box) Bounds() image.Rectangle     { return b.r }
func (b *box) Visible() bool               { return b.visible }
func (b *box) Events() *pointer.Dispatcher { return b.events }
func (b *box) Paint(dst draw.Image) {
	draw.Draw(dst, b.r, image.NewUniform(b.fill), image.Point{}, draw.Src)
}

type shadowBox struct{ *box }

func (shadowBox) Shadow() render.ShadowOptions {
	return render.ShadowOptions{Radius: 0, Offset: image.Pt(2, 2), Opacity: 1}
}

func kinds(evs []pointer.Event) []pointer.Kind {
	out := make([]pointer.Kind, len(evs))
	for i, ev := range evs {
		out[i] = ev.Kind
	}
	return out
}

func TestRouteTopmostVisibleLocalCoordinates(t *testing.T) {
	r := NewRouter()
	bottom := newBox("bottom", image.Rect(0, 0, 100, 100))
	top := newBox("top", image.Rect(40, 40, 60, 60))
	r.Mount(bottom)
	r.Mount(top)

	require.NoError(t, r.Route(pointer.Event{Kind: pointer.Move, X: 50, Y: 45}))
	require.Len(t, top.got, 1)
	assert.Equal(t, pointer.Event{Kind: pointer.Move, X: 10, Y: 5}, top.got[0])
	assert.Empty(t, bottom.got)

	top.visible = false
	require.NoError(t, r.Route(pointer.Event{Kind: pointer.Move, X: 50, Y: 45}))
	require.Len(t, bottom.got, 1)
	assert.Equal(t, 50.0, bottom.got[0].X)

	assert.Same(t, bottom, r.HitTest(image.Pt(50, 45)))
	assert.Nil(t, r.HitTest(image.Pt(150, 45)))
}

func TestRouteAlwaysReachesDocument(t *testing.T) {
	r := NewRouter()
	r.Mount(newBox("a", image.Rect(0, 0, 10, 10)))
	var doc []pointer.Event
	for _, k := range pointer.Kinds {
		r.Document().On(k, func(ev pointer.Event) { doc = append(doc, ev) })
	}
	require.NoError(t, r.Route(pointer.Event{Kind: pointer.Move, X: 5, Y: 5}))
	require.NoError(t, r.Route(pointer.Event{Kind: pointer.Move, X: 500, Y: -3}))
	require.Len(t, doc, 2)
	assert.Equal(t, 5.0, doc[0].X)
	assert.Equal(t, 500.0, doc[1].X)
}

func TestClickSynthesis(t *testing.T) {
	r := NewRouter()
	a := newBox("a", image.Rect(0, 0, 10, 10))
	b := newBox("b", image.Rect(20, 0, 30, 10))
	r.Mount(a)
	r.Mount(b)

	require.NoError(t, r.Route(pointer.Event{Kind: pointer.Down, X: 5, Y: 5, Buttons: pointer.ButtonPrimary}))
	require.NoError(t, r.Route(pointer.Event{Kind: pointer.Up, X: 6, Y: 5}))
	assert.Equal(t, []pointer.Kind{pointer.Down, pointer.Up, pointer.Click}, kinds(a.got))

	// Press on a, release on b: no click anywhere.
	a.got, b.got = nil, nil
	require.NoError(t, r.Route(pointer.Event{Kind: pointer.Down, X: 5, Y: 5, Buttons: pointer.ButtonPrimary}))
	require.NoError(t, r.Route(pointer.Event{Kind: pointer.Up, X: 25, Y: 5}))
	assert.Equal(t, []pointer.Kind{pointer.Down}, kinds(a.got))
	assert.Equal(t, []pointer.Kind{pointer.Up}, kinds(b.got))
}

func TestMountRaisesAndUnmount(t *testing.T) {
	r := NewRouter()
	a := newBox("a", image.Rect(0, 0, 10, 10))
	b := newBox("b", image.Rect(0, 0, 10, 10))
	r.Mount(a)
	r.Mount(b)
	r.Mount(a)
	assert.Len(t, r.Elements(), 2)
	assert.Same(t, a, r.HitTest(image.Pt(1, 1)))
	r.Unmount(a)
	assert.Same(t, b, r.HitTest(image.Pt(1, 1)))
}

func TestRouteCollectsSubscriberPanics(t *testing.T) {
	r := NewRouter()
	a := newBox("a", image.Rect(0, 0, 10, 10))
	a.events.On(pointer.Move, func(pointer.Event) { panic("boom") })
	r.Mount(a)
	var docCalls int
	r.Document().On(pointer.Move, func(pointer.Event) { docCalls++ })

	err := r.Route(pointer.Event{Kind: pointer.Move, X: 1, Y: 1})
	require.Error(t, err)
	var de *event.DispatchError
	assert.True(t, errors.As(err, &de))
	assert.Equal(t, 1, docCalls)
	assert.Len(t, a.got, 1)
}

func TestCompositeOrderAndShadow(t *testing.T) {
	r := NewRouter()
	bottom := newBox("bottom", image.Rect(0, 0, 20, 20))
	bottom.fill = color.White
	top := newBox("top", image.Rect(5, 5, 10, 10))
	top.fill = color.RGBA{255, 0, 0, 255}
	hidden := newBox("hidden", image.Rect(0, 0, 20, 20))
	hidden.visible = false
	r.Mount(bottom)
	r.Mount(shadowBox{top})
	r.Mount(hidden)

	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	r.Composite(dst)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, dst.RGBAAt(7, 7))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, dst.RGBAAt(1, 1))
	// Shadow sits two pixels down and right of the red box.
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, dst.RGBAAt(11, 11))
}

func TestTranslateTracksButtons(t *testing.T) {
	var held pointer.Buttons
	ev, held, ok := Translate(mouse.Event{X: 3, Y: 4, Button: mouse.ButtonLeft, Direction: mouse.DirPress}, held)
	require.True(t, ok)
	assert.Equal(t, pointer.Event{Kind: pointer.Down, X: 3, Y: 4, Buttons: pointer.ButtonPrimary}, ev)

	ev, held, ok = Translate(mouse.Event{X: 5, Y: 6, Direction: mouse.DirNone}, held)
	require.True(t, ok)
	assert.True(t, ev.PrimaryOnly())
	assert.Equal(t, pointer.Move, ev.Kind)

	ev, held, ok = Translate(mouse.Event{Button: mouse.ButtonRight, Direction: mouse.DirPress}, held)
	require.True(t, ok)
	assert.Equal(t, pointer.ButtonPrimary|pointer.ButtonSecondary, ev.Buttons)

	ev, held, ok = Translate(mouse.Event{Button: mouse.ButtonLeft, Direction: mouse.DirRelease}, held)
	require.True(t, ok)
	assert.Equal(t, pointer.Up, ev.Kind)
	assert.Equal(t, pointer.ButtonSecondary, ev.Buttons)

	_, after, ok := Translate(mouse.Event{Button: mouse.ButtonWheelUp, Direction: mouse.DirStep}, held)
	assert.False(t, ok)
	assert.Equal(t, held, after)
}

func TestRouteMouse(t *testing.T) {
	r := NewRouter()
	a := newBox("a", image.Rect(0, 0, 10, 10))
	r.Mount(a)
	require.NoError(t, r.RouteMouse(mouse.Event{X: 2, Y: 2, Button: mouse.ButtonLeft, Direction: mouse.DirPress}))
	require.NoError(t, r.RouteMouse(mouse.Event{X: 3, Y: 3, Direction: mouse.DirNone}))
	assert.Equal(t, pointer.ButtonPrimary, r.Held())
	require.NoError(t, r.RouteMouse(mouse.Event{X: 3, Y: 3, Button: mouse.ButtonLeft, Direction: mouse.DirRelease}))
	assert.Equal(t, pointer.Buttons(0), r.Held())
	assert.Equal(t, []pointer.Kind{pointer.Down, pointer.Move, pointer.Up, pointer.Click}, kinds(a.got))
	assert.True(t, a.got[1].PrimaryOnly())
}
