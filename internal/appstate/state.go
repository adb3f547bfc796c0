package appstate

import (
	"context"
	"fmt"
	"image"
	"math/rand/v2"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/huepad/internal/clipboard"
	"github.com/example/huepad/internal/config"
	"github.com/example/huepad/internal/frame"
	"github.com/example/huepad/internal/host"
	"github.com/example/huepad/internal/ids"
	"github.com/example/huepad/internal/logging"
	"github.com/example/huepad/internal/notify"
	"github.com/example/huepad/internal/picker"
	"github.com/example/huepad/internal/pointer"
	"github.com/example/huepad/internal/render"
	"github.com/example/huepad/internal/surface"
	"github.com/example/huepad/internal/theme"
)

const (
	margin       = 12
	statusHeight = 22
	// frameInterval paces the repaint ticker at roughly 60 frames a second.
	frameInterval = 16 * time.Millisecond
	messageTime   = 2 * time.Second
)

// AppState holds the huepad window: a drawing surface, a colour picker and
// the router that feeds them pointer events.
type AppState struct {
	surfaceW, surfaceH int
	pickerSize         int
	pickerHidden       bool
	lineWidth          float64
	fill               string
	rainbow            bool
	seed               uint64
	theme              *theme.Theme
	ids                ids.Generator
	clip               clipboard.Writer
	notifier           *notify.Notifier
	watchPath          string
	now                func() time.Time

	router  *host.Router
	queue   *frame.Queue
	drawing *surface.Surface
	pen     *surface.Pen
	picker  *picker.ColorPicker
	random  func() render.Style

	// fillStyle is the picked colour; the pen may overwrite the surface's.
	fillStyle render.Style

	width, height int
	cursor        image.Point
	message       string
	messageUntil  time.Time
	backdrop      *image.RGBA

	actions        map[string]func()
	keyboardAction map[KeyShortcut]string

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithSurfaceSize sets the drawing surface size.
func WithSurfaceSize(w, h int) Option { return func(a *AppState) { a.surfaceW, a.surfaceH = w, h } }

// WithPickerSize sets the side of the picker's plane.
func WithPickerSize(n int) Option { return func(a *AppState) { a.pickerSize = n } }

// WithPickerVisible shows or hides the picker at start.
func WithPickerVisible(v bool) Option { return func(a *AppState) { a.pickerHidden = !v } }

// WithLineWidth sets the pen width.
func WithLineWidth(w float64) Option { return func(a *AppState) { a.lineWidth = w } }

// WithFill sets the initial fill colour, used until a colour is picked.
func WithFill(spec string) Option { return func(a *AppState) { a.fill = spec } }

// WithRainbow starts the pen in random-colour mode with the given seed.
func WithRainbow(seed uint64) Option {
	return func(a *AppState) { a.rainbow, a.seed = true, seed }
}

// WithTheme sets the window colours.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.theme = t } }

// WithIDs names widgets from g. A nil g keeps the default sequence.
func WithIDs(g ids.Generator) Option {
	return func(a *AppState) {
		if g != nil {
			a.ids = g
		}
	}
}

// WithClipboard replaces the system clipboard.
func WithClipboard(c clipboard.Writer) Option { return func(a *AppState) { a.clip = c } }

// WithNotifier announces clipboard copies.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.notifier = n } }

// WithConfigWatch reloads settings from the rc file at path while running.
func WithConfigWatch(path string) Option { return func(a *AppState) { a.watchPath = path } }

// WithClock replaces time.Now for message expiry.
func WithClock(now func() time.Time) Option { return func(a *AppState) { a.now = now } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// FromConfig maps rc settings onto options.
func FromConfig(cfg *config.Config) []Option {
	return []Option{
		WithSurfaceSize(cfg.Surface.Width, cfg.Surface.Height),
		WithPickerSize(cfg.Picker.Size),
		WithPickerVisible(cfg.Picker.Visible),
		WithLineWidth(cfg.LineWidth),
		WithFill(cfg.Fill),
	}
}

// New creates an AppState with the provided options. Everything except the
// shiny window is built here so the state can be driven headless.
func New(opts ...Option) (*AppState, error) {
	a := &AppState{
		surfaceW:   640,
		surfaceH:   480,
		pickerSize: 300,
		lineWidth:  render.DefaultLineWidth,
		fill:       "black",
		theme:      theme.Default(),
		ids:        ids.NewSequence("huepad"),
		clip:       clipboard.System{},
		now:        time.Now,
	}
	for _, o := range opts {
		o(a)
	}
	fill, err := render.ParseStyle(a.fill)
	if err != nil {
		return nil, fmt.Errorf("fill: %w", err)
	}
	seed := a.seed
	if seed == 0 {
		seed = uint64(a.now().UnixNano())
	}
	a.random = surface.RandomStyles(rand.New(rand.NewPCG(seed, seed>>32|1)))

	a.fillStyle = fill

	a.router = host.NewRouter()
	a.queue = frame.NewQueue()
	a.drawing, err = surface.New(a.surfaceW, a.surfaceH,
		surface.WithName(a.ids.Next()+".drawing"),
		surface.WithOrigin(margin, margin),
		surface.WithScheduler(a.queue),
		surface.WithFillStyle(fill),
	)
	if err != nil {
		return nil, err
	}

	pickerOpts := []picker.Option{
		picker.WithIDs(a.ids),
		picker.WithColors(pickerColors(a.theme)),
	}
	if a.pickerHidden {
		pickerOpts = append(pickerOpts, picker.Hidden())
	}
	a.picker, err = picker.New(a.pickerSize, a.pickerSize, pickerOpts...)
	if err != nil {
		return nil, err
	}
	a.picker.MoveTo(margin+a.surfaceW+margin+picker.DefaultPadding, margin+picker.DefaultPadding)

	a.pen = surface.NewPen(a.drawing,
		surface.WithWidth(a.lineWidth),
		surface.WithStyleFunc(a.penStyle),
		surface.WithGate(func() bool { return a.picker.State() == picker.Idle }),
	)

	a.drawing.Attach(a.router)
	a.picker.Attach(a.router)
	if err := a.pen.Bind(a.drawing.Events(), a.router.Document()); err != nil {
		return nil, err
	}
	a.router.Document().On(pointer.Move, func(ev pointer.Event) { a.cursor = ev.Pos().Image() })
	a.picker.OnColorChanged(func(c render.Color) {
		a.fillStyle = render.Solid(c)
		a.drawing.SetFillStyle(a.fillStyle)
	})

	a.width, a.height = a.WindowSize()
	a.registerActions()
	a.drawing.Loop()
	return a, nil
}

func pickerColors(t *theme.Theme) picker.Colors {
	return picker.Colors{Panel: t.PanelBackground, Marker: t.MarkerFill, MarkerBorder: t.MarkerBorder}
}

// penStyle is the pen's colour for the next segment.
func (a *AppState) penStyle() render.Style {
	if a.rainbow {
		return a.random()
	}
	return a.fillStyle
}

// WindowSize fits the surface, the picker panel and the status line.
func (a *AppState) WindowSize() (int, int) {
	pb := a.picker.Bounds()
	w := max(margin+a.surfaceW+margin, pb.Max.X+margin)
	h := max(margin+a.surfaceH+margin, pb.Max.Y+margin) + statusHeight
	return w, h
}

// Router is the pointer router the window feeds.
func (a *AppState) Router() *host.Router { return a.router }

// Drawing is the freehand surface.
func (a *AppState) Drawing() *surface.Surface { return a.drawing }

// Picker is the colour picker.
func (a *AppState) Picker() *picker.ColorPicker { return a.picker }

// Pen is the freehand pen bound to the drawing.
func (a *AppState) Pen() *surface.Pen { return a.pen }

// Rainbow reports whether the pen picks a random colour per segment.
func (a *AppState) Rainbow() bool { return a.rainbow }

// Message is the overlay text, empty once it has expired.
func (a *AppState) Message() string {
	if a.message == "" || !a.now().Before(a.messageUntil) {
		return ""
	}
	return a.message
}

func (a *AppState) flash(format string, args ...any) {
	a.message = fmt.Sprintf(format, args...)
	a.messageUntil = a.now().Add(messageTime)
	logging.Logger().Info(a.message)
}

// HandleMouse routes a window mouse event. Subscriber failures are logged;
// they never stop the window.
func (a *AppState) HandleMouse(e mouse.Event) {
	if err := a.router.RouteMouse(e); err != nil {
		logging.Logger().Error("pointer dispatch", "err", err)
	}
}

// Resize records the window size in pixels.
func (a *AppState) Resize(w, h int) {
	a.width, a.height = w, h
}

// ApplyConfig takes the settings that can change while running. A nil th
// keeps the current theme.
func (a *AppState) ApplyConfig(cfg *config.Config, th *theme.Theme) {
	a.pen.SetWidth(cfg.LineWidth)
	a.lineWidth = cfg.LineWidth
	if a.notifier != nil {
		a.notifier.Enable(notify.EventColor, cfg.Notify.Copy)
		a.notifier.Enable(notify.EventImage, cfg.Notify.Copy)
	}
	if th != nil {
		a.theme = th
		a.backdrop = nil
		a.picker.SetColors(pickerColors(th))
	}
	a.flash("config reloaded")
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		a.drawing.Stop()
		if a.onClose != nil {
			a.onClose()
		}
	})
}

type configEvent struct {
	cfg *config.Config
	err error
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

func (a *AppState) Main(s screen.Screen) {
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: a.width, Height: a.height, Title: "huepad"})
	if err != nil {
		logging.Logger().Error("new window", "err", err)
		return
	}
	defer w.Release()
	defer a.notifyClose()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// One paint in flight at a time; ticks while painting are dropped.
	painting := make(chan struct{}, 1)
	go func() {
		t := time.NewTicker(frameInterval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				select {
				case painting <- struct{}{}:
					w.Send(paint.Event{})
				default:
				}
			}
		}
	}()

	if a.watchPath != "" {
		go func() {
			err := config.Watch(ctx, a.watchPath, func(cfg *config.Config, err error) {
				w.Send(configEvent{cfg: cfg, err: err})
			})
			if err != nil && ctx.Err() == nil {
				logging.Logger().Warn("config watch stopped", "err", err)
			}
		}()
	}

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			a.Resize(e.WidthPx, e.HeightPx)
		case paint.Event:
			a.paint(s, w)
			select {
			case <-painting:
			default:
			}
		case mouse.Event:
			a.HandleMouse(e)
		case key.Event:
			if a.HandleKey(e) {
				return
			}
		case configEvent:
			if e.err != nil {
				a.flash("config: %v", e.err)
				continue
			}
			var th *theme.Theme
			if t, ok := e.cfg.Themes[e.cfg.Theme]; ok {
				th = t
			}
			a.ApplyConfig(e.cfg, th)
		case error:
			logging.Logger().Error("window", "err", e)
		}
	}
}

func (a *AppState) paint(s screen.Screen, w screen.Window) {
	if a.width <= 0 || a.height <= 0 {
		return
	}
	b, err := s.NewBuffer(image.Pt(a.width, a.height))
	if err != nil {
		logging.Logger().Error("new buffer", "err", err)
		return
	}
	defer b.Release()
	a.Frame(b.RGBA())
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
