package notify

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"strings"

	"github.com/example/huepad/internal/logging"
	"github.com/example/huepad/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventColor fires when the picked colour is copied to the clipboard.
	EventColor Event = "color"
	// EventImage fires when the drawing is copied to the clipboard.
	EventImage Event = "image"
)

// EventPreference describes formatting for a notification event.
type EventPreference struct {
	Template string
}

// Preferences describes notification behaviour loaded from configuration.
type Preferences struct {
	Title  string
	Events map[Event]EventPreference
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "huepad",
		Events: map[Event]EventPreference{
			EventColor: {Template: "Copied %s to clipboard"},
			EventImage: {Template: "Copied %s drawing to clipboard"},
		},
	}
}

// LoadPreferences reads overrides from environment variables.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("HUEPAD_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	apply := func(key string, event Event) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			eventPrefs := prefs.Events[event]
			eventPrefs.Template = v
			prefs.Events[event] = eventPrefs
		}
	}
	apply("HUEPAD_NOTIFY_COLOR_TEXT", EventColor)
	apply("HUEPAD_NOTIFY_IMAGE_TEXT", EventImage)
	return prefs
}

// SendFunc delivers one notification.
type SendFunc func(title, body string, opts platform.Options) error

// Notifier sends OS-level notifications based on the configured preferences.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	send    SendFunc
}

// New creates a new Notifier using the provided preferences. A nil send uses
// platform.Notify.
func New(prefs Preferences, send SendFunc) *Notifier {
	cloned := Preferences{Title: prefs.Title, Events: make(map[Event]EventPreference, len(prefs.Events))}
	for k, v := range prefs.Events {
		cloned.Events[k] = v
	}
	if send == nil {
		send = platform.Notify
	}
	return &Notifier{prefs: cloned, enabled: make(map[Event]bool), send: send}
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.enabled[event] = enabled
}

// Color announces a copied colour with a swatch icon.
func (n *Notifier) Color(hex string, c color.Color) {
	if !n.enabledFor(EventColor) {
		return
	}
	opts := platform.Options{}
	if c != nil {
		swatch := image.NewRGBA(image.Rect(0, 0, 64, 64))
		draw.Draw(swatch, swatch.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
		if path, cleanup, err := createPreview(swatch); err != nil {
			logging.Logger().Warn("notification swatch", "err", err)
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	n.dispatch(EventColor, hex, opts)
}

// Image announces a copied drawing.
func (n *Notifier) Image(img image.Image) {
	if !n.enabledFor(EventImage) {
		return
	}
	detail := ""
	opts := platform.Options{}
	if img != nil {
		b := img.Bounds()
		detail = fmt.Sprintf("%dx%d", b.Dx(), b.Dy())
		if path, cleanup, err := createPreview(img); err != nil {
			logging.Logger().Warn("notification preview", "err", err)
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	n.dispatch(EventImage, detail, opts)
}

func (n *Notifier) enabledFor(event Event) bool {
	if n == nil || n.enabled == nil {
		return false
	}
	return n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	template := strings.TrimSpace(n.template(event))
	if template == "" {
		return
	}
	body := strings.Join(strings.Fields(fmt.Sprintf(template, strings.TrimSpace(detail))), " ")
	if body == "" {
		return
	}
	if err := n.send(n.prefs.Title, body, opts); err != nil {
		logging.Logger().Warn("notification failed", "event", string(event), "err", err)
	}
}

func (n *Notifier) template(event Event) string {
	if pref, ok := n.prefs.Events[event]; ok {
		return pref.Template
	}
	return ""
}

func createPreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "huepad-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logging.Logger().Warn("remove preview", "path", path, "err", err)
		}
	}
	return path, cleanup, nil
}
