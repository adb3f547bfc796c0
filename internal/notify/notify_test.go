package notify

import (
	"errors"
	"image"
	"image/color"
	"os"
	"testing"

	"github.com/example/huepad/internal/platform"
)

type sent struct {
	title, body string
	icon        string
	iconExisted bool
}

func recorder(out *[]sent, err error) SendFunc {
	return func(title, body string, opts platform.Options) error {
		_, statErr := os.Stat(opts.IconPath)
		*out = append(*out, sent{title, body, opts.IconPath, opts.IconPath != "" && statErr == nil})
		return err
	}
}

func TestDisabledByDefault(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences(), recorder(&got, nil))
	n.Color("#ff0000", color.White)
	n.Image(image.NewRGBA(image.Rect(0, 0, 3, 3)))
	if len(got) != 0 {
		t.Fatalf("sent %v while disabled", got)
	}
}

func TestColorNotification(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences(), recorder(&got, nil))
	n.Enable(EventColor, true)
	n.Color("#3f7f7f", color.RGBA{63, 127, 127, 255})
	n.Image(image.NewRGBA(image.Rect(0, 0, 3, 3)))

	if len(got) != 1 {
		t.Fatalf("got %d notifications", len(got))
	}
	if got[0].title != "huepad" || got[0].body != "Copied #3f7f7f to clipboard" {
		t.Errorf("unexpected notification %+v", got[0])
	}
	if !got[0].iconExisted {
		t.Error("swatch icon missing during send")
	}
	if _, err := os.Stat(got[0].icon); !os.IsNotExist(err) {
		t.Errorf("swatch icon not cleaned up: %v", err)
	}
}

func TestImageNotificationAndEnvOverrides(t *testing.T) {
	t.Setenv("HUEPAD_NOTIFY_TITLE", "pad")
	t.Setenv("HUEPAD_NOTIFY_IMAGE_TEXT", "Drawing %s ready")
	var got []sent
	n := New(LoadPreferences(), recorder(&got, errors.New("no bus")))
	n.Enable(EventImage, true)
	n.Image(image.NewRGBA(image.Rect(0, 0, 40, 30)))
	if len(got) != 1 || got[0].title != "pad" || got[0].body != "Drawing 40x30 ready" {
		t.Fatalf("unexpected %+v", got)
	}
}

func TestNilNotifierIsSafe(t *testing.T) {
	var n *Notifier
	n.Enable(EventColor, true)
	n.Color("#000000", nil)
	n.Image(nil)
}
