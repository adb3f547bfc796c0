package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"os"
	"strings"

	"golang.org/x/mobile/event/key"

	"github.com/example/huepad/internal/appstate"
	"github.com/example/huepad/internal/ids"
	"github.com/example/huepad/internal/pointer"
)

// replayCmd feeds a recorded session to a window state without opening a
// window and reports what the widgets ended up with. Clipboard writes are
// printed instead of performed.
type replayCmd struct {
	*root
	fs    *flag.FlagSet
	input string
}

// ReplayScript is the JSON input of the replay command.
type ReplayScript struct {
	Width   int           `json:"width"`
	Height  int           `json:"height"`
	Picker  int           `json:"picker"`
	Fill    string        `json:"fill"`
	Rainbow uint64        `json:"rainbow_seed"`
	Steps   []ReplayEvent `json:"steps"`
}

// ReplayEvent is either a pointer event (kind down, move or up) or a key
// press (kind key).
type ReplayEvent struct {
	Kind    string  `json:"kind"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Buttons int     `json:"buttons"`
	Key     string  `json:"key"`
}

func (c *replayCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *replayCmd) Program() string {
	return c.root.Program() + " replay"
}

func parseReplayCmd(args []string, r *root) (*replayCmd, error) {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	fs.SetOutput(r.stderr)
	c := &replayCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.input, "input", "", "session script (JSON)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.input == "" {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

var pointerKinds = map[string]pointer.Kind{
	"down":  pointer.Down,
	"move":  pointer.Move,
	"up":    pointer.Up,
	"click": pointer.Click,
}

type printClipboard struct{ c *replayCmd }

func (p printClipboard) WriteText(s string) error {
	_, err := fmt.Fprintf(p.c.stdout, "clipboard text %s\n", s)
	return err
}

func (p printClipboard) WriteImage(img image.Image) error {
	b := img.Bounds()
	_, err := fmt.Fprintf(p.c.stdout, "clipboard image %dx%d\n", b.Dx(), b.Dy())
	return err
}

func (c *replayCmd) Run() error {
	f, err := os.Open(c.input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	var script ReplayScript
	if err := json.NewDecoder(f).Decode(&script); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}

	opts := []appstate.Option{
		appstate.WithIDs(ids.NewSequence("replay")),
		appstate.WithClipboard(printClipboard{c}),
		appstate.WithTheme(c.activeTheme),
	}
	if c.config != nil {
		opts = append(appstate.FromConfig(c.config), opts...)
	}
	if script.Width > 0 && script.Height > 0 {
		opts = append(opts, appstate.WithSurfaceSize(script.Width, script.Height))
	}
	if script.Picker > 0 {
		opts = append(opts, appstate.WithPickerSize(script.Picker))
	}
	if script.Fill != "" {
		opts = append(opts, appstate.WithFill(script.Fill))
	}
	if script.Rainbow != 0 {
		opts = append(opts, appstate.WithRainbow(script.Rainbow))
	}
	st, err := appstate.New(opts...)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	for i, step := range script.Steps {
		if step.Kind == "key" {
			r := []rune(step.Key)
			if len(r) != 1 {
				return fmt.Errorf("step %d: key must be one character, got %q", i, step.Key)
			}
			if st.HandleKey(key.Event{Rune: r[0], Direction: key.DirPress}) {
				break
			}
			continue
		}
		kind, ok := pointerKinds[strings.ToLower(step.Kind)]
		if !ok {
			return fmt.Errorf("step %d: unknown kind %q", i, step.Kind)
		}
		ev := pointer.Event{Kind: kind, X: step.X, Y: step.Y, Buttons: pointer.Buttons(step.Buttons)}
		if err := st.Router().Route(ev); err != nil {
			fmt.Fprintf(c.stderr, "warning: step %d: %v\n", i, err)
		}
	}

	col := st.Picker().Color()
	_, err = fmt.Fprintf(c.stdout, "color %s %s\nstrokes %d\npending %d\npicker %s\n",
		col.String(), col.Hex(), st.Drawing().Committed(), st.Drawing().Provisional(), st.Picker().State())
	return err
}
