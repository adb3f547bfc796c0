package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/example/huepad/internal/appstate"
	"github.com/example/huepad/internal/config"
	"github.com/example/huepad/internal/ids"
)

type runCmd struct {
	*root
	fs        *flag.FlagSet
	width     int
	height    int
	picker    int
	lineWidth float64
	fill      string
	rainbow   bool
	seed      uint64
	hidden    bool
	watch     bool
	idKind    string
	ids       ids.Generator
}

func (c *runCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *runCmd) Program() string {
	return c.root.Program() + " run"
}

func parseRunCmd(args []string, r *root) (*runCmd, error) {
	cfg := r.config
	if cfg == nil {
		cfg = config.New()
	}
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(r.stderr)
	c := &runCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.IntVar(&c.width, "width", cfg.Surface.Width, "drawing surface width in pixels")
	fs.IntVar(&c.height, "height", cfg.Surface.Height, "drawing surface height in pixels")
	fs.IntVar(&c.picker, "picker", cfg.Picker.Size, "side of the picker plane in pixels")
	fs.Float64Var(&c.lineWidth, "line-width", cfg.LineWidth, "pen width")
	fs.StringVar(&c.fill, "fill", cfg.Fill, "pen colour until one is picked")
	fs.BoolVar(&c.rainbow, "rainbow", false, "start with a random colour per segment")
	fs.Uint64Var(&c.seed, "seed", 0, "random seed for -rainbow (0 uses the clock)")
	fs.BoolVar(&c.hidden, "hide-picker", !cfg.Picker.Visible, "start with the picker hidden")
	fs.BoolVar(&c.watch, "watch", true, "reload the rc file when it changes")
	fs.StringVar(&c.idKind, "ids", "seq", "widget id generator ("+strings.Join(ids.Kinds, ", ")+")")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: c}
	}
	if c.width <= 0 || c.height <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", c.width, c.height)
	}
	if c.picker <= 0 {
		return nil, fmt.Errorf("invalid picker size %d", c.picker)
	}
	g, err := ids.New(c.idKind, "huepad")
	if err != nil {
		return nil, err
	}
	c.ids = g
	return c, nil
}

// options turns the flags into window options.
func (c *runCmd) options() []appstate.Option {
	opts := []appstate.Option{
		appstate.WithSurfaceSize(c.width, c.height),
		appstate.WithPickerSize(c.picker),
		appstate.WithPickerVisible(!c.hidden),
		appstate.WithLineWidth(c.lineWidth),
		appstate.WithFill(c.fill),
		appstate.WithTheme(c.activeTheme),
		appstate.WithNotifier(c.notifier),
		appstate.WithIDs(c.ids),
	}
	if c.rainbow {
		opts = append(opts, appstate.WithRainbow(c.seed))
	}
	if c.watch {
		if path := config.NewLoader(version, c.configPath).GetConfigPath(); path != "" {
			opts = append(opts, appstate.WithConfigWatch(path))
		}
	}
	return opts
}

func (c *runCmd) Run() error {
	st, err := appstate.New(c.options()...)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	st.Run()
	return nil
}
