package main

import (
	"flag"
	"fmt"

	"github.com/example/huepad/internal/geom"
	"github.com/example/huepad/internal/host"
	"github.com/example/huepad/internal/ids"
	"github.com/example/huepad/internal/picker"
	"github.com/example/huepad/internal/pointer"
	"github.com/example/huepad/internal/render"
)

// sampleCmd drives a picker without a window: it drags the hue bar and the
// bubble through a router and prints the selected colour.
type sampleCmd struct {
	*root
	fs   *flag.FlagSet
	size int
	hueY float64
	x    float64
	y    float64
}

func (c *sampleCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *sampleCmd) Program() string {
	return c.root.Program() + " sample"
}

func parseSampleCmd(args []string, r *root) (*sampleCmd, error) {
	fs := flag.NewFlagSet("sample", flag.ContinueOnError)
	fs.SetOutput(r.stderr)
	c := &sampleCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.IntVar(&c.size, "size", 300, "side of the picker plane in pixels")
	fs.Float64Var(&c.hueY, "hue-y", -1, "hue bar position, negative keeps the middle")
	fs.Float64Var(&c.x, "x", -1, "bubble x on the plane, negative keeps the centre")
	fs.Float64Var(&c.y, "y", -1, "bubble y on the plane, negative keeps the centre")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.size <= 0 {
		return nil, fmt.Errorf("sample: size must be positive, got %d", c.size)
	}
	return c, nil
}

// drag grabs a marker at from, moves it to to with the button held and
// releases. Positions are in host coordinates; to may lie outside the widget.
func drag(r *host.Router, from, to geom.Point) error {
	for _, ev := range []pointer.Event{
		{Kind: pointer.Down, X: from.X, Y: from.Y, Buttons: pointer.ButtonPrimary},
		{Kind: pointer.Move, X: to.X, Y: to.Y, Buttons: pointer.ButtonPrimary},
		{Kind: pointer.Up, X: to.X, Y: to.Y},
	} {
		if err := r.Route(ev); err != nil {
			return err
		}
	}
	return nil
}

func (c *sampleCmd) pick() (render.Color, error) {
	p, err := picker.New(c.size, c.size,
		picker.WithIDs(ids.NewSequence("sample")),
		picker.WithOrigin(picker.DefaultPadding, picker.DefaultPadding),
	)
	if err != nil {
		return render.Color{}, fmt.Errorf("sample: %w", err)
	}
	r := host.NewRouter()
	p.Attach(r)

	if c.hueY >= 0 {
		bar := geom.FromImage(p.HueBar().Origin())
		from := bar.Add(p.HueBar().Marker().Center())
		if err := drag(r, from, geom.Pt(from.X, bar.Y+c.hueY)); err != nil {
			return render.Color{}, fmt.Errorf("sample: hue bar: %w", err)
		}
	}
	if c.x >= 0 || c.y >= 0 {
		center := p.Bubble().Center()
		x, y := center.X, center.Y
		if c.x >= 0 {
			x = c.x
		}
		if c.y >= 0 {
			y = c.y
		}
		o := geom.FromImage(p.Surface().Origin())
		if err := drag(r, o.Add(center), o.Add(geom.Pt(x, y))); err != nil {
			return render.Color{}, fmt.Errorf("sample: bubble: %w", err)
		}
	}
	return p.Color(), nil
}

func (c *sampleCmd) Run() error {
	col, err := c.pick()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.stdout, "%s %s\n", col.String(), col.Hex())
	return err
}
