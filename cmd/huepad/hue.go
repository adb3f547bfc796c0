package main

import (
	"flag"
	"fmt"

	"github.com/example/huepad/internal/picker"
)

// hueCmd prints the colour at evenly spaced points down a hue bar.
type hueCmd struct {
	*root
	fs     *flag.FlagSet
	height int
	steps  int
}

func (c *hueCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *hueCmd) Program() string {
	return c.root.Program() + " hue"
}

func parseHueCmd(args []string, r *root) (*hueCmd, error) {
	fs := flag.NewFlagSet("hue", flag.ContinueOnError)
	fs.SetOutput(r.stderr)
	c := &hueCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.IntVar(&c.height, "height", 300, "bar height in pixels")
	fs.IntVar(&c.steps, "steps", 7, "number of rows to print")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.height <= 0 {
		return nil, fmt.Errorf("hue: height must be positive, got %d", c.height)
	}
	if c.steps < 2 {
		return nil, fmt.Errorf("hue: need at least 2 steps, got %d", c.steps)
	}
	return c, nil
}

func (c *hueCmd) Run() error {
	h := float64(c.height)
	for i := 0; i < c.steps; i++ {
		y := h * float64(i) / float64(c.steps-1)
		col := picker.Hue(y, h)
		if _, err := fmt.Fprintf(c.stdout, "%7.2f  %-20s %s\n", y, col.String(), col.Hex()); err != nil {
			return err
		}
	}
	return nil
}
