package main

import (
	"flag"
	"fmt"
	"image/color"
	"sort"

	"github.com/example/huepad/internal/theme"
)

type themesCmd struct {
	*root
	fs *flag.FlagSet
}

func parseThemesCmd(args []string, r *root) (*themesCmd, error) {
	fs := flag.NewFlagSet("themes", flag.ContinueOnError)
	fs.SetOutput(r.stderr)
	cmd := &themesCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func swatch(c color.RGBA) string {
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", c.R, c.G, c.B)
}

func (c *themesCmd) Run() error {
	loader := theme.NewLoader()
	names := loader.Names()
	seen := map[string]bool{}
	for _, n := range names {
		seen[n] = true
	}
	var custom map[string]*theme.Theme
	if c.config != nil {
		custom = c.config.Themes
		var extra []string
		for n := range custom {
			if !seen[n] {
				extra = append(extra, n)
			}
		}
		sort.Strings(extra)
		names = append(names, extra...)
	}

	active := ""
	if c.activeTheme != nil {
		active = c.activeTheme.Name
	}
	fmt.Fprintln(c.stdout, "available themes (* marks the active theme):")
	for _, n := range names {
		t, ok := custom[n]
		if !ok {
			var err error
			if t, err = loader.Load(n); err != nil {
				fmt.Fprintf(c.stderr, "warning: theme %s: %v\n", n, err)
				continue
			}
		}
		marker := " "
		if t.Name == active {
			marker = "*"
		}
		fmt.Fprintf(c.stdout, "%s %-12s %s%s%s\n", marker, n, swatch(t.Background), swatch(t.PanelBackground), swatch(t.Foreground))
	}
	return nil
}

func (c *themesCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *themesCmd) Program() string {
	return c.root.Program() + " themes"
}

func (c *themesCmd) Template() string {
	return "themes.txt"
}
