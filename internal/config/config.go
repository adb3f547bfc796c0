package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/example/huepad/internal/theme"
)

// Surface holds the drawing surface size.
type Surface struct {
	Width  int
	Height int
}

// Picker holds colour picker settings.
type Picker struct {
	Size    int
	Visible bool
}

// Notify holds notification settings.
type Notify struct {
	Copy bool
}

// Config holds the application configuration.
type Config struct {
	Theme     string
	LineWidth float64
	Fill      string
	Surface   Surface
	Picker    Picker
	Notify    Notify
	Themes    map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:     "", // Default to empty to allow fallback to Env/Default
		LineWidth: 3,
		Fill:      "black",
		Surface:   Surface{Width: 640, Height: 480},
		Picker:    Picker{Size: 300, Visible: true},
		Themes:    make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	fmt.Fprintf(&sb, "line_width = %s\n", strconv.FormatFloat(c.LineWidth, 'g', -1, 64))
	if c.Fill != "" {
		fmt.Fprintf(&sb, "fill = %s\n", c.Fill)
	}
	sb.WriteString("\n")

	sb.WriteString("[surface]\n")
	fmt.Fprintf(&sb, "width = %d\n", c.Surface.Width)
	fmt.Fprintf(&sb, "height = %d\n", c.Surface.Height)
	sb.WriteString("\n")

	sb.WriteString("[picker]\n")
	fmt.Fprintf(&sb, "size = %d\n", c.Picker.Size)
	fmt.Fprintf(&sb, "visible = %v\n", c.Picker.Visible)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		_ = theme.Write(&sb, c.Themes[name])
		sb.WriteString("\n")
	}

	return sb.String()
}

// ResolveTheme picks the theme named by flag, then env, then the config. A
// name defined in a [theme.<name>] section wins over the loader.
func (c *Config) ResolveTheme(flag, env string, l *theme.Loader) (*theme.Theme, error) {
	name := c.Theme
	if env != "" {
		name = env
	}
	if flag != "" {
		name = flag
	}
	if t, ok := c.Themes[name]; ok {
		return t, nil
	}
	return l.Load(name)
}
