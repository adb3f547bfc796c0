package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/example/huepad/internal/config"
	"github.com/example/huepad/internal/logging"
	"github.com/example/huepad/internal/notify"
	"github.com/example/huepad/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs          *flag.FlagSet
	program     string
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	notifier    *notify.Notifier
	config      *config.Config
	configPath  string
	copyAlerts  bool
	verbose     bool
	themeName   string
	activeTheme *theme.Theme
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

// subcommand is a fresh root for one more command line that keeps the
// loaded config, theme and notifier.
func (r *root) subcommand() *root {
	n := newRoot()
	n.stdin, n.stdout, n.stderr = r.stdin, r.stdout, r.stderr
	n.notifier = r.notifier
	n.config = r.config
	n.configPath = r.configPath
	n.copyAlerts = r.copyAlerts
	n.activeTheme = r.activeTheme
	return n
}

func newRoot() *root {
	r := &root{
		fs:       flag.NewFlagSet("huepad", flag.ContinueOnError),
		program:  "huepad",
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		notifier: notify.New(notify.LoadPreferences(), nil),
	}
	r.fs.SetOutput(io.Discard)
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", false, "show a desktop notification after copying to the clipboard (default from config)")
	r.fs.BoolVar(&r.verbose, "verbose", false, "log debug output to stderr")
	r.fs.StringVar(&r.configPath, "config", configPathOverride, "rc file to load")

	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use ("+strings.Join(theme.Names(), ", ")+")")
	return r
}

// loadConfig reads the rc file. A broken file is reported and replaced by
// the defaults so the window still opens.
func (r *root) loadConfig() {
	cfg, err := config.NewLoader(version, r.configPath).Load()
	if err != nil {
		fmt.Fprintf(r.stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	r.config = cfg

	explicit := map[string]bool{}
	r.fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
	if !explicit["notify-copy"] {
		r.copyAlerts = cfg.Notify.Copy
	}
}

func (r *root) resolveTheme() *theme.Theme {
	t, err := r.config.ResolveTheme(r.themeName, os.Getenv("HUEPAD_THEME"), theme.NewLoader())
	if err != nil {
		fmt.Fprintf(r.stderr, "warning: failed to load theme: %v. using default.\n", err)
		return theme.Default()
	}
	return t
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return &UsageError{of: r}
		}
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.verbose {
		logging.SetLogger(slog.New(slog.NewTextHandler(r.stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	if r.config == nil {
		r.loadConfig()
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventColor, r.copyAlerts)
		r.notifier.Enable(notify.EventImage, r.copyAlerts)
	}
	if r.activeTheme == nil || r.themeName != "" {
		r.activeTheme = r.resolveTheme()
	}

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "run":
		cmd, err = parseRunCmd(subArgs, r)
	case "hue":
		cmd, err = parseHueCmd(subArgs, r)
	case "sample":
		cmd, err = parseSampleCmd(subArgs, r)
	case "replay":
		cmd, err = parseReplayCmd(subArgs, r)
	case "interactive":
		cmd = &interactiveCmd{r: r, in: r.stdin}
	case "themes":
		cmd, err = parseThemesCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
