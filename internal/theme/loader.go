package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const ext = ".theme"

// Loader finds huepad themes. Built-in themes shadow files of the same name
// in ConfigDir, which in turn shadow SystemDir.
type Loader struct {
	ConfigDir string
	SystemDir string
}

// NewLoader returns a Loader over ~/.config/huepad/themes and
// /usr/share/huepad/themes.
func NewLoader() *Loader {
	home, _ := os.UserHomeDir()
	return &Loader{
		ConfigDir: filepath.Join(home, ".config", "huepad", "themes"),
		SystemDir: "/usr/share/huepad/themes",
	}
}

// sources lists the theme directories in lookup order.
func (l *Loader) sources() []fs.FS {
	out := []fs.FS{mustSub(EmbeddedThemes, "defaults")}
	for _, dir := range []string{l.ConfigDir, l.SystemDir} {
		if dir != "" {
			out = append(out, os.DirFS(dir))
		}
	}
	return out
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// Load returns the theme called name. An existing file path is read
// directly; an empty name is the hardcoded default.
func (l *Loader) Load(name string) (*Theme, error) {
	if name == "" {
		return Default(), nil
	}
	if st, err := os.Stat(name); err == nil && !st.IsDir() {
		return loadFile(os.DirFS(filepath.Dir(name)), filepath.Base(name))
	}

	file := strings.TrimSuffix(name, ext) + ext
	for _, src := range l.sources() {
		t, err := loadFile(src, file)
		if err == nil {
			return t, nil
		}
		if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, fs.ErrInvalid) {
			return nil, fmt.Errorf("theme %s: %w", name, err)
		}
	}
	return nil, fmt.Errorf("theme '%s' not found", name)
}

// Names lists every theme Load can find by name: built-ins first, then
// installed themes in alphabetical order.
func (l *Loader) Names() []string {
	builtin := Names()
	seen := map[string]bool{}
	for _, n := range builtin {
		seen[n] = true
	}
	var installed []string
	for _, src := range l.sources()[1:] {
		matches, err := fs.Glob(src, "*"+ext)
		if err != nil {
			continue
		}
		for _, m := range matches {
			n := strings.TrimSuffix(m, ext)
			if !seen[n] {
				seen[n] = true
				installed = append(installed, n)
			}
		}
	}
	sort.Strings(installed)
	return append(builtin, installed...)
}

func loadFile(fsys fs.FS, file string) (*Theme, error) {
	f, err := fsys.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}
