package theme

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Loader finds themes by name or path.
type Loader struct {
	ConfigDir string
	SystemDir string
	// Extra holds themes defined inline in the config file.
	Extra map[string]*Theme
}

// NewLoader creates a Loader with the standard search directories.
func NewLoader() *Loader {
	home, _ := os.UserHomeDir()
	return &Loader{
		ConfigDir: filepath.Join(home, ".config", "stickerbook", "themes"),
		SystemDir: "/usr/share/stickerbook/themes",
	}
}

// Load resolves name in order: an existing file path, a config defined
// theme, the embedded defaults, ConfigDir, then SystemDir. An empty name
// yields Default.
func (l *Loader) Load(name string) (*Theme, error) {
	if name == "" {
		return Default(), nil
	}
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return parseFile(os.DirFS(filepath.Dir(name)), filepath.Base(name))
	}
	if t, ok := l.Extra[name]; ok {
		return t, nil
	}

	filename := name
	if !strings.HasSuffix(filename, ".theme") {
		filename += ".theme"
	}
	if t, err := parseFile(EmbeddedThemes, "defaults/"+filename); err == nil {
		return t, nil
	}
	for _, dir := range []string{l.ConfigDir, l.SystemDir} {
		if dir == "" {
			continue
		}
		if t, err := parseFile(os.DirFS(dir), filename); err == nil {
			return t, nil
		}
	}
	return nil, fmt.Errorf("theme '%s' not found", name)
}

// Names lists the embedded and config defined themes.
func (l *Loader) Names() []string {
	seen := map[string]bool{}
	matches, _ := fs.Glob(EmbeddedThemes, "defaults/*.theme")
	for _, m := range matches {
		seen[strings.TrimSuffix(filepath.Base(m), ".theme")] = true
	}
	for name := range l.Extra {
		seen[name] = true
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func parseFile(fsys fs.FS, name string) (*Theme, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("theme %s: %w", name, err)
	}
	return t, nil
}
