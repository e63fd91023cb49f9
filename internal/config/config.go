package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/stickerbook/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Export  bool
	Copy    bool
	Capture bool
}

// Editor holds composition defaults.
type Editor struct {
	BatchSize   int    // palette items revealed per batch
	StickerSize int    // side of a newly placed sticker
	Shadow      bool   // drop shadow under stickers
	Format      string // default export format
	MaxWidth    int    // background fit bounds, 0 is unbounded
	MaxHeight   int
}

// Config holds the application configuration.
type Config struct {
	Theme    string
	SaveDir  string
	AssetDir string // empty uses the bundled pack

	Manifest   string
	Metadata   string
	Categories string
	Aliases    string

	Editor Editor
	Notify Notify
	Themes map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:      "", // empty allows fallback to env/default
		Manifest:   "emoji-manifest.json",
		Metadata:   "emoji-data.json",
		Categories: "emoji-categories.json",
		Aliases:    "aliases.yaml",
		Editor: Editor{
			BatchSize:   12,
			StickerSize: 80,
			Format:      "png",
			MaxWidth:    1600,
			MaxHeight:   1200,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	root := [][2]string{
		{"theme", c.Theme},
		{"save_dir", c.SaveDir},
		{"asset_dir", c.AssetDir},
		{"manifest", c.Manifest},
		{"metadata", c.Metadata},
		{"categories", c.Categories},
		{"aliases", c.Aliases},
	}
	for _, kv := range root {
		if kv[1] != "" {
			fmt.Fprintf(&sb, "%s = %s\n", kv[0], kv[1])
		}
	}
	sb.WriteString("\n")

	sb.WriteString("[editor]\n")
	fmt.Fprintf(&sb, "batch_size = %d\n", c.Editor.BatchSize)
	fmt.Fprintf(&sb, "sticker_size = %d\n", c.Editor.StickerSize)
	fmt.Fprintf(&sb, "shadow = %v\n", c.Editor.Shadow)
	fmt.Fprintf(&sb, "format = %s\n", c.Editor.Format)
	fmt.Fprintf(&sb, "max_width = %d\n", c.Editor.MaxWidth)
	fmt.Fprintf(&sb, "max_height = %d\n", c.Editor.MaxHeight)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "capture = %v\n", c.Notify.Capture)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range theme.Fields(t) {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, theme.Hex(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
