package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/stickerbook/internal/theme"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var section string
	var current *theme.Theme
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSpace(line[1 : len(line)-1])
			current = nil
			if name, ok := strings.CutPrefix(section, "theme."); ok {
				// Start with defaults so missing keys are fine
				current = theme.Default()
				current.Name = name
				cfg.Themes[name] = current
			}
			continue
		}

		key, value, ok := splitKV(line)
		if !ok {
			continue
		}

		var err error
		switch {
		case current != nil:
			err = theme.Set(current, key, value)
		case section == "editor":
			err = setEditorField(&cfg.Editor, key, value)
		case section == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case section == "":
			setRootField(cfg, key, value)
		}
		if err != nil {
			if section == "" {
				section = "root"
			}
			return nil, fmt.Errorf("line %d [%s]: %w", lineNo, section, err)
		}
	}

	return cfg, scanner.Err()
}

// splitKV accepts "key = value" and "key: value". The separator that comes
// first wins so colors and paths may contain the other one.
func splitKV(line string) (string, string, bool) {
	i := strings.IndexAny(line, "=:")
	if i < 0 {
		return "", "", false
	}
	key := strings.TrimSpace(line[:i])
	value := strings.TrimSpace(line[i+1:])
	if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
		value = value[1 : len(value)-1]
	}
	return key, value, true
}

func setRootField(cfg *Config, key, value string) {
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "save_dir":
		cfg.SaveDir = value
	case "asset_dir":
		cfg.AssetDir = value
	case "manifest":
		cfg.Manifest = value
	case "metadata":
		cfg.Metadata = value
	case "categories":
		cfg.Categories = value
	case "aliases":
		cfg.Aliases = value
	}
}

func setEditorField(e *Editor, key, value string) error {
	k := strings.ToLower(key)
	switch k {
	case "shadow":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for key %s: %w", key, err)
		}
		e.Shadow = b
		return nil
	case "format":
		e.Format = strings.ToLower(value)
		return nil
	}
	var dst *int
	switch k {
	case "batch_size":
		dst = &e.BatchSize
	case "sticker_size":
		dst = &e.StickerSize
	case "max_width":
		dst = &e.MaxWidth
	case "max_height":
		dst = &e.MaxHeight
	default:
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fmt.Errorf("invalid size for key %s: %q", key, value)
	}
	*dst = n
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "export", "save":
		n.Export = b
	case "copy":
		n.Copy = b
	case "capture":
		n.Capture = b
	}
	return nil
}
