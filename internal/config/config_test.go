package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
save_dir = /tmp/stickers
asset_dir = "/opt/emoji pack"

[editor]
batch_size = 24
sticker_size = 96
shadow = true
format = JPEG
max_width = 800

[notify]
export = true
copy = false
capture = true

[theme.my_custom_theme]
Background = #111111
Selection: #FF0000
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.SaveDir != "/tmp/stickers" {
		t.Errorf("Expected save_dir '/tmp/stickers', got '%s'", cfg.SaveDir)
	}
	if cfg.AssetDir != "/opt/emoji pack" {
		t.Errorf("quoted asset_dir = %q", cfg.AssetDir)
	}
	if cfg.Manifest != "emoji-manifest.json" {
		t.Errorf("manifest default lost: %q", cfg.Manifest)
	}

	want := Editor{BatchSize: 24, StickerSize: 96, Shadow: true, Format: "jpeg", MaxWidth: 800, MaxHeight: 1200}
	if cfg.Editor != want {
		t.Errorf("Editor = %+v want %+v", cfg.Editor, want)
	}
	if cfg.Notify != (Notify{Export: true, Capture: true}) {
		t.Errorf("Notify = %+v", cfg.Notify)
	}

	th, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if th.Background.R != 0x11 || th.Background.G != 0x11 || th.Background.B != 0x11 {
		t.Errorf("Unexpected Background color: %+v", th.Background)
	}
	if th.Selection.R != 0xFF || th.Selection.G != 0 {
		t.Errorf("Unexpected Selection color: %+v", th.Selection)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		"[notify]\nexport = maybe\n",
		"[editor]\nsticker_size = big\n",
		"[editor]\nmax_width = -1\n",
		"[theme.x]\nBackground = red\n",
	}
	for _, input := range cases {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("Parse(%q) expected error", input)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
save_dir = /home/user/stickers
aliases = zh.yaml

[editor]
shadow = true
format = pdf

[notify]
export = true
copy = true

[theme.custom]
Name = custom
Background = #000000
Foreground = #FFFFFF
SnackbarBackground = #33333380
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	generated := cfg.String()

	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v\n%s", err, generated)
	}

	if cfg.Theme != cfg2.Theme {
		t.Errorf("Theme mismatch: %q vs %q", cfg.Theme, cfg2.Theme)
	}
	if cfg.SaveDir != cfg2.SaveDir {
		t.Errorf("SaveDir mismatch: %q vs %q", cfg.SaveDir, cfg2.SaveDir)
	}
	if cfg.Aliases != cfg2.Aliases {
		t.Errorf("Aliases mismatch: %q vs %q", cfg.Aliases, cfg2.Aliases)
	}
	if cfg.Editor != cfg2.Editor {
		t.Errorf("Editor mismatch: %+v vs %+v", cfg.Editor, cfg2.Editor)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}

	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestLoaderSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.rc")
	l := NewLoader("v1.0.0", path)
	if got := l.GetConfigPath(); got == path {
		t.Fatalf("override reported before it exists")
	}

	cfg := New()
	cfg.Theme = "dark"
	cfg.Editor.StickerSize = 64
	saved, err := l.Save(cfg)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved != path {
		t.Fatalf("saved to %q", saved)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	got, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Theme != "dark" || got.Editor.StickerSize != 64 {
		t.Fatalf("loaded %+v", got)
	}
}
