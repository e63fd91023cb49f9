package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestComposePlacesBundledSticker(t *testing.T) {
	dir := t.TempDir()
	bg := filepath.Join(dir, "bg.png")
	writePNG(t, bg, 200, 100, color.RGBA{0, 0, 255, 255})
	out := filepath.Join(dir, "out", "result.png")

	cmd, err := parseComposeCmd([]string{"-background", bg, "-output", out, "add emojis_svg/emoji_u1f600.svg"}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Fatalf("output size %v", b)
	}
	// The 80px sticker is clamped into the 100px tall canvas, centred at (90,60).
	r, g, b, _ := img.At(90, 60).RGBA()
	if r>>8 < 200 || g>>8 < 150 || b>>8 > 120 {
		t.Fatalf("sticker centre = %d,%d,%d", r>>8, g>>8, b>>8)
	}
	r, g, b, _ = img.At(5, 5).RGBA()
	if r != 0 || g != 0 || b>>8 != 255 {
		t.Fatalf("background corner = %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestComposeScriptFromStdinToPDF(t *testing.T) {
	dir := t.TempDir()
	bg := filepath.Join(dir, "bg.png")
	writePNG(t, bg, 120, 90, color.RGBA{255, 255, 255, 255})
	out := filepath.Join(dir, "card.pdf")

	cmd, err := parseComposeCmd([]string{"-script", "-", "-output", out}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cmd.stdin = strings.NewReader("# card\nbackground " + bg + "\ndrop emojis_svg/emoji_u2764.svg 60 45\nresize 20\n")
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF: %q", data[:min(8, len(data))])
	}
}

func TestComposeWithoutBackgroundFails(t *testing.T) {
	out := filepath.Join(t.TempDir(), "none.png")
	cmd, err := parseComposeCmd([]string{"-output", out, "add emojis_svg/emoji_u1f600.svg"}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	err = cmd.Run()
	if err == nil || !strings.Contains(err.Error(), "upload an image first") {
		t.Fatalf("expected missing background error, got %v", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Fatalf("output written without background")
	}
}

func TestComposeExportSize(t *testing.T) {
	dir := t.TempDir()
	bg := filepath.Join(dir, "bg.png")
	writePNG(t, bg, 300, 150, color.RGBA{0, 128, 0, 255})

	cases := []struct {
		name         string
		maxW, maxH   int
		wantW, wantH int
	}{
		{"native under limit", 1600, 1200, 300, 150},
		{"shrunk to limit", 120, 0, 120, 60},
	}
	for _, tc := range cases {
		r := testRoot()
		r.config.Editor.MaxWidth, r.config.Editor.MaxHeight = tc.maxW, tc.maxH
		out := filepath.Join(dir, tc.name, "out.png")
		cmd, err := parseComposeCmd([]string{"-background", bg, "-output", out}, r)
		if err != nil {
			t.Fatalf("%s: parse: %v", tc.name, err)
		}
		if err := cmd.Run(); err != nil {
			t.Fatalf("%s: run: %v", tc.name, err)
		}
		f, err := os.Open(out)
		if err != nil {
			t.Fatalf("%s: open output: %v", tc.name, err)
		}
		cfg, err := png.DecodeConfig(f)
		f.Close()
		if err != nil {
			t.Fatalf("%s: decode output: %v", tc.name, err)
		}
		if cfg.Width != tc.wantW || cfg.Height != tc.wantH {
			t.Fatalf("%s: output %dx%d, want %dx%d", tc.name, cfg.Width, cfg.Height, tc.wantW, tc.wantH)
		}
	}
}
