package sticker

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"testing"
	"testing/fstest"
)

const squareSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"><rect x="0" y="0" width="10" height="10" fill="#ff0000"/></svg>`

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(1, 1, color.RGBA{B: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecodeSVG(t *testing.T) {
	img, err := DecodeBytes("a.svg", []byte(squareSVG), 32)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 32, 32) {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	r, _, _, a := img.At(16, 16).RGBA()
	if a == 0 || r == 0 {
		t.Fatalf("expected red fill at centre")
	}
}

func TestDecodeRaster(t *testing.T) {
	img, err := DecodeBytes("a.png", pngBytes(t), 0)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	if _, err := DecodeBytes("bad.png", []byte("nope"), 0); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"emojis_svg/emoji_u1f600.svg":         "emojis_svg/emoji_u1f600.svg",
		"/emojis_svg/emoji_u1f600.svg":        "emojis_svg/emoji_u1f600.svg",
		"file:///emojis_svg/emoji_u1f600.svg": "emojis_svg/emoji_u1f600.svg",
		"emojis_svg/x.svg?v=2":                "emojis_svg/x.svg",
		"../../etc/passwd":                    "etc/passwd",
	}
	for in, want := range tests {
		got, err := Normalize(in)
		if err != nil || got != want {
			t.Fatalf("Normalize(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := Normalize("  "); !errors.Is(err, ErrInvalidAsset) {
		t.Fatalf("expected ErrInvalidAsset, got %v", err)
	}
}

func TestLibraryLoadCaches(t *testing.T) {
	fsys := fstest.MapFS{
		"stickers/a.svg": {Data: []byte(squareSVG)},
		"stickers/b.png": {Data: pngBytes(t)},
	}
	lib := NewLibrary(fsys, 16)
	ctx := context.Background()
	first, err := lib.Load(ctx, "stickers/a.svg")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	delete(fsys, "stickers/a.svg")
	second, err := lib.Load(ctx, "stickers/a.svg")
	if err != nil {
		t.Fatalf("cached load: %v", err)
	}
	if first != second {
		t.Fatalf("expected cached image")
	}
	if !lib.Exists("/stickers/b.png") || lib.Exists("stickers/a.svg") {
		t.Fatalf("unexpected Exists results")
	}
	if _, err := lib.Load(ctx, "stickers/missing.svg"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not exist, got %v", err)
	}
	lib.Forget("stickers/a.svg")
	if _, ok := lib.Cached("stickers/a.svg"); ok {
		t.Fatalf("expected cache entry removed")
	}
}

func TestLibraryLoadHonoursCancel(t *testing.T) {
	lib := NewLibrary(fstest.MapFS{}, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := lib.Load(ctx, "x.svg"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
