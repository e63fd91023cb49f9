package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func sample() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	img.Set(3, 4, color.RGBA{R: 255, A: 255})
	return img
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{"": PNG, "PNG": PNG, ".jpg": JPEG, "jpeg": JPEG, "pdf": PDF}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("gif"); err == nil {
		t.Fatalf("expected error for gif")
	}
	if FormatForPath("out/thing.PDF") != PDF || FormatForPath("noext") != PNG {
		t.Fatalf("unexpected FormatForPath")
	}
}

func TestFileName(t *testing.T) {
	if got := FileName("", PNG); got != "sticker-composition.png" {
		t.Fatalf("got %q", got)
	}
	if got := FileName("card", JPEG); got != "card.jpg" {
		t.Fatalf("got %q", got)
	}
}

func TestWritePNGRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sample(), PNG); err != nil {
		t.Fatalf("write: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 40, 20) {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sample(), PDF); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output does not look like a pdf")
	}
	if err := Write(&buf, image.NewRGBA(image.Rectangle{}), PDF); err == nil {
		t.Fatalf("expected error for empty image")
	}
}

func TestWriteJPEG(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sample(), JPEG); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected jpeg bytes")
	}
}
