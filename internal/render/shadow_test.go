package render

import (
	"image"
	"image/color"
	"testing"
)

func TestShadowMaskPadsByRadius(t *testing.T) {
	sprite := image.NewRGBA(image.Rect(0, 0, 10, 10))
	sprite.Set(5, 5, color.RGBA{R: 255, A: 255})

	mask := ShadowMask(sprite, 4)
	if mask == nil {
		t.Fatal("expected mask")
	}
	if want := image.Rect(0, 0, 18, 18); !mask.Bounds().Eq(want) {
		t.Fatalf("unexpected bounds %v, want %v", mask.Bounds(), want)
	}
	if mask.GrayAt(9, 9).Y == 0 {
		t.Fatalf("expected alpha at the padded subject position")
	}
	if mask.GrayAt(10, 9).Y == 0 {
		t.Fatalf("expected blur to spread to a neighbour")
	}
	if mask.GrayAt(0, 0).Y != 0 {
		t.Fatalf("expected corner outside blur radius to stay clear")
	}
}

func TestShadowMaskZeroRadiusCopiesAlpha(t *testing.T) {
	sprite := image.NewRGBA(image.Rect(0, 0, 2, 2))
	sprite.Set(0, 0, color.RGBA{A: 200})
	mask := ShadowMask(sprite, 0)
	if got := mask.GrayAt(0, 0).Y; got != 200 {
		t.Fatalf("got %d", got)
	}
	if got := mask.GrayAt(1, 1).Y; got != 0 {
		t.Fatalf("got %d", got)
	}
}

func TestCastShadowOffset(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))
	sprite := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			sprite.Set(x, y, color.RGBA{G: 255, A: 255})
		}
	}
	castShadow(dst, sprite, image.Pt(10, 10), ShadowOptions{Radius: 1, Offset: image.Pt(6, 0), Opacity: 1})
	if dst.RGBAAt(17, 11).A == 0 {
		t.Fatalf("expected shadow to the right of the sprite")
	}
	if dst.RGBAAt(10, 11).A != 0 {
		t.Fatalf("shadow should be displaced away from the sprite origin")
	}

	clear := image.NewRGBA(image.Rect(0, 0, 40, 40))
	castShadow(clear, sprite, image.Pt(10, 10), ShadowOptions{Radius: 3, Opacity: 0})
	for _, v := range clear.Pix {
		if v != 0 {
			t.Fatalf("zero opacity must not draw")
		}
	}
}
