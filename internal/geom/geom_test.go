package geom

import (
	"image"
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name string
		in   Rect
		want Rect
	}{
		{"inside", R(10, 10, 80, 80), R(10, 10, 80, 80)},
		{"negative", R(-5, -20, 80, 80), R(0, 0, 80, 80)},
		{"past right edge", R(390, 250, 80, 80), R(320, 220, 80, 80)},
		{"wider than canvas", R(50, 10, 500, 80), R(0, 10, 500, 80)},
		{"taller than canvas", R(10, 50, 80, 400), R(10, 0, 80, 400)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clamp(tc.in, 400, 300); got != tc.want {
				t.Fatalf("Clamp(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestContainsInclusive(t *testing.T) {
	r := R(10, 10, 80, 80)
	for _, p := range []Point{Pt(10, 10), Pt(90, 90), Pt(10, 90), Pt(50, 50)} {
		if !r.Contains(p) {
			t.Fatalf("expected %v inside %v", p, r)
		}
	}
	for _, p := range []Point{Pt(9.9, 10), Pt(90.1, 50), Pt(50, 91)} {
		if r.Contains(p) {
			t.Fatalf("expected %v outside %v", p, r)
		}
	}
}

func TestResizeSquare(t *testing.T) {
	got := ResizeSquare(R(0, 0, 80, 80), 500, 400, 300)
	if got.W != 400 || got.H != 400 {
		t.Fatalf("expected side capped at canvas width, got %v", got)
	}
	if got.X != 0 || got.Y != 0 {
		t.Fatalf("expected position pinned to origin, got %v", got)
	}

	got = ResizeSquare(R(100, 100, 80, 80), -70, 400, 300)
	if got.W != MinSize || got.H != MinSize {
		t.Fatalf("expected minimum size, got %v", got)
	}

	got = ResizeSquare(R(300, 200, 80, 80), 20, 400, 300)
	if got.W != 100 || got.H != 100 {
		t.Fatalf("unexpected size %v", got)
	}
	if got.X+got.W > 400 || got.Y+got.H > 300 {
		t.Fatalf("resized rect escaped canvas: %v", got)
	}
}

func TestDominantDelta(t *testing.T) {
	if got := DominantDelta(Pt(500, 10)); got != 500 {
		t.Fatalf("got %v", got)
	}
	if got := DominantDelta(Pt(3, -7)); got != -7 {
		t.Fatalf("got %v", got)
	}
	if got := DominantDelta(Pt(4, 4)); got != 4 {
		t.Fatalf("got %v", got)
	}
}

func TestDistance(t *testing.T) {
	if d := Distance(Pt(50, 50), Pt(53, 53)); math.Abs(d-4.2426) > 0.001 {
		t.Fatalf("unexpected distance %v", d)
	}
}

func TestCenteredRectAndImage(t *testing.T) {
	r := CenteredRect(Pt(100, 60), 80, 80)
	if r != R(60, 20, 80, 80) {
		t.Fatalf("unexpected rect %v", r)
	}
	if got := r.Image(); got != image.Rect(60, 20, 140, 100) {
		t.Fatalf("unexpected image rect %v", got)
	}
	if got := r.Expand(2); got != R(58, 18, 84, 84) {
		t.Fatalf("unexpected expanded rect %v", got)
	}
}

func TestFitSize(t *testing.T) {
	w, h := FitSize(1600, 1200, 800, 800)
	if w != 800 || h != 600 {
		t.Fatalf("got %vx%v", w, h)
	}
	w, h = FitSize(200, 100, 800, 0)
	if w != 200 || h != 100 {
		t.Fatalf("small size was scaled: got %vx%v", w, h)
	}
	w, h = FitSize(640, 480, 1600, 1200)
	if w != 640 || h != 480 {
		t.Fatalf("small size was scaled: got %vx%v", w, h)
	}
	w, h = FitSize(2000, 500, 0, 250)
	if w != 1000 || h != 250 {
		t.Fatalf("got %vx%v", w, h)
	}
	w, h = FitSize(200, 100, 0, 0)
	if w != 200 || h != 100 {
		t.Fatalf("got %vx%v", w, h)
	}
}
