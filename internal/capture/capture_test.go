package capture

import (
	"errors"
	"image"
	"strings"
	"testing"
)

func swap(t *testing.T, portal func(Options) (*image.RGBA, error), root func() (*image.RGBA, error)) {
	t.Helper()
	prevPortal, prevRoot := portalShot, rootShot
	portalShot, rootShot = portal, root
	t.Cleanup(func() { portalShot, rootShot = prevPortal, prevRoot })
}

func shot(w, h int) *image.RGBA { return image.NewRGBA(image.Rect(0, 0, w, h)) }

func TestScreenshotPrefersPortal(t *testing.T) {
	swap(t,
		func(Options) (*image.RGBA, error) { return shot(10, 10), nil },
		func() (*image.RGBA, error) { t.Fatal("root fallback used"); return nil, nil })
	img, err := Screenshot(Options{})
	if err != nil || img.Bounds().Dx() != 10 {
		t.Fatalf("Screenshot = %v, %v", img, err)
	}
}

func TestScreenshotFallsBackToRoot(t *testing.T) {
	swap(t,
		func(Options) (*image.RGBA, error) { return nil, errors.New("no portal") },
		func() (*image.RGBA, error) { return shot(20, 10), nil })
	img, err := Screenshot(Options{Region: image.Rect(5, 5, 15, 50)})
	if err != nil {
		t.Fatalf("Screenshot: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 10, 5) {
		t.Fatalf("cropped bounds %v", img.Bounds())
	}
}

func TestScreenshotErrors(t *testing.T) {
	rootErr := errors.New("no x11")
	swap(t,
		func(Options) (*image.RGBA, error) { return nil, errors.New("no portal") },
		func() (*image.RGBA, error) { return nil, rootErr })
	_, err := Screenshot(Options{})
	if !errors.Is(err, rootErr) || !strings.Contains(err.Error(), "no portal") {
		t.Fatalf("unexpected error %v", err)
	}
	if _, err := Screenshot(Options{Interactive: true}); err == nil || errors.Is(err, rootErr) {
		t.Fatalf("interactive capture should not fall back: %v", err)
	}
}

func TestCropOutside(t *testing.T) {
	if _, err := cropToRect(shot(4, 4), image.Rect(10, 10, 20, 20)); err == nil {
		t.Fatalf("expected error")
	}
}
