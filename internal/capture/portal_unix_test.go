//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/godbus/dbus/v5"
)

func TestPortalScreenshotOptions(t *testing.T) {
	prevToken := portalHandleToken
	portalHandleToken = func() string { return "test-token" }
	t.Cleanup(func() { portalHandleToken = prevToken })

	tests := []struct {
		name       string
		opts       Options
		wantCursor string
	}{
		{name: "defaults", opts: Options{}, wantCursor: "hidden"},
		{name: "interactive with cursor", opts: Options{Interactive: true, IncludeCursor: true}, wantCursor: "embedded"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			values := portalScreenshotOptions(tc.opts)

			if got := values["interactive"].Value().(bool); got != tc.opts.Interactive {
				t.Fatalf("interactive = %v, want %v", got, tc.opts.Interactive)
			}
			if got := values["modal"].Value().(bool); got != tc.opts.Interactive {
				t.Fatalf("modal = %v, want %v", got, tc.opts.Interactive)
			}
			if got := values["cursor_mode"].Value().(string); got != tc.wantCursor {
				t.Fatalf("cursor_mode = %q, want %q", got, tc.wantCursor)
			}
			if got := values["handle_token"].Value().(string); got != "test-token" {
				t.Fatalf("handle_token = %q", got)
			}
			if len(values) != 4 {
				t.Fatalf("expected 4 options, got %d", len(values))
			}
		})
	}
}

func TestPortalResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 5, 4))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	img, err := portalResult([]interface{}{uint32(0), map[string]dbus.Variant{"uri": dbus.MakeVariant("file://" + path)}})
	if err != nil {
		t.Fatalf("portalResult: %v", err)
	}
	if img.Bounds().Dx() != 5 || img.Bounds().Dy() != 4 {
		t.Fatalf("bounds %v", img.Bounds())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("portal file not removed: %v", err)
	}

	if _, err := portalResult([]interface{}{uint32(1), map[string]dbus.Variant{}}); err == nil {
		t.Fatalf("expected cancel error")
	}
	if _, err := portalResult([]interface{}{uint32(0), map[string]dbus.Variant{}}); err == nil {
		t.Fatalf("expected missing uri error")
	}
}
