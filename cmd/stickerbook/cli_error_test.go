package main

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/example/stickerbook/internal/appstate"
	"github.com/example/stickerbook/internal/capture"
	"github.com/example/stickerbook/internal/config"
	"github.com/example/stickerbook/internal/theme"
)

func testRoot() *root {
	return &root{program: "stickerbook", config: config.New(), activeTheme: theme.Default()}
}

func TestEditCaptureError(t *testing.T) {
	original := captureScreenshotFn
	sentinel := errors.New("boom")
	captureScreenshotFn = func(capture.Options) (image.Image, error) { return nil, sentinel }
	t.Cleanup(func() { captureScreenshotFn = original })
	originalRun := runWindow
	runWindow = func(*appstate.AppState) { t.Fatalf("window opened after capture failure") }
	t.Cleanup(func() { runWindow = originalRun })

	cmd := &editCmd{capture: true, root: testRoot()}
	if err := cmd.Run(); err == nil {
		t.Fatalf("expected error")
	} else {
		if !errors.Is(err, sentinel) {
			t.Fatalf("expected wrapped error, got %v", err)
		}
		if want := "failed to capture screen"; !strings.Contains(err.Error(), want) {
			t.Fatalf("expected error to contain %q, got %v", want, err)
		}
	}
}

func TestEditClipboardBackground(t *testing.T) {
	original := readClipboardFn
	readClipboardFn = func() (image.Image, error) { return image.NewRGBA(image.Rect(0, 0, 30, 20)), nil }
	t.Cleanup(func() { readClipboardFn = original })
	var opened *appstate.AppState
	originalRun := runWindow
	runWindow = func(a *appstate.AppState) { opened = a }
	t.Cleanup(func() { runWindow = originalRun })

	cmd, err := parseEditCmd([]string{"-from-clipboard"}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if opened == nil || opened.Background == nil || opened.Background.Bounds().Dx() != 30 {
		t.Fatalf("window not opened with the clipboard image")
	}
	if opened.Palette.Len() == 0 {
		t.Fatalf("bundled pack not loaded")
	}
}

func TestParseEditRejectsTwoSources(t *testing.T) {
	_, err := parseEditCmd([]string{"-capture", "-from-clipboard"}, testRoot())
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if want := "choose only one"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestParseComposeRequiresDestination(t *testing.T) {
	_, err := parseComposeCmd([]string{"-background", "bg.png", "add x"}, testRoot())
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "-output or -to-clipboard is required"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestParseComposeRejectsScriptAndArgs(t *testing.T) {
	_, err := parseComposeCmd([]string{"-output", "o.png", "-script", "s.txt", "add x"}, testRoot())
	if err == nil || !strings.Contains(err.Error(), "not both") {
		t.Fatalf("expected script conflict, got %v", err)
	}
}

func TestUsageRendersFlags(t *testing.T) {
	r := newRootForHelp()
	msg := (&UsageError{of: r}).Error()
	for _, want := range []string{"Usage: stickerbook", "compose", "-theme"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("help missing %q:\n%s", want, msg)
		}
	}
}

func newRootForHelp() *root {
	r := testRoot()
	r.fs = newRoot().fs
	return r
}
