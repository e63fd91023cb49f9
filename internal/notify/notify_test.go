package notify

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/stickerbook/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
}

func capture(t *testing.T) *[]sent {
	t.Helper()
	var got []sent
	orig := send
	send = func(title, body string, opts platform.Options) error {
		got = append(got, sent{title, body, opts})
		return nil
	}
	t.Cleanup(func() { send = orig })
	return &got
}

func TestDisabledEventsAreSilent(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	n.Copy("x")
	n.Export("x.png")
	n.Capture("screen", nil)
	var nilNotifier *Notifier
	nilNotifier.Copy("x")
	if len(*got) != 0 {
		t.Fatalf("sent %v", *got)
	}
}

func TestExportUsesAbsolutePathAndIcon(t *testing.T) {
	got := capture(t)
	path := filepath.Join(t.TempDir(), "out.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	n := New(DefaultPreferences())
	n.Enable(EventExport, true)
	n.Export(path)
	if len(*got) != 1 {
		t.Fatalf("sent %d notifications", len(*got))
	}
	s := (*got)[0]
	if s.title != "Stickerbook" || s.body != "Exported "+path || s.opts.IconPath != path {
		t.Fatalf("unexpected notification %+v", s)
	}
}

func TestCapturePreviewIsRemoved(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	n.Enable(EventCapture, true)
	n.Capture("screen", image.NewRGBA(image.Rect(0, 0, 4, 4)))
	if len(*got) != 1 || (*got)[0].opts.IconPath == "" {
		t.Fatalf("sent %+v", *got)
	}
	if _, err := os.Stat((*got)[0].opts.IconPath); !os.IsNotExist(err) {
		t.Fatalf("preview left behind: %v", err)
	}
}

func TestPreferencesFromEnv(t *testing.T) {
	env := map[string]string{
		"STICKERBOOK_NOTIFY_TITLE":     "Stickers",
		"STICKERBOOK_NOTIFY_COPY_TEXT": "Clipboard ready",
	}
	prefs := preferencesFrom(func(k string) string { return env[k] })
	if prefs.Title != "Stickers" {
		t.Fatalf("Title = %q", prefs.Title)
	}
	got := capture(t)
	n := New(prefs)
	n.Enable(EventCopy, true)
	n.Copy("")
	if len(*got) != 1 || (*got)[0].body != "Clipboard ready" {
		t.Fatalf("sent %+v", *got)
	}
	if prefs.Events[EventExport].Template != "Exported %s" {
		t.Fatalf("export template changed: %q", prefs.Events[EventExport].Template)
	}
}
