package appstate

import (
	"context"
	"image"
	"image/color"
	"strings"
	"testing"

	"golang.org/x/mobile/event/key"

	"github.com/example/stickerbook/internal/theme"
)

func TestComposeFrameEmptyCanvas(t *testing.T) {
	s := newTestSession(t, false)
	st := s.snapshot()
	dst := image.NewRGBA(image.Rect(0, 0, st.width, st.height))
	composeFrame(context.Background(), dst, st)

	th := theme.Default()
	p := s.lay.canvas.Min.Add(image.Pt(2, 2))
	if got := dst.RGBAAt(p.X, p.Y); got != th.CanvasBackground {
		t.Fatalf("canvas pixel = %v want %v", got, th.CanvasBackground)
	}
	if got := dst.RGBAAt(s.lay.toolbar.Max.X-2, 2); got != th.ToolbarBackground {
		t.Fatalf("toolbar pixel = %v", got)
	}
}

func TestComposeFrameDrawsDocument(t *testing.T) {
	s := newTestSession(t, true)
	addAt(t, s, 100, 100)
	s.view.hover = 0
	st := s.snapshot()
	if !st.overlay.Visible {
		t.Fatalf("new sticker should be selected")
	}
	dst := image.NewRGBA(image.Rect(0, 0, st.width, st.height))
	composeFrame(context.Background(), dst, st)

	if got := dst.RGBAAt(docOrigin.X+5, docOrigin.Y+5); got != (color.RGBA{200, 0, 0, 255}) {
		t.Fatalf("background pixel = %v", got)
	}
	h := st.overlay.Handle
	mid := h.Min.Add(image.Pt(h.Dx()/2, h.Dy()/2))
	if got := dst.RGBAAt(mid.X, mid.Y); got != theme.Default().Handle {
		t.Fatalf("handle pixel = %v", got)
	}
	c := s.lay.cellRect(0, 0)
	if got := dst.RGBAAt(c.Min.X+1, c.Min.Y+1); got != theme.Default().PaletteCellHover {
		t.Fatalf("hovered cell = %v", got)
	}
}

func TestComposeFrameStopsWhenCancelled(t *testing.T) {
	s := newTestSession(t, true)
	st := s.snapshot()
	dst := image.NewRGBA(image.Rect(0, 0, st.width, st.height))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	composeFrame(ctx, dst, st)
	if got := dst.RGBAAt(docOrigin.X+5, docOrigin.Y+5); got == (color.RGBA{200, 0, 0, 255}) {
		t.Fatalf("cancelled frame still drew the document")
	}
}

func TestStatusShowsCursorAffordance(t *testing.T) {
	s := newTestSession(t, true)
	addAt(t, s, 100, 100)
	s.key(key.Event{Code: key.CodeLeftControl, Direction: key.DirPress})
	if got := s.status(); !strings.Contains(got, "cursor copy") {
		t.Fatalf("status = %q", got)
	}
	s.key(key.Event{Code: key.CodeLeftControl, Direction: key.DirRelease})
	if got := s.status(); strings.Contains(got, "cursor") {
		t.Fatalf("status = %q", got)
	}
}
