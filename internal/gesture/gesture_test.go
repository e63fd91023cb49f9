package gesture

import (
	"errors"
	"image"
	"testing"

	"github.com/example/stickerbook/internal/document"
	"github.com/example/stickerbook/internal/geom"
)

func setup(t *testing.T, rects ...geom.Rect) (*document.Document, *Machine, []document.ID) {
	t.Helper()
	doc := document.New()
	doc.SetBackground(image.NewRGBA(image.Rect(0, 0, 400, 300)), 400, 300)
	var ids []document.ID
	for _, r := range rects {
		ids = append(ids, doc.Add("a", nil, r))
	}
	doc.ClearSelection()
	return doc, New(doc), ids
}

func rectOf(t *testing.T, doc *document.Document, id document.ID) geom.Rect {
	t.Helper()
	p, ok := doc.Placement(id)
	if !ok {
		t.Fatalf("placement %v missing", id)
	}
	return p.Rect
}

func TestClickBelowThresholdOnlySelects(t *testing.T) {
	doc, m, ids := setup(t, geom.R(10, 10, 80, 80))
	m.PointerDown(geom.Pt(50, 50))
	m.PointerMove(geom.Pt(53, 53))
	if m.Mode() != Pending {
		t.Fatalf("expected pending, got %v", m.Mode())
	}
	m.PointerUp(geom.Pt(53, 53))
	if got := rectOf(t, doc, ids[0]); got != geom.R(10, 10, 80, 80) {
		t.Fatalf("position changed: %v", got)
	}
	if doc.SelectedID() != ids[0] {
		t.Fatalf("expected placement to stay selected")
	}
	if m.Mode() != Idle {
		t.Fatalf("expected idle after release")
	}
}

func TestDragPastThresholdMovesByAccumulatedDelta(t *testing.T) {
	doc, m, ids := setup(t, geom.R(10, 10, 80, 80))
	m.PointerDown(geom.Pt(50, 50))
	m.PointerMove(geom.Pt(52, 52))
	m.PointerMove(geom.Pt(60, 58))
	if m.Mode() != DraggingMove {
		t.Fatalf("expected dragging-move, got %v", m.Mode())
	}
	m.PointerUp(geom.Pt(60, 58))
	if got := rectOf(t, doc, ids[0]); got != geom.R(20, 18, 80, 80) {
		t.Fatalf("unexpected rect %v", got)
	}
}

func TestThresholdIsStrict(t *testing.T) {
	_, m, _ := setup(t, geom.R(10, 10, 80, 80))
	m.PointerDown(geom.Pt(50, 50))
	m.PointerMove(geom.Pt(55, 50))
	if m.Mode() != Pending {
		t.Fatalf("exactly 5px must not start a drag, got %v", m.Mode())
	}
}

func TestPressOnEmptyCanvasClearsSelection(t *testing.T) {
	doc, m, ids := setup(t, geom.R(10, 10, 80, 80))
	doc.Select(ids[0])
	m.PointerDown(geom.Pt(300, 250))
	if doc.SelectedID() != document.None {
		t.Fatalf("expected selection cleared")
	}
	if m.Mode() != Idle {
		t.Fatalf("expected idle, got %v", m.Mode())
	}
}

func TestModifierDuplicatesAtPress(t *testing.T) {
	doc, m, ids := setup(t, geom.R(10, 10, 80, 80))
	m.SetModifier(true)
	m.PointerDown(geom.Pt(50, 50))
	if doc.Len() != 2 {
		t.Fatalf("expected clone on press, have %d placements", doc.Len())
	}
	clone := doc.SelectedID()
	if clone == ids[0] {
		t.Fatalf("clone should be selected")
	}
	if got := rectOf(t, doc, clone); got != geom.R(30, 30, 80, 80) {
		t.Fatalf("unexpected clone rect %v", got)
	}
	if m.Cursor() != CursorCopy {
		t.Fatalf("expected copy cursor")
	}

	m.SetModifier(false)
	m.PointerMove(geom.Pt(70, 50))
	if m.Mode() != DraggingDuplicate {
		t.Fatalf("releasing the modifier must not change a started gesture, got %v", m.Mode())
	}
	m.PointerUp(geom.Pt(70, 50))
	if got := rectOf(t, doc, clone); got != geom.R(50, 30, 80, 80) {
		t.Fatalf("clone should have moved, got %v", got)
	}
	if got := rectOf(t, doc, ids[0]); got != geom.R(10, 10, 80, 80) {
		t.Fatalf("original must not move, got %v", got)
	}
}

func TestResizeKeepsSquareAndMinimum(t *testing.T) {
	doc, m, ids := setup(t, geom.R(100, 100, 80, 80))
	doc.Select(ids[0])
	if err := m.HandleDown(HandleBottomRight, geom.Pt(180, 180)); err != nil {
		t.Fatalf("HandleDown: %v", err)
	}
	steps := []geom.Point{{X: 190, Y: 183}, {X: 185, Y: 200}, {X: 100, Y: 150}, {X: 40, Y: 20}}
	for _, p := range steps {
		m.PointerMove(p)
		r := rectOf(t, doc, ids[0])
		if r.W != r.H {
			t.Fatalf("lost square aspect after %v: %v", p, r)
		}
		if r.W < geom.MinSize {
			t.Fatalf("below minimum after %v: %v", p, r)
		}
	}
	if r := rectOf(t, doc, ids[0]); r.W != geom.MinSize {
		t.Fatalf("expected minimum size, got %v", r)
	}
	m.PointerUp(geom.Pt(40, 20))
	if m.Mode() != Idle {
		t.Fatalf("expected idle")
	}
}

func TestResizeClampedToCanvasWidth(t *testing.T) {
	doc, m, ids := setup(t, geom.R(0, 0, 80, 80))
	doc.Select(ids[0])
	if err := m.HandleDown(HandleBottomRight, geom.Pt(80, 80)); err != nil {
		t.Fatalf("HandleDown: %v", err)
	}
	m.PointerMove(geom.Pt(580, 90))
	r := rectOf(t, doc, ids[0])
	if r.W != 400 || r.H != 400 || r.X != 0 {
		t.Fatalf("unexpected rect %v", r)
	}
}

func TestHandleDownRequiresSelection(t *testing.T) {
	_, m, _ := setup(t, geom.R(0, 0, 80, 80))
	if err := m.HandleDown(HandleBottomRight, geom.Pt(80, 80)); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if m.Mode() != Idle {
		t.Fatalf("expected idle without selection")
	}
	if err := m.HandleDown(HandleNone, geom.Pt(0, 0)); !errors.Is(err, ErrUnsupportedHandle) {
		t.Fatalf("expected unsupported handle error, got %v", err)
	}
}

func TestParseHandle(t *testing.T) {
	if h, err := ParseHandle("br"); err != nil || h != HandleBottomRight {
		t.Fatalf("got %v %v", h, err)
	}
	if _, err := ParseHandle("top-left"); !errors.Is(err, ErrUnsupportedHandle) {
		t.Fatalf("expected unsupported, got %v", err)
	}
	if _, err := ParseHandle("middle"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestDeleteDuringGesture(t *testing.T) {
	doc, m, ids := setup(t, geom.R(10, 10, 80, 80))
	m.PointerDown(geom.Pt(50, 50))
	if !m.Delete() {
		t.Fatalf("expected delete")
	}
	if _, ok := doc.Placement(ids[0]); ok {
		t.Fatalf("placement still present")
	}
	if m.Mode() != Idle {
		t.Fatalf("expected idle after delete")
	}
	if m.Delete() {
		t.Fatalf("expected no-op without selection")
	}
	m.PointerMove(geom.Pt(100, 100))
}

func TestBoundsHoldDuringDrag(t *testing.T) {
	doc, m, ids := setup(t, geom.R(300, 200, 80, 80))
	m.PointerDown(geom.Pt(320, 220))
	for _, p := range []geom.Point{{X: 400, Y: 300}, {X: 600, Y: 500}, {X: -100, Y: -100}} {
		m.PointerMove(p)
		r := rectOf(t, doc, ids[0])
		if r.X < 0 || r.Y < 0 || r.X+r.W > 400 || r.Y+r.H > 300 {
			t.Fatalf("escaped canvas at %v: %v", p, r)
		}
	}
}
