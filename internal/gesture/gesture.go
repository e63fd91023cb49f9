// Package gesture turns raw pointer and key input on the canvas into edits
// of a document: click-select, drag-move, drag-duplicate and resize.
package gesture

import (
	"errors"
	"fmt"
	"strings"

	"github.com/example/stickerbook/internal/document"
	"github.com/example/stickerbook/internal/geom"
)

const (
	// DragThreshold is how far, in pixels, the pointer must travel from the
	// press point before a press becomes a drag.
	DragThreshold = 5
	// DuplicateOffset is the offset applied to a modifier-duplicate.
	DuplicateOffset = 20
)

// Mode is the state of the current gesture.
type Mode int

const (
	Idle Mode = iota
	Pending
	DraggingMove
	DraggingDuplicate
	Resizing
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case DraggingMove:
		return "dragging-move"
	case DraggingDuplicate:
		return "dragging-duplicate"
	case Resizing:
		return "resizing"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Handle names a resize handle on the selection overlay.
type Handle int

const (
	HandleNone Handle = iota
	HandleBottomRight
)

// ErrUnsupportedHandle is returned for handles other than bottom-right.
var ErrUnsupportedHandle = errors.New("only the bottom-right resize handle is supported")

// ParseHandle maps a handle name such as "br" or "bottom-right" to a Handle.
// The other corners are recognised but rejected.
func ParseHandle(name string) (Handle, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "br", "se", "bottom-right":
		return HandleBottomRight, nil
	case "tl", "tr", "bl", "nw", "ne", "sw", "top-left", "top-right", "bottom-left":
		return HandleNone, fmt.Errorf("handle %q: %w", name, ErrUnsupportedHandle)
	}
	return HandleNone, fmt.Errorf("unknown handle %q", name)
}

// Cursor is the pointer affordance the host should show.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorCopy
	CursorMove
	CursorResize
)

// Machine is the gesture disambiguator. It must be driven from the same
// timeline that owns the document.
type Machine struct {
	doc *document.Document

	mode     Mode
	anchor   geom.Point
	last     geom.Point
	handle   Handle
	modifier bool
	// duplicate records whether the modifier was held when the gesture
	// started; later modifier changes do not affect a running drag.
	duplicate bool
}

// New creates a machine editing doc.
func New(doc *document.Document) *Machine {
	return &Machine{doc: doc}
}

// Mode reports the current gesture state.
func (m *Machine) Mode() Mode { return m.mode }

// Modifier reports whether the duplicate modifier is held.
func (m *Machine) Modifier() bool { return m.modifier }

// SetModifier records the state of the duplicate modifier key.
func (m *Machine) SetModifier(held bool) { m.modifier = held }

// Cursor returns the cursor to display for the current state.
func (m *Machine) Cursor() Cursor {
	switch m.mode {
	case Resizing:
		return CursorResize
	case DraggingMove, DraggingDuplicate:
		if m.modifier {
			return CursorCopy
		}
		return CursorMove
	}
	if m.modifier && m.doc.SelectedID() != document.None {
		return CursorCopy
	}
	return CursorDefault
}

// PointerDown starts a gesture at p on the canvas.
func (m *Machine) PointerDown(p geom.Point) {
	hit, ok := m.doc.HitTest(p)
	if !ok {
		m.doc.ClearSelection()
		m.reset()
		return
	}
	m.doc.Select(hit.ID)
	m.duplicate = m.modifier
	if m.duplicate {
		m.doc.DuplicateSelected(DuplicateOffset)
	}
	m.anchor, m.last = p, p
	m.mode = Pending
}

// HandleDown starts a resize from the overlay handle h.
func (m *Machine) HandleDown(h Handle, p geom.Point) error {
	if h != HandleBottomRight {
		return ErrUnsupportedHandle
	}
	if m.doc.SelectedID() == document.None {
		return nil
	}
	m.mode = Resizing
	m.handle = h
	m.anchor, m.last = p, p
	return nil
}

// PointerMove advances the gesture to p.
func (m *Machine) PointerMove(p geom.Point) {
	switch m.mode {
	case Pending:
		if geom.Distance(p, m.anchor) <= DragThreshold {
			return
		}
		m.mode = DraggingMove
		if m.duplicate {
			m.mode = DraggingDuplicate
		}
		m.moveSelected(p)
	case DraggingMove, DraggingDuplicate:
		m.moveSelected(p)
	case Resizing:
		d := p.Sub(m.last)
		m.last = p
		m.doc.ResizeSelected(geom.DominantDelta(d))
	}
}

func (m *Machine) moveSelected(p geom.Point) {
	d := p.Sub(m.last)
	m.last = p
	m.doc.Move(m.doc.SelectedID(), d.X, d.Y)
}

// PointerUp ends the gesture. A press that never crossed the drag threshold
// only keeps the selection made at PointerDown.
func (m *Machine) PointerUp(geom.Point) {
	m.reset()
}

// Delete removes the selected placement and cancels any running gesture.
func (m *Machine) Delete() bool {
	if !m.doc.RemoveSelected() {
		return false
	}
	m.reset()
	return true
}

// Cancel abandons the running gesture without further edits.
func (m *Machine) Cancel() { m.reset() }

func (m *Machine) reset() {
	m.mode = Idle
	m.handle = HandleNone
	m.duplicate = false
}
