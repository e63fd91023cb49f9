// Package document holds the placement document: the background raster, the
// ordered sticker placements drawn on top of it and the current selection.
//
// A Document is owned by a single event timeline and is not safe for
// concurrent use. Work that completes elsewhere (image decoding) must be
// handed back to that timeline before it touches the document.
package document

import (
	"image"

	"github.com/google/uuid"

	"github.com/example/stickerbook/internal/geom"
)

// ID identifies a placement for its whole lifetime regardless of where it
// sits in the z-order.
type ID = uuid.UUID

// None is the zero ID. It never names a placement.
var None = uuid.Nil

// Placement is one sticker instance on the canvas.
type Placement struct {
	ID    ID
	Asset string
	// Image is shared between every placement of the same asset and must be
	// treated as read-only. It is nil until the asset finishes decoding.
	Image image.Image
	Rect  geom.Rect
}

// Document is the editable composition.
type Document struct {
	background image.Image
	width      float64
	height     float64
	placements []*Placement
	selected   ID

	// OnChange runs after every mutation that changed something.
	OnChange func()

	newID func() ID
}

// New creates an empty document.
func New() *Document {
	return &Document{newID: uuid.New}
}

func (d *Document) changed() {
	if d.OnChange != nil {
		d.OnChange()
	}
}

// Background returns the background raster, or nil when none was set.
func (d *Document) Background() image.Image { return d.background }

// HasBackground reports whether a background has been uploaded.
func (d *Document) HasBackground() bool { return d.background != nil }

// Size returns the canvas size in pixels.
func (d *Document) Size() (float64, float64) { return d.width, d.height }

// SetBackground replaces the background, resizes the canvas to w×h and
// resets the composition.
func (d *Document) SetBackground(img image.Image, w, h float64) {
	d.background = img
	d.width, d.height = w, h
	d.placements = nil
	d.selected = None
	d.changed()
}

// Len returns the number of placements.
func (d *Document) Len() int { return len(d.placements) }

// Placements returns copies of the placements in z-order, bottom first.
func (d *Document) Placements() []Placement {
	out := make([]Placement, len(d.placements))
	for i, p := range d.placements {
		out[i] = *p
	}
	return out
}

// Placement looks up a live placement by ID.
func (d *Document) Placement(id ID) (Placement, bool) {
	if i := d.index(id); i >= 0 {
		return *d.placements[i], true
	}
	return Placement{}, false
}

// Last returns the top-most placement.
func (d *Document) Last() (Placement, bool) {
	if len(d.placements) == 0 {
		return Placement{}, false
	}
	return *d.placements[len(d.placements)-1], true
}

func (d *Document) index(id ID) int {
	if id == None {
		return -1
	}
	for i, p := range d.placements {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Selected returns the selected placement.
func (d *Document) Selected() (Placement, bool) {
	return d.Placement(d.selected)
}

// SelectedID returns the selected placement's ID or None.
func (d *Document) SelectedID() ID { return d.selected }

// Add appends a placement on top of the others, clamped to the canvas, and
// selects it.
func (d *Document) Add(asset string, img image.Image, r geom.Rect) ID {
	p := &Placement{
		ID:    d.newID(),
		Asset: asset,
		Image: img,
		Rect:  geom.Clamp(r, d.width, d.height),
	}
	d.placements = append(d.placements, p)
	d.selected = p.ID
	d.changed()
	return p.ID
}

// Select makes id the selection. Unknown IDs clear it.
func (d *Document) Select(id ID) {
	if d.index(id) < 0 {
		id = None
	}
	if d.selected == id {
		return
	}
	d.selected = id
	d.changed()
}

// ClearSelection deselects everything.
func (d *Document) ClearSelection() {
	d.Select(None)
}

// Remove deletes a placement. The selection is cleared with it when it was
// selected. It reports whether anything was removed.
func (d *Document) Remove(id ID) bool {
	i := d.index(id)
	if i < 0 {
		return false
	}
	d.placements = append(d.placements[:i], d.placements[i+1:]...)
	if d.selected == id {
		d.selected = None
	}
	d.changed()
	return true
}

// RemoveSelected deletes the selected placement, if any.
func (d *Document) RemoveSelected() bool {
	return d.Remove(d.selected)
}

// Clear removes every placement but keeps the background.
func (d *Document) Clear() {
	if len(d.placements) == 0 && d.selected == None {
		return
	}
	d.placements = nil
	d.selected = None
	d.changed()
}

// DuplicateSelected clones the selected placement offset by (offset, offset)
// and selects the clone. The clone shares the original's image.
func (d *Document) DuplicateSelected(offset float64) (ID, bool) {
	i := d.index(d.selected)
	if i < 0 {
		return None, false
	}
	src := d.placements[i]
	r := src.Rect.Translate(geom.Pt(offset, offset))
	return d.Add(src.Asset, src.Image, r), true
}

// Move translates a placement by (dx, dy) and clamps it.
func (d *Document) Move(id ID, dx, dy float64) bool {
	i := d.index(id)
	if i < 0 {
		return false
	}
	p := d.placements[i]
	next := geom.Clamp(p.Rect.Translate(geom.Pt(dx, dy)), d.width, d.height)
	if next == p.Rect {
		return false
	}
	p.Rect = next
	d.changed()
	return true
}

// ResizeSelected grows the selected placement by delta keeping it square.
func (d *Document) ResizeSelected(delta float64) bool {
	i := d.index(d.selected)
	if i < 0 {
		return false
	}
	p := d.placements[i]
	next := geom.ResizeSquare(p.Rect, delta, d.width, d.height)
	if next == p.Rect {
		return false
	}
	p.Rect = next
	d.changed()
	return true
}

// SetImage attaches a decoded image to a placement. It reports false when
// the placement no longer exists.
func (d *Document) SetImage(id ID, img image.Image) bool {
	i := d.index(id)
	if i < 0 {
		return false
	}
	d.placements[i].Image = img
	d.changed()
	return true
}

// FillAsset attaches img to every placement of asset still waiting for its
// image and returns how many were updated.
func (d *Document) FillAsset(asset string, img image.Image) int {
	n := 0
	for _, p := range d.placements {
		if p.Asset == asset && p.Image == nil {
			p.Image = img
			n++
		}
	}
	if n > 0 {
		d.changed()
	}
	return n
}

// HitTest returns the top-most placement containing pt.
func (d *Document) HitTest(pt geom.Point) (Placement, bool) {
	for i := len(d.placements) - 1; i >= 0; i-- {
		if d.placements[i].Rect.Contains(pt) {
			return *d.placements[i], true
		}
	}
	return Placement{}, false
}
