// Package overlay positions the selection frame and resize handle drawn over
// the canvas in screen coordinates.
package overlay

import (
	"image"

	"github.com/example/stickerbook/internal/geom"
	"github.com/example/stickerbook/internal/gesture"
)

// HandleSize is the edge length of the resize handle square.
const HandleSize = 10

// Overlay is the on-screen selection decoration.
type Overlay struct {
	Visible bool
	// Frame covers the selected placement exactly.
	Frame image.Rectangle
	// Handle is the bottom-right resize handle, centred on the frame corner.
	Handle image.Rectangle
}

// Sync computes the overlay for the selected rect (nil for no selection)
// given the canvas's top-left corner on screen.
func Sync(selected *geom.Rect, origin image.Point) Overlay {
	if selected == nil {
		return Overlay{}
	}
	frame := selected.Image().Add(origin)
	h := HandleSize / 2
	corner := frame.Max
	return Overlay{
		Visible: true,
		Frame:   frame,
		Handle:  image.Rect(corner.X-h, corner.Y-h, corner.X+h, corner.Y+h),
	}
}

// HandleAt reports which handle, if any, lies under the screen point p. The
// frame itself does not capture the pointer so presses inside it fall
// through to the canvas.
func (o Overlay) HandleAt(p image.Point) (gesture.Handle, bool) {
	if !o.Visible {
		return gesture.HandleNone, false
	}
	if p.In(o.Handle) {
		return gesture.HandleBottomRight, true
	}
	return gesture.HandleNone, false
}
