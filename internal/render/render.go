// Package render draws a composition: the background scaled to the canvas,
// every sticker at its rect and the selection outline.
package render

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/example/stickerbook/internal/geom"
)

// OutlineWidth is the selection outline thickness in pixels.
const OutlineWidth = 2

// OutlineGap is how far the outline path sits outside the placement rect.
const OutlineGap = 2

// SelectionBlue is the default outline colour.
var SelectionBlue = color.RGBA{0x34, 0x98, 0xdb, 0xff}

// Item is one sticker to draw.
type Item struct {
	Image image.Image
	Rect  geom.Rect
}

// Scene is an immutable snapshot of a document. Images are shared and must
// not be modified, so a Scene may be drawn on another goroutine.
type Scene struct {
	Background image.Image
	Width      int
	Height     int
	Items      []Item
	// Selected indexes Items, or is -1.
	Selected int
}

// Empty reports whether there is nothing to draw.
func (s Scene) Empty() bool {
	return s.Background == nil || s.Width <= 0 || s.Height <= 0
}

// Options controls drawing.
type Options struct {
	Clear     color.Color
	Selection color.Color
	// HideSelection omits the outline, used for exports.
	HideSelection bool
	// Scaler resizes the background and stickers. Defaults to ApproxBiLinear.
	Scaler xdraw.Scaler
	Shadow *ShadowOptions
}

// DefaultOptions returns the on-screen drawing options.
func DefaultOptions() Options {
	return Options{
		Clear:     color.Transparent,
		Selection: SelectionBlue,
		Scaler:    xdraw.ApproxBiLinear,
	}
}

// ExportOptions returns options for a flattened export.
func ExportOptions() Options {
	o := DefaultOptions()
	o.HideSelection = true
	o.Scaler = xdraw.CatmullRom
	return o
}

// Render draws s into a new canvas-sized image.
func Render(s Scene, opts Options) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	Draw(dst, s, opts)
	return dst
}

// Draw paints s into dst. The canvas origin maps to dst.Bounds().Min.
// Stickers whose image is still nil are skipped.
func Draw(dst draw.Image, s Scene, opts Options) {
	if opts.Scaler == nil {
		opts.Scaler = xdraw.ApproxBiLinear
	}
	if opts.Clear == nil {
		opts.Clear = color.Transparent
	}
	origin := dst.Bounds().Min
	canvas := image.Rect(0, 0, s.Width, s.Height).Add(origin)
	draw.Draw(dst, canvas, image.NewUniform(opts.Clear), image.Point{}, draw.Src)
	if s.Background != nil {
		opts.Scaler.Scale(dst, canvas, s.Background, s.Background.Bounds(), draw.Over, nil)
	}
	for _, it := range s.Items {
		if it.Image == nil {
			continue
		}
		target := it.Rect.Image().Add(origin)
		if target.Empty() {
			continue
		}
		if opts.Shadow != nil && opts.Shadow.Opacity > 0 {
			sprite := image.NewRGBA(image.Rect(0, 0, target.Dx(), target.Dy()))
			opts.Scaler.Scale(sprite, sprite.Bounds(), it.Image, it.Image.Bounds(), draw.Src, nil)
			castShadow(dst, sprite, target.Min, *opts.Shadow)
			draw.Draw(dst, target, sprite, image.Point{}, draw.Over)
			continue
		}
		opts.Scaler.Scale(dst, target, it.Image, it.Image.Bounds(), draw.Over, nil)
	}
	if opts.HideSelection || s.Selected < 0 || s.Selected >= len(s.Items) {
		return
	}
	col := opts.Selection
	if col == nil {
		col = SelectionBlue
	}
	path := s.Items[s.Selected].Rect.Expand(OutlineGap)
	outer := path.Expand(OutlineWidth / 2).Image().Add(origin)
	inner := path.Expand(-OutlineWidth / 2).Image().Add(origin)
	StrokeRect(dst, outer, inner, col)
}

// StrokeRect fills the band between outer and inner with c.
func StrokeRect(dst draw.Image, outer, inner image.Rectangle, c color.Color) {
	src := image.NewUniform(c)
	bands := []image.Rectangle{
		image.Rect(outer.Min.X, outer.Min.Y, outer.Max.X, inner.Min.Y),
		image.Rect(outer.Min.X, inner.Max.Y, outer.Max.X, outer.Max.Y),
		image.Rect(outer.Min.X, inner.Min.Y, inner.Min.X, inner.Max.Y),
		image.Rect(inner.Max.X, inner.Min.Y, outer.Max.X, inner.Max.Y),
	}
	for _, b := range bands {
		draw.Draw(dst, b, src, image.Point{}, draw.Over)
	}
}
