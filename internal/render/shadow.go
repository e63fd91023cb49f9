package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow cast by each sticker.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// DefaultShadowOptions returns a soft shadow sized for 80px stickers.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  4,
		Offset:  image.Pt(3, 3),
		Opacity: 0.35,
	}
}

// castShadow draws the blurred alpha silhouette of sprite into dst, with the
// sprite's top-left corner at at and the shadow displaced by opts.Offset.
func castShadow(dst draw.Image, sprite *image.RGBA, at image.Point, opts ShadowOptions) {
	mask := ShadowMask(sprite, opts.Radius)
	if mask == nil {
		return
	}
	opacity := opts.Opacity
	if opacity > 1 {
		opacity = 1
	}
	alpha := uint8(opacity*255 + 0.5)
	if alpha == 0 {
		return
	}
	radius := max(opts.Radius, 0)
	r := mask.Bounds().Add(at).Add(opts.Offset).Sub(image.Pt(radius, radius))
	draw.DrawMask(dst, r, image.NewUniform(color.RGBA{A: alpha}), image.Point{}, mask, mask.Bounds().Min, draw.Over)
}

// ShadowMask returns the box-blurred alpha channel of sprite padded by
// radius on every side.
func ShadowMask(sprite *image.RGBA, radius int) *image.Gray {
	if sprite == nil || sprite.Bounds().Empty() {
		return nil
	}
	radius = max(radius, 0)
	b := sprite.Bounds()
	mask := image.NewGray(image.Rect(0, 0, b.Dx()+2*radius, b.Dy()+2*radius))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if a := sprite.RGBAAt(x, y).A; a != 0 {
				mask.SetGray(x-b.Min.X+radius, y-b.Min.Y+radius, color.Gray{Y: a})
			}
		}
	}
	return boxBlur(mask, radius)
}

// boxBlur runs a separable box blur using running sums per row then column.
func boxBlur(src *image.Gray, radius int) *image.Gray {
	out := image.NewGray(src.Bounds())
	if radius <= 0 {
		copy(out.Pix, src.Pix)
		return out
	}
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	tmp := image.NewGray(src.Bounds())
	sums := make([]int, max(w, h)+1)

	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride:]
		for x := 0; x < w; x++ {
			sums[x+1] = sums[x] + int(row[x])
		}
		for x := 0; x < w; x++ {
			x0, x1 := max(x-radius, 0), min(x+radius, w-1)
			tmp.Pix[y*tmp.Stride+x] = uint8((sums[x1+1] - sums[x0]) / (x1 - x0 + 1))
		}
	}
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			sums[y+1] = sums[y] + int(tmp.Pix[y*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			y0, y1 := max(y-radius, 0), min(y+radius, h-1)
			out.Pix[y*out.Stride+x] = uint8((sums[y1+1] - sums[y0]) / (y1 - y0 + 1))
		}
	}
	return out
}
