package palette

import (
	"image"

	"github.com/nfnt/resize"
)

// Thumbnail shrinks img to fit a px×px cell keeping its aspect ratio. Images
// already small enough are returned unchanged.
func Thumbnail(img image.Image, px int) image.Image {
	if img == nil || px <= 0 {
		return img
	}
	return resize.Thumbnail(uint(px), uint(px), img, resize.Bilinear)
}
