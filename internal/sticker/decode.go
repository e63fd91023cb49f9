// Package sticker decodes sticker assets and serves them to the editor.
package sticker

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"path"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultSize is the edge length SVG stickers are rasterised to.
const DefaultSize = 256

// IsSVG reports whether name refers to an SVG asset.
func IsSVG(name string) bool {
	return strings.EqualFold(path.Ext(name), ".svg")
}

// Decode reads an asset. SVG input is rasterised into a size×size square
// keeping its aspect ratio; everything else goes through image.Decode.
func Decode(name string, r io.Reader, size int) (image.Image, error) {
	if IsSVG(name) {
		return decodeSVG(r, size)
	}
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return img, nil
}

// DecodeBytes is Decode over an in-memory asset.
func DecodeBytes(name string, data []byte, size int) (image.Image, error) {
	return Decode(name, bytes.NewReader(data), size)
}

func decodeSVG(r io.Reader, size int) (image.Image, error) {
	if size <= 0 {
		size = DefaultSize
	}
	icon, err := oksvg.ReadIconStream(r, oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	w, h := icon.ViewBox.W, icon.ViewBox.H
	if w <= 0 || h <= 0 {
		w, h = float64(size), float64(size)
	}
	scale := float64(size) / max(w, h)
	tw, th := w*scale, h*scale
	icon.SetTarget((float64(size)-tw)/2, (float64(size)-th)/2, tw, th)

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1)
	return img, nil
}
