// Package export encodes a flattened composition to a file format.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// BaseName is the fixed file name used for exports.
const BaseName = "sticker-composition"

// Format is an export encoding.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	PDF  Format = "pdf"
)

// ParseFormat accepts a format name or file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "", "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "pdf":
		return PDF, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// FormatForPath picks the format from a file extension, defaulting to PNG.
func FormatForPath(path string) Format {
	f, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return PNG
	}
	return f
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	switch f {
	case JPEG:
		return ".jpg"
	case PDF:
		return ".pdf"
	}
	return ".png"
}

// FileName returns base with the format's extension.
func FileName(base string, f Format) string {
	if base == "" {
		base = BaseName
	}
	return base + f.Ext()
}

// Write encodes img as f.
func Write(w io.Writer, img image.Image, f Format) error {
	switch f {
	case PNG, "":
		return png.Encode(w, img)
	case JPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 92})
	case PDF:
		return writePDF(w, img)
	}
	return fmt.Errorf("unsupported export format %q", f)
}

// writePDF places img on a single page of exactly its size, one pixel per
// point.
func writePDF(w io.Writer, img image.Image) error {
	b := img.Bounds()
	if b.Empty() {
		return fmt.Errorf("pdf export: empty image")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("pdf export: %w", err)
	}
	wd, ht := float64(b.Dx()), float64(b.Dy())
	// Landscape would swap Wd and Ht, so the exact size is always given as
	// portrait.
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: wd, Ht: ht},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(BaseName, opts, &buf)
	pdf.ImageOptions(BaseName, 0, 0, wd, ht, false, opts, 0, "")
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf export: %w", err)
	}
	return nil
}
