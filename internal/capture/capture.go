// Package capture grabs the desktop so a screenshot can become the
// composition background.
package capture

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log"
)

// Options controls a screenshot.
type Options struct {
	// Interactive lets the desktop portal ask the user to pick a region.
	Interactive bool
	// IncludeCursor embeds the pointer in the image when supported.
	IncludeCursor bool
	// Region crops the result when non-empty, in screen coordinates.
	Region image.Rectangle
}

// ErrUnsupported is returned when no capture method works on this platform.
var ErrUnsupported = errors.New("screen capture is not supported on this platform")

// Implementations are swapped by tests.
var (
	portalShot = portalScreenshot
	rootShot   = rootWindowScreenshot
)

// Screenshot captures the desktop through the screenshot portal and falls
// back to reading the X11 root window when the portal is unavailable.
func Screenshot(opts Options) (*image.RGBA, error) {
	img, portalErr := portalShot(opts)
	if portalErr != nil {
		if opts.Interactive {
			return nil, portalErr
		}
		log.Printf("capture: portal: %v, trying root window", portalErr)
		var err error
		img, err = rootShot()
		if err != nil {
			return nil, fmt.Errorf("screenshot: %v; root window fallback: %w", portalErr, err)
		}
	}
	if opts.Region.Empty() {
		return img, nil
	}
	return cropToRect(img, opts.Region)
}

func cropToRect(src *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst, nil
}
