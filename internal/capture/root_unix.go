//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"fmt"
	"image"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// rootWindowScreenshot reads the pixels of the default screen's root window.
// It works on X11 sessions where the portal is missing.
func rootWindowScreenshot() (*image.RGBA, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("x11 connect: %w", err)
	}
	defer conn.Close()

	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)
	w, h := int(screen.WidthInPixels), int(screen.HeightInPixels)
	reply, err := xproto.GetImage(conn, xproto.ImageFormatZPixmap, xproto.Drawable(screen.Root),
		0, 0, uint16(w), uint16(h), ^uint32(0)).Reply()
	if err != nil {
		return nil, fmt.Errorf("root window pixels: %w", err)
	}
	bpp := bitsPerPixel(setup.PixmapFormats, reply.Depth)
	return zPixmapToRGBA(reply.Data, reply.Depth, bpp, w, h)
}

func bitsPerPixel(formats []xproto.Format, depth byte) int {
	for _, f := range formats {
		if f.Depth == depth {
			return int(f.BitsPerPixel)
		}
	}
	return 0
}

// zPixmapToRGBA converts little endian BGR(X) rows into an opaque RGBA
// image. The fourth byte is alpha only on depth 32 visuals.
func zPixmapToRGBA(data []byte, depth byte, bpp, w, h int) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("root window has empty geometry")
	}
	if bpp < 24 {
		return nil, fmt.Errorf("unsupported root window format: depth %d, %d bpp", depth, bpp)
	}
	if len(data) == 0 || len(data)%h != 0 {
		return nil, fmt.Errorf("root window pixels: %d bytes for %d rows", len(data), h)
	}
	step := bpp / 8
	stride := len(data) / h
	if stride < w*step {
		return nil, fmt.Errorf("root window pixels: stride %d too short for width %d", stride, w)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := data[y*stride:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			p := src[x*step:]
			a := byte(0xff)
			if depth == 32 && step >= 4 {
				a = p[3]
			}
			dst[x*4], dst[x*4+1], dst[x*4+2], dst[x*4+3] = p[2], p[1], p[0], a
		}
	}
	return img, nil
}
