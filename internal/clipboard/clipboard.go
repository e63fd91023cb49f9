// Package clipboard moves compositions and sticker references through the
// system clipboard.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"
	"sync"

	_ "image/jpeg"
)

// Kind is a clipboard payload type.
type Kind int

const (
	Text Kind = iota
	PNG
)

type backend interface {
	Write(k Kind, data []byte) error
	Read(k Kind) ([]byte, error)
}

var (
	initOnce     sync.Once
	initErr      error
	active       backend
	errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
)

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

func ensureInit() error {
	initOnce.Do(func() {
		active, initErr = openBackend()
	})
	return initErr
}

// WriteImage encodes img as PNG and publishes it to the clipboard.
func WriteImage(img image.Image) error {
	if err := ensureInit(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode clipboard image: %w", err)
	}
	return active.Write(PNG, buf.Bytes())
}

// ReadImage decodes the image currently on the clipboard.
func ReadImage() (image.Image, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	data, err := active.Read(PNG)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("clipboard does not contain image data")
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode clipboard image: %w", err)
	}
	return img, nil
}

// WriteText writes text to the clipboard.
func WriteText(text string) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return active.Write(Text, []byte(text))
}

// ReadText returns the clipboard text without trailing NUL bytes some
// applications append.
func ReadText() (string, error) {
	if err := ensureInit(); err != nil {
		return "", err
	}
	data, err := active.Read(Text)
	if err != nil {
		return "", err
	}
	text := strings.TrimRight(string(data), "\x00")
	if text == "" {
		return "", fmt.Errorf("clipboard does not contain text data")
	}
	return text, nil
}
