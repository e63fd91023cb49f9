// Package dnd bridges drag-and-drop from palette items onto the canvas.
//
// A drag carries an asset identifier. Because hosts differ in which payload
// types survive a drag, the identifier is published on several channels at
// once and resolved on drop using a fixed fallback order.
package dnd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"path"
	"strings"
	"sync"
)

// Payload types carried by a Transfer.
const (
	TypeText    = "text/plain"
	TypeURIList = "text/uri-list"
	// TypeAsset is the structured payload. Its presence is the contract
	// that the value is an asset identifier.
	TypeAsset = "application/x-sticker"
)

// ErrUnknownSource is returned when a drag starts from an unregistered item.
var ErrUnknownSource = errors.New("drag source not registered")

// File is a file entry in a Transfer.
type File struct {
	Name string
	Type string
	Open func() (io.ReadCloser, error)
}

// IsImage reports whether the file looks like a raster image.
func (f File) IsImage() bool {
	t := f.Type
	if t == "" {
		t = mime.TypeByExtension(strings.ToLower(path.Ext(f.Name)))
	}
	return strings.HasPrefix(t, "image/")
}

// Transfer is the data carried by one drag.
type Transfer struct {
	items            map[string]string
	Files            []File
	defaultPrevented bool
}

// NewTransfer creates an empty Transfer.
func NewTransfer() *Transfer {
	return &Transfer{items: make(map[string]string)}
}

// Set stores a typed payload.
func (t *Transfer) Set(typ, value string) {
	if t.items == nil {
		t.items = make(map[string]string)
	}
	t.items[typ] = value
}

// Get returns a typed payload or "".
func (t *Transfer) Get(typ string) string {
	if t == nil {
		return ""
	}
	return t.items[typ]
}

// AddFile attaches a file entry.
func (t *Transfer) AddFile(f File) {
	t.Files = append(t.Files, f)
}

// PreventDefault stops the host from handling the drop itself.
func (t *Transfer) PreventDefault() {
	if t != nil {
		t.defaultPrevented = true
	}
}

// DefaultPrevented reports whether PreventDefault was called.
func (t *Transfer) DefaultPrevented() bool {
	return t != nil && t.defaultPrevented
}

// ImageFile returns the first image file in the transfer.
func (t *Transfer) ImageFile() (File, bool) {
	if t == nil {
		return File{}, false
	}
	for _, f := range t.Files {
		if f.IsImage() {
			return f, true
		}
	}
	return File{}, false
}

// Key identifies a registered drag source.
type Key string

// Bridge owns the drag source registry and the same-process side channel.
type Bridge struct {
	mu      sync.Mutex
	sources map[Key]string
	pending string

	// Known reports whether s is a known asset identifier. When nil only
	// the marker heuristic is used.
	Known func(s string) bool
	// Markers are substrings that identify an asset path when the payload
	// arrives untyped.
	Markers []string
}

// DefaultMarkers match the bundled sticker file naming.
var DefaultMarkers = []string{"emoji_u", "emojis_svg", "stickers/"}

// NewBridge creates a Bridge with the default markers.
func NewBridge() *Bridge {
	return &Bridge{sources: make(map[Key]string), Markers: DefaultMarkers}
}

// Register makes key a drag source for asset. Palette items call this as
// they are inserted.
func (b *Bridge) Register(key Key, asset string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sources == nil {
		b.sources = make(map[Key]string)
	}
	b.sources[key] = asset
}

// Unregister removes a drag source.
func (b *Bridge) Unregister(key Key) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.sources, key)
}

// Source returns the asset registered for key.
func (b *Bridge) Source(key Key) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.sources[key]
	return a, ok
}

// DragStart begins a drag from key and returns the transfer to hand to the
// host. The asset is also stored in the side channel.
func (b *Bridge) DragStart(key Key) (*Transfer, error) {
	asset, ok := b.Source(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, key)
	}
	b.mu.Lock()
	b.pending = asset
	b.mu.Unlock()
	t := NewTransfer()
	t.Set(TypeText, asset)
	t.Set(TypeURIList, asset)
	t.Set(TypeAsset, asset)
	return t, nil
}

// DragEnd clears the side channel when a drag finishes without a drop.
func (b *Bridge) DragEnd() {
	b.mu.Lock()
	b.pending = ""
	b.mu.Unlock()
}

// Resolve extracts an asset identifier from t. The side channel is consumed
// first, then text/plain, text/uri-list and the typed payload.
func (b *Bridge) Resolve(t *Transfer) (string, bool) {
	b.mu.Lock()
	pending := b.pending
	b.pending = ""
	b.mu.Unlock()
	if pending != "" {
		return pending, true
	}
	if s := strings.TrimSpace(t.Get(TypeText)); s != "" && b.looksLikeAsset(s) {
		return s, true
	}
	if s := firstURI(t.Get(TypeURIList)); s != "" && b.looksLikeAsset(s) {
		return s, true
	}
	if s := strings.TrimSpace(t.Get(TypeAsset)); s != "" {
		return s, true
	}
	if t != nil && len(t.items) > 0 {
		log.Printf("dnd: unresolvable payload with types %v", t.Types())
	}
	return "", false
}

// ResolveText resolves a bare string, for example pasted text, with the same
// validation applied to an untyped drag payload.
func (b *Bridge) ResolveText(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || !b.looksLikeAsset(s) {
		return "", false
	}
	return s, true
}

// Types lists the payload types present.
func (t *Transfer) Types() []string {
	var out []string
	for _, typ := range []string{TypeText, TypeURIList, TypeAsset} {
		if t.items[typ] != "" {
			out = append(out, typ)
		}
	}
	return out
}

func (b *Bridge) looksLikeAsset(s string) bool {
	if b.Known != nil && b.Known(s) {
		return true
	}
	for _, m := range b.Markers {
		if m != "" && strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// firstURI returns the first entry of a text/uri-list, skipping comments.
func firstURI(list string) string {
	for _, line := range strings.Split(list, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line
	}
	return ""
}
