package sticker

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"net/url"
	"path"
	"strings"
	"sync"
)

// ErrInvalidAsset is returned for identifiers that cannot name a file in
// the library.
var ErrInvalidAsset = errors.New("invalid asset identifier")

// Library resolves asset identifiers against a file system and caches the
// decoded images. It is safe for concurrent use.
type Library struct {
	fsys  fs.FS
	size  int
	mu    sync.Mutex
	cache map[string]image.Image
}

// NewLibrary serves assets from fsys rasterising SVGs at size pixels.
func NewLibrary(fsys fs.FS, size int) *Library {
	if size <= 0 {
		size = DefaultSize
	}
	return &Library{fsys: fsys, size: size, cache: make(map[string]image.Image)}
}

// Normalize maps an asset identifier to a slash-separated path inside the
// library. file:// URIs, query strings and leading slashes are stripped.
func Normalize(asset string) (string, error) {
	s := strings.TrimSpace(asset)
	if strings.Contains(s, "://") {
		u, err := url.Parse(s)
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidAsset, asset)
		}
		s = u.Path
	}
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimLeft(path.Clean("/"+s), "/")
	if s == "" || s == "." || !fs.ValidPath(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAsset, asset)
	}
	return s, nil
}

// Cached returns an already decoded asset without touching the file system.
func (l *Library) Cached(asset string) (image.Image, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	img, ok := l.cache[asset]
	return img, ok
}

// Exists reports whether asset names a file in the library.
func (l *Library) Exists(asset string) bool {
	p, err := Normalize(asset)
	if err != nil {
		return false
	}
	_, err = fs.Stat(l.fsys, p)
	return err == nil
}

// Load decodes asset, using the cache when possible.
func (l *Library) Load(ctx context.Context, asset string) (image.Image, error) {
	if img, ok := l.Cached(asset); ok {
		return img, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := Normalize(asset)
	if err != nil {
		return nil, err
	}
	f, err := l.fsys.Open(p)
	if err != nil {
		return nil, fmt.Errorf("open asset: %w", err)
	}
	defer f.Close()
	img, err := Decode(p, f, l.size)
	if err != nil {
		return nil, err
	}
	l.mu.Lock()
	l.cache[asset] = img
	l.mu.Unlock()
	return img, nil
}

// Forget drops a cached asset so the next Load reads it again.
func (l *Library) Forget(asset string) {
	l.mu.Lock()
	delete(l.cache, asset)
	l.mu.Unlock()
}
