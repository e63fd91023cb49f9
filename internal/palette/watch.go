package palette

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Change is an asset appearing in or leaving the sticker directory.
type Change struct {
	Asset   string
	Removed bool
}

// Watch reports sticker files created in or removed from root/StickerDir
// until ctx is done. fn runs on the watcher goroutine.
func Watch(ctx context.Context, root string, fn func(Change)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	dir := filepath.Join(root, StickerDir)
	if err := w.Add(dir); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if c, ok := changeFor(root, ev); ok {
					fn(c)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Printf("palette watch: %v", err)
			}
		}
	}()
	return nil
}

func changeFor(root string, ev fsnotify.Event) (Change, bool) {
	ext := strings.ToLower(filepath.Ext(ev.Name))
	if ext != ".svg" && ext != ".png" {
		return Change{}, false
	}
	rel, err := filepath.Rel(root, ev.Name)
	if err != nil {
		return Change{}, false
	}
	asset := filepath.ToSlash(rel)
	switch {
	case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
		return Change{Asset: asset}, true
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		return Change{Asset: asset, Removed: true}, true
	}
	return Change{}, false
}
