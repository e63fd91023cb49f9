package appstate

import (
	"context"
	"image"
	"log"

	"github.com/example/stickerbook/internal/dnd"
	"github.com/example/stickerbook/internal/palette"
)

// thumbLoader decodes a palette asset.
type thumbLoader interface {
	Load(ctx context.Context, asset string) (image.Image, error)
}

// paletteView is the sidebar grid: the filtered palette revealed in batches,
// with thumbnails decoded in the background. It is owned by the event loop.
type paletteView struct {
	pal    *palette.Palette
	bridge *dnd.Bridge
	pager  *palette.Pager
	loader thumbLoader

	category string
	term     string
	scroll   int
	hover    int

	thumbs  map[string]image.Image
	loading map[string]bool
	keys    map[string]dnd.Key
}

func newPaletteView(pal *palette.Palette, bridge *dnd.Bridge, loader thumbLoader, batch int) *paletteView {
	v := &paletteView{
		pal:      pal,
		bridge:   bridge,
		loader:   loader,
		pager:    palette.NewPager(nil, batch),
		category: palette.DefaultCategory,
		hover:    -1,
		thumbs:   make(map[string]image.Image),
		loading:  make(map[string]bool),
		keys:     make(map[string]dnd.Key),
	}
	v.refilter()
	return v
}

func paletteKey(asset string) dnd.Key { return dnd.Key("palette:" + asset) }

// refilter applies the current category and search term and reveals the
// first batch. A category with no entries falls back to everything.
func (v *paletteView) refilter() {
	items := v.pal.Filter(v.category, v.term)
	if len(items) == 0 && v.term == "" && v.category != palette.AllCategory {
		items = v.pal.All()
	}
	for _, k := range v.keys {
		v.bridge.Unregister(k)
	}
	clear(v.keys)
	v.pager.Reset(items)
	v.scroll = 0
	v.hover = -1
	v.reveal(v.pager.Next())
}

// reveal registers newly shown cells as drag sources.
func (v *paletteView) reveal(batch []string) {
	for _, asset := range batch {
		k := paletteKey(asset)
		v.keys[asset] = k
		v.bridge.Register(k, asset)
	}
}

func (v *paletteView) setCategory(name string) {
	v.category = name
	v.term = ""
	v.refilter()
}

func (v *paletteView) setTerm(term string) {
	v.term = term
	v.refilter()
}

func (v *paletteView) shown() []string { return v.pager.Shown() }

// assetAt returns the asset of the cell under p.
func (v *paletteView) assetAt(l layout, p image.Point) (string, bool) {
	items := v.shown()
	i := l.cellAt(p, v.scroll, len(items))
	if i < 0 {
		return "", false
	}
	return items[i], true
}

// scrollBy moves the grid and reveals another batch when close to the end.
func (v *paletteView) scrollBy(l layout, dy int) {
	v.scroll = min(max(0, v.scroll+dy), l.maxScroll(len(v.shown())))
	v.loadMore(l)
}

// loadMore reveals batches while the visible area reaches the end of the
// revealed content.
func (v *paletteView) loadMore(l layout) bool {
	grew := false
	for v.pager.More() && palette.NearEnd(v.scroll, l.palette.Dy(), l.contentHeight(len(v.shown()))) {
		v.reveal(v.pager.Next())
		grew = true
	}
	return grew
}

// wantThumbs returns shown assets whose thumbnails have not been requested
// and marks them as loading.
func (v *paletteView) wantThumbs() []string {
	var out []string
	for _, a := range v.shown() {
		if v.thumbs[a] != nil || v.loading[a] {
			continue
		}
		v.loading[a] = true
		out = append(out, a)
	}
	return out
}

// loadThumbs decodes the wanted thumbnails off the loop and hands each
// result to deliver, which must run it on the loop.
func (v *paletteView) loadThumbs(ctx context.Context, deliver func(func())) {
	if v.loader == nil {
		return
	}
	for _, asset := range v.wantThumbs() {
		asset := asset
		go func() {
			img, err := v.loader.Load(ctx, asset)
			if err == nil {
				img = palette.Thumbnail(img, thumbPx)
			}
			deliver(func() { v.thumbLoaded(asset, img, err) })
		}()
	}
}

// thumbLoaded stores a thumbnail. An asset that fails to load is removed
// from the palette.
func (v *paletteView) thumbLoaded(asset string, img image.Image, err error) {
	delete(v.loading, asset)
	if err != nil {
		log.Printf("palette: %s: %v", asset, err)
		v.remove(asset)
		return
	}
	v.thumbs[asset] = img
}

func (v *paletteView) remove(asset string) {
	v.pal.Drop(asset)
	v.pager.Drop(asset)
	delete(v.thumbs, asset)
	if k, ok := v.keys[asset]; ok {
		v.bridge.Unregister(k)
		delete(v.keys, asset)
	}
}

// apply updates the grid for a change in the asset directory.
func (v *paletteView) apply(c palette.Change) {
	if c.Removed {
		v.remove(c.Asset)
		return
	}
	delete(v.thumbs, c.Asset)
	if v.pal.Add(c.Asset) {
		keep := v.scroll
		v.refilter()
		v.scroll = keep
	}
}
