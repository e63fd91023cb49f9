// Package palette provides the list of stickers the user can pick from:
// the asset manifest, category tabs, keyword search and batch paging.
package palette

import (
	"log"
	"path"
	"strings"
	"sync"
)

// DefaultCategory is the tab shown first.
const DefaultCategory = "Smileys & Emotion"

// AllCategory selects every asset.
const AllCategory = "all"

// Palette is safe for concurrent use; the directory watcher adds assets from
// its own goroutine.
type Palette struct {
	mu         sync.RWMutex
	assets     []string
	index      map[string]bool
	chars      map[string]string
	meta       map[string]Meta
	categories []Category
	aliases    Aliases
}

// New builds a palette from already parsed tables. Any table may be nil.
func New(assets []string, meta map[string]Meta, cats []Category, aliases Aliases) *Palette {
	p := &Palette{
		index:      make(map[string]bool),
		chars:      make(map[string]string),
		meta:       meta,
		categories: cats,
		aliases:    aliases,
	}
	if p.meta == nil {
		p.meta = map[string]Meta{}
	}
	for _, a := range assets {
		p.addLocked(a)
	}
	return p
}

func (p *Palette) addLocked(asset string) bool {
	if p.index[asset] {
		return false
	}
	p.index[asset] = true
	p.assets = append(p.assets, asset)
	if c := Char(asset); c != "" {
		p.chars[asset] = c
	}
	return true
}

// Add appends a newly discovered sticker. Multi-codepoint emoji files are
// skipped like they are in the manifest.
func (p *Palette) Add(asset string) bool {
	if _, ok := Codepoints(asset); ok && !SingleCodepoint(asset) {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.addLocked(asset)
}

// Drop removes an asset, for example after it failed to load.
func (p *Palette) Drop(asset string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.index[asset] {
		return false
	}
	delete(p.index, asset)
	delete(p.chars, asset)
	for i, a := range p.assets {
		if a == asset {
			p.assets = append(p.assets[:i], p.assets[i+1:]...)
			break
		}
	}
	log.Printf("palette: removed %s", asset)
	return true
}

// Known reports whether asset is listed.
func (p *Palette) Known(asset string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.index[asset]
}

// Len returns the number of assets.
func (p *Palette) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.assets)
}

// All returns every asset in manifest order.
func (p *Palette) All() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]string(nil), p.assets...)
}

// Name returns a human readable label for asset.
func (p *Palette) Name(asset string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if m, ok := p.meta[p.chars[asset]]; ok && m.Name != "" {
		return m.Name
	}
	return strings.TrimSuffix(path.Base(asset), path.Ext(asset))
}

// Categories lists category names in file order.
func (p *Palette) Categories() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]string, len(p.categories))
	for i, c := range p.categories {
		out[i] = c.Name
	}
	return out
}

// Category returns the listed assets of the category whose name or slug is
// name. AllCategory or "" returns everything.
func (p *Palette) Category(name string) ([]string, bool) {
	if name == "" || strings.EqualFold(name, AllCategory) {
		return p.All(), true
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, c := range p.categories {
		if c.Name != name && c.Slug != name {
			continue
		}
		var out []string
		seen := map[string]bool{}
		for _, e := range c.Emojis {
			cps := CleanSlug(e.Slug)
			if len(cps) != 1 {
				continue
			}
			a := AssetPath(cps[0])
			if seen[a] || !p.index[a] {
				continue
			}
			seen[a] = true
			out = append(out, a)
		}
		return out, true
	}
	log.Printf("palette: category %q not found", name)
	return nil, false
}

// Terms expands a search term with every alias whose key contains it or is
// contained in it.
func (a Aliases) Terms(term string) []string {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	terms := []string{term}
	for key, extra := range a {
		k := strings.ToLower(key)
		if strings.Contains(k, term) || strings.Contains(term, k) {
			for _, e := range extra {
				terms = append(terms, strings.ToLower(e))
			}
		}
	}
	return terms
}

// Search returns the assets whose name, slug or path contains the term or
// one of its aliases. Without metadata only paths are matched.
func (p *Palette) Search(term string) []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	terms := p.aliases.Terms(term)
	if len(terms) == 0 {
		return append([]string(nil), p.assets...)
	}
	var out []string
	for _, a := range p.assets {
		fields := []string{strings.ToLower(a)}
		if m, ok := p.meta[p.chars[a]]; ok {
			fields = append(fields, strings.ToLower(m.Name), strings.ToLower(m.Slug))
		} else if len(p.meta) > 0 {
			continue
		}
		if matchAny(fields, terms) {
			out = append(out, a)
		}
	}
	return out
}

func matchAny(fields, terms []string) bool {
	for _, t := range terms {
		for _, f := range fields {
			if f != "" && strings.Contains(f, t) {
				return true
			}
		}
	}
	return false
}

// Filter applies a search term when present, otherwise the category.
func (p *Palette) Filter(category, term string) []string {
	if strings.TrimSpace(term) != "" {
		return p.Search(term)
	}
	out, _ := p.Category(category)
	return out
}
