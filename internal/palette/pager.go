package palette

const (
	// BatchSize is how many palette items are revealed at a time.
	BatchSize = 12
	// LoadMoreThreshold is the distance in pixels from the bottom of the
	// palette at which the next batch is revealed.
	LoadMoreThreshold = 100
)

// Pager reveals a filtered list in batches.
type Pager struct {
	items []string
	shown int
	size  int
}

// NewPager pages items in batches of size (BatchSize when size <= 0).
func NewPager(items []string, size int) *Pager {
	if size <= 0 {
		size = BatchSize
	}
	return &Pager{items: items, size: size}
}

// Reset replaces the list and hides everything again.
func (p *Pager) Reset(items []string) {
	p.items = items
	p.shown = 0
}

// Next reveals and returns the next batch.
func (p *Pager) Next() []string {
	end := min(p.shown+p.size, len(p.items))
	batch := p.items[p.shown:end]
	p.shown = end
	return batch
}

// More reports whether items remain hidden.
func (p *Pager) More() bool { return p.shown < len(p.items) }

// Shown returns every revealed item.
func (p *Pager) Shown() []string { return p.items[:p.shown] }

// Total returns the full list length.
func (p *Pager) Total() int { return len(p.items) }

// Page returns the n-th batch counting from zero without changing what is
// revealed.
func (p *Pager) Page(n int) []string {
	start := n * p.size
	if n < 0 || start >= len(p.items) {
		return nil
	}
	return p.items[start:min(start+p.size, len(p.items))]
}

// Drop removes an item from the list, adjusting the revealed count.
func (p *Pager) Drop(item string) {
	for i, it := range p.items {
		if it != item {
			continue
		}
		p.items = append(p.items[:i:i], p.items[i+1:]...)
		if i < p.shown {
			p.shown--
		}
		return
	}
}

// NearEnd reports whether a scrolled view is close enough to the end of its
// content to reveal another batch.
func NearEnd(offset, viewHeight, contentHeight int) bool {
	return offset+viewHeight >= contentHeight-LoadMoreThreshold
}
