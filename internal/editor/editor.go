// Package editor owns a sticker composition and applies user input to it.
//
// A Controller is driven from one timeline: the window's event loop or, in
// headless use, the goroutine draining its Queue. Asset and background
// decoding run on their own goroutines and hand their results back through
// the Dispatcher.
package editor

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log"

	"github.com/example/stickerbook/internal/dnd"
	"github.com/example/stickerbook/internal/document"
	"github.com/example/stickerbook/internal/export"
	"github.com/example/stickerbook/internal/geom"
	"github.com/example/stickerbook/internal/gesture"
	"github.com/example/stickerbook/internal/overlay"
	"github.com/example/stickerbook/internal/render"
	"github.com/example/stickerbook/internal/sticker"
)

// ErrNoBackground is returned by operations that need an uploaded
// background. Its text is the notice shown to the user.
var ErrNoBackground = errors.New("upload an image first")

const (
	// DefaultStickerSize is the edge length of a newly placed sticker.
	DefaultStickerSize = 80
	// ClickStep offsets each click-added sticker from the previous one.
	ClickStep = 10
	// backgroundRasterSize is used when a background is an SVG.
	backgroundRasterSize = 1024
)

// DefaultOrigin is where the first click-added sticker goes.
var DefaultOrigin = geom.Pt(50, 50)

// Loader decodes sticker assets.
type Loader interface {
	Load(ctx context.Context, asset string) (image.Image, error)
}

// cache is implemented by loaders that can answer without blocking.
type cache interface {
	Cached(asset string) (image.Image, bool)
}

// Notifier shows a short message to the user.
type Notifier interface {
	Notice(msg string)
}

// NoticeFunc adapts a function to Notifier.
type NoticeFunc func(msg string)

// Notice calls f(msg).
func (f NoticeFunc) Notice(msg string) { f(msg) }

// Controller is the single owner of the document and gesture state.
type Controller struct {
	ctx      context.Context
	doc      *document.Document
	gesture  *gesture.Machine
	bridge   *dnd.Bridge
	loader   Loader
	notifier Notifier
	dispatch Dispatcher
	queue    *Queue

	stickerSize float64
	maxW, maxH  float64
	viewW       float64
	viewH       float64
	renderOpts  render.Options
	onChange    func()

	// inflight counts decodes whose completion has not yet run.
	inflight int
	// bgSeq discards background decodes superseded by a newer upload.
	bgSeq int
}

// Option configures a Controller.
type Option func(*Controller)

// WithLoader sets the sticker loader.
func WithLoader(l Loader) Option {
	return func(c *Controller) { c.loader = l }
}

// WithNotifier sets where user notices go.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// WithDispatcher sets how decode completions reach the owning timeline.
func WithDispatcher(d Dispatcher) Option {
	return func(c *Controller) { c.dispatch = d }
}

// WithBridge shares a drag-and-drop bridge with the palette.
func WithBridge(b *dnd.Bridge) Option {
	return func(c *Controller) { c.bridge = b }
}

// WithStickerSize sets the edge length of new stickers.
func WithStickerSize(px float64) Option {
	return func(c *Controller) {
		if px > 0 {
			c.stickerSize = px
		}
	}
}

// WithCanvasLimit fits uploaded backgrounds inside w×h. Zero means no limit.
func WithCanvasLimit(w, h float64) Option {
	return func(c *Controller) { c.maxW, c.maxH = w, h }
}

// WithRenderOptions sets the on-screen drawing options.
func WithRenderOptions(o render.Options) Option {
	return func(c *Controller) { c.renderOpts = o }
}

// WithOnChange registers a callback run after every document change.
func WithOnChange(fn func()) Option {
	return func(c *Controller) { c.onChange = fn }
}

// WithContext sets the context passed to loaders.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) { c.ctx = ctx }
}

// New creates a Controller. Without WithDispatcher a Queue is used and must
// be drained with Settle or Queue().Drain.
func New(opts ...Option) *Controller {
	c := &Controller{
		ctx:         context.Background(),
		doc:         document.New(),
		stickerSize: DefaultStickerSize,
		renderOpts:  render.DefaultOptions(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.bridge == nil {
		c.bridge = dnd.NewBridge()
	}
	if c.dispatch == nil {
		c.dispatch = NewQueue()
	}
	if q, ok := c.dispatch.(*Queue); ok {
		c.queue = q
	}
	c.gesture = gesture.New(c.doc)
	c.doc.OnChange = func() {
		if c.onChange != nil {
			c.onChange()
		}
	}
	return c
}

// Document exposes the document for read access.
func (c *Controller) Document() *document.Document { return c.doc }

// Bridge returns the drag-and-drop bridge palette items register with.
func (c *Controller) Bridge() *dnd.Bridge { return c.bridge }

// Queue returns the built-in dispatcher, or nil when another was supplied.
func (c *Controller) Queue() *Queue { return c.queue }

// Pending reports how many decodes are still in flight.
func (c *Controller) Pending() int { return c.inflight }

func (c *Controller) notice(msg string) {
	if c.notifier != nil {
		c.notifier.Notice(msg)
		return
	}
	log.Printf("notice: %s", msg)
}

func (c *Controller) requireBackground() error {
	if c.doc.HasBackground() {
		return nil
	}
	c.notice(ErrNoBackground.Error())
	return ErrNoBackground
}

// AddAsset places asset at the default position: DefaultOrigin for the
// first sticker, otherwise just below and right of the top-most one.
func (c *Controller) AddAsset(asset string) (document.ID, error) {
	if err := c.requireBackground(); err != nil {
		return document.None, err
	}
	pos := DefaultOrigin
	if last, ok := c.doc.Last(); ok {
		pos = last.Rect.Min().Add(geom.Pt(ClickStep, ClickStep))
	}
	return c.place(asset, geom.R(pos.X, pos.Y, c.stickerSize, c.stickerSize)), nil
}

// AddAssetAt places asset centred on p.
func (c *Controller) AddAssetAt(asset string, p geom.Point) (document.ID, error) {
	if err := c.requireBackground(); err != nil {
		return document.None, err
	}
	return c.place(asset, geom.CenteredRect(p, c.stickerSize, c.stickerSize)), nil
}

// Drop handles a drop on the canvas at p. A palette asset becomes a sticker
// centred on p; a raw image file becomes the new background; anything else
// is ignored.
func (c *Controller) Drop(t *dnd.Transfer, p geom.Point) error {
	t.PreventDefault()
	if asset, ok := c.bridge.Resolve(t); ok {
		_, err := c.AddAssetAt(asset, p)
		return err
	}
	if f, ok := t.ImageFile(); ok {
		c.LoadBackground(f.Name, f.Open)
		return nil
	}
	log.Printf("editor: ignoring drop without a sticker or image file")
	return nil
}

func (c *Controller) place(asset string, r geom.Rect) document.ID {
	var img image.Image
	if ch, ok := c.loader.(cache); ok {
		img, _ = ch.Cached(asset)
	}
	id := c.doc.Add(asset, img, r)
	if img == nil {
		c.startLoad(id, asset)
	}
	return id
}

func (c *Controller) startLoad(id document.ID, asset string) {
	if c.loader == nil {
		log.Printf("editor: no loader for %s", asset)
		return
	}
	c.inflight++
	ctx := c.ctx
	go func() {
		img, err := c.loader.Load(ctx, asset)
		c.dispatch.Dispatch(func() {
			c.inflight--
			c.finishLoad(id, asset, img, err)
		})
	}()
}

// finishLoad runs on the owning timeline. The placement may have been
// deleted, or the whole composition reset, while the decode ran.
func (c *Controller) finishLoad(id document.ID, asset string, img image.Image, err error) {
	if err != nil {
		log.Printf("editor: load %s: %v", asset, err)
		for _, p := range c.doc.Placements() {
			if p.Asset == asset && p.Image == nil {
				c.doc.Remove(p.ID)
			}
		}
		return
	}
	if _, ok := c.doc.Placement(id); !ok {
		log.Printf("editor: %s decoded after its placement was removed", asset)
	}
	c.doc.FillAsset(asset, img)
}

// SetViewport bounds the canvas for backgrounds installed afterwards, on top
// of the configured limit. Hosts pass the visible canvas area so the whole
// composition stays on screen. Zero means no bound.
func (c *Controller) SetViewport(w, h float64) { c.viewW, c.viewH = w, h }

// FitCanvas returns the canvas size a background of size b would get. Large
// images shrink to the configured limit and the viewport; small ones keep
// their native size.
func (c *Controller) FitCanvas(b image.Rectangle) (float64, float64) {
	w, h := geom.FitSize(float64(b.Dx()), float64(b.Dy()), c.maxW, c.maxH)
	return geom.FitSize(w, h, c.viewW, c.viewH)
}

// SetBackground installs img, sizing the canvas with FitCanvas, and resets
// the composition.
func (c *Controller) SetBackground(img image.Image) {
	w, h := c.FitCanvas(img.Bounds())
	c.bgSeq++
	c.gesture.Cancel()
	c.doc.SetBackground(img, w, h)
}

// LoadBackground decodes an uploaded background off the timeline and
// installs it when done. Later uploads supersede earlier ones still
// decoding.
func (c *Controller) LoadBackground(name string, open func() (io.ReadCloser, error)) {
	c.bgSeq++
	seq := c.bgSeq
	c.inflight++
	go func() {
		img, err := decodeBackground(name, open)
		c.dispatch.Dispatch(func() {
			c.inflight--
			if seq != c.bgSeq {
				return
			}
			if err != nil {
				log.Printf("editor: background %s: %v", name, err)
				return
			}
			c.SetBackground(img)
		})
	}()
}

func decodeBackground(name string, open func() (io.ReadCloser, error)) (image.Image, error) {
	if open == nil {
		return nil, fmt.Errorf("no data")
	}
	rc, err := open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return sticker.Decode(name, rc, backgroundRasterSize)
}

// PointerDown forwards a canvas press.
func (c *Controller) PointerDown(p geom.Point) { c.gesture.PointerDown(p) }

// PointerMove forwards pointer motion.
func (c *Controller) PointerMove(p geom.Point) { c.gesture.PointerMove(p) }

// PointerUp forwards a release.
func (c *Controller) PointerUp(p geom.Point) { c.gesture.PointerUp(p) }

// HandleDown starts a resize from an overlay handle.
func (c *Controller) HandleDown(h gesture.Handle, p geom.Point) error {
	return c.gesture.HandleDown(h, p)
}

// SetModifier records the duplicate modifier key state.
func (c *Controller) SetModifier(held bool) { c.gesture.SetModifier(held) }

// Mode reports the current gesture mode.
func (c *Controller) Mode() gesture.Mode { return c.gesture.Mode() }

// Cursor returns the cursor the host should show.
func (c *Controller) Cursor() gesture.Cursor { return c.gesture.Cursor() }

// Delete removes the selected sticker.
func (c *Controller) Delete() bool { return c.gesture.Delete() }

// RemoveSelected is Delete for callers outside a pointer gesture, such as
// the toolbar and scripts.
func (c *Controller) RemoveSelected() bool { return c.Delete() }

// DuplicateSelected clones the selection with the modifier-duplicate offset.
func (c *Controller) DuplicateSelected() bool {
	_, ok := c.doc.DuplicateSelected(gesture.DuplicateOffset)
	return ok
}

// RemoveAll deletes every sticker, keeping the background.
func (c *Controller) RemoveAll() {
	c.gesture.Cancel()
	c.doc.Clear()
}

// Scene snapshots the document for drawing.
func (c *Controller) Scene() render.Scene {
	w, h := c.doc.Size()
	ps := c.doc.Placements()
	s := render.Scene{
		Background: c.doc.Background(),
		Width:      int(w),
		Height:     int(h),
		Items:      make([]render.Item, len(ps)),
		Selected:   -1,
	}
	sel := c.doc.SelectedID()
	for i, p := range ps {
		s.Items[i] = render.Item{Image: p.Image, Rect: p.Rect}
		if p.ID == sel {
			s.Selected = i
		}
	}
	return s
}

// RenderOptions returns the on-screen drawing options.
func (c *Controller) RenderOptions() render.Options { return c.renderOpts }

// Overlay positions the selection overlay for a canvas drawn at origin.
func (c *Controller) Overlay(origin image.Point) overlay.Overlay {
	sel, ok := c.doc.Selected()
	if !ok {
		return overlay.Sync(nil, origin)
	}
	return overlay.Sync(&sel.Rect, origin)
}

// Flatten renders the composition without editor decoration.
func (c *Controller) Flatten() (*image.RGBA, error) {
	if !c.doc.HasBackground() {
		return nil, ErrNoBackground
	}
	opts := render.ExportOptions()
	opts.Shadow = c.renderOpts.Shadow
	return render.Render(c.Scene(), opts), nil
}

// Export writes the flattened composition in format f.
func (c *Controller) Export(w io.Writer, f export.Format) error {
	img, err := c.Flatten()
	if err != nil {
		return err
	}
	return export.Write(w, img, f)
}

// Settle runs queued completions until no decode is in flight. It only
// applies when the built-in Queue is the dispatcher.
func (c *Controller) Settle(ctx context.Context) error {
	if c.queue == nil {
		return nil
	}
	for c.inflight > 0 {
		if err := c.queue.RunNext(ctx); err != nil {
			return err
		}
	}
	c.queue.Drain()
	return nil
}
