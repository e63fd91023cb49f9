// Package appstate runs the interactive sticker editor window.
package appstate

import (
	"context"
	"image"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/stickerbook/internal/dnd"
	"github.com/example/stickerbook/internal/editor"
	"github.com/example/stickerbook/internal/export"
	"github.com/example/stickerbook/internal/notify"
	"github.com/example/stickerbook/internal/palette"
	"github.com/example/stickerbook/internal/sticker"
	"github.com/example/stickerbook/internal/theme"
)

const (
	defaultWidth  = 1200
	defaultHeight = 800

	maxWindowWidth  = 1800
	maxWindowHeight = 1200

	// frameDropThreshold bounds how many in-progress frames a new paint may
	// cancel in a row, so continuous input still shows progress.
	frameDropThreshold = 3
)

// dispatchEvent carries a function to run on the event loop.
type dispatchEvent struct{ fn func() }

// AppState holds application configuration for the UI.
type AppState struct {
	Palette    *palette.Palette
	Library    *sticker.Library
	Theme      *theme.Theme
	Background image.Image
	Output     string
	Format     export.Format
	SaveDir    string
	BatchSize  int
	// WatchDir is the asset directory watched for added or removed stickers.
	WatchDir string

	notifier *notify.Notifier
	ctlOpts  []editor.Option
	onClose  func()

	sendMu  sync.Mutex
	send    func(any)
	pending []func()
	closed  bool
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithPalette sets the stickers offered in the sidebar.
func WithPalette(p *palette.Palette) Option { return func(a *AppState) { a.Palette = p } }

// WithLibrary sets the loader used for thumbnails and placed stickers.
func WithLibrary(l *sticker.Library) Option { return func(a *AppState) { a.Library = l } }

// WithTheme sets the colors used for the window.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.Theme = t } }

// WithBackground opens the editor with img as the background.
func WithBackground(img image.Image) Option { return func(a *AppState) { a.Background = img } }

// WithOutput sets where Export writes. Empty means SaveDir.
func WithOutput(out string) Option { return func(a *AppState) { a.Output = out } }

// WithFormat sets the export format used when no output path is given.
func WithFormat(f export.Format) Option { return func(a *AppState) { a.Format = f } }

// WithSaveDir sets the directory for exports without an output path.
func WithSaveDir(dir string) Option { return func(a *AppState) { a.SaveDir = dir } }

// WithBatchSize sets how many palette cells are revealed at a time.
func WithBatchSize(n int) Option { return func(a *AppState) { a.BatchSize = n } }

// WithWatchDir enables live reloading of the asset directory.
func WithWatchDir(dir string) Option { return func(a *AppState) { a.WatchDir = dir } }

// WithNotifier sets the desktop notifier.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.notifier = n } }

// WithEditorOptions passes extra options to the controller.
func WithEditorOptions(opts ...editor.Option) Option {
	return func(a *AppState) { a.ctlOpts = append(a.ctlOpts, opts...) }
}

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with the given options.
func New(opts ...Option) *AppState {
	a := &AppState{Format: export.PNG, BatchSize: palette.BatchSize}
	for _, o := range opts {
		o(a)
	}
	if a.Palette == nil {
		a.Palette = palette.New(nil, nil, nil, nil)
	}
	if a.Theme == nil {
		a.Theme = theme.Default()
	}
	return a
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

// post queues fn for the event loop. Calls made before the window exists
// are held until it opens; calls after it closed are dropped.
func (a *AppState) post(fn func()) {
	a.sendMu.Lock()
	defer a.sendMu.Unlock()
	if a.closed {
		return
	}
	if a.send == nil {
		a.pending = append(a.pending, fn)
		return
	}
	a.send(dispatchEvent{fn})
}

func (a *AppState) attach(send func(any)) {
	a.sendMu.Lock()
	defer a.sendMu.Unlock()
	a.send = send
	for _, fn := range a.pending {
		send(dispatchEvent{fn})
	}
	a.pending = nil
}

func (a *AppState) detach() {
	a.sendMu.Lock()
	a.send = nil
	a.pending = nil
	a.closed = true
	a.sendMu.Unlock()
}

// newSession wires the controller, palette view and session together.
func (a *AppState) newSession(ctx context.Context) *session {
	bridge := dnd.NewBridge()
	var s *session
	opts := []editor.Option{
		editor.WithContext(ctx),
		editor.WithBridge(bridge),
		editor.WithDispatcher(editor.DispatchFunc(a.post)),
		editor.WithNotifier(editor.NoticeFunc(func(msg string) { s.Notice(msg) })),
	}
	if a.Library != nil {
		opts = append(opts, editor.WithLoader(a.Library))
	}
	ctl := editor.New(append(opts, a.ctlOpts...)...)
	var loader thumbLoader
	if a.Library != nil {
		loader = a.Library
	}
	view := newPaletteView(a.Palette, bridge, loader, a.BatchSize)
	s = newSession(ctl, view, a.Theme)
	s.notifier = a.notifier
	s.output = a.Output
	s.format = a.Format
	s.saveDir = a.SaveDir
	s.post = a.post
	return s
}

func (a *AppState) Main(scr screen.Screen) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := a.newSession(ctx)
	width, height := defaultWidth, defaultHeight
	if a.Background != nil {
		cw, ch := s.ctl.FitCanvas(a.Background.Bounds())
		width, height = windowFor(int(cw), int(ch))
		width, height = min(width, maxWindowWidth), min(height, maxWindowHeight)
	}
	s.resize(width, height)
	if a.Background != nil {
		s.ctl.SetBackground(a.Background)
	}

	w, err := scr.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "Stickerbook"})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer func() {
		if a.onClose != nil {
			a.onClose()
		}
	}()

	a.attach(w.Send)
	defer a.detach()

	if a.WatchDir != "" {
		go func() {
			err := palette.Watch(ctx, a.WatchDir, func(c palette.Change) {
				a.post(func() {
					s.view.apply(c)
					if a.Library != nil {
						a.Library.Forget(c.Asset)
					}
				})
			})
			if err != nil && ctx.Err() == nil {
				log.Printf("appstate: watch %s: %v", a.WatchDir, err)
			}
		}()
	}

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	go func() {
		for st := range paintCh {
			fctx, fcancel := context.WithCancel(ctx)
			paintMu.Lock()
			paintCancel = fcancel
			paintMu.Unlock()
			drawFrame(fctx, scr, w, st)
			paintMu.Lock()
			paintCancel = nil
			if fctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			fcancel()
		}
	}()
	defer close(paintCh)

	repaint := func() {
		s.view.loadThumbs(ctx, a.post)
		w.Send(paint.Event{})
	}
	// Expire the snackbar without waiting for input.
	var expiry *time.Timer
	lastMessage := ""
	scheduleExpiry := func() {
		if msg := s.snack.text(); msg != "" && msg != lastMessage {
			if expiry != nil {
				expiry.Stop()
			}
			expiry = time.AfterFunc(noticeDuration, func() { w.Send(paint.Event{}) })
		}
		lastMessage = s.snack.text()
	}

	repaint()
	for {
		switch e := w.NextEvent().(type) {
		case dispatchEvent:
			e.fn()
			repaint()
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return
			}
		case size.Event:
			if e.WidthPx > 0 && e.HeightPx > 0 {
				s.resize(e.WidthPx, e.HeightPx)
			}
			repaint()
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			scheduleExpiry()
			st := s.snapshot()
			select {
			case <-paintCh:
			default:
			}
			paintCh <- st
		case mouse.Event:
			if s.mouse(e) {
				repaint()
			}
		case key.Event:
			if s.key(e) {
				repaint()
			}
		case error:
			log.Printf("appstate: %v", e)
		}
	}
}
