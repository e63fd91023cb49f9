package appstate

import (
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/stickerbook/internal/capture"
	"github.com/example/stickerbook/internal/clipboard"
	"github.com/example/stickerbook/internal/dnd"
	"github.com/example/stickerbook/internal/editor"
	"github.com/example/stickerbook/internal/export"
	"github.com/example/stickerbook/internal/geom"
	"github.com/example/stickerbook/internal/gesture"
	"github.com/example/stickerbook/internal/notify"
	"github.com/example/stickerbook/internal/palette"
	"github.com/example/stickerbook/internal/theme"
)

type inputMode int

const (
	inputNone inputMode = iota
	inputSearch
	inputOpen
)

// hostIO performs the side effects of toolbar commands. Tests replace it.
type hostIO struct {
	writeImage func(image.Image) error
	readImage  func() (image.Image, error)
	readText   func() (string, error)
	screenshot func() (image.Image, error)
	open       func(name string) (io.ReadCloser, error)
	create     func(name string) (io.WriteCloser, error)
}

func systemIO() hostIO {
	return hostIO{
		writeImage: clipboard.WriteImage,
		readImage:  clipboard.ReadImage,
		readText:   clipboard.ReadText,
		screenshot: func() (image.Image, error) { return capture.Screenshot(capture.Options{}) },
		open:       func(name string) (io.ReadCloser, error) { return os.Open(name) },
		create:     func(name string) (io.WriteCloser, error) { return os.Create(name) },
	}
}

// paletteDrag is a drag that started on a palette cell.
type paletteDrag struct {
	asset    string
	transfer *dnd.Transfer
	pos      image.Point
	// left is set once the pointer leaves the source cell; releasing
	// without leaving counts as a click.
	left bool
}

// toolbar command names.
const (
	actOpen       = "open"
	actScreenshot = "screenshot"
	actPaste      = "paste"
	actCopy       = "copy"
	actExport     = "export"
	actDuplicate  = "duplicate"
	actDelete     = "delete"
	actClear      = "clear"
)

var toolbarActions = []struct{ label, action string }{
	{"Open", actOpen},
	{"Screenshot", actScreenshot},
	{"Paste", actPaste},
	{"Copy", actCopy},
	{"Export", actExport},
	{"Duplicate", actDuplicate},
	{"Delete", actDelete},
	{"Clear", actClear},
}

// session is the editor window's state. All methods run on the event loop.
type session struct {
	ctl      *editor.Controller
	view     *paletteView
	theme    *theme.Theme
	lay      layout
	io       hostIO
	notifier *notify.Notifier
	// post runs fn later on the event loop.
	post func(fn func())

	tools     []*CacheButton
	tabs      []*CacheButton
	tabNames  []string
	toolHover int
	tabHover  int

	snack        snackbar
	drag         *paletteDrag
	canvasActive bool

	input inputMode
	text  string

	output  string
	format  export.Format
	saveDir string
}

func newSession(ctl *editor.Controller, view *paletteView, th *theme.Theme) *session {
	if th == nil {
		th = theme.Default()
	}
	s := &session{
		ctl:       ctl,
		view:      view,
		theme:     th,
		io:        systemIO(),
		post:      func(fn func()) { fn() },
		toolHover: -1,
		tabHover:  -1,
		format:    export.PNG,
	}
	for _, a := range toolbarActions {
		s.tools = append(s.tools, &CacheButton{Button: &ToolButton{label: a.label, action: a.action, theme: th, onSelect: s.run}})
	}
	s.tabNames = append([]string{palette.AllCategory}, view.pal.Categories()...)
	for _, name := range s.tabNames {
		name := name
		label := name
		if name == palette.AllCategory {
			label = "All"
		}
		s.tabs = append(s.tabs, &CacheButton{Button: &TabButton{label: label, theme: th, onSelect: func() { s.view.setCategory(name) }}})
	}
	return s
}

// Notice shows msg in the snackbar.
func (s *session) Notice(msg string) { s.snack.Notice(msg) }

// resize lays the window out for w×h.
func (s *session) resize(w, h int) {
	s.lay = computeLayout(w, h)
	vw, vh := s.lay.viewport()
	s.ctl.SetViewport(float64(vw), float64(vh))
	s.refitEmpty()
	x := s.lay.toolbar.Min.X + 4
	for _, b := range s.tools {
		lbl := b.Button.(*ToolButton).label
		r := image.Rect(x, s.lay.toolbar.Min.Y+4, x+textWidth(lbl)+16, s.lay.toolbar.Max.Y-4)
		b.SetRect(r)
		x = r.Max.X + 4
	}
	x = s.lay.tabs.Min.X
	for _, b := range s.tabs {
		lbl := b.Button.(*TabButton).label
		r := image.Rect(x, s.lay.tabs.Min.Y, x+textWidth(lbl)+16, s.lay.tabs.Max.Y)
		b.SetRect(r)
		x = r.Max.X
	}
	s.view.scroll = min(s.view.scroll, s.lay.maxScroll(len(s.view.shown())))
	s.view.loadMore(s.lay)
}

// refitEmpty resizes a background that has no stickers yet to the current
// viewport. Compositions with stickers keep their size, and nothing is
// refitted while a newer background may still be decoding.
func (s *session) refitEmpty() {
	doc := s.ctl.Document()
	if !doc.HasBackground() || doc.Len() > 0 || s.ctl.Pending() > 0 {
		return
	}
	bg := doc.Background()
	w, h := doc.Size()
	if fw, fh := s.ctl.FitCanvas(bg.Bounds()); fw != w || fh != h {
		s.ctl.SetBackground(bg)
	}
}

// origin is the screen position of the document's top-left corner.
func (s *session) origin() image.Point {
	w, h := s.ctl.Document().Size()
	return s.lay.canvasOrigin(int(w), int(h))
}

func (s *session) toDoc(p image.Point) geom.Point {
	return geom.FromImage(p.Sub(s.origin()))
}

func (s *session) activeTab() int {
	for i, name := range s.tabNames {
		if name == s.view.category {
			return i
		}
	}
	return -1
}

func buttonAt(buttons []*CacheButton, p image.Point) int {
	for i, b := range buttons {
		if p.In(b.Rect()) {
			return i
		}
	}
	return -1
}

// mouse handles a pointer event and reports whether a repaint is needed.
func (s *session) mouse(e mouse.Event) bool {
	p := image.Pt(int(e.X), int(e.Y))

	if e.Button.IsWheel() {
		if e.Direction != mouse.DirStep || !p.In(s.lay.palette) {
			return false
		}
		dy := scrollStep
		if e.Button == mouse.ButtonWheelUp {
			dy = -dy
		}
		s.view.scrollBy(s.lay, dy)
		return true
	}

	if s.drag != nil {
		switch e.Direction {
		case mouse.DirNone:
			s.drag.pos = p
			if a, ok := s.view.assetAt(s.lay, p); !ok || a != s.drag.asset {
				s.drag.left = true
			}
			return true
		case mouse.DirRelease:
			s.finishDrag(p)
			return true
		}
		return false
	}

	if s.canvasActive {
		switch e.Direction {
		case mouse.DirNone:
			s.ctl.PointerMove(s.toDoc(p))
			return true
		case mouse.DirRelease:
			s.ctl.PointerUp(s.toDoc(p))
			s.canvasActive = false
			return true
		}
		return false
	}

	switch e.Direction {
	case mouse.DirNone:
		return s.hover(p)
	case mouse.DirPress:
		if e.Button != mouse.ButtonLeft {
			return false
		}
		s.ctl.SetModifier(e.Modifiers&key.ModControl != 0)
		return s.press(p)
	}
	return false
}

func (s *session) hover(p image.Point) bool {
	tool, tab := buttonAt(s.tools, p), buttonAt(s.tabs, p)
	cell := s.lay.cellAt(p, s.view.scroll, len(s.view.shown()))
	if tool == s.toolHover && tab == s.tabHover && cell == s.view.hover {
		return false
	}
	s.toolHover, s.tabHover, s.view.hover = tool, tab, cell
	return true
}

func (s *session) press(p image.Point) bool {
	switch {
	case p.In(s.lay.toolbar):
		if i := buttonAt(s.tools, p); i >= 0 {
			s.tools[i].Activate()
		}
	case p.In(s.lay.tabs):
		if i := buttonAt(s.tabs, p); i >= 0 {
			s.tabs[i].Activate()
			s.endInput()
		}
	case p.In(s.lay.search):
		s.input = inputSearch
		s.text = s.view.term
	case p.In(s.lay.palette):
		asset, ok := s.view.assetAt(s.lay, p)
		if !ok {
			return false
		}
		t, err := s.ctl.Bridge().DragStart(paletteKey(asset))
		if err != nil {
			log.Printf("appstate: drag %s: %v", asset, err)
			return false
		}
		s.drag = &paletteDrag{asset: asset, transfer: t, pos: p}
	case p.In(s.lay.canvas):
		s.canvasActive = true
		if h, ok := s.ctl.Overlay(s.origin()).HandleAt(p); ok {
			if err := s.ctl.HandleDown(h, s.toDoc(p)); err != nil {
				log.Printf("appstate: %v", err)
				s.canvasActive = false
			}
			return true
		}
		s.ctl.PointerDown(s.toDoc(p))
	default:
		return false
	}
	return true
}

// finishDrag completes a palette drag. Dropping on the canvas places the
// sticker centred on the pointer; releasing on the source cell adds it at the
// default position.
func (s *session) finishDrag(p image.Point) {
	d := s.drag
	s.drag = nil
	if p.In(s.lay.canvas) {
		if err := s.ctl.Drop(d.transfer, s.toDoc(p)); err != nil {
			log.Printf("appstate: drop %s: %v", d.asset, err)
		}
		return
	}
	s.ctl.Bridge().DragEnd()
	if d.left {
		return
	}
	if a, ok := s.view.assetAt(s.lay, p); ok && a == d.asset {
		if _, err := s.ctl.AddAsset(a); err != nil {
			log.Printf("appstate: add %s: %v", a, err)
		}
	}
}

// key handles a keyboard event and reports whether a repaint is needed.
func (s *session) key(e key.Event) bool {
	if e.Code == key.CodeLeftControl || e.Code == key.CodeRightControl {
		switch e.Direction {
		case key.DirPress:
			s.ctl.SetModifier(true)
		case key.DirRelease:
			s.ctl.SetModifier(false)
		}
		return true
	}
	if e.Direction == key.DirRelease {
		return false
	}
	if s.input != inputNone {
		return s.typeKey(e)
	}
	if e.Modifiers&key.ModControl != 0 {
		if name, ok := shortcuts[e.Code]; ok {
			s.run(name)
			return true
		}
		return false
	}
	switch e.Code {
	case key.CodeDeleteForward, key.CodeDeleteBackspace:
		s.run(actDelete)
		return true
	case key.CodeEscape:
		if s.snack.visible() {
			s.snack.dismiss()
			return true
		}
		return false
	}
	if e.Rune == '/' {
		s.input = inputSearch
		s.text = s.view.term
		return true
	}
	return false
}

var shortcuts = map[key.Code]string{
	key.CodeO: actOpen,
	key.CodeN: actScreenshot,
	key.CodeV: actPaste,
	key.CodeC: actCopy,
	key.CodeS: actExport,
	key.CodeD: actDuplicate,
}

// typeKey edits the active text field.
func (s *session) typeKey(e key.Event) bool {
	switch e.Code {
	case key.CodeEscape:
		s.endInput()
		return true
	case key.CodeReturnEnter:
		if s.input == inputOpen {
			s.openBackground(strings.TrimSpace(s.text))
		}
		s.endInput()
		return true
	case key.CodeDeleteBackspace:
		if r := []rune(s.text); len(r) > 0 {
			s.text = string(r[:len(r)-1])
		}
	default:
		if e.Rune < ' ' {
			return false
		}
		s.text += string(e.Rune)
	}
	if s.input == inputSearch {
		s.view.setTerm(s.text)
	}
	return true
}

func (s *session) endInput() {
	s.input = inputNone
	s.text = ""
}

// run executes a toolbar command.
func (s *session) run(action string) {
	switch action {
	case actOpen:
		s.input = inputOpen
		s.text = ""
	case actScreenshot:
		s.screenshot()
	case actPaste:
		s.paste()
	case actCopy:
		s.copyComposition()
	case actExport:
		s.export()
	case actDuplicate:
		s.ctl.DuplicateSelected()
	case actDelete:
		s.ctl.RemoveSelected()
	case actClear:
		s.ctl.RemoveAll()
	default:
		log.Printf("appstate: unknown action %q", action)
	}
}

func (s *session) openBackground(path string) {
	if path == "" {
		return
	}
	s.ctl.LoadBackground(filepath.Base(path), func() (io.ReadCloser, error) { return s.io.open(path) })
}

// screenshot captures off the loop since the portal may wait for the user.
func (s *session) screenshot() {
	s.Notice("capturing screen")
	shoot, post := s.io.screenshot, s.post
	go func() {
		img, err := shoot()
		post(func() {
			if err != nil {
				log.Printf("appstate: screenshot: %v", err)
				s.Notice("screenshot failed")
				return
			}
			s.ctl.SetBackground(img)
			s.snack.dismiss()
			s.notifier.Capture("screenshot", img)
		})
	}()
}

// paste adds a sticker when the clipboard holds an asset reference,
// otherwise uses a clipboard image as the background.
func (s *session) paste() {
	if txt, err := s.io.readText(); err == nil {
		if asset, ok := s.ctl.Bridge().ResolveText(txt); ok {
			if _, err := s.ctl.AddAsset(asset); err != nil {
				log.Printf("appstate: paste %s: %v", asset, err)
			}
			return
		}
	}
	img, err := s.io.readImage()
	if err != nil {
		log.Printf("appstate: paste: %v", err)
		s.Notice("clipboard has no image or sticker")
		return
	}
	s.ctl.SetBackground(img)
}

func (s *session) copyComposition() {
	img, err := s.ctl.Flatten()
	if err != nil {
		s.Notice(err.Error())
		return
	}
	if err := s.io.writeImage(img); err != nil {
		log.Printf("appstate: copy: %v", err)
		s.Notice("copy failed")
		return
	}
	s.notifier.Copy("composition")
	s.Notice("copied to clipboard")
}

func (s *session) exportPath() string {
	if s.output != "" {
		return s.output
	}
	return filepath.Join(s.saveDir, export.FileName(export.BaseName, s.format))
}

func (s *session) export() {
	if !s.ctl.Document().HasBackground() {
		s.Notice(editor.ErrNoBackground.Error())
		return
	}
	path := s.exportPath()
	if err := s.writeExport(path); err != nil {
		log.Printf("appstate: export: %v", err)
		s.Notice("export failed")
		return
	}
	s.notifier.Export(path)
	s.Notice("saved " + path)
}

func (s *session) writeExport(path string) error {
	f, err := s.io.create(path)
	if err != nil {
		return err
	}
	if err := s.ctl.Export(f, export.FormatForPath(path)); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func (s *session) status() string {
	switch s.input {
	case inputOpen:
		return "open image: " + s.text + "|"
	}
	doc := s.ctl.Document()
	parts := []string{s.ctl.Mode().String()}
	if c := cursorLabel(s.ctl.Cursor()); c != "" {
		parts = append(parts, "cursor "+c)
	}
	if doc.HasBackground() {
		w, h := doc.Size()
		parts = append(parts, fmt.Sprintf("%.0fx%.0f", w, h), fmt.Sprintf("%d stickers", doc.Len()))
	}
	if n := s.ctl.Pending(); n > 0 {
		parts = append(parts, fmt.Sprintf("loading %d", n))
	}
	if s.ctl.Mode() == gesture.Idle && doc.HasBackground() {
		parts = append(parts, "Ctrl+drag duplicates")
	}
	return strings.Join(parts, "  ")
}

// snapshot builds the paint state for the current frame.
func (s *session) snapshot() paintState {
	st := paintState{
		width:        s.lay.width,
		height:       s.lay.height,
		theme:        s.theme,
		lay:          s.lay,
		tools:        s.tools,
		toolHover:    s.toolHover,
		tabs:         s.tabs,
		tabActive:    s.activeTab(),
		tabHover:     s.tabHover,
		search:       s.view.term,
		searchActive: s.input == inputSearch,
		scene:        s.ctl.Scene(),
		opts:         s.ctl.RenderOptions(),
		origin:       s.origin(),
		overlay:      s.ctl.Overlay(s.origin()),
		status:       s.status(),
		message:      s.snack.text(),
	}
	if st.searchActive {
		st.search = s.text
	}
	for i, asset := range s.view.shown() {
		st.cells = append(st.cells, cellState{
			rect:  s.lay.cellRect(i, s.view.scroll),
			thumb: s.view.thumbs[asset],
			label: s.view.pal.Name(asset),
			hover: i == s.view.hover,
		})
	}
	if s.drag != nil && s.drag.left {
		st.ghost = s.view.thumbs[s.drag.asset]
		st.ghostAt = s.drag.pos
	}
	return st
}
