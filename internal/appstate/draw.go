package appstate

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"log"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/stickerbook/internal/gesture"
	"github.com/example/stickerbook/internal/overlay"
	"github.com/example/stickerbook/internal/render"
	"github.com/example/stickerbook/internal/theme"
)

const checkerSize = 8

var messageFace font.Face = basicfont.Face7x13

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Printf("appstate: parse font: %v", err)
		return
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 15, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Printf("appstate: font face: %v", err)
		return
	}
	messageFace = face
}

// cellState is one palette cell as it should be painted.
type cellState struct {
	rect  image.Rectangle
	thumb image.Image
	label string
	hover bool
}

// paintState is a snapshot of everything a frame shows. It is handed to the
// paint goroutine, so it must not share mutable state with the event loop.
type paintState struct {
	width, height int
	theme         *theme.Theme
	lay           layout

	tools     []*CacheButton
	toolHover int
	tabs      []*CacheButton
	tabActive int
	tabHover  int

	search       string
	searchActive bool

	cells []cellState

	scene   render.Scene
	opts    render.Options
	origin  image.Point
	overlay overlay.Overlay

	ghost   image.Image
	ghostAt image.Point

	status  string
	message string
}

func cursorLabel(c gesture.Cursor) string {
	switch c {
	case gesture.CursorCopy:
		return "copy"
	case gesture.CursorMove:
		return "move"
	case gesture.CursorResize:
		return "resize"
	}
	return ""
}

func fill(dst *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// drawText draws s left aligned at x, vertically centred in r.
func drawText(dst *image.RGBA, s string, r image.Rectangle, x int, c color.Color) {
	sub, ok := dst.SubImage(r).(*image.RGBA)
	if !ok {
		return
	}
	d := &font.Drawer{Dst: sub, Src: image.NewUniform(c), Face: basicfont.Face7x13,
		Dot: fixed.P(x, r.Min.Y+(r.Dy()+10)/2)}
	d.DrawString(s)
}

func buttonState(i, hover, active int) ButtonState {
	switch i {
	case active:
		return StatePressed
	case hover:
		return StateHover
	}
	return StateDefault
}

// composeFrame paints st into dst. It stops early once ctx is cancelled.
func composeFrame(ctx context.Context, dst *image.RGBA, st paintState) {
	th := st.theme
	if th == nil {
		th = theme.Default()
	}
	l := st.lay
	fill(dst, dst.Bounds(), th.Background)

	fill(dst, l.toolbar, th.ToolbarBackground)
	for i, b := range st.tools {
		b.Draw(dst, buttonState(i, st.toolHover, -1))
	}
	fill(dst, l.tabs, th.TabBackground)
	for i, b := range st.tabs {
		b.Draw(dst, buttonState(i, st.tabHover, st.tabActive))
	}
	if ctx.Err() != nil {
		return
	}

	drawSearch(dst, st, th)
	drawPalette(dst, st, th)
	if ctx.Err() != nil {
		return
	}

	drawCanvas(dst, st, th)
	if ctx.Err() != nil {
		return
	}

	if st.ghost != nil {
		b := st.ghost.Bounds()
		at := st.ghostAt.Sub(image.Pt(b.Dx()/2, b.Dy()/2))
		draw.DrawMask(dst, image.Rectangle{Min: at, Max: at.Add(b.Size())}, st.ghost, b.Min,
			image.NewUniform(color.Alpha{160}), image.Point{}, draw.Over)
	}

	fill(dst, l.status, th.ToolbarBackground)
	drawText(dst, st.status, l.status, l.status.Min.X+8, th.Foreground)

	if st.message != "" {
		drawSnackbar(dst, st.message, l.canvas, th)
	}
}

func drawSearch(dst *image.RGBA, st paintState, th *theme.Theme) {
	r := st.lay.search.Inset(3)
	if r.Empty() {
		return
	}
	fill(dst, st.lay.search, th.PaletteBackground)
	fill(dst, r, th.SearchBackground)
	text, col := st.search, th.Foreground
	switch {
	case st.searchActive:
		text += "|"
	case text == "":
		text, col = "/ search", th.TabText
	}
	drawText(dst, text, r, r.Min.X+6, col)
	if st.searchActive {
		drawRect(dst, r, th.Selection, 1)
	}
}

func drawPalette(dst *image.RGBA, st paintState, th *theme.Theme) {
	fill(dst, st.lay.palette, th.PaletteBackground)
	sub, ok := dst.SubImage(st.lay.palette).(*image.RGBA)
	if !ok {
		return
	}
	for _, c := range st.cells {
		if !c.rect.Overlaps(st.lay.palette) {
			continue
		}
		bg := th.PaletteCell
		if c.hover {
			bg = th.PaletteCellHover
		}
		fill(sub, c.rect, bg)
		if c.thumb == nil {
			drawLabel(sub, c.label, c.rect, th.Foreground)
			continue
		}
		b := c.thumb.Bounds()
		at := c.rect.Min.Add(image.Pt((c.rect.Dx()-b.Dx())/2, (c.rect.Dy()-b.Dy())/2))
		draw.Draw(sub, image.Rectangle{Min: at, Max: at.Add(b.Size())}, c.thumb, b.Min, draw.Over)
	}
}

func drawCanvas(dst *image.RGBA, st paintState, th *theme.Theme) {
	l := st.lay
	fill(dst, l.canvas, th.CanvasBackground)
	if st.scene.Empty() {
		drawLabel(dst, "upload an image first: Ctrl+O open, Ctrl+N screenshot, Ctrl+V paste", l.canvas, th.Foreground)
		return
	}
	doc := image.Rect(0, 0, st.scene.Width, st.scene.Height).Add(st.origin).Intersect(l.canvas)
	if doc.Empty() {
		return
	}
	drawCheckerboard(dst, doc, checkerSize, th.CheckerLight, th.CheckerDark)
	opts := st.opts
	opts.Selection = th.Selection
	draw.Draw(dst, doc, render.Render(st.scene, opts), image.Point{}, draw.Over)

	if st.overlay.Visible {
		canvas, ok := dst.SubImage(l.canvas).(*image.RGBA)
		if !ok {
			return
		}
		fill(canvas, st.overlay.Handle, th.Handle)
		drawRect(canvas, st.overlay.Handle, th.Selection, 1)
	}
}

func drawSnackbar(dst *image.RGBA, msg string, area image.Rectangle, th *theme.Theme) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.SnackbarText), Face: messageFace}
	w := d.MeasureString(msg).Ceil()
	m := messageFace.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	x := area.Min.X + (area.Dx()-w)/2
	y := area.Max.Y - 24 - descent
	box := image.Rect(x-12, y-ascent-8, x+w+12, y+descent+8)
	draw.Draw(dst, box, image.NewUniform(th.SnackbarBackground), image.Point{}, draw.Over)
	d.Dot = fixed.P(x, y)
	d.DrawString(msg)
}

// drawFrame renders st into a fresh buffer and publishes it to w.
func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	composeFrame(ctx, b.RGBA(), st)
	if ctx.Err() != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
