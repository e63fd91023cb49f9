package appstate

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/stickerbook/internal/theme"
)

type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button represents an interactive UI element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [3]*image.RGBA{}
	}
}

// ToolButton is a toolbar command.
type ToolButton struct {
	label  string
	action string
	theme  *theme.Theme
	rect   image.Rectangle
	// onSelect is called when the button is activated.
	onSelect func(action string)
}

func (tb *ToolButton) Draw(dst *image.RGBA, state ButtonState) {
	c := tb.theme.ButtonBackground
	switch state {
	case StateHover:
		c = tb.theme.ButtonBackgroundHover
	case StatePressed:
		c = tb.theme.ButtonBackgroundPress
	}
	inner := tb.rect.Inset(1)
	draw.Draw(dst, tb.rect, &image.Uniform{tb.theme.ButtonBorder}, image.Point{}, draw.Src)
	draw.Draw(dst, inner, &image.Uniform{c}, image.Point{}, draw.Src)
	drawLabel(dst, tb.label, inner, tb.theme.ButtonText)
}

func (tb *ToolButton) Rect() image.Rectangle { return tb.rect }

func (tb *ToolButton) SetRect(r image.Rectangle) { tb.rect = r }

func (tb *ToolButton) Activate() {
	if tb.onSelect != nil {
		tb.onSelect(tb.action)
	}
}

// TabButton is one category tab.
type TabButton struct {
	label    string
	rect     image.Rectangle
	theme    *theme.Theme
	onSelect func()
}

func (tb *TabButton) Draw(dst *image.RGBA, state ButtonState) {
	bg, fg := tb.theme.TabBackground, tb.theme.TabText
	switch state {
	case StateHover:
		bg = tb.theme.TabHover
	case StatePressed:
		bg, fg = tb.theme.TabActive, tb.theme.TabTextActive
	}
	draw.Draw(dst, tb.rect, &image.Uniform{bg}, image.Point{}, draw.Src)
	drawLabel(dst, tb.label, tb.rect, fg)
}

func (tb *TabButton) Rect() image.Rectangle { return tb.rect }

func (tb *TabButton) SetRect(r image.Rectangle) { tb.rect = r }

func (tb *TabButton) Activate() {
	if tb.onSelect != nil {
		tb.onSelect()
	}
}

func textWidth(s string) int {
	return (&font.Drawer{Face: basicfont.Face7x13}).MeasureString(s).Ceil()
}

// drawLabel centres s vertically in r with a small left inset, clipping to
// r.
func drawLabel(dst *image.RGBA, s string, r image.Rectangle, c color.Color) {
	sub, ok := dst.SubImage(r).(*image.RGBA)
	if !ok {
		return
	}
	x := r.Min.X + 6
	if w := textWidth(s); w < r.Dx()-12 {
		x = r.Min.X + (r.Dx()-w)/2
	}
	d := &font.Drawer{Dst: sub, Src: image.NewUniform(c), Face: basicfont.Face7x13,
		Dot: fixed.P(x, r.Min.Y+(r.Dy()+10)/2)}
	d.DrawString(s)
}

func drawRect(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	u := &image.Uniform{col}
	draw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+thick), u, image.Point{}, draw.Over)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Max.Y-thick, rect.Max.X, rect.Max.Y), u, image.Point{}, draw.Over)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y+thick, rect.Min.X+thick, rect.Max.Y-thick), u, image.Point{}, draw.Over)
	draw.Draw(img, image.Rect(rect.Max.X-thick, rect.Min.Y+thick, rect.Max.X, rect.Max.Y-thick), u, image.Point{}, draw.Over)
}

// drawCheckerboard fills rect of dst with a checkerboard pattern of the given
// colors. size controls the checker square size.
func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.RGBA) {
	rect = rect.Intersect(dst.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			c := dark
			if ((x/size)+(y/size))%2 == 0 {
				c = light
			}
			dst.SetRGBA(x, y, c)
		}
	}
}
