package appstate

import "image"

const (
	toolbarHeight = 32
	tabHeight     = 24
	statusHeight  = 20
	sidebarWidth  = 236
	searchHeight  = 26
	cellSize      = 52
	cellGap       = 4
	thumbPx       = 40
	canvasMargin  = 16
	scrollStep    = 3 * (cellSize + cellGap)
)

// layout splits the window into its panels. The canvas document is drawn at
// 1:1 scale so document coordinates and screen pixels only differ by the
// canvas origin.
type layout struct {
	width, height int

	toolbar image.Rectangle
	tabs    image.Rectangle
	search  image.Rectangle
	palette image.Rectangle
	canvas  image.Rectangle
	status  image.Rectangle
}

func computeLayout(w, h int) layout {
	top := toolbarHeight + tabHeight
	side := min(sidebarWidth, w)
	return layout{
		width:   w,
		height:  h,
		toolbar: image.Rect(0, 0, w, toolbarHeight),
		tabs:    image.Rect(0, toolbarHeight, w, top),
		search:  image.Rect(0, top, side, top+searchHeight),
		palette: image.Rect(0, top+searchHeight, side, h),
		canvas:  image.Rect(side, top, w, h-statusHeight),
		status:  image.Rect(side, h-statusHeight, w, h),
	}
}

func (l layout) columns() int {
	return max(1, (l.palette.Dx()-cellGap)/(cellSize+cellGap))
}

// contentHeight is the scrollable height of n palette cells.
func (l layout) contentHeight(n int) int {
	rows := (n + l.columns() - 1) / l.columns()
	return cellGap + rows*(cellSize+cellGap)
}

// cellRect places palette cell i, shifted up by the scroll offset.
func (l layout) cellRect(i, scroll int) image.Rectangle {
	col, row := i%l.columns(), i/l.columns()
	x := l.palette.Min.X + cellGap + col*(cellSize+cellGap)
	y := l.palette.Min.Y + cellGap + row*(cellSize+cellGap) - scroll
	return image.Rect(x, y, x+cellSize, y+cellSize)
}

// cellAt returns the index of the palette cell under p, or -1.
func (l layout) cellAt(p image.Point, scroll, n int) int {
	if !p.In(l.palette) {
		return -1
	}
	x := p.X - l.palette.Min.X - cellGap
	y := p.Y - l.palette.Min.Y - cellGap + scroll
	if x < 0 || y < 0 {
		return -1
	}
	col, row := x/(cellSize+cellGap), y/(cellSize+cellGap)
	if col >= l.columns() || x%(cellSize+cellGap) >= cellSize || y%(cellSize+cellGap) >= cellSize {
		return -1
	}
	i := row*l.columns() + col
	if i >= n {
		return -1
	}
	return i
}

// maxScroll bounds the palette scroll offset for n cells.
func (l layout) maxScroll(n int) int {
	return max(0, l.contentHeight(n)-l.palette.Dy())
}

// viewport is the largest document that fits the canvas panel inside its
// margins.
func (l layout) viewport() (int, int) {
	return max(1, l.canvas.Dx()-2*canvasMargin), max(1, l.canvas.Dy()-2*canvasMargin)
}

// windowFor returns the window size that shows a cw×ch document in full,
// never smaller than the default window.
func windowFor(cw, ch int) (int, int) {
	w := max(defaultWidth, sidebarWidth+cw+2*canvasMargin)
	h := max(defaultHeight, toolbarHeight+tabHeight+statusHeight+ch+2*canvasMargin)
	return w, h
}

// canvasOrigin is the screen position of the document's top-left corner.
// Documents that fit are centred in the canvas panel.
func (l layout) canvasOrigin(cw, ch int) image.Point {
	x := l.canvas.Min.X + canvasMargin
	y := l.canvas.Min.Y + canvasMargin
	if free := l.canvas.Dx() - cw; free > 2*canvasMargin {
		x = l.canvas.Min.X + free/2
	}
	if free := l.canvas.Dy() - ch; free > 2*canvasMargin {
		y = l.canvas.Min.Y + free/2
	}
	return image.Pt(x, y)
}
