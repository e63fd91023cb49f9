// Package geom holds the canvas-space geometry shared by the sticker editor:
// points, axis-aligned rectangles and the clamping rules that keep stickers
// on the canvas.
package geom

import (
	"image"
	"math"
)

// MinSize is the smallest width and height a resized sticker may have.
const MinSize = 30

// Point is a position in canvas pixel space with the origin at the top-left.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// FromImage converts an integer point.
func FromImage(p image.Point) Point {
	return Point{X: float64(p.X), Y: float64(p.Y)}
}

// Distance is the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	X, Y, W, H float64
}

// R is shorthand for Rect{x, y, w, h}.
func R(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// CenteredRect returns a w×h rectangle whose center is p.
func CenteredRect(p Point, w, h float64) Rect {
	return Rect{X: p.X - w/2, Y: p.Y - h/2, W: w, H: h}
}

// Contains reports whether p lies inside r. Both edges are inclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Expand grows r by n on every side. Negative n shrinks it.
func (r Rect) Expand(n float64) Rect {
	return Rect{X: r.X - n, Y: r.Y - n, W: r.W + 2*n, H: r.H + 2*n}
}

// Translate moves r by d.
func (r Rect) Translate(d Point) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Min returns the top-left corner.
func (r Rect) Min() Point {
	return Point{X: r.X, Y: r.Y}
}

// Max returns the bottom-right corner.
func (r Rect) Max() Point {
	return Point{X: r.X + r.W, Y: r.Y + r.H}
}

// Image rounds r to the nearest integer rectangle.
func (r Rect) Image() image.Rectangle {
	x0 := int(math.Round(r.X))
	y0 := int(math.Round(r.Y))
	x1 := int(math.Round(r.X + r.W))
	y1 := int(math.Round(r.Y + r.H))
	return image.Rect(x0, y0, x1, y1)
}

// clampAxis keeps v inside [0, extent-size]. A negative range yields 0.
func clampAxis(v, size, extent float64) float64 {
	hi := extent - size
	if hi < 0 {
		return 0
	}
	return math.Max(0, math.Min(v, hi))
}

// Clamp keeps r inside a cw×ch canvas by moving it. The size is never
// changed; when r is larger than the canvas along an axis it is pinned to 0
// on that axis.
func Clamp(r Rect, cw, ch float64) Rect {
	r.X = clampAxis(r.X, r.W, cw)
	r.Y = clampAxis(r.Y, r.H, ch)
	return r
}

// ResizeSquare grows (or shrinks) r by delta in both dimensions keeping it
// square, enforces MinSize, caps the side at the canvas width and finally
// clamps the position.
func ResizeSquare(r Rect, delta, cw, ch float64) Rect {
	side := math.Max(r.W, r.H) + delta
	if cw > 0 && side > cw {
		side = cw
	}
	if side < MinSize {
		side = MinSize
	}
	r.W, r.H = side, side
	return Clamp(r, cw, ch)
}

// DominantDelta returns the component of d with the larger magnitude. Ties
// favour the vertical axis.
func DominantDelta(d Point) float64 {
	if math.Abs(d.X) > math.Abs(d.Y) {
		return d.X
	}
	return d.Y
}

// FitSize shrinks w×h to fit inside maxW×maxH keeping the aspect ratio.
// Sizes that already fit are returned unchanged. A non-positive bound
// leaves that dimension unconstrained.
func FitSize(w, h, maxW, maxH float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	scale := math.Inf(1)
	if maxW > 0 {
		scale = maxW / w
	}
	if maxH > 0 {
		scale = math.Min(scale, maxH/h)
	}
	if scale >= 1 {
		return w, h
	}
	return math.Floor(w * scale), math.Floor(h * scale)
}
