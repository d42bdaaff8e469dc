// Package core provides the small set of types shared by lessons and the
// terminal platform: a character screen, input actions and lesson state.
// It has no dependency on Bubble Tea so lessons stay pure and testable.
package core

// Rect is a rectangular screen region.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Inset shrinks the rectangle by n cells on every side.
// The result never has negative dimensions.
func (r Rect) Inset(n int) Rect {
	return Rect{
		X: r.X + n,
		Y: r.Y + n,
		W: max(0, r.W-2*n),
		H: max(0, r.H-2*n),
	}
}

// SplitX cuts the rectangle vertically at column offset w, returning the
// left and right parts. w is clamped to the rectangle width.
func (r Rect) SplitX(w int) (Rect, Rect) {
	w = Clamp(w, 0, r.W)
	return Rect{X: r.X, Y: r.Y, W: w, H: r.H},
		Rect{X: r.X + w, Y: r.Y, W: r.W - w, H: r.H}
}

// SplitY cuts the rectangle horizontally at row offset h.
func (r Rect) SplitY(h int) (Rect, Rect) {
	h = Clamp(h, 0, r.H)
	return Rect{X: r.X, Y: r.Y, W: r.W, H: h},
		Rect{X: r.X, Y: r.Y + h, W: r.W, H: r.H - h}
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
