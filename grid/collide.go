package grid

import (
	"fyne.io/fyne/v2"
)

// Rect is an axis-aligned rectangle in absolute canvas coordinates.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// NewRect builds a Rect from a position and size.
func NewRect(pos fyne.Position, size fyne.Size) Rect {
	return Rect{X: pos.X, Y: pos.Y, Width: size.Width, Height: size.Height}
}

// RectBetween returns the rectangle spanned by two points, whatever the drag direction.
func RectBetween(a, b fyne.Position) Rect {
	tl := fyne.NewPos(min32(a.X, b.X), min32(a.Y, b.Y))
	br := fyne.NewPos(max32(a.X, b.X), max32(a.Y, b.Y))
	return Rect{X: tl.X, Y: tl.Y, Width: br.X - tl.X, Height: br.Y - tl.Y}
}

func (r Rect) Right() float32  { return r.X + r.Width }
func (r Rect) Bottom() float32 { return r.Y + r.Height }

// Position returns the top-left corner.
func (r Rect) Position() fyne.Position { return fyne.NewPos(r.X, r.Y) }

// Size returns the rectangle dimensions.
func (r Rect) Size() fyne.Size { return fyne.NewSize(r.Width, r.Height) }

// Collides reports whether a and b overlap. Touching edges count as a collision.
func Collides(a, b Rect) bool {
	return !(a.Bottom() < b.Y ||
		a.Y > b.Bottom() ||
		a.Right() < b.X ||
		a.X > b.Right())
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func clamp32(v, lo, hi float32) float32 {
	return min32(max32(v, lo), hi)
}
