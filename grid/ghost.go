package grid

import (
	"fyne.io/fyne/v2"
)

// GhostState is the observable state of a rubber-band gesture.
type GhostState struct {
	Active           bool
	AnchorX, AnchorY float32
	Rect             Rect
}

// GhostSelector tracks one rubber-band selection gesture. Each grid owns its own selector.
type GhostSelector[T comparable] struct {
	state GhostState
	moved bool

	// clickGuard swallows the click that follows a completed gesture.
	clickGuard bool
}

// NewGhostSelector returns an idle selector.
func NewGhostSelector[T comparable]() *GhostSelector[T] {
	return &GhostSelector[T]{}
}

// Begin starts a gesture anchored at p.
func (g *GhostSelector[T]) Begin(p fyne.Position) {
	g.state = GhostState{
		Active:  true,
		AnchorX: p.X,
		AnchorY: p.Y,
		Rect:    Rect{X: p.X, Y: p.Y},
	}
	g.moved = false
	g.clickGuard = false
}

// Move recomputes the rectangle from the anchor and p.
// It returns false and does nothing when no gesture is running.
func (g *GhostSelector[T]) Move(p fyne.Position) (Rect, bool) {
	if !g.state.Active {
		return Rect{}, false
	}

	g.state.Rect = RectBetween(fyne.NewPos(g.state.AnchorX, g.state.AnchorY), p)
	g.moved = true
	return g.state.Rect, true
}

// End finishes the gesture. A gesture that moved arms the click guard.
func (g *GhostSelector[T]) End() {
	if g.state.Active && g.moved {
		g.clickGuard = true
	}
	g.reset()
}

// Cancel drops the gesture without arming the click guard.
func (g *GhostSelector[T]) Cancel() {
	g.reset()
}

func (g *GhostSelector[T]) reset() {
	g.state = GhostState{}
	g.moved = false
}

// ConsumeClick reports whether a click should be swallowed because it closes a gesture.
// Only the first click after a gesture is swallowed.
func (g *GhostSelector[T]) ConsumeClick() bool {
	if g.clickGuard {
		g.clickGuard = false
		return true
	}
	return false
}

// Selecting reports whether a gesture is in progress.
func (g *GhostSelector[T]) Selecting() bool {
	return g.state.Active
}

func (g *GhostSelector[T]) State() GhostState {
	return g.state
}

// Collided returns the ids of bound elements intersecting the current rectangle.
func (g *GhostSelector[T]) Collided(elements []Element[T]) Selection[T] {
	res := NewSelection[T]()
	if !g.state.Active {
		return res
	}

	for _, el := range elements {
		if el == nil {
			continue
		}
		id, ok := el.ID()
		if !ok {
			continue
		}
		if Collides(g.state.Rect, el.Bounds()) {
			res[id] = struct{}{}
		}
	}
	return res
}
