package grid

import (
	"fyne.io/fyne/v2"
)

// Element is a rendered cell the container binds ids to.
type Element[T comparable] interface {
	// Bind assigns id to the cell. ok is false for cells past the end of the id list.
	Bind(id T, ok bool)
	ID() (T, bool)
	SetSelected(selected bool)
	// Bounds is the cell rectangle in absolute canvas coordinates.
	Bounds() Rect
}

// Container owns the ordered id list and the current selection, and keeps
// element visuals in step with them.
type Container[T comparable] struct {
	allIDs   []T
	selected Selection[T]

	elements func() []Element[T]
	ghost    *GhostSelector[T]
	clicks   clickChain
	drag     dragState[T]

	onChanged func(selected []T)
}

// NewContainer returns a container over allIDs. elements lists the cells in render order.
func NewContainer[T comparable](allIDs []T, elements func() []Element[T]) *Container[T] {
	c := &Container[T]{
		selected: NewSelection[T](),
		elements: elements,
		ghost:    NewGhostSelector[T](),
	}
	c.SetAllIDs(allIDs)
	return c
}

// SetOnChanged sets the callback run after every selection replacement.
func (c *Container[T]) SetOnChanged(fn func(selected []T)) {
	c.onChanged = fn
}

func (c *Container[T]) AllIDs() []T {
	return append([]T(nil), c.allIDs...)
}

// SetAllIDs replaces the id list, rebinds every element by position and drops
// selected ids that are no longer listed.
func (c *Container[T]) SetAllIDs(ids []T) {
	c.allIDs = append([]T(nil), ids...)

	listed := NewSelection(c.allIDs...)
	kept := NewSelection[T]()
	for id := range c.selected {
		if listed.Has(id) {
			kept[id] = struct{}{}
		}
	}

	c.bind()
	c.replace(kept, !kept.Equal(c.selected))
}

// Selected returns a copy of the current selection.
func (c *Container[T]) Selected() Selection[T] {
	return c.selected.Clone()
}

// SelectedIDs returns the selection in id list order.
func (c *Container[T]) SelectedIDs() []T {
	return c.selected.Ordered(c.allIDs)
}

// SetSelected replaces the selection.
func (c *Container[T]) SetSelected(sel Selection[T]) {
	c.replace(sel.Clone(), true)
}

// UpdateSelection applies action through the selection reducer.
func (c *Container[T]) UpdateSelection(action Action, target *T) error {
	next, err := UpdateSelection(action, target, c.allIDs, c.selected)
	if err != nil {
		return err
	}
	c.replace(next, true)
	return nil
}

// Refresh rebinds elements and reapplies selection visuals, for use after cells
// were added or removed or the data behind an id changed.
func (c *Container[T]) Refresh() {
	c.bind()
	c.apply()
}

// ItemMouseDown handles a primary press on el.
func (c *Container[T]) ItemMouseDown(el Element[T], mods fyne.KeyModifier) error {
	id, ok := el.ID()
	if !ok {
		return nil
	}
	action, ok := c.clicks.mouseDown(c.selected.Has(id), mods)
	if !ok {
		return nil
	}
	return c.UpdateSelection(action, &id)
}

// ItemClick handles the click that ends a press on el.
func (c *Container[T]) ItemClick(el Element[T], mods fyne.KeyModifier) error {
	id, ok := el.ID()
	if !ok {
		return nil
	}
	action, ok := c.clicks.click(c.selected.Has(id), mods)
	if !ok {
		return nil
	}
	return c.UpdateSelection(action, &id)
}

// ItemDragStart begins dragging the current selection and returns the dragged ids.
// started is false when a drag was already running.
func (c *Container[T]) ItemDragStart(el Element[T]) (ids []T, started bool) {
	if c.drag.dragging {
		return c.drag.ids, false
	}
	ids = c.SelectedIDs()
	if id, ok := el.ID(); ok && !c.selected.Has(id) {
		ids = []T{id}
	}
	c.drag.start(ids)
	return ids, true
}

// ItemDragEnd finishes an item drag.
func (c *Container[T]) ItemDragEnd() ([]T, bool) {
	return c.drag.end()
}

// Dragging reports whether items are being dragged.
func (c *Container[T]) Dragging() bool {
	return c.drag.dragging
}

// BeginGhost starts a rubber-band gesture on the background.
func (c *Container[T]) BeginGhost(p fyne.Position) {
	c.ghost.Begin(p)
}

// MoveGhost updates the rubber band and replaces the selection with every
// item it intersects.
func (c *Container[T]) MoveGhost(p fyne.Position) (Rect, bool) {
	r, ok := c.ghost.Move(p)
	if !ok {
		return r, false
	}
	hit := c.ghost.Collided(c.elements())
	c.replace(hit, !hit.Equal(c.selected))
	return r, true
}

// EndGhost finishes the rubber-band gesture.
func (c *Container[T]) EndGhost() {
	c.ghost.End()
}

// BackgroundClick handles a click outside any item. The click closing a
// rubber-band gesture is swallowed; any other click clears the selection.
func (c *Container[T]) BackgroundClick() {
	if c.ghost.ConsumeClick() {
		return
	}
	if c.ghost.Selecting() {
		c.ghost.Cancel()
	}
	next, err := UpdateSelection(ActionClear, nil, c.allIDs, c.selected)
	if err != nil {
		return
	}
	c.replace(next, !next.Equal(c.selected))
}

func (c *Container[T]) bind() {
	if c.elements == nil {
		return
	}
	var zero T
	for i, el := range c.elements() {
		if i < len(c.allIDs) {
			el.Bind(c.allIDs[i], true)
		} else {
			el.Bind(zero, false)
		}
	}
}

func (c *Container[T]) replace(sel Selection[T], notify bool) {
	c.selected = sel
	c.apply()
	if notify && c.onChanged != nil {
		c.onChanged(c.SelectedIDs())
	}
}

func (c *Container[T]) apply() {
	if c.elements == nil {
		return
	}
	for _, el := range c.elements() {
		id, ok := el.ID()
		el.SetSelected(ok && c.selected.Has(id))
	}
}
