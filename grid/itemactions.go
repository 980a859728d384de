package grid

import (
	"fyne.io/fyne/v2"
)

// clickChain decides which selection action a mouse down and the click that
// follows it produce, so that one physical click is only handled once.
type clickChain struct {
	mouseDownAction bool
}

// mouseDown returns the action for pressing on an item. Pressing on a selected
// item starts nothing so a multi-selection can be dragged as it is.
func (c *clickChain) mouseDown(selected bool, mods fyne.KeyModifier) (Action, bool) {
	// A drag swallows the click, so a flag left over from the last press is stale.
	c.mouseDownAction = false
	if selected {
		return 0, false
	}

	c.mouseDownAction = true
	action := ActionSelect
	if toggleModifier(mods) {
		action = ActionAppend
	}
	if mods&fyne.KeyModifierShift != 0 {
		action = ActionAddMulti
	}
	return action, true
}

// click returns the action for the click that ends a press.
func (c *clickChain) click(selected bool, mods fyne.KeyModifier) (Action, bool) {
	if c.mouseDownAction {
		c.mouseDownAction = false
		return 0, false
	}
	if selected && toggleModifier(mods) {
		return ActionDelete, true
	}
	return ActionSelect, true
}

func toggleModifier(mods fyne.KeyModifier) bool {
	return mods&(fyne.KeyModifierControl|fyne.KeyModifierSuper) != 0
}

// dragState tracks an item drag from its first movement until it ends.
type dragState[T comparable] struct {
	dragging bool
	ids      []T
}

// start records the dragged ids and reports whether this call began the drag.
func (d *dragState[T]) start(ids []T) bool {
	if d.dragging {
		return false
	}
	d.dragging = true
	d.ids = ids
	return true
}

// end finishes the drag and returns the ids that were dragged.
func (d *dragState[T]) end() ([]T, bool) {
	if !d.dragging {
		return nil, false
	}
	ids := d.ids
	d.dragging = false
	d.ids = nil
	return ids, true
}
