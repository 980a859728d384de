package grid

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
)

func TestDragEvents_DetachRemovesExactHandler(t *testing.T) {
	d := newDragEvents()

	var first, second []fyne.Position
	detachFirst := d.OnDragOver(func(p fyne.Position) { first = append(first, p) })
	d.OnDragOver(func(p fyne.Position) { second = append(second, p) })

	d.dragOver(fyne.NewPos(1, 1))
	detachFirst()
	detachFirst()
	d.dragOver(fyne.NewPos(2, 2))

	assert.Equal(t, []fyne.Position{fyne.NewPos(1, 1)}, first)
	assert.Equal(t, []fyne.Position{fyne.NewPos(1, 1), fyne.NewPos(2, 2)}, second)

	over, end := d.listeners()
	assert.Equal(t, 1, over)
	assert.Equal(t, 0, end)
}

func TestDragEvents_DragEnd(t *testing.T) {
	d := newDragEvents()
	calls := 0
	detach := d.OnDragEnd(func() { calls++ })

	d.dragEnd()
	detach()
	d.dragEnd()

	assert.Equal(t, 1, calls)
	assert.Empty(t, d.order)
}

func TestDragEvents_DetachShrinksOrderWithoutDispatch(t *testing.T) {
	d := newDragEvents()
	for i := 0; i < 50; i++ {
		detachOver := d.OnDragOver(func(fyne.Position) {})
		detachEnd := d.OnDragEnd(func() {})
		detachOver()
		detachEnd()
	}
	assert.Empty(t, d.order)

	d.OnDragEnd(func() {})
	assert.Len(t, d.order, 1)
}

func TestDragEvents_HandlerDetachingDuringDispatch(t *testing.T) {
	d := newDragEvents()

	var calls []string
	var detachFirst func()
	detachFirst = d.OnDragOver(func(fyne.Position) {
		calls = append(calls, "first")
		detachFirst()
	})
	d.OnDragOver(func(fyne.Position) { calls = append(calls, "second") })

	d.dragOver(fyne.NewPos(1, 1))
	d.dragOver(fyne.NewPos(2, 2))

	assert.Equal(t, []string{"first", "second", "second"}, calls)
	assert.Len(t, d.order, 1)
}
