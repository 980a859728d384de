package grid

import (
	"fyne.io/fyne/v2"
)

// DragSource delivers drag-over positions and the drag-end signal of a grid.
// The returned func detaches the handler; calling it more than once is safe.
type DragSource interface {
	OnDragOver(handler func(abs fyne.Position)) (detach func())
	OnDragEnd(handler func()) (detach func())
}

// dragEvents is the DragSource owned by a FileGrid. Handlers are kept by key
// so the exact registration that was attached is the one removed.
type dragEvents struct {
	next  int
	over  map[int]func(fyne.Position)
	end   map[int]func()
	order []int
}

func newDragEvents() *dragEvents {
	return &dragEvents{
		over: make(map[int]func(fyne.Position)),
		end:  make(map[int]func()),
	}
}

func (d *dragEvents) OnDragOver(handler func(fyne.Position)) func() {
	d.next++
	key := d.next
	d.over[key] = handler
	d.order = append(d.order, key)
	return func() {
		delete(d.over, key)
		d.remove(key)
	}
}

func (d *dragEvents) OnDragEnd(handler func()) func() {
	d.next++
	key := d.next
	d.end[key] = handler
	d.order = append(d.order, key)
	return func() {
		delete(d.end, key)
		d.remove(key)
	}
}

func (d *dragEvents) dragOver(abs fyne.Position) {
	for _, key := range d.order {
		if h, ok := d.over[key]; ok {
			h(abs)
		}
	}
}

func (d *dragEvents) dragEnd() {
	for _, key := range d.order {
		if h, ok := d.end[key]; ok {
			h()
		}
	}
}

// remove drops key from the dispatch order. It builds a fresh slice so a
// dispatch loop ranging over the old one is unaffected.
func (d *dragEvents) remove(key int) {
	order := make([]int, 0, len(d.order))
	for _, k := range d.order {
		if k != key {
			order = append(order, k)
		}
	}
	d.order = order
}

func (d *dragEvents) listeners() (over, end int) {
	return len(d.over), len(d.end)
}
