package grid

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// gridItem is one cell of a FileGrid. It owns the host's item content and
// forwards pointer events to the grid.
type gridItem[T comparable] struct {
	widget.BaseWidget
	grid *FileGrid[T]

	content fyne.CanvasObject
	bg      *canvas.Rectangle

	id       T
	bound    bool
	selected bool

	// modifiers held when the last primary button was released, used by Tapped.
	upMods fyne.KeyModifier
}

func newGridItem[T comparable](g *FileGrid[T]) *gridItem[T] {
	i := &gridItem[T]{
		grid:    g,
		content: g.opts.CreateItem(),
		bg:      canvas.NewRectangle(theme.Color(theme.ColorNameSelection)),
	}
	i.bg.CornerRadius = theme.InputRadiusSize()
	i.bg.Hide()
	i.ExtendBaseWidget(i)
	return i
}

func (i *gridItem[T]) CreateRenderer() fyne.WidgetRenderer {
	return &gridItemRenderer[T]{item: i}
}

func (i *gridItem[T]) Bind(id T, ok bool) {
	i.id, i.bound = id, ok
	if !ok {
		i.Hide()
		return
	}
	i.grid.opts.UpdateItem(id, i.content)
	i.Show()
}

func (i *gridItem[T]) ID() (T, bool) {
	return i.id, i.bound
}

func (i *gridItem[T]) SetSelected(selected bool) {
	if i.selected == selected {
		return
	}
	i.selected = selected
	if selected {
		i.bg.Show()
	} else {
		i.bg.Hide()
	}
	i.bg.Refresh()
}

func (i *gridItem[T]) Bounds() Rect {
	pos := fyne.CurrentApp().Driver().AbsolutePositionForObject(i)
	return NewRect(pos, i.Size())
}

var _ desktop.Mouseable = (*gridItem[string])(nil)

func (i *gridItem[T]) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	i.grid.itemMouseDown(i, e.Modifier)
}

func (i *gridItem[T]) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		i.upMods = e.Modifier
	}
}

func (i *gridItem[T]) Tapped(*fyne.PointEvent) {
	mods := i.upMods
	i.upMods = 0
	if mods == 0 {
		mods = currentModifiers()
	}
	i.grid.itemClick(i, mods)
}

func (i *gridItem[T]) Dragged(e *fyne.DragEvent) {
	i.grid.itemDragged(i, e.AbsolutePosition)
}

func (i *gridItem[T]) DragEnd() {
	i.grid.itemDragEnd()
}

type gridItemRenderer[T comparable] struct {
	item *gridItem[T]
}

func (r *gridItemRenderer[T]) Layout(size fyne.Size) {
	r.item.bg.Resize(size)
	r.item.content.Resize(size)
	r.item.content.Move(fyne.NewPos(0, 0))
}

func (r *gridItemRenderer[T]) MinSize() fyne.Size {
	return r.item.content.MinSize()
}

func (r *gridItemRenderer[T]) Refresh() {
	r.item.bg.Refresh()
	r.item.content.Refresh()
}

func (r *gridItemRenderer[T]) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.item.bg, r.item.content}
}

func (r *gridItemRenderer[T]) Destroy() {}
