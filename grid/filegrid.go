package grid

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const previewSize = cellIconSize * 2

// FileGrid is a scrollable grid of items with click, keyboard-modifier and
// rubber-band selection, item dragging with edge auto-scroll, and a drop zone
// for external files.
type FileGrid[T comparable] struct {
	widget.BaseWidget
	opts Options[T]

	items *Container[T]
	cells []*gridItem[T]

	cellBox *fyne.Container
	overlay *ghostOverlay
	scroll  *container.Scroll
	wheel   *zoomWheel
	hint    fyne.CanvasObject

	board     *MultiSelectionBoard
	outline   *canvas.Rectangle
	dragLayer *fyne.Container
	dragPos   fyne.Position

	uploader   *Uploader
	drags      *dragEvents
	sensor     *AutoScrollSensor
	autoScroll AutoScrollConfig

	zoom   *zoomLadder
	window fyne.Window
}

// New builds a grid from opts. CreateItem and UpdateItem are required.
func New[T comparable](opts Options[T]) (*FileGrid[T], error) {
	if opts.CreateItem == nil {
		return nil, &ConfigError{Field: "CreateItem"}
	}
	if opts.UpdateItem == nil {
		return nil, &ConfigError{Field: "UpdateItem"}
	}

	g := &FileGrid[T]{
		opts:       opts,
		drags:      newDragEvents(),
		autoScroll: DefaultAutoScrollConfig,
		zoom:       newZoomLadder(opts.ZoomLevels),
	}
	if opts.AutoScroll != nil {
		g.autoScroll = opts.AutoScroll.normalized()
	}
	if app := fyne.CurrentApp(); app != nil {
		g.zoom.snap(float32(app.Preferences().FloatWithFallback(zoomPrefKey, 1)))
	}
	if opts.Zoom > 0 {
		g.zoom.snap(opts.Zoom)
	}

	g.cellBox = container.New(layout.NewGridWrapLayout(g.cellSize()))
	g.overlay = newGhostOverlay(g.cellBox)
	g.overlay.onDown = g.ghostDown
	g.overlay.onMove = g.ghostMove
	g.overlay.onUp = g.ghostUp
	g.overlay.onTap = g.backgroundTap
	g.scroll = container.NewVScroll(g.overlay)
	g.wheel = newZoomWheel(g.stepZoom)

	g.hint = newUploadHint()
	g.hint.Hide()

	if opts.Board != nil {
		g.board = NewMultiSelectionBoard(opts.Board)
	} else {
		g.board = newDefaultBoard()
	}
	g.board.Content().Hide()
	g.outline = canvas.NewRectangle(withAlpha(theme.Color(theme.ColorNameFocus), 64))
	g.outline.StrokeColor = theme.Color(theme.ColorNamePrimary)
	g.outline.StrokeWidth = 1
	g.outline.Hide()
	g.dragLayer = container.NewWithoutLayout(g.outline, g.board.Content())

	g.uploader = NewUploader(opts.OnDroppedFiles, g.showUploadHint)
	g.uploader.SetDisabled(opts.DisableUpload)
	g.sensor = g.newSensor()

	if len(opts.AllIDs) == 0 {
		fyne.LogError("No ids were passed to the file grid", nil)
	}
	g.items = NewContainer[T](nil, g.elements)
	g.items.SetOnChanged(g.selectionChanged)
	g.SetAllIDs(opts.AllIDs)

	g.ExtendBaseWidget(g)
	return g, nil
}

func (g *FileGrid[T]) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(g.scroll, g.hint, g.wheel, g.dragLayer))
}

// Refresh rebinds every cell through UpdateItem, so changes to the data
// behind the ids show up, then redraws the grid.
func (g *FileGrid[T]) Refresh() {
	g.items.Refresh()
	g.BaseWidget.Refresh()
}

// AllIDs returns a copy of the id list.
func (g *FileGrid[T]) AllIDs() []T {
	return g.items.AllIDs()
}

// SetAllIDs replaces the rendered ids. Selected ids no longer listed are dropped.
func (g *FileGrid[T]) SetAllIDs(ids []T) {
	for len(g.cells) < len(ids) {
		g.cells = append(g.cells, newGridItem(g))
	}
	g.cells = g.cells[:len(ids)]

	objs := make([]fyne.CanvasObject, len(g.cells))
	for i, c := range g.cells {
		objs[i] = c
	}
	g.cellBox.Objects = objs

	g.items.SetAllIDs(ids)
	g.cellBox.Refresh()
}

// Selected returns the selected ids in list order.
func (g *FileGrid[T]) Selected() []T {
	return g.items.SelectedIDs()
}

// SetSelected replaces the selection with ids.
func (g *FileGrid[T]) SetSelected(ids []T) {
	g.items.SetSelected(NewSelection(ids...))
}

// SetUploadDisabled turns the external drop zone off or on.
func (g *FileGrid[T]) SetUploadDisabled(disabled bool) {
	g.uploader.SetDisabled(disabled)
}

// SetAutoScroll replaces the edge scrolling configuration.
func (g *FileGrid[T]) SetAutoScroll(cfg AutoScrollConfig) {
	g.autoScroll = cfg.normalized()
	g.sensor.Destroy()
	g.sensor = g.newSensor()
	if g.items.Dragging() {
		g.sensor.SetEnabled(g.autoScroll.Enable)
	}
}

// SetOnDroppedFiles replaces the external drop callback.
func (g *FileGrid[T]) SetOnDroppedFiles(fn DroppedFilesFunc) {
	g.uploader.SetOnDropped(fn)
}

// AttachWindow routes files dropped on w into the grid's drop zone.
func (g *FileGrid[T]) AttachWindow(w fyne.Window) {
	g.window = w
	w.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		g.uploader.Drop(uris)
	})
}

// SetZoom selects the zoom level closest to factor and remembers it.
func (g *FileGrid[T]) SetZoom(factor float32) {
	if g.zoom.snap(factor) {
		g.zoomChanged()
	}
}

// Zoom returns the current cell zoom factor.
func (g *FileGrid[T]) Zoom() float32 {
	return g.zoom.factor()
}

func (g *FileGrid[T]) stepZoom(steps int) {
	if g.zoom.step(steps) {
		g.zoomChanged()
	}
}

func (g *FileGrid[T]) zoomChanged() {
	if app := fyne.CurrentApp(); app != nil {
		app.Preferences().SetFloat(zoomPrefKey, float64(g.zoom.factor()))
	}
	g.cellBox.Layout = layout.NewGridWrapLayout(g.cellSize())
	g.cellBox.Refresh()
}

func (g *FileGrid[T]) cellSize() fyne.Size {
	return scaledCellSize(g.opts.ItemSize, g.zoom.factor())
}

func (g *FileGrid[T]) newSensor() *AutoScrollSensor {
	target := g.opts.ScrollTarget
	if target == nil {
		target = &ElementTarget{Scroll: g.scroll}
	}
	cfg := g.autoScroll
	cfg.Enable = false
	return NewAutoScrollSensor(target, g.drags, cfg, g.opts.Frames)
}

func (g *FileGrid[T]) elements() []Element[T] {
	els := make([]Element[T], len(g.cells))
	for i, c := range g.cells {
		els[i] = c
	}
	return els
}

func (g *FileGrid[T]) selectionChanged(selected []T) {
	g.board.SetCount(len(selected))
	if g.opts.OnSelectionChanged != nil {
		g.opts.OnSelectionChanged(selected)
	}
}

func (g *FileGrid[T]) itemMouseDown(it *gridItem[T], mods fyne.KeyModifier) {
	if err := g.items.ItemMouseDown(it, mods); err != nil {
		fyne.LogError("Failed to update selection", err)
	}
}

func (g *FileGrid[T]) itemClick(it *gridItem[T], mods fyne.KeyModifier) {
	if err := g.items.ItemClick(it, mods); err != nil {
		fyne.LogError("Failed to update selection", err)
	}
}

func (g *FileGrid[T]) itemDragged(it *gridItem[T], abs fyne.Position) {
	if ids, started := g.items.ItemDragStart(it); started {
		g.beginItemDrag(it, ids)
	}
	g.dragPos = abs
	g.moveDragImage(abs)
	g.drags.dragOver(abs)
}

func (g *FileGrid[T]) beginItemDrag(it *gridItem[T], ids []T) {
	g.uploader.SetInternalDragging(true)
	g.sensor.SetEnabled(g.autoScroll.Enable)

	if len(ids) > 1 {
		g.board.SetCount(len(ids))
		g.board.SetPreview(g.composePreview(ids))
		content := g.board.Content()
		content.Resize(content.MinSize().Max(fyne.NewSquareSize(previewSize / 2)))
		content.Show()
		return
	}
	g.outline.Resize(it.Size())
	g.outline.Show()
}

func (g *FileGrid[T]) moveDragImage(abs fyne.Position) {
	origin := fyne.CurrentApp().Driver().AbsolutePositionForObject(g)
	pos := abs.Subtract(origin).Subtract(fyne.NewPos(dragImageOffset, dragImageOffset))
	g.outline.Move(pos)
	g.board.Content().Move(pos)
	g.dragLayer.Refresh()
}

func (g *FileGrid[T]) itemDragEnd() {
	ids, ok := g.items.ItemDragEnd()
	if !ok {
		return
	}
	g.drags.dragEnd()
	g.sensor.SetEnabled(false)
	g.uploader.SetInternalDragging(false)

	g.outline.Hide()
	g.board.Content().Hide()
	g.board.SetCount(len(g.items.SelectedIDs()))
	g.dragLayer.Refresh()

	if g.opts.OnItemsDragged != nil {
		g.opts.OnItemsDragged(ids, g.dragPos)
	}
}

func (g *FileGrid[T]) composePreview(ids []T) image.Image {
	if g.opts.DragPreview == nil {
		return nil
	}
	var imgs []image.Image
	for _, id := range ids {
		if img := g.opts.DragPreview(id); img != nil {
			imgs = append(imgs, img)
		}
		if len(imgs) == stackLayers {
			break
		}
	}
	return ComposeStack(imgs, previewSize)
}

func (g *FileGrid[T]) ghostDown(abs fyne.Position) {
	if g.opts.DisableGhostSelect {
		return
	}
	g.items.BeginGhost(abs)
}

func (g *FileGrid[T]) ghostMove(abs fyne.Position) {
	if r, ok := g.items.MoveGhost(abs); ok {
		g.overlay.showRect(r)
	}
}

func (g *FileGrid[T]) ghostUp() {
	g.items.EndGhost()
}

func (g *FileGrid[T]) backgroundTap() {
	g.items.BackgroundClick()
}

func (g *FileGrid[T]) showUploadHint(show bool) {
	if show {
		g.scroll.Hide()
		g.hint.Show()
		return
	}
	g.hint.Hide()
	g.scroll.Show()
}

func newUploadHint() fyne.CanvasObject {
	bg := canvas.NewRectangle(withAlpha(theme.Color(theme.ColorNameSelection), 96))
	bg.StrokeColor = theme.Color(theme.ColorNamePrimary)
	bg.StrokeWidth = 2
	bg.CornerRadius = theme.InputRadiusSize()

	icon := widget.NewIcon(theme.UploadIcon())
	label := widget.NewLabelWithStyle(lang.L("Drop files to upload"), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	return container.NewStack(bg, container.NewCenter(container.NewVBox(icon, label)))
}
