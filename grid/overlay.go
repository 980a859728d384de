package grid

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// ghostOverlay wraps the cell container and turns presses, drags and taps on
// the background into rubber-band events. Positions handed out are absolute.
type ghostOverlay struct {
	widget.BaseWidget
	content fyne.CanvasObject

	rect *canvas.Rectangle

	onDown func(abs fyne.Position)
	onMove func(abs fyne.Position)
	onUp   func()
	onTap  func()
}

func newGhostOverlay(content fyne.CanvasObject) *ghostOverlay {
	o := &ghostOverlay{
		content: content,
		rect:    canvas.NewRectangle(color.Transparent),
	}
	o.rect.StrokeColor = theme.Color(theme.ColorNamePrimary)
	o.rect.StrokeWidth = 2
	o.rect.FillColor = withAlpha(theme.Color(theme.ColorNameFocus), 64)
	o.rect.Hide()

	o.ExtendBaseWidget(o)
	return o
}

func (o *ghostOverlay) CreateRenderer() fyne.WidgetRenderer {
	return &ghostOverlayRenderer{o: o}
}

func (o *ghostOverlay) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary || o.onDown == nil {
		return
	}
	o.onDown(e.AbsolutePosition)
}

func (o *ghostOverlay) MouseUp(*desktop.MouseEvent) {
	o.finish()
}

func (o *ghostOverlay) Dragged(e *fyne.DragEvent) {
	if o.onMove != nil {
		o.onMove(e.AbsolutePosition)
	}
}

func (o *ghostOverlay) DragEnd() {
	o.finish()
}

func (o *ghostOverlay) Tapped(*fyne.PointEvent) {
	if o.onTap != nil {
		o.onTap()
	}
}

func (o *ghostOverlay) finish() {
	o.hideRect()
	if o.onUp != nil {
		o.onUp()
	}
}

// showRect draws r, given in absolute coordinates, on top of the content.
func (o *ghostOverlay) showRect(r Rect) {
	origin := fyne.CurrentApp().Driver().AbsolutePositionForObject(o)
	o.rect.Move(r.Position().Subtract(origin))
	o.rect.Resize(r.Size())
	o.rect.Show()
	o.rect.Refresh()
}

func (o *ghostOverlay) hideRect() {
	if !o.rect.Visible() {
		return
	}
	o.rect.Hide()
	o.rect.Refresh()
}

type ghostOverlayRenderer struct {
	o *ghostOverlay
}

func (r *ghostOverlayRenderer) Layout(size fyne.Size) {
	r.o.content.Resize(size)
	r.o.content.Move(fyne.NewPos(0, 0))
}

func (r *ghostOverlayRenderer) MinSize() fyne.Size {
	return r.o.content.MinSize()
}

func (r *ghostOverlayRenderer) Refresh() {
	r.o.content.Refresh()
	r.o.rect.Refresh()
}

func (r *ghostOverlayRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.o.content, r.o.rect}
}

func (r *ghostOverlayRenderer) Destroy() {}

var (
	_ fyne.Draggable    = (*ghostOverlay)(nil)
	_ fyne.Tappable     = (*ghostOverlay)(nil)
	_ desktop.Mouseable = (*ghostOverlay)(nil)
)
