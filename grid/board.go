package grid

import (
	"image"
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// CounterLabel marks the label a MultiSelectionBoard writes the selected count into.
type CounterLabel struct {
	widget.Label
}

// NewCounterLabel returns an empty counter.
func NewCounterLabel() *CounterLabel {
	c := &CounterLabel{}
	c.Alignment = fyne.TextAlignCenter
	c.TextStyle = fyne.TextStyle{Bold: true}
	c.ExtendBaseWidget(c)
	return c
}

// MultiSelectionBoard is the visual dragged in place of several selected items.
type MultiSelectionBoard struct {
	content fyne.CanvasObject
	counter *CounterLabel
	preview *canvas.Image
	count   int
}

// NewMultiSelectionBoard wraps content and finds its counter. A board without
// a counter still works; it just cannot show the count.
func NewMultiSelectionBoard(content fyne.CanvasObject) *MultiSelectionBoard {
	b := &MultiSelectionBoard{content: content}
	b.counter = findCounter(content)
	if b.counter == nil {
		fyne.LogError("No counter element found in multi-selection board", nil)
	}
	return b
}

// newDefaultBoard builds a stacked preview with a counter badge.
func newDefaultBoard() *MultiSelectionBoard {
	preview := canvas.NewImageFromImage(nil)
	preview.FillMode = canvas.ImageFillContain
	preview.SetMinSize(fyne.NewSquareSize(cellIconSize))

	bg := canvas.NewRectangle(withAlpha(theme.Color(theme.ColorNameSelection), 200))
	bg.CornerRadius = theme.InputRadiusSize()

	counter := NewCounterLabel()
	b := NewMultiSelectionBoard(container.NewStack(bg, container.NewBorder(nil, counter, nil, nil, preview)))
	b.preview = preview
	return b
}

func (b *MultiSelectionBoard) Content() fyne.CanvasObject { return b.content }

func (b *MultiSelectionBoard) Count() int { return b.count }

// SetCount updates the selected item counter.
func (b *MultiSelectionBoard) SetCount(n int) {
	b.count = n
	if b.counter == nil {
		return
	}
	b.counter.SetText(strconv.Itoa(n))
}

// SetPreview sets the aggregated drag image, if the board has a preview slot.
func (b *MultiSelectionBoard) SetPreview(img image.Image) {
	if b.preview == nil {
		return
	}
	b.preview.Image = img
	b.preview.Refresh()
}

func findCounter(o fyne.CanvasObject) *CounterLabel {
	switch obj := o.(type) {
	case *CounterLabel:
		return obj
	case *fyne.Container:
		for _, child := range obj.Objects {
			if c := findCounter(child); c != nil {
				return c
			}
		}
	}
	return nil
}

func withAlpha(c color.Color, a uint8) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: a}
}
