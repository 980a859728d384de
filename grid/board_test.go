package grid

import (
	"image"
	"testing"

	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiSelectionBoard_FindsNestedCounter(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	counter := NewCounterLabel()
	b := NewMultiSelectionBoard(container.NewVBox(widget.NewLabel("Moving"), container.NewCenter(counter)))
	require.NotNil(t, b.counter)

	b.SetCount(7)
	assert.Equal(t, "7", counter.Text)
	assert.Equal(t, 7, b.Count())
}

func TestMultiSelectionBoard_WithoutCounter(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	b := NewMultiSelectionBoard(widget.NewLabel("no counter"))
	assert.Nil(t, b.counter)
	assert.NotPanics(t, func() { b.SetCount(3) })
	assert.Equal(t, 3, b.Count())
	assert.NotPanics(t, func() { b.SetPreview(image.NewNRGBA(image.Rect(0, 0, 1, 1))) })
}

func TestDefaultBoard(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	b := newDefaultBoard()
	require.NotNil(t, b.counter)
	require.NotNil(t, b.preview)

	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	b.SetPreview(img)
	assert.Equal(t, image.Image(img), b.preview.Image)

	b.SetCount(12)
	assert.Equal(t, "12", b.counter.Text)
}
