package grid

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// defaultCellSize fits an icon and up to three lines of label text.
func defaultCellSize() fyne.Size {
	s, _ := fyne.CurrentApp().Driver().RenderedTextSize("A", theme.TextSize(), fyne.TextStyle{}, nil)
	lineHeight := s.Height

	return fyne.NewSize(cellWidth, cellIconSize+lineHeight*3.5+theme.Padding()*3)
}

// scaledCellSize applies a zoom factor to base, falling back to the default cell size.
func scaledCellSize(base fyne.Size, zoom float32) fyne.Size {
	if base.IsZero() {
		base = defaultCellSize()
	}
	if zoom <= 0 {
		zoom = 1
	}
	return fyne.NewSize(base.Width*zoom, base.Height*zoom)
}
