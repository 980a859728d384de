//go:build !flatpak || windows || android || ios || wasm || js

package grid

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

// Import shows a file chooser on the attached window and feeds the chosen file to the drop zone.
func (g *FileGrid[T]) Import() {
	if g.uploader.Disabled() {
		return
	}
	if g.window == nil {
		fyne.LogError("Import needs a window, call AttachWindow first", nil)
		return
	}

	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			fyne.LogError("Failed to choose file to upload", err)
			return
		}
		if r == nil {
			return
		}
		uri := r.URI()
		if err := r.Close(); err != nil {
			fyne.LogError("Failed to close "+uri.String(), err)
		}
		g.uploader.Drop([]fyne.URI{uri})
	}, g.window)
	if g.opts.ImportFilter != nil {
		d.SetFilter(g.opts.ImportFilter)
	}
	d.Show()
}
