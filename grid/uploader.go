package grid

import (
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
)

// Uploader is the drop zone for external files. It decides when the upload
// hint board is visible and hands dropped entries to the host.
type Uploader struct {
	disabled         bool
	internalDragging bool
	showBoard        bool
	canCloseBoard    bool

	onDropped      DroppedFilesFunc
	onBoardChanged func(show bool)

	pending sync.WaitGroup
}

// NewUploader returns a drop zone. onBoardChanged toggles the hint board and content visibility.
func NewUploader(onDropped DroppedFilesFunc, onBoardChanged func(show bool)) *Uploader {
	return &Uploader{onDropped: onDropped, onBoardChanged: onBoardChanged}
}

func (u *Uploader) SetDisabled(disabled bool) {
	u.disabled = disabled
	if disabled {
		u.setBoard(false)
	}
}

func (u *Uploader) Disabled() bool { return u.disabled }

// SetInternalDragging marks a drag of the grid's own items, which must not show the hint board.
func (u *Uploader) SetInternalDragging(dragging bool) {
	u.internalDragging = dragging
}

func (u *Uploader) InternalDragging() bool { return u.internalDragging }

// BoardVisible reports whether the upload hint board is shown.
func (u *Uploader) BoardVisible() bool { return u.showBoard }

// SetOnDropped replaces the dropped files callback.
func (u *Uploader) SetOnDropped(fn DroppedFilesFunc) {
	u.onDropped = fn
}

// DragEnter handles an external drag entering the drop zone.
func (u *Uploader) DragEnter() {
	u.overAction(true)
}

// DragLeave handles an external drag leaving the drop zone or one of its children.
func (u *Uploader) DragLeave() {
	u.overAction(false)
}

func (u *Uploader) overAction(entering bool) {
	if u.internalDragging || u.disabled {
		u.setBoard(false)
		return
	}

	if entering {
		u.canCloseBoard = false
		u.setBoard(true)
		return
	}

	// The first leave usually comes from crossing into a child; keep the board up once.
	if !u.canCloseBoard {
		u.canCloseBoard = true
		u.setBoard(true)
		return
	}
	u.setBoard(false)
}

// Drop hides the hint board, splits uris into files and folders and runs the
// host callback on its own goroutine. Callback failures are logged.
func (u *Uploader) Drop(uris []fyne.URI) {
	u.setBoard(false)
	u.canCloseBoard = false

	if u.disabled || u.onDropped == nil {
		return
	}

	files, folders := splitEntries(uris)
	cb := u.onDropped

	u.pending.Add(1)
	go func() {
		defer u.pending.Done()
		defer func() {
			if r := recover(); r != nil {
				fyne.LogError("Error in dropped files callback", fmt.Errorf("panic: %v", r))
			}
		}()

		if err := cb(files, folders); err != nil {
			fyne.LogError("Error in dropped files callback", err)
		}
	}()
}

// wait blocks until running drop callbacks return.
func (u *Uploader) wait() {
	u.pending.Wait()
}

func (u *Uploader) setBoard(show bool) {
	if u.showBoard == show {
		return
	}
	u.showBoard = show
	if u.onBoardChanged != nil {
		u.onBoardChanged(show)
	}
}

func splitEntries(uris []fyne.URI) (files []fyne.URI, folders []fyne.ListableURI) {
	for _, u := range uris {
		if u == nil {
			continue
		}
		if isDir, _ := storage.CanList(u); isDir {
			l, err := storage.ListerForURI(u)
			if err != nil {
				fyne.LogError("Failed to get entry for "+u.String(), err)
				continue
			}
			folders = append(folders, l)
			continue
		}
		files = append(files, u)
	}
	return files, folders
}
