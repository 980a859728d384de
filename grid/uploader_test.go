package grid

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploader_BoardStateMachine(t *testing.T) {
	var shown []bool
	u := NewUploader(nil, func(show bool) { shown = append(shown, show) })

	u.DragEnter()
	assert.True(t, u.BoardVisible())

	// The first leave comes from a child and keeps the board.
	u.DragLeave()
	assert.True(t, u.BoardVisible())

	u.DragLeave()
	assert.False(t, u.BoardVisible())

	u.DragEnter()
	u.DragLeave()
	assert.True(t, u.BoardVisible(), "entering again resets the child leave")

	assert.Equal(t, []bool{true, false, true}, shown)
}

func TestUploader_InternalDragOrDisabledHidesBoard(t *testing.T) {
	u := NewUploader(nil, nil)
	u.SetInternalDragging(true)
	u.DragEnter()
	assert.False(t, u.BoardVisible())

	u.SetInternalDragging(false)
	u.DragEnter()
	require.True(t, u.BoardVisible())

	u.SetDisabled(true)
	assert.False(t, u.BoardVisible())
	u.DragEnter()
	assert.False(t, u.BoardVisible())
}

func TestUploader_DropSplitsFilesAndFolders(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	dir := t.TempDir()
	file := filepath.Join(dir, "photo.png")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	sub := filepath.Join(dir, "album")
	require.NoError(t, os.Mkdir(sub, 0o755))

	var gotFiles []fyne.URI
	var gotFolders []fyne.ListableURI
	u := NewUploader(func(files []fyne.URI, folders []fyne.ListableURI) error {
		gotFiles, gotFolders = files, folders
		return nil
	}, nil)

	u.DragEnter()
	u.Drop([]fyne.URI{storage.NewFileURI(file), storage.NewFileURI(sub), nil})
	u.wait()

	assert.False(t, u.BoardVisible())
	require.Len(t, gotFiles, 1)
	assert.Equal(t, "photo.png", gotFiles[0].Name())
	require.Len(t, gotFolders, 1)
	assert.Equal(t, "album", gotFolders[0].Name())
}

func TestUploader_CallbackFailuresAreSwallowed(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	calls := 0
	u := NewUploader(func([]fyne.URI, []fyne.ListableURI) error {
		calls++
		return errors.New("upload rejected")
	}, nil)

	u.Drop([]fyne.URI{storage.NewFileURI("/does/not/exist.txt")})
	u.wait()
	assert.Equal(t, 1, calls)

	u.SetOnDropped(func([]fyne.URI, []fyne.ListableURI) error {
		panic("boom")
	})
	assert.NotPanics(t, func() {
		u.Drop([]fyne.URI{storage.NewFileURI("/does/not/exist.txt")})
		u.wait()
	})
}

func TestUploader_DisabledSkipsCallback(t *testing.T) {
	calls := 0
	u := NewUploader(func([]fyne.URI, []fyne.ListableURI) error {
		calls++
		return nil
	}, nil)
	u.SetDisabled(true)

	u.Drop([]fyne.URI{storage.NewFileURI("/tmp/a.txt")})
	u.wait()
	assert.Equal(t, 0, calls)
}
