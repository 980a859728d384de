package grid

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/FyshOS/fancyfs"
)

// URICell renders a file or folder for grids whose ids are URI strings.
type URICell struct {
	widget.BaseWidget

	icon       *widget.FileIcon
	customIcon *widget.Icon
	thumbnail  *canvas.Image
	label      *widget.Label

	path string
}

// NewURICell is a CreateItem func for FileGrid[string].
func NewURICell() fyne.CanvasObject {
	c := &URICell{
		icon:       widget.NewFileIcon(nil),
		customIcon: widget.NewIcon(nil),
		thumbnail:  canvas.NewImageFromImage(nil),
		label:      widget.NewLabel(""),
	}
	c.thumbnail.FillMode = canvas.ImageFillContain
	c.thumbnail.Hide()
	c.customIcon.Hide()
	c.label.Alignment = fyne.TextAlignCenter
	c.label.Wrapping = fyne.TextWrapBreak
	c.label.Truncation = fyne.TextTruncateClip
	c.ExtendBaseWidget(c)
	return c
}

// UpdateURICell is an UpdateItem func for FileGrid[string]. Ids that do not
// parse as URIs are shown as plain labels.
func UpdateURICell(id string, o fyne.CanvasObject) {
	c, ok := o.(*URICell)
	if !ok {
		return
	}
	u, err := storage.ParseURI(id)
	if err != nil {
		fyne.LogError("Failed to parse item uri "+id, err)
		c.path = id
		c.label.SetText(id)
		c.showIcon(nil)
		return
	}
	c.SetURI(u)
}

// SetURI shows u, loading a thumbnail or folder artwork when there is one.
func (c *URICell) SetURI(u fyne.URI) {
	if c.path == u.String() {
		return
	}
	c.path = u.String()
	c.label.SetText(u.Name())
	c.showIcon(u)

	if isDir, _ := storage.CanList(u); isDir {
		details, err := fancyfs.DetailsForFolder(u)
		if err != nil || details == nil {
			return
		}
		if details.BackgroundResource != nil {
			c.icon.Hide()
			c.customIcon.SetResource(details.BackgroundResource)
			c.customIcon.Show()
		}
		if details.BackgroundURI != nil {
			c.thumbnail.File = details.BackgroundURI.Path()
			c.thumbnail.FillMode = details.BackgroundFill
			c.setThumbnail(nil)
		}
		return
	}

	if img := thumbnails().cached(u.Path()); img != nil {
		c.setThumbnail(img)
		return
	}
	want := c.path
	thumbnails().load(u, func(img image.Image) {
		fyne.Do(func() {
			if c.path != want {
				return
			}
			c.setThumbnail(img)
		})
	})
}

func (c *URICell) showIcon(u fyne.URI) {
	c.icon.SetURI(u)
	c.icon.Show()
	c.customIcon.Hide()
	c.thumbnail.Hide()
	c.thumbnail.Image = nil
	c.thumbnail.File = ""
	c.thumbnail.FillMode = canvas.ImageFillContain
}

func (c *URICell) setThumbnail(img image.Image) {
	if img != nil {
		c.thumbnail.Image = img
	}
	c.icon.Hide()
	c.customIcon.Hide()
	c.thumbnail.Show()
	c.thumbnail.Refresh()
}

func (c *URICell) CreateRenderer() fyne.WidgetRenderer {
	return &uriCellRenderer{cell: c}
}

// URIDragPreview is a DragPreview func for FileGrid[string]. It returns the
// thumbnail if one was already produced.
func URIDragPreview(id string) image.Image {
	u, err := storage.ParseURI(id)
	if err != nil {
		return nil
	}
	return thumbnails().cached(u.Path())
}

type uriCellRenderer struct {
	cell *URICell
}

func (r *uriCellRenderer) Layout(size fyne.Size) {
	iconSize := fyne.NewSquareSize(cellIconSize * size.Width / cellWidth)
	iconPos := fyne.NewPos((size.Width-iconSize.Width)/2, theme.Padding())
	for _, o := range []fyne.CanvasObject{r.cell.icon, r.cell.customIcon, r.cell.thumbnail} {
		o.Resize(iconSize)
		o.Move(iconPos)
	}

	labelTop := iconSize.Height + theme.Padding()*1.5
	r.cell.label.Resize(fyne.NewSize(size.Width, size.Height-labelTop))
	r.cell.label.Move(fyne.NewPos(0, labelTop))
}

func (r *uriCellRenderer) MinSize() fyne.Size {
	return fyne.NewSize(cellWidth, cellIconSize)
}

func (r *uriCellRenderer) Refresh() {
	r.cell.icon.Refresh()
	r.cell.customIcon.Refresh()
	r.cell.thumbnail.Refresh()
	r.cell.label.Refresh()
}

func (r *uriCellRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.cell.icon, r.cell.customIcon, r.cell.thumbnail, r.cell.label}
}

func (r *uriCellRenderer) Destroy() {}
