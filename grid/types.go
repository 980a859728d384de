// Package grid provides FileGrid, a Fyne widget that lays items out in a grid with
// click, modifier and rubber-band selection, item dragging with edge auto-scroll
// and a drop zone for external files.
package grid

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
)

const (
	cellIconSize      = 64
	cellWidth         = cellIconSize * 1.8
	zoomPrefKey       = "xfilegrid:zoom"
	dragImageOffset   = 50
	defaultScrollTop  = 0.2
	defaultScrollStep = 5
)

// AutoScrollConfig configures edge scrolling while items are dragged.
//
// ScrollThreshold is the fraction of the region height, from each edge, that triggers
// scrolling: 0.3 makes the top 30% and bottom 30% active. ScrollSpeed is in pixels per
// frame and ranges from 1 to 10.
type AutoScrollConfig struct {
	Enable          bool    `toml:"enable"`
	ScrollThreshold float32 `toml:"scroll_threshold"`
	ScrollSpeed     float32 `toml:"scroll_speed"`
}

// DefaultAutoScrollConfig is used when no configuration is supplied.
var DefaultAutoScrollConfig = AutoScrollConfig{
	Enable:          true,
	ScrollThreshold: defaultScrollTop,
	ScrollSpeed:     defaultScrollStep,
}

func (c AutoScrollConfig) normalized() AutoScrollConfig {
	c.ScrollThreshold = clamp32(c.ScrollThreshold, 0, 1)
	c.ScrollSpeed = clamp32(c.ScrollSpeed, 1, 10)
	return c
}

// DroppedFilesFunc receives external files and folders dropped on the grid.
// It runs off the UI goroutine; a returned error is logged and otherwise ignored.
type DroppedFilesFunc func(files []fyne.URI, folders []fyne.ListableURI) error

// Options configures a FileGrid.
type Options[T comparable] struct {
	AllIDs []T

	// CreateItem and UpdateItem render the cell content for an id. Both are required.
	CreateItem func() fyne.CanvasObject
	UpdateItem func(id T, item fyne.CanvasObject)

	// ItemSize is the unzoomed cell size. Zero uses the default cell size.
	ItemSize fyne.Size
	// ZoomLevels are the scale factors ctrl+wheel steps through. Empty uses DefaultZoomLevels.
	ZoomLevels []float32
	// Zoom is the starting scale factor, snapped to the nearest level. Zero
	// keeps the factor remembered in the app preferences.
	Zoom float32

	AutoScroll *AutoScrollConfig
	// ScrollTarget overrides the grid's own scroll container as the auto-scroll region.
	ScrollTarget ScrollTarget
	Frames       FrameScheduler

	DisableGhostSelect bool
	DisableUpload      bool
	OnDroppedFiles     DroppedFilesFunc
	ImportFilter       storage.FileFilter

	// Board replaces the default multi-selection board. It should contain a CounterLabel.
	Board fyne.CanvasObject
	// DragPreview returns an image used to build the aggregated drag image.
	DragPreview func(id T) image.Image

	OnSelectionChanged func(selected []T)
	OnItemsDragged     func(ids []T, pos fyne.Position)
}

// ConfigError reports an unusable FileGrid configuration.
type ConfigError struct {
	Field string
}

func (e *ConfigError) Error() string {
	return "file grid: missing required option " + e.Field
}
