//go:build flatpak && !windows && !android && !ios && !wasm && !js

package grid

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/storage"

	"github.com/rymdport/portal"
	"github.com/rymdport/portal/filechooser"
)

// Import asks the desktop portal for files and feeds them to the drop zone.
func (g *FileGrid[T]) Import() {
	if g.uploader.Disabled() {
		return
	}

	options := &filechooser.OpenFileOptions{
		AcceptLabel: lang.L("Upload"),
		Multiple:    true,
	}
	options.Filters, options.CurrentFilter = convertFilterForPortal(g.opts.ImportFilter)

	handle := ""
	if g.window != nil {
		handle = windowHandleForPortal(g.window)
	}

	go func() {
		raw, err := filechooser.OpenFile(handle, lang.L("Upload Files"), options)
		if err != nil {
			fyne.LogError("Failed to open file chooser portal", err)
			return
		}

		uris := make([]fyne.URI, 0, len(raw))
		for _, r := range raw {
			u, err := storage.ParseURI(r)
			if err != nil {
				fyne.LogError("Failed to parse portal uri "+r, err)
				continue
			}
			uris = append(uris, u)
		}
		if len(uris) == 0 {
			return
		}
		fyne.Do(func() {
			g.uploader.Drop(uris)
		})
	}()
}

func windowHandleForPortal(window fyne.Window) string {
	native, ok := window.(driver.NativeWindow)
	if !ok {
		return ""
	}

	handle := ""
	native.RunNative(func(context any) {
		if x11, ok := context.(driver.X11WindowContext); ok {
			handle = portal.FormatX11WindowHandle(x11.WindowHandle)
		}
	})
	return handle
}

func convertFilterForPortal(fyneFilter storage.FileFilter) (list []*filechooser.Filter, current *filechooser.Filter) {
	var rules []filechooser.Rule
	var patterns []string

	switch filter := fyneFilter.(type) {
	case *storage.ExtensionFileFilter:
		patterns = filter.Extensions
		for _, ext := range filter.Extensions {
			rules = append(rules,
				filechooser.Rule{Type: filechooser.GlobPattern, Pattern: "*" + strings.ToLower(ext)},
				filechooser.Rule{Type: filechooser.GlobPattern, Pattern: "*" + strings.ToUpper(ext)},
			)
		}
	case *storage.MimeTypeFileFilter:
		patterns = filter.MimeTypes
		for _, mime := range filter.MimeTypes {
			rules = append(rules, filechooser.Rule{Type: filechooser.MIMEType, Pattern: mime})
		}
	default:
		return nil, nil
	}

	converted := &filechooser.Filter{Name: filterName(patterns, 3), Rules: rules}
	return []*filechooser.Filter{converted}, converted
}

func filterName(patterns []string, count int) string {
	if len(patterns) < count {
		count = len(patterns)
	}
	name := strings.Join(patterns[:count], ", ")
	if len(patterns) > count {
		name += "…"
	}
	return name
}
