package grid

import (
	"image/color"
	"math"
	"slices"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// DefaultZoomLevels are the cell scale factors used when Options.ZoomLevels is empty.
var DefaultZoomLevels = []float32{0.75, 1, 1.25, 1.5, 2}

// wheelNotch is the DY one mouse wheel notch produces.
const wheelNotch = float32(40)

// zoomLadder holds the sorted scale factors a grid steps through and the one in use.
type zoomLadder struct {
	levels []float32
	index  int
}

func newZoomLadder(levels []float32) *zoomLadder {
	z := &zoomLadder{levels: normalizeZoomLevels(levels)}
	z.index = z.nearest(1)
	return z
}

// normalizeZoomLevels drops unusable factors, then sorts and dedupes the rest.
func normalizeZoomLevels(levels []float32) []float32 {
	out := make([]float32, 0, len(levels))
	for _, l := range levels {
		if l > 0 && !math.IsInf(float64(l), 0) {
			out = append(out, l)
		}
	}
	if len(out) == 0 {
		return slices.Clone(DefaultZoomLevels)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func (z *zoomLadder) factor() float32 {
	return z.levels[z.index]
}

// nearest returns the index of the level closest to factor, the lower one on a tie.
func (z *zoomLadder) nearest(factor float32) int {
	best := 0
	for i, l := range z.levels {
		if math.Abs(float64(l-factor)) < math.Abs(float64(z.levels[best]-factor)) {
			best = i
		}
	}
	return best
}

// set moves to level i, clamped to the ladder, and reports whether it changed.
func (z *zoomLadder) set(i int) bool {
	i = max(0, min(i, len(z.levels)-1))
	if i == z.index {
		return false
	}
	z.index = i
	return true
}

func (z *zoomLadder) step(n int) bool {
	return z.set(z.index + n)
}

func (z *zoomLadder) snap(factor float32) bool {
	return z.set(z.nearest(factor))
}

// wheelSteps turns wheel deltas into whole notches and keeps the remainder.
type wheelSteps struct {
	dy float32
}

func (w *wheelSteps) add(dy float32) int {
	if math.IsNaN(float64(dy)) || math.IsInf(float64(dy), 0) {
		return 0
	}
	w.dy += dy
	n := int(w.dy / wheelNotch)
	w.dy -= float32(n) * wheelNotch
	return n
}

// currentModifiers returns the keyboard modifiers held right now, if the driver knows them.
func currentModifiers() fyne.KeyModifier {
	app := fyne.CurrentApp()
	if app == nil {
		return 0
	}
	d, ok := app.Driver().(desktop.Driver)
	if !ok {
		return 0
	}
	return d.CurrentKeyModifiers()
}

func zoomModifierHeld() bool {
	return currentModifiers()&(fyne.KeyModifierControl|fyne.KeyModifierShortcutDefault) != 0
}

// zoomWheel covers the cells and turns ctrl+wheel into zoom steps. It reports
// itself hidden while the modifier is up, so plain wheel events reach the
// scroll container below.
type zoomWheel struct {
	widget.BaseWidget
	wheel  wheelSteps
	onStep func(steps int)
}

func newZoomWheel(onStep func(steps int)) *zoomWheel {
	z := &zoomWheel{onStep: onStep}
	z.ExtendBaseWidget(z)
	return z
}

func (z *zoomWheel) Visible() bool {
	return z.BaseWidget.Visible() && zoomModifierHeld()
}

func (z *zoomWheel) Scrolled(e *fyne.ScrollEvent) {
	if n := z.wheel.add(e.Scrolled.DY); n != 0 && z.onStep != nil {
		z.onStep(n)
	}
}

func (z *zoomWheel) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(canvas.NewRectangle(color.Transparent))
}

var _ fyne.Scrollable = (*zoomWheel)(nil)
