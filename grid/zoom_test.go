package grid

import (
	"math"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeZoomLevels(t *testing.T) {
	assert.Equal(t, []float32{0.5, 1, 2}, normalizeZoomLevels([]float32{2, 0.5, -1, 0, 1, 2}))
	assert.Equal(t, DefaultZoomLevels, normalizeZoomLevels(nil))
	assert.Equal(t, DefaultZoomLevels, normalizeZoomLevels([]float32{0, float32(math.Inf(1))}))
}

func TestZoomLadder(t *testing.T) {
	z := newZoomLadder(nil)
	assert.Equal(t, float32(1), z.factor(), "starts at 1x")

	assert.False(t, z.snap(1.1))
	assert.True(t, z.snap(1.4))
	assert.Equal(t, float32(1.5), z.factor())

	assert.True(t, z.step(-1))
	assert.Equal(t, float32(1.25), z.factor())
	assert.True(t, z.step(100))
	assert.Equal(t, float32(2), z.factor())
	assert.False(t, z.step(1), "top of the ladder")

	z = newZoomLadder([]float32{2, 4})
	assert.Equal(t, float32(2), z.factor(), "1x missing, the closest level is used")
}

func TestWheelSteps(t *testing.T) {
	var w wheelSteps
	assert.Equal(t, 0, w.add(30))
	assert.Equal(t, 1, w.add(30), "remainder carries over")
	assert.Equal(t, 2, w.add(80))
	assert.Equal(t, -1, w.add(-60))
	assert.Equal(t, 0, w.add(float32(math.NaN())))
	assert.Equal(t, 0, w.add(float32(math.Inf(-1))))
}

func TestZoomWheel_StepsAndVisibility(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	var steps []int
	z := newZoomWheel(func(n int) { steps = append(steps, n) })
	assert.False(t, z.Visible(), "hidden while no modifier is held")

	z.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.Delta{DY: 40}})
	z.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.Delta{DY: 10}})
	z.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.Delta{DY: -90}})
	assert.Equal(t, []int{1, -2}, steps)
}
