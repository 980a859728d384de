package grid

import (
	"image/color"
	"sync/atomic"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFrames struct {
	next     FrameHandle
	pending  map[FrameHandle]func()
	canceled []FrameHandle
}

func newFakeFrames() *fakeFrames {
	return &fakeFrames{pending: make(map[FrameHandle]func())}
}

func (f *fakeFrames) Request(fn func()) FrameHandle {
	f.next++
	f.pending[f.next] = fn
	return f.next
}

func (f *fakeFrames) Cancel(h FrameHandle) {
	if _, ok := f.pending[h]; ok {
		f.canceled = append(f.canceled, h)
	}
	delete(f.pending, h)
}

// step runs every frame that was pending when it was called.
func (f *fakeFrames) step() {
	run := f.pending
	f.pending = make(map[FrameHandle]func())
	for _, fn := range run {
		fn()
	}
}

type fakeTarget struct {
	height  float32
	top     float32
	scrolls []float32
}

func (f *fakeTarget) PointerY(abs fyne.Position) float32 { return abs.Y - f.top }
func (f *fakeTarget) Height() float32                    { return f.height }
func (f *fakeTarget) ScrollBy(dy float32)                { f.scrolls = append(f.scrolls, dy) }

func newTestSensor(enable bool) (*AutoScrollSensor, *fakeTarget, *fakeFrames, *dragEvents) {
	target := &fakeTarget{height: 600}
	frames := newFakeFrames()
	drags := newDragEvents()
	cfg := AutoScrollConfig{Enable: enable, ScrollThreshold: 0.2, ScrollSpeed: 5}
	return NewAutoScrollSensor(target, drags, cfg, frames), target, frames, drags
}

func TestZoneFor(t *testing.T) {
	assert.Equal(t, ZoneTop, ZoneFor(50, 600, 0.2))
	assert.Equal(t, ZoneBottom, ZoneFor(550, 600, 0.2))
	assert.Equal(t, ZoneNone, ZoneFor(300, 600, 0.2))
	assert.Equal(t, ZoneTop, ZoneFor(120, 600, 0.2), "band edge is included")
	assert.Equal(t, ZoneBottom, ZoneFor(480, 600, 0.2), "band edge is included")
	assert.Equal(t, ZoneNone, ZoneFor(-1, 600, 0.2))
	assert.Equal(t, ZoneNone, ZoneFor(601, 600, 0.2))

	// At 0.8 the bands overlap between 120 and 480.
	assert.Equal(t, ZoneBottom, ZoneFor(300, 600, 0.8), "bottom band wins the overlap")
	assert.Equal(t, ZoneTop, ZoneFor(100, 600, 0.8))
	assert.Equal(t, ZoneBottom, ZoneFor(500, 600, 0.8))

	assert.Equal(t, float32(-5), ScrollAmount(ZoneTop, 5))
	assert.Equal(t, float32(5), ScrollAmount(ZoneBottom, 5))
	assert.Equal(t, float32(0), ScrollAmount(ZoneNone, 5))
}

func TestAutoScrollSensor_ScrollsWhileInZone(t *testing.T) {
	s, target, frames, drags := newTestSensor(true)

	drags.dragOver(fyne.NewPos(0, 50))
	require.True(t, s.Running())
	frames.step()
	frames.step()
	assert.Equal(t, []float32{-5, -5}, target.scrolls)

	// Hovering in the same zone does not start a second loop.
	drags.dragOver(fyne.NewPos(0, 60))
	assert.Len(t, frames.pending, 1)

	drags.dragOver(fyne.NewPos(0, 550))
	frames.step()
	assert.Equal(t, []float32{-5, -5, 5}, target.scrolls)
	assert.Len(t, frames.pending, 1)
}

func TestAutoScrollSensor_LeavingZoneCancels(t *testing.T) {
	s, target, frames, drags := newTestSensor(true)

	drags.dragOver(fyne.NewPos(0, 550))
	frames.step()
	require.Len(t, target.scrolls, 1)

	drags.dragOver(fyne.NewPos(0, 300))
	assert.False(t, s.Running())
	assert.Empty(t, frames.pending)

	frames.step()
	assert.Len(t, target.scrolls, 1, "no scroll after leaving the zone")
}

func TestAutoScrollSensor_DragEndStops(t *testing.T) {
	s, _, frames, drags := newTestSensor(true)

	drags.dragOver(fyne.NewPos(0, 10))
	require.True(t, s.Running())

	drags.dragEnd()
	assert.False(t, s.Running())
	assert.Empty(t, frames.pending)

	s.Stop()
	assert.False(t, s.Running(), "stop is idempotent")
}

func TestAutoScrollSensor_EnableDisable(t *testing.T) {
	s, target, frames, drags := newTestSensor(false)

	over, end := drags.listeners()
	assert.Equal(t, 0, over)
	assert.Equal(t, 1, end)

	drags.dragOver(fyne.NewPos(0, 10))
	assert.False(t, s.Running())

	s.SetEnabled(true)
	s.SetEnabled(true)
	over, _ = drags.listeners()
	assert.Equal(t, 1, over, "enabling twice attaches once")

	drags.dragOver(fyne.NewPos(0, 10))
	require.True(t, s.Running())

	s.SetEnabled(false)
	assert.False(t, s.Running())
	over, _ = drags.listeners()
	assert.Equal(t, 0, over)

	frames.step()
	assert.Empty(t, target.scrolls)

	s.Destroy()
	over, end = drags.listeners()
	assert.Equal(t, 0, over)
	assert.Equal(t, 0, end)
}

func TestAutoScrollSensor_PointerRelativeToTarget(t *testing.T) {
	s, target, _, drags := newTestSensor(true)
	target.top = 100

	drags.dragOver(fyne.NewPos(0, 150))
	assert.True(t, s.Running())
	assert.Equal(t, ZoneTop, s.zone)
}

func TestAutoScrollConfig_Normalized(t *testing.T) {
	c := AutoScrollConfig{Enable: true, ScrollThreshold: 1.5, ScrollSpeed: 40}.normalized()
	assert.Equal(t, float32(1), c.ScrollThreshold)
	assert.Equal(t, float32(10), c.ScrollSpeed)

	c = AutoScrollConfig{ScrollThreshold: -1, ScrollSpeed: 0}.normalized()
	assert.Equal(t, float32(0), c.ScrollThreshold)
	assert.Equal(t, float32(1), c.ScrollSpeed)
}

func TestScrollContainerBy_Clamps(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	content := widget.NewLabel("")
	content.Resize(fyne.NewSize(100, 1000))
	tall := container.NewGridWrap(fyne.NewSize(100, 1000), content)
	scroll := container.NewVScroll(tall)
	scroll.Resize(fyne.NewSize(100, 200))

	scrollContainerBy(scroll, -10)
	assert.Equal(t, float32(0), scroll.Offset.Y)

	scrollContainerBy(scroll, 50)
	assert.Equal(t, float32(50), scroll.Offset.Y)

	scrollContainerBy(scroll, 5000)
	assert.Equal(t, tall.MinSize().Height-200, scroll.Offset.Y)
}

func TestFrameScheduler_DeliversOnce(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	frames := NewFrameScheduler()
	ran := make(chan struct{}, 2)
	h := frames.Request(func() { ran <- struct{}{} })
	assert.NotZero(t, h)

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("frame never delivered")
	}

	frames.Cancel(h)
	select {
	case <-ran:
		t.Fatal("frame delivered twice")
	case <-time.After(5 * frameInterval):
	}
}

func TestFrameScheduler_CancelDropsFrame(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	frames := NewFrameScheduler()
	var ran atomic.Int32
	h := frames.Request(func() { ran.Add(1) })
	other := frames.Request(func() { ran.Add(10) })
	assert.NotEqual(t, h, other)

	frames.Cancel(h)
	frames.Cancel(h)
	frames.Cancel(0)
	frames.Cancel(other + 100)
	frames.Cancel(other)

	time.Sleep(5 * frameInterval)
	assert.Zero(t, ran.Load())
}

func TestFrameScheduler_CancelAfterTimerFired(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	f := NewFrameScheduler().(*timerFrames)

	ran := 0
	h := f.Request(func() { ran++ })
	f.Cancel(h)

	// The timer callback may already be queued on the UI goroutine.
	f.deliver(h, func() { ran++ })
	assert.Zero(t, ran)
	assert.Empty(t, f.pending)
}

func tallScroll() *container.Scroll {
	return container.NewVScroll(container.NewGridWrap(fyne.NewSize(100, 1000), widget.NewLabel("")))
}

func TestElementTarget_MeasuresFromScrollTop(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	header := canvas.NewRectangle(color.Transparent)
	header.Resize(fyne.NewSize(200, 50))
	scroll := tallScroll()
	scroll.Move(fyne.NewPos(0, 50))
	scroll.Resize(fyne.NewSize(200, 150))

	w := test.NewTempWindow(t, container.NewWithoutLayout(header, scroll))
	w.SetPadded(false)
	w.Resize(fyne.NewSize(200, 200))

	target := &ElementTarget{Scroll: scroll}
	assert.Equal(t, float32(30), target.PointerY(fyne.NewPos(10, 80)), "header height is subtracted")
	assert.Equal(t, float32(-20), target.PointerY(fyne.NewPos(10, 30)))
	assert.Equal(t, float32(150), target.Height())

	target.ScrollBy(25)
	assert.Equal(t, float32(25), scroll.Offset.Y)
}

func TestWindowTarget_ScrollsCanvasContent(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	scroll := tallScroll()
	w := test.NewTempWindow(t, scroll)
	w.SetPadded(false)
	w.Resize(fyne.NewSize(200, 200))

	target := &WindowTarget{Canvas: w.Canvas()}
	assert.Equal(t, float32(42), target.PointerY(fyne.NewPos(3, 42)))
	assert.Equal(t, w.Canvas().Size().Height, target.Height())

	target.ScrollBy(40)
	assert.Equal(t, float32(40), scroll.Offset.Y)
	target.ScrollBy(-100)
	assert.Equal(t, float32(0), scroll.Offset.Y)

	w.SetContent(widget.NewLabel("plain"))
	target.ScrollBy(40)
	assert.Equal(t, float32(0), scroll.Offset.Y, "non-scroll content is left alone")
}
