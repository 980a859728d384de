package grid

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// ScrollZone is the trigger band a pointer is in.
type ScrollZone int

const (
	ZoneNone ScrollZone = iota
	ZoneTop
	ZoneBottom
)

// ZoneFor returns the trigger band for y inside a region of the given height.
// Both bands include their edges. Where they overlap, for thresholds above
// one half, the bottom band wins.
func ZoneFor(y, height, threshold float32) ScrollZone {
	top := height * threshold
	bottom := height * (1 - threshold)

	switch {
	case y >= bottom && y <= height:
		return ZoneBottom
	case y >= 0 && y <= top:
		return ZoneTop
	}
	return ZoneNone
}

// ScrollAmount returns the per-frame scroll delta for zone.
func ScrollAmount(zone ScrollZone, speed float32) float32 {
	switch zone {
	case ZoneTop:
		return -speed
	case ZoneBottom:
		return speed
	}
	return 0
}

// ScrollTarget is the region an AutoScrollSensor scrolls.
type ScrollTarget interface {
	// PointerY converts an absolute pointer position into a Y offset inside the region.
	PointerY(abs fyne.Position) float32
	Height() float32
	ScrollBy(dy float32)
}

// FrameHandle identifies a scheduled frame. Zero means none.
type FrameHandle uint64

// FrameScheduler runs callbacks once per display frame on the UI goroutine.
type FrameScheduler interface {
	Request(fn func()) FrameHandle
	// Cancel drops a pending frame. Unknown or zero handles are ignored.
	Cancel(h FrameHandle)
}

const frameInterval = time.Second / 60

type timerFrames struct {
	mu      sync.Mutex
	next    FrameHandle
	pending map[FrameHandle]*time.Timer
}

// NewFrameScheduler returns a scheduler that delivers frames through fyne.Do.
func NewFrameScheduler() FrameScheduler {
	return &timerFrames{pending: make(map[FrameHandle]*time.Timer)}
}

func (f *timerFrames) Request(fn func()) FrameHandle {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.next++
	h := f.next
	f.pending[h] = time.AfterFunc(frameInterval, func() {
		fyne.Do(func() { f.deliver(h, fn) })
	})
	return h
}

// deliver runs fn unless h was cancelled after its timer fired.
func (f *timerFrames) deliver(h FrameHandle, fn func()) {
	f.mu.Lock()
	_, ok := f.pending[h]
	delete(f.pending, h)
	f.mu.Unlock()

	if ok {
		fn()
	}
}

func (f *timerFrames) Cancel(h FrameHandle) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.pending[h]
	if !ok {
		return
	}
	t.Stop()
	delete(f.pending, h)
}

// AutoScrollSensor scrolls a target continuously while a drag hovers near its edges.
type AutoScrollSensor struct {
	target ScrollTarget
	source DragSource
	frames FrameScheduler

	threshold float32
	speed     float32

	enabled    bool
	detachOver func()
	detachEnd  func()

	frame FrameHandle
	zone  ScrollZone
}

// NewAutoScrollSensor builds a sensor for target fed by source.
// It always listens for the drag-end signal; cfg.Enable decides whether drag-over is tracked.
func NewAutoScrollSensor(target ScrollTarget, source DragSource, cfg AutoScrollConfig, frames FrameScheduler) *AutoScrollSensor {
	cfg = cfg.normalized()
	if frames == nil {
		frames = NewFrameScheduler()
	}
	s := &AutoScrollSensor{
		target:    target,
		source:    source,
		frames:    frames,
		threshold: cfg.ScrollThreshold,
		speed:     cfg.ScrollSpeed,
	}
	s.detachEnd = source.OnDragEnd(s.Stop)
	s.SetEnabled(cfg.Enable)
	return s
}

// SetEnabled attaches or detaches the drag-over handler. Disabling stops a running loop.
func (s *AutoScrollSensor) SetEnabled(enable bool) {
	s.enabled = enable
	if enable {
		if s.detachOver == nil {
			s.detachOver = s.source.OnDragOver(s.DragOver)
		}
		return
	}

	if s.detachOver != nil {
		s.detachOver()
		s.detachOver = nil
	}
	s.Stop()
}

func (s *AutoScrollSensor) Enabled() bool {
	return s.enabled
}

// Running reports whether a scroll loop is scheduled.
func (s *AutoScrollSensor) Running() bool {
	return s.frame != 0
}

// DragOver reacts to a drag hovering at the absolute position abs.
func (s *AutoScrollSensor) DragOver(abs fyne.Position) {
	if !s.enabled {
		return
	}

	zone := ZoneFor(s.target.PointerY(abs), s.target.Height(), s.threshold)
	if zone == ZoneNone {
		s.Stop()
		return
	}

	if s.frame != 0 {
		if zone == s.zone {
			return
		}
		s.Stop()
	}

	s.zone = zone
	amount := ScrollAmount(zone, s.speed)
	var tick func()
	tick = func() {
		s.target.ScrollBy(amount)
		s.frame = s.frames.Request(tick)
	}
	s.frame = s.frames.Request(tick)
}

// Stop cancels the scroll loop. It is safe to call when nothing runs.
func (s *AutoScrollSensor) Stop() {
	if s.frame == 0 {
		return
	}
	s.frames.Cancel(s.frame)
	s.frame = 0
	s.zone = ZoneNone
}

// Destroy detaches every handler and stops scrolling.
func (s *AutoScrollSensor) Destroy() {
	s.SetEnabled(false)
	if s.detachEnd != nil {
		s.detachEnd()
		s.detachEnd = nil
	}
}

// ElementTarget scrolls a scroll container.
type ElementTarget struct {
	Scroll *container.Scroll
}

func (e *ElementTarget) PointerY(abs fyne.Position) float32 {
	top := fyne.CurrentApp().Driver().AbsolutePositionForObject(e.Scroll).Y
	return abs.Y - top
}

func (e *ElementTarget) Height() float32 {
	return e.Scroll.Size().Height
}

func (e *ElementTarget) ScrollBy(dy float32) {
	scrollContainerBy(e.Scroll, dy)
}

// WindowTarget scrolls the whole canvas. Pointer positions are used as they are.
type WindowTarget struct {
	Canvas fyne.Canvas
}

func (w *WindowTarget) PointerY(abs fyne.Position) float32 {
	return abs.Y
}

func (w *WindowTarget) Height() float32 {
	return w.Canvas.Size().Height
}

func (w *WindowTarget) ScrollBy(dy float32) {
	if s, ok := w.Canvas.Content().(*container.Scroll); ok {
		scrollContainerBy(s, dy)
	}
}

func scrollContainerBy(s *container.Scroll, dy float32) {
	if s == nil || s.Content == nil {
		return
	}
	maxY := s.Content.MinSize().Height - s.Size().Height
	if maxY < 0 {
		maxY = 0
	}
	next := clamp32(s.Offset.Y+dy, 0, maxY)
	if next == s.Offset.Y {
		return
	}
	s.Offset.Y = next
	s.Refresh()
}
