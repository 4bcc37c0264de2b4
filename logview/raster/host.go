package raster

import (
	"context"
	"image"
	"sync"
	"time"

	"golang.org/x/image/draw"

	"github.com/iw2rmb/logtext/logview"
)

// Painter is the part of a View the host drives.
type Painter interface {
	Paint(dirty image.Rectangle)
}

// HostConfig configures a Host. Zero values select the defaults.
type HostConfig struct {
	// OnPresent, when set, receives every presented frame. The image is
	// reused by the next frame.
	OnPresent func(frame *image.RGBA)
	// OnDrag receives the text of drag-out gestures.
	OnDrag func(text string)
}

// Host is a headless logview.Host. Post and timer callbacks are queued and
// run by Flush or Run on the caller's goroutine, followed by one repaint of
// everything invalidated.
type Host struct {
	cfg HostConfig

	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	painter Painter

	// Owned by the loop goroutine.
	dirty  image.Rectangle
	frame  *image.RGBA
	cursor logview.CursorShape
}

var _ logview.Host = (*Host)(nil)

func NewHost(cfg HostConfig) *Host {
	return &Host{cfg: cfg, wake: make(chan struct{}, 1)}
}

// Attach sets the view painted after each flush.
func (h *Host) Attach(p Painter) {
	h.mu.Lock()
	h.painter = p
	h.mu.Unlock()
}

func (h *Host) Update(r image.Rectangle) {
	if r.Empty() {
		return
	}
	h.dirty = h.dirty.Union(r)
}

// Post is safe to call from any goroutine.
func (h *Host) Post(fn func()) {
	h.mu.Lock()
	h.queue = append(h.queue, fn)
	h.mu.Unlock()
	select {
	case h.wake <- struct{}{}:
	default:
	}
}

type timer struct {
	stop chan struct{}
	once sync.Once
}

func (t *timer) Stop() { t.once.Do(func() { close(t.stop) }) }

// StartTimer posts fn every d until stopped. A tick that is already queued
// when the timer stops is dropped.
func (h *Host) StartTimer(d time.Duration, fn func()) logview.Timer {
	t := &timer{stop: make(chan struct{})}
	tick := time.NewTicker(d)
	go func() {
		defer tick.Stop()
		for {
			select {
			case <-t.stop:
				return
			case <-tick.C:
				h.Post(func() {
					select {
					case <-t.stop:
					default:
						fn()
					}
				})
			}
		}
	}()
	return t
}

func (h *Host) NewCanvas(size image.Point) (logview.Canvas, error) {
	return NewCanvas(size)
}

func (h *Host) Present(c logview.Canvas) {
	cv, ok := c.(*Canvas)
	if !ok {
		return
	}
	src := cv.RGBA()
	if h.frame == nil || h.frame.Rect != src.Rect {
		h.frame = image.NewRGBA(src.Rect)
	}
	draw.Draw(h.frame, src.Rect, src, src.Rect.Min, draw.Src)
	if h.cfg.OnPresent != nil {
		h.cfg.OnPresent(h.frame)
	}
}

func (h *Host) StartDrag(text string) {
	if h.cfg.OnDrag != nil {
		h.cfg.OnDrag(text)
	}
}

func (h *Host) SetCursor(shape logview.CursorShape) { h.cursor = shape }

// Cursor returns the pointer shape last requested by the view.
func (h *Host) Cursor() logview.CursorShape { return h.cursor }

// Frame returns the last presented frame, or nil.
func (h *Host) Frame() *image.RGBA { return h.frame }

// Flush runs queued work, including work queued meanwhile, then paints the
// invalidated area once. It reports whether anything ran.
func (h *Host) Flush() bool {
	ran := false
	for {
		h.mu.Lock()
		q := h.queue
		h.queue = nil
		p := h.painter
		h.mu.Unlock()
		if len(q) == 0 {
			if !h.dirty.Empty() && p != nil {
				dirty := h.dirty
				h.dirty = image.Rectangle{}
				p.Paint(dirty)
				ran = true
				continue
			}
			return ran
		}
		for _, fn := range q {
			fn()
		}
		ran = true
	}
}

// Run flushes whenever work arrives, until ctx is done.
func (h *Host) Run(ctx context.Context) error {
	for {
		h.Flush()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-h.wake:
		}
	}
}
