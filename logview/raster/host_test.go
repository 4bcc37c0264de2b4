package raster

import (
	"context"
	"image"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/logtext/logview"
)

func newHostedView(t *testing.T, cfg HostConfig) (*Host, *logview.View) {
	t.Helper()
	h := NewHost(cfg)
	v := logview.New(h, logview.Config{Clipboard: &MemoryClipboard{}})
	h.Attach(v)
	v.Resize(image.Pt(320, 160))
	return h, v
}

func TestHost_FlushPaintsFrame(t *testing.T) {
	presented := 0
	h, v := newHostedView(t, HostConfig{OnPresent: func(*image.RGBA) { presented++ }})
	v.Append("hello world", 0)

	require.True(t, h.Flush())
	frame := h.Frame()
	require.NotNil(t, frame)
	assert.Equal(t, image.Pt(320, 160), frame.Rect.Size())
	assert.Positive(t, presented)
	assert.Positive(t, countDark(frame, image.Rect(1, 0, 100, 16)))
	assert.Zero(t, countDark(frame, image.Rect(1, 40, 320, 160)))

	assert.False(t, h.Flush())
}

func TestHost_RepaintsOnlyWhenInvalidated(t *testing.T) {
	presented := 0
	h, v := newHostedView(t, HostConfig{OnPresent: func(*image.RGBA) { presented++ }})
	v.Append("one", 0)
	h.Flush()
	before := presented

	v.SetScrollLock(true)
	assert.False(t, h.Flush())
	assert.Equal(t, before, presented)

	v.SelectAll()
	require.True(t, h.Flush())
	assert.Equal(t, before+1, presented)
}

func TestHost_RunDeliversPostedWork(t *testing.T) {
	h, v := newHostedView(t, HostConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- h.Run(ctx) }()

	lines := make(chan int, 1)
	go h.Post(func() {
		v.Append("from another goroutine", 0)
		lines <- v.LineCount()
	})

	select {
	case n := <-lines:
		assert.Equal(t, 1, n)
	case <-time.After(5 * time.Second):
		t.Fatal("posted work did not run")
	}

	cancel()
	assert.ErrorIs(t, <-errc, context.Canceled)
}

func TestHost_TimerStops(t *testing.T) {
	h := NewHost(HostConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	var ticks atomic.Int32
	tm := h.StartTimer(2*time.Millisecond, func() { ticks.Add(1) })
	require.Eventually(t, func() bool { return ticks.Load() >= 3 }, 5*time.Second, time.Millisecond)

	tm.Stop()
	tm.Stop()
	time.Sleep(20 * time.Millisecond)
	n := ticks.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, n, ticks.Load())
}

func TestHost_DragAndCursor(t *testing.T) {
	var drags []string
	h := NewHost(HostConfig{OnDrag: func(s string) { drags = append(drags, s) }})
	h.StartDrag("text")
	h.SetCursor(logview.CursorIBeam)

	assert.Equal(t, []string{"text"}, drags)
	assert.Equal(t, logview.CursorIBeam, h.Cursor())
}
