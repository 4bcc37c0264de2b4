package term

import (
	"image"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/logtext/logview"
)

// flushMsg runs work posted by the view on the next turn.
type flushMsg struct{ h *host }

type timerMsg struct {
	h  *host
	id int
}

// host adapts the Bubble Tea event loop to logview.Host. Work the view
// posts or schedules becomes commands returned from the next Update.
type host struct {
	renderer  *lipgloss.Renderer
	clipboard logview.Clipboard
	log       *slog.Logger

	queue        []func()
	flushPending bool

	timers map[int]*timer
	nextID int

	cmds []tea.Cmd

	dirty  image.Rectangle
	canvas *Canvas
	frame  string
	cursor logview.CursorShape
}

var _ logview.Host = (*host)(nil)

func newHost(r *lipgloss.Renderer, clip logview.Clipboard, log *slog.Logger) *host {
	return &host{renderer: r, clipboard: clip, log: log, timers: map[int]*timer{}}
}

func (h *host) Update(r image.Rectangle) {
	if !r.Empty() {
		h.dirty = h.dirty.Union(r)
	}
}

func (h *host) Post(fn func()) {
	h.queue = append(h.queue, fn)
	if !h.flushPending {
		h.flushPending = true
		h.cmds = append(h.cmds, func() tea.Msg { return flushMsg{h} })
	}
}

type timer struct {
	h  *host
	id int
	d  time.Duration
	fn func()
}

func (t *timer) Stop() { delete(t.h.timers, t.id) }

func (h *host) StartTimer(d time.Duration, fn func()) logview.Timer {
	h.nextID++
	t := &timer{h: h, id: h.nextID, d: d, fn: fn}
	h.timers[t.id] = t
	h.cmds = append(h.cmds, t.tick())
	return t
}

func (t *timer) tick() tea.Cmd {
	h, id := t.h, t.id
	return tea.Tick(t.d, func(time.Time) tea.Msg { return timerMsg{h, id} })
}

// fire runs a live timer and schedules its next tick.
func (h *host) fire(id int) {
	t, ok := h.timers[id]
	if !ok {
		return
	}
	t.fn()
	if h.timers[id] == t {
		h.cmds = append(h.cmds, t.tick())
	}
}

// flush runs queued work. Work posted meanwhile waits for the next turn.
func (h *host) flush() {
	q := h.queue
	h.queue = nil
	h.flushPending = false
	for _, fn := range q {
		fn()
	}
}

func (h *host) NewCanvas(size image.Point) (logview.Canvas, error) {
	return NewCanvas(size)
}

func (h *host) Present(c logview.Canvas) {
	cv, ok := c.(*Canvas)
	if !ok {
		return
	}
	h.canvas = cv
	h.frame = cv.Render(h.renderer)
}

// StartDrag has no terminal equivalent; the text goes to the clipboard.
func (h *host) StartDrag(text string) {
	if h.clipboard == nil {
		return
	}
	if err := h.clipboard.WriteText(text, logview.ClipboardStandard); err != nil {
		h.log.Warn("term: drag copy failed", "err", err)
	}
}

func (h *host) SetCursor(shape logview.CursorShape) { h.cursor = shape }

func (h *host) takeCmds() tea.Cmd {
	cmds := h.cmds
	h.cmds = nil
	return tea.Batch(cmds...)
}
