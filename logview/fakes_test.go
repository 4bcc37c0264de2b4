package logview

import (
	"errors"
	"image"
	"image/color"
	"time"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

type fakeTimer struct {
	d       time.Duration
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() { t.stopped = true }

type fakeHost struct {
	posted    []func()
	updates   []image.Rectangle
	timers    []*fakeTimer
	drags     []string
	cursor    CursorShape
	presented int
	canvasErr error
	canvases  int
	lastFrame *fakeCanvas
}

func (h *fakeHost) Update(r image.Rectangle) { h.updates = append(h.updates, r) }

func (h *fakeHost) Post(fn func()) { h.posted = append(h.posted, fn) }

func (h *fakeHost) StartTimer(d time.Duration, fn func()) Timer {
	t := &fakeTimer{d: d, fn: fn}
	h.timers = append(h.timers, t)
	return t
}

func (h *fakeHost) NewCanvas(size image.Point) (Canvas, error) {
	if h.canvasErr != nil {
		return nil, h.canvasErr
	}
	h.canvases++
	return newFakeCanvas(size), nil
}

func (h *fakeHost) Present(c Canvas) {
	h.presented++
	h.lastFrame = c.(*fakeCanvas)
}

func (h *fakeHost) StartDrag(text string)       { h.drags = append(h.drags, text) }
func (h *fakeHost) SetCursor(shape CursorShape) { h.cursor = shape }

// drain runs posted work, including work posted while draining.
func (h *fakeHost) drain() {
	for len(h.posted) > 0 {
		fns := h.posted
		h.posted = nil
		for _, fn := range fns {
			fn()
		}
	}
}

// fire runs every live timer with period d once.
func (h *fakeHost) fire(d time.Duration) int {
	n := 0
	for _, t := range append([]*fakeTimer(nil), h.timers...) {
		if !t.stopped && t.d == d {
			t.fn()
			n++
		}
	}
	return n
}

func (h *fakeHost) liveTimers(d time.Duration) int {
	n := 0
	for _, t := range h.timers {
		if !t.stopped && t.d == d {
			n++
		}
	}
	return n
}

type textOp struct {
	x, baseline int
	text        string
	fg          color.RGBA
	attrs       Attr
}

type fakeCanvas struct {
	bounds image.Rectangle
	clip   image.Rectangle
	fills  []image.Rectangle
	texts  []textOp
	xors   []image.Rectangle
	images []image.Point
	vlines []int
}

func newFakeCanvas(size image.Point) *fakeCanvas {
	b := image.Rectangle{Max: size}
	return &fakeCanvas{bounds: b, clip: b}
}

func (c *fakeCanvas) reset() {
	c.fills, c.texts, c.xors, c.images, c.vlines = nil, nil, nil, nil, nil
}

func (c *fakeCanvas) Bounds() image.Rectangle   { return c.bounds }
func (c *fakeCanvas) SetClip(r image.Rectangle) { c.clip = r }

func (c *fakeCanvas) Fill(r image.Rectangle, _ color.Color) { c.fills = append(c.fills, r) }

func (c *fakeCanvas) VLine(x, _, _, _ int, _ color.Color) { c.vlines = append(c.vlines, x) }

func (c *fakeCanvas) XorVLine(x, y0, y1, width int, _ color.Color) {
	c.xors = append(c.xors, image.Rect(x, y0, x+width, y1))
}

func (c *fakeCanvas) Text(x, baseline int, s []rune, _ font.Face, fg color.Color, attrs Attr) {
	c.texts = append(c.texts, textOp{x: x, baseline: baseline, text: string(s), fg: toRGBA(fg), attrs: attrs})
}

func (c *fakeCanvas) Image(dst image.Point, _ image.Image, _ image.Rectangle) {
	c.images = append(c.images, dst)
}

func (c *fakeCanvas) Advance(face font.Face, r rune) int {
	adv, _ := face.GlyphAdvance(r)
	return adv.Round()
}

type fakeClipboard struct {
	text map[ClipboardMode]string
}

func (c *fakeClipboard) WriteText(s string, mode ClipboardMode) error {
	if c.text == nil {
		c.text = map[ClipboardMode]string{}
	}
	c.text[mode] = s
	return nil
}

var allRunes = []basicfont.Range{{Low: 0, High: unicode.MaxRune + 1}}

// testFonts serves "Mono", a grid face sized from the point size, and
// "Prop", which is not fixed-pitch.
type testFonts struct{}

func (testFonts) Face(d FontDesc) (font.Face, error) {
	size := int(d.Size)
	switch d.Family {
	case "Mono":
		return &basicfont.Face{Advance: size, Width: size, Height: 2 * size, Ascent: 2*size - 3, Descent: 3, Ranges: allRunes}, nil
	case "Prop":
		return propFace{&basicfont.Face{Advance: size, Width: size, Height: 2 * size, Ascent: 2*size - 3, Descent: 3, Ranges: allRunes}}, nil
	}
	return nil, errors.New("unknown family")
}

type propFace struct{ *basicfont.Face }

func (f propFace) GlyphAdvance(r rune) (fixed.Int26_6, bool) {
	if r == 'i' {
		return fixed.I(3), true
	}
	return f.Face.GlyphAdvance(r)
}

var monoFont = FontDesc{Family: "Mono", Size: 8}

const (
	testCharWidth  = 8
	testLineHeight = 16
)

// newTestView returns a measured 40x10 cell view (plus a one pixel text
// border).
func newTestView(cfg Config) (*View, *fakeHost) {
	h := &fakeHost{}
	if cfg.Fonts == nil {
		cfg.Fonts = testFonts{}
	}
	if cfg.Font == (FontDesc{}) {
		cfg.Font = monoFont
	}
	v := New(h, cfg)
	v.Resize(image.Pt(textBorder+40*testCharWidth, 10*testLineHeight))
	v.Paint(v.viewportRect())
	h.drain()
	h.updates = nil
	return v, h
}

func appendLines(v *View, texts ...string) {
	for _, text := range texts {
		v.Append(text, 0)
	}
}

// cellCenter returns the viewport pixel in the middle of c.
func cellCenter(v *View, line, col int) image.Point {
	p := v.CellToPoint(cellAt(line, col))
	return p.Add(image.Pt(v.CharWidth()/2, v.LineHeight()/2))
}
