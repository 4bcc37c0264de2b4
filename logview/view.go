package logview

import (
	"image"
	"log/slog"
	"math"
	"time"

	"golang.org/x/image/font"

	"github.com/iw2rmb/logtext/buffer"
)

// View is a virtualized, line-addressed log view. It is not safe for
// concurrent use: every method, and every callback it hands to its Host,
// runs on one goroutine.
type View struct {
	cfg    Config
	host   Host
	log    *slog.Logger
	notify Notify

	store *buffer.Store

	palettes  map[string]*Palette
	active    *Palette
	activated *activatedPalette

	font FontDesc
	zoom int
	face font.Face

	lineHeight int
	charWidth  int // 0 until measured by the next paint
	descent    int

	size         image.Point
	gutterWidth  int
	gutterOffset int
	pixmaps      map[int]image.Image
	canvas       Canvas

	vbar ScrollBar
	hbar ScrollBar

	sel   selection
	drag  dragState
	mouse mouseState

	caret      buffer.Cell
	showCaret  bool
	blinkOn    bool
	blinkTimer Timer
	focused    bool

	hoverTime  time.Duration
	hoverTimer Timer
	hovering   bool
	lastMove   time.Time
	editCursor bool

	updates        UpdateLevel
	updatesEnabled bool
	refreshPosted  bool
	trimPending    bool
	dirtyFrom      int

	hardLock   bool
	softLock   bool
	maxVScroll int
	escJump    bool
	finalized  bool
}

// New creates a View drawing through host.
func New(host Host, cfg Config) *View {
	cfg = cfg.withDefaults()
	v := &View{
		cfg:            cfg,
		host:           host,
		log:            cfg.Logger,
		notify:         cfg.Notify,
		store:          buffer.New(buffer.Options{MaxLines: cfg.MaxLines}),
		palettes:       map[string]*Palette{},
		pixmaps:        map[int]image.Image{},
		showCaret:      !cfg.HideCaret,
		blinkOn:        true,
		updatesEnabled: true,
		dirtyFrom:      math.MaxInt,
		escJump:        cfg.EscJumpsToEnd,
		gutterOffset:   textBorder,
	}
	v.store.OnTrim(v.trimmed)
	v.vbar.changed = v.vScrollChanged
	v.hbar.changed = func(int) { v.updateAll() }
	v.palettes[DefaultPaletteName] = newPalette(DefaultPaletteName, 1, v.systemEntry())

	if !v.applyFont(cfg.Font, 0) && !v.applyFont(DefaultFont, 0) {
		v.cfg.Fonts = BasicFonts{}
		v.applyFont(DefaultFont, 0)
	}
	v.setGutter(cfg.GutterWidth)
	v.SetHoverTime(cfg.HoverTime)
	v.ActivatePalette(DefaultPaletteName)
	return v
}

// Append adds a line and returns its index. Trimming to the configured
// maximum happens in the next deferred refresh.
func (v *View) Append(text string, style buffer.StyleID) int {
	return v.AppendItem(buffer.NewItem(text, style))
}

// AppendItem adds it, taking ownership.
func (v *View) AppendItem(it *buffer.Item) int {
	line := v.store.Append(it)
	if line < v.dirtyFrom {
		v.dirtyFrom = line
	}
	if v.store.Overflowing() {
		v.trimPending = true
		// Keep memory bounded when refreshes are suspended for long.
		if v.store.Len()-v.store.MaxLines() >= 2*(v.store.Ceiling()-v.store.MaxLines()) {
			v.store.Trim()
		}
	}
	v.SetUpdatesNeeded(UpdateConditional)
	return line
}

// Clear removes every line and resets selection, caret and scrolling.
func (v *View) Clear() {
	hadSelection := v.sel.active
	v.store.Clear()
	v.sel = selection{}
	v.drag = dragNone
	v.caret = buffer.Cell{}
	v.trimPending = false
	v.maxVScroll = 0
	v.setHardLock(false)
	v.setSoftLock(false)
	v.vbar.SetValue(0)
	v.hbar.SetValue(0)
	v.setContentSize()
	v.SetUpdatesNeeded(UpdateFull)
	if hadSelection {
		v.emitCopyAvailable(false)
	}
}

// ClearRange removes count lines from top. The range is clamped; no
// notification is raised.
func (v *View) ClearRange(top, count int) {
	v.store.ClearRange(top, count)
	v.sel = selection{}
	v.drag = dragNone
	v.caret = buffer.Cell{}
	v.setContentSize()
	v.SetUpdatesNeeded(UpdateFull)
}

// SetLineStyle sets the style of line. It reports false for an invalid line.
func (v *View) SetLineStyle(line int, id buffer.StyleID) bool {
	if !v.store.Valid(line) {
		return false
	}
	v.store.Item(line).SetStyle(id)
	v.store.Touch()
	v.invalidateLine(line)
	return true
}

// SetLineText replaces the text of line.
func (v *View) SetLineText(line int, text string) bool {
	if !v.store.SetText(line, text) {
		return false
	}
	if line == v.caret.Line && v.caret.Col > v.store.LineLen(line) {
		v.caret.Col = v.store.LineLen(line)
	}
	v.adjustHorizontalScrollBar()
	v.invalidateLine(line)
	return true
}

// SetLinePixmap associates gutter image id with line.
func (v *View) SetLinePixmap(line, id int) bool {
	if !v.store.Valid(line) || id < 0 {
		return false
	}
	v.store.Item(line).SetPixmap(id)
	v.store.Touch()
	v.invalidateLine(line)
	return true
}

func (v *View) ClearLinePixmap(line int) bool {
	if !v.store.Valid(line) {
		return false
	}
	v.store.Item(line).ClearPixmap()
	v.store.Touch()
	v.invalidateLine(line)
	return true
}

// SetPixmap registers a gutter image under id; the view keeps img.
func (v *View) SetPixmap(id int, img image.Image) {
	if id < 0 || img == nil {
		return
	}
	v.pixmaps[id] = img
	if v.gutterWidth > 0 {
		v.SetUpdatesNeeded(UpdateFull)
	}
}

func (v *View) ClearPixmap(id int) {
	if _, ok := v.pixmaps[id]; !ok {
		return
	}
	delete(v.pixmaps, id)
	if v.gutterWidth > 0 {
		v.SetUpdatesNeeded(UpdateFull)
	}
}

func (v *View) GutterWidth() int { return v.gutterWidth }

// SetGutterWidth shows a gutter of w pixels; 0 hides it.
func (v *View) SetGutterWidth(w int) {
	v.setGutter(w)
	v.SetUpdatesNeeded(UpdateFull)
}

func (v *View) setGutter(w int) {
	v.gutterWidth = max(w, 0)
	if v.gutterWidth > 0 {
		v.gutterOffset = v.gutterWidth + gutterBorder + textBorder
	} else {
		v.gutterOffset = textBorder
	}
	v.adjustHorizontalScrollBar()
}

// SetMaxLogLines sets the line cap; <= 0 is unlimited. Lines above a new,
// lower cap are trimmed immediately.
func (v *View) SetMaxLogLines(m int) { v.store.SetMaxLines(m) }

func (v *View) MaxLogLines() int { return v.store.MaxLines() }

// Finalize trims and releases spare capacity. Later appends remain valid.
func (v *View) Finalize() {
	v.trimPending = false
	v.store.Finalize()
	v.finalized = true
}

func (v *View) Finalized() bool { return v.finalized }

// trimmed runs after the store dropped n lines from the top.
func (v *View) trimmed(n int) {
	shift := func(c buffer.Cell) buffer.Cell {
		if c.Line < n {
			return buffer.Cell{}
		}
		c.Line -= n
		return c
	}
	if v.sel.active {
		v.sel.origin = shift(v.sel.origin)
		v.sel.top = shift(v.sel.top)
		v.sel.bottom = shift(v.sel.bottom)
		if v.sel.top == v.sel.bottom {
			v.ClearSelection()
		}
	}
	v.caret = shift(v.caret)
	if v.dirtyFrom != math.MaxInt {
		v.dirtyFrom = max(v.dirtyFrom-n, 0)
	}
	v.log.Debug("logview: trimmed lines", "count", n, "remaining", v.store.Len())
	v.emitTrimmed(n)
	v.maxVScroll = 0
	v.setContentSize()
	v.updateAll()
}

func (v *View) LineCount() int { return v.store.Len() }

// Length returns the rune length of line, 0 for an invalid line.
func (v *View) Length(line int) int { return v.store.LineLen(line) }

// Item returns line clamped into range, or nil when the view is empty.
func (v *View) Item(line int) *buffer.Item { return v.store.Item(line) }

func (v *View) ValidLineNumber(line int) bool { return v.store.Valid(line) }

func (v *View) MaxLineChars() int { return v.store.MaxLineChars() }

// PlainText returns every line followed by sep.
func (v *View) PlainText(sep string) string { return v.store.PlainText(sep) }

// VisitItems calls fn for each line from first until fn returns false.
// Refreshes are suspended for the walk; fn may restyle items.
func (v *View) VisitItems(first int, fn func(line int, it *buffer.Item) bool) {
	restore := v.DisableUpdates()
	defer restore()
	v.store.Visit(first, fn)
	v.store.Touch()
	v.SetUpdatesNeeded(UpdateFull)
}

// VisitSelection is VisitItems restricted to the selected lines. A
// selection ending at column 0 does not include that line.
func (v *View) VisitSelection(fn func(line int, it *buffer.Item) bool) {
	if !v.sel.active {
		return
	}
	top, bot := v.sel.top, v.sel.bottom
	last := bot.Line
	if bot.Col == 0 && last > top.Line {
		last--
	}
	v.VisitItems(top.Line, func(line int, it *buffer.Item) bool {
		if line > last {
			return false
		}
		return fn(line, it)
	})
}

// Store exposes the line store for reading. Mutate lines through the View
// so that invalidation, trimming and scrolling stay in step.
func (v *View) Store() *buffer.Store { return v.store }

func (v *View) VerticalScrollBar() *ScrollBar   { return &v.vbar }
func (v *View) HorizontalScrollBar() *ScrollBar { return &v.hbar }

// Size returns the viewport size in pixels.
func (v *View) Size() image.Point { return v.size }
