package logview

import (
	"fmt"
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/iw2rmb/logtext/buffer"
)

func cellAt(line, col int) buffer.Cell { return buffer.Cell{Line: line, Col: col} }

func TestView_MeasuresCharWidthOnFirstPaint(t *testing.T) {
	h := &fakeHost{}
	var metrics [][2]int
	v := New(h, Config{
		Fonts:  testFonts{},
		Font:   monoFont,
		Notify: Notify{FontMetricsChanged: func(lh, cw int) { metrics = append(metrics, [2]int{lh, cw}) }},
	})
	v.Resize(image.Pt(200, 100))
	if v.CharWidth() != 0 {
		t.Fatalf("char width before paint: got %d, want 0", v.CharWidth())
	}

	v.Paint(v.viewportRect())
	if got := v.CharWidth(); got != testCharWidth {
		t.Fatalf("char width: got %d, want %d", got, testCharWidth)
	}
	if h.presented != 0 {
		t.Fatalf("measuring pass must not present a frame")
	}
	if diff := cmp.Diff([][2]int{{testLineHeight, testCharWidth}}, metrics); diff != "" {
		t.Fatalf("metrics notifications (-want +got):\n%s", diff)
	}

	h.drain()
	if len(h.updates) == 0 {
		t.Fatalf("expected a full repaint request after measuring")
	}
	v.Paint(v.viewportRect())
	if h.presented != 1 {
		t.Fatalf("presented: got %d, want 1", h.presented)
	}
}

func TestView_AppendAndDeferredTrim(t *testing.T) {
	var trims []int
	v, h := newTestView(Config{Notify: Notify{Trimmed: func(n int) { trims = append(trims, n) }}})
	v.SetMaxLogLines(100)

	for i := 0; i < 115; i++ {
		if got := v.Append(fmt.Sprintf("line %d", i), 0); got != i {
			t.Fatalf("append index: got %d, want %d", got, i)
		}
	}
	if got := v.LineCount(); got != 115 {
		t.Fatalf("line count before refresh: got %d, want 115", got)
	}

	h.drain()
	if got := v.LineCount(); got != 100 {
		t.Fatalf("line count: got %d, want 100", got)
	}
	if diff := cmp.Diff([]int{15}, trims); diff != "" {
		t.Fatalf("trim notifications (-want +got):\n%s", diff)
	}
	if got := v.Item(0).Text(); got != "line 15" {
		t.Fatalf("oldest line: got %q, want %q", got, "line 15")
	}
}

func TestView_LineCountMatchesAppendsMinusRemovals(t *testing.T) {
	v, h := newTestView(Config{})
	removed := 0
	v.SetNotify(Notify{Trimmed: func(n int) { removed += n }})
	v.SetMaxLogLines(30)

	appended := 0
	for round := 0; round < 7; round++ {
		for i := 0; i < 13; i++ {
			v.Append("x", 0)
			appended++
		}
		h.drain()
		if got, want := v.LineCount(), appended-removed; got != want {
			t.Fatalf("round %d: line count %d, want %d", round, got, want)
		}
	}
	if removed == 0 {
		t.Fatalf("expected trimming to occur")
	}
}

func TestView_ClearRangeDoesNotNotify(t *testing.T) {
	calls := 0
	v, _ := newTestView(Config{Notify: Notify{Trimmed: func(int) { calls++ }}})
	appendLines(v, "a", "b", "c", "d")
	v.ClearRange(1, 2)
	if got := v.PlainText("|"); got != "a|d|" {
		t.Fatalf("text: got %q, want %q", got, "a|d|")
	}
	if calls != 0 {
		t.Fatalf("clear range raised trimmed")
	}
}

func TestView_SetFontIgnoresProportional(t *testing.T) {
	v, _ := newTestView(Config{})
	before := v.Font()
	v.SetFont(FontDesc{Family: "Prop", Size: 12})
	if got := v.Font(); got != before {
		t.Fatalf("font: got %v, want %v", got, before)
	}
	v.SetFont(FontDesc{Family: "Nope", Size: 12})
	if got := v.Font(); got != before {
		t.Fatalf("font after unknown family: got %v, want %v", got, before)
	}

	v.SetFont(FontDesc{Family: "Mono", Size: 10})
	if got := v.Font().Size; got != 10 {
		t.Fatalf("font size: got %v, want 10", got)
	}
	if v.CharWidth() != 0 {
		t.Fatalf("char width must be unknown after a font change")
	}
}

func TestView_Zoom(t *testing.T) {
	var spacing [][2]int
	v, _ := newTestView(Config{Notify: Notify{}})
	v.SetNotify(Notify{LineSpacingChanged: func(prev, next int) { spacing = append(spacing, [2]int{prev, next}) }})

	v.EnlargeFont()
	if got := v.FontZoom(); got != 1 {
		t.Fatalf("zoom: got %d, want 1", got)
	}
	if got := v.LineHeight(); got != 18 {
		t.Fatalf("line height: got %d, want 18", got)
	}
	if got := v.Font().Size; got != monoFont.Size {
		t.Fatalf("base size changed by zoom: got %v", got)
	}
	v.ResetFontZoom()
	for i := 0; i < 20; i++ {
		v.ShrinkFont()
	}
	if got := v.Font().Size + float64(v.FontZoom()); got != minFontSize {
		t.Fatalf("shrink floor: got %v, want %v", got, minFontSize)
	}
	if diff := cmp.Diff([][2]int{{16, 18}, {18, 16}}, spacing[:2]); diff != "" {
		t.Fatalf("line spacing notifications (-want +got):\n%s", diff)
	}
}

func TestView_PointCellRoundTrip(t *testing.T) {
	for _, height := range []int{160, 170} {
		h := &fakeHost{}
		v := New(h, Config{Fonts: testFonts{}, Font: monoFont})
		v.Resize(image.Pt(textBorder+40*testCharWidth, height))
		v.Paint(v.viewportRect())
		for i := 0; i < 100; i++ {
			v.Append(fmt.Sprintf("%03d some log text that is long enough to scroll sideways", i), 0)
		}
		h.drain()

		for _, vpos := range []int{0, 37, v.VerticalScrollBar().Maximum()} {
			v.VerticalScrollBar().SetValue(vpos)
			first, last := v.firstVisibleLine(), v.lastVisibleLine()
			for line := first; line <= last; line++ {
				for _, col := range []int{0, 1, 17, 39} {
					c := cellAt(line, col)
					p := v.CellToPoint(c)
					if p.Y < 0 || p.Y >= height {
						continue
					}
					if got := v.PointToCell(p); got != c {
						t.Fatalf("height %d scroll %d: round trip %v -> %v -> %v", height, vpos, c, p, got)
					}
				}
			}
		}
	}
}

func TestView_PointToCellGutterAndClamp(t *testing.T) {
	v, h := newTestView(Config{GutterWidth: 12})
	appendLines(v, "abc", "def")
	h.drain()

	if got := v.PointToCell(image.Pt(5, 20)); got != cellAt(1, 0) {
		t.Fatalf("gutter point: got %v, want (1,0)", got)
	}
	if got := v.PointToCell(image.Pt(50, 150)); got.Line != 2 {
		t.Fatalf("below content: got line %d, want 2", got.Line)
	}
	if got := v.PointToCell(image.Pt(50, -30)); got.Line != 0 {
		t.Fatalf("above viewport: got line %d, want 0", got.Line)
	}
}

func TestView_SelectAll(t *testing.T) {
	clip := &fakeClipboard{}
	v, _ := newTestView(Config{Clipboard: clip})
	appendLines(v, "one", "two", "three")
	v.SelectAll()

	want := buffer.Region{First: cellAt(0, 0), Second: cellAt(3, 0)}
	if got := v.Selection(); got != want {
		t.Fatalf("selection: got %v, want %v", got, want)
	}
	if got, want := v.SelectedText(), v.PlainText("\n"); got != want {
		t.Fatalf("selected text: got %q, want %q", got, want)
	}
	if got := clip.text[ClipboardSelection]; got != "one\ntwo\nthree\n" {
		t.Fatalf("selection clipboard: got %q", got)
	}

	v.Copy()
	if got := clip.text[ClipboardStandard]; got != "one\ntwo\nthree\n" {
		t.Fatalf("clipboard: got %q", got)
	}

	v.ClearSelection()
	if v.HasSelectedText() || v.SelectedText() != "" {
		t.Fatalf("selection not cleared")
	}
	if got := clip.text[ClipboardSelection]; got != "" {
		t.Fatalf("selection clipboard after clear: got %q", got)
	}
}

func TestView_SetCaretPosition(t *testing.T) {
	v, _ := newTestView(Config{})
	appendLines(v, "abcdef", "xy", "last line")

	cases := []struct {
		line, col int
		want      buffer.Cell
	}{
		{line: 0, col: 3, want: cellAt(0, 3)},
		{line: 1, col: 99, want: cellAt(1, 2)},
		{line: 99, col: 5, want: cellAt(3, 0)},
		{line: -1, col: -1, want: cellAt(2, 8)},
		{line: -10, col: -100, want: cellAt(0, 0)},
	}
	for _, tc := range cases {
		v.SetCaretPosition(tc.line, tc.col)
		if got := v.CaretPosition(); got != tc.want {
			t.Fatalf("caret(%d,%d): got %v, want %v", tc.line, tc.col, got, tc.want)
		}
	}
}

func TestView_TrimShiftsSelectionAndCaret(t *testing.T) {
	v, h := newTestView(Config{})
	for i := 0; i < 30; i++ {
		v.Append(fmt.Sprintf("line %02d", i), 0)
	}
	h.drain()
	v.setSelection(cellAt(20, 1), cellAt(22, 3))
	v.updateCaret(cellAt(22, 3))

	v.SetMaxLogLines(20)
	if got, want := v.Selection(), (buffer.Region{First: cellAt(10, 1), Second: cellAt(12, 3)}); got != want {
		t.Fatalf("selection after trim: got %v, want %v", got, want)
	}
	if got := v.CaretPosition(); got != cellAt(12, 3) {
		t.Fatalf("caret after trim: got %v, want (12,3)", got)
	}
	if got := v.SelectedText(); got != "ine 20\nline 21\nlin" {
		t.Fatalf("selected text after trim: got %q", got)
	}

	v.setSelection(cellAt(0, 0), cellAt(2, 0))
	v.SetMaxLogLines(15)
	if v.HasSelectedText() {
		t.Fatalf("selection trimmed away must be cleared")
	}
}

func TestView_VisitItems(t *testing.T) {
	v, h := newTestView(Config{})
	appendLines(v, "a", "bb", "ccc", "dddd")
	h.drain()

	var seen []string
	v.VisitItems(1, func(line int, it *buffer.Item) bool {
		seen = append(seen, it.Text())
		it.SetStyle(buffer.StyleID(line))
		if v.UpdatesEnabled() {
			t.Fatalf("updates must be suspended during a visit")
		}
		return line < 2
	})
	if diff := cmp.Diff([]string{"bb", "ccc"}, seen); diff != "" {
		t.Fatalf("visited (-want +got):\n%s", diff)
	}
	if !v.UpdatesEnabled() {
		t.Fatalf("updates not restored after visit")
	}
	if got := v.Item(2).Style(); got != 2 {
		t.Fatalf("style set by visitor: got %d, want 2", got)
	}

	v.setSelection(cellAt(1, 1), cellAt(3, 0))
	seen = nil
	v.VisitSelection(func(_ int, it *buffer.Item) bool {
		seen = append(seen, it.Text())
		return true
	})
	if diff := cmp.Diff([]string{"bb", "ccc"}, seen); diff != "" {
		t.Fatalf("visited selection (-want +got):\n%s", diff)
	}
}

func TestView_LinePixmaps(t *testing.T) {
	v, h := newTestView(Config{GutterWidth: 10})
	appendLines(v, "a", "b")
	h.drain()

	if v.SetLinePixmap(5, 1) {
		t.Fatalf("pixmap on invalid line must fail")
	}
	if !v.SetLinePixmap(1, 7) {
		t.Fatalf("pixmap on line 1 failed")
	}
	v.SetPixmap(7, image.NewRGBA(image.Rect(0, 0, 10, 10)))
	h.drain()
	v.Paint(v.viewportRect())
	if got := len(h.lastFrame.images); got != 1 {
		t.Fatalf("gutter images drawn: got %d, want 1", got)
	}
	// 10px image centered in a 16px row starting at y=16.
	if got := h.lastFrame.images[0]; got != image.Pt(0, 19) {
		t.Fatalf("image position: got %v, want (0,19)", got)
	}

	v.ClearLinePixmap(1)
	h.lastFrame.reset()
	v.Paint(v.viewportRect())
	if got := len(h.lastFrame.images); got != 0 {
		t.Fatalf("gutter images after clear: got %d, want 0", got)
	}
}

func TestView_ClearResetsState(t *testing.T) {
	avail := []bool{}
	v, h := newTestView(Config{Notify: Notify{CopyAvailable: func(yes bool) { avail = append(avail, yes) }}})
	appendLines(v, "abc", "def")
	h.drain()
	v.SelectAll()
	v.Clear()
	if v.LineCount() != 0 || v.HasSelectedText() || v.CaretPosition() != (buffer.Cell{}) {
		t.Fatalf("clear: lines=%d selected=%v caret=%v", v.LineCount(), v.HasSelectedText(), v.CaretPosition())
	}
	if diff := cmp.Diff([]bool{true, false}, avail); diff != "" {
		t.Fatalf("copy available (-want +got):\n%s", diff)
	}
}

func TestView_SetLineTextUpdatesHorizontalRange(t *testing.T) {
	v, h := newTestView(Config{})
	appendLines(v, "short")
	h.drain()
	if got := v.HorizontalScrollBar().Maximum(); got != 0 {
		t.Fatalf("hbar max before: got %d, want 0", got)
	}

	long := fmt.Sprintf("%050d", 7)
	if !v.SetLineText(0, long) {
		t.Fatalf("SetLineText failed")
	}
	if got, want := v.MaxLineChars(), 50; got != want {
		t.Fatalf("MaxLineChars: got %d, want %d", got, want)
	}
	if got, want := v.HorizontalScrollBar().Maximum(), 50-v.visibleChars(); got != want {
		t.Fatalf("hbar max: got %d, want %d", got, want)
	}

	v.SetLineText(0, "x")
	if got := v.HorizontalScrollBar().Maximum(); got != 0 {
		t.Fatalf("hbar max after shrink: got %d, want 0", got)
	}
	if v.SetLineText(3, "nope") {
		t.Fatalf("SetLineText accepted an invalid line")
	}
}

func TestView_BurstTrimEndsAtCap(t *testing.T) {
	var trims []int
	v, h := newTestView(Config{Notify: Notify{Trimmed: func(n int) { trims = append(trims, n) }}})
	v.SetMaxLogLines(100)

	for i := 0; i < 125; i++ {
		v.Append(fmt.Sprintf("line %d", i), 0)
	}
	h.drain()
	if got := v.LineCount(); got != 100 {
		t.Fatalf("line count: got %d, want 100", got)
	}
	if diff := cmp.Diff([]int{20, 5}, trims); diff != "" {
		t.Fatalf("trim notifications (-want +got):\n%s", diff)
	}
	if got := v.Item(0).Text(); got != "line 25" {
		t.Fatalf("oldest line: got %q, want %q", got, "line 25")
	}
}

func TestView_ClearReleasesLocks(t *testing.T) {
	v, h := newTestView(Config{})
	for i := 0; i < 30; i++ {
		v.Append("line", 0)
	}
	h.drain()
	v.SetScrollLock(true)
	v.Wheel(WheelEvent{Steps: -1})

	v.Clear()
	if v.HardLocked() || v.SoftLocked() {
		t.Fatalf("locks after Clear: hard=%v soft=%v", v.HardLocked(), v.SoftLocked())
	}
}
