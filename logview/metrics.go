package logview

import (
	"image"

	"github.com/iw2rmb/logtext/buffer"
)

// minFontSize is the smallest size ShrinkFont goes down to.
const minFontSize = 2

// Font returns the base font, without zoom.
func (v *View) Font() FontDesc { return v.font }

// SetFont changes the base font. Faces that are not fixed-pitch, or that
// cannot be resolved, are ignored.
func (v *View) SetFont(desc FontDesc) {
	if !v.applyFont(desc, v.zoom) {
		return
	}
	v.EnsureCaretVisible()
	v.SetUpdatesNeeded(UpdateFull)
}

func (v *View) effectiveFont() FontDesc {
	d := v.font
	d.Size += float64(v.zoom)
	return d
}

// applyFont resolves desc at the given zoom and makes it current.
func (v *View) applyFont(desc FontDesc, zoom int) bool {
	eff := desc
	eff.Size += float64(zoom)
	face, err := v.cfg.Fonts.Face(eff)
	if err != nil {
		v.log.Warn("logview: ignoring font", "font", eff, "err", err)
		return false
	}
	if !fixedPitch(face) {
		v.log.Warn("logview: ignoring non fixed pitch font", "font", eff)
		return false
	}
	v.font, v.zoom, v.face = desc, zoom, face
	v.adjustTextMetrics()
	if v.active != nil {
		v.activated = v.buildActivated(v.active)
	}
	return true
}

func (v *View) FontZoom() int { return v.zoom }

// SetFontZoom sets the size offset, in points, from the base font.
func (v *View) SetFontZoom(zoom int) {
	if zoom == v.zoom {
		return
	}
	if !v.applyFont(v.font, zoom) {
		return
	}
	v.EnsureCaretVisible()
	v.SetUpdatesNeeded(UpdateFull)
}

func (v *View) EnlargeFont() { v.SetFontZoom(v.zoom + 1) }

func (v *View) ShrinkFont() {
	if v.font.Size+float64(v.zoom) > minFontSize {
		v.SetFontZoom(v.zoom - 1)
	}
}

func (v *View) ResetFontZoom() { v.SetFontZoom(0) }

// LineHeight returns the line spacing in pixels.
func (v *View) LineHeight() int { return v.lineHeight }

// CharWidth returns the cell advance in pixels, or 0 until the next paint
// after a font change has measured it.
func (v *View) CharWidth() int { return v.charWidth }

func (v *View) adjustTextMetrics() {
	old := v.lineHeight
	v.lineHeight, v.descent = faceMetrics(v.face)
	if old != 0 && old != v.lineHeight && v.notify.LineSpacingChanged != nil {
		v.notify.LineSpacingChanged(old, v.lineHeight)
	}
	v.charWidth = 0
	v.vbar.setSteps(v.lineHeight, v.linesPerPage()*v.lineHeight)
	v.setContentSize()
}

// measure learns the character width on an attached canvas.
func (v *View) measure(c Canvas) {
	v.charWidth = max(c.Advance(v.face, 'X'), 1)
	v.lineHeight, v.descent = faceMetrics(v.face)
	v.adjustHorizontalScrollBar()
	if v.notify.FontMetricsChanged != nil {
		v.notify.FontMetricsChanged(v.lineHeight, v.charWidth)
	}
}

// Resize sets the viewport size in pixels.
func (v *View) Resize(size image.Point) {
	if size == v.size {
		return
	}
	v.size = size
	v.vbar.setSteps(v.lineHeight, v.linesPerPage()*v.lineHeight)
	v.setContentSize()
	v.updateAll()
}

func (v *View) linesPerPage() int {
	if v.lineHeight <= 0 {
		return 0
	}
	return v.size.Y / v.lineHeight
}

func (v *View) setContentSize() {
	n := v.store.Len()
	page := v.linesPerPage()
	vmax := 0
	if n > page {
		vmax = (n - page) * v.lineHeight
	}
	v.vbar.SetMaximum(vmax)
	v.adjustHorizontalScrollBar()
}

func (v *View) visibleChars() int {
	if v.charWidth == 0 {
		return 0
	}
	return max(v.size.X-v.gutterOffset, 0) / v.charWidth
}

func (v *View) adjustHorizontalScrollBar() {
	if v.charWidth == 0 {
		return
	}
	vis := v.visibleChars()
	v.hbar.SetMaximum(max(v.store.MaxLineChars()-vis, 0))
	v.hbar.setSteps(1, vis)
}

// yShift is the downward offset that keeps the last line flush with the
// bottom edge while the view sits at the end of the content.
func (v *View) yShift() int {
	if v.vbar.Maximum() > 0 && v.vbar.AtMaximum() {
		return v.size.Y % v.lineHeight
	}
	return 0
}

// lineTop returns the viewport y of the top of line.
func (v *View) lineTop(line int) int {
	return line*v.lineHeight - v.vbar.Value() + v.yShift()
}

func (v *View) yToLine(y int) int {
	return floorDiv(v.vbar.Value()-v.yShift()+max(y, 0), v.lineHeight)
}

func (v *View) inGutter(x int) bool { return x < v.gutterOffset }

func (v *View) xToCol(x int) int {
	if v.charWidth == 0 || v.inGutter(x) {
		return 0
	}
	return (x-v.gutterOffset)/v.charWidth + v.hbar.Value()
}

func (v *View) firstVisibleLine() int { return v.yToLine(0) }

func (v *View) lastVisibleLine() int {
	return v.yToLine(v.size.Y - 1)
}

// CellToPoint returns the viewport position of the top-left corner of c.
func (v *View) CellToPoint(c buffer.Cell) image.Point {
	return image.Point{
		X: (c.Col-v.hbar.Value())*v.charWidth + v.gutterOffset,
		Y: v.lineTop(c.Line),
	}
}

// PointToCell maps a viewport position to a cell. The gutter maps to column
// 0 and the line is clamped to LineCount only; callers validate further.
func (v *View) PointToCell(p image.Point) buffer.Cell {
	return buffer.Cell{Line: min(v.yToLine(p.Y), v.store.Len()), Col: v.xToCol(p.X)}
}

func floorDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	q := a / b
	if (a%b != 0) && (a < 0) {
		q--
	}
	return q
}
