package logview

import (
	"image"

	"github.com/iw2rmb/logtext/buffer"
)

// scrollable reports whether new content may move the view to the tail.
func (v *View) scrollable() bool {
	return !v.hardLock && !v.softLock && !v.sel.active
}

// ScrollLocked reports whether tail following is suspended for any reason.
func (v *View) ScrollLocked() bool { return !v.scrollable() }

func (v *View) HardLocked() bool { return v.hardLock }
func (v *View) SoftLocked() bool { return v.softLock }

// SetScrollLock engages or releases the explicit scroll lock.
func (v *View) SetScrollLock(on bool) { v.setHardLock(on) }

func (v *View) setHardLock(on bool) {
	if v.hardLock == on {
		return
	}
	v.hardLock = on
	v.emitScrollLock()
}

func (v *View) setSoftLock(on bool) {
	if v.softLock == on {
		return
	}
	v.softLock = on
	v.emitScrollLock()
}

func (v *View) SetEscJumpsToEnd(on bool) { v.escJump = on }

// vScrollChanged engages the soft lock when the view moves above the
// furthest position reached and releases it on return to the tail.
func (v *View) vScrollChanged(value int) {
	if cur := v.vbar.Maximum(); cur < v.maxVScroll {
		v.maxVScroll = cur
	} else if value < v.maxVScroll {
		v.setSoftLock(true)
	} else {
		v.maxVScroll = value
		v.setSoftLock(false)
	}
	v.updateAll()
}

// EnsureCaretVisible recenters the view on the caret line when it is off
// screen.
func (v *View) EnsureCaretVisible() {
	line := v.caret.Line
	if line < v.firstVisibleLine() || line > v.lastVisibleLine() {
		v.vbar.SetValue((line - v.linesPerPage()/2) * v.lineHeight)
	}
}

// ScrollToEnd moves to the last line and the first column.
func (v *View) ScrollToEnd() {
	v.vbar.SetValue(v.vbar.Maximum())
	v.hbar.SetValue(v.hbar.Minimum())
}

// ScrollToTop moves to the first line and the first column.
func (v *View) ScrollToTop() {
	v.vbar.SetValue(v.vbar.Minimum())
	v.hbar.SetValue(v.hbar.Minimum())
}

func (v *View) viewportRect() image.Rectangle {
	return image.Rectangle{Max: v.size}
}

func (v *View) updateAll() {
	if v.size.X <= 0 || v.size.Y <= 0 {
		return
	}
	v.host.Update(v.viewportRect())
}

func (v *View) invalidateLine(line int) {
	v.invalidateCells(buffer.Cell{Line: line}, buffer.Cell{Line: line + 1})
}

// invalidateCells requests a repaint of the cells from a to b. A single-line
// range repaints its cell rectangle; anything else repaints full-width
// bands. The whole viewport is used while metrics are unknown.
func (v *View) invalidateCells(a, b buffer.Cell) {
	if v.charWidth == 0 {
		v.updateAll()
		return
	}
	r := buffer.Region{First: a, Second: b}.Normalized()
	var rect image.Rectangle
	if r.First.Line == r.Second.Line {
		p := v.CellToPoint(r.First)
		w := max(r.Second.Col-r.First.Col, 1) * v.charWidth
		// Padding covers the caret, which may overhang its cell.
		rect = image.Rect(p.X-1, p.Y, p.X+w+2, p.Y+v.lineHeight)
	} else {
		top := v.lineTop(r.First.Line)
		rect = image.Rect(0, top, v.size.X, v.lineTop(r.Second.Line)+v.lineHeight)
	}
	rect = rect.Intersect(v.viewportRect())
	if rect.Empty() {
		return
	}
	v.host.Update(rect)
}
