package logview

import "github.com/iw2rmb/logtext/buffer"

func (v *View) CaretPosition() buffer.Cell { return v.caret }

// tailCell is the position just past the last line.
func (v *View) tailCell() buffer.Cell { return buffer.Cell{Line: v.store.Len()} }

// SetCaretPosition moves the caret. The line is capped at LineCount and the
// column at the line length; negative values count back from the end
// without wrapping.
func (v *View) SetCaretPosition(line, col int) {
	n := v.store.Len()
	l := min(line, n)
	if l < 0 {
		l = max(0, n+l)
	}
	textLen := v.store.LineLen(l)
	c := min(col, textLen)
	if c < 0 {
		c = max(0, textLen+c)
	}
	v.updateCaret(buffer.Cell{Line: l, Col: c})
	v.EnsureCaretVisible()
}

func (v *View) updateCaret(at buffer.Cell) {
	old := v.caret
	v.caret = at
	if !v.showCaret || old == at {
		return
	}
	v.invalidateCaretLine(old)
	v.invalidateCaretLine(at)
}

// invalidateCaretLine repaints the caret cell plus the line background,
// which changes color with the caret line.
func (v *View) invalidateCaretLine(at buffer.Cell) {
	if v.active != nil && v.activated != nil {
		it := v.store.Item(at.Line)
		if it != nil && v.store.Valid(at.Line) {
			st := v.activated.style(it.Style())
			if st.caretLine != st.bg {
				v.invalidateLine(at.Line)
				return
			}
		}
	}
	v.invalidateCells(at, at.NextCol())
}

func (v *View) ShowCaret() bool { return v.showCaret }

func (v *View) SetShowCaret(show bool) {
	if v.showCaret == show {
		return
	}
	v.showCaret = show
	if v.focused {
		if show {
			v.startBlink()
		} else {
			v.stopBlink()
		}
	}
	v.invalidateCells(v.caret, v.caret.NextCol())
}

func (v *View) Focused() bool { return v.focused }

// FocusIn starts the caret blinking.
func (v *View) FocusIn() {
	v.focused = true
	if v.showCaret {
		v.startBlink()
	}
}

// FocusOut stops blinking and leaves the caret drawn.
func (v *View) FocusOut() {
	v.focused = false
	v.cancelHover()
	if v.stopBlink() {
		v.invalidateCells(v.caret, v.caret.NextCol())
	}
}

func (v *View) startBlink() {
	if v.blinkTimer != nil {
		return
	}
	v.blinkTimer = v.host.StartTimer(caretBlinkInterval, func() {
		v.blinkOn = !v.blinkOn
		v.invalidateCells(v.caret, v.caret.NextCol())
	})
}

func (v *View) stopBlink() bool {
	if v.blinkTimer == nil {
		return false
	}
	v.blinkTimer.Stop()
	v.blinkTimer = nil
	v.blinkOn = true
	return true
}

// BlinkOn reports the caret blink phase.
func (v *View) BlinkOn() bool { return v.blinkOn }
