package logview

import "github.com/iw2rmb/logtext/buffer"

// Notify holds the callbacks a View raises. Nil fields are skipped.
type Notify struct {
	// Trimmed reports n lines removed from the top. Line-indexed side tables
	// held by the application must shift by n.
	Trimmed       func(n int)
	CopyAvailable func(yes bool)

	Clicked       func(at buffer.Cell, ev MouseEvent)
	DoubleClicked func(at buffer.Cell)
	ContextClick  func(line int, ev MouseEvent)

	GutterClick         func(line int, ev MouseEvent)
	GutterContextClick  func(line int, ev MouseEvent)
	GutterDoubleClicked func(line int)

	// Hover reports the cell under an idle pointer; col is -1 in the gutter
	// and (-1, -1) cancels.
	Hover func(line, col int)

	KeyPress func(ev KeyEvent)

	// ScrollLockChanged reports whether tail following is suspended.
	ScrollLockChanged  func(locked bool)
	FontMetricsChanged func(lineHeight, charWidth int)
	LineSpacingChanged func(prev, next int)
}

func (v *View) SetNotify(n Notify) { v.notify = n }

func (v *View) emitTrimmed(n int) {
	if v.notify.Trimmed != nil {
		v.notify.Trimmed(n)
	}
}

func (v *View) emitCopyAvailable(yes bool) {
	if v.notify.CopyAvailable != nil {
		v.notify.CopyAvailable(yes)
	}
}

func (v *View) emitHover(line, col int) {
	if v.notify.Hover != nil {
		v.notify.Hover(line, col)
	}
}

func (v *View) emitScrollLock() {
	if v.notify.ScrollLockChanged != nil {
		v.notify.ScrollLockChanged(!v.scrollable())
	}
}
