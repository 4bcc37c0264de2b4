package logview

import (
	"image"

	"github.com/iw2rmb/logtext/buffer"
)

type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
)

type MouseButton int

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// MouseEvent is a pointer event in viewport pixels. Button is the button
// that changed; Held lists the buttons down during a move.
type MouseEvent struct {
	Pos    image.Point
	Button MouseButton
	Held   MouseButton
	Mods   Modifiers
}

// WheelEvent scrolls by Steps notches; negative is toward the top.
type WheelEvent struct {
	Pos   image.Point
	Steps int
	Mods  Modifiers
}

type Key int

const (
	KeyOther Key = iota
	KeyHome
	KeyEnd
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyScrollLock
	KeyEscape
)

type KeyEvent struct {
	Key  Key
	Mods Modifiers
	// Text is the typed text for KeyOther, if any.
	Text string
}

type mouseState struct {
	pos          image.Point
	leftDown     bool
	dragStart    image.Point
	scrollTimer  Timer
	scrollStep   int
	scrollTarget image.Point
}

// MousePress handles a button press.
func (v *View) MousePress(ev MouseEvent) {
	v.cancelHover()
	at := v.PointToCell(ev.Pos)
	if v.inGutter(ev.Pos.X) {
		if v.store.Valid(at.Line) && v.notify.GutterClick != nil {
			v.notify.GutterClick(at.Line, ev)
		}
		return
	}
	if v.store.Len() == 0 {
		return
	}

	if v.store.Valid(at.Line) {
		at.Col = min(at.Col, v.store.LineLen(at.Line))
	} else {
		at.Col = 0
	}

	if ev.Button == ButtonLeft {
		v.mouse.leftDown = true
		switch {
		case ev.Mods&ModShift != 0:
			v.extendSelection(at)
		case v.sel.active && v.sel.top.Compare(at) <= 0 && at.Compare(v.sel.bottom) <= 0:
			v.drag = dragMaybe
			v.mouse.dragStart = ev.Pos
		default:
			if v.sel.active {
				v.sel.active = false
				v.invalidateCells(v.sel.top, v.sel.bottom)
				v.emitCopyAvailable(false)
			}
			v.sel = selection{origin: at, top: at, bottom: at}
		}
	}
	v.updateCaret(at)
	v.invalidateCells(buffer.Cell{Line: at.Line}, at)

	if v.notify.Clicked != nil {
		v.notify.Clicked(at, ev)
	}
}

// MouseMove handles pointer motion.
func (v *View) MouseMove(ev MouseEvent) {
	v.mouse.pos = ev.Pos
	if v.drag != dragNone {
		if v.drag == dragMaybe {
			d := ev.Pos.Sub(v.mouse.dragStart)
			if abs(d.X)+abs(d.Y) < v.cfg.DragThreshold {
				return
			}
			v.drag = dragDragging
			v.host.StartDrag(v.SelectedText())
		}
		return
	}
	v.cancelHover()

	switch {
	case ev.Held == ButtonNone:
		v.trackPointerShape(ev.Pos)
		v.armHover()
	case ev.Held == ButtonLeft && v.mouse.leftDown:
		v.stopSelectScroll()
		step := 0
		if ev.Pos.Y < 0 {
			step = -v.vbar.SingleStep()
		} else if ev.Pos.Y >= v.size.Y {
			step = v.vbar.SingleStep()
		}
		v.mouse.scrollStep = step
		v.mouse.scrollTarget = ev.Pos
		if step != 0 {
			v.vbar.SetValue(v.vbar.Value() + step)
			v.mouse.scrollTimer = v.host.StartTimer(selectScrollPeriod, v.selectScrollTick)
		}
		v.dragSelectTo(ev.Pos)
	}
}

func (v *View) dragSelectTo(p image.Point) {
	line := min(v.yToLine(p.Y), v.store.Len())
	col := 0
	if v.store.Valid(line) {
		col = min(v.xToCol(p.X), v.store.LineLen(line))
	}
	at := buffer.Cell{Line: line, Col: col}
	v.updateCaret(at)
	v.extendSelection(at)
}

func (v *View) selectScrollTick() {
	v.vbar.SetValue(v.vbar.Value() + v.mouse.scrollStep)
	v.dragSelectTo(v.mouse.scrollTarget)
}

func (v *View) stopSelectScroll() {
	if v.mouse.scrollTimer != nil {
		v.mouse.scrollTimer.Stop()
		v.mouse.scrollTimer = nil
	}
}

func (v *View) trackPointerShape(p image.Point) {
	if v.inGutter(p.X) {
		if v.editCursor {
			v.editCursor = false
			v.host.SetCursor(CursorArrow)
		}
	} else if !v.editCursor {
		v.editCursor = true
		v.host.SetCursor(CursorIBeam)
	}
}

// MouseRelease handles a button release. Releasing the left button with a
// selection copies it to the selection clipboard.
func (v *View) MouseRelease(ev MouseEvent) {
	if ev.Button != ButtonLeft {
		return
	}
	v.mouse.leftDown = false
	v.stopSelectScroll()
	if v.drag != dragNone {
		if v.drag == dragMaybe {
			v.ClearSelection()
		}
		v.drag = dragNone
	}
	if v.sel.active {
		v.copySelection(ClipboardSelection)
		v.emitCopyAvailable(true)
	}
}

// MouseDoubleClick selects the word under the pointer.
func (v *View) MouseDoubleClick(ev MouseEvent) {
	line := v.yToLine(ev.Pos.Y)
	if !v.store.Valid(line) {
		return
	}
	if v.inGutter(ev.Pos.X) {
		if v.notify.GutterDoubleClicked != nil {
			v.notify.GutterDoubleClicked(line)
		}
		return
	}
	col := max(min(v.xToCol(ev.Pos.X), v.store.LineLen(line)-1), 0)
	at := buffer.Cell{Line: line, Col: col}
	v.updateCaret(at)
	if r, ok := v.store.WordAt(at); ok {
		v.updateCaret(r.Second)
		v.setSelection(r.First, r.Second)
	}
	if v.notify.DoubleClicked != nil {
		v.notify.DoubleClicked(at)
	}
}

// ContextMenu reports a context click. Without a selection the caret moves
// to the clicked cell.
func (v *View) ContextMenu(ev MouseEvent) {
	at := v.PointToCell(ev.Pos)
	if !v.store.Valid(at.Line) {
		return
	}
	if v.inGutter(ev.Pos.X) {
		if v.notify.GutterContextClick != nil {
			v.notify.GutterContextClick(at.Line, ev)
		}
		return
	}
	if !v.sel.active {
		v.updateCaret(at)
	}
	if v.notify.ContextClick != nil {
		v.notify.ContextClick(at.Line, ev)
	}
}

// Wheel scrolls:
//
//	none        wheel lines
//	shift       one page
//	ctrl+shift  one line
//	alt         one page horizontally
//	ctrl+alt    one character horizontally
//	ctrl        zoom
func (v *View) Wheel(ev WheelEvent) {
	v.cancelHover()
	if ev.Steps == 0 {
		return
	}
	dir := 1
	if ev.Steps < 0 {
		dir = -1
	}
	vDelta, hDelta := 0, 0
	switch ev.Mods {
	case 0:
		vDelta = dir * v.cfg.WheelScrollLines * v.lineHeight
	case ModShift:
		vDelta = dir * v.vbar.PageStep()
	case ModCtrl | ModShift:
		vDelta = dir * v.vbar.SingleStep()
	case ModAlt:
		hDelta = dir * v.hbar.PageStep()
	case ModCtrl | ModAlt:
		hDelta = dir
	case ModCtrl:
		if dir < 0 {
			v.EnlargeFont()
		} else {
			v.ShrinkFont()
		}
	}
	if vDelta != 0 {
		v.vbar.SetValue(v.vbar.Value() + vDelta)
	} else if hDelta != 0 {
		v.hbar.SetValue(v.hbar.Value() + hDelta)
	}
}

// KeyPress handles navigation keys and reports whether the key was used.
// The KeyPress notification is raised for every key.
func (v *View) KeyPress(ev KeyEvent) bool {
	v.cancelHover()
	accept := false
	if ev.Mods == 0 {
		accept = true
		cur := v.vbar.Value()
		switch ev.Key {
		case KeyHome:
			v.ScrollToTop()
		case KeyEnd:
			v.ScrollToEnd()
		case KeyUp:
			v.vbar.SetValue(cur - v.vbar.SingleStep())
		case KeyDown:
			v.vbar.SetValue(cur + v.vbar.SingleStep())
		case KeyPageUp:
			v.vbar.SetValue(cur - v.vbar.PageStep())
		case KeyPageDown:
			v.vbar.SetValue(cur + v.vbar.PageStep())
		case KeyScrollLock:
			v.setHardLock(!v.hardLock)
		case KeyEscape:
			v.ClearSelection()
			v.setSoftLock(false)
			v.setHardLock(false)
			v.maxVScroll = 0
			if v.escJump {
				v.ScrollToEnd()
			}
		default:
			accept = false
		}
	}
	if v.notify.KeyPress != nil {
		v.notify.KeyPress(ev)
	}
	return accept
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
