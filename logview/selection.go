package logview

import "github.com/iw2rmb/logtext/buffer"

// selection is anchored at origin; top <= bottom always.
type selection struct {
	origin buffer.Cell
	top    buffer.Cell
	bottom buffer.Cell
	active bool
}

type dragState int

const (
	dragNone dragState = iota
	// dragMaybe: pressed inside the selection, not yet moved far enough.
	dragMaybe
	dragDragging
)

// Selection returns the normalized selection region. The region is empty
// when nothing is selected.
func (v *View) Selection() buffer.Region {
	if !v.sel.active {
		return buffer.Region{First: v.caret, Second: v.caret}
	}
	return buffer.Region{First: v.sel.top, Second: v.sel.bottom}
}

func (v *View) HasSelectedText() bool { return v.sel.active }

// SelectedText serializes the selection; see buffer.Store.TextIn.
func (v *View) SelectedText() string {
	if !v.sel.active {
		return ""
	}
	return v.store.TextIn(v.Selection())
}

// extendSelection moves the selection extent to at, keeping the origin.
func (v *View) extendSelection(at buffer.Cell) {
	oldTop, oldBot := v.sel.top, v.sel.bottom
	if at == v.sel.origin {
		v.sel.active = false
		v.sel.top, v.sel.bottom = at, at
	} else {
		v.sel.top = buffer.MinCell(at, v.sel.origin)
		v.sel.bottom = buffer.MaxCell(at, v.sel.origin)
		v.sel.active = true
	}
	v.invalidateSelectionChange(oldTop, oldBot)
}

// setSelection anchors the selection at a and extends it to b.
func (v *View) setSelection(a, b buffer.Cell) {
	oldTop, oldBot := v.sel.top, v.sel.bottom
	v.sel.origin = a
	v.sel.top = buffer.MinCell(a, b)
	v.sel.bottom = buffer.MaxCell(a, b)
	v.sel.active = a != b
	v.invalidateSelectionChange(oldTop, oldBot)
}

func (v *View) invalidateSelectionChange(oldTop, oldBot buffer.Cell) {
	if oldTop == v.sel.top && oldBot == v.sel.bottom {
		return
	}
	v.invalidateCells(buffer.MinCell(oldTop, v.sel.top), buffer.MaxCell(oldBot, v.sel.bottom))
}

// SelectAll selects from (0,0) through the end of the last line.
func (v *View) SelectAll() {
	n := v.store.Len()
	if n == 0 {
		return
	}
	v.sel = selection{
		origin: buffer.Cell{},
		top:    buffer.Cell{},
		bottom: buffer.Cell{Line: n},
		active: true,
	}
	v.updateAll()
	v.copySelection(ClipboardSelection)
	v.emitCopyAvailable(true)
}

// ClearSelection drops the selection and clears the selection clipboard.
func (v *View) ClearSelection() {
	if !v.sel.active {
		return
	}
	v.sel.active = false
	v.sel.origin = v.sel.top
	v.sel.bottom = v.sel.top
	v.writeClipboard("", ClipboardSelection)
	v.updateAll()
	v.emitCopyAvailable(false)
}

// Copy puts the selected text on the standard clipboard.
func (v *View) Copy() {
	v.copySelection(ClipboardStandard)
}

func (v *View) copySelection(mode ClipboardMode) {
	if !v.sel.active {
		return
	}
	v.writeClipboard(v.SelectedText(), mode)
}

func (v *View) writeClipboard(s string, mode ClipboardMode) {
	if v.cfg.Clipboard == nil {
		return
	}
	if err := v.cfg.Clipboard.WriteText(s, mode); err != nil {
		v.log.Warn("logview: clipboard write failed", "mode", mode, "err", err)
	}
}
