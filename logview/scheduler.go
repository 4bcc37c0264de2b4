package logview

import "math"

// UpdateLevel is how much of the view a pending refresh must repaint.
type UpdateLevel int

const (
	UpdateNone UpdateLevel = iota
	// UpdateConditional repaints only when changed lines are on screen or
	// the view follows the tail.
	UpdateConditional
	UpdateFull
)

// SetUpdatesNeeded raises the pending level (never lowers it) and posts a
// single deferred refresh if none is pending.
func (v *View) SetUpdatesNeeded(level UpdateLevel) {
	if level > v.updates {
		v.updates = level
	}
	v.postRefresh()
}

func (v *View) postRefresh() {
	if v.updates == UpdateNone || !v.updatesEnabled || v.refreshPosted {
		return
	}
	v.refreshPosted = true
	v.host.Post(v.refresh)
}

func (v *View) UpdatesEnabled() bool { return v.updatesEnabled }

// SetUpdatesEnabled suspends or resumes refreshes. Mutations made while
// suspended still record their level and are flushed on resume.
func (v *View) SetUpdatesEnabled(on bool) {
	if v.updatesEnabled == on {
		return
	}
	v.updatesEnabled = on
	if on {
		v.postRefresh()
	}
}

// DisableUpdates suspends refreshes and returns a func restoring the prior
// state:
//
//	defer v.DisableUpdates()()
func (v *View) DisableUpdates() (restore func()) {
	prev := v.updatesEnabled
	v.SetUpdatesEnabled(false)
	return func() { v.SetUpdatesEnabled(prev) }
}

// refresh is the deferred flush: pending trim, scroll ranges, tail
// following and the repaint request.
func (v *View) refresh() {
	v.refreshPosted = false
	if v.updates == UpdateNone || !v.updatesEnabled {
		return
	}
	level := v.updates

	if v.trimPending {
		v.trimPending = false
		v.store.Trim()
	}
	v.setContentSize()

	switch {
	case v.scrollable():
		if v.store.Len() <= v.linesPerPage() {
			v.vbar.SetValue(0)
		} else {
			v.vbar.SetValue(v.vbar.Maximum())
		}
		v.hbar.SetValue(0)
		v.updateAll()
		v.updateCaret(v.tailCell())
	case level == UpdateFull:
		v.updateAll()
	case v.dirtyFrom <= v.lastVisibleLine():
		v.updateAll()
	}

	v.dirtyFrom = math.MaxInt
	v.updates = UpdateNone
}
