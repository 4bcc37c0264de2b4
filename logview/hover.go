package logview

import "time"

func (v *View) HoverTime() time.Duration { return v.hoverTime }

// SetHoverTime sets how long the pointer must rest before a Hover
// notification. It is clamped to [0, 2s] and rounded up to 50ms; 0
// disables hovering.
func (v *View) SetHoverTime(d time.Duration) {
	d = max(0, min(d, maxHoverTime))
	v.hoverTime = (d + hoverTimeResolution - 1) / hoverTimeResolution * hoverTimeResolution
	v.stopHoverTimer()
}

func (v *View) armHover() {
	if v.hoverTime == 0 {
		return
	}
	if v.hoverTimer == nil {
		v.hoverTimer = v.host.StartTimer(v.hoverTime, v.hoverTick)
	}
	v.lastMove = v.cfg.Now()
}

func (v *View) hoverTick() {
	if v.hoverTime == 0 {
		v.stopHoverTimer()
		v.cancelHover()
		return
	}
	idle := v.cfg.Now().Sub(v.lastMove)
	if !v.hovering && idle >= v.hoverTime {
		p := v.mouse.pos
		line := min(v.yToLine(p.Y), v.store.Len())
		if v.store.Valid(line) {
			if v.inGutter(p.X) {
				v.hovering = true
				v.emitHover(line, -1)
			} else if col := v.xToCol(p.X); col < v.store.LineLen(line) {
				v.hovering = true
				v.emitHover(line, col)
			}
		}
	}
	if idle > hoverIdleCutoff {
		v.stopHoverTimer()
	}
}

func (v *View) stopHoverTimer() {
	if v.hoverTimer != nil {
		v.hoverTimer.Stop()
		v.hoverTimer = nil
	}
}

// cancelHover ends a reported hover with Hover(-1, -1).
func (v *View) cancelHover() {
	if v.hovering {
		v.hovering = false
		v.emitHover(-1, -1)
	}
}
