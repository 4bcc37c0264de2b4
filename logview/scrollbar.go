package logview

// ScrollBar holds one scroll position with its range and steps. The vertical
// bar counts pixels, the horizontal bar counts characters.
type ScrollBar struct {
	min, max     int
	value        int
	single, page int

	changed func(value int)
}

func (s *ScrollBar) Value() int      { return s.value }
func (s *ScrollBar) Minimum() int    { return s.min }
func (s *ScrollBar) Maximum() int    { return s.max }
func (s *ScrollBar) SingleStep() int { return s.single }
func (s *ScrollBar) PageStep() int   { return s.page }

// SetValue clamps v into range and reports a change to the view.
func (s *ScrollBar) SetValue(v int) {
	v = clampInt(v, s.min, s.max)
	if v == s.value {
		return
	}
	s.value = v
	if s.changed != nil {
		s.changed(v)
	}
}

// SetMaximum sets the upper bound, pulling the value back into range.
func (s *ScrollBar) SetMaximum(m int) {
	if m < s.min {
		m = s.min
	}
	s.max = m
	if s.value > m {
		s.SetValue(m)
	}
}

func (s *ScrollBar) setSteps(single, page int) {
	s.single = max(single, 1)
	s.page = max(page, 1)
}

// AtMaximum reports whether the bar is at its end.
func (s *ScrollBar) AtMaximum() bool { return s.value >= s.max }

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
