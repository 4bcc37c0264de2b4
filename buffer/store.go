package buffer

import "math"

type Options struct {
	MaxLines int // <= 0: unlimited
}

// Store is the ordered line sequence. Index 0 is always the oldest
// surviving line.
type Store struct {
	items        []*Item
	maxLineChars int
	version      uint64

	maxLines int
	ceiling  int

	onTrim func(n int)
}

func New(opt Options) *Store {
	s := &Store{}
	s.SetMaxLines(opt.MaxLines)
	return s
}

// OnTrim registers fn to be called with the number of lines removed by every
// prefix trim. Clear and ClearRange do not call it.
func (s *Store) OnTrim(fn func(n int)) { s.onTrim = fn }

func (s *Store) Len() int { return len(s.items) }

func (s *Store) MaxLineChars() int { return s.maxLineChars }

func (s *Store) Version() uint64 { return s.version }

func (s *Store) Valid(line int) bool { return line >= 0 && line < len(s.items) }

// LineLen returns the rune length of line, or 0 for an invalid line.
func (s *Store) LineLen(line int) int {
	if !s.Valid(line) {
		return 0
	}
	return s.items[line].Len()
}

// Item returns the line at i clamped into the live range. It returns nil
// only when the store is empty.
func (s *Store) Item(i int) *Item {
	if len(s.items) == 0 {
		return nil
	}
	return s.items[clampInt(i, 0, len(s.items)-1)]
}

// Append adds it at the tail and returns its index.
func (s *Store) Append(it *Item) int {
	s.items = append(s.items, it)
	if n := it.Len(); n > s.maxLineChars {
		s.maxLineChars = n
	}
	s.version++
	return len(s.items) - 1
}

func (s *Store) AppendText(text string, style StyleID) int {
	return s.Append(NewItem(text, style))
}

// SetText replaces the text of line and keeps MaxLineChars exact. It
// reports false for an invalid line.
func (s *Store) SetText(line int, text string) bool {
	if !s.Valid(line) {
		return false
	}
	it := s.items[line]
	old := it.Len()
	it.text = []rune(text)
	switch n := it.Len(); {
	case n > s.maxLineChars:
		s.maxLineChars = n
	case n < old && old == s.maxLineChars:
		s.rescan()
	}
	s.version++
	return true
}

// Touch records an in-place change to an item (style, pixmap, text).
func (s *Store) Touch() {
	s.version++
}

// SetMaxLines configures the line cap. Trimming starts once the count
// reaches m + clamp(m/10, 10, 1000) and then cuts back to exactly m.
// A cap of 0 or less means unlimited.
func (s *Store) SetMaxLines(m int) {
	if m <= 0 {
		s.maxLines = 0
		s.ceiling = math.MaxInt
		return
	}
	s.maxLines = m
	s.ceiling = m + clampInt(m/10, 10, 1000)
	if len(s.items) > m {
		s.Trim()
	}
}

func (s *Store) MaxLines() int { return s.maxLines }

// Ceiling returns the slacked line count at which a trim is due.
func (s *Store) Ceiling() int { return s.ceiling }

// Overflowing reports whether the slacked ceiling has been reached.
func (s *Store) Overflowing() bool { return len(s.items) >= s.ceiling }

// Trim removes the oldest lines so that Len() <= MaxLines() and returns how
// many were removed.
func (s *Store) Trim() int {
	if s.maxLines <= 0 || len(s.items) <= s.maxLines {
		return 0
	}
	n := len(s.items) - s.maxLines
	s.removeRange(0, n)
	if s.onTrim != nil {
		s.onTrim(n)
	}
	return n
}

// Finalize trims and releases spare capacity. Appending afterwards is
// still valid.
func (s *Store) Finalize() {
	s.Trim()
	if cap(s.items) > len(s.items) {
		items := make([]*Item, len(s.items))
		copy(items, s.items)
		s.items = items
	}
}

func (s *Store) Clear() {
	s.items = nil
	s.maxLineChars = 0
	s.version++
}

// ClearRange removes count lines starting at start. The range is clamped.
func (s *Store) ClearRange(start, count int) {
	start = clampInt(start, 0, len(s.items))
	end := clampInt(start+count, start, len(s.items))
	if end == start {
		return
	}
	s.removeRange(start, end-start)
}

func (s *Store) removeRange(start, n int) {
	copy(s.items[start:], s.items[start+n:])
	tail := len(s.items) - n
	clear(s.items[tail:])
	s.items = s.items[:tail]
	s.rescan()
	s.version++
}

func (s *Store) rescan() {
	m := 0
	for _, it := range s.items {
		if it.Len() > m {
			m = it.Len()
		}
	}
	s.maxLineChars = m
}

// Visit calls fn for each line from first until fn returns false.
func (s *Store) Visit(first int, fn func(line int, it *Item) bool) {
	if first < 0 {
		first = 0
	}
	for i := first; i < len(s.items); i++ {
		if !fn(i, s.items[i]) {
			return
		}
	}
}
