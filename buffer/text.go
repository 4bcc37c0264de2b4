package buffer

import "strings"

// PlainText returns every line followed by sep.
func (s *Store) PlainText(sep string) string {
	var sb strings.Builder
	for _, it := range s.items {
		sb.WriteString(string(it.text))
		sb.WriteString(sep)
	}
	return sb.String()
}

// TextIn serializes the region: the tail of the first line from its column,
// whole lines each followed by '\n', then the head of the last line up to
// its column. A single-line region is a plain substring.
func (s *Store) TextIn(r Region) string {
	r.Normalize()
	if r.Empty() {
		return ""
	}
	top, bot := r.First, r.Second
	last := min(bot.Line, len(s.items))
	line := top.Line
	if line < 0 {
		line, top.Col = 0, 0
	}

	if line == last {
		if !s.Valid(line) {
			return ""
		}
		return string(s.items[line].Slice(top.Col, bot.Col-top.Col))
	}

	var sb strings.Builder
	if s.Valid(line) && top.Col > 0 {
		sb.WriteString(string(s.items[line].Slice(top.Col, -1)))
		sb.WriteByte('\n')
		line++
	}
	for ; line < last && line < len(s.items); line++ {
		sb.WriteString(string(s.items[line].text))
		sb.WriteByte('\n')
	}
	if s.Valid(last) {
		sb.WriteString(string(s.items[last].Slice(0, bot.Col)))
	}
	return sb.String()
}
