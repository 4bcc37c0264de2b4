package buffer

import "unicode"

// IsWordRune reports whether r belongs to a word: letters, digits, '_' and '-'.
func IsWordRune(r rune) bool {
	return r == '_' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// WordAt returns the word under (line, col). When col sits on a non-word
// rune the word touching it on the left is used, then the one on the right.
func (s *Store) WordAt(at Cell) (Region, bool) {
	if !s.Valid(at.Line) {
		return Region{}, false
	}
	text := s.items[at.Line].text
	if len(text) == 0 {
		return Region{}, false
	}
	col := clampInt(at.Col, 0, len(text)-1)

	switch {
	case IsWordRune(text[col]):
	case col > 0 && IsWordRune(text[col-1]):
		col--
	case col+1 < len(text) && IsWordRune(text[col+1]):
		col++
	default:
		return Region{}, false
	}

	left := col
	for left > 0 && IsWordRune(text[left-1]) {
		left--
	}
	right := col + 1
	for right < len(text) && IsWordRune(text[right]) {
		right++
	}
	return Region{First: Cell{at.Line, left}, Second: Cell{at.Line, right}}, true
}
