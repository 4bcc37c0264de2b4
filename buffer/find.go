package buffer

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

type FindOptions struct {
	CaseSensitive bool
	Backward      bool
}

// Find searches for needle starting at from and returns the matched region
// (First at the match start, Second at its end).
//
// A forward search accepts a match starting at or after from.Col on the
// first line and anywhere on the following lines. A backward search accepts
// a match starting strictly before from.Col on the first line and the last
// match on each earlier line. Matches never span lines.
func (s *Store) Find(needle string, from Cell, opt FindOptions) (Region, bool) {
	if needle == "" {
		return Region{}, false
	}
	pat := []rune(needle)
	fold := !opt.CaseSensitive
	return s.scan(from, opt.Backward, func(text []rune, col int, backward bool) int {
		if backward {
			return lastIndexRunes(text, pat, col-1, fold)
		}
		return indexRunes(text, pat, col, fold)
	}, func(int, []rune) int { return len(pat) })
}

// FindRegexp is Find with a pattern. Empty matches are ignored. A nil
// pattern never matches.
func (s *Store) FindRegexp(re *regexp.Regexp, from Cell, backward bool) (Region, bool) {
	if re == nil {
		return Region{}, false
	}
	var lastLen int
	return s.scan(from, backward, func(text []rune, col int, backward bool) int {
		matches := runeMatches(re, text)
		if backward {
			for i := len(matches) - 1; i >= 0; i-- {
				if matches[i][0] < col {
					lastLen = matches[i][1] - matches[i][0]
					return matches[i][0]
				}
			}
			return -1
		}
		for _, m := range matches {
			if m[0] >= col {
				lastLen = m[1] - m[0]
				return m[0]
			}
		}
		return -1
	}, func(int, []rune) int { return lastLen })
}

// scan walks lines from the start cell. match returns the rune column of a
// hit or -1; width reports the length of the last hit.
func (s *Store) scan(from Cell, backward bool,
	match func(text []rune, col int, backward bool) int,
	width func(col int, text []rune) int) (Region, bool) {

	if len(s.items) == 0 {
		return Region{}, false
	}
	line, col := from.Line, from.Col
	if !s.Valid(line) {
		if !backward {
			return Region{}, false
		}
		line = len(s.items) - 1
		col = s.items[line].Len() + 1
	} else {
		col = clampInt(col, 0, s.items[line].Len())
	}

	if backward {
		for ; line >= 0; line-- {
			text := s.items[line].text
			if at := match(text, col, true); at >= 0 {
				n := width(at, text)
				return Region{First: Cell{line, at}, Second: Cell{line, at + n}}, true
			}
			if line > 0 {
				col = s.items[line-1].Len() + 1
			}
		}
		return Region{}, false
	}

	for ; line < len(s.items); line++ {
		text := s.items[line].text
		if at := match(text, col, false); at >= 0 {
			n := width(at, text)
			return Region{First: Cell{line, at}, Second: Cell{line, at + n}}, true
		}
		col = 0
	}
	return Region{}, false
}

func runeEqual(a, b rune, fold bool) bool {
	if a == b {
		return true
	}
	if !fold {
		return false
	}
	return unicode.ToLower(a) == unicode.ToLower(b) || unicode.ToUpper(a) == unicode.ToUpper(b)
}

func hasPrefixAt(text, pat []rune, at int, fold bool) bool {
	for i, r := range pat {
		if !runeEqual(text[at+i], r, fold) {
			return false
		}
	}
	return true
}

// indexRunes returns the first match starting at or after from.
func indexRunes(text, pat []rune, from int, fold bool) int {
	for i := max(from, 0); i+len(pat) <= len(text); i++ {
		if hasPrefixAt(text, pat, i, fold) {
			return i
		}
	}
	return -1
}

// lastIndexRunes returns the last match starting at or before from.
func lastIndexRunes(text, pat []rune, from int, fold bool) int {
	for i := min(from, len(text)-len(pat)); i >= 0; i-- {
		if hasPrefixAt(text, pat, i, fold) {
			return i
		}
	}
	return -1
}

// runeMatches returns non-empty matches of re in text as rune offsets.
func runeMatches(re *regexp.Regexp, text []rune) [][2]int {
	s := string(text)
	idx := re.FindAllStringIndex(s, -1)
	if len(idx) == 0 {
		return nil
	}
	out := make([][2]int, 0, len(idx))
	runes, prev := 0, 0
	for _, m := range idx {
		if m[0] == m[1] {
			continue
		}
		start := runes + utf8.RuneCountInString(s[prev:m[0]])
		end := start + utf8.RuneCountInString(s[m[0]:m[1]])
		out = append(out, [2]int{start, end})
		runes, prev = end, m[1]
	}
	return out
}
