package logview

import (
	"regexp"

	"github.com/iw2rmb/logtext/buffer"
)

// FindOptions controls plain-text search. The zero value searches forward,
// ignoring case.
type FindOptions = buffer.FindOptions

// Find searches for text from *at, or from the caret when at is nil. On a
// match the text is selected, the caret moves to the match end (forward)
// or start (backward), and *at is set to the match start. Nothing changes
// on failure.
func (v *View) Find(text string, at *buffer.Cell, opt FindOptions) bool {
	r, ok := v.store.Find(text, v.findStart(at), opt)
	if !ok {
		return false
	}
	v.showMatch(r, at, opt.Backward)
	return true
}

// FindLineCol is Find with the start and result passed as separate line and
// column values. Nil pointers default to the caret's line or column.
func (v *View) FindLineCol(text string, opt FindOptions, line, col *int) bool {
	pos := v.caret
	if line != nil {
		pos.Line = *line
	}
	if col != nil {
		pos.Col = *col
	}
	if !v.Find(text, &pos, opt) {
		return false
	}
	if line != nil {
		*line = pos.Line
	}
	if col != nil {
		*col = pos.Col
	}
	return true
}

// FindRegexp is Find with a pattern. The selection spans the pattern's
// matched length. A nil pattern fails.
func (v *View) FindRegexp(re *regexp.Regexp, at *buffer.Cell, backward bool) bool {
	r, ok := v.store.FindRegexp(re, v.findStart(at), backward)
	if !ok {
		return false
	}
	v.showMatch(r, at, backward)
	return true
}

// FindPattern compiles pattern and calls FindRegexp. An invalid pattern
// fails.
func (v *View) FindPattern(pattern string, at *buffer.Cell, backward bool) bool {
	re, err := regexp.Compile(pattern)
	if err != nil {
		v.log.Debug("logview: invalid search pattern", "pattern", pattern, "err", err)
		return false
	}
	return v.FindRegexp(re, at, backward)
}

func (v *View) findStart(at *buffer.Cell) buffer.Cell {
	if at != nil {
		return *at
	}
	return v.caret
}

func (v *View) showMatch(r buffer.Region, at *buffer.Cell, backward bool) {
	caret := r.Second
	if backward {
		caret = r.First
	}
	v.updateCaret(caret)
	v.setSelection(r.First, r.Second)
	if at != nil {
		*at = r.First
	}
	v.EnsureCaretVisible()
}
