package logview

import (
	"image/color"

	"github.com/iw2rmb/logtext/buffer"
)

// Attr is a set of text attributes.
type Attr uint8

const (
	AttrItalic Attr = 1 << iota
	AttrBold
	AttrUnderline
	AttrOverline
	AttrStrikeOut
)

func (a Attr) Has(f Attr) bool { return a&f != 0 }

// Entry is one style: text color, normal background, caret-line background
// and attributes. Face and size come from the view's base font.
type Entry struct {
	Text       color.RGBA
	Background color.RGBA
	CaretLine  color.RGBA
	Attrs      Attr
}

func (e *Entry) SetTextColor(c color.Color)      { e.Text = toRGBA(c) }
func (e *Entry) SetBackground(c color.Color)     { e.Background = toRGBA(c) }
func (e *Entry) SetCaretLineColor(c color.Color) { e.CaretLine = toRGBA(c) }
func (e *Entry) SetAttrs(a Attr)                 { e.Attrs = a }

// Palette is a named, ordered list of styles referenced by buffer.StyleID.
// A palette always has at least one entry.
type Palette struct {
	name    string
	entries []Entry
}

func newPalette(name string, size int, base Entry) *Palette {
	if size < 1 {
		size = 1
	}
	p := &Palette{name: name, entries: make([]Entry, size)}
	for i := range p.entries {
		p.entries[i] = base
	}
	return p
}

func (p *Palette) clone(name string) *Palette {
	return &Palette{name: name, entries: append([]Entry(nil), p.entries...)}
}

func (p *Palette) Name() string { return p.name }

func (p *Palette) Len() int { return len(p.entries) }

// Style returns the entry for id for in-place editing. Out-of-range ids
// resolve to entry 0. Reactivate the palette to see edits.
func (p *Palette) Style(id buffer.StyleID) *Entry {
	if int(id) >= len(p.entries) {
		id = 0
	}
	return &p.entries[id]
}

// SetStyle replaces entry id. It reports false for an out-of-range id.
func (p *Palette) SetStyle(id buffer.StyleID, e Entry) bool {
	if int(id) >= len(p.entries) {
		return false
	}
	p.entries[id] = e
	return true
}

// AddStyle appends e and returns its id.
func (p *Palette) AddStyle(e Entry) buffer.StyleID {
	p.entries = append(p.entries, e)
	return buffer.StyleID(len(p.entries) - 1)
}

func toRGBA(c color.Color) color.RGBA {
	if c == nil {
		return color.RGBA{}
	}
	return color.RGBAModel.Convert(c).(color.RGBA)
}
