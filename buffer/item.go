package buffer

// StyleID indexes into the active palette. Out-of-range ids draw with style 0.
type StyleID uint16

// NoPixmap marks an item without a gutter image.
const NoPixmap = -1

// Item is one log line.
type Item struct {
	text   []rune
	style  StyleID
	pixmap int
}

func NewItem(text string, style StyleID) *Item {
	return &Item{text: []rune(text), style: style, pixmap: NoPixmap}
}

func (it *Item) Text() string { return string(it.text) }

// Runes returns the line text. The returned slice must not be modified.
func (it *Item) Runes() []rune { return it.text }

// Len returns the line length in runes.
func (it *Item) Len() int { return len(it.text) }

func (it *Item) Style() StyleID { return it.style }

func (it *Item) SetStyle(id StyleID) { it.style = id }

func (it *Item) PixmapID() (int, bool) {
	if it.pixmap < 0 {
		return 0, false
	}
	return it.pixmap, true
}

func (it *Item) HasPixmap() bool { return it.pixmap >= 0 }

func (it *Item) SetPixmap(id int) {
	if id < 0 {
		id = NoPixmap
	}
	it.pixmap = id
}

func (it *Item) ClearPixmap() { it.pixmap = NoPixmap }

// Slice returns runes [from, from+n) clamped to the line.
func (it *Item) Slice(from, n int) []rune {
	from = clampInt(from, 0, len(it.text))
	end := len(it.text)
	if n >= 0 && from+n < end {
		end = from + n
	}
	return it.text[from:end]
}
