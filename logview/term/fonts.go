package term

import (
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/iw2rmb/logtext/logview"
)

const FamilyCell = "Cell"

// cellFace measures one column per rune and one row per line. It has no
// glyph images; the cell canvas never rasterizes.
var cellFace = &basicfont.Face{
	Advance: 1,
	Width:   1,
	Height:  1,
	Ascent:  1,
	Ranges:  []basicfont.Range{{Low: 0, High: unicode.MaxRune + 1}},
}

type cellFonts struct{}

func (cellFonts) Face(logview.FontDesc) (font.Face, error) { return cellFace, nil }

var cellFont = logview.FontDesc{Family: FamilyCell, Size: 1}
