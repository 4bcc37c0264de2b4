package logview

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/inconsolata"
)

// FontDesc names a font. Size is in points.
type FontDesc struct {
	Family string
	Size   float64
	Bold   bool
	Italic bool
}

func (d FontDesc) String() string {
	s := fmt.Sprintf("%s %gpt", d.Family, d.Size)
	if d.Bold {
		s += " bold"
	}
	if d.Italic {
		s += " italic"
	}
	return s
}

// FontSource resolves font descriptions to faces.
type FontSource interface {
	Face(desc FontDesc) (font.Face, error)
}

const (
	FamilyInconsolata = "Inconsolata"
	FamilyFixed       = "Fixed"
)

var DefaultFont = FontDesc{Family: FamilyInconsolata, Size: 12}

// BasicFonts serves the bitmap faces bundled with x/image. Sizes are fixed:
// Inconsolata is 8x16 with a bold variant, Fixed is 7x13.
type BasicFonts struct{}

func (BasicFonts) Face(desc FontDesc) (font.Face, error) {
	switch desc.Family {
	case FamilyInconsolata, "":
		if desc.Bold {
			return inconsolata.Bold8x16, nil
		}
		return inconsolata.Regular8x16, nil
	case FamilyFixed:
		return basicfont.Face7x13, nil
	}
	return nil, fmt.Errorf("basic fonts: unknown family %q", desc.Family)
}

var pitchProbe = []rune{'i', 'W', 'm', '.', '0'}

// fixedPitch reports whether every probe rune has the same non-zero advance.
func fixedPitch(face font.Face) bool {
	want, ok := face.GlyphAdvance(pitchProbe[0])
	if !ok || want <= 0 {
		return false
	}
	for _, r := range pitchProbe[1:] {
		adv, ok := face.GlyphAdvance(r)
		if !ok || adv != want {
			return false
		}
	}
	return true
}

// faceMetrics returns the line spacing and descent of face in pixels.
func faceMetrics(face font.Face) (lineHeight, descent int) {
	m := face.Metrics()
	lineHeight = m.Height.Ceil()
	if lineHeight <= 0 {
		lineHeight = (m.Ascent + m.Descent).Ceil()
	}
	if lineHeight <= 0 {
		lineHeight = 1
	}
	return lineHeight, m.Descent.Ceil()
}
