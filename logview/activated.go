package logview

import (
	"image/color"

	"golang.org/x/image/font"

	"github.com/iw2rmb/logtext/buffer"
)

// drawStyle is a palette entry resolved against the base font.
type drawStyle struct {
	face      font.Face
	text      color.RGBA
	bg        color.RGBA
	caretLine color.RGBA
	attrs     Attr
}

// activatedPalette is the paint-ready form of a Palette. It is rebuilt
// explicitly by ActivatePalette; edits to the source are not tracked.
type activatedPalette struct {
	source *Palette
	styles []drawStyle
}

type faceKey struct{ bold, italic bool }

func (v *View) buildActivated(p *Palette) *activatedPalette {
	faces := map[faceKey]font.Face{{}: v.face}
	ap := &activatedPalette{source: p, styles: make([]drawStyle, len(p.entries))}
	for i, e := range p.entries {
		k := faceKey{bold: e.Attrs.Has(AttrBold), italic: e.Attrs.Has(AttrItalic)}
		face, ok := faces[k]
		if !ok {
			desc := v.effectiveFont()
			desc.Bold, desc.Italic = k.bold, k.italic
			f, err := v.cfg.Fonts.Face(desc)
			if err != nil {
				v.log.Debug("logview: font variant unavailable, using base face", "font", desc, "err", err)
				f = v.face
			}
			faces[k] = f
			face = f
		}
		ap.styles[i] = drawStyle{
			face:      face,
			text:      e.Text,
			bg:        e.Background,
			caretLine: e.CaretLine,
			attrs:     e.Attrs,
		}
	}
	return ap
}

// style resolves id, falling back to style 0 when out of range.
func (ap *activatedPalette) style(id buffer.StyleID) *drawStyle {
	if int(id) >= len(ap.styles) {
		id = 0
	}
	return &ap.styles[id]
}

func (ap *activatedPalette) numStyles() int { return len(ap.styles) }
