package logview

import (
	"image"
	"image/color"

	"github.com/iw2rmb/logtext/buffer"
)

const caretWidth = 2

// Paint redraws dirty (viewport coordinates) into the off-screen canvas and
// presents it.
func (v *View) Paint(dirty image.Rectangle) {
	if v.activated == nil {
		v.ActivatePalette(DefaultPaletteName)
	}
	if v.size.X <= 0 || v.size.Y <= 0 {
		return
	}

	if v.canvas == nil || v.canvas.Bounds().Size() != v.size {
		c, err := v.host.NewCanvas(v.size)
		if err != nil {
			v.canvas = nil
			v.log.Error("logview: could not allocate canvas", "size", v.size, "err", err)
			return
		}
		v.canvas = c
	}
	cv := v.canvas

	// Character width is only known once a face is attached to a canvas.
	// Measure, then ask for a second, correct pass.
	if v.charWidth == 0 {
		v.measure(cv)
		v.SetUpdatesNeeded(UpdateFull)
		return
	}

	bounds := cv.Bounds()
	dirty = dirty.Intersect(bounds)
	if dirty.Empty() {
		return
	}
	cv.SetClip(dirty)
	defer cv.SetClip(bounds)

	v.paintFrame(cv, dirty)
	v.host.Present(cv)
}

func (v *View) paintFrame(cv Canvas, dirty image.Rectangle) {
	colors := v.cfg.Colors
	lh := v.lineHeight
	width := v.size.X
	defBG := v.activated.style(0).bg

	cv.Fill(dirty, defBG)
	if v.gutterWidth > 0 {
		cv.Fill(image.Rect(0, 0, v.gutterWidth, v.size.Y), colors.ToolTipBase)
		cv.VLine(v.gutterWidth, 0, v.size.Y, gutterBorder, colors.Shadow)
	}

	count := v.store.Len()
	line := max(v.firstVisibleLine(), 0)
	top := v.lineTop(line)
	firstChar := v.hbar.Value()
	textWidth := max(width-v.gutterOffset, 0)
	paintChars := (textWidth + v.charWidth - 1) / v.charWidth

	sel := v.sel
	lastStyle := buffer.StyleID(v.activated.numStyles() + 1)
	st := v.activated.style(0)

	for ; line < count && top < dirty.Max.Y; line, top = line+1, top+lh {
		if top+lh <= dirty.Min.Y {
			continue
		}
		it := v.store.Item(line)
		text := it.Slice(firstChar, paintChars)
		baseline := top + lh - v.descent

		if it.Style() != lastStyle {
			lastStyle = it.Style()
			st = v.activated.style(lastStyle)
		}

		bg := st.bg
		if line == v.caret.Line {
			bg = st.caretLine
		}
		if bg != defBG {
			cv.Fill(image.Rect(v.gutterOffset, top, width, top+lh), bg)
		}

		l, r := 0, 0
		if sel.active && line >= sel.top.Line && line <= sel.bottom.Line {
			lcol, rcol := 0, it.Len()
			if line == sel.top.Line {
				lcol = sel.top.Col
			}
			if line == sel.bottom.Line {
				rcol = sel.bottom.Col
			}
			l = clampInt(lcol-firstChar, 0, len(text))
			r = clampInt(rcol-firstChar, l, len(text))
		}

		x := v.gutterOffset
		if l > 0 {
			cv.Text(x, baseline, text[:l], st.face, st.text, st.attrs)
		}
		if r > l {
			sx := x + l*v.charWidth
			cv.Fill(image.Rect(sx, top, sx+(r-l)*v.charWidth, top+lh), colors.Highlight)
			cv.Text(sx, baseline, text[l:r], st.face, colors.HighlightedText, st.attrs)
		}
		if r < len(text) {
			cv.Text(x+r*v.charWidth, baseline, text[r:], st.face, st.text, st.attrs)
		}

		if v.gutterWidth > 0 {
			if id, ok := it.PixmapID(); ok {
				if img, ok := v.pixmaps[id]; ok {
					v.drawPixmap(cv, img, top)
				}
			}
		}

		if line == v.caret.Line {
			v.drawCaret(cv, v.caret.Col-firstChar, top, colors.Base)
		}
	}

	// The caret may sit on the line after the last one.
	if v.caret.Line == count && line == count {
		v.drawCaret(cv, 0, top, colors.Base)
	}
}

// drawPixmap centers img vertically in the row, or clips it evenly when it
// is taller than the row.
func (v *View) drawPixmap(cv Canvas, img image.Image, top int) {
	b := img.Bounds()
	lh := v.lineHeight
	y, dy := top, 0
	if b.Dy() < lh {
		y += (lh - b.Dy()) / 2
	} else {
		dy = (b.Dy() - lh) / 2
	}
	src := image.Rect(b.Min.X, b.Min.Y+dy, b.Min.X+v.gutterWidth, b.Min.Y+dy+min(lh, b.Dy()))
	cv.Image(image.Pt(0, y), img, src.Intersect(b))
}

func (v *View) drawCaret(cv Canvas, col, top int, c color.Color) {
	if !v.showCaret || !v.blinkOn || col < 0 {
		return
	}
	x := col*v.charWidth + v.gutterOffset
	cv.XorVLine(x, top+v.descent, top+v.lineHeight, caretWidth, c)
}
