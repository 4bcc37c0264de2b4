package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/iw2rmb/logtext/logview"
)

// MaxPixels bounds the area of a canvas.
const MaxPixels = 1 << 26

var ErrCanvasTooLarge = errors.New("raster: canvas too large")

// Canvas is a logview.Canvas over an *image.RGBA.
type Canvas struct {
	img  *image.RGBA
	clip image.Rectangle
}

var _ logview.Canvas = (*Canvas)(nil)

// NewCanvas allocates a transparent canvas of the given size.
func NewCanvas(size image.Point) (*Canvas, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("raster: invalid canvas size %v", size)
	}
	if size.X > MaxPixels/size.Y {
		return nil, fmt.Errorf("%w: %v", ErrCanvasTooLarge, size)
	}
	img := image.NewRGBA(image.Rectangle{Max: size})
	return &Canvas{img: img, clip: img.Rect}, nil
}

// RGBA returns the backing image.
func (c *Canvas) RGBA() *image.RGBA { return c.img }

func (c *Canvas) Bounds() image.Rectangle { return c.img.Rect }

func (c *Canvas) SetClip(r image.Rectangle) { c.clip = r.Intersect(c.img.Rect) }

// target is the clipped view of the backing image. It shares pixels.
func (c *Canvas) target() *image.RGBA {
	return c.img.SubImage(c.clip).(*image.RGBA)
}

func (c *Canvas) Fill(r image.Rectangle, col color.Color) {
	r = r.Intersect(c.clip)
	if r.Empty() {
		return
	}
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Src)
}

func (c *Canvas) VLine(x, y0, y1, width int, col color.Color) {
	c.Fill(image.Rect(x, y0, x+width, y1), col)
}

// XorVLine flips the color channels of the covered pixels by col. Drawing
// the same line twice restores the original pixels.
func (c *Canvas) XorVLine(x, y0, y1, width int, col color.Color) {
	r := image.Rect(x, y0, x+width, y1).Intersect(c.clip)
	if r.Empty() {
		return
	}
	rgba := color.RGBAModel.Convert(col).(color.RGBA)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := c.img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x, i = x+1, i+4 {
			px := c.img.Pix[i : i+4 : i+4]
			px[0] ^= rgba.R
			px[1] ^= rgba.G
			px[2] ^= rgba.B
		}
	}
}

func (c *Canvas) Text(x, baseline int, s []rune, face font.Face, fg color.Color, attrs logview.Attr) {
	if len(s) == 0 || face == nil {
		return
	}
	d := font.Drawer{
		Dst:  c.target(),
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(string(s))

	const decorations = logview.AttrUnderline | logview.AttrOverline | logview.AttrStrikeOut
	if attrs&decorations == 0 {
		return
	}
	end := d.Dot.X.Round()
	m := face.Metrics()
	thick := max(m.Height.Ceil()/16, 1)
	if attrs.Has(logview.AttrUnderline) {
		y := baseline + max(m.Descent.Ceil()/2, 1)
		c.Fill(image.Rect(x, y, end, y+thick), fg)
	}
	if attrs.Has(logview.AttrOverline) {
		y := baseline - m.Ascent.Ceil()
		c.Fill(image.Rect(x, y, end, y+thick), fg)
	}
	if attrs.Has(logview.AttrStrikeOut) {
		y := baseline - m.XHeight.Ceil()/2
		if m.XHeight <= 0 {
			y = baseline - m.Ascent.Ceil()/3
		}
		c.Fill(image.Rect(x, y, end, y+thick), fg)
	}
}

func (c *Canvas) Image(dst image.Point, img image.Image, src image.Rectangle) {
	if img == nil || src.Empty() {
		return
	}
	draw.Copy(c.target(), dst, img, src, draw.Over, nil)
}

func (c *Canvas) Advance(face font.Face, r rune) int {
	adv, ok := face.GlyphAdvance(r)
	if !ok {
		return 0
	}
	return adv.Round()
}
