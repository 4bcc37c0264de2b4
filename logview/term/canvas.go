package term

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"

	"github.com/iw2rmb/logtext/logview"
)

const maxCells = 1 << 22

var ErrCanvasTooLarge = errors.New("term: canvas too large")

const (
	// substitute replaces runes that do not occupy exactly one cell.
	substitute = '·'
	borderRune = '│'
	markRune   = '●'
)

type cell struct {
	r      rune
	fg, bg color.RGBA
	attrs  logview.Attr
	rev    bool
}

// Canvas is a logview.Canvas over a grid of terminal cells.
type Canvas struct {
	w, h  int
	cells []cell
	clip  image.Rectangle
}

var _ logview.Canvas = (*Canvas)(nil)

func NewCanvas(size image.Point) (*Canvas, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("term: invalid canvas size %v", size)
	}
	if size.X > maxCells/size.Y {
		return nil, fmt.Errorf("%w: %v", ErrCanvasTooLarge, size)
	}
	c := &Canvas{w: size.X, h: size.Y, cells: make([]cell, size.X*size.Y)}
	c.clip = c.Bounds()
	for i := range c.cells {
		c.cells[i].r = ' '
	}
	return c, nil
}

func (c *Canvas) Bounds() image.Rectangle { return image.Rect(0, 0, c.w, c.h) }

func (c *Canvas) SetClip(r image.Rectangle) { c.clip = r.Intersect(c.Bounds()) }

func (c *Canvas) at(x, y int) *cell {
	if !(image.Point{x, y}).In(c.clip) {
		return nil
	}
	return &c.cells[y*c.w+x]
}

func (c *Canvas) Fill(r image.Rectangle, col color.Color) {
	r = r.Intersect(c.clip)
	bg := toRGBA(col)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c.cells[y*c.w+x] = cell{r: ' ', bg: bg}
		}
	}
}

// VLine draws a box-drawing border one column wide per unit of width.
func (c *Canvas) VLine(x, y0, y1, width int, col color.Color) {
	fg := toRGBA(col)
	for y := y0; y < y1; y++ {
		for dx := 0; dx < width; dx++ {
			if p := c.at(x+dx, y); p != nil {
				p.r, p.fg, p.attrs = borderRune, fg, 0
			}
		}
	}
}

// XorVLine reverses the cells of column x; a caret is one cell wide.
func (c *Canvas) XorVLine(x, y0, y1, _ int, _ color.Color) {
	for y := y0; y < y1; y++ {
		if p := c.at(x, y); p != nil {
			p.rev = !p.rev
		}
	}
}

// Text writes s on the row whose baseline is given. Runes that are not one
// column wide are replaced so the grid stays aligned.
func (c *Canvas) Text(x, baseline int, s []rune, face font.Face, fg color.Color, attrs logview.Attr) {
	y := baseline - face.Metrics().Ascent.Ceil()
	rgba := toRGBA(fg)
	for i, r := range s {
		p := c.at(x+i, y)
		if p == nil {
			continue
		}
		if runewidth.RuneWidth(r) != 1 {
			r = substitute
		}
		p.r, p.fg, p.attrs = r, rgba, attrs
	}
}

// Image marks the gutter cell at dst with the color at the center of src.
func (c *Canvas) Image(dst image.Point, img image.Image, src image.Rectangle) {
	p := c.at(dst.X, dst.Y)
	if p == nil || img == nil || src.Empty() {
		return
	}
	mid := src.Min.Add(src.Size().Div(2))
	p.r, p.fg, p.attrs = markRune, toRGBA(img.At(mid.X, mid.Y)), 0
}

func (c *Canvas) Advance(face font.Face, r rune) int {
	adv, ok := face.GlyphAdvance(r)
	if !ok {
		return 1
	}
	return max(adv.Round(), 1)
}

type cellStyle struct {
	fg, bg color.RGBA
	attrs  logview.Attr
	rev    bool
}

// Render returns the grid as styled rows joined by newlines.
func (c *Canvas) Render(r *lipgloss.Renderer) string {
	styles := map[cellStyle]lipgloss.Style{}
	style := func(k cellStyle) lipgloss.Style {
		if s, ok := styles[k]; ok {
			return s
		}
		s := r.NewStyle().
			Foreground(lipgloss.Color(hex(k.fg))).
			Background(lipgloss.Color(hex(k.bg))).
			Bold(k.attrs.Has(logview.AttrBold)).
			Italic(k.attrs.Has(logview.AttrItalic)).
			Underline(k.attrs.Has(logview.AttrUnderline)).
			Strikethrough(k.attrs.Has(logview.AttrStrikeOut)).
			Reverse(k.rev)
		styles[k] = s
		return s
	}

	var sb strings.Builder
	var run []rune
	for y := 0; y < c.h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		row := c.cells[y*c.w : (y+1)*c.w]
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && styleOf(row[x]) == styleOf(row[start]) {
				continue
			}
			run = run[:0]
			for _, cl := range row[start:x] {
				run = append(run, cl.r)
			}
			sb.WriteString(style(styleOf(row[start])).Render(string(run)))
			start = x
		}
	}
	return sb.String()
}

// Plain returns the grid text without styling, trailing spaces trimmed.
func (c *Canvas) Plain() string {
	lines := make([]string, c.h)
	for y := range lines {
		row := make([]rune, c.w)
		for x := range row {
			row[x] = c.cells[y*c.w+x].r
		}
		lines[y] = strings.TrimRight(string(row), " ")
	}
	return strings.Join(lines, "\n")
}

func styleOf(cl cell) cellStyle {
	return cellStyle{fg: cl.fg, bg: cl.bg, attrs: cl.attrs, rev: cl.rev}
}

func toRGBA(c color.Color) color.RGBA {
	if c == nil {
		return color.RGBA{}
	}
	return color.RGBAModel.Convert(c).(color.RGBA)
}

func hex(c color.RGBA) string {
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}
