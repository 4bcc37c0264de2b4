package term

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/logtext/logview"
)

func TestCanvas_TextKeepsGridAligned(t *testing.T) {
	c, err := NewCanvas(image.Pt(8, 2))
	require.NoError(t, err)

	c.Text(1, 1, []rune("a界\tb"), cellFace, color.Black, logview.AttrBold)
	assert.Equal(t, " a··b\n", c.Plain())
	assert.Equal(t, logview.AttrBold, c.cells[1].attrs)
}

func TestCanvas_ClipAndXor(t *testing.T) {
	c, err := NewCanvas(image.Pt(6, 2))
	require.NoError(t, err)

	c.SetClip(image.Rect(0, 1, 6, 2))
	c.Text(0, 1, []rune("top"), cellFace, color.Black, 0)
	c.Text(0, 2, []rune("bottom"), cellFace, color.Black, 0)
	assert.Equal(t, "\nbottom", c.Plain())

	c.XorVLine(2, 1, 2, 2, color.White)
	assert.True(t, c.cells[6+2].rev)
	assert.False(t, c.cells[6+3].rev)
	c.XorVLine(2, 1, 2, 2, color.White)
	assert.False(t, c.cells[6+2].rev)
}

func TestCanvas_FillClearsText(t *testing.T) {
	c, err := NewCanvas(image.Pt(4, 1))
	require.NoError(t, err)
	c.Text(0, 1, []rune("abcd"), cellFace, color.Black, 0)

	blue := color.RGBA{0, 0, 0xff, 0xff}
	c.Fill(image.Rect(1, 0, 3, 1), blue)
	assert.Equal(t, "a  d", c.Plain())
	assert.Equal(t, blue, c.cells[1].bg)
}

func TestCanvas_RejectsBadSizes(t *testing.T) {
	_, err := NewCanvas(image.Pt(0, 1))
	assert.Error(t, err)
	_, err = NewCanvas(image.Pt(1<<12, 1<<12))
	assert.ErrorIs(t, err, ErrCanvasTooLarge)
}

func TestCanvas_RenderRunsShareStyles(t *testing.T) {
	c, err := NewCanvas(image.Pt(5, 1))
	require.NoError(t, err)
	c.Text(0, 1, []rune("abcde"), cellFace, color.Black, 0)

	out := c.Render(asciiRenderer())
	assert.Equal(t, "abcde", out)
}

func TestOSC52Clipboard(t *testing.T) {
	t.Setenv("TERM", "xterm-256color")
	var buf bytes.Buffer
	clip := NewOSC52Clipboard(&buf)

	require.NoError(t, clip.WriteText("hello", logview.ClipboardStandard))
	assert.Equal(t, "\x1b]52;c;aGVsbG8=\a", buf.String())

	buf.Reset()
	require.NoError(t, clip.WriteText("hello", logview.ClipboardSelection))
	assert.Equal(t, "\x1b]52;p;aGVsbG8=\a", buf.String())
}
