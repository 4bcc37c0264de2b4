package main

import (
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/logtext/buffer"
	"github.com/iw2rmb/logtext/follow"
	"github.com/iw2rmb/logtext/logview"
	"github.com/iw2rmb/logtext/logview/term"
	"github.com/iw2rmb/logtext/theme"
)

type nopClipboard struct{}

func (nopClipboard) WriteText(string, logview.ClipboardMode) error { return nil }

func newTestApp(t *testing.T, tail bool) (app, chan follow.Batch) {
	t.Helper()
	m := term.New(term.Config{Renderer: lipgloss.NewRenderer(io.Discard), Clipboard: nopClipboard{}})
	src := make(chan follow.Batch, 4)
	a := newApp(m, src, func(s string) term.Line { return term.Line{Text: s} }, tail)
	next, _ := a.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	return next.(app), src
}

func TestApp_AppendsBatches(t *testing.T) {
	a, _ := newTestApp(t, false)

	next, cmd := a.Update(batchMsg{batch: follow.Batch{Lines: []string{"a", "b"}}, ok: true})
	a = next.(app)
	assert.NotNil(t, cmd)
	assert.Equal(t, 2, a.log.LogView().LineCount())

	next, _ = a.Update(batchMsg{batch: follow.Batch{Lines: []string{"c"}, Reset: true}, ok: true})
	a = next.(app)
	v := a.log.LogView()
	assert.Equal(t, 1, v.LineCount())
	assert.Equal(t, "c\n", v.PlainText("\n"))

	next, _ = a.Update(batchMsg{})
	a = next.(app)
	assert.True(t, a.log.LogView().Finalized())
	assert.Contains(t, a.View(), "1 lines loaded")
}

func TestApp_FollowEndDoesNotFinalize(t *testing.T) {
	a, _ := newTestApp(t, true)
	next, _ := a.Update(batchMsg{})
	a = next.(app)
	assert.False(t, a.log.LogView().Finalized())
	assert.Contains(t, a.View(), "stopped following")
}

func TestWaitBatch(t *testing.T) {
	src := make(chan follow.Batch, 1)
	src <- follow.Batch{Lines: []string{"x"}}
	assert.Equal(t, batchMsg{batch: follow.Batch{Lines: []string{"x"}}, ok: true}, waitBatch(src)())
	close(src)
	assert.Equal(t, batchMsg{}, waitBatch(src)())
}

func TestClassifier(t *testing.T) {
	th, err := theme.Decode(strings.NewReader(`
palettes.p.styles = [{}, { text = "#ff0000" }]
rules = [{ pattern = "WARN", style = 1 }]
`))
	require.NoError(t, err)

	cls, err := newClassifier(th, "boom")
	require.NoError(t, err)
	assert.True(t, cls.marks())
	assert.Equal(t, term.Line{Text: "WARN boom", Style: buffer.StyleID(1), Marked: true}, cls.line("WARN boom"))
	assert.Equal(t, term.Line{Text: "quiet"}, cls.line("quiet"))

	plain, err := newClassifier(nil, "")
	require.NoError(t, err)
	assert.False(t, plain.marks())

	_, err = newClassifier(nil, "(")
	assert.Error(t, err)
}

func TestRenderSnapshot(t *testing.T) {
	in := strings.NewReader("first line\nsecond ERROR line\nthird line\n")
	img, err := renderSnapshot(in, snapshotOptions{width: 200, height: 80, family: "Go Mono", size: 12, mark: "ERROR"}, nil)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(200, 80), img.Rect.Size())

	inked := 0
	for y := 0; y < 80; y++ {
		for x := 14; x < 200; x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r < 0x8000 {
				inked++
			}
		}
	}
	assert.Positive(t, inked, "text drawn")

	marked := false
	for y := 0; y < 80; y++ {
		if img.RGBAAt(5, y) == markColor {
			marked = true
		}
	}
	assert.True(t, marked, "gutter mark drawn")
}

func TestRenderSnapshotErrors(t *testing.T) {
	_, err := renderSnapshot(strings.NewReader(""), snapshotOptions{width: 0, height: 10}, nil)
	assert.Error(t, err)

	_, err = renderSnapshot(strings.NewReader("x\n"), snapshotOptions{width: 10, height: 10, size: 12, palette: "nope"}, nil)
	assert.ErrorContains(t, err, `unknown palette "nope"`)
}

func TestWriteImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(1, 1, markColor)
	dir := t.TempDir()

	path := filepath.Join(dir, "out.png")
	require.NoError(t, writeImage(path, img))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	got, err := png.Decode(f)
	require.NoError(t, err)
	r, g, b, _ := got.At(1, 1).RGBA()
	assert.Equal(t, [3]uint32{0xe0e0, 0x4040, 0x4040}, [3]uint32{r, g, b})

	for _, name := range []string{"out.bmp", "out.TIFF"} {
		require.NoError(t, writeImage(filepath.Join(dir, name), img), name)
	}
	assert.ErrorContains(t, writeImage(filepath.Join(dir, "out.gif"), img), "unsupported")
}
