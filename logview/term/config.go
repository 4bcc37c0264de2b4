package term

import (
	"image"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/logtext/logview"
)

const defaultDoubleClickTime = 400 * time.Millisecond

// Config configures a Model. Zero values select the defaults.
type Config struct {
	// View configures the hosted view. Fonts and Font are replaced by the
	// cell font; GutterWidth counts columns.
	View logview.Config

	KeyMap   KeyMap
	Style    *Style
	Renderer *lipgloss.Renderer

	// Clipboard defaults to OSC 52 on stdout.
	Clipboard logview.Clipboard

	// Title is shown at the left of the status line.
	Title      string
	HideStatus bool

	// MarkImage is the gutter image of lines appended with Line.Marked.
	MarkImage image.Image

	DoubleClickTime time.Duration
	Now             func() time.Time
}

func (c Config) withDefaults() Config {
	if c.Renderer == nil {
		c.Renderer = lipgloss.DefaultRenderer()
	}
	if c.Style == nil {
		st := defaultStyle(c.Renderer)
		c.Style = &st
	}
	if c.KeyMap.Quit.Keys() == nil {
		c.KeyMap = DefaultKeyMap()
	}
	if c.Clipboard == nil {
		c.Clipboard = NewOSC52Clipboard(os.Stdout)
	}
	if c.DoubleClickTime <= 0 {
		c.DoubleClickTime = defaultDoubleClickTime
	}
	if c.Now == nil {
		c.Now = time.Now
	}

	c.View.Fonts = cellFonts{}
	c.View.Font = cellFont
	c.View.Clipboard = c.Clipboard
	if c.View.Logger == nil {
		c.View.Logger = slog.Default()
	}
	if c.View.Now == nil {
		c.View.Now = c.Now
	}
	return c
}
