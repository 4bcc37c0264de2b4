package logview

import (
	"image/color"
	"log/slog"
	"time"
)

// Config configures a View. Zero values select the defaults.
type Config struct {
	// Base font. Must resolve to a fixed-pitch face.
	Font  FontDesc
	Fonts FontSource

	// MaxLines caps the line store; <= 0 is unlimited.
	MaxLines int

	// GutterWidth in pixels; 0 hides the gutter.
	GutterWidth int

	HideCaret     bool
	HoverTime     time.Duration
	EscJumpsToEnd bool

	WheelScrollLines int // default: 3
	DragThreshold    int // default: 10 (pixels, manhattan)

	Colors    SystemColors
	Clipboard Clipboard
	Logger    *slog.Logger
	Notify    Notify

	// Now is the clock used by hover timing. Default: time.Now.
	Now func() time.Time
}

// SystemColors are the platform colors used outside of palettes: new
// palette entries, selection highlight, gutter and caret.
type SystemColors struct {
	WindowText      color.RGBA
	Base            color.RGBA
	AlternateBase   color.RGBA
	Highlight       color.RGBA
	HighlightedText color.RGBA
	ToolTipBase     color.RGBA
	Shadow          color.RGBA
}

func DefaultSystemColors() SystemColors {
	return SystemColors{
		WindowText:      color.RGBA{0x00, 0x00, 0x00, 0xff},
		Base:            color.RGBA{0xff, 0xff, 0xff, 0xff},
		AlternateBase:   color.RGBA{0xf7, 0xf7, 0xf7, 0xff},
		Highlight:       color.RGBA{0x30, 0x8c, 0xc6, 0xff},
		HighlightedText: color.RGBA{0xff, 0xff, 0xff, 0xff},
		ToolTipBase:     color.RGBA{0xff, 0xff, 0xdc, 0xff},
		Shadow:          color.RGBA{0x76, 0x76, 0x76, 0xff},
	}
}

const (
	defaultWheelScrollLines = 3
	defaultDragThreshold    = 10

	caretBlinkInterval  = 500 * time.Millisecond
	selectScrollPeriod  = 200 * time.Millisecond
	hoverIdleCutoff     = 5 * time.Second
	maxHoverTime        = 2 * time.Second
	hoverTimeResolution = 50 * time.Millisecond

	gutterBorder = 1
	textBorder   = 1
)

func (c Config) withDefaults() Config {
	if c.Fonts == nil {
		c.Fonts = BasicFonts{}
	}
	if c.Font == (FontDesc{}) {
		c.Font = DefaultFont
	}
	if c.WheelScrollLines <= 0 {
		c.WheelScrollLines = defaultWheelScrollLines
	}
	if c.DragThreshold <= 0 {
		c.DragThreshold = defaultDragThreshold
	}
	if c.Colors == (SystemColors{}) {
		c.Colors = DefaultSystemColors()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}
