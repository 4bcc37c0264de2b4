package logview

import (
	"image"
	"image/color"
	"time"

	"golang.org/x/image/font"
)

// Host is the platform side of a View: repaint requests, the event loop,
// timers and the off-screen surface. All callbacks handed to a Host must be
// run on the goroutine that owns the View.
type Host interface {
	// Update requests a repaint of r (viewport coordinates).
	Update(r image.Rectangle)
	// Post runs fn on the next turn of the event loop.
	Post(fn func())
	// StartTimer calls fn every d until the returned Timer is stopped.
	StartTimer(d time.Duration, fn func()) Timer
	// NewCanvas allocates an off-screen surface of the given size.
	NewCanvas(size image.Point) (Canvas, error)
	// Present copies a finished canvas to the screen.
	Present(c Canvas)
	// StartDrag begins an external copy drag of text.
	StartDrag(text string)
	SetCursor(shape CursorShape)
}

type Timer interface {
	Stop()
}

type CursorShape int

const (
	CursorArrow CursorShape = iota
	CursorIBeam
)

// Canvas is an off-screen surface in viewport pixels.
type Canvas interface {
	Bounds() image.Rectangle
	// SetClip limits every following drawing call to r.
	SetClip(r image.Rectangle)
	Fill(r image.Rectangle, c color.Color)
	// VLine draws a vertical line of the given width from y0 to y1 (exclusive).
	VLine(x, y0, y1, width int, c color.Color)
	// XorVLine is VLine composed with XOR so it shows over any background.
	XorVLine(x, y0, y1, width int, c color.Color)
	// Text draws s with its baseline at y. Decorations in attrs are drawn by
	// the canvas.
	Text(x, baseline int, s []rune, face font.Face, fg color.Color, attrs Attr)
	// Image draws the src part of img with its top-left corner at dst.
	Image(dst image.Point, img image.Image, src image.Rectangle)
	// Advance measures r in face as attached to this canvas.
	Advance(face font.Face, r rune) int
}

type ClipboardMode int

const (
	ClipboardStandard ClipboardMode = iota
	// ClipboardSelection is the primary selection on systems that have one.
	ClipboardSelection
)

// Clipboard receives copied text. Writing "" clears the given clipboard.
// Errors must not crash the UI; they are logged and ignored.
type Clipboard interface {
	WriteText(s string, mode ClipboardMode) error
}
