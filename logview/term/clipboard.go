package term

import (
	"io"

	"github.com/muesli/termenv"

	"github.com/iw2rmb/logtext/logview"
)

// OSC52Clipboard sends copied text to the terminal, which forwards it to
// the system clipboard. The selection mode targets the primary selection.
type OSC52Clipboard struct {
	out *termenv.Output
}

var _ logview.Clipboard = (*OSC52Clipboard)(nil)

func NewOSC52Clipboard(w io.Writer) *OSC52Clipboard {
	return &OSC52Clipboard{out: termenv.NewOutput(w)}
}

func (c *OSC52Clipboard) WriteText(s string, mode logview.ClipboardMode) error {
	if mode == logview.ClipboardSelection {
		c.out.CopyPrimary(s)
		return nil
	}
	c.out.Copy(s)
	return nil
}
