package raster

import (
	"sync"

	"github.com/iw2rmb/logtext/logview"
)

// MemoryClipboard keeps one text per clipboard mode in memory.
type MemoryClipboard struct {
	mu   sync.Mutex
	text map[logview.ClipboardMode]string
}

var _ logview.Clipboard = (*MemoryClipboard)(nil)

func (c *MemoryClipboard) WriteText(s string, mode logview.ClipboardMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.text == nil {
		c.text = map[logview.ClipboardMode]string{}
	}
	c.text[mode] = s
	return nil
}

func (c *MemoryClipboard) Text(mode logview.ClipboardMode) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text[mode]
}
