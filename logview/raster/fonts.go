package raster

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/iw2rmb/logtext/logview"
)

const (
	FamilyGoMono = "Go Mono"
	// FamilyGo is proportional; a View rejects it as a base font.
	FamilyGo = "Go"
)

const defaultDPI = 72

type variant struct {
	family       string
	bold, italic bool
}

var ttfs = map[variant][]byte{
	{FamilyGoMono, false, false}: gomono.TTF,
	{FamilyGoMono, true, false}:  gomonobold.TTF,
	{FamilyGoMono, false, true}:  gomonoitalic.TTF,
	{FamilyGoMono, true, true}:   gomonobolditalic.TTF,
	{FamilyGo, false, false}:     goregular.TTF,
	{FamilyGo, true, false}:      gobold.TTF,
	{FamilyGo, false, true}:      goitalic.TTF,
	{FamilyGo, true, true}:       gobolditalic.TTF,
}

// GoFonts serves the Go font families as hinted opentype faces and hands
// other families to Fallback (logview.BasicFonts when nil). Parsed fonts
// and faces are cached; it is safe for concurrent use.
type GoFonts struct {
	DPI      float64
	Fallback logview.FontSource

	mu     sync.Mutex
	parsed map[variant]*opentype.Font
	faces  map[logview.FontDesc]font.Face
}

var _ logview.FontSource = (*GoFonts)(nil)

func (g *GoFonts) Face(desc logview.FontDesc) (font.Face, error) {
	key := variant{desc.Family, desc.Bold, desc.Italic}
	data, ok := ttfs[key]
	if !ok {
		if g.Fallback != nil {
			return g.Fallback.Face(desc)
		}
		return logview.BasicFonts{}.Face(desc)
	}
	if desc.Size <= 0 {
		return nil, fmt.Errorf("raster: invalid font size %g", desc.Size)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if f, ok := g.faces[desc]; ok {
		return f, nil
	}
	f, ok := g.parsed[key]
	if !ok {
		var err error
		if f, err = opentype.Parse(data); err != nil {
			return nil, fmt.Errorf("raster: parse %s: %w", desc.Family, err)
		}
		if g.parsed == nil {
			g.parsed = map[variant]*opentype.Font{}
		}
		g.parsed[key] = f
	}
	dpi := g.DPI
	if dpi <= 0 {
		dpi = defaultDPI
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    desc.Size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("raster: face %v: %w", desc, err)
	}
	if g.faces == nil {
		g.faces = map[logview.FontDesc]font.Face{}
	}
	g.faces[desc] = face
	return face, nil
}
