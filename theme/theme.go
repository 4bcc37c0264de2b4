package theme

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/image/colornames"

	"github.com/iw2rmb/logtext/buffer"
	"github.com/iw2rmb/logtext/logview"
)

var ErrUnknownAttribute = errors.New("theme: unknown attribute")

// Theme is the decoded form of a theme file.
type Theme struct {
	Active   string             `toml:"active,omitempty"`
	Font     *Font              `toml:"font,omitempty"`
	Palettes map[string]Palette `toml:"palettes,omitempty"`
	Rules    []Rule             `toml:"rules,omitempty"`

	compiled []*regexp.Regexp
}

type Font struct {
	Family string  `toml:"family"`
	Size   float64 `toml:"size"`
}

type Palette struct {
	Styles []Style `toml:"styles"`
}

// Style is one palette entry. Empty colors keep the view's defaults.
type Style struct {
	Text       string   `toml:"text,omitempty"`
	Background string   `toml:"background,omitempty"`
	CaretLine  string   `toml:"caret_line,omitempty"`
	Attrs      []string `toml:"attrs,omitempty"`
}

// Rule assigns a style to lines matching Pattern. Mark also puts the gutter
// mark on them.
type Rule struct {
	Pattern string         `toml:"pattern"`
	Style   buffer.StyleID `toml:"style"`
	Mark    bool           `toml:"mark,omitempty"`
}

var attrNames = map[string]logview.Attr{
	"italic":    logview.AttrItalic,
	"bold":      logview.AttrBold,
	"underline": logview.AttrUnderline,
	"overline":  logview.AttrOverline,
	"strikeout": logview.AttrStrikeOut,
}

// Load reads a theme file.
func Load(path string) (*Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}
	defer f.Close()
	t, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Decode reads a theme and checks its colors, attributes and rules.
// Unknown keys are errors.
func Decode(r io.Reader) (*Theme, error) {
	var t Theme
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("theme: decode: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (t *Theme) validate() error {
	if t.Active != "" && t.Active != logview.DefaultPaletteName {
		if _, ok := t.Palettes[t.Active]; !ok {
			return fmt.Errorf("theme: active palette %q is not defined", t.Active)
		}
	}
	for name, p := range t.Palettes {
		if name == "" {
			return errors.New("theme: palette without a name")
		}
		for i, s := range p.Styles {
			if _, err := s.entry(logview.Entry{}); err != nil {
				return fmt.Errorf("theme: palette %q style %d: %w", name, i, err)
			}
		}
	}
	t.compiled = make([]*regexp.Regexp, len(t.Rules))
	for i, r := range t.Rules {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return fmt.Errorf("theme: rule %d: %w", i, err)
		}
		t.compiled[i] = re
	}
	return nil
}

// entry applies s over base.
func (s Style) entry(base logview.Entry) (logview.Entry, error) {
	e := base
	for _, c := range []struct {
		hex string
		set func(color.Color)
	}{
		{s.Text, e.SetTextColor},
		{s.Background, e.SetBackground},
		{s.CaretLine, e.SetCaretLineColor},
	} {
		if c.hex == "" {
			continue
		}
		col, err := parseColor(c.hex)
		if err != nil {
			return e, err
		}
		c.set(col)
	}
	if s.Attrs != nil {
		var a logview.Attr
		for _, name := range s.Attrs {
			f, ok := attrNames[name]
			if !ok {
				return e, fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
			}
			a |= f
		}
		e.Attrs = a
	}
	return e, nil
}

// parseColor accepts #rgb, #rrggbb and SVG color names.
func parseColor(s string) (color.Color, error) {
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return nil, fmt.Errorf("color %q: %w", s, err)
		}
		return c, nil
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("color %q: unknown name", s)
}

// Apply sets the font, creates every palette and activates the active one.
// Palettes named "default" cannot be created and are skipped.
func (t *Theme) Apply(v *logview.View) error {
	if t.Font != nil {
		desc := v.Font()
		if t.Font.Family != "" {
			desc.Family = t.Font.Family
		}
		if t.Font.Size > 0 {
			desc.Size = t.Font.Size
		}
		v.SetFont(desc)
	}
	for _, name := range t.paletteNames() {
		if name == logview.DefaultPaletteName {
			continue
		}
		styles := t.Palettes[name].Styles
		p := v.CreatePalette(len(styles), name)
		if p == nil {
			return fmt.Errorf("theme: cannot create palette %q", name)
		}
		for i, s := range styles {
			id := buffer.StyleID(i)
			e, err := s.entry(*p.Style(id))
			if err != nil {
				return fmt.Errorf("theme: palette %q style %d: %w", name, i, err)
			}
			p.SetStyle(id, e)
		}
	}
	if t.Active != "" && !v.ActivatePalette(t.Active) {
		return fmt.Errorf("theme: cannot activate palette %q", t.Active)
	}
	return nil
}

func (t *Theme) paletteNames() []string {
	names := make([]string, 0, len(t.Palettes))
	for name := range t.Palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Classify returns the style and mark of the first rule matching line.
// Lines no rule matches get style 0 and no mark.
func (t *Theme) Classify(line string) (buffer.StyleID, bool) {
	if t.compiled == nil && len(t.Rules) > 0 {
		if err := t.validate(); err != nil {
			return 0, false
		}
	}
	for i, re := range t.compiled {
		if re.MatchString(line) {
			return t.Rules[i].Style, t.Rules[i].Mark
		}
	}
	return 0, false
}

// FromView captures the named palettes of v, or all of them when names is
// empty, together with the view's font and active palette.
func FromView(v *logview.View, names ...string) *Theme {
	if len(names) == 0 {
		names = v.PaletteNames()
	}
	f := v.Font()
	t := &Theme{
		Active:   v.ActivePaletteName(),
		Font:     &Font{Family: f.Family, Size: f.Size},
		Palettes: map[string]Palette{},
	}
	for _, name := range names {
		p := v.Palette(name)
		if p == nil {
			continue
		}
		styles := make([]Style, p.Len())
		for i := range styles {
			styles[i] = styleOf(*p.Style(buffer.StyleID(i)))
		}
		t.Palettes[name] = Palette{Styles: styles}
	}
	return t
}

func styleOf(e logview.Entry) Style {
	s := Style{
		Text:       hex(e.Text),
		Background: hex(e.Background),
		CaretLine:  hex(e.CaretLine),
	}
	for _, name := range sortedAttrNames() {
		if e.Attrs.Has(attrNames[name]) {
			s.Attrs = append(s.Attrs, name)
		}
	}
	return s
}

func sortedAttrNames() []string {
	names := make([]string, 0, len(attrNames))
	for name := range attrNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func hex(c color.RGBA) string {
	col, _ := colorful.MakeColor(c)
	return col.Hex()
}

// Encode writes t as TOML.
func (t *Theme) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).SetIndentTables(true).Encode(t); err != nil {
		return fmt.Errorf("theme: encode: %w", err)
	}
	return nil
}
