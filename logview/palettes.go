package logview

import "sort"

// DefaultPaletteName is the palette that always exists.
const DefaultPaletteName = "default"

func (v *View) systemEntry() Entry {
	return Entry{
		Text:       v.cfg.Colors.WindowText,
		Background: v.cfg.Colors.Base,
		CaretLine:  v.cfg.Colors.AlternateBase,
	}
}

// CreatePalette registers a palette of size entries, each set to the system
// window colors. An existing palette with the same name is deleted first.
// It returns nil for an empty name or the default palette's name.
func (v *View) CreatePalette(size int, name string) *Palette {
	if !v.paletteNameUsable(name) {
		return nil
	}
	v.DeletePalette(name)
	p := newPalette(name, size, v.systemEntry())
	v.palettes[name] = p
	return p
}

// ClonePalette registers a copy of src under name. Naming rules follow
// CreatePalette; cloning a palette over itself fails.
func (v *View) ClonePalette(name string, src *Palette) *Palette {
	if src == nil || !v.paletteNameUsable(name) {
		return nil
	}
	if v.palettes[name] == src {
		v.log.Warn("logview: cannot clone a palette over itself", "palette", name)
		return nil
	}
	v.DeletePalette(name)
	p := src.clone(name)
	v.palettes[name] = p
	return p
}

func (v *View) paletteNameUsable(name string) bool {
	switch name {
	case "":
		v.log.Warn("logview: palette name is empty")
		return false
	case DefaultPaletteName:
		v.log.Warn("logview: cannot replace the default palette", "palette", name)
		return false
	}
	return true
}

// Palette returns the named palette or nil.
func (v *View) Palette(name string) *Palette { return v.palettes[name] }

// DeletePalette removes a palette. The default palette cannot be deleted;
// deleting the active palette activates the default one.
func (v *View) DeletePalette(name string) {
	if name == DefaultPaletteName {
		return
	}
	p, ok := v.palettes[name]
	if !ok {
		return
	}
	if p == v.active {
		v.ActivatePalette(DefaultPaletteName)
	}
	delete(v.palettes, name)
}

func (v *View) PaletteNames() []string {
	names := make([]string, 0, len(v.palettes))
	for name := range v.palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (v *View) DefaultPaletteName() string { return DefaultPaletteName }

func (v *View) ActivePaletteName() string {
	if v.active == nil {
		return DefaultPaletteName
	}
	return v.active.name
}

// ActivatePalette makes the named palette current and rebuilds its drawable
// styles. An empty name rebuilds the current palette, which is how entry
// edits become visible. Unknown names fail.
func (v *View) ActivatePalette(name string) bool {
	p := v.active
	if name != "" {
		var ok bool
		if p, ok = v.palettes[name]; !ok {
			v.log.Warn("logview: unknown palette", "palette", name)
			return false
		}
	}
	if p == nil {
		p = v.palettes[DefaultPaletteName]
	}
	v.active = p
	v.activated = v.buildActivated(p)
	v.SetUpdatesNeeded(UpdateFull)
	return true
}
