package term

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the viewer key bindings.
type KeyMap struct {
	Up, Down         key.Binding
	PageUp, PageDown key.Binding
	Home, End        key.Binding

	ScrollLock key.Binding
	Escape     key.Binding

	Copy, SelectAll key.Binding

	Search, FindNext, FindPrev key.Binding

	Quit key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", " "), key.WithHelp("pgdn", "page down")),
		Home:     key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home/g", "top")),
		End:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end/G", "follow")),

		// Terminals do not report the Scroll Lock key.
		ScrollLock: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "scroll lock")),
		Escape:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear selection")),

		Copy:      key.NewBinding(key.WithKeys("y", "ctrl+y"), key.WithHelp("y", "copy")),
		SelectAll: key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "select all")),

		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		FindNext: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next match")),
		FindPrev: key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "previous match")),

		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
