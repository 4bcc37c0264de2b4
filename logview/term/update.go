package term

import (
	"fmt"
	"image"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/logtext/logview"
)

// updateKey handles a key press and reports whether to quit.
func (m Model) updateKey(msg tea.KeyMsg) bool {
	if m.st.searching {
		m.updateSearch(msg)
		return false
	}
	m.st.message = ""

	keys := m.cfg.KeyMap
	switch {
	case key.Matches(msg, keys.Quit):
		return true
	case key.Matches(msg, keys.Search):
		m.st.searching = true
		m.st.query = m.st.query[:0]
	case key.Matches(msg, keys.FindNext):
		m.find(false)
	case key.Matches(msg, keys.FindPrev):
		m.find(true)
	case key.Matches(msg, keys.Copy):
		if m.view.HasSelectedText() {
			m.view.Copy()
			m.st.message = "copied"
		}
	case key.Matches(msg, keys.SelectAll):
		m.view.SelectAll()
	default:
		m.view.KeyPress(m.keyEvent(msg))
	}
	return false
}

func (m Model) keyEvent(msg tea.KeyMsg) logview.KeyEvent {
	keys := m.cfg.KeyMap
	ev := logview.KeyEvent{Key: logview.KeyOther, Text: msg.String()}
	switch {
	case key.Matches(msg, keys.Up):
		ev.Key = logview.KeyUp
	case key.Matches(msg, keys.Down):
		ev.Key = logview.KeyDown
	case key.Matches(msg, keys.PageUp):
		ev.Key = logview.KeyPageUp
	case key.Matches(msg, keys.PageDown):
		ev.Key = logview.KeyPageDown
	case key.Matches(msg, keys.Home):
		ev.Key = logview.KeyHome
	case key.Matches(msg, keys.End):
		ev.Key = logview.KeyEnd
	case key.Matches(msg, keys.ScrollLock):
		ev.Key = logview.KeyScrollLock
	case key.Matches(msg, keys.Escape):
		ev.Key = logview.KeyEscape
	}
	if ev.Key != logview.KeyOther {
		ev.Text = ""
	}
	if msg.Alt {
		ev.Mods |= logview.ModAlt
	}
	return ev
}

func (m Model) updateSearch(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEnter:
		m.st.searching = false
		if len(m.st.query) > 0 {
			m.st.lastQuery = string(m.st.query)
			m.find(false)
		}
	case tea.KeyEsc:
		m.st.searching = false
	case tea.KeyBackspace:
		if n := len(m.st.query); n > 0 {
			m.st.query = m.st.query[:n-1]
		}
	case tea.KeySpace:
		m.st.query = append(m.st.query, ' ')
	case tea.KeyRunes:
		m.st.query = append(m.st.query, msg.Runes...)
	}
}

// find searches for the last query from the caret.
func (m Model) find(backward bool) {
	q := m.st.lastQuery
	if q == "" {
		return
	}
	if !m.view.Find(q, nil, logview.FindOptions{Backward: backward}) {
		m.st.message = fmt.Sprintf("not found: %s", q)
	}
}

func (m Model) updateMouse(msg tea.MouseMsg) {
	pos := image.Pt(msg.X, msg.Y)
	var mods logview.Modifiers
	if msg.Shift {
		mods |= logview.ModShift
	}
	if msg.Ctrl {
		mods |= logview.ModCtrl
	}
	if msg.Alt {
		mods |= logview.ModAlt
	}

	if tea.MouseEvent(msg).IsWheel() {
		ev := logview.WheelEvent{Pos: pos, Mods: mods, Steps: 1}
		switch msg.Button { //nolint:exhaustive
		case tea.MouseButtonWheelUp:
			ev.Steps = -1
		case tea.MouseButtonWheelLeft:
			ev.Steps, ev.Mods = -1, logview.ModCtrl|logview.ModAlt
		case tea.MouseButtonWheelRight:
			ev.Mods = logview.ModCtrl | logview.ModAlt
		}
		m.view.Wheel(ev)
		return
	}

	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionPress:
		switch msg.Button { //nolint:exhaustive
		case tea.MouseButtonLeft:
			ev := logview.MouseEvent{Pos: pos, Button: logview.ButtonLeft, Mods: mods}
			now := m.cfg.Now()
			if pos == m.st.lastClickPos && now.Sub(m.st.lastClick) <= m.cfg.DoubleClickTime {
				m.st.lastClick = time.Time{}
				m.view.MouseDoubleClick(ev)
				return
			}
			m.st.lastClick, m.st.lastClickPos = now, pos
			m.view.MousePress(ev)
		case tea.MouseButtonRight:
			m.view.ContextMenu(logview.MouseEvent{Pos: pos, Button: logview.ButtonRight, Mods: mods})
		}
	case tea.MouseActionMotion:
		held := logview.ButtonNone
		if msg.Button == tea.MouseButtonLeft {
			held = logview.ButtonLeft
		}
		m.view.MouseMove(logview.MouseEvent{Pos: pos, Held: held, Mods: mods})
	case tea.MouseActionRelease:
		m.view.MouseRelease(logview.MouseEvent{Pos: pos, Button: logview.ButtonLeft, Mods: mods})
	}
}
