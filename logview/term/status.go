package term

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) statusLine() string {
	st := m.cfg.Style
	v := m.view

	if m.st.searching {
		return st.Prompt.Width(m.width).Render("/" + string(m.st.query))
	}

	parts := make([]string, 0, 4)
	if m.cfg.Title != "" {
		parts = append(parts, m.cfg.Title)
	}
	parts = append(parts, fmt.Sprintf("%d lines", v.LineCount()))
	if v.HasSelectedText() {
		r := v.Selection()
		parts = append(parts, fmt.Sprintf("sel %d:%d-%d:%d", r.First.Line+1, r.First.Col+1, r.Second.Line+1, r.Second.Col+1))
	}
	left := st.Status.Render(" " + strings.Join(parts, " | ") + " ")
	if v.ScrollLocked() {
		left += st.Locked.Render("LOCK ")
	}

	right := ""
	if m.st.message != "" {
		right = st.Message.Render(" " + m.st.message + " ")
	}
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return left + st.Status.Render(strings.Repeat(" ", gap)) + right
}
