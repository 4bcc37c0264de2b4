package term

import "github.com/charmbracelet/lipgloss"

// Style controls the status line.
type Style struct {
	Status  lipgloss.Style
	Locked  lipgloss.Style
	Prompt  lipgloss.Style
	Message lipgloss.Style
}

func DefaultStyle() Style {
	return defaultStyle(lipgloss.DefaultRenderer())
}

func defaultStyle(r *lipgloss.Renderer) Style {
	bar := r.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236"))
	return Style{
		Status:  bar,
		Locked:  bar.Foreground(lipgloss.Color("214")).Bold(true),
		Prompt:  bar.Foreground(lipgloss.Color("117")),
		Message: bar.Foreground(lipgloss.Color("245")),
	}
}
