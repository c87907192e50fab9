package controller

import "github.com/charmbracelet/lipgloss"

var (
	successColor = lipgloss.Color("#8BC34A")
	warningColor = lipgloss.Color("#FFC107")
	infoColor    = lipgloss.Color("#2196F3")
)

type styles struct {
	enabled bool

	success lipgloss.Style
	warning lipgloss.Style
	info    lipgloss.Style
	muted   lipgloss.Style
}

func newStyles(enabled bool) styles {
	return styles{
		enabled: enabled,
		success: lipgloss.NewStyle().Foreground(successColor),
		warning: lipgloss.NewStyle().Foreground(warningColor).Bold(true),
		info:    lipgloss.NewStyle().Foreground(infoColor),
		muted:   lipgloss.NewStyle().Faint(true),
	}
}

// render applies style when colors are enabled; plain output stays byte-exact.
func (s styles) render(style lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}

	return style.Render(text)
}
