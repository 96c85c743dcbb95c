package shows

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title  lipgloss.Style
	header lipgloss.Style
	show   lipgloss.Style
	count  lipgloss.Style
	empty  lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:  lipgloss.NewStyle().Bold(true),
		header: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		show:   lipgloss.NewStyle().Foreground(lipgloss.Color("69")),
		count:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		empty:  lipgloss.NewStyle().Faint(true),
	}
}
