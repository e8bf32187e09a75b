package listing

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	column    lipgloss.Style
	name      lipgloss.Style
	detail    lipgloss.Style
	favorite  lipgloss.Style
	empty     lipgloss.Style
	active    lipgloss.Style
	connected lipgloss.Style
	pending   lipgloss.Style
	dead      lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true),
		header:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		column:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Underline(true),
		name:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		favorite:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		empty:     lipgloss.NewStyle().Faint(true),
		active:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("159")),
		connected: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		pending:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		dead:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
}
