package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/yegors/wxwidget/internal/condition"
)

var (
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle  = lipgloss.NewStyle().Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#c0392b")).Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2ecc71"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	tempStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff"))
)

// themeStyles holds the styles that follow the background theme
type themeStyles struct {
	frame     lipgloss.Style
	header    lipgloss.Style
	activeTab lipgloss.Style
	tab       lipgloss.Style
	input     lipgloss.Style
	inputBlur lipgloss.Style
}

func stylesFor(theme condition.Theme) themeStyles {
	from := lipgloss.Color(theme.From)
	to := lipgloss.Color(theme.To)

	return themeStyles{
		frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(from).
			Padding(0, 1),
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(to).
			Padding(0, 1),
		activeTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(from).
			Padding(0, 1),
		tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1),
		input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(from).
			Padding(0, 1),
		inputBlur: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
	}
}
