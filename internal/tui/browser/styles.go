package browser

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	appStyle = lipgloss.NewStyle().Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0AF")).
			Bold(true).
			Padding(0, 1)

	syncStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#D20F39", Dark: "#F38BA8"}).
			Render

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#334455")).
			Padding(0, 1)

	focusedPaneStyle = paneStyle.Copy().
				BorderForeground(lipgloss.Color("#0AF"))

	paneTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cba6f7")).
			Bold(true)

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#0AF")).
				Background(lipgloss.Color("#224")).
				Bold(true)

	focusedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Background(lipgloss.Color("#0AF")).
				Foreground(lipgloss.Color("#FFF"))

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086"))

	inputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#0AF")).
			Padding(0, 1)

	confirmStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F9E2AF")).
			Bold(true)

	// Category tabs cycle through these ANSI colours.
	tabPalette = []lipgloss.Color{"6", "5", "2", "3", "4"}
)

func tabStyle(i int, selected, focused bool) lipgloss.Style {
	style := lipgloss.NewStyle().
		Foreground(tabPalette[i%len(tabPalette)]).
		Padding(0, 1)

	if selected {
		style = style.Bold(true).Underline(true)
		if focused {
			style = style.Reverse(true)
		}
	}
	return style
}
