package app

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/Gaurav-Gosain/tuimodal/internal/config"
	"github.com/Gaurav-Gosain/tuimodal/internal/theme"
)

// renderHelp renders the keybinding overlay, one table per section.
func (m *Model) renderHelp() string {
	titleStyle := lipgloss.NewStyle().Foreground(theme.HelpTitle()).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(theme.HelpKeyBadge()).Padding(0, 1)
	descStyle := lipgloss.NewStyle().Padding(0, 1)
	width := config.HelpWidth - 6

	var blocks []string
	for _, section := range config.GetKeybindings(m.registry) {
		rows := make([][]string, 0, len(section.Bindings))
		for _, b := range section.Bindings {
			rows = append(rows, []string{b.Key, b.Description})
		}
		t := table.New().
			Border(lipgloss.HiddenBorder()).
			Width(width).
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if col == 0 {
					return keyStyle
				}
				return descStyle
			})
		blocks = append(blocks, titleStyle.Render(section.Title), t.Render())
	}

	footer := lipgloss.NewStyle().
		Foreground(theme.HelpGray()).
		Italic(true).
		Render("press " + m.registry.GetKeysForDisplay("toggle_help") + " or click to close")
	blocks = append(blocks, footer)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.HelpKeyBadge()).
		Padding(0, 2).
		Render(strings.Join(blocks, "\n"))
}
