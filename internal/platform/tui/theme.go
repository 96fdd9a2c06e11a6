package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the styles of the menu screens.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	ItemNormal  lipgloss.Style
	ItemActive  lipgloss.Style
	ItemLocked  lipgloss.Style
	Description lipgloss.Style
	Error       lipgloss.Style
	Panel       lipgloss.Style
	Help        lipgloss.Style
	Cells       CellPalette // Stage screen colors
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Title:       lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		Subtitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		ItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		ItemLocked:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 3),
		Help:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Cells: DefaultCellPalette(),
	}
}

// MonochromeTheme drops colors, keeping emphasis only.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.Title = lipgloss.NewStyle().Bold(true)
	theme.Subtitle = lipgloss.NewStyle()
	theme.ItemNormal = lipgloss.NewStyle()
	theme.ItemActive = lipgloss.NewStyle().Bold(true).Reverse(true)
	theme.ItemLocked = lipgloss.NewStyle().Faint(true)
	theme.Description = lipgloss.NewStyle().Italic(true)
	theme.Error = lipgloss.NewStyle().Bold(true)
	theme.Panel = theme.Panel.BorderForeground(lipgloss.NoColor{})
	theme.Help = lipgloss.NewStyle().Faint(true)
	theme.Cells = nil
	return theme
}
