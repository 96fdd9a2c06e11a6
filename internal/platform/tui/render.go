package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/animal-bridge/internal/core"
)

// CellPalette maps stage colors to terminal styles. Colors without an entry
// are printed unstyled.
type CellPalette map[core.Color]lipgloss.Style

func fg(code string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
}

// DefaultCellPalette uses ANSI 256 colors.
func DefaultCellPalette() CellPalette {
	return CellPalette{
		core.ColorRed:          fg("1"),
		core.ColorGreen:        fg("2"),
		core.ColorYellow:       fg("3"),
		core.ColorCyan:         fg("6"),
		core.ColorWhite:        fg("7"),
		core.ColorBrightRed:    fg("9"),
		core.ColorBrightGreen:  fg("10"),
		core.ColorBrightYellow: fg("11"),
		core.ColorOrange:       fg("208"),
		core.ColorGray:         fg("245"),
		core.ColorBrown:        fg("130"),
		core.ColorDarkGray:     fg("238"),
	}
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Runs of equally colored cells share one escape sequence.
func RenderScreen(s *core.Screen, palette CellPalette) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.Width(); {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width() && s.GetCell(x, y).Color == color; x++ {
				run.WriteRune(s.GetCell(x, y).Rune)
			}
			if style, ok := palette[color]; ok {
				sb.WriteString(style.Render(run.String()))
			} else {
				sb.WriteString(run.String())
			}
		}
	}
	return sb.String()
}
