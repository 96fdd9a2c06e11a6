package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/animal-bridge/internal/session"
	"github.com/vovakirdan/animal-bridge/internal/storage"
)

// newRankingTable creates the ranking table sized for the terminal.
func newRankingTable(width, height int) table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Name", Width: 16},
		{Title: "Blocks", Width: 8},
		{Title: "Eaten", Width: 7},
		{Title: "Time", Width: 10},
	}
	// Give spare width to the name column.
	if spare := width - 4 - 6 - 16 - 8 - 7 - 10 - 10; spare > 0 {
		columns[1].Width += min(spare, 8)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(min(storage.MaxRankings+1, max(3, height-10))),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// rankingRows converts entries into table rows.
func rankingRows(entries []storage.RankingEntry) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			e.Name,
			fmt.Sprintf("%d", e.Blocks),
			fmt.Sprintf("%d", e.Eaten),
			session.FormatSeconds(e.Time),
		}
	}
	return rows
}

// refreshRanking reloads the rows for the stage being viewed.
func (m *Model) refreshRanking() {
	m.ranking.SetRows(rankingRows(m.flow.Rankings()))
	m.ranking.GotoTop()
}

func (m Model) viewRanking() string {
	var b strings.Builder

	stage := m.flow.RankingStage()
	title := fmt.Sprintf("RANKING - Stage %d", stage)
	if s, ok := m.catalogStage(stage); ok {
		title = fmt.Sprintf("RANKING - Stage %d: %s", stage, s)
	}
	b.WriteString(m.theme.Title.Render(centerText(title, m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("<  %d / %d  >", stage, m.stageCount), m.width))
	b.WriteString("\n\n")

	var content string
	if len(m.ranking.Rows()) == 0 {
		content = m.theme.Description.Padding(2, 4).Render("No clears recorded yet.\nFinish the stage to set a record!")
	} else {
		content = m.ranking.View()
	}
	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, tableStyle.Render(content)))

	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render(centerText("←/→: stage  |  ↑/↓: scroll  |  tab/esc: back", m.width)))
	return b.String()
}
