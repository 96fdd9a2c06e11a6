package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/animal-bridge/internal/app"
	"github.com/vovakirdan/animal-bridge/internal/session"
)

// tutorialText is shown before the first attempt at stage 1.
var tutorialText = []string{
	"Guide the ball to the flag.",
	"",
	"Drag an animal from the bottom panel with the mouse and drop it",
	"inside the box at the top. Press R while dragging to rotate it,",
	"or right click to put it back.",
	"Each animal can be placed once per attempt.",
	"",
	"Carnivores (orange, red heads) eat herbivores that come too close.",
	"Build your bridge so the hunters cannot reach their prey.",
	"",
	"Fewer blocks rank higher, then fewer eaten, then a faster time.",
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// centerBlock centers a multi-line block horizontally and vertically.
func centerBlock(block string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}

func (m Model) viewNameEntry() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("A N I M A L   B R I D G E"))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Subtitle.Render("Enter your name"))
	b.WriteString("\n\n")
	b.WriteString(m.name.View())
	b.WriteString("\n\n")
	if m.status != "" {
		b.WriteString(m.theme.Error.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.theme.Help.Render("enter: continue  |  esc: quit"))
	return centerBlock(m.theme.Panel.Render(b.String()), m.width, m.height)
}

func (m Model) viewMainMenu() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("A N I M A L   B R I D G E"))
	b.WriteString("\n")
	b.WriteString(m.theme.Subtitle.Render("Player: " + m.flow.PlayerName()))
	b.WriteString("\n\n")

	for i, item := range app.MenuItems {
		line := "  " + item.String()
		style := m.theme.ItemNormal
		if i == m.menuCursor {
			line = "> " + item.String()
			style = m.theme.ItemActive
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render("↑/↓: navigate  |  enter: select  |  tab: change name  |  q: quit"))
	return centerBlock(m.theme.Panel.Render(b.String()), m.width, m.height)
}

func (m Model) viewStageSelect() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Select a stage"))
	b.WriteString("\n\n")

	for i, e := range m.flow.Stages() {
		best := "no record"
		if e.Best != nil {
			best = fmt.Sprintf("best %d blocks, %d eaten, %s", e.Best.Blocks, e.Best.Eaten, session.FormatSeconds(e.Best.Time))
		}
		label := fmt.Sprintf("%2d. %-22s %s", e.Stage.ID, e.Stage.Name, best)
		if !e.Unlocked {
			label = fmt.Sprintf("%2d. %-22s locked", e.Stage.ID, e.Stage.Name)
		}

		style := m.theme.ItemNormal
		cursor := "  "
		switch {
		case i == m.stageCursor:
			style = m.theme.ItemActive
			cursor = "> "
		case !e.Unlocked:
			style = m.theme.ItemLocked
		}
		b.WriteString(style.Render(cursor + label))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.theme.Error.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.theme.Help.Render("↑/↓: navigate  |  enter: play  |  h: help  |  tab/esc: back"))
	return centerBlock(m.theme.Panel.Render(b.String()), m.width, m.height)
}

func (m Model) viewTutorial() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("How to play"))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(tutorialText, "\n"))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Help.Render("enter: start stage  |  esc: back"))
	return centerBlock(m.theme.Panel.Render(b.String()), m.width, m.height)
}

func (m Model) viewHelp() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("How to play"))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(tutorialText, "\n"))
	b.WriteString("\n\n")
	full := m.help
	full.ShowAll = true
	b.WriteString(full.View(m.keys))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Help.Render("esc: back"))
	return centerBlock(m.theme.Panel.Render(b.String()), m.width, m.height)
}

func (m Model) viewStageClear() string {
	c := m.flow.LastClear()
	if c == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.theme.Title.Render(fmt.Sprintf("Stage %d clear!", c.Stage)))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Blocks used   %d\n", c.BlocksUsed))
	b.WriteString(fmt.Sprintf("Blocks eaten  %d\n", c.Eaten))
	b.WriteString(fmt.Sprintf("Time          %s\n", app.FormatClearTime(c.ElapsedSeconds)))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.theme.Error.Render(m.status))
		b.WriteString("\n\n")
	}
	b.WriteString(m.theme.Help.Render("enter: continue"))
	return centerBlock(m.theme.Panel.Render(b.String()), m.width, m.height)
}
