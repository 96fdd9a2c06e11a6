package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/animal-bridge/internal/app"
	"github.com/vovakirdan/animal-bridge/internal/catalog"
	"github.com/vovakirdan/animal-bridge/internal/core"
	"github.com/vovakirdan/animal-bridge/internal/render"
)

// Options configures the terminal front-end.
type Options struct {
	Flow          *app.Flow
	Catalog       *catalog.Catalog
	TickRate      int
	Width, Height int                 // Initial terminal size
	Design        core.ViewportConfig // Design space of the stages
	PlayerName    string              // Pre-filled name; skips name entry when set
	StartStage    int                 // Jump straight into a stage when > 0
	Monochrome    bool
	ScreenshotDir string
	Logger        *log.Logger
}

// Model is the Bubble Tea model driving the game flow.
type Model struct {
	flow    *app.Flow
	catalog *catalog.Catalog
	logger  *log.Logger

	keys    KeyMap
	help    help.Model
	theme   Theme
	name    textinput.Model
	ranking table.Model

	screen     *core.Screen
	design     core.ViewportConfig
	input      core.InputFrame
	held       *HeldKeys
	tickRate   int
	width      int
	height     int
	stageCount int
	shotDir    string

	menuCursor  int
	stageCursor int
	status      string
	quitting    bool
}

// NewModel creates the model. When a player name is given the name entry
// screen is skipped, and StartStage then opens that stage.
func NewModel(opts Options) Model {
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Design.BaseWidth == 0 {
		opts.Design = core.DesignViewport()
	}

	ti := textinput.New()
	ti.Placeholder = "player"
	ti.CharLimit = app.MaxNameLength
	ti.Width = app.MaxNameLength + 2
	ti.Focus()

	theme := DefaultTheme()
	if opts.Monochrome {
		theme = MonochromeTheme()
	}

	m := Model{
		flow:       opts.Flow,
		catalog:    opts.Catalog,
		logger:     opts.Logger,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		theme:      theme,
		name:       ti,
		ranking:    newRankingTable(opts.Width, opts.Height),
		screen:     core.NewScreen(max(1, opts.Width), max(1, opts.Height)),
		design:     opts.Design,
		input:      core.NewInputFrame(),
		held:       &HeldKeys{},
		tickRate:   opts.TickRate,
		width:      opts.Width,
		height:     opts.Height,
		stageCount: opts.Catalog.StageCount(),
		shotDir:    opts.ScreenshotDir,
	}

	if opts.PlayerName != "" {
		if err := m.flow.SubmitName(opts.PlayerName); err != nil {
			m.status = err.Error()
		}
	}
	if opts.StartStage > 0 && m.flow.Screen() == app.ScreenMainMenu {
		m.flow.ChooseMenu(app.MenuStart)
		m.stageCursor = opts.StartStage - 1
		m.selectStage(opts.StartStage)
	}
	return m
}

// Init starts the tick loop and the cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.tickRate), textinput.Blink)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	if m.flow.Screen() == app.ScreenNameEntry {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey dispatches a key press to the active screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Shot) {
		m.saveScreenshot()
		return m, nil
	}

	var cmd tea.Cmd
	switch m.flow.Screen() {
	case app.ScreenNameEntry:
		cmd = m.keyNameEntry(msg)
	case app.ScreenMainMenu:
		m.keyMainMenu(msg)
	case app.ScreenStageSelect:
		m.keyStageSelect(msg)
	case app.ScreenTutorial:
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.startPending()
		case key.Matches(msg, m.keys.Back):
			m.flow.Back()
		case key.Matches(msg, m.keys.Quit):
			m.flow.Quit()
		}
	case app.ScreenPlaying:
		m.keys.MapPlayKey(msg, &m.input, m.held, time.Now())
	case app.ScreenStageClear:
		switch {
		case key.Matches(msg, m.keys.Confirm), key.Matches(msg, m.keys.Back):
			m.status = ""
			m.flow.ContinueFromClear()
		case key.Matches(msg, m.keys.Quit):
			m.flow.Quit()
		}
	case app.ScreenRanking:
		cmd = m.keyRanking(msg)
	case app.ScreenHelp:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.flow.Quit()
		case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Confirm), key.Matches(msg, m.keys.Pause):
			m.flow.Back()
		}
	}

	if m.flow.Screen() == app.ScreenQuit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m *Model) keyNameEntry(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.flow.Quit()
		return nil
	case "enter":
		if err := m.flow.SubmitName(m.name.Value()); err != nil {
			m.status = "Please enter a name."
			return nil
		}
		m.status = ""
		m.menuCursor = 0
		return nil
	}
	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return cmd
}

func (m *Model) keyMainMenu(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.flow.Quit()
	case key.Matches(msg, m.keys.Up):
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.menuCursor < len(app.MenuItems)-1 {
			m.menuCursor++
		}
	case key.Matches(msg, m.keys.Confirm):
		item := app.MenuItems[m.menuCursor]
		m.flow.ChooseMenu(item)
		if item == app.MenuRanking {
			m.refreshRanking()
		}
	case key.Matches(msg, m.keys.Back):
		m.flow.Back()
		m.name.SetValue(m.flow.PlayerName())
		m.name.Focus()
	}
}

func (m *Model) keyStageSelect(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.flow.Quit()
	case key.Matches(msg, m.keys.Up):
		if m.stageCursor > 0 {
			m.stageCursor--
		}
		m.status = ""
	case key.Matches(msg, m.keys.Down):
		if m.stageCursor < m.stageCount-1 {
			m.stageCursor++
		}
		m.status = ""
	case key.Matches(msg, m.keys.Confirm):
		m.selectStage(m.stageCursor + 1)
	case key.Matches(msg, m.keys.Pause):
		m.flow.OpenHelp()
	case key.Matches(msg, m.keys.Back):
		m.status = ""
		m.flow.Back()
	}
}

// selectStage starts an unlocked stage. Locked ones are ignored; the list
// already marks them.
func (m *Model) selectStage(id int) {
	ok, err := m.flow.SelectStage(id)
	if err != nil {
		m.status = err.Error()
		m.logger.Error("failed to start stage", "stage", id, "err", err)
		return
	}
	if ok {
		m.status = ""
		m.resetInput()
	}
}

func (m *Model) startPending() {
	if err := m.flow.DismissTutorial(); err != nil {
		m.status = err.Error()
		m.logger.Error("failed to start stage", "err", err)
		return
	}
	m.resetInput()
}

func (m *Model) keyRanking(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.flow.Quit()
	case key.Matches(msg, m.keys.Back):
		m.flow.Back()
	case key.Matches(msg, m.keys.PrevTab):
		m.flow.PageRanking(-1)
		m.refreshRanking()
	case key.Matches(msg, m.keys.NextTab):
		m.flow.PageRanking(1)
		m.refreshRanking()
	default:
		var cmd tea.Cmd
		m.ranking, cmd = m.ranking.Update(msg)
		return cmd
	}
	return nil
}

// handleMouse forwards pointer events to the session in design units.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.flow.Screen() != app.ScreenPlaying {
		return m, nil
	}
	if ev, ok := MapMouse(msg, m.viewport()); ok {
		m.input.AddPointer(ev.Kind, ev.Pos, ev.Button)
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.screen.Resize(max(1, msg.Width), max(1, msg.Height))
	m.help.Width = msg.Width
	m.ranking = newRankingTable(msg.Width, msg.Height)
	if m.flow.Screen() == app.ScreenRanking {
		m.refreshRanking()
	}
	return m, nil
}

// handleTick runs one simulation step while a stage is being played.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.flow.Screen() == app.ScreenPlaying {
		m.held.Apply(&m.input, now)
		m.flow.Tick(m.input)
		m.input.Clear()

		switch m.flow.Screen() {
		case app.ScreenQuit:
			m.quitting = true
			return m, tea.Quit
		case app.ScreenPlaying:
		case app.ScreenStageClear:
			m.status = ""
			if err := m.flow.ClearError(); err != nil {
				m.status = "Could not save: " + err.Error()
			}
			m.resetInput()
		default:
			m.resetInput()
		}
	}
	return m, tickCmd(m.tickRate)
}

func (m *Model) resetInput() {
	m.input.Clear()
	m.held.Reset()
}

// viewport maps terminal cells onto the design space.
func (m Model) viewport() core.ViewportConfig {
	return core.ViewportConfig{
		Width:      float64(m.screen.Width()),
		Height:     float64(m.screen.Height()),
		BaseWidth:  m.design.BaseWidth,
		BaseHeight: m.design.BaseHeight,
	}
}

func (m Model) catalogStage(id int) (string, bool) {
	s, ok := m.catalog.Stage(id)
	if !ok {
		return "", false
	}
	return s.Name, true
}

// drawStage renders the running stage into the screen buffer.
func (m Model) drawStage() bool {
	s := m.flow.Session()
	if s == nil {
		return false
	}
	render.Frame(m.screen, s.Snapshot())
	return true
}

// saveScreenshot saves the current stage screen to a text file.
func (m *Model) saveScreenshot() {
	if !m.drawStage() {
		return
	}

	dir := m.shotDir
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "animalbridge-screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot directory", "dir", dir, "err", err)
		return
	}

	stage := m.flow.Session().Stage().ID
	filename := fmt.Sprintf("stage%02d_%s.txt", stage, time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.flow.Screen() {
	case app.ScreenNameEntry:
		return m.viewNameEntry()
	case app.ScreenMainMenu:
		return m.viewMainMenu()
	case app.ScreenStageSelect:
		return m.viewStageSelect()
	case app.ScreenTutorial:
		return m.viewTutorial()
	case app.ScreenPlaying:
		if !m.drawStage() {
			return ""
		}
		return RenderScreen(m.screen, m.theme.Cells)
	case app.ScreenStageClear:
		return m.viewStageClear()
	case app.ScreenRanking:
		return m.viewRanking()
	case app.ScreenHelp:
		return m.viewHelp()
	}
	return ""
}

// Run starts the Bubble Tea program and blocks until the player quits.
func Run(opts Options) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Drag and drop needs press, motion and release
	)

	_, err := p.Run()
	opts.Flow.Close()
	return err
}
