// Package app is the game flow: name entry, menus, stage selection, play
// and the stage-clear summary. It is an explicit state machine with one
// transition method per screen so front-ends only draw and forward input.
package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/animal-bridge/internal/audio"
	"github.com/vovakirdan/animal-bridge/internal/catalog"
	"github.com/vovakirdan/animal-bridge/internal/config"
	"github.com/vovakirdan/animal-bridge/internal/core"
	"github.com/vovakirdan/animal-bridge/internal/session"
	"github.com/vovakirdan/animal-bridge/internal/storage"
)

// MaxNameLength caps the player name.
const MaxNameLength = 16

// ErrEmptyName is returned by SubmitName for a blank name.
var ErrEmptyName = errors.New("app: player name is empty")

// Screen identifies the active screen.
type Screen int

const (
	ScreenNameEntry Screen = iota
	ScreenMainMenu
	ScreenHelp
	ScreenStageSelect
	ScreenTutorial
	ScreenPlaying
	ScreenStageClear
	ScreenRanking
	ScreenQuit
)

func (s Screen) String() string {
	switch s {
	case ScreenNameEntry:
		return "name_entry"
	case ScreenMainMenu:
		return "main_menu"
	case ScreenHelp:
		return "help"
	case ScreenStageSelect:
		return "stage_select"
	case ScreenTutorial:
		return "tutorial"
	case ScreenPlaying:
		return "playing"
	case ScreenStageClear:
		return "stage_clear"
	case ScreenRanking:
		return "ranking"
	case ScreenQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// MenuItem is an entry of the main menu.
type MenuItem int

const (
	MenuStart MenuItem = iota
	MenuRanking
	MenuHelp
	MenuQuit
)

// MenuItems lists the main menu in display order.
var MenuItems = []MenuItem{MenuStart, MenuRanking, MenuHelp, MenuQuit}

func (m MenuItem) String() string {
	switch m {
	case MenuStart:
		return "Start"
	case MenuRanking:
		return "Ranking"
	case MenuHelp:
		return "How to play"
	case MenuQuit:
		return "Quit"
	default:
		return "?"
	}
}

// Options configures a Flow.
type Options struct {
	Catalog  *catalog.Catalog
	Store    storage.Store
	Config   config.GameConfig
	Viewport core.ViewportConfig
	TickRate int
	NewClock func() core.Clock // Per-session clock; nil lets the session count ticks
	Sink     audio.Sink
	Logger   *log.Logger
}

// StageEntry is one row of the stage list.
type StageEntry struct {
	Stage    catalog.Stage
	Unlocked bool
	Best     *storage.RankingEntry
}

// Flow is the game state machine. It is not safe for concurrent use.
type Flow struct {
	opts   Options
	logger *log.Logger
	sink   audio.Sink

	screen     Screen
	helpReturn Screen
	player     string
	unlocked   int

	pending      int // Stage waiting behind the tutorial
	session      *session.Session
	lastClear    *session.ClearResult
	clearErr     error // Persistence failure of the last clear
	rankingStage int
}

// New loads progress and opens the name entry screen.
func New(opts Options) (*Flow, error) {
	if opts.Catalog == nil {
		return nil, errors.New("app: catalog is required")
	}
	if opts.Store == nil {
		return nil, errors.New("app: store is required")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Sink == nil {
		opts.Sink = audio.NopSink{}
	}

	f := &Flow{
		opts:         opts,
		logger:       opts.Logger,
		sink:         opts.Sink,
		screen:       ScreenNameEntry,
		rankingStage: 1,
	}
	f.unlocked = f.clampUnlocked(opts.Store.LoadProgress())
	return f, nil
}

func (f *Flow) clampUnlocked(n int) int {
	if n < 1 {
		return 1
	}
	if c := f.opts.Catalog.StageCount(); n > c {
		return c
	}
	return n
}

// Screen returns the active screen.
func (f *Flow) Screen() Screen {
	return f.screen
}

// PlayerName returns the submitted name.
func (f *Flow) PlayerName() string {
	return f.player
}

// HighestUnlocked returns the highest playable stage.
func (f *Flow) HighestUnlocked() int {
	return f.unlocked
}

// Session returns the running session, or nil outside play.
func (f *Flow) Session() *session.Session {
	return f.session
}

// LastClear returns the result shown on the clear screen.
func (f *Flow) LastClear() *session.ClearResult {
	return f.lastClear
}

// ClearError returns why the last clear could not be fully saved, or nil.
func (f *Flow) ClearError() error {
	return f.clearErr
}

// PendingStage returns the stage behind the tutorial screen.
func (f *Flow) PendingStage() int {
	return f.pending
}

// SubmitName stores the player name and opens the main menu.
func (f *Flow) SubmitName(name string) error {
	if f.screen != ScreenNameEntry {
		return nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if r := []rune(name); len(r) > MaxNameLength {
		name = string(r[:MaxNameLength])
	}
	f.player = name
	f.click()
	f.screen = ScreenMainMenu
	f.logger.Debug("player named", "name", name)
	return nil
}

// ChooseMenu activates a main menu entry.
func (f *Flow) ChooseMenu(item MenuItem) {
	if f.screen != ScreenMainMenu {
		return
	}
	f.click()
	switch item {
	case MenuStart:
		f.screen = ScreenStageSelect
	case MenuRanking:
		f.rankingStage = 1
		f.screen = ScreenRanking
	case MenuHelp:
		f.OpenHelp()
	case MenuQuit:
		f.screen = ScreenQuit
	}
}

// OpenHelp shows the help screen from the main menu or stage select.
// During play the session's own pause overlay is used instead.
func (f *Flow) OpenHelp() {
	if f.screen != ScreenMainMenu && f.screen != ScreenStageSelect {
		return
	}
	f.helpReturn = f.screen
	f.screen = ScreenHelp
}

// Stages returns every stage with its lock state and best ranking.
func (f *Flow) Stages() []StageEntry {
	rankings := f.opts.Store.LoadRankings()
	stages := f.opts.Catalog.Stages()
	out := make([]StageEntry, len(stages))
	for i, s := range stages {
		out[i] = StageEntry{Stage: s, Unlocked: s.ID <= f.unlocked}
		if list := rankings[s.ID]; len(list) > 0 {
			best := list[0]
			out[i].Best = &best
		}
	}
	return out
}

// NeedsTutorial reports whether the tutorial is shown before a stage:
// only for stage 1 and only until the player has a record there.
func (f *Flow) NeedsTutorial(stage int) bool {
	return stage == 1 && !f.opts.Store.HasPlayerCleared(f.player, 1)
}

// SelectStage starts a stage from the stage list. Locked or unknown stages
// are ignored and false is returned.
func (f *Flow) SelectStage(id int) (bool, error) {
	if f.screen != ScreenStageSelect {
		return false, nil
	}
	if id < 1 || id > f.unlocked {
		return false, nil
	}
	if _, ok := f.opts.Catalog.Stage(id); !ok {
		return false, nil
	}
	f.click()

	if f.NeedsTutorial(id) {
		f.pending = id
		f.screen = ScreenTutorial
		return true, nil
	}
	if err := f.startStage(id); err != nil {
		return false, err
	}
	return true, nil
}

// DismissTutorial starts the stage waiting behind the tutorial.
func (f *Flow) DismissTutorial() error {
	if f.screen != ScreenTutorial {
		return nil
	}
	f.click()
	id := f.pending
	f.pending = 0
	return f.startStage(id)
}

func (f *Flow) startStage(id int) error {
	stage, ok := f.opts.Catalog.Stage(id)
	if !ok {
		return fmt.Errorf("app: %w %d", catalog.ErrUnknownStage, id)
	}

	opts := session.Options{
		Catalog:    f.opts.Catalog,
		Stage:      stage,
		Config:     f.opts.Config,
		Viewport:   f.opts.Viewport,
		TickRate:   f.opts.TickRate,
		PlayerName: f.player,
		Recorder:   f.opts.Store,
		Logger:     f.logger,
	}
	if f.opts.NewClock != nil {
		opts.Clock = f.opts.NewClock()
	}

	s, err := session.New(opts)
	if err != nil {
		f.screen = ScreenStageSelect
		return fmt.Errorf("app: start stage %d: %w", id, err)
	}
	f.session = s
	f.lastClear = nil
	f.clearErr = nil
	f.screen = ScreenPlaying
	f.logger.Info("stage started", "stage", id, "player", f.player)
	return nil
}

// Tick steps the running session and follows its outcome.
func (f *Flow) Tick(in core.InputFrame) session.StepResult {
	if f.screen != ScreenPlaying || f.session == nil {
		return session.StepResult{}
	}

	res := f.session.Step(in)
	for _, c := range res.Cues {
		f.sink.Play(c)
	}
	if res.Err != nil {
		f.logger.Warn("stage step", "stage", f.session.Stage().ID, "err", res.Err)
	}

	switch {
	case res.Cleared != nil:
		if err := f.onClear(*res.Cleared); err != nil {
			res.Err = errors.Join(res.Err, err)
		}
		f.clearErr = res.Err
	case res.State == session.StateAborted:
		f.endSession()
		if res.Exit == session.ExitQuit {
			f.screen = ScreenQuit
		} else {
			f.screen = ScreenStageSelect
		}
	}
	return res
}

// onClear unlocks the next stage when the highest unlocked one is cleared.
// The unlock only takes effect once it is saved.
func (f *Flow) onClear(r session.ClearResult) error {
	f.lastClear = &r
	f.endSession()
	f.screen = ScreenStageClear

	if r.Stage != f.unlocked || r.Stage >= f.opts.Catalog.StageCount() {
		return nil
	}
	next := f.unlocked + 1
	if err := f.opts.Store.SaveProgress(next); err != nil {
		f.logger.Warn("failed to save progress", "unlocked", next, "err", err)
		return fmt.Errorf("app: save progress: %w", err)
	}
	f.unlocked = next
	f.logger.Info("stage unlocked", "stage", next)
	return nil
}

func (f *Flow) endSession() {
	if f.session != nil {
		f.session.Close()
		f.session = nil
	}
}

// ContinueFromClear returns from the clear summary to the stage list.
func (f *Flow) ContinueFromClear() {
	if f.screen != ScreenStageClear {
		return
	}
	f.click()
	f.screen = ScreenStageSelect
}

// RankingStage returns the stage shown on the ranking screen.
func (f *Flow) RankingStage() int {
	return f.rankingStage
}

// Rankings returns the top list of the stage shown on the ranking screen.
func (f *Flow) Rankings() []storage.RankingEntry {
	return f.opts.Store.LoadRankings()[f.rankingStage]
}

// PageRanking moves the ranking view by delta stages, clamped to the
// catalog.
func (f *Flow) PageRanking(delta int) {
	if f.screen != ScreenRanking {
		return
	}
	next := core.Clamp(f.rankingStage+delta, 1, f.opts.Catalog.StageCount())
	if next != f.rankingStage {
		f.click()
		f.rankingStage = next
	}
}

// Back leaves the current screen. The main menu goes back to name entry.
// During play Back is an input action handled by the session.
func (f *Flow) Back() {
	switch f.screen {
	case ScreenMainMenu:
		f.screen = ScreenNameEntry
	case ScreenStageSelect, ScreenRanking:
		f.click()
		f.screen = ScreenMainMenu
	case ScreenHelp:
		f.click()
		f.screen = f.helpReturn
	case ScreenTutorial:
		f.pending = 0
		f.screen = ScreenStageSelect
	case ScreenStageClear:
		f.ContinueFromClear()
	}
}

// Quit ends the flow from any screen.
func (f *Flow) Quit() {
	f.endSession()
	f.screen = ScreenQuit
}

// Close releases the running session, if any.
func (f *Flow) Close() {
	f.endSession()
}

func (f *Flow) click() {
	f.sink.Play(audio.CueClick)
}

// FormatClearTime renders a clear time as minutes and seconds.
func FormatClearTime(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	min := int(sec / 60)
	return fmt.Sprintf("%dm %.2fs", min, sec-float64(min*60))
}
