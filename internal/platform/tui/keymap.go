package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/animal-bridge/internal/core"
)

// holdWindow is how long a movement key counts as held after its last
// press. Terminals report no key release, only auto-repeat presses, so the
// window has to bridge the repeat delay.
const holdWindow = 280 * time.Millisecond

// KeyMap defines every binding of the terminal front-end.
type KeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Jump    key.Binding
	Rotate  key.Binding
	Back    key.Binding
	Restart key.Binding
	Pause   key.Binding
	Quit    key.Binding

	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding
	PrevTab key.Binding
	NextTab key.Binding
	Shot    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Jump, k.Rotate, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Jump, k.Rotate},
		{k.Restart, k.Back, k.Pause, k.Quit},
		{k.Up, k.Down, k.Confirm, k.Shot},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("a", "left"),
			key.WithHelp("a/←", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("d", "right"),
			key.WithHelp("d/→", "move right"),
		),
		Jump: key.NewBinding(
			key.WithKeys(" ", "w", "up"),
			key.WithHelp("space", "jump"),
		),
		Rotate: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rotate block"),
		),
		Back: key.NewBinding(
			key.WithKeys("tab", "esc"),
			key.WithHelp("tab/esc", "back"),
		),
		Restart: key.NewBinding(
			key.WithKeys("f5", "ctrl+r"),
			key.WithHelp("f5", "restart"),
		),
		Pause: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h", "help/pause"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("↓/j", "down"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←", "prev stage"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→", "next stage"),
		),
		Shot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
	}
}

// MapPlayKey translates a key pressed during play into the input frame.
// Movement keys are recorded in held instead, with the press time.
func (k KeyMap) MapPlayKey(msg tea.KeyMsg, frame *core.InputFrame, held *HeldKeys, now time.Time) {
	switch {
	case key.Matches(msg, k.Quit):
		frame.Set(core.ActionQuit)
	case key.Matches(msg, k.Left):
		held.Press(core.ActionMoveLeft, now)
	case key.Matches(msg, k.Right):
		held.Press(core.ActionMoveRight, now)
	case key.Matches(msg, k.Jump):
		frame.Set(core.ActionJump)
	case key.Matches(msg, k.Rotate):
		frame.Set(core.ActionRotate)
	case key.Matches(msg, k.Back):
		frame.Set(core.ActionBack)
	case key.Matches(msg, k.Restart):
		frame.Set(core.ActionRestart)
	case key.Matches(msg, k.Pause):
		frame.Set(core.ActionPause)
	}
}

// HeldKeys approximates held movement keys from repeated presses.
type HeldKeys struct {
	last map[core.Action]time.Time
}

// Press records a press. Opposite directions cancel each other.
func (h *HeldKeys) Press(a core.Action, now time.Time) {
	if h.last == nil {
		h.last = make(map[core.Action]time.Time)
	}
	switch a {
	case core.ActionMoveLeft:
		delete(h.last, core.ActionMoveRight)
	case core.ActionMoveRight:
		delete(h.last, core.ActionMoveLeft)
	}
	h.last[a] = now
}

// Apply marks the actions still inside the hold window as held.
func (h *HeldKeys) Apply(frame *core.InputFrame, now time.Time) {
	for a, t := range h.last {
		if now.Sub(t) <= holdWindow {
			frame.Hold(a)
		} else {
			delete(h.last, a)
		}
	}
}

// Reset forgets every press.
func (h *HeldKeys) Reset() {
	h.last = nil
}

// MapMouse converts a terminal mouse event into a pointer event in design
// units. ok is false for events the session does not use.
func MapMouse(msg tea.MouseMsg, vp core.ViewportConfig) (ev core.PointerEvent, ok bool) {
	pos := vp.ToDesign(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			return core.PointerEvent{Kind: core.PointerDown, Pos: pos, Button: core.ButtonPrimary}, true
		case tea.MouseButtonRight:
			return core.PointerEvent{Kind: core.PointerDown, Pos: pos, Button: core.ButtonSecondary}, true
		}
		return core.PointerEvent{}, false
	case tea.MouseActionRelease:
		if msg.Button == tea.MouseButtonRight {
			return core.PointerEvent{}, false
		}
		return core.PointerEvent{Kind: core.PointerUp, Pos: pos, Button: core.ButtonPrimary}, true
	case tea.MouseActionMotion:
		return core.PointerEvent{Kind: core.PointerMove, Pos: pos}, true
	}
	return core.PointerEvent{}, false
}
