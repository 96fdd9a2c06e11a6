package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone      Action = iota
	ActionMoveLeft         // A, Left arrow - held movement
	ActionMoveRight        // D, Right arrow - held movement
	ActionJump             // Space - jump when grounded
	ActionRotate           // R - rotate the block being dragged
	ActionBack             // Tab, Esc - leave the stage for stage select
	ActionRestart          // F5, Ctrl+R - rebuild the current stage
	ActionQuit             // Q, Ctrl+C - exit the program
	ActionPause            // H, ? - help overlay, pauses the simulation
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	case ActionJump:
		return "Jump"
	case ActionRotate:
		return "Rotate"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// PointerKind distinguishes pointer events.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerUp
	PointerMove
)

// Pointer buttons. Zero means no button, as in motion events.
const (
	ButtonPrimary   = 1
	ButtonSecondary = 3
)

// PointerEvent is a mouse event in design coordinates.
type PointerEvent struct {
	Kind   PointerKind
	Pos    Vec
	Button int
}

// InputFrame is the input gathered for a single simulation tick.
type InputFrame struct {
	// Actions holds discrete actions triggered this frame.
	Actions map[Action]bool
	// Held holds actions whose key is currently down (movement).
	Held map[Action]bool
	// Pointer holds pointer events in arrival order.
	Pointer []PointerEvent
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		Held:    make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Hold marks an action as held for this frame.
func (f *InputFrame) Hold(a Action) {
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	f.Held[a] = true
}

// IsHeld returns true if the action's key is down.
func (f InputFrame) IsHeld(a Action) bool {
	return f.Held[a]
}

// AddPointer appends a pointer event.
func (f *InputFrame) AddPointer(kind PointerKind, pos Vec, button int) {
	f.Pointer = append(f.Pointer, PointerEvent{Kind: kind, Pos: pos, Button: button})
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	for k := range f.Held {
		delete(f.Held, k)
	}
	f.Pointer = f.Pointer[:0]
}
