package core

// Action represents a semantic action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, K, Up arrow - slide up / menu up
	ActionDown           // S, J, Down arrow - slide down / menu down
	ActionLeft           // A, H, Left arrow - slide left
	ActionRight          // D, L, Right arrow - slide right
	ActionConfirm        // Enter - confirm selection, continue after a win
	ActionBack           // B, Escape - go back
	ActionRestart        // R key - start a new game
	ActionQuit           // Q, Ctrl+C - exit
	ActionPause          // P - pause/unpause the computer player
	ActionSwitch         // Tab - hand the board to the other player
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionSwitch:
		return "Switch"
	default:
		return "Unknown"
	}
}

// IsMove reports whether the action slides the board.
func (a Action) IsMove() bool {
	return a >= ActionUp && a <= ActionRight
}

// InputFrame collects the actions triggered during one tick, in the order
// they were first pressed.
type InputFrame struct {
	Actions map[Action]bool
	order   []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	if !f.Actions[a] {
		f.order = append(f.order, a)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// FirstMove returns the first move action of the frame, or ActionNone.
// Only one slide is applied per tick.
func (f InputFrame) FirstMove() Action {
	for _, a := range f.order {
		if a.IsMove() {
			return a
		}
	}
	return ActionNone
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.order = f.order[:0]
}
