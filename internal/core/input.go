package core

// Action represents a semantic control action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionConfirm        // Enter/Space - start game from menu
	ActionRestart        // R - restart after game over or victory
	ActionMenu           // M/Esc - return to menu
	ActionQuit           // Q/Ctrl+C - exit session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionConfirm:
		return "Confirm"
	case ActionRestart:
		return "Restart"
	case ActionMenu:
		return "Menu"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Tap is a pointer press in viewport units.
type Tap struct {
	X, Y float64
}

// Viewport is the playfield size in viewport units.
type Viewport struct {
	W, H float64
}

// Valid reports whether both dimensions are positive.
func (v Viewport) Valid() bool {
	return v.W > 0 && v.H > 0
}

// InputFrame holds everything the player did between two ticks.
// Taps keep arrival order; only the most recent resize matters.
type InputFrame struct {
	Taps   []Tap
	Resize *Viewport
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// AddTap appends a tap to this frame.
func (f *InputFrame) AddTap(x, y float64) {
	f.Taps = append(f.Taps, Tap{X: x, Y: y})
}

// SetResize records a viewport change, replacing any earlier one in this frame.
func (f *InputFrame) SetResize(v Viewport) {
	f.Resize = &v
}

// Empty returns true if the frame carries no input.
func (f InputFrame) Empty() bool {
	return len(f.Taps) == 0 && f.Resize == nil
}

// Clear resets the frame for the next tick, keeping tap capacity.
func (f *InputFrame) Clear() {
	f.Taps = f.Taps[:0]
	f.Resize = nil
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	if len(f.Taps) > 0 {
		clone.Taps = append([]Tap(nil), f.Taps...)
	}
	if f.Resize != nil {
		v := *f.Resize
		clone.Resize = &v
	}
	return clone
}
