package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the simulation to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone       Action = iota
	ActionUp                // W, Up arrow - walk north
	ActionDown              // S, Down arrow - walk south
	ActionLeft              // A, Left arrow - walk west
	ActionRight             // D, Right arrow - walk east
	ActionRun               // Shift + direction - run instead of walking
	ActionStop              // Space - stop walking
	ActionSleep             // Z - sleep / wake up
	ActionUniform           // U - put on / take off a guard's uniform
	ActionStone             // T - throw a stone
	ActionPickUp            // G - pick up the nearest object
	ActionDrop              // X - drop the selected object
	ActionCycleProp         // Tab - select the next object
	ActionNextNation        // N - switch to the next prisoner
	ActionConfirm           // Enter - dismiss a picture
	ActionQuit              // Q, Ctrl+C - exit
	ActionPause             // P, Escape - pause/unpause
)

var actionNames = map[Action]string{
	ActionNone:       "None",
	ActionUp:         "Up",
	ActionDown:       "Down",
	ActionLeft:       "Left",
	ActionRight:      "Right",
	ActionRun:        "Run",
	ActionStop:       "Stop",
	ActionSleep:      "Sleep",
	ActionUniform:    "Uniform",
	ActionStone:      "Stone",
	ActionPickUp:     "PickUp",
	ActionDrop:       "Drop",
	ActionCycleProp:  "CycleProp",
	ActionNextNation: "NextNation",
	ActionConfirm:    "Confirm",
	ActionQuit:       "Quit",
	ActionPause:      "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame represents the player's input during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
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
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty returns true if no action was triggered.
func (f InputFrame) Empty() bool {
	for _, v := range f.Actions {
		if v {
			return false
		}
	}
	return true
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
