package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - menu navigation
	ActionDown           // S, Down arrow - menu navigation
	ActionConfirm        // Enter - confirm selection
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R - restart after a run ends
	ActionNext           // N - continue with the next level
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
	ActionFeed           // F - feed the pet
	ActionPlay           // T - play with the pet
	ActionClean          // C - clean the pet
	ActionPet            // Space - tap the pet
	ActionAnswer1        // 1..6 - answer buttons
	ActionAnswer2
	ActionAnswer3
	ActionAnswer4
	ActionAnswer5
	ActionAnswer6
)

// MaxAnswers is the number of answer buttons the input layer can address.
const MaxAnswers = 6

var actionNames = map[Action]string{
	ActionNone:    "None",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionConfirm: "Confirm",
	ActionBack:    "Back",
	ActionRestart: "Restart",
	ActionNext:    "Next",
	ActionQuit:    "Quit",
	ActionPause:   "Pause",
	ActionFeed:    "Feed",
	ActionPlay:    "Play",
	ActionClean:   "Clean",
	ActionPet:     "Pet",
	ActionAnswer1: "Answer1",
	ActionAnswer2: "Answer2",
	ActionAnswer3: "Answer3",
	ActionAnswer4: "Answer4",
	ActionAnswer5: "Answer5",
	ActionAnswer6: "Answer6",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// AnswerAction returns the action for answer button i (0-based).
func AnswerAction(i int) Action {
	if i < 0 || i >= MaxAnswers {
		return ActionNone
	}
	return ActionAnswer1 + Action(i)
}

// AnswerIndex returns the 0-based answer slot for an answer action.
func (a Action) AnswerIndex() (int, bool) {
	if a < ActionAnswer1 || a > ActionAnswer6 {
		return 0, false
	}
	return int(a - ActionAnswer1), true
}

// InputFrame represents the input state during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
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

// Answer returns the lowest answer slot pressed this frame.
func (f InputFrame) Answer() (int, bool) {
	for i := 0; i < MaxAnswers; i++ {
		if f.Has(AnswerAction(i)) {
			return i, true
		}
	}
	return 0, false
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
