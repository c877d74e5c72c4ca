package tui

// Key names as reported by tea.KeyMsg.String().
const (
	keyQuit     = "q"
	keyCtrlC    = "ctrl+c"
	keyEnter    = "enter"
	keyEsc      = "esc"
	keyTab      = "tab"
	keyShiftTab = "shift+tab"
	keyUp       = "up"
	keyDown     = "down"
	keyK        = "k"
	keyJ        = "j"
	keyNext     = "n"
	keyRight    = "right"
	keyPrev     = "p"
	keyLeft     = "left"
	keyOpen     = "o"
	keyWrite    = "w"
	keyPgUp     = "pgup"
	keyPgDown   = "pgdown"
	keyHome     = "home"
	keyEnd      = "end"
)

// ViewState is the top-level state of a model.
type ViewState int

// View states.
const (
	ViewStateList ViewState = iota
	ViewStateLoading
	ViewStateDetail
	ViewStateQuitting
	ViewStateError
)

// String returns the state name.
func (s ViewState) String() string {
	switch s {
	case ViewStateList:
		return "list"
	case ViewStateLoading:
		return "loading"
	case ViewStateDetail:
		return "detail"
	case ViewStateQuitting:
		return "quitting"
	case ViewStateError:
		return "error"
	default:
		return "unknown"
	}
}
