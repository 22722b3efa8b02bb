package game

import "gridsnake/game/types"

// Intent is what a key press means to the game, independent of the device.
type Intent int

const (
	IntentNone Intent = iota
	IntentUp
	IntentDown
	IntentLeft
	IntentRight
	IntentToggle // start when idle, otherwise pause/resume
	IntentQuit
)

// Direction converts a movement intent to its unit vector
func (i Intent) Direction() (types.Point, bool) {
	switch i {
	case IntentUp:
		return types.Up, true
	case IntentDown:
		return types.Down, true
	case IntentLeft:
		return types.Left, true
	case IntentRight:
		return types.Right, true
	}
	return types.Point{}, false
}

func (i Intent) String() string {
	switch i {
	case IntentUp:
		return "up"
	case IntentDown:
		return "down"
	case IntentLeft:
		return "left"
	case IntentRight:
		return "right"
	case IntentToggle:
		return "toggle"
	case IntentQuit:
		return "quit"
	}
	return "none"
}
