package game

import (
	"time"

	"gridsnake/game/types"
)

type EventKind int

const (
	EventStarted EventKind = iota
	EventPaused
	EventResumed
	EventAppleEaten
	EventLevelUp
	EventGameOver
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventPaused:
		return "paused"
	case EventResumed:
		return "resumed"
	case EventAppleEaten:
		return "apple eaten"
	case EventLevelUp:
		return "level up"
	case EventGameOver:
		return "game over"
	}
	return "unknown"
}

// Event is queued by the engine on every state transition worth reacting to.
type Event struct {
	Kind     EventKind
	Score    int
	Level    int
	Interval time.Duration
	Palette  types.Palette
	Summary  *Summary // set for EventGameOver only
}

// Summary describes a finished round.
type Summary struct {
	Score  int
	Level  int
	Length int
	Cause  types.CollisionType
}

// Listener reacts to engine events. Audio, statistics and logging hook in here.
type Listener interface {
	OnEvent(Event)
}

type ListenerFunc func(Event)

func (f ListenerFunc) OnEvent(ev Event) { f(ev) }
