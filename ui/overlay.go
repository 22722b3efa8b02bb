package ui

import (
	"fmt"

	"gridsnake/game"
)

// Scoreboard supplies session figures for the status line. It may be nil.
type Scoreboard interface {
	MaxScore() int
	GamesPlayed() int
}

// Overlay returns the message shown over the board, if any
func Overlay(f game.Frame) (lines []string, show bool) {
	switch f.Phase {
	case game.PhasePaused:
		return []string{"Paused", "Press SPACE to resume"}, true
	case game.PhaseIdle:
		if f.Last != nil {
			return []string{
				"Game Over",
				fmt.Sprintf("Score: %d | Level: %d", f.Last.Score, f.Last.Level),
				"Press SPACE to play again",
			}, true
		}
		return []string{"Snake", "Press SPACE to start"}, true
	}
	return nil, false
}

// Status is the one-line summary above the board
func Status(f game.Frame, board Scoreboard) string {
	s := fmt.Sprintf("Score: %d  Level: %d  Speed: %dms",
		f.State.Score, f.State.Level, f.State.Interval.Milliseconds())
	if board != nil {
		s += fmt.Sprintf("  Best: %d  Games: %d", board.MaxScore(), board.GamesPlayed())
	}
	return s
}
