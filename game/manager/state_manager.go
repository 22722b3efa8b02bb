package manager

import (
	"time"

	"gridsnake/game/types"
)

// Progression holds the scoring and pacing rules.
type Progression struct {
	PointsPerApple int
	PointsPerLevel int
	BaseInterval   time.Duration
	MinInterval    time.Duration
	SpeedFactor    float64
}

// StateManager tracks score, level, step interval and palette for a round.
type StateManager struct {
	rules    Progression
	rng      Rand
	score    int
	level    int
	interval time.Duration
	palette  types.Palette
}

func NewStateManager(rules Progression, rng Rand) *StateManager {
	sm := &StateManager{
		rules: rules,
		rng:   rng,
	}
	sm.Reset()
	return sm
}

func (sm *StateManager) Reset() {
	sm.score = 0
	sm.level = 1
	sm.interval = sm.rules.BaseInterval
	sm.palette = types.Palette{}
}

// AddApple credits one apple
func (sm *StateManager) AddApple() {
	sm.score += sm.rules.PointsPerApple
}

// CheckLevelUp recomputes the level from the score and reports whether it
// went up. A level-up also speeds the game up and changes the palette.
func (sm *StateManager) CheckLevelUp() bool {
	newLevel := sm.score/sm.rules.PointsPerLevel + 1
	if newLevel <= sm.level {
		return false
	}
	sm.level = newLevel
	sm.speedUp()
	sm.palette = types.Palette{
		Snake:      sm.nextSnakeColor(),
		Background: (sm.level - 1) % types.Backgrounds,
	}
	return true
}

func (sm *StateManager) speedUp() {
	next := time.Duration(float64(sm.interval) * sm.rules.SpeedFactor)
	if next < sm.rules.MinInterval {
		next = sm.rules.MinInterval
	}
	sm.interval = next
}

// nextSnakeColor draws uniformly among the colours other than the current one
func (sm *StateManager) nextSnakeColor() int {
	c := sm.rng.Intn(types.SnakeColors - 1)
	if c >= sm.palette.Snake {
		c++
	}
	return c
}

func (sm *StateManager) GetScore() int {
	return sm.score
}

func (sm *StateManager) GetLevel() int {
	return sm.level
}

func (sm *StateManager) GetInterval() time.Duration {
	return sm.interval
}

func (sm *StateManager) GetPalette() types.Palette {
	return sm.palette
}
