package game

import (
	"time"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"gridsnake/game/entity"
	"gridsnake/game/manager"
	"gridsnake/game/types"
)

var (
	// ErrGameOver is returned by Tick when the round ended. Like io.EOF it
	// marks a normal end, not a failure; the engine is already reset to idle.
	ErrGameOver   = errors.New("game over")
	ErrNotRunning = errors.New("game not running")
	ErrPaused     = errors.New("game paused")
)

// Settings fixes the board and the rules of a game.
type Settings struct {
	Grid             types.Grid
	InitialSnake     []types.Point // head first
	InitialDirection types.Point
	InitialApple     types.Point
	Rules            manager.Progression
}

// DefaultSettings places the snake in the middle of the board heading right
// with the first apple ahead of it. A 40x50 board gives the classic layout.
func DefaultSettings(width, height int) Settings {
	head := types.Point{X: width / 2, Y: height / 2}
	return Settings{
		Grid: types.Grid{Width: width, Height: height},
		InitialSnake: []types.Point{
			head,
			{X: head.X - 1, Y: head.Y},
			{X: head.X - 2, Y: head.Y},
		},
		InitialDirection: types.Right,
		InitialApple:     types.Point{X: width * 3 / 4, Y: height * 2 / 5},
		Rules: manager.Progression{
			PointsPerApple: 10,
			PointsPerLevel: 100,
			BaseInterval:   150 * time.Millisecond,
			MinInterval:    50 * time.Millisecond,
			SpeedFactor:    0.9,
		},
	}
}

// Validate checks that the initial layout fits the grid
func (s Settings) Validate() error {
	if s.Grid.Width < 1 || s.Grid.Height < 1 {
		return errors.Errorf("grid %dx%d is empty", s.Grid.Width, s.Grid.Height)
	}
	if len(s.InitialSnake) == 0 {
		return errors.New("initial snake is empty")
	}
	if len(s.InitialSnake) >= s.Grid.Cells() {
		return errors.Errorf("initial snake of %d cells leaves no room on a %dx%d grid",
			len(s.InitialSnake), s.Grid.Width, s.Grid.Height)
	}
	seen := make(map[types.Point]bool, len(s.InitialSnake))
	for _, p := range s.InitialSnake {
		if !s.Grid.Contains(p) {
			return errors.Errorf("initial snake segment %v is off the grid", p)
		}
		if seen[p] {
			return errors.Errorf("initial snake repeats segment %v", p)
		}
		seen[p] = true
	}
	if !s.InitialDirection.IsDirection() {
		return errors.Errorf("initial direction %v is not a unit direction", s.InitialDirection)
	}
	if !s.Grid.Contains(s.InitialApple) || seen[s.InitialApple] {
		return errors.Errorf("initial apple %v is off the grid or on the snake", s.InitialApple)
	}
	r := s.Rules
	if r.PointsPerApple <= 0 || r.PointsPerLevel <= 0 {
		return errors.New("points per apple and per level must be positive")
	}
	if r.MinInterval <= 0 || r.BaseInterval < r.MinInterval {
		return errors.Errorf("intervals must satisfy 0 < min (%v) <= base (%v)", r.MinInterval, r.BaseInterval)
	}
	if r.SpeedFactor <= 0 || r.SpeedFactor > 1 {
		return errors.Errorf("speed factor %v must be in (0, 1]", r.SpeedFactor)
	}
	return nil
}

// State is a copy of the engine state safe to hand out.
type State struct {
	Snake     []types.Point // head first
	Direction types.Point
	Pending   types.Point
	Apple     types.Point
	Score     int
	Level     int
	Interval  time.Duration
	Running   bool
	Paused    bool
	Palette   types.Palette
}

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhasePaused
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	}
	return "idle"
}

// Frame is everything a renderer needs for one full redraw.
type Frame struct {
	Grid  types.Grid
	State State
	Phase Phase
	Last  *Summary // previous round, nil until one has ended
}

type Option func(*Engine)

// WithSeed makes apple placement and palette changes reproducible
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// Engine owns one game. It is not safe for concurrent use; the loop driver
// is its only caller.
type Engine struct {
	settings     Settings
	rng          *rand.Rand
	collisionMgr *manager.CollisionManager
	foodMgr      *manager.FoodManager
	stateMgr     *manager.StateManager

	snake     *entity.Snake
	direction types.Point
	pending   types.Point
	apple     types.Point
	running   bool
	paused    bool
	last      *Summary
	events    []Event
}

func NewEngine(settings Settings, opts ...Option) (*Engine, error) {
	if err := settings.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid game settings")
	}

	e := &Engine{settings: settings}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}

	e.collisionMgr = manager.NewCollisionManager(settings.Grid)
	e.foodMgr = manager.NewFoodManager(settings.Grid, e.rng, e.collisionMgr)
	e.stateMgr = manager.NewStateManager(settings.Rules, e.rng)

	e.restore()
	e.apple = settings.InitialApple
	return e, nil
}

// restore puts back everything but the apple
func (e *Engine) restore() {
	e.snake = entity.NewSnake(e.settings.InitialSnake)
	e.direction = e.settings.InitialDirection
	e.pending = e.settings.InitialDirection
	e.stateMgr.Reset()
	e.running = false
	e.paused = false
}

// Reset returns to the idle initial state with a freshly placed apple.
func (e *Engine) Reset() {
	e.restore()
	// Validate guarantees a free cell next to the initial snake.
	e.apple, _ = e.foodMgr.GenerateFood(e.snake)
}

func (e *Engine) Start() bool {
	if e.running {
		return false
	}
	e.running = true
	e.paused = false
	e.last = nil
	e.emit(EventStarted)
	return true
}

func (e *Engine) Pause() bool {
	if !e.running || e.paused {
		return false
	}
	e.paused = true
	e.emit(EventPaused)
	return true
}

func (e *Engine) Resume() bool {
	if !e.running || !e.paused {
		return false
	}
	e.paused = false
	e.emit(EventResumed)
	return true
}

func (e *Engine) TogglePause() bool {
	if e.paused {
		return e.Resume()
	}
	return e.Pause()
}

// HandleInput buffers a turn for the next tick. Turns along the axis the
// snake already travels on are refused, so the head can never fold back into
// the neck even with several key presses between two ticks.
func (e *Engine) HandleInput(dir types.Point) bool {
	if !e.running || !dir.IsDirection() {
		return false
	}
	if dir.Axis() == e.direction.Axis() {
		return false
	}
	e.pending = dir
	return true
}

// Tick advances the snake by one cell.
func (e *Engine) Tick() (State, error) {
	if !e.running {
		return e.State(), ErrNotRunning
	}
	if e.paused {
		return e.State(), ErrPaused
	}

	e.direction = e.pending
	newHead := e.snake.GetHead().Add(e.direction)

	if collision := e.collisionMgr.CheckCollision(newHead, e.snake); collision != types.NoCollision {
		e.gameOver(collision)
		return e.State(), ErrGameOver
	}

	e.snake.Move(newHead)

	if !e.collisionMgr.IsFoodCollision(newHead, e.apple) {
		e.snake.RemoveTail()
		return e.State(), nil
	}

	e.stateMgr.AddApple()
	apple, ok := e.foodMgr.GenerateFood(e.snake)
	e.emit(EventAppleEaten)
	if e.stateMgr.CheckLevelUp() {
		e.emit(EventLevelUp)
	}
	if !ok {
		e.gameOver(types.BoardFull)
		return e.State(), ErrGameOver
	}
	e.apple = apple
	return e.State(), nil
}

func (e *Engine) gameOver(cause types.CollisionType) {
	e.last = &Summary{
		Score:  e.stateMgr.GetScore(),
		Level:  e.stateMgr.GetLevel(),
		Length: e.snake.Len(),
		Cause:  cause,
	}
	ev := e.event(EventGameOver)
	ev.Summary = e.last
	e.events = append(e.events, ev)
	e.Reset()
}

func (e *Engine) event(kind EventKind) Event {
	return Event{
		Kind:     kind,
		Score:    e.stateMgr.GetScore(),
		Level:    e.stateMgr.GetLevel(),
		Interval: e.stateMgr.GetInterval(),
		Palette:  e.stateMgr.GetPalette(),
	}
}

func (e *Engine) emit(kind EventKind) {
	e.events = append(e.events, e.event(kind))
}

// Events drains the queued events in the order they happened
func (e *Engine) Events() []Event {
	evs := e.events
	e.events = nil
	return evs
}

func (e *Engine) State() State {
	return State{
		Snake:     e.snake.Segments(),
		Direction: e.direction,
		Pending:   e.pending,
		Apple:     e.apple,
		Score:     e.stateMgr.GetScore(),
		Level:     e.stateMgr.GetLevel(),
		Interval:  e.stateMgr.GetInterval(),
		Running:   e.running,
		Paused:    e.paused,
		Palette:   e.stateMgr.GetPalette(),
	}
}

func (e *Engine) Phase() Phase {
	switch {
	case !e.running:
		return PhaseIdle
	case e.paused:
		return PhasePaused
	}
	return PhaseRunning
}

// Active reports whether ticks should be scheduled
func (e *Engine) Active() bool {
	return e.running && !e.paused
}

func (e *Engine) Interval() time.Duration {
	return e.stateMgr.GetInterval()
}

func (e *Engine) Grid() types.Grid {
	return e.settings.Grid
}

func (e *Engine) Frame() Frame {
	return Frame{
		Grid:  e.settings.Grid,
		State: e.State(),
		Phase: e.Phase(),
		Last:  e.last,
	}
}
