package game

import (
	"context"
	"log"
	"time"

	"github.com/pkg/errors"
)

// Renderer redraws the whole board from a frame. Implementations must not
// rely on what they drew before.
type Renderer interface {
	Draw(Frame)
}

// Loop schedules ticks for an engine, feeds it intents and forwards the
// resulting events and frames. It is the engine's only caller.
type Loop struct {
	engine    *Engine
	renderer  Renderer
	listeners []Listener
	clock     Clock
	lastTick  time.Time
}

func NewLoop(engine *Engine, renderer Renderer, clock Clock, listeners ...Listener) *Loop {
	if clock == nil {
		clock = SystemClock()
	}
	return &Loop{
		engine:    engine,
		renderer:  renderer,
		listeners: listeners,
		clock:     clock,
		lastTick:  clock.Now(),
	}
}

func (l *Loop) Engine() *Engine {
	return l.engine
}

// Handle applies one intent and reports false when the player asked to quit.
// IntentNone only redraws, which is what a terminal resize needs.
func (l *Loop) Handle(intent Intent) bool {
	switch intent {
	case IntentQuit:
		return false
	case IntentToggle:
		if l.engine.Phase() == PhaseIdle {
			l.engine.Start()
			l.lastTick = l.clock.Now()
		} else {
			l.engine.TogglePause()
		}
	default:
		if dir, ok := intent.Direction(); ok {
			l.engine.HandleInput(dir)
		}
	}
	l.Refresh()
	return true
}

// Poll ticks when the current interval has elapsed since the previous tick.
// It suits hosts that own the frame loop and call in once per frame.
func (l *Loop) Poll(now time.Time) {
	if !l.engine.Active() {
		l.lastTick = now
		return
	}
	if now.Sub(l.lastTick) < l.engine.Interval() {
		return
	}
	l.lastTick = now
	l.step()
}

// Run drives the engine with a timer until ctx is done, the intent channel
// closes or a quit intent arrives. At most one timer is armed; the next one
// is armed only once the current tick has finished.
func (l *Loop) Run(ctx context.Context, intents <-chan Intent) error {
	var timer Timer
	stop := func() {
		if timer != nil {
			timer.Stop()
			timer = nil
		}
	}
	defer stop()

	arm := func() {
		if !l.engine.Active() {
			stop()
			return
		}
		if timer == nil {
			timer = l.clock.NewTimer(l.engine.Interval())
		}
	}

	l.Refresh()
	arm()
	for {
		var tick <-chan time.Time
		if timer != nil {
			tick = timer.C()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case intent, ok := <-intents:
			if !ok || !l.Handle(intent) {
				return nil
			}
			arm()
		case <-tick:
			timer = nil
			l.step()
			arm()
		}
	}
}

func (l *Loop) step() {
	if _, err := l.engine.Tick(); err != nil && !errors.Is(err, ErrGameOver) {
		log.Printf("tick: %v", err)
	}
	l.Refresh()
}

// Refresh forwards queued events to the listeners and redraws
func (l *Loop) Refresh() {
	for _, ev := range l.engine.Events() {
		for _, ls := range l.listeners {
			ls.OnEvent(ev)
		}
	}
	if l.renderer != nil {
		l.renderer.Draw(l.engine.Frame())
	}
}
