package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/errors"

	"gridsnake/audio"
	"gridsnake/config"
	"gridsnake/game"
	"gridsnake/input"
	"gridsnake/stats"
	"gridsnake/ui"
	"gridsnake/ui/window"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	renderer := flag.String("renderer", "", "terminal or raylib")
	width := flag.Int("width", 0, "grid width in cells")
	height := flag.Int("height", 0, "grid height in cells")
	speed := flag.Int("speed", 0, "starting step interval in milliseconds")
	sound := flag.Bool("sound", false, "play sound cues")
	seed := flag.Uint64("seed", 0, "random seed, 0 picks one from the clock")
	logFile := flag.String("log", "", "write the log to this file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fail(err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "renderer":
			cfg.Renderer = *renderer
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "speed":
			cfg.BaseIntervalMs = *speed
		case "sound":
			cfg.Sound = *sound
		case "seed":
			cfg.Seed = *seed
		case "log":
			cfg.LogFile = *logFile
		}
	})
	if err := cfg.Validate(); err != nil {
		fail(errors.Wrap(err, "invalid configuration"))
	}

	closeLog, err := setupLogging(cfg.LogFile)
	if err != nil {
		fail(err)
	}
	defer closeLog()

	if err := run(cfg); err != nil {
		closeLog()
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "snake: %v\n", err)
	os.Exit(1)
}

// setupLogging sends the standard logger to path, or nowhere when path is
// empty since the screen belongs to the renderer.
func setupLogging(path string) (func(), error) {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "open log file")
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(io.Discard)
		f.Close()
	}, nil
}

// logEvents writes every engine event to the standard logger
func logEvents(ev game.Event) {
	if ev.Summary != nil {
		log.Printf("%v: score=%d level=%d length=%d cause=%v",
			ev.Kind, ev.Summary.Score, ev.Summary.Level, ev.Summary.Length, ev.Summary.Cause)
		return
	}
	log.Printf("%v: score=%d level=%d interval=%v", ev.Kind, ev.Score, ev.Level, ev.Interval)
}

func run(cfg config.Config) error {
	engine, err := game.NewEngine(cfg.Settings(), cfg.EngineOptions()...)
	if err != nil {
		return err
	}
	bindings, err := cfg.Bindings()
	if err != nil {
		return err
	}
	mapper := input.NewMapper(bindings)

	recorder := stats.NewRecorder()
	listeners := []game.Listener{game.ListenerFunc(logEvents), recorder}

	if cfg.Sound {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			log.Printf("Audio initialization failed: %v", err)
		} else {
			defer sm.Cleanup()
			listeners = append(listeners, sm)
		}
	}

	log.Printf("starting %dx%d %s game", cfg.Width, cfg.Height, cfg.Renderer)
	defer func() {
		log.Printf("session over: games=%d best=%d average=%.1f median=%.1f avg_duration=%.1fs",
			recorder.GamesPlayed(), recorder.MaxScore(), recorder.AverageScore(),
			recorder.MedianScore(), recorder.AverageDuration())
	}()

	if cfg.Renderer == config.RendererRaylib {
		return runWindow(cfg, engine, mapper, recorder, listeners)
	}
	return runTerminal(engine, mapper, recorder, listeners)
}

func runTerminal(engine *game.Engine, mapper *input.Mapper, board ui.Scoreboard, listeners []game.Listener) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "create terminal screen")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "init terminal screen")
	}

	defer screen.Fini()
	// restore the terminal before the trace is printed
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "snake crashed: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	screen.HideCursor()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	renderer := ui.NewTerminalRenderer(screen, board)
	loop := game.NewLoop(engine, renderer, nil, listeners...)

	err = loop.Run(ctx, renderer.Intents(ctx, mapper))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runWindow(cfg config.Config, engine *game.Engine, mapper *input.Mapper, board ui.Scoreboard, listeners []game.Listener) error {
	w, h := window.WindowSize(engine.Grid(), cfg.CellSize)
	rl.InitWindow(w, h, "Snake")
	rl.SetWindowState(rl.FlagWindowResizable)
	defer rl.CloseWindow()

	rl.SetTargetFPS(60)

	renderer := window.NewRenderer(board)
	loop := game.NewLoop(engine, renderer, nil, listeners...)
	loop.Refresh()

	for !rl.WindowShouldClose() {
		for _, intent := range window.PollIntents(mapper) {
			if !loop.Handle(intent) {
				return nil
			}
		}
		loop.Poll(time.Now())
		renderer.Present()
	}
	return nil
}
