// Package config loads game settings from an optional YAML file.
package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"gridsnake/game"
	"gridsnake/input"
)

const (
	RendererTerminal = "terminal"
	RendererRaylib   = "raylib"
)

type Config struct {
	Width          int               `yaml:"width"`
	Height         int               `yaml:"height"`
	Renderer       string            `yaml:"renderer"`
	CellSize       int               `yaml:"cell_size"`
	BaseIntervalMs int               `yaml:"base_interval_ms"`
	MinIntervalMs  int               `yaml:"min_interval_ms"`
	Sound          bool              `yaml:"sound"`
	Seed           uint64            `yaml:"seed"` // 0 seeds from the clock
	LogFile        string            `yaml:"log_file"`
	Keys           map[string]string `yaml:"keys"`
}

func Default() Config {
	return Config{
		Width:          40,
		Height:         50,
		Renderer:       RendererTerminal,
		CellSize:       15,
		BaseIntervalMs: 150,
		MinIntervalMs:  50,
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Width < 4 || c.Height < 1 {
		return errors.Errorf("grid %dx%d is too small, need at least 4x1", c.Width, c.Height)
	}
	switch c.Renderer {
	case RendererTerminal, RendererRaylib:
	default:
		return errors.Errorf("unknown renderer %q", c.Renderer)
	}
	if c.CellSize < 1 {
		return errors.Errorf("cell size %d must be positive", c.CellSize)
	}
	if c.BaseIntervalMs <= 0 || c.MinIntervalMs <= 0 {
		return errors.New("intervals must be positive")
	}
	if c.MinIntervalMs > c.BaseIntervalMs {
		return errors.Errorf("min interval %dms is above the base interval %dms", c.MinIntervalMs, c.BaseIntervalMs)
	}
	if _, err := c.Bindings(); err != nil {
		return err
	}
	return errors.Wrap(c.Settings().Validate(), "game settings")
}

// Settings is the default layout for the configured grid and timing
func (c Config) Settings() game.Settings {
	s := game.DefaultSettings(c.Width, c.Height)
	s.Rules.BaseInterval = time.Duration(c.BaseIntervalMs) * time.Millisecond
	s.Rules.MinInterval = time.Duration(c.MinIntervalMs) * time.Millisecond
	return s
}

func (c Config) Bindings() (input.Bindings, error) {
	b, err := input.ParseBindings(c.Keys)
	return b, errors.Wrap(err, "keys")
}

// EngineOptions seeds the engine when a seed is configured
func (c Config) EngineOptions() []game.Option {
	if c.Seed == 0 {
		return nil
	}
	return []game.Option{game.WithSeed(c.Seed)}
}
