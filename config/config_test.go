package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gridsnake/game"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snake.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	s := cfg.Settings()
	if s.InitialApple.X != 30 || s.InitialApple.Y != 20 {
		t.Errorf("first apple = %v, want (30,20)", s.InitialApple)
	}
	if s.Rules.BaseInterval != 150*time.Millisecond || s.Rules.MinInterval != 50*time.Millisecond {
		t.Errorf("intervals = %v/%v", s.Rules.BaseInterval, s.Rules.MinInterval)
	}
	if cfg.EngineOptions() != nil {
		t.Error("no seed should mean no engine options")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
width: 20
height: 12
renderer: raylib
base_interval_ms: 200
seed: 7
keys:
  k: up
  j: down
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if cfg.Width != 20 || cfg.Height != 12 || cfg.Renderer != RendererRaylib {
		t.Errorf("loaded %+v", cfg)
	}
	if cfg.MinIntervalMs != 50 {
		t.Errorf("unset field lost its default: %d", cfg.MinIntervalMs)
	}
	if len(cfg.EngineOptions()) != 1 {
		t.Error("seed should produce an engine option")
	}

	b, err := cfg.Bindings()
	if err != nil {
		t.Fatalf("Bindings: %v", err)
	}
	if b['k'] != game.IntentUp || b['j'] != game.IntentDown {
		t.Errorf("bindings = %v", b)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}

	path := writeConfig(t, "widht: 10\n")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Errorf("unknown field should fail to parse, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"narrow grid", func(c *Config) { c.Width = 3 }, "too small"},
		{"no rows", func(c *Config) { c.Height = 0 }, "too small"},
		{"renderer", func(c *Config) { c.Renderer = "opengl" }, "unknown renderer"},
		{"cell size", func(c *Config) { c.CellSize = 0 }, "cell size"},
		{"zero interval", func(c *Config) { c.BaseIntervalMs = 0 }, "positive"},
		{"floor above base", func(c *Config) { c.MinIntervalMs = 300 }, "above the base"},
		{"long key", func(c *Config) { c.Keys = map[string]string{"up": "up"} }, "single character"},
		{"bad action", func(c *Config) { c.Keys = map[string]string{"x": "jump"} }, "unknown action"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}
