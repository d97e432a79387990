package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blockbyte.toml")
	src := `
[engine]
tick_rate = 240
seed = 99

[grid]
rows = 64
brush = "water"

[logging]
format = "json"
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.TickRate != 240 || cfg.Engine.Seed != 99 {
		t.Fatalf("engine = %+v", cfg.Engine)
	}
	if cfg.Grid.Rows != 64 || cfg.Grid.Cols != 256 || cfg.Grid.Brush != "water" {
		t.Fatalf("grid = %+v", cfg.Grid)
	}
	if cfg.Engine.VelocityIterations != 6 || cfg.Physics.GravityY != 4.4 {
		t.Fatal("unset keys lost their defaults")
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("logging = %+v", cfg.Logging)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[engine]\ntick_rate = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error")
	}

	if err := os.WriteFile(path, []byte("[engine\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if cfg.Board.TileSize != 64 || cfg.Board.Width != 20 || cfg.Board.Height != 12 {
		t.Fatalf("board = %+v", cfg.Board)
	}
}

func TestValidateGridAndWindow(t *testing.T) {
	cases := map[string]func(*Config){
		"unknown brush":  func(c *Config) { c.Grid.Brush = "lava" },
		"too many cells": func(c *Config) { c.Grid.Rows, c.Grid.Cols = 100000, 100000 },
		"zero scale":     func(c *Config) { c.Window.Scale = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}

	cfg := Default()
	cfg.Grid.Brush = "Water"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}
