package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/blockbyte/engine/internal/grid"
)

type Config struct {
	Engine  EngineConfig  `toml:"engine"`
	Board   BoardConfig   `toml:"board"`
	Grid    GridConfig    `toml:"grid"`
	Physics PhysicsConfig `toml:"physics"`
	Window  WindowConfig  `toml:"window"`
	Logging LoggingConfig `toml:"logging"`
	Scripts ScriptsConfig `toml:"scripts"`
	Assets  AssetsConfig  `toml:"assets"`
}

type EngineConfig struct {
	TickRate           int   `toml:"tick_rate"`  // logical updates per second
	FrameRate          int   `toml:"frame_rate"` // headless frames per second
	VelocityIterations int   `toml:"velocity_iterations"`
	PositionIterations int   `toml:"position_iterations"`
	Seed               int64 `toml:"seed"` // 0 = seed from the clock
}

type BoardConfig struct {
	TileSize int `toml:"tile_size"` // screen pixels per board unit
	Width    int `toml:"width"`     // in tiles
	Height   int `toml:"height"`
}

type GridConfig struct {
	Rows      int    `toml:"rows"`
	Cols      int    `toml:"cols"`
	Brush     string `toml:"brush"`
	Materials string `toml:"materials"` // optional yaml colour table
}

type PhysicsConfig struct {
	GravityX float64 `toml:"gravity_x"`
	GravityY float64 `toml:"gravity_y"`
}

type WindowConfig struct {
	Title string `toml:"title"`
	Scale int    `toml:"scale"` // screen pixels per grid cell
	Debug bool   `toml:"debug"` // draw collider outlines
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type ScriptsConfig struct {
	Dir string `toml:"dir"`
}

type AssetsConfig struct {
	Root string `toml:"root"`
}

// Load reads a TOML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields the defaults.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Validate rejects values the loop cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Engine.TickRate <= 0:
		return fmt.Errorf("engine.tick_rate must be positive, got %d", c.Engine.TickRate)
	case c.Engine.FrameRate <= 0:
		return fmt.Errorf("engine.frame_rate must be positive, got %d", c.Engine.FrameRate)
	case c.Board.TileSize <= 0 || c.Board.Width <= 0 || c.Board.Height <= 0:
		return fmt.Errorf("board dimensions must be positive, got %dx%d@%d",
			c.Board.Width, c.Board.Height, c.Board.TileSize)
	case c.Grid.Rows <= 0 || c.Grid.Cols <= 0:
		return fmt.Errorf("grid dimensions must be positive, got %dx%d", c.Grid.Rows, c.Grid.Cols)
	case !grid.FitsCells(c.Grid.Rows, c.Grid.Cols):
		return fmt.Errorf("grid %dx%d exceeds %d cells", c.Grid.Rows, c.Grid.Cols, grid.MaxCells)
	case c.Window.Scale <= 0:
		return fmt.Errorf("window.scale must be positive, got %d", c.Window.Scale)
	}
	if _, err := grid.ParseMaterial(c.Grid.Brush); err != nil {
		return fmt.Errorf("grid.brush: %w", err)
	}
	return nil
}

func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			TickRate:           120,
			FrameRate:          60,
			VelocityIterations: 6,
			PositionIterations: 2,
		},
		Board: BoardConfig{
			TileSize: 64,
			Width:    20,
			Height:   12,
		},
		Grid: GridConfig{
			Rows:  256,
			Cols:  256,
			Brush: "sand",
		},
		Physics: PhysicsConfig{
			GravityY: 4.4,
		},
		Window: WindowConfig{
			Title: "blockbyte",
			Scale: 2,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Scripts: ScriptsConfig{
			Dir: "scripts",
		},
	}
}
