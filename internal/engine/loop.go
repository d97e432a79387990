// Package engine drives a scene: one physics step and a render per frame,
// and as many fixed logical ticks as the elapsed time allows.
package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/blockbyte/engine/internal/asset"
	"github.com/blockbyte/engine/internal/config"
	"github.com/blockbyte/engine/internal/core/ecs"
	"github.com/blockbyte/engine/internal/core/event"
	coresys "github.com/blockbyte/engine/internal/core/system"
	"github.com/blockbyte/engine/internal/data"
	"github.com/blockbyte/engine/internal/grid"
	"github.com/blockbyte/engine/internal/level"
	"github.com/blockbyte/engine/internal/physics"
	"github.com/blockbyte/engine/internal/rng"
	"github.com/blockbyte/engine/internal/scene"
	"github.com/blockbyte/engine/internal/system"
)

// Renderer draws the world once per frame. It must not mutate it.
type Renderer interface {
	Render(w *ecs.World)
}

// Engine owns the scene, the system runner and the tick accumulator.
// All methods must be called from the loop goroutine.
type Engine struct {
	cfg    *config.Config
	scene  *scene.Scene
	bus    *event.Bus
	runner *coresys.Runner
	input  *system.InputSystem
	rng    *rng.RNG

	tick        time.Duration
	accumulator time.Duration
	ticks       uint64
	frames      uint64
	quit        bool

	renderer Renderer
	log      *zap.Logger
}

// New builds an engine from cfg. input may be nil for headless runs.
func New(cfg *config.Config, input system.InputSource, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}

	world := ecs.NewWorld(log)
	phys := physics.NewSpace(physics.Vec2{X: cfg.Physics.GravityX, Y: cfg.Physics.GravityY})
	bus := event.NewBus()
	board := level.Board{TileSize: cfg.Board.TileSize, Width: cfg.Board.Width, Height: cfg.Board.Height}
	sc := scene.New(world, phys, asset.NewCache(cfg.Assets.Root, log), bus, board, log)
	brush, err := grid.ParseMaterial(cfg.Grid.Brush)
	if err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	sc.Grid = scene.GridDefaults{
		Rows:  cfg.Grid.Rows,
		Cols:  cfg.Grid.Cols,
		Brush: brush,
		Scale: cfg.Window.Scale,
	}

	if cfg.Grid.Materials != "" {
		tbl, err := data.LoadMaterialTable(cfg.Grid.Materials)
		if err != nil {
			return nil, fmt.Errorf("load materials: %w", err)
		}
		sc.Palette = tbl.Palette()
		log.Debug("material palette loaded", zap.Int("materials", tbl.Count()))
	}

	r := rng.New(cfg.Engine.Seed)
	e := &Engine{
		cfg:    cfg,
		scene:  sc,
		bus:    bus,
		runner: coresys.NewRunner(),
		input:  system.NewInputSystem(world, input),
		rng:    r,
		tick:   time.Second / time.Duration(cfg.Engine.TickRate),
		log:    log,
	}

	e.runner.Register(e.input)
	e.runner.Register(system.NewEventDispatchSystem(bus))
	e.runner.Register(system.NewTransformSyncSystem(world, phys, board.TileSize))
	e.runner.Register(system.NewPlayerSystem(world, phys, board))
	e.runner.Register(system.NewTriggerSystem(world, phys, bus, log))
	e.runner.Register(system.NewGridSystem(world, r))
	e.runner.Register(system.NewCleanupSystem(world))

	event.Subscribe(bus, func(event.QuitRequested) { e.quit = true })

	log.Info("engine ready",
		zap.Int("tick_rate", cfg.Engine.TickRate),
		zap.Int64("seed", r.Seed()),
		zap.Int("systems", e.runner.Len()),
	)
	return e, nil
}

func (e *Engine) Scene() *scene.Scene         { return e.scene }
func (e *Engine) World() *ecs.World           { return e.scene.World }
func (e *Engine) Bus() *event.Bus             { return e.bus }
func (e *Engine) RNG() *rng.RNG               { return e.rng }
func (e *Engine) Config() *config.Config      { return e.cfg }
func (e *Engine) TickDuration() time.Duration { return e.tick }
func (e *Engine) SetRenderer(r Renderer)      { e.renderer = r }

// Register adds an extra system, e.g. a script hook.
func (e *Engine) Register(s coresys.System) { e.runner.Register(s) }

// Ticks returns the number of logical updates run so far.
func (e *Engine) Ticks() uint64 { return e.ticks }

// Frames returns the number of frames run so far.
func (e *Engine) Frames() uint64 { return e.frames }

// Alpha is the fraction of a tick left in the accumulator, for render
// interpolation.
func (e *Engine) Alpha() float64 {
	return float64(e.accumulator) / float64(e.tick)
}

// Stop makes the next Frame return false.
func (e *Engine) Stop() { e.quit = true }

// Stopped reports whether a stop was requested by code, script or input.
func (e *Engine) Stopped() bool { return e.quit || e.input.QuitRequested() }

// Frame runs one iteration of the loop for elapsed wall time: input, one
// physics step, as many logical ticks as the accumulator holds, render.
// Returns false once the engine should stop.
func (e *Engine) Frame(elapsed time.Duration) bool {
	e.runner.TickPhase(coresys.PhaseInput, elapsed)
	if e.Stopped() {
		return false
	}

	e.scene.Physics.Step(physics.TimeStep, e.cfg.Engine.VelocityIterations, e.cfg.Engine.PositionIterations)

	e.accumulator += elapsed
	for e.accumulator >= e.tick {
		e.runner.Tick(coresys.PhaseEvents, coresys.PhaseCleanup, e.tick)
		e.accumulator -= e.tick
		e.ticks++
	}

	if e.renderer != nil {
		e.renderer.Render(e.scene.World)
	}
	e.frames++
	return !e.Stopped()
}

// RunTicks runs frames of exactly one tick each until n ticks have passed
// or the engine stops. Used by headless runs and tests; no wall clock.
func (e *Engine) RunTicks(n uint64) {
	target := e.ticks + n
	for e.ticks < target {
		if !e.Frame(e.tick) {
			return
		}
	}
}

// Run drives frames from a ticker at the configured frame rate until ctx is
// cancelled or a stop is requested.
func (e *Engine) Run(ctx context.Context) error {
	frame := time.Second / time.Duration(e.cfg.Engine.FrameRate)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			e.log.Info("engine stopping", zap.String("reason", ctx.Err().Error()))
			return nil
		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now
			if !e.Frame(elapsed) {
				e.log.Info("engine stopped", zap.Uint64("ticks", e.ticks), zap.Uint64("frames", e.frames))
				return nil
			}
		}
	}
}
