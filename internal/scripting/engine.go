package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	coresys "github.com/blockbyte/engine/internal/core/system"
	"github.com/blockbyte/engine/internal/rng"
	"github.com/blockbyte/engine/internal/scene"
)

// APIVersion is exposed to scripts as API_VERSION.
const APIVersion = 1

// Engine wraps a single gopher-lua VM bound to one scene.
// Single-goroutine access only (game loop).
type Engine struct {
	vm    *lua.LState
	scene *scene.Scene
	rng   *rng.RNG
	log   *zap.Logger
}

// NewEngine creates a Lua VM with the scene API installed.
func NewEngine(sc *scene.Scene, r *rng.RNG, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(APIVersion))

	e := &Engine{vm: vm, scene: sc, rng: r, log: log}
	e.install()
	return e
}

// LoadDir runs every .lua file in dir in name order. A missing directory
// is not an error.
func (e *Engine) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		if err := e.RunFile(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// RunFile executes one script.
func (e *Engine) RunFile(path string) error {
	if err := e.vm.DoFile(path); err != nil {
		return fmt.Errorf("run script %s: %w", path, err)
	}
	e.log.Debug("loaded lua script", zap.String("file", path))
	return nil
}

// RunString executes a chunk of Lua source.
func (e *Engine) RunString(src string) error {
	if err := e.vm.DoString(src); err != nil {
		return fmt.Errorf("run script: %w", err)
	}
	return nil
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}

// TickSystem calls the script's global on_tick(dt) once per logical tick.
// Scripts that define no on_tick cost a global lookup.
type TickSystem struct {
	e     *Engine
	calls uint64
}

// TickSystem returns the system that forwards ticks to on_tick.
func (e *Engine) TickSystem() *TickSystem {
	return &TickSystem{e: e}
}

func (s *TickSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *TickSystem) Update(dt time.Duration) {
	fn := s.e.vm.GetGlobal("on_tick")
	if fn == lua.LNil {
		return
	}
	if err := s.e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, lua.LNumber(dt.Seconds())); err != nil {
		s.e.log.Error("lua on_tick error", zap.Error(err))
		return
	}
	s.calls++
}

// Calls returns how many times on_tick ran without error.
func (s *TickSystem) Calls() uint64 { return s.calls }
