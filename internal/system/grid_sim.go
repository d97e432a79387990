package system

import (
	"time"

	"github.com/blockbyte/engine/internal/component"
	"github.com/blockbyte/engine/internal/core/ecs"
	coresys "github.com/blockbyte/engine/internal/core/system"
	"github.com/blockbyte/engine/internal/rng"
)

// GridSystem advances every particle grid by one automaton step per tick.
// Phase 4 (Simulate).
type GridSystem struct {
	world *ecs.World
	rng   *rng.RNG
	steps uint64
}

func NewGridSystem(world *ecs.World, r *rng.RNG) *GridSystem {
	return &GridSystem{world: world, rng: r}
}

func (s *GridSystem) Phase() coresys.Phase { return coresys.PhaseSimulate }

func (s *GridSystem) Update(_ time.Duration) {
	v := ecs.NewView1[component.GridSimulation](s.world)
	for v.Next() {
		gs := ecs.Get[component.GridSimulation](s.world, v.Entity())
		if gs.Grid == nil || gs.Paused {
			continue
		}
		gs.Grid.Step(s.rng)
	}
	s.steps++
}

// Steps returns how many ticks the system has run.
func (s *GridSystem) Steps() uint64 { return s.steps }
