package system

import (
	"time"

	"github.com/blockbyte/engine/internal/component"
	"github.com/blockbyte/engine/internal/core/ecs"
	coresys "github.com/blockbyte/engine/internal/core/system"
	"github.com/blockbyte/engine/internal/level"
	"github.com/blockbyte/engine/internal/physics"
)

// PlayerSystem turns Input flags into impulses on the entity's body and
// keeps the body inside the board. Phase 3 (Update).
//
// Jump is consumed on use. Left wins over right when both are held.
type PlayerSystem struct {
	world *ecs.World
	phys  physics.World
	board level.Board
}

func NewPlayerSystem(world *ecs.World, phys physics.World, board level.Board) *PlayerSystem {
	return &PlayerSystem{world: world, phys: phys, board: board}
}

func (s *PlayerSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *PlayerSystem) Update(_ time.Duration) {
	ecs.Each3(s.world, func(_ ecs.EntityID, t *component.Transform, in *component.Input, c *component.Collider) {
		if in.Jump {
			s.phys.ApplyImpulse(c.Body, physics.Vec2{Y: in.JumpSpeed})
			in.Jump = false
		}
		switch {
		case in.Left:
			s.phys.ApplyImpulse(c.Body, physics.Vec2{X: -in.Speed})
		case in.Right:
			s.phys.ApplyImpulse(c.Body, physics.Vec2{X: in.Speed})
		}

		p, ok := s.phys.Position(c.Body)
		if !ok {
			return
		}
		clamped := s.clamp(p)
		if clamped != p {
			s.phys.SetPosition(c.Body, clamped)
		}
		ts := float64(s.board.TileSize)
		t.X, t.Y = clamped.X*ts, clamped.Y*ts
	})
}

func (s *PlayerSystem) clamp(p physics.Vec2) physics.Vec2 {
	maxX := float64(s.board.Width - 1)
	maxY := float64(s.board.Height - 1)
	p.X = min(max(p.X, 0), maxX)
	p.Y = min(max(p.Y, 0), maxY)
	return p
}
