package system

import (
	"time"

	"github.com/blockbyte/engine/internal/component"
	"github.com/blockbyte/engine/internal/core/ecs"
	coresys "github.com/blockbyte/engine/internal/core/system"
	"github.com/blockbyte/engine/internal/physics"
)

// TransformSyncSystem copies body positions into transforms, converting
// board units to pixels. Phase 2 (Sync).
type TransformSyncSystem struct {
	world    *ecs.World
	phys     physics.World
	tileSize float64
}

func NewTransformSyncSystem(world *ecs.World, phys physics.World, tileSize int) *TransformSyncSystem {
	return &TransformSyncSystem{world: world, phys: phys, tileSize: float64(tileSize)}
}

func (s *TransformSyncSystem) Phase() coresys.Phase { return coresys.PhaseSync }

func (s *TransformSyncSystem) Update(_ time.Duration) {
	ecs.Each2(s.world, func(_ ecs.EntityID, t *component.Transform, c *component.Collider) {
		if p, ok := s.phys.Position(c.Body); ok {
			t.X = p.X * s.tileSize
			t.Y = p.Y * s.tileSize
		}
	})
}
