package system

import (
	"time"

	"github.com/blockbyte/engine/internal/core/ecs"
	coresys "github.com/blockbyte/engine/internal/core/system"
)

// CleanupSystem flushes the deferred entity destruction queue at tick end.
// Destroying an entity releases its collider body and sprite texture.
type CleanupSystem struct {
	world *ecs.World
}

func NewCleanupSystem(world *ecs.World) *CleanupSystem {
	return &CleanupSystem{world: world}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	s.world.FlushDestroyQueue()
}
