package component

import (
	"github.com/blockbyte/engine/internal/core/ecs"
	"github.com/blockbyte/engine/internal/physics"
)

// Collider links an entity to a box body in the physics world.
type Collider struct {
	Body      physics.BodyID
	Width     float64 // board units
	Height    float64
	Static    bool
	IsTrigger bool

	// OnTrigger runs when another body starts touching this trigger.
	OnTrigger func(self, other ecs.EntityID)
	// OnRelease destroys the body; set by whoever created it.
	OnRelease func()
}

// Release frees the physics body when the component goes away.
func (c *Collider) Release() {
	if c.OnRelease != nil {
		c.OnRelease()
		c.OnRelease = nil
	}
}
