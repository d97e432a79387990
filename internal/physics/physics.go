// Package physics is the rigid-body collaborator of the simulation loop.
// Bodies are addressed by opaque ids so components never hold engine
// pointers across a step.
package physics

// BodyID identifies a body inside one World. Zero is never issued.
type BodyID uint32

// Vec2 is a position or impulse in board units (one unit per tile).
type Vec2 struct {
	X, Y float64
}

// BodyDef describes a box body. Position is the box centre.
type BodyDef struct {
	Position Vec2
	Size     Vec2
	Static   bool
	Trigger  bool   // sensor: reports contacts, never collides
	Owner    uint64 // opaque back-reference, usually an ecs.EntityID
}

const (
	Density  = 1.0
	Friction = 0.2

	VelocityIterations = 6
	PositionIterations = 2
	TimeStep           = 1.0 / 60.0
)

// World is the rigid-body simulation the engine steps once per frame.
type World interface {
	CreateBody(def BodyDef) BodyID
	DestroyBody(id BodyID)
	Step(dt float64, velocityIterations, positionIterations int)
	Position(id BodyID) (Vec2, bool)
	SetPosition(id BodyID, p Vec2)
	ApplyImpulse(id BodyID, impulse Vec2)
	Owner(id BodyID) (uint64, bool)
	// Contacts calls fn for every trigger body and each body currently
	// touching it.
	Contacts(fn func(trigger, other BodyID))
	Len() int
}
