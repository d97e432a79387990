package physics

import (
	"sort"

	"github.com/jakecoffman/cp"
)

const triggerType cp.CollisionType = 1

type body struct {
	id      BodyID
	body    *cp.Body
	shape   *cp.Shape
	owner   uint64
	trigger bool
}

type pair struct {
	trigger, other BodyID
}

// Space implements World on top of Chipmunk.
type Space struct {
	space    *cp.Space
	bodies   map[BodyID]*body
	next     BodyID
	touching map[pair]int // arbiter count per trigger/other pair
}

// NewSpace creates an empty space with the given gravity in units/s².
func NewSpace(gravity Vec2) *Space {
	s := &Space{
		space:    cp.NewSpace(),
		bodies:   make(map[BodyID]*body, 64),
		touching: make(map[pair]int),
	}
	s.space.SetGravity(cp.Vector{X: gravity.X, Y: gravity.Y})

	h := s.space.NewWildcardCollisionHandler(triggerType)
	h.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
		if p, ok := s.pairOf(arb); ok {
			s.touching[p]++
		}
		return true
	}
	h.SeparateFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) {
		if p, ok := s.pairOf(arb); ok {
			if s.touching[p] <= 1 {
				delete(s.touching, p)
			} else {
				s.touching[p]--
			}
		}
	}
	return s
}

func (s *Space) pairOf(arb *cp.Arbiter) (pair, bool) {
	a, b := arb.Shapes()
	ba, oka := a.UserData.(*body)
	bb, okb := b.UserData.(*body)
	if !oka || !okb {
		return pair{}, false
	}
	if !ba.trigger {
		ba, bb = bb, ba
	}
	return pair{trigger: ba.id, other: bb.id}, true
}

func (s *Space) CreateBody(def BodyDef) BodyID {
	w, h := def.Size.X, def.Size.Y
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}

	var cb *cp.Body
	if def.Static {
		cb = cp.NewStaticBody()
	} else {
		mass := Density * w * h
		cb = cp.NewBody(mass, cp.MomentForBox(mass, w, h))
	}
	cb.SetPosition(cp.Vector{X: def.Position.X, Y: def.Position.Y})
	s.space.AddBody(cb)

	shape := cp.NewBox(cb, w, h, 0)
	shape.SetFriction(Friction)
	if def.Trigger {
		shape.SetSensor(true)
		shape.SetCollisionType(triggerType)
	}
	s.space.AddShape(shape)

	s.next++
	b := &body{id: s.next, body: cb, shape: shape, owner: def.Owner, trigger: def.Trigger}
	cb.UserData = b
	shape.UserData = b
	s.bodies[b.id] = b
	return b.id
}

func (s *Space) DestroyBody(id BodyID) {
	b, ok := s.bodies[id]
	if !ok {
		return
	}
	s.space.RemoveShape(b.shape)
	s.space.RemoveBody(b.body)
	delete(s.bodies, id)
	for p := range s.touching {
		if p.trigger == id || p.other == id {
			delete(s.touching, p)
		}
	}
}

// Step advances the space by dt. Chipmunk has a single solver iteration
// count, so the velocity and position budgets are summed.
func (s *Space) Step(dt float64, velocityIterations, positionIterations int) {
	if n := velocityIterations + positionIterations; n > 0 {
		s.space.Iterations = uint(n)
	}
	s.space.Step(dt)
}

func (s *Space) Position(id BodyID) (Vec2, bool) {
	b, ok := s.bodies[id]
	if !ok {
		return Vec2{}, false
	}
	p := b.body.Position()
	return Vec2{X: p.X, Y: p.Y}, true
}

func (s *Space) SetPosition(id BodyID, p Vec2) {
	b, ok := s.bodies[id]
	if !ok {
		return
	}
	b.body.SetPosition(cp.Vector{X: p.X, Y: p.Y})
	if b.body.GetType() == cp.BODY_STATIC {
		s.space.ReindexShapesForBody(b.body)
	}
}

func (s *Space) ApplyImpulse(id BodyID, impulse Vec2) {
	b, ok := s.bodies[id]
	if !ok || b.body.GetType() != cp.BODY_DYNAMIC {
		return
	}
	b.body.ApplyImpulseAtWorldPoint(cp.Vector{X: impulse.X, Y: impulse.Y}, b.body.Position())
}

func (s *Space) Owner(id BodyID) (uint64, bool) {
	b, ok := s.bodies[id]
	if !ok {
		return 0, false
	}
	return b.owner, true
}

// Contacts visits touching pairs ordered by trigger then other id.
func (s *Space) Contacts(fn func(trigger, other BodyID)) {
	pairs := make([]pair, 0, len(s.touching))
	for p := range s.touching {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].trigger != pairs[j].trigger {
			return pairs[i].trigger < pairs[j].trigger
		}
		return pairs[i].other < pairs[j].other
	})
	for _, p := range pairs {
		fn(p.trigger, p.other)
	}
}

// Velocity returns the linear velocity of a body.
func (s *Space) Velocity(id BodyID) (Vec2, bool) {
	b, ok := s.bodies[id]
	if !ok {
		return Vec2{}, false
	}
	v := b.body.Velocity()
	return Vec2{X: v.X, Y: v.Y}, true
}

func (s *Space) Len() int { return len(s.bodies) }
