package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/blockbyte/engine/internal/component"
	"github.com/blockbyte/engine/internal/core/ecs"
	"github.com/blockbyte/engine/internal/core/event"
	coresys "github.com/blockbyte/engine/internal/core/system"
	"github.com/blockbyte/engine/internal/physics"
)

type contact struct {
	trigger, other ecs.EntityID
}

// TriggerSystem watches trigger colliders. A TriggerEntered event is raised
// once when a body starts touching a trigger; it fires again only after the
// two have separated. The collider's OnTrigger callback runs when the event
// is dispatched next tick. Phase 3 (Update).
type TriggerSystem struct {
	world *ecs.World
	phys  physics.World
	bus   *event.Bus
	log   *zap.Logger

	active map[contact]struct{}
	seen   map[contact]struct{}
}

func NewTriggerSystem(world *ecs.World, phys physics.World, bus *event.Bus, log *zap.Logger) *TriggerSystem {
	s := &TriggerSystem{
		world:  world,
		phys:   phys,
		bus:    bus,
		log:    log,
		active: make(map[contact]struct{}),
		seen:   make(map[contact]struct{}),
	}
	event.Subscribe(bus, s.onEntered)
	return s
}

func (s *TriggerSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *TriggerSystem) Update(_ time.Duration) {
	clear(s.seen)
	s.phys.Contacts(func(tb, ob physics.BodyID) {
		to, ok1 := s.phys.Owner(tb)
		oo, ok2 := s.phys.Owner(ob)
		if !ok1 || !ok2 {
			return
		}
		c := contact{trigger: ecs.EntityID(to), other: ecs.EntityID(oo)}
		if !s.world.IsValid(c.trigger) || !s.world.IsValid(c.other) {
			return
		}
		s.seen[c] = struct{}{}
		if _, already := s.active[c]; already {
			return
		}
		s.active[c] = struct{}{}
		event.Emit(s.bus, event.TriggerEntered{Trigger: c.trigger, Other: c.other})
	})
	for c := range s.active {
		if _, still := s.seen[c]; !still {
			delete(s.active, c)
		}
	}
}

func (s *TriggerSystem) onEntered(ev event.TriggerEntered) {
	col := ecs.Get[component.Collider](s.world, ev.Trigger)
	if col == nil || !col.IsTrigger {
		return
	}
	s.log.Debug("trigger entered",
		zap.Uint64("trigger", uint64(ev.Trigger)),
		zap.Uint64("other", uint64(ev.Other)),
	)
	if col.OnTrigger != nil {
		col.OnTrigger(ev.Trigger, ev.Other)
	}
}
