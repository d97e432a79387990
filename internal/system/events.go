package system

import (
	"time"

	"github.com/blockbyte/engine/internal/core/event"
	coresys "github.com/blockbyte/engine/internal/core/system"
)

// EventDispatchSystem delivers the events raised during the previous tick.
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhaseEvents }

func (s *EventDispatchSystem) Update(_ time.Duration) {
	s.bus.Swap()
	s.bus.Dispatch()
}
