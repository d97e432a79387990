package system

import (
	"time"

	"github.com/blockbyte/engine/internal/component"
	"github.com/blockbyte/engine/internal/core/ecs"
	coresys "github.com/blockbyte/engine/internal/core/system"
)

// Controls is one frame's worth of device state.
type Controls struct {
	Left  bool
	Right bool
	Jump  bool // edge: true only on the frame the key went down
	Quit  bool
}

// InputSource is polled once per frame. The GUI front-end reads the
// keyboard; headless runs use a script or nothing.
type InputSource interface {
	Poll() Controls
}

// InputSystem copies device state into every Input component.
// Phase 0 (Input), run once per rendered frame.
type InputSystem struct {
	world  *ecs.World
	source InputSource
	quit   bool
}

func NewInputSystem(world *ecs.World, source InputSource) *InputSystem {
	return &InputSystem{world: world, source: source}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	if s.source == nil {
		return
	}
	c := s.source.Poll()
	if c.Quit {
		s.quit = true
	}
	v := ecs.NewView1[component.Input](s.world)
	for v.Next() {
		in := ecs.Get[component.Input](s.world, v.Entity())
		in.Left = c.Left
		in.Right = c.Right
		// Jump stays latched until the player system applies it.
		if c.Jump {
			in.Jump = true
		}
	}
}

// QuitRequested reports whether any poll asked to close the application.
func (s *InputSystem) QuitRequested() bool { return s.quit }
