package system

import "time"

// Phase defines execution ordering within a single logical tick.
type Phase int

const (
	PhaseInput    Phase = iota // 0: poll devices, apply player intent (once per frame)
	PhaseEvents                // 1: deliver last tick's events
	PhaseSync                  // 2: copy physics body positions into transforms
	PhaseUpdate                // 3: movement, triggers
	PhaseSimulate              // 4: particle grid step
	PhaseCleanup               // 5: destroy queued entities
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhaseEvents:
		return "events"
	case PhaseSync:
		return "sync"
	case PhaseUpdate:
		return "update"
	case PhaseSimulate:
		return "simulate"
	case PhaseCleanup:
		return "cleanup"
	}
	return "unknown"
}

// System is the interface every ECS system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
